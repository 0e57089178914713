package camera

import (
	_ "embed"
	"encoding/binary"
	"math"
	"unsafe"
)

// GPUCameraUniformSource is the WGSL definition of the CameraUniform struct.
// Matches GPUCameraUniform layout exactly (80 bytes).
//
//go:embed assets/camera_uniform.wgsl
var GPUCameraUniformSource string

// GPUCameraUniform is the per-frame camera block read by the vertex and fragment stages.
// Size: 80 bytes.
type GPUCameraUniform struct {
	ViewProj [16]float32 // offset  0
	Position [3]float32  // offset 64: world-space eye, for specular
	_pad     float32     // offset 76
}

// Uniform snapshots c into its GPU representation, recomputing a dirty
// projection first.
//
// Parameters:
//   - c: the camera
//
// Returns:
//   - GPUCameraUniform: the packed block
func Uniform(c Camera) GPUCameraUniform {
	return GPUCameraUniform{
		ViewProj: c.ViewProjectionMatrix(),
		Position: c.Position(),
	}
}

// Size returns the size of the GPUCameraUniform struct in bytes.
func (g *GPUCameraUniform) Size() int {
	return int(unsafe.Sizeof(*g))
}

// Marshal serializes the block into a byte buffer suitable for GPU upload.
//
// Returns:
//   - []byte: 80-byte buffer ready for GPU upload
func (g *GPUCameraUniform) Marshal() []byte {
	buf := make([]byte, 80)
	for i, v := range g.ViewProj {
		binary.LittleEndian.PutUint32(buf[i*4:], math.Float32bits(v))
	}
	for i, v := range g.Position {
		binary.LittleEndian.PutUint32(buf[64+i*4:], math.Float32bits(v))
	}
	return buf
}
