package model

import (
	_ "embed"
	"encoding/binary"
	"math"
	"unsafe"

	"github.com/Carmen-Shannon/chipview/common"
)

// ComputeBoundingRadius computes the bounding sphere radius for a set of
// vertices: the maximum distance from the origin.
//
// Parameters:
//   - vertices: the vertex data to compute the bounding radius from
//
// Returns:
//   - float32: the maximum distance from the origin
func ComputeBoundingRadius(vertices []common.Vertex) float32 {
	var maxDistSq float32
	for _, v := range vertices {
		p := v.Position
		distSq := p[0]*p[0] + p[1]*p[1] + p[2]*p[2]
		if distSq > maxDistSq {
			maxDistSq = distSq
		}
	}
	return float32(math.Sqrt(float64(maxDistSq)))
}

// GPUModelDataSource is the WGSL definition of the ModelData struct.
// Matches GPUModelData layout exactly (128 bytes).
//
//go:embed assets/model_data.wgsl
var GPUModelDataSource string

// GPUModelData is the per-object uniform holding the world and normal matrices.
// Size: 128 bytes (two mat4x4<f32>).
type GPUModelData struct {
	Model  common.Mat4 // offset  0: object-to-world
	Normal common.Mat4 // offset 64: inverse-transpose of Model
}

// NewGPUModelData fills both matrices from a world transform.
func NewGPUModelData(world common.Mat4) GPUModelData {
	return GPUModelData{Model: world, Normal: world.NormalMatrix()}
}

// Size returns the size of the GPUModelData struct in bytes.
//
// Returns:
//   - int: the size of the struct in bytes.
func (g *GPUModelData) Size() int {
	return int(unsafe.Sizeof(*g))
}

// Marshal serializes the GPUModelData struct into a byte buffer suitable for GPU upload.
//
// Returns:
//   - []byte: 128-byte buffer ready for GPU upload.
func (g *GPUModelData) Marshal() []byte {
	buf := make([]byte, 128)
	for i := 0; i < 16; i++ {
		binary.LittleEndian.PutUint32(buf[i*4:(i+1)*4], math.Float32bits(g.Model[i]))
		binary.LittleEndian.PutUint32(buf[64+i*4:64+(i+1)*4], math.Float32bits(g.Normal[i]))
	}
	return buf
}
