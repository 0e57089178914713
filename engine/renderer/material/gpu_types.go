package material

import (
	_ "embed"
	"encoding/binary"
	"math"
	"unsafe"
)

// Flag bits carried in GPUMaterialParams.Flags.
const (
	FlagTextured     uint32 = 1 << 0
	FlagVertexColors uint32 = 1 << 1
)

// GPUMaterialParamsSource is the WGSL definition of the MaterialParams struct.
// Matches GPUMaterialParams layout exactly (32 bytes).
//
//go:embed assets/material_params.wgsl
var GPUMaterialParamsSource string

// GPUMaterialParams is the per-material uniform read by the fragment shader.
// Size: 32 bytes.
type GPUMaterialParams struct {
	Color     [3]float32 // offset  0
	Kind      uint32     // offset 12
	Shininess float32    // offset 16
	Roughness float32    // offset 20
	Metalness float32    // offset 24
	Flags     uint32     // offset 28
}

// Params converts m into its uniform representation.
//
// Parameters:
//   - m: the material
//
// Returns:
//   - GPUMaterialParams: the packed parameters
func Params(m Material) GPUMaterialParams {
	p := GPUMaterialParams{
		Color:     m.Color().Array(),
		Kind:      uint32(m.Kind()),
		Shininess: m.Shininess(),
		Roughness: m.Roughness(),
		Metalness: m.Metalness(),
	}
	if m.DiffuseTexture() != nil {
		p.Flags |= FlagTextured
	}
	if m.VertexColors() {
		p.Flags |= FlagVertexColors
	}
	return p
}

// Size returns the size of the GPUMaterialParams struct in bytes.
//
// Returns:
//   - int: the size of the struct in bytes.
func (g *GPUMaterialParams) Size() int {
	return int(unsafe.Sizeof(*g))
}

// Marshal serializes the GPUMaterialParams struct into a byte buffer suitable for GPU upload.
//
// Returns:
//   - []byte: 32-byte buffer ready for GPU upload.
func (g *GPUMaterialParams) Marshal() []byte {
	buf := make([]byte, 32)
	binary.LittleEndian.PutUint32(buf[0:4], math.Float32bits(g.Color[0]))
	binary.LittleEndian.PutUint32(buf[4:8], math.Float32bits(g.Color[1]))
	binary.LittleEndian.PutUint32(buf[8:12], math.Float32bits(g.Color[2]))
	binary.LittleEndian.PutUint32(buf[12:16], g.Kind)
	binary.LittleEndian.PutUint32(buf[16:20], math.Float32bits(g.Shininess))
	binary.LittleEndian.PutUint32(buf[20:24], math.Float32bits(g.Roughness))
	binary.LittleEndian.PutUint32(buf[24:28], math.Float32bits(g.Metalness))
	binary.LittleEndian.PutUint32(buf[28:32], g.Flags)
	return buf
}
