package light

import (
	_ "embed"
	"encoding/binary"
	"math"
	"unsafe"
)

// MaxDirectionalLights is the number of directional light slots in the
// uniform block. Extra enabled directional lights are ignored.
const MaxDirectionalLights = 4

// GPULightsSource is the WGSL definition of the Lights uniform block.
// Matches GPULights layout exactly.
//
//go:embed assets/lights.wgsl
var GPULightsSource string

// GPUDirectionalLight is the GPU-aligned representation of one directional light.
// Size: 32 bytes (uniform array stride).
type GPUDirectionalLight struct {
	Direction [3]float32 // offset  0: normalized, toward the origin
	Intensity float32    // offset 12
	Color     [3]float32 // offset 16
	_pad      float32    // offset 28
}

// GPULights is the uniform block consumed by the lit shader.
// Size: 16 + 32*MaxDirectionalLights bytes.
type GPULights struct {
	Ambient     [3]float32 // offset 0: summed ambient color * intensity
	Count       uint32     // offset 12: directional slots in use
	Directional [MaxDirectionalLights]GPUDirectionalLight
}

// Size returns the size of the GPULights struct in bytes.
//
// Returns:
//   - int: the struct size in bytes (144)
func (g *GPULights) Size() int {
	return int(unsafe.Sizeof(*g))
}

// Marshal serializes the block into a little-endian byte buffer suitable for
// GPU upload.
//
// Returns:
//   - []byte: buffer of g.Size() bytes
func (g *GPULights) Marshal() []byte {
	buf := make([]byte, g.Size())
	putVec3(buf[0:12], g.Ambient)
	binary.LittleEndian.PutUint32(buf[12:16], g.Count)
	for i, d := range g.Directional {
		off := 16 + i*32
		putVec3(buf[off:off+12], d.Direction)
		binary.LittleEndian.PutUint32(buf[off+12:off+16], math.Float32bits(d.Intensity))
		putVec3(buf[off+16:off+28], d.Color)
	}
	return buf
}

// Pack folds the enabled lights into a GPULights block. Ambient lights are
// summed; directional lights fill the slots in order.
//
// Parameters:
//   - lights: the scene's lights
//
// Returns:
//   - GPULights: the packed block
func Pack(lights []Light) GPULights {
	var out GPULights
	for _, l := range lights {
		if l == nil || !l.Enabled() {
			continue
		}
		switch l.Type() {
		case LightTypeAmbient:
			c := l.Color().Scale(l.Intensity()).Array()
			for i := range out.Ambient {
				out.Ambient[i] += c[i]
			}
		case LightTypeDirectional:
			if out.Count >= MaxDirectionalLights {
				continue
			}
			out.Directional[out.Count] = GPUDirectionalLight{
				Direction: l.Direction(),
				Intensity: l.Intensity(),
				Color:     l.Color().Array(),
			}
			out.Count++
		}
	}
	return out
}

func putVec3(buf []byte, v [3]float32) {
	binary.LittleEndian.PutUint32(buf[0:4], math.Float32bits(v[0]))
	binary.LittleEndian.PutUint32(buf[4:8], math.Float32bits(v[1]))
	binary.LittleEndian.PutUint32(buf[8:12], math.Float32bits(v[2]))
}
