package material

import (
	"github.com/Carmen-Shannon/chipview/common"
)

// MaterialBuilderOption is a function that configures a material instance during construction.
type MaterialBuilderOption func(*material)

// WithName is an option builder that sets the name of the material.
//
// Parameters:
//   - name: the identifier for the material
//
// Returns:
//   - MaterialBuilderOption: a function that applies the name option to a material
func WithName(name string) MaterialBuilderOption {
	return func(m *material) {
		m.name = name
	}
}

// WithKind is an option builder that sets the shading model.
//
// Parameters:
//   - kind: basic, phong or standard
//
// Returns:
//   - MaterialBuilderOption: a function that applies the kind option to a material
func WithKind(kind Kind) MaterialBuilderOption {
	return func(m *material) {
		m.kind = kind
	}
}

// WithColor is an option builder that sets the diffuse color of the material.
//
// Parameters:
//   - color: the diffuse color
//
// Returns:
//   - MaterialBuilderOption: a function that applies the color option to a material
func WithColor(color common.Color) MaterialBuilderOption {
	return func(m *material) {
		m.color = color
	}
}

// WithShininess is an option builder that sets the Phong specular exponent.
//
// Parameters:
//   - shininess: the exponent
//
// Returns:
//   - MaterialBuilderOption: a function that applies the shininess option to a material
func WithShininess(shininess float32) MaterialBuilderOption {
	return func(m *material) {
		m.shininess = max(shininess, 0)
	}
}

// WithRoughness is an option builder that sets the roughness factor of the material.
//
// Parameters:
//   - roughness: the roughness factor (0.0 = smooth, 1.0 = rough)
//
// Returns:
//   - MaterialBuilderOption: a function that applies the roughness option to a material
func WithRoughness(roughness float32) MaterialBuilderOption {
	return func(m *material) {
		m.roughness = common.Clamp(roughness, 0, 1)
	}
}

// WithMetalness is an option builder that sets the metalness factor of the material.
//
// Parameters:
//   - metalness: the metalness factor (0.0 = dielectric, 1.0 = metal)
//
// Returns:
//   - MaterialBuilderOption: a function that applies the metalness option to a material
func WithMetalness(metalness float32) MaterialBuilderOption {
	return func(m *material) {
		m.metalness = common.Clamp(metalness, 0, 1)
	}
}

// WithVertexColors is an option builder that makes per-vertex colors replace the material color.
//
// Parameters:
//   - enabled: true to use vertex colors
//
// Returns:
//   - MaterialBuilderOption: a function that applies the vertex color option to a material
func WithVertexColors(enabled bool) MaterialBuilderOption {
	return func(m *material) {
		m.vertexColors = enabled
	}
}

// WithDiffuseTexture is an option builder that sets the diffuse texture.
//
// Parameters:
//   - tex: decoded RGBA texture data
//
// Returns:
//   - MaterialBuilderOption: a function that applies the diffuse texture option to a material
func WithDiffuseTexture(tex *common.TextureStagingData) MaterialBuilderOption {
	return func(m *material) {
		m.diffuseTexture = tex
	}
}

// WithDepthTest is an option builder that sets whether fragments are depth-tested.
//
// Parameters:
//   - enabled: false to draw on top of the scene
//
// Returns:
//   - MaterialBuilderOption: a function that applies the depth test option to a material
func WithDepthTest(enabled bool) MaterialBuilderOption {
	return func(m *material) {
		m.depthTest = enabled
	}
}

// WithTopology is an option builder that sets the primitive topology.
//
// Parameters:
//   - topology: triangles or lines
//
// Returns:
//   - MaterialBuilderOption: a function that applies the topology option to a material
func WithTopology(topology Topology) MaterialBuilderOption {
	return func(m *material) {
		m.topology = topology
	}
}
