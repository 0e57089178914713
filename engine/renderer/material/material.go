package material

import (
	"github.com/Carmen-Shannon/chipview/common"
)

// Kind selects the shading model used to draw a material.
type Kind uint32

const (
	// KindBasic is unlit. Lines and helpers use it with per-vertex colors.
	KindBasic Kind = iota
	// KindPhong is Blinn-Phong diffuse + specular driven by Shininess.
	KindPhong
	// KindStandard is an approximate metallic-roughness model.
	KindStandard
)

// Topology selects how a mesh's indices are assembled.
type Topology int

const (
	TopologyTriangles Topology = iota
	TopologyLines
)

// material is the implementation of the Material interface.
type material struct {
	name           string
	kind           Kind
	color          common.Color
	shininess      float32
	roughness      float32
	metalness      float32
	vertexColors   bool
	diffuseTexture *common.TextureStagingData
	depthTest      bool
	topology       Topology
	version        uint64
}

// Material describes the surface appearance of a mesh.
//
// Setters bump Version so the renderer re-uploads the uniform only when a
// value actually changed.
type Material interface {
	// Name retrieves the material identifier.
	//
	// Returns:
	//   - string: the name of the material
	Name() string

	// Kind retrieves the shading model.
	//
	// Returns:
	//   - Kind: basic, phong or standard
	Kind() Kind

	// Color retrieves the diffuse color. When a diffuse texture is set the
	// texel is multiplied by this color.
	//
	// Returns:
	//   - common.Color: the diffuse color
	Color() common.Color

	// Shininess retrieves the Phong specular exponent.
	//
	// Returns:
	//   - float32: the exponent
	Shininess() float32

	// Roughness retrieves the standard-model roughness in [0, 1].
	//
	// Returns:
	//   - float32: the roughness factor
	Roughness() float32

	// Metalness retrieves the standard-model metalness in [0, 1].
	//
	// Returns:
	//   - float32: the metalness factor
	Metalness() float32

	// VertexColors reports whether per-vertex colors replace Color.
	VertexColors() bool

	// DiffuseTexture retrieves the decoded diffuse texture, or nil if none is set.
	//
	// Returns:
	//   - *common.TextureStagingData: the texture, or nil
	DiffuseTexture() *common.TextureStagingData

	// DepthTest reports whether fragments are depth-tested. Helpers drawn
	// with DepthTest false appear on top of the scene.
	DepthTest() bool

	// Topology retrieves the primitive topology.
	Topology() Topology

	// Version returns a counter bumped by every setter.
	Version() uint64

	// SetColor sets the diffuse color.
	//
	// Parameters:
	//   - color: the new color
	SetColor(color common.Color)

	// SetShininess sets the Phong exponent. Negative values are clamped to 0.
	//
	// Parameters:
	//   - shininess: the exponent
	SetShininess(shininess float32)

	// SetRoughness sets roughness, clamped to [0, 1].
	//
	// Parameters:
	//   - roughness: the roughness factor
	SetRoughness(roughness float32)

	// SetMetalness sets metalness, clamped to [0, 1].
	//
	// Parameters:
	//   - metalness: the metalness factor
	SetMetalness(metalness float32)

	// SetDiffuseTexture attaches or (with nil) removes the diffuse texture.
	//
	// Parameters:
	//   - tex: decoded texture data
	SetDiffuseTexture(tex *common.TextureStagingData)
}

var _ Material = &material{}

// NewMaterial creates a new Material instance configured with the provided options.
// The default is a white, depth-tested Phong material.
//
// Parameters:
//   - options: variadic list of MaterialBuilderOption functions to configure the material
//
// Returns:
//   - Material: a new Material instance
func NewMaterial(options ...MaterialBuilderOption) Material {
	m := &material{
		kind:      KindPhong,
		color:     common.Color{R: 1, G: 1, B: 1},
		shininess: 30,
		roughness: 1.0,
		depthTest: true,
	}
	for _, opt := range options {
		opt(m)
	}
	return m
}

// NewPhong creates a Phong material with the given color.
func NewPhong(color common.Color, options ...MaterialBuilderOption) Material {
	return NewMaterial(append([]MaterialBuilderOption{WithKind(KindPhong), WithColor(color)}, options...)...)
}

// NewStandard creates a metallic-roughness material with the given color.
func NewStandard(color common.Color, options ...MaterialBuilderOption) Material {
	return NewMaterial(append([]MaterialBuilderOption{WithKind(KindStandard), WithColor(color)}, options...)...)
}

// NewLineBasic creates an unlit line material that uses vertex colors.
func NewLineBasic(options ...MaterialBuilderOption) Material {
	return NewMaterial(append([]MaterialBuilderOption{
		WithKind(KindBasic),
		WithVertexColors(true),
		WithTopology(TopologyLines),
	}, options...)...)
}

func (m *material) Name() string {
	return m.name
}

func (m *material) Kind() Kind {
	return m.kind
}

func (m *material) Color() common.Color {
	return m.color
}

func (m *material) Shininess() float32 {
	return m.shininess
}

func (m *material) Roughness() float32 {
	return m.roughness
}

func (m *material) Metalness() float32 {
	return m.metalness
}

func (m *material) VertexColors() bool {
	return m.vertexColors
}

func (m *material) DiffuseTexture() *common.TextureStagingData {
	return m.diffuseTexture
}

func (m *material) DepthTest() bool {
	return m.depthTest
}

func (m *material) Topology() Topology {
	return m.topology
}

func (m *material) Version() uint64 {
	return m.version
}

func (m *material) SetColor(color common.Color) {
	m.color = color
	m.version++
}

func (m *material) SetShininess(shininess float32) {
	m.shininess = max(shininess, 0)
	m.version++
}

func (m *material) SetRoughness(roughness float32) {
	m.roughness = common.Clamp(roughness, 0, 1)
	m.version++
}

func (m *material) SetMetalness(metalness float32) {
	m.metalness = common.Clamp(metalness, 0, 1)
	m.version++
}

func (m *material) SetDiffuseTexture(tex *common.TextureStagingData) {
	m.diffuseTexture = tex
	m.version++
}
