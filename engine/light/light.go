package light

import "github.com/Carmen-Shannon/chipview/common"

// LightType identifies the kind of light source.
type LightType int

const (
	// LightTypeDirectional represents a distant light such as the sun. Its
	// direction points from its position toward the world origin, so moving
	// the light re-aims it. There is no distance attenuation.
	LightTypeDirectional LightType = iota

	// LightTypeAmbient adds a uniform color to every lit fragment regardless
	// of orientation.
	LightTypeAmbient
)

// String returns the lowercase name of the light type.
func (t LightType) String() string {
	switch t {
	case LightTypeDirectional:
		return "directional"
	case LightTypeAmbient:
		return "ambient"
	default:
		return "unknown"
	}
}

// lightImpl is the implementation of the Light interface.
type lightImpl struct {
	lightType LightType
	position  [3]float32
	color     common.Color
	intensity float32
	enabled   bool
}

// Light defines the interface for a light source in the scene.
//
// Lights are owned by the scene and packed into a uniform block once per
// frame by Pack. They are not safe for concurrent mutation; the debug panel
// applies its changes on the render thread.
type Light interface {
	// Type returns the kind of light source.
	//
	// Returns:
	//   - LightType: directional or ambient
	Type() LightType

	// Position returns the world-space position of the light.
	// Meaningless for ambient lights.
	//
	// Returns:
	//   - [3]float32: position as (x, y, z)
	Position() [3]float32

	// Direction returns the normalized direction the light travels, from its
	// position toward the origin. A light at the origin points straight down.
	//
	// Returns:
	//   - [3]float32: normalized direction as (x, y, z)
	Direction() [3]float32

	// Color returns the color of the light.
	//
	// Returns:
	//   - common.Color: the light color
	Color() common.Color

	// Intensity returns the scalar intensity multiplier for the light.
	//
	// Returns:
	//   - float32: the intensity value
	Intensity() float32

	// Enabled returns whether this light contributes to rendering.
	//
	// Returns:
	//   - bool: true if the light is enabled
	Enabled() bool

	// SetPosition sets the world-space position of the light.
	//
	// Parameters:
	//   - x, y, z: position components
	SetPosition(x, y, z float32)

	// SetColor sets the color of the light.
	//
	// Parameters:
	//   - color: the new color
	SetColor(color common.Color)

	// SetIntensity sets the scalar intensity multiplier. Negative values are
	// clamped to zero.
	//
	// Parameters:
	//   - intensity: the intensity value
	SetIntensity(intensity float32)

	// SetEnabled enables or disables the light for rendering.
	//
	// Parameters:
	//   - enabled: true to enable
	SetEnabled(enabled bool)
}

var _ Light = &lightImpl{}

// NewLight creates a new Light of the specified type with white color, unit
// intensity, and any provided options applied.
//
// Parameters:
//   - lightType: the kind of light to create
//   - opts: variadic list of LightBuilderOption functions to configure the light
//
// Returns:
//   - Light: a new Light instance
func NewLight(lightType LightType, opts ...LightBuilderOption) Light {
	l := &lightImpl{
		lightType: lightType,
		color:     common.Color{R: 1, G: 1, B: 1},
		intensity: 1.0,
		enabled:   true,
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// NewDirectional is shorthand for NewLight(LightTypeDirectional, ...).
func NewDirectional(opts ...LightBuilderOption) Light {
	return NewLight(LightTypeDirectional, opts...)
}

// NewAmbient is shorthand for NewLight(LightTypeAmbient, ...).
func NewAmbient(opts ...LightBuilderOption) Light {
	return NewLight(LightTypeAmbient, opts...)
}

func (l *lightImpl) Type() LightType {
	return l.lightType
}

func (l *lightImpl) Position() [3]float32 {
	return l.position
}

func (l *lightImpl) Direction() [3]float32 {
	if common.Length3(l.position) == 0 {
		return [3]float32{0, -1, 0}
	}
	return common.Normalize3([3]float32{-l.position[0], -l.position[1], -l.position[2]})
}

func (l *lightImpl) Color() common.Color {
	return l.color
}

func (l *lightImpl) Intensity() float32 {
	return l.intensity
}

func (l *lightImpl) Enabled() bool {
	return l.enabled
}

func (l *lightImpl) SetPosition(x, y, z float32) {
	l.position = [3]float32{x, y, z}
}

func (l *lightImpl) SetColor(color common.Color) {
	l.color = color
}

func (l *lightImpl) SetIntensity(intensity float32) {
	l.intensity = max(intensity, 0)
}

func (l *lightImpl) SetEnabled(enabled bool) {
	l.enabled = enabled
}
