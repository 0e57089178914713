package light

import "github.com/Carmen-Shannon/chipview/common"

// Axis selects a position component.
type Axis int

const (
	AxisX Axis = iota
	AxisY
	AxisZ
)

// ColorAccessor exposes a light's color as a hex string for the debug panel.
type ColorAccessor struct {
	Light Light
}

// Get returns the color as "#rrggbb".
func (a ColorAccessor) Get() string {
	return a.Light.Color().String()
}

// Set parses hex and applies it. The light is unchanged on error.
func (a ColorAccessor) Set(hex string) error {
	c, err := common.ParseColor(hex)
	if err != nil {
		return err
	}
	a.Light.SetColor(c)
	return nil
}

// IntensityAccessor exposes a light's intensity as a number.
type IntensityAccessor struct {
	Light Light
}

func (a IntensityAccessor) Get() float64 {
	return float64(a.Light.Intensity())
}

func (a IntensityAccessor) Set(v float64) {
	a.Light.SetIntensity(float32(v))
}

// PositionAccessor exposes one component of a light's position.
type PositionAccessor struct {
	Light Light
	Axis  Axis
}

func (a PositionAccessor) Get() float64 {
	return float64(a.Light.Position()[a.Axis])
}

func (a PositionAccessor) Set(v float64) {
	p := a.Light.Position()
	p[a.Axis] = float32(v)
	a.Light.SetPosition(p[0], p[1], p[2])
}
