package light

import "github.com/Carmen-Shannon/chipview/common"

// LightBuilderOption configures a light in NewAmbient or NewDirectional.
type LightBuilderOption func(*lightImpl)

// WithPosition places the light. A directional light shines from here toward
// the origin; ambient lights ignore it.
func WithPosition(x, y, z float32) LightBuilderOption {
	return func(l *lightImpl) {
		l.position = [3]float32{x, y, z}
	}
}

// WithColor sets the light color.
func WithColor(color common.Color) LightBuilderOption {
	return func(l *lightImpl) {
		l.color = color
	}
}

// WithHexColor sets the light color from 0xRRGGBB.
func WithHexColor(hex uint32) LightBuilderOption {
	return WithColor(common.ColorFromHex(hex))
}

// WithIntensity scales the color. Negative values clamp to zero.
//
// Parameters:
//   - intensity: the multiplier
//
// Returns:
//   - LightBuilderOption: the option
func WithIntensity(intensity float32) LightBuilderOption {
	return func(l *lightImpl) {
		l.intensity = max(intensity, 0)
	}
}

// WithEnabled includes or excludes the light from Pack.
func WithEnabled(enabled bool) LightBuilderOption {
	return func(l *lightImpl) {
		l.enabled = enabled
	}
}
