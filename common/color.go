package common

import (
	"fmt"
	"strconv"
	"strings"
)

// Color is a linear RGB color with components in [0, 1].
type Color struct {
	R, G, B float32
}

// ParseColor parses a hex color string. Accepted forms are "#RRGGBB",
// "0xRRGGBB", "RRGGBB" and the short form "#RGB".
//
// Parameters:
//   - s: the color string
//
// Returns:
//   - Color: the parsed color
//   - error: error if s is not a valid hex color
func ParseColor(s string) (Color, error) {
	h := strings.TrimSpace(s)
	switch {
	case strings.HasPrefix(h, "#"):
		h = h[1:]
	case strings.HasPrefix(h, "0x"), strings.HasPrefix(h, "0X"):
		h = h[2:]
	}
	if len(h) == 3 {
		h = string([]byte{h[0], h[0], h[1], h[1], h[2], h[2]})
	}
	if len(h) != 6 {
		return Color{}, fmt.Errorf("invalid color %q: want 6 hex digits", s)
	}
	v, err := strconv.ParseUint(h, 16, 32)
	if err != nil {
		return Color{}, fmt.Errorf("invalid color %q: %w", s, err)
	}
	return ColorFromHex(uint32(v)), nil
}

// ColorFromHex converts a 0xRRGGBB value to a Color.
func ColorFromHex(v uint32) Color {
	return Color{
		R: float32((v>>16)&0xFF) / 255,
		G: float32((v>>8)&0xFF) / 255,
		B: float32(v&0xFF) / 255,
	}
}

// Hex returns the color as a 0xRRGGBB value, rounding each channel.
func (c Color) Hex() uint32 {
	return uint32(channelByte(c.R))<<16 | uint32(channelByte(c.G))<<8 | uint32(channelByte(c.B))
}

// String formats the color as "#rrggbb".
func (c Color) String() string {
	return fmt.Sprintf("#%06x", c.Hex())
}

// Array returns the color as an [r, g, b] array.
func (c Color) Array() [3]float32 {
	return [3]float32{c.R, c.G, c.B}
}

// Scale returns the color multiplied by s.
func (c Color) Scale(s float32) Color {
	return Color{R: c.R * s, G: c.G * s, B: c.B * s}
}

// MarshalText implements encoding.TextMarshaler.
func (c Color) MarshalText() ([]byte, error) {
	return []byte(c.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler so colors can be read
// directly from config files and environment variables.
func (c *Color) UnmarshalText(text []byte) error {
	parsed, err := ParseColor(string(text))
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}

func channelByte(v float32) uint8 {
	return uint8(Clamp(v, 0, 1)*255 + 0.5)
}
