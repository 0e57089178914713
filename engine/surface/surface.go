// Package surface reconciles a drawing surface's backing resolution with its
// displayed size.
//
// The displayed size is measured in logical (screen-coordinate) units, the
// backing size in physical pixels. On high-density displays the two differ by
// the device pixel ratio.
package surface

import (
	"math"
)

// Surface is a drawing surface whose backing store can be resized.
//
// BackingSize reports the size the owner last passed to SetBackingSize, as
// recorded by the backing store. It is never derived from the displayed
// size, so Reconcile resizes whenever the two disagree.
type Surface interface {
	// DisplaySize returns the displayed size in logical units.
	//
	// Returns:
	//   - width, height: logical size, never negative
	DisplaySize() (width, height float64)

	// PixelRatio returns the ratio of physical pixels to logical units.
	//
	// Returns:
	//   - float64: device pixel ratio (1 on standard displays)
	PixelRatio() float64

	// BackingSize returns the backing resolution last configured, in pixels.
	//
	// Returns:
	//   - width, height: backing size in pixels
	BackingSize() (width, height int)

	// SetBackingSize reallocates the backing store at the given resolution.
	//
	// Parameters:
	//   - width, height: new backing size in pixels
	SetBackingSize(width, height int)
}

// Descriptor is a snapshot of a Surface's geometry.
type Descriptor struct {
	DisplayWidth  float64
	DisplayHeight float64
	BackingWidth  int
	BackingHeight int
	PixelRatio    float64
}

// Describe captures the current geometry of s.
//
// Parameters:
//   - s: the surface to measure
//
// Returns:
//   - Descriptor: the measured geometry
func Describe(s Surface) Descriptor {
	dw, dh := s.DisplaySize()
	bw, bh := s.BackingSize()
	return Descriptor{
		DisplayWidth:  dw,
		DisplayHeight: dh,
		BackingWidth:  bw,
		BackingHeight: bh,
		PixelRatio:    normalizeRatio(s.PixelRatio()),
	}
}

// Target returns the backing resolution the descriptor's display size calls for.
func (d Descriptor) Target() (width, height int) {
	return TargetSize(d.DisplayWidth, d.DisplayHeight, d.PixelRatio)
}

// NeedsResize reports whether the backing resolution differs from Target.
func (d Descriptor) NeedsResize() bool {
	tw, th := d.Target()
	return tw != d.BackingWidth || th != d.BackingHeight
}

// Aspect returns the displayed width / height, or 1 when the height is zero.
func (d Descriptor) Aspect() float32 {
	if d.DisplayHeight <= 0 {
		return 1
	}
	return float32(d.DisplayWidth / d.DisplayHeight)
}

// TargetSize computes the backing resolution for a displayed size:
// floor(width*ratio) x floor(height*ratio). Non-positive ratios count as 1.
//
// Parameters:
//   - width, height: displayed size in logical units
//   - ratio: device pixel ratio
//
// Returns:
//   - int, int: backing width and height in pixels
func TargetSize(width, height, ratio float64) (int, int) {
	r := normalizeRatio(ratio)
	return floorPixels(width * r), floorPixels(height * r)
}

// Reconcile resizes the backing store of s when it no longer matches the
// displayed size and reports whether it did. Calls with an unchanged display
// size are idempotent and never resize.
//
// Parameters:
//   - s: the surface to reconcile
//
// Returns:
//   - bool: true if the backing store was resized
func Reconcile(s Surface) bool {
	d := Describe(s)
	if !d.NeedsResize() {
		return false
	}
	s.SetBackingSize(d.Target())
	return true
}

func normalizeRatio(r float64) float64 {
	if r <= 0 {
		return 1
	}
	return r
}

// floorPixels floors v, clamping negative measurements to 0.
func floorPixels(v float64) int {
	if v <= 0 || math.IsNaN(v) {
		return 0
	}
	return int(math.Floor(v))
}
