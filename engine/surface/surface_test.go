package surface

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// fakeSurface records resize calls so tests can count backing reallocations.
type fakeSurface struct {
	displayW, displayH float64
	ratio              float64
	backingW, backingH int
	resizes            int
}

func (f *fakeSurface) DisplaySize() (float64, float64) { return f.displayW, f.displayH }
func (f *fakeSurface) PixelRatio() float64             { return f.ratio }
func (f *fakeSurface) BackingSize() (int, int)         { return f.backingW, f.backingH }
func (f *fakeSurface) SetBackingSize(w, h int) {
	f.backingW, f.backingH = w, h
	f.resizes++
}

func TestTargetSize(t *testing.T) {
	tests := []struct {
		name         string
		w, h, ratio  float64
		wantW, wantH int
	}{
		{"standard density", 800, 600, 1, 800, 600},
		{"retina", 800, 600, 2, 1600, 1200},
		{"fractional ratio floors", 801, 600, 1.5, 1201, 900},
		{"zero ratio treated as 1", 640, 480, 0, 640, 480},
		{"negative ratio treated as 1", 640, 480, -2, 640, 480},
		{"fractional display size", 100.7, 50.2, 1, 100, 50},
		{"empty", 0, 0, 2, 0, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w, h := TargetSize(tt.w, tt.h, tt.ratio)
			assert.Equal(t, tt.wantW, w)
			assert.Equal(t, tt.wantH, h)
		})
	}
}

func TestReconcileIdempotent(t *testing.T) {
	s := &fakeSurface{displayW: 800, displayH: 600, ratio: 2, backingW: 300, backingH: 150}

	assert.True(t, Reconcile(s))
	assert.Equal(t, 1600, s.backingW)
	assert.Equal(t, 1200, s.backingH)

	assert.False(t, Reconcile(s))
	assert.False(t, Reconcile(s))
	assert.Equal(t, 1, s.resizes)
}

func TestReconcileAlreadyMatching(t *testing.T) {
	s := &fakeSurface{displayW: 800, displayH: 600, ratio: 1, backingW: 800, backingH: 600}
	assert.False(t, Reconcile(s))
	assert.Zero(t, s.resizes)
}

func TestReconcileFollowsLayoutChanges(t *testing.T) {
	s := &fakeSurface{displayW: 800, displayH: 600, ratio: 1, backingW: 800, backingH: 600}

	s.displayW = 1024
	assert.True(t, Reconcile(s))
	assert.Equal(t, 1024, s.backingW)

	// Moving the window to a denser display changes only the ratio.
	s.ratio = 1.5
	assert.True(t, Reconcile(s))
	assert.Equal(t, 1536, s.backingW)
	assert.Equal(t, 900, s.backingH)

	assert.False(t, Reconcile(s))
	assert.Equal(t, 2, s.resizes)
}

func TestDescriptor(t *testing.T) {
	s := &fakeSurface{displayW: 801, displayH: 600, ratio: 1.5, backingW: 1201, backingH: 900}
	d := Describe(s)

	assert.False(t, d.NeedsResize())
	assert.InDelta(t, 1.335, d.Aspect(), 1e-3)

	assert.Equal(t, float32(1), Descriptor{DisplayWidth: 10}.Aspect())
}
