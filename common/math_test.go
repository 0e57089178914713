package common

import (
	"testing"

	"github.com/chewxy/math32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const tol = 1e-4

func assertMatEqual(t *testing.T, want, got Mat4) {
	t.Helper()
	for i := range want {
		assert.InDelta(t, want[i], got[i], tol, "element %d", i)
	}
}

func TestMulIdentity(t *testing.T) {
	m := Compose([3]float32{1, 2, 3}, [3]float32{0.3, -0.2, 1.1}, [3]float32{2, 1, 0.5})
	assertMatEqual(t, m, Identity4().Mul(m))
	assertMatEqual(t, m, m.Mul(Identity4()))
}

func TestInverse(t *testing.T) {
	m := Compose([3]float32{1, -4, 2}, [3]float32{0.5, 0.25, -0.75}, [3]float32{1.99, 0.1, 4.97})
	inv, ok := m.Inverse()
	require.True(t, ok)
	assertMatEqual(t, Identity4(), m.Mul(inv))

	_, ok = Mat4{}.Inverse()
	assert.False(t, ok)
}

func TestComposeTranslationOnly(t *testing.T) {
	m := Compose([3]float32{5, 6, 7}, [3]float32{}, [3]float32{1, 1, 1})
	p := m.MulPoint(1, 1, 1)
	assert.InDeltaSlice(t, []float32{6, 7, 8}, p[:], tol)
}

func TestComposeRotationY(t *testing.T) {
	m := Compose([3]float32{}, [3]float32{0, math32.Pi / 2, 0}, [3]float32{1, 1, 1})
	// +X rotates to -Z about the Y axis.
	p := m.MulPoint(1, 0, 0)
	assert.InDeltaSlice(t, []float32{0, 0, -1}, p[:], tol)
}

func TestLookAtMovesEyeToOrigin(t *testing.T) {
	eye := [3]float32{0, 0, 5}
	view := LookAt(eye, [3]float32{}, [3]float32{0, 1, 0})
	p := view.MulPoint(eye[0], eye[1], eye[2])
	assert.InDeltaSlice(t, []float32{0, 0, 0}, p[:], tol)

	// The target lies on the -Z axis in view space.
	target := view.MulPoint(0, 0, 0)
	assert.InDeltaSlice(t, []float32{0, 0, -5}, target[:], tol)
}

func TestLookAtDegenerateUp(t *testing.T) {
	view := LookAt([3]float32{0, 5, 0}, [3]float32{}, [3]float32{0, 1, 0})
	for i, v := range view {
		assert.False(t, math32.IsNaN(v), "element %d is NaN", i)
	}
}

func TestPerspectiveAspect(t *testing.T) {
	fov := DegToRad(75)
	wide := Perspective(fov, 2, 0.1, 100)
	square := Perspective(fov, 1, 0.1, 100)
	assert.InDelta(t, square[0]/2, wide[0], tol)
	assert.InDelta(t, square[5], wide[5], tol)
	assert.Equal(t, float32(-1), wide[11])
}

func TestClamp(t *testing.T) {
	assert.Equal(t, 0.0, Clamp(-1.0, 0, 1))
	assert.Equal(t, float32(1), Clamp(float32(3), 0, 1))
	assert.Equal(t, 0.5, Clamp(0.5, 0, 1))
}

func TestNormalize3Zero(t *testing.T) {
	assert.Equal(t, [3]float32{}, Normalize3([3]float32{}))
	n := Normalize3([3]float32{3, 0, 4})
	assert.InDelta(t, 1, Length3(n), tol)
}
