package camera

import (
	"testing"

	"github.com/Carmen-Shannon/chipview/common"
	"github.com/stretchr/testify/assert"
)

func TestNewCameraProjectionUpToDate(t *testing.T) {
	c := NewCamera(WithAspect(2), WithFovDegrees(60), WithClipPlanes(0.5, 50))

	assert.False(t, c.ProjectionDirty())
	want := common.Perspective(common.DegToRad(60), 2, 0.5, 50)
	assert.Equal(t, want, c.ProjectionMatrix())
}

func TestBuilderIgnoresInvalidProjection(t *testing.T) {
	c := NewCamera(WithFovDegrees(180), WithAspect(0), WithClipPlanes(1, 1))

	assert.Equal(t, common.DegToRad(75), c.Fov())
	assert.Equal(t, float32(1), c.Aspect())
	assert.Equal(t, common.Perspective(common.DegToRad(75), 1, 0.1, 100), c.ProjectionMatrix())
}

func TestSetAspectMarksDirty(t *testing.T) {
	c := NewCamera()
	before := c.ProjectionMatrix()

	c.SetAspect(4.0 / 3.0)
	assert.True(t, c.ProjectionDirty())
	assert.Equal(t, before, c.ProjectionMatrix(), "projection must not change until updated")

	c.UpdateProjectionMatrix()
	assert.False(t, c.ProjectionDirty())
	assert.NotEqual(t, before, c.ProjectionMatrix())
}

func TestViewProjectionRecomputesDirtyProjection(t *testing.T) {
	c := NewCamera()
	c.SetAspect(3)
	vp := c.ViewProjectionMatrix()

	assert.False(t, c.ProjectionDirty())
	assert.Equal(t, c.ProjectionMatrix().Mul(c.ViewMatrix()), vp)
}

func TestLookAt(t *testing.T) {
	c := NewCamera(WithPosition(0, 0, 5))
	c.LookAt(0, 0, 0)
	p := c.ViewMatrix().MulPoint(0, 0, 0)
	assert.InDelta(t, -5, p[2], 1e-5)
	assert.Equal(t, [3]float32{}, c.Target())
}
