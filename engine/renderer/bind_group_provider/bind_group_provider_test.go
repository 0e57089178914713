package bind_group_provider

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMaterialStale(t *testing.T) {
	p := NewBindGroupProvider("chip")
	assert.Equal(t, "chip", p.Label())
	assert.True(t, p.MaterialStale(0), "never uploaded")

	p.MarkMaterialUploaded(3)
	assert.False(t, p.MaterialStale(3))
	assert.True(t, p.MaterialStale(4))
}

func TestReleaseEmptyProvider(t *testing.T) {
	p := NewBindGroupProvider("empty", WithMesh(nil, nil, 36), WithSharedTexture(nil))
	assert.Equal(t, 36, p.IndexCount())
	p.SetBuffer(0, nil)
	p.MarkMaterialUploaded(1)

	assert.NotPanics(t, p.Release)
	assert.Nil(t, p.Buffer(0))
	assert.Nil(t, p.TextureView())
	assert.Zero(t, p.IndexCount())
	assert.True(t, p.MaterialStale(1), "release forgets uploads")
}
