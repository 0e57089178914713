package game_object

import (
	"testing"

	"github.com/Carmen-Shannon/chipview/common"
	"github.com/chewxy/math32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIDsAreUnique(t *testing.T) {
	a, b := NewGameObject(), NewGameObject()
	assert.NotEqual(t, a.ID(), b.ID())
	assert.True(t, a.Enabled())
	sx, sy, sz := a.Scale()
	assert.Equal(t, []float32{1, 1, 1}, []float32{sx, sy, sz})
}

func TestWorldMatrixComposesParent(t *testing.T) {
	parent := NewGameObject(WithPosition(10, 0, 0), WithRotation(0, math32.Pi/2, 0))
	child := NewGameObject(WithPosition(1, 0, 0))
	parent.Add(child)

	p := child.WorldMatrix().MulPoint(0, 0, 0)
	// +X rotated a quarter turn about Y points to -Z.
	assert.InDelta(t, 10, p[0], 1e-5)
	assert.InDelta(t, -1, p[2], 1e-5)
}

func TestAddReparentsAndRejectsCycles(t *testing.T) {
	a, b, c := NewGameObject(), NewGameObject(), NewGameObject()
	a.Add(b)
	b.Add(c)

	c.Add(a) // cycle
	assert.Nil(t, a.Parent())

	a.Add(c)
	assert.Len(t, b.Children(), 0)
	require.Len(t, a.Children(), 2)
	assert.Same(t, a, c.Parent())

	a.Remove(b)
	assert.Nil(t, b.Parent())
	assert.Len(t, a.Children(), 1)
}

func TestTraverseSkipsDisabled(t *testing.T) {
	root := NewGameObject(WithPosition(0, 1, 0))
	shown := NewGameObject(WithName("shown"), WithPosition(0, 1, 0))
	hidden := NewGameObject(WithName("hidden"), WithEnabled(false))
	hidden.Add(NewGameObject(WithName("under-hidden")))
	root.Add(shown)
	root.Add(hidden)

	var names []string
	var shownWorld common.Mat4
	root.Traverse(func(obj GameObject, world common.Mat4) {
		names = append(names, obj.Name())
		if obj == shown {
			shownWorld = world
		}
	})
	assert.Equal(t, []string{"", "shown"}, names)
	assert.InDelta(t, 2, shownWorld.MulPoint(0, 0, 0)[1], 1e-6)
}
