package light

import (
	"encoding/binary"
	"math"
	"testing"

	"github.com/Carmen-Shannon/chipview/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDirectionPointsAtOrigin(t *testing.T) {
	l := NewDirectional(WithPosition(-1, 2, 4))
	d := l.Direction()
	want := common.Normalize3([3]float32{1, -2, -4})
	assert.InDeltaSlice(t, want[:], d[:], 1e-6)

	l.SetPosition(0, 0, 0)
	assert.Equal(t, [3]float32{0, -1, 0}, l.Direction())
}

func TestSetIntensityClampsNegative(t *testing.T) {
	l := NewDirectional(WithIntensity(-3))
	assert.Equal(t, float32(0), l.Intensity())
	l.SetIntensity(2.5)
	assert.Equal(t, float32(2.5), l.Intensity())
}

func TestPack(t *testing.T) {
	lights := []Light{
		NewAmbient(WithHexColor(0xFFFFFF), WithIntensity(0.5)),
		NewAmbient(WithHexColor(0xFF0000), WithIntensity(0.5)),
		NewDirectional(WithPosition(0, 10, 0), WithIntensity(3)),
		NewDirectional(WithEnabled(false)),
	}
	g := Pack(lights)

	assert.InDeltaSlice(t, []float32{1, 0.5, 0.5}, g.Ambient[:], 1e-6)
	require.Equal(t, uint32(1), g.Count)
	assert.Equal(t, [3]float32{0, -1, 0}, g.Directional[0].Direction)
	assert.Equal(t, float32(3), g.Directional[0].Intensity)
}

func TestPackCapsDirectionalSlots(t *testing.T) {
	var lights []Light
	for i := 0; i < MaxDirectionalLights+2; i++ {
		lights = append(lights, NewDirectional())
	}
	assert.Equal(t, uint32(MaxDirectionalLights), Pack(lights).Count)
}

func TestMarshalLayout(t *testing.T) {
	g := Pack([]Light{NewDirectional(WithPosition(1, 0, 0), WithIntensity(2), WithHexColor(0x00FF00))})
	buf := g.Marshal()
	require.Len(t, buf, 16+32*MaxDirectionalLights)

	assert.Equal(t, uint32(1), binary.LittleEndian.Uint32(buf[12:16]))
	assert.Equal(t, float32(-1), math.Float32frombits(binary.LittleEndian.Uint32(buf[16:20])))
	assert.Equal(t, float32(2), math.Float32frombits(binary.LittleEndian.Uint32(buf[28:32])))
	assert.Equal(t, float32(1), math.Float32frombits(binary.LittleEndian.Uint32(buf[36:40])))
}

func TestAccessors(t *testing.T) {
	l := NewDirectional(WithPosition(1, 2, 3))

	c := ColorAccessor{Light: l}
	require.NoError(t, c.Set("#ff8000"))
	assert.Equal(t, "#ff8000", c.Get())
	assert.Error(t, c.Set("nope"))
	assert.Equal(t, "#ff8000", c.Get())

	i := IntensityAccessor{Light: l}
	i.Set(4)
	assert.Equal(t, 4.0, i.Get())

	p := PositionAccessor{Light: l, Axis: AxisY}
	p.Set(-5)
	assert.Equal(t, [3]float32{1, -5, 3}, l.Position())
	assert.Equal(t, -5.0, p.Get())
}
