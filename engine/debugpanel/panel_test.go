package debugpanel

import (
	"encoding/json"
	"testing"

	"github.com/Carmen-Shannon/chipview/common"
	"github.com/Carmen-Shannon/chipview/engine/light"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type number struct{ v float64 }

func (n *number) Get() float64  { return n.v }
func (n *number) Set(v float64) { n.v = v }

func newTestPanel(t *testing.T) (Panel, *number, light.Light) {
	t.Helper()
	p := NewPanel(WithTitle("test"))
	intensity := &number{v: 1}
	sun := light.NewDirectional(light.WithColor(common.ColorFromHex(0xffffff)))
	require.NoError(t, p.AddNumber("intensity", intensity, 0, 2, 0.01))
	require.NoError(t, p.AddColor("color", light.ColorAccessor{Light: sun}))
	return p, intensity, sun
}

func TestAddControls(t *testing.T) {
	p, _, _ := newTestPanel(t)
	assert.Equal(t, "test", p.Title())

	snap := p.Snapshot()
	require.Len(t, snap, 2)
	assert.Equal(t, Control{Name: "intensity", Kind: KindNumber, Value: 1.0, Min: 0, Max: 2, Step: 0.01}, snap[0])
	assert.Equal(t, Control{Name: "color", Kind: KindColor, Value: "#ffffff"}, snap[1])

	assert.Error(t, p.AddNumber("intensity", &number{}, 0, 1, 0), "duplicate name")
	assert.Error(t, p.AddNumber("empty", &number{}, 1, 0, 0), "empty range")
	assert.Error(t, p.AddNumber("", &number{}, 0, 1, 0), "empty name")
}

func TestAddNumberClampsInitialValue(t *testing.T) {
	p := NewPanel()
	require.NoError(t, p.AddNumber("x", &number{v: 50}, -10, 10, 0.1))
	c, ok := p.Control("x")
	require.True(t, ok)
	assert.Equal(t, 10.0, c.Value)
}

func TestApplyIsDeferredUntilFlush(t *testing.T) {
	p, intensity, _ := newTestPanel(t)

	require.NoError(t, p.Apply("intensity", json.RawMessage(`1.5`)))
	c, _ := p.Control("intensity")
	assert.Equal(t, 1.5, c.Value, "the control reflects the queued value")
	assert.Equal(t, 1.0, intensity.v, "the accessor is untouched before Flush")

	assert.Equal(t, 1, p.Flush())
	assert.Equal(t, 1.5, intensity.v)
	assert.Zero(t, p.Flush(), "the queue is drained")
}

func TestApplyClampsNumbers(t *testing.T) {
	tests := []struct {
		name  string
		value string
		want  float64
	}{
		{"in range", `0.25`, 0.25},
		{"above max", `5`, 2},
		{"below min", `-3`, 0},
		{"at max", `2`, 2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, intensity, _ := newTestPanel(t)
			require.NoError(t, p.Apply("intensity", json.RawMessage(tt.value)))
			p.Flush()
			assert.Equal(t, tt.want, intensity.v)
		})
	}
}

func TestApplyRejects(t *testing.T) {
	tests := []struct {
		name    string
		control string
		value   string
		want    error
	}{
		{"unknown control", "nope", `1`, ErrUnknownControl},
		{"string for number", "intensity", `"high"`, ErrInvalidValue},
		{"missing value", "intensity", ``, ErrInvalidValue},
		{"number for color", "color", `12`, ErrInvalidValue},
		{"bad hex", "color", `"#zzzzzz"`, ErrInvalidValue},
		{"short hex", "color", `"#12"`, ErrInvalidValue},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, intensity, sun := newTestPanel(t)
			err := p.Apply(tt.control, json.RawMessage(tt.value))
			assert.ErrorIs(t, err, tt.want)

			assert.Zero(t, p.Flush())
			assert.Equal(t, 1.0, intensity.v)
			assert.Equal(t, "#ffffff", sun.Color().String())
		})
	}
}

func TestColorRoundTrip(t *testing.T) {
	p, _, sun := newTestPanel(t)

	require.NoError(t, p.Apply("color", json.RawMessage(`"#F80"`)))
	c, _ := p.Control("color")
	assert.Equal(t, "#ff8800", c.Value)

	assert.Equal(t, 1, p.Flush())
	assert.Equal(t, "#ff8800", sun.Color().String())
	assert.Equal(t, "#ff8800", light.ColorAccessor{Light: sun}.Get())
}

func TestFlushAppliesInOrder(t *testing.T) {
	p, intensity, _ := newTestPanel(t)
	require.NoError(t, p.Apply("intensity", json.RawMessage(`0.5`)))
	require.NoError(t, p.Apply("intensity", json.RawMessage(`0.75`)))
	assert.Equal(t, 2, p.Flush())
	assert.Equal(t, 0.75, intensity.v)
}

func TestZeroBoundsAreSerialized(t *testing.T) {
	p := NewPanel()
	require.NoError(t, p.AddNumber("offset", &number{v: -5}, -10, 0, 1))
	require.NoError(t, p.AddNumber("gain", &number{v: 1}, 0, 2, 0.1))

	data, err := json.Marshal(p.Snapshot())
	require.NoError(t, err)
	var controls []map[string]any
	require.NoError(t, json.Unmarshal(data, &controls))
	require.Len(t, controls, 2)

	assert.Equal(t, -10.0, controls[0]["min"])
	assert.Contains(t, controls[0], "max")
	assert.Equal(t, 0.0, controls[0]["max"])
	assert.Contains(t, controls[1], "min")
	assert.Equal(t, 0.0, controls[1]["min"])
}
