package main

import (
	"encoding/json"
	"testing"

	"github.com/Carmen-Shannon/chipview/config"
	"github.com/Carmen-Shannon/chipview/engine/debugpanel"
	"github.com/Carmen-Shannon/chipview/engine/light"
	"github.com/Carmen-Shannon/chipview/engine/loader"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFeaturesFor(t *testing.T) {
	tests := []struct {
		variant int
		want    features
	}{
		{1, features{animate: true}},
		{2, features{controls: true}},
		{3, features{controls: true, panel: true}},
		{4, features{controls: true, panel: true, texture: true, ambient: true}},
	}
	for _, tt := range tests {
		got, err := featuresFor(tt.variant)
		require.NoError(t, err)
		assert.Equal(t, tt.want, got, "variant %d", tt.variant)
	}

	_, err := featuresFor(5)
	assert.Error(t, err)
}

func TestBuildSceneVariant1(t *testing.T) {
	f, _ := featuresFor(1)
	parts := buildScene(f, nil)

	assert.Equal(t, 2, parts.scene.Count(), "chip and grid at the root")
	require.Len(t, parts.chip.Children(), 1, "axes ride on the chip")
	assert.Equal(t, 3, len(parts.scene.DrawList()))
	assert.Len(t, parts.scene.Lights(), 1)
	assert.Nil(t, parts.ambient)
	assert.Equal(t, "#e5e5e5", parts.scene.Background().String())

	assert.Equal(t, [3]float32{-1, 2, 4}, parts.sun.Position())
	rx, ry, _ := parts.chip.Rotation()
	assert.Zero(t, rx)
	assert.Zero(t, ry)

	spin(parts.chip)(parts.scene, 1.25)
	rx, ry, rz := parts.chip.Rotation()
	assert.Equal(t, float32(1.25), rx)
	assert.Equal(t, float32(1.25), ry)
	assert.Zero(t, rz)
}

func TestBuildSceneFrozenAndTextured(t *testing.T) {
	l := loader.NewLoader(loader.WithWorkers(1))
	defer l.Close()
	tex, err := loadChipTexture(l, "")
	require.NoError(t, err)
	assert.Equal(t, uint32(256), tex.Width)

	f, _ := featuresFor(4)
	parts := buildScene(f, tex)

	rx, ry, _ := parts.chip.Rotation()
	assert.Equal(t, float32(frozenPose), rx)
	assert.Equal(t, float32(frozenPose), ry)
	assert.Same(t, tex, parts.chip.Material().DiffuseTexture())
	require.NotNil(t, parts.ambient)
	assert.Equal(t, light.LightTypeAmbient, parts.ambient.Type())
	assert.Len(t, parts.scene.Lights(), 2)
}

func TestRegisterControls(t *testing.T) {
	names := func(p debugpanel.Panel) []string {
		var out []string
		for _, c := range p.Snapshot() {
			out = append(out, c.Name)
		}
		return out
	}

	f3, _ := featuresFor(3)
	p3 := debugpanel.NewPanel()
	parts3 := buildScene(f3, nil)
	require.NoError(t, registerControls(p3, parts3, f3))
	assert.Equal(t, []string{"light color", "light intensity", "light x", "light y", "light z"}, names(p3))

	f4, _ := featuresFor(4)
	p4 := debugpanel.NewPanel()
	require.NoError(t, registerControls(p4, buildScene(f4, nil), f4))
	assert.Contains(t, names(p4), "ambient intensity")
	assert.Contains(t, names(p4), "chip roughness")
	assert.Contains(t, names(p4), "chip color")

	// A change made through the panel reaches the light on flush.
	require.NoError(t, p3.Apply("light x", json.RawMessage(`3`)))
	require.NoError(t, p3.Apply("light color", json.RawMessage(`"#ff0000"`)))
	p3.Flush()
	assert.Equal(t, float32(3), parts3.sun.Position()[0])
	assert.Equal(t, "#ff0000", parts3.sun.Color().String())
}

func TestLoadConfigVariantOverride(t *testing.T) {
	t.Setenv("CHIPVIEW_VARIANT", "2")

	cfg, err := loadConfig("", 0)
	require.NoError(t, err)
	assert.Equal(t, 2, cfg.Variant)

	cfg, err = loadConfig("", 4)
	require.NoError(t, err)
	assert.Equal(t, 4, cfg.Variant)

	_, err = loadConfig("", 9)
	assert.ErrorIs(t, err, config.ErrInvalid)
}
