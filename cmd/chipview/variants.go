package main

import (
	"fmt"

	"github.com/Carmen-Shannon/chipview/common"
	"github.com/Carmen-Shannon/chipview/engine"
	"github.com/Carmen-Shannon/chipview/engine/debugpanel"
	"github.com/Carmen-Shannon/chipview/engine/game_object"
	"github.com/Carmen-Shannon/chipview/engine/light"
	"github.com/Carmen-Shannon/chipview/engine/model"
	"github.com/Carmen-Shannon/chipview/engine/renderer/material"
	"github.com/Carmen-Shannon/chipview/engine/scene"
)

// frozenPose is the chip rotation (radians, about X and Y) used once the
// viewer stops spinning it.
const frozenPose = 0.5

// features lists what each variant adds on top of the previous one.
type features struct {
	animate  bool
	controls bool
	panel    bool
	texture  bool
	ambient  bool
}

func featuresFor(variant int) (features, error) {
	switch variant {
	case 1:
		return features{animate: true}, nil
	case 2:
		return features{controls: true}, nil
	case 3:
		return features{controls: true, panel: true}, nil
	case 4:
		return features{controls: true, panel: true, texture: true, ambient: true}, nil
	default:
		return features{}, fmt.Errorf("unknown variant %d", variant)
	}
}

// sceneParts are the objects the panel and animator reach into.
type sceneParts struct {
	scene   scene.Scene
	chip    game_object.GameObject
	sun     light.Light
	ambient light.Light
}

// buildScene assembles the chip, its helpers and the lights for a variant.
// tex is only used when the variant is textured.
func buildScene(f features, tex *common.TextureStagingData) sceneParts {
	chipColor := common.ColorFromHex(0xF1FA98)
	matOpts := []material.MaterialBuilderOption{
		material.WithName("chip"),
		material.WithRoughness(0.8),
		material.WithMetalness(0.2),
	}
	if f.texture && tex != nil {
		chipColor = common.ColorFromHex(0xFFFFFF)
		matOpts = append(matOpts, material.WithDiffuseTexture(tex))
	}

	chipOpts := []game_object.GameObjectBuilderOption{game_object.WithName("chip")}
	if !f.animate {
		chipOpts = append(chipOpts, game_object.WithRotation(frozenPose, frozenPose, 0))
	}
	chip := game_object.NewMesh(model.NewBox(1.99, 0.1, 4.97), material.NewStandard(chipColor, matOpts...), chipOpts...)

	axes := game_object.NewMesh(model.NewAxes(1),
		material.NewLineBasic(material.WithDepthTest(false)),
		game_object.WithName("axes"),
		game_object.WithRenderOrder(1),
	)
	chip.Add(axes)

	grid := game_object.NewMesh(model.NewGrid(20, 10),
		material.NewLineBasic(),
		game_object.WithName("grid"),
	)

	sun := light.NewDirectional(light.WithHexColor(0xFFFFFF), light.WithIntensity(1), light.WithPosition(-1, 2, 4))
	parts := sceneParts{
		scene: scene.NewScene("chip",
			scene.WithBackground(common.ColorFromHex(0xE5E5E5)),
			scene.WithObjects(chip, grid),
			scene.WithLights(sun),
		),
		chip: chip,
		sun:  sun,
	}
	if f.ambient {
		parts.ambient = light.NewAmbient(light.WithHexColor(0x404040), light.WithIntensity(1))
		parts.scene.AddLight(parts.ambient)
	}
	return parts
}

// spin rotates the chip about X and Y by the animation time.
func spin(chip game_object.GameObject) engine.Animator {
	return func(_ scene.Scene, t float64) {
		chip.SetRotation(float32(t), float32(t), 0)
	}
}

// registerControls binds the panel to the light and, when textured, the
// chip material.
func registerControls(p debugpanel.Panel, parts sceneParts, f features) error {
	type number struct {
		name           string
		acc            debugpanel.NumberAccessor
		min, max, step float64
	}
	numbers := []number{
		{"light intensity", light.IntensityAccessor{Light: parts.sun}, 0, 3, 0.01},
		{"light x", light.PositionAccessor{Light: parts.sun, Axis: light.AxisX}, -10, 10, 0.1},
		{"light y", light.PositionAccessor{Light: parts.sun, Axis: light.AxisY}, -10, 10, 0.1},
		{"light z", light.PositionAccessor{Light: parts.sun, Axis: light.AxisZ}, -10, 10, 0.1},
	}
	colors := map[string]debugpanel.ColorAccessor{}
	order := []string{"light color"}
	colors["light color"] = light.ColorAccessor{Light: parts.sun}

	if f.ambient && parts.ambient != nil {
		numbers = append(numbers, number{"ambient intensity", light.IntensityAccessor{Light: parts.ambient}, 0, 3, 0.01})
		colors["ambient color"] = light.ColorAccessor{Light: parts.ambient}
		order = append(order, "ambient color")
	}
	if f.texture {
		mat := parts.chip.Material()
		numbers = append(numbers,
			number{"chip roughness", material.RoughnessAccessor{Material: mat}, 0, 1, 0.01},
			number{"chip metalness", material.MetalnessAccessor{Material: mat}, 0, 1, 0.01},
		)
		colors["chip color"] = material.ColorAccessor{Material: mat}
		order = append(order, "chip color")
	}

	for _, name := range order {
		if err := p.AddColor(name, colors[name]); err != nil {
			return err
		}
	}
	for _, n := range numbers {
		if err := p.AddNumber(n.name, n.acc, n.min, n.max, n.step); err != nil {
			return err
		}
	}
	return nil
}
