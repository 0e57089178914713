package material

import "github.com/Carmen-Shannon/chipview/common"

// ColorAccessor exposes a material's color as a hex string for the debug panel.
type ColorAccessor struct {
	Material Material
}

func (a ColorAccessor) Get() string {
	return a.Material.Color().String()
}

func (a ColorAccessor) Set(hex string) error {
	c, err := common.ParseColor(hex)
	if err != nil {
		return err
	}
	a.Material.SetColor(c)
	return nil
}

// RoughnessAccessor exposes roughness as a number.
type RoughnessAccessor struct {
	Material Material
}

func (a RoughnessAccessor) Get() float64  { return float64(a.Material.Roughness()) }
func (a RoughnessAccessor) Set(v float64) { a.Material.SetRoughness(float32(v)) }

// MetalnessAccessor exposes metalness as a number.
type MetalnessAccessor struct {
	Material Material
}

func (a MetalnessAccessor) Get() float64  { return float64(a.Material.Metalness()) }
func (a MetalnessAccessor) Set(v float64) { a.Material.SetMetalness(float32(v)) }
