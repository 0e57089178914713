// Package config loads the viewer's settings: built-in defaults, then an
// optional TOML file, then CHIPVIEW_* environment variables.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/Carmen-Shannon/chipview/common"
	"github.com/caarlos0/env/v11"
	"github.com/pelletier/go-toml/v2"
)

// EnvPrefix is prepended to every environment variable name.
const EnvPrefix = "CHIPVIEW_"

// ErrInvalid is wrapped by every validation failure.
var ErrInvalid = errors.New("invalid config")

// Config is the complete viewer configuration.
type Config struct {
	// Variant selects which iteration of the viewer to run (1-4).
	Variant int `toml:"variant" env:"VARIANT"`

	Window   WindowConfig   `toml:"window" envPrefix:"WINDOW_"`
	Render   RenderConfig   `toml:"render" envPrefix:"RENDER_"`
	Controls ControlsConfig `toml:"controls" envPrefix:"CONTROLS_"`
	Panel    PanelConfig    `toml:"panel" envPrefix:"PANEL_"`
	Assets   AssetsConfig   `toml:"assets" envPrefix:"ASSETS_"`
	Log      LogConfig      `toml:"log" envPrefix:"LOG_"`
}

type WindowConfig struct {
	Title  string `toml:"title" env:"TITLE"`
	Width  int    `toml:"width" env:"WIDTH"`
	Height int    `toml:"height" env:"HEIGHT"`
}

type RenderConfig struct {
	VSync         bool    `toml:"vsync" env:"VSYNC"`
	MSAA          int     `toml:"msaa" env:"MSAA"`
	ForceSoftware bool    `toml:"force_software" env:"FORCE_SOFTWARE"`
	TimeScale     float64 `toml:"time_scale" env:"TIME_SCALE"`
	Profile       bool    `toml:"profile" env:"PROFILE"`
	// Background is the scene clear color as "#RRGGBB".
	Background common.Color `toml:"background" env:"BACKGROUND"`
}

type ControlsConfig struct {
	// UpdateEachFrame calls the orbit controls' Update once per frame in
	// addition to on pointer input. Only damping depends on it.
	UpdateEachFrame bool    `toml:"update_each_frame" env:"UPDATE_EACH_FRAME"`
	Damping         float64 `toml:"damping" env:"DAMPING"`
}

type PanelConfig struct {
	Addr string `toml:"addr" env:"ADDR"`
	// AllowAnyOrigin accepts websocket clients whose page was served from
	// another host.
	AllowAnyOrigin bool `toml:"allow_any_origin" env:"ALLOW_ANY_ORIGIN"`
}

type AssetsConfig struct {
	// ChipTexture is an image file for the chip. Empty uses the built-in texture.
	ChipTexture string `toml:"chip_texture" env:"CHIP_TEXTURE"`
	// WatchTexture reloads ChipTexture while the viewer runs whenever the
	// file is saved.
	WatchTexture bool `toml:"watch_texture" env:"WATCH_TEXTURE"`
}

type LogConfig struct {
	Level string `toml:"level" env:"LEVEL"`
}

// Default returns the configuration used when nothing overrides it.
func Default() Config {
	return Config{
		Variant: 1,
		Window: WindowConfig{
			Title:  "chipview",
			Width:  1280,
			Height: 720,
		},
		Render: RenderConfig{
			VSync:      true,
			MSAA:       4,
			TimeScale:  0.0005,
			Background: common.ColorFromHex(0xE5E5E5),
		},
		Panel: PanelConfig{
			Addr: "127.0.0.1:8090",
		},
		Log: LogConfig{
			Level: "info",
		},
	}
}

// LoadOption adjusts how Load reads its sources.
type LoadOption func(*loadOptions)

type loadOptions struct {
	environment map[string]string
}

// WithEnvironment reads overrides from environ instead of the process environment.
//
// Parameters:
//   - environ: variable name to value
//
// Returns:
//   - LoadOption: option function to apply
func WithEnvironment(environ map[string]string) LoadOption {
	return func(o *loadOptions) {
		o.environment = environ
	}
}

// Load builds a Config from the defaults, the TOML file at path (skipped when
// path is empty) and the environment, in that order of increasing
// precedence, and validates the result.
//
// Parameters:
//   - path: the TOML file, or ""
//   - options: variadic list of LoadOption functions
//
// Returns:
//   - Config: the merged configuration
//   - error: a read, parse or validation error
func Load(path string, options ...LoadOption) (Config, error) {
	o := loadOptions{}
	for _, opt := range options {
		opt(&o)
	}

	cfg := Default()
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
		if err := Decode(data, &cfg); err != nil {
			return Config{}, fmt.Errorf("parse %s: %w", path, err)
		}
	}

	envOpts := env.Options{Prefix: EnvPrefix}
	if o.environment != nil {
		envOpts.Environment = o.environment
	}
	if err := env.ParseWithOptions(&cfg, envOpts); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Decode merges TOML data into cfg. Unknown keys are rejected so typos do
// not silently fall back to defaults.
func Decode(data []byte, cfg *Config) error {
	dec := toml.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	return dec.Decode(cfg)
}

// Encode renders cfg as TOML.
func Encode(cfg Config) ([]byte, error) {
	return toml.Marshal(cfg)
}

// Validate reports every invalid field, each wrapping ErrInvalid.
func (c Config) Validate() error {
	var errs []error
	invalid := func(format string, args ...any) {
		errs = append(errs, fmt.Errorf("%w: %s", ErrInvalid, fmt.Sprintf(format, args...)))
	}

	if c.Variant < 1 || c.Variant > 4 {
		invalid("variant %d not in 1..4", c.Variant)
	}
	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		invalid("window size %dx%d must be positive", c.Window.Width, c.Window.Height)
	}
	if c.Render.MSAA != 1 && c.Render.MSAA != 4 {
		invalid("msaa %d must be 1 or 4", c.Render.MSAA)
	}
	if c.Render.TimeScale <= 0 {
		invalid("time_scale %g must be positive", c.Render.TimeScale)
	}
	if c.Controls.Damping < 0 || c.Controls.Damping > 1 {
		invalid("controls damping %g not in [0, 1]", c.Controls.Damping)
	}
	if c.Assets.WatchTexture && c.Assets.ChipTexture == "" {
		invalid("watch_texture needs assets.chip_texture")
	}
	if c.Panel.Addr == "" {
		invalid("panel addr is empty")
	}
	if _, err := c.Log.SlogLevel(); err != nil {
		invalid("log level %q", c.Log.Level)
	}
	return errors.Join(errs...)
}

// UpdateControlsEachFrame reports whether the frame driver must call the
// orbit controls' Update every frame. Damping releases only a fraction of
// each input per Update, so it forces the per-frame call.
func (c ControlsConfig) UpdateControlsEachFrame() bool {
	return c.UpdateEachFrame || c.Damping > 0
}

// SlogLevel parses Level ("debug", "info", "warn", "error").
func (l LogConfig) SlogLevel() (slog.Level, error) {
	var level slog.Level
	err := level.UnmarshalText([]byte(l.Level))
	return level, err
}
