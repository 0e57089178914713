// Command chipview shows a lit, orbitable 3D chip.
//
// Usage:
//
//	chipview [-config chipview.toml] [-variant 1-4]
//
// Variant 1 spins the chip. Variant 2 freezes the pose and adds orbit
// controls (left drag rotates, right drag pans, scroll zooms). Variant 3
// serves a debug panel for the light at http://127.0.0.1:8090. Variant 4
// textures the chip, adds an ambient light and exposes the material; with
// assets.watch_texture set it reloads the texture file whenever it is saved.
package main

import (
	"bytes"
	"context"
	_ "embed"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/Carmen-Shannon/chipview/common"
	"github.com/Carmen-Shannon/chipview/config"
	"github.com/Carmen-Shannon/chipview/engine"
	"github.com/Carmen-Shannon/chipview/engine/camera"
	"github.com/Carmen-Shannon/chipview/engine/debugpanel"
	"github.com/Carmen-Shannon/chipview/engine/loader"
	"github.com/Carmen-Shannon/chipview/engine/renderer"
	"github.com/Carmen-Shannon/chipview/engine/window"
)

//go:embed assets/chip.png
var builtinChipTexture []byte

func main() {
	configPath := flag.String("config", "", "path to a TOML config file")
	variant := flag.Int("variant", 0, "viewer variant 1-4 (overrides the config)")
	flag.Parse()

	if err := run(*configPath, *variant); err != nil {
		fmt.Fprintln(os.Stderr, "chipview:", err)
		os.Exit(1)
	}
}

func loadConfig(path string, variant int) (config.Config, error) {
	cfg, err := config.Load(path)
	if err != nil {
		return config.Config{}, err
	}
	if variant != 0 {
		cfg.Variant = variant
		if err := cfg.Validate(); err != nil {
			return config.Config{}, err
		}
	}
	return cfg, nil
}

func run(configPath string, variant int) error {
	cfg, err := loadConfig(configPath, variant)
	if err != nil {
		return err
	}
	level, err := cfg.Log.SlogLevel()
	if err != nil {
		return err
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	engine.SetLogger(logger)

	feat, err := featuresFor(cfg.Variant)
	if err != nil {
		return err
	}
	logger.Info("starting", "variant", cfg.Variant)

	// ── Assets ──────────────────────────────────────────────────────
	textures := loader.NewLoader()
	defer textures.Close()

	var chipTexture *common.TextureStagingData
	if feat.texture {
		chipTexture, err = loadChipTexture(textures, cfg.Assets.ChipTexture)
		if err != nil {
			return err
		}
	}

	// ── Window + Renderer ───────────────────────────────────────────
	win, err := window.NewWindow(
		window.WithTitle(cfg.Window.Title),
		window.WithSize(cfg.Window.Width, cfg.Window.Height),
		window.WithMinSize(320, 200),
	)
	if err != nil {
		return err
	}
	defer win.Close()

	presentMode := renderer.PresentModeVSync
	if !cfg.Render.VSync {
		presentMode = renderer.PresentModeUncapped
	}
	r, err := renderer.NewRenderer(win,
		renderer.WithPresentMode(presentMode),
		renderer.WithMSAA(renderer.MSAASampleCount(cfg.Render.MSAA)),
		renderer.WithForceSoftwareRenderer(cfg.Render.ForceSoftware),
		renderer.WithLogger(logger),
	)
	if err != nil {
		return err
	}
	defer r.Release()

	// ── Scene + Camera ──────────────────────────────────────────────
	parts := buildScene(feat, chipTexture)
	parts.scene.SetBackground(cfg.Render.Background)

	dw, dh := win.DisplaySize()
	aspect := float32(1)
	if dh > 0 {
		aspect = float32(dw / dh)
	}
	cam := camera.NewCamera(
		camera.WithFovDegrees(75),
		camera.WithAspect(aspect),
		camera.WithClipPlanes(0.1, 100),
		camera.WithPosition(0, 0, 5),
	)

	var controls camera.OrbitControls
	if feat.controls {
		opts := []camera.OrbitControlsOption{camera.WithOrbitTarget(0, 0, 0)}
		if cfg.Controls.Damping > 0 {
			opts = append(opts, camera.WithDamping(float32(cfg.Controls.Damping)))
		}
		controls = camera.NewOrbitControls(cam, opts...)
		controls.Bind(win)
	}

	viewer := engine.Viewer{
		Scene:    parts.scene,
		Camera:   cam,
		Renderer: r,
		Controls: controls,
		Surface:  engine.NewSurface(win, r),
	}

	engineOpts := []engine.EngineBuilderOption{
		engine.WithTimeScale(cfg.Render.TimeScale),
		engine.WithProfiling(cfg.Render.Profile),
		engine.WithControlsUpdate(cfg.Controls.UpdateControlsEachFrame()),
	}
	if feat.animate {
		engineOpts = append(engineOpts, engine.WithAnimator(spin(parts.chip)))
	}

	// ── Debug panel ─────────────────────────────────────────────────
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	if feat.panel {
		panel := debugpanel.NewPanel(debugpanel.WithTitle(fmt.Sprintf("chipview v%d", cfg.Variant)))
		if err := registerControls(panel, parts, feat); err != nil {
			return err
		}
		srvOpts := []debugpanel.ServerBuilderOption{debugpanel.WithAddr(cfg.Panel.Addr), debugpanel.WithLogger(logger)}
		if cfg.Panel.AllowAnyOrigin {
			srvOpts = append(srvOpts, debugpanel.WithAllowAnyOrigin())
		}
		srv := debugpanel.NewServer(panel, srvOpts...)
		go func() {
			if err := srv.ListenAndServe(ctx); err != nil {
				logger.Error("debug panel stopped", "err", err)
			}
		}()
		engineOpts = append(engineOpts, engine.WithPanel(panel))
	}

	// ── Texture hot reload ──────────────────────────────────────────
	if feat.texture && cfg.Assets.WatchTexture {
		chipMaterial := parts.chip.Material()
		w, err := loader.NewWatcher(textures, cfg.Assets.ChipTexture, chipMaterial.SetDiffuseTexture,
			loader.WithWatchLogger(logger))
		if err != nil {
			return err
		}
		defer w.Close()
		go func() {
			if err := w.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
				logger.Error("texture watcher stopped", "err", err)
			}
		}()
		engineOpts = append(engineOpts, engine.WithFlusher(w))
	}

	// ── Run ─────────────────────────────────────────────────────────
	eng := engine.NewEngine(viewer, win, engineOpts...)
	eng.Start()
	win.ProcessMessages()
	eng.Stop()
	return nil
}

// loadChipTexture decodes path, or the built-in texture when path is empty.
func loadChipTexture(l loader.Loader, path string) (*common.TextureStagingData, error) {
	if path == "" {
		return l.LoadReader("builtin:chip", ".png", bytes.NewReader(builtinChipTexture))
	}
	textures, err := l.LoadAll(path)
	if err != nil {
		return nil, err
	}
	return textures[path], nil
}
