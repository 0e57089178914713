package engine

import (
	"github.com/Carmen-Shannon/chipview/engine/profiler"
)

// EngineBuilderOption is a functional option for configuring an Engine.
// Use the With* functions to create options that are applied directly to the engine instance.
type EngineBuilderOption func(*engine)

// WithProfiling enables or disables performance profiling output.
//
// Parameters:
//   - enabled: if true, enables performance profiling
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithProfiling(enabled bool) EngineBuilderOption {
	return func(e *engine) {
		e.profilingEnabled = enabled
	}
}

// WithProfiler replaces the default profiler.
//
// Parameters:
//   - p: the profiler to tick each frame while profiling is enabled
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithProfiler(p *profiler.Profiler) EngineBuilderOption {
	return func(e *engine) {
		e.profiler = p
	}
}

// WithTimeScale sets the factor from scheduler milliseconds to animation time.
// Values <= 0 are treated as the default (0.0005).
//
// Parameters:
//   - scale: animation time per millisecond
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithTimeScale(scale float64) EngineBuilderOption {
	return func(e *engine) {
		if scale <= 0 {
			scale = DefaultTimeScale
		}
		e.timeScale = scale
	}
}

// WithAnimator sets the function that mutates the scene every frame before it is drawn.
//
// Parameters:
//   - a: the animator, or nil for a static scene
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithAnimator(a Animator) EngineBuilderOption {
	return func(e *engine) {
		e.animator = a
	}
}

// WithPanel drains a debug panel's pending changes at the start of every frame.
//
// Parameters:
//   - p: the panel to flush
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithPanel(p Flusher) EngineBuilderOption {
	return WithFlusher(p)
}

// WithFlusher adds f to the flushers run in order at the start of every
// frame, after the surface is reconciled.
func WithFlusher(f Flusher) EngineBuilderOption {
	return func(e *engine) {
		if f != nil {
			e.flushers = append(e.flushers, f)
		}
	}
}

// WithControlsUpdate makes the engine call the viewer's orbit controls Update
// once per frame. Pointer input moves the camera either way; this only
// matters for damping.
//
// Parameters:
//   - enabled: if true, controls are updated every frame
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithControlsUpdate(enabled bool) EngineBuilderOption {
	return func(e *engine) {
		e.controlsEachFrame = enabled
	}
}

// WithStopOnPanic controls whether a panic inside a frame stops the loop (default true).
//
// Parameters:
//   - enabled: if false, the loop continues after logging the panic
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithStopOnPanic(enabled bool) EngineBuilderOption {
	return func(e *engine) {
		e.stopOnPanic = enabled
	}
}
