package engine

import (
	"fmt"
	"sync"

	"github.com/Carmen-Shannon/chipview/engine/profiler"
	"github.com/Carmen-Shannon/chipview/engine/scene"
	"github.com/Carmen-Shannon/chipview/engine/surface"
)

// DefaultTimeScale converts scheduler timestamps (milliseconds) into
// animation time.
const DefaultTimeScale = 0.0005

// FrameCallback receives a monotonic timestamp in milliseconds.
type FrameCallback = func(timestamp float64)

// Scheduler runs a callback once, at the next display refresh.
// window.Window implements it.
type Scheduler interface {
	RequestFrame(cb FrameCallback)
}

// Animator mutates the scene before it is drawn. t is the animation time.
type Animator func(s scene.Scene, t float64)

// Flusher applies changes queued from other goroutines. debugpanel.Panel
// and loader.Watcher implement it.
type Flusher interface {
	Flush() int
}

// engine implements the Engine interface.
type engine struct {
	mu *sync.Mutex

	viewer    Viewer
	scheduler Scheduler

	running    bool
	generation uint64
	frames     uint64
	animTime   float64

	timeScale         float64
	animator          Animator
	flushers          []Flusher
	controlsEachFrame bool
	profiler          *profiler.Profiler
	profilingEnabled  bool
	stopOnPanic       bool
}

// Engine is the frame driver. Each tick reconciles the surface size, keeps
// the camera aspect in step with it, advances animation time, draws the scene
// and asks the Scheduler for the next frame while running.
type Engine interface {
	// Start schedules the first frame and marks the engine running.
	// Calling Start on a running engine does nothing.
	Start()

	// Stop clears the running flag. A frame already scheduled still runs but
	// does not schedule another.
	Stop()

	// Running reports whether the engine reschedules itself.
	Running() bool

	// Frames returns the number of ticks executed so far.
	Frames() uint64

	// AnimationTime returns the last tick's timestamp multiplied by the time scale.
	AnimationTime() float64

	// Tick runs one frame. It is normally invoked by the Scheduler.
	//
	// Parameters:
	//   - timestamp: monotonic time in milliseconds
	Tick(timestamp float64)

	// Viewer returns the objects the engine drives.
	Viewer() Viewer

	// EnableProfiler enables performance statistics in the log.
	EnableProfiler()

	// DisableProfiler disables performance statistics.
	DisableProfiler()
}

var _ Engine = &engine{}

// NewEngine creates a frame driver for v that schedules itself on s.
//
// Parameters:
//   - v: the viewer to drive
//   - s: the scheduler frames are requested from
//   - options: functional options for engine configuration
//
// Returns:
//   - Engine: the newly created engine, not yet started
func NewEngine(v Viewer, s Scheduler, options ...EngineBuilderOption) Engine {
	e := &engine{
		mu:          &sync.Mutex{},
		viewer:      v,
		scheduler:   s,
		timeScale:   DefaultTimeScale,
		stopOnPanic: true,
	}
	for _, opt := range options {
		opt(e)
	}
	if e.profiler == nil {
		e.profiler = profiler.NewProfiler(profiler.WithLogger(Logger()))
	}
	return e
}

func (e *engine) Start() {
	e.mu.Lock()
	if e.running {
		e.mu.Unlock()
		return
	}
	e.running = true
	e.generation++
	gen := e.generation
	e.mu.Unlock()

	Logger().Info("engine started")
	e.schedule(gen)
}

func (e *engine) Stop() {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.running {
		e.running = false
		Logger().Info("engine stopped", "frames", e.frames)
	}
}

func (e *engine) Running() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.running
}

func (e *engine) Frames() uint64 {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.frames
}

func (e *engine) AnimationTime() float64 {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.animTime
}

func (e *engine) Viewer() Viewer {
	return e.viewer
}

func (e *engine) EnableProfiler() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.profilingEnabled = true
}

func (e *engine) DisableProfiler() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.profilingEnabled = false
}

// schedule requests a frame tagged with the Start generation it belongs to.
// Callbacks from an earlier generation are dropped so Stop followed by Start
// never leaves two loops running.
func (e *engine) schedule(gen uint64) {
	e.scheduler.RequestFrame(func(timestamp float64) {
		e.mu.Lock()
		stale := gen != e.generation
		e.mu.Unlock()
		if stale {
			return
		}
		e.Tick(timestamp)

		e.mu.Lock()
		again := e.running && gen == e.generation
		e.mu.Unlock()
		if again {
			e.schedule(gen)
		}
	})
}

func (e *engine) Tick(timestamp float64) {
	e.mu.Lock()
	e.frames++
	frame := e.frames
	e.animTime = timestamp * e.timeScale
	t := e.animTime
	profiling := e.profilingEnabled
	e.mu.Unlock()

	defer e.recoverFrame(frame)

	v := e.viewer
	if v.Surface != nil && surface.Reconcile(v.Surface) {
		d := surface.Describe(v.Surface)
		Logger().Debug("surface resized", "frame", frame,
			"width", d.BackingWidth, "height", d.BackingHeight, "ratio", d.PixelRatio)
		if v.Camera != nil {
			v.Camera.SetAspect(d.Aspect())
			v.Camera.UpdateProjectionMatrix()
		}
	}

	for _, f := range e.flushers {
		f.Flush()
	}
	if e.controlsEachFrame && v.Controls != nil {
		v.Controls.Update()
	}
	if e.animator != nil && v.Scene != nil {
		e.animator(v.Scene, t)
	}

	if v.Renderer != nil && v.Scene != nil && v.Camera != nil {
		if err := v.Renderer.Render(v.Scene, v.Camera); err != nil {
			Logger().Warn("draw failed", "frame", frame, "err", err)
		}
	}

	if profiling && e.profiler != nil {
		e.profiler.Tick()
	}
}

// recoverFrame turns a panic inside a frame into an error log and, unless
// disabled, stops the loop.
func (e *engine) recoverFrame(frame uint64) {
	r := recover()
	if r == nil {
		return
	}
	Logger().Error("frame panicked", "frame", frame, "err", fmt.Errorf("%v", r))
	if e.stopOnPanic {
		e.Stop()
	}
}
