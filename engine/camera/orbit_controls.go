package camera

import (
	"sync"

	"github.com/Carmen-Shannon/chipview/common"
	"github.com/chewxy/math32"
)

// Mouse buttons reported by a PointerSource.
const (
	MouseButtonLeft   = 0
	MouseButtonRight  = 1
	MouseButtonMiddle = 2
)

// PointerSource delivers pointer input for OrbitControls.
// The window package implements it; tests use a fake.
type PointerSource interface {
	// SetMouseButtonCallback registers the handler for button presses and releases.
	SetMouseButtonCallback(callback func(button int, pressed bool, x, y float64))

	// SetMouseMoveCallback registers the handler for pointer motion.
	SetMouseMoveCallback(callback func(x, y float64))

	// SetScrollCallback registers the handler for wheel input (positive = zoom in).
	SetScrollCallback(callback func(delta float32))

	// DisplaySize returns the logical size of the input area.
	DisplaySize() (width, height float64)
}

type dragMode int

const (
	dragNone dragMode = iota
	dragRotate
	dragPan
)

// orbitControlsImpl keeps the camera on a sphere around a target point.
// Input accumulates pending deltas; Update applies them to the camera.
type orbitControlsImpl struct {
	mu *sync.Mutex

	camera Camera
	source PointerSource

	target [3]float32

	radius    float32
	azimuth   float32 // around +Y, 0 = +Z
	elevation float32 // from the XZ plane

	minRadius    float32
	maxRadius    float32
	minElevation float32
	maxElevation float32

	rotateSpeed float32
	panSpeed    float32
	zoomSpeed   float32

	enabled       bool
	enableDamping bool
	dampingFactor float32

	// pending input
	deltaAzimuth   float32
	deltaElevation float32
	panOffset      [3]float32
	scale          float32

	drag         dragMode
	lastX, lastY float64
}

// OrbitControls rotates, pans and zooms a Camera around a target point.
//
// Pointer handlers installed by Bind apply input immediately through Update,
// so calling Update once per frame is only required when damping is enabled.
type OrbitControls interface {
	// Target returns the orbit pivot.
	Target() [3]float32

	// SetTarget moves the orbit pivot and re-aims the camera on the next Update.
	//
	// Parameters:
	//   - x, y, z: world-space pivot
	SetTarget(x, y, z float32)

	// Radius returns the distance from the camera to the target.
	Radius() float32

	// Azimuth returns the horizontal orbit angle in radians.
	Azimuth() float32

	// Elevation returns the vertical orbit angle in radians.
	Elevation() float32

	// Enabled reports whether the controls react to input.
	Enabled() bool

	// SetEnabled turns input handling on or off.
	//
	// Parameters:
	//   - enabled: true to react to input
	SetEnabled(enabled bool)

	// Rotate queues an orbit by a pointer drag distance in logical pixels.
	//
	// Parameters:
	//   - dx, dy: drag distance
	Rotate(dx, dy float64)

	// Pan queues a translation of camera and target by a drag distance in logical pixels.
	//
	// Parameters:
	//   - dx, dy: drag distance
	Pan(dx, dy float64)

	// Zoom queues a dolly toward (positive) or away from (negative) the target.
	//
	// Parameters:
	//   - delta: wheel steps
	Zoom(delta float32)

	// Update applies pending input to the camera.
	//
	// Returns:
	//   - bool: true if the camera moved
	Update() bool

	// Bind installs pointer handlers on source.
	//
	// Parameters:
	//   - source: the input source to listen to
	Bind(source PointerSource)
}

var _ OrbitControls = &orbitControlsImpl{}

// NewOrbitControls creates orbit controls for cam. The initial orbit is
// derived from the camera's position and the configured target.
//
// Parameters:
//   - cam: the camera to drive
//   - options: functional options to configure the controls
//
// Returns:
//   - OrbitControls: the newly created controls
func NewOrbitControls(cam Camera, options ...OrbitControlsOption) OrbitControls {
	oc := &orbitControlsImpl{
		mu:           &sync.Mutex{},
		camera:       cam,
		target:       cam.Target(),
		minRadius:    0.5,
		maxRadius:    50,
		minElevation: -math32.Pi/2 + 0.01,
		maxElevation: math32.Pi/2 - 0.01,

		rotateSpeed:   1,
		panSpeed:      1,
		zoomSpeed:     1,
		enabled:       true,
		dampingFactor: 0.05,
		scale:         1,
	}
	for _, option := range options {
		option(oc)
	}

	offset := common.Sub3(cam.Position(), oc.target)
	oc.radius = common.Clamp(common.Length3(offset), oc.minRadius, oc.maxRadius)
	if oc.radius > 0 {
		oc.azimuth = math32.Atan2(offset[0], offset[2])
		oc.elevation = common.Clamp(math32.Asin(common.Clamp(offset[1]/common.Length3(offset), -1, 1)), oc.minElevation, oc.maxElevation)
	}
	oc.apply()
	return oc
}

func (oc *orbitControlsImpl) Target() [3]float32 {
	oc.mu.Lock()
	defer oc.mu.Unlock()
	return oc.target
}

func (oc *orbitControlsImpl) SetTarget(x, y, z float32) {
	oc.mu.Lock()
	defer oc.mu.Unlock()
	oc.target = [3]float32{x, y, z}
}

func (oc *orbitControlsImpl) Radius() float32 {
	oc.mu.Lock()
	defer oc.mu.Unlock()
	return oc.radius
}

func (oc *orbitControlsImpl) Azimuth() float32 {
	oc.mu.Lock()
	defer oc.mu.Unlock()
	return oc.azimuth
}

func (oc *orbitControlsImpl) Elevation() float32 {
	oc.mu.Lock()
	defer oc.mu.Unlock()
	return oc.elevation
}

func (oc *orbitControlsImpl) Enabled() bool {
	oc.mu.Lock()
	defer oc.mu.Unlock()
	return oc.enabled
}

func (oc *orbitControlsImpl) SetEnabled(enabled bool) {
	oc.mu.Lock()
	defer oc.mu.Unlock()
	oc.enabled = enabled
	if !enabled {
		oc.drag = dragNone
	}
}

func (oc *orbitControlsImpl) Rotate(dx, dy float64) {
	oc.mu.Lock()
	defer oc.mu.Unlock()
	h := oc.viewportHeight()
	// A drag across the full viewport height is one full turn.
	oc.deltaAzimuth -= 2 * math32.Pi * float32(dx/h) * oc.rotateSpeed
	oc.deltaElevation += 2 * math32.Pi * float32(dy/h) * oc.rotateSpeed
}

func (oc *orbitControlsImpl) Pan(dx, dy float64) {
	oc.mu.Lock()
	defer oc.mu.Unlock()

	// Scale so the point under the cursor at target depth follows the pointer.
	h := oc.viewportHeight()
	targetDistance := oc.radius * math32.Tan(oc.camera.Fov()/2)
	sx := -2 * float32(dx/h) * targetDistance * oc.panSpeed
	sy := 2 * float32(dy/h) * targetDistance * oc.panSpeed

	view := oc.camera.ViewMatrix()
	right := [3]float32{view[0], view[4], view[8]}
	up := [3]float32{view[1], view[5], view[9]}
	for i := 0; i < 3; i++ {
		oc.panOffset[i] += right[i]*sx + up[i]*sy
	}
}

func (oc *orbitControlsImpl) Zoom(delta float32) {
	oc.mu.Lock()
	defer oc.mu.Unlock()
	oc.scale *= math32.Pow(0.95, delta*oc.zoomSpeed)
}

func (oc *orbitControlsImpl) Update() bool {
	oc.mu.Lock()
	defer oc.mu.Unlock()

	f := float32(1)
	if oc.enableDamping {
		f = oc.dampingFactor
	}

	oc.azimuth += oc.deltaAzimuth * f
	oc.elevation = common.Clamp(oc.elevation+oc.deltaElevation*f, oc.minElevation, oc.maxElevation)
	for i := 0; i < 3; i++ {
		oc.target[i] += oc.panOffset[i] * f
	}
	// Interpolate the zoom in log space so damping converges to the same radius.
	oc.radius = common.Clamp(oc.radius*math32.Pow(oc.scale, f), oc.minRadius, oc.maxRadius)

	if oc.enableDamping {
		oc.deltaAzimuth *= 1 - f
		oc.deltaElevation *= 1 - f
		for i := 0; i < 3; i++ {
			oc.panOffset[i] *= 1 - f
		}
		oc.scale = math32.Pow(oc.scale, 1-f)
	} else {
		oc.deltaAzimuth, oc.deltaElevation = 0, 0
		oc.panOffset = [3]float32{}
		oc.scale = 1
	}

	return oc.apply()
}

func (oc *orbitControlsImpl) Bind(source PointerSource) {
	oc.mu.Lock()
	oc.source = source
	oc.mu.Unlock()

	source.SetMouseButtonCallback(func(button int, pressed bool, x, y float64) {
		oc.mu.Lock()
		defer oc.mu.Unlock()
		if !oc.enabled || !pressed {
			oc.drag = dragNone
			return
		}
		switch button {
		case MouseButtonLeft:
			oc.drag = dragRotate
		case MouseButtonRight, MouseButtonMiddle:
			oc.drag = dragPan
		}
		oc.lastX, oc.lastY = x, y
	})

	source.SetMouseMoveCallback(func(x, y float64) {
		oc.mu.Lock()
		mode := oc.drag
		dx, dy := x-oc.lastX, y-oc.lastY
		oc.lastX, oc.lastY = x, y
		oc.mu.Unlock()

		switch mode {
		case dragRotate:
			oc.Rotate(dx, dy)
		case dragPan:
			oc.Pan(dx, dy)
		default:
			return
		}
		oc.Update()
	})

	source.SetScrollCallback(func(delta float32) {
		if !oc.Enabled() {
			return
		}
		oc.Zoom(delta)
		oc.Update()
	})
}

// apply writes the orbit state to the camera and reports whether its
// position changed. Caller must hold the mutex.
func (oc *orbitControlsImpl) apply() bool {
	cosE, sinE := math32.Cos(oc.elevation), math32.Sin(oc.elevation)
	cosA, sinA := math32.Cos(oc.azimuth), math32.Sin(oc.azimuth)
	next := [3]float32{
		oc.target[0] + oc.radius*cosE*sinA,
		oc.target[1] + oc.radius*sinE,
		oc.target[2] + oc.radius*cosE*cosA,
	}

	prev := oc.camera.Position()
	prevTarget := oc.camera.Target()
	oc.camera.SetPosition(next[0], next[1], next[2])
	oc.camera.LookAt(oc.target[0], oc.target[1], oc.target[2])

	const eps = 1e-6
	moved := common.Length3(common.Sub3(next, prev)) > eps ||
		common.Length3(common.Sub3(oc.target, prevTarget)) > eps
	return moved
}

// viewportHeight returns the input area height, falling back to 1 before
// the controls are bound. Caller must hold the mutex.
func (oc *orbitControlsImpl) viewportHeight() float64 {
	if oc.source == nil {
		return 1
	}
	_, h := oc.source.DisplaySize()
	if h <= 0 {
		return 1
	}
	return h
}
