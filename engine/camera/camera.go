package camera

import (
	"sync"

	"github.com/Carmen-Shannon/chipview/common"
)

type cameraImpl struct {
	mu *sync.Mutex

	position [3]float32
	target   [3]float32
	up       [3]float32

	fov    float32
	aspect float32
	near   float32
	far    float32

	projectionDirty bool
	viewDirty       bool

	viewMatrix       common.Mat4
	projectionMatrix common.Mat4
}

// Camera is a perspective camera.
//
// Field of view and clip planes are fixed at construction. The aspect ratio
// only takes effect after UpdateProjectionMatrix; SetAspect marks the
// projection dirty. Reading
// ViewProjectionMatrix always recomputes a dirty projection first so a draw
// never uses stale parameters.
type Camera interface {
	// Position returns the camera's world-space position.
	//
	// Returns:
	//   - [3]float32: position as (x, y, z)
	Position() [3]float32

	// SetPosition moves the camera.
	//
	// Parameters:
	//   - x, y, z: world-space position
	SetPosition(x, y, z float32)

	// Target returns the point the camera looks at.
	//
	// Returns:
	//   - [3]float32: look-at point as (x, y, z)
	Target() [3]float32

	// LookAt points the camera at a world-space position.
	//
	// Parameters:
	//   - x, y, z: look-at point
	LookAt(x, y, z float32)

	// Fov returns the vertical field of view in radians. Orbit controls use it
	// to scale panning to the distance from the target.
	Fov() float32

	// Aspect returns width / height.
	Aspect() float32

	// SetAspect changes width / height and marks the projection dirty. The
	// frame driver calls it whenever the drawing surface is resized.
	//
	// Parameters:
	//   - aspect: width / height
	SetAspect(aspect float32)

	// ProjectionDirty reports whether projection parameters changed since the
	// last UpdateProjectionMatrix.
	//
	// Returns:
	//   - bool: true if the projection matrix is stale
	ProjectionDirty() bool

	// UpdateProjectionMatrix recomputes the projection matrix from fov, aspect, near and far.
	UpdateProjectionMatrix()

	// ProjectionMatrix returns the last computed projection matrix.
	ProjectionMatrix() common.Mat4

	// ViewMatrix returns the view matrix for the current position and target.
	ViewMatrix() common.Mat4

	// ViewProjectionMatrix returns projection * view, recomputing a dirty projection first.
	ViewProjectionMatrix() common.Mat4
}

var _ Camera = &cameraImpl{}

// NewCamera creates a perspective camera at (0, 0, 5) looking at the origin
// with a 75 degree field of view.
//
// Parameters:
//   - options: functional options to configure the camera
//
// Returns:
//   - Camera: the newly created camera with an up-to-date projection
func NewCamera(options ...CameraBuilderOption) Camera {
	c := &cameraImpl{
		mu:       &sync.Mutex{},
		position: [3]float32{0, 0, 5},
		up:       [3]float32{0, 1, 0},
		fov:      common.DegToRad(75),
		aspect:   1,
		near:     0.1,
		far:      100,
	}
	for _, option := range options {
		option(c)
	}
	c.updateProjection()
	c.updateView()
	return c
}

func (c *cameraImpl) Position() [3]float32 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.position
}

func (c *cameraImpl) SetPosition(x, y, z float32) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.position = [3]float32{x, y, z}
	c.viewDirty = true
}

func (c *cameraImpl) Target() [3]float32 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.target
}

func (c *cameraImpl) LookAt(x, y, z float32) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.target = [3]float32{x, y, z}
	c.viewDirty = true
}

func (c *cameraImpl) Fov() float32 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.fov
}

func (c *cameraImpl) Aspect() float32 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.aspect
}

func (c *cameraImpl) SetAspect(aspect float32) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.aspect = aspect
	c.projectionDirty = true
}

func (c *cameraImpl) ProjectionDirty() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.projectionDirty
}

func (c *cameraImpl) UpdateProjectionMatrix() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.updateProjection()
}

func (c *cameraImpl) ProjectionMatrix() common.Mat4 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.projectionMatrix
}

func (c *cameraImpl) ViewMatrix() common.Mat4 {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.viewDirty {
		c.updateView()
	}
	return c.viewMatrix
}

func (c *cameraImpl) ViewProjectionMatrix() common.Mat4 {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.projectionDirty {
		c.updateProjection()
	}
	if c.viewDirty {
		c.updateView()
	}
	return c.projectionMatrix.Mul(c.viewMatrix)
}

// updateProjection rebuilds the projection matrix and clears the dirty flag.
// Caller must hold the mutex.
func (c *cameraImpl) updateProjection() {
	c.projectionMatrix = common.Perspective(c.fov, c.aspect, c.near, c.far)
	c.projectionDirty = false
}

// updateView rebuilds the view matrix. Caller must hold the mutex.
func (c *cameraImpl) updateView() {
	c.viewMatrix = common.LookAt(c.position, c.target, c.up)
	c.viewDirty = false
}
