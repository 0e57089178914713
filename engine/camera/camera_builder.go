package camera

import "github.com/Carmen-Shannon/chipview/common"

// CameraBuilderOption configures a perspective camera in NewCamera.
type CameraBuilderOption func(*cameraImpl)

// WithPosition places the eye in world space.
func WithPosition(x, y, z float32) CameraBuilderOption {
	return func(c *cameraImpl) {
		c.position = [3]float32{x, y, z}
	}
}

// WithTarget sets the point the eye looks at. Orbit controls later take
// ownership of it.
func WithTarget(x, y, z float32) CameraBuilderOption {
	return func(c *cameraImpl) {
		c.target = [3]float32{x, y, z}
	}
}

// WithUp overrides the +Y up vector.
func WithUp(x, y, z float32) CameraBuilderOption {
	return func(c *cameraImpl) {
		c.up = [3]float32{x, y, z}
	}
}

// WithFovDegrees sets the vertical field of view.
//
// Parameters:
//   - deg: field of view in degrees, kept inside (0, 180)
//
// Returns:
//   - CameraBuilderOption: the option
func WithFovDegrees(deg float32) CameraBuilderOption {
	return func(c *cameraImpl) {
		if deg > 0 && deg < 180 {
			c.fov = common.DegToRad(deg)
		}
	}
}

// WithAspect sets the initial width / height ratio. The frame driver replaces
// it whenever the drawing surface is resized.
func WithAspect(aspect float32) CameraBuilderOption {
	return func(c *cameraImpl) {
		if aspect > 0 {
			c.aspect = aspect
		}
	}
}

// WithClipPlanes sets the near and far clipping distances. Pairs with
// near <= 0 or far <= near are ignored.
//
// Parameters:
//   - near: near plane distance
//   - far: far plane distance
//
// Returns:
//   - CameraBuilderOption: the option
func WithClipPlanes(near, far float32) CameraBuilderOption {
	return func(c *cameraImpl) {
		if near > 0 && far > near {
			c.near, c.far = near, far
		}
	}
}
