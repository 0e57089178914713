package camera

// OrbitControlsOption is a functional option for configuring OrbitControls.
type OrbitControlsOption func(*orbitControlsImpl)

// WithOrbitTarget sets the orbit pivot.
//
// Parameters:
//   - x, y, z: world-space pivot
//
// Returns:
//   - OrbitControlsOption: functional option to set the target
func WithOrbitTarget(x, y, z float32) OrbitControlsOption {
	return func(oc *orbitControlsImpl) {
		oc.target = [3]float32{x, y, z}
	}
}

// WithDistanceBounds sets the minimum and maximum distance from the target.
//
// Parameters:
//   - min: closest zoom distance
//   - max: farthest zoom distance
//
// Returns:
//   - OrbitControlsOption: functional option to set distance bounds
func WithDistanceBounds(min, max float32) OrbitControlsOption {
	return func(oc *orbitControlsImpl) {
		oc.minRadius = min
		oc.maxRadius = max
	}
}

// WithElevationBounds sets the minimum and maximum elevation angles.
//
// Parameters:
//   - min: lowest vertical angle in radians
//   - max: highest vertical angle in radians
//
// Returns:
//   - OrbitControlsOption: functional option to set elevation bounds
func WithElevationBounds(min, max float32) OrbitControlsOption {
	return func(oc *orbitControlsImpl) {
		oc.minElevation = min
		oc.maxElevation = max
	}
}

// WithRotateSpeed scales pointer-drag rotation.
//
// Parameters:
//   - speed: rotation multiplier (1 = one turn per viewport height)
//
// Returns:
//   - OrbitControlsOption: functional option to set rotate speed
func WithRotateSpeed(speed float32) OrbitControlsOption {
	return func(oc *orbitControlsImpl) {
		oc.rotateSpeed = speed
	}
}

// WithPanSpeed scales pointer-drag panning.
//
// Parameters:
//   - speed: pan multiplier
//
// Returns:
//   - OrbitControlsOption: functional option to set pan speed
func WithPanSpeed(speed float32) OrbitControlsOption {
	return func(oc *orbitControlsImpl) {
		oc.panSpeed = speed
	}
}

// WithZoomSpeed scales wheel zoom.
//
// Parameters:
//   - speed: zoom multiplier
//
// Returns:
//   - OrbitControlsOption: functional option to set zoom speed
func WithZoomSpeed(speed float32) OrbitControlsOption {
	return func(oc *orbitControlsImpl) {
		oc.zoomSpeed = speed
	}
}

// WithDamping enables inertia. Each Update applies the given fraction of the
// remaining input, so Update must then be called every frame.
//
// Parameters:
//   - factor: fraction in (0, 1] applied per Update
//
// Returns:
//   - OrbitControlsOption: functional option to enable damping
func WithDamping(factor float32) OrbitControlsOption {
	return func(oc *orbitControlsImpl) {
		if factor <= 0 || factor > 1 {
			return
		}
		oc.enableDamping = true
		oc.dampingFactor = factor
	}
}
