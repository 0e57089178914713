package engine

import (
	"github.com/Carmen-Shannon/chipview/engine/camera"
	"github.com/Carmen-Shannon/chipview/engine/scene"
	"github.com/Carmen-Shannon/chipview/engine/surface"
)

// SceneRenderer draws a scene from a camera. renderer.Renderer implements it.
type SceneRenderer interface {
	Render(s scene.Scene, c camera.Camera) error
}

// Viewer groups the objects a running viewer is made of. It is built once at
// start-up and handed to the Engine, which is the only thing that drives it.
//
// Controls may be nil when the camera is fixed.
type Viewer struct {
	Scene    scene.Scene
	Camera   camera.Camera
	Renderer SceneRenderer
	Controls camera.OrbitControls
	Surface  surface.Surface
}

// DisplayMetrics reports the measured size of the area a surface is shown in.
// window.Window implements it.
type DisplayMetrics interface {
	DisplaySize() (width, height float64)
	PixelRatio() float64
}

// BackingStore owns the pixel buffer behind a surface. renderer.Renderer
// implements it.
type BackingStore interface {
	BackingSize() (width, height int)
	SetBackingSize(width, height int)
}

// windowSurface joins a window's measurements with a renderer's backing store.
type windowSurface struct {
	display DisplayMetrics
	backing BackingStore
}

var _ surface.Surface = &windowSurface{}

// NewSurface returns a surface.Surface whose display size and pixel ratio
// come from display and whose backing size is owned by backing.
//
// Parameters:
//   - display: the window being drawn into
//   - backing: the renderer that configures the swapchain
//
// Returns:
//   - surface.Surface: the combined surface
func NewSurface(display DisplayMetrics, backing BackingStore) surface.Surface {
	return &windowSurface{display: display, backing: backing}
}

func (s *windowSurface) DisplaySize() (width, height float64) {
	return s.display.DisplaySize()
}

func (s *windowSurface) PixelRatio() float64 {
	return s.display.PixelRatio()
}

func (s *windowSurface) BackingSize() (width, height int) {
	return s.backing.BackingSize()
}

func (s *windowSurface) SetBackingSize(width, height int) {
	s.backing.SetBackingSize(width, height)
}
