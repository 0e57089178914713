package window

import (
	"fmt"
	"runtime"

	"github.com/cogentcore/webgpu/wgpu"
	"github.com/cogentcore/webgpu/wgpuglfw"
	"github.com/go-gl/glfw/v3.3/glfw"
)

// glfwWindow holds the GLFW-specific window state.
type glfwWindow struct {
	parent  *engineWindow
	window  *glfw.Window
	running bool
}

// glfwButtons maps GLFW buttons onto the 0 left, 1 right, 2 middle convention.
var glfwButtons = map[glfw.MouseButton]int{
	glfw.MouseButtonLeft:   0,
	glfw.MouseButtonRight:  1,
	glfw.MouseButtonMiddle: 2,
}

// newPlatformWindow creates the GLFW window with input callbacks and stores it as the internal window.
//
// GLFW reference: https://www.glfw.org/docs/latest/window_guide.html
// go-gl/glfw: https://pkg.go.dev/github.com/go-gl/glfw/v3.3/glfw
func newPlatformWindow(w *engineWindow) error {
	runtime.LockOSThread()

	if err := glfw.Init(); err != nil {
		return fmt.Errorf("failed to initialize GLFW: %w", err)
	}

	// WebGPU provides its own graphics API, so disable OpenGL context creation.
	glfw.WindowHint(glfw.ClientAPI, glfw.NoAPI)
	// Scale the window with the monitor content scale so the logical size
	// stays constant across displays.
	glfw.WindowHint(glfw.ScaleToMonitor, glfw.True)

	win, err := glfw.CreateWindow(w.width, w.height, w.title, nil, nil)
	if err != nil {
		glfw.Terminate()
		return fmt.Errorf("failed to create GLFW window: %w", err)
	}
	win.SetSizeLimits(w.minWidth, w.minHeight, w.maxWidth, w.maxHeight)

	gw := &glfwWindow{
		parent:  w,
		window:  win,
		running: true,
	}
	w.internalWindow = gw

	// Escape is the only key the viewer handles: it closes the window.
	win.SetKeyCallback(func(_ *glfw.Window, key glfw.Key, scancode int, action glfw.Action, mods glfw.ModifierKey) {
		if key == glfw.KeyEscape && action == glfw.Press {
			gw.running = false
			win.SetShouldClose(true)
		}
	})

	win.SetScrollCallback(func(_ *glfw.Window, xoff, yoff float64) {
		if w.onScroll != nil {
			w.onScroll(float32(yoff))
		}
	})

	win.SetMouseButtonCallback(func(_ *glfw.Window, button glfw.MouseButton, action glfw.Action, mods glfw.ModifierKey) {
		b, ok := glfwButtons[button]
		if !ok || w.onMouseButton == nil {
			return
		}
		x, y := win.GetCursorPos()
		switch action {
		case glfw.Press:
			w.onMouseButton(b, true, x, y)
		case glfw.Release:
			w.onMouseButton(b, false, x, y)
		}
	})

	win.SetCursorPosCallback(func(_ *glfw.Window, xpos, ypos float64) {
		if w.onMouseMove != nil {
			w.onMouseMove(xpos, ypos)
		}
	})

	return nil
}

func glfwHandle(w *engineWindow) *glfw.Window {
	if w.internalWindow == nil {
		return nil
	}
	return w.internalWindow.(*glfwWindow).window
}

// platformGetSurfaceDescriptor creates a platform-appropriate wgpu.SurfaceDescriptor from the GLFW window.
//
// Reference: https://pkg.go.dev/github.com/cogentcore/webgpu/wgpuglfw#GetSurfaceDescriptor
func platformGetSurfaceDescriptor(w *engineWindow) *wgpu.SurfaceDescriptor {
	win := glfwHandle(w)
	if win == nil {
		return nil
	}
	return wgpuglfw.GetSurfaceDescriptor(win)
}

func platformDisplaySize(w *engineWindow) (float64, float64) {
	win := glfwHandle(w)
	if win == nil {
		return float64(w.width), float64(w.height)
	}
	width, height := win.GetSize()
	return float64(width), float64(height)
}

// platformPixelRatio is framebuffer pixels per window unit. Where window
// coordinates are already pixels (Windows, X11) this is 1 even on scaled
// monitors; the content scale is used only before the framebuffer exists.
func platformPixelRatio(w *engineWindow) float64 {
	win := glfwHandle(w)
	if win == nil {
		return 1
	}
	ww, _ := win.GetSize()
	fw, _ := win.GetFramebufferSize()
	if ww > 0 && fw > 0 {
		return float64(fw) / float64(ww)
	}
	x, _ := win.GetContentScale()
	if x <= 0 {
		return 1
	}
	return float64(x)
}

func platformFramebufferSize(w *engineWindow) (int, int) {
	win := glfwHandle(w)
	if win == nil {
		return w.width, w.height
	}
	return win.GetFramebufferSize()
}

// platformTimestamp returns milliseconds since GLFW initialization.
func platformTimestamp() float64 {
	return glfw.GetTime() * 1000
}

// platformIsRunningCheck returns whether the GLFW window is still active.
func platformIsRunningCheck(w *engineWindow) bool {
	if w.internalWindow == nil {
		return false
	}
	gw := w.internalWindow.(*glfwWindow)
	return gw.running && !gw.window.ShouldClose()
}

// platformCloseWindow destroys the GLFW window and terminates the GLFW library.
func platformCloseWindow(w *engineWindow) error {
	if w.internalWindow == nil {
		return fmt.Errorf("window is not initialized")
	}
	gw := w.internalWindow.(*glfwWindow)
	gw.running = false
	gw.window.SetShouldClose(true)
	gw.window.Destroy()
	w.internalWindow = nil
	glfw.Terminate()
	return nil
}

// platformProcessMessages polls GLFW for pending events without blocking.
//
// Reference: https://pkg.go.dev/github.com/go-gl/glfw/v3.3/glfw#PollEvents
func platformProcessMessages(w *engineWindow) bool {
	glfw.PollEvents()
	return platformIsRunningCheck(w)
}
