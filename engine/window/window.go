package window

import (
	"fmt"
	"runtime"

	"github.com/cogentcore/webgpu/wgpu"
)

// Window provides platform windowing, input and frame scheduling.
// Wraps platform-specific window implementations with a common interface.
type Window interface {
	// SetScrollCallback sets the callback for mouse scroll wheel events.
	//
	// Parameters:
	//   - callback: function receiving scroll delta (positive = up/zoom in, negative = down/zoom out)
	SetScrollCallback(callback func(delta float32))

	// SetMouseButtonCallback sets the callback for mouse button presses and releases.
	//
	// Parameters:
	//   - callback: function receiving the button (0 left, 1 right, 2 middle),
	//     whether it was pressed and the cursor position in screen coordinates
	SetMouseButtonCallback(callback func(button int, pressed bool, x, y float64))

	// SetMouseMoveCallback sets the callback for mouse movement.
	//
	// Parameters:
	//   - callback: function receiving the cursor position in screen coordinates
	SetMouseMoveCallback(callback func(x, y float64))

	// SurfaceDescriptor returns a wgpu.SurfaceDescriptor suitable for creating a WebGPU surface.
	// The descriptor is platform-appropriate (Windows HWND, X11 Xlib, Wayland, macOS Metal, etc.)
	// and is created by the wgpuglfw bridge from the underlying GLFW window.
	//
	// Returns:
	//   - *wgpu.SurfaceDescriptor: the platform-specific surface descriptor, or nil if window is not initialized
	SurfaceDescriptor() *wgpu.SurfaceDescriptor

	// DisplaySize returns the client area in screen coordinates, the size the
	// user sees independent of pixel density.
	//
	// Returns:
	//   - width, height: logical size
	DisplaySize() (width, height float64)

	// PixelRatio returns the content scale: framebuffer pixels per screen coordinate.
	//
	// Returns:
	//   - float64: the pixel ratio, 1 when unknown
	PixelRatio() float64

	// FramebufferSize returns the client area in pixels.
	//
	// Returns:
	//   - width, height: pixel size
	FramebufferSize() (width, height int)

	// RequestFrame schedules callback to run once on the next message loop
	// iteration with a millisecond timestamp. A later request in the same
	// iteration replaces the earlier one.
	//
	// Parameters:
	//   - callback: the frame callback
	RequestFrame(callback func(timestamp float64))

	// IsRunning returns true if the window is still active.
	//
	// Returns:
	//   - bool: true if window is running, false if closed
	IsRunning() bool

	// Close closes the window and releases platform resources.
	//
	// Returns:
	//   - error: error if close operation fails
	Close() error

	// ProcessMessages runs the window message loop.
	// Blocks until the window is closed. Each iteration polls events, then
	// runs the pending frame callback if any.
	ProcessMessages()
}

// noSizeLimit leaves a size limit to the platform (GLFW_DONT_CARE).
const noSizeLimit = -1

// engineWindow is the implementation of the Window interface.
// Holds window configuration, GLFW state, and event callbacks.
type engineWindow struct {
	// title is the window title displayed in the title bar.
	title string

	// size limits applied to user resizes, in screen coordinates
	maxWidth, maxHeight int
	minWidth, minHeight int

	// width and height are the requested initial size in screen coordinates.
	width, height int

	// internalWindow holds the platform-specific window data (glfwWindow).
	internalWindow any

	frames *frameQueue

	onScroll      func(delta float32)
	onMouseButton func(button int, pressed bool, x, y float64)
	onMouseMove   func(x, y float64)
}

var _ Window = &engineWindow{}

// NewWindow creates and shows a new Window with the specified options.
// Applies default values first, then each option in order.
//
// Parameters:
//   - options: functional options to configure the window
//
// Returns:
//   - Window: the configured window
//   - error: error if the platform window could not be created
func NewWindow(options ...WindowBuilderOption) (Window, error) {
	w := &engineWindow{
		title:     "chipview",
		maxWidth:  noSizeLimit,
		maxHeight: noSizeLimit,
		minWidth:  320,
		minHeight: 200,
		width:     1280,
		height:    720,
		frames:    &frameQueue{},
	}
	for _, opt := range options {
		opt(w)
	}
	w.width = max(w.width, w.minWidth)
	w.height = max(w.height, w.minHeight)
	if err := newPlatformWindow(w); err != nil {
		return nil, fmt.Errorf("failed to create platform window: %w", err)
	}
	return w, nil
}

func (w *engineWindow) SetScrollCallback(callback func(delta float32)) {
	w.onScroll = callback
}

func (w *engineWindow) SetMouseButtonCallback(callback func(button int, pressed bool, x, y float64)) {
	w.onMouseButton = callback
}

func (w *engineWindow) SetMouseMoveCallback(callback func(x, y float64)) {
	w.onMouseMove = callback
}

func (w *engineWindow) SurfaceDescriptor() *wgpu.SurfaceDescriptor {
	return platformGetSurfaceDescriptor(w)
}

func (w *engineWindow) DisplaySize() (width, height float64) {
	return platformDisplaySize(w)
}

func (w *engineWindow) PixelRatio() float64 {
	return platformPixelRatio(w)
}

func (w *engineWindow) FramebufferSize() (width, height int) {
	return platformFramebufferSize(w)
}

func (w *engineWindow) RequestFrame(callback func(timestamp float64)) {
	w.frames.Request(callback)
}

func (w *engineWindow) IsRunning() bool {
	return platformIsRunningCheck(w)
}

func (w *engineWindow) Close() error {
	return platformCloseWindow(w)
}

func (w *engineWindow) ProcessMessages() {
	for w.IsRunning() {
		if succ := platformProcessMessages(w); !succ {
			break
		}
		w.frames.Run(platformTimestamp())

		runtime.Gosched()
	}
}
