package renderer

import (
	"errors"

	"github.com/Carmen-Shannon/chipview/common"
	"github.com/Carmen-Shannon/chipview/engine/model"
	"github.com/Carmen-Shannon/chipview/engine/renderer/bind_group_provider"
	"github.com/Carmen-Shannon/chipview/engine/renderer/pipeline"
)

// PresentMode controls how rendered frames are presented to the display surface.
type PresentMode int

const (
	// PresentModeVSync waits for the next vertical blank before presenting, capping frame rate
	// to the monitor's refresh rate. Eliminates tearing.
	PresentModeVSync PresentMode = iota

	// PresentModeUncapped presents frames immediately without waiting for vertical blank.
	// May cause screen tearing but provides the lowest latency.
	PresentModeUncapped
)

// MSAASampleCount controls the number of samples used for multisample anti-aliasing (MSAA).
// WebGPU guarantees support for 1 (off) and 4.
type MSAASampleCount uint32

const (
	// MSAAOff disables multisample anti-aliasing (sample count 1).
	MSAAOff MSAASampleCount = 1

	// MSAA4x enables 4× multisample anti-aliasing. This is the default.
	MSAA4x MSAASampleCount = 4
)

// Bind group slots used by every pipeline.
const (
	// FrameGroup holds the camera uniform (binding 0) and the lights block (binding 1).
	FrameGroup = 0
	// ObjectGroup holds the model data (0), material params (1), diffuse texture (2) and sampler (3).
	ObjectGroup = 1
)

// Bindings within the groups.
const (
	BindingCamera = 0
	BindingLights = 1

	BindingModelData      = 0
	BindingMaterialParams = 1
	BindingTexture        = 2
	BindingSampler        = 3
)

// ErrSurfaceUnavailable is returned by BeginFrame when no swapchain texture
// could be acquired, typically because the surface is lost, outdated or
// zero-sized. The renderer reconfigures and skips the frame.
var ErrSurfaceUnavailable = errors.New("surface texture unavailable")

// RendererBackend is the GPU API seam beneath the Renderer. The Renderer owns
// scene bookkeeping and draw ordering; the backend owns every GPU object.
type RendererBackend interface {
	// ConfigureSurface (re)allocates the swapchain and the MSAA and depth
	// attachments at the given backing size.
	//
	// Parameters:
	//   - width: backing width in pixels
	//   - height: backing height in pixels
	//
	// Returns:
	//   - error: an error if an attachment could not be created
	ConfigureSurface(width, height int) error

	// SetPresentMode selects the present mode used at the next ConfigureSurface.
	//
	// Parameters:
	//   - mode: the PresentMode to use
	SetPresentMode(mode PresentMode)

	// RegisterPipeline compiles the pipeline's shader and creates its GPU pipeline.
	//
	// Parameters:
	//   - p: the pipeline configuration
	//
	// Returns:
	//   - error: an error if the module or pipeline could not be created
	RegisterPipeline(p pipeline.Pipeline) error

	// InitFrameBindGroup allocates the camera and lights uniforms and their bind group.
	//
	// Parameters:
	//   - provider: receives the buffers and bind group
	//
	// Returns:
	//   - error: an error if allocation fails
	InitFrameBindGroup(provider bind_group_provider.BindGroupProvider) error

	// InitObjectBindGroup uploads a mesh, its optional texture and allocates
	// the per-object uniforms and bind group.
	//
	// Parameters:
	//   - provider: receives the buffers, texture and bind group
	//   - m: the mesh to upload
	//   - texture: diffuse texture, or nil for the default white texel
	//
	// Returns:
	//   - error: an error if allocation fails
	InitObjectBindGroup(provider bind_group_provider.BindGroupProvider, m model.Model, texture *common.TextureStagingData) error

	// WriteBuffers writes staged uniform data to the GPU queue.
	//
	// Parameters:
	//   - writes: the batched writes for this frame
	WriteBuffers(writes []bind_group_provider.BufferWrite)

	// BeginFrame acquires the swapchain texture and begins the render pass,
	// clearing to clear.
	//
	// Parameters:
	//   - clear: the background color
	//
	// Returns:
	//   - error: ErrSurfaceUnavailable (wrapped) when the frame must be skipped
	BeginFrame(clear common.Color) error

	// DrawCall encodes one indexed draw within the current render pass.
	//
	// Parameters:
	//   - p: a registered pipeline
	//   - object: the object group provider holding mesh buffers
	//   - frame: the frame group provider
	DrawCall(p pipeline.Pipeline, object, frame bind_group_provider.BindGroupProvider)

	// EndFrame ends the render pass and submits the command buffer.
	//
	// Returns:
	//   - error: an error if the command buffer could not be finished
	EndFrame() error

	// Present presents the surface and releases the swapchain texture.
	Present()

	// Release frees every GPU object owned by the backend.
	Release()
}
