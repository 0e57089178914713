package renderer

import (
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/Carmen-Shannon/chipview/common"
	"github.com/Carmen-Shannon/chipview/engine/camera"
	"github.com/Carmen-Shannon/chipview/engine/light"
	"github.com/Carmen-Shannon/chipview/engine/model"
	"github.com/Carmen-Shannon/chipview/engine/renderer/bind_group_provider"
	"github.com/Carmen-Shannon/chipview/engine/renderer/material"
	"github.com/Carmen-Shannon/chipview/engine/renderer/pipeline"
	"github.com/Carmen-Shannon/chipview/engine/renderer/shader"
	"github.com/Carmen-Shannon/chipview/engine/scene"
	"github.com/cogentcore/webgpu/wgpu"
)

// SurfaceTarget is the window a renderer draws into.
type SurfaceTarget interface {
	// SurfaceDescriptor returns the platform surface descriptor for WebGPU.
	SurfaceDescriptor() *wgpu.SurfaceDescriptor
	// FramebufferSize returns the initial backing size in pixels.
	FramebufferSize() (width, height int)
}

// objectEntry tracks the GPU resources uploaded for one scene object.
type objectEntry struct {
	provider bind_group_provider.BindGroupProvider
	model    model.Model
	texture  *common.TextureStagingData
	frame    uint64
}

// renderer is the implementation of the Renderer interface.
type renderer struct {
	mu *sync.Mutex

	backend RendererBackend
	logger  *slog.Logger

	standard      shader.Shader
	pipelineCache map[pipeline.Key]pipeline.Pipeline
	frameProvider bind_group_provider.BindGroupProvider
	objects       map[uint64]*objectEntry
	frame         uint64

	width, height int

	// Pre-creation config collected from builder options
	forceFallbackAdapter bool
	presentMode          PresentMode
	msaa                 MSAASampleCount
	sampler              common.SamplerStagingData
}

// Renderer draws a scene from a camera's point of view and owns the backing
// store of the window surface.
//
// GPU resources for scene objects are created the first time an object is
// drawn and released once it no longer appears in the draw list. Pipelines are
// created lazily, one per pipeline.Key.
type Renderer interface {
	// Render draws one frame: uploads the camera, lights and any changed
	// per-object uniforms, clears to the scene background and draws every
	// visible mesh in render order.
	//
	// A frame whose swapchain texture cannot be acquired is skipped after
	// reconfiguring the surface and is not an error. A zero-sized backing store
	// skips the frame as well.
	//
	// Parameters:
	//   - s: the scene to draw
	//   - c: the viewpoint
	//
	// Returns:
	//   - error: the upload and pipeline errors of the frame joined, or a submission error
	Render(s scene.Scene, c camera.Camera) error

	// SetBackingSize reconfigures the surface at a new pixel size.
	//
	// Parameters:
	//   - width: the new width of the surface in pixels
	//   - height: the new height of the surface in pixels
	SetBackingSize(width, height int)

	// BackingSize returns the size the surface is currently configured at.
	//
	// Returns:
	//   - width, height: the backing size in pixels
	BackingSize() (width, height int)

	// SetPresentMode changes how frames are delivered to the display and
	// reconfigures the surface.
	//
	// Parameters:
	//   - mode: the PresentMode to use
	SetPresentMode(mode PresentMode)

	// Pipeline returns the cached pipeline for key, or nil.
	//
	// Parameters:
	//   - key: the pipeline variant
	//
	// Returns:
	//   - pipeline.Pipeline: the pipeline or nil if not yet created
	Pipeline(key pipeline.Key) pipeline.Pipeline

	// Release frees every GPU resource held by the renderer and its backend.
	Release()
}

var _ Renderer = &renderer{}

// NewRenderer creates a Renderer drawing into target and configures the
// surface at the target's framebuffer size.
//
// Parameters:
//   - target: the window to draw into
//   - options: variadic list of RendererBuilderOption functions to configure the Renderer
//
// Returns:
//   - Renderer: the new renderer
//   - error: an error if the adapter, device or surface could not be set up
func NewRenderer(target SurfaceTarget, options ...RendererBuilderOption) (Renderer, error) {
	r := &renderer{
		mu:            &sync.Mutex{},
		logger:        slog.New(slog.DiscardHandler),
		pipelineCache: make(map[pipeline.Key]pipeline.Pipeline),
		objects:       make(map[uint64]*objectEntry),
		presentMode:   PresentModeVSync,
		msaa:          MSAA4x,
	}

	// Apply options first so config flags (e.g. forceFallbackAdapter) are
	// available before the backend requests a GPU adapter.
	for _, opt := range options {
		opt(r)
	}

	standard, err := shader.Standard()
	if err != nil {
		return nil, err
	}
	r.standard = standard

	if r.backend == nil {
		b, err := newWGPURendererBackend(target.SurfaceDescriptor(), r.forceFallbackAdapter, r.msaa, r.sampler)
		if err != nil {
			return nil, fmt.Errorf("failed to create wgpu backend: %w", err)
		}
		r.backend = b
	}
	r.backend.SetPresentMode(r.presentMode)

	r.width, r.height = target.FramebufferSize()
	if err := r.backend.ConfigureSurface(r.width, r.height); err != nil {
		r.backend.Release()
		return nil, fmt.Errorf("failed to configure surface: %w", err)
	}

	r.frameProvider = bind_group_provider.NewBindGroupProvider("Frame")
	if err := r.backend.InitFrameBindGroup(r.frameProvider); err != nil {
		r.backend.Release()
		return nil, fmt.Errorf("failed to create frame bind group: %w", err)
	}
	return r, nil
}

func (r *renderer) SetBackingSize(width, height int) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.width, r.height = width, height
	if width <= 0 || height <= 0 {
		return
	}
	if err := r.backend.ConfigureSurface(width, height); err != nil {
		r.logger.Warn("surface resize failed", "width", width, "height", height, "err", err)
	}
}

func (r *renderer) BackingSize() (width, height int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.width, r.height
}

func (r *renderer) SetPresentMode(mode PresentMode) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.presentMode = mode
	r.backend.SetPresentMode(mode)
	if r.width > 0 && r.height > 0 {
		if err := r.backend.ConfigureSurface(r.width, r.height); err != nil {
			r.logger.Warn("surface reconfigure failed", "err", err)
		}
	}
}

func (r *renderer) Pipeline(key pipeline.Key) pipeline.Pipeline {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.pipelineCache[key]
}

func (r *renderer) Render(s scene.Scene, c camera.Camera) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.width <= 0 || r.height <= 0 {
		return nil
	}
	r.frame++

	items := s.DrawList()
	writes := r.frameWrites(c, s.Lights())

	type draw struct {
		entry *objectEntry
		key   pipeline.Key
	}
	draws := make([]draw, 0, len(items))

	var errs []error
	for _, item := range items {
		entry, err := r.object(item)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		entry.frame = r.frame

		data := model.NewGPUModelData(item.World)
		writes = append(writes, bind_group_provider.BufferWrite{
			Provider: entry.provider,
			Binding:  BindingModelData,
			Data:     data.Marshal(),
		})

		mat := item.Object.Material()
		if version := mat.Version(); entry.provider.MaterialStale(version) {
			params := material.Params(mat)
			writes = append(writes, bind_group_provider.BufferWrite{
				Provider: entry.provider,
				Binding:  BindingMaterialParams,
				Data:     params.Marshal(),
			})
			entry.provider.MarkMaterialUploaded(version)
		}
		draws = append(draws, draw{entry: entry, key: pipeline.KeyFor(mat)})
	}
	r.prune()

	r.backend.WriteBuffers(writes)

	if err := r.backend.BeginFrame(s.Background()); err != nil {
		if errors.Is(err, ErrSurfaceUnavailable) {
			r.logger.Debug("skipping frame", "frame", r.frame, "err", err)
			if cfgErr := r.backend.ConfigureSurface(r.width, r.height); cfgErr != nil {
				return fmt.Errorf("failed to reconfigure surface: %w", cfgErr)
			}
			return errors.Join(errs...)
		}
		return fmt.Errorf("failed to begin frame: %w", err)
	}

	for _, d := range draws {
		p, err := r.pipelineFor(d.key)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		r.backend.DrawCall(p, d.entry.provider, r.frameProvider)
	}

	if err := r.backend.EndFrame(); err != nil {
		return fmt.Errorf("failed to submit frame: %w", err)
	}
	r.backend.Present()
	return errors.Join(errs...)
}

// frameWrites stages the camera and lights uniforms.
func (r *renderer) frameWrites(c camera.Camera, lights []light.Light) []bind_group_provider.BufferWrite {
	cam := camera.Uniform(c)
	packed := light.Pack(lights)
	return []bind_group_provider.BufferWrite{
		{Provider: r.frameProvider, Binding: BindingCamera, Data: cam.Marshal()},
		{Provider: r.frameProvider, Binding: BindingLights, Data: packed.Marshal()},
	}
}

// object returns the GPU entry for a draw item, (re)creating it when the
// object is new or its mesh or texture was swapped.
func (r *renderer) object(item scene.DrawItem) (*objectEntry, error) {
	obj := item.Object
	mdl := obj.Model()
	tex := obj.Material().DiffuseTexture()

	entry, ok := r.objects[obj.ID()]
	if ok && entry.model == mdl && entry.texture == tex {
		return entry, nil
	}
	if ok {
		entry.provider.Release()
		delete(r.objects, obj.ID())
	}

	label := obj.Name()
	if label == "" {
		label = fmt.Sprintf("Object %d", obj.ID())
	}
	provider := bind_group_provider.NewBindGroupProvider(label)
	if err := r.backend.InitObjectBindGroup(provider, mdl, tex); err != nil {
		provider.Release()
		return nil, fmt.Errorf("failed to upload %s: %w", label, err)
	}
	r.logger.Debug("uploaded object", "object", label, "indices", mdl.IndexCount(), "textured", tex != nil)

	entry = &objectEntry{provider: provider, model: mdl, texture: tex}
	r.objects[obj.ID()] = entry
	return entry, nil
}

// prune releases entries that were not drawn this frame.
func (r *renderer) prune() {
	for id, entry := range r.objects {
		if entry.frame != r.frame {
			entry.provider.Release()
			delete(r.objects, id)
		}
	}
}

func (r *renderer) pipelineFor(key pipeline.Key) (pipeline.Pipeline, error) {
	if p, ok := r.pipelineCache[key]; ok {
		return p, nil
	}
	// Every triangle mesh in the viewer is a closed solid.
	p := pipeline.NewPipeline(key, r.standard, pipeline.WithBackfaceCulling())
	if err := r.backend.RegisterPipeline(p); err != nil {
		return nil, fmt.Errorf("failed to create %s pipeline: %w", key, err)
	}
	r.pipelineCache[key] = p
	r.logger.Debug("created pipeline", "key", key.String())
	return p, nil
}

func (r *renderer) Release() {
	r.mu.Lock()
	defer r.mu.Unlock()

	for id, entry := range r.objects {
		entry.provider.Release()
		delete(r.objects, id)
	}
	for key, p := range r.pipelineCache {
		p.Release()
		delete(r.pipelineCache, key)
	}
	if r.frameProvider != nil {
		r.frameProvider.Release()
	}
	r.backend.Release()
}
