package renderer

import (
	"cmp"
	"errors"
	"fmt"
	"runtime"
	"sync"

	"github.com/Carmen-Shannon/chipview/common"
	"github.com/Carmen-Shannon/chipview/engine/camera"
	"github.com/Carmen-Shannon/chipview/engine/light"
	"github.com/Carmen-Shannon/chipview/engine/model"
	"github.com/Carmen-Shannon/chipview/engine/renderer/bind_group_provider"
	"github.com/Carmen-Shannon/chipview/engine/renderer/material"
	"github.com/Carmen-Shannon/chipview/engine/renderer/pipeline"
	"github.com/cogentcore/webgpu/wgpu"
)

type wgpuRendererBackendImpl struct {
	mu     *sync.Mutex
	device *wgpu.Device
	queue  *wgpu.Queue

	instance *wgpu.Instance
	adapter  *wgpu.Adapter
	surface  *wgpu.Surface

	surfaceFormat        wgpu.TextureFormat
	msaaTexture          *wgpu.Texture
	msaaTextureView      *wgpu.TextureView
	depthTexture         *wgpu.Texture
	depthTextureView     *wgpu.TextureView
	renderPassDescriptor *wgpu.RenderPassDescriptor

	presentMode wgpu.PresentMode
	sampleCount MSAASampleCount

	frameLayout    *wgpu.BindGroupLayout
	objectLayout   *wgpu.BindGroupLayout
	pipelineLayout *wgpu.PipelineLayout
	modules        map[string]*wgpu.ShaderModule

	sampler     *wgpu.Sampler
	whiteTex    *wgpu.Texture
	whiteView   *wgpu.TextureView
	samplerData common.SamplerStagingData

	// Frame state between BeginFrame and Present
	frameEncoder *wgpu.CommandEncoder
	framePass    *wgpu.RenderPassEncoder
	frameSurface *wgpu.Texture
	frameView    *wgpu.TextureView
}

var _ RendererBackend = &wgpuRendererBackendImpl{}

func newWGPURendererBackend(surfaceDescriptor *wgpu.SurfaceDescriptor, forceFallbackAdapter bool, sampleCount MSAASampleCount, samplerData common.SamplerStagingData) (*wgpuRendererBackendImpl, error) {
	runtime.LockOSThread()
	b := &wgpuRendererBackendImpl{
		mu:          &sync.Mutex{},
		instance:    wgpu.CreateInstance(nil),
		presentMode: wgpu.PresentModeFifo,
		sampleCount: sampleCount,
		modules:     make(map[string]*wgpu.ShaderModule),
		samplerData: samplerData,
	}
	b.surface = b.instance.CreateSurface(surfaceDescriptor)

	a, err := b.instance.RequestAdapter(&wgpu.RequestAdapterOptions{
		ForceFallbackAdapter: forceFallbackAdapter,
		CompatibleSurface:    b.surface,
	})
	if err != nil {
		b.Release()
		return nil, fmt.Errorf("failed to request adapter: %w", err)
	}
	b.adapter = a

	d, err := a.RequestDevice(&wgpu.DeviceDescriptor{
		Label: "Main Device",
	})
	if err != nil {
		b.Release()
		return nil, fmt.Errorf("failed to request device: %w", err)
	}
	b.device = d
	b.queue = d.GetQueue()

	if err := b.createLayouts(); err != nil {
		b.Release()
		return nil, err
	}
	if err := b.createDefaults(); err != nil {
		b.Release()
		return nil, err
	}
	return b, nil
}

// frameLayoutDescriptor describes group 0: camera and lights uniforms.
func frameLayoutDescriptor() wgpu.BindGroupLayoutDescriptor {
	cam := wgpu.BindGroupLayoutEntry{
		Binding:    BindingCamera,
		Visibility: wgpu.ShaderStageVertex | wgpu.ShaderStageFragment,
	}
	cam.Buffer.Type = wgpu.BufferBindingTypeUniform
	cam.Buffer.MinBindingSize = uint64((&camera.GPUCameraUniform{}).Size())

	lights := wgpu.BindGroupLayoutEntry{
		Binding:    BindingLights,
		Visibility: wgpu.ShaderStageFragment,
	}
	lights.Buffer.Type = wgpu.BufferBindingTypeUniform
	lights.Buffer.MinBindingSize = uint64((&light.GPULights{}).Size())

	return wgpu.BindGroupLayoutDescriptor{
		Label:   "Frame Bind Group Layout",
		Entries: []wgpu.BindGroupLayoutEntry{cam, lights},
	}
}

// objectLayoutDescriptor describes group 1: model data, material, texture and sampler.
func objectLayoutDescriptor() wgpu.BindGroupLayoutDescriptor {
	mdl := wgpu.BindGroupLayoutEntry{
		Binding:    BindingModelData,
		Visibility: wgpu.ShaderStageVertex,
	}
	mdl.Buffer.Type = wgpu.BufferBindingTypeUniform
	mdl.Buffer.MinBindingSize = uint64((&model.GPUModelData{}).Size())

	mat := wgpu.BindGroupLayoutEntry{
		Binding:    BindingMaterialParams,
		Visibility: wgpu.ShaderStageFragment,
	}
	mat.Buffer.Type = wgpu.BufferBindingTypeUniform
	mat.Buffer.MinBindingSize = uint64((&material.GPUMaterialParams{}).Size())

	tex := wgpu.BindGroupLayoutEntry{
		Binding:    BindingTexture,
		Visibility: wgpu.ShaderStageFragment,
	}
	tex.Texture.SampleType = wgpu.TextureSampleTypeFloat
	tex.Texture.ViewDimension = wgpu.TextureViewDimension2D

	samp := wgpu.BindGroupLayoutEntry{
		Binding:    BindingSampler,
		Visibility: wgpu.ShaderStageFragment,
	}
	samp.Sampler.Type = wgpu.SamplerBindingTypeFiltering

	return wgpu.BindGroupLayoutDescriptor{
		Label:   "Object Bind Group Layout",
		Entries: []wgpu.BindGroupLayoutEntry{mdl, mat, tex, samp},
	}
}

func (b *wgpuRendererBackendImpl) createLayouts() error {
	frameDesc := frameLayoutDescriptor()
	frameLayout, err := b.device.CreateBindGroupLayout(&frameDesc)
	if err != nil {
		return fmt.Errorf("failed to create frame layout: %w", err)
	}
	b.frameLayout = frameLayout

	objectDesc := objectLayoutDescriptor()
	objectLayout, err := b.device.CreateBindGroupLayout(&objectDesc)
	if err != nil {
		return fmt.Errorf("failed to create object layout: %w", err)
	}
	b.objectLayout = objectLayout

	layout, err := b.device.CreatePipelineLayout(&wgpu.PipelineLayoutDescriptor{
		Label:            "Standard Pipeline Layout",
		BindGroupLayouts: []*wgpu.BindGroupLayout{b.frameLayout, b.objectLayout},
	})
	if err != nil {
		return fmt.Errorf("failed to create pipeline layout: %w", err)
	}
	b.pipelineLayout = layout
	return nil
}

// createDefaults creates the shared sampler and the 1x1 white texture bound
// by untextured objects.
func (b *wgpuRendererBackendImpl) createDefaults() error {
	sd := b.samplerData
	samp, err := b.device.CreateSampler(&wgpu.SamplerDescriptor{
		Label:         "Diffuse Sampler",
		AddressModeU:  cmp.Or(sd.AddressModeU, wgpu.AddressModeRepeat),
		AddressModeV:  cmp.Or(sd.AddressModeV, wgpu.AddressModeRepeat),
		AddressModeW:  cmp.Or(sd.AddressModeW, wgpu.AddressModeRepeat),
		MagFilter:     cmp.Or(sd.MagFilter, wgpu.FilterModeLinear),
		MinFilter:     cmp.Or(sd.MinFilter, wgpu.FilterModeLinear),
		MipmapFilter:  cmp.Or(sd.MipmapFilter, wgpu.MipmapFilterModeLinear),
		LodMinClamp:   sd.LodMinClamp,
		LodMaxClamp:   cmp.Or(sd.LodMaxClamp, 32.0),
		MaxAnisotropy: cmp.Or(sd.MaxAnisotropy, 1),
	})
	if err != nil {
		return fmt.Errorf("failed to create sampler: %w", err)
	}
	b.sampler = samp

	white := common.TextureStagingData{Pixels: []byte{0xff, 0xff, 0xff, 0xff}, Width: 1, Height: 1}
	b.whiteTex, b.whiteView, err = b.uploadTexture("Default White", white)
	return err
}

// pickAlphaMode returns the surface's preferred alpha mode, or Auto when the
// surface lists none.
func pickAlphaMode(modes []wgpu.CompositeAlphaMode) wgpu.CompositeAlphaMode {
	if len(modes) == 0 {
		return wgpu.CompositeAlphaModeAuto
	}
	return modes[0]
}

func (b *wgpuRendererBackendImpl) ConfigureSurface(width, height int) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if width <= 0 || height <= 0 {
		return nil
	}

	capabilities := b.surface.GetCapabilities(b.adapter)
	if len(capabilities.Formats) == 0 {
		return errors.New("surface reports no supported formats")
	}
	b.surfaceFormat = capabilities.Formats[0]
	b.surface.Configure(b.adapter, b.device, &wgpu.SurfaceConfiguration{
		Usage:       wgpu.TextureUsageRenderAttachment,
		Format:      b.surfaceFormat,
		Width:       uint32(width),
		Height:      uint32(height),
		PresentMode: b.presentMode,
		AlphaMode:   pickAlphaMode(capabilities.AlphaModes),
	})

	b.releaseAttachments()

	count := uint32(b.sampleCount)
	msaaEnabled := count > 1
	size := wgpu.Extent3D{
		Width:              uint32(width),
		Height:             uint32(height),
		DepthOrArrayLayers: 1,
	}

	if msaaEnabled {
		// The render pass draws into the MSAA texture; the resolved result is
		// written to the swapchain view as the ResolveTarget.
		tex, err := b.device.CreateTexture(&wgpu.TextureDescriptor{
			Label:         "MSAA Texture",
			Size:          size,
			MipLevelCount: 1,
			SampleCount:   count,
			Dimension:     wgpu.TextureDimension2D,
			Format:        b.surfaceFormat,
			Usage:         wgpu.TextureUsageRenderAttachment,
		})
		if err != nil {
			return fmt.Errorf("failed to create msaa texture: %w", err)
		}
		view, err := tex.CreateView(nil)
		if err != nil {
			tex.Release()
			return fmt.Errorf("failed to create msaa view: %w", err)
		}
		b.msaaTexture, b.msaaTextureView = tex, view
	}

	// Depth texture sample count must match the color attachment.
	depth, err := b.device.CreateTexture(&wgpu.TextureDescriptor{
		Label:         "Depth Texture",
		Size:          size,
		MipLevelCount: 1,
		SampleCount:   count,
		Dimension:     wgpu.TextureDimension2D,
		Format:        pipeline.DepthFormat,
		Usage:         wgpu.TextureUsageRenderAttachment,
	})
	if err != nil {
		return fmt.Errorf("failed to create depth texture: %w", err)
	}
	depthView, err := depth.CreateView(nil)
	if err != nil {
		depth.Release()
		return fmt.Errorf("failed to create depth view: %w", err)
	}
	b.depthTexture, b.depthTextureView = depth, depthView

	// View is the MSAA texture when enabled, otherwise the swapchain view set
	// per frame. ResolveTarget is set per frame when MSAA is on.
	storeOp := wgpu.StoreOpStore
	if msaaEnabled {
		storeOp = wgpu.StoreOpDiscard
	}
	b.renderPassDescriptor = &wgpu.RenderPassDescriptor{
		ColorAttachments: []wgpu.RenderPassColorAttachment{
			{
				View:    b.msaaTextureView,
				LoadOp:  wgpu.LoadOpClear,
				StoreOp: storeOp,
			},
		},
		DepthStencilAttachment: &wgpu.RenderPassDepthStencilAttachment{
			View:            b.depthTextureView,
			DepthLoadOp:     wgpu.LoadOpClear,
			DepthStoreOp:    wgpu.StoreOpDiscard,
			DepthClearValue: 1.0,
		},
	}
	return nil
}

func (b *wgpuRendererBackendImpl) releaseAttachments() {
	if b.msaaTextureView != nil {
		b.msaaTextureView.Release()
		b.msaaTextureView = nil
	}
	if b.msaaTexture != nil {
		b.msaaTexture.Release()
		b.msaaTexture = nil
	}
	if b.depthTextureView != nil {
		b.depthTextureView.Release()
		b.depthTextureView = nil
	}
	if b.depthTexture != nil {
		b.depthTexture.Release()
		b.depthTexture = nil
	}
}

func (b *wgpuRendererBackendImpl) SetPresentMode(mode PresentMode) {
	b.mu.Lock()
	defer b.mu.Unlock()

	switch mode {
	case PresentModeUncapped:
		b.presentMode = wgpu.PresentModeImmediate
	case PresentModeVSync:
		fallthrough
	default:
		b.presentMode = wgpu.PresentModeFifo
	}
}

func (b *wgpuRendererBackendImpl) RegisterPipeline(p pipeline.Pipeline) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	s := p.Shader()
	if s == nil {
		return errors.New("a shader must be set to create a render pipeline")
	}

	module, ok := b.modules[s.Key()]
	if !ok {
		var err error
		module, err = b.device.CreateShaderModule(&wgpu.ShaderModuleDescriptor{
			Label: s.Key(),
			WGSLDescriptor: &wgpu.ShaderModuleWGSLDescriptor{
				Code: s.Source(),
			},
		})
		if err != nil {
			return err
		}
		b.modules[s.Key()] = module
	}

	created, err := b.device.CreateRenderPipeline(p.Descriptor(b.pipelineLayout, module, b.surfaceFormat, uint32(b.sampleCount)))
	if err != nil {
		return err
	}
	p.SetRenderPipeline(created)
	return nil
}

func (b *wgpuRendererBackendImpl) createUniform(label string, size int) (*wgpu.Buffer, error) {
	return b.device.CreateBuffer(&wgpu.BufferDescriptor{
		Label: label,
		Size:  uint64(size),
		Usage: wgpu.BufferUsageUniform | wgpu.BufferUsageCopyDst,
	})
}

func (b *wgpuRendererBackendImpl) InitFrameBindGroup(provider bind_group_provider.BindGroupProvider) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	camBuf, err := b.createUniform(provider.Label()+" Camera Buffer", (&camera.GPUCameraUniform{}).Size())
	if err != nil {
		return err
	}
	provider.SetBuffer(BindingCamera, camBuf)

	lightBuf, err := b.createUniform(provider.Label()+" Lights Buffer", (&light.GPULights{}).Size())
	if err != nil {
		return err
	}
	provider.SetBuffer(BindingLights, lightBuf)

	bindGroup, err := b.device.CreateBindGroup(&wgpu.BindGroupDescriptor{
		Label:  provider.Label() + " Bind Group",
		Layout: b.frameLayout,
		Entries: []wgpu.BindGroupEntry{
			{Binding: BindingCamera, Buffer: camBuf, Size: wgpu.WholeSize},
			{Binding: BindingLights, Buffer: lightBuf, Size: wgpu.WholeSize},
		},
	})
	if err != nil {
		return err
	}
	provider.SetBindGroup(bindGroup)
	return nil
}

func (b *wgpuRendererBackendImpl) InitObjectBindGroup(provider bind_group_provider.BindGroupProvider, m model.Model, texture *common.TextureStagingData) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	vertexData, indexData := m.VertexData(), m.IndexData()
	if len(vertexData) == 0 || len(indexData) == 0 {
		return fmt.Errorf("model %q has no geometry", m.Name())
	}
	vb, err := b.device.CreateBuffer(&wgpu.BufferDescriptor{
		Label: provider.Label() + " Vertex Buffer",
		Size:  uint64(len(vertexData)),
		Usage: wgpu.BufferUsageVertex | wgpu.BufferUsageCopyDst,
	})
	if err != nil {
		return err
	}
	b.queue.WriteBuffer(vb, 0, vertexData)
	ib, err := b.device.CreateBuffer(&wgpu.BufferDescriptor{
		Label: provider.Label() + " Index Buffer",
		Size:  uint64(len(indexData)),
		Usage: wgpu.BufferUsageIndex | wgpu.BufferUsageCopyDst,
	})
	if err != nil {
		vb.Release()
		return err
	}
	b.queue.WriteBuffer(ib, 0, indexData)
	provider.SetMesh(vb, ib, m.IndexCount())

	modelBuf, err := b.createUniform(provider.Label()+" Model Buffer", (&model.GPUModelData{}).Size())
	if err != nil {
		return err
	}
	provider.SetBuffer(BindingModelData, modelBuf)

	matBuf, err := b.createUniform(provider.Label()+" Material Buffer", (&material.GPUMaterialParams{}).Size())
	if err != nil {
		return err
	}
	provider.SetBuffer(BindingMaterialParams, matBuf)

	if texture != nil {
		tex, view, err := b.uploadTexture(provider.Label(), *texture)
		if err != nil {
			return err
		}
		provider.SetTexture(tex, view, true)
	} else {
		provider.SetTexture(nil, b.whiteView, false)
	}

	bindGroup, err := b.device.CreateBindGroup(&wgpu.BindGroupDescriptor{
		Label:  provider.Label() + " Bind Group",
		Layout: b.objectLayout,
		Entries: []wgpu.BindGroupEntry{
			{Binding: BindingModelData, Buffer: modelBuf, Size: wgpu.WholeSize},
			{Binding: BindingMaterialParams, Buffer: matBuf, Size: wgpu.WholeSize},
			{Binding: BindingTexture, TextureView: provider.TextureView()},
			{Binding: BindingSampler, Sampler: b.sampler},
		},
	})
	if err != nil {
		return err
	}
	provider.SetBindGroup(bindGroup)
	return nil
}

func (b *wgpuRendererBackendImpl) uploadTexture(label string, stagingData common.TextureStagingData) (*wgpu.Texture, *wgpu.TextureView, error) {
	if stagingData.Width == 0 || stagingData.Height == 0 {
		return nil, nil, fmt.Errorf("texture %s is empty", label)
	}
	if want := int(stagingData.Width * stagingData.Height * 4); len(stagingData.Pixels) != want {
		return nil, nil, fmt.Errorf("texture %s has %d bytes, want %d", label, len(stagingData.Pixels), want)
	}

	size := wgpu.Extent3D{
		Width:              stagingData.Width,
		Height:             stagingData.Height,
		DepthOrArrayLayers: 1,
	}
	tex, err := b.device.CreateTexture(&wgpu.TextureDescriptor{
		Label:         label + " Texture",
		Usage:         wgpu.TextureUsageTextureBinding | wgpu.TextureUsageCopyDst,
		Dimension:     wgpu.TextureDimension2D,
		Size:          size,
		Format:        wgpu.TextureFormatRGBA8UnormSrgb,
		MipLevelCount: 1,
		SampleCount:   1,
	})
	if err != nil {
		return nil, nil, err
	}

	b.queue.WriteTexture(
		&wgpu.ImageCopyTexture{
			Texture:  tex,
			MipLevel: 0,
			Origin:   wgpu.Origin3D{},
			Aspect:   wgpu.TextureAspectAll,
		},
		stagingData.Pixels,
		&wgpu.TextureDataLayout{
			Offset:       0,
			BytesPerRow:  stagingData.Width * 4,
			RowsPerImage: stagingData.Height,
		},
		&size,
	)

	view, err := tex.CreateView(nil)
	if err != nil {
		tex.Release()
		return nil, nil, err
	}
	return tex, view, nil
}

func (b *wgpuRendererBackendImpl) WriteBuffers(writes []bind_group_provider.BufferWrite) {
	b.mu.Lock()
	defer b.mu.Unlock()

	for _, w := range writes {
		buf := w.Provider.Buffer(w.Binding)
		if buf == nil {
			continue
		}
		b.queue.WriteBuffer(buf, w.Offset, w.Data)
	}
}

func (b *wgpuRendererBackendImpl) BeginFrame(clear common.Color) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.renderPassDescriptor == nil {
		return fmt.Errorf("%w: surface not configured", ErrSurfaceUnavailable)
	}
	// A surface texture still held from a previous frame must be presented
	// before another can be acquired.
	if b.frameSurface != nil {
		return errors.New("previous frame surface not yet presented")
	}

	surfaceTexture, err := b.surface.GetCurrentTexture()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrSurfaceUnavailable, err)
	}

	view, err := surfaceTexture.CreateView(nil)
	if err != nil {
		surfaceTexture.Release()
		return err
	}

	encoder, err := b.device.CreateCommandEncoder(nil)
	if err != nil {
		view.Release()
		surfaceTexture.Release()
		return err
	}

	attachment := &b.renderPassDescriptor.ColorAttachments[0]
	if b.sampleCount > 1 {
		attachment.ResolveTarget = view
	} else {
		attachment.View = view
	}
	attachment.ClearValue = wgpu.Color{
		R: float64(clear.R), G: float64(clear.G), B: float64(clear.B), A: 1.0,
	}

	b.frameEncoder = encoder
	b.framePass = encoder.BeginRenderPass(b.renderPassDescriptor)
	b.frameSurface = surfaceTexture
	b.frameView = view
	return nil
}

func (b *wgpuRendererBackendImpl) DrawCall(p pipeline.Pipeline, object, frame bind_group_provider.BindGroupProvider) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.framePass == nil || p.RenderPipeline() == nil {
		return
	}
	b.framePass.SetPipeline(p.RenderPipeline())
	b.framePass.SetBindGroup(FrameGroup, frame.BindGroup(), nil)
	b.framePass.SetBindGroup(ObjectGroup, object.BindGroup(), nil)
	b.framePass.SetVertexBuffer(0, object.VertexBuffer(), 0, wgpu.WholeSize)
	b.framePass.SetIndexBuffer(object.IndexBuffer(), wgpu.IndexFormatUint32, 0, wgpu.WholeSize)
	b.framePass.DrawIndexed(uint32(object.IndexCount()), 1, 0, 0, 0)
}

func (b *wgpuRendererBackendImpl) EndFrame() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.framePass == nil {
		return nil
	}
	b.framePass.End()
	b.framePass = nil

	commandBuffer, err := b.frameEncoder.Finish(nil)
	b.frameEncoder.Release()
	b.frameEncoder = nil
	if err != nil {
		b.releaseFrameSurface()
		return err
	}

	b.queue.Submit(commandBuffer)
	commandBuffer.Release()
	return nil
}

func (b *wgpuRendererBackendImpl) Present() {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.frameSurface == nil {
		return
	}
	b.surface.Present()
	b.releaseFrameSurface()
}

func (b *wgpuRendererBackendImpl) releaseFrameSurface() {
	if b.frameView != nil {
		b.frameView.Release()
		b.frameView = nil
	}
	if b.frameSurface != nil {
		b.frameSurface.Release()
		b.frameSurface = nil
	}
}

func (b *wgpuRendererBackendImpl) Release() {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.releaseFrameSurface()
	b.releaseAttachments()
	for key, m := range b.modules {
		m.Release()
		delete(b.modules, key)
	}
	if b.whiteView != nil {
		b.whiteView.Release()
		b.whiteView = nil
	}
	if b.whiteTex != nil {
		b.whiteTex.Release()
		b.whiteTex = nil
	}
	if b.sampler != nil {
		b.sampler.Release()
		b.sampler = nil
	}
	if b.pipelineLayout != nil {
		b.pipelineLayout.Release()
		b.pipelineLayout = nil
	}
	if b.objectLayout != nil {
		b.objectLayout.Release()
		b.objectLayout = nil
	}
	if b.frameLayout != nil {
		b.frameLayout.Release()
		b.frameLayout = nil
	}
	b.queue = nil
	if b.device != nil {
		b.device.Release()
		b.device = nil
	}
	if b.adapter != nil {
		b.adapter.Release()
		b.adapter = nil
	}
	if b.surface != nil {
		b.surface.Release()
		b.surface = nil
	}
	if b.instance != nil {
		b.instance.Release()
		b.instance = nil
	}
}
