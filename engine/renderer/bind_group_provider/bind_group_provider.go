package bind_group_provider

import (
	"github.com/cogentcore/webgpu/wgpu"
)

// bindGroupProvider is the unexported implementation of BindGroupProvider.
type bindGroupProvider struct {
	// label is a debug label added for convenience.
	label string

	// The following fields are GPU allocated resources populated by the Renderer.

	bindGroup *wgpu.BindGroup
	// buffers holds the uniform buffers created for this provider, keyed by binding index.
	buffers map[int]*wgpu.Buffer

	// texture and textureView back the diffuse texture binding. When ownsTexture
	// is false they point at a renderer-wide default and are not released here.
	texture     *wgpu.Texture
	textureView *wgpu.TextureView
	ownsTexture bool

	vertexBuffer *wgpu.Buffer
	indexBuffer  *wgpu.Buffer
	indexCount   int

	// materialVersion is the material version last uploaded, so unchanged
	// materials skip their uniform write.
	materialVersion uint64
	uploaded        bool
}

// BindGroupProvider holds the GPU resources of one bind group: the per-frame
// camera and lights group, or one drawable's object group with its mesh buffers.
//
// Usage pattern:
//  1. Renderer creates a provider the first time it sees a scene object
//  2. Renderer allocates buffers, texture and bind group and stores them here
//  3. Each frame the renderer writes the model matrix, and the material
//     params only when MaterialStale reports a newer version
//  4. Provider is released when the object leaves the scene or the renderer shuts down
type BindGroupProvider interface {
	// Release releases any GPU resources held by this provider.
	Release()

	// Label returns the debug label for this provider.
	//
	// Returns:
	//   - string: the debug label
	Label() string

	// BindGroup returns the created bind group for shader binding.
	// Returns nil if GPU resources have not been initialized.
	//
	// Returns:
	//   - *wgpu.BindGroup: the bind group or nil
	BindGroup() *wgpu.BindGroup

	// Buffer returns the uniform buffer at binding, or nil.
	//
	// Parameters:
	//   - binding: the binding index
	//
	// Returns:
	//   - *wgpu.Buffer: the buffer or nil
	Buffer(binding int) *wgpu.Buffer

	// TextureView returns the diffuse texture view, or nil if not set.
	TextureView() *wgpu.TextureView

	// VertexBuffer returns the GPU vertex buffer, or nil if not initialized.
	VertexBuffer() *wgpu.Buffer

	// IndexBuffer returns the GPU index buffer, or nil if not initialized.
	IndexBuffer() *wgpu.Buffer

	// IndexCount returns the number of indices for draw calls.
	//
	// Returns:
	//   - int: the index count
	IndexCount() int

	// MaterialStale reports whether version differs from the last uploaded one.
	//
	// Parameters:
	//   - version: the material's current version
	//
	// Returns:
	//   - bool: true if the material uniform must be re-written
	MaterialStale(version uint64) bool

	// MarkMaterialUploaded records version as uploaded.
	//
	// Parameters:
	//   - version: the material version just written
	MarkMaterialUploaded(version uint64)

	// SetBindGroup sets the bind group after GPU initialization.
	//
	// Parameters:
	//   - bg: the created bind group
	SetBindGroup(bg *wgpu.BindGroup)

	// SetBuffer stores a uniform buffer for a binding.
	//
	// Parameters:
	//   - binding: the binding index
	//   - buf: the created buffer
	SetBuffer(binding int, buf *wgpu.Buffer)

	// SetTexture stores the diffuse texture and its view.
	//
	// Parameters:
	//   - tex: the texture, or nil when view is shared
	//   - view: the texture view
	//   - owned: true if this provider must release them
	SetTexture(tex *wgpu.Texture, view *wgpu.TextureView, owned bool)

	// SetMesh stores the vertex and index buffers and the index count.
	//
	// Parameters:
	//   - vertices: the vertex buffer
	//   - indices: the index buffer
	//   - count: number of indices
	SetMesh(vertices, indices *wgpu.Buffer, count int)
}

// Compile-time check that bindGroupProvider implements BindGroupProvider
var _ BindGroupProvider = &bindGroupProvider{}

// NewBindGroupProvider creates a new BindGroupProvider with the provided options.
//
// Parameters:
//   - label: debug label
//   - options: a variadic list of options to configure the provider
//
// Returns:
//   - BindGroupProvider: a new instance of BindGroupProvider configured with the provided options
func NewBindGroupProvider(label string, options ...BindGroupProviderOption) BindGroupProvider {
	p := &bindGroupProvider{
		label:   label,
		buffers: make(map[int]*wgpu.Buffer),
	}
	for _, opt := range options {
		opt(p)
	}
	return p
}

func (p *bindGroupProvider) Label() string {
	return p.label
}

func (p *bindGroupProvider) BindGroup() *wgpu.BindGroup {
	return p.bindGroup
}

func (p *bindGroupProvider) Buffer(binding int) *wgpu.Buffer {
	return p.buffers[binding]
}

func (p *bindGroupProvider) TextureView() *wgpu.TextureView {
	return p.textureView
}

func (p *bindGroupProvider) VertexBuffer() *wgpu.Buffer {
	return p.vertexBuffer
}

func (p *bindGroupProvider) IndexBuffer() *wgpu.Buffer {
	return p.indexBuffer
}

func (p *bindGroupProvider) IndexCount() int {
	return p.indexCount
}

func (p *bindGroupProvider) MaterialStale(version uint64) bool {
	return !p.uploaded || p.materialVersion != version
}

func (p *bindGroupProvider) MarkMaterialUploaded(version uint64) {
	p.materialVersion = version
	p.uploaded = true
}

func (p *bindGroupProvider) SetBindGroup(bg *wgpu.BindGroup) {
	p.bindGroup = bg
}

func (p *bindGroupProvider) SetBuffer(binding int, buf *wgpu.Buffer) {
	if p.buffers == nil {
		p.buffers = make(map[int]*wgpu.Buffer)
	}
	p.buffers[binding] = buf
}

func (p *bindGroupProvider) SetTexture(tex *wgpu.Texture, view *wgpu.TextureView, owned bool) {
	p.texture = tex
	p.textureView = view
	p.ownsTexture = owned
}

func (p *bindGroupProvider) SetMesh(vertices, indices *wgpu.Buffer, count int) {
	p.vertexBuffer = vertices
	p.indexBuffer = indices
	p.indexCount = count
}

func (p *bindGroupProvider) Release() {
	for i, buf := range p.buffers {
		if buf != nil {
			buf.Release()
		}
		delete(p.buffers, i)
	}
	if p.bindGroup != nil {
		p.bindGroup.Release()
		p.bindGroup = nil
	}
	if p.ownsTexture {
		if p.textureView != nil {
			p.textureView.Release()
		}
		if p.texture != nil {
			p.texture.Release()
		}
	}
	p.texture, p.textureView, p.ownsTexture = nil, nil, false
	if p.vertexBuffer != nil {
		p.vertexBuffer.Release()
		p.vertexBuffer = nil
	}
	if p.indexBuffer != nil {
		p.indexBuffer.Release()
		p.indexBuffer = nil
	}
	p.indexCount = 0
	p.uploaded = false
}
