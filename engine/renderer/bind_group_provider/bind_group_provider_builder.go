package bind_group_provider

import "github.com/cogentcore/webgpu/wgpu"

// BindGroupProviderOption presets resources on a provider in NewBindGroupProvider.
type BindGroupProviderOption func(*bindGroupProvider)

// WithMesh hands already uploaded mesh buffers to the provider, which then
// owns and releases them.
func WithMesh(vertices, indices *wgpu.Buffer, indexCount int) BindGroupProviderOption {
	return func(p *bindGroupProvider) {
		p.SetMesh(vertices, indices, indexCount)
	}
}

// WithSharedTexture binds a texture view owned elsewhere, such as the
// renderer's 1x1 white default. Release leaves it alone.
func WithSharedTexture(view *wgpu.TextureView) BindGroupProviderOption {
	return func(p *bindGroupProvider) {
		p.SetTexture(nil, view, false)
	}
}
