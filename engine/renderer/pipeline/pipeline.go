package pipeline

import (
	"fmt"

	"github.com/Carmen-Shannon/chipview/common"
	"github.com/Carmen-Shannon/chipview/engine/renderer/material"
	"github.com/Carmen-Shannon/chipview/engine/renderer/shader"
	"github.com/cogentcore/webgpu/wgpu"
)

// DepthFormat is the depth attachment format shared by every pipeline.
const DepthFormat = wgpu.TextureFormatDepth24Plus

// Key identifies a pipeline variant. Materials that share a Key share a pipeline.
type Key struct {
	Topology  material.Topology
	DepthTest bool
}

// KeyFor derives the pipeline key a material draws with.
//
// Parameters:
//   - m: the material
//
// Returns:
//   - Key: the matching pipeline key
func KeyFor(m material.Material) Key {
	return Key{Topology: m.Topology(), DepthTest: m.DepthTest()}
}

// String returns a label such as "triangles" or "lines+overlay".
func (k Key) String() string {
	name := "triangles"
	if k.Topology == material.TopologyLines {
		name = "lines"
	}
	if !k.DepthTest {
		name += "+overlay"
	}
	return name
}

// pipeline is the implementation of the Pipeline interface.
type pipeline struct {
	key    Key
	shader shader.Shader

	renderPipeline *wgpu.RenderPipeline

	depthTestEnabled  bool
	depthWriteEnabled bool
	blend             bool
	cullMode          wgpu.CullMode
	topology          wgpu.PrimitiveTopology
}

// alphaBlend is the straight-alpha "over" operator used by WithAlphaBlend.
var alphaBlend = wgpu.BlendState{
	Color: wgpu.BlendComponent{
		SrcFactor: wgpu.BlendFactorSrcAlpha,
		DstFactor: wgpu.BlendFactorOneMinusSrcAlpha,
		Operation: wgpu.BlendOperationAdd,
	},
	Alpha: wgpu.BlendComponent{
		SrcFactor: wgpu.BlendFactorOne,
		DstFactor: wgpu.BlendFactorOneMinusSrcAlpha,
		Operation: wgpu.BlendOperationAdd,
	},
}

// Pipeline holds the configuration and GPU object of one render pipeline.
// Overlay pipelines (depth test disabled) always pass the depth compare and
// never write depth, so they draw on top of everything drawn before them.
type Pipeline interface {
	// Key returns the variant this pipeline renders.
	//
	// Returns:
	//   - Key: the pipeline key
	Key() Key

	// Shader returns the WGSL module holding the vertex and fragment entry points.
	//
	// Returns:
	//   - shader.Shader: the pipeline shader
	Shader() shader.Shader

	// RenderPipeline returns the GPU pipeline, or nil before registration.
	RenderPipeline() *wgpu.RenderPipeline

	// DepthTestEnabled returns whether depth testing is enabled for this pipeline.
	//
	// Returns:
	//   - bool: true if depth testing is enabled, false otherwise
	DepthTestEnabled() bool

	// DepthWriteEnabled returns whether depth writing is enabled for this pipeline.
	//
	// Returns:
	//   - bool: true if depth writing is enabled, false otherwise
	DepthWriteEnabled() bool

	// BlendEnabled reports whether fragments are alpha blended.
	BlendEnabled() bool

	// CullMode returns wgpu.CullModeBack for culled solids and wgpu.CullModeNone otherwise.
	CullMode() wgpu.CullMode

	// Topology returns the primitive topology configured for this pipeline.
	//
	// Returns:
	//   - wgpu.PrimitiveTopology: triangle list or line list
	Topology() wgpu.PrimitiveTopology

	// Descriptor assembles the creation descriptor for this pipeline.
	//
	// Parameters:
	//   - layout: pipeline layout with the frame and object bind groups
	//   - module: compiled shader module for Shader()
	//   - colorFormat: surface texture format
	//   - sampleCount: MSAA sample count of the color and depth attachments
	//
	// Returns:
	//   - *wgpu.RenderPipelineDescriptor: descriptor ready for CreateRenderPipeline
	Descriptor(layout *wgpu.PipelineLayout, module *wgpu.ShaderModule, colorFormat wgpu.TextureFormat, sampleCount uint32) *wgpu.RenderPipelineDescriptor

	// SetRenderPipeline stores the created GPU pipeline.
	//
	// Parameters:
	//   - p: the WebGPU render pipeline to set
	SetRenderPipeline(p *wgpu.RenderPipeline)

	// Release frees the GPU pipeline if one was created.
	Release()
}

var _ Pipeline = &pipeline{}

// NewPipeline creates the pipeline configuration for key. Topology and depth
// state come from the key. Front faces wind counter-clockwise and every color
// channel is written.
//
// Parameters:
//   - key: the variant to render
//   - s: shader holding both entry points
//   - opts: a variadic list of PipelineBuilderOption functions to configure the pipeline
//
// Returns:
//   - Pipeline: a new Pipeline instance
func NewPipeline(key Key, s shader.Shader, opts ...PipelineBuilderOption) Pipeline {
	p := &pipeline{
		key:               key,
		shader:            s,
		depthTestEnabled:  key.DepthTest,
		depthWriteEnabled: key.DepthTest,
		cullMode:          wgpu.CullModeNone,
		topology:          wgpu.PrimitiveTopologyTriangleList,
	}
	if key.Topology == material.TopologyLines {
		p.topology = wgpu.PrimitiveTopologyLineList
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// VertexBufferLayout describes common.Vertex to the vertex stage.
//
// Returns:
//   - wgpu.VertexBufferLayout: position, normal, uv and color at locations 0..3
func VertexBufferLayout() wgpu.VertexBufferLayout {
	return wgpu.VertexBufferLayout{
		ArrayStride: common.VertexStride,
		StepMode:    wgpu.VertexStepModeVertex,
		Attributes: []wgpu.VertexAttribute{
			{Format: wgpu.VertexFormatFloat32x3, Offset: 0, ShaderLocation: 0},
			{Format: wgpu.VertexFormatFloat32x3, Offset: 12, ShaderLocation: 1},
			{Format: wgpu.VertexFormatFloat32x2, Offset: 24, ShaderLocation: 2},
			{Format: wgpu.VertexFormatFloat32x3, Offset: 32, ShaderLocation: 3},
		},
	}
}

func (p *pipeline) Key() Key {
	return p.key
}

func (p *pipeline) Shader() shader.Shader {
	return p.shader
}

func (p *pipeline) RenderPipeline() *wgpu.RenderPipeline {
	return p.renderPipeline
}

func (p *pipeline) DepthTestEnabled() bool {
	return p.depthTestEnabled
}

func (p *pipeline) DepthWriteEnabled() bool {
	return p.depthWriteEnabled
}

func (p *pipeline) BlendEnabled() bool {
	return p.blend
}

func (p *pipeline) CullMode() wgpu.CullMode {
	return p.cullMode
}

func (p *pipeline) Topology() wgpu.PrimitiveTopology {
	return p.topology
}

func (p *pipeline) Descriptor(layout *wgpu.PipelineLayout, module *wgpu.ShaderModule, colorFormat wgpu.TextureFormat, sampleCount uint32) *wgpu.RenderPipelineDescriptor {
	target := wgpu.ColorTargetState{
		Format:    colorFormat,
		WriteMask: wgpu.ColorWriteMaskAll,
	}
	if p.blend {
		blend := alphaBlend
		target.Blend = &blend
	}

	depthCompare := wgpu.CompareFunctionLess
	if !p.depthTestEnabled {
		depthCompare = wgpu.CompareFunctionAlways
	}

	var vertexEntry, fragmentEntry string
	if p.shader != nil {
		vertexEntry = p.shader.VertexEntryPoint()
		fragmentEntry = p.shader.FragmentEntryPoint()
	}

	return &wgpu.RenderPipelineDescriptor{
		Label:  fmt.Sprintf("%s Render Pipeline", p.key),
		Layout: layout,
		Vertex: wgpu.VertexState{
			Module:     module,
			EntryPoint: vertexEntry,
			Buffers:    []wgpu.VertexBufferLayout{VertexBufferLayout()},
		},
		Fragment: &wgpu.FragmentState{
			Module:     module,
			EntryPoint: fragmentEntry,
			Targets:    []wgpu.ColorTargetState{target},
		},
		Primitive: wgpu.PrimitiveState{
			Topology:  p.topology,
			FrontFace: wgpu.FrontFaceCCW,
			CullMode:  p.cullMode,
		},
		Multisample: wgpu.MultisampleState{
			Count: sampleCount,
			Mask:  0xFFFFFFFF,
		},
		DepthStencil: &wgpu.DepthStencilState{
			Format:            DepthFormat,
			DepthWriteEnabled: p.depthWriteEnabled,
			DepthCompare:      depthCompare,
			StencilFront: wgpu.StencilFaceState{
				Compare: wgpu.CompareFunctionAlways,
			},
			StencilBack: wgpu.StencilFaceState{
				Compare: wgpu.CompareFunctionAlways,
			},
		},
	}
}

func (p *pipeline) SetRenderPipeline(rp *wgpu.RenderPipeline) {
	p.renderPipeline = rp
}

func (p *pipeline) Release() {
	if p.renderPipeline != nil {
		p.renderPipeline.Release()
		p.renderPipeline = nil
	}
}
