package pipeline

import (
	"testing"

	"github.com/Carmen-Shannon/chipview/common"
	"github.com/Carmen-Shannon/chipview/engine/renderer/material"
	"github.com/Carmen-Shannon/chipview/engine/renderer/shader"
	"github.com/cogentcore/webgpu/wgpu"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKeyFor(t *testing.T) {
	assert.Equal(t, Key{Topology: material.TopologyTriangles, DepthTest: true}, KeyFor(material.NewPhong(common.ColorFromHex(0xffffff))))
	assert.Equal(t, Key{Topology: material.TopologyLines, DepthTest: true}, KeyFor(material.NewLineBasic()))
	assert.Equal(t, Key{Topology: material.TopologyLines, DepthTest: false},
		KeyFor(material.NewLineBasic(material.WithDepthTest(false))))
}

func TestKeyString(t *testing.T) {
	assert.Equal(t, "triangles", Key{DepthTest: true}.String())
	assert.Equal(t, "lines+overlay", Key{Topology: material.TopologyLines}.String())
}

func TestDescriptor(t *testing.T) {
	s, err := shader.Standard()
	require.NoError(t, err)

	tests := []struct {
		name       string
		key        Key
		topology   wgpu.PrimitiveTopology
		compare    wgpu.CompareFunction
		depthWrite bool
	}{
		{"lit triangles", Key{Topology: material.TopologyTriangles, DepthTest: true}, wgpu.PrimitiveTopologyTriangleList, wgpu.CompareFunctionLess, true},
		{"depth tested lines", Key{Topology: material.TopologyLines, DepthTest: true}, wgpu.PrimitiveTopologyLineList, wgpu.CompareFunctionLess, true},
		{"overlay lines", Key{Topology: material.TopologyLines, DepthTest: false}, wgpu.PrimitiveTopologyLineList, wgpu.CompareFunctionAlways, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := NewPipeline(tt.key, s)
			desc := p.Descriptor(nil, nil, wgpu.TextureFormatBGRA8Unorm, 4)

			assert.Equal(t, tt.topology, desc.Primitive.Topology)
			require.NotNil(t, desc.DepthStencil)
			assert.Equal(t, tt.compare, desc.DepthStencil.DepthCompare)
			assert.Equal(t, tt.depthWrite, desc.DepthStencil.DepthWriteEnabled)
			assert.Equal(t, uint32(4), desc.Multisample.Count)
			assert.Equal(t, "vs_main", desc.Vertex.EntryPoint)
			require.NotNil(t, desc.Fragment)
			assert.Equal(t, "fs_main", desc.Fragment.EntryPoint)
			assert.Nil(t, desc.Fragment.Targets[0].Blend)
		})
	}
}

func TestOptions(t *testing.T) {
	tests := []struct {
		name       string
		key        Key
		opts       []PipelineBuilderOption
		cull       wgpu.CullMode
		blend      bool
		depthWrite bool
	}{
		{"defaults", Key{DepthTest: true}, nil, wgpu.CullModeNone, false, true},
		{"culled solid", Key{DepthTest: true}, []PipelineBuilderOption{WithBackfaceCulling()}, wgpu.CullModeBack, false, true},
		{"lines ignore culling", Key{Topology: material.TopologyLines, DepthTest: true}, []PipelineBuilderOption{WithBackfaceCulling()}, wgpu.CullModeNone, false, true},
		{"blended", Key{DepthTest: true}, []PipelineBuilderOption{WithAlphaBlend(true)}, wgpu.CullModeNone, true, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := NewPipeline(tt.key, nil, tt.opts...)
			desc := p.Descriptor(nil, nil, wgpu.TextureFormatBGRA8Unorm, 1)

			assert.Equal(t, tt.cull, p.CullMode())
			assert.Equal(t, tt.cull, desc.Primitive.CullMode)
			assert.Equal(t, wgpu.FrontFaceCCW, desc.Primitive.FrontFace)
			assert.Equal(t, tt.blend, p.BlendEnabled())
			assert.Equal(t, tt.blend, desc.Fragment.Targets[0].Blend != nil)
			assert.Equal(t, tt.depthWrite, desc.DepthStencil.DepthWriteEnabled)
		})
	}
}

func TestVertexBufferLayout(t *testing.T) {
	l := VertexBufferLayout()
	assert.Equal(t, uint64(44), l.ArrayStride)
	require.Len(t, l.Attributes, 4)
	assert.Equal(t, uint64(32), l.Attributes[3].Offset)
}
