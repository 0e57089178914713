package pipeline

import (
	"github.com/cogentcore/webgpu/wgpu"
)

// PipelineBuilderOption adjusts the state NewPipeline derives from a Key.
type PipelineBuilderOption func(*pipeline)

// WithBackfaceCulling drops triangles wound clockwise on screen. Only closed
// solids such as the chip body should use it; lines are never culled.
func WithBackfaceCulling() PipelineBuilderOption {
	return func(p *pipeline) {
		if p.topology == wgpu.PrimitiveTopologyTriangleList {
			p.cullMode = wgpu.CullModeBack
		}
	}
}

// WithAlphaBlend blends fragments over the target using straight alpha.
// Blended pipelines stop writing depth so later overlays still show through.
//
// Parameters:
//   - enabled: whether to blend
//
// Returns:
//   - PipelineBuilderOption: the option
func WithAlphaBlend(enabled bool) PipelineBuilderOption {
	return func(p *pipeline) {
		p.blend = enabled
		if enabled {
			p.depthWriteEnabled = false
		}
	}
}
