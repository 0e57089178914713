// pre_processor.go implements a small WGSL pre-processor. Lines of the form
//
//	#include <name>
//
// are replaced with the WGSL struct source registered under name, so the
// uniform layouts declared next to their Go GPU types stay the single source
// of truth. Each struct is injected at most once per shader.
package shader

import (
	"fmt"
	"strings"

	"github.com/Carmen-Shannon/chipview/engine/camera"
	"github.com/Carmen-Shannon/chipview/engine/light"
	"github.com/Carmen-Shannon/chipview/engine/model"
	"github.com/Carmen-Shannon/chipview/engine/renderer/material"
)

const includeDirective = "#include"

// preProcessor is the implementation of the PreProcessor interface.
type preProcessor struct {
	registry map[string]string
	included []string
}

// PreProcessor expands #include directives in WGSL source.
type PreProcessor interface {
	// Process expands every #include line in source.
	//
	// Parameters:
	//   - source: raw WGSL source
	//
	// Returns:
	//   - string: the expanded source
	//   - error: an error naming the line of a malformed or unknown include
	Process(source string) (string, error)

	// Included returns the names injected by the most recent Process call, in order.
	Included() []string
}

var _ PreProcessor = &preProcessor{}

// NewPreProcessor creates a PreProcessor with the engine's GPU struct
// sources registered, plus any extra entries.
//
// Parameters:
//   - extra: additional name → WGSL source entries; they override built-ins
//
// Returns:
//   - PreProcessor: a ready-to-use pre-processor instance
func NewPreProcessor(extra map[string]string) PreProcessor {
	registry := map[string]string{
		"camera":          camera.GPUCameraUniformSource,
		"lights":          light.GPULightsSource,
		"model_data":      model.GPUModelDataSource,
		"material_params": material.GPUMaterialParamsSource,
	}
	for name, src := range extra {
		registry[name] = src
	}
	return &preProcessor{registry: registry}
}

func (p *preProcessor) Process(source string) (string, error) {
	p.included = p.included[:0]
	seen := make(map[string]bool)

	lines := strings.Split(source, "\n")
	out := make([]string, 0, len(lines))
	for i, line := range lines {
		rest, ok := strings.CutPrefix(strings.TrimSpace(line), includeDirective)
		if !ok {
			out = append(out, line)
			continue
		}
		name := strings.Trim(strings.TrimSpace(rest), "<>\"")
		if name == "" {
			return "", fmt.Errorf("line %d: #include needs a name", i+1)
		}
		src, ok := p.registry[name]
		if !ok {
			return "", fmt.Errorf("line %d: unknown include %q", i+1, name)
		}
		if seen[name] {
			continue
		}
		seen[name] = true
		p.included = append(p.included, name)
		out = append(out, strings.TrimRight(src, "\n"))
	}
	return strings.Join(out, "\n"), nil
}

func (p *preProcessor) Included() []string {
	return p.included
}
