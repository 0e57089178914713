package shader

import (
	_ "embed"
	"fmt"
	"os"
)

//go:embed assets/standard.wgsl
var standardSource string

// Default entry point names.
const (
	DefaultVertexEntryPoint   = "vs_main"
	DefaultFragmentEntryPoint = "fs_main"
)

// shader is the implementation of the Shader interface.
type shader struct {
	key           string
	source        string
	vertexEntry   string
	fragmentEntry string
	includedTypes []string
}

// Shader is a pre-processed WGSL module holding both a vertex and a fragment
// entry point.
type Shader interface {
	// Key retrieves the unique identifier for this shader, used for caching and labels.
	//
	// Returns:
	//   - string: the shader's unique key
	Key() string

	// Source retrieves the expanded WGSL source.
	//
	// Returns:
	//   - string: the WGSL source code of the shader
	Source() string

	// VertexEntryPoint returns the name of the @vertex function.
	VertexEntryPoint() string

	// FragmentEntryPoint returns the name of the @fragment function.
	FragmentEntryPoint() string

	// Includes returns the struct names injected by the pre-processor.
	Includes() []string
}

var _ Shader = &shader{}

// NewShader pre-processes source and wraps it as a Shader.
//
// Parameters:
//   - key: unique identifier
//   - source: raw WGSL with #include directives
//   - options: functional options to configure the shader
//
// Returns:
//   - Shader: the processed shader
//   - error: error if pre-processing fails
func NewShader(key, source string, options ...ShaderBuilderOption) (Shader, error) {
	s := &shader{
		key:           key,
		vertexEntry:   DefaultVertexEntryPoint,
		fragmentEntry: DefaultFragmentEntryPoint,
	}
	for _, opt := range options {
		opt(s)
	}

	pp := NewPreProcessor(nil)
	processed, err := pp.Process(source)
	if err != nil {
		return nil, fmt.Errorf("shader %s: %w", key, err)
	}
	s.source = processed
	s.includedTypes = append([]string(nil), pp.Included()...)
	return s, nil
}

// NewShaderFromFile reads WGSL from path and pre-processes it.
//
// Parameters:
//   - key: unique identifier
//   - path: path to a .wgsl file
//   - options: functional options to configure the shader
//
// Returns:
//   - Shader: the processed shader
//   - error: error if the file cannot be read or processed
func NewShaderFromFile(key, path string, options ...ShaderBuilderOption) (Shader, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read shader %s: %w", path, err)
	}
	return NewShader(key, string(data), options...)
}

// Standard returns the built-in shader used for lit meshes, textured meshes
// and unlit lines.
//
// Returns:
//   - Shader: the standard shader
//   - error: error if the embedded source fails to process
func Standard() (Shader, error) {
	return NewShader("standard", standardSource)
}

func (s *shader) Key() string {
	return s.key
}

func (s *shader) Source() string {
	return s.source
}

func (s *shader) VertexEntryPoint() string {
	return s.vertexEntry
}

func (s *shader) FragmentEntryPoint() string {
	return s.fragmentEntry
}

func (s *shader) Includes() []string {
	return s.includedTypes
}

// ShaderBuilderOption is a functional option for configuring a Shader.
type ShaderBuilderOption func(*shader)

// WithEntryPoints overrides the vertex and fragment entry point names.
//
// Parameters:
//   - vertex: @vertex function name
//   - fragment: @fragment function name
//
// Returns:
//   - ShaderBuilderOption: functional option to set the entry points
func WithEntryPoints(vertex, fragment string) ShaderBuilderOption {
	return func(s *shader) {
		s.vertexEntry = vertex
		s.fragmentEntry = fragment
	}
}
