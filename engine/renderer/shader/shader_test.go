package shader

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProcessInjectsOnce(t *testing.T) {
	pp := NewPreProcessor(map[string]string{"extra": "struct Extra { v: f32 };\n"})
	out, err := pp.Process("#include <extra>\n  #include \"extra\"\nfn main() {}")
	require.NoError(t, err)

	assert.Equal(t, 1, strings.Count(out, "struct Extra"))
	assert.Contains(t, out, "fn main() {}")
	assert.Equal(t, []string{"extra"}, pp.Included())
}

func TestProcessErrors(t *testing.T) {
	pp := NewPreProcessor(nil)

	_, err := pp.Process("fn a() {}\n#include <missing>")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "line 2")

	_, err = pp.Process("#include")
	assert.Error(t, err)
}

func TestStandardShader(t *testing.T) {
	s, err := Standard()
	require.NoError(t, err)

	assert.Equal(t, []string{"camera", "lights", "model_data", "material_params"}, s.Includes())
	assert.NotContains(t, s.Source(), "#include")
	for _, name := range []string{"struct CameraUniform", "struct Lights", "struct ModelData", "struct MaterialParams"} {
		assert.Contains(t, s.Source(), name)
	}
	assert.Equal(t, DefaultVertexEntryPoint, s.VertexEntryPoint())
	assert.Equal(t, DefaultFragmentEntryPoint, s.FragmentEntryPoint())
}

func TestNewShaderFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "custom.wgsl")
	require.NoError(t, os.WriteFile(path, []byte("#include <camera>\n@vertex fn v() {}"), 0o644))

	s, err := NewShaderFromFile("custom", path, WithEntryPoints("v", "f"))
	require.NoError(t, err)
	assert.Equal(t, "v", s.VertexEntryPoint())
	assert.Contains(t, s.Source(), "CameraUniform")

	_, err = NewShaderFromFile("missing", filepath.Join(t.TempDir(), "nope.wgsl"))
	assert.Error(t, err)
}
