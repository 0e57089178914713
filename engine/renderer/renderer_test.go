package renderer

import (
	"errors"
	"fmt"
	"testing"

	"github.com/Carmen-Shannon/chipview/common"
	"github.com/Carmen-Shannon/chipview/engine/camera"
	"github.com/Carmen-Shannon/chipview/engine/game_object"
	"github.com/Carmen-Shannon/chipview/engine/light"
	"github.com/Carmen-Shannon/chipview/engine/model"
	"github.com/Carmen-Shannon/chipview/engine/renderer/bind_group_provider"
	"github.com/Carmen-Shannon/chipview/engine/renderer/material"
	"github.com/Carmen-Shannon/chipview/engine/renderer/pipeline"
	"github.com/Carmen-Shannon/chipview/engine/scene"
	"github.com/cogentcore/webgpu/wgpu"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeTarget struct{ w, h int }

func (f fakeTarget) SurfaceDescriptor() *wgpu.SurfaceDescriptor { return nil }
func (f fakeTarget) FramebufferSize() (int, int)                { return f.w, f.h }

type write struct {
	label   string
	binding int
}

type fakeBackend struct {
	configured  [][2]int
	presentMode PresentMode
	pipelines   []pipeline.Key
	objectInits int
	writes      []write
	clear       common.Color
	draws       []string
	presented   int
	released    bool

	beginErr    error
	pipelineErr map[pipeline.Key]error
}

func (f *fakeBackend) ConfigureSurface(w, h int) error {
	f.configured = append(f.configured, [2]int{w, h})
	return nil
}

func (f *fakeBackend) SetPresentMode(mode PresentMode) { f.presentMode = mode }

func (f *fakeBackend) RegisterPipeline(p pipeline.Pipeline) error {
	if err := f.pipelineErr[p.Key()]; err != nil {
		return err
	}
	f.pipelines = append(f.pipelines, p.Key())
	return nil
}

func (f *fakeBackend) InitFrameBindGroup(p bind_group_provider.BindGroupProvider) error { return nil }

func (f *fakeBackend) InitObjectBindGroup(p bind_group_provider.BindGroupProvider, m model.Model, tex *common.TextureStagingData) error {
	f.objectInits++
	p.SetMesh(nil, nil, m.IndexCount())
	return nil
}

func (f *fakeBackend) WriteBuffers(writes []bind_group_provider.BufferWrite) {
	for _, w := range writes {
		f.writes = append(f.writes, write{label: w.Provider.Label(), binding: w.Binding})
	}
}

func (f *fakeBackend) BeginFrame(clear common.Color) error {
	if f.beginErr != nil {
		return f.beginErr
	}
	f.clear = clear
	return nil
}

func (f *fakeBackend) DrawCall(p pipeline.Pipeline, object, frame bind_group_provider.BindGroupProvider) {
	f.draws = append(f.draws, fmt.Sprintf("%s:%s", object.Label(), p.Key()))
}

func (f *fakeBackend) EndFrame() error { return nil }
func (f *fakeBackend) Present()        { f.presented++ }
func (f *fakeBackend) Release()        { f.released = true }

func (f *fakeBackend) materialWrites() int {
	n := 0
	for _, w := range f.writes {
		if w.label != "Frame" && w.binding == BindingMaterialParams {
			n++
		}
	}
	return n
}

type fixture struct {
	backend *fakeBackend
	r       Renderer
	scene   scene.Scene
	cam     camera.Camera
	chip    game_object.GameObject
	grid    game_object.GameObject
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	fb := &fakeBackend{}
	r, err := NewRenderer(fakeTarget{w: 800, h: 600}, WithBackend(fb), WithPresentMode(PresentModeUncapped))
	require.NoError(t, err)

	chip := game_object.NewMesh(model.NewBox(1, 0.2, 1), material.NewPhong(common.ColorFromHex(0x44aa88)),
		game_object.WithName("chip"), game_object.WithRenderOrder(1))
	grid := game_object.NewMesh(model.NewGrid(10, 10), material.NewLineBasic(material.WithDepthTest(false)),
		game_object.WithName("grid"))
	s := scene.NewScene("test",
		scene.WithBackground(common.ColorFromHex(0x202020)),
		scene.WithObjects(chip, grid),
		scene.WithLights(light.NewDirectional()),
	)
	return &fixture{backend: fb, r: r, scene: s, cam: camera.NewCamera(camera.WithPosition(0, 2, 5)), chip: chip, grid: grid}
}

func TestNewRendererConfiguresSurface(t *testing.T) {
	f := newFixture(t)
	assert.Equal(t, [][2]int{{800, 600}}, f.backend.configured)
	assert.Equal(t, PresentModeUncapped, f.backend.presentMode)

	w, h := f.r.BackingSize()
	assert.Equal(t, 800, w)
	assert.Equal(t, 600, h)
}

func TestRenderDrawsInRenderOrder(t *testing.T) {
	f := newFixture(t)
	require.NoError(t, f.r.Render(f.scene, f.cam))

	assert.Equal(t, []string{"grid:lines+overlay", "chip:triangles"}, f.backend.draws)
	assert.Equal(t, common.ColorFromHex(0x202020), f.backend.clear)
	assert.Equal(t, 1, f.backend.presented)
	assert.ElementsMatch(t, []pipeline.Key{
		{Topology: material.TopologyLines, DepthTest: false},
		{Topology: material.TopologyTriangles, DepthTest: true},
	}, f.backend.pipelines)

	require.NoError(t, f.r.Render(f.scene, f.cam))
	assert.Len(t, f.backend.pipelines, 2, "pipelines are created once")
	assert.Equal(t, 2, f.backend.objectInits, "objects are uploaded once")
	assert.NotNil(t, f.r.Pipeline(pipeline.Key{Topology: material.TopologyTriangles, DepthTest: true}))
}

func TestRenderWritesFrameUniforms(t *testing.T) {
	f := newFixture(t)
	require.NoError(t, f.r.Render(f.scene, f.cam))
	assert.Contains(t, f.backend.writes, write{label: "Frame", binding: BindingCamera})
	assert.Contains(t, f.backend.writes, write{label: "Frame", binding: BindingLights})
	assert.Contains(t, f.backend.writes, write{label: "chip", binding: BindingModelData})
}

func TestMaterialUploadedOnlyWhenChanged(t *testing.T) {
	f := newFixture(t)
	require.NoError(t, f.r.Render(f.scene, f.cam))
	assert.Equal(t, 2, f.backend.materialWrites())

	require.NoError(t, f.r.Render(f.scene, f.cam))
	assert.Equal(t, 2, f.backend.materialWrites(), "unchanged materials are not re-written")

	f.chip.Material().SetColor(common.ColorFromHex(0xff0000))
	require.NoError(t, f.r.Render(f.scene, f.cam))
	assert.Equal(t, 3, f.backend.materialWrites())
}

func TestRemovedObjectsAreReleased(t *testing.T) {
	f := newFixture(t)
	require.NoError(t, f.r.Render(f.scene, f.cam))

	f.scene.Remove(f.grid.ID())
	require.NoError(t, f.r.Render(f.scene, f.cam))
	assert.Equal(t, "chip:triangles", f.backend.draws[len(f.backend.draws)-1])

	f.scene.Add(f.grid)
	require.NoError(t, f.r.Render(f.scene, f.cam))
	assert.Equal(t, 3, f.backend.objectInits, "re-added object is uploaded again")
}

func TestTextureSwapReuploads(t *testing.T) {
	f := newFixture(t)
	require.NoError(t, f.r.Render(f.scene, f.cam))

	f.chip.Material().SetDiffuseTexture(&common.TextureStagingData{Pixels: make([]byte, 4), Width: 1, Height: 1})
	require.NoError(t, f.r.Render(f.scene, f.cam))
	assert.Equal(t, 3, f.backend.objectInits)
}

func TestSurfaceUnavailableSkipsFrame(t *testing.T) {
	f := newFixture(t)
	f.backend.beginErr = fmt.Errorf("%w: outdated", ErrSurfaceUnavailable)

	assert.NoError(t, f.r.Render(f.scene, f.cam))
	assert.Empty(t, f.backend.draws)
	assert.Zero(t, f.backend.presented)
	assert.Equal(t, [2]int{800, 600}, f.backend.configured[len(f.backend.configured)-1], "surface is reconfigured")

	f.backend.beginErr = errors.New("device lost")
	assert.Error(t, f.r.Render(f.scene, f.cam))
}

func TestPipelineErrorDoesNotStopOtherDraws(t *testing.T) {
	f := newFixture(t)
	bad := pipeline.Key{Topology: material.TopologyLines, DepthTest: false}
	f.backend.pipelineErr = map[pipeline.Key]error{bad: errors.New("boom")}

	err := f.r.Render(f.scene, f.cam)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "lines+overlay")
	assert.Equal(t, []string{"chip:triangles"}, f.backend.draws)
	assert.Equal(t, 1, f.backend.presented)
}

func TestSetBackingSize(t *testing.T) {
	f := newFixture(t)
	f.r.SetBackingSize(1600, 1200)
	assert.Equal(t, [2]int{1600, 1200}, f.backend.configured[len(f.backend.configured)-1])

	f.r.SetBackingSize(0, 0)
	w, h := f.r.BackingSize()
	assert.Zero(t, w)
	assert.Zero(t, h)
	require.NoError(t, f.r.Render(f.scene, f.cam))
	assert.Empty(t, f.backend.draws, "zero-sized surface skips drawing")
}

func TestRelease(t *testing.T) {
	f := newFixture(t)
	require.NoError(t, f.r.Render(f.scene, f.cam))
	f.r.Release()
	assert.True(t, f.backend.released)
	assert.Nil(t, f.r.Pipeline(pipeline.Key{Topology: material.TopologyTriangles, DepthTest: true}))
}

func TestPickAlphaMode(t *testing.T) {
	assert.Equal(t, wgpu.CompositeAlphaModeAuto, pickAlphaMode(nil))
	assert.Equal(t, wgpu.CompositeAlphaModeOpaque,
		pickAlphaMode([]wgpu.CompositeAlphaMode{wgpu.CompositeAlphaModeOpaque, wgpu.CompositeAlphaModePremultiplied}))
}
