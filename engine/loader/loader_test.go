package loader

import (
	"bytes"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/Carmen-Shannon/chipview/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/image/bmp"
)

// testImage is 2x2: red, green on the top row and blue, white below.
func testImage() *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, 2, 2))
	img.Set(0, 0, color.NRGBA{R: 255, A: 255})
	img.Set(1, 0, color.NRGBA{G: 255, A: 255})
	img.Set(0, 1, color.NRGBA{B: 255, A: 255})
	img.Set(1, 1, color.NRGBA{R: 255, G: 255, B: 255, A: 255})
	return img
}

func writeImage(t *testing.T, dir, name string) string {
	t.Helper()
	var buf bytes.Buffer
	switch filepath.Ext(name) {
	case ".png":
		require.NoError(t, png.Encode(&buf, testImage()))
	case ".jpg":
		require.NoError(t, jpeg.Encode(&buf, testImage(), &jpeg.Options{Quality: 100}))
	case ".bmp":
		require.NoError(t, bmp.Encode(&buf, testImage()))
	default:
		t.Fatalf("no encoder for %s", name)
	}
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, buf.Bytes(), 0o644))
	return path
}

func newTestLoader(t *testing.T, options ...LoaderBuilderOption) Loader {
	t.Helper()
	l := NewLoader(append([]LoaderBuilderOption{WithWorkers(2)}, options...)...)
	t.Cleanup(l.Close)
	return l
}

func TestLoadPNG(t *testing.T) {
	path := writeImage(t, t.TempDir(), "chip.png")
	l := newTestLoader(t)

	tex, err := l.Load(path)
	require.NoError(t, err)
	assert.Equal(t, uint32(2), tex.Width)
	assert.Equal(t, uint32(2), tex.Height)
	require.Len(t, tex.Pixels, 16)
	assert.Equal(t, []byte{255, 0, 0, 255}, tex.Pixels[0:4])
	assert.Equal(t, []byte{0, 255, 0, 255}, tex.Pixels[4:8])
	assert.Equal(t, []byte{0, 0, 255, 255}, tex.Pixels[8:12])

	again, err := l.Load(path)
	require.NoError(t, err)
	assert.Same(t, tex, again, "second load is served from the cache")
	assert.Same(t, tex, l.Get(path))
}

func TestLoadFormats(t *testing.T) {
	dir := t.TempDir()
	tests := []struct {
		name string
		file string
	}{
		{"png", "a.png"},
		{"jpeg", "b.jpg"},
		{"bmp", "c.bmp"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l := newTestLoader(t)
			tex, err := l.Load(writeImage(t, dir, tt.file))
			require.NoError(t, err)
			assert.Equal(t, uint32(2), tex.Width)
			assert.Len(t, tex.Pixels, 16)
		})
	}
}

func TestLoadErrors(t *testing.T) {
	dir := t.TempDir()
	l := newTestLoader(t)

	tga := filepath.Join(dir, "chip.tga")
	require.NoError(t, os.WriteFile(tga, []byte{0, 0, 2, 0, 0, 0}, 0o644))
	_, err := l.Load(tga)
	assert.ErrorIs(t, err, ErrUnsupportedFormat)

	_, err = l.Load(filepath.Join(dir, "missing.png"))
	assert.ErrorIs(t, err, os.ErrNotExist)

	corrupt := filepath.Join(dir, "corrupt.png")
	require.NoError(t, os.WriteFile(corrupt, []byte("not an image"), 0o644))
	_, err = l.Load(corrupt)
	assert.Error(t, err)
	assert.Nil(t, l.Get(corrupt), "failures are not cached")
}

func TestLoadSniffsContent(t *testing.T) {
	dir := t.TempDir()
	src := writeImage(t, dir, "chip.png")
	data, err := os.ReadFile(src)
	require.NoError(t, err)

	for _, name := range []string{"chip", "mislabeled.jpg", "chip.tex"} {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(dir, name)
			require.NoError(t, os.WriteFile(path, data, 0o644))

			tex, err := newTestLoader(t).Load(path)
			require.NoError(t, err)
			assert.Equal(t, []byte{255, 0, 0, 255}, tex.Pixels[0:4])
		})
	}
}

func TestReload(t *testing.T) {
	dir := t.TempDir()
	path := writeImage(t, dir, "chip.png")
	l := newTestLoader(t)

	first, err := l.Load(path)
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, image.NewNRGBA(image.Rect(0, 0, 4, 1))))
	require.NoError(t, os.WriteFile(path, buf.Bytes(), 0o644))

	second, err := l.Reload(path)
	require.NoError(t, err)
	assert.Equal(t, uint32(4), second.Width)
	assert.NotSame(t, first, second)
	assert.Same(t, second, l.Get(path))

	require.NoError(t, os.WriteFile(path, []byte("half written"), 0o644))
	_, err = l.Reload(path)
	assert.Error(t, err)
	assert.Same(t, second, l.Get(path), "failed reload keeps the last good texture")
}

func TestLoadAll(t *testing.T) {
	dir := t.TempDir()
	good := []string{
		writeImage(t, dir, "a.png"),
		writeImage(t, dir, "b.jpg"),
		writeImage(t, dir, "c.bmp"),
	}
	bad := filepath.Join(dir, "missing.png")
	l := newTestLoader(t)

	textures, err := l.LoadAll(append(good, bad)...)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "missing.png")
	assert.Len(t, textures, 3)
	for _, p := range good {
		assert.NotNil(t, textures[p])
	}
	assert.Len(t, l.Textures(), 3)

	textures, err = l.LoadAll(good...)
	require.NoError(t, err)
	assert.Len(t, textures, 3)
}

func TestLoadReader(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, testImage()))
	l := newTestLoader(t)

	tex, err := l.LoadReader("embedded", "png", &buf)
	require.NoError(t, err)
	assert.Equal(t, uint32(2), tex.Height)
	assert.Same(t, tex, l.Get("embedded"))

	_, err = l.LoadReader("other", ".gif", bytes.NewReader(nil))
	assert.ErrorIs(t, err, ErrUnsupportedFormat)

	buf.Reset()
	require.NoError(t, bmp.Encode(&buf, testImage()))
	sniffed, err := l.LoadReader("sniffed", "", &buf)
	require.NoError(t, err)
	assert.Equal(t, uint32(2), sniffed.Width)
}

func TestWithFlipY(t *testing.T) {
	path := writeImage(t, t.TempDir(), "chip.png")
	l := newTestLoader(t, WithFlipY(true))

	tex, err := l.Load(path)
	require.NoError(t, err)
	assert.Equal(t, []byte{0, 0, 255, 255}, tex.Pixels[0:4], "bottom row comes first")
	assert.Equal(t, []byte{255, 0, 0, 255}, tex.Pixels[8:12])
}

func TestWithTexture(t *testing.T) {
	white := &common.TextureStagingData{Pixels: []byte{255, 255, 255, 255}, Width: 1, Height: 1}
	l := newTestLoader(t, WithTexture("white", white))
	assert.Same(t, white, l.Get("white"))
}
