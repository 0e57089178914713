package loader

import (
	"bytes"
	"context"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/Carmen-Shannon/chipview/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWatcherAppliesOnFlush(t *testing.T) {
	dir := t.TempDir()
	path := writeImage(t, dir, "chip.png")
	l := newTestLoader(t)

	var applied []*common.TextureStagingData
	w, err := NewWatcher(l, path, func(tex *common.TextureStagingData) {
		applied = append(applied, tex)
	}, WithDebounce(10*time.Millisecond))
	require.NoError(t, err)
	t.Cleanup(func() { w.Close() })

	assert.Zero(t, w.Flush(), "nothing pending before a change")

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- w.Run(ctx) }()

	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, image.NewNRGBA(image.Rect(0, 0, 3, 3))))
	require.NoError(t, os.WriteFile(path, buf.Bytes(), 0o644))

	assert.Eventually(t, func() bool { return w.Flush() == 1 }, 2*time.Second, 10*time.Millisecond)
	require.Len(t, applied, 1)
	assert.Equal(t, uint32(3), applied[0].Width)
	assert.Same(t, applied[0], l.Get(path))
	assert.Zero(t, w.Flush(), "a reload is applied once")

	cancel()
	assert.ErrorIs(t, <-done, context.Canceled)
}

func TestWatcherIgnoresSiblings(t *testing.T) {
	dir := t.TempDir()
	path := writeImage(t, dir, "chip.png")
	w, err := NewWatcher(newTestLoader(t), path, func(*common.TextureStagingData) {
		t.Error("sibling change applied")
	}, WithDebounce(5*time.Millisecond))
	require.NoError(t, err)
	t.Cleanup(func() { w.Close() })

	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
	defer cancel()
	go w.Run(ctx)

	writeImage(t, dir, "other.png")
	<-ctx.Done()
	time.Sleep(20 * time.Millisecond)
	assert.Zero(t, w.Flush())
}

func TestNewWatcherMissingDir(t *testing.T) {
	_, err := NewWatcher(newTestLoader(t), filepath.Join(t.TempDir(), "gone", "chip.png"), nil)
	assert.Error(t, err)
}
