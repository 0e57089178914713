package loader

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"sync"
	"time"

	"github.com/Carmen-Shannon/chipview/common"
	"github.com/fsnotify/fsnotify"
)

// Watcher reloads a texture file whenever it changes on disk. Reloads happen
// on the Run goroutine; the decoded texture is handed to apply only from
// Flush, which the frame driver calls on the render thread.
type Watcher struct {
	loader Loader
	path   string
	apply  func(*common.TextureStagingData)

	fs       *fsnotify.Watcher
	logger   *slog.Logger
	debounce time.Duration

	mu      sync.Mutex
	pending *common.TextureStagingData
}

// NewWatcher watches path for writes. The parent directory is watched rather
// than the file so editors that save by rename are still seen.
//
// Parameters:
//   - l: the loader used to decode the file
//   - path: the texture file
//   - apply: called from Flush with each reloaded texture
//   - options: WatcherOption functions
//
// Returns:
//   - *Watcher: the watcher, idle until Run
//   - error: an error if the directory cannot be watched
func NewWatcher(l Loader, path string, apply func(*common.TextureStagingData), options ...WatcherOption) (*Watcher, error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create file watcher: %w", err)
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		fw.Close()
		return nil, err
	}
	if err := fw.Add(filepath.Dir(abs)); err != nil {
		fw.Close()
		return nil, fmt.Errorf("failed to watch %s: %w", path, err)
	}

	w := &Watcher{
		loader:   l,
		path:     abs,
		apply:    apply,
		fs:       fw,
		logger:   slog.New(slog.DiscardHandler),
		debounce: 100 * time.Millisecond,
	}
	for _, opt := range options {
		opt(w)
	}
	return w, nil
}

// Run reloads the file after each burst of changes until ctx is done or the
// watcher is closed.
func (w *Watcher) Run(ctx context.Context) error {
	timer := time.NewTimer(w.debounce)
	timer.Stop()
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case ev, ok := <-w.fs.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(ev.Name) != w.path || !ev.Has(fsnotify.Write|fsnotify.Create) {
				continue
			}
			timer.Reset(w.debounce)
		case err, ok := <-w.fs.Errors:
			if !ok {
				return nil
			}
			w.logger.Warn("texture watch error", "path", w.path, "err", err)
		case <-timer.C:
			w.reload()
		}
	}
}

func (w *Watcher) reload() {
	tex, err := w.loader.Reload(w.path)
	if err != nil {
		// Usually a save still in progress; the next write event retries.
		w.logger.Warn("texture reload failed", "path", w.path, "err", err)
		return
	}
	w.logger.Info("texture reloaded", "path", w.path, "width", tex.Width, "height", tex.Height)

	w.mu.Lock()
	w.pending = tex
	w.mu.Unlock()
}

// Flush applies the newest reloaded texture, if any, and reports how many
// textures it applied.
func (w *Watcher) Flush() int {
	w.mu.Lock()
	tex := w.pending
	w.pending = nil
	w.mu.Unlock()

	if tex == nil {
		return 0
	}
	w.apply(tex)
	return 1
}

// Close stops watching. Run returns once its channels drain.
func (w *Watcher) Close() error {
	return w.fs.Close()
}
