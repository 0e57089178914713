package loader

import (
	"log/slog"
	"time"
)

// WatcherOption configures a Watcher in NewWatcher.
type WatcherOption func(*Watcher)

// WithWatchLogger reports reloads and failures to l.
func WithWatchLogger(l *slog.Logger) WatcherOption {
	return func(w *Watcher) {
		if l != nil {
			w.logger = l
		}
	}
}

// WithDebounce sets how long the file must stay quiet before it is reloaded.
//
// Parameters:
//   - d: the quiet period, values <= 0 keep the 100ms default
//
// Returns:
//   - WatcherOption: the option
func WithDebounce(d time.Duration) WatcherOption {
	return func(w *Watcher) {
		if d > 0 {
			w.debounce = d
		}
	}
}
