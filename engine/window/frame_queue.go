package window

import "sync"

// frameQueue holds at most one pending frame callback. Callbacks requested
// while a callback is running are kept for the next Run.
type frameQueue struct {
	mu      sync.Mutex
	pending func(timestamp float64)
}

// Request replaces the pending callback.
func (q *frameQueue) Request(callback func(timestamp float64)) {
	q.mu.Lock()
	q.pending = callback
	q.mu.Unlock()
}

// Run invokes and clears the pending callback. It reports whether one ran.
func (q *frameQueue) Run(timestamp float64) bool {
	q.mu.Lock()
	cb := q.pending
	q.pending = nil
	q.mu.Unlock()

	if cb == nil {
		return false
	}
	cb(timestamp)
	return true
}

// Pending reports whether a callback is waiting.
func (q *frameQueue) Pending() bool {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.pending != nil
}
