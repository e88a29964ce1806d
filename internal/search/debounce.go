// Package search provides the debounce scheduler and the optional speech
// input capability behind catalog search.
package search

import (
	"sync"
	"time"
)

// DefaultInterval is the quiesce window applied to typed search input.
const DefaultInterval = 500 * time.Millisecond

// Debouncer runs a task only after input has quiesced for a fixed
// interval. Scheduling a new task cancels any pending one, so only the
// most recent task ever fires.
type Debouncer struct {
	mu       sync.Mutex
	interval time.Duration
	timer    *time.Timer
}

// NewDebouncer creates a debouncer. Non-positive intervals fall back to
// DefaultInterval.
func NewDebouncer(interval time.Duration) *Debouncer {
	if interval <= 0 {
		interval = DefaultInterval
	}
	return &Debouncer{interval: interval}
}

// Schedule replaces any pending task with fn, to run once the interval
// elapses without another call.
func (d *Debouncer) Schedule(fn func()) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.timer != nil {
		d.timer.Stop()
	}
	d.timer = time.AfterFunc(d.interval, fn)
}

// Cancel clears any pending task without running it.
func (d *Debouncer) Cancel() {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
}
