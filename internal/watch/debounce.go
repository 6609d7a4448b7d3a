package watch

import (
	"sync"
	"time"
)

// debouncer coalesces bursts of raw change notifications into one delivery
// per settle window. Event identity is the path: a create-then-modify burst
// for the same file collapses into a single entry, with the latest kind
// winning. No individual path is ever dropped from a batch.
type debouncer struct {
	window time.Duration
	flush  Notify

	mu           sync.Mutex
	timer        *time.Timer
	events       map[string]bool // path -> deleted
	boardChanged bool
	stopped      bool
}

func newDebouncer(window time.Duration, flush Notify) *debouncer {
	return &debouncer{
		window: window,
		flush:  flush,
		events: make(map[string]bool),
	}
}

// add records one raw event and (re)arms the settle timer.
func (d *debouncer) add(path string, deleted bool) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.stopped {
		return
	}
	d.events[path] = deleted
	d.arm()
}

// markBoard records that the board file changed.
func (d *debouncer) markBoard() {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.stopped {
		return
	}
	d.boardChanged = true
	d.arm()
}

// arm resets the settle timer. Caller holds d.mu.
func (d *debouncer) arm() {
	if d.timer != nil {
		d.timer.Stop()
	}
	d.timer = time.AfterFunc(d.window, d.fire)
}

// fire delivers everything accumulated since the last delivery. The flush
// callback runs while d.mu is held, which is what makes stop a hard cutoff:
// stop blocks on the same lock, so once it returns no delivery is running
// and none can start.
func (d *debouncer) fire() {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.stopped {
		return
	}
	batch := sortedBatch(d.events, d.boardChanged)
	d.events = make(map[string]bool)
	d.boardChanged = false
	if !batch.Empty() {
		d.flush(batch)
	}
}

// stop cancels any pending delivery. Idempotent; after it returns the flush
// callback will not be invoked again.
func (d *debouncer) stop() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.stopped = true
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
}
