package view

import (
	"sync"
	"time"
)

// Watch debounces a changing input value: each Notify re-arms a single-slot
// timer, and only once the input has been quiet for the full delay does the
// callback fire, with the latest value. A superseded timer never fires, so at
// most one callback runs per settled input.
type Watch struct {
	mu      sync.Mutex
	timer   *time.Timer
	delay   time.Duration
	source  func() string
	cb      func(string)
	stopped bool
}

// DebouncedWatch wires a source getter to a callback through the debounce
// timer. With immediate set, the callback fires once synchronously with the
// current source value before any debouncing starts (leading invocation).
func DebouncedWatch(source func() string, cb func(string), delay time.Duration, immediate bool) *Watch {
	w := &Watch{
		delay:  delay,
		source: source,
		cb:     cb,
	}
	if immediate {
		cb(source())
	}
	return w
}

// Notify signals that the source value changed. Any pending invocation is
// discarded and the timer restarts.
func (w *Watch) Notify() {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.stopped {
		return
	}
	if w.timer != nil {
		w.timer.Stop()
	}
	w.timer = time.AfterFunc(w.delay, w.fire)
}

func (w *Watch) fire() {
	w.mu.Lock()
	if w.stopped {
		w.mu.Unlock()
		return
	}
	w.mu.Unlock()
	// read the source at fire time so the callback always sees the latest value
	w.cb(w.source())
}

// Stop disposes the watch; pending and future invocations are dropped.
func (w *Watch) Stop() {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.stopped = true
	if w.timer != nil {
		w.timer.Stop()
	}
}
