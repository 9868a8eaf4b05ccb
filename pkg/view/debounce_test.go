package view

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// recorder collects debounce callback invocations.
type recorder struct {
	mu    sync.Mutex
	calls []string
}

func (r *recorder) record(v string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls = append(r.calls, v)
}

func (r *recorder) snapshot() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.calls...)
}

func TestDebouncedWatchCoalesces(t *testing.T) {
	var (
		mu    sync.Mutex
		value string
	)
	set := func(v string) {
		mu.Lock()
		value = v
		mu.Unlock()
	}
	get := func() string {
		mu.Lock()
		defer mu.Unlock()
		return value
	}

	rec := &recorder{}
	w := DebouncedWatch(get, rec.record, 30*time.Millisecond, false)
	defer w.Stop()

	// rapid edits: only the settled value reaches the callback
	for _, v := range []string{"n", "nu", "nue", "nuen"} {
		set(v)
		w.Notify()
		time.Sleep(5 * time.Millisecond)
	}

	time.Sleep(100 * time.Millisecond)
	calls := rec.snapshot()
	require.Len(t, calls, 1)
	assert.Equal(t, "nuen", calls[0])
}

func TestDebouncedWatchImmediate(t *testing.T) {
	rec := &recorder{}
	w := DebouncedWatch(func() string { return "initial" }, rec.record, 30*time.Millisecond, true)
	defer w.Stop()

	// the leading invocation fires synchronously, before any Notify
	calls := rec.snapshot()
	require.Len(t, calls, 1)
	assert.Equal(t, "initial", calls[0])
}

func TestDebouncedWatchSeparateBursts(t *testing.T) {
	rec := &recorder{}
	value := "first"
	var mu sync.Mutex
	get := func() string {
		mu.Lock()
		defer mu.Unlock()
		return value
	}

	w := DebouncedWatch(get, rec.record, 20*time.Millisecond, false)
	defer w.Stop()

	w.Notify()
	time.Sleep(60 * time.Millisecond)

	mu.Lock()
	value = "second"
	mu.Unlock()
	w.Notify()
	time.Sleep(60 * time.Millisecond)

	assert.Equal(t, []string{"first", "second"}, rec.snapshot())
}

func TestWatchStopDropsPending(t *testing.T) {
	rec := &recorder{}
	w := DebouncedWatch(func() string { return "late" }, rec.record, 20*time.Millisecond, false)

	w.Notify()
	w.Stop()

	time.Sleep(60 * time.Millisecond)
	assert.Empty(t, rec.snapshot())

	// Notify after Stop is inert
	w.Notify()
	time.Sleep(60 * time.Millisecond)
	assert.Empty(t, rec.snapshot())
}
