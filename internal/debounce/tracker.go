// Package debounce tracks which inputs are currently held so that a second
// trigger cannot press an input whose previous release has not completed.
package debounce

import (
	"sync"

	"chatkeys/internal/keys"
)

// Tracker is the in-flight set. The zero value is not usable; use New.
type Tracker struct {
	mu       sync.Mutex
	inFlight map[keys.Input]struct{}
}

// New returns an empty tracker.
func New() *Tracker {
	return &Tracker{inFlight: make(map[keys.Input]struct{})}
}

// TryAcquire marks every input as held, or none of them. It fails without
// changing anything if any input is already held.
func (t *Tracker) TryAcquire(inputs []keys.Input) bool {
	t.mu.Lock()
	defer t.mu.Unlock()

	for _, in := range inputs {
		if _, held := t.inFlight[in]; held {
			return false
		}
	}
	for _, in := range inputs {
		t.inFlight[in] = struct{}{}
	}
	return true
}

// Release removes in from the set. Releasing an input that is not held is a
// no-op.
func (t *Tracker) Release(in keys.Input) {
	t.mu.Lock()
	delete(t.inFlight, in)
	t.mu.Unlock()
}

// Held reports whether in is currently in flight.
func (t *Tracker) Held(in keys.Input) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	_, held := t.inFlight[in]
	return held
}

// Snapshot returns the inputs currently in flight, in no particular order.
func (t *Tracker) Snapshot() []keys.Input {
	t.mu.Lock()
	defer t.mu.Unlock()
	out := make([]keys.Input, 0, len(t.inFlight))
	for in := range t.inFlight {
		out = append(out, in)
	}
	return out
}

// Len returns the number of inputs in flight.
func (t *Tracker) Len() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.inFlight)
}
