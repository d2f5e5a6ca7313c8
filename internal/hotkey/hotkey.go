// Package hotkey provides global system-wide key observation and edge-triggered
// hotkey callbacks.
package hotkey

import (
	"errors"
	"sync"

	"chatkeys/internal/keys"
	"chatkeys/internal/log"
)

// ErrUnsupported is returned by Start on platforms without a global hook.
var ErrUnsupported = errors.New("global key capture not supported on this platform")

// Event is a raw key transition.
type Event struct {
	Input keys.Input
	Down  bool
}

// Capture delivers raw key events from a platform hook. Start returns once
// the hook is installed; the callback then runs on the capture thread and
// must not block.
type Capture interface {
	Start(callback func(Event)) error
	Stop() error
}

// New returns the capture for the current platform. watch lists the inputs
// the caller is interested in; backends that can only grab individual keys
// observe just those, the others report every key.
func New(watch ...keys.Input) Capture {
	return newPlatformCapture(watch)
}

// Manager handles global hotkey registration and matching
type Manager struct {
	mu           sync.Mutex
	hotkeys      map[keys.Input]func()
	currentState map[keys.Input]bool // keys currently down
}

// NewManager creates a new hotkey manager
func NewManager() *Manager {
	return &Manager{
		hotkeys:      make(map[keys.Input]func()),
		currentState: make(map[keys.Input]bool),
	}
}

// Register binds callback to in. A later registration for the same input
// replaces the earlier one.
func (m *Manager) Register(in keys.Input, callback func()) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.hotkeys[in] = callback
}

// Watched returns the registered inputs.
func (m *Manager) Watched() []keys.Input {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]keys.Input, 0, len(m.hotkeys))
	for in := range m.hotkeys {
		out = append(out, in)
	}
	return out
}

// UpdateState records a key transition and runs the matching callback on the
// up-to-down edge only; auto-repeat while held does not fire again. The
// callback runs synchronously on the caller's goroutine.
func (m *Manager) UpdateState(ev Event) {
	m.mu.Lock()
	wasDown := m.currentState[ev.Input]
	if ev.Down {
		m.currentState[ev.Input] = true
	} else {
		delete(m.currentState, ev.Input)
	}
	callback := m.hotkeys[ev.Input]
	m.mu.Unlock()

	if ev.Down && !wasDown && callback != nil {
		log.DebugLog.Printf("Hotkey: triggered %s", ev.Input)
		callback()
	}
}
