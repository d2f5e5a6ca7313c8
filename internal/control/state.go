// Package control holds the process-wide pause flag and exit signal, and the
// global listener that drives them from two configured keys.
package control

import (
	"context"
	"sync/atomic"
)

// State is the shared pause/exit handle. It is created once in main and
// passed to both the listener (sole writer) and the dispatch engine (reader).
type State struct {
	paused      atomic.Bool
	exitPresses atomic.Int32

	ctx    context.Context
	cancel context.CancelFunc
}

// NewState returns a running, unpaused state whose exit signal also fires
// when parent is cancelled.
func NewState(parent context.Context) *State {
	ctx, cancel := context.WithCancel(parent)
	return &State{ctx: ctx, cancel: cancel}
}

// Paused reports whether dispatch is suspended.
func (s *State) Paused() bool {
	return s.paused.Load()
}

// TogglePause flips the pause flag and returns the new value.
func (s *State) TogglePause() bool {
	for {
		old := s.paused.Load()
		if s.paused.CompareAndSwap(old, !old) {
			return !old
		}
	}
}

// RequestExit fires the exit signal and returns how many times exit has been
// requested so far, including this call.
func (s *State) RequestExit() int {
	n := s.exitPresses.Add(1)
	s.cancel()
	return int(n)
}

// Exiting reports whether the exit signal has fired.
func (s *State) Exiting() bool {
	return s.ctx.Err() != nil
}

// Done is closed once exit has been requested.
func (s *State) Done() <-chan struct{} {
	return s.ctx.Done()
}

// Context is cancelled together with the exit signal.
func (s *State) Context() context.Context {
	return s.ctx
}
