// Package input provides cross-platform synthetic key press and release.
package input

import (
	"errors"
	"fmt"

	"chatkeys/internal/keys"
	"chatkeys/internal/log"
)

// ErrUnsupported is returned when the platform backend cannot emit an input.
var ErrUnsupported = errors.New("input not supported on this platform")

// Direction is the half of a key stroke being emitted.
type Direction uint8

const (
	Press Direction = iota + 1
	Release
)

func (d Direction) String() string {
	switch d {
	case Press:
		return "press"
	case Release:
		return "release"
	default:
		return fmt.Sprintf("direction(%d)", uint8(d))
	}
}

// Emitter injects input events into the OS. Emit is synchronous: when it
// returns nil the event is visible in OS input state.
type Emitter interface {
	Emit(dir Direction, in keys.Input) error
	Supports(in keys.Input) bool
}

// Unsupported returns the inputs in list that e cannot emit.
func Unsupported(e Emitter, list []keys.Input) []keys.Input {
	var out []keys.Input
	for _, in := range list {
		if !e.Supports(in) {
			out = append(out, in)
		}
	}
	return out
}

// DryRun logs every event instead of injecting it.
type DryRun struct{}

// Emit logs the event.
func (DryRun) Emit(dir Direction, in keys.Input) error {
	log.InfoLog.Printf("Input: dry-run %s %s", dir, in)
	return nil
}

// Supports accepts every keyboard input.
func (DryRun) Supports(in keys.Input) bool {
	return in.Kind() == keys.KindKeyboard
}

func unsupported(in keys.Input) error {
	return fmt.Errorf("%w: %s", ErrUnsupported, in)
}
