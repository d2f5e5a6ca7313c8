//go:build linux && cgo

package input

import (
	"fmt"

	"chatkeys/internal/keycode"
	"chatkeys/internal/keys"

	"github.com/go-vgo/robotgo"
)

// Linux implementation of input injection using robotgo (X11 XTest)

// Injector represents a Linux input injector
type Injector struct{}

// NewInjector creates a new input injector for Linux
func NewInjector() *Injector {
	return &Injector{}
}

// Supports reports whether robotgo has a name for in. Raw codes are not
// supported on Linux.
func (i *Injector) Supports(in keys.Input) bool {
	_, ok := keycode.Robotgo(in)
	return ok
}

// Emit toggles the key down or up.
func (i *Injector) Emit(dir Direction, in keys.Input) error {
	name, ok := keycode.Robotgo(in)
	if !ok {
		return unsupported(in)
	}

	state := "down"
	if dir == Release {
		state = "up"
	}
	if err := robotgo.KeyToggle(name, state); err != nil {
		return fmt.Errorf("robotgo %s %s: %w", dir, in, err)
	}
	return nil
}
