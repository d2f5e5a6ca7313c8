//go:build !windows && (!cgo || (!darwin && !linux))

package input

import "chatkeys/internal/keys"

// Stub implementation for unsupported platforms

// Injector represents a stub input injector
type Injector struct{}

// NewInjector creates a new stub injector
func NewInjector() *Injector {
	return &Injector{}
}

// Supports always reports false (stub)
func (i *Injector) Supports(in keys.Input) bool {
	return false
}

// Emit always fails (stub)
func (i *Injector) Emit(dir Direction, in keys.Input) error {
	return unsupported(in)
}
