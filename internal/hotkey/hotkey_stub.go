//go:build !windows && (!cgo || (!darwin && !linux))

package hotkey

import "chatkeys/internal/keys"

type stubCapture struct{}

func newPlatformCapture(_ []keys.Input) Capture {
	return stubCapture{}
}

func (stubCapture) Start(func(Event)) error { return ErrUnsupported }

func (stubCapture) Stop() error { return nil }
