//go:build windows

package keycode

import "chatkeys/internal/keys"

// Raw codes are virtual-key codes.
func fromNative(code uint16) keys.Input {
	return FromWindows(code, false)
}
