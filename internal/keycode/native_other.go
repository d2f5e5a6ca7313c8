//go:build !windows && !darwin

package keycode

import "chatkeys/internal/keys"

// Raw codes are X11 keysyms.
func fromNative(code uint16) keys.Input {
	return FromX11(code)
}
