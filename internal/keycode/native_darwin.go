//go:build darwin

package keycode

import "chatkeys/internal/keys"

// Raw codes are CGKeyCodes.
func fromNative(code uint16) keys.Input {
	return FromMac(code)
}
