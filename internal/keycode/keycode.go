// Package keycode translates canonical inputs to and from the key codes of
// each platform backend. The tables are plain data so they can be checked on
// any OS, while the backends themselves are build-tagged.
package keycode

import (
	"math"

	"chatkeys/internal/keys"
)

// WinKey is a Windows virtual-key code plus the extended-key flag needed to
// tell e.g. the keypad Enter apart from Return.
type WinKey struct {
	VK       uint16
	Extended bool
}

// Windows returns the virtual-key code for in. Raw inputs pass through.
func Windows(in keys.Input) (WinKey, bool) {
	if k, ok := in.Key(); ok {
		wk, found := windowsKeys[k]
		return wk, found
	}
	if code, ok := in.Raw(); ok && code <= math.MaxUint16 {
		return WinKey{VK: uint16(code)}, true
	}
	return WinKey{}, false
}

// FromWindows maps a hook event back to a canonical input. Unnamed codes
// become raw inputs.
func FromWindows(vk uint16, extended bool) keys.Input {
	if k, ok := windowsReverse[WinKey{VK: vk, Extended: extended}]; ok {
		return keys.KeyInput(k)
	}
	if k, ok := windowsReverse[WinKey{VK: vk, Extended: !extended}]; ok {
		return keys.KeyInput(k)
	}
	return keys.RawKey(uint32(vk))
}

// Mac returns the CGKeyCode for in. Raw inputs pass through.
func Mac(in keys.Input) (uint16, bool) {
	if k, ok := in.Key(); ok {
		code, found := macKeys[k]
		return code, found
	}
	if code, ok := in.Raw(); ok && code <= math.MaxUint16 {
		return uint16(code), true
	}
	return 0, false
}

// FromMac maps a CGKeyCode back to a canonical input.
func FromMac(code uint16) keys.Input {
	if k, ok := macReverse[code]; ok {
		return keys.KeyInput(k)
	}
	return keys.RawKey(uint32(code))
}

// Robotgo returns the robotgo key name for in. Raw inputs have no name.
func Robotgo(in keys.Input) (string, bool) {
	k, ok := in.Key()
	if !ok {
		return "", false
	}
	name, found := robotgoKeys[k]
	return name, found
}

// X11 returns the X11 keysym for in. Raw inputs are taken as keysyms.
func X11(in keys.Input) (uint16, bool) {
	if k, ok := in.Key(); ok {
		sym, found := x11Keys[k]
		return sym, found
	}
	if code, ok := in.Raw(); ok && code <= math.MaxUint16 {
		return uint16(code), true
	}
	return 0, false
}

// FromX11 maps a keysym back to a canonical input.
func FromX11(sym uint16) keys.Input {
	if k, ok := x11Reverse[sym]; ok {
		return keys.KeyInput(k)
	}
	return keys.RawKey(uint32(sym))
}

// Normalize replaces a raw input whose code has a name on this platform with
// the named input, so "Unknown(N)" and the key's name are the same input.
// Named inputs and codes without a name are returned unchanged.
func Normalize(in keys.Input) keys.Input {
	code, ok := in.Raw()
	if !ok || code > math.MaxUint16 {
		return in
	}
	return fromNative(uint16(code))
}

var (
	windowsReverse = reverseWindows()
	macReverse     = reverseMac()
	x11Reverse     = reverseX11()
)

func reverseWindows() map[WinKey]keys.Key {
	m := make(map[WinKey]keys.Key, len(windowsKeys))
	for k, wk := range windowsKeys {
		m[wk] = k
	}
	return m
}

func reverseX11() map[uint16]keys.Key {
	m := make(map[uint16]keys.Key, len(x11Keys))
	for k, sym := range x11Keys {
		m[sym] = k
	}
	return m
}

func reverseMac() map[uint16]keys.Key {
	m := make(map[uint16]keys.Key, len(macKeys))
	for k, code := range macKeys {
		m[code] = k
	}
	return m
}
