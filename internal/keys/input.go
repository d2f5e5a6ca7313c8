package keys

import "fmt"

// Kind tags the variant of an Input.
type Kind uint8

const (
	// KindKeyboard is a single keyboard key, named or raw.
	KindKeyboard Kind = iota + 1
)

func (k Kind) String() string {
	switch k {
	case KindKeyboard:
		return "keyboard"
	default:
		return fmt.Sprintf("kind(%d)", uint8(k))
	}
}

// Input is a canonical hardware input. It is comparable, so it can be used
// directly as a map key; two inputs are equal when kind, key and raw code
// all match. New kinds (pointer buttons) extend Kind without changing that
// contract.
type Input struct {
	kind Kind
	key  Key
	raw  uint32
}

// KeyInput returns the canonical input for a named key.
func KeyInput(k Key) Input {
	return Input{kind: KindKeyboard, key: k}
}

// RawKey returns the canonical input for a platform key code that has no
// name, written as "Unknown(N)" in configuration.
func RawKey(code uint32) Input {
	return Input{kind: KindKeyboard, raw: code}
}

// Kind returns the variant tag. The zero Input has kind 0.
func (i Input) Kind() Kind { return i.kind }

// Key returns the named key. ok is false for raw codes and the zero Input.
func (i Input) Key() (k Key, ok bool) {
	if i.kind != KindKeyboard || !i.key.Valid() {
		return KeyNone, false
	}
	return i.key, true
}

// Raw returns the platform code of an unnamed key.
func (i Input) Raw() (code uint32, ok bool) {
	if i.kind != KindKeyboard || i.key != KeyNone {
		return 0, false
	}
	return i.raw, true
}

// IsZero reports whether i is the zero Input.
func (i Input) IsZero() bool {
	return i.kind == 0
}

func (i Input) String() string {
	if k, ok := i.Key(); ok {
		return k.String()
	}
	if code, ok := i.Raw(); ok {
		return fmt.Sprintf("Unknown(%d)", code)
	}
	return "<none>"
}
