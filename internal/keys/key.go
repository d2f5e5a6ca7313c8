// Package keys resolves human-readable key names to canonical inputs.
package keys

import "fmt"

// Key identifies a named keyboard key.
type Key uint16

const (
	// KeyNone is the zero value and never resolves.
	KeyNone Key = iota

	// Modifiers
	KeyAlt
	KeyAltGr
	KeyControlLeft
	KeyControlRight
	KeyShiftLeft
	KeyShiftRight
	KeyMetaLeft
	KeyMetaRight
	KeyFunction

	// Editing and navigation
	KeyBackspace
	KeyCapsLock
	KeyDelete
	KeyEnd
	KeyEscape
	KeyHome
	KeyInsert
	KeyPageDown
	KeyPageUp
	KeyReturn
	KeySpace
	KeyTab
	KeyPrintScreen
	KeyScrollLock
	KeyPause
	KeyNumLock

	// Arrows
	KeyUpArrow
	KeyDownArrow
	KeyLeftArrow
	KeyRightArrow

	// Function row
	KeyF1
	KeyF2
	KeyF3
	KeyF4
	KeyF5
	KeyF6
	KeyF7
	KeyF8
	KeyF9
	KeyF10
	KeyF11
	KeyF12

	// Digit row
	KeyNum1
	KeyNum2
	KeyNum3
	KeyNum4
	KeyNum5
	KeyNum6
	KeyNum7
	KeyNum8
	KeyNum9
	KeyNum0

	// Letters
	KeyA
	KeyB
	KeyC
	KeyD
	KeyE
	KeyF
	KeyG
	KeyH
	KeyI
	KeyJ
	KeyK
	KeyL
	KeyM
	KeyN
	KeyO
	KeyP
	KeyQ
	KeyR
	KeyS
	KeyT
	KeyU
	KeyV
	KeyW
	KeyX
	KeyY
	KeyZ

	// Punctuation
	KeyBackQuote
	KeyMinus
	KeyEqual
	KeyLeftBracket
	KeyRightBracket
	KeySemiColon
	KeyQuote
	KeyBackSlash
	KeyIntlBackslash
	KeyComma
	KeyDot
	KeySlash

	// Keypad
	KeyKpReturn
	KeyKpMinus
	KeyKpPlus
	KeyKpMultiply
	KeyKpDivide
	KeyKp0
	KeyKp1
	KeyKp2
	KeyKp3
	KeyKp4
	KeyKp5
	KeyKp6
	KeyKp7
	KeyKp8
	KeyKp9
	KeyKpDelete

	keyCount
)

// canonicalNames holds the configuration spelling of every named key.
var canonicalNames = [keyCount]string{
	KeyAlt:           "Alt",
	KeyAltGr:         "AltGr",
	KeyControlLeft:   "ControlLeft",
	KeyControlRight:  "ControlRight",
	KeyShiftLeft:     "ShiftLeft",
	KeyShiftRight:    "ShiftRight",
	KeyMetaLeft:      "MetaLeft",
	KeyMetaRight:     "MetaRight",
	KeyFunction:      "Function",
	KeyBackspace:     "Backspace",
	KeyCapsLock:      "CapsLock",
	KeyDelete:        "Delete",
	KeyEnd:           "End",
	KeyEscape:        "Escape",
	KeyHome:          "Home",
	KeyInsert:        "Insert",
	KeyPageDown:      "PageDown",
	KeyPageUp:        "PageUp",
	KeyReturn:        "Return",
	KeySpace:         "Space",
	KeyTab:           "Tab",
	KeyPrintScreen:   "PrintScreen",
	KeyScrollLock:    "ScrollLock",
	KeyPause:         "Pause",
	KeyNumLock:       "NumLock",
	KeyUpArrow:       "UpArrow",
	KeyDownArrow:     "DownArrow",
	KeyLeftArrow:     "LeftArrow",
	KeyRightArrow:    "RightArrow",
	KeyF1:            "F1",
	KeyF2:            "F2",
	KeyF3:            "F3",
	KeyF4:            "F4",
	KeyF5:            "F5",
	KeyF6:            "F6",
	KeyF7:            "F7",
	KeyF8:            "F8",
	KeyF9:            "F9",
	KeyF10:           "F10",
	KeyF11:           "F11",
	KeyF12:           "F12",
	KeyNum1:          "1",
	KeyNum2:          "2",
	KeyNum3:          "3",
	KeyNum4:          "4",
	KeyNum5:          "5",
	KeyNum6:          "6",
	KeyNum7:          "7",
	KeyNum8:          "8",
	KeyNum9:          "9",
	KeyNum0:          "0",
	KeyA:             "A",
	KeyB:             "B",
	KeyC:             "C",
	KeyD:             "D",
	KeyE:             "E",
	KeyF:             "F",
	KeyG:             "G",
	KeyH:             "H",
	KeyI:             "I",
	KeyJ:             "J",
	KeyK:             "K",
	KeyL:             "L",
	KeyM:             "M",
	KeyN:             "N",
	KeyO:             "O",
	KeyP:             "P",
	KeyQ:             "Q",
	KeyR:             "R",
	KeyS:             "S",
	KeyT:             "T",
	KeyU:             "U",
	KeyV:             "V",
	KeyW:             "W",
	KeyX:             "X",
	KeyY:             "Y",
	KeyZ:             "Z",
	KeyBackQuote:     "BackQuote",
	KeyMinus:         "Minus",
	KeyEqual:         "Equal",
	KeyLeftBracket:   "LeftBracket",
	KeyRightBracket:  "RightBracket",
	KeySemiColon:     ";",
	KeyQuote:         "\"",
	KeyBackSlash:     "\\",
	KeyIntlBackslash: "IntlBackslash",
	KeyComma:         ",",
	KeyDot:           ".",
	KeySlash:         "/",
	KeyKpReturn:      "NumReturn",
	KeyKpMinus:       "NumMinus",
	KeyKpPlus:        "NumPlus",
	KeyKpMultiply:    "NumMultiply",
	KeyKpDivide:      "NumDivide",
	KeyKp0:           "Num0",
	KeyKp1:           "Num1",
	KeyKp2:           "Num2",
	KeyKp3:           "Num3",
	KeyKp4:           "Num4",
	KeyKp5:           "Num5",
	KeyKp6:           "Num6",
	KeyKp7:           "Num7",
	KeyKp8:           "Num8",
	KeyKp9:           "Num9",
	KeyKpDelete:      "NumDelete",
}

// String returns the canonical configuration name of the key.
func (k Key) String() string {
	if k > KeyNone && k < keyCount {
		return canonicalNames[k]
	}
	return fmt.Sprintf("Key(%d)", uint16(k))
}

// Valid reports whether k is a named key.
func (k Key) Valid() bool {
	return k > KeyNone && k < keyCount
}

// IsLetter reports whether k is one of A-Z.
func (k Key) IsLetter() bool {
	return k >= KeyA && k <= KeyZ
}

// IsDigit reports whether k is on the digit row.
func (k Key) IsDigit() bool {
	return k >= KeyNum1 && k <= KeyNum0
}

// IsFunctionKey reports whether k is F1-F12.
func (k Key) IsFunctionKey() bool {
	return k >= KeyF1 && k <= KeyF12
}

// IsKeypad reports whether k is on the numeric keypad.
func (k Key) IsKeypad() bool {
	return k >= KeyKpReturn && k <= KeyKpDelete
}

// AllKeys returns every named key in declaration order.
func AllKeys() []Key {
	out := make([]Key, 0, keyCount-1)
	for k := KeyNone + 1; k < keyCount; k++ {
		out = append(out, k)
	}
	return out
}
