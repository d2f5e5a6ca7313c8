package keys

import (
	"sort"
	"strconv"
	"strings"
)

// aliases maps additional lowercase spellings to named keys. Canonical
// names are added to the lookup table automatically.
var aliases = map[string]Key{
	// Modifiers
	"ctrl":     KeyControlLeft,
	"control":  KeyControlLeft,
	"lctrl":    KeyControlLeft,
	"rctrl":    KeyControlRight,
	"shift":    KeyShiftLeft,
	"lshift":   KeyShiftLeft,
	"rshift":   KeyShiftRight,
	"option":   KeyAlt,
	"lalt":     KeyAlt,
	"ralt":     KeyAltGr,
	"meta":     KeyMetaLeft,
	"super":    KeyMetaLeft,
	"win":      KeyMetaLeft,
	"cmd":      KeyMetaLeft,
	"command":  KeyMetaLeft,
	"rcmd":     KeyMetaRight,
	"fn":       KeyFunction,
	"capslk":   KeyCapsLock,
	"caps":     KeyCapsLock,
	"bs":       KeyBackspace,
	"bksp":     KeyBackspace,
	"del":      KeyDelete,
	"esc":      KeyEscape,
	"enter":    KeyReturn,
	"cr":       KeyReturn,
	"ins":      KeyInsert,
	"pgup":     KeyPageUp,
	"pgdn":     KeyPageDown,
	"prtsc":    KeyPrintScreen,
	"spacebar": KeySpace,

	// Arrows, including symbolic spellings
	"up":    KeyUpArrow,
	"down":  KeyDownArrow,
	"left":  KeyLeftArrow,
	"right": KeyRightArrow,
	"->":    KeyRightArrow,
	"<-":    KeyLeftArrow,
	"↑":     KeyUpArrow,
	"↓":     KeyDownArrow,
	"←":     KeyLeftArrow,
	"→":     KeyRightArrow,

	// Punctuation by character
	"`":  KeyBackQuote,
	"-":  KeyMinus,
	"=":  KeyEqual,
	"[":  KeyLeftBracket,
	"]":  KeyRightBracket,
	"'":  KeyQuote,

	"semicolon": KeySemiColon,
	"quote":     KeyQuote,
	"backslash": KeyBackSlash,
	"comma":     KeyComma,
	"dot":       KeyDot,
	"period":    KeyDot,
	"slash":     KeySlash,

	// Keypad
	"kpenter":  KeyKpReturn,
	"numenter": KeyKpReturn,
	"kpminus":  KeyKpMinus,
	"kpplus":   KeyKpPlus,
	"kp0":      KeyKp0,
	"kp1":      KeyKp1,
	"kp2":      KeyKp2,
	"kp3":      KeyKp3,
	"kp4":      KeyKp4,
	"kp5":      KeyKp5,
	"kp6":      KeyKp6,
	"kp7":      KeyKp7,
	"kp8":      KeyKp8,
	"kp9":      KeyKp9,
}

var lookup = buildLookup()

func buildLookup() map[string]Key {
	m := make(map[string]Key, int(keyCount)*2+len(aliases))
	for k := KeyNone + 1; k < keyCount; k++ {
		m[strings.ToLower(canonicalNames[k])] = k
		switch {
		case k.IsLetter():
			// "KeyA" spelling
			m["key"+strings.ToLower(canonicalNames[k])] = k
		case k.IsDigit():
			// "Digit1" spelling
			m["digit"+canonicalNames[k]] = k
		}
	}
	for name, k := range aliases {
		m[name] = k
	}
	return m
}

const unknownPrefix = "unknown("

// Resolve maps a key name to its canonical input. Matching is
// case-insensitive and ignores surrounding whitespace. "Unknown(N)" yields a
// raw platform code. ok is false when the name is not recognized.
func Resolve(name string) (in Input, ok bool) {
	name = strings.ToLower(strings.TrimSpace(name))
	if name == "" {
		return Input{}, false
	}
	if k, found := lookup[name]; found {
		return KeyInput(k), true
	}
	if strings.HasPrefix(name, unknownPrefix) && strings.HasSuffix(name, ")") {
		digits := strings.TrimSpace(name[len(unknownPrefix) : len(name)-1])
		code, err := strconv.ParseUint(digits, 10, 32)
		if err != nil {
			return Input{}, false
		}
		return RawKey(uint32(code)), true
	}
	return Input{}, false
}

// Names returns every accepted spelling for k, canonical name first.
func Names(k Key) []string {
	if !k.Valid() {
		return nil
	}
	canonical := strings.ToLower(canonicalNames[k])
	var rest []string
	for name, target := range lookup {
		if target == k && name != canonical {
			rest = append(rest, name)
		}
	}
	sort.Strings(rest)
	return append([]string{canonicalNames[k]}, rest...)
}
