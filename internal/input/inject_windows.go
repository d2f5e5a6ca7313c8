//go:build windows

package input

import (
	"fmt"
	"unsafe"

	"chatkeys/internal/keycode"
	"chatkeys/internal/keys"

	"golang.org/x/sys/windows"
)

// Windows implementation of input injection using SendInput

var (
	user32        = windows.NewLazySystemDLL("user32.dll")
	procSendInput = user32.NewProc("SendInput")
)

const (
	INPUT_KEYBOARD        = 1
	KEYEVENTF_EXTENDEDKEY = 0x0001
	KEYEVENTF_KEYUP       = 0x0002
)

type KEYBDINPUT struct {
	WVk         uint16
	WScan       uint16
	DwFlags     uint32
	Time        uint32
	DwExtraInfo uintptr
}

// keyboardINPUT matches the layout of INPUT with the KEYBDINPUT arm; the
// padding covers the larger MOUSEINPUT arm of the union.
type keyboardINPUT struct {
	Type uint32
	Ki   KEYBDINPUT
	_    [8]byte
}

// Injector represents a Windows input injector
type Injector struct{}

// NewInjector creates a new input injector for Windows
func NewInjector() *Injector {
	return &Injector{}
}

// Supports reports whether in has a virtual-key code.
func (i *Injector) Supports(in keys.Input) bool {
	_, ok := keycode.Windows(in)
	return ok
}

// Emit injects a single key down or key up event.
func (i *Injector) Emit(dir Direction, in keys.Input) error {
	wk, ok := keycode.Windows(in)
	if !ok {
		return unsupported(in)
	}

	var flags uint32
	if wk.Extended {
		flags |= KEYEVENTF_EXTENDEDKEY
	}
	if dir == Release {
		flags |= KEYEVENTF_KEYUP
	}

	event := keyboardINPUT{
		Type: INPUT_KEYBOARD,
		Ki: KEYBDINPUT{
			WVk:     wk.VK,
			DwFlags: flags,
		},
	}

	n, _, err := procSendInput.Call(
		1,
		uintptr(unsafe.Pointer(&event)),
		unsafe.Sizeof(event),
	)
	if n != 1 {
		return fmt.Errorf("SendInput %s %s: %v", dir, in, err)
	}
	return nil
}
