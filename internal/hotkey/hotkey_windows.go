//go:build windows

package hotkey

import (
	"errors"
	"fmt"
	"runtime"
	"sync"
	"syscall"
	"unsafe"

	"chatkeys/internal/keycode"
	"chatkeys/internal/keys"
	"chatkeys/internal/log"

	"golang.org/x/sys/windows"
)

var (
	user32                  = windows.NewLazySystemDLL("user32.dll")
	procSetWindowsHookEx    = user32.NewProc("SetWindowsHookExW")
	procCallNextHookEx      = user32.NewProc("CallNextHookEx")
	procUnhookWindowsHookEx = user32.NewProc("UnhookWindowsHookEx")
	procGetMessage          = user32.NewProc("GetMessageW")
	procTranslateMessage    = user32.NewProc("TranslateMessage")
	procDispatchMessage     = user32.NewProc("DispatchMessageW")
	procPostThreadMessage   = user32.NewProc("PostThreadMessageW")
	kernel32                = windows.NewLazySystemDLL("kernel32.dll")
	procGetModuleHandle     = kernel32.NewProc("GetModuleHandleW")
)

const (
	WH_KEYBOARD_LL = 13
	WM_QUIT        = 0x0012
	WM_KEYDOWN     = 0x0100
	WM_KEYUP       = 0x0101
	WM_SYSKEYDOWN  = 0x0104
	WM_SYSKEYUP    = 0x0105
	LLKHF_EXTENDED = 0x01
	LLKHF_INJECTED = 0x10
)

type KBDLLHOOKSTRUCT struct {
	VkCode      uint32
	ScanCode    uint32
	Flags       uint32
	Time        uint32
	DwExtraInfo uintptr
}

// The hook procedure has no user pointer, so the active capture is global.
var (
	activeMu      sync.Mutex
	activeCapture *windowsCapture
)

type windowsCapture struct {
	callback func(Event)
	threadID uint32
	hook     uintptr
	done     chan struct{}
}

func newPlatformCapture(_ []keys.Input) Capture {
	return &windowsCapture{}
}

// Start installs a low-level keyboard hook on a dedicated OS thread. Hooks
// must be registered in the same thread that runs the message loop.
func (c *windowsCapture) Start(callback func(Event)) error {
	activeMu.Lock()
	if activeCapture != nil {
		activeMu.Unlock()
		return errors.New("a keyboard hook is already running")
	}
	activeCapture = c
	activeMu.Unlock()

	c.callback = callback
	c.done = make(chan struct{})
	ready := make(chan error, 1)

	go func() {
		runtime.LockOSThread()
		defer runtime.UnlockOSThread()
		defer close(c.done)

		c.threadID = windows.GetCurrentThreadId()
		hMod, _, _ := procGetModuleHandle.Call(0)

		hook, _, err := procSetWindowsHookEx.Call(
			WH_KEYBOARD_LL,
			syscall.NewCallback(keyboardHookProc),
			hMod,
			0,
		)
		if hook == 0 {
			ready <- fmt.Errorf("SetWindowsHookEx: %v", err)
			return
		}
		c.hook = hook
		ready <- nil

		log.InfoLog.Println("Hotkey: Windows keyboard hook started")

		var msg struct {
			Hwnd    syscall.Handle
			Message uint32
			Wparam  uintptr
			Lparam  uintptr
			Time    uint32
			Pt      struct{ X, Y int32 }
		}
		for {
			ret, _, _ := procGetMessage.Call(uintptr(unsafe.Pointer(&msg)), 0, 0, 0)
			if int32(ret) <= 0 {
				break
			}
			procTranslateMessage.Call(uintptr(unsafe.Pointer(&msg)))
			procDispatchMessage.Call(uintptr(unsafe.Pointer(&msg)))
		}

		procUnhookWindowsHookEx.Call(c.hook)
		log.InfoLog.Println("Hotkey: Windows keyboard hook stopped")
	}()

	if err := <-ready; err != nil {
		activeMu.Lock()
		activeCapture = nil
		activeMu.Unlock()
		return err
	}
	return nil
}

// Stop ends the message loop and removes the hook.
func (c *windowsCapture) Stop() error {
	if c.done == nil {
		return nil
	}
	procPostThreadMessage.Call(uintptr(c.threadID), WM_QUIT, 0, 0)
	<-c.done

	activeMu.Lock()
	if activeCapture == c {
		activeCapture = nil
	}
	activeMu.Unlock()
	return nil
}

func keyboardHookProc(nCode int, wParam uintptr, lParam uintptr) uintptr {
	if nCode == 0 {
		kbd := (*KBDLLHOOKSTRUCT)(unsafe.Pointer(lParam))
		// Our own SendInput events must not toggle pause or exit.
		if kbd.Flags&LLKHF_INJECTED == 0 {
			activeMu.Lock()
			c := activeCapture
			activeMu.Unlock()
			if c != nil {
				in := keycode.FromWindows(uint16(kbd.VkCode), kbd.Flags&LLKHF_EXTENDED != 0)
				isDown := wParam == WM_KEYDOWN || wParam == WM_SYSKEYDOWN
				c.callback(Event{Input: in, Down: isDown})
			}
		}
	}
	var hook uintptr
	activeMu.Lock()
	if activeCapture != nil {
		hook = activeCapture.hook
	}
	activeMu.Unlock()
	ret, _, _ := procCallNextHookEx.Call(hook, uintptr(nCode), wParam, lParam)
	return ret
}
