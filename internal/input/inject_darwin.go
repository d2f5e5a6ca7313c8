//go:build darwin && cgo

package input

/*
#cgo LDFLAGS: -framework CoreGraphics -framework CoreFoundation -framework ApplicationServices

#include <CoreGraphics/CoreGraphics.h>
#include <CoreFoundation/CoreFoundation.h>
#include <ApplicationServices/ApplicationServices.h>

// Check if we have accessibility permissions
static bool hasAccessibilityPermissions() {
    return AXIsProcessTrusted();
}

static int injectKey(CGKeyCode keyCode, bool pressed) {
    CGEventRef event = CGEventCreateKeyboardEvent(NULL, keyCode, pressed);
    if (event == NULL) {
        return -1;
    }
    CGEventPost(kCGSessionEventTap, event);
    CFRelease(event);
    return 0;
}
*/
import "C"
import (
	"errors"
	"fmt"

	"chatkeys/internal/keycode"
	"chatkeys/internal/keys"
	"chatkeys/internal/log"
)

// macOS implementation of input injection using CoreGraphics

var errNotTrusted = errors.New("accessibility permission missing: allow this program in System Settings > Privacy & Security > Accessibility")

// Injector represents a macOS input injector
type Injector struct{}

// NewInjector creates a new input injector for macOS
func NewInjector() *Injector {
	if !bool(C.hasAccessibilityPermissions()) {
		log.WarningLog.Printf("Input: %v", errNotTrusted)
	}
	return &Injector{}
}

// Supports reports whether in has a CGKeyCode.
func (i *Injector) Supports(in keys.Input) bool {
	_, ok := keycode.Mac(in)
	return ok
}

// Emit injects a keyboard event
func (i *Injector) Emit(dir Direction, in keys.Input) error {
	code, ok := keycode.Mac(in)
	if !ok {
		return unsupported(in)
	}
	if !bool(C.hasAccessibilityPermissions()) {
		return errNotTrusted
	}

	if rc := C.injectKey(C.CGKeyCode(code), C.bool(dir == Press)); rc != 0 {
		return fmt.Errorf("CGEventCreateKeyboardEvent %s %s failed", dir, in)
	}
	return nil
}
