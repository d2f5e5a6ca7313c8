//go:build darwin && cgo

package hotkey

/*
#cgo LDFLAGS: -framework CoreGraphics -framework CoreFoundation -framework ApplicationServices
#include <CoreGraphics/CoreGraphics.h>
#include <CoreFoundation/CoreFoundation.h>
#include <stdint.h>

// Forward declaration of the callback
CGEventRef eventCallback(CGEventTapProxy proxy, CGEventType type, CGEventRef event, void *refcon);

static CFRunLoopRef tapLoop = NULL;
static CFMachPortRef tapPort = NULL;
static CFRunLoopSourceRef tapSource = NULL;

// Returns -1 when the tap cannot be created (accessibility permission missing).
static inline int createEventTap(uintptr_t refcon) {
    CGEventMask mask = CGEventMaskBit(kCGEventKeyDown) |
                       CGEventMaskBit(kCGEventKeyUp) |
                       CGEventMaskBit(kCGEventFlagsChanged);
    tapPort = CGEventTapCreate(
        kCGSessionEventTap,
        kCGHeadInsertEventTap,
        kCGEventTapOptionListenOnly,
        mask,
        eventCallback,
        (void*)refcon
    );
    if (!tapPort) {
        return -1;
    }

    tapSource = CFMachPortCreateRunLoopSource(kCFAllocatorDefault, tapPort, 0);
    tapLoop = CFRunLoopGetCurrent();
    CFRunLoopAddSource(tapLoop, tapSource, kCFRunLoopCommonModes);
    CGEventTapEnable(tapPort, true);
    return 0;
}

// Blocks until stopEventTap, then tears the tap down.
static inline void runEventTap() {
    CFRunLoopRun();

    CGEventTapEnable(tapPort, false);
    CFRunLoopRemoveSource(tapLoop, tapSource, kCFRunLoopCommonModes);
    CFRelease(tapSource);
    CFRelease(tapPort);
    tapSource = NULL;
    tapPort = NULL;
    tapLoop = NULL;
}

static inline void stopEventTap() {
    if (tapLoop != NULL) {
        CFRunLoopStop(tapLoop);
    }
}

static inline int isDown(CGEventType type) {
    return type == kCGEventKeyDown;
}
*/
import "C"
import (
	"errors"
	"runtime"
	"runtime/cgo"
	"unsafe"

	"chatkeys/internal/keycode"
	"chatkeys/internal/keys"
	"chatkeys/internal/log"
)

const (
	flagMaskShift     = 1 << 17
	flagMaskControl   = 1 << 18
	flagMaskAlternate = 1 << 19
	flagMaskCommand   = 1 << 20
	flagMaskFunction  = 1 << 23
)

type darwinCapture struct {
	callback func(Event)
	handle   cgo.Handle
	done     chan struct{}
}

func newPlatformCapture(_ []keys.Input) Capture {
	return &darwinCapture{}
}

//export eventCallback
func eventCallback(proxy C.CGEventTapProxy, eventType C.CGEventType, event C.CGEventRef, refcon unsafe.Pointer) C.CGEventRef {
	h := cgo.Handle(uintptr(refcon))
	c := h.Value().(*darwinCapture)

	keyCode := uint16(C.CGEventGetIntegerValueField(event, C.kCGKeyboardEventKeycode))
	in := keycode.FromMac(keyCode)

	switch eventType {
	case C.kCGEventKeyDown, C.kCGEventKeyUp:
		c.callback(Event{Input: in, Down: C.isDown(eventType) != 0})

	case C.kCGEventFlagsChanged:
		// Modifier keys only report a flags change; derive the state from
		// the mask bit belonging to the key.
		flags := uint64(C.CGEventGetFlags(event))
		var mask uint64
		switch keyCode {
		case 55, 54:
			mask = flagMaskCommand
		case 56, 60:
			mask = flagMaskShift
		case 58, 61:
			mask = flagMaskAlternate
		case 59, 62:
			mask = flagMaskControl
		case 63:
			mask = flagMaskFunction
		default:
			return event
		}
		c.callback(Event{Input: in, Down: flags&mask != 0})
	}

	return event
}

// Start runs a listen-only CGEventTap on a dedicated OS thread.
func (c *darwinCapture) Start(callback func(Event)) error {
	c.callback = callback
	c.handle = cgo.NewHandle(c)
	done := make(chan struct{})
	ready := make(chan error, 1)

	go func() {
		runtime.LockOSThread()
		defer runtime.UnlockOSThread()
		defer close(done)

		if C.createEventTap(C.uintptr_t(c.handle)) != 0 {
			ready <- errors.New("failed to create CGEventTap, accessibility permission missing?")
			return
		}
		ready <- nil

		log.InfoLog.Println("Hotkey: macOS CGEventTap started")
		C.runEventTap()
		log.InfoLog.Println("Hotkey: macOS CGEventTap stopped")
	}()

	if err := <-ready; err != nil {
		c.handle.Delete()
		return err
	}
	c.done = done
	return nil
}

// Stop stops the run loop and waits for the tap thread to exit.
func (c *darwinCapture) Stop() error {
	if c.done == nil {
		return nil
	}
	C.stopEventTap()
	<-c.done
	c.handle.Delete()
	c.done = nil
	return nil
}
