//go:build linux && cgo

package hotkey

import (
	"fmt"
	"sync"

	"chatkeys/internal/keycode"
	"chatkeys/internal/keys"
	"chatkeys/internal/log"

	"golang.design/x/hotkey"
)

// X11 offers no listen-only hook, so each watched key is grabbed on its own.
// Grabbed keys are consumed and not delivered to the focused window.
type linuxCapture struct {
	watch []keys.Input

	mu      sync.Mutex
	grabbed []*hotkey.Hotkey
	stop    chan struct{}
	wg      sync.WaitGroup
}

func newPlatformCapture(watch []keys.Input) Capture {
	return &linuxCapture{watch: watch}
}

// Start grabs every watched key and forwards its down and up events.
func (c *linuxCapture) Start(callback func(Event)) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if len(c.watch) == 0 {
		return fmt.Errorf("%w: no keys to watch", ErrUnsupported)
	}

	c.stop = make(chan struct{})
	for _, in := range c.watch {
		sym, ok := keycode.X11(in)
		if !ok {
			c.unregisterLocked()
			return fmt.Errorf("no X11 keysym for %s", in)
		}
		hk := hotkey.New(nil, hotkey.Key(sym))
		if err := hk.Register(); err != nil {
			c.unregisterLocked()
			return fmt.Errorf("grab %s: %w", in, err)
		}
		c.grabbed = append(c.grabbed, hk)

		c.wg.Add(1)
		go c.forward(hk, in, callback)
	}

	log.InfoLog.Printf("Hotkey: X11 grabs registered for %d keys", len(c.grabbed))
	return nil
}

func (c *linuxCapture) forward(hk *hotkey.Hotkey, in keys.Input, callback func(Event)) {
	defer c.wg.Done()
	for {
		select {
		case <-c.stop:
			return
		case _, ok := <-hk.Keydown():
			if !ok {
				return
			}
			callback(Event{Input: in, Down: true})
		case _, ok := <-hk.Keyup():
			if !ok {
				return
			}
			callback(Event{Input: in, Down: false})
		}
	}
}

// Stop releases every grab.
func (c *linuxCapture) Stop() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.unregisterLocked()
	return nil
}

func (c *linuxCapture) unregisterLocked() {
	if c.stop != nil {
		close(c.stop)
		c.stop = nil
	}
	c.wg.Wait()
	for _, hk := range c.grabbed {
		if err := hk.Unregister(); err != nil {
			log.WarningLog.Printf("Hotkey: unregister failed: %v", err)
		}
	}
	c.grabbed = nil
}
