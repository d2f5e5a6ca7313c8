package control

import (
	"errors"
	"fmt"

	"chatkeys/internal/fatal"
	"chatkeys/internal/hotkey"
	"chatkeys/internal/keycode"
	"chatkeys/internal/keys"
	"chatkeys/internal/log"
)

// ForcedExitCode is the process exit code used when exit is requested a
// second time before shutdown finished.
const ForcedExitCode = fatal.CodeForced

// ErrKeys reports an unusable control key configuration.
var ErrKeys = errors.New("invalid control keys")

// Keys are the resolved control inputs.
type Keys struct {
	Exit  keys.Input
	Pause keys.Input
}

// ResolveKeys resolves the configured exit and pause key names. A raw code
// with a name on this platform resolves to the named key.
func ResolveKeys(exitName, pauseName string) (Keys, error) {
	exit, ok := keys.Resolve(exitName)
	if !ok {
		return Keys{}, fmt.Errorf("%w: exit key %q does not resolve", ErrKeys, exitName)
	}
	pause, ok := keys.Resolve(pauseName)
	if !ok {
		return Keys{}, fmt.Errorf("%w: pause key %q does not resolve", ErrKeys, pauseName)
	}
	// capture backends report named keys, so raw codes must match them
	exit, pause = keycode.Normalize(exit), keycode.Normalize(pause)
	if exit == pause {
		return Keys{}, fmt.Errorf("%w: exit and pause are both %s", ErrKeys, exit)
	}
	return Keys{Exit: exit, Pause: pause}, nil
}

// Listener turns raw key events into pause toggles and exit requests.
type Listener struct {
	state     *State
	keys      Keys
	capture   hotkey.Capture
	manager   *hotkey.Manager
	forceExit func(code int)
}

// NewListener registers the control keys and builds the capture for them
// with newCapture. forceExit is called with ForcedExitCode on the second
// exit press and is expected not to return.
func NewListener(state *State, k Keys, newCapture func(watch ...keys.Input) hotkey.Capture, forceExit func(code int)) *Listener {
	l := &Listener{
		state:     state,
		keys:      k,
		manager:   hotkey.NewManager(),
		forceExit: forceExit,
	}
	l.manager.Register(k.Exit, l.onExit)
	l.manager.Register(k.Pause, l.onPause)
	l.capture = newCapture(l.manager.Watched()...)
	return l
}

// Start installs the platform capture.
func (l *Listener) Start() error {
	if err := l.capture.Start(l.HandleEvent); err != nil {
		return fmt.Errorf("start key capture: %w", err)
	}
	log.InfoLog.Printf("Control: listening (exit=%s, pause=%s)", l.keys.Exit, l.keys.Pause)
	return nil
}

// Stop removes the platform capture.
func (l *Listener) Stop() error {
	return l.capture.Stop()
}

// HandleEvent feeds one raw key transition to the listener.
func (l *Listener) HandleEvent(ev hotkey.Event) {
	l.manager.UpdateState(ev)
}

func (l *Listener) onExit() {
	if n := l.state.RequestExit(); n > 1 {
		log.WarningLog.Println("Control: exit pressed again, forcing exit")
		l.forceExit(ForcedExitCode)
		return
	}
	log.InfoLog.Println("Control: exit requested, shutting down")
}

func (l *Listener) onPause() {
	if l.state.TogglePause() {
		log.InfoLog.Println("Control: paused")
	} else {
		log.InfoLog.Println("Control: resumed")
	}
}
