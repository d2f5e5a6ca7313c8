package control

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"

	"chatkeys/internal/hotkey"
	"chatkeys/internal/keycode"
	"chatkeys/internal/keys"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeCapture struct {
	callback func(hotkey.Event)
	startErr error
	stopped  bool
}

func (f *fakeCapture) Start(cb func(hotkey.Event)) error {
	if f.startErr != nil {
		return f.startErr
	}
	f.callback = cb
	return nil
}

func (f *fakeCapture) Stop() error {
	f.stopped = true
	return nil
}

func (f *fakeCapture) tap(in keys.Input) {
	f.callback(hotkey.Event{Input: in, Down: true})
	f.callback(hotkey.Event{Input: in, Down: false})
}

var (
	exitKey  = keys.KeyInput(keys.KeyF12)
	pauseKey = keys.KeyInput(keys.KeyF11)
)

// captureFor returns a capture constructor that records the watched inputs.
func (f *fakeCapture) captureFor(watched *[]keys.Input) func(...keys.Input) hotkey.Capture {
	return func(in ...keys.Input) hotkey.Capture {
		if watched != nil {
			*watched = in
		}
		return f
	}
}

func newTestListener(t *testing.T) (*State, *fakeCapture, *[]int) {
	t.Helper()
	state := NewState(context.Background())
	capture := &fakeCapture{}
	var codes []int
	l := NewListener(state, Keys{Exit: exitKey, Pause: pauseKey}, capture.captureFor(nil), func(code int) {
		codes = append(codes, code)
	})
	require.NoError(t, l.Start())
	return state, capture, &codes
}

func TestStateTogglePause(t *testing.T) {
	s := NewState(context.Background())
	assert.False(t, s.Paused())
	assert.True(t, s.TogglePause())
	assert.True(t, s.Paused())
	assert.False(t, s.TogglePause())
	assert.False(t, s.Paused())
}

func TestStateConcurrentToggleIsXor(t *testing.T) {
	s := NewState(context.Background())
	var wg sync.WaitGroup
	for i := 0; i < 100; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			s.TogglePause()
		}()
	}
	wg.Wait()
	assert.False(t, s.Paused(), "an even number of toggles leaves the flag clear")
}

func TestStateRequestExitCounts(t *testing.T) {
	s := NewState(context.Background())
	assert.False(t, s.Exiting())
	assert.Equal(t, 1, s.RequestExit())
	assert.True(t, s.Exiting())
	assert.Equal(t, 2, s.RequestExit())

	select {
	case <-s.Done():
	default:
		t.Fatal("Done should be closed")
	}
	assert.ErrorIs(t, s.Context().Err(), context.Canceled)
}

func TestStateFollowsParent(t *testing.T) {
	parent, cancel := context.WithCancel(context.Background())
	s := NewState(parent)
	cancel()
	<-s.Done()
	assert.True(t, s.Exiting())
}

func TestListenerPauseToggles(t *testing.T) {
	state, capture, _ := newTestListener(t)

	capture.tap(pauseKey)
	assert.True(t, state.Paused())
	capture.tap(pauseKey)
	assert.False(t, state.Paused())
	capture.tap(pauseKey)
	assert.True(t, state.Paused())
}

func TestListenerPauseIgnoresAutoRepeat(t *testing.T) {
	state, capture, _ := newTestListener(t)

	for i := 0; i < 5; i++ {
		capture.callback(hotkey.Event{Input: pauseKey, Down: true})
	}
	assert.True(t, state.Paused())
}

func TestListenerExitOnceIsGraceful(t *testing.T) {
	state, capture, codes := newTestListener(t)

	capture.tap(exitKey)
	assert.True(t, state.Exiting())
	assert.Empty(t, *codes)
}

func TestListenerSecondExitForces(t *testing.T) {
	state, capture, codes := newTestListener(t)

	capture.tap(exitKey)
	capture.tap(exitKey)
	assert.True(t, state.Exiting())
	assert.Equal(t, []int{ForcedExitCode}, *codes)
}

func TestListenerExitHeldDoesNotForce(t *testing.T) {
	_, capture, codes := newTestListener(t)

	capture.callback(hotkey.Event{Input: exitKey, Down: true})
	capture.callback(hotkey.Event{Input: exitKey, Down: true})
	assert.Empty(t, *codes)
}

func TestListenerIgnoresOtherKeys(t *testing.T) {
	state, capture, codes := newTestListener(t)

	capture.tap(keys.KeyInput(keys.KeySpace))
	assert.False(t, state.Paused())
	assert.False(t, state.Exiting())
	assert.Empty(t, *codes)
}

func TestListenerStartError(t *testing.T) {
	state := NewState(context.Background())
	capture := &fakeCapture{startErr: hotkey.ErrUnsupported}
	l := NewListener(state, Keys{Exit: exitKey, Pause: pauseKey}, capture.captureFor(nil), func(int) {})
	err := l.Start()
	assert.True(t, errors.Is(err, hotkey.ErrUnsupported))
}

func TestListenerWatchesControlKeys(t *testing.T) {
	var watched []keys.Input
	capture := &fakeCapture{}
	NewListener(NewState(context.Background()), Keys{Exit: exitKey, Pause: pauseKey}, capture.captureFor(&watched), func(int) {})
	assert.ElementsMatch(t, []keys.Input{exitKey, pauseKey}, watched)
}

func TestListenerStop(t *testing.T) {
	state := NewState(context.Background())
	capture := &fakeCapture{}
	l := NewListener(state, Keys{Exit: exitKey, Pause: pauseKey}, capture.captureFor(nil), func(int) {})
	require.NoError(t, l.Start())
	require.NoError(t, l.Stop())
	assert.True(t, capture.stopped)
}

func TestResolveKeysNormalizesRawCodes(t *testing.T) {
	var f12 uint32
	for code := uint32(0); code <= 0xFFFF; code++ {
		if keycode.Normalize(keys.RawKey(code)) == exitKey {
			f12 = code
			break
		}
	}
	require.NotZero(t, f12)

	k, err := ResolveKeys(fmt.Sprintf("Unknown(%d)", f12), "F11")
	require.NoError(t, err)
	assert.Equal(t, exitKey, k.Exit)

	_, err = ResolveKeys(fmt.Sprintf("Unknown(%d)", f12), "F12")
	assert.ErrorIs(t, err, ErrKeys)
}

func TestResolveKeys(t *testing.T) {
	k, err := ResolveKeys("F12", " f11 ")
	require.NoError(t, err)
	assert.Equal(t, exitKey, k.Exit)
	assert.Equal(t, pauseKey, k.Pause)

	tests := []struct {
		name        string
		exit, pause string
	}{
		{"exit unresolved", "NotAKey", "F11"},
		{"pause unresolved", "F12", ""},
		{"same key", "F12", "f12"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ResolveKeys(tt.exit, tt.pause)
			assert.ErrorIs(t, err, ErrKeys)
		})
	}
}
