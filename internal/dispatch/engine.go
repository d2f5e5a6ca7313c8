// Package dispatch turns chat tokens into timed press/release sequences.
package dispatch

import (
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"chatkeys/internal/action"
	"chatkeys/internal/control"
	"chatkeys/internal/debounce"
	"chatkeys/internal/input"
	"chatkeys/internal/keys"
	"chatkeys/internal/log"
)

// Outcome is what Handle did with a token.
type Outcome uint8

const (
	Paused Outcome = iota + 1
	NoMatch
	Busy
	Dispatched
	Failed
)

func (o Outcome) String() string {
	switch o {
	case Paused:
		return "paused"
	case NoMatch:
		return "no-match"
	case Busy:
		return "busy"
	case Dispatched:
		return "dispatched"
	case Failed:
		return "failed"
	default:
		return fmt.Sprintf("outcome(%d)", uint8(o))
	}
}

// Options configures an Engine.
type Options struct {
	// Settle is the delay between emitting releases and freeing the inputs.
	Settle time.Duration
	// OnFatal is called when emission fails. It usually terminates the
	// process. Nil means the error is only logged.
	OnFatal func(error)
	// OnDispatch, if set, is called after the presses of an action succeed
	// and its release is scheduled.
	OnDispatch func(action.Action)
}

// Engine dispatches actions. Handle may be called from any goroutine.
type Engine struct {
	table   *action.Table
	tracker *debounce.Tracker
	emitter input.Emitter
	state   *control.State
	opts    Options

	pending sync.WaitGroup
}

// New returns an engine over table. tracker may be shared with other
// engines that emit to the same device.
func New(table *action.Table, tracker *debounce.Tracker, emitter input.Emitter, state *control.State, opts Options) *Engine {
	return &Engine{
		table:   table,
		tracker: tracker,
		emitter: emitter,
		state:   state,
		opts:    opts,
	}
}

// Handle runs the action named by token, if any. It returns as soon as the
// presses are emitted; releases happen on a timer.
func (e *Engine) Handle(token string) Outcome {
	if e.state.Paused() {
		return Paused
	}

	act, ok := e.table.Lookup(strings.TrimSpace(token))
	if !ok {
		return NoMatch
	}

	if !e.tracker.TryAcquire(act.Inputs) {
		log.DebugLog.Printf("Dispatch: %s already in flight, dropped", act.Name)
		return Busy
	}

	for i, in := range act.Inputs {
		if err := e.emitter.Emit(input.Press, in); err != nil {
			e.abort(act, i)
			e.fatal(fmt.Errorf("press %s for %s: %w", in, act.Name, err))
			return Failed
		}
	}
	log.DebugLog.Printf("Dispatch: pressed %s", act)

	// the hold starts at the last press, whatever OnDispatch costs
	e.pending.Add(1)
	time.AfterFunc(act.Hold, func() { e.releasePhase(act) })

	if e.opts.OnDispatch != nil {
		e.opts.OnDispatch(act)
	}
	return Dispatched
}

// abort releases the first n inputs of act, which were pressed, and frees
// every acquired input.
func (e *Engine) abort(act action.Action, n int) {
	for i := n - 1; i >= 0; i-- {
		if err := e.emitter.Emit(input.Release, act.Inputs[i]); err != nil {
			log.ErrorLog.Printf("Dispatch: release %s after failed press: %v", act.Inputs[i], err)
		}
	}
	e.free(act.Inputs)
}

func (e *Engine) releasePhase(act action.Action) {
	var firstErr error
	for _, in := range act.Inputs {
		if err := e.emitter.Emit(input.Release, in); err != nil && firstErr == nil {
			firstErr = fmt.Errorf("release %s for %s: %w", in, act.Name, err)
		}
	}

	if firstErr != nil {
		e.free(act.Inputs)
		e.pending.Done()
		e.fatal(firstErr)
		return
	}
	log.DebugLog.Printf("Dispatch: released %s", act.Name)

	time.AfterFunc(e.opts.Settle, func() {
		e.free(act.Inputs)
		e.pending.Done()
	})
}

func (e *Engine) free(inputs []keys.Input) {
	for _, in := range inputs {
		e.tracker.Release(in)
	}
}

func (e *Engine) fatal(err error) {
	log.ErrorLog.Printf("Dispatch: %v", err)
	if e.opts.OnFatal != nil {
		e.opts.OnFatal(err)
	}
}

// Wait blocks until every scheduled release phase has finished or timeout
// elapses. It reports whether all of them finished.
func (e *Engine) Wait(timeout time.Duration) bool {
	done := make(chan struct{})
	go func() {
		e.pending.Wait()
		close(done)
	}()

	select {
	case <-done:
		return true
	case <-time.After(timeout):
		return false
	}
}

// Status is a point-in-time view of the engine.
type Status struct {
	Paused   bool     `json:"paused"`
	Exiting  bool     `json:"exiting"`
	InFlight []string `json:"in_flight"`
	Actions  []string `json:"actions"`
}

// Status returns the current pause flag, held inputs and action names.
func (e *Engine) Status() Status {
	held := e.tracker.Snapshot()
	names := make([]string, len(held))
	for i, in := range held {
		names[i] = in.String()
	}
	sort.Strings(names)
	return Status{
		Paused:   e.state.Paused(),
		Exiting:  e.state.Exiting(),
		InFlight: names,
		Actions:  e.table.Names(),
	}
}
