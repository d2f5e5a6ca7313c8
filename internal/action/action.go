// Package action builds the immutable table mapping chat commands to inputs.
package action

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"chatkeys/internal/config"
	"chatkeys/internal/keycode"
	"chatkeys/internal/keys"
	"chatkeys/internal/log"
)

// ErrBuild wraps every action table construction failure.
var ErrBuild = errors.New("could not build action table")

// Action is an ordered list of inputs pressed together and held for Hold.
type Action struct {
	Name   string
	Inputs []keys.Input
	Hold   time.Duration
}

func (a Action) String() string {
	names := make([]string, len(a.Inputs))
	for i, in := range a.Inputs {
		names[i] = in.String()
	}
	return fmt.Sprintf("%s{%s %s}", a.Name, strings.Join(names, "+"), a.Hold)
}

// Table maps exact command text to its action. It is never modified after
// Build returns, so concurrent lookups need no locking.
type Table struct {
	actions map[string]Action
}

// Lookup returns the action registered for command. The returned Inputs
// slice must not be modified.
func (t *Table) Lookup(command string) (Action, bool) {
	a, ok := t.actions[command]
	return a, ok
}

// Len returns the number of actions.
func (t *Table) Len() int {
	return len(t.actions)
}

// Names returns all command names sorted.
func (t *Table) Names() []string {
	names := make([]string, 0, len(t.actions))
	for name := range t.actions {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Inputs returns every distinct input used by any action.
func (t *Table) Inputs() []keys.Input {
	seen := make(map[keys.Input]bool)
	var out []keys.Input
	for _, name := range t.Names() {
		for _, in := range t.actions[name].Inputs {
			if !seen[in] {
				seen[in] = true
				out = append(out, in)
			}
		}
	}
	return out
}

// Build resolves every configured action. Any unresolvable key name fails
// the whole build; missing or non-positive hold times fall back to the
// configured default with a warning.
func Build(cfg *config.Config) (*Table, error) {
	if cfg == nil || cfg.Actions == nil {
		return nil, fmt.Errorf("%w: problem reading actions from config", ErrBuild)
	}

	defaultHold := cfg.DefaultHold()
	table := &Table{actions: make(map[string]Action, len(cfg.Actions))}

	for name, ac := range cfg.Actions {
		if name == "" {
			return nil, fmt.Errorf("%w: action name must not be empty", ErrBuild)
		}

		inputs, err := parseKeys(name, ac.Key)
		if err != nil {
			return nil, err
		}

		table.actions[name] = Action{
			Name:   name,
			Inputs: inputs,
			Hold:   holdTime(name, ac.Time, defaultHold),
		}
		log.DebugLog.Printf("Actions: registered %q -> %v", name, table.actions[name])
	}

	return table, nil
}

func parseKeys(name, combo string) ([]keys.Input, error) {
	if strings.TrimSpace(combo) == "" {
		return nil, fmt.Errorf("%w: key in action %s not found in config", ErrBuild, name)
	}
	parts := strings.Split(combo, "+")
	inputs := make([]keys.Input, 0, len(parts))
	seen := make(map[keys.Input]bool, len(parts))
	for _, part := range parts {
		in, ok := keys.Resolve(part)
		if !ok {
			return nil, fmt.Errorf("%w: could not parse key %q for action %s", ErrBuild, strings.TrimSpace(part), name)
		}
		in = keycode.Normalize(in)
		if seen[in] {
			return nil, fmt.Errorf("%w: key %s appears twice in action %s", ErrBuild, in, name)
		}
		seen[in] = true
		inputs = append(inputs, in)
	}
	return inputs, nil
}

func holdTime(name string, t config.HoldTime, def time.Duration) time.Duration {
	switch {
	case !t.Present || !t.Valid:
		log.WarningLog.Printf("Actions: could not read time for action %s, using default %s", name, def)
		return def
	case t.Millis <= 0:
		log.WarningLog.Printf("Actions: time for %s is not positive (%d), using default %s", name, t.Millis, def)
		return def
	case t.Millis > config.MaxMillis:
		log.WarningLog.Printf("Actions: time for %s is too large (%d), using default %s", name, t.Millis, def)
		return def
	default:
		return time.Duration(t.Millis) * time.Millisecond
	}
}
