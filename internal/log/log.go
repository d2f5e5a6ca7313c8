// Package log provides the leveled loggers used across chatkeys.
package log

import (
	"fmt"
	"io"
	"log"
	"os"
	"strings"
	"sync"
)

// Level orders log verbosity. Messages at or below the active level are written.
type Level int

const (
	LevelOff Level = iota
	LevelError
	LevelWarn
	LevelInfo
	LevelDebug
	LevelTrace
)

var levelNames = map[string]Level{
	"off":     LevelOff,
	"error":   LevelError,
	"warn":    LevelWarn,
	"warning": LevelWarn,
	"info":    LevelInfo,
	"debug":   LevelDebug,
	"trace":   LevelTrace,
}

// ParseLevel parses a case-insensitive level name.
func ParseLevel(s string) (Level, error) {
	lvl, ok := levelNames[strings.ToLower(strings.TrimSpace(s))]
	if !ok {
		return LevelInfo, fmt.Errorf("unknown log level %q", s)
	}
	return lvl, nil
}

func (l Level) String() string {
	for name, lvl := range levelNames {
		if lvl == l && name != "warning" {
			return name
		}
	}
	return fmt.Sprintf("level(%d)", int(l))
}

var (
	DebugLog   = log.New(io.Discard, "DEBUG: ", log.Ldate|log.Ltime|log.Lmicroseconds)
	InfoLog    = log.New(os.Stderr, "INFO: ", log.Ldate|log.Ltime|log.Lmicroseconds)
	WarningLog = log.New(os.Stderr, "WARNING: ", log.Ldate|log.Ltime|log.Lmicroseconds)
	ErrorLog   = log.New(os.Stderr, "ERROR: ", log.Ldate|log.Ltime|log.Lmicroseconds)
)

var (
	mu      sync.Mutex
	out     io.Writer = os.Stderr
	logFile *os.File
	level   = LevelInfo
	wrap    func(Level, io.Writer) io.Writer
)

// Initialize directs all loggers to stderr and, when path is non-empty, to
// the file at path as well.
func Initialize(path string) error {
	mu.Lock()
	defer mu.Unlock()

	closeFileLocked()
	out = os.Stderr
	if path != "" {
		f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
		if err != nil {
			applyLocked()
			return fmt.Errorf("open log file: %w", err)
		}
		logFile = f
		out = io.MultiWriter(os.Stderr, f)
	}
	applyLocked()
	return nil
}

// SetOutput replaces the destination of every logger. Used by tests.
func SetOutput(w io.Writer) {
	mu.Lock()
	defer mu.Unlock()
	out = w
	applyLocked()
}

// SetWrapper installs fn to decorate the destination of each enabled logger,
// for example to forward errors to an error tracker. nil removes it.
func SetWrapper(fn func(Level, io.Writer) io.Writer) {
	mu.Lock()
	defer mu.Unlock()
	wrap = fn
	applyLocked()
}

// SetLevel changes the active level.
func SetLevel(l Level) {
	mu.Lock()
	defer mu.Unlock()
	level = l
	applyLocked()
}

// CurrentLevel returns the active level.
func CurrentLevel() Level {
	mu.Lock()
	defer mu.Unlock()
	return level
}

// Close flushes and closes the log file, if any.
func Close() {
	mu.Lock()
	defer mu.Unlock()
	closeFileLocked()
	out = os.Stderr
	applyLocked()
}

func closeFileLocked() {
	if logFile != nil {
		_ = logFile.Sync()
		_ = logFile.Close()
		logFile = nil
	}
}

func applyLocked() {
	set := func(l *log.Logger, min Level) {
		switch {
		case level >= min && wrap != nil:
			l.SetOutput(wrap(min, out))
		case level >= min:
			l.SetOutput(out)
		default:
			l.SetOutput(io.Discard)
		}
	}
	set(ErrorLog, LevelError)
	set(WarningLog, LevelWarn)
	set(InfoLog, LevelInfo)
	set(DebugLog, LevelDebug)
}
