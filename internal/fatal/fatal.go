// Package fatal is the single place where chatkeys terminates the process.
package fatal

import (
	"os"
	"sync"

	"chatkeys/internal/log"
	"chatkeys/internal/sentry"
)

const (
	// CodeError is used for configuration, emission and runtime failures.
	CodeError = 1
	// CodeForced is used when exit is requested twice.
	CodeForced = 2
)

// exit is replaced in tests.
var exit = os.Exit

var mu sync.Mutex

// Exit logs msg and err, reports err to Sentry, flushes and exits with code.
// Concurrent callers are serialized so only one report is in flight.
// CodeForced skips the report and the lock: it may run inside a keyboard
// hook and must not wait behind a flush already in progress.
func Exit(code int, msg string, err error) {
	if code == CodeForced {
		logExit(msg, err)
		exit(code)
		return
	}

	mu.Lock()
	defer mu.Unlock()

	logExit(msg, err)
	sentry.CaptureFatal(err, code)
	sentry.Flush()
	log.Close()
	exit(code)
}

func logExit(msg string, err error) {
	if err != nil {
		log.ErrorLog.Printf("%s: %v", msg, err)
	} else {
		log.ErrorLog.Print(msg)
	}
}

// Handler returns a func that exits with CodeError, for components that take
// their fatal path as a callback.
func Handler(msg string) func(error) {
	return func(err error) {
		Exit(CodeError, msg, err)
	}
}
