// Package sentry reports fatal errors and panics to Sentry. Every function is
// a safe no-op until Init succeeds with a non-empty DSN.
package sentry

import (
	"runtime"
	"strconv"
	"time"

	gosentry "github.com/getsentry/sentry-go"
)

const flushTimeout = 2 * time.Second

// enabled tracks whether sentry was successfully initialized.
var enabled bool

// beforeSend lets tests observe events without a network transport.
var beforeSend func(*gosentry.Event, *gosentry.EventHint) *gosentry.Event

// Init initializes the Sentry SDK. An empty dsn disables reporting.
func Init(dsn, version string) error {
	enabled = false
	if dsn == "" {
		return nil
	}

	err := gosentry.Init(gosentry.ClientOptions{
		Dsn:              dsn,
		Release:          "chatkeys@" + version,
		AttachStacktrace: true,
		SampleRate:       1.0,
		BeforeSend:       beforeSend,
	})
	if err != nil {
		return err
	}

	gosentry.ConfigureScope(func(scope *gosentry.Scope) {
		scope.SetTag("os", runtime.GOOS)
		scope.SetTag("arch", runtime.GOARCH)
		scope.SetTag("go_version", runtime.Version())
		scope.SetTag("version", version)
	})

	enabled = true
	return nil
}

// IsEnabled returns whether sentry is active.
func IsEnabled() bool {
	return enabled
}

// SetContext records which channel and how many actions this process serves.
func SetContext(channel string, actions int) {
	if !enabled {
		return
	}
	gosentry.ConfigureScope(func(scope *gosentry.Scope) {
		scope.SetTag("channel", channel)
		scope.SetContext("app", map[string]interface{}{
			"channel": channel,
			"actions": actions,
		})
	})
}

// CaptureFatal reports err with the exit code the process is about to use.
func CaptureFatal(err error, code int) {
	if !enabled || err == nil {
		return
	}
	gosentry.WithScope(func(scope *gosentry.Scope) {
		scope.SetLevel(gosentry.LevelFatal)
		scope.SetTag("exit_code", strconv.Itoa(code))
		gosentry.CaptureException(err)
	})
}

// Flush waits up to 2 seconds for buffered events to be sent.
func Flush() {
	if !enabled {
		return
	}
	gosentry.Flush(flushTimeout)
}

// RecoverPanic captures a panic to Sentry, flushes, then re-panics.
// Usage: defer sentry.RecoverPanic()
func RecoverPanic() {
	if !enabled {
		return
	}
	if err := recover(); err != nil {
		gosentry.CurrentHub().Recover(err)
		gosentry.Flush(flushTimeout)
		panic(err)
	}
}
