package log

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in      string
		want    Level
		wantErr bool
	}{
		{"info", LevelInfo, false},
		{"DEBUG", LevelDebug, false},
		{" warn ", LevelWarn, false},
		{"warning", LevelWarn, false},
		{"off", LevelOff, false},
		{"trace", LevelTrace, false},
		{"verbose", LevelInfo, true},
		{"", LevelInfo, true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseLevel(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestSetLevelFiltersOutput(t *testing.T) {
	var buf bytes.Buffer
	SetOutput(&buf)
	defer Close()

	SetLevel(LevelWarn)
	DebugLog.Print("debug line")
	InfoLog.Print("info line")
	WarningLog.Print("warn line")
	ErrorLog.Print("error line")

	out := buf.String()
	assert.NotContains(t, out, "debug line")
	assert.NotContains(t, out, "info line")
	assert.Contains(t, out, "warn line")
	assert.Contains(t, out, "error line")

	buf.Reset()
	SetLevel(LevelDebug)
	DebugLog.Print("debug again")
	assert.Contains(t, buf.String(), "debug again")

	SetLevel(LevelInfo)
}

func TestInitializeWritesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "chatkeys.log")
	require.NoError(t, Initialize(path))
	InfoLog.Print("to the file")
	Close()

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "to the file")
}

type taggingWriter struct {
	tag   string
	inner *bytes.Buffer
}

func (w taggingWriter) Write(p []byte) (int, error) {
	w.inner.WriteString(w.tag)
	return w.inner.Write(p)
}

func TestSetWrapper(t *testing.T) {
	var buf bytes.Buffer
	SetOutput(&buf)
	SetLevel(LevelInfo)
	defer Close()

	var wrapped []Level
	SetWrapper(func(l Level, w io.Writer) io.Writer {
		wrapped = append(wrapped, l)
		return taggingWriter{tag: "[" + l.String() + "]", inner: &buf}
	})
	defer SetWrapper(nil)

	ErrorLog.Print("boom")
	DebugLog.Print("hidden")

	assert.ElementsMatch(t, []Level{LevelError, LevelWarn, LevelInfo}, wrapped, "disabled loggers are not wrapped")
	assert.Contains(t, buf.String(), "[error]ERROR: ")
	assert.NotContains(t, buf.String(), "hidden")
}
