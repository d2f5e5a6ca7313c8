package fatal

import (
	"bytes"
	"errors"
	"testing"
	"time"

	"chatkeys/internal/log"

	"github.com/stretchr/testify/assert"
)

func captureExit(t *testing.T) (*[]int, *bytes.Buffer) {
	t.Helper()
	var codes []int
	orig := exit
	exit = func(code int) { codes = append(codes, code) }

	var buf bytes.Buffer
	log.SetOutput(&buf)
	t.Cleanup(func() {
		exit = orig
		log.Close()
	})
	return &codes, &buf
}

func TestExitLogsAndExits(t *testing.T) {
	codes, buf := captureExit(t)

	Exit(CodeForced, "forced exit", nil)
	assert.Equal(t, []int{CodeForced}, *codes)
	assert.Contains(t, buf.String(), "ERROR: ")
	assert.Contains(t, buf.String(), "forced exit")
}

func TestForcedExitDoesNotWaitForReport(t *testing.T) {
	codes, _ := captureExit(t)

	// a fatal report is still flushing
	mu.Lock()
	defer mu.Unlock()

	done := make(chan struct{})
	go func() {
		Exit(CodeForced, "exit pressed twice", nil)
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("forced exit blocked behind a fatal in progress")
	}
	assert.Equal(t, []int{CodeForced}, *codes)
}

func TestHandler(t *testing.T) {
	codes, buf := captureExit(t)

	Handler("dispatch")(errors.New("release failed"))
	assert.Equal(t, []int{CodeError}, *codes)
	assert.Contains(t, buf.String(), "dispatch: release failed")
}
