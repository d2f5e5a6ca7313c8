package chat

import (
	"bytes"
	"context"
	"errors"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// sliceSource replays a fixed list of messages, then ends with err (io.EOF
// when nil).
type sliceSource struct {
	msgs []Message
	err  error
}

func (s *sliceSource) Next(ctx context.Context) (Message, error) {
	if len(s.msgs) == 0 {
		if s.err != nil {
			return Message{}, s.err
		}
		return Message{}, io.EOF
	}
	m := s.msgs[0]
	s.msgs = s.msgs[1:]
	return m, nil
}

// blockingSource never delivers anything.
type blockingSource struct{}

func (blockingSource) Next(ctx context.Context) (Message, error) {
	<-ctx.Done()
	return Message{}, ctx.Err()
}

func TestRunEchoesAndHandles(t *testing.T) {
	src := &sliceSource{msgs: []Message{
		{Sender: "alice", Text: "jump"},
		{Sender: "bob", Text: "left", Channel: "#Streamer"},
		{Sender: "eve", Text: "right", Channel: "other"},
	}}
	var out bytes.Buffer
	var handled []string

	err := Run(context.Background(), src, "streamer", func(text string) {
		handled = append(handled, text)
	}, &out)

	require.NoError(t, err)
	assert.Equal(t, []string{"jump", "left"}, handled)
	assert.Equal(t, "alice: jump\nbob: left\n", out.String())
}

func TestRunReturnsSourceError(t *testing.T) {
	src := &sliceSource{err: errors.New("connection reset")}
	err := Run(context.Background(), src, "c", func(string) {}, io.Discard)
	assert.ErrorContains(t, err, "connection reset")
}

func TestRunStopsOnCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		done <- Run(ctx, blockingSource{}, "c", func(string) {}, io.Discard)
	}()

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(time.Second):
		t.Fatal("Run did not return after cancel")
	}
}

func TestParseLine(t *testing.T) {
	tests := []struct {
		line string
		want Message
		ok   bool
	}{
		{"alice: jump", Message{Sender: "alice", Text: "jump"}, true},
		{"alice: a: b", Message{Sender: "alice", Text: "a: b"}, true},
		{"jump", Message{Sender: "stdin", Text: "jump"}, true},
		{"two words: jump", Message{Sender: "stdin", Text: "two words: jump"}, true},
		{"#chan bob: left\r", Message{Sender: "bob", Text: "left", Channel: "chan"}, true},
		{"#chan left", Message{Sender: "stdin", Text: "left", Channel: "chan"}, true},
		{"   ", Message{}, false},
		{"", Message{}, false},
	}
	for _, tt := range tests {
		t.Run(tt.line, func(t *testing.T) {
			got, ok := ParseLine(tt.line, "stdin")
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestLineSource(t *testing.T) {
	src := NewLineSource(strings.NewReader("alice: jump\n\n  \nleft\n"), "stdin")
	ctx := context.Background()

	msg, err := src.Next(ctx)
	require.NoError(t, err)
	assert.Equal(t, Message{Sender: "alice", Text: "jump"}, msg)

	msg, err = src.Next(ctx)
	require.NoError(t, err)
	assert.Equal(t, Message{Sender: "stdin", Text: "left"}, msg)

	_, err = src.Next(ctx)
	assert.ErrorIs(t, err, io.EOF)
}

func TestLineSourceCancel(t *testing.T) {
	r, w := io.Pipe()
	defer w.Close()
	src := NewLineSource(r, "stdin")

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	_, err := src.Next(ctx)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestMerge(t *testing.T) {
	a := &sliceSource{msgs: []Message{{Sender: "a", Text: "1"}, {Sender: "a", Text: "2"}}}
	b := &sliceSource{msgs: []Message{{Sender: "b", Text: "3"}}}

	var texts []string
	err := Run(context.Background(), Merge(a, b), "", func(text string) {
		texts = append(texts, text)
	}, io.Discard)

	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"1", "2", "3"}, texts)
}

func TestMergeSingleIsIdentity(t *testing.T) {
	a := &sliceSource{}
	assert.Same(t, a, Merge(a))
}
