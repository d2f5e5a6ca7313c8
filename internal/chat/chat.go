// Package chat consumes chat messages from one or more sources and feeds
// each message text to a handler.
package chat

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"sync"

	"chatkeys/internal/log"
)

// Message is one chat line.
type Message struct {
	Sender  string `json:"sender"`
	Text    string `json:"text"`
	Channel string `json:"channel,omitempty"`
}

// Source delivers messages in order. Next returns io.EOF once the stream has
// ended and ctx.Err() when ctx is cancelled first.
type Source interface {
	Next(ctx context.Context) (Message, error)
}

// Run reads messages from src until it ends or ctx is cancelled. Messages
// addressed to another channel are skipped; every other message is echoed
// to out as "sender: text" and its text passed to handle.
func Run(ctx context.Context, src Source, channel string, handle func(text string), out io.Writer) error {
	for {
		msg, err := src.Next(ctx)
		if errors.Is(err, io.EOF) {
			log.InfoLog.Println("Chat: source ended")
			return nil
		}
		if err != nil {
			if ctx.Err() != nil {
				return nil
			}
			return fmt.Errorf("chat source: %w", err)
		}

		if !forChannel(msg, channel) {
			log.DebugLog.Printf("Chat: skipped message for #%s", msg.Channel)
			continue
		}
		fmt.Fprintf(out, "%s: %s\n", msg.Sender, msg.Text)
		handle(msg.Text)
	}
}

func forChannel(msg Message, channel string) bool {
	if msg.Channel == "" || channel == "" {
		return true
	}
	return strings.EqualFold(strings.TrimPrefix(msg.Channel, "#"), strings.TrimPrefix(channel, "#"))
}

// Merge returns a source that interleaves messages from all sources in
// arrival order. It ends when every source has ended.
func Merge(sources ...Source) Source {
	if len(sources) == 1 {
		return sources[0]
	}
	return &merged{sources: sources}
}

type merged struct {
	sources []Source

	once sync.Once
	out  chan result
}

type result struct {
	msg Message
	err error
}

func (m *merged) start(ctx context.Context) {
	m.out = make(chan result)
	var wg sync.WaitGroup
	for _, src := range m.sources {
		wg.Add(1)
		go func(src Source) {
			defer wg.Done()
			for {
				msg, err := src.Next(ctx)
				if errors.Is(err, io.EOF) {
					return
				}
				select {
				case m.out <- result{msg: msg, err: err}:
				case <-ctx.Done():
					return
				}
				if err != nil {
					return
				}
			}
		}(src)
	}
	go func() {
		wg.Wait()
		close(m.out)
	}()
}

func (m *merged) Next(ctx context.Context) (Message, error) {
	m.once.Do(func() { m.start(ctx) })
	select {
	case r, ok := <-m.out:
		if !ok {
			return Message{}, io.EOF
		}
		return r.msg, r.err
	case <-ctx.Done():
		return Message{}, ctx.Err()
	}
}
