package chat

import (
	"bufio"
	"context"
	"io"
	"strings"
	"sync"
)

// LineSource reads one message per line, for example from stdin. A line has
// the form "[#channel ]sender: text"; a line without a sender is attributed
// to the default sender. Blank lines are ignored.
type LineSource struct {
	r      io.Reader
	sender string

	once  sync.Once
	lines chan string
	err   error
}

// NewLineSource reads from r. sender is used for lines without one.
func NewLineSource(r io.Reader, sender string) *LineSource {
	return &LineSource{r: r, sender: sender}
}

func (s *LineSource) start() {
	s.lines = make(chan string)
	go func() {
		defer close(s.lines)
		scanner := bufio.NewScanner(s.r)
		for scanner.Scan() {
			s.lines <- scanner.Text()
		}
		s.err = scanner.Err()
	}()
}

// Next returns the next non-blank line. The reader goroutine keeps running
// after ctx is cancelled until the underlying read returns.
func (s *LineSource) Next(ctx context.Context) (Message, error) {
	s.once.Do(s.start)
	for {
		select {
		case line, ok := <-s.lines:
			if !ok {
				if s.err != nil {
					return Message{}, s.err
				}
				return Message{}, io.EOF
			}
			if msg, ok := ParseLine(line, s.sender); ok {
				return msg, nil
			}
		case <-ctx.Done():
			return Message{}, ctx.Err()
		}
	}
}

// ParseLine splits a "[#channel ]sender: text" line. It reports false for
// blank lines.
func ParseLine(line, defaultSender string) (Message, bool) {
	line = strings.TrimRight(line, "\r\n")
	if strings.TrimSpace(line) == "" {
		return Message{}, false
	}

	var msg Message
	if strings.HasPrefix(line, "#") {
		if i := strings.IndexByte(line, ' '); i > 1 {
			msg.Channel = line[1:i]
			line = line[i+1:]
		}
	}

	if i := strings.Index(line, ": "); i > 0 && !strings.ContainsAny(line[:i], " \t") {
		msg.Sender = line[:i]
		msg.Text = line[i+2:]
	} else {
		msg.Sender = defaultSender
		msg.Text = line
	}
	return msg, true
}
