// Package network provides the WebSocket client for a running ingest server.
package network

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"sync"
	"time"

	"chatkeys/internal/log"
	"chatkeys/internal/protocol"

	"github.com/gorilla/websocket"
)

const writeWait = 10 * time.Second

// ErrRejected is returned when the server answers with an error message.
var ErrRejected = errors.New("rejected by server")

// WSClient is a single WebSocket connection to the ingest server. Requests
// are answered in order, so calls are serialized.
type WSClient struct {
	conn *websocket.Conn

	// OnDispatch is called for dispatch broadcasts received while waiting
	// for a reply or watching.
	OnDispatch func(protocol.DispatchPayload)

	mu sync.Mutex
}

// Dial connects to the ingest server at hostAddr ("host:port").
func Dial(ctx context.Context, hostAddr, token string) (*WSClient, error) {
	u := url.URL{Scheme: "ws", Host: hostAddr, Path: "/ws"}
	log.DebugLog.Printf("WS Client: Connecting to %s", u.String())

	header := http.Header{}
	if token != "" {
		header.Set("Authorization", "Bearer "+token)
	}

	conn, resp, err := websocket.DefaultDialer.DialContext(ctx, u.String(), header)
	if err != nil {
		if resp != nil {
			return nil, fmt.Errorf("connect %s: %s", u.String(), resp.Status)
		}
		return nil, fmt.Errorf("connect %s: %w", u.String(), err)
	}
	conn.SetReadLimit(4096)
	return &WSClient{conn: conn}, nil
}

// SendChat submits one chat message and waits until the server queued it.
func (c *WSClient) SendChat(ctx context.Context, p protocol.ChatPayload) error {
	reply, err := c.request(ctx, protocol.Message{Type: protocol.TypeChat, Payload: p}, protocol.TypeAck)
	if err != nil {
		return err
	}
	log.DebugLog.Printf("WS Client: %s queued (%v)", p.Text, reply.Type)
	return nil
}

// Status asks the server for a status snapshot.
func (c *WSClient) Status(ctx context.Context) (protocol.StatusPayload, error) {
	var st protocol.StatusPayload
	reply, err := c.request(ctx, protocol.Message{Type: protocol.TypeStatusRequest}, protocol.TypeStatusResponse)
	if err != nil {
		return st, err
	}
	err = protocol.DecodePayload(reply, &st)
	return st, err
}

// Watch reads broadcasts until ctx is cancelled or the connection closes,
// calling OnDispatch for each dispatch.
func (c *WSClient) Watch(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	stop := c.closeOnDone(ctx)
	defer stop()

	for {
		msg, err := c.read()
		if err != nil {
			if ctx.Err() != nil {
				return nil
			}
			return err
		}
		c.handleBroadcast(msg)
	}
}

func (c *WSClient) request(ctx context.Context, msg protocol.Message, want protocol.MessageType) (protocol.Message, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if deadline, ok := ctx.Deadline(); ok {
		c.conn.SetReadDeadline(deadline)
		defer c.conn.SetReadDeadline(time.Time{})
	}

	data, err := json.Marshal(msg)
	if err != nil {
		return protocol.Message{}, err
	}
	c.conn.SetWriteDeadline(time.Now().Add(writeWait))
	if err := c.conn.WriteMessage(websocket.TextMessage, data); err != nil {
		return protocol.Message{}, fmt.Errorf("write: %w", err)
	}

	for {
		reply, err := c.read()
		if err != nil {
			return protocol.Message{}, err
		}
		switch reply.Type {
		case want:
			return reply, nil
		case protocol.TypeError:
			var p protocol.ErrorPayload
			protocol.DecodePayload(reply, &p)
			return protocol.Message{}, fmt.Errorf("%w: %s", ErrRejected, p.Error)
		default:
			c.handleBroadcast(reply)
		}
	}
}

func (c *WSClient) read() (protocol.Message, error) {
	var msg protocol.Message
	_, data, err := c.conn.ReadMessage()
	if err != nil {
		return msg, fmt.Errorf("read: %w", err)
	}
	if err := json.Unmarshal(data, &msg); err != nil {
		return msg, fmt.Errorf("invalid message: %w", err)
	}
	return msg, nil
}

func (c *WSClient) handleBroadcast(msg protocol.Message) {
	if msg.Type != protocol.TypeDispatch || c.OnDispatch == nil {
		return
	}
	var p protocol.DispatchPayload
	if err := protocol.DecodePayload(msg, &p); err != nil {
		log.WarningLog.Printf("WS Client: %v", err)
		return
	}
	c.OnDispatch(p)
}

// closeOnDone unblocks a pending read when ctx ends.
func (c *WSClient) closeOnDone(ctx context.Context) func() {
	done := make(chan struct{})
	go func() {
		select {
		case <-ctx.Done():
			c.conn.SetReadDeadline(time.Now())
		case <-done:
		}
	}()
	return func() { close(done) }
}

// Close sends a close frame and closes the connection.
func (c *WSClient) Close() error {
	c.conn.WriteControl(websocket.CloseMessage,
		websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""),
		time.Now().Add(time.Second))
	return c.conn.Close()
}
