package api

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"chatkeys/internal/action"
	"chatkeys/internal/chat"
	"chatkeys/internal/keys"
	"chatkeys/internal/protocol"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestServer(t *testing.T, token string) (*Server, *httptest.Server) {
	t.Helper()
	s := NewServer(token, func() protocol.StatusPayload {
		return protocol.StatusPayload{Paused: true, InFlight: []string{"Space"}, Actions: []string{"jump"}}
	})
	ts := httptest.NewServer(s.Handler())
	t.Cleanup(func() {
		s.Shutdown(context.Background())
		ts.Close()
	})
	return s, ts
}

func nextMessage(t *testing.T, s *Server) chat.Message {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	msg, err := s.Next(ctx)
	require.NoError(t, err)
	return msg
}

func dialWS(t *testing.T, ts *httptest.Server, token string) *websocket.Conn {
	t.Helper()
	header := http.Header{}
	if token != "" {
		header.Set("Authorization", "Bearer "+token)
	}
	url := "ws" + strings.TrimPrefix(ts.URL, "http") + "/ws"
	conn, _, err := websocket.DefaultDialer.Dial(url, header)
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })
	return conn
}

func readMessage(t *testing.T, conn *websocket.Conn) protocol.Message {
	t.Helper()
	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	var msg protocol.Message
	require.NoError(t, conn.ReadJSON(&msg))
	return msg
}

func TestHealthNeedsNoToken(t *testing.T) {
	_, ts := newTestServer(t, "secret")

	resp, err := http.Get(ts.URL + "/health")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestAuth(t *testing.T) {
	_, ts := newTestServer(t, "secret")

	resp, err := http.Get(ts.URL + "/api/status")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	req, _ := http.NewRequest(http.MethodGet, ts.URL+"/api/status", nil)
	req.Header.Set("Authorization", "Bearer secret")
	resp, err = http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var st protocol.StatusPayload
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&st))
	assert.True(t, st.Paused)
	assert.Equal(t, []string{"Space"}, st.InFlight)
	assert.Equal(t, []string{"jump"}, st.Actions)
}

func TestPostChatJSON(t *testing.T) {
	s, ts := newTestServer(t, "")

	body := `{"sender":"alice","text":"jump","channel":"streamer"}`
	resp, err := http.Post(ts.URL+"/api/chat", "application/json", strings.NewReader(body))
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusAccepted, resp.StatusCode)

	assert.Equal(t, chat.Message{Sender: "alice", Text: "jump", Channel: "streamer"}, nextMessage(t, s))
}

func TestPostChatQuery(t *testing.T) {
	s, ts := newTestServer(t, "")

	resp, err := http.Post(ts.URL+"/api/chat?text=left", "", nil)
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusAccepted, resp.StatusCode)

	assert.Equal(t, chat.Message{Sender: "api", Text: "left"}, nextMessage(t, s))
}

func TestPostChatRejects(t *testing.T) {
	_, ts := newTestServer(t, "")

	resp, err := http.Get(ts.URL + "/api/chat?text=jump")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusMethodNotAllowed, resp.StatusCode)

	resp, err = http.Post(ts.URL+"/api/chat", "application/json", strings.NewReader(`{"text":"  "}`))
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp, err = http.Post(ts.URL+"/api/chat", "application/json", strings.NewReader(`{`))
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestShutdownEndsSource(t *testing.T) {
	s := NewServer("", nil)
	require.NoError(t, s.Shutdown(context.Background()))

	_, err := s.Next(context.Background())
	assert.ErrorIs(t, err, io.EOF)
	assert.ErrorIs(t, s.Submit(context.Background(), chat.Message{Text: "jump"}), ErrClosed)
}

func TestStartAndAddr(t *testing.T) {
	s := NewServer("", nil)
	require.NoError(t, s.Start("127.0.0.1:0"))
	defer s.Shutdown(context.Background())

	resp, err := http.Get("http://" + s.Addr() + "/health")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestWebSocketRequiresToken(t *testing.T) {
	_, ts := newTestServer(t, "secret")
	url := "ws" + strings.TrimPrefix(ts.URL, "http") + "/ws"
	_, resp, err := websocket.DefaultDialer.Dial(url, nil)
	require.Error(t, err)
	require.NotNil(t, resp)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestWebSocketChat(t *testing.T) {
	s, ts := newTestServer(t, "secret")
	conn := dialWS(t, ts, "secret")

	require.NoError(t, conn.WriteJSON(protocol.Message{
		Type:    protocol.TypeChat,
		Payload: protocol.ChatPayload{Sender: "bob", Text: "right"},
	}))

	reply := readMessage(t, conn)
	assert.Equal(t, protocol.TypeAck, reply.Type)
	assert.Equal(t, chat.Message{Sender: "bob", Text: "right"}, nextMessage(t, s))
}

func TestWebSocketStatusAndErrors(t *testing.T) {
	_, ts := newTestServer(t, "")
	conn := dialWS(t, ts, "")

	require.NoError(t, conn.WriteJSON(protocol.Message{Type: protocol.TypeStatusRequest}))
	reply := readMessage(t, conn)
	require.Equal(t, protocol.TypeStatusResponse, reply.Type)
	var st protocol.StatusPayload
	require.NoError(t, protocol.DecodePayload(reply, &st))
	assert.True(t, st.Paused)

	require.NoError(t, conn.WriteJSON(protocol.Message{Type: "bogus"}))
	assert.Equal(t, protocol.TypeError, readMessage(t, conn).Type)

	require.NoError(t, conn.WriteMessage(websocket.TextMessage, []byte("not json")))
	assert.Equal(t, protocol.TypeError, readMessage(t, conn).Type)

	require.NoError(t, conn.WriteJSON(protocol.Message{Type: protocol.TypeChat, Payload: protocol.ChatPayload{}}))
	assert.Equal(t, protocol.TypeError, readMessage(t, conn).Type)
}

func TestBroadcastDispatch(t *testing.T) {
	s, ts := newTestServer(t, "")
	conn := dialWS(t, ts, "")

	// make sure the client is registered before broadcasting
	require.NoError(t, conn.WriteJSON(protocol.Message{Type: protocol.TypePing}))
	require.Equal(t, protocol.TypePing, readMessage(t, conn).Type)

	s.BroadcastDispatch(action.Action{
		Name:   "crouch_jump",
		Inputs: []keys.Input{keys.KeyInput(keys.KeyControlLeft), keys.KeyInput(keys.KeySpace)},
		Hold:   200 * time.Millisecond,
	})

	msg := readMessage(t, conn)
	require.Equal(t, protocol.TypeDispatch, msg.Type)
	var p protocol.DispatchPayload
	require.NoError(t, protocol.DecodePayload(msg, &p))
	assert.Equal(t, protocol.DispatchPayload{
		Action: "crouch_jump",
		Keys:   []string{"ControlLeft", "Space"},
		HoldMS: 200,
	}, p)
}

func TestBroadcastAfterShutdownDoesNotBlock(t *testing.T) {
	s := NewServer("", nil)
	s.Handler()
	require.NoError(t, s.Shutdown(context.Background()))

	done := make(chan struct{})
	go func() {
		s.BroadcastDispatch(action.Action{Name: "jump"})
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("broadcast blocked after shutdown")
	}
}
