// Package api provides the local HTTP and WebSocket chat ingest server.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net"
	"net/http"
	"strings"
	"sync"

	"chatkeys/internal/action"
	"chatkeys/internal/chat"
	"chatkeys/internal/log"
	"chatkeys/internal/protocol"
)

// ErrClosed is returned when submitting to a server that has shut down.
var ErrClosed = errors.New("ingest server closed")

const (
	queueSize     = 64
	maxBodyBytes  = 4096
	defaultSender = "api"
)

// StatusFunc returns a status snapshot for GET /api/status.
type StatusFunc func() protocol.StatusPayload

// Server accepts chat messages over HTTP and WebSocket and hands them out
// through Next, which makes it a chat.Source.
type Server struct {
	token  string
	status StatusFunc

	messages chan chat.Message
	closed   chan struct{}
	close    sync.Once

	wsMgr   *WSManager
	hubOnce sync.Once

	httpServer *http.Server
	listener   net.Listener
}

// NewServer creates a new ingest server. An empty token disables auth.
func NewServer(token string, status StatusFunc) *Server {
	s := &Server{
		token:    token,
		status:   status,
		messages: make(chan chat.Message, queueSize),
		closed:   make(chan struct{}),
	}
	s.wsMgr = newWSManager(s)
	return s
}

// Handler returns the HTTP handler with auth and panic recovery applied.
func (s *Server) Handler() http.Handler {
	s.hubOnce.Do(func() { go s.wsMgr.start() })

	mux := http.NewServeMux()
	mux.HandleFunc("/api/chat", s.handleChat)
	mux.HandleFunc("/api/status", s.handleStatus)
	mux.HandleFunc("/ws", s.wsMgr.handleWebSocket)
	mux.HandleFunc("/health", s.handleHealth)

	return s.authMiddleware(s.recoverMiddleware(mux))
}

// Start listens on addr and serves in the background. Listen errors are
// returned directly.
func (s *Server) Start(addr string) error {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return err
	}
	s.listener = ln
	s.httpServer = &http.Server{Handler: s.Handler()}

	log.InfoLog.Printf("API: ingest server listening on %s", ln.Addr())
	go func() {
		if err := s.httpServer.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.ErrorLog.Printf("API: server stopped: %v", err)
		}
	}()
	return nil
}

// Addr returns the bound address once Start has succeeded.
func (s *Server) Addr() string {
	if s.listener == nil {
		return ""
	}
	return s.listener.Addr().String()
}

// Shutdown stops accepting messages, closes WebSocket clients and stops the
// HTTP server. Next returns io.EOF afterwards.
func (s *Server) Shutdown(ctx context.Context) error {
	s.close.Do(func() {
		close(s.closed)
		s.wsMgr.stop()
	})
	if s.httpServer == nil {
		return nil
	}
	return s.httpServer.Shutdown(ctx)
}

// Next implements chat.Source.
func (s *Server) Next(ctx context.Context) (chat.Message, error) {
	select {
	case msg := <-s.messages:
		return msg, nil
	case <-s.closed:
		return chat.Message{}, io.EOF
	case <-ctx.Done():
		return chat.Message{}, ctx.Err()
	}
}

// Submit queues msg for Next. It blocks while the queue is full.
func (s *Server) Submit(ctx context.Context, msg chat.Message) error {
	if msg.Sender == "" {
		msg.Sender = defaultSender
	}
	select {
	case <-s.closed:
		return ErrClosed
	default:
	}
	select {
	case s.messages <- msg:
		return nil
	case <-s.closed:
		return ErrClosed
	case <-ctx.Done():
		return ctx.Err()
	}
}

// BroadcastDispatch notifies WebSocket clients that an action fired.
func (s *Server) BroadcastDispatch(a action.Action) {
	names := make([]string, len(a.Inputs))
	for i, in := range a.Inputs {
		names[i] = in.String()
	}
	s.wsMgr.Broadcast(protocol.Message{
		Type: protocol.TypeDispatch,
		Payload: protocol.DispatchPayload{
			Action: a.Name,
			Keys:   names,
			HoldMS: a.Hold.Milliseconds(),
		},
	})
}

// recoverMiddleware prevents panics from crashing the whole server
func (s *Server) recoverMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if err := recover(); err != nil {
				log.ErrorLog.Printf("API: panic recovered: %v", err)
				http.Error(w, "Internal Server Error", http.StatusInternalServerError)
			}
		}()
		next.ServeHTTP(w, r)
	})
}

// authMiddleware checks the bearer token if configured
func (s *Server) authMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		log.DebugLog.Printf("API: %s %s from %s", r.Method, r.URL.Path, r.RemoteAddr)

		// Skip auth for health check
		if r.URL.Path == "/health" {
			next.ServeHTTP(w, r)
			return
		}

		if s.token != "" && r.Header.Get("Authorization") != "Bearer "+s.token {
			http.Error(w, "Unauthorized", http.StatusUnauthorized)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// handleChat handles POST /api/chat with a JSON ChatPayload body, or with
// text/sender/channel query parameters.
func (s *Server) handleChat(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var p protocol.ChatPayload
	if strings.HasPrefix(r.Header.Get("Content-Type"), "application/json") {
		if err := json.NewDecoder(io.LimitReader(r.Body, maxBodyBytes)).Decode(&p); err != nil {
			http.Error(w, "Invalid chat message", http.StatusBadRequest)
			return
		}
	} else {
		q := r.URL.Query()
		p = protocol.ChatPayload{Sender: q.Get("sender"), Text: q.Get("text"), Channel: q.Get("channel")}
	}

	if strings.TrimSpace(p.Text) == "" {
		http.Error(w, "Missing text", http.StatusBadRequest)
		return
	}

	err := s.Submit(r.Context(), chat.Message{Sender: p.Sender, Text: p.Text, Channel: p.Channel})
	if err != nil {
		http.Error(w, err.Error(), http.StatusServiceUnavailable)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusAccepted)
	json.NewEncoder(w).Encode(map[string]string{"status": "queued"})
}

// handleStatus handles GET /api/status
func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(s.snapshot())
}

func (s *Server) snapshot() protocol.StatusPayload {
	if s.status == nil {
		return protocol.StatusPayload{}
	}
	return s.status()
}

// handleHealth handles GET /health (for monitoring)
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
}
