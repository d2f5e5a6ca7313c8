package api

import (
	"context"
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"chatkeys/internal/chat"
	"chatkeys/internal/log"
	"chatkeys/internal/protocol"

	"github.com/gorilla/websocket"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// The server binds to loopback by default and is guarded by the token.
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// WSManager handles WebSocket connections and broadcasting
type WSManager struct {
	server     *Server
	clients    map[*WebSocketClient]bool
	clientsMu  sync.RWMutex
	broadcast  chan protocol.Message
	unregister chan *WebSocketClient
	shutdown   chan struct{}
	stopOnce   sync.Once
}

// WebSocketClient represents a connected chat client
type WebSocketClient struct {
	manager *WSManager
	conn    *websocket.Conn
	send    chan []byte
	ip      string
}

func newWSManager(s *Server) *WSManager {
	return &WSManager{
		server:     s,
		clients:    make(map[*WebSocketClient]bool),
		broadcast:  make(chan protocol.Message),
		unregister: make(chan *WebSocketClient),
		shutdown:   make(chan struct{}),
	}
}

func (m *WSManager) start() {
	for {
		select {
		case client := <-m.unregister:
			m.remove(client)
			log.InfoLog.Printf("WS: Client unregistered from %s. Total clients: %d", client.ip, m.Count())

		case message := <-m.broadcast:
			m.broadcastMessage(message)

		case <-m.shutdown:
			m.clientsMu.Lock()
			for client := range m.clients {
				delete(m.clients, client)
				close(client.send)
			}
			m.clientsMu.Unlock()
			return
		}
	}
}

func (m *WSManager) stop() {
	m.stopOnce.Do(func() { close(m.shutdown) })
}

func (m *WSManager) remove(client *WebSocketClient) {
	m.clientsMu.Lock()
	defer m.clientsMu.Unlock()
	if _, ok := m.clients[client]; ok {
		delete(m.clients, client)
		close(client.send)
	}
}

// Count returns the number of connected clients.
func (m *WSManager) Count() int {
	m.clientsMu.RLock()
	defer m.clientsMu.RUnlock()
	return len(m.clients)
}

func (m *WSManager) broadcastMessage(message protocol.Message) {
	jsonMsg, err := json.Marshal(message)
	if err != nil {
		log.ErrorLog.Printf("WS: Failed to marshal broadcast message: %v", err)
		return
	}

	m.clientsMu.Lock()
	defer m.clientsMu.Unlock()

	for client := range m.clients {
		select {
		case client.send <- jsonMsg:
		default:
			// slow client
			close(client.send)
			delete(m.clients, client)
		}
	}
}

// Broadcast sends message to every client. It is dropped once the manager
// has shut down.
func (m *WSManager) Broadcast(message protocol.Message) {
	select {
	case m.broadcast <- message:
	case <-m.shutdown:
	}
}

func (m *WSManager) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.WarningLog.Printf("WS: Failed to upgrade connection: %v", err)
		return
	}

	client := &WebSocketClient{
		manager: m,
		conn:    conn,
		send:    make(chan []byte, 256),
		ip:      r.RemoteAddr,
	}

	// Registered synchronously so replies to the first message are not lost.
	m.clientsMu.Lock()
	select {
	case <-m.shutdown:
		m.clientsMu.Unlock()
		conn.Close()
		return
	default:
	}
	m.clients[client] = true
	total := len(m.clients)
	m.clientsMu.Unlock()
	log.InfoLog.Printf("WS: New client registered from %s. Total clients: %d", client.ip, total)

	go client.writePump()
	go client.readPump()
}

// readPump pumps messages from the websocket connection to the hub.
func (c *WebSocketClient) readPump() {
	defer func() {
		select {
		case c.manager.unregister <- c:
		case <-c.manager.shutdown:
		}
		c.conn.Close()
	}()

	c.conn.SetReadLimit(maxBodyBytes)
	c.conn.SetReadDeadline(time.Now().Add(60 * time.Second))
	c.conn.SetPongHandler(func(string) error { c.conn.SetReadDeadline(time.Now().Add(60 * time.Second)); return nil })

	for {
		_, message, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				log.WarningLog.Printf("WS: Read error: %v", err)
			}
			break
		}

		c.handleMessage(message)
	}
}

// writePump pumps messages from the hub to the websocket connection.
func (c *WebSocketClient) writePump() {
	ticker := time.NewTicker(50 * time.Second)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case message, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(10 * time.Second))
			if !ok {
				// The hub closed the channel.
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}

			w, err := c.conn.NextWriter(websocket.TextMessage)
			if err != nil {
				return
			}
			w.Write(message)

			if err := w.Close(); err != nil {
				return
			}

		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(10 * time.Second))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

func (c *WebSocketClient) handleMessage(data []byte) {
	var msg protocol.Message
	if err := json.Unmarshal(data, &msg); err != nil {
		log.WarningLog.Printf("WS: Invalid message format: %v", err)
		c.reply(protocol.TypeError, protocol.ErrorPayload{Error: "invalid message"})
		return
	}

	switch msg.Type {
	case protocol.TypeChat:
		var payload protocol.ChatPayload
		if err := protocol.DecodePayload(msg, &payload); err != nil || payload.Text == "" {
			c.reply(protocol.TypeError, protocol.ErrorPayload{Error: "invalid chat payload"})
			return
		}

		err := c.manager.server.Submit(context.Background(), chat.Message{
			Sender:  payload.Sender,
			Text:    payload.Text,
			Channel: payload.Channel,
		})
		if err != nil {
			c.reply(protocol.TypeError, protocol.ErrorPayload{Error: err.Error()})
			return
		}
		c.reply(protocol.TypeAck, protocol.AckPayload{Text: payload.Text})

	case protocol.TypeStatusRequest:
		c.reply(protocol.TypeStatusResponse, c.manager.server.snapshot())

	case protocol.TypePing:
		c.reply(protocol.TypePing, nil)

	default:
		c.reply(protocol.TypeError, protocol.ErrorPayload{Error: "unknown message type " + string(msg.Type)})
	}
}

// reply queues a message for this client only. The hub may already have
// closed send, in which case the reply is dropped.
func (c *WebSocketClient) reply(t protocol.MessageType, payload interface{}) {
	data, err := json.Marshal(protocol.Message{Type: t, Payload: payload})
	if err != nil {
		return
	}

	c.manager.clientsMu.RLock()
	defer c.manager.clientsMu.RUnlock()
	if !c.manager.clients[c] {
		return
	}
	select {
	case c.send <- data:
	default:
	}
}
