// Package protocol defines the JSON messages exchanged with the ingest server.
package protocol

import (
	"encoding/json"
	"fmt"
)

// MessageType defines the type of WebSocket message
type MessageType string

const (
	// TypeChat carries one chat message from a client to the server
	TypeChat MessageType = "chat"

	// TypeAck is sent by the server once a chat message has been queued
	TypeAck MessageType = "ack"

	// TypeDispatch is broadcast by the server whenever an action fires
	TypeDispatch MessageType = "dispatch"

	// TypeStatusRequest asks the server for a status snapshot
	TypeStatusRequest MessageType = "status_req"

	// TypeStatusResponse carries a status snapshot
	TypeStatusResponse MessageType = "status_resp"

	// TypeError reports a rejected client message
	TypeError MessageType = "error"

	// TypePing can be used for application-level heartbeats if needed
	TypePing MessageType = "ping"
)

// Message is the generic container for all WebSocket messages
type Message struct {
	Type    MessageType `json:"type"`
	Payload interface{} `json:"payload,omitempty"`
}

// ChatPayload is the payload for TypeChat
type ChatPayload struct {
	Sender  string `json:"sender"`
	Text    string `json:"text"`
	Channel string `json:"channel,omitempty"`
}

// AckPayload is the payload for TypeAck
type AckPayload struct {
	Text string `json:"text"`
}

// DispatchPayload is the payload for TypeDispatch
type DispatchPayload struct {
	Action string   `json:"action"`
	Keys   []string `json:"keys"`
	HoldMS int64    `json:"hold_ms"`
}

// StatusPayload is the payload for TypeStatusResponse and GET /api/status
type StatusPayload struct {
	Paused   bool     `json:"paused"`
	Exiting  bool     `json:"exiting"`
	InFlight []string `json:"in_flight"`
	Actions  []string `json:"actions"`
}

// ErrorPayload is the payload for TypeError
type ErrorPayload struct {
	Error string `json:"error"`
}

// DecodePayload converts the loosely typed payload of msg into v. Payloads
// arrive as generic JSON values after unmarshalling a Message.
func DecodePayload(msg Message, v interface{}) error {
	raw, err := json.Marshal(msg.Payload)
	if err != nil {
		return fmt.Errorf("%s payload: %w", msg.Type, err)
	}
	if err := json.Unmarshal(raw, v); err != nil {
		return fmt.Errorf("%s payload: %w", msg.Type, err)
	}
	return nil
}
