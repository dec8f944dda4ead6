package session

import (
	"encoding/json"

	"github.com/inamate/vecdraw/internal/engine"
)

// Message is the websocket envelope in both directions.
type Message struct {
	Type      string          `json:"type"`
	SessionID string          `json:"sessionId,omitempty"`
	ClientID  string          `json:"clientId,omitempty"`
	Payload   json.RawMessage `json:"payload,omitempty"`
}

const (
	// Connection
	TypeWelcome = "welcome"
	TypeError   = "error"

	// Client -> server
	TypePointerDown   = "pointer.down"
	TypePointerMove   = "pointer.move"
	TypePointerUp     = "pointer.up"
	TypePointerCancel = "pointer.cancel"
	TypeCommand       = "command"

	// Server -> client
	TypeCommandAck  = "command.ack"
	TypeCommandNack = "command.nack"
	TypeRender      = "render"
)

// Pointer actions accepted by Session.Pointer.
const (
	PointerDown   = "down"
	PointerMove   = "move"
	PointerUp     = "up"
	PointerCancel = "cancel"
)

// PointerPayload carries a pointer position in scene coordinates.
type PointerPayload struct {
	X        float64 `json:"x"`
	Y        float64 `json:"y"`
	Additive bool    `json:"additive,omitempty"`
}

// CommandPayload is the payload of command messages. ID is echoed back in
// the ack or nack.
type CommandPayload struct {
	ID      string         `json:"id,omitempty"`
	Command engine.Command `json:"command"`
}

type CommandAckPayload struct {
	ID  string   `json:"id,omitempty"`
	IDs []string `json:"ids,omitempty"`
}

type CommandNackPayload struct {
	ID     string `json:"id,omitempty"`
	Reason string `json:"reason"`
}

// RenderPayload carries draw commands for every pane that changed.
type RenderPayload struct {
	Cursor          string                     `json:"cursor,omitempty"`
	Panes           map[string]json.RawMessage `json:"panes"`
	Selection       []string                   `json:"selection"`
	SelectionBounds json.RawMessage            `json:"selectionBounds"`
}

type WelcomePayload struct {
	SessionID string `json:"sessionId"`
	ClientID  string `json:"clientId"`
}

type ErrorPayload struct {
	Message string `json:"message"`
}

func newMessage(typ string, payload interface{}) *Message {
	data, _ := json.Marshal(payload)
	return &Message{Type: typ, Payload: data}
}
