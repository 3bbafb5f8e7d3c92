package domain

import "time"

// MessageType represents the type of a server-to-client message
type MessageType string

const (
	MsgGameState MessageType = "gameState"
	MsgError     MessageType = "error"
)

// ServerMessage is the envelope for everything pushed to a client
type ServerMessage struct {
	Type      MessageType `json:"type"`
	Payload   any         `json:"payload,omitempty"`
	Timestamp string      `json:"timestamp"`
}

// NewServerMessage creates a new server message with current timestamp
func NewServerMessage(msgType MessageType, payload any) *ServerMessage {
	return &ServerMessage{
		Type:      msgType,
		Payload:   payload,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	}
}

// ErrorPayload is the payload of an error message
type ErrorPayload struct {
	Code    ErrorKind `json:"code"`
	Message string    `json:"message"`
}

// NewErrorMessage builds an error reply from a classified domain error
func NewErrorMessage(err error) *ServerMessage {
	return NewServerMessage(MsgError, &ErrorPayload{
		Code:    Kind(err),
		Message: err.Error(),
	})
}
