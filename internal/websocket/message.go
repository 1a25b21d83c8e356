// Package websocket pushes account security events (logins, password
// changes, session terminations) to a user's connected clients.
package websocket

import (
	"time"

	"github.com/google/uuid"
)

// MessageType classifies frames on the wire.
type MessageType string

const (
	MessageTypeEvent        MessageType = "event"
	MessageTypeNotification MessageType = "notification"
	MessageTypePing         MessageType = "ping"
	MessageTypePong         MessageType = "pong"
	MessageTypeError        MessageType = "error"
)

// Message is one frame exchanged with a client.
type Message struct {
	ID        string      `json:"id,omitempty"`
	Type      MessageType `json:"type"`
	Event     string      `json:"event,omitempty"`
	UserID    uint        `json:"userId,omitempty"`
	Data      any         `json:"data,omitempty"`
	Timestamp time.Time   `json:"timestamp"`
}

// NewSecurityEvent builds the frame for one account security event.
func NewSecurityEvent(userID uint, eventType, text string) *Message {
	return &Message{
		ID:     uuid.New().String(),
		Type:   MessageTypeEvent,
		Event:  eventType,
		UserID: userID,
		Data: map[string]string{
			"message": text,
		},
		Timestamp: time.Now(),
	}
}
