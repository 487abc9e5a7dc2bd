package common

import (
	"time"
)

// Messages are used by both the client ('valet' command) and the
// sandbox server ('valet-sandbox') log systems.

// SUCCESS & FAILURE are used to report the outcome of an action
const (
	MessageSuccess = "SUCCESS"
	MessageFailure = "FAILURE"
)

// Message types
const (
	MessageError   = "ERROR"
	MessageWarning = "WARNING"
	MessageInfo    = "INFO"
	MessageTrace   = "TRACE"
)

// Message is a log entry
type Message struct {
	Time    time.Time `json:"time"`
	Type    string    `json:"type"`
	Message string    `json:"message"`
}

// NewMessage creates a new Message instance
func NewMessage(mtype string, message string) *Message {
	return &Message{
		Time:    time.Now(),
		Type:    mtype,
		Message: message,
	}
}
