package client

import (
	"fmt"
	"io"
	"sync"
)

// ExitMessage is displayed when the command ends (update notice, session
// hints, …)
type ExitMessage struct {
	Disabled bool
	Message  string
	mux      sync.Mutex
}

var globalExitMessage ExitMessage

// InitExitMessage resets global ExitMessage
func InitExitMessage() {
	globalExitMessage.mux.Lock()
	defer globalExitMessage.mux.Unlock()
	globalExitMessage.Disabled = false
	globalExitMessage.Message = ""
}

// GetExitMessage return a pointer to the global ExitMessage
func GetExitMessage() *ExitMessage {
	return &globalExitMessage
}

// Disable global ExitMessage (for --basic outputs, mostly)
func (em *ExitMessage) Disable() {
	em.mux.Lock()
	defer em.mux.Unlock()
	em.Disabled = true
}

// Set replaces the message
func (em *ExitMessage) Set(msg string) {
	em.mux.Lock()
	defer em.mux.Unlock()
	em.Message = msg
}

// Display the message on w, if any
func (em *ExitMessage) Display(w io.Writer) {
	em.mux.Lock()
	defer em.mux.Unlock()
	if em.Disabled || em.Message == "" {
		return
	}
	fmt.Fprintln(w)
	fmt.Fprint(w, em.Message)
}
