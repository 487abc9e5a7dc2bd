package server

// Messages go to stdout, with colors, and to an overflow buffer
// keeping the recent history.

import (
	"fmt"
	"io"
	"os"
	"sync"
	"time"

	"github.com/cloudvalet/valet/common"
	"github.com/fatih/color"
)

// Log provides error/warning/etc helpers
type Log struct {
	out     io.Writer
	history *OverflowBuffer
	trace   bool
	mux     sync.Mutex
}

// NewLog creates a new log, history may be nil
func NewLog(trace bool, history *OverflowBuffer) *Log {
	return &Log{
		out:     os.Stdout,
		history: history,
		trace:   trace,
	}
}

var messageColors = map[string]*color.Color{
	common.MessageError:   color.New(color.FgHiRed),
	common.MessageFailure: color.New(color.FgHiRed),
	common.MessageWarning: color.New(color.FgHiYellow),
	common.MessageSuccess: color.New(color.FgHiGreen),
	common.MessageTrace:   color.New(color.FgHiBlack),
	common.MessageInfo:    color.New(color.Reset),
}

// Log is a low-level function for sending a Message
func (log *Log) Log(message *common.Message) {
	if message.Type == common.MessageTrace && !log.trace {
		return
	}

	log.mux.Lock()
	defer log.mux.Unlock()

	c, ok := messageColors[message.Type]
	if !ok {
		c = color.New(color.Reset)
	}
	fmt.Fprintln(log.out, c.Sprintf("%s: %s", message.Type, message.Message))

	// we don't historize TRACE messages
	if log.history != nil && message.Type != common.MessageTrace {
		fmt.Fprintf(log.history, "%s %s: %s\n", message.Time.Format(time.DateTime), message.Type, message.Message)
	}
}

// Error sends a MessageError Message
func (log *Log) Error(message string) {
	log.Log(common.NewMessage(common.MessageError, message))
}

// Errorf sends a formated string MessageError Message
func (log *Log) Errorf(format string, args ...interface{}) {
	log.Error(fmt.Sprintf(format, args...))
}

// Warning sends a MessageWarning Message
func (log *Log) Warning(message string) {
	log.Log(common.NewMessage(common.MessageWarning, message))
}

// Warningf sends a formated string MessageWarning Message
func (log *Log) Warningf(format string, args ...interface{}) {
	log.Warning(fmt.Sprintf(format, args...))
}

// Info sends an MessageInfo Message
func (log *Log) Info(message string) {
	log.Log(common.NewMessage(common.MessageInfo, message))
}

// Infof sends a formated string MessageInfo Message
func (log *Log) Infof(format string, args ...interface{}) {
	log.Info(fmt.Sprintf(format, args...))
}

// Trace sends an MessageTrace Message
func (log *Log) Trace(message string) {
	log.Log(common.NewMessage(common.MessageTrace, message))
}

// Tracef sends a formated string MessageTrace Message
func (log *Log) Tracef(format string, args ...interface{}) {
	log.Trace(fmt.Sprintf(format, args...))
}

// Success sends an MessageSuccess Message
func (log *Log) Success(message string) {
	log.Log(common.NewMessage(common.MessageSuccess, message))
}

// Successf sends a formated string MessageSuccess Message
func (log *Log) Successf(format string, args ...interface{}) {
	log.Success(fmt.Sprintf(format, args...))
}

// SetOutput changes where messages are printed (tests)
func (log *Log) SetOutput(w io.Writer) {
	log.mux.Lock()
	defer log.mux.Unlock()
	log.out = w
}
