package client

// This log system is a stripped version of the daemon message system
// (no target, no hub), with colors.

import (
	"fmt"
	"io"
	"os"
	"sync"
	"time"

	"github.com/cloudvalet/valet/common"
	"github.com/fatih/color"
)

// Log provides error/warning/etc helpers, writing to Out
type Log struct {
	Out   io.Writer
	trace bool
	time  bool
	mux   sync.Mutex
}

// NewLog creates a new log on stderr
func NewLog(trace bool, time bool) *Log {
	return &Log{
		Out:   os.Stderr,
		trace: trace,
		time:  time,
	}
}

func messageColor(mtype string) *color.Color {
	switch mtype {
	case common.MessageError, common.MessageFailure:
		return color.New(color.FgHiRed)
	case common.MessageWarning:
		return color.New(color.FgHiYellow)
	case common.MessageSuccess:
		return color.New(color.FgHiGreen)
	case common.MessageTrace:
		return color.New(color.FgHiBlack)
	}
	return color.New(color.Reset)
}

// Log is a low-level function for sending a Message
func (log *Log) Log(message *common.Message) {
	if message.Type == common.MessageTrace && !log.trace {
		return
	}

	log.mux.Lock()
	defer log.mux.Unlock()

	c := messageColor(message.Type)
	if log.time {
		fmt.Fprintf(log.Out, "%s ", message.Time.Format(time.DateTime))
	}
	fmt.Fprintln(log.Out, c.Sprintf("%s: %s", message.Type, message.Message))
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

// Failure sends an MessageFailure Message
func (log *Log) Failure(message string) {
	log.Log(common.NewMessage(common.MessageFailure, message))
}

// Failuref sends a formated string MessageFailure Message
func (log *Log) Failuref(format string, args ...interface{}) {
	log.Failure(fmt.Sprintf(format, args...))
}
