package server

import (
	"sync"

	"github.com/smallnest/ringbuffer"
)

// OverflowBuffer is a ring buffer that will overflow when full: the
// oldest data is dropped
type OverflowBuffer struct {
	rb   *ringbuffer.RingBuffer
	size int
	mux  sync.Mutex
}

// NewOverflowBuffer creates a new OverflowBuffer
func NewOverflowBuffer(size int) *OverflowBuffer {
	return &OverflowBuffer{
		rb:   ringbuffer.New(size),
		size: size,
	}
}

// Write writes data to the buffer (non blocking [overwrites])
func (ob *OverflowBuffer) Write(data []byte) (n int, err error) {
	ob.mux.Lock()
	defer ob.mux.Unlock()

	n = len(data)
	if len(data) > ob.size {
		data = data[len(data)-ob.size:]
	}

	if free := ob.rb.Free(); free < len(data) {
		trash := make([]byte, len(data)-free)
		ob.rb.Read(trash)
	}

	if _, err := ob.rb.Write(data); err != nil {
		return 0, err
	}
	return n, nil
}

// Drain returns the buffer content and empties it
func (ob *OverflowBuffer) Drain() []byte {
	ob.mux.Lock()
	defer ob.mux.Unlock()

	if ob.rb.IsEmpty() {
		return []byte{}
	}
	data := make([]byte, ob.size)
	n, _ := ob.rb.Read(data)
	return data[:n]
}

// IsEmpty returns true if the buffer is empty
func (ob *OverflowBuffer) IsEmpty() bool {
	ob.mux.Lock()
	defer ob.mux.Unlock()
	return ob.rb.IsEmpty()
}
