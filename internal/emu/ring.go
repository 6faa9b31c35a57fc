package emu

import (
	"fmt"
	"strings"
)

// RingWriter keeps the most recent bytes written to it.
type RingWriter struct {
	buffer  []byte
	size    int
	cursor  int
	wrapped bool

	// total number of bytes ever written
	written int
}

func NewRingWriter(size int) (*RingWriter, error) {
	if size <= 0 {
		return nil, fmt.Errorf("emu: invalid size for RingWriter (%d)", size)
	}
	return &RingWriter{
		size:   size,
		buffer: make([]byte, size),
	}, nil
}

func (r *RingWriter) String() string {
	var s strings.Builder
	if r.wrapped {
		s.Write(r.buffer[r.cursor:])
	}
	s.Write(r.buffer[:r.cursor])
	return s.String()
}

// Written returns the number of bytes written since the last Reset().
func (r *RingWriter) Written() int {
	return r.written
}

func (r *RingWriter) Reset() {
	r.cursor = 0
	r.wrapped = false
	r.written = 0
}

// Write implements io.Writer.
func (r *RingWriter) Write(p []byte) (int, error) {
	r.written += len(p)

	// only the tail of a write larger than the ring survives
	q := p
	if len(q) >= r.size {
		q = q[len(q)-r.size:]
		copy(r.buffer, q)
		r.cursor = 0
		r.wrapped = true
		return len(p), nil
	}

	n := copy(r.buffer[r.cursor:], q)
	if n < len(q) {
		copy(r.buffer, q[n:])
		r.wrapped = true
	}
	r.cursor = (r.cursor + len(q)) % r.size
	if r.cursor == 0 && len(q) > 0 {
		r.wrapped = true
	}

	return len(p), nil
}
