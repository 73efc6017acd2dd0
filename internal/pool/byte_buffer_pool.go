// Package pool provides pooled byte buffers reused across batch-write
// sessions to keep the spool hot path allocation-free.
package pool

import (
	"io"
	"sync"
)

const (
	// SpoolBufferDefaultSize is the initial capacity of pooled spool buffers.
	SpoolBufferDefaultSize = 1024 * 16 // 16KiB

	// SpoolBufferMaxThreshold is the largest buffer the pool retains; bigger
	// buffers are dropped so one huge session doesn't pin memory forever.
	SpoolBufferMaxThreshold = 1024 * 1024 // 1MiB
)

// ByteBuffer is a growable byte buffer backing in-memory spools.
type ByteBuffer struct {
	// B is the underlying byte slice.
	B []byte
}

// NewByteBuffer creates a new ByteBuffer with the specified initial capacity.
func NewByteBuffer(defaultSize int) *ByteBuffer {
	return &ByteBuffer{
		B: make([]byte, 0, defaultSize),
	}
}

// Bytes returns the underlying byte slice.
func (bb *ByteBuffer) Bytes() []byte {
	return bb.B
}

// Reset resets the buffer to be empty, retaining the allocated memory.
func (bb *ByteBuffer) Reset() {
	bb.B = bb.B[:0]
}

// Len returns the length of the buffer.
func (bb *ByteBuffer) Len() int {
	return len(bb.B)
}

// Cap returns the capacity of the buffer.
func (bb *ByteBuffer) Cap() int {
	return cap(bb.B)
}

// Write appends the contents of data to the buffer, growing it as needed.
func (bb *ByteBuffer) Write(data []byte) (int, error) {
	bb.B = append(bb.B, data...)
	return len(data), nil
}

// WriteTo writes the contents of the buffer to w.
func (bb *ByteBuffer) WriteTo(w io.Writer) (int64, error) {
	n, err := w.Write(bb.B)
	return int64(n), err
}

var byteBufferPool = sync.Pool{
	New: func() any { return NewByteBuffer(SpoolBufferDefaultSize) },
}

// GetByteBuffer retrieves an empty ByteBuffer from the pool.
func GetByteBuffer() *ByteBuffer {
	bb, _ := byteBufferPool.Get().(*ByteBuffer)
	bb.Reset()

	return bb
}

// PutByteBuffer returns a ByteBuffer to the pool. Buffers that grew beyond
// SpoolBufferMaxThreshold are dropped instead of retained.
func PutByteBuffer(bb *ByteBuffer) {
	if bb == nil || bb.Cap() > SpoolBufferMaxThreshold {
		return
	}

	byteBufferPool.Put(bb)
}
