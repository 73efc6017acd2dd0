// Package spool implements the scoped rewritable byte stores that buffer
// non-primary measurement streams until finalization, plus the Pool that owns
// one spool per buffered stream and guarantees their cleanup.
//
// A spool's life is strictly three-phase: append-only while results are being
// produced, then a one-way Rewind into read mode for the finalize drain, then
// Close to release the backing storage. Every spool records an xxHash64 of the
// bytes written to it and re-hashes what it serves back; a divergence surfaces
// as errs.ErrChecksumMismatch, catching temp-storage corruption between write
// and drain.
//
// Three backings exist: in-memory (pooled buffers, the default), temp-file
// (for shot counts whose buffered streams would not fit in memory), and a
// compressing wrapper that frames either of them through a compress.Codec.
package spool

import (
	"io"

	"github.com/qbitio/shotrec/errs"
	"github.com/qbitio/shotrec/internal/hash"
	"github.com/qbitio/shotrec/internal/pool"
)

// Spool is a scoped rewritable byte store: writable, then rewindable-then-
// readable, then destructible with guaranteed storage reclamation.
type Spool interface {
	// Write appends data. Returns errs.ErrSpoolRewound after Rewind and
	// errs.ErrSpoolClosed after Close.
	io.Writer

	// Rewind switches the spool from append mode to read mode. The switch is
	// one-way; there is no way back to appending.
	Rewind() error

	// Read serves the buffered contents from the start. Only valid after
	// Rewind. The final read reports errs.ErrChecksumMismatch instead of
	// io.EOF if the served bytes do not match what was written.
	io.Reader

	// Close releases the backing storage. Idempotent; contents that were never
	// drained are simply discarded.
	Close() error
}

// Factory creates one spool per buffered stream.
type Factory func() (Spool, error)

type spoolState uint8

const (
	stateAppending spoolState = iota
	stateRewound
	stateClosed
)

// memorySpool buffers the stream in a pooled byte buffer.
type memorySpool struct {
	buf     *pool.ByteBuffer
	sum     *hash.Checksum
	readSum *hash.Checksum
	off     int
	state   spoolState
}

// NewMemory creates an in-memory spool.
func NewMemory() Spool {
	return &memorySpool{
		buf:     pool.GetByteBuffer(),
		sum:     hash.NewChecksum(),
		readSum: hash.NewChecksum(),
	}
}

func (s *memorySpool) Write(data []byte) (int, error) {
	switch s.state {
	case stateRewound:
		return 0, errs.ErrSpoolRewound
	case stateClosed:
		return 0, errs.ErrSpoolClosed
	}
	s.sum.Write(data)

	return s.buf.Write(data)
}

func (s *memorySpool) Rewind() error {
	if s.state == stateClosed {
		return errs.ErrSpoolClosed
	}
	s.state = stateRewound
	s.off = 0

	return nil
}

func (s *memorySpool) Read(p []byte) (int, error) {
	switch s.state {
	case stateAppending:
		return 0, errs.ErrSpoolNotRewound
	case stateClosed:
		return 0, errs.ErrSpoolClosed
	}
	if s.off >= s.buf.Len() {
		if s.readSum.Sum64() != s.sum.Sum64() {
			return 0, errs.ErrChecksumMismatch
		}

		return 0, io.EOF
	}
	n := copy(p, s.buf.Bytes()[s.off:])
	s.off += n
	s.readSum.Write(p[:n])

	return n, nil
}

func (s *memorySpool) Close() error {
	if s.state == stateClosed {
		return nil
	}
	s.state = stateClosed
	pool.PutByteBuffer(s.buf)
	s.buf = nil

	return nil
}
