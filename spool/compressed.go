package spool

import (
	"bufio"
	"encoding/binary"
	"fmt"
	"io"

	"github.com/qbitio/shotrec/compress"
	"github.com/qbitio/shotrec/errs"
	"github.com/qbitio/shotrec/internal/pool"
)

// flushBlockSize is how many buffered bytes accumulate before a compressed
// frame is flushed to the inner spool. Large enough for the codec to find
// redundancy, small enough to keep the staging footprint bounded.
const flushBlockSize = 64 * 1024

// compressedSpool frames an inner spool through a compress.Codec. Writes
// accumulate in a staging buffer and flush as length-prefixed compressed
// frames; reads decode one frame at a time.
type compressedSpool struct {
	inner   Spool
	codec   compress.Codec
	staging *pool.ByteBuffer
	br      *bufio.Reader
	decoded []byte
	off     int
	state   spoolState
}

// NewCompressed wraps inner so its contents are stored compressed.
// The integrity checksum of the inner spool covers the compressed frames.
func NewCompressed(inner Spool, codec compress.Codec) Spool {
	return &compressedSpool{
		inner:   inner,
		codec:   codec,
		staging: pool.GetByteBuffer(),
	}
}

func (s *compressedSpool) Write(data []byte) (int, error) {
	switch s.state {
	case stateRewound:
		return 0, errs.ErrSpoolRewound
	case stateClosed:
		return 0, errs.ErrSpoolClosed
	}
	total := len(data)
	for len(data) > 0 {
		room := flushBlockSize - s.staging.Len()
		if room > len(data) {
			room = len(data)
		}
		if _, err := s.staging.Write(data[:room]); err != nil {
			return total - len(data), err
		}
		data = data[room:]
		if s.staging.Len() >= flushBlockSize {
			if err := s.flushFrame(); err != nil {
				return total - len(data), err
			}
		}
	}

	return total, nil
}

func (s *compressedSpool) Rewind() error {
	if s.state == stateClosed {
		return errs.ErrSpoolClosed
	}
	if s.state == stateAppending {
		if err := s.flushFrame(); err != nil {
			return err
		}
	}
	s.state = stateRewound
	if err := s.inner.Rewind(); err != nil {
		return err
	}
	s.br = bufio.NewReader(s.inner)
	s.decoded = nil
	s.off = 0

	return nil
}

func (s *compressedSpool) Read(p []byte) (int, error) {
	switch s.state {
	case stateAppending:
		return 0, errs.ErrSpoolNotRewound
	case stateClosed:
		return 0, errs.ErrSpoolClosed
	}
	for s.off >= len(s.decoded) {
		if err := s.readFrame(); err != nil {
			return 0, err
		}
	}
	n := copy(p, s.decoded[s.off:])
	s.off += n

	return n, nil
}

func (s *compressedSpool) Close() error {
	if s.state == stateClosed {
		return nil
	}
	s.state = stateClosed
	pool.PutByteBuffer(s.staging)
	s.staging = nil
	s.decoded = nil

	return s.inner.Close()
}

// flushFrame compresses the staging buffer and appends it to the inner spool
// as one length-prefixed frame. Empty staging flushes nothing.
func (s *compressedSpool) flushFrame() error {
	if s.staging.Len() == 0 {
		return nil
	}
	comp, err := s.codec.Compress(s.staging.Bytes())
	if err != nil {
		return fmt.Errorf("compressing spool frame: %w", err)
	}

	var hdr [binary.MaxVarintLen64]byte
	n := binary.PutUvarint(hdr[:], uint64(len(comp)))
	if _, err := s.inner.Write(hdr[:n]); err != nil {
		return err
	}
	if _, err := s.inner.Write(comp); err != nil {
		return err
	}
	s.staging.Reset()

	return nil
}

// readFrame decodes the next frame from the inner spool into s.decoded.
// io.EOF propagates from the inner spool once all frames are consumed, as
// does its checksum verdict.
func (s *compressedSpool) readFrame() error {
	size, err := binary.ReadUvarint(s.br)
	if err != nil {
		return err
	}
	comp := make([]byte, size)
	if _, err := io.ReadFull(s.br, comp); err != nil {
		if err == io.EOF {
			return io.ErrUnexpectedEOF
		}
		return err
	}
	s.decoded, err = s.codec.Decompress(comp)
	if err != nil {
		return fmt.Errorf("decompressing spool frame: %w", err)
	}
	s.off = 0
	if len(s.decoded) == 0 && size > 0 {
		return io.ErrUnexpectedEOF
	}

	return nil
}
