package record

import (
	"io"

	"github.com/qbitio/shotrec/endian"
	"github.com/qbitio/shotrec/errs"
)

var engine = endian.GetLittleEndianEngine()

// writerB8 packs results into bytes, least significant bit first. End
// zero-pads and flushes a trailing partial byte.
type writerB8 struct {
	w     io.Writer
	buf   [1]byte
	cur   byte
	nbits uint
	done  bool
}

func (wr *writerB8) BeginResultType(byte) {}

func (wr *writerB8) WriteBit(bit bool) error {
	if wr.done {
		return errs.ErrWriterFinished
	}
	if bit {
		wr.cur |= 1 << wr.nbits
	}
	wr.nbits++
	if wr.nbits < 8 {
		return nil
	}

	return wr.flush()
}

// WriteBytes copies data verbatim when the writer sits on a byte boundary,
// falling back to per-bit writes when a partial byte is pending.
func (wr *writerB8) WriteBytes(data []byte) error {
	if wr.done {
		return errs.ErrWriterFinished
	}
	if wr.nbits != 0 {
		return writeBitsLSB(wr, data)
	}
	_, err := wr.w.Write(data)

	return err
}

func (wr *writerB8) End() error {
	if wr.done {
		return errs.ErrWriterFinished
	}
	wr.done = true
	if wr.nbits == 0 {
		return nil
	}

	return wr.flush()
}

func (wr *writerB8) flush() error {
	wr.buf[0] = wr.cur
	wr.cur = 0
	wr.nbits = 0
	_, err := wr.w.Write(wr.buf[:])

	return err
}

// writerR8 run-length encodes the stream: each byte counts the zeros before
// the next one, 0xFF meaning 255 zeros with no one yet. End emits the
// trailing zero run; the one it would imply is cut off by end-of-data.
type writerR8 struct {
	w    io.Writer
	buf  [1]byte
	run  int
	done bool
}

func (wr *writerR8) BeginResultType(byte) {}

func (wr *writerR8) WriteBit(bit bool) error {
	if wr.done {
		return errs.ErrWriterFinished
	}
	if bit {
		return wr.emit(byte(wr.run))
	}
	wr.run++
	if wr.run == 255 {
		return wr.emit(0xFF)
	}

	return nil
}

func (wr *writerR8) WriteBytes(data []byte) error {
	return writeBitsLSB(wr, data)
}

func (wr *writerR8) End() error {
	if wr.done {
		return errs.ErrWriterFinished
	}
	wr.done = true

	return wr.emit(byte(wr.run))
}

func (wr *writerR8) emit(b byte) error {
	wr.buf[0] = b
	wr.run = 0
	_, err := wr.w.Write(wr.buf[:])

	return err
}

// writerPTB64 emits the packed-transposed layout: results pack 64 at a time
// into little-endian 8-byte words. WriteBytes appends pre-packed groups
// verbatim; mixing it with WriteBit while a partial word is pending misaligns
// the output and is a caller contract violation. End zero-pads and flushes a
// trailing partial word.
type writerPTB64 struct {
	w     io.Writer
	buf   [8]byte
	word  uint64
	nbits uint
	done  bool
}

func (wr *writerPTB64) BeginResultType(byte) {}

func (wr *writerPTB64) WriteBit(bit bool) error {
	if wr.done {
		return errs.ErrWriterFinished
	}
	if bit {
		wr.word |= 1 << wr.nbits
	}
	wr.nbits++
	if wr.nbits < 64 {
		return nil
	}

	return wr.flush()
}

func (wr *writerPTB64) WriteBytes(data []byte) error {
	if wr.done {
		return errs.ErrWriterFinished
	}
	_, err := wr.w.Write(data)

	return err
}

func (wr *writerPTB64) End() error {
	if wr.done {
		return errs.ErrWriterFinished
	}
	wr.done = true
	if wr.nbits == 0 {
		return nil
	}

	return wr.flush()
}

func (wr *writerPTB64) flush() error {
	engine.PutUint64(wr.buf[:], wr.word)
	wr.word = 0
	wr.nbits = 0
	_, err := wr.w.Write(wr.buf[:])

	return err
}
