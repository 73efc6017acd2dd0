package record

import (
	"io"
	"strconv"

	"github.com/qbitio/shotrec/errs"
)

// writer01 emits one ASCII '0' or '1' per result and terminates the record
// with a newline at End.
type writer01 struct {
	w    io.Writer
	buf  [1]byte
	done bool
}

func (wr *writer01) BeginResultType(byte) {}

func (wr *writer01) WriteBit(bit bool) error {
	if wr.done {
		return errs.ErrWriterFinished
	}
	wr.buf[0] = '0'
	if bit {
		wr.buf[0] = '1'
	}
	_, err := wr.w.Write(wr.buf[:])

	return err
}

func (wr *writer01) WriteBytes(data []byte) error {
	return writeBitsLSB(wr, data)
}

func (wr *writer01) End() error {
	if wr.done {
		return errs.ErrWriterFinished
	}
	wr.done = true
	wr.buf[0] = '\n'
	_, err := wr.w.Write(wr.buf[:])

	return err
}

// writerHits emits the comma-separated indices of set bits, newline
// terminated. The index counts every result, set or not, across all result
// sections.
type writerHits struct {
	w     io.Writer
	buf   []byte
	index uint64
	any   bool
	done  bool
}

func (wr *writerHits) BeginResultType(byte) {}

func (wr *writerHits) WriteBit(bit bool) error {
	if wr.done {
		return errs.ErrWriterFinished
	}
	idx := wr.index
	wr.index++
	if !bit {
		return nil
	}

	wr.buf = wr.buf[:0]
	if wr.any {
		wr.buf = append(wr.buf, ',')
	}
	wr.any = true
	wr.buf = strconv.AppendUint(wr.buf, idx, 10)
	_, err := wr.w.Write(wr.buf)

	return err
}

func (wr *writerHits) WriteBytes(data []byte) error {
	return writeBitsLSB(wr, data)
}

func (wr *writerHits) End() error {
	if wr.done {
		return errs.ErrWriterFinished
	}
	wr.done = true
	_, err := wr.w.Write([]byte{'\n'})

	return err
}

// writerDets emits a "shot" record of typed indices ("shot M0 D2 L1"),
// newline terminated. BeginResultType selects the marker letter and restarts
// the index count for the new section.
type writerDets struct {
	w          io.Writer
	buf        []byte
	resultType byte
	index      uint64
	started    bool
	done       bool
}

func (wr *writerDets) BeginResultType(resultType byte) {
	wr.resultType = resultType
	wr.index = 0
}

func (wr *writerDets) WriteBit(bit bool) error {
	if wr.done {
		return errs.ErrWriterFinished
	}
	if err := wr.writeHeader(); err != nil {
		return err
	}
	idx := wr.index
	wr.index++
	if !bit {
		return nil
	}

	wr.buf = wr.buf[:0]
	wr.buf = append(wr.buf, ' ', wr.resultType)
	wr.buf = strconv.AppendUint(wr.buf, idx, 10)
	_, err := wr.w.Write(wr.buf)

	return err
}

func (wr *writerDets) WriteBytes(data []byte) error {
	return writeBitsLSB(wr, data)
}

func (wr *writerDets) End() error {
	if wr.done {
		return errs.ErrWriterFinished
	}
	if err := wr.writeHeader(); err != nil {
		return err
	}
	wr.done = true
	_, err := wr.w.Write([]byte{'\n'})

	return err
}

// writeHeader lazily emits the "shot" prefix before the first token. Empty
// records still carry it so every stream produces exactly one record.
func (wr *writerDets) writeHeader() error {
	if wr.started {
		return nil
	}
	wr.started = true
	_, err := io.WriteString(wr.w, "shot")

	return err
}
