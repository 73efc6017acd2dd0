// Package record implements the per-stream measurement record writers, one
// per output encoding.
//
// A Writer serializes a single stream of boolean results onto an io.Writer.
// The batch orchestrator owns one Writer per stream; the same implementations
// work standalone for single-stream output.
//
// Writers are not safe for concurrent use and are spent after End.
package record

import (
	"fmt"
	"io"

	"github.com/qbitio/shotrec/errs"
	"github.com/qbitio/shotrec/format"
)

// Result type markers broadcast through BeginResultType. Each delimits a
// section of results within the same stream.
const (
	// ResultTypeMeasurement tags raw measurement results.
	ResultTypeMeasurement byte = 'M'
	// ResultTypeDetector tags detection event results.
	ResultTypeDetector byte = 'D'
	// ResultTypeObservable tags logical observable results.
	ResultTypeObservable byte = 'L'
)

// Writer serializes one stream of boolean results.
type Writer interface {
	// BeginResultType switches the writer to a new result section. Encodings
	// that tag results (dets) reset their index counter and emit the marker on
	// subsequent set bits; the others ignore it.
	BeginResultType(resultType byte)

	// WriteBit appends a single result.
	WriteBit(bit bool) error

	// WriteBytes appends packed results, 8 per byte, least significant bit
	// first. The packed-transposed encoding treats data as pre-packed groups
	// and copies it verbatim.
	WriteBytes(data []byte) error

	// End flushes any in-writer buffering (partial-word padding, record
	// terminators). The writer is spent afterwards: further writes and a
	// second End return errs.ErrWriterFinished.
	End() error
}

// NewWriter creates the Writer implementation for the given encoding, bound
// to w. It works equally against the final output and a spool.
func NewWriter(w io.Writer, enc format.Encoding) (Writer, error) {
	switch enc {
	case format.Encoding01:
		return &writer01{w: w}, nil
	case format.EncodingB8:
		return &writerB8{w: w}, nil
	case format.EncodingHits:
		return &writerHits{w: w}, nil
	case format.EncodingDets:
		return &writerDets{w: w, resultType: ResultTypeMeasurement}, nil
	case format.EncodingR8:
		return &writerR8{w: w}, nil
	case format.EncodingPTB64:
		return &writerPTB64{w: w}, nil
	default:
		return nil, fmt.Errorf("%w: %s", errs.ErrInvalidEncoding, enc)
	}
}

// writeBitsLSB feeds each bit of data to wr.WriteBit, least significant bit
// first. It is the generic WriteBytes fallback for per-bit encodings.
func writeBitsLSB(wr Writer, data []byte) error {
	for _, b := range data {
		for j := 0; j < 8; j++ {
			if err := wr.WriteBit(b&(1<<j) != 0); err != nil {
				return err
			}
		}
	}

	return nil
}
