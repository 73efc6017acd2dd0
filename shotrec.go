// Package shotrec serializes multiplexed boolean measurement streams into a
// single output in several bit-exact encodings.
//
// A batch writer accepts results for N independent streams (one per shot),
// shot-by-shot or in bulk from a packed bit table, and routes each stream
// through its own record writer. Stream 0 writes straight to the final
// output; streams 1..N-1 buffer into spools (in-memory or temp-file backed,
// optionally compressed) and are concatenated onto the output in stream order
// when the session ends.
//
// # Basic Usage
//
// Writing two streams in the textual 01 encoding:
//
//	import "github.com/qbitio/shotrec"
//
//	w, _ := shotrec.NewBatchWriter(out, 2, format.Encoding01)
//	defer w.Close()
//
//	row := bittable.NewBits(2)
//	row.Set(0, true) // stream 0 result
//	row.Set(1, false) // stream 1 result
//	_ = w.WriteBitRow(row)
//
//	_ = w.End() // drains buffered streams onto out, in order
//
// Bulk writes go through WriteTable with a packed bittable.Table; see the
// batch package for the per-encoding fast paths and their preconditions.
//
// # Package Structure
//
// This package provides thin wrappers over the batch and record packages,
// which hold the actual implementations. Supporting packages: bittable (the
// packed bit matrix), spool (temporary stream buffering), format (encoding
// enums), compress (spool codecs).
package shotrec

import (
	"io"

	"github.com/qbitio/shotrec/batch"
	"github.com/qbitio/shotrec/format"
	"github.com/qbitio/shotrec/record"
)

// Result type markers, re-exported from the record package.
const (
	ResultTypeMeasurement = record.ResultTypeMeasurement
	ResultTypeDetector    = record.ResultTypeDetector
	ResultTypeObservable  = record.ResultTypeObservable
)

// NewBatchWriter creates a batch writer for numShots streams in the given
// encoding, bound to out. The caller keeps ownership of out.
//
// Defaults: in-memory spools, no compression. Pass batch options
// (batch.WithFileSpools, batch.WithSpoolCompression, ...) to override.
func NewBatchWriter(out io.Writer, numShots int, encoding format.Encoding, opts ...batch.Option) (*batch.Writer, error) {
	return batch.NewWriter(out, numShots, encoding, opts...)
}

// NewRecordWriter creates a single-stream record writer for the given
// encoding, bound to w. Use it when there is only one stream and no
// multiplexing is needed; its output for a given bit sequence is identical to
// what one stream of a batch writer produces.
func NewRecordWriter(w io.Writer, encoding format.Encoding) (record.Writer, error) {
	return record.NewWriter(w, encoding)
}
