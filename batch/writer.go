// Package batch implements the multiplexed measurement-stream writer.
//
// A Writer accepts boolean results for N independent streams, shot-by-shot or
// in bulk, and serializes them into one final output. Most encodings need each
// stream's data contiguous in the output while data arrives interleaved, so
// every stream except the first buffers into a spool; End concatenates the
// buffered streams onto the final output in stream order once all data has
// been produced.
//
// Writers are single-threaded and fully synchronous. For throughput,
// parallelize across independent Writer instances; the finalize ordering
// guarantee makes parallelism within one instance pointless.
package batch

import (
	"fmt"
	"io"

	"github.com/qbitio/shotrec/bittable"
	"github.com/qbitio/shotrec/errs"
	"github.com/qbitio/shotrec/format"
	"github.com/qbitio/shotrec/internal/options"
	"github.com/qbitio/shotrec/record"
	"github.com/qbitio/shotrec/spool"
)

// Writer routes per-stream results to one record.Writer per stream: writer 0
// targets the final output directly, writers 1..N-1 target private spools.
//
// A Writer is not reusable: after End it is spent, and every further write
// returns errs.ErrWriterFinished.
type Writer struct {
	out      io.Writer
	encoding format.Encoding
	writers  []record.Writer
	spools   *spool.Pool
	finished bool
}

// NewWriter creates a batch writer for numShots streams in the given
// encoding, bound to out. The caller keeps ownership of out; shotrec never
// closes it.
//
// Construction allocates numShots-1 spools; failure to create one (resource
// exhaustion) is returned as an error after the spools already created have
// been released.
func NewWriter(out io.Writer, numShots int, encoding format.Encoding, opts ...Option) (*Writer, error) {
	if numShots < 1 {
		return nil, fmt.Errorf("%w: got %d", errs.ErrInvalidShotCount, numShots)
	}

	cfg := newConfig()
	if err := options.Apply(cfg, opts...); err != nil {
		return nil, err
	}
	factory, err := cfg.spoolFactory()
	if err != nil {
		return nil, err
	}

	pool, err := spool.NewPool(numShots-1, factory)
	if err != nil {
		return nil, err
	}

	writers := make([]record.Writer, numShots)
	for k := range writers {
		dst := out
		if k > 0 {
			dst = pool.At(k - 1)
		}
		writers[k], err = record.NewWriter(dst, encoding)
		if err != nil {
			_ = pool.Close()
			return nil, err
		}
	}

	return &Writer{
		out:      out,
		encoding: encoding,
		writers:  writers,
		spools:   pool,
	}, nil
}

// NumShots returns the number of streams the writer was constructed with.
func (w *Writer) NumShots() int {
	return len(w.writers)
}

// Encoding returns the output encoding.
func (w *Writer) Encoding() format.Encoding {
	return w.encoding
}

// BeginResultType broadcasts the result-type marker to every stream's writer,
// in stream order, delimiting a new result section (measurements, then
// detection events, and so on) on all streams at once.
func (w *Writer) BeginResultType(resultType byte) {
	for _, wr := range w.writers {
		wr.BeginResultType(resultType)
	}
}

// WriteBitRow writes one new result to every stream: the value at position k
// goes to stream k.
//
// For the packed-transposed encoding the row's packed bytes are sliced into
// consecutive 8-byte groups and group k is delivered verbatim to stream k; 8
// bytes encode 64 stream-bits' worth of one shared bit position in a layout
// that is already correct per-stream, so the fast path needs no per-bit
// branching. The row must supply 64 bit positions per stream in that mode, and
// at least NumShots positions otherwise; supplying fewer is a caller contract
// violation and is not checked.
func (w *Writer) WriteBitRow(bits bittable.Bits) error {
	if w.finished {
		return errs.ErrWriterFinished
	}

	if w.encoding == format.EncodingPTB64 {
		p := bits.Bytes()
		for k, wr := range w.writers {
			group := p[k*bittable.WordBytes : (k+1)*bittable.WordBytes]
			if err := wr.WriteBytes(group); err != nil {
				return fmt.Errorf("writing stream %d: %w", k, err)
			}
		}

		return nil
	}

	for k, wr := range w.writers {
		if err := wr.WriteBit(bits.Get(k)); err != nil {
			return fmt.Errorf("writing stream %d: %w", k, err)
		}
	}

	return nil
}

// WriteTable writes numMajorU64*64 consecutive results per stream in bulk.
//
// For the packed-transposed encoding, stream k's 64-result block w is the
// 8-byte group at row w, byte offset k*8 of the table, copied verbatim; the
// table's native layout already matches the encoding's per-block grouping, so
// no transpose happens. The major extent covered this way must be a multiple
// of 64 results; that precondition is documented, not checked, and violating
// it is a caller bug.
//
// For every other encoding the table (major=result, minor=stream) is
// transposed once and each stream's contiguous numMajorU64*8 bytes are written
// in a single call. The transpose materializes a full table copy, so batch
// large extents per call rather than invoking this repeatedly with small ones.
func (w *Writer) WriteTable(table *bittable.Table, numMajorU64 int) error {
	if w.finished {
		return errs.ErrWriterFinished
	}

	if w.encoding == format.EncodingPTB64 {
		for k, wr := range w.writers {
			for j := 0; j < numMajorU64; j++ {
				row := table.RowBytes(j)
				group := row[k*bittable.WordBytes : (k+1)*bittable.WordBytes]
				if err := wr.WriteBytes(group); err != nil {
					return fmt.Errorf("writing stream %d: %w", k, err)
				}
			}
		}

		return nil
	}

	transposed := table.Transposed()
	n := numMajorU64 * bittable.WordBytes
	for k, wr := range w.writers {
		if err := wr.WriteBytes(transposed.RowBytes(k)[:n]); err != nil {
			return fmt.Errorf("writing stream %d: %w", k, err)
		}
	}

	return nil
}

// End finalizes the session exactly once: it finishes every stream's writer
// (flushing partial-word buffering), then drains the spools of streams 1..N-1
// onto the final output in stream-index order and releases them. Stream 0's
// data needs no copy; it was written to the output directly.
//
// The final output stays open — the caller owns it — but the Writer is spent:
// a second End, like any further write, returns errs.ErrWriterFinished and
// drains nothing. Any I/O failure is fatal and leaves the output truncated;
// undrained spools are still released by Close.
func (w *Writer) End() error {
	if w.finished {
		return errs.ErrWriterFinished
	}
	w.finished = true

	for k, wr := range w.writers {
		if err := wr.End(); err != nil {
			return fmt.Errorf("finishing stream %d: %w", k, err)
		}
	}

	for i := 0; i < w.spools.Len(); i++ {
		sp := w.spools.At(i)
		if err := sp.Rewind(); err != nil {
			return fmt.Errorf("rewinding stream %d spool: %w", i+1, err)
		}
		if _, err := io.Copy(w.out, sp); err != nil {
			return fmt.Errorf("draining stream %d spool: %w", i+1, err)
		}
		if err := sp.Close(); err != nil {
			return fmt.Errorf("releasing stream %d spool: %w", i+1, err)
		}
	}

	return w.spools.Close()
}

// Close releases all temporary resources without flushing anything to the
// final output. It is the safety net for sessions that never reached End or
// failed partway: buffered contents are discarded, never partially flushed.
// Idempotent, and safe to defer alongside End.
func (w *Writer) Close() error {
	w.finished = true

	return w.spools.Close()
}
