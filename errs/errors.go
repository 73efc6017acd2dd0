// Package errs defines the sentinel errors returned by shotrec packages.
//
// Callers can match these with errors.Is; call sites wrap them with
// fmt.Errorf("%w: ...") to add context.
package errs

import "errors"

var (
	// ErrInvalidShotCount is returned when a batch writer is constructed with
	// fewer than one shot stream.
	ErrInvalidShotCount = errors.New("shot count must be at least 1")

	// ErrInvalidEncoding is returned when an unknown encoding is requested.
	ErrInvalidEncoding = errors.New("invalid output encoding")

	// ErrWriterFinished is returned when a write operation is attempted on a
	// writer whose End method already ran. Finished writers are spent and must
	// not be reused.
	ErrWriterFinished = errors.New("writer is already finished")

	// ErrSpoolClosed is returned when a spool is used after Close released its
	// backing storage.
	ErrSpoolClosed = errors.New("spool is closed")

	// ErrSpoolNotRewound is returned when a spool drain is attempted before
	// Rewind switched the spool from append mode to read mode.
	ErrSpoolNotRewound = errors.New("spool is not rewound")

	// ErrSpoolRewound is returned when a write is attempted after Rewind; spools
	// are append-only until finalization.
	ErrSpoolRewound = errors.New("spool is rewound, no further writes allowed")

	// ErrChecksumMismatch is returned when a spool's drained contents do not
	// match the checksum recorded while writing, indicating the backing storage
	// was corrupted between write and drain.
	ErrChecksumMismatch = errors.New("spool checksum mismatch")
)
