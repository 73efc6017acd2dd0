package spool

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/qbitio/shotrec/errs"
	"github.com/qbitio/shotrec/internal/hash"
)

// fileSpool buffers the stream in an anonymous temp file, removed on Close.
type fileSpool struct {
	f       *os.File
	sum     *hash.Checksum
	readSum *hash.Checksum
	state   spoolState
}

// NewFile creates a temp-file backed spool in dir (or the system temp
// directory when dir is empty). Creation fails on resource exhaustion; the
// caller treats that as fatal.
func NewFile(dir string) (Spool, error) {
	f, err := os.CreateTemp(dir, "shotrec-spool-*")
	if err != nil {
		return nil, fmt.Errorf("creating spool file: %w", err)
	}

	return &fileSpool{
		f:       f,
		sum:     hash.NewChecksum(),
		readSum: hash.NewChecksum(),
	}, nil
}

func (s *fileSpool) Write(data []byte) (int, error) {
	switch s.state {
	case stateRewound:
		return 0, errs.ErrSpoolRewound
	case stateClosed:
		return 0, errs.ErrSpoolClosed
	}
	n, err := s.f.Write(data)
	s.sum.Write(data[:n])

	return n, err
}

func (s *fileSpool) Rewind() error {
	if s.state == stateClosed {
		return errs.ErrSpoolClosed
	}
	s.state = stateRewound
	if _, err := s.f.Seek(0, io.SeekStart); err != nil {
		return fmt.Errorf("rewinding spool file: %w", err)
	}

	return nil
}

func (s *fileSpool) Read(p []byte) (int, error) {
	switch s.state {
	case stateAppending:
		return 0, errs.ErrSpoolNotRewound
	case stateClosed:
		return 0, errs.ErrSpoolClosed
	}
	n, err := s.f.Read(p)
	s.readSum.Write(p[:n])
	if errors.Is(err, io.EOF) && s.readSum.Sum64() != s.sum.Sum64() {
		return n, errs.ErrChecksumMismatch
	}

	return n, err
}

func (s *fileSpool) Close() error {
	if s.state == stateClosed {
		return nil
	}
	s.state = stateClosed

	name := s.f.Name()
	err := s.f.Close()
	if rmErr := os.Remove(name); err == nil {
		err = rmErr
	}
	s.f = nil

	return err
}
