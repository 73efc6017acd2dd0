package spool

import "fmt"

// Pool owns the spools buffering streams 1..N-1 and guarantees every one of
// them is released exactly once, whether or not the batch session finalized.
type Pool struct {
	spools []Spool
	closed bool
}

// NewPool creates n spools from factory. If any creation fails, the spools
// already created are closed before the error is returned, so a partially
// constructed pool never leaks storage.
func NewPool(n int, factory Factory) (*Pool, error) {
	p := &Pool{spools: make([]Spool, 0, n)}
	for i := 0; i < n; i++ {
		sp, err := factory()
		if err != nil {
			_ = p.Close()
			return nil, fmt.Errorf("creating spool %d: %w", i, err)
		}
		p.spools = append(p.spools, sp)
	}

	return p, nil
}

// Len returns the number of spools in the pool.
func (p *Pool) Len() int {
	return len(p.spools)
}

// At returns spool i. Panics if i is out of range.
func (p *Pool) At(i int) Spool {
	return p.spools[i]
}

// Close releases every spool. It is idempotent; every spool's Close is
// attempted even when earlier ones fail, and the first error wins.
func (p *Pool) Close() error {
	if p.closed {
		return nil
	}
	p.closed = true

	var firstErr error
	for i, sp := range p.spools {
		if err := sp.Close(); err != nil && firstErr == nil {
			firstErr = fmt.Errorf("closing spool %d: %w", i, err)
		}
	}

	return firstErr
}
