// Package hash provides the checksum primitive used to verify spool contents.
package hash

import "github.com/cespare/xxhash/v2"

// Checksum accumulates an xxHash64 digest over a byte stream.
//
// Spools record a Checksum while buffering and compare it against a second
// Checksum computed during the drain, detecting temp-storage corruption.
type Checksum struct {
	d *xxhash.Digest
}

// NewChecksum creates an empty checksum accumulator.
func NewChecksum() *Checksum {
	return &Checksum{d: xxhash.New()}
}

// Write adds data to the running digest. It never fails.
func (c *Checksum) Write(data []byte) {
	_, _ = c.d.Write(data)
}

// Sum64 returns the digest of all bytes written so far.
func (c *Checksum) Sum64() uint64 {
	return c.d.Sum64()
}

// Sum64Of returns the xxHash64 digest of data in one shot.
func Sum64Of(data []byte) uint64 {
	return xxhash.Sum64(data)
}
