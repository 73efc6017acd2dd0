// Package bittable implements the packed 2-D bit matrix fed to the batch
// writer's bulk path.
//
// A Table stores major × minor bits row-major, one row per major index, with
// the minor dimension padded up to whole 64-bit words. The padded row width in
// bytes (MinorU8Padded) is the stride the packed-transposed bulk path uses to
// address the 8-byte group of stream k within 64-result block w.
//
// The word width is fixed at 64 bits for the whole package; every layout and
// the transpose kernel are defined in terms of it, so all outputs are
// independent of the host's native vector width.
package bittable

import "github.com/qbitio/shotrec/endian"

const (
	// WordBits is the fixed word width of all packed layouts.
	WordBits = 64
	// WordBytes is WordBits in bytes.
	WordBytes = 8
)

var engine = endian.GetLittleEndianEngine()

// Table is a packed boolean matrix. The major dimension indexes time/result
// order, the minor dimension indexes streams.
type Table struct {
	data   []byte
	major  int
	minor  int
	stride int // padded row width in bytes
}

// New creates a major × minor table with all bits zero.
func New(major, minor int) *Table {
	if major < 0 || minor < 0 {
		panic("bittable: negative dimension")
	}
	stride := wordsFor(minor) * WordBytes

	return &Table{
		data:   make([]byte, major*stride),
		major:  major,
		minor:  minor,
		stride: stride,
	}
}

// Major returns the major (time/result) dimension.
func (t *Table) Major() int {
	return t.major
}

// Minor returns the minor (stream) dimension.
func (t *Table) Minor() int {
	return t.minor
}

// MinorU8Padded returns the padded width of one major row in bytes.
func (t *Table) MinorU8Padded() int {
	return t.stride
}

// Get returns the bit at (major, minor). Panics if out of range.
func (t *Table) Get(major, minor int) bool {
	t.check(major, minor)
	b := t.data[major*t.stride+minor>>3]

	return b&(1<<(minor&7)) != 0
}

// Set sets the bit at (major, minor). Panics if out of range.
func (t *Table) Set(major, minor int, v bool) {
	t.check(major, minor)
	idx := major*t.stride + minor>>3
	if v {
		t.data[idx] |= 1 << (minor & 7)
	} else {
		t.data[idx] &^= 1 << (minor & 7)
	}
}

// RowBytes returns the padded byte storage of one major row.
// The slice aliases the table; mutating it mutates the bits.
func (t *Table) RowBytes(major int) []byte {
	if major < 0 || major >= t.major {
		panic("bittable: major index out of range")
	}

	return t.data[major*t.stride : (major+1)*t.stride]
}

// Transposed returns a new minor × major table with every bit (m, k) of the
// receiver stored at (k, m). The copy is materialized in full; bulk callers
// should batch large major extents per call to amortize it.
func (t *Table) Transposed() *Table {
	out := New(t.minor, t.major)

	majorWords := wordsFor(t.major)
	minorWords := wordsFor(t.minor)

	var block [WordBits]uint64
	for wj := 0; wj < minorWords; wj++ {
		for wi := 0; wi < majorWords; wi++ {
			// Load one 64x64 bit block: row i is major 64*wi+i, columns are
			// minors 64*wj..64*wj+63. Rows past the major extent stay zero.
			for i := range block {
				m := wi*WordBits + i
				if m < t.major {
					block[i] = engine.Uint64(t.data[m*t.stride+wj*WordBytes:])
				} else {
					block[i] = 0
				}
			}

			transpose64(&block)

			for j := range block {
				k := wj*WordBits + j
				if k < t.minor {
					engine.PutUint64(out.data[k*out.stride+wi*WordBytes:], block[j])
				}
			}
		}
	}

	return out
}

// transpose64 transposes a 64x64 bit block in place, treating bit j of word i
// as element (i, j). This is the recursive block-swap kernel: swap the two
// off-diagonal 32x32 quadrants, then the 16x16 quadrants within each half, and
// so on down to single bits. The shifts run opposite to the textbook version
// because columns here are numbered from the least significant bit.
func transpose64(a *[WordBits]uint64) {
	m := uint64(0xFFFFFFFF00000000)
	for j := uint(32); j != 0; j >>= 1 {
		for k := uint(0); k < WordBits; k = (k + j + 1) &^ j {
			t := (a[k] ^ (a[k+j] << j)) & m
			a[k] ^= t
			a[k+j] ^= t >> j
		}
		m ^= m >> (j >> 1)
	}
}

func (t *Table) check(major, minor int) {
	if major < 0 || major >= t.major || minor < 0 || minor >= t.minor {
		panic("bittable: index out of range")
	}
}
