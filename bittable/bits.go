package bittable

// Bits is a packed 1-D bit vector with its storage padded to whole 64-bit
// words. Bit k lives at byte k/8, position k%8 (least significant bit first),
// which is the byte layout the packed-transposed encoding persists verbatim.
type Bits struct {
	data []byte
	n    int
}

// NewBits creates a bit vector holding n bits, all zero. The backing storage
// is padded to a multiple of 8 bytes so 8-byte groups can be sliced out of it
// without bounds checks.
func NewBits(n int) Bits {
	return Bits{
		data: make([]byte, wordsFor(n)*WordBytes),
		n:    n,
	}
}

// Len returns the number of addressable bits.
func (b Bits) Len() int {
	return b.n
}

// Get returns bit k. Panics if k is out of range.
func (b Bits) Get(k int) bool {
	if k < 0 || k >= b.n {
		panic("bittable: bit index out of range")
	}

	return b.data[k>>3]&(1<<(k&7)) != 0
}

// Set sets bit k to v. Panics if k is out of range.
func (b Bits) Set(k int, v bool) {
	if k < 0 || k >= b.n {
		panic("bittable: bit index out of range")
	}
	if v {
		b.data[k>>3] |= 1 << (k & 7)
	} else {
		b.data[k>>3] &^= 1 << (k & 7)
	}
}

// Bytes returns the packed backing storage, including word padding.
// The slice aliases the vector; mutating it mutates the bits.
func (b Bits) Bytes() []byte {
	return b.data
}

func wordsFor(bits int) int {
	return (bits + WordBits - 1) / WordBits
}
