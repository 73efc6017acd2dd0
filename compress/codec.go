// Package compress provides the compression codecs used by compressed spools.
//
// Spools buffer whole measurement streams between production and the final
// concatenation; for large shot counts the buffered bytes can dominate memory
// or temp-disk usage, so spools optionally compress each flushed block. The
// package supports Zstd, S2, LZ4 and a pass-through NoOp codec.
package compress

import (
	"fmt"

	"github.com/qbitio/shotrec/format"
)

// Compressor compresses one block of spool data.
type Compressor interface {
	// Compress compresses the input data and returns the compressed result.
	//
	// The returned slice is newly allocated and owned by the caller; the input
	// slice is not modified.
	Compress(data []byte) ([]byte, error)
}

// Decompressor restores one block of spool data.
type Decompressor interface {
	// Decompress decompresses data previously produced by the matching
	// Compressor. It returns an error if the data is corrupted or was
	// compressed with an incompatible algorithm.
	Decompress(data []byte) ([]byte, error)
}

// Codec combines both directions. Spools compress while buffering and
// decompress while draining, so they always need both.
type Codec interface {
	Compressor
	Decompressor
}

var builtinCodecs = map[format.Compression]Codec{
	format.CompressionNone: NewNoOpCompressor(),
	format.CompressionZstd: NewZstdCompressor(),
	format.CompressionS2:   NewS2Compressor(),
	format.CompressionLZ4:  NewLZ4Compressor(),
}

// GetCodec retrieves the built-in Codec for the specified compression type.
func GetCodec(compression format.Compression) (Codec, error) {
	if codec, ok := builtinCodecs[compression]; ok {
		return codec, nil
	}

	return nil, fmt.Errorf("unsupported compression type: %s", compression)
}
