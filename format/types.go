// Package format defines the enumerated encoding and compression types used
// across shotrec packages.
package format

type (
	Encoding    uint8
	Compression uint8
)

const (
	// Encoding01 represents ASCII '0'/'1' characters, one line per stream.
	Encoding01 Encoding = 0x1
	// EncodingB8 represents bits packed into bytes, least significant bit first.
	EncodingB8 Encoding = 0x2
	// EncodingHits represents comma-separated indices of set bits, one line per stream.
	EncodingHits Encoding = 0x3
	// EncodingDets represents space-separated typed result indices ("shot M0 D2 ..."),
	// one line per stream.
	EncodingDets Encoding = 0x4
	// EncodingR8 represents run-length bytes counting zeros between ones.
	EncodingR8 Encoding = 0x5
	// EncodingPTB64 represents the packed-transposed layout: per 64-result block,
	// 8 consecutive bytes per stream, stream-major within the block.
	EncodingPTB64 Encoding = 0x6

	CompressionNone Compression = 0x1 // CompressionNone represents no spool compression.
	CompressionZstd Compression = 0x2 // CompressionZstd represents Zstandard compression.
	CompressionS2   Compression = 0x3 // CompressionS2 represents S2 compression.
	CompressionLZ4  Compression = 0x4 // CompressionLZ4 represents LZ4 compression.
)

func (e Encoding) String() string {
	switch e {
	case Encoding01:
		return "01"
	case EncodingB8:
		return "b8"
	case EncodingHits:
		return "hits"
	case EncodingDets:
		return "dets"
	case EncodingR8:
		return "r8"
	case EncodingPTB64:
		return "ptb64"
	default:
		return "Unknown"
	}
}

func (c Compression) String() string {
	switch c {
	case CompressionNone:
		return "None"
	case CompressionZstd:
		return "Zstd"
	case CompressionS2:
		return "S2"
	case CompressionLZ4:
		return "LZ4"
	default:
		return "Unknown"
	}
}
