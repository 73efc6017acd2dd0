package record

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/qbitio/shotrec/errs"
	"github.com/qbitio/shotrec/format"
)

func newTestWriter(t *testing.T, enc format.Encoding) (Writer, *bytes.Buffer) {
	t.Helper()
	var buf bytes.Buffer
	wr, err := NewWriter(&buf, enc)
	require.NoError(t, err)

	return wr, &buf
}

func writeBits(t *testing.T, wr Writer, bits ...int) {
	t.Helper()
	for _, b := range bits {
		require.NoError(t, wr.WriteBit(b == 1))
	}
}

func TestNewWriter(t *testing.T) {
	t.Run("AllEncodings", func(t *testing.T) {
		for _, enc := range []format.Encoding{
			format.Encoding01, format.EncodingB8, format.EncodingHits,
			format.EncodingDets, format.EncodingR8, format.EncodingPTB64,
		} {
			wr, err := NewWriter(&bytes.Buffer{}, enc)
			require.NoError(t, err, enc.String())
			require.NotNil(t, wr)
		}
	})

	t.Run("InvalidEncoding", func(t *testing.T) {
		_, err := NewWriter(&bytes.Buffer{}, format.Encoding(0xEE))
		require.ErrorIs(t, err, errs.ErrInvalidEncoding)
	})
}

func TestWriter01(t *testing.T) {
	t.Run("BitsAndTerminator", func(t *testing.T) {
		wr, buf := newTestWriter(t, format.Encoding01)
		writeBits(t, wr, 1, 0, 0, 1)
		require.NoError(t, wr.End())
		require.Equal(t, "1001\n", buf.String())
	})

	t.Run("EmptyRecord", func(t *testing.T) {
		wr, buf := newTestWriter(t, format.Encoding01)
		require.NoError(t, wr.End())
		require.Equal(t, "\n", buf.String())
	})

	t.Run("WriteBytesUnpacksLSBFirst", func(t *testing.T) {
		wr, buf := newTestWriter(t, format.Encoding01)
		require.NoError(t, wr.WriteBytes([]byte{0b0000_0101}))
		require.NoError(t, wr.End())
		require.Equal(t, "10100000\n", buf.String())
	})
}

func TestWriterHits(t *testing.T) {
	t.Run("Indices", func(t *testing.T) {
		wr, buf := newTestWriter(t, format.EncodingHits)
		writeBits(t, wr, 1, 0, 1, 1, 0)
		require.NoError(t, wr.End())
		require.Equal(t, "0,2,3\n", buf.String())
	})

	t.Run("NoHits", func(t *testing.T) {
		wr, buf := newTestWriter(t, format.EncodingHits)
		writeBits(t, wr, 0, 0, 0)
		require.NoError(t, wr.End())
		require.Equal(t, "\n", buf.String())
	})

	t.Run("IndexCountsAcrossSections", func(t *testing.T) {
		wr, buf := newTestWriter(t, format.EncodingHits)
		wr.BeginResultType(ResultTypeMeasurement)
		writeBits(t, wr, 0, 1)
		wr.BeginResultType(ResultTypeDetector)
		writeBits(t, wr, 1)
		require.NoError(t, wr.End())
		require.Equal(t, "1,2\n", buf.String())
	})
}

func TestWriterDets(t *testing.T) {
	t.Run("TypedIndices", func(t *testing.T) {
		wr, buf := newTestWriter(t, format.EncodingDets)
		wr.BeginResultType(ResultTypeMeasurement)
		writeBits(t, wr, 1, 0, 1)
		wr.BeginResultType(ResultTypeDetector)
		writeBits(t, wr, 0, 1)
		wr.BeginResultType(ResultTypeObservable)
		writeBits(t, wr, 1)
		require.NoError(t, wr.End())
		require.Equal(t, "shot M0 M2 D1 L0\n", buf.String())
	})

	t.Run("DefaultsToMeasurement", func(t *testing.T) {
		wr, buf := newTestWriter(t, format.EncodingDets)
		writeBits(t, wr, 1)
		require.NoError(t, wr.End())
		require.Equal(t, "shot M0\n", buf.String())
	})

	t.Run("EmptyRecordStillHasHeader", func(t *testing.T) {
		wr, buf := newTestWriter(t, format.EncodingDets)
		require.NoError(t, wr.End())
		require.Equal(t, "shot\n", buf.String())
	})

	t.Run("SectionResetsIndex", func(t *testing.T) {
		wr, buf := newTestWriter(t, format.EncodingDets)
		wr.BeginResultType(ResultTypeDetector)
		writeBits(t, wr, 0, 0, 1)
		wr.BeginResultType(ResultTypeObservable)
		writeBits(t, wr, 0, 1)
		require.NoError(t, wr.End())
		require.Equal(t, "shot D2 L1\n", buf.String())
	})
}

func TestWriterB8(t *testing.T) {
	t.Run("PacksLSBFirst", func(t *testing.T) {
		wr, buf := newTestWriter(t, format.EncodingB8)
		writeBits(t, wr, 1, 0, 1, 0, 0, 0, 0, 1)
		require.NoError(t, wr.End())
		require.Equal(t, []byte{0b1000_0101}, buf.Bytes())
	})

	t.Run("EndPadsPartialByte", func(t *testing.T) {
		wr, buf := newTestWriter(t, format.EncodingB8)
		writeBits(t, wr, 1, 1, 1)
		require.NoError(t, wr.End())
		require.Equal(t, []byte{0b0000_0111}, buf.Bytes())
	})

	t.Run("AlignedWriteBytesIsVerbatim", func(t *testing.T) {
		wr, buf := newTestWriter(t, format.EncodingB8)
		require.NoError(t, wr.WriteBytes([]byte{0xAB, 0xCD}))
		require.NoError(t, wr.End())
		require.Equal(t, []byte{0xAB, 0xCD}, buf.Bytes())
	})

	t.Run("UnalignedWriteBytesFallsBackToBits", func(t *testing.T) {
		wr, buf := newTestWriter(t, format.EncodingB8)
		writeBits(t, wr, 1) // now off byte boundary
		require.NoError(t, wr.WriteBytes([]byte{0xFF}))
		require.NoError(t, wr.End())
		// 1 followed by 8 ones = 0b11111111, 0b00000001.
		require.Equal(t, []byte{0xFF, 0x01}, buf.Bytes())
	})
}

func TestWriterR8(t *testing.T) {
	t.Run("RunsBetweenOnes", func(t *testing.T) {
		wr, buf := newTestWriter(t, format.EncodingR8)
		writeBits(t, wr, 0, 0, 1, 1, 0, 1)
		require.NoError(t, wr.End())
		// 2 zeros then 1; 0 zeros then 1; 1 zero then 1; 0 trailing zeros.
		require.Equal(t, []byte{2, 0, 1, 0}, buf.Bytes())
	})

	t.Run("LongRunSplitsAt255", func(t *testing.T) {
		wr, buf := newTestWriter(t, format.EncodingR8)
		for i := 0; i < 300; i++ {
			require.NoError(t, wr.WriteBit(false))
		}
		require.NoError(t, wr.WriteBit(true))
		require.NoError(t, wr.End())
		// 255 zeros without a one, then 45 zeros and a one, then empty tail.
		require.Equal(t, []byte{255, 45, 0}, buf.Bytes())
	})

	t.Run("TrailingZerosCutShort", func(t *testing.T) {
		wr, buf := newTestWriter(t, format.EncodingR8)
		writeBits(t, wr, 1, 0, 0, 0)
		require.NoError(t, wr.End())
		require.Equal(t, []byte{0, 3}, buf.Bytes())
	})
}

func TestWriterPTB64(t *testing.T) {
	t.Run("FlushesFullWordsLittleEndian", func(t *testing.T) {
		wr, buf := newTestWriter(t, format.EncodingPTB64)
		for i := 0; i < 64; i++ {
			require.NoError(t, wr.WriteBit(i == 0 || i == 9))
		}
		require.NoError(t, wr.End())
		require.Equal(t, []byte{0x01, 0x02, 0, 0, 0, 0, 0, 0}, buf.Bytes())
	})

	t.Run("EndPadsPartialWord", func(t *testing.T) {
		wr, buf := newTestWriter(t, format.EncodingPTB64)
		writeBits(t, wr, 1, 1)
		require.NoError(t, wr.End())
		require.Equal(t, []byte{0x03, 0, 0, 0, 0, 0, 0, 0}, buf.Bytes())
	})

	t.Run("WriteBytesIsVerbatim", func(t *testing.T) {
		wr, buf := newTestWriter(t, format.EncodingPTB64)
		group := []byte{1, 2, 3, 4, 5, 6, 7, 8}
		require.NoError(t, wr.WriteBytes(group))
		require.NoError(t, wr.End())
		require.Equal(t, group, buf.Bytes())
	})
}

func TestWriterFinished(t *testing.T) {
	for _, enc := range []format.Encoding{
		format.Encoding01, format.EncodingB8, format.EncodingHits,
		format.EncodingDets, format.EncodingR8, format.EncodingPTB64,
	} {
		t.Run(enc.String(), func(t *testing.T) {
			wr, _ := newTestWriter(t, enc)
			require.NoError(t, wr.WriteBit(true))
			require.NoError(t, wr.End())

			require.ErrorIs(t, wr.WriteBit(true), errs.ErrWriterFinished)
			require.ErrorIs(t, wr.WriteBytes([]byte{0xFF}), errs.ErrWriterFinished)
			require.ErrorIs(t, wr.End(), errs.ErrWriterFinished)
		})
	}
}
