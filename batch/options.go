package batch

import (
	"fmt"

	"github.com/qbitio/shotrec/compress"
	"github.com/qbitio/shotrec/format"
	"github.com/qbitio/shotrec/internal/options"
	"github.com/qbitio/shotrec/spool"
)

// Config holds the spool configuration a Writer is constructed with.
type Config struct {
	fileSpools  bool
	spoolDir    string
	compression format.Compression
}

// Option represents a functional option for configuring the batch Writer.
type Option = options.Option[*Config]

func newConfig() *Config {
	return &Config{compression: format.CompressionNone}
}

// WithMemorySpools buffers non-primary streams in memory. This is the
// default; it is the right choice whenever the buffered streams fit in RAM.
func WithMemorySpools() Option {
	return options.NoError(func(c *Config) {
		c.fileSpools = false
		c.spoolDir = ""
	})
}

// WithFileSpools buffers non-primary streams in temp files under dir (the
// system temp directory when dir is empty). Use it for shot counts whose
// buffered streams would not fit in memory.
func WithFileSpools(dir string) Option {
	return options.NoError(func(c *Config) {
		c.fileSpools = true
		c.spoolDir = dir
	})
}

// WithSpoolCompression compresses spool contents with the given algorithm.
// Measurement streams are mostly sparse bit data, so compression shrinks the
// buffering footprint dramatically for large sessions.
func WithSpoolCompression(compression format.Compression) Option {
	return options.New(func(c *Config) error {
		switch compression {
		case format.CompressionNone, format.CompressionZstd, format.CompressionS2, format.CompressionLZ4:
			c.compression = compression
			return nil
		default:
			return fmt.Errorf("invalid spool compression: %v", compression)
		}
	})
}

// spoolFactory builds the spool constructor matching the config.
func (c *Config) spoolFactory() (spool.Factory, error) {
	base := func() (spool.Spool, error) { return spool.NewMemory(), nil }
	if c.fileSpools {
		dir := c.spoolDir
		base = func() (spool.Spool, error) { return spool.NewFile(dir) }
	}
	if c.compression == format.CompressionNone {
		return base, nil
	}

	codec, err := compress.GetCodec(c.compression)
	if err != nil {
		return nil, err
	}

	return func() (spool.Spool, error) {
		inner, err := base()
		if err != nil {
			return nil, err
		}

		return spool.NewCompressed(inner, codec), nil
	}, nil
}
