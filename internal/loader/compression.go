package loader

import (
	"compress/bzip2"
	"compress/gzip"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/klauspost/compress/zstd"
	"github.com/ulikunitz/xz"
)

// Compression identifies how a dump file is compressed.
type Compression int

// Supported compressions, detected from the file extension.
const (
	CompressionNone Compression = iota
	CompressionGzip
	CompressionBzip2
	CompressionXZ
	CompressionZstd
)

func (c Compression) String() string {
	switch c {
	case CompressionGzip:
		return "gzip"
	case CompressionBzip2:
		return "bzip2"
	case CompressionXZ:
		return "xz"
	case CompressionZstd:
		return "zstd"
	default:
		return "none"
	}
}

// DetectCompression returns the compression implied by path's extension.
func DetectCompression(path string) Compression {
	p := strings.ToLower(path)
	switch {
	case strings.HasSuffix(p, ".gz"):
		return CompressionGzip
	case strings.HasSuffix(p, ".bz2"):
		return CompressionBzip2
	case strings.HasSuffix(p, ".xz"):
		return CompressionXZ
	case strings.HasSuffix(p, ".zst"), strings.HasSuffix(p, ".zstd"):
		return CompressionZstd
	default:
		return CompressionNone
	}
}

// NewReader wraps r with a decompressing reader. The returned cleanup
// releases the decoder; it does not close r.
func NewReader(r io.Reader, c Compression) (io.Reader, func() error, error) {
	noop := func() error { return nil }
	switch c {
	case CompressionNone:
		return r, noop, nil
	case CompressionGzip:
		gz, err := gzip.NewReader(r)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to create gzip reader: %w", err)
		}
		return gz, gz.Close, nil
	case CompressionBzip2:
		return bzip2.NewReader(r), noop, nil
	case CompressionXZ:
		xr, err := xz.NewReader(r)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to create xz reader: %w", err)
		}
		return xr, noop, nil
	case CompressionZstd:
		dec, err := zstd.NewReader(r)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to create zstd reader: %w", err)
		}
		return dec, func() error {
			dec.Close()
			return nil
		}, nil
	default:
		return nil, nil, fmt.Errorf("unsupported compression: %v", c)
	}
}

// Open opens path and returns a reader over its decompressed contents.
// The cleanup closes both the decoder and the file.
func Open(path string) (io.Reader, func() error, error) {
	f, err := os.Open(path) //nolint:gosec // dump path comes from the user
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open dump: %w", err)
	}

	r, cleanup, err := NewReader(f, DetectCompression(path))
	if err != nil {
		_ = f.Close()
		return nil, nil, err
	}

	return r, func() error {
		cerr := cleanup()
		if ferr := f.Close(); ferr != nil && cerr == nil {
			cerr = ferr
		}
		return cerr
	}, nil
}
