//go:build gozstd && cgo

package compress

import (
	"bytes"
	"fmt"

	"github.com/valyala/gozstd"
)

// ZstdCompressor produces standard Zstandard frames using the cgo libzstd binding.
// Build with -tags gozstd to select it over the pure Go implementation.
type ZstdCompressor struct{}

var _ Codec = (*ZstdCompressor)(nil)

// NewZstdCompressor creates a new Zstd compressor with default settings.
func NewZstdCompressor() ZstdCompressor {
	return ZstdCompressor{}
}

// Compress compresses the input data using Zstandard level 3.
func (c ZstdCompressor) Compress(data []byte) ([]byte, error) {
	return gozstd.CompressLevel(nil, data, 3), nil
}

// Decompress decompresses Zstd-compressed data.
func (c ZstdCompressor) Decompress(data []byte) ([]byte, error) {
	if len(data) == 0 {
		return nil, nil
	}

	decompressed, err := gozstd.Decompress(nil, data)
	if err != nil {
		return nil, fmt.Errorf("zstd decompression failed: %w", err)
	}

	return decompressed, nil
}

// DecompressLimit streams a Zstd frame, reading at most limit bytes of output.
func (c ZstdCompressor) DecompressLimit(data []byte, limit int) ([]byte, error) {
	if limit < 1 {
		return c.Decompress(data)
	}
	if len(data) == 0 {
		return nil, nil
	}

	zr := gozstd.NewReader(bytes.NewReader(data))
	defer zr.Release()

	out, err := readLimited(zr, limit)
	if err != nil {
		return nil, fmt.Errorf("zstd decompression failed: %w", err)
	}

	return out, nil
}
