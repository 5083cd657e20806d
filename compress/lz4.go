package compress

import (
	"bytes"
	"fmt"
	"io"

	"github.com/pierrec/lz4/v4"
)

// LZ4Compressor reads and writes the LZ4 frame format, the same framing the
// lz4 command line tool produces, so archives carry their own content size.
type LZ4Compressor struct{}

var _ Codec = (*LZ4Compressor)(nil)

// NewLZ4Compressor creates a new LZ4 compressor.
func NewLZ4Compressor() LZ4Compressor {
	return LZ4Compressor{}
}

// Compress compresses the input data into a single LZ4 frame.
//
// Returns:
//   - []byte: Compressed frame (nil if input is empty)
//   - error: Compression error if any
func (c LZ4Compressor) Compress(data []byte) ([]byte, error) {
	if len(data) == 0 {
		return nil, nil
	}

	var buf bytes.Buffer
	zw := lz4.NewWriter(&buf)
	if err := zw.Apply(lz4.SizeOption(uint64(len(data)))); err != nil {
		return nil, err
	}

	if _, err := zw.Write(data); err != nil {
		return nil, err
	}

	if err := zw.Close(); err != nil {
		return nil, err
	}

	return buf.Bytes(), nil
}

// Decompress decompresses an LZ4 frame.
func (c LZ4Compressor) Decompress(data []byte) ([]byte, error) {
	if len(data) == 0 {
		return nil, nil
	}

	zr := lz4.NewReader(bytes.NewReader(data))
	out, err := io.ReadAll(zr)
	if err != nil {
		return nil, fmt.Errorf("lz4 decompression failed: %w", err)
	}

	return out, nil
}

// DecompressLimit decompresses an LZ4 frame, reading at most limit bytes of output.
func (c LZ4Compressor) DecompressLimit(data []byte, limit int) ([]byte, error) {
	if limit < 1 {
		return c.Decompress(data)
	}
	if len(data) == 0 {
		return nil, nil
	}

	out, err := readLimited(lz4.NewReader(bytes.NewReader(data)), limit)
	if err != nil {
		return nil, fmt.Errorf("lz4 decompression failed: %w", err)
	}

	return out, nil
}
