package compress

import (
	"bytes"
	"fmt"
	"io"

	"github.com/klauspost/compress/s2"
)

// S2Compressor reads and writes the S2 stream format, compatible with the s2c/s2d tools.
type S2Compressor struct{}

var _ Codec = (*S2Compressor)(nil)

// NewS2Compressor creates a new S2 compressor.
func NewS2Compressor() S2Compressor {
	return S2Compressor{}
}

// Compress compresses the input data into an S2 stream.
func (c S2Compressor) Compress(data []byte) ([]byte, error) {
	if len(data) == 0 {
		return nil, nil
	}

	var buf bytes.Buffer
	zw := s2.NewWriter(&buf, s2.WriterConcurrency(1))
	if _, err := zw.Write(data); err != nil {
		return nil, err
	}

	if err := zw.Close(); err != nil {
		return nil, err
	}

	return buf.Bytes(), nil
}

// Decompress decompresses an S2 stream.
func (c S2Compressor) Decompress(data []byte) ([]byte, error) {
	if len(data) == 0 {
		return nil, nil
	}

	out, err := io.ReadAll(s2.NewReader(bytes.NewReader(data)))
	if err != nil {
		return nil, fmt.Errorf("s2 decompression failed: %w", err)
	}

	return out, nil
}

// DecompressLimit decompresses an S2 stream, reading at most limit bytes of output.
func (c S2Compressor) DecompressLimit(data []byte, limit int) ([]byte, error) {
	if limit < 1 {
		return c.Decompress(data)
	}
	if len(data) == 0 {
		return nil, nil
	}

	out, err := readLimited(s2.NewReader(bytes.NewReader(data)), limit)
	if err != nil {
		return nil, fmt.Errorf("s2 decompression failed: %w", err)
	}

	return out, nil
}
