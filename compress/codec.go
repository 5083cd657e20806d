package compress

import (
	"fmt"
	"io"

	"github.com/arloliu/la716/errs"
	"github.com/arloliu/la716/format"
)

// Compressor compresses a complete LA716 file into an archive.
//
// Memory management:
//   - Returned slice is newly allocated and owned by the caller
//   - Input slice is not modified
type Compressor interface {
	Compress(data []byte) ([]byte, error)
}

// Decompressor restores a complete LA716 file from an archive.
//
// Implementations validate the archive framing and return an error if the data
// is corrupted or was produced by a different algorithm.
//
// Thread Safety: Decompressor implementations must be safe for concurrent use.
type Decompressor interface {
	Decompress(data []byte) ([]byte, error)
	// DecompressLimit is Decompress with the output capped at limit bytes.
	// It fails with errs.ErrBodyTooLarge once the output would exceed the cap,
	// without expanding the rest of the archive. A limit below 1 means no cap.
	DecompressLimit(data []byte, limit int) ([]byte, error)
}

// Codec combines both compression and decompression capabilities.
type Codec interface {
	Compressor
	Decompressor
}

// CompressionStats describes the outcome of compressing one file.
type CompressionStats struct {
	// Algorithm identifies the compression algorithm used
	Algorithm format.CompressionType

	// OriginalSize is the size of input data before compression
	OriginalSize int64

	// CompressedSize is the size of data after compression
	CompressedSize int64
}

// CompressionRatio returns the compression ratio (compressed size / original size).
//
// Returns:
//   - float64: Compression ratio (0.0 if original size is zero)
func (s CompressionStats) CompressionRatio() float64 {
	if s.OriginalSize == 0 {
		return 0.0
	}

	return float64(s.CompressedSize) / float64(s.OriginalSize)
}

// SpaceSavings returns the space savings as a percentage (0-100%).
func (s CompressionStats) SpaceSavings() float64 {
	return (1.0 - s.CompressionRatio()) * 100.0
}

// readLimited reads r to the end, stopping one byte past limit.
func readLimited(r io.Reader, limit int) ([]byte, error) {
	out, err := io.ReadAll(io.LimitReader(r, int64(limit)+1))
	if err != nil {
		return nil, err
	}

	return out, checkLimit(len(out), limit)
}

func checkLimit(n, limit int) error {
	if n > limit {
		return fmt.Errorf("%w: decompressed archive exceeds %d bytes", errs.ErrBodyTooLarge, limit)
	}

	return nil
}

var builtinCodecs = map[format.CompressionType]Codec{
	format.CompressionNone: NewNoOpCompressor(),
	format.CompressionZstd: NewZstdCompressor(),
	format.CompressionS2:   NewS2Compressor(),
	format.CompressionLZ4:  NewLZ4Compressor(),
}

// GetCodec retrieves a built-in Codec for the specified compression type.
//
// Returns:
//   - Codec: Shared codec instance, safe for concurrent use
//   - error: ErrUnsupportedCompression for unknown types
func GetCodec(compressionType format.CompressionType) (Codec, error) {
	if codec, ok := builtinCodecs[compressionType]; ok {
		return codec, nil
	}

	return nil, fmt.Errorf("%w: %s", errs.ErrUnsupportedCompression, compressionType)
}

// CompressWithStats compresses data with the codec registered for compressionType
// and reports the resulting sizes.
func CompressWithStats(compressionType format.CompressionType, data []byte) ([]byte, CompressionStats, error) {
	codec, err := GetCodec(compressionType)
	if err != nil {
		return nil, CompressionStats{}, err
	}

	compressed, err := codec.Compress(data)
	if err != nil {
		return nil, CompressionStats{}, fmt.Errorf("%s compression failed: %w", compressionType, err)
	}

	return compressed, CompressionStats{
		Algorithm:      compressionType,
		OriginalSize:   int64(len(data)),
		CompressedSize: int64(len(compressed)),
	}, nil
}
