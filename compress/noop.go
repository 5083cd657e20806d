package compress

// NoOpCompressor passes plain LA716 files through unchanged.
type NoOpCompressor struct{}

var _ Codec = (*NoOpCompressor)(nil)

// NewNoOpCompressor creates a new no-operation codec.
func NewNoOpCompressor() NoOpCompressor {
	return NoOpCompressor{}
}

// Compress returns the input slice as-is.
//
// Note: The returned slice shares the same underlying memory as the input.
func (c NoOpCompressor) Compress(data []byte) ([]byte, error) {
	return data, nil
}

// Decompress returns the input slice as-is.
//
// Note: The returned slice shares the same underlying memory as the input.
func (c NoOpCompressor) Decompress(data []byte) ([]byte, error) {
	return data, nil
}

// DecompressLimit returns the input slice as-is when it fits in limit bytes.
func (c NoOpCompressor) DecompressLimit(data []byte, limit int) ([]byte, error) {
	if limit > 0 {
		if err := checkLimit(len(data), limit); err != nil {
			return nil, err
		}
	}

	return data, nil
}
