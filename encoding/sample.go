package encoding

import (
	"iter"

	"github.com/arloliu/la716/endian"
)

const (
	// SampleSize is the encoded size of one float32 sample.
	SampleSize = 4
	// MissingValue marks an absent reading in the data body.
	MissingValue float32 = -9999
)

// SampleDecoder decodes runs of little-endian float32 samples from an LA716
// data body, replacing MissingValue with 0.
//
// SampleDecoder is stateless and can be shared between goroutines.
type SampleDecoder struct {
	engine endian.EndianEngine
}

// NewSampleDecoder creates a sample decoder using the specified endian engine.
func NewSampleDecoder(engine endian.EndianEngine) SampleDecoder {
	return SampleDecoder{engine: engine}
}

// At decodes the sample at byte offset off.
//
// Returns:
//   - float32: The normalized sample value
//   - bool: false if the four bytes at off are out of range
func (d SampleDecoder) At(data []byte, off int) (float32, bool) {
	if off < 0 || off+SampleSize > len(data) {
		return 0, false
	}

	return normalize(endian.Float32(d.engine, data[off:off+SampleSize])), true
}

// All yields count consecutive samples starting at data[0].
// Nothing is yielded if data holds fewer than count samples.
func (d SampleDecoder) All(data []byte, count int) iter.Seq[float32] {
	return func(yield func(float32) bool) {
		if count <= 0 || len(data) < count*SampleSize {
			return
		}

		for i := range count {
			start := i * SampleSize
			if !yield(normalize(endian.Float32(d.engine, data[start:start+SampleSize]))) {
				return
			}
		}
	}
}

// AppendRun appends count consecutive samples starting at data[0] to dst.
// The caller must ensure data holds at least count samples.
func (d SampleDecoder) AppendRun(dst []float32, data []byte, count int) []float32 {
	for i := range count {
		start := i * SampleSize
		dst = append(dst, normalize(endian.Float32(d.engine, data[start:start+SampleSize])))
	}

	return dst
}

// SampleEncoder encodes float32 samples the way the data body stores them.
// It is used by fixture builders and has no sentinel handling.
type SampleEncoder struct {
	engine endian.EndianEngine
	buf    []byte
}

// NewSampleEncoder creates a sample encoder with capacity for sizeHint samples.
func NewSampleEncoder(engine endian.EndianEngine, sizeHint int) *SampleEncoder {
	return &SampleEncoder{
		engine: engine,
		buf:    make([]byte, 0, sizeHint*SampleSize),
	}
}

// Write appends a single sample.
func (e *SampleEncoder) Write(v float32) {
	e.buf = endian.AppendFloat32(e.engine, e.buf, v)
}

// WriteSlice appends all samples in values.
func (e *SampleEncoder) WriteSlice(values []float32) {
	for _, v := range values {
		e.buf = endian.AppendFloat32(e.engine, e.buf, v)
	}
}

// Bytes returns the encoded samples.
func (e *SampleEncoder) Bytes() []byte {
	return e.buf
}

// Len returns the number of samples written.
func (e *SampleEncoder) Len() int {
	return len(e.buf) / SampleSize
}

func normalize(v float32) float32 {
	if v == MissingValue {
		return 0
	}

	return v
}
