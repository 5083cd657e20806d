package blob

import (
	"encoding/json"
	"iter"

	"github.com/arloliu/la716/encoding"
)

// Body holds the decoded samples of every curve, indexed by curve number.
//
// Each curve has Geometry.SamplesPerCurve samples, ordered by depth: block 0
// first, then block 1, and so on. Missing readings (-9999) are stored as 0.
type Body struct {
	curves [][]float32
}

// NewBody creates a Body from per-curve sample slices. The slices are not copied.
func NewBody(curves [][]float32) Body {
	return Body{curves: curves}
}

// Len returns the number of curves.
func (b Body) Len() int {
	return len(b.curves)
}

// Curve returns the samples of curve j, or nil if j is out of range.
// The returned slice is shared with the Body and must not be modified.
func (b Body) Curve(j int) []float32 {
	if j < 0 || j >= len(b.curves) {
		return nil
	}

	return b.curves[j]
}

// Curves returns all curves. The result is shared with the Body.
func (b Body) Curves() [][]float32 {
	return b.curves
}

// All returns an iterator over (sample index, value) pairs of curve j.
func (b Body) All(j int) iter.Seq2[int, float32] {
	return func(yield func(int, float32) bool) {
		for i, v := range b.Curve(j) {
			if !yield(i, v) {
				return
			}
		}
	}
}

// MarshalJSON encodes the body as an array of sample arrays, one per curve.
// NaN and infinite samples are written as null.
func (b Body) MarshalJSON() ([]byte, error) {
	size := 2
	for _, c := range b.curves {
		size += 2 + len(c)*8
	}

	out := make([]byte, 0, size)
	out = append(out, '[')
	for j, c := range b.curves {
		if j > 0 {
			out = append(out, ',')
		}
		out = append(out, '[')
		for i, v := range c {
			if i > 0 {
				out = append(out, ',')
			}
			out = encoding.AppendJSONFloat32(out, v)
		}
		out = append(out, ']')
	}

	return append(out, ']'), nil
}

// UnmarshalJSON decodes the array-of-arrays form produced by MarshalJSON.
// A null sample decodes as 0.
func (b *Body) UnmarshalJSON(data []byte) error {
	return json.Unmarshal(data, &b.curves)
}
