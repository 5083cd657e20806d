package blob

import (
	"iter"

	"github.com/arloliu/la716/internal/collision"
	"github.com/arloliu/la716/section"
)

// CurvePoint is one sample of a curve with its depth.
type CurvePoint struct {
	Depth float64
	Val   float32
}

// File is a fully decoded LA716 file.
//
// It marshals to the {"header": ..., "body": ...} document served over HTTP.
type File struct {
	Name        string           `json:"-"`
	Header      section.Header   `json:"header"`
	Body        Body             `json:"body"`
	Geometry    section.Geometry `json:"-"`
	Fingerprint uint64           `json:"-"`
}

// CurveName returns the mnemonic of curve j.
func (f *File) CurveName(j int) string {
	return f.Header.CurveName(j)
}

// CurveLabels returns a unique display label per decoded curve. Repeated
// mnemonics get a "#n" suffix; see CurveName for the raw mnemonic.
func (f *File) CurveLabels() []string {
	names := make([]string, f.Body.Len())
	for j := range names {
		names[j] = f.CurveName(j)
	}

	return collision.Labels(names)
}

// Depth returns the depth of sample index i: stdep + i*rlev.
func (f *File) Depth(i int) float64 {
	return float64(f.Header.Stdep) + float64(i)*float64(f.Header.Rlev)
}

// Depths returns the depth axis shared by all curves.
func (f *File) Depths() []float64 {
	n := f.Geometry.SamplesPerCurve()
	depths := make([]float64, n)
	for i := range depths {
		depths[i] = f.Depth(i)
	}

	return depths
}

// AllPoints returns an iterator over the depth-annotated samples of curve j.
func (f *File) AllPoints(j int) iter.Seq2[int, CurvePoint] {
	return func(yield func(int, CurvePoint) bool) {
		for i, v := range f.Body.All(j) {
			if !yield(i, CurvePoint{Depth: f.Depth(i), Val: v}) {
				return
			}
		}
	}
}
