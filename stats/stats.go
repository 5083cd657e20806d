// Package stats summarizes the curves of a decoded LA716 file.
package stats

import (
	"slices"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"github.com/arloliu/la716/blob"
	"github.com/arloliu/la716/encoding"
)

// CurveStats describes the distribution of one curve.
//
// Missing readings are decoded as 0, so Zeros counts them together with
// genuine zero readings. NaN and infinite samples are counted in Invalid and
// left out of the distribution fields.
type CurveStats struct {
	Name    string  `json:"name"`
	Count   int     `json:"count"`
	Zeros   int     `json:"zeros"`
	Invalid int     `json:"invalid"`
	Min     float64 `json:"min"`
	Max     float64 `json:"max"`
	Mean    float64 `json:"mean"`
	StdDev  float64 `json:"stddev"`
	Median  float64 `json:"median"`
	// Top and bottom depth of the curve.
	StartDepth float64 `json:"start_depth"`
	EndDepth   float64 `json:"end_depth"`
	// Linear trend against depth; nil when fewer than two non-zero samples exist.
	Trend *Trend `json:"trend,omitempty"`
}

// Summarize computes CurveStats for every curve of f, in curve order.
// Repeated mnemonics are named by their unique labels.
func Summarize(f *blob.File) []CurveStats {
	labels := f.CurveLabels()
	out := make([]CurveStats, len(labels))
	for j := range out {
		out[j] = Curve(f, j)
		out[j].Name = labels[j]
	}

	return out
}

// Curve computes the CurveStats of curve j. An empty or out-of-range curve
// yields a zero CurveStats carrying only the name.
func Curve(f *blob.File, j int) CurveStats {
	samples := f.Body.Curve(j)
	cs := CurveStats{
		Name:  f.CurveName(j),
		Count: len(samples),
	}

	if len(samples) == 0 {
		return cs
	}

	cs.StartDepth = f.Depth(0)
	cs.EndDepth = f.Depth(len(samples) - 1)

	x := make([]float64, 0, len(samples))
	for _, v := range samples {
		if !encoding.IsFinite32(v) {
			cs.Invalid++
			continue
		}
		if v == 0 {
			cs.Zeros++
		}
		x = append(x, float64(v))
	}
	if len(x) == 0 {
		return cs
	}

	cs.Min = floats.Min(x)
	cs.Max = floats.Max(x)
	cs.Mean, cs.StdDev = stat.MeanStdDev(x, nil)
	if len(x) == 1 {
		cs.StdDev = 0
	}

	slices.Sort(x)
	cs.Median = stat.Quantile(0.5, stat.Empirical, x, nil)

	if tr, ok := FitTrend(f, j); ok {
		cs.Trend = &tr
	}

	return cs
}
