package stats

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/stat"

	"github.com/arloliu/la716/blob"
	"github.com/arloliu/la716/encoding"
)

// Trend is a least-squares line fitted to a curve against depth.
//
// Fields:
//   - Slope, Intercept: val = Intercept + Slope*depth
//   - RSquared: Coefficient of determination (0-1, higher is better)
//   - RMSE: Root mean square error of the fit
//   - Points: Number of samples used
type Trend struct {
	Slope     float64 `json:"slope"`
	Intercept float64 `json:"intercept"`
	RSquared  float64 `json:"r_squared"`
	RMSE      float64 `json:"rmse"`
	Points    int     `json:"points"`
}

// String returns the fitted line as a formula.
func (t Trend) String() string {
	return fmt.Sprintf("val = %.6g + %.6g*depth (R²=%.4f, RMSE=%.4g, n=%d)",
		t.Intercept, t.Slope, t.RSquared, t.RMSE, t.Points)
}

// Estimate returns the fitted value at depth.
func (t Trend) Estimate(depth float64) float64 {
	return t.Intercept + t.Slope*depth
}

// FitTrend fits a line to curve j of f. Zero samples are skipped because
// missing readings decode as zero, and so are NaN and infinite samples.
//
// Returns:
//   - Trend: The fitted line
//   - bool: false if fewer than two usable samples remain
func FitTrend(f *blob.File, j int) (Trend, bool) {
	samples := f.Body.Curve(j)
	xs := make([]float64, 0, len(samples))
	ys := make([]float64, 0, len(samples))
	for i, v := range samples {
		if v == 0 || !encoding.IsFinite32(v) {
			continue
		}
		xs = append(xs, f.Depth(i))
		ys = append(ys, float64(v))
	}

	if len(xs) < 2 {
		return Trend{}, false
	}

	alpha, beta := stat.LinearRegression(xs, ys, nil, false)

	var sse float64
	for i := range xs {
		r := ys[i] - (alpha + beta*xs[i])
		sse += r * r
	}

	r2 := stat.RSquared(xs, ys, nil, alpha, beta)
	if math.IsNaN(r2) {
		// constant curve: the line explains it exactly
		r2 = 1
	}

	return Trend{
		Slope:     beta,
		Intercept: alpha,
		RSquared:  r2,
		RMSE:      math.Sqrt(sse / float64(len(xs))),
		Points:    len(xs),
	}, true
}
