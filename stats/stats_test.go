package stats

import (
	"encoding/json"
	"math"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/arloliu/la716/blob"
	"github.com/arloliu/la716/section"
)

func testFile() *blob.File {
	h := section.Header{Numlog: 2, Lognames: "GR,SP", Stdep: 100, Endep: 101, Rlev: 0.5, Spcpr: 2}
	g, _ := section.DeriveGeometry(h)

	return &blob.File{
		Name:     "t.716",
		Header:   h,
		Geometry: g,
		Body:     blob.NewBody([][]float32{{2, 4, 4, 6}, {0, 0, 3, 0}}),
	}
}

func TestSummarize(t *testing.T) {
	got := Summarize(testFile())
	require.Len(t, got, 2)

	gr := got[0]
	require.Equal(t, "GR", gr.Name)
	require.Equal(t, 4, gr.Count)
	require.Zero(t, gr.Zeros)
	require.InDelta(t, 2.0, gr.Min, 1e-9)
	require.InDelta(t, 6.0, gr.Max, 1e-9)
	require.InDelta(t, 4.0, gr.Mean, 1e-9)
	// sample standard deviation of {2,4,4,6}
	require.InDelta(t, math.Sqrt(8.0/3.0), gr.StdDev, 1e-9)
	require.InDelta(t, 4.0, gr.Median, 1e-9)
	require.InDelta(t, 100.0, gr.StartDepth, 1e-9)
	require.InDelta(t, 101.5, gr.EndDepth, 1e-9)

	sp := got[1]
	require.Equal(t, "SP", sp.Name)
	require.Equal(t, 3, sp.Zeros)
	require.InDelta(t, 0.75, sp.Mean, 1e-9)
}

func TestCurve_Edges(t *testing.T) {
	f := testFile()
	f.Body = blob.NewBody([][]float32{{7}, {}})

	one := Curve(f, 0)
	require.Equal(t, 1, one.Count)
	require.InDelta(t, 7.0, one.Median, 1e-9)
	require.Zero(t, one.StdDev)

	empty := Curve(f, 1)
	require.Zero(t, empty.Count)
	require.Zero(t, empty.Mean)

	missing := Curve(f, 5)
	require.Equal(t, "curve5", missing.Name)
	require.Zero(t, missing.Count)
}

func TestCurve_NonFiniteSamples(t *testing.T) {
	nan := float32(math.NaN())
	f := testFile()
	f.Body = blob.NewBody([][]float32{{2, nan, 6, float32(math.Inf(1))}, {nan, nan, nan, nan}})

	got := Summarize(f)

	gr := got[0]
	require.Equal(t, 4, gr.Count)
	require.Equal(t, 2, gr.Invalid)
	require.InDelta(t, 2.0, gr.Min, 1e-9)
	require.InDelta(t, 6.0, gr.Max, 1e-9)
	require.InDelta(t, 4.0, gr.Mean, 1e-9)
	require.NotNil(t, gr.Trend)
	require.Equal(t, 2, gr.Trend.Points)

	sp := got[1]
	require.Equal(t, 4, sp.Invalid)
	require.Zero(t, sp.Mean)
	require.Nil(t, sp.Trend)
	require.InDelta(t, 101.5, sp.EndDepth, 1e-9)

	_, err := json.Marshal(got)
	require.NoError(t, err)
}
