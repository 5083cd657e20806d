// Package chart renders the curves of a decoded LA716 file against depth.
//
// RenderHTML produces an interactive go-echarts page with one line chart per
// curve; RenderPNG draws the same curves into a single gonum/plot image.
package chart

import (
	"fmt"
	"io"
	"math"
	"slices"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/components"
	"github.com/go-echarts/go-echarts/v2/opts"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"

	"github.com/arloliu/la716/blob"
	"github.com/arloliu/la716/encoding"
	"github.com/arloliu/la716/internal/options"
)

// DefaultMaxPoints bounds the samples drawn per curve.
const DefaultMaxPoints = 5000

type config struct {
	title      string
	maxPoints  int
	curves     []string
	assetsHost string
	width      vg.Length
	height     vg.Length
}

// Option configures chart rendering.
type Option = options.Option[*config]

// WithTitle sets the page or image title. Defaults to the file name.
func WithTitle(title string) Option {
	return options.NoError(func(c *config) {
		c.title = title
	})
}

// WithMaxPoints limits the samples drawn per curve; longer curves are
// downsampled by a fixed stride.
func WithMaxPoints(n int) Option {
	return options.New(func(c *config) error {
		if n < 2 {
			return fmt.Errorf("max points must be at least 2, got %d", n)
		}
		c.maxPoints = n

		return nil
	})
}

// WithCurves restricts rendering to the named curves, in the given order.
// A repeated mnemonic is selected by its label, such as "GR#2".
func WithCurves(names ...string) Option {
	return options.NoError(func(c *config) {
		c.curves = names
	})
}

// WithAssetsHost sets where the HTML page loads the echarts scripts from.
func WithAssetsHost(host string) Option {
	return options.NoError(func(c *config) {
		c.assetsHost = host
	})
}

// WithImageSize sets the PNG size in inches.
func WithImageSize(width, height float64) Option {
	return options.New(func(c *config) error {
		if width <= 0 || height <= 0 {
			return fmt.Errorf("image size must be positive, got %gx%g", width, height)
		}
		c.width = vg.Length(width) * vg.Inch
		c.height = vg.Length(height) * vg.Inch

		return nil
	})
}

func newConfig(f *blob.File, opt []Option) (*config, error) {
	cfg := &config{
		title:     f.Name,
		maxPoints: DefaultMaxPoints,
		width:     14 * vg.Inch,
		height:    6 * vg.Inch,
	}
	if err := options.Apply(cfg, opt...); err != nil {
		return nil, err
	}

	return cfg, nil
}

// selectCurves resolves the configured curve names to indexes.
func (c *config) selectCurves(f *blob.File) ([]int, error) {
	if len(c.curves) == 0 {
		idx := make([]int, f.Body.Len())
		for j := range idx {
			idx[j] = j
		}

		return idx, nil
	}

	labels := f.CurveLabels()
	idx := make([]int, 0, len(c.curves))
	for _, name := range c.curves {
		j := slices.Index(labels, name)
		if j < 0 {
			return nil, fmt.Errorf("curve %q not in file %s", name, f.Name)
		}
		idx = append(idx, j)
	}

	return idx, nil
}

// stride returns the sampling step that keeps n samples within maxPoints.
func stride(n, maxPoints int) int {
	if n <= maxPoints {
		return 1
	}

	return int(math.Ceil(float64(n) / float64(maxPoints)))
}

// RenderHTML writes an HTML page with one depth/value line chart per curve.
func RenderHTML(w io.Writer, f *blob.File, opt ...Option) error {
	cfg, err := newConfig(f, opt)
	if err != nil {
		return err
	}

	curves, err := cfg.selectCurves(f)
	if err != nil {
		return err
	}

	page := components.NewPage()
	page.PageTitle = cfg.title
	if cfg.assetsHost != "" {
		page.SetAssetsHost(cfg.assetsHost)
	}

	n := f.Geometry.SamplesPerCurve()
	step := stride(n, cfg.maxPoints)

	depths := make([]string, 0, n/step+1)
	for i := 0; i < n; i += step {
		depths = append(depths, fmt.Sprintf("%.3f", f.Depth(i)))
	}

	labels := f.CurveLabels()
	for _, j := range curves {
		samples := f.Body.Curve(j)
		data := make([]opts.LineData, 0, len(depths))
		for i := 0; i < len(samples); i += step {
			// NaN and infinities render as gaps
			var v any
			if encoding.IsFinite32(samples[i]) {
				v = samples[i]
			}
			data = append(data, opts.LineData{Value: v})
		}

		name := labels[j]
		line := charts.NewLine()
		line.SetGlobalOptions(
			charts.WithInitializationOpts(opts.Initialization{Width: "100%", Height: "360px", AssetsHost: cfg.assetsHost}),
			charts.WithTitleOpts(opts.Title{Title: name, Subtitle: fmt.Sprintf("%s points=%d stride=%d", cfg.title, len(data), step)}),
			charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true), Trigger: "axis"}),
			charts.WithDataZoomOpts(opts.DataZoom{Type: "slider"}),
			charts.WithXAxisOpts(opts.XAxis{Name: "Depth", NameLocation: "middle", NameGap: 25}),
			charts.WithYAxisOpts(opts.YAxis{Name: name}),
		)
		line.SetXAxis(depths).AddSeries(name, data)
		page.AddCharts(line)
	}

	return page.Render(w)
}

// RenderPNG draws the selected curves into a single PNG image with depth on the x axis.
func RenderPNG(w io.Writer, f *blob.File, opt ...Option) error {
	cfg, err := newConfig(f, opt)
	if err != nil {
		return err
	}

	curves, err := cfg.selectCurves(f)
	if err != nil {
		return err
	}

	p := plot.New()
	p.Title.Text = cfg.title
	p.X.Label.Text = "Depth"
	p.Y.Label.Text = "Value"

	labels := f.CurveLabels()
	step := stride(f.Geometry.SamplesPerCurve(), cfg.maxPoints)
	for k, j := range curves {
		samples := f.Body.Curve(j)
		pts := make(plotter.XYs, 0, len(samples)/step+1)
		for i := 0; i < len(samples); i += step {
			if !encoding.IsFinite32(samples[i]) {
				continue
			}
			pts = append(pts, plotter.XY{X: f.Depth(i), Y: float64(samples[i])})
		}
		if len(pts) == 0 {
			continue
		}

		line, err := plotter.NewLine(pts)
		if err != nil {
			return fmt.Errorf("curve %s: %w", labels[j], err)
		}
		line.Color = plotutil.Color(k)
		line.Width = vg.Points(1)

		p.Add(line)
		p.Legend.Add(labels[j], line)
	}

	wt, err := p.WriterTo(cfg.width, cfg.height, "png")
	if err != nil {
		return err
	}
	_, err = wt.WriteTo(w)

	return err
}
