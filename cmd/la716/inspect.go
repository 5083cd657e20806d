package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"text/tabwriter"

	"github.com/arloliu/la716/blob"
	"github.com/arloliu/la716/chart"
	"github.com/arloliu/la716/internal/pool"
	"github.com/arloliu/la716/section"
	"github.com/arloliu/la716/source"
	"github.com/arloliu/la716/stats"
)

type infoResult struct {
	File     string           `json:"file"`
	Header   section.Header   `json:"header"`
	Geometry section.Geometry `json:"geometry"`
	Curves   []string         `json:"curves"`
}

// readInfo decodes only the header region of arg.
func readInfo(ctx context.Context, arg string, opts decodeOptions) (infoResult, error) {
	src, err := openSource(arg, opts)
	if err != nil {
		return infoResult{}, err
	}
	defer src.Close()

	sess, err := blob.NewSession(blob.WithMaxBodySize(opts.maxBody))
	if err != nil {
		return infoResult{}, err
	}

	hb := pool.GetHeaderBuffer()
	defer pool.PutHeaderBuffer(hb)

	if err := source.ReadFull(ctx, src, hb.B, 0); err != nil {
		return infoResult{}, err
	}
	if err := sess.SupplyHeader(hb.B); err != nil {
		return infoResult{}, err
	}

	h := sess.Header()
	names := make([]string, max(h.CurveCount(), 0))
	for j := range names {
		names[j] = h.CurveName(j)
	}

	return infoResult{File: arg, Header: h, Geometry: sess.Geometry(), Curves: names}, nil
}

func runInfo(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	fs := newFlagSet("info", stderr)
	var opts decodeOptions
	opts.register(fs)
	asJSON := fs.Bool("json", false, "Print JSON instead of a table")
	if err := parseFlags(fs, args); err != nil {
		return err
	}
	if fs.NArg() == 0 {
		return usagef("info needs at least one file")
	}

	failed := 0
	for _, arg := range fs.Args() {
		info, err := readInfo(ctx, arg, opts)
		if err != nil {
			if !opts.keepGoing {
				return fmt.Errorf("%s: %w", arg, err)
			}
			fmt.Fprintf(stderr, "%s: %v\n", arg, err)
			failed++

			continue
		}

		if *asJSON {
			if err := json.NewEncoder(stdout).Encode(info); err != nil {
				return err
			}
			continue
		}

		tw := tabwriter.NewWriter(stdout, 0, 4, 2, ' ', 0)
		fmt.Fprintf(tw, "file\t%s\n", info.File)
		fmt.Fprintf(tw, "company\t%s\n", info.Header.Comp)
		fmt.Fprintf(tw, "well\t%s\n", info.Header.Well)
		fmt.Fprintf(tw, "curves\t%d\t%s\n", info.Header.Numlog, strings.Join(info.Curves, ","))
		fmt.Fprintf(tw, "depth\t%g .. %g\tstep %g\n", info.Header.Stdep, info.Header.Endep, info.Header.Rlev)
		fmt.Fprintf(tw, "blocks\t%d\tx %d samples, %d bytes each\n", info.Geometry.BlockCount, info.Geometry.Spcpr, info.Geometry.BlockByteLength)
		fmt.Fprintf(tw, "body\t%d bytes\n", info.Geometry.BodySize())
		if err := tw.Flush(); err != nil {
			return err
		}
	}

	if failed > 0 {
		return fmt.Errorf("%d of %d files failed", failed, fs.NArg())
	}

	return nil
}

func runStats(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	fs := newFlagSet("stats", stderr)
	var opts decodeOptions
	opts.register(fs)
	if err := parseFlags(fs, args); err != nil {
		return err
	}
	if fs.NArg() == 0 {
		return usagef("stats needs at least one file")
	}

	files, err := decodeAll(ctx, fs.Args(), opts)

	tw := tabwriter.NewWriter(stdout, 0, 4, 2, ' ', tabwriter.AlignRight)
	fmt.Fprintln(tw, "file\tcurve\tcount\tzeros\tinvalid\tmin\tmax\tmean\tstddev\t")
	for _, f := range files {
		if f == nil {
			continue
		}
		for _, cs := range stats.Summarize(f) {
			fmt.Fprintf(tw, "%s\t%s\t%d\t%d\t%d\t%.4g\t%.4g\t%.4g\t%.4g\t\n",
				f.Name, cs.Name, cs.Count, cs.Zeros, cs.Invalid, cs.Min, cs.Max, cs.Mean, cs.StdDev)
		}
	}
	if flushErr := tw.Flush(); flushErr != nil {
		return flushErr
	}

	return err
}

func runChart(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	fs := newFlagSet("chart", stderr)
	var opts decodeOptions
	opts.register(fs)
	out := fs.String("o", "", "Output file; .png selects PNG, anything else HTML (default stdout, HTML)")
	curves := fs.String("curves", "", "Comma-separated curve names to draw (default all)")
	maxPoints := fs.Int("max-points", chart.DefaultMaxPoints, "Samples drawn per curve before downsampling")
	if err := parseFlags(fs, args); err != nil {
		return err
	}
	if fs.NArg() != 1 {
		return usagef("chart needs exactly one file")
	}

	f, err := decodeOne(ctx, fs.Arg(0), opts)
	if err != nil {
		return fmt.Errorf("%s: %w", fs.Arg(0), err)
	}

	chartOpts := []chart.Option{chart.WithTitle(filepath.Base(f.Name)), chart.WithMaxPoints(*maxPoints)}
	if *curves != "" {
		chartOpts = append(chartOpts, chart.WithCurves(strings.Split(*curves, ",")...))
	}

	if *out == "" {
		return chart.RenderHTML(stdout, f, chartOpts...)
	}

	w, err := os.Create(*out)
	if err != nil {
		return err
	}

	render := chart.RenderHTML
	if strings.EqualFold(filepath.Ext(*out), ".png") {
		render = chart.RenderPNG
	}
	if err := render(w, f, chartOpts...); err != nil {
		_ = w.Close()
		return err
	}

	return w.Close()
}
