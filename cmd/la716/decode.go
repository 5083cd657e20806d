package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/arloliu/la716/blob"
	"github.com/arloliu/la716/internal/monitoring"
	"github.com/arloliu/la716/section"
	"github.com/arloliu/la716/source"
)

// decodeOptions are the flags shared by the commands that decode files.
type decodeOptions struct {
	workers   int
	keepGoing bool
	maxBody   int
	timeout   time.Duration
}

func (o *decodeOptions) register(fs *flag.FlagSet) {
	fs.IntVar(&o.workers, "workers", 4, "Number of files decoded concurrently")
	fs.BoolVar(&o.keepGoing, "keep-going", false, "Report failed files and continue with the rest")
	fs.IntVar(&o.maxBody, "max-body", blob.DefaultMaxBodySize, "Largest data body accepted, in bytes")
	fs.DurationVar(&o.timeout, "http-timeout", 30*time.Second, "Timeout for http(s) sources")
}

// openSource opens a local path or, for http(s) URLs, a ranged HTTP source.
// Local archives may expand to at most a header plus opts.maxBody bytes.
func openSource(arg string, opts decodeOptions) (source.Source, error) {
	if strings.HasPrefix(arg, "http://") || strings.HasPrefix(arg, "https://") {
		return source.NewHTTP(&http.Client{Timeout: opts.timeout}, arg), nil
	}

	return source.Open(arg, source.WithMaxSize(section.HeaderSize+opts.maxBody))
}

func decodeOne(ctx context.Context, arg string, opts decodeOptions) (*blob.File, error) {
	src, err := openSource(arg, opts)
	if err != nil {
		return nil, err
	}
	defer src.Close()

	return blob.Decode(ctx, src, blob.WithMaxBodySize(opts.maxBody))
}

// decodeAll decodes args with at most opts.workers files in flight.
//
// Results keep the order of args. Without keepGoing the first failure cancels
// the remaining decodes and is returned; with keepGoing failures are logged,
// left as nil entries and counted in the returned error.
func decodeAll(ctx context.Context, args []string, opts decodeOptions) ([]*blob.File, error) {
	if opts.workers < 1 {
		return nil, usagef("-workers must be at least 1, got %d", opts.workers)
	}

	files := make([]*blob.File, len(args))
	failed := make([]error, len(args))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(opts.workers)

	for i, arg := range args {
		g.Go(func() error {
			f, err := decodeOne(gctx, arg, opts)
			if err != nil {
				if opts.keepGoing {
					monitoring.Logf("la716: %s: %v", arg, err)
					failed[i] = err

					return nil
				}

				return fmt.Errorf("%s: %w", arg, err)
			}
			files[i] = f

			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	n := 0
	for _, err := range failed {
		if err != nil {
			n++
		}
	}
	if n > 0 {
		return files, fmt.Errorf("%d of %d files failed to decode", n, len(args))
	}

	return files, nil
}

func runDecode(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	fs := newFlagSet("decode", stderr)
	var opts decodeOptions
	opts.register(fs)
	pretty := fs.Bool("pretty", false, "Indent the JSON output")
	if err := parseFlags(fs, args); err != nil {
		return err
	}
	if fs.NArg() == 0 {
		return usagef("decode needs at least one file")
	}

	files, err := decodeAll(ctx, fs.Args(), opts)

	enc := json.NewEncoder(stdout)
	if *pretty {
		enc.SetIndent("", "  ")
	}
	for _, f := range files {
		if f == nil {
			continue
		}
		if encErr := enc.Encode(f); encErr != nil {
			return encErr
		}
	}

	return err
}
