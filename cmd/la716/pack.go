package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/arloliu/la716/blob"
	"github.com/arloliu/la716/compress"
	"github.com/arloliu/la716/format"
	"github.com/arloliu/la716/source"
)

func runPack(args []string, stdout, stderr io.Writer) error {
	fs := newFlagSet("pack", stderr)
	codecName := fs.String("codec", "zstd", "Compression codec: zstd, s2 or lz4")
	verify := fs.Bool("verify", true, "Decode the file before packing it")
	if err := parseFlags(fs, args); err != nil {
		return err
	}
	if fs.NArg() < 1 || fs.NArg() > 2 {
		return usagef("pack needs an input file and an optional output file")
	}

	ct, ok := format.ParseCompression(*codecName)
	if !ok || ct == format.CompressionNone {
		return usagef("unknown codec %q", *codecName)
	}

	in := fs.Arg(0)
	out := in + ct.Ext()
	if fs.NArg() == 2 {
		out = fs.Arg(1)
	}

	data, err := os.ReadFile(in)
	if err != nil {
		return err
	}

	if *verify {
		if _, err := blob.Decode(context.Background(), source.FromBytes(in, data)); err != nil {
			return fmt.Errorf("%s: %w", in, err)
		}
	}

	packed, st, err := compress.CompressWithStats(ct, data)
	if err != nil {
		return err
	}

	if err := os.WriteFile(out, packed, 0o644); err != nil { //nolint: gosec
		return err
	}

	fmt.Fprintf(stdout, "%s -> %s: %s %d -> %d bytes (ratio %.3f, saved %.1f%%)\n",
		in, out, st.Algorithm, st.OriginalSize, st.CompressedSize,
		st.CompressionRatio(), st.SpaceSavings())

	return nil
}
