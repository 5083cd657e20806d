// Package la716 decodes LA716 well-log files.
//
// An LA716 file is a fixed 512-byte little-endian header followed by a data
// body of float32 samples. The header names the well, lists the curve
// mnemonics and gives the depth range, the depth step and the number of
// samples each curve contributes per block. The body is a sequence of
// blocks; each block holds spcpr samples of every curve in turn. The value
// -9999 marks a missing reading and decodes as 0.
//
// # Basic Usage
//
// Decoding a file from disk:
//
//	f, err := la716.DecodeFile(ctx, "/data/XJ1.716")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	for j := range f.Body.Len() {
//	    for _, p := range f.AllPoints(j) {
//	        fmt.Printf("%s depth=%.2f val=%f\n", f.CurveName(j), p.Depth, p.Val)
//	    }
//	}
//
// Decoding bytes already in memory:
//
//	f, err := la716.DecodeBytes(ctx, "upload.716", data)
//
// # Package Structure
//
// This package provides convenient top-level wrappers around the blob package.
// For step-wise decoding, where the caller reads the header region, learns
// the body range and reads it separately, use blob.Session directly.
//
//   - section: header layout and body geometry
//   - encoding: GBK text fields and float32 samples
//   - blob: body decoding, the decode session and the encoder
//   - source: byte sources (files, memory, HTTP ranges, compressed archives)
//   - compress: zstd, S2 and LZ4 codecs for archived files
//   - stats, chart: curve statistics and charts
//   - api: the HTTP transport
package la716

import (
	"context"

	"github.com/arloliu/la716/blob"
	"github.com/arloliu/la716/internal/hash"
	"github.com/arloliu/la716/source"
)

// DecodeFile decodes the LA716 file at path. Paths ending in .zst, .s2 or
// .lz4 are expanded with the matching codec first, up to source.DefaultMaxSize.
//
// Parameters:
//   - ctx: Context for cancellation
//   - path: File path
//   - opts: Session options such as blob.WithMaxBodySize
//
// Returns:
//   - *blob.File: The decoded file
//   - error: errs.ErrNotFound, a decode error or an I/O error
func DecodeFile(ctx context.Context, path string, opts ...blob.SessionOption) (*blob.File, error) {
	src, err := source.Open(path)
	if err != nil {
		return nil, err
	}
	defer src.Close()

	return blob.Decode(ctx, src, opts...)
}

// DecodeBytes decodes a complete LA716 file held in data.
func DecodeBytes(ctx context.Context, name string, data []byte, opts ...blob.SessionOption) (*blob.File, error) {
	return blob.Decode(ctx, source.FromBytes(name, data), opts...)
}

// DecodeSource decodes from any byte source, for example source.NewHTTP.
func DecodeSource(ctx context.Context, src source.Source, opts ...blob.SessionOption) (*blob.File, error) {
	return blob.Decode(ctx, src, opts...)
}

// ETag returns the HTTP entity tag of a decoded file, derived from its content fingerprint.
func ETag(f *blob.File) string {
	return hash.ETag(f.Fingerprint)
}
