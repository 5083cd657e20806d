// Package source provides the byte sources a decode session reads from.
//
// A decode needs two reads: the 512-byte header region at offset 0, then the
// body range whose length is only known once the header is decoded. Every
// adapter here serves such positioned reads:
//
//   - OpenFile: a file on the local filesystem
//   - FromReaderAt: any io.ReaderAt with a known size, such as an uploaded
//     multipart file handle
//   - FromBytes: an in-memory buffer
//   - NewHTTP: a remote file fetched with HTTP Range requests
//   - OpenCompressed / Decompress: a zstd, s2 or lz4 archive expanded in memory
//
// Open picks between OpenFile and OpenCompressed from the file extension.
// Archives stop expanding once they pass WithMaxSize, DefaultMaxSize by default.
package source

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/arloliu/la716/errs"
)

// Source is a random-access byte source.
//
// Implementations must be safe for concurrent ReadAt calls.
type Source interface {
	// Name identifies the source in errors and logs.
	Name() string
	// Size returns the total number of bytes available.
	Size(ctx context.Context) (int64, error)
	// ReadAt reads len(p) bytes starting at off, with io.ReaderAt semantics.
	ReadAt(ctx context.Context, p []byte, off int64) (int, error)
	// Close releases the underlying resources.
	Close() error
}

// ReadFull fills p from src starting at off.
//
// Returns:
//   - error: ErrShortRead wrapping io.ErrUnexpectedEOF when the source ends
//     before p is filled, or the underlying read error
func ReadFull(ctx context.Context, src Source, p []byte, off int64) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	n, err := src.ReadAt(ctx, p, off)
	if n == len(p) {
		return nil
	}

	if err == nil || errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
		return fmt.Errorf("%w: %s: read %d of %d bytes at offset %d: %w",
			errs.ErrShortRead, src.Name(), n, len(p), off, io.ErrUnexpectedEOF)
	}

	return fmt.Errorf("read %s at offset %d: %w", src.Name(), off, err)
}
