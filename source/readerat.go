package source

import (
	"bytes"
	"context"
	"io"
)

// ReaderAtSource adapts an io.ReaderAt of known size, such as a
// multipart.File from an upload.
type ReaderAtSource struct {
	r    io.ReaderAt
	name string
	size int64
}

var _ Source = (*ReaderAtSource)(nil)

// FromReaderAt wraps r. If r also implements io.Closer, Close closes it.
func FromReaderAt(name string, r io.ReaderAt, size int64) *ReaderAtSource {
	return &ReaderAtSource{r: r, name: name, size: size}
}

// FromBytes serves b from memory.
func FromBytes(name string, b []byte) *ReaderAtSource {
	return FromReaderAt(name, bytes.NewReader(b), int64(len(b)))
}

// Name returns the name given at construction.
func (s *ReaderAtSource) Name() string {
	return s.name
}

// Size returns the size given at construction.
func (s *ReaderAtSource) Size(_ context.Context) (int64, error) {
	return s.size, nil
}

// ReadAt reads from the wrapped reader, never past the declared size.
func (s *ReaderAtSource) ReadAt(ctx context.Context, p []byte, off int64) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	if off >= s.size {
		return 0, io.EOF
	}
	if remaining := s.size - off; int64(len(p)) > remaining {
		n, err := s.r.ReadAt(p[:remaining], off)
		if err == nil {
			err = io.EOF
		}

		return n, err
	}

	return s.r.ReadAt(p, off)
}

// Close closes the wrapped reader when it is an io.Closer.
func (s *ReaderAtSource) Close() error {
	if c, ok := s.r.(io.Closer); ok {
		return c.Close()
	}

	return nil
}
