package source

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/arloliu/la716/errs"
)

// FileSource reads from a file on the local filesystem.
type FileSource struct {
	f    *os.File
	name string
}

var _ Source = (*FileSource)(nil)

// OpenFile opens the named file for positioned reads.
//
// Returns:
//   - *FileSource: Open source; the caller must Close it
//   - error: ErrNotFound if the file does not exist, or the open error
func OpenFile(path string) (*FileSource, error) {
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", errs.ErrNotFound, path)
		}

		return nil, err
	}

	return &FileSource{f: f, name: path}, nil
}

// Name returns the file path.
func (s *FileSource) Name() string {
	return s.name
}

// Size returns the current file size.
func (s *FileSource) Size(_ context.Context) (int64, error) {
	info, err := s.f.Stat()
	if err != nil {
		return 0, err
	}

	return info.Size(), nil
}

// ReadAt reads from the file. Local reads are not interruptible; ctx is
// checked before the read starts.
func (s *FileSource) ReadAt(ctx context.Context, p []byte, off int64) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}

	return s.f.ReadAt(p, off)
}

// Close closes the file.
func (s *FileSource) Close() error {
	return s.f.Close()
}
