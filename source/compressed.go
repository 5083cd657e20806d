package source

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/arloliu/la716/compress"
	"github.com/arloliu/la716/errs"
	"github.com/arloliu/la716/format"
	"github.com/arloliu/la716/internal/options"
	"github.com/arloliu/la716/section"
)

// DefaultMaxSize caps the expanded size of an archive: a header region plus a 1GiB body.
const DefaultMaxSize = section.HeaderSize + 1<<30

type openConfig struct {
	maxSize int
}

// OpenOption configures Open, OpenCompressed and Decompress.
type OpenOption = options.Option[*openConfig]

// WithMaxSize limits how many bytes an archive may expand to. Expansion stops
// with ErrBodyTooLarge as soon as the output passes n bytes. Plain files are
// not affected; their body size is checked by the decode session.
func WithMaxSize(n int) OpenOption {
	return options.New(func(c *openConfig) error {
		if n <= 0 {
			return fmt.Errorf("max archive size must be positive, got %d", n)
		}
		c.maxSize = n

		return nil
	})
}

func newOpenConfig(opts []OpenOption) (openConfig, error) {
	cfg := openConfig{maxSize: DefaultMaxSize}
	if err := options.Apply(&cfg, opts...); err != nil {
		return openConfig{}, err
	}

	return cfg, nil
}

// Decompress expands an archive with the codec for ct and serves the result from memory.
func Decompress(name string, archive []byte, ct format.CompressionType, opts ...OpenOption) (*ReaderAtSource, error) {
	cfg, err := newOpenConfig(opts)
	if err != nil {
		return nil, err
	}

	codec, err := compress.GetCodec(ct)
	if err != nil {
		return nil, err
	}

	raw, err := codec.DecompressLimit(archive, cfg.maxSize)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", name, err)
	}

	return FromBytes(name, raw), nil
}

// OpenCompressed reads a compressed archive whose codec is given by its
// extension (.zst, .s2, .lz4) and expands it in memory.
func OpenCompressed(path string, opts ...OpenOption) (*ReaderAtSource, error) {
	ct := format.CompressionFromExt(path)
	if ct == format.CompressionNone {
		return nil, fmt.Errorf("%w: %s has no compression extension", errs.ErrUnsupportedCompression, path)
	}

	archive, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", errs.ErrNotFound, path)
		}

		return nil, err
	}

	return Decompress(path, archive, ct, opts...)
}

// Open opens path as a compressed archive when it carries a compression
// extension, or as a plain file otherwise.
func Open(path string, opts ...OpenOption) (Source, error) {
	if format.CompressionFromExt(path) != format.CompressionNone {
		src, err := OpenCompressed(path, opts...)
		if err != nil {
			return nil, err
		}

		return src, nil
	}

	if _, err := newOpenConfig(opts); err != nil {
		return nil, err
	}

	src, err := OpenFile(path)
	if err != nil {
		return nil, err
	}

	return src, nil
}
