package blob

import (
	"context"
	"errors"
	"fmt"

	"github.com/arloliu/la716/errs"
	"github.com/arloliu/la716/internal/pool"
	"github.com/arloliu/la716/source"
)

// Decode runs a Session against src: it reads the header region, derives the
// geometry, reads exactly the body range that follows and decodes it.
//
// The curve count is checked before the body is read, so an invalid file
// costs only the header read.
//
// Returns:
//   - *File: Decoded file named after src
//   - error: ErrInvalidHeader (also for files shorter than 512 bytes),
//     ErrMalformedGeometry, ErrBodyTooLarge, ErrInvalidBody (also for
//     truncated bodies) or a source error
func Decode(ctx context.Context, src source.Source, opts ...SessionOption) (*File, error) {
	sess, err := NewSession(opts...)
	if err != nil {
		return nil, err
	}

	hb := pool.GetHeaderBuffer()
	defer pool.PutHeaderBuffer(hb)

	if err := readRange(ctx, src, hb.B, 0, errs.ErrInvalidHeader); err != nil {
		return nil, err
	}
	if err := sess.SupplyHeader(hb.B); err != nil {
		return nil, fmt.Errorf("%s: %w", src.Name(), err)
	}
	if err := CheckCurveCount(sess.Header()); err != nil {
		return nil, fmt.Errorf("%s: %w", src.Name(), err)
	}

	off, n, err := sess.BodyRange()
	if err != nil {
		return nil, err
	}

	bb := pool.GetBodyBuffer(n)
	defer pool.PutBodyBuffer(bb)

	if err := readRange(ctx, src, bb.B, off, errs.ErrInvalidBody); err != nil {
		return nil, err
	}
	if err := sess.SupplyBody(bb.B); err != nil {
		return nil, fmt.Errorf("%s: %w", src.Name(), err)
	}

	return sess.File(src.Name())
}

// readRange fills p from src; a short read is reported as phaseErr as well as ErrShortRead.
func readRange(ctx context.Context, src source.Source, p []byte, off int64, phaseErr error) error {
	err := source.ReadFull(ctx, src, p, off)
	if err == nil {
		return nil
	}

	if errors.Is(err, errs.ErrShortRead) {
		return fmt.Errorf("%w: %w", phaseErr, err)
	}

	return err
}
