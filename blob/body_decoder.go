package blob

import (
	"fmt"

	"github.com/arloliu/la716/encoding"
	"github.com/arloliu/la716/endian"
	"github.com/arloliu/la716/errs"
	"github.com/arloliu/la716/section"
)

// CheckCurveCount reports whether the header's numlog lies in [1, 40].
//
// Returns:
//   - error: ErrInvalidBody wrapped with the offending count
func CheckCurveCount(h section.Header) error {
	if h.Numlog > section.MaxCurveCount || h.Numlog < section.MinCurveCount {
		return fmt.Errorf("%w: numlog %d outside [%d, %d]",
			errs.ErrInvalidBody, h.Numlog, section.MinCurveCount, section.MaxCurveCount)
	}

	return nil
}

// DecodeBody extracts per-curve samples from the data body.
//
// For every block i, curve j and sample k, the sample is the little-endian
// float32 at byte offset i*blockByteLength + j*spcpr*4 + k*4, with -9999
// replaced by 0. Curve j collects its run from each block in block order.
//
// Parameters:
//   - buf: Body bytes, starting right after the header region
//   - h: Decoded header
//   - g: Geometry derived from h
//
// Returns:
//   - Body: Decoded curves
//   - error: ErrInvalidBody if numlog is outside [1, 40], buf is empty or
//     shorter than g.BodySize(), or g was not derived from h; no partial body
//     is returned
func DecodeBody(buf []byte, h section.Header, g section.Geometry) (Body, error) {
	if err := CheckCurveCount(h); err != nil {
		return Body{}, err
	}
	if len(buf) < 1 {
		return Body{}, fmt.Errorf("%w: empty body buffer", errs.ErrInvalidBody)
	}
	if g.Numlog != h.CurveCount() {
		return Body{}, fmt.Errorf("%w: geometry is for %d curves, header has %d",
			errs.ErrInvalidBody, g.Numlog, h.Numlog)
	}
	if len(buf) < g.BodySize() {
		return Body{}, fmt.Errorf("%w: body buffer has %d bytes, geometry needs %d",
			errs.ErrInvalidBody, len(buf), g.BodySize())
	}

	dec := encoding.NewSampleDecoder(endian.GetLittleEndianEngine())
	perCurve := g.SamplesPerCurve()
	curves := make([][]float32, g.Numlog)
	for j := range curves {
		curves[j] = make([]float32, 0, perCurve)
	}

	for i := range g.BlockCount {
		for j := range g.Numlog {
			off := g.SampleOffset(i, j, 0)
			curves[j] = dec.AppendRun(curves[j], buf[off:], g.Spcpr)
		}
	}

	return Body{curves: curves}, nil
}
