package blob

import (
	"fmt"

	"github.com/arloliu/la716/encoding"
	"github.com/arloliu/la716/endian"
	"github.com/arloliu/la716/errs"
	"github.com/arloliu/la716/section"
)

// Encode lays out a complete LA716 file: the 512-byte header region followed
// by the data body in block order.
//
// Each element of curves holds the samples of one curve in depth order and
// must have exactly Geometry.SamplesPerCurve samples. Values are written as
// given; use encoding.MissingValue to mark absent readings.
//
// Returns:
//   - []byte: Encoded file
//   - error: ErrMalformedGeometry or ErrInvalidBody if h and curves disagree
func Encode(h section.Header, curves [][]float32) ([]byte, error) {
	if err := CheckCurveCount(h); err != nil {
		return nil, err
	}

	g, err := section.DeriveGeometry(h)
	if err != nil {
		return nil, err
	}

	if len(curves) != g.Numlog {
		return nil, fmt.Errorf("%w: %d curves given, header declares %d", errs.ErrInvalidBody, len(curves), g.Numlog)
	}
	for j, c := range curves {
		if len(c) != g.SamplesPerCurve() {
			return nil, fmt.Errorf("%w: curve %d has %d samples, geometry needs %d",
				errs.ErrInvalidBody, j, len(c), g.SamplesPerCurve())
		}
	}

	head, err := h.Bytes()
	if err != nil {
		return nil, err
	}

	enc := encoding.NewSampleEncoder(endian.GetLittleEndianEngine(), g.BodySize()/encoding.SampleSize)
	for i := range g.BlockCount {
		for j := range g.Numlog {
			enc.WriteSlice(curves[j][i*g.Spcpr : (i+1)*g.Spcpr])
		}
	}

	return append(head, enc.Bytes()...), nil
}
