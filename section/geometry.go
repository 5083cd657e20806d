package section

import (
	"fmt"
	"math"

	"github.com/arloliu/la716/errs"
)

// maxBodySize bounds BodySize so that offsets stay representable as int on all platforms.
const maxBodySize = math.MaxInt32

// Geometry describes the block layout of the data body.
//
// The body is BlockCount consecutive blocks. Each block holds Spcpr samples
// for curve 0, then Spcpr samples for curve 1, and so on up to Numlog.
type Geometry struct {
	BlockCount      int `json:"blockCount"`
	BlockByteLength int `json:"blockByteLength"`
	Spcpr           int `json:"spcpr"`
	Numlog          int `json:"numlog"`
}

// BodySize returns the number of body bytes following the header region.
func (g Geometry) BodySize() int {
	return g.BlockByteLength * g.BlockCount
}

// SamplesPerCurve returns the length of every decoded curve.
func (g Geometry) SamplesPerCurve() int {
	return g.BlockCount * g.Spcpr
}

// SampleOffset returns the byte offset in the body of sample k of curve j in block i.
func (g Geometry) SampleOffset(i, j, k int) int {
	return i*g.BlockByteLength + j*g.Spcpr*FloatSize + k*FloatSize
}

// RawGeometry is the unchecked result of the block formulas, kept in float64
// so degenerate headers can be reported as they are.
type RawGeometry struct {
	BlockCount      float64
	BlockByteLength float64
}

// ComputeGeometry evaluates the block formulas without any validation:
//
//	blockCount      = 1 + floor((endep - stdep) / rlev / spcpr)
//	blockByteLength = spcpr * numlog * 4
//
// The result may be negative, zero, NaN or infinite for a degenerate header.
func ComputeGeometry(h Header) RawGeometry {
	depthRange := float64(h.Endep) - float64(h.Stdep)

	return RawGeometry{
		BlockCount:      1 + math.Floor(depthRange/float64(h.Rlev)/float64(h.Spcpr)),
		BlockByteLength: float64(h.Spcpr) * float64(h.Numlog) * FloatSize,
	}
}

// DeriveGeometry derives the body layout from a decoded header.
//
// It rejects headers for which the block formulas do not describe a body:
// rlev or spcpr not finite and positive, spcpr not a whole number, stdep or
// endep not finite, endep < stdep, or a body larger than 2 GiB. numlog is not
// checked here; see DecodeBody.
//
// Returns:
//   - Geometry: Block layout
//   - error: ErrMalformedGeometry wrapped with the offending values
func DeriveGeometry(h Header) (Geometry, error) {
	rlev := float64(h.Rlev)
	spcpr := float64(h.Spcpr)
	stdep := float64(h.Stdep)
	endep := float64(h.Endep)

	switch {
	case !isFinite(rlev) || rlev <= 0:
		return Geometry{}, fmt.Errorf("%w: rlev %v must be positive", errs.ErrMalformedGeometry, h.Rlev)
	case !isFinite(spcpr) || spcpr <= 0:
		return Geometry{}, fmt.Errorf("%w: spcpr %v must be positive", errs.ErrMalformedGeometry, h.Spcpr)
	case spcpr != math.Trunc(spcpr) || spcpr > maxBodySize:
		return Geometry{}, fmt.Errorf("%w: spcpr %v is not a whole sample count", errs.ErrMalformedGeometry, h.Spcpr)
	case !isFinite(stdep) || !isFinite(endep):
		return Geometry{}, fmt.Errorf("%w: depth range [%v, %v] is not finite", errs.ErrMalformedGeometry, h.Stdep, h.Endep)
	case endep < stdep:
		return Geometry{}, fmt.Errorf("%w: endep %v is before stdep %v", errs.ErrMalformedGeometry, h.Endep, h.Stdep)
	}

	raw := ComputeGeometry(h)
	numlog := max(float64(h.Numlog), 0)
	if !isFinite(raw.BlockCount) || raw.BlockCount > maxBodySize || raw.BlockCount*spcpr*numlog*FloatSize > maxBodySize {
		return Geometry{}, fmt.Errorf("%w: body of %.0f blocks x %.0f bytes is too large",
			errs.ErrMalformedGeometry, raw.BlockCount, raw.BlockByteLength)
	}

	g := Geometry{
		BlockCount: int(raw.BlockCount),
		Spcpr:      int(spcpr),
		Numlog:     int(h.Numlog),
	}
	g.BlockByteLength = g.Spcpr * max(g.Numlog, 0) * FloatSize

	return g, nil
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
