package encoding

import (
	"math"
	"strconv"
)

// IsFinite32 reports whether v is neither NaN nor an infinity.
func IsFinite32(v float32) bool {
	return !math.IsNaN(float64(v)) && !math.IsInf(float64(v), 0)
}

// AppendJSONFloat32 appends v to dst in the form encoding/json uses for a
// float32. NaN and infinities have no JSON form and are written as null.
func AppendJSONFloat32(dst []byte, v float32) []byte {
	if !IsFinite32(v) {
		return append(dst, "null"...)
	}

	f := float64(v)
	format := byte('f')
	if abs := float32(math.Abs(f)); abs != 0 && (abs < 1e-6 || abs >= 1e21) {
		format = 'e'
	}

	dst = strconv.AppendFloat(dst, f, format, -1, 32)
	if format == 'e' {
		// e-09 becomes e-9
		n := len(dst)
		if n >= 4 && dst[n-4] == 'e' && dst[n-3] == '-' && dst[n-2] == '0' {
			dst[n-2] = dst[n-1]
			dst = dst[:n-1]
		}
	}

	return dst
}
