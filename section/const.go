package section

import "github.com/arloliu/la716/encoding"

// offset and section sizes in the la716 file
const (
	HeaderSize    = 512 // fixed header region in bytes; the data body starts right after it
	FloatSize     = encoding.SampleSize
	MaxCurveCount = 40 // maximum number of curves (numlog) a body may hold
	MinCurveCount = 1
)

// Header field offsets. All numeric fields are little-endian.
const (
	EccOffset      = 0   // uint32, 4 bytes
	CompOffset     = 4   // text, 80 bytes
	WellOffset     = 84  // text, 80 bytes
	NumlogOffset   = 164 // int16, 2 bytes
	B0Offset       = 166 // int16, 2 bytes, reserved
	LognamesOffset = 168 // text, 80 bytes
	StdepOffset    = 248 // float32
	EndepOffset    = 252 // float32
	RlevOffset     = 256 // float32
	B1Offset       = 260 // float32, reserved
	SpcprOffset    = 264 // float32
	B2Offset       = 268 // float32, reserved; documented as 8 bytes by some writers, read as 4
	textFieldWidth = encoding.TextFieldSize
)
