// Package endian provides byte order utilities for reading LA716 fields.
//
// LA716 stores every multi-byte numeric field in little-endian order. The
// EndianEngine interface combines ByteOrder and AppendByteOrder from
// encoding/binary so the same engine serves both the decoders and the fixture
// builders used by tests and the pack tool.
//
// # Basic Usage
//
//	engine := endian.GetLittleEndianEngine()
//	numlog := endian.Int16(engine, buf[164:166])
//	stdep := endian.Float32(engine, buf[248:252])
//
// # Thread Safety
//
// All functions in this package are safe for concurrent use. The returned
// EndianEngine instances are immutable and stateless.
package endian

import (
	"encoding/binary"
	"math"
)

// EndianEngine combines ByteOrder and AppendByteOrder interfaces from encoding/binary
// into a single interface for convenient byte order operations.
//
// This interface is satisfied by binary.LittleEndian and binary.BigEndian from
// the standard library.
type EndianEngine interface {
	binary.ByteOrder
	binary.AppendByteOrder
}

// GetLittleEndianEngine returns the little-endian engine, the only byte order used by LA716.
func GetLittleEndianEngine() EndianEngine {
	return binary.LittleEndian
}

// GetBigEndianEngine returns the big-endian engine.
func GetBigEndianEngine() EndianEngine {
	return binary.BigEndian
}

// Int16 interprets the first two bytes of b as a signed 16-bit integer.
func Int16(engine EndianEngine, b []byte) int16 {
	return int16(engine.Uint16(b)) //nolint: gosec
}

// PutInt16 stores v into the first two bytes of b.
func PutInt16(engine EndianEngine, b []byte, v int16) {
	engine.PutUint16(b, uint16(v)) //nolint: gosec
}

// Float32 interprets the first four bytes of b as an IEEE 754 single precision float.
func Float32(engine EndianEngine, b []byte) float32 {
	return math.Float32frombits(engine.Uint32(b))
}

// PutFloat32 stores v into the first four bytes of b.
func PutFloat32(engine EndianEngine, b []byte, v float32) {
	engine.PutUint32(b, math.Float32bits(v))
}

// AppendFloat32 appends the IEEE 754 bits of v to b.
func AppendFloat32(engine EndianEngine, b []byte, v float32) []byte {
	return engine.AppendUint32(b, math.Float32bits(v))
}
