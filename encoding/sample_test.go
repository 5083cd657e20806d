package encoding

import (
	"slices"
	"testing"

	"github.com/arloliu/la716/endian"
	"github.com/stretchr/testify/require"
)

func TestSampleDecoder_At(t *testing.T) {
	engine := endian.GetLittleEndianEngine()
	enc := NewSampleEncoder(engine, 3)
	enc.WriteSlice([]float32{1.25, MissingValue, -3.5})
	data := enc.Bytes()
	require.Equal(t, 3, enc.Len())

	dec := NewSampleDecoder(engine)

	v, ok := dec.At(data, 0)
	require.True(t, ok)
	require.Equal(t, float32(1.25), v)

	v, ok = dec.At(data, 4)
	require.True(t, ok)
	require.Equal(t, float32(0), v, "missing value must decode to zero")

	v, ok = dec.At(data, 8)
	require.True(t, ok)
	require.Equal(t, float32(-3.5), v)

	_, ok = dec.At(data, 9)
	require.False(t, ok)
	_, ok = dec.At(data, -1)
	require.False(t, ok)
}

func TestSampleDecoder_All(t *testing.T) {
	engine := endian.GetLittleEndianEngine()
	enc := NewSampleEncoder(engine, 4)
	for _, v := range []float32{0, MissingValue, 9999, -9998.5} {
		enc.Write(v)
	}

	dec := NewSampleDecoder(engine)
	require.Equal(t, []float32{0, 0, 9999, -9998.5}, slices.Collect(dec.All(enc.Bytes(), 4)))
	require.Equal(t, []float32{0, 0}, slices.Collect(dec.All(enc.Bytes(), 2)))
	require.Empty(t, slices.Collect(dec.All(enc.Bytes(), 5)))
	require.Empty(t, slices.Collect(dec.All(enc.Bytes(), 0)))

	var first []float32
	for v := range dec.All(enc.Bytes(), 4) {
		first = append(first, v)
		break
	}
	require.Len(t, first, 1)
}

func TestSampleDecoder_AppendRun(t *testing.T) {
	engine := endian.GetLittleEndianEngine()
	enc := NewSampleEncoder(engine, 2)
	enc.WriteSlice([]float32{7, MissingValue})

	dec := NewSampleDecoder(engine)
	out := dec.AppendRun([]float32{1}, enc.Bytes(), 2)
	require.Equal(t, []float32{1, 7, 0}, out)
}
