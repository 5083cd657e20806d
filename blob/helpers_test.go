package blob

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/arloliu/la716/section"
)

// referenceHeader is a two-curve file with two blocks of two samples per curve.
func referenceHeader() section.Header {
	return section.Header{
		Ecc:      716,
		Comp:     "大庆油田",
		Well:     "XJ1",
		Numlog:   2,
		Lognames: "GR,SP",
		Stdep:    100,
		Endep:    101,
		Rlev:     0.5,
		Spcpr:    2,
	}
}

func mustEncode(t *testing.T, h section.Header, curves [][]float32) []byte {
	t.Helper()

	data, err := Encode(h, curves)
	require.NoError(t, err)

	return data
}

func mustHeaderBytes(t *testing.T, h section.Header) []byte {
	t.Helper()

	b, err := h.Bytes()
	require.NoError(t, err)

	return b
}
