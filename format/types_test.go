package format

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCompressionFromExt(t *testing.T) {
	tests := []struct {
		name string
		want CompressionType
	}{
		{"well.716", CompressionNone},
		{"well", CompressionNone},
		{"well.716.zst", CompressionZstd},
		{"well.716.ZSTD", CompressionZstd},
		{"/data/well.716.s2", CompressionS2},
		{"well.716.lz4", CompressionLZ4},
		{"well.716.gz", CompressionNone},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, CompressionFromExt(tt.name))
		})
	}
}

func TestCompressionType_ExtRoundTrip(t *testing.T) {
	for _, ct := range []CompressionType{CompressionZstd, CompressionS2, CompressionLZ4} {
		require.Equal(t, ct, CompressionFromExt("x"+FileExt+ct.Ext()), ct.String())
	}
	require.Empty(t, CompressionNone.Ext())
}

func TestParseCompression(t *testing.T) {
	ct, ok := ParseCompression("ZSTD")
	require.True(t, ok)
	require.Equal(t, CompressionZstd, ct)

	ct, ok = ParseCompression("")
	require.True(t, ok)
	require.Equal(t, CompressionNone, ct)

	_, ok = ParseCompression("brotli")
	require.False(t, ok)
	require.Equal(t, "Unknown", CompressionType(0x9).String())
}
