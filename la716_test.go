package la716

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/arloliu/la716/blob"
	"github.com/arloliu/la716/compress"
	"github.com/arloliu/la716/errs"
	"github.com/arloliu/la716/format"
	"github.com/arloliu/la716/section"
)

func fixture(t *testing.T) []byte {
	t.Helper()

	h := section.Header{
		Numlog:   3,
		Lognames: "CALI,BZSP,R2M",
		Stdep:    2500,
		Endep:    2501,
		Rlev:     0.25,
		Spcpr:    5,
	}
	curves := make([][]float32, 3)
	for j := range curves {
		curves[j] = make([]float32, 5)
		for k := range curves[j] {
			curves[j][k] = float32(10*j + k)
		}
	}
	curves[2][4] = -9999

	data, err := blob.Encode(h, curves)
	require.NoError(t, err)

	return data
}

func TestDecodeBytes(t *testing.T) {
	f, err := DecodeBytes(context.Background(), "mem.716", fixture(t))
	require.NoError(t, err)

	require.Equal(t, 3, f.Body.Len())
	require.Equal(t, "BZSP", f.CurveName(1))
	require.Equal(t, []float32{20, 21, 22, 23, 0}, f.Body.Curve(2))
	require.Equal(t, 1, f.Geometry.BlockCount)
	require.NotEmpty(t, ETag(f))
}

func TestDecodeFile(t *testing.T) {
	dir := t.TempDir()
	data := fixture(t)

	plain := filepath.Join(dir, "w.716")
	require.NoError(t, os.WriteFile(plain, data, 0o600))

	packed, _, err := compress.CompressWithStats(format.CompressionS2, data)
	require.NoError(t, err)
	archived := filepath.Join(dir, "w.716.s2")
	require.NoError(t, os.WriteFile(archived, packed, 0o600))

	a, err := DecodeFile(context.Background(), plain)
	require.NoError(t, err)
	b, err := DecodeFile(context.Background(), archived)
	require.NoError(t, err)

	require.Equal(t, a.Body, b.Body)
	require.Equal(t, ETag(a), ETag(b))

	_, err = DecodeFile(context.Background(), filepath.Join(dir, "none.716"))
	require.ErrorIs(t, err, errs.ErrNotFound)

	_, err = DecodeFile(context.Background(), plain, blob.WithMaxBodySize(4))
	require.ErrorIs(t, err, errs.ErrBodyTooLarge)
}
