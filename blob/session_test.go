package blob

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/arloliu/la716/errs"
	"github.com/arloliu/la716/internal/hash"
	"github.com/arloliu/la716/section"
)

func TestSession_ReferenceScenario(t *testing.T) {
	sess, err := NewSession()
	require.NoError(t, err)
	require.Equal(t, HeaderPending, sess.State())

	head := mustHeaderBytes(t, referenceHeader())
	require.NoError(t, sess.SupplyHeader(head))
	require.Equal(t, HeaderReady, sess.State())

	g := sess.Geometry()
	require.Equal(t, 2, g.BlockCount)
	require.Equal(t, 16, g.BlockByteLength)

	off, n, err := sess.BodyRange()
	require.NoError(t, err)
	require.Equal(t, int64(512), off)
	require.Equal(t, 32, n)

	body := make([]byte, 32)
	require.NoError(t, sess.SupplyBody(body))
	require.Equal(t, BodyReady, sess.State())
	require.Equal(t, [][]float32{{0, 0, 0, 0}, {0, 0, 0, 0}}, sess.Body().Curves())

	f, err := sess.File("ref.716")
	require.NoError(t, err)
	require.Equal(t, "ref.716", f.Name)
	require.Equal(t, "GR,SP", f.Header.Lognames)
	require.Equal(t, "大庆油田", f.Header.Comp)
	require.Equal(t, hash.Fingerprint(head, body), f.Fingerprint)
}

func TestSession_ShortHeaderBuffer(t *testing.T) {
	sess, err := NewSession()
	require.NoError(t, err)

	head := mustHeaderBytes(t, referenceHeader())[:section.B2Offset+4]
	require.NoError(t, sess.SupplyHeader(head))
	require.Equal(t, "GR,SP", sess.Header().Lognames)

	body := make([]byte, 32)
	require.NoError(t, sess.SupplyBody(body))

	f, err := sess.File("short.716")
	require.NoError(t, err)
	require.Equal(t, hash.Fingerprint(head, body), f.Fingerprint)
}

func TestSession_WrongState(t *testing.T) {
	sess, err := NewSession()
	require.NoError(t, err)

	require.ErrorIs(t, sess.SupplyBody(make([]byte, 32)), errs.ErrSessionState)
	_, _, err = sess.BodyRange()
	require.ErrorIs(t, err, errs.ErrSessionState)
	_, err = sess.File("x")
	require.ErrorIs(t, err, errs.ErrSessionState)

	require.NoError(t, sess.SupplyHeader(mustHeaderBytes(t, referenceHeader())))
	require.ErrorIs(t, sess.SupplyHeader(mustHeaderBytes(t, referenceHeader())), errs.ErrSessionState)
	_, err = sess.File("x")
	require.ErrorIs(t, err, errs.ErrSessionState)

	require.NoError(t, sess.SupplyBody(make([]byte, 32)))
	require.ErrorIs(t, sess.SupplyBody(make([]byte, 32)), errs.ErrSessionState)
	require.ErrorIs(t, sess.SupplyHeader(mustHeaderBytes(t, referenceHeader())), errs.ErrSessionState)
	require.Equal(t, BodyReady, sess.State())

	off, n, err := sess.BodyRange()
	require.NoError(t, err)
	require.Equal(t, int64(section.HeaderSize), off)
	require.Equal(t, 32, n)
}

func TestSession_FailedStepKeepsState(t *testing.T) {
	sess, err := NewSession()
	require.NoError(t, err)

	require.ErrorIs(t, sess.SupplyHeader(nil), errs.ErrInvalidHeader)
	require.Equal(t, HeaderPending, sess.State())

	// zero padded to an all-zero header, whose depth step is invalid
	require.ErrorIs(t, sess.SupplyHeader(make([]byte, 100)), errs.ErrMalformedGeometry)
	require.Equal(t, HeaderPending, sess.State())

	bad := referenceHeader()
	bad.Rlev = 0
	require.ErrorIs(t, sess.SupplyHeader(mustHeaderBytes(t, bad)), errs.ErrMalformedGeometry)
	require.Equal(t, HeaderPending, sess.State())
	require.Zero(t, sess.Header())

	require.NoError(t, sess.SupplyHeader(mustHeaderBytes(t, referenceHeader())))

	require.ErrorIs(t, sess.SupplyBody(make([]byte, 16)), errs.ErrInvalidBody)
	require.Equal(t, HeaderReady, sess.State())
	require.Zero(t, sess.Body().Len())

	require.NoError(t, sess.SupplyBody(make([]byte, 32)))
	require.Equal(t, BodyReady, sess.State())
}

func TestSession_MaxBodySize(t *testing.T) {
	sess, err := NewSession(WithMaxBodySize(16))
	require.NoError(t, err)

	require.ErrorIs(t, sess.SupplyHeader(mustHeaderBytes(t, referenceHeader())), errs.ErrBodyTooLarge)
	require.Equal(t, HeaderPending, sess.State())

	_, err = NewSession(WithMaxBodySize(0))
	require.Error(t, err)

	sess, err = NewSession(WithMaxBodySize(32))
	require.NoError(t, err)
	require.NoError(t, sess.SupplyHeader(mustHeaderBytes(t, referenceHeader())))
}

func TestSession_FingerprintTracksContent(t *testing.T) {
	h := referenceHeader()
	a := mustEncode(t, h, [][]float32{{1, 2, 3, 4}, {5, 6, 7, 8}})
	b := mustEncode(t, h, [][]float32{{1, 2, 3, 4}, {5, 6, 7, 9}})

	decode := func(data []byte) uint64 {
		sess, err := NewSession()
		require.NoError(t, err)
		require.NoError(t, sess.SupplyHeader(data[:section.HeaderSize]))
		require.NoError(t, sess.SupplyBody(data[section.HeaderSize:]))
		f, err := sess.File("f")
		require.NoError(t, err)

		return f.Fingerprint
	}

	require.Equal(t, decode(a), decode(a))
	require.NotEqual(t, decode(a), decode(b))
}

func TestState_String(t *testing.T) {
	require.Equal(t, "HeaderPending", HeaderPending.String())
	require.Equal(t, "HeaderReady", HeaderReady.String())
	require.Equal(t, "BodyReady", BodyReady.String())
	require.Equal(t, "Unknown", State(9).String())
}
