package api

import (
	"bytes"
	"encoding/json"
	"math"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/arloliu/la716/blob"
	"github.com/arloliu/la716/compress"
	"github.com/arloliu/la716/errs"
	"github.com/arloliu/la716/format"
	"github.com/arloliu/la716/internal/monitoring"
	"github.com/arloliu/la716/section"
)

func testHeader() section.Header {
	return section.Header{
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

func testFileBytes(t *testing.T) []byte {
	t.Helper()

	data, err := blob.Encode(testHeader(), [][]float32{{1, 2, 3, 4}, {-9999, 6, 7, 8}})
	require.NoError(t, err)

	return data
}

// newTestServer writes well.716, packed.716.zst and broken.716 to a temp root.
func newTestServer(t *testing.T, opts ...Option) (*Server, *httptest.Server) {
	t.Helper()
	monitoring.SetLogger(nil)

	root := t.TempDir()
	data := testFileBytes(t)
	require.NoError(t, os.WriteFile(filepath.Join(root, "well.716"), data, 0o600))

	codec, err := compress.GetCodec(format.CompressionZstd)
	require.NoError(t, err)
	packed, err := codec.Compress(data)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(filepath.Join(root, "packed.716.zst"), packed, 0o600))

	require.NoError(t, os.WriteFile(filepath.Join(root, "broken.716"), data[:400], 0o600))

	s, err := NewServer(root, opts...)
	require.NoError(t, err)

	ts := httptest.NewServer(s.Handler())
	t.Cleanup(ts.Close)

	return s, ts
}

type fileDoc struct {
	Header section.Header `json:"header"`
	Body   [][]float32    `json:"body"`
}

func getJSON(t *testing.T, url string, v any) *http.Response {
	t.Helper()

	resp, err := http.Get(url)
	require.NoError(t, err)
	defer resp.Body.Close()

	if v != nil {
		require.NoError(t, json.NewDecoder(resp.Body).Decode(v))
	}

	return resp
}

func TestShowFile(t *testing.T) {
	_, ts := newTestServer(t)

	for _, name := range []string{"well", "packed"} {
		t.Run(name, func(t *testing.T) {
			var doc fileDoc
			resp := getJSON(t, ts.URL+"/la716/"+name, &doc)

			require.Equal(t, http.StatusOK, resp.StatusCode)
			require.Equal(t, "*", resp.Header.Get("Access-Control-Allow-Origin"))
			require.NotEmpty(t, resp.Header.Get("ETag"))
			require.Equal(t, "GR,SP", doc.Header.Lognames)
			require.Equal(t, "大庆油田", doc.Header.Comp)
			require.Equal(t, [][]float32{{1, 2, 3, 4}, {0, 6, 7, 8}}, doc.Body)
		})
	}
}

func TestShowFile_NonFiniteValues(t *testing.T) {
	monitoring.SetLogger(nil)
	root := t.TempDir()

	sample, err := blob.Encode(testHeader(), [][]float32{{1, float32(math.NaN()), 3, 4}, {5, 6, float32(math.Inf(-1)), 8}})
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(filepath.Join(root, "nan.716"), sample, 0o600))

	h := testHeader()
	h.B1 = float32(math.NaN())
	h.B2 = float32(math.Inf(1))
	reserved, err := blob.Encode(h, [][]float32{{1, 2, 3, 4}, {5, 6, 7, 8}})
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(filepath.Join(root, "nanhdr.716"), reserved, 0o600))

	s, err := NewServer(root)
	require.NoError(t, err)
	mux := s.ServeMux()

	get := func(t *testing.T, path string) *httptest.ResponseRecorder {
		t.Helper()
		rec := httptest.NewRecorder()
		mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

		return rec
	}

	t.Run("Sample", func(t *testing.T) {
		var doc struct {
			Body [][]*float32 `json:"body"`
		}
		require.NoError(t, json.Unmarshal(get(t, "/la716/nan").Body.Bytes(), &doc))
		require.Nil(t, doc.Body[0][1])
		require.Nil(t, doc.Body[1][2])
		require.InDelta(t, 8, *doc.Body[1][3], 0)
	})

	t.Run("ReservedHeaderFloats", func(t *testing.T) {
		var doc struct {
			Header map[string]any `json:"header"`
		}
		require.NoError(t, json.Unmarshal(get(t, "/la716/nanhdr").Body.Bytes(), &doc))
		require.Contains(t, doc.Header, "b1")
		require.Nil(t, doc.Header["b1"])
		require.Nil(t, doc.Header["b2"])
		require.Equal(t, "GR,SP", doc.Header["lognames"])
	})

	t.Run("Stats", func(t *testing.T) {
		var doc struct {
			Curves []struct {
				Invalid int     `json:"invalid"`
				Mean    float64 `json:"mean"`
			} `json:"curves"`
		}
		require.NoError(t, json.Unmarshal(get(t, "/la716/nan/stats").Body.Bytes(), &doc))
		require.Equal(t, 1, doc.Curves[0].Invalid)
		require.InDelta(t, 8.0/3.0, doc.Curves[0].Mean, 1e-9)
	})

	t.Run("Chart", func(t *testing.T) {
		get(t, "/la716/nan/chart")
		get(t, "/la716/nan/chart?format=png")
	})

	t.Run("Upload", func(t *testing.T) {
		ts := httptest.NewServer(s.Handler())
		defer ts.Close()

		resp := upload(t, ts.URL+"/la716", sample)
		defer resp.Body.Close()
		require.Equal(t, http.StatusOK, resp.StatusCode)
	})
}

func TestShowFile_ETag(t *testing.T) {
	_, ts := newTestServer(t)

	first := getJSON(t, ts.URL+"/la716/well", nil)
	etag := first.Header.Get("ETag")
	require.NotEmpty(t, etag)

	// the compressed copy holds the same bytes
	packed := getJSON(t, ts.URL+"/la716/packed", nil)
	require.Equal(t, etag, packed.Header.Get("ETag"))

	req, err := http.NewRequest(http.MethodGet, ts.URL+"/la716/well", nil)
	require.NoError(t, err)
	req.Header.Set("If-None-Match", etag)

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	resp.Body.Close()
	require.Equal(t, http.StatusNotModified, resp.StatusCode)

	req.Header.Set("If-None-Match", `"other"`)
	resp, err = http.DefaultClient.Do(req)
	require.NoError(t, err)
	resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestShowFile_Errors(t *testing.T) {
	_, ts := newTestServer(t)

	tests := []struct {
		name   string
		path   string
		status int
	}{
		{"Missing", "/la716/nothere", http.StatusNotFound},
		{"Truncated", "/la716/broken", http.StatusUnprocessableEntity},
		{"Hidden", "/la716/.well", http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var body map[string]string
			resp := getJSON(t, ts.URL+tt.path, &body)
			require.Equal(t, tt.status, resp.StatusCode)
			require.NotEmpty(t, body["error"])
		})
	}
}

func TestShowFile_BodyTooLarge(t *testing.T) {
	_, ts := newTestServer(t, WithMaxBodySize(16))

	var body map[string]string
	resp := getJSON(t, ts.URL+"/la716/well", &body)
	require.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)
	require.Contains(t, body["error"], "size limit")

	// the archive stops expanding at a header plus 16 bytes
	body = nil
	resp = getJSON(t, ts.URL+"/la716/packed", &body)
	require.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)
	require.Contains(t, body["error"], "decompressed archive exceeds 528 bytes")
}

func upload(t *testing.T, url string, data []byte) *http.Response {
	t.Helper()

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	fw, err := mw.CreateFormFile("file", "upload.716")
	require.NoError(t, err)
	_, err = fw.Write(data)
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	resp, err := http.Post(url, mw.FormDataContentType(), &buf)
	require.NoError(t, err)

	return resp
}

func TestUploadFile(t *testing.T) {
	_, ts := newTestServer(t)

	resp := upload(t, ts.URL+"/la716", testFileBytes(t))
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var doc fileDoc
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&doc))
	require.Equal(t, [][]float32{{1, 2, 3, 4}, {0, 6, 7, 8}}, doc.Body)
}

func TestUploadFile_Errors(t *testing.T) {
	_, ts := newTestServer(t, WithMaxUploadSize(1024))

	resp := upload(t, ts.URL+"/la716", testFileBytes(t)[:300])
	resp.Body.Close()
	require.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)

	resp = upload(t, ts.URL+"/la716", make([]byte, 4096))
	resp.Body.Close()
	require.Equal(t, http.StatusRequestEntityTooLarge, resp.StatusCode)

	resp, err := http.Post(ts.URL+"/la716", "text/plain", bytes.NewReader([]byte("x")))
	require.NoError(t, err)
	resp.Body.Close()
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestShowStats(t *testing.T) {
	_, ts := newTestServer(t)

	var doc struct {
		File   string `json:"file"`
		Curves []struct {
			Name  string  `json:"name"`
			Count int     `json:"count"`
			Zeros int     `json:"zeros"`
			Mean  float64 `json:"mean"`
		} `json:"curves"`
	}
	resp := getJSON(t, ts.URL+"/la716/well/stats", &doc)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Equal(t, "well", doc.File)
	require.Len(t, doc.Curves, 2)
	require.Equal(t, "SP", doc.Curves[1].Name)
	require.Equal(t, 4, doc.Curves[1].Count)
	require.Equal(t, 1, doc.Curves[1].Zeros)
	require.InDelta(t, 2.5, doc.Curves[0].Mean, 1e-9)
}

func TestShowChart(t *testing.T) {
	_, ts := newTestServer(t)

	resp, err := http.Get(ts.URL + "/la716/well/chart")
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Contains(t, resp.Header.Get("Content-Type"), "text/html")

	png, err := http.Get(ts.URL + "/la716/well/chart?format=png&curves=GR")
	require.NoError(t, err)
	defer png.Body.Close()
	require.Equal(t, http.StatusOK, png.StatusCode)
	require.Equal(t, "image/png", png.Header.Get("Content-Type"))

	bad, err := http.Get(ts.URL + "/la716/well/chart?format=svg")
	require.NoError(t, err)
	bad.Body.Close()
	require.Equal(t, http.StatusBadRequest, bad.StatusCode)
}

func TestMiddleware(t *testing.T) {
	_, ts := newTestServer(t)

	resp := getJSON(t, ts.URL+"/la716/well", nil)
	_, err := uuid.Parse(resp.Header.Get(RequestIDHeader))
	require.NoError(t, err)

	id := uuid.NewString()
	req, err := http.NewRequest(http.MethodGet, ts.URL+"/la716/well", nil)
	require.NoError(t, err)
	req.Header.Set(RequestIDHeader, id)
	resp, err = http.DefaultClient.Do(req)
	require.NoError(t, err)
	resp.Body.Close()
	require.Equal(t, id, resp.Header.Get(RequestIDHeader))

	req, err = http.NewRequest(http.MethodOptions, ts.URL+"/la716/well", nil)
	require.NoError(t, err)
	resp, err = http.DefaultClient.Do(req)
	require.NoError(t, err)
	resp.Body.Close()
	require.Equal(t, http.StatusNoContent, resp.StatusCode)
	require.Contains(t, resp.Header.Get("Access-Control-Allow-Methods"), "GET")
}

func TestResolve(t *testing.T) {
	s, _ := newTestServer(t)

	path, err := s.Resolve("packed")
	require.NoError(t, err)
	require.Equal(t, "packed.716.zst", filepath.Base(path))

	_, err = s.Resolve("a/b")
	require.ErrorIs(t, err, errs.ErrInvalidName)
	_, err = s.Resolve("")
	require.ErrorIs(t, err, errs.ErrInvalidName)
	_, err = s.Resolve("ghost")
	require.ErrorIs(t, err, errs.ErrNotFound)
}

func TestNewServer_Errors(t *testing.T) {
	_, err := NewServer(filepath.Join(t.TempDir(), "missing"))
	require.Error(t, err)

	file := filepath.Join(t.TempDir(), "f")
	require.NoError(t, os.WriteFile(file, nil, 0o600))
	_, err = NewServer(file)
	require.Error(t, err)

	_, err = NewServer(t.TempDir(), WithMaxUploadSize(0))
	require.Error(t, err)
}

func TestStatusOf(t *testing.T) {
	require.Equal(t, http.StatusUnprocessableEntity, statusOf(errs.ErrMalformedGeometry))
	require.Equal(t, http.StatusInternalServerError, statusOf(os.ErrPermission))
}
