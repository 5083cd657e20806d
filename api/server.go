// Package api serves decoded LA716 files over HTTP.
//
// Routes:
//
//	GET  /la716/{file}        decoded file as {"header": ..., "body": ...}
//	POST /la716               decode an uploaded file (multipart field "file")
//	GET  /la716/{file}/stats  per-curve statistics
//	GET  /la716/{file}/chart  curve chart, HTML or ?format=png
//
// {file} names a file under the server root without its ".716" extension;
// compressed variants such as well.716.zst are found as well.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/arloliu/la716/blob"
	"github.com/arloliu/la716/chart"
	"github.com/arloliu/la716/errs"
	"github.com/arloliu/la716/format"
	"github.com/arloliu/la716/internal/hash"
	"github.com/arloliu/la716/internal/monitoring"
	"github.com/arloliu/la716/internal/options"
	"github.com/arloliu/la716/section"
	"github.com/arloliu/la716/source"
	"github.com/arloliu/la716/stats"
)

// DefaultMaxUploadSize bounds POST /la716 request bodies.
const DefaultMaxUploadSize = 256 << 20 // 256MiB

type serverConfig struct {
	maxBodySize   int
	maxUploadSize int64
	assetsHost    string
}

// Option configures a Server.
type Option = options.Option[*serverConfig]

// WithMaxBodySize limits the data body size of served files.
func WithMaxBodySize(n int) Option {
	return options.New(func(c *serverConfig) error {
		if n <= 0 {
			return fmt.Errorf("max body size must be positive, got %d", n)
		}
		c.maxBodySize = n

		return nil
	})
}

// WithMaxUploadSize limits the size of uploaded files.
func WithMaxUploadSize(n int64) Option {
	return options.New(func(c *serverConfig) error {
		if n <= 0 {
			return fmt.Errorf("max upload size must be positive, got %d", n)
		}
		c.maxUploadSize = n

		return nil
	})
}

// WithAssetsHost sets where chart pages load the echarts scripts from.
func WithAssetsHost(host string) Option {
	return options.NoError(func(c *serverConfig) {
		c.assetsHost = host
	})
}

// Server resolves file names under a root directory and serves them decoded.
// It is safe for concurrent use; every request decodes with its own session.
type Server struct {
	root string
	cfg  serverConfig
}

// NewServer creates a Server for the files under root.
func NewServer(root string, opts ...Option) (*Server, error) {
	info, err := os.Stat(root)
	if err != nil {
		return nil, fmt.Errorf("server root: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("server root %s is not a directory", root)
	}

	s := &Server{
		root: root,
		cfg: serverConfig{
			maxBodySize:   blob.DefaultMaxBodySize,
			maxUploadSize: DefaultMaxUploadSize,
		},
	}
	if err := options.Apply(&s.cfg, opts...); err != nil {
		return nil, err
	}

	return s, nil
}

// ServeMux returns the route table without middleware.
func (s *Server) ServeMux() *http.ServeMux {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /la716/{file}", s.showFile)
	mux.HandleFunc("POST /la716", s.uploadFile)
	mux.HandleFunc("GET /la716/{file}/stats", s.showStats)
	mux.HandleFunc("GET /la716/{file}/chart", s.showChart)

	return mux
}

// Handler returns the routes wrapped in the request ID, CORS, compression
// and access log middleware.
func (s *Server) Handler() http.Handler {
	return LoggingMiddleware(RequestIDMiddleware(CORSMiddleware(CompressionMiddleware(s.ServeMux()))))
}

// Resolve maps a file name to a path under the root. It tries the plain
// ".716" file first, then each compressed variant.
//
// Returns:
//   - string: Existing path
//   - error: ErrInvalidName for names that could escape the root, ErrNotFound otherwise
func (s *Server) Resolve(name string) (string, error) {
	if !validName(name) {
		return "", fmt.Errorf("%w: %q", errs.ErrInvalidName, name)
	}

	base := filepath.Join(s.root, name+format.FileExt)
	candidates := []string{base}
	for _, ct := range []format.CompressionType{format.CompressionZstd, format.CompressionS2, format.CompressionLZ4} {
		candidates = append(candidates, base+ct.Ext())
	}

	for _, path := range candidates {
		if info, err := os.Stat(path); err == nil && info.Mode().IsRegular() {
			return path, nil
		}
	}

	return "", fmt.Errorf("%w: %s", errs.ErrNotFound, name)
}

func validName(name string) bool {
	if name == "" || name == "." || name == ".." || strings.HasPrefix(name, ".") {
		return false
	}
	if strings.ContainsAny(name, `/\`) || strings.ContainsRune(name, 0) {
		return false
	}

	return filepath.IsLocal(name)
}

// decodeNamed resolves and decodes the file named by the {file} path value.
func (s *Server) decodeNamed(ctx context.Context, name string) (*blob.File, error) {
	path, err := s.Resolve(name)
	if err != nil {
		return nil, err
	}

	src, err := source.Open(path, source.WithMaxSize(section.HeaderSize+s.cfg.maxBodySize))
	if err != nil {
		return nil, err
	}
	defer src.Close()

	f, err := blob.Decode(ctx, src, blob.WithMaxBodySize(s.cfg.maxBodySize))
	if err != nil {
		return nil, err
	}
	f.Name = name

	return f, nil
}

func (s *Server) showFile(w http.ResponseWriter, r *http.Request) {
	f, err := s.decodeNamed(r.Context(), r.PathValue("file"))
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	etag := hash.ETag(f.Fingerprint)
	w.Header().Set("ETag", etag)
	if match := r.Header.Get("If-None-Match"); match != "" && etagMatch(match, etag) {
		w.WriteHeader(http.StatusNotModified)
		return
	}

	s.writeJSON(w, http.StatusOK, f)
}

func (s *Server) uploadFile(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, s.cfg.maxUploadSize)

	file, fh, err := r.FormFile("file")
	if err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			s.writeJSONError(w, http.StatusRequestEntityTooLarge, err.Error())
			return
		}
		s.writeJSONError(w, http.StatusBadRequest, fmt.Sprintf("missing multipart field \"file\": %v", err))
		return
	}
	defer file.Close()

	src := source.FromReaderAt(fh.Filename, file, fh.Size)
	f, err := blob.Decode(r.Context(), src, blob.WithMaxBodySize(s.cfg.maxBodySize))
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	w.Header().Set("ETag", hash.ETag(f.Fingerprint))
	s.writeJSON(w, http.StatusOK, f)
}

type statsResponse struct {
	File   string             `json:"file"`
	Curves []stats.CurveStats `json:"curves"`
}

func (s *Server) showStats(w http.ResponseWriter, r *http.Request) {
	f, err := s.decodeNamed(r.Context(), r.PathValue("file"))
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	s.writeJSON(w, http.StatusOK, statsResponse{File: f.Name, Curves: stats.Summarize(f)})
}

func (s *Server) showChart(w http.ResponseWriter, r *http.Request) {
	f, err := s.decodeNamed(r.Context(), r.PathValue("file"))
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	q := r.URL.Query()
	var opts []chart.Option
	if curves := q.Get("curves"); curves != "" {
		opts = append(opts, chart.WithCurves(strings.Split(curves, ",")...))
	}
	if s.cfg.assetsHost != "" {
		opts = append(opts, chart.WithAssetsHost(s.cfg.assetsHost))
	}

	var buf bytes.Buffer
	contentType := "text/html; charset=utf-8"
	switch q.Get("format") {
	case "", "html":
		err = chart.RenderHTML(&buf, f, opts...)
	case "png":
		contentType = "image/png"
		err = chart.RenderPNG(&buf, f, opts...)
	default:
		s.writeJSONError(w, http.StatusBadRequest, fmt.Sprintf("unknown chart format %q", q.Get("format")))
		return
	}
	if err != nil {
		s.writeJSONError(w, http.StatusBadRequest, fmt.Sprintf("render error: %v", err))
		return
	}

	w.Header().Set("Content-Type", contentType)
	_, _ = w.Write(buf.Bytes())
}

func etagMatch(header, etag string) bool {
	for _, tag := range strings.Split(header, ",") {
		tag = strings.TrimSpace(tag)
		if tag == "*" || strings.TrimPrefix(tag, "W/") == etag {
			return true
		}
	}

	return false
}

// statusOf maps decode errors to HTTP status codes.
func statusOf(err error) int {
	switch {
	case errors.Is(err, errs.ErrInvalidName):
		return http.StatusBadRequest
	case errors.Is(err, errs.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, errs.ErrInvalidHeader),
		errors.Is(err, errs.ErrInvalidBody),
		errors.Is(err, errs.ErrMalformedGeometry),
		errors.Is(err, errs.ErrBodyTooLarge),
		errors.Is(err, errs.ErrShortRead),
		errors.Is(err, errs.ErrUnsupportedCompression):
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}

func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := statusOf(err)
	if status == http.StatusInternalServerError {
		monitoring.Logf("api: %s %s [%s]: %v", r.Method, r.URL.Path, RequestID(r.Context()), err)
	}
	s.writeJSONError(w, status, err.Error())
}

func (s *Server) writeJSONError(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": msg})
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	data, err := json.Marshal(v)
	if err != nil {
		s.writeJSONError(w, http.StatusInternalServerError, fmt.Sprintf("encode response: %v", err))
		return
	}

	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_, _ = w.Write(data)
}
