package source

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"sync"

	"github.com/arloliu/la716/errs"
)

// HTTPSource reads a remote file with HTTP Range requests.
//
// Servers that ignore Range and answer 200 are tolerated: the leading bytes
// are discarded, which costs a full download per read.
type HTTPSource struct {
	client *http.Client
	url    string

	sizeOnce sync.Once
	size     int64
	sizeErr  error
}

var _ Source = (*HTTPSource)(nil)

// NewHTTP creates a source for url. A nil client uses http.DefaultClient.
func NewHTTP(client *http.Client, url string) *HTTPSource {
	if client == nil {
		client = http.DefaultClient
	}

	return &HTTPSource{client: client, url: url}
}

// Name returns the URL.
func (s *HTTPSource) Name() string {
	return s.url
}

// Size issues a HEAD request once and caches the Content-Length.
func (s *HTTPSource) Size(ctx context.Context) (int64, error) {
	s.sizeOnce.Do(func() {
		s.size, s.sizeErr = s.head(ctx)
	})

	return s.size, s.sizeErr
}

func (s *HTTPSource) head(ctx context.Context) (int64, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodHead, s.url, nil)
	if err != nil {
		return 0, err
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return 0, err
	}
	defer resp.Body.Close()

	if err := checkStatus(s.url, resp); err != nil {
		return 0, err
	}
	if resp.ContentLength < 0 {
		return 0, fmt.Errorf("%s: server did not report Content-Length", s.url)
	}

	return resp.ContentLength, nil
}

// ReadAt fetches bytes [off, off+len(p)) with a single ranged GET.
func (s *HTTPSource) ReadAt(ctx context.Context, p []byte, off int64) (int, error) {
	if len(p) == 0 {
		return 0, nil
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.url, nil)
	if err != nil {
		return 0, err
	}
	req.Header.Set("Range", fmt.Sprintf("bytes=%d-%d", off, off+int64(len(p))-1))

	resp, err := s.client.Do(req)
	if err != nil {
		return 0, err
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusPartialContent:
	case http.StatusOK:
		if _, err := io.CopyN(io.Discard, resp.Body, off); err != nil {
			return 0, err
		}
	case http.StatusRequestedRangeNotSatisfiable:
		return 0, io.EOF
	default:
		return 0, checkStatus(s.url, resp)
	}

	return io.ReadFull(resp.Body, p)
}

// Close is a no-op; connections belong to the client.
func (s *HTTPSource) Close() error {
	return nil
}

func checkStatus(url string, resp *http.Response) error {
	switch {
	case resp.StatusCode == http.StatusNotFound:
		return fmt.Errorf("%w: %s", errs.ErrNotFound, url)
	case resp.StatusCode >= 200 && resp.StatusCode < 300:
		return nil
	default:
		return fmt.Errorf("%s: unexpected status %s", url, resp.Status)
	}
}
