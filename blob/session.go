package blob

import (
	"fmt"

	"github.com/arloliu/la716/errs"
	"github.com/arloliu/la716/internal/hash"
	"github.com/arloliu/la716/internal/options"
	"github.com/arloliu/la716/section"
)

// DefaultMaxBodySize is the largest body a session accepts unless configured otherwise.
const DefaultMaxBodySize = 1 << 30 // 1GiB

// State is the phase of a decode Session.
type State uint8

const (
	// HeaderPending waits for the 512-byte header buffer.
	HeaderPending State = iota
	// HeaderReady has a header and geometry and waits for the body buffer.
	HeaderReady
	// BodyReady is terminal; header, geometry and body are available.
	BodyReady
)

func (s State) String() string {
	switch s {
	case HeaderPending:
		return "HeaderPending"
	case HeaderReady:
		return "HeaderReady"
	case BodyReady:
		return "BodyReady"
	default:
		return "Unknown"
	}
}

type sessionConfig struct {
	maxBodySize int
}

// SessionOption configures a Session.
type SessionOption = options.Option[*sessionConfig]

// WithMaxBodySize limits the body size a session accepts. SupplyHeader fails
// with ErrBodyTooLarge when the derived geometry exceeds it.
func WithMaxBodySize(n int) SessionOption {
	return options.New(func(c *sessionConfig) error {
		if n <= 0 {
			return fmt.Errorf("max body size must be positive, got %d", n)
		}
		c.maxBodySize = n

		return nil
	})
}

// Session sequences the decoding of one LA716 file.
//
// The header buffer is supplied first; it yields the header and the geometry
// that tells the caller which body range to read next. The body buffer is
// supplied second. A failed step leaves the session in its previous state so
// the caller may retry with a corrected buffer.
//
// Note: A Session is NOT thread-safe. Sessions share no state, so independent
// files can be decoded concurrently with one session each.
type Session struct {
	cfg      sessionConfig
	state    State
	header   section.Header
	geometry section.Geometry
	body     Body
	digest   *hash.Digest
}

// NewSession creates a session in the HeaderPending state.
func NewSession(opts ...SessionOption) (*Session, error) {
	s := &Session{
		cfg:    sessionConfig{maxBodySize: DefaultMaxBodySize},
		state:  HeaderPending,
		digest: hash.NewDigest(),
	}

	if err := options.Apply(&s.cfg, opts...); err != nil {
		return nil, err
	}

	return s, nil
}

// SupplyHeader decodes the header region and derives the body geometry.
//
// Returns:
//   - error: ErrSessionState outside HeaderPending, ErrInvalidHeader,
//     ErrMalformedGeometry or ErrBodyTooLarge
func (s *Session) SupplyHeader(buf []byte) error {
	if s.state != HeaderPending {
		return fmt.Errorf("%w: SupplyHeader in %s", errs.ErrSessionState, s.state)
	}

	h, err := section.ParseHeader(buf)
	if err != nil {
		return err
	}

	g, err := section.DeriveGeometry(h)
	if err != nil {
		return err
	}

	if g.BodySize() > s.cfg.maxBodySize {
		return fmt.Errorf("%w: %d bytes, limit %d", errs.ErrBodyTooLarge, g.BodySize(), s.cfg.maxBodySize)
	}

	s.header = h
	s.geometry = g
	s.digest.Write(buf[:min(len(buf), section.HeaderSize)])
	s.state = HeaderReady

	return nil
}

// SupplyBody decodes the body buffer, which must hold BodyRange's byte count.
//
// Returns:
//   - error: ErrSessionState outside HeaderReady, or ErrInvalidBody
func (s *Session) SupplyBody(buf []byte) error {
	if s.state != HeaderReady {
		return fmt.Errorf("%w: SupplyBody in %s", errs.ErrSessionState, s.state)
	}

	body, err := DecodeBody(buf, s.header, s.geometry)
	if err != nil {
		return err
	}

	s.body = body
	s.digest.Write(buf[:s.geometry.BodySize()])
	s.state = BodyReady

	return nil
}

// BodyRange returns the file offset and length of the body bytes to supply.
//
// Returns:
//   - off: Always the end of the header region
//   - n: Geometry.BodySize()
//   - error: ErrSessionState before the header is decoded
func (s *Session) BodyRange() (off int64, n int, err error) {
	if s.state == HeaderPending {
		return 0, 0, fmt.Errorf("%w: body range unknown in %s", errs.ErrSessionState, s.state)
	}

	return section.HeaderSize, s.geometry.BodySize(), nil
}

// State returns the current state.
func (s *Session) State() State {
	return s.state
}

// Header returns the decoded header; zero before HeaderReady.
func (s *Session) Header() section.Header {
	return s.header
}

// Geometry returns the derived geometry; zero before HeaderReady.
func (s *Session) Geometry() section.Geometry {
	return s.geometry
}

// Body returns the decoded body; empty before BodyReady.
func (s *Session) Body() Body {
	return s.body
}

// File returns the combined result.
//
// Returns:
//   - *File: Header, body, geometry and content fingerprint
//   - error: ErrSessionState before BodyReady
func (s *Session) File(name string) (*File, error) {
	if s.state != BodyReady {
		return nil, fmt.Errorf("%w: result requested in %s", errs.ErrSessionState, s.state)
	}

	return &File{
		Name:        name,
		Header:      s.header,
		Body:        s.body,
		Geometry:    s.geometry,
		Fingerprint: s.digest.Sum(),
	}, nil
}
