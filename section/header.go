package section

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/arloliu/la716/encoding"
	"github.com/arloliu/la716/endian"
	"github.com/arloliu/la716/errs"
)

// Header is the decoded 512-byte LA716 header.
//
// The JSON field names match the documents served by the la716 HTTP endpoint.
type Header struct {
	Ecc      uint32  `json:"ecc"`      // byte offset 0-3, checksum/identifier, not validated
	Comp     string  `json:"comp"`     // byte offset 4-83, company
	Well     string  `json:"well"`     // byte offset 84-163, well name
	Numlog   int16   `json:"numlog"`   // byte offset 164-165, number of curves
	B0       int16   `json:"b0"`       // byte offset 166-167, reserved
	Lognames string  `json:"lognames"` // byte offset 168-247, comma-separated curve mnemonics
	Stdep    float32 `json:"stdep"`    // byte offset 248-251, start depth
	Endep    float32 `json:"endep"`    // byte offset 252-255, end depth
	Rlev     float32 `json:"rlev"`     // byte offset 256-259, depth step per sample
	B1       float32 `json:"b1"`       // byte offset 260-263, reserved
	Spcpr    float32 `json:"spcpr"`    // byte offset 264-267, samples per curve per block
	B2       float32 `json:"b2"`       // byte offset 268-271, reserved
}

// Parse parses the header from a byte slice.
//
// A buffer shorter than the 512-byte header region is read as if zero
// padded, so fields past its end decode as zero values.
//
// Parameters:
//   - data: Byte slice containing the header region
//
// Returns:
//   - error: ErrInvalidHeader if data is empty
func (h *Header) Parse(data []byte) error {
	if len(data) < 1 {
		return errs.ErrInvalidHeader
	}
	if len(data) < HeaderSize {
		padded := make([]byte, HeaderSize)
		copy(padded, data)
		data = padded
	}

	engine := endian.GetLittleEndianEngine()

	h.Ecc = engine.Uint32(data[EccOffset : EccOffset+4])
	h.Comp = encoding.SanitizeText(data[CompOffset : CompOffset+textFieldWidth])
	h.Well = encoding.SanitizeText(data[WellOffset : WellOffset+textFieldWidth])
	h.Numlog = endian.Int16(engine, data[NumlogOffset:NumlogOffset+2])
	h.B0 = endian.Int16(engine, data[B0Offset:B0Offset+2])
	h.Lognames = encoding.SanitizeText(data[LognamesOffset : LognamesOffset+textFieldWidth])
	h.Stdep = endian.Float32(engine, data[StdepOffset:StdepOffset+4])
	h.Endep = endian.Float32(engine, data[EndepOffset:EndepOffset+4])
	h.Rlev = endian.Float32(engine, data[RlevOffset:RlevOffset+4])
	h.B1 = endian.Float32(engine, data[B1Offset:B1Offset+4])
	h.Spcpr = endian.Float32(engine, data[SpcprOffset:SpcprOffset+4])
	h.B2 = endian.Float32(engine, data[B2Offset:B2Offset+4])

	return nil
}

// Bytes serializes the Header into a 512-byte header region.
//
// Text fields are GBK encoded and NUL padded, with commas written back as
// spaces; text longer than 80 bytes is truncated. Bytes past offset 271 are zero.
func (h *Header) Bytes() ([]byte, error) {
	b := make([]byte, HeaderSize)
	engine := endian.GetLittleEndianEngine()

	engine.PutUint32(b[EccOffset:], h.Ecc)

	texts := []struct {
		off  int
		text string
	}{
		{CompOffset, h.Comp},
		{WellOffset, h.Well},
		{LognamesOffset, h.Lognames},
	}
	for _, f := range texts {
		field, err := encoding.EncodeTextField(strings.ReplaceAll(f.text, ",", " "), textFieldWidth)
		if err != nil {
			return nil, fmt.Errorf("encode text at offset %d: %w", f.off, err)
		}
		copy(b[f.off:f.off+textFieldWidth], field)
	}

	endian.PutInt16(engine, b[NumlogOffset:], h.Numlog)
	endian.PutInt16(engine, b[B0Offset:], h.B0)
	endian.PutFloat32(engine, b[StdepOffset:], h.Stdep)
	endian.PutFloat32(engine, b[EndepOffset:], h.Endep)
	endian.PutFloat32(engine, b[RlevOffset:], h.Rlev)
	endian.PutFloat32(engine, b[B1Offset:], h.B1)
	endian.PutFloat32(engine, b[SpcprOffset:], h.Spcpr)
	endian.PutFloat32(engine, b[B2Offset:], h.B2)

	return b, nil
}

// headerFields has the fields of Header without its MarshalJSON method.
type headerFields Header

// MarshalJSON encodes the header with the float fields written as null when
// they hold NaN or an infinity. The reserved b1 and b2 fields are not
// validated and may carry any bit pattern.
func (h Header) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		headerFields
		Stdep *float32 `json:"stdep"`
		Endep *float32 `json:"endep"`
		Rlev  *float32 `json:"rlev"`
		B1    *float32 `json:"b1"`
		Spcpr *float32 `json:"spcpr"`
		B2    *float32 `json:"b2"`
	}{
		headerFields: headerFields(h),
		Stdep:        finite(h.Stdep),
		Endep:        finite(h.Endep),
		Rlev:         finite(h.Rlev),
		B1:           finite(h.B1),
		Spcpr:        finite(h.Spcpr),
		B2:           finite(h.B2),
	})
}

func finite(v float32) *float32 {
	if !encoding.IsFinite32(v) {
		return nil
	}

	return &v
}

// CurveCount returns numlog as an int.
func (h *Header) CurveCount() int {
	return int(h.Numlog)
}

// CurveNames splits Lognames into mnemonics. The result may be shorter or
// longer than CurveCount when the writer left names out or padded the field.
func (h *Header) CurveNames() []string {
	if h.Lognames == "" {
		return nil
	}

	return strings.Split(h.Lognames, ",")
}

// CurveName returns the mnemonic of curve index i, or a positional name
// such as "curve3" when the header carries no name for it.
func (h *Header) CurveName(i int) string {
	names := h.CurveNames()
	if i >= 0 && i < len(names) && names[i] != "" {
		return names[i]
	}

	return fmt.Sprintf("curve%d", i)
}

// ParseHeader parses a Header from a byte slice.
//
// Parameters:
//   - data: Byte slice containing the header region
//
// Returns:
//   - Header: Parsed header
//   - error: ErrInvalidHeader; no partial header is returned
func ParseHeader(data []byte) (Header, error) {
	h := Header{}
	if err := h.Parse(data); err != nil {
		return Header{}, err
	}

	return h, nil
}
