package encoding

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/encoding/simplifiedchinese"
)

// TextFieldSize is the fixed width of the company, well and curve-name fields.
const TextFieldSize = 80

// jsSpace is the whitespace class shared by the filter and the comma collapse.
// It covers ASCII whitespace plus the Unicode separators that GBK text carries,
// notably the ideographic space U+3000.
const jsSpace = `\s\v\p{Zs}\x{FEFF}\x{2028}\x{2029}`

var (
	disallowedRunes = regexp.MustCompile(`[^\x{4E00}-\x{9FA5}\w` + jsSpace + `]`)
	tagSequence     = regexp.MustCompile(`</?.+?>`)
	lineBreaks      = regexp.MustCompile(`[\r\n]`)
	spaceRuns       = regexp.MustCompile(`[` + jsSpace + `]+`)
)

// mnemonicPadding lists the curve mnemonics that upstream writers concatenate
// without separators, with the replacement that restores a gap around them.
// Order matters: each replacement is trimmed before the next one runs.
var mnemonicPadding = []struct {
	mnemonic    string
	replacement string
}{
	{"CALI", "CALI  "},
	{"R025", " R025 "},
	{"BZSP", " BZSP "},
	{"R2M", " R2M "},
}

// SanitizeText decodes a fixed-width GBK text field and reduces it to a
// comma-separated token list.
//
// The steps are: GBK decode and trim; drop every rune that is neither a CJK
// ideograph, a word character nor whitespace; drop <...> tag sequences and line
// breaks; pad the known concatenated mnemonics; collapse whitespace runs to a
// single comma. SanitizeText never fails. Bytes that are not valid GBK decode
// to U+FFFD and are dropped by the rune filter.
//
// Example: the bytes "CALIBZSP" yield "CALI,BZSP".
func SanitizeText(raw []byte) string {
	decoded, err := simplifiedchinese.GBK.NewDecoder().Bytes(raw)
	if err != nil {
		decoded = raw
	}

	return sanitize(string(decoded))
}

func sanitize(s string) string {
	s = trim(s)
	s = trim(disallowedRunes.ReplaceAllString(s, ""))
	s = trim(tagSequence.ReplaceAllString(s, ""))
	s = trim(lineBreaks.ReplaceAllString(s, ""))

	for _, p := range mnemonicPadding {
		s = trim(strings.ReplaceAll(s, p.mnemonic, p.replacement))
	}

	return trim(spaceRuns.ReplaceAllString(s, ","))
}

// trim strips the runes of the jsSpace class from both ends of s.
func trim(s string) string {
	return strings.TrimFunc(s, isSpace)
}

// isSpace reports whether r belongs to the jsSpace class.
func isSpace(r rune) bool {
	switch r {
	case '\t', '\n', '\v', '\f', '\r', '\uFEFF', '\u2028', '\u2029':
		return true
	}

	return unicode.Is(unicode.Zs, r)
}

// EncodeTextField encodes s as GBK into a NUL-padded field of exactly size bytes.
// Text longer than the field is truncated at a character boundary.
func EncodeTextField(s string, size int) ([]byte, error) {
	field := make([]byte, size)

	encoded, err := simplifiedchinese.GBK.NewEncoder().String(s)
	if err != nil {
		return nil, err
	}

	n := 0
	for n < len(encoded) {
		width := 1
		if encoded[n] > 0x80 {
			width = 2
		}
		if n+width > size {
			break
		}
		n += width
	}
	copy(field, encoded[:n])

	return field, nil
}
