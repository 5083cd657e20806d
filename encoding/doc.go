// Package encoding decodes the two kinds of payload found in an LA716 file:
// fixed-width GBK text fields and runs of float32 curve samples.
//
// Text fields (company, well and curve mnemonic list) are reduced by
// SanitizeText to a comma-separated token list. Samples are read by
// SampleDecoder, which maps the missing-value sentinel -9999 to 0.
//
// SampleEncoder and EncodeTextField produce the same layouts and are used to
// build fixtures and archives.
package encoding
