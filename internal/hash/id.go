// Package hash computes content fingerprints of LA716 files.
package hash

import (
	"strconv"

	"github.com/cespare/xxhash/v2"
)

// Fingerprint computes the xxHash64 of the given byte runs as if they were concatenated.
func Fingerprint(parts ...[]byte) uint64 {
	d := xxhash.New()
	for _, p := range parts {
		_, _ = d.Write(p)
	}

	return d.Sum64()
}

// ETag formats a fingerprint as a strong HTTP entity tag.
func ETag(fp uint64) string {
	return `"` + strconv.FormatUint(fp, 16) + `"`
}

// Digest accumulates a fingerprint across several writes.
type Digest struct {
	d *xxhash.Digest
}

// NewDigest creates an empty Digest.
func NewDigest() *Digest {
	return &Digest{d: xxhash.New()}
}

// Write adds b to the fingerprint.
func (d *Digest) Write(b []byte) {
	_, _ = d.d.Write(b)
}

// Sum returns the fingerprint of everything written so far.
func (d *Digest) Sum() uint64 {
	return d.d.Sum64()
}
