// Package blob decodes the data body of an LA716 file and sequences a whole
// file decode.
//
// # Core Types
//
//   - Session: the HeaderPending → HeaderReady → BodyReady state machine
//   - Body: per-curve float32 samples, -9999 replaced by 0
//   - File: header, body, geometry and content fingerprint of one file
//
// # Decoding Workflow
//
// Decode drives a Session against a source.Source:
//
//	f, err := blob.Decode(ctx, source.FromBytes("well.716", data))
//
// Callers that fetch bytes themselves use the Session directly:
//
//	sess, _ := blob.NewSession(blob.WithMaxBodySize(64 << 20))
//	if err := sess.SupplyHeader(head); err != nil {
//	    return err
//	}
//	off, n, _ := sess.BodyRange()
//	if err := sess.SupplyBody(readRange(off, n)); err != nil {
//	    return err
//	}
//	f, _ := sess.File("well.716")
//
// # Body Layout
//
// The body is BlockCount blocks of BlockByteLength bytes. Sample k of curve j
// in block i sits at byte offset i*BlockByteLength + j*spcpr*4 + k*4, and is
// stored in the curve's sample slice at index i*spcpr + k.
//
// # Thread Safety
//
// A Session is not thread-safe. Decoded Files are immutable once returned and
// can be shared between goroutines.
package blob
