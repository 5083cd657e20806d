// Package compress provides the codecs used for compressed LA716 archives.
//
// Well logs are frequently shipped as compressed archives (well.716.zst,
// well.716.s2, well.716.lz4). The source package decompresses such archives
// into memory before handing the bytes to a decode session, and the la716 pack
// command produces them.
//
// # Supported Algorithms
//
//   - None (format.CompressionNone): plain .716 files, passed through
//   - Zstd (format.CompressionZstd): standard zstd frames; pure Go by default,
//     libzstd through github.com/valyala/gozstd when built with -tags gozstd
//   - S2 (format.CompressionS2): S2 stream format
//   - LZ4 (format.CompressionLZ4): LZ4 frame format
//
// # Usage
//
//	codec, err := compress.GetCodec(format.CompressionFromExt(path))
//	if err != nil {
//	    return err
//	}
//	raw, err := codec.Decompress(archive)
//
// # Thread Safety
//
// All built-in codecs are stateless values backed by pooled encoders and
// decoders and are safe for concurrent use.
package compress
