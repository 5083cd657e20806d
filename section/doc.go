// Package section defines the fixed binary layout of an LA716 file: the
// 512-byte header and the block geometry of the data body that follows it.
//
// # File Structure
//
//	┌─────────────────────────────────────────────────────────┐
//	│ Header (512 bytes, fixed)                               │
//	│  - fields at offsets 0-271, rest reserved               │
//	├─────────────────────────────────────────────────────────┤
//	│ Block 0 (spcpr × numlog × 4 bytes)                      │
//	│  - curve 0: spcpr float32 samples                       │
//	│  - curve 1: spcpr float32 samples                       │
//	│  - ...                                                  │
//	├─────────────────────────────────────────────────────────┤
//	│ Block 1 ... Block blockCount-1                          │
//	└─────────────────────────────────────────────────────────┘
//
// # Header Format
//
//	Bytes   | Field    | Type    | Description
//	--------|----------|---------|------------------------------------
//	0-3     | ecc      | uint32  | checksum/identifier (not validated)
//	4-83    | comp     | text    | company, GBK
//	84-163  | well     | text    | well name, GBK
//	164-165 | numlog   | int16   | number of curves (1-40)
//	166-167 | b0       | int16   | reserved
//	168-247 | lognames | text    | curve mnemonics, GBK
//	248-251 | stdep    | float32 | start depth
//	252-255 | endep    | float32 | end depth
//	256-259 | rlev     | float32 | depth step per sample
//	260-263 | b1       | float32 | reserved
//	264-267 | spcpr    | float32 | samples per curve per block
//	268-271 | b2       | float32 | reserved
//
// All numeric fields are little-endian. Text fields are sanitized with
// encoding.SanitizeText.
//
// # Geometry
//
//	blockCount      = 1 + floor((endep - stdep) / rlev / spcpr)
//	blockByteLength = spcpr × numlog × 4
//	bodySize        = blockCount × blockByteLength
package section
