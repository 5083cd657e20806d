package format

import (
	"path/filepath"
	"strings"
)

type CompressionType uint8

const (
	CompressionNone CompressionType = 0x1 // CompressionNone represents a plain LA716 file.
	CompressionZstd CompressionType = 0x2 // CompressionZstd represents a Zstandard compressed archive.
	CompressionS2   CompressionType = 0x3 // CompressionS2 represents an S2 compressed archive.
	CompressionLZ4  CompressionType = 0x4 // CompressionLZ4 represents an LZ4 block compressed archive.
)

// FileExt is the extension of a plain LA716 file.
const FileExt = ".716"

var compressionExts = map[string]CompressionType{
	".zst":  CompressionZstd,
	".zstd": CompressionZstd,
	".s2":   CompressionS2,
	".lz4":  CompressionLZ4,
}

func (c CompressionType) String() string {
	switch c {
	case CompressionNone:
		return "None"
	case CompressionZstd:
		return "Zstd"
	case CompressionS2:
		return "S2"
	case CompressionLZ4:
		return "LZ4"
	default:
		return "Unknown"
	}
}

// Ext returns the file extension appended to a compressed archive, or "" for CompressionNone.
func (c CompressionType) Ext() string {
	switch c {
	case CompressionZstd:
		return ".zst"
	case CompressionS2:
		return ".s2"
	case CompressionLZ4:
		return ".lz4"
	default:
		return ""
	}
}

// CompressionFromExt reports the compression of a file from its trailing extension.
// Names without a known compression extension are treated as plain files.
func CompressionFromExt(name string) CompressionType {
	ext := strings.ToLower(filepath.Ext(name))
	if ct, ok := compressionExts[ext]; ok {
		return ct
	}

	return CompressionNone
}

// ParseCompression parses a codec name as accepted on the command line.
func ParseCompression(name string) (CompressionType, bool) {
	switch strings.ToLower(name) {
	case "", "none":
		return CompressionNone, true
	case "zstd", "zst":
		return CompressionZstd, true
	case "s2":
		return CompressionS2, true
	case "lz4":
		return CompressionLZ4, true
	default:
		return 0, false
	}
}
