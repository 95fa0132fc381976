// Package format holds the small enumerations shared across verticat packages.
package format

import (
	"fmt"
	"strings"

	"github.com/arloliu/verticat/errs"
)

// CompressionType identifies the outer compression applied to a whole native file.
type CompressionType uint8

const (
	CompressionNone CompressionType = 0x1 // CompressionNone represents a plain native file.
	CompressionZstd CompressionType = 0x2 // CompressionZstd represents a Zstandard stream.
	CompressionS2   CompressionType = 0x3 // CompressionS2 represents an S2 stream.
	CompressionLZ4  CompressionType = 0x4 // CompressionLZ4 represents an LZ4 frame stream.
)

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

// Extension returns the conventional file name suffix for the compression type,
// including the leading dot. CompressionNone has no suffix.
func (c CompressionType) Extension() string {
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

// ParseCompressionType parses a compression name as accepted on the command line.
// Matching is case-insensitive; the empty string means CompressionNone.
func ParseCompressionType(name string) (CompressionType, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "none":
		return CompressionNone, nil
	case "zstd", "zst":
		return CompressionZstd, nil
	case "s2":
		return CompressionS2, nil
	case "lz4":
		return CompressionLZ4, nil
	default:
		return 0, fmt.Errorf("%w: %q", errs.ErrUnsupportedCompression, name)
	}
}
