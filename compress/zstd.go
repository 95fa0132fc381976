package compress

import "github.com/arloliu/verticat/format"

// ZstdCompressor reads and writes Zstandard streams.
//
// The pure Go implementation (klauspost/compress) is used by default; build
// with the gozstd tag and cgo enabled to use the libzstd bindings instead.
type ZstdCompressor struct{}

var _ Codec = (*ZstdCompressor)(nil)

// NewZstdCompressor creates a new Zstd codec with default settings.
func NewZstdCompressor() ZstdCompressor {
	return ZstdCompressor{}
}

// Type returns format.CompressionZstd.
func (c ZstdCompressor) Type() format.CompressionType {
	return format.CompressionZstd
}
