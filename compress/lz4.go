package compress

import (
	"io"

	"github.com/arloliu/verticat/format"
	"github.com/pierrec/lz4/v4"
)

// LZ4Compressor reads and writes LZ4 frame streams.
type LZ4Compressor struct{}

var _ Codec = (*LZ4Compressor)(nil)

// NewLZ4Compressor creates a new LZ4 codec.
func NewLZ4Compressor() LZ4Compressor {
	return LZ4Compressor{}
}

// Type returns format.CompressionLZ4.
func (c LZ4Compressor) Type() format.CompressionType {
	return format.CompressionLZ4
}

// NewReader returns a streaming LZ4 frame decoder over r.
func (c LZ4Compressor) NewReader(r io.Reader) (io.ReadCloser, error) {
	return io.NopCloser(lz4.NewReader(r)), nil
}

// NewWriter returns a streaming LZ4 frame encoder writing to w.
//
// Block checksums are disabled; the frame content checksum is kept.
func (c LZ4Compressor) NewWriter(w io.Writer) (io.WriteCloser, error) {
	zw := lz4.NewWriter(w)
	if err := zw.Apply(lz4.ConcurrencyOption(1), lz4.ChecksumOption(true)); err != nil {
		return nil, err
	}

	return zw, nil
}
