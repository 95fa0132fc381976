package compress

import (
	"io"

	"github.com/arloliu/verticat/format"
	"github.com/klauspost/compress/s2"
)

// S2Compressor reads and writes S2 streams. The reader also accepts
// framed Snappy streams.
type S2Compressor struct{}

var _ Codec = (*S2Compressor)(nil)

// NewS2Compressor creates a new S2 codec.
func NewS2Compressor() S2Compressor {
	return S2Compressor{}
}

// Type returns format.CompressionS2.
func (c S2Compressor) Type() format.CompressionType {
	return format.CompressionS2
}

// NewReader returns a streaming S2 decoder over r.
func (c S2Compressor) NewReader(r io.Reader) (io.ReadCloser, error) {
	return io.NopCloser(s2.NewReader(r)), nil
}

// NewWriter returns a streaming S2 encoder writing to w.
func (c S2Compressor) NewWriter(w io.Writer) (io.WriteCloser, error) {
	return s2.NewWriter(w, s2.WriterConcurrency(1)), nil
}
