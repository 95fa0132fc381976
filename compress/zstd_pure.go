//go:build !(gozstd && cgo)

package compress

import (
	"fmt"
	"io"

	"github.com/klauspost/compress/zstd"
)

// NewReader returns a streaming Zstandard decoder over r.
func (c ZstdCompressor) NewReader(r io.Reader) (io.ReadCloser, error) {
	decoder, err := zstd.NewReader(r,
		zstd.WithDecoderConcurrency(1), // rows are pulled sequentially
		zstd.WithDecoderLowmem(true),
	)
	if err != nil {
		return nil, fmt.Errorf("zstd decoder: %w", err)
	}

	return decoder.IOReadCloser(), nil
}

// NewWriter returns a streaming Zstandard encoder writing to w.
func (c ZstdCompressor) NewWriter(w io.Writer) (io.WriteCloser, error) {
	encoder, err := zstd.NewWriter(w,
		zstd.WithEncoderLevel(zstd.SpeedDefault),
		zstd.WithEncoderConcurrency(1),
	)
	if err != nil {
		return nil, fmt.Errorf("zstd encoder: %w", err)
	}

	return encoder, nil
}
