//go:build gozstd && cgo

package compress

import (
	"io"

	"github.com/valyala/gozstd"
)

// NewReader returns a streaming Zstandard decoder over r.
func (c ZstdCompressor) NewReader(r io.Reader) (io.ReadCloser, error) {
	zr := gozstd.NewReader(r)

	return readCloser{Reader: zr, release: zr.Release}, nil
}

// NewWriter returns a streaming Zstandard encoder writing to w.
func (c ZstdCompressor) NewWriter(w io.Writer) (io.WriteCloser, error) {
	return &gozstdWriter{Writer: gozstd.NewWriterLevel(w, gozstd.DefaultCompressionLevel)}, nil
}

type gozstdWriter struct {
	*gozstd.Writer
}

// Close finishes the frame and releases the native encoder.
func (w *gozstdWriter) Close() error {
	err := w.Writer.Close()
	w.Writer.Release()

	return err
}

// readCloser pairs a reader with a release function.
type readCloser struct {
	io.Reader
	release func()
}

func (rc readCloser) Close() error {
	if rc.release != nil {
		rc.release()
	}

	return nil
}
