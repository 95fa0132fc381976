package compress

import (
	"fmt"
	"io"

	"github.com/arloliu/verticat/errs"
	"github.com/arloliu/verticat/format"
)

// Decompressor wraps a compressed input stream.
//
// The returned reader yields the decompressed bytes lazily; nothing is
// buffered beyond the codec's own window. Closing it releases codec state but
// never closes the underlying reader.
type Decompressor interface {
	NewReader(r io.Reader) (io.ReadCloser, error)
}

// Compressor wraps an output stream.
//
// Close must be called to flush the final frame; it does not close the
// underlying writer.
type Compressor interface {
	NewWriter(w io.Writer) (io.WriteCloser, error)
}

// Codec combines both directions for one compression type.
type Codec interface {
	Compressor
	Decompressor
	Type() format.CompressionType
}

// CreateCodec is a factory function that creates a Codec for the given type.
//
// Parameters:
//   - compressionType: Type of compression (None, Zstd, S2, or LZ4)
//   - target: Description of target usage (for error messages)
func CreateCodec(compressionType format.CompressionType, target string) (Codec, error) {
	switch compressionType {
	case format.CompressionNone:
		return NewNoOpCompressor(), nil
	case format.CompressionZstd:
		return NewZstdCompressor(), nil
	case format.CompressionS2:
		return NewS2Compressor(), nil
	case format.CompressionLZ4:
		return NewLZ4Compressor(), nil
	default:
		return nil, fmt.Errorf("%w: invalid %s compression: %s", errs.ErrUnsupportedCompression, target, compressionType)
	}
}

var builtinCodecs = map[format.CompressionType]Codec{
	format.CompressionNone: NewNoOpCompressor(),
	format.CompressionZstd: NewZstdCompressor(),
	format.CompressionS2:   NewS2Compressor(),
	format.CompressionLZ4:  NewLZ4Compressor(),
}

// GetCodec retrieves the built-in Codec for the specified compression type.
func GetCodec(compressionType format.CompressionType) (Codec, error) {
	if codec, ok := builtinCodecs[compressionType]; ok {
		return codec, nil
	}

	return nil, fmt.Errorf("%w: %s", errs.ErrUnsupportedCompression, compressionType)
}

// nopWriteCloser adds a no-op Close to a writer.
type nopWriteCloser struct {
	io.Writer
}

func (nopWriteCloser) Close() error {
	return nil
}
