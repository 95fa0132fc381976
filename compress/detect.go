package compress

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io"

	"github.com/arloliu/verticat/format"
)

// sniffSize is the longest magic prefix checked by Detect.
const sniffSize = 10

var (
	zstdMagic   = []byte{0x28, 0xB5, 0x2F, 0xFD}
	lz4Magic    = []byte{0x04, 0x22, 0x4D, 0x18}
	s2Magic     = []byte{0xFF, 0x06, 0x00, 0x00, 'S', '2', 's', 'T', 'w', 'O'}
	snappyMagic = []byte{0xFF, 0x06, 0x00, 0x00, 's', 'N', 'a', 'P', 'p', 'Y'}
)

// Detect identifies the compression of a stream from its first bytes.
// Anything that is not a known compressed stream, a native file included,
// is reported as format.CompressionNone.
func Detect(prefix []byte) format.CompressionType {
	switch {
	case bytes.HasPrefix(prefix, zstdMagic):
		return format.CompressionZstd
	case bytes.HasPrefix(prefix, lz4Magic):
		return format.CompressionLZ4
	case bytes.HasPrefix(prefix, s2Magic), bytes.HasPrefix(prefix, snappyMagic):
		return format.CompressionS2
	default:
		return format.CompressionNone
	}
}

// NewDetectingReader peeks at the start of r, picks the matching codec and
// returns a reader of the decompressed content along with the detected type.
func NewDetectingReader(r io.Reader) (io.ReadCloser, format.CompressionType, error) {
	br := bufio.NewReader(r)

	prefix, err := br.Peek(sniffSize)
	if err != nil && !errors.Is(err, io.EOF) {
		return nil, 0, fmt.Errorf("detect compression: %w", err)
	}

	ct := Detect(prefix)
	codec, err := GetCodec(ct)
	if err != nil {
		return nil, 0, err
	}

	rc, err := codec.NewReader(br)
	if err != nil {
		return nil, 0, err
	}

	return rc, ct, nil
}
