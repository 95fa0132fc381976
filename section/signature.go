package section

import (
	"bytes"
	"fmt"

	"github.com/arloliu/verticat/errs"
	"github.com/arloliu/verticat/internal/bytereader"
)

// FileSignature is the preamble at offset 0 of every native file.
//
// The bytes are stored verbatim so that re-emitted files carry exactly the
// preamble that was read.
type FileSignature struct {
	raw [SignatureSize]byte
}

// NewFileSignature returns the standard native file signature.
func NewFileSignature() FileSignature {
	return FileSignature{raw: nativeSignature}
}

// ParseFileSignature consumes SignatureSize bytes from r and validates them.
//
// Returns errs.ErrBadSignature if the input ends early or the bytes do not
// match the native file magic.
func ParseFileSignature(r *bytereader.Reader) (FileSignature, error) {
	data, err := r.ReadFull(SignatureSize)
	if err != nil {
		return FileSignature{}, fmt.Errorf("%w: %w", errs.ErrBadSignature, err)
	}

	var sig FileSignature
	copy(sig.raw[:], data)
	if !sig.IsValid() {
		return FileSignature{}, fmt.Errorf("%w: got % x", errs.ErrBadSignature, data)
	}

	return sig, nil
}

// IsValid reports whether the stored bytes match the native file magic.
func (s FileSignature) IsValid() bool {
	return bytes.Equal(s.raw[:], nativeSignature[:])
}

// Bytes returns a copy of the stored signature bytes.
func (s FileSignature) Bytes() []byte {
	b := make([]byte, SignatureSize)
	copy(b, s.raw[:])

	return b
}

// AppendTo appends the signature bytes to dst.
func (s FileSignature) AppendTo(dst []byte) []byte {
	return append(dst, s.raw[:]...)
}
