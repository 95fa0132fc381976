// Package bytereader implements sequential little-endian reads over a single
// input stream, the leaf dependency of every native file parser.
package bytereader

import (
	"errors"
	"fmt"
	"io"

	"github.com/arloliu/verticat/endian"
	"github.com/arloliu/verticat/errs"
)

// chunkSize bounds how much is allocated ahead of data that has actually arrived.
const chunkSize = 64 * 1024

// Reader reads fixed-width integers and raw byte runs from an io.Reader.
//
// End-of-input conditions are reported with the io package sentinels: io.EOF
// when no byte of the requested field was available, io.ErrUnexpectedEOF when
// only part of it was. Any other failure is wrapped with errs.ErrIO.
//
// Note: Reader is NOT thread-safe.
type Reader struct {
	r       io.Reader
	engine  endian.EndianEngine
	scratch [4]byte
	offset  int64
}

// New returns a Reader consuming r from its current position.
func New(r io.Reader) *Reader {
	return &Reader{
		r:      r,
		engine: endian.GetLittleEndianEngine(),
	}
}

// Offset returns the number of bytes consumed so far.
func (br *Reader) Offset() int64 {
	return br.offset
}

// ReadU8 reads a single byte.
func (br *Reader) ReadU8() (uint8, error) {
	if err := br.fill(br.scratch[:1]); err != nil {
		return 0, err
	}

	return br.scratch[0], nil
}

// ReadU16 reads a little-endian uint16.
func (br *Reader) ReadU16() (uint16, error) {
	if err := br.fill(br.scratch[:endian.Uint16Size]); err != nil {
		return 0, err
	}

	return br.engine.Uint16(br.scratch[:endian.Uint16Size]), nil
}

// ReadU32 reads a little-endian uint32.
func (br *Reader) ReadU32() (uint32, error) {
	if err := br.fill(br.scratch[:endian.Uint32Size]); err != nil {
		return 0, err
	}

	return br.engine.Uint32(br.scratch[:endian.Uint32Size]), nil
}

// ReadFull reads exactly n bytes into a new slice.
func (br *Reader) ReadFull(n int) ([]byte, error) {
	return br.AppendFull(nil, n)
}

// AppendFull reads exactly n bytes and appends them to dst.
//
// The destination grows at most chunkSize bytes beyond what has been read, so
// a corrupt length fails with io.ErrUnexpectedEOF instead of allocating the
// whole declared size up front.
func (br *Reader) AppendFull(dst []byte, n int) ([]byte, error) {
	if n == 0 {
		return dst, nil
	}

	start := len(dst)
	remaining := n
	for remaining > 0 {
		step := min(remaining, chunkSize)
		at := len(dst)
		dst = append(dst, make([]byte, step)...)
		if err := br.fill(dst[at : at+step]); err != nil {
			if errors.Is(err, io.EOF) && at > start {
				err = io.ErrUnexpectedEOF
			}

			return dst[:at], err
		}
		remaining -= step
	}

	return dst, nil
}

func (br *Reader) fill(buf []byte) error {
	n, err := io.ReadFull(br.r, buf)
	br.offset += int64(n)
	if err == nil {
		return nil
	}
	if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
		return err
	}

	return fmt.Errorf("%w: read at offset %d: %w", errs.ErrIO, br.offset, err)
}
