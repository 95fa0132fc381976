package verticat

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"

	"github.com/arloliu/verticat/compress"
	"github.com/arloliu/verticat/errs"
)

// Source is a reopenable input.
//
// Every call to Open must return an independent reader positioned at the
// start of the native file. Operations that need two passes, such as Tail,
// open the source twice.
type Source interface {
	Name() string
	Open() (io.ReadCloser, error)
}

type fileSource struct {
	path string
}

// FileSource returns a Source reading the file at path.
//
// Open checks that the path exists before opening it and reports
// errs.ErrNotFound otherwise. Inputs compressed with zstd, s2 or lz4 are
// detected by their magic bytes and decompressed on the fly.
func FileSource(path string) Source {
	return fileSource{path: path}
}

func (s fileSource) Name() string {
	return s.path
}

func (s fileSource) Open() (io.ReadCloser, error) {
	if _, err := os.Stat(s.path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", errs.ErrNotFound, s.path)
		}

		return nil, fmt.Errorf("%w: %w", errs.ErrIO, err)
	}

	f, err := os.Open(s.path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", errs.ErrIO, err)
	}

	rc, _, err := compress.NewDetectingReader(f)
	if err != nil {
		_ = f.Close()
		return nil, fmt.Errorf("%s: %w", s.path, err)
	}

	return &multiCloser{Reader: rc, closers: []io.Closer{rc, f}}, nil
}

type bytesSource struct {
	name string
	data []byte
}

// BytesSource returns a Source over an in-memory native file. The data is
// not copied and must not be modified while the source is in use.
func BytesSource(name string, data []byte) Source {
	return bytesSource{name: name, data: data}
}

func (s bytesSource) Name() string {
	return s.name
}

func (s bytesSource) Open() (io.ReadCloser, error) {
	return io.NopCloser(bytes.NewReader(s.data)), nil
}

// multiCloser closes the decompressor before the file beneath it.
type multiCloser struct {
	io.Reader
	closers []io.Closer
}

func (m *multiCloser) Close() error {
	var errList []error
	for _, c := range m.closers {
		if err := c.Close(); err != nil {
			errList = append(errList, err)
		}
	}

	return errors.Join(errList...)
}
