// Package sink writes emitted native files to their destination.
//
// A Sink buffers output, optionally compresses it, and on Close flushes the
// compressor, the buffer and, for files it created, the file data to stable
// storage.
package sink

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"

	"github.com/arloliu/verticat/compress"
	"github.com/arloliu/verticat/errs"
	"github.com/arloliu/verticat/format"
	"github.com/arloliu/verticat/internal/options"
)

const bufferSize = 64 * 1024

type config struct {
	force       bool
	compression format.CompressionType
}

// Option configures a Sink.
type Option = options.Option[*config]

// WithForce allows Create to truncate an existing file.
func WithForce(force bool) Option {
	return options.NoError(func(c *config) {
		c.force = force
	})
}

// WithCompression compresses everything written to the sink.
func WithCompression(ct format.CompressionType) Option {
	return options.New(func(c *config) error {
		if _, err := compress.CreateCodec(ct, "output"); err != nil {
			return err
		}
		c.compression = ct

		return nil
	})
}

// Sink is an io.WriteCloser over a file or another writer.
type Sink struct {
	name string
	file *os.File
	buf  *bufio.Writer
	w    io.WriteCloser
}

// Create creates the file at path.
//
// An existing file is refused with errs.ErrOutputExists unless WithForce is
// given, in which case it is truncated.
func Create(path string, opts ...Option) (*Sink, error) {
	cfg, err := newConfig(opts)
	if err != nil {
		return nil, err
	}

	flags := os.O_WRONLY | os.O_CREATE | os.O_EXCL
	if cfg.force {
		flags = os.O_WRONLY | os.O_CREATE | os.O_TRUNC
	}

	f, err := os.OpenFile(path, flags, 0o644)
	if err != nil {
		if errors.Is(err, fs.ErrExist) {
			return nil, fmt.Errorf("%w: %s", errs.ErrOutputExists, path)
		}

		return nil, fmt.Errorf("%w: %w", errs.ErrIO, err)
	}

	s, err := newSink(path, f, cfg)
	if err != nil {
		_ = f.Close()
		return nil, err
	}
	s.file = f

	return s, nil
}

// Wrap returns a Sink over w. Close flushes but does not close w.
func Wrap(name string, w io.Writer, opts ...Option) (*Sink, error) {
	cfg, err := newConfig(opts)
	if err != nil {
		return nil, err
	}

	return newSink(name, w, cfg)
}

func newConfig(opts []Option) (*config, error) {
	cfg := &config{compression: format.CompressionNone}
	if err := options.Apply(cfg, opts...); err != nil {
		return nil, err
	}

	return cfg, nil
}

func newSink(name string, w io.Writer, cfg *config) (*Sink, error) {
	codec, err := compress.CreateCodec(cfg.compression, "output")
	if err != nil {
		return nil, err
	}

	buf := bufio.NewWriterSize(w, bufferSize)
	cw, err := codec.NewWriter(buf)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", name, err)
	}

	return &Sink{name: name, buf: buf, w: cw}, nil
}

// Name returns the path or name the sink was created with.
func (s *Sink) Name() string {
	return s.name
}

// Write implements io.Writer.
func (s *Sink) Write(p []byte) (int, error) {
	return s.w.Write(p)
}

// Close finishes the compressed stream, flushes buffered output and, for a
// created file, syncs and closes it. It returns the first failure.
func (s *Sink) Close() error {
	err := s.w.Close()
	if ferr := s.buf.Flush(); err == nil {
		err = ferr
	}

	if s.file != nil {
		if serr := fdatasync(s.file); err == nil {
			err = serr
		}
		if cerr := s.file.Close(); err == nil {
			err = cerr
		}
	}

	if err != nil {
		return fmt.Errorf("%w: %s: %w", errs.ErrIO, s.name, err)
	}

	return nil
}
