// Package verticat reads Vertica native binary files.
//
// A native file is a fixed signature, a column definitions block listing the
// declared byte width of every column, and a sequence of rows. Each row holds
// a null bitmap and the raw bytes of its non-null columns; variable-width
// columns carry their own length prefix. verticat never interprets column
// values, only their byte extents.
//
// # Operations
//
//   - Count: number of rows in a file
//   - Head and Tail: the first or last N rows, re-emitted as a native file
//   - Cat: every row, re-emitted, optionally with permuted columns
//   - CatAll: several files with the same layout concatenated into one
//   - PrintHeader: the declared widths
//
// # Basic Usage
//
//	src := verticat.FileSource("export.bin")
//
//	n, err := verticat.Count(src)
//	if err != nil {
//	    return err
//	}
//	fmt.Println(n, src.Name())
//
//	// Last 10 rows, with the first two columns swapped.
//	err = verticat.Tail(src, os.Stdout, 10, verticat.WithColumnOrder([]int{1, 0, 2, 3}))
//
// Emitted rows always carry a freshly computed row length and freshly
// computed variable-width prefixes, so the output parses back as a native
// file. A row that fails to decode ends the row sequence; the failure is
// logged through the configured logger and the rows before it are kept.
//
// # Package Structure
//
// The operations here are thin compositions of the stream package, which
// holds the lazy row iterator and the writer, and the section package,
// which holds the binary layout of each part of the file.
package verticat

import (
	"fmt"
	"io"

	"github.com/go-kit/log/level"

	"github.com/arloliu/verticat/errs"
	"github.com/arloliu/verticat/internal/hash"
	"github.com/arloliu/verticat/stream"
)

// Count returns the number of rows in src.
//
// Only a failure to open src or to parse its header is returned as an
// error. A damaged row ends the count and is reported through the logger.
func Count(src Source, opts ...Option) (int, error) {
	cfg, err := newConfig(opts)
	if err != nil {
		return 0, err
	}

	var n int
	err = withStream(src, cfg, func(s *stream.Stream) error {
		n = s.Count()
		return nil
	})

	return n, err
}

// Head writes a native file holding the first min(n, total) rows of src.
func Head(src Source, w io.Writer, n int, opts ...Option) error {
	if n < 0 {
		return fmt.Errorf("%w: head %d", errs.ErrInvalidRowCount, n)
	}

	cfg, err := newConfig(opts)
	if err != nil {
		return err
	}

	return withStream(src, cfg, func(s *stream.Stream) error {
		out, err := startOutput(s, w, cfg)
		if err != nil {
			return err
		}

		for out.Rows() < n {
			row, ok := s.Next()
			if !ok {
				break
			}
			if err := out.WriteRow(row); err != nil {
				return err
			}
		}

		return nil
	})
}

// Tail writes a native file holding the last min(n, total) rows of src.
//
// src is opened twice: once to count the rows, once to skip the leading
// rows and emit the rest.
func Tail(src Source, w io.Writer, n int, opts ...Option) error {
	if n < 0 {
		return fmt.Errorf("%w: tail %d", errs.ErrInvalidRowCount, n)
	}

	cfg, err := newConfig(opts)
	if err != nil {
		return err
	}

	var total int
	err = withStream(src, cfg, func(s *stream.Stream) error {
		total = s.Count()
		return nil
	})
	if err != nil {
		return err
	}

	skip := max(0, total-n)

	return withStream(src, cfg, func(s *stream.Stream) error {
		out, err := startOutput(s, w, cfg)
		if err != nil {
			return err
		}

		if skipped := s.Skip(skip); skipped < skip {
			level.Warn(cfg.logger).Log("msg", "input shrank between passes", "input", src.Name(),
				"counted", total, "skipped", skipped)
		}

		return copyRows(s, out)
	})
}

// Cat writes every row of src as a native file.
func Cat(src Source, w io.Writer, opts ...Option) error {
	cfg, err := newConfig(opts)
	if err != nil {
		return err
	}

	return withStream(src, cfg, func(s *stream.Stream) error {
		out, err := startOutput(s, w, cfg)
		if err != nil {
			return err
		}

		return copyRows(s, out)
	})
}

// CatAll concatenates the rows of srcs into a single native file.
//
// Every source must declare the same column widths as the first one;
// otherwise errs.ErrSchemaMismatch is returned before anything is written.
// The header, when enabled, is written once.
func CatAll(srcs []Source, w io.Writer, opts ...Option) error {
	if len(srcs) == 0 {
		return nil
	}

	cfg, err := newConfig(opts)
	if err != nil {
		return err
	}

	var first uint64
	for i, src := range srcs {
		err := withStream(src, cfg, func(s *stream.Stream) error {
			layout := hash.LayoutID(s.Definitions().Widths)
			if i == 0 {
				first = layout
				return nil
			}
			if layout != first {
				return fmt.Errorf("%w: %s has layout %016x, %s has %016x",
					errs.ErrSchemaMismatch, src.Name(), layout, srcs[0].Name(), first)
			}

			return nil
		})
		if err != nil {
			return err
		}
	}

	var out *stream.Writer
	for _, src := range srcs {
		err := withStream(src, cfg, func(s *stream.Stream) error {
			if out == nil {
				var err error
				if out, err = startOutput(s, w, cfg); err != nil {
					return err
				}
			}

			return copyRows(s, out)
		})
		if err != nil {
			return err
		}
	}

	return nil
}

// PrintHeader writes the declared width of every column of src, one per
// line with -1 for variable-width columns, followed by a blank line.
//
// The layout fingerprint is logged at debug level when src is opened.
func PrintHeader(src Source, w io.Writer, opts ...Option) error {
	cfg, err := newConfig(opts)
	if err != nil {
		return err
	}

	return withStream(src, cfg, func(s *stream.Stream) error {
		if err := s.Definitions().WriteWidths(w); err != nil {
			return fmt.Errorf("%w: %w", errs.ErrIO, err)
		}
		if _, err := io.WriteString(w, "\n"); err != nil {
			return fmt.Errorf("%w: %w", errs.ErrIO, err)
		}

		return nil
	})
}

// withStream opens src, parses its header and hands the stream to fn. The
// input is closed when fn returns.
func withStream(src Source, cfg *config, fn func(*stream.Stream) error) (err error) {
	rc, err := src.Open()
	if err != nil {
		return err
	}
	defer func() {
		if cerr := rc.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("%w: close %s: %w", errs.ErrIO, src.Name(), cerr)
		}
	}()

	s, err := stream.Open(rc, cfg.streamOptions(src.Name())...)
	if err != nil {
		return err
	}

	return fn(s)
}

func startOutput(s *stream.Stream, w io.Writer, cfg *config) (*stream.Writer, error) {
	out, err := stream.NewWriter(w, s.Definitions(), cfg.writerOptions()...)
	if err != nil {
		return nil, err
	}
	if err := out.WriteHeader(s.Signature()); err != nil {
		return nil, err
	}

	return out, nil
}

func copyRows(s *stream.Stream, out *stream.Writer) error {
	for row := range s.All() {
		if err := out.WriteRow(row); err != nil {
			return err
		}
	}

	return nil
}
