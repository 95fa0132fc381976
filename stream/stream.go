package stream

import (
	"bufio"
	"fmt"
	"io"
	"iter"

	"github.com/go-kit/log"
	"github.com/go-kit/log/level"

	"github.com/arloliu/verticat/internal/bytereader"
	"github.com/arloliu/verticat/internal/hash"
	"github.com/arloliu/verticat/internal/options"
	"github.com/arloliu/verticat/section"
)

// Stream is an open native file positioned after its header.
//
// Rows are decoded lazily, one per Next call, in file order. The sequence is
// forward-only and cannot be rewound: open a new Stream on a fresh reader to
// iterate again.
//
// Note: Stream is NOT thread-safe.
type Stream struct {
	r      *bytereader.Reader
	sig    section.FileSignature
	defs   section.ColumnDefinitions
	name   string
	logger log.Logger
	rows   int
	done   bool
	err    error
}

// Open parses the signature and column definitions from r.
//
// Any header failure is returned immediately, wrapping errs.ErrBadSignature,
// errs.ErrTruncated or errs.ErrIO. The Stream does not close r.
func Open(r io.Reader, opts ...Option) (*Stream, error) {
	cfg := newConfig()
	if err := options.Apply(cfg, opts...); err != nil {
		return nil, err
	}

	br := bytereader.New(bufio.NewReaderSize(r, cfg.bufferSize))

	sig, err := section.ParseFileSignature(br)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", cfg.name, err)
	}

	defs, err := section.ParseColumnDefinitions(br)
	if err != nil {
		return nil, fmt.Errorf("%s: column definitions: %w", cfg.name, err)
	}

	s := &Stream{
		r:      br,
		sig:    sig,
		defs:   defs,
		name:   cfg.name,
		logger: log.With(cfg.logger, "input", cfg.name),
	}

	level.Debug(s.logger).Log(
		"msg", "opened native file",
		"columns", defs.NumColumns(),
		"version", defs.Version,
		"layout", fmt.Sprintf("%016x", hash.LayoutID(defs.Widths)),
	)

	return s, nil
}

// Name returns the input name given with WithName.
func (s *Stream) Name() string {
	return s.name
}

// Signature returns the parsed file signature.
func (s *Stream) Signature() section.FileSignature {
	return s.sig
}

// Definitions returns the parsed column definitions.
func (s *Stream) Definitions() section.ColumnDefinitions {
	return s.defs
}

// Next decodes the next row.
//
// It returns false once the row sequence ends: at a zero row length, at end
// of input, or at the first decode failure. A failure is logged and kept for
// Err; it is never surfaced through Next, so rows already returned stay valid.
func (s *Stream) Next() (section.Row, bool) {
	if s.done {
		return section.Row{}, false
	}

	offset := s.r.Offset()
	row, ok, err := section.DecodeRow(s.r, s.defs)
	if err != nil {
		s.done = true
		s.err = fmt.Errorf("%s: row %d at offset %d: %w", s.name, s.rows, offset, err)
		level.Warn(s.logger).Log("msg", "stopped reading rows", "rows", s.rows, "offset", offset, "err", err)

		return section.Row{}, false
	}
	if !ok {
		s.done = true
		level.Debug(s.logger).Log("msg", "end of rows", "rows", s.rows, "offset", s.r.Offset())

		return section.Row{}, false
	}

	s.rows++

	return row, true
}

// All returns an iterator over the remaining rows.
//
// Example:
//
//	for row := range s.All() {
//	    fmt.Println(len(row.Data))
//	}
//	if err := s.Err(); err != nil {
//	    // iteration stopped early on a damaged row
//	}
func (s *Stream) All() iter.Seq[section.Row] {
	return func(yield func(section.Row) bool) {
		for {
			row, ok := s.Next()
			if !ok || !yield(row) {
				return
			}
		}
	}
}

// Count drains the stream and returns the number of rows decoded by it,
// including any returned before the call.
func (s *Stream) Count() int {
	for {
		if _, ok := s.Next(); !ok {
			return s.rows
		}
	}
}

// Skip decodes and discards up to n rows and returns how many were skipped.
func (s *Stream) Skip(n int) int {
	skipped := 0
	for skipped < n {
		if _, ok := s.Next(); !ok {
			break
		}
		skipped++
	}

	return skipped
}

// Rows returns the number of rows decoded so far.
func (s *Stream) Rows() int {
	return s.rows
}

// Done reports whether the row sequence has ended.
func (s *Stream) Done() bool {
	return s.done
}

// Err returns the decode failure that ended iteration, or nil if the
// sequence ended normally or has not ended yet.
func (s *Stream) Err() error {
	return s.err
}
