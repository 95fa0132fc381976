package stream

import (
	"fmt"
	"io"

	"github.com/arloliu/verticat/errs"
	"github.com/arloliu/verticat/internal/options"
	"github.com/arloliu/verticat/internal/pool"
	"github.com/arloliu/verticat/section"
)

// Writer re-emits rows read from a Stream as a native file.
//
// Every row is written with a row length and variable-width length prefixes
// recomputed from its own extents, so the output always parses back. When a
// column order is configured, both the definitions and every row are
// permuted the same way.
//
// Note: Writer is NOT thread-safe.
type Writer struct {
	w        io.Writer
	in       section.ColumnDefinitions
	out      section.ColumnDefinitions
	order    []int
	metadata bool
	header   bool
	rows     int
}

// NewWriter creates a writer for rows laid out as defs.
//
// A column order that is not a permutation of defs' columns is rejected with
// errs.ErrInvalidColumnOrder.
func NewWriter(w io.Writer, defs section.ColumnDefinitions, opts ...WriterOption) (*Writer, error) {
	cfg := &writerConfig{metadata: true}
	if err := options.Apply(cfg, opts...); err != nil {
		return nil, err
	}

	out := defs
	if cfg.order != nil {
		var err error
		if out, err = defs.Reorder(cfg.order); err != nil {
			return nil, err
		}
	}

	return &Writer{
		w:        w,
		in:       defs,
		out:      out,
		order:    cfg.order,
		metadata: cfg.metadata,
	}, nil
}

// Definitions returns the column definitions of the output, after reordering.
func (w *Writer) Definitions() section.ColumnDefinitions {
	return w.out
}

// WriteHeader writes the signature followed by the output column
// definitions. It does nothing when metadata is disabled or the header was
// already written.
func (w *Writer) WriteHeader(sig section.FileSignature) error {
	if !w.metadata || w.header {
		return nil
	}

	bb := pool.GetRowBuffer()
	defer pool.PutRowBuffer(bb)

	bb.B = sig.AppendTo(bb.B)
	bb.B = w.out.AppendTo(bb.B)
	if _, err := bb.WriteTo(w.w); err != nil {
		return fmt.Errorf("%w: write header: %w", errs.ErrIO, err)
	}
	w.header = true

	return nil
}

// WriteRow writes one row in its full on-disk form.
func (w *Writer) WriteRow(row section.Row) error {
	if row.NumColumns() != w.in.NumColumns() {
		return fmt.Errorf("%w: row has %d columns, expected %d",
			errs.ErrSchemaMismatch, row.NumColumns(), w.in.NumColumns())
	}
	if w.order != nil {
		row = row.Reorder(w.order)
	}

	bb := pool.GetRowBuffer()
	defer pool.PutRowBuffer(bb)

	bb.B = row.AppendEncoded(bb.B, w.out)
	if _, err := bb.WriteTo(w.w); err != nil {
		return fmt.Errorf("%w: write row %d: %w", errs.ErrIO, w.rows, err)
	}
	w.rows++

	return nil
}

// Rows returns the number of rows written.
func (w *Writer) Rows() int {
	return w.rows
}
