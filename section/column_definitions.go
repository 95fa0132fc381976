package section

import (
	"fmt"
	"io"
	"slices"
	"strconv"

	"github.com/arloliu/verticat/endian"
	"github.com/arloliu/verticat/errs"
	"github.com/arloliu/verticat/internal/bytereader"
)

// ColumnDefinitions is the header block following the file signature.
//
// Layout (little-endian):
//
//	Bytes      | Field        | Type
//	-----------|--------------|------------------------------
//	0-3        | HeaderLength | uint32
//	4-5        | Version      | uint16
//	6          | Filler       | uint8 (stored, unused)
//	7-8        | ColumnCount  | uint16
//	9-...      | Widths       | uint32 × ColumnCount
//
// A width equal to VariableWidth marks a variable-width column. Column order
// defines both the null bitmap bit order and the byte order of every row.
type ColumnDefinitions struct {
	HeaderLength uint32
	Version      uint16
	Filler       uint8
	ColumnCount  uint16
	Widths       []uint32
}

// NewColumnDefinitions builds definitions for the given widths, computing the
// header length the way Vertica does: every byte of the block after the
// header length field itself.
func NewColumnDefinitions(widths []uint32) ColumnDefinitions {
	return ColumnDefinitions{
		HeaderLength: uint32(ColumnDefsFixedSize - HeaderLengthSize + ColumnWidthSize*len(widths)), //nolint:gosec
		Version:      DefaultVersion,
		ColumnCount:  uint16(len(widths)), //nolint:gosec
		Widths:       slices.Clone(widths),
	}
}

// ParseColumnDefinitions reads the column definitions block from r.
//
// HeaderLength is not cross-checked against the bytes consumed.
// Returns errs.ErrTruncated if any field cannot be read in full.
func ParseColumnDefinitions(r *bytereader.Reader) (ColumnDefinitions, error) {
	var (
		defs ColumnDefinitions
		err  error
	)

	if defs.HeaderLength, err = r.ReadU32(); err != nil {
		return ColumnDefinitions{}, truncated("header length", err)
	}
	if defs.Version, err = r.ReadU16(); err != nil {
		return ColumnDefinitions{}, truncated("version", err)
	}
	if defs.Filler, err = r.ReadU8(); err != nil {
		return ColumnDefinitions{}, truncated("filler", err)
	}
	if defs.ColumnCount, err = r.ReadU16(); err != nil {
		return ColumnDefinitions{}, truncated("column count", err)
	}

	defs.Widths = make([]uint32, defs.ColumnCount)
	for i := range defs.Widths {
		if defs.Widths[i], err = r.ReadU32(); err != nil {
			return ColumnDefinitions{}, truncated(fmt.Sprintf("width of column %d", i), err)
		}
	}

	return defs, nil
}

// NumColumns returns the number of declared columns.
func (d ColumnDefinitions) NumColumns() int {
	return len(d.Widths)
}

// IsVariable reports whether column i is length-prefixed per occurrence.
func (d ColumnDefinitions) IsVariable(i int) bool {
	return d.Widths[i] == VariableWidth
}

// BitmapLength returns the null bitmap size of every row: ceil(columns / 8).
func (d ColumnDefinitions) BitmapLength() int {
	return BitmapLength(len(d.Widths))
}

// Size returns the encoded size of the block in bytes.
func (d ColumnDefinitions) Size() int {
	return ColumnDefsFixedSize + ColumnWidthSize*len(d.Widths)
}

// Bytes serializes the definitions exactly as they were parsed.
func (d ColumnDefinitions) Bytes() []byte {
	return d.AppendTo(make([]byte, 0, d.Size()))
}

// AppendTo appends the serialized definitions to dst.
func (d ColumnDefinitions) AppendTo(dst []byte) []byte {
	engine := endian.GetLittleEndianEngine()

	dst = engine.AppendUint32(dst, d.HeaderLength)
	dst = engine.AppendUint16(dst, d.Version)
	dst = append(dst, d.Filler)
	dst = engine.AppendUint16(dst, d.ColumnCount)
	for _, w := range d.Widths {
		dst = engine.AppendUint32(dst, w)
	}

	return dst
}

// Equal reports whether both definitions describe the same byte layout.
func (d ColumnDefinitions) Equal(other ColumnDefinitions) bool {
	return d.HeaderLength == other.HeaderLength &&
		d.Version == other.Version &&
		d.Filler == other.Filler &&
		d.ColumnCount == other.ColumnCount &&
		slices.Equal(d.Widths, other.Widths)
}

// Reorder returns definitions whose output column i is input column order[i].
//
// order must be a permutation of 0..NumColumns()-1; otherwise
// errs.ErrInvalidColumnOrder is returned. The header length is unchanged.
func (d ColumnDefinitions) Reorder(order []int) (ColumnDefinitions, error) {
	if err := ValidateColumnOrder(order, len(d.Widths)); err != nil {
		return ColumnDefinitions{}, err
	}

	out := d
	out.Widths = make([]uint32, len(d.Widths))
	for i, src := range order {
		out.Widths[i] = d.Widths[src]
	}

	return out, nil
}

// WriteWidths writes one line per column: the declared width, or -1 for a
// variable-width column.
func (d ColumnDefinitions) WriteWidths(w io.Writer) error {
	buf := make([]byte, 0, 4*len(d.Widths))
	for i, width := range d.Widths {
		if d.IsVariable(i) {
			buf = append(buf, "-1"...)
		} else {
			buf = strconv.AppendUint(buf, uint64(width), 10)
		}
		buf = append(buf, '\n')
	}

	_, err := w.Write(buf)

	return err
}

// ValidateColumnOrder checks that order is a permutation of 0..n-1.
func ValidateColumnOrder(order []int, n int) error {
	if len(order) != n {
		return fmt.Errorf("%w: %d positions given for %d columns", errs.ErrInvalidColumnOrder, len(order), n)
	}

	seen := make([]bool, n)
	for i, src := range order {
		if src < 0 || src >= n {
			return fmt.Errorf("%w: position %d refers to column %d", errs.ErrInvalidColumnOrder, i, src)
		}
		if seen[src] {
			return fmt.Errorf("%w: column %d appears more than once", errs.ErrInvalidColumnOrder, src)
		}
		seen[src] = true
	}

	return nil
}

// truncated maps an end-of-input condition to errs.ErrTruncated and keeps
// other failures (already wrapped with errs.ErrIO) intact.
func truncated(field string, err error) error {
	if isEndOfInput(err) {
		return fmt.Errorf("%w: reading %s: %w", errs.ErrTruncated, field, err)
	}

	return fmt.Errorf("reading %s: %w", field, err)
}
