package section

import (
	"errors"
	"fmt"
	"io"

	"github.com/arloliu/verticat/endian"
	"github.com/arloliu/verticat/internal/bytereader"
)

// maxPreallocSize caps the payload buffer reserved from an unverified row length.
const maxPreallocSize = 64 * 1024

// Row is one decoded record.
//
// Data holds the concatenated payload of every non-null column in column
// order; the length prefixes of variable-width values are not part of it.
// Columns[i] is column i's extent within Data, nil when the column is null.
type Row struct {
	// Length is the row length prefix as read from the file.
	Length  uint32
	Bitmap  []byte
	Data    []byte
	Columns [][]byte
}

// DecodeRow decodes the next row from r.
//
// It returns ok=false with a nil error when the row length prefix is zero or
// cannot be read in full; that is the end of the row sequence, not a failure.
// A short read anywhere after the prefix returns errs.ErrTruncated.
func DecodeRow(r *bytereader.Reader, defs ColumnDefinitions) (row Row, ok bool, err error) {
	row.Length, err = r.ReadU32()
	if err != nil {
		if isEndOfInput(err) {
			return Row{}, false, nil
		}

		return Row{}, false, err
	}
	if row.Length == 0 {
		return Row{}, false, nil
	}

	n := defs.NumColumns()
	row.Bitmap, err = r.ReadFull(BitmapLength(n))
	if err != nil {
		return Row{}, false, truncated("null bitmap", err)
	}

	nulls := DecodeNullFlags(row.Bitmap, n)
	row.Data = make([]byte, 0, min(int(row.Length), maxPreallocSize))
	ends := make([]int, n)
	for col, isNull := range nulls {
		if !isNull {
			size := int(defs.Widths[col])
			if defs.IsVariable(col) {
				length, err := r.ReadU32()
				if err != nil {
					return Row{}, false, truncated(fmt.Sprintf("length of column %d", col), err)
				}
				size = int(length)
			}

			row.Data, err = r.AppendFull(row.Data, size)
			if err != nil {
				return Row{}, false, truncated(fmt.Sprintf("column %d", col), err)
			}
		}
		ends[col] = len(row.Data)
	}

	row.Columns = make([][]byte, n)
	start := 0
	for col, isNull := range nulls {
		if !isNull {
			row.Columns[col] = row.Data[start:ends[col]:ends[col]]
		}
		start = ends[col]
	}

	return row, true, nil
}

// NumColumns returns the number of columns of the row, null or not.
func (r Row) NumColumns() int {
	return len(r.Columns)
}

// IsNull reports whether column i is null.
func (r Row) IsNull(i int) bool {
	return r.Bitmap[i/8]&(0x80>>(i%8)) != 0
}

// Bytes returns the stored bitmap followed by the stored payload, verbatim.
//
// The row length prefix and the variable-width length prefixes are not part
// of this form; use AppendEncoded to produce bytes that parse as a row.
func (r Row) Bytes() []byte {
	b := make([]byte, 0, len(r.Bitmap)+len(r.Data))
	b = append(b, r.Bitmap...)

	return append(b, r.Data...)
}

// EncodedLength returns the row length prefix value for this row: every
// column byte after the bitmap, including the length prefixes of non-null
// variable-width columns.
func (r Row) EncodedLength(defs ColumnDefinitions) int {
	size := len(r.Data)
	for col, value := range r.Columns {
		if value != nil && defs.IsVariable(col) {
			size += VariableLengthSize
		}
	}

	return size
}

// AppendEncoded appends the full on-disk form of the row to dst: a freshly
// computed row length, the bitmap, then each non-null column with its
// length prefix re-derived when the column is variable-width.
//
// A zero row length ends the row sequence, so a row without column bytes
// (every column null) keeps its decoded Length instead, or 1 when it has none.
func (r Row) AppendEncoded(dst []byte, defs ColumnDefinitions) []byte {
	engine := endian.GetLittleEndianEngine()

	length := uint32(r.EncodedLength(defs)) //nolint:gosec
	if length == 0 {
		length = max(r.Length, 1)
	}

	dst = engine.AppendUint32(dst, length)
	dst = append(dst, r.Bitmap...)
	for col, value := range r.Columns {
		if value == nil {
			continue
		}
		if defs.IsVariable(col) {
			dst = engine.AppendUint32(dst, uint32(len(value))) //nolint:gosec
		}
		dst = append(dst, value...)
	}

	return dst
}

// Reorder returns a row whose output column i is column order[i] of r.
// The order must already be validated against the row's column count.
func (r Row) Reorder(order []int) Row {
	out := Row{
		Length:  r.Length,
		Columns: make([][]byte, len(order)),
		Data:    make([]byte, 0, len(r.Data)),
	}

	nulls := make([]bool, len(order))
	for i, src := range order {
		value := r.Columns[src]
		if value == nil {
			nulls[i] = true
			continue
		}
		start := len(out.Data)
		out.Data = append(out.Data, value...)
		out.Columns[i] = out.Data[start:len(out.Data):len(out.Data)]
	}
	out.Bitmap = EncodeNullFlags(nulls)

	return out
}

func isEndOfInput(err error) bool {
	return errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF)
}
