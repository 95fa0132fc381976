// Package testutil builds native files in memory for tests.
//
// Encoding here does not go through the section package.
package testutil

import (
	"bytes"
	"fmt"
	"math"

	"github.com/arloliu/verticat/endian"
)

// Variable is the declared width of a variable-width column.
const Variable = math.MaxUint32

// Signature is the native file preamble.
var Signature = []byte{0x4E, 0x41, 0x54, 0x49, 0x56, 0x45, 0x0A, 0xFF, 0x0D, 0x0A, 0x00}

// AllTypesWidths is the column layout of Vertica's all-types sample export.
var AllTypesWidths = []uint32{8, 8, 10, Variable, 1, 8, 8, 8, 8, 8, Variable, 3, 24, 8}

// Builder accumulates a column layout and rows and encodes them as a native file.
type Builder struct {
	widths     []uint32
	rows       [][][]byte
	terminator bool
}

// NewBuilder returns a builder for the given declared widths.
func NewBuilder(widths ...uint32) *Builder {
	return &Builder{widths: widths}
}

// Row appends a row. A nil value is a null column. Fixed-width values must
// match their declared width exactly.
func (b *Builder) Row(values ...[]byte) *Builder {
	if len(values) != len(b.widths) {
		panic(fmt.Sprintf("testutil: %d values for %d columns", len(values), len(b.widths)))
	}
	for i, v := range values {
		if v != nil && b.widths[i] != Variable && len(v) != int(b.widths[i]) {
			panic(fmt.Sprintf("testutil: column %d: %d bytes for width %d", i, len(v), b.widths[i]))
		}
	}
	b.rows = append(b.rows, values)

	return b
}

// Terminate appends a zero row length after the last row when Bytes is called.
func (b *Builder) Terminate() *Builder {
	b.terminator = true
	return b
}

// NumRows returns the number of rows added so far.
func (b *Builder) NumRows() int {
	return len(b.rows)
}

// Header returns the signature and column definitions.
func (b *Builder) Header() []byte {
	engine := endian.GetLittleEndianEngine()

	buf := append([]byte(nil), Signature...)
	buf = engine.AppendUint32(buf, uint32(5+4*len(b.widths))) //nolint:gosec
	buf = engine.AppendUint16(buf, 1)
	buf = append(buf, 0)
	buf = engine.AppendUint16(buf, uint16(len(b.widths))) //nolint:gosec
	for _, w := range b.widths {
		buf = engine.AppendUint32(buf, w)
	}

	return buf
}

// EncodeRow returns the on-disk bytes of row i, length prefix included.
func (b *Builder) EncodeRow(i int) []byte {
	engine := endian.GetLittleEndianEngine()
	values := b.rows[i]

	bitmap := make([]byte, (len(values)+7)/8)
	var body []byte
	for col, v := range values {
		if v == nil {
			bitmap[col/8] |= 1 << (7 - col%8)
			continue
		}
		if b.widths[col] == Variable {
			body = engine.AppendUint32(body, uint32(len(v))) //nolint:gosec
		}
		body = append(body, v...)
	}

	out := engine.AppendUint32(nil, uint32(len(body))) //nolint:gosec
	out = append(out, bitmap...)

	return append(out, body...)
}

// Bytes returns the complete file.
func (b *Builder) Bytes() []byte {
	var buf bytes.Buffer
	buf.Write(b.Header())
	for i := range b.rows {
		buf.Write(b.EncodeRow(i))
	}
	if b.terminator {
		buf.Write([]byte{0, 0, 0, 0})
	}

	return buf.Bytes()
}

// Fixed returns a value of n bytes filled with fill.
func Fixed(n int, fill byte) []byte {
	return bytes.Repeat([]byte{fill}, n)
}

// AllTypesRow returns a row for AllTypesWidths with no nulls. seed varies
// the content and the lengths of the two variable-width columns.
func AllTypesRow(seed int) [][]byte {
	row := make([][]byte, len(AllTypesWidths))
	for col, w := range AllTypesWidths {
		fill := byte(seed*len(AllTypesWidths) + col) //nolint:gosec
		if w == Variable {
			row[col] = Fixed(3+(seed+col)%7, fill)
			continue
		}
		row[col] = Fixed(int(w), fill)
	}

	return row
}

// AllTypes returns a builder with count all-types rows.
func AllTypes(count int) *Builder {
	b := NewBuilder(AllTypesWidths...)
	for i := range count {
		b.Row(AllTypesRow(i)...)
	}

	return b
}

// AllNullRow returns the on-disk bytes of a row whose n columns are all null,
// preceded by the given row length. Such a row has no column bytes, so
// Builder cannot produce it with a nonzero length.
func AllNullRow(length uint32, n int) []byte {
	out := endian.GetLittleEndianEngine().AppendUint32(nil, length)
	bitmap := make([]byte, (n+7)/8)
	for col := range n {
		bitmap[col/8] |= 1 << (7 - col%8)
	}

	return append(out, bitmap...)
}

// WithAllNullRow returns b's file with an all-null row of the given length
// inserted before row i.
func WithAllNullRow(b *Builder, i int, length uint32) []byte {
	var buf bytes.Buffer
	buf.Write(b.Header())
	for j := range b.rows {
		if j == i {
			buf.Write(AllNullRow(length, len(b.widths)))
		}
		buf.Write(b.EncodeRow(j))
	}
	if i >= len(b.rows) {
		buf.Write(AllNullRow(length, len(b.widths)))
	}

	return buf.Bytes()
}
