// Package section defines the binary structures of a Vertica native file and
// their decoding and re-encoding.
//
// # File Structure
//
// A native file is a fixed preamble, a column definitions block, and a
// sequence of rows. Every integer is little-endian.
//
//	┌─────────────────────────────────────────────────────────┐
//	│ FileSignature (11 bytes)                                │
//	│  - "NATIVE\n" 0xFF "\r\n" 0x00                          │
//	├─────────────────────────────────────────────────────────┤
//	│ ColumnDefinitions (9 + 4 × N bytes)                     │
//	│  - HeaderLength (4), Version (2), Filler (1)            │
//	│  - ColumnCount N (2)                                    │
//	│  - Widths (4 × N), 0xFFFFFFFF = variable width          │
//	├─────────────────────────────────────────────────────────┤
//	│ Row (repeated)                                          │
//	│  - RowLength (4): 0 or end of input ends the rows       │
//	│  - Null bitmap (ceil(N / 8) bytes, MSB first)           │
//	│  - For each non-null column, in declared order:         │
//	│      variable: length (4) + payload                     │
//	│      fixed:    payload (declared width)                 │
//	└─────────────────────────────────────────────────────────┘
//
// # Null Bitmap
//
// Column c is null iff bit 0x80 >> (c % 8) of byte c / 8 is set. Null
// columns contribute no bytes to the row. When N is not a multiple of 8 the
// trailing bits of the last byte are present but carry no column.
//
// # Re-encoding
//
// FileSignature.Bytes and ColumnDefinitions.Bytes reproduce the parsed bytes
// exactly. Row.Bytes returns the stored bitmap and payload only; the length
// prefixes consumed while decoding are re-derived by Row.AppendEncoded, which
// is what writers use to produce a file that parses again.
//
// Column values are never interpreted: a column is an opaque byte extent.
package section
