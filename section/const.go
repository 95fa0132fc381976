package section

import "math"

// VariableWidth is the declared column width marking a variable-width column.
// Each non-null occurrence of such a column is prefixed with its own 4-byte length.
const VariableWidth = math.MaxUint32

// Fixed sizes of the native file structures, in bytes.
const (
	SignatureSize       = 11 // file signature preamble
	HeaderLengthSize    = 4  // header length field of the column definitions
	ColumnDefsFixedSize = 9  // header length + version + filler + column count
	ColumnWidthSize     = 4  // one declared column width
	RowLengthSize       = 4  // row length prefix
	VariableLengthSize  = 4  // length prefix of a variable-width column value
)

// DefaultVersion is the column definitions version written by Vertica.
const DefaultVersion = 1

// nativeSignature is the expected preamble: "NATIVE\n", 0xFF, "\r\n", 0x00.
var nativeSignature = [SignatureSize]byte{0x4E, 0x41, 0x54, 0x49, 0x56, 0x45, 0x0A, 0xFF, 0x0D, 0x0A, 0x00}
