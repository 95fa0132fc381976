package section

// BitmapLength returns the number of null bitmap bytes for n columns.
func BitmapLength(n int) int {
	return (n + 7) / 8
}

// DecodeNullFlags expands a null bitmap into exactly n flags.
//
// Bits are scanned most-significant first within each byte, so column
// 8*byteIndex+k is null iff bit (0x80 >> k) of that byte is set. Bits of the
// final byte beyond column n-1 are ignored.
func DecodeNullFlags(bitmap []byte, n int) []bool {
	flags := make([]bool, n)
	for col := range flags {
		flags[col] = bitmap[col/8]&(0x80>>(col%8)) != 0
	}

	return flags
}

// EncodeNullFlags packs flags into a bitmap using the same MSB-first order
// as DecodeNullFlags. Unused trailing bits are zero.
func EncodeNullFlags(flags []bool) []byte {
	return AppendNullFlags(make([]byte, 0, BitmapLength(len(flags))), flags)
}

// AppendNullFlags appends the packed form of flags to dst.
func AppendNullFlags(dst []byte, flags []bool) []byte {
	start := len(dst)
	dst = append(dst, make([]byte, BitmapLength(len(flags)))...)
	for col, isNull := range flags {
		if isNull {
			dst[start+col/8] |= 0x80 >> (col % 8)
		}
	}

	return dst
}
