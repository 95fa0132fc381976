package section

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestBitmapLength(t *testing.T) {
	require.Equal(t, 0, BitmapLength(0))
	require.Equal(t, 1, BitmapLength(1))
	require.Equal(t, 1, BitmapLength(8))
	require.Equal(t, 2, BitmapLength(9))
	require.Equal(t, 2, BitmapLength(14))
	require.Equal(t, 10, BitmapLength(75))
}

func TestDecodeNullFlags(t *testing.T) {
	t.Run("Fourteen columns across two bytes", func(t *testing.T) {
		// columns 0, 7, 8 and 13 are null; the two trailing bits are set
		// to prove they are ignored.
		bitmap := []byte{0b1000_0001, 0b1000_0111}

		flags := DecodeNullFlags(bitmap, 14)

		require.Len(t, flags, 14)
		want := make([]bool, 14)
		want[0], want[7], want[8], want[13] = true, true, true, true
		require.Equal(t, want, flags)
	})

	t.Run("MSB is column zero", func(t *testing.T) {
		for col := range 8 {
			flags := DecodeNullFlags([]byte{0x80 >> col}, 8)
			for i, isNull := range flags {
				require.Equal(t, i == col, isNull, "bit for column %d, flag %d", col, i)
			}
		}
	})

	t.Run("Trailing bits are not extra columns", func(t *testing.T) {
		flags := DecodeNullFlags([]byte{0xFF}, 3)

		require.Equal(t, []bool{true, true, true}, flags)
	})
}

func TestEncodeNullFlags(t *testing.T) {
	flags := []bool{true, false, false, false, false, false, false, true, true, false, false, false, false, true}

	bitmap := EncodeNullFlags(flags)

	require.Equal(t, []byte{0b1000_0001, 0b1000_0100}, bitmap)
	require.Equal(t, flags, DecodeNullFlags(bitmap, len(flags)))
	require.Empty(t, EncodeNullFlags(nil))
}
