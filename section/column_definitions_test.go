package section

import (
	"bytes"
	"strings"
	"testing"

	"github.com/arloliu/verticat/errs"
	"github.com/arloliu/verticat/internal/bytereader"
	"github.com/arloliu/verticat/internal/testutil"
	"github.com/stretchr/testify/require"
)

func parseHeader(t *testing.T, data []byte) (ColumnDefinitions, *bytereader.Reader) {
	t.Helper()

	r := bytereader.New(bytes.NewReader(data))
	_, err := ParseFileSignature(r)
	require.NoError(t, err)

	defs, err := ParseColumnDefinitions(r)
	require.NoError(t, err)

	return defs, r
}

func TestParseColumnDefinitions(t *testing.T) {
	t.Run("All types layout", func(t *testing.T) {
		defs, r := parseHeader(t, testutil.AllTypes(0).Bytes())

		require.Equal(t, uint16(14), defs.ColumnCount)
		require.Equal(t, uint16(DefaultVersion), defs.Version)
		require.Equal(t, uint32(5+4*14), defs.HeaderLength)
		require.Equal(t, testutil.AllTypesWidths, defs.Widths)
		require.Equal(t, 2, defs.BitmapLength())
		require.True(t, defs.IsVariable(3))
		require.True(t, defs.IsVariable(10))
		require.False(t, defs.IsVariable(0))
		require.Equal(t, int64(SignatureSize+defs.Size()), r.Offset())
	})

	t.Run("Zero columns", func(t *testing.T) {
		defs, _ := parseHeader(t, testutil.NewBuilder().Bytes())

		require.Equal(t, 0, defs.NumColumns())
		require.Equal(t, 0, defs.BitmapLength())
	})

	t.Run("Truncated at every field", func(t *testing.T) {
		header := testutil.NewBuilder(8, testutil.Variable, 2).Header()
		body := header[SignatureSize:]

		for cut := range len(body) {
			r := bytereader.New(bytes.NewReader(body[:cut]))

			_, err := ParseColumnDefinitions(r)

			require.ErrorIs(t, err, errs.ErrTruncated, "cut at %d", cut)
		}
	})
}

func TestColumnDefinitions_RoundTrip(t *testing.T) {
	header := testutil.AllTypes(0).Header()
	defs, _ := parseHeader(t, header)

	require.Equal(t, header[SignatureSize:], defs.Bytes())

	reparsed, err := ParseColumnDefinitions(bytereader.New(bytes.NewReader(defs.Bytes())))
	require.NoError(t, err)
	require.True(t, defs.Equal(reparsed))
	require.Equal(t, defs, reparsed)
}

func TestColumnDefinitions_FillerPreserved(t *testing.T) {
	defs := NewColumnDefinitions([]uint32{4, 4})
	defs.Filler = 0x7F
	defs.HeaderLength = 999 // not validated against the layout

	reparsed, err := ParseColumnDefinitions(bytereader.New(bytes.NewReader(defs.Bytes())))

	require.NoError(t, err)
	require.Equal(t, uint8(0x7F), reparsed.Filler)
	require.Equal(t, uint32(999), reparsed.HeaderLength)
}

func TestNewColumnDefinitions(t *testing.T) {
	widths := []uint32{1, 2}
	defs := NewColumnDefinitions(widths)
	widths[0] = 42

	require.Equal(t, []uint32{1, 2}, defs.Widths, "widths must be copied")
	require.Equal(t, uint16(2), defs.ColumnCount)
	require.Equal(t, testutil.NewBuilder(1, 2).Header()[SignatureSize:], defs.Bytes())
}

func TestColumnDefinitions_Reorder(t *testing.T) {
	defs := NewColumnDefinitions([]uint32{8, VariableWidth, 3})

	t.Run("Permutation", func(t *testing.T) {
		out, err := defs.Reorder([]int{2, 0, 1})

		require.NoError(t, err)
		require.Equal(t, []uint32{3, 8, VariableWidth}, out.Widths)
		require.Equal(t, defs.HeaderLength, out.HeaderLength)
		require.Equal(t, []uint32{8, VariableWidth, 3}, defs.Widths, "source must be untouched")
	})

	t.Run("Invalid orders", func(t *testing.T) {
		for _, order := range [][]int{{0, 1}, {0, 1, 1}, {0, 1, 3}, {-1, 0, 1}} {
			_, err := defs.Reorder(order)
			require.ErrorIs(t, err, errs.ErrInvalidColumnOrder, "order %v", order)
		}
	})
}

func TestColumnDefinitions_WriteWidths(t *testing.T) {
	defs := NewColumnDefinitions(testutil.AllTypesWidths)

	var buf bytes.Buffer
	require.NoError(t, defs.WriteWidths(&buf))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Equal(t, []string{"8", "8", "10", "-1", "1", "8", "8", "8", "8", "8", "-1", "3", "24", "8"}, lines)
}
