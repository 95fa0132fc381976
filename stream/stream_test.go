package stream

import (
	"bytes"
	"errors"
	"testing"
	"testing/iotest"

	"github.com/go-kit/log"
	"github.com/stretchr/testify/require"

	"github.com/arloliu/verticat/errs"
	"github.com/arloliu/verticat/internal/testutil"
	"github.com/arloliu/verticat/section"
)

func TestOpen(t *testing.T) {
	t.Run("header", func(t *testing.T) {
		s, err := Open(bytes.NewReader(testutil.AllTypes(0).Bytes()))
		require.NoError(t, err)
		require.True(t, s.Signature().IsValid())
		require.Equal(t, testutil.AllTypesWidths, s.Definitions().Widths)
		require.Equal(t, "<stream>", s.Name())
	})

	t.Run("bad signature", func(t *testing.T) {
		data := testutil.AllTypes(1).Bytes()
		data[0] = 'X'
		_, err := Open(bytes.NewReader(data), WithName("broken.bin"))
		require.ErrorIs(t, err, errs.ErrBadSignature)
		require.Contains(t, err.Error(), "broken.bin")
	})

	t.Run("empty input", func(t *testing.T) {
		_, err := Open(bytes.NewReader(nil))
		require.ErrorIs(t, err, errs.ErrBadSignature)
	})

	t.Run("truncated definitions", func(t *testing.T) {
		header := testutil.AllTypes(0).Header()
		_, err := Open(bytes.NewReader(header[:len(header)-2]))
		require.ErrorIs(t, err, errs.ErrTruncated)
	})

	t.Run("read failure", func(t *testing.T) {
		boom := errors.New("boom")
		_, err := Open(iotest.ErrReader(boom))
		require.ErrorIs(t, err, errs.ErrBadSignature)
	})

	t.Run("invalid buffer size", func(t *testing.T) {
		_, err := Open(bytes.NewReader(nil), WithBufferSize(1))
		require.Error(t, err)
	})
}

func TestStream_Next(t *testing.T) {
	b := testutil.AllTypes(5)
	s, err := Open(bytes.NewReader(b.Bytes()))
	require.NoError(t, err)

	for i := range 5 {
		row, ok := s.Next()
		require.True(t, ok)
		require.Equal(t, b.EncodeRow(i), row.AppendEncoded(nil, s.Definitions()))
	}

	_, ok := s.Next()
	require.False(t, ok)
	require.True(t, s.Done())
	require.NoError(t, s.Err())

	_, ok = s.Next()
	require.False(t, ok, "an ended stream stays ended")
	require.Equal(t, 5, s.Rows())
}

func TestStream_All(t *testing.T) {
	s, err := Open(bytes.NewReader(testutil.AllTypes(7).Terminate().Bytes()))
	require.NoError(t, err)

	n := 0
	for range s.All() {
		n++
		if n == 3 {
			break
		}
	}
	require.Equal(t, 3, n)

	for range s.All() {
		n++
	}
	require.Equal(t, 7, n, "iteration resumes where the previous loop stopped")
}

func TestStream_Count(t *testing.T) {
	tests := []struct {
		name string
		data []byte
		want int
	}{
		{"header only", testutil.AllTypes(0).Bytes(), 0},
		{"rows to end of input", testutil.AllTypes(12).Bytes(), 12},
		{"zero length terminator", testutil.AllTypes(4).Terminate().Bytes(), 4},
		{"short trailing length", append(testutil.AllTypes(2).Bytes(), 0x01, 0x02), 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, err := Open(bytes.NewReader(tt.data))
			require.NoError(t, err)
			require.Equal(t, tt.want, s.Count())
			require.NoError(t, s.Err())
		})
	}
}

func TestStream_CountAfterNext(t *testing.T) {
	s, err := Open(bytes.NewReader(testutil.AllTypes(6).Bytes()))
	require.NoError(t, err)

	_, ok := s.Next()
	require.True(t, ok)
	require.Equal(t, 6, s.Count())
}

func TestStream_Skip(t *testing.T) {
	b := testutil.AllTypes(5)
	s, err := Open(bytes.NewReader(b.Bytes()))
	require.NoError(t, err)

	require.Equal(t, 0, s.Skip(0))
	require.Equal(t, 3, s.Skip(3))

	row, ok := s.Next()
	require.True(t, ok)
	require.Equal(t, b.EncodeRow(3), row.AppendEncoded(nil, s.Definitions()))

	require.Equal(t, 1, s.Skip(10))
	require.True(t, s.Done())
}

func TestStream_DecodeFailure(t *testing.T) {
	data := testutil.AllTypes(3).Bytes()
	data = data[:len(data)-5]

	var logs bytes.Buffer
	s, err := Open(bytes.NewReader(data),
		WithName("cut.bin"),
		WithLogger(log.NewLogfmtLogger(&logs)),
	)
	require.NoError(t, err)

	require.Equal(t, 2, s.Count(), "rows before the damaged one are still produced")
	require.ErrorIs(t, s.Err(), errs.ErrTruncated)
	require.Contains(t, s.Err().Error(), "cut.bin: row 2")
	require.Contains(t, logs.String(), "stopped reading rows")
	require.Contains(t, logs.String(), "input=cut.bin")
}

func TestStream_SmallBuffer(t *testing.T) {
	b := testutil.AllTypes(20)
	s, err := Open(iotest.OneByteReader(bytes.NewReader(b.Bytes())), WithBufferSize(16))
	require.NoError(t, err)
	require.Equal(t, 20, s.Count())
}

func TestStream_NullableVariableColumns(t *testing.T) {
	b := testutil.NewBuilder(4, testutil.Variable, testutil.Variable).
		Row(testutil.Fixed(4, 1), nil, []byte{}).
		Row(nil, []byte("abc"), nil)

	s, err := Open(bytes.NewReader(b.Bytes()))
	require.NoError(t, err)

	var rows []section.Row
	for row := range s.All() {
		rows = append(rows, row)
	}
	require.Len(t, rows, 2)

	require.True(t, rows[0].IsNull(1))
	require.False(t, rows[0].IsNull(2), "an empty value is not a null")
	require.Empty(t, rows[0].Columns[2])
	require.True(t, rows[1].IsNull(0))
	require.Equal(t, []byte("abc"), rows[1].Columns[1])
}
