package sink

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/arloliu/verticat/compress"
	"github.com/arloliu/verticat/errs"
	"github.com/arloliu/verticat/format"
)

func TestCreate(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.bin")

	s, err := Create(path)
	require.NoError(t, err)
	require.Equal(t, path, s.Name())
	_, err = s.Write([]byte("first"))
	require.NoError(t, err)
	require.NoError(t, s.Close())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Equal(t, []byte("first"), data)

	t.Run("refuses existing file", func(t *testing.T) {
		_, err := Create(path)
		require.ErrorIs(t, err, errs.ErrOutputExists)

		data, err := os.ReadFile(path)
		require.NoError(t, err)
		require.Equal(t, []byte("first"), data, "existing content is untouched")
	})

	t.Run("force truncates", func(t *testing.T) {
		s, err := Create(path, WithForce(true))
		require.NoError(t, err)
		_, err = s.Write([]byte("2nd"))
		require.NoError(t, err)
		require.NoError(t, s.Close())

		data, err := os.ReadFile(path)
		require.NoError(t, err)
		require.Equal(t, []byte("2nd"), data)
	})

	t.Run("missing directory", func(t *testing.T) {
		_, err := Create(filepath.Join(t.TempDir(), "no", "such", "dir.bin"))
		require.ErrorIs(t, err, errs.ErrIO)
	})
}

func TestCreate_Compressed(t *testing.T) {
	payload := bytes.Repeat([]byte("native rows "), 1000)

	for _, ct := range []format.CompressionType{format.CompressionZstd, format.CompressionS2, format.CompressionLZ4} {
		t.Run(ct.String(), func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "out.bin"+ct.Extension())

			s, err := Create(path, WithCompression(ct))
			require.NoError(t, err)
			_, err = s.Write(payload)
			require.NoError(t, err)
			require.NoError(t, s.Close())

			f, err := os.Open(path)
			require.NoError(t, err)
			defer f.Close()

			rc, detected, err := compress.NewDetectingReader(f)
			require.NoError(t, err)
			defer rc.Close()
			require.Equal(t, ct, detected)

			got, err := io.ReadAll(rc)
			require.NoError(t, err)
			require.Equal(t, payload, got)
		})
	}
}

func TestWrap(t *testing.T) {
	var buf bytes.Buffer
	s, err := Wrap("stdout", &buf)
	require.NoError(t, err)

	_, err = s.Write([]byte("buffered"))
	require.NoError(t, err)
	require.Zero(t, buf.Len(), "output stays buffered until Close")

	require.NoError(t, s.Close())
	require.Equal(t, "buffered", buf.String())
}

func TestWithCompression_Invalid(t *testing.T) {
	_, err := Wrap("x", &bytes.Buffer{}, WithCompression(format.CompressionType(99)))
	require.ErrorIs(t, err, errs.ErrUnsupportedCompression)
	require.Contains(t, err.Error(), "invalid output compression")
}
