package compress

import (
	"bytes"
	"io"
	"testing"

	"github.com/arloliu/verticat/errs"
	"github.com/arloliu/verticat/format"
	"github.com/arloliu/verticat/internal/testutil"
	"github.com/stretchr/testify/require"
)

var allTypes = []format.CompressionType{
	format.CompressionNone,
	format.CompressionZstd,
	format.CompressionS2,
	format.CompressionLZ4,
}

func compressWith(t *testing.T, codec Codec, data []byte) []byte {
	t.Helper()

	var buf bytes.Buffer
	w, err := codec.NewWriter(&buf)
	require.NoError(t, err)
	_, err = w.Write(data)
	require.NoError(t, err)
	require.NoError(t, w.Close())

	return buf.Bytes()
}

func TestCodec_RoundTrip(t *testing.T) {
	native := testutil.AllTypes(50).Bytes()

	for _, ct := range allTypes {
		t.Run(ct.String(), func(t *testing.T) {
			codec, err := GetCodec(ct)
			require.NoError(t, err)
			require.Equal(t, ct, codec.Type())

			compressed := compressWith(t, codec, native)

			r, err := codec.NewReader(bytes.NewReader(compressed))
			require.NoError(t, err)
			defer r.Close()

			got, err := io.ReadAll(r)
			require.NoError(t, err)
			require.Equal(t, native, got)
		})
	}
}

func TestCreateCodec(t *testing.T) {
	for _, ct := range allTypes {
		codec, err := CreateCodec(ct, "output")
		require.NoError(t, err)
		require.Equal(t, ct, codec.Type())
	}

	_, err := CreateCodec(format.CompressionType(0x9), "output")
	require.ErrorIs(t, err, errs.ErrUnsupportedCompression)
	require.Contains(t, err.Error(), "output")

	_, err = GetCodec(format.CompressionType(0))
	require.ErrorIs(t, err, errs.ErrUnsupportedCompression)
}

func TestDetect(t *testing.T) {
	native := testutil.AllTypes(3).Bytes()

	require.Equal(t, format.CompressionNone, Detect(native))
	require.Equal(t, format.CompressionNone, Detect(nil))
	require.Equal(t, format.CompressionNone, Detect([]byte{0x28, 0xB5}), "partial magic")

	for _, ct := range allTypes[1:] {
		codec, err := GetCodec(ct)
		require.NoError(t, err)

		require.Equal(t, ct, Detect(compressWith(t, codec, native)), ct.String())
	}
}

func TestNewDetectingReader(t *testing.T) {
	native := testutil.AllTypes(10).Bytes()

	for _, ct := range allTypes {
		t.Run(ct.String(), func(t *testing.T) {
			codec, err := GetCodec(ct)
			require.NoError(t, err)
			input := native
			if ct != format.CompressionNone {
				input = compressWith(t, codec, native)
			}

			r, detected, err := NewDetectingReader(bytes.NewReader(input))
			require.NoError(t, err)
			defer r.Close()

			require.Equal(t, ct, detected)
			got, err := io.ReadAll(r)
			require.NoError(t, err)
			require.Equal(t, native, got)
		})
	}

	t.Run("Input shorter than the sniff window", func(t *testing.T) {
		r, detected, err := NewDetectingReader(bytes.NewReader([]byte("NAT")))
		require.NoError(t, err)
		require.Equal(t, format.CompressionNone, detected)

		got, err := io.ReadAll(r)
		require.NoError(t, err)
		require.Equal(t, []byte("NAT"), got)
	})
}
