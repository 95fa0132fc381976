package format

import (
	"testing"

	"github.com/arloliu/verticat/errs"
	"github.com/stretchr/testify/require"
)

func TestParseCompressionType(t *testing.T) {
	tests := []struct {
		in   string
		want CompressionType
	}{
		{"", CompressionNone},
		{"none", CompressionNone},
		{"ZSTD", CompressionZstd},
		{"zst", CompressionZstd},
		{" s2 ", CompressionS2},
		{"lz4", CompressionLZ4},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseCompressionType(tt.in)
			require.NoError(t, err)
			require.Equal(t, tt.want, got)
		})
	}

	_, err := ParseCompressionType("brotli")
	require.ErrorIs(t, err, errs.ErrUnsupportedCompression)
}

func TestCompressionType_StringAndExtension(t *testing.T) {
	require.Equal(t, "Zstd", CompressionZstd.String())
	require.Equal(t, "Unknown", CompressionType(0).String())
	require.Equal(t, ".lz4", CompressionLZ4.Extension())
	require.Empty(t, CompressionNone.Extension())
}
