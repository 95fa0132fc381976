// Package compress provides streaming codecs for compressed native files.
//
// Vertica exports are frequently stored compressed. Rather than requiring a
// separate decompression step, inputs are wrapped in a streaming decoder so
// rows are still pulled lazily, one at a time:
//
//	rc, ct, err := compress.NewDetectingReader(file)
//	if err != nil {
//	    return err
//	}
//	defer rc.Close()
//	// rc yields the plain native file bytes; ct reports what was detected.
//
// # Supported Algorithms
//
//   - None: plain native file (pass-through)
//   - Zstd: klauspost/compress/zstd by default, valyala/gozstd with the
//     gozstd build tag and cgo
//   - S2: klauspost/compress/s2 streams (framed Snappy is also read)
//   - LZ4: pierrec/lz4 frame format
//
// Detection looks at the stream magic, never at file names. A native file
// starts with "NATIVE", which collides with none of the magics.
//
// # Output
//
// Head, tail and cat output can be compressed by wrapping the destination:
//
//	codec, _ := compress.GetCodec(format.CompressionZstd)
//	w, _ := codec.NewWriter(out)
//	defer w.Close() // flushes the final frame
//
// # Thread Safety
//
// Codec values are stateless and safe to share. The readers and writers they
// return are not.
package compress
