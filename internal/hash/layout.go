// Package hash computes fingerprints of native file layouts.
package hash

import (
	"github.com/cespare/xxhash/v2"

	"github.com/arloliu/verticat/endian"
)

// LayoutID returns the xxHash64 of a column layout: the declared widths in
// order, each as 4 little-endian bytes. Two files share a LayoutID iff their
// rows decode with the same column extents.
func LayoutID(widths []uint32) uint64 {
	engine := endian.GetLittleEndianEngine()
	d := xxhash.New()
	var buf [endian.Uint32Size]byte
	for _, w := range widths {
		engine.PutUint32(buf[:], w)
		_, _ = d.Write(buf[:])
	}

	return d.Sum64()
}
