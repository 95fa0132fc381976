// Package endian provides the byte order used by the Vertica native file format.
//
// Every multi-byte integer in a native file (column definition fields, row
// lengths, variable column lengths) is little-endian. Code that reads or
// writes those fields goes through an EndianEngine so that both the
// fixed-slot (PutUint32) and the append (AppendUint32) styles are available
// from one value:
//
//	engine := endian.GetLittleEndianEngine()
//	buf = engine.AppendUint32(buf, rowLength)
//	width := engine.Uint32(raw[0:4])
//
// The returned engines are immutable and safe for concurrent use.
package endian

import (
	"encoding/binary"
)

// EndianEngine combines ByteOrder and AppendByteOrder from encoding/binary
// into a single interface.
//
// binary.LittleEndian and binary.BigEndian both satisfy it.
type EndianEngine interface {
	binary.ByteOrder
	binary.AppendByteOrder
}

// GetLittleEndianEngine returns the little-endian engine, the byte order of
// every native file field.
func GetLittleEndianEngine() EndianEngine {
	return binary.LittleEndian
}

// Uint16Size, Uint32Size are the encoded widths of the integer fields.
const (
	Uint16Size = 2
	Uint32Size = 4
)
