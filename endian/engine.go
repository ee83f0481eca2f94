// Package endian provides the byte-order abstraction used by the wire
// primitives.
//
// The GRC-20 wire format is always little-endian, by definition of the
// format itself — there is no host-endianness negotiation, unlike a
// format that must interoperate with big-endian producers. The package
// still exposes the same EndianEngine seam the rest of the codec is
// written against, so a caller embedding this codec in a context that
// genuinely needs big-endian framing (e.g. bridging to a legacy
// big-endian transport) has a documented extension point rather than a
// hardcoded byte order scattered through the wire package.
package endian

import "encoding/binary"

// EndianEngine combines ByteOrder and AppendByteOrder from encoding/binary
// into a single interface for convenient byte order operations.
//
// This interface is satisfied by binary.LittleEndian and binary.BigEndian
// from the standard library.
type EndianEngine interface {
	binary.ByteOrder
	binary.AppendByteOrder
}

// GetLittleEndianEngine returns the little-endian engine. wire.Reader and
// wire.Writer read and write every fixed 8-byte float on the wire (Float64
// values, Point coordinates) with this engine.
func GetLittleEndianEngine() EndianEngine {
	return binary.LittleEndian
}

// GetBigEndianEngine returns the big-endian engine. Not used by the wire
// codec itself; exposed for callers building on top of wire.Reader/Writer
// outside the standard GRC-20 framing.
func GetBigEndianEngine() EndianEngine {
	return binary.BigEndian
}
