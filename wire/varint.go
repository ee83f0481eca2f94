// Package wire implements the byte-level primitives the edit codec is
// built on: LEB128 varints (unsigned and zigzag-signed), fixed 8-byte
// little-endian floats, length-prefixed bytes/strings, 16-byte Id
// read/write, and Id vectors — all bounded against limits.MaxVarintBytes
// and the caller-supplied field limits, so a malformed or hostile input
// fails before any allocation proportional to an attacker-controlled
// length is attempted.
package wire

import "encoding/binary"

// AppendUvarint appends the LEB128 encoding of v to buf and returns the
// extended slice.
func AppendUvarint(buf []byte, v uint64) []byte {
	for v >= 0x80 {
		buf = append(buf, byte(v)|0x80)
		v >>= 7
	}
	return append(buf, byte(v))
}

// AppendZigzagVarint zigzag-encodes v and appends its LEB128 form to buf.
func AppendZigzagVarint(buf []byte, v int64) []byte {
	u := uint64(v<<1) ^ uint64(v>>63)
	return AppendUvarint(buf, u)
}

// AppendFloat64LE appends bits, the IEEE-754 bit pattern of a float64
// (as from math.Float64bits), to buf as 8 little-endian bytes.
func AppendFloat64LE(buf []byte, bits uint64) []byte {
	var tmp [8]byte
	binary.LittleEndian.PutUint64(tmp[:], bits)
	return append(buf, tmp[:]...)
}

// ZigzagEncode converts a signed value to its zigzag-encoded unsigned
// form: 0, -1, 1, -2, 2, ... maps to 0, 1, 2, 3, 4, ...
func ZigzagEncode(v int64) uint64 {
	return uint64(v<<1) ^ uint64(v>>63)
}

// ZigzagDecode is the inverse of ZigzagEncode.
func ZigzagDecode(u uint64) int64 {
	return int64(u>>1) ^ -int64(u&1)
}
