package wire

import (
	"math"
	"unicode/utf8"

	"github.com/apex-algorithms/grc20-go/endian"
	"github.com/apex-algorithms/grc20-go/errs"
	"github.com/apex-algorithms/grc20-go/id"
	"github.com/apex-algorithms/grc20-go/limits"
)

// le is the byte-order engine every fixed-width wire field is read with
// (spec §9: the wire format is always little-endian).
var le = endian.GetLittleEndianEngine()

// Reader reads primitives off a borrowed byte slice. Byte slices returned
// by ReadBytesN and ReadLengthPrefixedBytes (and so bytes and embedding
// payloads) are borrows into the slice passed to NewReader, valid exactly
// as long as that slice is — the decoder's producers are responsible for
// copying a value out if they need to retain it past the input's
// lifetime. ReadString returns a Go string, which is a copy.
//
// Reader is not safe for concurrent use; each decode call constructs its
// own.
type Reader struct {
	data []byte
	pos  int
}

// NewReader creates a Reader over data. data is borrowed, not copied.
func NewReader(data []byte) *Reader {
	return &Reader{data: data}
}

// Len returns the number of unread bytes remaining.
func (r *Reader) Len() int { return len(r.data) - r.pos }

// Pos returns the current read offset into the original slice.
func (r *Reader) Pos() int { return r.pos }

func (r *Reader) requireBytes(n int, context string) error {
	if r.Len() < n {
		return &errs.UnexpectedEOFError{Context: context}
	}

	return nil
}

// ReadByte reads a single byte.
func (r *Reader) ReadByte() (byte, error) {
	if err := r.requireBytes(1, "byte"); err != nil {
		return 0, err
	}

	b := r.data[r.pos]
	r.pos++

	return b, nil
}

// ReadBytesN reads exactly n raw bytes and returns a borrow into the
// input slice.
func (r *Reader) ReadBytesN(n int, context string) ([]byte, error) {
	if err := r.requireBytes(n, context); err != nil {
		return nil, err
	}

	out := r.data[r.pos : r.pos+n]
	r.pos += n

	return out, nil
}

// ReadUvarint reads a LEB128-encoded unsigned varint, rejecting any
// encoding longer than limits.MaxVarintBytes or whose final byte would
// overflow 64 bits (spec §4.1).
func (r *Reader) ReadUvarint() (uint64, error) {
	var result uint64
	var shift uint

	for i := 0; i < limits.MaxVarintBytes; i++ {
		b, err := r.ReadByte()
		if err != nil {
			return 0, err
		}

		if i == limits.MaxVarintBytes-1 && b&0xFE != 0 {
			return 0, &errs.VarintTooLongError{}
		}

		result |= uint64(b&0x7F) << shift
		if b&0x80 == 0 {
			return result, nil
		}

		shift += 7
	}

	return 0, &errs.VarintTooLongError{}
}

// ReadVarint reads a zigzag-encoded signed varint.
func (r *Reader) ReadVarint() (int64, error) {
	u, err := r.ReadUvarint()
	if err != nil {
		return 0, err
	}

	return ZigzagDecode(u), nil
}

// ReadFloat64 reads a fixed 8-byte little-endian IEEE-754 float. NaN
// rejection is the caller's responsibility — some fields (e.g. Point
// altitude) validate NaN differently depending on context.
func (r *Reader) ReadFloat64() (float64, error) {
	b, err := r.ReadBytesN(8, "float64")
	if err != nil {
		return 0, err
	}

	return math.Float64frombits(le.Uint64(b)), nil
}

// ReadLengthPrefixedBytes reads a varint length followed by that many raw
// bytes, rejecting a declared length over max before any allocation.
func (r *Reader) ReadLengthPrefixedBytes(max int, field string) ([]byte, error) {
	n, err := r.ReadUvarint()
	if err != nil {
		return nil, err
	}

	if n > uint64(max) {
		return nil, &errs.LengthExceedsLimitError{Field: field, Len: int(n), Max: max}
	}

	return r.ReadBytesN(int(n), field)
}

// ReadString reads a length-prefixed UTF-8 string, validating encoding.
func (r *Reader) ReadString(max int, field string) (string, error) {
	b, err := r.ReadLengthPrefixedBytes(max, field)
	if err != nil {
		return "", err
	}

	if !utf8.Valid(b) {
		return "", &errs.MalformedEncodingError{Context: field + ": invalid utf-8"}
	}

	return string(b), nil
}

// ReadID reads a fixed 16-byte Id.
func (r *Reader) ReadID() (id.Id, error) {
	b, err := r.ReadBytesN(16, "id")
	if err != nil {
		return id.Id{}, err
	}

	var out id.Id
	copy(out[:], b)

	return out, nil
}

// ReadIDVec reads a varint count followed by that many 16-byte Ids,
// rejecting a declared count over max before allocating the slice.
func (r *Reader) ReadIDVec(max int, field string) ([]id.Id, error) {
	n, err := r.ReadUvarint()
	if err != nil {
		return nil, err
	}

	if n > uint64(max) {
		return nil, &errs.LengthExceedsLimitError{Field: field, Len: int(n), Max: max}
	}

	out := make([]id.Id, n)
	for i := range out {
		v, err := r.ReadID()
		if err != nil {
			return nil, err
		}

		out[i] = v
	}

	return out, nil
}
