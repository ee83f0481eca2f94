package wire

import (
	"math"

	"github.com/apex-algorithms/grc20-go/endian"
	"github.com/apex-algorithms/grc20-go/id"
	"github.com/apex-algorithms/grc20-go/internal/pool"
	"github.com/apex-algorithms/grc20-go/limits"
)

// le is the byte-order engine every fixed-width wire field is written
// with (spec §9: the wire format is always little-endian).
var le = endian.GetLittleEndianEngine()

// Writer accumulates an edit's encoded bytes into a pooled, growable
// buffer. A Writer is single-use: call Bytes to read the result, then
// Release to return the backing buffer to the pool.
type Writer struct {
	buf *pool.ByteBuffer
}

// NewWriter creates a Writer backed by a buffer drawn from the package's
// shared edit-encoding pool.
func NewWriter() *Writer {
	return &Writer{buf: pool.GetEditBuffer()}
}

// Bytes returns the bytes written so far. The returned slice shares the
// Writer's backing array and must not be retained past Release.
func (w *Writer) Bytes() []byte { return w.buf.Bytes() }

// Len returns the number of bytes written so far.
func (w *Writer) Len() int { return w.buf.Len() }

// Release returns the backing buffer to the pool. The Writer must not be
// used afterward.
func (w *Writer) Release() { pool.PutEditBuffer(w.buf) }

// WriteByte writes a single byte.
func (w *Writer) WriteByte(b byte) {
	w.buf.Grow(1)
	w.buf.MustWrite([]byte{b})
}

// WriteRaw appends b verbatim.
func (w *Writer) WriteRaw(b []byte) {
	w.buf.Grow(len(b))
	w.buf.MustWrite(b)
}

// WriteUvarint writes v as a LEB128 unsigned varint.
func (w *Writer) WriteUvarint(v uint64) {
	var tmp [limits.MaxVarintBytes]byte
	n := 0

	for v >= 0x80 {
		tmp[n] = byte(v) | 0x80
		v >>= 7
		n++
	}

	tmp[n] = byte(v)
	n++

	w.WriteRaw(tmp[:n])
}

// WriteVarint zigzag-encodes v and writes it as a LEB128 varint.
func (w *Writer) WriteVarint(v int64) {
	w.WriteUvarint(ZigzagEncode(v))
}

// WriteFloat64 writes f as 8 little-endian bytes.
func (w *Writer) WriteFloat64(f float64) {
	var buf [8]byte
	le.PutUint64(buf[:], math.Float64bits(f))
	w.WriteRaw(buf[:])
}

// WriteLengthPrefixed writes a varint length followed by b.
func (w *Writer) WriteLengthPrefixed(b []byte) {
	w.WriteUvarint(uint64(len(b)))
	w.WriteRaw(b)
}

// WriteString writes s as a length-prefixed UTF-8 byte sequence.
func (w *Writer) WriteString(s string) {
	w.WriteLengthPrefixed([]byte(s))
}

// WriteID writes a fixed 16-byte Id.
func (w *Writer) WriteID(v id.Id) {
	w.WriteRaw(v[:])
}

// WriteIDVec writes a varint count followed by each Id's 16 raw bytes.
func (w *Writer) WriteIDVec(ids []id.Id) {
	w.WriteUvarint(uint64(len(ids)))
	for _, v := range ids {
		w.WriteID(v)
	}
}
