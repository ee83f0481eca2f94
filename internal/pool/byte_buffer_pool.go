// Package pool provides a reusable byte-buffer pool backing wire.Writer,
// so repeated edit encodes don't each pay for a fresh allocation.
package pool

import "sync"

const (
	// EditBufferDefaultSize is the default capacity of a ByteBuffer
	// obtained from the pool — large enough for a modest edit (a few
	// dozen ops) without reallocating.
	EditBufferDefaultSize = 4 * 1024
	// EditBufferMaxThreshold is the largest buffer capacity the pool will
	// retain; encoders for unusually large edits return their buffer to
	// the pool but the pool discards it rather than pinning the memory.
	EditBufferMaxThreshold = 1024 * 1024
)

// ByteBuffer is a growable byte slice with an amortized growth strategy,
// safe to reuse across encode calls via ByteBufferPool.
type ByteBuffer struct {
	B []byte
}

// NewByteBuffer creates a new ByteBuffer with the given starting capacity.
func NewByteBuffer(defaultSize int) *ByteBuffer {
	return &ByteBuffer{B: make([]byte, 0, defaultSize)}
}

// Bytes returns the underlying byte slice.
func (bb *ByteBuffer) Bytes() []byte {
	return bb.B
}

// Reset empties the buffer while retaining its backing array.
func (bb *ByteBuffer) Reset() {
	bb.B = bb.B[:0]
}

// Len returns the number of bytes currently written.
func (bb *ByteBuffer) Len() int {
	return len(bb.B)
}

// Cap returns the buffer's current capacity.
func (bb *ByteBuffer) Cap() int {
	return cap(bb.B)
}

// MustWrite appends data to the buffer, growing it if necessary.
func (bb *ByteBuffer) MustWrite(data []byte) {
	bb.B = append(bb.B, data...)
}

// Grow ensures the buffer can hold at least requiredBytes more bytes
// without reallocating.
//
// Growth strategy: for small buffers, grow by EditBufferDefaultSize to
// minimize reallocations; for larger buffers, grow by 25% of current
// capacity to balance memory usage against copy cost.
func (bb *ByteBuffer) Grow(requiredBytes int) {
	available := cap(bb.B) - len(bb.B)
	if available >= requiredBytes {
		return
	}

	growBy := EditBufferDefaultSize
	if cap(bb.B) > 4*EditBufferDefaultSize {
		growBy = cap(bb.B) / 4
	}
	if growBy < requiredBytes {
		growBy = requiredBytes
	}

	newBuf := make([]byte, len(bb.B), len(bb.B)+growBy)
	copy(newBuf, bb.B)
	bb.B = newBuf
}

// Write implements io.Writer.
func (bb *ByteBuffer) Write(data []byte) (int, error) {
	bb.B = append(bb.B, data...)
	return len(data), nil
}

// ByteBufferPool is a sync.Pool of ByteBuffers with a discard threshold so
// an outsized edit doesn't permanently inflate the pool's memory
// footprint.
type ByteBufferPool struct {
	pool         sync.Pool
	maxThreshold int
}

// NewByteBufferPool creates a pool whose buffers start at defaultSize and
// are discarded, rather than retained, once they grow past maxThreshold.
func NewByteBufferPool(defaultSize, maxThreshold int) *ByteBufferPool {
	return &ByteBufferPool{
		pool: sync.Pool{
			New: func() any { return NewByteBuffer(defaultSize) },
		},
		maxThreshold: maxThreshold,
	}
}

// Get retrieves a ByteBuffer from the pool.
func (bbp *ByteBufferPool) Get() *ByteBuffer {
	bb, _ := bbp.pool.Get().(*ByteBuffer)
	return bb
}

// Put returns a ByteBuffer to the pool for reuse.
func (bbp *ByteBufferPool) Put(bb *ByteBuffer) {
	if bb == nil {
		return
	}
	if bbp.maxThreshold > 0 && cap(bb.B) > bbp.maxThreshold {
		return
	}
	bb.Reset()
	bbp.pool.Put(bb)
}

var editBufferPool = NewByteBufferPool(EditBufferDefaultSize, EditBufferMaxThreshold)

// GetEditBuffer retrieves a ByteBuffer from the default edit-encoding pool.
func GetEditBuffer() *ByteBuffer {
	return editBufferPool.Get()
}

// PutEditBuffer returns a ByteBuffer to the default edit-encoding pool.
func PutEditBuffer(bb *ByteBuffer) {
	editBufferPool.Put(bb)
}
