// Package pool provides reusable byte buffers for reading header and body
// ranges from byte sources.
package pool

import "sync"

// Buffer size classes.
const (
	HeaderBufferSize      = 512              // exactly one header region
	BodyBufferDefaultSize = 64 * 1024        // 64KiB
	BodyBufferMaxRetained = 16 * 1024 * 1024 // 16MiB; larger buffers are left to the GC
)

// ByteBuffer wraps a byte slice so it can travel through a sync.Pool without
// an extra allocation.
type ByteBuffer struct {
	// B is the underlying byte slice.
	B []byte
}

// Resize sets the length of the buffer to n, reallocating if the capacity is too small.
// The contents after a reallocation are zero.
func (bb *ByteBuffer) Resize(n int) []byte {
	if cap(bb.B) < n {
		bb.B = make([]byte, n)
	}
	bb.B = bb.B[:n]

	return bb.B
}

// Bytes returns the underlying byte slice.
func (bb *ByteBuffer) Bytes() []byte {
	return bb.B
}

// ByteBufferPool is a sync.Pool of ByteBuffers that drops buffers grown past
// maxRetained when they are returned.
type ByteBufferPool struct {
	pool        sync.Pool
	maxRetained int
}

// NewByteBufferPool creates a new ByteBufferPool with buffers of the specified default capacity.
func NewByteBufferPool(defaultSize, maxRetained int) *ByteBufferPool {
	return &ByteBufferPool{
		pool: sync.Pool{
			New: func() any {
				return &ByteBuffer{B: make([]byte, 0, defaultSize)}
			},
		},
		maxRetained: maxRetained,
	}
}

// Get retrieves a ByteBuffer resized to n bytes.
func (p *ByteBufferPool) Get(n int) *ByteBuffer {
	bb, _ := p.pool.Get().(*ByteBuffer)
	bb.Resize(n)

	return bb
}

// Put returns a ByteBuffer to the pool.
func (p *ByteBufferPool) Put(bb *ByteBuffer) {
	if bb == nil {
		return
	}
	if p.maxRetained > 0 && cap(bb.B) > p.maxRetained {
		return
	}

	bb.B = bb.B[:0]
	p.pool.Put(bb)
}

var (
	headerPool = NewByteBufferPool(HeaderBufferSize, HeaderBufferSize)
	bodyPool   = NewByteBufferPool(BodyBufferDefaultSize, BodyBufferMaxRetained)
)

// GetHeaderBuffer retrieves a 512-byte buffer for a header read.
func GetHeaderBuffer() *ByteBuffer {
	return headerPool.Get(HeaderBufferSize)
}

// PutHeaderBuffer returns a header buffer to its pool.
func PutHeaderBuffer(bb *ByteBuffer) {
	headerPool.Put(bb)
}

// GetBodyBuffer retrieves a buffer of n bytes for a body read.
func GetBodyBuffer(n int) *ByteBuffer {
	return bodyPool.Get(n)
}

// PutBodyBuffer returns a body buffer to its pool.
func PutBodyBuffer(bb *ByteBuffer) {
	bodyPool.Put(bb)
}
