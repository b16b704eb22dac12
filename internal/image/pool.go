package image

import "sync"

// Pool recycles pixel allocations.
//
// Allocations are grouped by their exact byte size, so a released
// 100×100 RGBA8888 buffer can back a new 200×50 one.
//
// Thread safety: All methods are safe for concurrent use.
type Pool struct {
	mu      sync.Mutex
	buckets map[int][][]byte
	maxSize int // max allocations per bucket
}

// NewPool creates a pool that keeps at most maxPerBucket allocations of
// each size. Zero means unlimited.
func NewPool(maxPerBucket int) *Pool {
	return &Pool{
		buckets: make(map[int][][]byte),
		maxSize: maxPerBucket,
	}
}

// Get returns a zeroed buffer, reusing an allocation of the exact size when
// one is available.
func (p *Pool) Get(width, height int, format Format) (*Buf, error) {
	if width <= 0 || height <= 0 {
		return nil, ErrInvalidDimensions
	}
	if !format.IsValid() {
		return nil, ErrInvalidFormat
	}
	size := format.ImageBytes(width, height)

	p.mu.Lock()
	bucket := p.buckets[size]
	if n := len(bucket); n > 0 {
		data := bucket[n-1]
		bucket[n-1] = nil
		p.buckets[size] = bucket[:n-1]
		p.mu.Unlock()

		clear(data)
		return FromRaw(data, width, height, format)
	}
	p.mu.Unlock()

	return NewBuf(width, height, format)
}

// Put releases the allocation of buf into the pool. buf has no storage
// afterwards. A nil or already released buffer is ignored.
func (p *Pool) Put(buf *Buf) {
	if buf == nil || buf.Released() {
		return
	}
	data := buf.Release()

	p.mu.Lock()
	defer p.mu.Unlock()

	bucket := p.buckets[len(data)]
	if p.maxSize > 0 && len(bucket) >= p.maxSize {
		return
	}
	p.buckets[len(data)] = append(bucket, data)
}

// Len returns the number of pooled allocations of the given byte size.
func (p *Pool) Len(size int) int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.buckets[size])
}

var defaultPool = NewPool(8)

// Default returns the process-wide pool.
func Default() *Pool {
	return defaultPool
}
