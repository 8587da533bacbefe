package internal

import "sync"

// Pool hands out reusable slices of T. Slices come back zeroed.
type Pool[T any] struct {
	pool   sync.Pool
	maxCap int
}

// NewPool creates a pool. Slices with a capacity above maxCap are not kept;
// maxCap <= 0 keeps everything.
func NewPool[T any](maxCap int) *Pool[T] {
	return &Pool[T]{maxCap: maxCap}
}

// Rent returns a zeroed slice of length n. The backing array may be larger.
func (p *Pool[T]) Rent(n int) *[]T {
	if v := p.pool.Get(); v != nil {
		buf := v.(*[]T)
		if cap(*buf) >= n {
			*buf = (*buf)[:n]
			clear(*buf)
			return buf
		}
		// too small for this request, let it go
	}
	buf := make([]T, n)
	return &buf
}

// Return gives a slice back to the pool. The caller must not touch it afterwards.
func (p *Pool[T]) Return(buf *[]T) {
	if buf == nil {
		return
	}
	if p.maxCap > 0 && cap(*buf) > p.maxCap {
		return // reject oversized
	}
	*buf = (*buf)[:0]
	p.pool.Put(buf)
}
