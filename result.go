package mpath

import (
	"fmt"
	"iter"

	"github.com/pdrpinto/mpath/internal"
)

// Buffers above this many waypoints are dropped instead of pooled.
const maxPooledPathCap = 1 << 16

var coordinatePool = internal.NewPool[Coordinate](maxPooledPathCap)

// PathResult is the outcome of a search. A successful result owns a pooled
// coordinate buffer; Close hands it back to the pool exactly once. The path
// excludes the start and ends at the destination.
//
// A PathResult has a single owner. Use Clone to hand an independent copy to
// someone else.
type PathResult struct {
	buf      *[]Coordinate
	length   int
	success  bool
	shared   bool
	released bool
}

var (
	failureResult = &PathResult{shared: true}
	emptyResult   = &PathResult{success: true, shared: true}
)

// Failure returns the shared "no path" result. Closing it is a no-op.
func Failure() *PathResult { return failureResult }

func newPathResult(buf *[]Coordinate, length int) *PathResult {
	return &PathResult{buf: buf, length: length, success: true}
}

// IsSuccess reports whether a path was found.
func (r *PathResult) IsSuccess() bool { return r.success }

// Len returns the number of waypoints.
func (r *PathResult) Len() int { return r.length }

// At returns the i-th waypoint.
func (r *PathResult) At(i int) (Coordinate, error) {
	if r.released {
		return Coordinate{}, ErrResultReleased
	}
	if !r.success {
		return Coordinate{}, ErrResultFailed
	}
	if i < 0 || i >= r.length {
		return Coordinate{}, fmt.Errorf("%w: %d not in [0,%d)", ErrIndexOutOfRange, i, r.length)
	}
	return (*r.buf)[i], nil
}

// All iterates over the waypoints in order.
func (r *PathResult) All() iter.Seq2[int, Coordinate] {
	return func(yield func(int, Coordinate) bool) {
		if r.released || r.length == 0 {
			return
		}
		for i, c := range (*r.buf)[:r.length] {
			if !yield(i, c) {
				return
			}
		}
	}
}

// AppendTo appends the waypoints to dst and returns the extended slice.
func (r *PathResult) AppendTo(dst []Coordinate) []Coordinate {
	if r.released || r.length == 0 {
		return dst
	}
	return append(dst, (*r.buf)[:r.length]...)
}

// Coordinates returns a freshly allocated copy of the waypoints.
func (r *PathResult) Coordinates() []Coordinate {
	if r.released || r.length == 0 {
		return nil
	}
	return r.AppendTo(make([]Coordinate, 0, r.length))
}

// Clone returns an independent result backed by its own pooled buffer.
func (r *PathResult) Clone() (*PathResult, error) {
	if r.released {
		return nil, ErrResultReleased
	}
	if r.shared {
		return r, nil
	}
	buf := coordinatePool.Rent(r.length)
	copy(*buf, (*r.buf)[:r.length])
	return newPathResult(buf, r.length), nil
}

// Close returns the buffer to the pool. Further calls are no-ops.
func (r *PathResult) Close() error {
	if r.shared || r.released {
		return nil
	}
	r.released = true
	coordinatePool.Return(r.buf)
	r.buf = nil
	return nil
}
