package mpath

import (
	"strconv"

	"github.com/pdrpinto/mpath/internal"
)

// Coordinate is a cell position on the grid.
type Coordinate struct {
	X int32
	Y int32
}

// Zero is the distinguished zero coordinate.
var Zero = Coordinate{}

// IsZero reports whether c equals Zero.
func (c Coordinate) IsZero() bool { return c == Zero }

// Add returns c+o.
func (c Coordinate) Add(o Coordinate) Coordinate { return Coordinate{X: c.X + o.X, Y: c.Y + o.Y} }

// Sub returns c-o.
func (c Coordinate) Sub(o Coordinate) Coordinate { return Coordinate{X: c.X - o.X, Y: c.Y - o.Y} }

// ManhattanDistance returns |dx| + |dy| between c and o.
func (c Coordinate) ManhattanDistance(o Coordinate) int32 {
	return internal.Abs(o.X-c.X) + internal.Abs(o.Y-c.Y)
}

// Hash packs both axes into a single key.
func (c Coordinate) Hash() uint64 {
	return uint64(uint32(c.X))<<32 | uint64(uint32(c.Y))
}

func (c Coordinate) String() string {
	return "(" + strconv.FormatInt(int64(c.X), 10) + "," + strconv.FormatInt(int64(c.Y), 10) + ")"
}
