package mpath

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCoordinate(t *testing.T) {
	a, b := Coordinate{3, -2}, Coordinate{-1, 4}

	assert.Equal(t, Coordinate{2, 2}, a.Add(b))
	assert.Equal(t, Coordinate{4, -6}, a.Sub(b))
	assert.Equal(t, int32(10), a.ManhattanDistance(b))
	assert.Equal(t, a.ManhattanDistance(b), b.ManhattanDistance(a))
	assert.True(t, Zero.IsZero())
	assert.False(t, a.IsZero())
	assert.Equal(t, "(3,-2)", a.String())

	assert.NotEqual(t, Coordinate{1, 2}.Hash(), Coordinate{2, 1}.Hash())
	assert.Equal(t, uint64(1)<<32|2, Coordinate{1, 2}.Hash())
}
