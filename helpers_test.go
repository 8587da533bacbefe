package mpath

import (
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/require"
)

// gridFromRows builds a canonical flat grid from rows of text, row y first.
// '.' is open, '#' is blocked, 'o' is occupied and '1'-'9' are open cells
// with that weight.
func gridFromRows(t testing.TB, rows ...string) ([]Cell, int, int) {
	t.Helper()
	require.NotEmpty(t, rows)

	height := len(rows)
	width := len(rows[0])
	cells := make([]Cell, width*height)
	for y, row := range rows {
		require.Len(t, row, width, "row %d", y)
		for x, ch := range row {
			c := Cell{Coordinate: Coordinate{X: int32(x), Y: int32(y)}, IsWalkable: true}
			switch {
			case ch == '#':
				c.IsWalkable = false
			case ch == 'o':
				c.IsOccupied = true
			case ch >= '1' && ch <= '9':
				c.Weight = float32(ch - '0')
			}
			cells[x*height+y] = c
		}
	}
	return cells, width, height
}

// openGrid returns an all-walkable canonical grid, adjusted by fn if non-nil.
func openGrid(width, height int, fn func(c *Cell)) []Cell {
	cells := make([]Cell, width*height)
	for x := range width {
		for y := range height {
			c := Cell{Coordinate: Coordinate{X: int32(x), Y: int32(y)}, IsWalkable: true}
			if fn != nil {
				fn(&c)
			}
			cells[x*height+y] = c
		}
	}
	return cells
}

// randomGrid blocks roughly density of the cells.
func randomGrid(rng *rand.Rand, width, height int, density float64) []Cell {
	return openGrid(width, height, func(c *Cell) {
		c.IsWalkable = rng.Float64() >= density
	})
}

func newTestPathfinder(t testing.TB, source GridSource, options ...Option) *Pathfinder {
	t.Helper()
	p, err := New(source, options...)
	require.NoError(t, err)
	t.Cleanup(func() { _ = p.Close() })
	return p
}

func settingsWith(fn func(s *Settings)) Option {
	s := DefaultSettings()
	fn(&s)
	return WithSettings(s)
}

// findPath runs a search that must succeed and returns its waypoints.
func findPath(t testing.TB, p *Pathfinder, agent Agent, from, to Coordinate) []Coordinate {
	t.Helper()
	result, err := p.GetPath(agent, from, to)
	require.NoError(t, err)
	defer result.Close()
	require.True(t, result.IsSuccess(), "no path from %v to %v", from, to)
	return result.Coordinates()
}

func coords(pairs ...int32) []Coordinate {
	out := make([]Coordinate, 0, len(pairs)/2)
	for i := 0; i+1 < len(pairs); i += 2 {
		out = append(out, Coordinate{X: pairs[i], Y: pairs[i+1]})
	}
	return out
}

// requireConnected checks that every step of an unsmoothed path moves to one
// of the eight neighbours and lands on a cell the agent fits on.
func requireConnected(t testing.TB, cells []Cell, height int, from Coordinate, path []Coordinate, size int) {
	t.Helper()
	width := len(cells) / height
	prev := from
	for i, c := range path {
		d := c.Sub(prev)
		require.True(t, d.X >= -1 && d.X <= 1 && d.Y >= -1 && d.Y <= 1 && d != Zero,
			"step %d from %v to %v is not a neighbour move", i, prev, c)
		for dx := int32(0); dx < int32(size); dx++ {
			for dy := int32(0); dy < int32(size); dy++ {
				x, y := c.X+dx, c.Y+dy
				require.True(t, x >= 0 && int(x) < width && y >= 0 && int(y) < height,
					"step %d footprint leaves the grid at (%d,%d)", i, x, y)
				require.True(t, cells[int(x)*height+int(y)].IsWalkable,
					"step %d footprint hits blocked (%d,%d)", i, x, y)
			}
		}
		prev = c
	}
}
