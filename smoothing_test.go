package mpath

import (
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func smoothingEngines(t *testing.T, source GridSource, fn func(s *Settings)) (raw, simple, pulled *Pathfinder) {
	t.Helper()
	with := func(method SmoothingMethod) Option {
		return settingsWith(func(s *Settings) {
			if fn != nil {
				fn(s)
			}
			s.Smoothing = method
		})
	}
	return newTestPathfinder(t, source, with(SmoothingNone)),
		newTestPathfinder(t, source, with(SmoothingSimple)),
		newTestPathfinder(t, source, with(SmoothingStringPulling))
}

func TestSmoothing(t *testing.T) {
	tests := []struct {
		name       string
		rows       []string
		from, to   Coordinate
		noDiagonal bool
		raw        []Coordinate
		simple     []Coordinate
		pulled     []Coordinate
	}{
		{
			name: "straight diagonal",
			rows: []string{
				"..........", "..........", "..........", "..........", "..........",
				"..........", "..........", "..........", "..........", "..........",
			},
			from:   Coordinate{0, 0},
			to:     Coordinate{9, 9},
			raw:    coords(1, 1, 2, 2, 3, 3, 4, 4, 5, 5, 6, 6, 7, 7, 8, 8, 9, 9),
			simple: coords(1, 1, 9, 9),
			pulled: coords(1, 1, 9, 9),
		},
		{
			name:       "staircase without diagonals",
			rows:       []string{".....", ".....", ".....", ".....", "....."},
			from:       Coordinate{0, 0},
			to:         Coordinate{4, 4},
			noDiagonal: true,
			raw:        coords(1, 0, 1, 1, 1, 2, 2, 2, 3, 2, 4, 2, 4, 3, 4, 4),
			simple:     coords(1, 0, 1, 2, 4, 2, 4, 4),
			pulled:     coords(1, 0, 4, 4),
		},
		{
			name: "corner keeps its turn",
			rows: []string{
				".####",
				".####",
				".####",
				".####",
				".....",
			},
			from:   Coordinate{0, 0},
			to:     Coordinate{4, 4},
			raw:    coords(0, 1, 0, 2, 0, 3, 1, 4, 2, 4, 3, 4, 4, 4),
			simple: coords(0, 1, 0, 3, 1, 4, 4, 4),
			pulled: coords(0, 1, 0, 3, 1, 4, 4, 4),
		},
		{
			name: "around a pillar",
			rows: []string{
				"....#...",
				"....#...",
				"....#...",
				"....#...",
				"....#...",
				"....#...",
				"........",
				"........",
			},
			from:   Coordinate{0, 0},
			to:     Coordinate{7, 0},
			raw:    coords(1, 1, 2, 2, 3, 3, 3, 4, 3, 5, 4, 6, 5, 5, 6, 4, 7, 3, 7, 2, 7, 1, 7, 0),
			simple: coords(1, 1, 3, 3, 3, 5, 4, 6, 7, 3, 7, 0),
			pulled: coords(1, 1, 4, 6, 7, 0),
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cells, w, h := gridFromRows(t, tt.rows...)
			raw, simple, pulled := smoothingEngines(t, FromCells(cells, w, h), func(s *Settings) {
				s.DiagonalMovement = !tt.noDiagonal
			})

			assert.Equal(t, tt.raw, findPath(t, raw, AgentSize(1), tt.from, tt.to), "raw")
			assert.Equal(t, tt.simple, findPath(t, simple, AgentSize(1), tt.from, tt.to), "simple")
			assert.Equal(t, tt.pulled, findPath(t, pulled, AgentSize(1), tt.from, tt.to), "string pulling")
		})
	}
}

func TestSmoothing_ShortPathsAreUntouched(t *testing.T) {
	_, simple, pulled := smoothingEngines(t, FromCells(openGrid(5, 5, nil), 5, 5), nil)

	for _, p := range []*Pathfinder{simple, pulled} {
		assert.Equal(t, coords(1, 1, 2, 2), findPath(t, p, AgentSize(1), Coordinate{0, 0}, Coordinate{2, 2}))
		assert.Equal(t, coords(1, 0), findPath(t, p, AgentSize(1), Coordinate{0, 0}, Coordinate{1, 0}))
	}
}

func TestSmoothing_Properties(t *testing.T) {
	rng := rand.New(rand.NewPCG(42, 1))
	const w, h = 16, 16

	for trial := range 150 {
		cells := randomGrid(rng, w, h, 0.25)
		source := FromCells(cells, w, h)
		raw, simple, pulled := smoothingEngines(t, source, nil)

		from := Coordinate{int32(rng.IntN(w)), int32(rng.IntN(h))}
		to := Coordinate{int32(rng.IntN(w)), int32(rng.IntN(h))}
		if from == to {
			continue
		}

		rawResult, err := raw.GetPath(AgentSize(1), from, to)
		require.NoError(t, err)
		if !rawResult.IsSuccess() {
			continue
		}
		rawPath := rawResult.Coordinates()
		simplePath := findPath(t, simple, AgentSize(1), from, to)
		pulledPath := findPath(t, pulled, AgentSize(1), from, to)

		require.LessOrEqual(t, len(simplePath), len(rawPath), "trial %d", trial)
		require.LessOrEqual(t, len(pulledPath), len(simplePath), "trial %d", trial)

		for _, path := range [][]Coordinate{simplePath, pulledPath} {
			require.Equal(t, rawPath[0], path[0], "trial %d", trial)
			require.Equal(t, rawPath[len(rawPath)-1], path[len(path)-1], "trial %d", trial)
			require.Subset(t, rawPath, path, "trial %d", trial)
		}
		for i := 1; i < len(pulledPath); i++ {
			require.True(t, pulled.hasLineOfSight(pulledPath[i-1], pulledPath[i]),
				"trial %d: no sight from %v to %v", trial, pulledPath[i-1], pulledPath[i])
		}

		require.NoError(t, rawResult.Close())
		require.NoError(t, raw.Close())
		require.NoError(t, simple.Close())
		require.NoError(t, pulled.Close())
	}
}

func TestHasLineOfSight(t *testing.T) {
	cells, w, h := gridFromRows(t,
		".....",
		"..#..",
		".....",
	)
	p := newTestPathfinder(t, FromCells(cells, w, h))

	assert.True(t, p.hasLineOfSight(Coordinate{0, 0}, Coordinate{4, 0}))
	assert.False(t, p.hasLineOfSight(Coordinate{0, 1}, Coordinate{4, 1}))
	assert.False(t, p.hasLineOfSight(Coordinate{4, 1}, Coordinate{0, 1}), "direction does not matter")
	assert.True(t, p.hasLineOfSight(Coordinate{1, 1}, Coordinate{2, 1}), "endpoints are not tested")
	assert.True(t, p.hasLineOfSight(Coordinate{0, 0}, Coordinate{0, 2}))
	assert.False(t, p.hasLineOfSight(Coordinate{1, 0}, Coordinate{3, 2}))
}
