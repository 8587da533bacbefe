package mpath

import "fmt"

const maxNeighbors = 8

// Neighbour slots, cardinal first.
const (
	west = iota
	east
	south
	north
	southWest
	northWest
	southEast
	northEast

	diagonalStart = southWest
)

// searchRun is the state of the search in progress on a Pathfinder.
type searchRun struct {
	from      Coordinate
	to        Coordinate
	target    int32
	agentSize int
	current   int32
	expanded  int
	done      bool
}

func (p *Pathfinder) inBounds(x, y int32) bool {
	return x >= 0 && int(x) < p.width && y >= 0 && int(y) < p.height
}

func (p *Pathfinder) index(c Coordinate) int32 {
	return c.X*int32(p.height) + c.Y
}

// begin resets the scratch state and seeds the open set with the start cell.
func (p *Pathfinder) begin(agentSize int, from, to Coordinate) error {
	p.generation++

	if err := p.source.refresh(p.cells, p.width, p.height); err != nil {
		return fmt.Errorf("refresh grid: %w", err)
	}

	clear(p.states)
	p.open.clear()

	start := p.index(from)
	p.run = searchRun{
		from:      from,
		to:        to,
		target:    p.index(to),
		agentSize: agentSize,
		current:   start,
	}

	p.open.enqueue(start, float32(from.ManhattanDistance(to)))
	return nil
}

// advance expands one cell and reports whether the search is over.
func (p *Pathfinder) advance() bool {
	if p.run.done {
		return true
	}

	current, err := p.open.dequeue()
	if err != nil {
		p.run.done = true
		return true
	}
	p.run.current = current

	if current == p.run.target {
		p.run.done = true
		return true
	}

	p.states[current].closed = true
	p.run.expanded++

	p.populateNeighbors(current)
	p.processNeighbors(current)
	return false
}

func (p *Pathfinder) found() bool {
	return p.run.done && p.run.current == p.run.target
}

func (p *Pathfinder) processNeighbors(current int32) {
	currentState := &p.states[current]
	currentCoord := coordinateAt(current, p.height)

	for _, neighbor := range p.neighbors {
		if neighbor == noCell {
			continue
		}
		state := &p.states[neighbor]
		if state.closed {
			continue
		}

		coord := coordinateAt(neighbor, p.height)
		scoreH := float32(coord.ManhattanDistance(p.run.to))

		travel := p.settings.StraightMultiplier
		if coord.X != currentCoord.X && coord.Y != currentCoord.Y {
			travel = p.settings.DiagonalMultiplier
		}
		var weight float32
		if p.settings.CellWeights {
			weight = p.cells[neighbor].Weight
		}

		// Step cost scales with the remaining distance, not the step length.
		scoreG := currentState.scoreG + travel*scoreH + weight*scoreH

		if !p.open.contains(neighbor) {
			state.parent = current
			state.depth = currentState.depth + 1
			state.scoreG = scoreG
			state.scoreH = scoreH
			p.open.enqueue(neighbor, scoreG+scoreH)
		} else if scoreG+state.scoreH < state.scoreF {
			state.parent = current
			state.depth = currentState.depth + 1
			state.scoreG = scoreG
			p.open.update(neighbor, scoreG+state.scoreH)
		}
	}
}

func (p *Pathfinder) populateNeighbors(current int32) {
	c := coordinateAt(current, p.height)
	n := &p.neighbors

	n[west] = p.clearLocation(c.X-1, c.Y)
	n[east] = p.clearLocation(c.X+1, c.Y)
	n[south] = p.clearLocation(c.X, c.Y+1)
	n[north] = p.clearLocation(c.X, c.Y-1)

	if !p.settings.DiagonalMovement {
		for i := diagonalStart; i < maxNeighbors; i++ {
			n[i] = noCell
		}
		return
	}

	canGoWest := n[west] != noCell
	canGoEast := n[east] != noCell
	canGoSouth := n[south] != noCell
	canGoNorth := n[north] != noCell
	corners := p.settings.CornerCutting

	n[southWest] = p.diagonalLocation(c.X-1, c.Y+1, canGoWest || canGoSouth || corners)
	n[northWest] = p.diagonalLocation(c.X-1, c.Y-1, canGoWest || canGoNorth || corners)
	n[southEast] = p.diagonalLocation(c.X+1, c.Y+1, canGoEast || canGoSouth || corners)
	n[northEast] = p.diagonalLocation(c.X+1, c.Y-1, canGoEast || canGoNorth || corners)
}

func (p *Pathfinder) diagonalLocation(x, y int32, allowed bool) int32 {
	if !allowed {
		return noCell
	}
	return p.clearLocation(x, y)
}

// walkableLocation returns the index of (x, y) if a single-cell agent may
// stand there, or noCell.
func (p *Pathfinder) walkableLocation(x, y int32) int32 {
	if !p.inBounds(x, y) {
		return noCell
	}
	i := x*int32(p.height) + y
	cell := &p.cells[i]
	if !cell.IsWalkable || (p.settings.BlockOccupied && cell.IsOccupied) {
		return noCell
	}
	return i
}

// clearLocation is walkableLocation for the whole agent footprint anchored
// at (x, y).
func (p *Pathfinder) clearLocation(x, y int32) int32 {
	location := p.walkableLocation(x, y)
	if location == noCell || p.run.agentSize == 1 {
		return location
	}

	// A footprint wider than the grid never fits. The bound also keeps the
	// offsets below within int32.
	size := p.run.agentSize
	if size > p.width || size > p.height {
		return noCell
	}
	for dy := range int32(size) {
		for dx := range int32(size) {
			if p.walkableLocation(x+dx, y+dy) == noCell {
				return noCell
			}
		}
	}
	return location
}

// writePath fills dst (of the target's depth) from the parent links,
// destination last.
func (p *Pathfinder) writePath(dst []Coordinate) {
	cell := p.run.target
	for i := len(dst) - 1; i >= 0; i-- {
		dst[i] = coordinateAt(cell, p.height)
		cell = p.states[cell].parent
	}
}

func (p *Pathfinder) reconstructPath() *PathResult {
	depth := int(p.states[p.run.target].depth)
	buf := coordinatePool.Rent(depth)
	p.writePath(*buf)

	if p.settings.Smoothing != SmoothingNone && depth > 2 {
		return p.smoothPath(buf, depth)
	}
	return newPathResult(buf, depth)
}
