package mpath

import "github.com/pdrpinto/mpath/internal"

// smoothPath replaces the raw path in buf with a smoothed one. buf goes back
// to the pool.
func (p *Pathfinder) smoothPath(buf *[]Coordinate, length int) *PathResult {
	switch p.settings.Smoothing {
	case SmoothingStringPulling:
		return p.stringPull(buf, length)
	case SmoothingSimple:
		return simplify(buf, length)
	default:
		return newPathResult(buf, length)
	}
}

// stringPull keeps jumping from the current anchor to the furthest waypoint
// it can see.
func (p *Pathfinder) stringPull(buf *[]Coordinate, length int) *PathResult {
	path := (*buf)[:length]
	smoothedBuf := coordinatePool.Rent(length)
	smoothed := *smoothedBuf

	smoothed[0] = path[0]
	smoothedLength := 1
	anchor := 0

	for anchor < length-1 {
		furthest := anchor
		for i := length - 1; i > anchor; i-- {
			if p.hasLineOfSight(path[anchor], path[i]) {
				furthest = i
				break
			}
		}
		if furthest == anchor {
			furthest = anchor + 1
		}

		smoothed[smoothedLength] = path[furthest]
		smoothedLength++
		anchor = furthest
	}

	coordinatePool.Return(buf)
	return newPathResult(smoothedBuf, smoothedLength)
}

// simplify keeps the first and last waypoints and every waypoint where the
// step direction changes.
func simplify(buf *[]Coordinate, length int) *PathResult {
	path := (*buf)[:length]
	smoothedBuf := coordinatePool.Rent(length)
	smoothed := *smoothedBuf

	smoothed[0] = path[0]
	smoothedLength := 1
	direction := path[1].Sub(path[0])

	for i := 2; i < length; i++ {
		step := path[i].Sub(path[i-1])
		if step == direction {
			continue
		}
		smoothed[smoothedLength] = path[i-1]
		smoothedLength++
		direction = step
	}

	smoothed[smoothedLength] = path[length-1]
	smoothedLength++

	coordinatePool.Return(buf)
	return newPathResult(smoothedBuf, smoothedLength)
}

// hasLineOfSight walks the Bresenham line from one waypoint to another. The
// endpoints themselves are not tested.
func (p *Pathfinder) hasLineOfSight(from, to Coordinate) bool {
	x0, y0 := from.X, from.Y
	x1, y1 := to.X, to.Y

	steep := internal.Abs(y1-y0) > internal.Abs(x1-x0)
	if steep {
		x0, y0 = y0, x0
		x1, y1 = y1, x1
	}
	if x0 > x1 {
		x0, x1 = x1, x0
		y0, y1 = y1, y0
	}

	dx := x1 - x0
	dy := internal.Abs(y1 - y0)
	errorTerm := dx / 2
	yStep := int32(1)
	if y0 > y1 {
		yStep = -1
	}

	y := y0
	for x := x0; x <= x1; x++ {
		point := Coordinate{X: x, Y: y}
		if steep {
			point = Coordinate{X: y, Y: x}
		}

		if point != from && point != to && p.walkableLocation(point.X, point.Y) == noCell {
			return false
		}

		errorTerm -= dy
		if errorTerm < 0 {
			y += yStep
			errorTerm += dx
		}
	}
	return true
}
