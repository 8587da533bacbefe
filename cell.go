package mpath

// Cell holds the static, caller-owned properties of one grid position.
type Cell struct {
	Coordinate Coordinate
	IsWalkable bool
	IsOccupied bool
	// Weight is the extra traversal cost used when cell weights are enabled.
	Weight float32
}

// CellHolder is anything that carries cell data placed by its own coordinate,
// e.g. a tile object built by a map loader.
type CellHolder interface {
	CellData() Cell
}

// Agent describes the thing being routed. It occupies a Size x Size block
// anchored at its position.
type Agent interface {
	Size() int
}

// AgentSize is the simplest Agent.
type AgentSize int

func (s AgentSize) Size() int { return int(s) }

const noCell int32 = -1

// cellState is per-search scratch for one cell, kept apart from Cell so the
// static grid can be shared between engines.
type cellState struct {
	scoreF     float32
	scoreG     float32
	scoreH     float32
	depth      int32
	parent     int32
	queueIndex int32
	closed     bool
}
