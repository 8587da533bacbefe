package mpath

const defaultOpenSetSize = 11

// openSet is the A* frontier: a 1-indexed binary min-heap of cell indices
// keyed by scoreF. Each queued cell records its slot in cellState.queueIndex,
// so membership is a single slot comparison.
type openSet struct {
	nodes  []int32 // nodes[0] is never used
	count  int
	states []cellState
}

func newOpenSet(states []cellState, bufferSize int) *openSet {
	if bufferSize <= 0 {
		bufferSize = defaultOpenSetSize
	}
	nodes := make([]int32, 1, bufferSize+1)
	nodes[0] = noCell
	return &openSet{nodes: nodes, states: states}
}

func (q *openSet) Len() int { return q.count }

// enqueue sets the cell's F-score to priority and inserts it.
func (q *openSet) enqueue(cell int32, priority float32) {
	q.states[cell].scoreF = priority
	q.count++

	if q.count >= len(q.nodes) {
		q.nodes = append(q.nodes, cell)
	} else {
		q.nodes[q.count] = cell
	}

	q.states[cell].queueIndex = int32(q.count)
	q.cascadeUp(cell)
}

// dequeue removes and returns the cell with the lowest F-score.
func (q *openSet) dequeue() (int32, error) {
	if q.count == 0 {
		return noCell, ErrEmptyQueue
	}

	result := q.nodes[1]

	if q.count == 1 {
		q.nodes[1] = noCell
		q.count = 0
		return result, nil
	}

	last := q.nodes[q.count]
	q.nodes[1] = last
	q.states[last].queueIndex = 1

	q.nodes[q.count] = noCell
	q.count--

	q.cascadeDown(last)
	return result, nil
}

// update lowers the priority of a queued cell and restores heap order.
func (q *openSet) update(cell int32, priority float32) {
	q.states[cell].scoreF = priority
	q.cascadeUp(cell)
}

func (q *openSet) contains(cell int32) bool {
	i := q.states[cell].queueIndex
	return i >= 1 && int(i) <= q.count && q.nodes[i] == cell
}

// clear empties the queue without releasing its storage.
func (q *openSet) clear() {
	for i := 1; i <= q.count; i++ {
		q.nodes[i] = noCell
	}
	q.count = 0
}

func (q *openSet) cascadeUp(cell int32) {
	state := &q.states[cell]

	for state.queueIndex > 1 {
		parentIndex := state.queueIndex >> 1
		parent := q.nodes[parentIndex]

		if q.higherOrEqualPriority(parent, cell) {
			break
		}

		q.nodes[state.queueIndex] = parent
		q.states[parent].queueIndex = state.queueIndex
		state.queueIndex = parentIndex
	}

	q.nodes[state.queueIndex] = cell
}

func (q *openSet) cascadeDown(cell int32) {
	finalIndex := int(q.states[cell].queueIndex)

	for {
		leftIndex := 2 * finalIndex
		if leftIndex > q.count {
			break
		}

		best := q.nodes[leftIndex]
		bestIndex := leftIndex

		rightIndex := leftIndex + 1
		if rightIndex <= q.count {
			right := q.nodes[rightIndex]
			if q.higherPriority(right, best) {
				best = right
				bestIndex = rightIndex
			}
		}

		if q.higherOrEqualPriority(cell, best) {
			break
		}

		q.nodes[finalIndex] = best
		q.states[best].queueIndex = int32(finalIndex)
		finalIndex = bestIndex
	}

	q.states[cell].queueIndex = int32(finalIndex)
	q.nodes[finalIndex] = cell
}

// An absent cell never outranks a present one.
func (q *openSet) higherPriority(a, b int32) bool {
	if a == noCell {
		return false
	}
	if b == noCell {
		return true
	}
	return q.states[a].scoreF < q.states[b].scoreF
}

func (q *openSet) higherOrEqualPriority(a, b int32) bool {
	if a == noCell {
		return false
	}
	if b == noCell {
		return true
	}
	return q.states[a].scoreF <= q.states[b].scoreF
}
