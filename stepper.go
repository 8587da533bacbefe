package mpath

// StepSnapshot exposes the state of a search after one expansion.
type StepSnapshot struct {
	// Current is the cell taken from the open set by this step.
	Current     Coordinate
	OpenCount   int
	ClosedCount int
	StepIndex   int
	Done        bool
	Found       bool
	// Path is the unsmoothed route, set once Found. It belongs to the caller.
	Path []Coordinate
}

// Stepper drives a search on a Pathfinder one expansion at a time, for
// visualizers and debugging tools.
//
// A Stepper borrows the engine's scratch state: a search started by GetPath
// or NewStepper on the same Pathfinder invalidates it.
type Stepper struct {
	p          *Pathfinder
	generation uint64
	stepCount  int
	last       StepSnapshot
	done       bool
}

// NewStepper validates the request and prepares a search without expanding
// anything.
func (p *Pathfinder) NewStepper(agent Agent, from, to Coordinate) (*Stepper, error) {
	if p.closed {
		return nil, ErrClosed
	}
	agentSize, err := p.validate(agent, from, to)
	if err != nil {
		return nil, err
	}

	s := &Stepper{p: p}
	if from == to {
		s.done = true
		s.last = StepSnapshot{Current: from, Done: true, Found: true, Path: []Coordinate{}}
		return s, nil
	}

	if err := p.begin(agentSize, from, to); err != nil {
		return nil, err
	}
	s.generation = p.generation
	return s, nil
}

// Done reports whether the search has finished.
func (s *Stepper) Done() bool { return s.done }

// Step advances the search by one expansion and returns a snapshot. Once
// the search is done every call returns the final snapshot.
func (s *Stepper) Step() (StepSnapshot, error) {
	if s.done {
		return s.last, nil
	}
	p := s.p
	if p.closed {
		return StepSnapshot{}, ErrClosed
	}
	if p.generation != s.generation {
		return StepSnapshot{}, ErrStepperInvalidated
	}

	s.stepCount++
	done := p.advance()

	snapshot := StepSnapshot{
		Current:     coordinateAt(p.run.current, p.height),
		OpenCount:   p.open.Len(),
		ClosedCount: p.run.expanded,
		StepIndex:   s.stepCount,
		Done:        done,
	}
	if done {
		s.done = true
		if p.found() {
			snapshot.Found = true
			snapshot.Path = p.rawPath()
		}
		s.last = snapshot
	}
	return snapshot, nil
}

// Run steps until the search is done and returns the final snapshot.
func (s *Stepper) Run() (StepSnapshot, error) {
	for {
		snapshot, err := s.Step()
		if err != nil || snapshot.Done {
			return snapshot, err
		}
	}
}

func (p *Pathfinder) rawPath() []Coordinate {
	path := make([]Coordinate, p.states[p.run.target].depth)
	p.writePath(path)
	return path
}
