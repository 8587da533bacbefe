package mpath

import "errors"

var (
	ErrInvalidDimensions = errors.New("grid width and height must be positive")
	ErrNilSource         = errors.New("grid source is nil")
	ErrRaggedMatrix      = errors.New("grid matrix rows have different lengths")
	ErrCellOrder         = errors.New("cell is not at its canonical index")
	ErrCellOutOfBounds   = errors.New("cell coordinate is outside the grid")

	ErrNilAgent               = errors.New("agent is nil")
	ErrInvalidAgentSize       = errors.New("agent size must be at least 1")
	ErrDestinationOutOfBounds = errors.New("destination is outside the grid")
	ErrStartOutOfBounds       = errors.New("start is outside the grid")

	ErrClosed             = errors.New("pathfinder is closed")
	ErrCacheClosed        = errors.New("path cache is closed")
	ErrStepperInvalidated = errors.New("stepper invalidated by another search on the same pathfinder")

	ErrResultReleased  = errors.New("path result already released")
	ErrResultFailed    = errors.New("path was not found")
	ErrIndexOutOfRange = errors.New("path index out of range")

	ErrEmptyQueue      = errors.New("open set is empty")
	ErrInvalidSettings = errors.New("invalid pathfinder settings")
)
