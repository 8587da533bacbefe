package mpath

import (
	"cmp"
	"fmt"
	"math"
	"slices"
)

// GridSource is one of the four shapes a grid can be supplied in. Build one
// with FromCells, FromHolders, FromMatrix or FromHolderMatrix.
//
// Every source is normalized into a flat buffer where the cell for (x, y)
// lives at x*height + y.
type GridSource interface {
	kind() string
	dimensions() (width, height int, err error)
	// inPlace returns the caller's buffer when it can be searched directly,
	// or nil when the engine must rent one and refresh it.
	inPlace() []Cell
	refresh(dst []Cell, width, height int) error
}

// FromCells uses a caller-owned flat array in place. The array must already
// be in canonical order (see CanonicalizeCells); it is never pooled or
// returned anywhere.
func FromCells(cells []Cell, width, height int) GridSource {
	return &cellsSource{cells: cells, width: width, height: height}
}

// FromHolders places each holder's cell at its own coordinate. Holders are
// re-read before every search; nil entries are skipped and cells no holder
// covers are blocked.
func FromHolders(holders []CellHolder, width, height int) GridSource {
	return &holdersSource{holders: holders, width: width, height: height}
}

// FromMatrix places each cell of matrix (indexed [x][y]) at its own
// coordinate. Width is len(matrix), height is len(matrix[0]).
func FromMatrix(matrix [][]Cell) GridSource {
	return &matrixSource{matrix: matrix}
}

// FromHolderMatrix is FromMatrix for cell holders.
func FromHolderMatrix(matrix [][]CellHolder) GridSource {
	return &holderMatrixSource{matrix: matrix}
}

// CanonicalizeCells sorts cells in place into the order FromCells expects:
// by X, then by Y. It fails if the sorted array does not cover the grid
// exactly once.
func CanonicalizeCells(cells []Cell, width, height int) error {
	if err := checkDimensions(width, height); err != nil {
		return err
	}
	if len(cells) != width*height {
		return fmt.Errorf("%w: %d cells for a %dx%d grid", ErrInvalidDimensions, len(cells), width, height)
	}

	slices.SortFunc(cells, func(a, b Cell) int {
		if c := cmp.Compare(a.Coordinate.X, b.Coordinate.X); c != 0 {
			return c
		}
		return cmp.Compare(a.Coordinate.Y, b.Coordinate.Y)
	})

	return verifyCellOrder(cells, height)
}

func checkDimensions(width, height int) error {
	if width <= 0 || height <= 0 {
		return fmt.Errorf("%w: got %dx%d", ErrInvalidDimensions, width, height)
	}
	if width > math.MaxInt32 || height > math.MaxInt32 || width > math.MaxInt32/height {
		return fmt.Errorf("%w: %dx%d is too large", ErrInvalidDimensions, width, height)
	}
	return nil
}

func verifyCellOrder(cells []Cell, height int) error {
	for i := range cells {
		want := coordinateAt(int32(i), height)
		if cells[i].Coordinate != want {
			return fmt.Errorf("%w: index %d holds %v, want %v", ErrCellOrder, i, cells[i].Coordinate, want)
		}
	}
	return nil
}

func coordinateAt(index int32, height int) Coordinate {
	return Coordinate{X: index / int32(height), Y: index % int32(height)}
}

// place writes c into dst at its canonical index.
func place(dst []Cell, c Cell, width, height int) error {
	x, y := int(c.Coordinate.X), int(c.Coordinate.Y)
	if x < 0 || x >= width || y < 0 || y >= height {
		return fmt.Errorf("%w: %v in %dx%d grid", ErrCellOutOfBounds, c.Coordinate, width, height)
	}
	dst[x*height+y] = c
	return nil
}

type cellsSource struct {
	cells         []Cell
	width, height int
}

func (s *cellsSource) kind() string { return "cells" }

func (s *cellsSource) dimensions() (int, int, error) {
	if s.cells == nil {
		return 0, 0, ErrNilSource
	}
	if err := checkDimensions(s.width, s.height); err != nil {
		return 0, 0, err
	}
	if len(s.cells) < s.width*s.height {
		return 0, 0, fmt.Errorf("%w: %d cells for a %dx%d grid", ErrInvalidDimensions, len(s.cells), s.width, s.height)
	}
	return s.width, s.height, nil
}

func (s *cellsSource) inPlace() []Cell { return s.cells[:s.width*s.height] }

func (s *cellsSource) refresh([]Cell, int, int) error { return nil }

type holdersSource struct {
	holders       []CellHolder
	width, height int
}

func (s *holdersSource) kind() string { return "holders" }

func (s *holdersSource) dimensions() (int, int, error) {
	if s.holders == nil {
		return 0, 0, ErrNilSource
	}
	if err := checkDimensions(s.width, s.height); err != nil {
		return 0, 0, err
	}
	return s.width, s.height, nil
}

func (s *holdersSource) inPlace() []Cell { return nil }

func (s *holdersSource) refresh(dst []Cell, width, height int) error {
	clear(dst)
	for _, holder := range s.holders {
		if holder == nil {
			continue
		}
		if err := place(dst, holder.CellData(), width, height); err != nil {
			return err
		}
	}
	return nil
}

type matrixSource struct {
	matrix [][]Cell
}

func (s *matrixSource) kind() string { return "matrix" }

func (s *matrixSource) dimensions() (int, int, error) {
	if s.matrix == nil {
		return 0, 0, ErrNilSource
	}
	return matrixDimensions(s.matrix)
}

func (s *matrixSource) inPlace() []Cell { return nil }

func (s *matrixSource) refresh(dst []Cell, width, height int) error {
	for _, column := range s.matrix {
		for _, c := range column {
			if err := place(dst, c, width, height); err != nil {
				return err
			}
		}
	}
	return nil
}

type holderMatrixSource struct {
	matrix [][]CellHolder
}

func (s *holderMatrixSource) kind() string { return "holder_matrix" }

func (s *holderMatrixSource) dimensions() (int, int, error) {
	if s.matrix == nil {
		return 0, 0, ErrNilSource
	}
	return matrixDimensions(s.matrix)
}

func (s *holderMatrixSource) inPlace() []Cell { return nil }

func (s *holderMatrixSource) refresh(dst []Cell, width, height int) error {
	clear(dst)
	for _, column := range s.matrix {
		for _, holder := range column {
			if holder == nil {
				continue
			}
			if err := place(dst, holder.CellData(), width, height); err != nil {
				return err
			}
		}
	}
	return nil
}

func matrixDimensions[T any](matrix [][]T) (int, int, error) {
	width := len(matrix)
	if width == 0 {
		return 0, 0, fmt.Errorf("%w: matrix has no columns", ErrInvalidDimensions)
	}
	height := len(matrix[0])
	for x, column := range matrix {
		if len(column) != height {
			return 0, 0, fmt.Errorf("%w: column %d has %d cells, want %d", ErrRaggedMatrix, x, len(column), height)
		}
	}
	if err := checkDimensions(width, height); err != nil {
		return 0, 0, err
	}
	return width, height, nil
}
