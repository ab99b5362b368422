package core

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrInvalidDimensions is returned when a grid is created with a
	// non-positive width or height.
	ErrInvalidDimensions = errors.New("core: grid dimensions must be at least 1x1")

	// ErrOutOfBounds is returned by indexed accessors for coordinates
	// outside the grid.
	ErrOutOfBounds = errors.New("core: cell coordinate out of bounds")
)

// Grid is a fixed-size rectangular board of shades.
// Cells are stored in row-major order: index = row*width + col.
// The shape is immutable after creation.
type Grid struct {
	width  int
	height int
	cells  []Shade
}

// NewGrid allocates a zeroed grid with the given dimensions.
func NewGrid(width, height int) (*Grid, error) {
	if width < 1 || height < 1 {
		return nil, fmt.Errorf("%w: got %dx%d", ErrInvalidDimensions, width, height)
	}
	return &Grid{
		width:  width,
		height: height,
		cells:  make([]Shade, width*height),
	}, nil
}

// Width returns the number of columns.
func (g *Grid) Width() int {
	return g.width
}

// Height returns the number of rows.
func (g *Grid) Height() int {
	return g.height
}

// index converts (row, col) to a flat slice index.
func (g *Grid) index(row, col int) int {
	return row*g.width + col
}

// InBounds reports whether (row, col) lies within the grid.
func (g *Grid) InBounds(row, col int) bool {
	return row >= 0 && row < g.height && col >= 0 && col < g.width
}

// At returns the shade at (row, col).
func (g *Grid) At(row, col int) (Shade, error) {
	if !g.InBounds(row, col) {
		return 0, fmt.Errorf("%w: (%d, %d) in %dx%d grid", ErrOutOfBounds, row, col, g.width, g.height)
	}
	return g.cells[g.index(row, col)], nil
}

// Set writes the shade at (row, col).
func (g *Grid) Set(row, col int, s Shade) error {
	if !g.InBounds(row, col) {
		return fmt.Errorf("%w: (%d, %d) in %dx%d grid", ErrOutOfBounds, row, col, g.width, g.height)
	}
	g.cells[g.index(row, col)] = s
	return nil
}

// Cells exposes the backing slice in row-major order for bulk read access.
// Callers must treat the slice as read-only; it stays valid only for the
// current generation.
func (g *Grid) Cells() []Shade {
	return g.cells
}

// Equal reports whether two grids have identical dimensions and contents.
func (g *Grid) Equal(other *Grid) bool {
	if g.width != other.width || g.height != other.height {
		return false
	}
	for i, s := range g.cells {
		if s != other.cells[i] {
			return false
		}
	}
	return true
}

// String renders the grid as rows of |nn| fields, one line per row.
// Intended for test failure output and debug logging.
func (g *Grid) String() string {
	var sb strings.Builder
	for row := 0; row < g.height; row++ {
		sb.WriteString("\n|")
		for col := 0; col < g.width; col++ {
			fmt.Fprintf(&sb, "%2d|", g.cells[g.index(row, col)])
		}
	}
	return sb.String()
}
