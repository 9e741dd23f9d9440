// Package grid owns the level layout: a fixed-size occupancy map of cell
// values stored in a flat row-major buffer.
package grid

import (
	"errors"
	"fmt"
	"math"
	"slices"

	"chosenoffset.com/raycaster/internal/core/geom"
)

// DefaultCellSize is the edge length of one cell in world units.
const DefaultCellSize = 100.0

// CellValue is the occupancy of a single cell. Zero is empty floor; any
// positive value is a solid wall and selects its colour or texture.
type CellValue int

// Empty is the value of a traversable cell.
const Empty CellValue = 0

// ErrOutOfBounds is returned for lookups outside the grid.
var ErrOutOfBounds = errors.New("cell out of bounds")

// IsSolid reports whether a cell value blocks rays and movement.
func IsSolid(v CellValue) bool {
	return v > 0
}

// Grid is a width x height map of cell values.
type Grid struct {
	width    int
	height   int
	cellSize float64
	cells    []CellValue
}

// New creates an empty grid.
func New(width, height int, cellSize float64) (*Grid, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("invalid grid dimensions: %dx%d", width, height)
	}
	if cellSize <= 0 {
		return nil, fmt.Errorf("invalid cell size: %v", cellSize)
	}
	return &Grid{
		width:    width,
		height:   height,
		cellSize: cellSize,
		cells:    make([]CellValue, width*height),
	}, nil
}

// FromRows builds a grid from rows of values indexed [row][col]. Every row
// must have the same length.
func FromRows(rows [][]CellValue, cellSize float64) (*Grid, error) {
	if len(rows) == 0 {
		return nil, fmt.Errorf("invalid grid dimensions: no rows")
	}
	g, err := New(len(rows[0]), len(rows), cellSize)
	if err != nil {
		return nil, err
	}
	for y, row := range rows {
		if len(row) != g.width {
			return nil, fmt.Errorf("row %d width mismatch: expected %d, got %d", y, g.width, len(row))
		}
		for x, v := range row {
			if v < 0 {
				return nil, fmt.Errorf("negative cell value %d at (%d, %d)", v, x, y)
			}
			g.cells[y*g.width+x] = v
		}
	}
	return g, nil
}

// Width returns the number of columns.
func (g *Grid) Width() int { return g.width }

// Height returns the number of rows.
func (g *Grid) Height() int { return g.height }

// CellSize returns the edge length of one cell in world units.
func (g *Grid) CellSize() float64 { return g.cellSize }

// InBounds reports whether c addresses a cell of the grid.
func (g *Grid) InBounds(c geom.Vector2i) bool {
	return c.X >= 0 && c.X < g.width && c.Y >= 0 && c.Y < g.height
}

// Value returns the value stored at c.
func (g *Grid) Value(c geom.Vector2i) (CellValue, error) {
	if !g.InBounds(c) {
		return Empty, fmt.Errorf("%w: (%d, %d)", ErrOutOfBounds, c.X, c.Y)
	}
	return g.cells[c.Y*g.width+c.X], nil
}

// At returns the value at (col, row). Lookups outside the grid read as Empty.
func (g *Grid) At(col, row int) CellValue {
	if col < 0 || col >= g.width || row < 0 || row >= g.height {
		return Empty
	}
	return g.cells[row*g.width+col]
}

// Solid reports whether the cell at c is a wall. Out of bounds is not solid.
func (g *Grid) Solid(c geom.Vector2i) bool {
	return IsSolid(g.At(c.X, c.Y))
}

// SolidAt reports whether the world position p lies inside a wall.
func (g *Grid) SolidAt(p geom.Vector2) bool {
	return g.Solid(geom.CellOf(p, g.cellSize))
}

// Set stores a value. It is meant for level authoring before the frame loop
// starts, never during rendering.
func (g *Grid) Set(c geom.Vector2i, v CellValue) error {
	if !g.InBounds(c) {
		return fmt.Errorf("%w: (%d, %d)", ErrOutOfBounds, c.X, c.Y)
	}
	if v < 0 {
		return fmt.Errorf("negative cell value %d at (%d, %d)", v, c.X, c.Y)
	}
	g.cells[c.Y*g.width+c.X] = v
	return nil
}

// MissDistance is the sentinel distance reported when a ray hits nothing:
// the longest grid edge in world units plus padding. The padding never drops
// below DiagonalExcess, so the sentinel exceeds every hit inside the grid.
func (g *Grid) MissDistance(padding float64) float64 {
	return g.cellSize*float64(max(g.width, g.height)) + max(padding, g.DiagonalExcess())
}

// DiagonalExcess is how far the grid diagonal outruns its longest edge, in
// whole world units.
func (g *Grid) DiagonalExcess() float64 {
	w, h := float64(g.width), float64(g.height)
	return math.Ceil(g.cellSize * (math.Hypot(w, h) - max(w, h)))
}

// Enclosed reports whether every border cell is solid. The engine does not
// require it, but levels that are not enclosed let rays and the player escape.
func (g *Grid) Enclosed() bool {
	for x := 0; x < g.width; x++ {
		if !IsSolid(g.At(x, 0)) || !IsSolid(g.At(x, g.height-1)) {
			return false
		}
	}
	for y := 0; y < g.height; y++ {
		if !IsSolid(g.At(0, y)) || !IsSolid(g.At(g.width-1, y)) {
			return false
		}
	}
	return true
}

// Values returns the distinct solid values in the grid in ascending order.
func (g *Grid) Values() []CellValue {
	seen := make(map[CellValue]bool)
	var out []CellValue
	for _, v := range g.cells {
		if IsSolid(v) && !seen[v] {
			seen[v] = true
			out = append(out, v)
		}
	}
	slices.Sort(out)
	return out
}

// Bordered returns a width x height grid whose outer ring holds wall and whose
// interior is empty.
func Bordered(width, height int, cellSize float64, wall CellValue) (*Grid, error) {
	g, err := New(width, height, cellSize)
	if err != nil {
		return nil, err
	}
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			if x == 0 || y == 0 || x == width-1 || y == height-1 {
				g.cells[y*width+x] = wall
			}
		}
	}
	return g, nil
}
