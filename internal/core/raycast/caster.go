// Package raycast resolves rays against a grid with a dual-axis DDA sweep:
// one pass steps across the vertical grid lines column by column, the other
// across the horizontal grid lines row by row, and the nearer wall wins.
package raycast

import (
	"math"

	"chosenoffset.com/raycaster/internal/core/geom"
	"chosenoffset.com/raycaster/internal/core/grid"
)

// DefaultEpsilon is the half-width, in radians, of the neighbourhood around
// axis-aligned angles where the caster refuses to sweep.
const DefaultEpsilon = 1e-4

// Sweep identifies which pass of the DDA produced a hit.
type Sweep int

const (
	// SweepNone marks a miss.
	SweepNone Sweep = iota
	// SweepHorizontal steps column by column and hits vertical grid lines.
	SweepHorizontal
	// SweepVertical steps row by row and hits horizontal grid lines.
	SweepVertical
)

func (s Sweep) String() string {
	switch s {
	case SweepHorizontal:
		return "horizontal"
	case SweepVertical:
		return "vertical"
	default:
		return "none"
	}
}

// RayHit is the result of a single cast.
type RayHit struct {
	Solid bool
	Cell  geom.Vector2i
	Value grid.CellValue
	// Point is where the ray meets the wall face. For a miss it is the origin
	// pushed out by Distance along the ray.
	Point geom.Vector2
	// Normal is the outward unit normal of the struck face, one of (±1, 0)
	// or (0, ±1). Zero for a miss.
	Normal geom.Vector2
	// Distance is the magnitude of the origin-to-hit delta projected onto the
	// ray direction.
	Distance float64
	// Angle is the normalised angle the ray was cast at.
	Angle float64
	Sweep Sweep
	// Frac is the position along the struck face inside its cell, in [0, 1).
	Frac float64
	// TexX is the texture column chosen by the caster's HitResolver.
	TexX float64
}

// Perpendicular returns the hit distance measured along the view direction
// instead of along the ray, which removes fish-eye distortion.
func (h RayHit) Perpendicular(viewAngle float64) float64 {
	return math.Abs(h.Distance * math.Cos(h.Angle-viewAngle))
}

// TraceStep describes one cell test made by a sweep.
type TraceStep struct {
	Sweep Sweep
	Step  int
	Cell  geom.Vector2i
	Point geom.Vector2
	// InBounds is false for the final step of a sweep that left the grid.
	InBounds bool
	Solid    bool
}

// TraceFunc receives every cell test in order.
type TraceFunc func(TraceStep)

// Caster casts rays against one grid.
type Caster struct {
	grid        *grid.Grid
	epsilon     float64
	missPadding float64
	resolver    HitResolver
	trace       TraceFunc
}

// Option configures a Caster.
type Option func(*Caster)

// WithEpsilon sets the degenerate-angle neighbourhood.
func WithEpsilon(eps float64) Option {
	return func(c *Caster) { c.epsilon = eps }
}

// WithMissPadding sets the constant added to the miss sentinel distance.
// Values below the grid's diagonal excess are raised to it.
func WithMissPadding(padding float64) Option {
	return func(c *Caster) { c.missPadding = padding }
}

// WithResolver sets how texture columns are derived from hits.
func WithResolver(r HitResolver) Option {
	return func(c *Caster) { c.resolver = r }
}

// WithTrace installs a callback invoked for every cell a sweep visits.
func WithTrace(fn TraceFunc) Option {
	return func(c *Caster) { c.trace = fn }
}

// New creates a caster for g.
func New(g *grid.Grid, opts ...Option) *Caster {
	c := &Caster{
		grid:        g,
		epsilon:     DefaultEpsilon,
		missPadding: g.CellSize(),
		resolver:    UnitResolver{},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Grid returns the grid rays are cast against.
func (c *Caster) Grid() *grid.Grid { return c.grid }

// Resolver returns the active hit resolver.
func (c *Caster) Resolver() HitResolver { return c.resolver }

// SetResolver swaps the hit resolver.
func (c *Caster) SetResolver(r HitResolver) { c.resolver = r }

// SetTrace swaps the trace callback. Pass nil to disable tracing.
func (c *Caster) SetTrace(fn TraceFunc) { c.trace = fn }

// MissDistance returns the sentinel distance reported for rays that hit
// nothing.
func (c *Caster) MissDistance() float64 {
	return c.grid.MissDistance(c.missPadding)
}

// candidate is the first solid cell found by one sweep.
type candidate struct {
	cell  geom.Vector2i
	point geom.Vector2
	value grid.CellValue
}

// Cast fires a ray from origin at angle and returns the nearest wall hit.
func (c *Caster) Cast(origin geom.Vector2, angle float64) RayHit {
	angle = geom.NormalizeAngle(angle)

	// tan is unbounded or zero near the axes
	if geom.NearAxis(angle, c.epsilon) {
		return c.miss(origin, angle)
	}

	sin, cos := math.Sincos(angle)
	tan := sin / cos
	dir := geom.Vector2{X: cos, Y: -sin}

	signX := -1
	if cos > 0 {
		signX = 1
	}
	// screen y grows downwards while sin grows upwards
	signY := 1
	if sin > 0 {
		signY = -1
	}

	h, okH := c.sweepColumns(origin, tan, signX)
	v, okV := c.sweepRows(origin, tan, signY)

	var distH, distV float64
	if okH {
		distH = math.Abs(h.point.Sub(origin).Dot(dir))
	}
	if okV {
		distV = math.Abs(v.point.Sub(origin).Dot(dir))
	}

	cellSize := c.grid.CellSize()
	switch {
	case preferHorizontal(okH, okV, distH, distV):
		frac := geom.PosInCell(h.point, cellSize).Y / cellSize
		return RayHit{
			Solid:    true,
			Cell:     h.cell,
			Value:    h.value,
			Point:    h.point,
			Normal:   geom.Vector2{X: float64(-signX)},
			Distance: distH,
			Angle:    angle,
			Sweep:    SweepHorizontal,
			Frac:     frac,
			TexX:     c.resolver.TextureColumn(h.value, frac),
		}
	case okV:
		frac := geom.PosInCell(v.point, cellSize).X / cellSize
		return RayHit{
			Solid:    true,
			Cell:     v.cell,
			Value:    v.value,
			Point:    v.point,
			Normal:   geom.Vector2{Y: float64(-signY)},
			Distance: distV,
			Angle:    angle,
			Sweep:    SweepVertical,
			Frac:     frac,
			TexX:     c.resolver.TextureColumn(v.value, frac),
		}
	default:
		return c.miss(origin, angle)
	}
}

// preferHorizontal picks between the two sweep candidates. Equal distances
// resolve to the horizontal sweep so that corner hits are reproducible.
func preferHorizontal(okH, okV bool, distH, distV float64) bool {
	return okH && (!okV || distH <= distV)
}

func (c *Caster) miss(origin geom.Vector2, angle float64) RayHit {
	d := c.MissDistance()
	return RayHit{
		Point:    origin.Add(geom.Forward(angle).Scale(d)),
		Distance: d,
		Angle:    angle,
		Sweep:    SweepNone,
	}
}

// maxSteps bounds each sweep. A sweep advances one full cell per step on its
// stepping axis, so it leaves the grid well before this.
func (c *Caster) maxSteps() int {
	return max(c.grid.Width(), c.grid.Height()) + 1
}

// sweepColumns walks the vertical grid lines x = k*cellSize in the direction
// signX and tests the cell just across each line.
func (c *Caster) sweepColumns(origin geom.Vector2, tan float64, signX int) (candidate, bool) {
	cellSize := c.grid.CellSize()
	startCol := int(math.Floor(origin.X / cellSize))

	col := startCol + signX
	for step := 0; step < c.maxSteps(); step++ {
		// the boundary sits on the near side of the tested column
		boundary := col
		if signX < 0 {
			boundary = col + 1
		}
		x := float64(boundary) * cellSize
		y := origin.Y - tan*(x-origin.X)
		p := geom.Vector2{X: x, Y: y}
		cell := geom.Vector2i{X: col, Y: int(math.Floor(y / cellSize))}

		if !c.grid.InBounds(cell) {
			c.emit(TraceStep{Sweep: SweepHorizontal, Step: step, Cell: cell, Point: p})
			return candidate{}, false
		}

		value := c.grid.At(cell.X, cell.Y)
		solid := grid.IsSolid(value)
		c.emit(TraceStep{Sweep: SweepHorizontal, Step: step, Cell: cell, Point: p, InBounds: true, Solid: solid})
		if solid {
			return candidate{cell: cell, point: p, value: value}, true
		}
		col += signX
	}
	return candidate{}, false
}

// sweepRows walks the horizontal grid lines y = k*cellSize in the direction
// signY and tests the cell just across each line.
func (c *Caster) sweepRows(origin geom.Vector2, tan float64, signY int) (candidate, bool) {
	cellSize := c.grid.CellSize()
	startRow := int(math.Floor(origin.Y / cellSize))

	row := startRow + signY
	for step := 0; step < c.maxSteps(); step++ {
		boundary := row
		if signY < 0 {
			boundary = row + 1
		}
		y := float64(boundary) * cellSize
		x := origin.X - (y-origin.Y)/tan
		p := geom.Vector2{X: x, Y: y}
		cell := geom.Vector2i{X: int(math.Floor(x / cellSize)), Y: row}

		if !c.grid.InBounds(cell) {
			c.emit(TraceStep{Sweep: SweepVertical, Step: step, Cell: cell, Point: p})
			return candidate{}, false
		}

		value := c.grid.At(cell.X, cell.Y)
		solid := grid.IsSolid(value)
		c.emit(TraceStep{Sweep: SweepVertical, Step: step, Cell: cell, Point: p, InBounds: true, Solid: solid})
		if solid {
			return candidate{cell: cell, point: p, value: value}, true
		}
		row += signY
	}
	return candidate{}, false
}

func (c *Caster) emit(s TraceStep) {
	if c.trace != nil {
		c.trace(s)
	}
}
