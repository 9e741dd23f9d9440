// Package geom holds the vector types and stateless helpers shared by the
// grid, the caster and the player controller.
//
// World coordinates use screen orientation: origin top-left, x grows to the
// right and y grows downwards. Angles are measured counter-clockwise as seen
// on screen, so angle 0 points along +x and angle π/2 points along -y.
package geom

import "math"

// TwoPi is a full turn in radians.
const TwoPi = 2 * math.Pi

// Vector2 is a continuous position or direction in world units.
type Vector2 struct {
	X, Y float64
}

// Vector2i is an integer (col, row) cell index.
type Vector2i struct {
	X, Y int
}

// Add returns v + o.
func (v Vector2) Add(o Vector2) Vector2 { return Vector2{v.X + o.X, v.Y + o.Y} }

// Sub returns v - o.
func (v Vector2) Sub(o Vector2) Vector2 { return Vector2{v.X - o.X, v.Y - o.Y} }

// Scale returns v * s.
func (v Vector2) Scale(s float64) Vector2 { return Vector2{v.X * s, v.Y * s} }

// Dot returns the dot product of v and o.
func (v Vector2) Dot(o Vector2) float64 { return v.X*o.X + v.Y*o.Y }

// LenSq returns the squared length of v.
func (v Vector2) LenSq() float64 { return v.X*v.X + v.Y*v.Y }

// Len returns the length of v.
func (v Vector2) Len() float64 { return math.Sqrt(v.LenSq()) }

// Add returns c + o.
func (c Vector2i) Add(o Vector2i) Vector2i { return Vector2i{c.X + o.X, c.Y + o.Y} }

// Distance calculates the Euclidean distance between two points
func Distance(a, b Vector2) float64 {
	return b.Sub(a).Len()
}

// DistanceSq calculates the squared Euclidean distance between two points
func DistanceSq(a, b Vector2) float64 {
	return b.Sub(a).LenSq()
}

// NormalizeAngle wraps an angle into [0, 2π).
func NormalizeAngle(a float64) float64 {
	a = math.Mod(a, TwoPi)
	if a < 0 {
		a += TwoPi
	}
	// math.Mod can hand back exactly 2π after the correction above for tiny negatives
	if a >= TwoPi {
		a = 0
	}
	return a
}

// Forward returns the unit direction for an angle. The y component is
// negated because world y grows downwards.
func Forward(angle float64) Vector2 {
	return Vector2{X: math.Cos(angle), Y: -math.Sin(angle)}
}

// Bearing returns the angle pointing from one position towards another.
// Coincident points yield 0.
func Bearing(from, to Vector2) float64 {
	d := to.Sub(from)
	if d.X == 0 && d.Y == 0 {
		return 0
	}
	return NormalizeAngle(math.Atan2(-d.Y, d.X))
}

// NearAxis reports whether an angle lies within eps of a multiple of π/2.
func NearAxis(angle, eps float64) bool {
	quarter := math.Pi / 2
	r := math.Mod(NormalizeAngle(angle), quarter)
	return r < eps || quarter-r < eps
}

// CellOf maps a world position to the cell containing it.
func CellOf(p Vector2, cellSize float64) Vector2i {
	return Vector2i{
		X: int(math.Floor(p.X / cellSize)),
		Y: int(math.Floor(p.Y / cellSize)),
	}
}

// PosInCell returns the offset of p from the top-left corner of its cell, in
// world units. Both components lie in [0, cellSize).
func PosInCell(p Vector2, cellSize float64) Vector2 {
	c := CellOf(p, cellSize)
	return Vector2{
		X: p.X - float64(c.X)*cellSize,
		Y: p.Y - float64(c.Y)*cellSize,
	}
}

// CellCenter returns the world position at the middle of a cell.
func CellCenter(c Vector2i, cellSize float64) Vector2 {
	return Vector2{
		X: (float64(c.X) + 0.5) * cellSize,
		Y: (float64(c.Y) + 0.5) * cellSize,
	}
}
