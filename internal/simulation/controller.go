package simulation

import (
	"errors"
	"fmt"

	"chosenoffset.com/raycaster/internal/core/geom"
	"chosenoffset.com/raycaster/internal/core/grid"
)

var (
	// ErrPlayerInWall is reported when the player's cell is solid.
	ErrPlayerInWall = errors.New("player inside a wall")
	// ErrPlayerOutOfBounds is reported when the player has left the grid.
	ErrPlayerOutOfBounds = errors.New("player outside the grid")
)

// PlayerState is the viewer's pose. Angle 0 looks along +x and positive
// angles turn towards -y.
type PlayerState struct {
	Position geom.Vector2
	Angle    float64
}

// Cell returns the grid cell the player stands in.
func (p PlayerState) Cell(cellSize float64) geom.Vector2i {
	return geom.CellOf(p.Position, cellSize)
}

// InputState is the set of movement intents sampled for one frame.
type InputState struct {
	TurnLeft  bool
	TurnRight bool
	Forward   bool
	Back      bool
}

// CollisionMode decides what happens when a step would enter a wall.
type CollisionMode string

const (
	// CollisionAssert applies every step unchanged. Walking into a wall trips
	// the invariant check when assertions are enabled.
	CollisionAssert CollisionMode = "assert"
	// CollisionSlide applies each axis of a step only when it lands in an
	// empty cell, so the player slides along walls.
	CollisionSlide CollisionMode = "slide"
)

// ParseCollisionMode maps a name to a CollisionMode. An empty name selects
// CollisionSlide.
func ParseCollisionMode(s string) (CollisionMode, error) {
	switch CollisionMode(s) {
	case CollisionAssert:
		return CollisionAssert, nil
	case CollisionSlide, "":
		return CollisionSlide, nil
	default:
		return "", fmt.Errorf("unknown collision mode %q", s)
	}
}

// Controller turns input into player motion.
type Controller struct {
	TurnSpeed float64 // radians per second
	WalkSpeed float64 // world units per second
	Collision CollisionMode
}

// NewController builds a controller from the movement config.
func NewController(cfg MovementConfig) Controller {
	mode, err := ParseCollisionMode(string(cfg.Collision))
	if err != nil {
		mode = CollisionSlide
	}
	return Controller{
		TurnSpeed: cfg.TurnSpeed,
		WalkSpeed: cfg.WalkSpeed,
		Collision: mode,
	}
}

// Step advances p by dt seconds of input. Turning is applied before walking,
// so the walk uses the new heading.
func (c Controller) Step(p *PlayerState, in InputState, g *grid.Grid, dt float64) {
	if in.TurnLeft {
		p.Angle += c.TurnSpeed * dt
	}
	if in.TurnRight {
		p.Angle -= c.TurnSpeed * dt
	}
	p.Angle = geom.NormalizeAngle(p.Angle)

	var dist float64
	if in.Forward {
		dist += c.WalkSpeed * dt
	}
	if in.Back {
		dist -= c.WalkSpeed * dt
	}
	if dist == 0 {
		return
	}

	delta := geom.Forward(p.Angle).Scale(dist)
	if c.Collision != CollisionSlide || g == nil {
		p.Position = p.Position.Add(delta)
		return
	}

	// x and y are resolved separately so a blocked axis does not stop the other
	if next := (geom.Vector2{X: p.Position.X + delta.X, Y: p.Position.Y}); walkable(g, next) {
		p.Position = next
	}
	if next := (geom.Vector2{X: p.Position.X, Y: p.Position.Y + delta.Y}); walkable(g, next) {
		p.Position = next
	}
}

func walkable(g *grid.Grid, pos geom.Vector2) bool {
	cell := geom.CellOf(pos, g.CellSize())
	return g.InBounds(cell) && !g.Solid(cell)
}

// CheckPlayer verifies that the player stands in an empty cell inside the grid.
func CheckPlayer(g *grid.Grid, p PlayerState) error {
	cell := p.Cell(g.CellSize())
	if !g.InBounds(cell) {
		return fmt.Errorf("%w: cell (%d, %d) at (%.1f, %.1f)",
			ErrPlayerOutOfBounds, cell.X, cell.Y, p.Position.X, p.Position.Y)
	}
	if g.Solid(cell) {
		return fmt.Errorf("%w: cell (%d, %d) holds %d at (%.1f, %.1f)",
			ErrPlayerInWall, cell.X, cell.Y, g.At(cell.X, cell.Y), p.Position.X, p.Position.Y)
	}
	return nil
}
