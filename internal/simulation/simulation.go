package simulation

import (
	"fmt"

	"chosenoffset.com/raycaster/internal/core/grid"
)

// MaxFrameTime caps the dt a single Update may consume, in seconds.
const MaxFrameTime = 0.25

// Simulation is the per-session state advanced once per frame.
type Simulation struct {
	Grid       *grid.Grid
	Player     PlayerState
	Input      InputState
	Controller Controller
	Config     *Config
}

// New validates the spawn and builds a simulation.
func New(g *grid.Grid, spawn PlayerState, cfg *Config) (*Simulation, error) {
	if g == nil {
		return nil, fmt.Errorf("simulation needs a grid")
	}
	if cfg == nil {
		cfg = DefaultConfig()
	}
	if err := CheckPlayer(g, spawn); err != nil {
		return nil, fmt.Errorf("invalid spawn: %w", err)
	}
	return &Simulation{
		Grid:       g,
		Player:     spawn,
		Controller: NewController(cfg.Movement),
		Config:     cfg,
	}, nil
}

// Update advances the player by dt seconds using the current Input. With
// invariant assertions enabled it returns ErrPlayerInWall or
// ErrPlayerOutOfBounds as soon as the player leaves open floor.
func (s *Simulation) Update(dt float64) error {
	dt = min(max(dt, 0), MaxFrameTime)
	s.Controller.Step(&s.Player, s.Input, s.Grid, dt)

	if s.Config.Debug.AssertInvariants {
		return CheckPlayer(s.Grid, s.Player)
	}
	return nil
}
