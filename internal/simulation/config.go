// Package simulation holds the player model and the rules that move it.
// Tunables are loaded from a JSON file so levels can ship their own feel.
package simulation

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"os"

	"github.com/lucasb-eyer/go-colorful"
)

// ErrInvalidConfig is returned when a loaded config fails validation.
var ErrInvalidConfig = errors.New("invalid config")

// Config holds all tunables for a session
type Config struct {
	// Window and framebuffer
	Screen ScreenConfig `json:"screen"`

	// Wall projection and shading
	Render RenderConfig `json:"render"`

	// Ray caster parameters
	Caster CasterConfig `json:"caster"`

	// Player movement rules
	Movement MovementConfig `json:"movement"`

	// Development switches
	Debug DebugConfig `json:"debug"`
}

// ScreenConfig defines the framebuffer and window
type ScreenConfig struct {
	Width  int    `json:"width"`  // Framebuffer width in pixels (one ray per column)
	Height int    `json:"height"` // Framebuffer height in pixels
	Scale  int    `json:"scale"`  // Window pixels per framebuffer pixel
	Title  string `json:"title"`  // Window title
}

// RenderConfig defines how wall slices are projected and shaded
type RenderConfig struct {
	FOVDegrees     float64 `json:"fov_degrees"`     // Horizontal field of view
	DistanceFactor float64 `json:"distance_factor"` // Slice height = factor / distance
	CorrectFisheye bool    `json:"correct_fisheye"` // Project distances onto the view direction
	Shadows        bool    `json:"shadows"`         // Cast shadow rays towards the level light
	AmbientLight   float64 `json:"ambient_light"`   // Brightness left in shadow (0.0 to 1.0)
	CeilingColor   string  `json:"ceiling_color"`   // Hex colour above the walls
	FloorColor     string  `json:"floor_color"`     // Hex colour below the walls
}

// CasterConfig defines the ray caster parameters
type CasterConfig struct {
	CellSize    float64 `json:"cell_size"`    // World units per grid cell
	Epsilon     float64 `json:"epsilon"`      // Degenerate-angle neighbourhood in radians
	MissPadding float64 `json:"miss_padding"` // Added to the miss sentinel distance
}

// MovementConfig defines movement mechanics
type MovementConfig struct {
	TurnSpeed float64       `json:"turn_speed"` // Radians per second
	WalkSpeed float64       `json:"walk_speed"` // World units per second
	Collision CollisionMode `json:"collision"`  // "assert" or "slide"
}

// DebugConfig toggles development aids
type DebugConfig struct {
	AssertInvariants bool `json:"assert_invariants"` // Fail loudly when the player ends up inside a wall
	Crosshair        bool `json:"crosshair"`         // Draw a line at the centre column
	Minimap          bool `json:"minimap"`           // Draw the top-down overlay
	ShowFPS          bool `json:"show_fps"`          // Print frame timing on screen
	TraceRays        bool `json:"trace_rays"`        // Log every DDA step of the centre ray
}

// DefaultConfig returns the stock tunables
func DefaultConfig() *Config {
	return &Config{
		Screen: ScreenConfig{
			Width:  512,
			Height: 512,
			Scale:  1,
			Title:  "Raycaster",
		},
		Render: RenderConfig{
			FOVDegrees:     90,
			DistanceFactor: 25 * 512,
			CorrectFisheye: true,
			Shadows:        true,
			AmbientLight:   0.15,
			CeilingColor:   "#383838",
			FloorColor:     "#707070",
		},
		Caster: CasterConfig{
			CellSize:    100,
			Epsilon:     1e-4,
			MissPadding: 100,
		},
		Movement: MovementConfig{
			TurnSpeed: 2.0,
			WalkSpeed: 100,
			Collision: CollisionSlide,
		},
	}
}

// LoadConfig loads the config from a JSON file, layered over the defaults
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		// Return defaults if file doesn't exist
		if os.IsNotExist(err) {
			return DefaultConfig(), nil
		}
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	config := DefaultConfig() // Start with defaults
	if err := json.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}
	return config, nil
}

// Validate checks the config for values the engine cannot run with.
func (c *Config) Validate() error {
	switch {
	case c.Screen.Width <= 0 || c.Screen.Height <= 0:
		return fmt.Errorf("%w: screen size %dx%d", ErrInvalidConfig, c.Screen.Width, c.Screen.Height)
	case c.Screen.Scale <= 0:
		return fmt.Errorf("%w: screen scale %d", ErrInvalidConfig, c.Screen.Scale)
	case c.Render.FOVDegrees <= 0 || c.Render.FOVDegrees >= 180:
		return fmt.Errorf("%w: fov %.1f must be in (0, 180)", ErrInvalidConfig, c.Render.FOVDegrees)
	case c.Render.DistanceFactor <= 0:
		return fmt.Errorf("%w: distance factor %.1f", ErrInvalidConfig, c.Render.DistanceFactor)
	case c.Caster.CellSize <= 0:
		return fmt.Errorf("%w: cell size %.1f", ErrInvalidConfig, c.Caster.CellSize)
	case c.Caster.Epsilon <= 0 || c.Caster.Epsilon >= math.Pi/4:
		return fmt.Errorf("%w: epsilon %g", ErrInvalidConfig, c.Caster.Epsilon)
	case c.Caster.MissPadding < 0:
		return fmt.Errorf("%w: miss padding %.1f", ErrInvalidConfig, c.Caster.MissPadding)
	}
	if _, err := ParseCollisionMode(string(c.Movement.Collision)); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	if _, _, err := c.Colors(); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	return nil
}

// FOV returns the field of view in radians.
func (c *Config) FOV() float64 {
	return c.Render.FOVDegrees * math.Pi / 180
}

// Colors parses the ceiling and floor colours.
func (c *Config) Colors() (ceiling, floor colorful.Color, err error) {
	ceiling, err = colorful.Hex(c.Render.CeilingColor)
	if err != nil {
		return ceiling, floor, fmt.Errorf("ceiling colour %q: %w", c.Render.CeilingColor, err)
	}
	floor, err = colorful.Hex(c.Render.FloorColor)
	if err != nil {
		return ceiling, floor, fmt.Errorf("floor colour %q: %w", c.Render.FloorColor, err)
	}
	return ceiling, floor, nil
}
