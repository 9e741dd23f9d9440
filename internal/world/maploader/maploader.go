// Package maploader reads level files into a grid plus spawn and light.
package maploader

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"math"
	"os"
	"path/filepath"
	"strings"

	"github.com/lucasb-eyer/go-colorful"

	"chosenoffset.com/raycaster/internal/core/geom"
	"chosenoffset.com/raycaster/internal/core/grid"
	"chosenoffset.com/raycaster/internal/render/lighting"
	"chosenoffset.com/raycaster/internal/simulation"
)

// ErrInvalidMap is returned for level files that cannot be played.
var ErrInvalidMap = errors.New("invalid map")

// SpawnPoint defines the player's start pose
type SpawnPoint struct {
	X            float64 `json:"x"`
	Y            float64 `json:"y"`
	AngleDegrees float64 `json:"angle_degrees"`
}

// LightData defines the level's point light
type LightData struct {
	X         float64 `json:"x"`
	Y         float64 `json:"y"`
	Intensity float64 `json:"intensity"`
	Color     string  `json:"color"` // Hex colour, defaults to white
}

// MapData represents a level file in the native format
type MapData struct {
	Name        string             `json:"name"`
	Width       int                `json:"width"`
	Height      int                `json:"height"`
	CellSize    float64            `json:"cell_size"` // World units per cell, 0 uses the configured size
	AtlasPath   string             `json:"atlas"`     // Optional, relative to the level file
	PlayerSpawn *SpawnPoint        `json:"player_spawn"`
	Light       *LightData         `json:"light"`
	Cells       [][]grid.CellValue `json:"cells"` // 2D array of wall values [y][x]
}

// Level is a loaded, validated level.
type Level struct {
	Name      string
	Path      string
	Grid      *grid.Grid
	Spawn     simulation.PlayerState
	Light     *lighting.LightSource // nil when the level has no light
	AtlasPath string                // resolved path, empty when the level names none
	TileSize  int                   // source tile size for imported Tiled maps
}

// Load reads a level from path, picking the format from the file contents.
// cellSize applies when the file does not set its own.
func Load(path string, cellSize float64) (*Level, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read map file %s: %w", path, err)
	}

	if strings.HasSuffix(strings.ToLower(path), ".js") {
		return parseTiled(path, data, cellSize)
	}

	var probe struct {
		Type string `json:"type"`
	}
	if err := json.Unmarshal(data, &probe); err != nil {
		return nil, fmt.Errorf("failed to parse map file %s: %w", path, err)
	}
	if probe.Type == "map" {
		return parseTiled(path, data, cellSize)
	}
	return parseNative(path, data, cellSize)
}

// LoadMap loads a level in the native JSON format.
func LoadMap(mapPath string, cellSize float64) (*Level, error) {
	data, err := os.ReadFile(mapPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read map file %s: %w", mapPath, err)
	}
	return parseNative(mapPath, data, cellSize)
}

func parseNative(mapPath string, data []byte, cellSize float64) (*Level, error) {
	// Parse the JSON
	var mapData MapData
	if err := json.Unmarshal(data, &mapData); err != nil {
		return nil, fmt.Errorf("failed to parse map file %s: %w", mapPath, err)
	}

	// Validate map data
	if err := validateMapData(&mapData); err != nil {
		return nil, fmt.Errorf("invalid map data in %s: %w", mapPath, err)
	}

	if mapData.CellSize > 0 {
		cellSize = mapData.CellSize
	}
	g, err := grid.FromRows(mapData.Cells, cellSize)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrInvalidMap, mapPath, err)
	}

	level := &Level{
		Name: mapData.Name,
		Path: mapPath,
		Grid: g,
	}
	if level.Name == "" {
		level.Name = levelName(mapPath)
	}
	if mapData.AtlasPath != "" {
		level.AtlasPath = resolve(mapPath, mapData.AtlasPath)
	}

	if mapData.PlayerSpawn != nil {
		level.Spawn = simulation.PlayerState{
			Position: geom.Vector2{X: mapData.PlayerSpawn.X, Y: mapData.PlayerSpawn.Y},
			Angle:    geom.NormalizeAngle(mapData.PlayerSpawn.AngleDegrees * math.Pi / 180),
		}
	} else if level.Spawn, err = defaultSpawn(g); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrInvalidMap, mapPath, err)
	}

	if mapData.Light != nil {
		light, err := mapData.Light.source()
		if err != nil {
			return nil, fmt.Errorf("%w: %s: %v", ErrInvalidMap, mapPath, err)
		}
		level.Light = light
	}

	if err := level.validate(); err != nil {
		return nil, err
	}
	return level, nil
}

// validateMapData checks if the map data is valid
func validateMapData(data *MapData) error {
	if data.Width <= 0 || data.Height <= 0 {
		return fmt.Errorf("%w: dimensions %dx%d", ErrInvalidMap, data.Width, data.Height)
	}

	if data.CellSize < 0 {
		return fmt.Errorf("%w: cell size %.1f", ErrInvalidMap, data.CellSize)
	}

	// Validate cells array dimensions
	if len(data.Cells) != data.Height {
		return fmt.Errorf("%w: cells array height mismatch: expected %d, got %d", ErrInvalidMap, data.Height, len(data.Cells))
	}

	for y, row := range data.Cells {
		if len(row) != data.Width {
			return fmt.Errorf("%w: cells array width mismatch at row %d: expected %d, got %d", ErrInvalidMap, y, data.Width, len(row))
		}
	}

	return nil
}

func (l *LightData) source() (*lighting.LightSource, error) {
	col := colorful.Color{R: 1, G: 1, B: 1}
	if l.Color != "" {
		c, err := colorful.Hex(l.Color)
		if err != nil {
			return nil, fmt.Errorf("light colour %q: %w", l.Color, err)
		}
		col = c
	}
	intensity := l.Intensity
	if intensity <= 0 {
		intensity = 1
	}
	return &lighting.LightSource{
		Position:  geom.Vector2{X: l.X, Y: l.Y},
		Intensity: min(intensity, 1),
		Color:     col,
	}, nil
}

// validate checks the level against the runtime invariants.
func (l *Level) validate() error {
	if err := simulation.CheckPlayer(l.Grid, l.Spawn); err != nil {
		return fmt.Errorf("%w: %s: spawn: %w", ErrInvalidMap, l.Path, err)
	}
	if !l.Grid.Enclosed() {
		log.Printf("WARNING: level %s is not enclosed by walls; rays and the player can leave the grid", l.Name)
	}
	return nil
}

// defaultSpawn places the player at the centre of the first empty cell in
// row-major order, facing +x.
func defaultSpawn(g *grid.Grid) (simulation.PlayerState, error) {
	for y := 0; y < g.Height(); y++ {
		for x := 0; x < g.Width(); x++ {
			if !grid.IsSolid(g.At(x, y)) {
				c := geom.Vector2i{X: x, Y: y}
				return simulation.PlayerState{Position: geom.CellCenter(c, g.CellSize())}, nil
			}
		}
	}
	return simulation.PlayerState{}, fmt.Errorf("no empty cell to spawn in")
}

func resolve(base, path string) string {
	if filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(filepath.Dir(base), path)
}

// levelName derives a display name from a file name, dropping all extensions.
func levelName(path string) string {
	name := filepath.Base(path)
	if i := strings.Index(name, "."); i > 0 {
		name = name[:i]
	}
	return name
}
