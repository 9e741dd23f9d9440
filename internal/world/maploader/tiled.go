package maploader

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"os"
	"strings"

	"chosenoffset.com/raycaster/internal/core/geom"
	"chosenoffset.com/raycaster/internal/core/grid"
	"chosenoffset.com/raycaster/internal/simulation"
)

// Tiled stores flip flags in the top bits of every gid.
const tiledGIDMask = 0x1fffffff

// TiledMap is the subset of the Tiled JSON map format the loader reads.
type TiledMap struct {
	Type       string       `json:"type"`
	Width      int          `json:"width"`
	Height     int          `json:"height"`
	TileWidth  int          `json:"tilewidth"`
	TileHeight int          `json:"tileheight"`
	Layers     []TiledLayer `json:"layers"`
	Properties []TiledProp  `json:"properties"`
}

// TiledLayer is a tile layer or an object group.
type TiledLayer struct {
	Name    string        `json:"name"`
	Type    string        `json:"type"` // "tilelayer" or "objectgroup"
	Width   int           `json:"width"`
	Height  int           `json:"height"`
	Data    []uint32      `json:"data"`
	Objects []TiledObject `json:"objects"`
}

// TiledObject is a point or rectangle placed in an object group.
type TiledObject struct {
	Name       string      `json:"name"`
	Type       string      `json:"type"`
	Class      string      `json:"class"`
	X          float64     `json:"x"`
	Y          float64     `json:"y"`
	Properties []TiledProp `json:"properties"`
}

// TiledProp is a custom property.
type TiledProp struct {
	Name  string          `json:"name"`
	Type  string          `json:"type"`
	Value json.RawMessage `json:"value"`
}

// LoadTiledMap imports a Tiled map saved as JSON or as the JavaScript
// wrapper Tiled writes for .tmxc.js exports. Tile gids become wall values
// unchanged. Objects named "spawn" and "light" in any object group set the
// player start and the level light; their pixel positions are scaled from
// Tiled tiles to cells of cellSize.
func LoadTiledMap(path string, cellSize float64) (*Level, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read tiled map %s: %w", path, err)
	}
	return parseTiled(path, data, cellSize)
}

func parseTiled(path string, data []byte, cellSize float64) (*Level, error) {
	payload, err := unwrapScript(data)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrInvalidMap, path, err)
	}

	var tm TiledMap
	if err := json.Unmarshal(payload, &tm); err != nil {
		return nil, fmt.Errorf("failed to parse tiled map %s: %w", path, err)
	}
	if tm.Width <= 0 || tm.Height <= 0 || tm.TileWidth <= 0 || tm.TileHeight <= 0 {
		return nil, fmt.Errorf("%w: %s: map %dx%d with %dx%d tiles",
			ErrInvalidMap, path, tm.Width, tm.Height, tm.TileWidth, tm.TileHeight)
	}

	layer := tm.tileLayer()
	if layer == nil {
		return nil, fmt.Errorf("%w: %s: no tile layer", ErrInvalidMap, path)
	}
	if len(layer.Data) != tm.Width*tm.Height {
		return nil, fmt.Errorf("%w: %s: layer %q has %d tiles, expected %d",
			ErrInvalidMap, path, layer.Name, len(layer.Data), tm.Width*tm.Height)
	}

	g, err := grid.New(tm.Width, tm.Height, cellSize)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrInvalidMap, path, err)
	}
	for i, gid := range layer.Data {
		c := geom.Vector2i{X: i % tm.Width, Y: i / tm.Width}
		if err := g.Set(c, grid.CellValue(gid&tiledGIDMask)); err != nil {
			return nil, fmt.Errorf("%w: %s: %v", ErrInvalidMap, path, err)
		}
	}

	level := &Level{
		Name:     levelName(path),
		Path:     path,
		Grid:     g,
		TileSize: tm.TileWidth,
	}
	if atlasPath, ok := tm.stringProp("atlas"); ok {
		level.AtlasPath = resolve(path, atlasPath)
	}

	scale := geom.Vector2{X: cellSize / float64(tm.TileWidth), Y: cellSize / float64(tm.TileHeight)}
	spawnSet := false
	for _, obj := range tm.objects() {
		pos := geom.Vector2{X: obj.X * scale.X, Y: obj.Y * scale.Y}
		switch strings.ToLower(obj.Name) {
		case "spawn":
			level.Spawn = simulation.PlayerState{Position: pos}
			if deg, ok := numberProp(obj.Properties, "angle_degrees"); ok {
				level.Spawn.Angle = geom.NormalizeAngle(deg * math.Pi / 180)
			}
			spawnSet = true
		case "light":
			light := LightData{X: pos.X, Y: pos.Y, Intensity: 1}
			if v, ok := numberProp(obj.Properties, "intensity"); ok {
				light.Intensity = v
			}
			if v, ok := stringProp(obj.Properties, "color"); ok {
				light.Color = v
			}
			src, err := light.source()
			if err != nil {
				return nil, fmt.Errorf("%w: %s: %v", ErrInvalidMap, path, err)
			}
			level.Light = src
		}
	}

	if !spawnSet {
		if level.Spawn, err = defaultSpawn(g); err != nil {
			return nil, fmt.Errorf("%w: %s: %v", ErrInvalidMap, path, err)
		}
	}
	if err := level.validate(); err != nil {
		return nil, err
	}
	return level, nil
}

// unwrapScript extracts the JSON object from a Tiled JavaScript export of
// the form (function(name,data){...})("Name", {...});. Plain JSON passes
// through untouched.
func unwrapScript(data []byte) ([]byte, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) > 0 && trimmed[0] == '{' {
		return trimmed, nil
	}

	call := bytes.LastIndex(trimmed, []byte("})("))
	if call < 0 {
		return nil, fmt.Errorf("unrecognised tiled export")
	}
	start := bytes.IndexByte(trimmed[call+3:], '{')
	end := bytes.LastIndexByte(trimmed, '}')
	if start < 0 || end < call+3+start {
		return nil, fmt.Errorf("tiled export has no map object")
	}
	return trimmed[call+3+start : end+1], nil
}

func (tm *TiledMap) tileLayer() *TiledLayer {
	for i := range tm.Layers {
		if tm.Layers[i].Type == "tilelayer" {
			return &tm.Layers[i]
		}
	}
	return nil
}

func (tm *TiledMap) objects() []TiledObject {
	var objs []TiledObject
	for _, l := range tm.Layers {
		if l.Type == "objectgroup" {
			objs = append(objs, l.Objects...)
		}
	}
	return objs
}

func (tm *TiledMap) stringProp(name string) (string, bool) {
	return stringProp(tm.Properties, name)
}

func stringProp(props []TiledProp, name string) (string, bool) {
	for _, p := range props {
		if p.Name != name {
			continue
		}
		var s string
		if err := json.Unmarshal(p.Value, &s); err == nil {
			return s, true
		}
	}
	return "", false
}

func numberProp(props []TiledProp, name string) (float64, bool) {
	for _, p := range props {
		if p.Name != name {
			continue
		}
		var f float64
		if err := json.Unmarshal(p.Value, &f); err == nil {
			return f, true
		}
	}
	return 0, false
}
