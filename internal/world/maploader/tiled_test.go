package maploader

import (
	"errors"
	"math"
	"path/filepath"
	"testing"

	"chosenoffset.com/raycaster/internal/core/geom"
)

// map1 is a Tiled 1.0 JavaScript export: a walled 10x10 room split by a
// pillar line of tile 33 with a gap in the middle.
const map1 = `(function(name,data){
 if(typeof onTileMapLoaded === 'undefined') {
  if(typeof TileMaps === 'undefined') TileMaps = {};
  TileMaps[name] = data;
 } else {
  onTileMapLoaded(name,data);
 }
 if(typeof module === 'object' && module && module.exports) {
  module.exports = data;
 }})("Map1",
{ "height":10,
 "layers":[
        {
         "data":[1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 0, 0, 0, 0, 33, 0, 0, 0, 1, 1, 0, 0, 0, 0, 33, 0, 0, 0, 1, 1, 0, 0, 0, 0, 33, 0, 0, 0, 1, 1, 0, 0, 0, 0, 0, 0, 0, 0, 1, 1, 0, 0, 0, 0, 0, 0, 0, 0, 1, 1, 0, 0, 0, 0, 33, 0, 0, 0, 1, 1, 0, 0, 0, 0, 33, 0, 0, 0, 1, 1, 0, 0, 0, 0, 33, 0, 0, 0, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1],
         "height":10,
         "name":"Kachelebene 1",
         "opacity":1,
         "type":"tilelayer",
         "visible":true,
         "width":10,
         "x":0,
         "y":0
        }],
 "nextobjectid":1,
 "orientation":"orthogonal",
 "renderorder":"right-down",
 "tiledversion":"1.0.3",
 "tileheight":64,
 "tilesets":[
        {
         "firstgid":1,
         "source":"..\/Tiled\/Walls.tsx"
        }],
 "tilewidth":64,
 "type":"map",
 "version":1,
 "width":10
});`

func TestLoadTiledScriptExport(t *testing.T) {
	path := writeFile(t, t.TempDir(), "Map1.tmxc.js", map1)

	level, err := Load(path, 100)
	if err != nil {
		t.Fatalf("Failed to load tiled map: %v", err)
	}

	if level.Name != "Map1" {
		t.Errorf("Expected name 'Map1', got '%s'", level.Name)
	}
	g := level.Grid
	if g.Width() != 10 || g.Height() != 10 || g.CellSize() != 100 {
		t.Fatalf("Expected a 10x10 grid of 100 unit cells, got %dx%d @ %v", g.Width(), g.Height(), g.CellSize())
	}
	if !g.Enclosed() {
		t.Error("Expected Map1 to be enclosed")
	}
	for _, row := range []int{1, 2, 3, 6, 7, 8} {
		if v := g.At(5, row); v != 33 {
			t.Errorf("Expected 33 at (5, %d), got %d", row, v)
		}
	}
	if v := g.At(5, 4); v != 0 {
		t.Errorf("Expected the pillar gap at (5, 4), got %d", v)
	}
	if level.TileSize != 64 {
		t.Errorf("Expected tile size 64, got %d", level.TileSize)
	}
	if level.Spawn.Position != (geom.Vector2{X: 150, Y: 150}) {
		t.Errorf("Expected default spawn at (150, 150), got %+v", level.Spawn.Position)
	}
}

func TestLoadTiledJSONWithObjects(t *testing.T) {
	content := `{
		"type": "map",
		"width": 4, "height": 3,
		"tilewidth": 32, "tileheight": 32,
		"properties": [{"name": "atlas", "type": "string", "value": "walls.json"}],
		"layers": [
			{"name": "markers", "type": "objectgroup", "objects": [
				{"name": "spawn", "x": 48, "y": 48, "properties": [{"name": "angle_degrees", "type": "float", "value": 180}]},
				{"name": "Light", "x": 80, "y": 48, "properties": [{"name": "intensity", "type": "float", "value": 0.5}]}
			]},
			{"name": "walls", "type": "tilelayer", "width": 4, "height": 3,
			 "data": [1, 1, 1, 1, 1, 0, 0, 2147483650, 1, 1, 1, 1]}
		]
	}`
	dir := t.TempDir()
	path := writeFile(t, dir, "room.json", content)

	level, err := LoadTiledMap(path, 100)
	if err != nil {
		t.Fatalf("Failed to load tiled map: %v", err)
	}

	if v := level.Grid.At(3, 1); v != 2 {
		t.Errorf("Expected flip flags stripped to 2, got %d", v)
	}
	if level.Spawn.Position != (geom.Vector2{X: 150, Y: 150}) {
		t.Errorf("Expected spawn scaled to (150, 150), got %+v", level.Spawn.Position)
	}
	if math.Abs(level.Spawn.Angle-math.Pi) > 1e-12 {
		t.Errorf("Expected spawn angle pi, got %v", level.Spawn.Angle)
	}
	if level.Light == nil || level.Light.Position != (geom.Vector2{X: 250, Y: 150}) || level.Light.Intensity != 0.5 {
		t.Errorf("Unexpected light %+v", level.Light)
	}
	if want := filepath.Join(dir, "walls.json"); level.AtlasPath != want {
		t.Errorf("Expected atlas %s, got %s", want, level.AtlasPath)
	}
}

func TestLoadTiledInvalid(t *testing.T) {
	tests := []struct {
		name    string
		file    string
		content string
	}{
		{"no tile layer", "a.json", `{"type": "map", "width": 1, "height": 1, "tilewidth": 8, "tileheight": 8, "layers": []}`},
		{"short layer", "b.json", `{"type": "map", "width": 2, "height": 1, "tilewidth": 8, "tileheight": 8, "layers": [{"type": "tilelayer", "data": [0]}]}`},
		{"zero tile size", "c.json", `{"type": "map", "width": 1, "height": 1, "tilewidth": 0, "tileheight": 8, "layers": [{"type": "tilelayer", "data": [0]}]}`},
		{"garbage script", "d.tmxc.js", `console.log("hello")`},
	}

	for _, tt := range tests {
		path := writeFile(t, t.TempDir(), tt.file, tt.content)
		if _, err := Load(path, 100); !errors.Is(err, ErrInvalidMap) {
			t.Errorf("%s: expected ErrInvalidMap, got %v", tt.name, err)
		}
	}
}

func TestUnwrapScriptPassesJSON(t *testing.T) {
	out, err := unwrapScript([]byte("  {\"a\": 1}\n"))
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if string(out) != `{"a": 1}` {
		t.Errorf("Expected trimmed JSON, got %q", out)
	}
}
