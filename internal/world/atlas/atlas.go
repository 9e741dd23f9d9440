// Package atlas maps wall values to tiles of a single texture atlas.
package atlas

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"os"
	"path/filepath"

	"github.com/lucasb-eyer/go-colorful"

	"chosenoffset.com/raycaster/internal/core/grid"
	"chosenoffset.com/raycaster/internal/render"
)

// ErrInvalidAtlas is returned for atlas configs the renderer cannot use.
var ErrInvalidAtlas = errors.New("invalid atlas")

// TileDefinition names a wall value
type TileDefinition struct {
	Name         string `json:"name"`          // Semantic name (e.g., "brick_lit")
	Value        int    `json:"value"`         // Grid value that selects this tile
	MinimapColor string `json:"minimap_color"` // Hex colour used by the minimap overlay
}

// AtlasConfig defines the JSON configuration for a wall atlas
type AtlasConfig struct {
	Name       string           `json:"name"`        // Atlas name
	ImagePath  string           `json:"image_path"`  // Path to the atlas image, relative to the config file
	TileWidth  int              `json:"tile_width"`  // Width of each tile in pixels
	TileHeight int              `json:"tile_height"` // Height of each tile in pixels
	Columns    int              `json:"columns"`     // Tiles per atlas row, 0 derives it from the image
	Tiles      []TileDefinition `json:"tiles"`       // Optional names for wall values
}

// Atlas is a loaded wall atlas. Tile n sits at column n % Columns and row
// n / Columns; the tile just before a wall's own tile is its unlit variant.
type Atlas struct {
	Config       *AtlasConfig
	Texture      render.Texture
	TilesByName  map[string]*TileDefinition // Quick lookup by name
	TilesByValue map[int]*TileDefinition
}

// LoadAtlas loads an atlas from a JSON configuration file. The image is
// loaded through loader; nil selects render.DecodeLoader.
func LoadAtlas(configPath string, loader render.ResourceLoader) (*Atlas, error) {
	// Read the JSON configuration file
	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read atlas config %s: %w", configPath, err)
	}

	// Parse the JSON
	var config AtlasConfig
	if err := json.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse atlas config %s: %w", configPath, err)
	}

	if config.ImagePath == "" {
		return nil, fmt.Errorf("%w: image_path is required in %s", ErrInvalidAtlas, configPath)
	}
	imagePath := config.ImagePath
	if !filepath.IsAbs(imagePath) {
		imagePath = filepath.Join(filepath.Dir(configPath), imagePath)
	}

	if loader == nil {
		loader = render.DecodeLoader{}
	}
	tex, err := loader.LoadTexture(imagePath)
	if err != nil {
		return nil, fmt.Errorf("failed to load atlas image %s: %w", imagePath, err)
	}

	return New(&config, tex)
}

// New builds an atlas around an already loaded texture.
func New(config *AtlasConfig, tex render.Texture) (*Atlas, error) {
	// Validate configuration
	if config.TileWidth <= 0 || config.TileHeight <= 0 {
		return nil, fmt.Errorf("%w: tile dimensions %dx%d", ErrInvalidAtlas, config.TileWidth, config.TileHeight)
	}

	w, h := tex.Size()
	if config.Columns == 0 {
		config.Columns = w / config.TileWidth
	}
	if config.Columns <= 0 || config.Columns*config.TileWidth > w || config.TileHeight > h {
		return nil, fmt.Errorf("%w: %d columns of %dx%d tiles do not fit a %dx%d image",
			ErrInvalidAtlas, config.Columns, config.TileWidth, config.TileHeight, w, h)
	}

	// Build the lookup maps
	tilesByName := make(map[string]*TileDefinition)
	tilesByValue := make(map[int]*TileDefinition)
	for i := range config.Tiles {
		tile := &config.Tiles[i]
		if tile.Name != "" {
			tilesByName[tile.Name] = tile
		}
		tilesByValue[tile.Value] = tile
	}

	return &Atlas{
		Config:       config,
		Texture:      tex,
		TilesByName:  tilesByName,
		TilesByValue: tilesByValue,
	}, nil
}

// Rows returns how many tile rows fit in the atlas image.
func (a *Atlas) Rows() int {
	_, h := a.Texture.Size()
	return h / a.Config.TileHeight
}

// TileCount returns the number of addressable tiles.
func (a *Atlas) TileCount() int {
	return a.Config.Columns * a.Rows()
}

// Offset returns the top-left pixel of tile n.
func (a *Atlas) Offset(n int) (x, y float64) {
	cols := a.Config.Columns
	return float64((n % cols) * a.Config.TileWidth), float64((n / cols) * a.Config.TileHeight)
}

// Has reports whether tile n lies inside the atlas image.
func (a *Atlas) Has(n int) bool {
	return n >= 0 && n < a.TileCount()
}

// TextureColumn returns the atlas x coordinate for a hit at frac along a face
// of a wall with the given value.
func (a *Atlas) TextureColumn(value grid.CellValue, frac float64) float64 {
	x, _ := a.Offset(int(value))
	return x + frac*float64(a.Config.TileWidth)
}

// Sample reads tile n at (u, v) in tile pixels. Coordinates wrap inside the
// tile.
func (a *Atlas) Sample(n int, u, v float64) (colorful.Color, float64) {
	x, y := a.Offset(n)
	return a.Texture.Sample(x+wrap(u, a.Config.TileWidth), y+wrap(v, a.Config.TileHeight))
}

// SubTexture returns tile n as a standalone texture.
func (a *Atlas) SubTexture(n int) render.Texture {
	x, y := a.Offset(n)
	return render.NewSubTexture(a.Texture, x, y, a.Config.TileWidth, a.Config.TileHeight)
}

func wrap(v float64, size int) float64 {
	v = math.Mod(v, float64(size))
	if v < 0 {
		v += float64(size)
	}
	return v
}

// GetTile returns a tile definition by name
func (a *Atlas) GetTile(name string) (*TileDefinition, bool) {
	tile, ok := a.TilesByName[name]
	return tile, ok
}

// TileName returns the configured name for a wall value, or a generic one.
func (a *Atlas) TileName(value grid.CellValue) string {
	if tile, ok := a.TilesByValue[int(value)]; ok && tile.Name != "" {
		return tile.Name
	}
	return fmt.Sprintf("tile_%d", value)
}

// MinimapColor returns the minimap colour for a wall value. ok is false when
// no valid colour is configured.
func (a *Atlas) MinimapColor(value grid.CellValue) (c colorful.Color, ok bool) {
	tile, found := a.TilesByValue[int(value)]
	if !found || tile.MinimapColor == "" {
		return c, false
	}
	c, err := colorful.Hex(tile.MinimapColor)
	return c, err == nil
}
