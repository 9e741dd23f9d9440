// Package placeholders draws a procedural wall atlas for levels that ship
// without art.
package placeholders

import (
	"encoding/json"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"os"
	"path/filepath"

	"github.com/lucasb-eyer/go-colorful"

	"chosenoffset.com/raycaster/internal/render"
	"chosenoffset.com/raycaster/internal/world/atlas"
)

// TileSize is the standard size for placeholder tiles
const TileSize = 64

// Default atlas layout: 8 columns by 5 rows covers wall values up to 39.
const (
	DefaultColumns = 8
	DefaultRows    = 5
)

// ShadowFactor is how much brightness a dark variant keeps.
const ShadowFactor = 0.45

// Material describes one wall look.
type Material struct {
	Name    string
	Base    color.RGBA
	Accent  color.RGBA
	Pattern string // "brick", "grid", "dots", "cross", "diagonal", "border" or "" for solid
}

// WallMaterials returns the hand-picked materials followed by as many
// generated ones as the layout needs.
func WallMaterials(count int) []Material {
	mats := []Material{
		{"stone", color.RGBA{130, 125, 115, 255}, color.RGBA{95, 90, 82, 255}, "brick"},
		{"brick", color.RGBA{150, 70, 50, 255}, color.RGBA{200, 190, 170, 255}, "brick"},
		{"wood", color.RGBA{140, 100, 60, 255}, color.RGBA{100, 80, 60, 255}, "grid"},
		{"moss", color.RGBA{70, 110, 60, 255}, color.RGBA{40, 70, 35, 255}, "dots"},
		{"metal", color.RGBA{120, 130, 145, 255}, color.RGBA{200, 200, 200, 255}, "border"},
		{"tome", color.RGBA{80, 60, 140, 255}, color.RGBA{255, 215, 0, 255}, "cross"},
	}
	patterns := []string{"brick", "grid", "dots", "cross", "diagonal", "border", ""}
	for i := len(mats); i < count; i++ {
		hue := float64(i * 47) // spread hues around the wheel
		base := colorful.Hcl(hue, 0.35, 0.55).Clamped()
		accent := colorful.Hcl(hue+180, 0.25, 0.75).Clamped()
		mats = append(mats, Material{
			Name:    fmt.Sprintf("material_%d", i),
			Base:    toRGBA(base),
			Accent:  toRGBA(accent),
			Pattern: patterns[i%len(patterns)],
		})
	}
	return mats[:count]
}

// CreateSolidTile creates a simple solid-colored tile
func CreateSolidTile(col color.RGBA) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, TileSize, TileSize))
	draw.Draw(img, img.Bounds(), &image.Uniform{col}, image.Point{}, draw.Src)
	return img
}

// CreateBorderedTile creates a tile with a border
func CreateBorderedTile(fillColor, borderColor color.RGBA, borderWidth int) *image.RGBA {
	img := CreateSolidTile(fillColor)

	// Draw borders
	for i := 0; i < borderWidth; i++ {
		// Top and bottom borders
		for x := 0; x < TileSize; x++ {
			img.Set(x, i, borderColor)
			img.Set(x, TileSize-1-i, borderColor)
		}
		// Left and right borders
		for y := 0; y < TileSize; y++ {
			img.Set(i, y, borderColor)
			img.Set(TileSize-1-i, y, borderColor)
		}
	}

	return img
}

// CreatePatternedTile creates a tile with a simple pattern
func CreatePatternedTile(baseColor, patternColor color.RGBA, pattern string) *image.RGBA {
	img := CreateSolidTile(baseColor)

	switch pattern {
	case "brick":
		// Mortar lines every 16 rows, joints offset by half a brick on odd courses
		course := TileSize / 4
		for y := 0; y < TileSize; y++ {
			row := y / course
			for x := 0; x < TileSize; x++ {
				joint := (x + row%2*TileSize/4) % (TileSize / 2)
				if y%course == 0 || joint == 0 {
					img.Set(x, y, patternColor)
				}
			}
		}
	case "grid":
		// Draw a grid pattern
		for i := 0; i < TileSize; i += 8 {
			for x := 0; x < TileSize; x++ {
				img.Set(x, i, patternColor)
				img.Set(i, x, patternColor)
			}
		}
	case "dots":
		// Draw dots (scaled for tile size)
		quarter := TileSize / 4
		threeQuarter := 3 * TileSize / 4
		dots := []image.Point{{quarter, quarter}, {threeQuarter, quarter}, {quarter, threeQuarter}, {threeQuarter, threeQuarter}}
		for _, p := range dots {
			for dy := 0; dy < 4; dy++ {
				for dx := 0; dx < 4; dx++ {
					img.Set(p.X+dx, p.Y+dy, patternColor)
				}
			}
		}
	case "cross":
		// Draw a cross
		mid := TileSize / 2
		for i := 4; i < TileSize-4; i++ {
			img.Set(mid, i, patternColor)
			img.Set(i, mid, patternColor)
		}
	case "diagonal":
		// Draw diagonal lines
		for i := 0; i < TileSize; i++ {
			img.Set(i, i, patternColor)
			img.Set(i, TileSize-1-i, patternColor)
		}
	case "border":
		return CreateBorderedTile(baseColor, patternColor, 3)
	}

	return img
}

// CreateAtlas creates a sprite atlas from multiple tiles
func CreateAtlas(tiles []*image.RGBA, columns int) *image.RGBA {
	tileCount := len(tiles)
	rows := (tileCount + columns - 1) / columns

	width := columns * TileSize
	height := rows * TileSize

	atlas := image.NewRGBA(image.Rect(0, 0, width, height))

	// Fill with transparent background
	draw.Draw(atlas, atlas.Bounds(), &image.Uniform{color.RGBA{0, 0, 0, 0}}, image.Point{}, draw.Src)

	// Copy each tile into the atlas
	for i, tile := range tiles {
		if tile == nil {
			continue
		}

		col := i % columns
		row := i / columns

		x := col * TileSize
		y := row * TileSize

		destRect := image.Rect(x, y, x+TileSize, y+TileSize)
		draw.Draw(atlas, destRect, tile, image.Point{}, draw.Src)
	}

	return atlas
}

// GenerateWallAtlas lays out columns x rows tiles in lit/dark pairs: tile
// 2k is the dark variant of material k and tile 2k+1 the lit one, so a wall
// value v finds its shadowed look at v-1.
func GenerateWallAtlas(columns, rows int) (*image.RGBA, *atlas.AtlasConfig) {
	count := columns * rows
	mats := WallMaterials((count + 1) / 2)

	tiles := make([]*image.RGBA, count)
	config := &atlas.AtlasConfig{
		Name:       "placeholder_walls",
		TileWidth:  TileSize,
		TileHeight: TileSize,
		Columns:    columns,
	}
	for n := 0; n < count; n++ {
		m := mats[n/2]
		name := m.Name
		base, accent := m.Base, m.Accent
		if n%2 == 0 {
			name += "_dark"
			base, accent = Darken(base, ShadowFactor), Darken(accent, ShadowFactor)
		} else {
			accent = Lighten(accent, 0.15)
		}
		tiles[n] = CreatePatternedTile(base, accent, m.Pattern)
		config.Tiles = append(config.Tiles, atlas.TileDefinition{
			Name:         name,
			Value:        n,
			MinimapColor: hex(base),
		})
	}
	return CreateAtlas(tiles, columns), config
}

// WallAtlas builds the default placeholder atlas in memory.
func WallAtlas() (*atlas.Atlas, error) {
	img, config := GenerateWallAtlas(DefaultColumns, DefaultRows)
	return atlas.New(config, render.NewImageTexture(img))
}

// GenerateAndSave writes the default atlas image and its JSON config into
// dir. It returns the path of the config file.
func GenerateAndSave(dir string) (string, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("failed to create %s: %w", dir, err)
	}

	img, config := GenerateWallAtlas(DefaultColumns, DefaultRows)
	config.ImagePath = "placeholder_walls.png"

	if err := SavePNG(img, filepath.Join(dir, config.ImagePath)); err != nil {
		return "", err
	}

	data, err := json.MarshalIndent(config, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to encode atlas config: %w", err)
	}
	configPath := filepath.Join(dir, "placeholder_atlas.json")
	if err := os.WriteFile(configPath, data, 0644); err != nil {
		return "", fmt.Errorf("failed to write atlas config: %w", err)
	}
	return configPath, nil
}

// SavePNG saves an image to a PNG file
func SavePNG(img image.Image, path string) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	defer file.Close()

	if err := png.Encode(file, img); err != nil {
		return fmt.Errorf("failed to encode %s: %w", path, err)
	}
	return nil
}

// Darken returns a darker version of a color
func Darken(c color.RGBA, factor float64) color.RGBA {
	dark := colorful.Color{}.BlendRgb(fromRGBA(c), factor)
	out := toRGBA(dark)
	out.A = c.A
	return out
}

// Lighten returns a lighter version of a color
func Lighten(c color.RGBA, factor float64) color.RGBA {
	light := fromRGBA(c).BlendRgb(colorful.Color{R: 1, G: 1, B: 1}, factor)
	out := toRGBA(light)
	out.A = c.A
	return out
}

func fromRGBA(c color.RGBA) colorful.Color {
	return colorful.Color{R: float64(c.R) / 255, G: float64(c.G) / 255, B: float64(c.B) / 255}
}

func toRGBA(c colorful.Color) color.RGBA {
	r, g, b := c.Clamped().RGB255()
	return color.RGBA{r, g, b, 255}
}

func hex(c color.RGBA) string {
	return fromRGBA(c).Hex()
}
