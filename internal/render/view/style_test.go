package view

import (
	"image"
	"image/color"
	"math"
	"testing"

	"github.com/lucasb-eyer/go-colorful"

	"chosenoffset.com/raycaster/internal/core/raycast"
	"chosenoffset.com/raycaster/internal/render"
	"chosenoffset.com/raycaster/internal/world/atlas"
)

var (
	blue  = colorful.Color{B: 1}
	green = colorful.Color{G: 1}
)

func solidTexture(w, h int, c color.NRGBA) render.Texture {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, c)
		}
	}
	return render.NewImageTexture(img)
}

func TestAtlasStyleLitAndUnlit(t *testing.T) {
	// tile 0 blue (unlit look of value 1), tile 1 red, tile 2 green
	img := image.NewNRGBA(image.Rect(0, 0, 12, 4))
	for y := 0; y < 4; y++ {
		for x := 0; x < 12; x++ {
			switch x / 4 {
			case 0:
				img.Set(x, y, color.NRGBA{0, 0, 255, 255})
			case 1:
				img.Set(x, y, color.NRGBA{255, 0, 0, 255})
			default:
				img.Set(x, y, color.NRGBA{0, 255, 0, 255})
			}
		}
	}
	a, err := atlas.New(&atlas.AtlasConfig{TileWidth: 4, TileHeight: 4}, render.NewImageTexture(img))
	if err != nil {
		t.Fatalf("Failed to create atlas: %v", err)
	}
	s := NewAtlasStyle(a)

	hit := raycast.RayHit{Solid: true, Value: 1, Frac: 0.9}
	hit.TexX = s.TextureColumn(hit.Value, hit.Frac)
	if math.Abs(hit.TexX-7.6) > 1e-9 {
		t.Fatalf("Expected atlas column 7.6, got %v", hit.TexX)
	}

	if c, _ := s.Sample(hit, 0.5, false); c != red {
		t.Errorf("Expected the lit tile, got %v", c)
	}
	if c, _ := s.Sample(hit, 0.5, true); c != blue {
		t.Errorf("Expected tile value-1 in shadow, got %v", c)
	}

	hit = raycast.RayHit{Solid: true, Value: 2, Frac: 0.1}
	hit.TexX = s.TextureColumn(hit.Value, hit.Frac)
	if c, _ := s.Sample(hit, 0.99, true); c != red {
		t.Errorf("Expected value 2 to fall back to tile 1 in shadow, got %v", c)
	}

	hit = raycast.RayHit{Solid: true, Value: 7}
	if c, _ := s.Sample(hit, 0.5, false); c != Missing {
		t.Errorf("Expected the missing colour outside the atlas, got %v", c)
	}
}

func TestTextureStyle(t *testing.T) {
	s := NewTextureStyle()
	s.Ambient = 0.5
	s.Textures[1] = solidTexture(8, 8, color.NRGBA{255, 0, 0, 255})
	s.Textures[2] = solidTexture(16, 16, color.NRGBA{0, 255, 0, 255})

	if got := s.TextureColumn(2, 0.5); got != 8 {
		t.Errorf("Expected column 8 of a 16 wide texture, got %v", got)
	}
	if got := s.TextureColumn(9, 0.5); got != 0.5 {
		t.Errorf("Expected frac for an unknown value, got %v", got)
	}

	hit := raycast.RayHit{Solid: true, Value: 2, TexX: s.TextureColumn(2, 0.25)}
	if c, _ := s.Sample(hit, 0.5, false); c != green {
		t.Errorf("Expected the lit texture, got %v", c)
	}
	if c, _ := s.Sample(hit, 0.5, true); c != red {
		t.Errorf("Expected texture value-1 in shadow, got %v", c)
	}

	hit = raycast.RayHit{Solid: true, Value: 1, TexX: s.TextureColumn(1, 0.25)}
	c, _ := s.Sample(hit, 0.5, true)
	if !c.AlmostEqualRgb(colorful.Color{R: 0.5}) {
		t.Errorf("Expected a darkened lit texture without an unlit variant, got %v", c)
	}

	if c, _ := s.Sample(raycast.RayHit{Value: 5}, 0.5, false); c != Missing {
		t.Errorf("Expected the missing colour, got %v", c)
	}
}

func TestColorStyle(t *testing.T) {
	s := NewColorStyle(1, 2)
	if s.Palette[1] == s.Palette[2] {
		t.Error("Expected distinct palette colours")
	}
	s.Palette[1] = red
	s.Ambient = 0.25
	s.SideShade = 0.5

	horizontal := raycast.RayHit{Value: 1, Sweep: raycast.SweepHorizontal}
	if c, a := s.Sample(horizontal, 0.3, false); c != red || a != 1 {
		t.Errorf("Expected opaque red, got %v alpha %v", c, a)
	}

	vertical := raycast.RayHit{Value: 1, Sweep: raycast.SweepVertical}
	if c, _ := s.Sample(vertical, 0.3, false); !c.AlmostEqualRgb(colorful.Color{R: 0.5}) {
		t.Errorf("Expected side shading, got %v", c)
	}
	if c, _ := s.Sample(horizontal, 0.3, true); !c.AlmostEqualRgb(colorful.Color{R: 0.25}) {
		t.Errorf("Expected ambient brightness in shadow, got %v", c)
	}

	unknown := raycast.RayHit{Value: 9}
	if c, _ := s.Sample(unknown, 0, false); c != PaletteColor(9) {
		t.Errorf("Expected the generated colour for an unknown value, got %v", c)
	}
	if got := s.TextureColumn(1, 0.4); got != 0.4 {
		t.Errorf("Expected frac passthrough, got %v", got)
	}
}
