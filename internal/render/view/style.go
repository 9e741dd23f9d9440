package view

import (
	"github.com/lucasb-eyer/go-colorful"

	"chosenoffset.com/raycaster/internal/core/grid"
	"chosenoffset.com/raycaster/internal/core/raycast"
	"chosenoffset.com/raycaster/internal/render"
	"chosenoffset.com/raycaster/internal/render/lighting"
	"chosenoffset.com/raycaster/internal/world/atlas"
)

// Missing is drawn for wall values a style has no look for.
var Missing = colorful.Color{R: 1, B: 1}

// WallStyle decides how a wall hit looks.
type WallStyle interface {
	raycast.HitResolver

	// Sample returns the colour and alpha at v in [0, 1) down the slice for
	// hit. shadowed selects the unlit look.
	Sample(hit raycast.RayHit, v float64, shadowed bool) (colorful.Color, float64)
}

// ColorStyle paints every wall value a flat colour.
type ColorStyle struct {
	Palette map[grid.CellValue]colorful.Color
	// Ambient is the brightness kept in shadow.
	Ambient float64
	// SideShade is the brightness kept by faces hit by the vertical sweep.
	SideShade float64
}

// NewColorStyle returns a style with generated colours for values.
func NewColorStyle(values ...grid.CellValue) *ColorStyle {
	s := &ColorStyle{
		Palette:   make(map[grid.CellValue]colorful.Color, len(values)),
		Ambient:   lighting.DefaultAmbientLight,
		SideShade: 0.8,
	}
	for _, v := range values {
		s.Palette[v] = PaletteColor(v)
	}
	return s
}

// PaletteColor derives a stable colour for a wall value.
func PaletteColor(v grid.CellValue) colorful.Color {
	return colorful.Hcl(float64(int(v)*67%360), 0.45, 0.6).Clamped()
}

// TextureColumn returns frac; flat colours ignore it.
func (s *ColorStyle) TextureColumn(_ grid.CellValue, frac float64) float64 {
	return frac
}

// Sample returns the value's colour, darkened in shadow.
func (s *ColorStyle) Sample(hit raycast.RayHit, _ float64, shadowed bool) (colorful.Color, float64) {
	c, ok := s.Palette[hit.Value]
	if !ok {
		c = PaletteColor(hit.Value)
	}
	if hit.Sweep == raycast.SweepVertical && s.SideShade > 0 {
		c = colorful.Color{}.BlendRgb(c, s.SideShade)
	}
	if shadowed {
		c = colorful.Color{}.BlendRgb(c, s.Ambient)
	}
	return c, 1
}

// TextureStyle maps each wall value to its own texture. A shadowed wall uses
// the texture of value-1 when one exists and a darkened lit texture
// otherwise.
type TextureStyle struct {
	Textures map[grid.CellValue]render.Texture
	Ambient  float64
}

// NewTextureStyle creates an empty texture style.
func NewTextureStyle() *TextureStyle {
	return &TextureStyle{
		Textures: make(map[grid.CellValue]render.Texture),
		Ambient:  lighting.DefaultAmbientLight,
	}
}

// TextureColumn scales frac to the texture width of value.
func (s *TextureStyle) TextureColumn(value grid.CellValue, frac float64) float64 {
	tex, ok := s.Textures[value]
	if !ok {
		return frac
	}
	w, _ := tex.Size()
	return frac * float64(w)
}

// Sample reads the wall texture at (hit.TexX, v).
func (s *TextureStyle) Sample(hit raycast.RayHit, v float64, shadowed bool) (colorful.Color, float64) {
	lit, ok := s.Textures[hit.Value]
	if !ok {
		return Missing, 1
	}
	tex, darken := lit, false
	if shadowed {
		if unlit, ok := s.Textures[hit.Value-1]; ok && hit.Value > 0 {
			tex = unlit
		} else {
			darken = true
		}
	}

	// TexX is measured in the lit texture; rescale when the unlit one differs
	u := hit.TexX
	w, h := tex.Size()
	if lw, _ := lit.Size(); lw != w && lw > 0 {
		u = u / float64(lw) * float64(w)
	}
	c, a := tex.Sample(u, v*float64(h))
	if darken {
		c = colorful.Color{}.BlendRgb(c, s.Ambient)
	}
	return c, a
}

// AtlasStyle samples walls from a texture atlas. Wall value n uses tile n
// and its shadowed look is tile n-1.
type AtlasStyle struct {
	Atlas *atlas.Atlas
}

// NewAtlasStyle wraps a.
func NewAtlasStyle(a *atlas.Atlas) *AtlasStyle {
	return &AtlasStyle{Atlas: a}
}

// TextureColumn returns the atlas x coordinate of the hit.
func (s *AtlasStyle) TextureColumn(value grid.CellValue, frac float64) float64 {
	return s.Atlas.TextureColumn(value, frac)
}

// Sample reads the lit or unlit tile for the hit.
func (s *AtlasStyle) Sample(hit raycast.RayHit, v float64, shadowed bool) (colorful.Color, float64) {
	n := int(hit.Value)
	if shadowed {
		n--
	}
	if !s.Atlas.Has(n) {
		return Missing, 1
	}
	// TexX carries the lit tile's offset; strip it to get the column inside a tile
	x0, _ := s.Atlas.Offset(int(hit.Value))
	u := hit.TexX - x0
	return s.Atlas.Sample(n, u, v*float64(s.Atlas.Config.TileHeight))
}
