package raycast

import "chosenoffset.com/raycaster/internal/core/grid"

// HitResolver turns the position along a struck face into a texture column.
// Colour-indexed walls, one-texture-per-value walls and atlas walls differ
// only here.
type HitResolver interface {
	TextureColumn(value grid.CellValue, frac float64) float64
}

// UnitResolver reports the face fraction itself, in [0, 1).
type UnitResolver struct{}

// TextureColumn implements HitResolver.
func (UnitResolver) TextureColumn(_ grid.CellValue, frac float64) float64 {
	return frac
}

// TextureResolver scales the face fraction to a texture of the given width,
// used when every wall value owns a separate texture.
type TextureResolver struct {
	Width float64
}

// TextureColumn implements HitResolver.
func (r TextureResolver) TextureColumn(_ grid.CellValue, frac float64) float64 {
	return frac * r.Width
}
