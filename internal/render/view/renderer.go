// Package view projects ray hits into vertical wall slices, one screen
// column per ray.
package view

import (
	"math"

	"github.com/lucasb-eyer/go-colorful"

	"chosenoffset.com/raycaster/internal/core/raycast"
	"chosenoffset.com/raycaster/internal/render"
	"chosenoffset.com/raycaster/internal/render/lighting"
	"chosenoffset.com/raycaster/internal/simulation"
)

// DefaultDistanceFactor scales 1/distance into a slice height in pixels.
const DefaultDistanceFactor = 25 * 512

// minDistance keeps slice heights finite for a viewer standing on a face.
const minDistance = 1e-6

// Options controls projection and debug drawing.
type Options struct {
	FOV            float64 // radians
	DistanceFactor float64
	CorrectFisheye bool
	Shadows        bool

	// Background fills the upper half with Ceiling and the lower half with
	// Floor before walls are drawn.
	Background bool
	Ceiling    colorful.Color
	Floor      colorful.Color

	Crosshair      bool
	CrosshairColor colorful.Color
	CrosshairAlpha float64

	// TraceColumn selects the column whose primary ray reports to Trace.
	// Negative disables tracing.
	TraceColumn int
	Trace       raycast.TraceFunc
}

// DefaultOptions returns a 90 degree view with fish-eye correction and
// shadows on.
func DefaultOptions() Options {
	return Options{
		FOV:            math.Pi / 2,
		DistanceFactor: DefaultDistanceFactor,
		CorrectFisheye: true,
		Shadows:        true,
		CrosshairColor: colorful.Color{R: 1, G: 1, B: 1},
		CrosshairAlpha: 0.5,
		TraceColumn:    -1,
	}
}

// OptionsFromConfig maps the render and debug sections of a config.
func OptionsFromConfig(cfg *simulation.Config) (Options, error) {
	opts := DefaultOptions()
	opts.FOV = cfg.FOV()
	opts.DistanceFactor = cfg.Render.DistanceFactor
	opts.CorrectFisheye = cfg.Render.CorrectFisheye
	opts.Shadows = cfg.Render.Shadows
	opts.Crosshair = cfg.Debug.Crosshair

	ceiling, floor, err := cfg.Colors()
	if err != nil {
		return opts, err
	}
	opts.Background = true
	opts.Ceiling = ceiling
	opts.Floor = floor
	return opts, nil
}

// Stats summarises one rendered frame.
type Stats struct {
	Columns  int
	Hits     int
	Shadowed int
}

// Renderer draws the first-person view.
type Renderer struct {
	caster *raycast.Caster
	style  WallStyle
	opts   Options
}

// New creates a renderer. The style becomes the caster's hit resolver so
// texture columns match what the style samples.
func New(c *raycast.Caster, style WallStyle, opts Options) *Renderer {
	c.SetResolver(style)
	return &Renderer{caster: c, style: style, opts: opts}
}

// Caster returns the caster used for primary and shadow rays.
func (r *Renderer) Caster() *raycast.Caster { return r.caster }

// Style returns the wall style.
func (r *Renderer) Style() WallStyle { return r.style }

// SetStyle swaps the wall style and the caster's resolver with it.
func (r *Renderer) SetStyle(style WallStyle) {
	r.style = style
	r.caster.SetResolver(style)
}

// Options returns the active options.
func (r *Renderer) Options() Options { return r.opts }

// SetOptions replaces the options.
func (r *Renderer) SetOptions(opts Options) { r.opts = opts }

// ColumnAngle returns the ray angle for screen column i of width columns.
// Column 0 looks FOV/2 to the left of the view direction.
func (r *Renderer) ColumnAngle(viewAngle float64, i, width int) float64 {
	return viewAngle + r.opts.FOV/2 - float64(i)*r.opts.FOV/float64(width)
}

// SliceHeight converts a hit distance into a wall slice height in pixels.
func (r *Renderer) SliceHeight(distance float64) float64 {
	return r.opts.DistanceFactor / math.Max(distance, minDistance)
}

// Render casts one ray per framebuffer column from the player and draws the
// resulting wall slices. lights may be nil.
func (r *Renderer) Render(fb render.Framebuffer, p simulation.PlayerState, lights *lighting.Manager) Stats {
	w, h := fb.Size()
	var stats Stats
	if w <= 0 || h <= 0 {
		return stats
	}

	if r.opts.Background {
		r.drawBackground(fb, w, h)
	}

	light, lightOn := lights.Light()
	shadows := r.opts.Shadows && lightOn

	for i := 0; i < w; i++ {
		angle := r.ColumnAngle(p.Angle, i, w)

		hit := r.castColumn(p, angle, i)
		stats.Columns++
		if !hit.Solid {
			continue
		}
		stats.Hits++

		shadowed := shadows && r.caster.InShadow(hit, light.Position)
		if shadowed {
			stats.Shadowed++
		}

		d := hit.Distance
		if r.opts.CorrectFisheye {
			d = hit.Perpendicular(p.Angle)
		}
		r.drawSlice(fb, i, h, r.SliceHeight(d), hit, shadowed, lights)
	}

	if r.opts.Crosshair {
		cx := w / 2
		for y := 0; y < h; y++ {
			fb.SetPixel(cx, y, r.opts.CrosshairColor, r.opts.CrosshairAlpha)
		}
	}
	return stats
}

func (r *Renderer) castColumn(p simulation.PlayerState, angle float64, column int) raycast.RayHit {
	if r.opts.Trace == nil || column != r.opts.TraceColumn {
		return r.caster.Cast(p.Position, angle)
	}
	r.caster.SetTrace(r.opts.Trace)
	defer r.caster.SetTrace(nil)
	return r.caster.Cast(p.Position, angle)
}

// drawSlice draws a vertically centred slice of the given height, mapping
// screen rows linearly onto the texture's [0, 1) range. Lit slices take the
// colour of an active light.
func (r *Renderer) drawSlice(fb render.Framebuffer, x, h int, slice float64, hit raycast.RayHit, shadowed bool, lights *lighting.Manager) {
	_, tint := lights.Light()
	tint = tint && !shadowed

	top := float64(h)/2 - slice/2
	y0 := max(0, int(math.Floor(top)))
	y1 := min(h, int(math.Ceil(top+slice)))

	for y := y0; y < y1; y++ {
		v := (float64(y) + 0.5 - top) / slice
		if v < 0 || v >= 1 {
			continue
		}
		c, a := r.style.Sample(hit, v, shadowed)
		if tint {
			c = lights.Shade(c, false)
		}
		fb.SetPixel(x, y, c, a)
	}
}

func (r *Renderer) drawBackground(fb render.Framebuffer, w, h int) {
	mid := h / 2
	for y := 0; y < h; y++ {
		c := r.opts.Floor
		if y < mid {
			c = r.opts.Ceiling
		}
		for x := 0; x < w; x++ {
			fb.SetPixel(x, y, c, 1)
		}
	}
}
