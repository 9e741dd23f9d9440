package game

import (
	"fmt"
	"log"

	"github.com/lucasb-eyer/go-colorful"

	"chosenoffset.com/raycaster/internal/core/geom"
	"chosenoffset.com/raycaster/internal/core/grid"
	"chosenoffset.com/raycaster/internal/render"
	"chosenoffset.com/raycaster/internal/render/view"
)

// minimapFraction is the share of the shorter screen edge the minimap spans.
const minimapFraction = 0.3

var (
	minimapFloor  = colorful.Color{R: 0.1, G: 0.1, B: 0.1}
	minimapPlayer = colorful.Color{R: 1, G: 0.85, B: 0.2}
	minimapLight  = colorful.Color{R: 1, G: 1, B: 0.6}
)

// Draw renders the first-person view into fb.
func (g *Game) Draw(fb render.Framebuffer) {
	fb.BeginFrame()
	g.LastStats = g.View.Render(fb, g.Sim.Player, g.LightingManager)
	fb.EndFrame()

	if g.traceNext {
		g.traceNext = false
		if !g.Config.Debug.TraceRays {
			g.setTrace(false)
		}
		log.Printf("TRACE frame %d: %d/%d columns hit", g.FrameCount, g.LastStats.Hits, g.LastStats.Columns)
	}
	g.FrameCount++
}

// DrawOverlay draws the minimap and text on top of the presented frame.
func (g *Game) DrawOverlay(o render.Overlay) {
	if g.ShowMinimap {
		g.drawMinimap(o)
	}
	g.drawUI(o)
}

func (g *Game) drawUI(o render.Overlay) {
	y := 4
	if g.Config.Debug.ShowFPS {
		o.DebugText(fmt.Sprintf("FPS: %.1f", g.fps.fps), 4, y)
		y += 16
	}
	if g.ShowMinimap {
		y += g.minimapCellSize() * g.Level.Grid.Height()
		y += 4
	}
	for _, msg := range g.Messages {
		o.DebugText(msg.Text, 4, y)
		y += 16
	}
}

// minimapCellSize is the pixel edge of one cell, at least 1.
func (g *Game) minimapCellSize() int {
	gr := g.Level.Grid
	span := float64(min(g.ScreenWidth, g.ScreenHeight)) * minimapFraction
	return max(int(span)/max(gr.Width(), gr.Height()), 1)
}

func (g *Game) drawMinimap(o render.Overlay) {
	gr := g.Level.Grid
	cs := g.minimapCellSize()
	size := float32(cs)
	originY := 0
	if g.Config.Debug.ShowFPS {
		originY = 20
	}

	o.FillRect(0, float32(originY), size*float32(gr.Width()), size*float32(gr.Height()), minimapFloor)
	for y := 0; y < gr.Height(); y++ {
		for x := 0; x < gr.Width(); x++ {
			v := gr.At(x, y)
			if !grid.IsSolid(v) {
				continue
			}
			o.FillRect(float32(x*cs), float32(originY+y*cs), size, size, g.minimapColor(v))
		}
	}

	toMap := func(p geom.Vector2) (float32, float32) {
		scale := float64(cs) / gr.CellSize()
		return float32(p.X * scale), float32(float64(originY) + p.Y*scale)
	}

	if light, ok := g.LightingManager.Light(); ok {
		lx, ly := toMap(light.Position)
		o.FillCircle(lx, ly, max(size/4, 1), minimapLight)
	}

	p := g.Sim.Player
	px, py := toMap(p.Position)
	hx, hy := toMap(p.Position.Add(geom.Forward(p.Angle).Scale(gr.CellSize())))
	o.StrokeLine(px, py, hx, hy, 1, minimapPlayer)
	o.FillCircle(px, py, max(size/3, 1), minimapPlayer)
}

func (g *Game) minimapColor(v grid.CellValue) colorful.Color {
	if g.Atlas != nil {
		if c, ok := g.Atlas.MinimapColor(v); ok {
			return c
		}
	}
	return view.PaletteColor(v)
}
