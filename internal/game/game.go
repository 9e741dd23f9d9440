package game

import (
	"errors"
	"fmt"
	"log"
	"time"

	"chosenoffset.com/raycaster/internal/core/raycast"
	"chosenoffset.com/raycaster/internal/render"
	"chosenoffset.com/raycaster/internal/render/lighting"
	"chosenoffset.com/raycaster/internal/render/view"
	"chosenoffset.com/raycaster/internal/simulation"
	"chosenoffset.com/raycaster/internal/world/atlas"
	"chosenoffset.com/raycaster/internal/world/maploader"
)

// messageDuration is how long a message stays on screen, in seconds.
const messageDuration = 3.0

// Game drives one level from input to the per-frame view.
type Game struct {
	ScreenWidth  int
	ScreenHeight int

	Level           *maploader.Level
	Sim             *simulation.Simulation
	View            *view.Renderer
	LightingManager *lighting.Manager
	Atlas           *atlas.Atlas // optional, colours the minimap
	InputMgr        render.InputManager
	Config          *simulation.Config

	// Clock returns the current time. Defaults to time.Now.
	Clock func() time.Time

	// UI state
	Messages    []Message
	ShowMinimap bool
	LastStats   view.Stats

	// Debug
	FrameCount int
	traceNext  bool
	lastUpdate time.Time
	fps        fpsCounter
}

// New wires a game for level. style decides how walls look; input is the
// engine's input manager.
func New(level *maploader.Level, cfg *simulation.Config, style view.WallStyle, input render.InputManager) (*Game, error) {
	if level == nil {
		return nil, errors.New("game needs a level")
	}
	if cfg == nil {
		cfg = simulation.DefaultConfig()
	}

	sim, err := simulation.New(level.Grid, level.Spawn, cfg)
	if err != nil {
		return nil, fmt.Errorf("level %s: %w", level.Name, err)
	}

	caster := raycast.New(level.Grid,
		raycast.WithEpsilon(cfg.Caster.Epsilon),
		raycast.WithMissPadding(cfg.Caster.MissPadding),
	)
	opts, err := view.OptionsFromConfig(cfg)
	if err != nil {
		return nil, err
	}

	switch st := style.(type) {
	case *view.ColorStyle:
		st.Ambient = cfg.Render.AmbientLight
	case *view.TextureStyle:
		st.Ambient = cfg.Render.AmbientLight
	}

	lights := lighting.NewManager()
	lights.SetAmbientLight(cfg.Render.AmbientLight)
	if level.Light != nil {
		lights.SetLight(level.Light.Position, level.Light.Intensity, level.Light.Color)
	}

	g := &Game{
		ScreenWidth:     cfg.Screen.Width,
		ScreenHeight:    cfg.Screen.Height,
		Level:           level,
		Sim:             sim,
		View:            view.New(caster, style, opts),
		LightingManager: lights,
		InputMgr:        input,
		Config:          cfg,
		Clock:           time.Now,
		ShowMinimap:     cfg.Debug.Minimap,
	}
	if cfg.Debug.TraceRays {
		g.setTrace(true)
	}
	return g, nil
}

// Update handles input and advances the simulation by the time since the
// previous call.
func (g *Game) Update() error {
	now := g.Clock()
	dt := 0.0
	if !g.lastUpdate.IsZero() {
		dt = now.Sub(g.lastUpdate).Seconds()
	}
	g.lastUpdate = now

	g.updateMessages(dt)

	if g.InputMgr.IsKeyJustPressed(render.KeyEscape) {
		return render.ErrQuit
	}

	// Toggle the level light with L key
	if g.InputMgr.IsKeyJustPressed(render.KeyL) {
		if g.LightingManager.HasLight() {
			if g.LightingManager.ToggleLight() {
				g.ShowMessage("Light on")
			} else {
				g.ShowMessage("Light off")
			}
		} else {
			g.ShowMessage("This level has no light")
		}
	}

	if g.InputMgr.IsKeyJustPressed(render.KeyM) {
		g.ShowMinimap = !g.ShowMinimap
	}

	// Space dumps the centre ray of the next frame to the log
	if g.InputMgr.IsKeyJustPressed(render.KeySpace) {
		g.traceNext = true
		g.setTrace(true)
	}

	g.Sim.Input = ReadInput(g.InputMgr)
	if err := g.Sim.Update(dt); err != nil {
		p := g.Sim.Player
		return fmt.Errorf("frame %d at (%.2f, %.2f): %w", g.FrameCount, p.Position.X, p.Position.Y, err)
	}

	if g.fps.tick(now) && g.Config.Debug.ShowFPS {
		log.Printf("DEBUG Frame %d: %.1f fps, %d/%d columns hit, %d shadowed",
			g.FrameCount, g.fps.fps, g.LastStats.Hits, g.LastStats.Columns, g.LastStats.Shadowed)
	}
	return nil
}

// Layout reports the configured view size regardless of the window.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return g.ScreenWidth, g.ScreenHeight
}

// FPS returns the frame rate over the last full second.
func (g *Game) FPS() float64 {
	return g.fps.fps
}

func (g *Game) setTrace(on bool) {
	opts := g.View.Options()
	if on {
		opts.TraceColumn = g.ScreenWidth / 2
		opts.Trace = logTraceStep
	} else {
		opts.TraceColumn = -1
		opts.Trace = nil
	}
	g.View.SetOptions(opts)
}

func logTraceStep(s raycast.TraceStep) {
	log.Printf("TRACE %s step %d cell (%d, %d) at (%.2f, %.2f) in_bounds=%v solid=%v",
		s.Sweep, s.Step, s.Cell.X, s.Cell.Y, s.Point.X, s.Point.Y, s.InBounds, s.Solid)
}

func (g *Game) updateMessages(dt float64) {
	var active []Message
	for _, msg := range g.Messages {
		msg.TimeLeft -= dt
		if msg.TimeLeft > 0 {
			active = append(active, msg)
		}
	}
	g.Messages = active
}

// ShowMessage adds a new message to be displayed on screen.
func (g *Game) ShowMessage(text string) {
	g.Messages = append(g.Messages, Message{
		Text:     text,
		TimeLeft: messageDuration,
		MaxTime:  messageDuration,
	})
	log.Printf("Message: %s", text)
}
