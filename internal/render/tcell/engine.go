// Package tcell presents raycaster frames in a terminal using half-block
// characters, two pixels per cell.
package tcell

import (
	"errors"
	"fmt"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/lucasb-eyer/go-colorful"

	"chosenoffset.com/raycaster/internal/render"
)

// DefaultTick is the frame interval, about 30 frames per second.
const DefaultTick = 33 * time.Millisecond

// halfBlock paints the top half of a cell in the foreground colour and the
// bottom half in the background colour.
const halfBlock = '▀'

var textStyle = tcell.StyleDefault.Foreground(tcell.ColorWhite).Background(tcell.ColorBlack)

// cellSetter is the part of tcell.Screen the blit writes to.
type cellSetter interface {
	SetContent(x, y int, primary rune, combining []rune, style tcell.Style)
}

var _ render.Engine = (*Engine)(nil)

// Engine runs a game in the terminal.
type Engine struct {
	screen tcell.Screen
	input  *InputManager
	loader render.ResourceLoader
	tick   time.Duration
	title  string

	frame *render.PixelBuffer // game resolution
	term  *render.PixelBuffer // one pixel per half cell
	texts []overlayText
}

type overlayText struct {
	text string
	x, y int
}

// NewEngine creates a terminal engine. The screen is opened by RunGame.
func NewEngine() *Engine {
	return &Engine{
		input:  NewInputManager(),
		loader: render.DecodeLoader{},
		tick:   DefaultTick,
		frame:  render.NewPixelBuffer(1, 1),
		term:   render.NewPixelBuffer(1, 1),
	}
}

// NewEngineWithScreen creates an engine on an existing screen, such as a
// tcell simulation screen. The screen must not be initialised yet.
func NewEngineWithScreen(s tcell.Screen) *Engine {
	e := NewEngine()
	e.screen = s
	return e
}

// SetWindowSize is ignored; the terminal decides the size.
func (e *Engine) SetWindowSize(width, height int) {}

// SetWindowTitle sets the terminal title where supported.
func (e *Engine) SetWindowTitle(title string) { e.title = title }

// SetWindowResizable is ignored; terminals always resize.
func (e *Engine) SetWindowResizable(resizable bool) {}

// SetTick sets the frame interval.
func (e *Engine) SetTick(d time.Duration) {
	if d > 0 {
		e.tick = d
	}
}

// Input returns the engine's input manager.
func (e *Engine) Input() render.InputManager { return e.input }

// Loader returns a decoder-backed texture loader.
func (e *Engine) Loader() render.ResourceLoader { return e.loader }

// RunGame runs the game until it returns an error or render.ErrQuit.
func (e *Engine) RunGame(game render.Game) error {
	if e.screen == nil {
		s, err := tcell.NewScreen()
		if err != nil {
			return fmt.Errorf("failed to create terminal screen: %w", err)
		}
		e.screen = s
	}
	if err := e.screen.Init(); err != nil {
		return fmt.Errorf("failed to init terminal screen: %w", err)
	}
	defer e.screen.Fini()
	if e.title != "" {
		e.screen.SetTitle(e.title)
	}
	e.screen.HideCursor()

	events := make(chan tcell.Event, 100)
	quit := make(chan struct{})
	defer close(quit)
	go func() {
		for {
			ev := e.screen.PollEvent()
			if ev == nil {
				return
			}
			select {
			case events <- ev:
			case <-quit:
				return
			}
		}
	}()

	ticker := time.NewTicker(e.tick)
	defer ticker.Stop()

	for {
		select {
		case ev := <-events:
			e.handleEvent(ev)

		case <-ticker.C:
			err := game.Update()
			e.input.EndFrame()
			if errors.Is(err, render.ErrQuit) {
				return nil
			}
			if err != nil {
				return err
			}
			e.draw(game)
		}
	}
}

func (e *Engine) handleEvent(ev tcell.Event) {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		if k, ok := translateKey(ev.Key(), ev.Rune()); ok {
			e.input.Press(k)
		}
	case *tcell.EventResize:
		e.screen.Sync()
	}
}

func (e *Engine) draw(game render.Game) {
	cols, rows := e.screen.Size()
	if cols <= 0 || rows <= 0 {
		return
	}

	w, h := game.Layout(cols, rows*2)
	e.frame.Resize(w, h)
	game.Draw(e.frame)

	e.term.Resize(cols, rows*2)
	e.term.DrawScaled(e.frame)

	e.texts = e.texts[:0]
	if d, ok := game.(render.OverlayDrawer); ok {
		o := &render.PixelOverlay{
			Buffer: e.term,
			ScaleX: float32(cols) / float32(w),
			ScaleY: float32(rows*2) / float32(h),
			Text: func(text string, x, y int) {
				e.texts = append(e.texts, overlayText{text: text, x: x, y: y / 2})
			},
		}
		d.DrawOverlay(o)
	}

	present(e.screen, e.term)
	for _, t := range e.texts {
		drawText(e.screen, t.text, t.x, t.y)
	}
	e.screen.Show()
}

// present writes b to the screen, pixel rows 2y and 2y+1 into cell row y.
func present(s cellSetter, b *render.PixelBuffer) {
	w, h := b.Size()
	for y := 0; y*2 < h; y++ {
		for x := 0; x < w; x++ {
			top := b.At(x, y*2)
			bottom := b.At(x, y*2+1)
			s.SetContent(x, y, halfBlock, nil, halfBlockStyle(top, bottom))
		}
	}
}

func halfBlockStyle(top, bottom colorful.Color) tcell.Style {
	return tcell.StyleDefault.Foreground(toColor(top)).Background(toColor(bottom))
}

func toColor(c colorful.Color) tcell.Color {
	r, g, b := c.Clamped().RGB255()
	return tcell.NewRGBColor(int32(r), int32(g), int32(b))
}

func drawText(s cellSetter, text string, x, y int) {
	for _, r := range text {
		s.SetContent(x, y, r, nil, textStyle)
		x++
	}
}
