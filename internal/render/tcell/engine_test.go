package tcell

import (
	"errors"
	"testing"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/lucasb-eyer/go-colorful"

	"chosenoffset.com/raycaster/internal/render"
)

type cellWrite struct {
	r     rune
	style tcell.Style
}

type fakeCells map[[2]int]cellWrite

func (f fakeCells) SetContent(x, y int, primary rune, _ []rune, style tcell.Style) {
	f[[2]int{x, y}] = cellWrite{r: primary, style: style}
}

var (
	red  = colorful.Color{R: 1}
	blue = colorful.Color{B: 1}
)

func TestPresentPairsRowsIntoHalfBlocks(t *testing.T) {
	b := render.NewPixelBuffer(2, 4)
	b.Clear(blue)
	b.SetPixel(0, 0, red, 1)
	b.SetPixel(1, 3, red, 1)

	cells := fakeCells{}
	present(cells, b)

	if len(cells) != 4 {
		t.Fatalf("Expected 2x2 cells, got %d", len(cells))
	}
	tests := []struct {
		x, y        int
		top, bottom colorful.Color
	}{
		{0, 0, red, blue},
		{1, 0, blue, blue},
		{0, 1, blue, blue},
		{1, 1, blue, red},
	}
	for _, tt := range tests {
		got := cells[[2]int{tt.x, tt.y}]
		if got.r != halfBlock {
			t.Errorf("Cell (%d, %d): expected half block, got %q", tt.x, tt.y, got.r)
		}
		if want := halfBlockStyle(tt.top, tt.bottom); got.style != want {
			t.Errorf("Cell (%d, %d): unexpected style", tt.x, tt.y)
		}
	}
}

func TestDrawText(t *testing.T) {
	cells := fakeCells{}
	drawText(cells, "FPS", 2, 1)
	for i, r := range "FPS" {
		if got := cells[[2]int{2 + i, 1}]; got.r != r || got.style != textStyle {
			t.Errorf("Expected %q at column %d, got %q", r, 2+i, got.r)
		}
	}
}

func TestToColor(t *testing.T) {
	if got, want := toColor(colorful.Color{R: 1, G: 0.5, B: 2}), tcell.NewRGBColor(255, 128, 255); got != want {
		t.Errorf("toColor() = %v, want %v", got, want)
	}
}

// stubGame fills the frame with one colour and quits after a few updates.
type stubGame struct {
	updates int
	draws   int
	quitAt  int
	err     error
	overlay int
}

func (g *stubGame) Update() error {
	g.updates++
	if g.updates >= g.quitAt {
		return g.err
	}
	return nil
}

func (g *stubGame) Draw(fb render.Framebuffer) {
	g.draws++
	fb.BeginFrame()
	fb.Clear(red)
	fb.EndFrame()
}

func (g *stubGame) Layout(w, h int) (int, int) { return 64, 48 }

func (g *stubGame) DrawOverlay(o render.Overlay) {
	g.overlay++
	o.FillRect(0, 0, 8, 8, blue)
	o.DebugText("hi", 0, 0)
}

func newSimEngine(t *testing.T) *Engine {
	t.Helper()
	screen := tcell.NewSimulationScreen("UTF-8")
	screen.SetSize(40, 12)
	e := NewEngineWithScreen(screen)
	e.SetTick(time.Millisecond)
	return e
}

func TestRunGameQuits(t *testing.T) {
	e := newSimEngine(t)
	g := &stubGame{quitAt: 4, err: render.ErrQuit}

	if err := e.RunGame(g); err != nil {
		t.Fatalf("Expected ErrQuit to end the run cleanly, got %v", err)
	}
	if g.updates != 4 || g.draws != 3 {
		t.Errorf("Expected 4 updates and 3 draws, got %d and %d", g.updates, g.draws)
	}
	if g.overlay != g.draws {
		t.Errorf("Expected an overlay per frame, got %d", g.overlay)
	}
	if w, h := e.frame.Size(); w != 64 || h != 48 {
		t.Errorf("Expected the frame at game resolution, got %dx%d", w, h)
	}
}

func TestRunGameReturnsErrors(t *testing.T) {
	e := newSimEngine(t)
	boom := errors.New("boom")
	g := &stubGame{quitAt: 2, err: boom}

	if err := e.RunGame(g); !errors.Is(err, boom) {
		t.Fatalf("Expected the update error, got %v", err)
	}
}
