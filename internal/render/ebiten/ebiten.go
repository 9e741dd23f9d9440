// Package ebiten presents raycaster frames in a desktop window.
package ebiten

import (
	"errors"
	"fmt"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/lucasb-eyer/go-colorful"

	"chosenoffset.com/raycaster/internal/render"
)

// EbitenOverlay draws debug primitives onto an ebiten.Image.
type EbitenOverlay struct {
	img *ebiten.Image
}

// FillRect draws a filled rectangle.
func (o *EbitenOverlay) FillRect(x, y, width, height float32, c colorful.Color) {
	vector.DrawFilledRect(o.img, x, y, width, height, c.Clamped(), false)
}

// FillCircle draws a filled circle.
func (o *EbitenOverlay) FillCircle(x, y, radius float32, c colorful.Color) {
	vector.DrawFilledCircle(o.img, x, y, radius, c.Clamped(), true)
}

// StrokeLine draws a line segment.
func (o *EbitenOverlay) StrokeLine(x0, y0, x1, y1, width float32, c colorful.Color) {
	vector.StrokeLine(o.img, x0, y0, x1, y1, width, c.Clamped(), true)
}

// DebugText draws text using the built-in debug font.
func (o *EbitenOverlay) DebugText(text string, x, y int) {
	ebitenutil.DebugPrintAt(o.img, text, x, y)
}

// EbitenInputManager implements the InputManager interface using Ebiten.
type EbitenInputManager struct{}

// NewInputManager creates a new Ebiten-based input manager.
func NewInputManager() render.InputManager {
	return &EbitenInputManager{}
}

// IsKeyPressed returns whether the specified key is currently pressed.
func (m *EbitenInputManager) IsKeyPressed(key render.Key) bool {
	k, ok := keyToEbitenKey(key)
	return ok && ebiten.IsKeyPressed(k)
}

// IsKeyJustPressed returns whether the specified key was just pressed this frame.
func (m *EbitenInputManager) IsKeyJustPressed(key render.Key) bool {
	k, ok := keyToEbitenKey(key)
	return ok && inpututil.IsKeyJustPressed(k)
}

// keyToEbitenKey converts a render.Key to an ebiten.Key.
func keyToEbitenKey(key render.Key) (ebiten.Key, bool) {
	switch key {
	case render.KeyW:
		return ebiten.KeyW, true
	case render.KeyA:
		return ebiten.KeyA, true
	case render.KeyS:
		return ebiten.KeyS, true
	case render.KeyD:
		return ebiten.KeyD, true
	case render.KeyL:
		return ebiten.KeyL, true
	case render.KeyM:
		return ebiten.KeyM, true
	case render.KeyUp:
		return ebiten.KeyArrowUp, true
	case render.KeyDown:
		return ebiten.KeyArrowDown, true
	case render.KeyLeft:
		return ebiten.KeyArrowLeft, true
	case render.KeyRight:
		return ebiten.KeyArrowRight, true
	case render.KeySpace:
		return ebiten.KeySpace, true
	case render.KeyEscape:
		return ebiten.KeyEscape, true
	default:
		return 0, false
	}
}

// EbitenResourceLoader implements the ResourceLoader interface using Ebiten.
type EbitenResourceLoader struct{}

// NewResourceLoader creates a new Ebiten-based resource loader.
func NewResourceLoader() render.ResourceLoader {
	return &EbitenResourceLoader{}
}

// LoadTexture loads an image file into a CPU-side texture. Wall sampling
// reads texels per pixel, so only the decoded image is kept.
func (l *EbitenResourceLoader) LoadTexture(path string) (render.Texture, error) {
	img, src, err := ebitenutil.NewImageFromFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to load texture %s: %w", path, err)
	}
	img.Deallocate()
	return render.NewImageTexture(src), nil
}

// EbitenEngine implements the Engine interface using Ebiten.
type EbitenEngine struct {
	input  render.InputManager
	loader render.ResourceLoader
}

// NewEngine creates a new Ebiten-based game engine.
func NewEngine() render.Engine {
	return &EbitenEngine{
		input:  NewInputManager(),
		loader: NewResourceLoader(),
	}
}

// SetWindowSize sets the window size in pixels.
func (e *EbitenEngine) SetWindowSize(width, height int) {
	ebiten.SetWindowSize(width, height)
}

// SetWindowTitle sets the window title.
func (e *EbitenEngine) SetWindowTitle(title string) {
	ebiten.SetWindowTitle(title)
}

// SetWindowResizable enables or disables window resizing.
func (e *EbitenEngine) SetWindowResizable(resizable bool) {
	if resizable {
		ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	} else {
		ebiten.SetWindowResizingMode(ebiten.WindowResizingModeDisabled)
	}
}

// Input returns the engine's input manager.
func (e *EbitenEngine) Input() render.InputManager { return e.input }

// Loader returns the engine's texture loader.
func (e *EbitenEngine) Loader() render.ResourceLoader { return e.loader }

// RunGame runs the game loop with the provided game. A game returning
// render.ErrQuit ends the loop with a nil error.
func (e *EbitenEngine) RunGame(game render.Game) error {
	err := ebiten.RunGame(&gameAdapter{game: game, fb: render.NewPixelBuffer(1, 1)})
	if errors.Is(err, ebiten.Termination) {
		return nil
	}
	return err
}

// gameAdapter adapts a render.Game to ebiten.Game interface.
type gameAdapter struct {
	game render.Game
	fb   *render.PixelBuffer
}

// Update implements ebiten.Game.
func (a *gameAdapter) Update() error {
	if err := a.game.Update(); err != nil {
		if errors.Is(err, render.ErrQuit) {
			return ebiten.Termination
		}
		return err
	}
	return nil
}

// Draw implements ebiten.Game. The game draws into a CPU framebuffer that is
// uploaded to the screen in one call, then the overlay goes on top.
func (a *gameAdapter) Draw(screen *ebiten.Image) {
	b := screen.Bounds()
	a.fb.Resize(b.Dx(), b.Dy())
	a.game.Draw(a.fb)
	screen.WritePixels(a.fb.Pix())

	if d, ok := a.game.(render.OverlayDrawer); ok {
		d.DrawOverlay(&EbitenOverlay{img: screen})
	}
}

// Layout implements ebiten.Game.
func (a *gameAdapter) Layout(outsideWidth, outsideHeight int) (int, int) {
	return a.game.Layout(outsideWidth, outsideHeight)
}
