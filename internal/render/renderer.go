package render

import (
	"errors"

	"github.com/lucasb-eyer/go-colorful"
)

// ErrQuit is returned from Game.Update to end the run loop cleanly.
var ErrQuit = errors.New("quit requested")

// Framebuffer is a pixel surface the view renderer draws into. The backend
// owns presenting it.
type Framebuffer interface {
	// Size returns the width and height in pixels.
	Size() (width, height int)

	// SetPixel blends c over the existing pixel: alpha*c + (1-alpha)*old.
	// Coordinates outside the surface are ignored.
	SetPixel(x, y int, c colorful.Color, alpha float64)

	// Clear fills the whole surface with c.
	Clear(c colorful.Color)

	// BeginFrame prepares the surface for a new frame.
	BeginFrame()

	// EndFrame marks the frame as complete and ready to present.
	EndFrame()
}

// Texture is a sampled image with colour channels in [0, 1].
type Texture interface {
	// Size returns the width and height in texels.
	Size() (width, height int)

	// Sample returns the texel at (x, y) and its alpha. Coordinates wrap.
	Sample(x, y float64) (colorful.Color, float64)
}

// Overlay draws debug primitives on top of a presented frame. Coordinates
// are framebuffer pixels.
type Overlay interface {
	FillRect(x, y, width, height float32, c colorful.Color)
	FillCircle(x, y, radius float32, c colorful.Color)
	StrokeLine(x0, y0, x1, y1, width float32, c colorful.Color)
	DebugText(text string, x, y int)
}

// OverlayDrawer is implemented by games that draw an overlay after the
// framebuffer has been presented.
type OverlayDrawer interface {
	DrawOverlay(o Overlay)
}

// InputManager handles input from the user.
type InputManager interface {
	IsKeyPressed(key Key) bool
	IsKeyJustPressed(key Key) bool
}

// Key represents a keyboard key.
type Key int

// Key constants for common keys
const (
	KeyW Key = iota
	KeyA
	KeyS
	KeyD
	KeyL // Light toggle key
	KeyM // Minimap toggle key
	KeyUp
	KeyDown
	KeyLeft
	KeyRight
	KeySpace
	KeyEscape
)

// Keys lists every key the input managers track.
var Keys = []Key{
	KeyW, KeyA, KeyS, KeyD, KeyL, KeyM,
	KeyUp, KeyDown, KeyLeft, KeyRight, KeySpace, KeyEscape,
}

func (k Key) String() string {
	switch k {
	case KeyW:
		return "W"
	case KeyA:
		return "A"
	case KeyS:
		return "S"
	case KeyD:
		return "D"
	case KeyL:
		return "L"
	case KeyM:
		return "M"
	case KeyUp:
		return "Up"
	case KeyDown:
		return "Down"
	case KeyLeft:
		return "Left"
	case KeyRight:
		return "Right"
	case KeySpace:
		return "Space"
	case KeyEscape:
		return "Escape"
	default:
		return "Unknown"
	}
}

// ResourceLoader handles loading resources like textures from disk.
type ResourceLoader interface {
	LoadTexture(path string) (Texture, error)
}

// Game represents the game interface that the engine will call.
type Game interface {
	// Update advances the game logic. It is called every tick. Returning
	// ErrQuit stops the engine without an error.
	Update() error

	// Draw renders the frame into fb.
	Draw(fb Framebuffer)

	// Layout accepts the outside size (e.g., window size) and returns the logical screen size.
	Layout(outsideWidth, outsideHeight int) (screenWidth, screenHeight int)
}

// Engine represents the game engine that manages the game loop and window.
type Engine interface {
	// SetWindowSize sets the window size in pixels.
	SetWindowSize(width, height int)

	// SetWindowTitle sets the window title.
	SetWindowTitle(title string)

	// SetWindowResizable enables or disables window resizing.
	SetWindowResizable(resizable bool)

	// Input returns the engine's input manager.
	Input() InputManager

	// Loader returns the engine's texture loader.
	Loader() ResourceLoader

	// RunGame runs the game loop with the provided game.
	// This is a blocking call that runs until the game ends.
	RunGame(game Game) error
}
