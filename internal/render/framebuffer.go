package render

import (
	"image"

	"github.com/lucasb-eyer/go-colorful"
)

// PixelBuffer is an in-memory RGBA framebuffer. Backends present its bytes
// once per frame.
type PixelBuffer struct {
	width, height int
	pix           []byte
	background    colorful.Color
	frames        int
	drawing       bool
}

// NewPixelBuffer creates a black buffer of the given size.
func NewPixelBuffer(width, height int) *PixelBuffer {
	b := &PixelBuffer{}
	b.Resize(width, height)
	return b
}

// Resize reallocates the buffer when the size changes. The contents are
// cleared to the background colour.
func (b *PixelBuffer) Resize(width, height int) {
	width, height = max(width, 0), max(height, 0)
	if width == b.width && height == b.height && b.pix != nil {
		return
	}
	b.width, b.height = width, height
	b.pix = make([]byte, width*height*4)
	b.Clear(b.background)
}

// Size returns the width and height in pixels.
func (b *PixelBuffer) Size() (int, int) {
	return b.width, b.height
}

// Pix returns the raw RGBA bytes, row-major, four bytes per pixel.
func (b *PixelBuffer) Pix() []byte {
	return b.pix
}

// Image returns an image.RGBA sharing the buffer's memory.
func (b *PixelBuffer) Image() *image.RGBA {
	return &image.RGBA{
		Pix:    b.pix,
		Stride: b.width * 4,
		Rect:   image.Rect(0, 0, b.width, b.height),
	}
}

// SetBackground sets the colour BeginFrame clears to.
func (b *PixelBuffer) SetBackground(c colorful.Color) {
	b.background = c
}

// Frames returns the number of completed frames.
func (b *PixelBuffer) Frames() int {
	return b.frames
}

// Drawing reports whether a frame has begun and not yet ended.
func (b *PixelBuffer) Drawing() bool {
	return b.drawing
}

// BeginFrame clears the buffer to the background colour.
func (b *PixelBuffer) BeginFrame() {
	b.drawing = true
	b.Clear(b.background)
}

// EndFrame marks the frame complete.
func (b *PixelBuffer) EndFrame() {
	if b.drawing {
		b.frames++
	}
	b.drawing = false
}

// At returns the colour stored at (x, y). Out of range reads return black.
func (b *PixelBuffer) At(x, y int) colorful.Color {
	if !b.inBounds(x, y) {
		return colorful.Color{}
	}
	i := (y*b.width + x) * 4
	return colorful.Color{
		R: float64(b.pix[i]) / 255,
		G: float64(b.pix[i+1]) / 255,
		B: float64(b.pix[i+2]) / 255,
	}
}

// SetPixel blends c over the pixel at (x, y).
func (b *PixelBuffer) SetPixel(x, y int, c colorful.Color, alpha float64) {
	if !b.inBounds(x, y) || alpha <= 0 {
		return
	}
	if alpha < 1 {
		c = b.At(x, y).BlendRgb(c, alpha)
	}
	b.put(x, y, c)
}

// Clear fills every pixel with c.
func (b *PixelBuffer) Clear(c colorful.Color) {
	r, g, bl := c.Clamped().RGB255()
	for i := 0; i < len(b.pix); i += 4 {
		b.pix[i] = r
		b.pix[i+1] = g
		b.pix[i+2] = bl
		b.pix[i+3] = 0xff
	}
}

// DrawTexture copies tex into the buffer with its top-left corner at (x, y),
// blending by the texture's alpha.
func (b *PixelBuffer) DrawTexture(tex Texture, x, y int) {
	tw, th := tex.Size()
	for ty := 0; ty < th; ty++ {
		for tx := 0; tx < tw; tx++ {
			c, a := tex.Sample(float64(tx), float64(ty))
			b.SetPixel(x+tx, y+ty, c, a)
		}
	}
}

// DrawScaled fills b with src using nearest-neighbour sampling.
func (b *PixelBuffer) DrawScaled(src *PixelBuffer) {
	if src.width == 0 || src.height == 0 {
		return
	}
	for y := 0; y < b.height; y++ {
		sy := y * src.height / b.height
		for x := 0; x < b.width; x++ {
			sx := x * src.width / b.width
			si := (sy*src.width + sx) * 4
			di := (y*b.width + x) * 4
			copy(b.pix[di:di+4], src.pix[si:si+4])
		}
	}
}

func (b *PixelBuffer) put(x, y int, c colorful.Color) {
	r, g, bl := c.Clamped().RGB255()
	i := (y*b.width + x) * 4
	b.pix[i] = r
	b.pix[i+1] = g
	b.pix[i+2] = bl
	b.pix[i+3] = 0xff
}

func (b *PixelBuffer) inBounds(x, y int) bool {
	return x >= 0 && y >= 0 && x < b.width && y < b.height
}
