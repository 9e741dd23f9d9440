package render

import (
	"fmt"
	"image"
	_ "image/png" // register PNG decoding for DecodeLoader
	"math"
	"os"

	"github.com/lucasb-eyer/go-colorful"
)

// ImageTexture samples a decoded image on the CPU.
type ImageTexture struct {
	img    image.Image
	bounds image.Rectangle
}

// NewImageTexture wraps img.
func NewImageTexture(img image.Image) *ImageTexture {
	return &ImageTexture{img: img, bounds: img.Bounds()}
}

// Image returns the wrapped image.
func (t *ImageTexture) Image() image.Image {
	return t.img
}

// Size returns the width and height in texels.
func (t *ImageTexture) Size() (int, int) {
	return t.bounds.Dx(), t.bounds.Dy()
}

// Sample returns the texel containing (x, y). Coordinates outside the image
// wrap around.
func (t *ImageTexture) Sample(x, y float64) (colorful.Color, float64) {
	w, h := t.Size()
	if w == 0 || h == 0 {
		return colorful.Color{}, 0
	}
	px := wrap(int(math.Floor(x)), w) + t.bounds.Min.X
	py := wrap(int(math.Floor(y)), h) + t.bounds.Min.Y

	src := t.img.At(px, py)
	_, _, _, a := src.RGBA()
	if a == 0 {
		return colorful.Color{}, 0
	}
	c, _ := colorful.MakeColor(src)
	return c, float64(a) / 0xffff
}

func wrap(v, n int) int {
	v %= n
	if v < 0 {
		v += n
	}
	return v
}

// SubTexture is a rectangular window into another texture.
type SubTexture struct {
	src           Texture
	x, y          float64
	width, height int
}

// NewSubTexture returns the width x height region of src starting at (x, y).
func NewSubTexture(src Texture, x, y float64, width, height int) *SubTexture {
	return &SubTexture{src: src, x: x, y: y, width: width, height: height}
}

// Size returns the region size.
func (s *SubTexture) Size() (int, int) {
	return s.width, s.height
}

// Sample reads from the source texture, wrapping inside the region.
func (s *SubTexture) Sample(x, y float64) (colorful.Color, float64) {
	if s.width == 0 || s.height == 0 {
		return colorful.Color{}, 0
	}
	x = math.Mod(x, float64(s.width))
	if x < 0 {
		x += float64(s.width)
	}
	y = math.Mod(y, float64(s.height))
	if y < 0 {
		y += float64(s.height)
	}
	return s.src.Sample(s.x+x, s.y+y)
}

// DecodeLoader loads textures with the image package decoders. It needs no
// graphics context, which makes it usable from terminal backends and tests.
type DecodeLoader struct{}

// LoadTexture decodes the image at path.
func (DecodeLoader) LoadTexture(path string) (Texture, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open texture: %w", err)
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("failed to decode texture %s: %w", path, err)
	}
	return NewImageTexture(img), nil
}
