package render

import (
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/lucasb-eyer/go-colorful"
)

var (
	red   = colorful.Color{R: 1}
	blue  = colorful.Color{B: 1}
	black = colorful.Color{}
)

func TestPixelBufferSetPixelOverwrites(t *testing.T) {
	b := NewPixelBuffer(4, 3)
	b.SetPixel(1, 2, red, 1)

	if got := b.At(1, 2); got != red {
		t.Errorf("Expected red, got %v", got)
	}
	if got := b.At(0, 0); got != black {
		t.Errorf("Expected untouched pixel to stay black, got %v", got)
	}
}

func TestPixelBufferAlphaBlend(t *testing.T) {
	b := NewPixelBuffer(2, 2)
	b.SetPixel(0, 0, blue, 1)
	b.SetPixel(0, 0, red, 0.25)

	got := b.At(0, 0)
	r, _, bl := got.RGB255()
	// 0.25*255 and 0.75*255 after rounding to bytes
	if r != 64 || bl != 191 {
		t.Errorf("Expected (64, _, 191), got (%d, _, %d)", r, bl)
	}

	b.SetPixel(1, 1, red, 0)
	if got := b.At(1, 1); got != black {
		t.Errorf("Expected zero alpha to leave the pixel alone, got %v", got)
	}
}

func TestPixelBufferOutOfBoundsIsNoop(t *testing.T) {
	b := NewPixelBuffer(2, 2)
	before := append([]byte(nil), b.Pix()...)

	for _, p := range [][2]int{{-1, 0}, {0, -1}, {2, 0}, {0, 2}, {100, 100}} {
		b.SetPixel(p[0], p[1], red, 1)
	}

	for i := range before {
		if before[i] != b.Pix()[i] {
			t.Fatalf("Expected out-of-bounds writes to be ignored, byte %d changed", i)
		}
	}
}

func TestPixelBufferFrameLifecycle(t *testing.T) {
	b := NewPixelBuffer(3, 3)
	b.SetBackground(blue)
	b.SetPixel(1, 1, red, 1)

	b.BeginFrame()
	if !b.Drawing() {
		t.Error("Expected Drawing after BeginFrame")
	}
	if got := b.At(1, 1); got != blue {
		t.Errorf("Expected BeginFrame to clear to the background, got %v", got)
	}
	b.EndFrame()
	b.EndFrame()

	if b.Frames() != 1 {
		t.Errorf("Expected 1 completed frame, got %d", b.Frames())
	}
}

func TestPixelBufferImageSharesMemory(t *testing.T) {
	b := NewPixelBuffer(5, 4)
	b.SetPixel(4, 3, red, 1)

	img := b.Image()
	if img.Bounds() != image.Rect(0, 0, 5, 4) {
		t.Errorf("Expected 5x4 bounds, got %v", img.Bounds())
	}
	if got := img.RGBAAt(4, 3); got != (color.RGBA{255, 0, 0, 255}) {
		t.Errorf("Expected red at (4, 3), got %v", got)
	}
}

func TestPixelBufferResize(t *testing.T) {
	b := NewPixelBuffer(2, 2)
	b.Resize(8, 6)

	w, h := b.Size()
	if w != 8 || h != 6 {
		t.Errorf("Expected 8x6, got %dx%d", w, h)
	}
	if len(b.Pix()) != 8*6*4 {
		t.Errorf("Expected %d bytes, got %d", 8*6*4, len(b.Pix()))
	}
}

func TestDrawTexture(t *testing.T) {
	img := image.NewNRGBA(image.Rect(0, 0, 2, 2))
	img.Set(0, 0, color.NRGBA{255, 0, 0, 255})
	img.Set(1, 1, color.NRGBA{0, 0, 255, 255})
	// (1, 0) and (0, 1) stay fully transparent

	b := NewPixelBuffer(4, 4)
	b.Clear(colorful.Color{G: 1})
	b.DrawTexture(NewImageTexture(img), 2, 2)

	if got := b.At(2, 2); got != red {
		t.Errorf("Expected red at (2, 2), got %v", got)
	}
	if got := b.At(3, 3); got != blue {
		t.Errorf("Expected blue at (3, 3), got %v", got)
	}
	if got := b.At(3, 2); got != (colorful.Color{G: 1}) {
		t.Errorf("Expected transparent texel to keep green, got %v", got)
	}
}

func TestImageTextureWraps(t *testing.T) {
	img := image.NewNRGBA(image.Rect(0, 0, 4, 2))
	img.Set(3, 1, color.NRGBA{255, 0, 0, 255})
	tex := NewImageTexture(img)

	for _, p := range [][2]float64{{3.5, 1.2}, {-0.5, -0.5}, {7.9, 3.0}} {
		c, a := tex.Sample(p[0], p[1])
		if c != red || a != 1 {
			t.Errorf("Sample(%v, %v): expected opaque red, got %v alpha %v", p[0], p[1], c, a)
		}
	}
}

func TestSubTexture(t *testing.T) {
	img := image.NewNRGBA(image.Rect(0, 0, 4, 4))
	img.Set(2, 0, color.NRGBA{255, 0, 0, 255})
	sub := NewSubTexture(NewImageTexture(img), 2, 0, 2, 2)

	if w, h := sub.Size(); w != 2 || h != 2 {
		t.Fatalf("Expected 2x2, got %dx%d", w, h)
	}
	if c, _ := sub.Sample(0, 0); c != red {
		t.Errorf("Expected red at region origin, got %v", c)
	}
	if c, _ := sub.Sample(2, 2); c != red {
		t.Errorf("Expected sampling to wrap inside the region, got %v", c)
	}
}

func TestDecodeLoader(t *testing.T) {
	img := image.NewNRGBA(image.Rect(0, 0, 3, 2))
	img.Set(1, 1, color.NRGBA{0, 0, 255, 255})

	path := filepath.Join(t.TempDir(), "wall.png")
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("Failed to create file: %v", err)
	}
	if err := png.Encode(f, img); err != nil {
		t.Fatalf("Failed to encode png: %v", err)
	}
	f.Close()

	tex, err := DecodeLoader{}.LoadTexture(path)
	if err != nil {
		t.Fatalf("Failed to load texture: %v", err)
	}
	if w, h := tex.Size(); w != 3 || h != 2 {
		t.Errorf("Expected 3x2, got %dx%d", w, h)
	}
	if c, _ := tex.Sample(1, 1); c != blue {
		t.Errorf("Expected blue, got %v", c)
	}

	if _, err := (DecodeLoader{}).LoadTexture(filepath.Join(t.TempDir(), "missing.png")); err == nil {
		t.Error("Expected an error for a missing file")
	}
}

func TestDrawScaled(t *testing.T) {
	src := NewPixelBuffer(2, 2)
	src.SetPixel(1, 0, red, 1)

	dst := NewPixelBuffer(4, 4)
	dst.DrawScaled(src)

	for y := 0; y < 4; y++ {
		for x := 0; x < 4; x++ {
			wantRed := x >= 2 && y < 2
			r, _, _ := dst.At(x, y).RGB255()
			if (r == 255) != wantRed {
				t.Errorf("Pixel (%d, %d) red=%d, want red=%v", x, y, r, wantRed)
			}
		}
	}
}
