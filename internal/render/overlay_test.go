package render

import (
	"testing"

	"github.com/lucasb-eyer/go-colorful"
)

func countLit(b *PixelBuffer) int {
	w, h := b.Size()
	n := 0
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			if r, _, _ := b.At(x, y).RGB255(); r > 0 {
				n++
			}
		}
	}
	return n
}

func TestPixelOverlayFillRect(t *testing.T) {
	b := NewPixelBuffer(10, 10)
	o := NewPixelOverlay(b)
	o.FillRect(2, 3, 4, 2, colorful.Color{R: 1})

	if n := countLit(b); n != 8 {
		t.Errorf("Expected 8 filled pixels, got %d", n)
	}
	if r, _, _ := b.At(5, 4).RGB255(); r != 255 {
		t.Error("Expected (5, 4) inside the rect")
	}
	if r, _, _ := b.At(6, 4).RGB255(); r != 0 {
		t.Error("Expected (6, 4) outside the rect")
	}
}

func TestPixelOverlayScales(t *testing.T) {
	b := NewPixelBuffer(10, 10)
	o := &PixelOverlay{Buffer: b, ScaleX: 0.5, ScaleY: 0.5}
	o.FillRect(0, 0, 4, 4, colorful.Color{R: 1})

	if n := countLit(b); n != 4 {
		t.Errorf("Expected a 2x2 rect after scaling, got %d pixels", n)
	}

	var gotX, gotY int
	o.Text = func(_ string, x, y int) { gotX, gotY = x, y }
	o.DebugText("hi", 8, 6)
	if gotX != 4 || gotY != 3 {
		t.Errorf("Expected text at (4, 3), got (%d, %d)", gotX, gotY)
	}
}

func TestPixelOverlayTinyCircleDrawsCentre(t *testing.T) {
	b := NewPixelBuffer(10, 10)
	NewPixelOverlay(b).FillCircle(4.5, 4.5, 0.1, colorful.Color{R: 1})

	if n := countLit(b); n != 1 {
		t.Errorf("Expected only the centre pixel, got %d", n)
	}
}

func TestPixelOverlayStrokeLine(t *testing.T) {
	b := NewPixelBuffer(10, 10)
	NewPixelOverlay(b).StrokeLine(0.5, 0.5, 8.5, 0.5, 1, colorful.Color{R: 1})

	if n := countLit(b); n != 9 {
		t.Errorf("Expected a 9 pixel horizontal line, got %d", n)
	}
}
