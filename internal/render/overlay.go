package render

import (
	"math"

	"github.com/lucasb-eyer/go-colorful"
)

// PixelOverlay rasterises overlay primitives into a PixelBuffer for backends
// without a vector API. Coordinates are multiplied by ScaleX and ScaleY, and
// line widths are ignored.
type PixelOverlay struct {
	Buffer *PixelBuffer
	ScaleX float32
	ScaleY float32

	// Text receives DebugText calls in scaled coordinates. Nil drops text.
	Text func(text string, x, y int)
}

// NewPixelOverlay returns an unscaled overlay drawing into b.
func NewPixelOverlay(b *PixelBuffer) *PixelOverlay {
	return &PixelOverlay{Buffer: b, ScaleX: 1, ScaleY: 1}
}

// FillRect fills every pixel the rectangle touches.
func (o *PixelOverlay) FillRect(x, y, width, height float32, c colorful.Color) {
	x0 := int(math.Floor(float64(x * o.ScaleX)))
	y0 := int(math.Floor(float64(y * o.ScaleY)))
	x1 := int(math.Ceil(float64((x + width) * o.ScaleX)))
	y1 := int(math.Ceil(float64((y + height) * o.ScaleY)))
	for py := y0; py < y1; py++ {
		for px := x0; px < x1; px++ {
			o.Buffer.SetPixel(px, py, c, 1)
		}
	}
}

// FillCircle fills pixels whose centres lie inside the circle. The pixel
// under the centre is always drawn.
func (o *PixelOverlay) FillCircle(x, y, radius float32, c colorful.Color) {
	cx, cy := float64(x*o.ScaleX), float64(y*o.ScaleY)
	r := float64(radius * (o.ScaleX + o.ScaleY) / 2)
	o.Buffer.SetPixel(int(math.Floor(cx)), int(math.Floor(cy)), c, 1)
	for py := int(math.Floor(cy - r)); py <= int(math.Ceil(cy+r)); py++ {
		for px := int(math.Floor(cx - r)); px <= int(math.Ceil(cx+r)); px++ {
			dx, dy := float64(px)+0.5-cx, float64(py)+0.5-cy
			if dx*dx+dy*dy <= r*r {
				o.Buffer.SetPixel(px, py, c, 1)
			}
		}
	}
}

// StrokeLine draws a one pixel line between the two points.
func (o *PixelOverlay) StrokeLine(x0, y0, x1, y1, _ float32, c colorful.Color) {
	ax, ay := float64(x0*o.ScaleX), float64(y0*o.ScaleY)
	bx, by := float64(x1*o.ScaleX), float64(y1*o.ScaleY)
	steps := int(math.Ceil(max(math.Abs(bx-ax), math.Abs(by-ay))))
	if steps == 0 {
		o.Buffer.SetPixel(int(math.Floor(ax)), int(math.Floor(ay)), c, 1)
		return
	}
	for i := 0; i <= steps; i++ {
		t := float64(i) / float64(steps)
		px := ax + (bx-ax)*t
		py := ay + (by-ay)*t
		o.Buffer.SetPixel(int(math.Floor(px)), int(math.Floor(py)), c, 1)
	}
}

// DebugText forwards text to Text.
func (o *PixelOverlay) DebugText(text string, x, y int) {
	if o.Text == nil {
		return
	}
	o.Text(text, int(float32(x)*o.ScaleX), int(float32(y)*o.ScaleY))
}
