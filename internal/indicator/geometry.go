package indicator

import (
	"image"
	"math"
)

// maxIndicatorSide bounds the off-screen indicator buffer.
const maxIndicatorSide = 1 << 14

// Canvas is the root window the frame is composed for.
type Canvas struct {
	Width  int
	Height int
	// HeightMM is the physical height of the screen, 0 if unknown.
	HeightMM int
}

func (c Canvas) Bounds() image.Rectangle {
	return image.Rect(0, 0, c.Width, c.Height)
}

// Scale returns the device scale factor, e.g. 227/96 = 2.36 on a 227 DPI
// panel. The DPI is truncated to a whole number first.
func (c Canvas) Scale() float64 {
	if c.HeightMM <= 0 || c.Height <= 0 {
		return 1
	}
	dpi := int(float64(c.Height) * 25.4 / float64(c.HeightMM))
	if dpi <= 0 {
		return 1
	}
	return float64(dpi) / 96.0
}

// indicatorSize is the physical size of the indicator bitmap.
func indicatorSize(scale, width, height float64) image.Point {
	return image.Pt(int(math.Ceil(scale*width)), int(math.Ceil(scale*height)))
}

// centerIn returns the top-left corner that centers size inside r.
func centerIn(r image.Rectangle, size image.Point) image.Point {
	return image.Pt(
		r.Min.X+(r.Dx()/2-size.X/2),
		r.Min.Y+(r.Dy()/2-size.Y/2),
	)
}

// placements returns one indicator rectangle per display, or a single one
// centered on the canvas when no displays are known.
func placements(canvas Canvas, displays []image.Rectangle, size image.Point) []image.Rectangle {
	if len(displays) == 0 {
		at := centerIn(canvas.Bounds(), size)
		return []image.Rectangle{{Min: at, Max: at.Add(size)}}
	}
	out := make([]image.Rectangle, 0, len(displays))
	for _, d := range displays {
		at := centerIn(d, size)
		out = append(out, image.Rectangle{Min: at, Max: at.Add(size)})
	}
	return out
}
