package indicator

import (
	"image"
	"image/color"
	"math"

	"github.com/llgcode/draw2d/draw2dimg"
)

var debugColor = color.RGBA{R: 255, G: 229, B: 0, A: 255}

// outline strokes a rounded box just inside r.
func outline(img *image.RGBA, r image.Rectangle) {
	if r.Dx() < 4 || r.Dy() < 4 {
		return
	}
	gc := draw2dimg.NewGraphicContext(img)
	gc.SetStrokeColor(debugColor)
	gc.SetLineWidth(2)
	radius := math.Min(8, float64(min(r.Dx(), r.Dy()))/4)
	drawRoundedRect(gc, float64(r.Min.X)+1, float64(r.Min.Y)+1, float64(r.Dx())-2, float64(r.Dy())-2, radius)
	gc.Stroke()
}

func drawRoundedRect(gc *draw2dimg.GraphicContext, x, y, w, h, r float64) {
	gc.MoveTo(x+r, y)
	gc.LineTo(x+w-r, y)
	gc.ArcTo(x+w-r, y+r, r, r, -math.Pi/2, math.Pi/2)
	gc.LineTo(x+w, y+h-r)
	gc.ArcTo(x+w-r, y+h-r, r, r, 0, math.Pi/2)
	gc.LineTo(x+r, y+h)
	gc.ArcTo(x+r, y+h-r, r, r, math.Pi/2, math.Pi/2)
	gc.LineTo(x, y+r)
	gc.ArcTo(x+r, y+r, r, r, math.Pi, math.Pi/2)
	gc.Close()
}
