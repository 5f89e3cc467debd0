package asset

import (
	"bytes"
	"fmt"
	"math"

	svg "github.com/ajstarks/svgo"
)

// DefaultAnimLayers is the number of highlight segments in the built-in indicator.
const DefaultAnimLayers = 8

const (
	indicatorSize   = 220
	ringRadius      = 90
	ringWidth       = 14
	highlightLength = math.Pi / 4
)

// DefaultIndicatorSVG draws the built-in ring indicator with every layer the
// composer knows about.
func DefaultIndicatorSVG(animLayers int) []byte {
	var buf bytes.Buffer
	c := indicatorSize / 2
	ring := func(stroke string) string {
		return fmt.Sprintf("fill:none;stroke:%s;stroke-width:%d", stroke, ringWidth)
	}

	canvas := svg.New(&buf)
	canvas.Start(indicatorSize, indicatorSize)

	canvas.Gid("bg")
	canvas.Circle(c, c, ringRadius+ringWidth/2, "fill:#000000;fill-opacity:0.75")
	canvas.Gend()

	canvas.Gid("idle")
	canvas.Circle(c, c, ringRadius, ring("#337d00"))
	canvas.Gend()

	canvas.Gid("verify")
	canvas.Circle(c, c, ringRadius, ring("#0072ff"))
	canvas.Gend()

	canvas.Gid("fail")
	canvas.Circle(c, c, ringRadius, ring("#fa0000"))
	canvas.Gend()

	for i := 0; i < animLayers; i++ {
		mid := 2*math.Pi*float64(i)/float64(animLayers) - math.Pi/2
		canvas.Gid(fmt.Sprintf("anim%02d", i))
		ringArc(canvas, c, mid, ring("#33db00"))
		canvas.Gend()
	}

	canvas.Gid("backspace")
	ringArc(canvas, c, -3*math.Pi/4, ring("#db3300"))
	canvas.Gend()

	canvas.Gid("fg")
	canvas.Circle(c, c, ringRadius-ringWidth/2, "fill:none;stroke:#000000;stroke-width:2")
	canvas.Circle(c, c, ringRadius+ringWidth/2, "fill:none;stroke:#000000;stroke-width:2")
	canvas.Gend()

	canvas.End()
	return buf.Bytes()
}

// ringArc strokes a highlightLength segment of the ring centered on angle mid.
func ringArc(canvas *svg.SVG, c int, mid float64, style string) {
	from, to := mid-highlightLength/2, mid+highlightLength/2
	sx := c + int(math.Round(ringRadius*math.Cos(from)))
	sy := c + int(math.Round(ringRadius*math.Sin(from)))
	ex := c + int(math.Round(ringRadius*math.Cos(to)))
	ey := c + int(math.Round(ringRadius*math.Sin(to)))
	canvas.Arc(sx, sy, ringRadius, ringRadius, 0, false, true, ex, ey, style)
}

// Default parses the built-in indicator.
func Default(animLayers int) (*SVG, error) {
	return ParseSVG(DefaultIndicatorSVG(animLayers))
}
