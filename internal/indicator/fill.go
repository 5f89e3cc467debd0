package indicator

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"strconv"
	"strings"
)

var ErrInvalidColor = errors.New("color must be 6 hex digits")

// ParseHexColor decodes "rrggbb" (an optional leading '#' is accepted).
func ParseHexColor(s string) (color.RGBA, error) {
	s = strings.TrimPrefix(s, "#")
	if len(s) != 6 {
		return color.RGBA{}, fmt.Errorf("%q: %w", s, ErrInvalidColor)
	}
	var rgb [3]uint8
	for i := range rgb {
		v, err := strconv.ParseUint(s[2*i:2*i+2], 16, 8)
		if err != nil {
			return color.RGBA{}, fmt.Errorf("%q: %w", s, ErrInvalidColor)
		}
		rgb[i] = uint8(v)
	}
	return color.RGBA{R: rgb[0], G: rgb[1], B: rgb[2], A: 0xff}, nil
}

// HexColor is the inverse of ParseHexColor.
func HexColor(c color.RGBA) string {
	return fmt.Sprintf("%02x%02x%02x", c.R, c.G, c.B)
}

// fillCanvas paints the lock screen background: the fill color first, then
// the image once at the origin or tiled across the whole canvas.
func fillCanvas(canvas *image.RGBA, opts Options) {
	bounds := canvas.Bounds()
	fill := opts.Color
	fill.A = 0xff
	draw.Draw(canvas, bounds, &image.Uniform{C: fill}, image.Point{}, draw.Src)

	if opts.Image == nil {
		return
	}
	src := opts.Image.Bounds()
	if !opts.Tile {
		draw.Draw(canvas, bounds, opts.Image, src.Min, draw.Over)
		return
	}
	if src.Empty() {
		return
	}
	for y := bounds.Min.Y; y < bounds.Max.Y; y += src.Dy() {
		for x := bounds.Min.X; x < bounds.Max.X; x += src.Dx() {
			tile := image.Rect(x, y, x+src.Dx(), y+src.Dy()).Intersect(bounds)
			draw.Draw(canvas, tile, opts.Image, src.Min, draw.Over)
		}
	}
}
