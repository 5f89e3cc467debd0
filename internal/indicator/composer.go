// Package indicator decides what the unlock indicator looks like for a given
// input and authentication state and composes full-screen frames with it.
package indicator

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"math"
	"math/rand"
	"time"
)

var (
	ErrNoAsset           = errors.New("no indicator asset")
	ErrInvalidDimensions = errors.New("indicator asset has invalid dimensions")
	ErrInvalidCanvas     = errors.New("invalid canvas size")
)

// Renderer is the vector asset the indicator is drawn from.
type Renderer interface {
	// Size is the native size of the asset in user units.
	Size() (width, height float64)
	// RenderLayer draws the element with the given id into dst at scale.
	// Missing ids are not an error; nothing is drawn.
	RenderLayer(dst *image.RGBA, id string, scale float64) error
}

// Options are the user-facing knobs of the lock screen.
type Options struct {
	// Enabled turns the indicator on; when off only the background is drawn.
	Enabled bool
	Color   color.RGBA
	// Image, if set, is painted over Color at the origin or tiled.
	Image image.Image
	Tile  bool
	// RemoveBackground hides the status ring while a keystroke is highlighted.
	RemoveBackground bool
	Sequential       bool
	AnimLayers       int
	// Debug outlines every indicator placement.
	Debug bool
}

// DefaultOptions matches a lock screen started without arguments.
func DefaultOptions() Options {
	return Options{
		Enabled: true,
		Color:   color.RGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff},
	}
}

// Frame is one finished canvas.
type Frame struct {
	Image *image.RGBA
	Scale float64
	// Size is the physical size of the indicator bitmap.
	Size image.Point
	// Layers lists the layers painted into the indicator, bottom first.
	Layers []Layer
	// Placements are the canvas rectangles the indicator was composited at.
	Placements []image.Rectangle
}

type Composer struct {
	Asset   Renderer
	Options Options
	Rand    Rand
}

func NewComposer(asset Renderer, opts Options) *Composer {
	return &Composer{
		Asset:   asset,
		Options: opts,
		Rand:    rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// Compose renders a full frame for canvas. The animation counter in st is
// advanced on key and backspace frames, and left untouched when rendering
// fails. Nothing is returned on error, so a caller never installs a
// partially drawn frame.
func (c *Composer) Compose(canvas Canvas, st *State, displays []image.Rectangle) (*Frame, error) {
	if c.Asset == nil {
		return nil, ErrNoAsset
	}
	if canvas.Width <= 0 || canvas.Height <= 0 {
		return nil, fmt.Errorf("%dx%d: %w", canvas.Width, canvas.Height, ErrInvalidCanvas)
	}
	width, height := c.Asset.Size()
	if !validDimension(width) || !validDimension(height) {
		return nil, fmt.Errorf("%gx%g: %w", width, height, ErrInvalidDimensions)
	}

	scale := canvas.Scale()
	size := indicatorSize(scale, width, height)
	if size.X > maxIndicatorSide || size.Y > maxIndicatorSide {
		return nil, fmt.Errorf("indicator bitmap %dx%d: %w", size.X, size.Y, ErrInvalidDimensions)
	}

	out := image.NewRGBA(canvas.Bounds())
	fillCanvas(out, c.Options)
	frame := &Frame{Image: out, Scale: scale, Size: size}

	if !c.Options.Enabled || !st.Visible() {
		return frame, nil
	}

	bitmap := image.NewRGBA(image.Rect(0, 0, size.X, size.Y))
	prevFrame := st.Frame
	plan := planLayers(st, c.Options, c.Rand)
	for _, layer := range plan {
		if err := c.Asset.RenderLayer(bitmap, string(layer), scale); err != nil {
			st.Frame = prevFrame
			return nil, fmt.Errorf("render layer %s: %w", layer, err)
		}
	}
	frame.Layers = plan

	frame.Placements = placements(canvas, displays, size)
	for _, r := range frame.Placements {
		draw.Draw(out, r, bitmap, image.Point{}, draw.Over)
		if c.Options.Debug {
			outline(out, r)
		}
	}
	return frame, nil
}

func validDimension(v float64) bool {
	return v > 0 && !math.IsInf(v, 0) && !math.IsNaN(v)
}
