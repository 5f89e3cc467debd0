//go:build linux && cgo

package surface

import (
	"fmt"
	"image"
	"image/color"

	fb "github.com/gonutz/framebuffer"
)

// Framebuffer presents frames on a Linux framebuffer device such as /dev/fb0.
// The canvas is expected to match the device bounds; anything outside is
// clipped.
type Framebuffer struct {
	*Memory
	dev *fb.Device
}

func OpenFramebuffer(path string) (*Framebuffer, error) {
	dev, err := fb.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open framebuffer %s: %w", path, err)
	}
	return &Framebuffer{Memory: NewMemory(), dev: dev}, nil
}

func (f *Framebuffer) Bounds() image.Rectangle {
	b := f.dev.Bounds()
	return image.Rect(0, 0, b.Dx(), b.Dy())
}

// ClearArea copies r of the installed background onto the device.
func (f *Framebuffer) ClearArea(r image.Rectangle) error {
	if err := f.Memory.ClearArea(r); err != nil {
		return err
	}
	bg := f.installedImage()
	bounds := f.dev.Bounds()
	r = r.Intersect(bg.Bounds()).Intersect(f.Bounds())
	for y := r.Min.Y; y < r.Max.Y; y++ {
		for x := r.Min.X; x < r.Max.X; x++ {
			pixel := bg.RGBAAt(x, y)
			f.dev.Set(bounds.Min.X+x, bounds.Min.Y+y, color.RGBA{R: pixel.R, G: pixel.G, B: pixel.B, A: 0xFF})
		}
	}
	return nil
}

func (f *Framebuffer) Close() {
	f.dev.Close()
}
