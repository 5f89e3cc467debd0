//go:build !linux || !cgo

package surface

import (
	"errors"
	"image"
)

type Framebuffer struct {
	*Memory
}

func OpenFramebuffer(path string) (*Framebuffer, error) {
	return nil, errors.New("framebuffer output needs linux")
}

func (f *Framebuffer) Bounds() image.Rectangle { return image.Rectangle{} }

func (f *Framebuffer) Close() {}
