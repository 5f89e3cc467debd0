// Package surface installs finished frames on something a user can see: an
// X11 window background, the Linux framebuffer, an HTTP preview or memory.
package surface

import (
	"errors"
	"image"
)

var ErrUnknownResource = errors.New("unknown background resource")

// Handle names an uploaded background, like an X pixmap id.
type Handle uint32

// Surface is the window-system side of presenting a frame. Uploaded
// backgrounds stay alive until released; releasing the installed one is the
// caller's job once a replacement is in place.
type Surface interface {
	Upload(img *image.RGBA) (Handle, error)
	SetBackground(h Handle) error
	// ClearArea repaints r from the installed background.
	ClearArea(r image.Rectangle) error
	Release(h Handle) error
	Flush() error
}

// GeometryProvider reports the physical displays making up the canvas.
// An empty result means the layout is unknown.
type GeometryProvider interface {
	Displays() ([]image.Rectangle, error)
}

// Displays is a fixed display layout.
type Displays []image.Rectangle

func (d Displays) Displays() ([]image.Rectangle, error) {
	return d, nil
}
