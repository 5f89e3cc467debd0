// Package present installs composed indicator frames as the lock window's
// background.
package present

import (
	"errors"
	"fmt"
	"image"
	"log"

	"github.com/photonicat/svglock/internal/indicator"
	"github.com/photonicat/svglock/internal/surface"
)

// Presenter owns the installed background and redraws it after every state
// change. It is not safe for concurrent use; callers serialize events.
type Presenter struct {
	Composer *indicator.Composer
	Surface  surface.Surface
	State    *indicator.State
	Canvas   indicator.Canvas
	Displays []image.Rectangle
	Debug    bool

	current   surface.Handle
	installed bool
	last      *indicator.Frame
}

func New(c *indicator.Composer, s surface.Surface, st *indicator.State, canvas indicator.Canvas) *Presenter {
	if st == nil {
		st = &indicator.State{}
	}
	return &Presenter{Composer: c, Surface: s, State: st, Canvas: canvas}
}

// SetGeometry updates the canvas and display layout used by later redraws.
func (p *Presenter) SetGeometry(canvas indicator.Canvas, displays []image.Rectangle) {
	p.Canvas = canvas
	p.Displays = displays
}

// LoadDisplays asks g for the current display layout.
func (p *Presenter) LoadDisplays(g surface.GeometryProvider) error {
	displays, err := g.Displays()
	if err != nil {
		return fmt.Errorf("display geometry: %w", err)
	}
	p.Displays = displays
	return nil
}

// Redraw composes a frame for the current state and makes it visible. The new
// background is installed before the old one is released, and nothing is
// installed if composing or uploading fails.
func (p *Presenter) Redraw() error {
	frame, err := p.Composer.Compose(p.Canvas, p.State, p.Displays)
	if err != nil {
		return fmt.Errorf("compose: %w", err)
	}
	if p.Debug {
		log.Printf("redraw: indicator=%s auth=%s frame=%d layers=%v placements=%v",
			p.State.Indicator, p.State.Auth, p.State.Frame, frame.Layers, frame.Placements)
	}

	h, err := p.Surface.Upload(frame.Image)
	if err != nil {
		return fmt.Errorf("upload: %w", err)
	}
	if err := p.Surface.SetBackground(h); err != nil {
		p.Surface.Release(h)
		return fmt.Errorf("install background: %w", err)
	}
	old, hadOld := p.current, p.installed
	p.current, p.installed = h, true
	p.last = frame

	// Once the new background is installed the old one is released and the
	// connection flushed, even if the clear request fails.
	var errs []error
	if err := p.Surface.ClearArea(p.Canvas.Bounds()); err != nil {
		errs = append(errs, fmt.Errorf("clear: %w", err))
	}
	if hadOld {
		if err := p.Surface.Release(old); err != nil {
			log.Printf("Error releasing background %d: %v", old, err)
		}
	}
	if err := p.Surface.Flush(); err != nil {
		errs = append(errs, fmt.Errorf("flush: %w", err))
	}
	return errors.Join(errs...)
}

// ClearIndicator drops the keystroke highlight, hiding the indicator
// entirely once the buffer is empty.
func (p *Presenter) ClearIndicator() error {
	if p.State.InputLen == 0 {
		p.State.Indicator = indicator.StateIdle
	} else {
		p.State.Indicator = indicator.StateInputStarted
	}
	return p.Redraw()
}

// Last returns the most recently installed frame.
func (p *Presenter) Last() *indicator.Frame { return p.last }

// Close releases the installed background.
func (p *Presenter) Close() error {
	if !p.installed {
		return nil
	}
	p.installed = false
	return p.Surface.Release(p.current)
}
