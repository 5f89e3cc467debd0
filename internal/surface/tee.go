package surface

import (
	"errors"
	"fmt"
	"image"
)

// Tee mirrors every frame onto several surfaces.
type Tee struct {
	surfaces  []Surface
	next      Handle
	handles   map[Handle][]Handle
	installed Handle
}

func NewTee(surfaces ...Surface) *Tee {
	return &Tee{surfaces: surfaces, handles: make(map[Handle][]Handle)}
}

// Upload uploads to every surface; on failure the uploads already done are
// released again.
func (t *Tee) Upload(img *image.RGBA) (Handle, error) {
	children := make([]Handle, 0, len(t.surfaces))
	for i, s := range t.surfaces {
		h, err := s.Upload(img)
		if err != nil {
			for j, done := range children {
				t.surfaces[j].Release(done)
			}
			return 0, fmt.Errorf("surface %d: %w", i, err)
		}
		children = append(children, h)
	}
	t.next++
	t.handles[t.next] = children
	return t.next, nil
}

// SetBackground installs h everywhere. If one surface refuses, the surfaces
// already switched go back to the previous background so all of them keep
// showing the same frame.
func (t *Tee) SetBackground(h Handle) error {
	children, ok := t.handles[h]
	if !ok {
		return fmt.Errorf("set background %d: %w", h, ErrUnknownResource)
	}
	for i, s := range t.surfaces {
		if err := s.SetBackground(children[i]); err != nil {
			if prev, ok := t.handles[t.installed]; ok {
				for j := 0; j < i; j++ {
					t.surfaces[j].SetBackground(prev[j])
				}
			}
			return fmt.Errorf("surface %d: %w", i, err)
		}
	}
	t.installed = h
	return nil
}

func (t *Tee) ClearArea(r image.Rectangle) error {
	var errs []error
	for _, s := range t.surfaces {
		errs = append(errs, s.ClearArea(r))
	}
	return errors.Join(errs...)
}

func (t *Tee) Release(h Handle) error {
	children, ok := t.handles[h]
	if !ok {
		return fmt.Errorf("release %d: %w", h, ErrUnknownResource)
	}
	delete(t.handles, h)
	var errs []error
	for i, s := range t.surfaces {
		errs = append(errs, s.Release(children[i]))
	}
	return errors.Join(errs...)
}

func (t *Tee) Flush() error {
	var errs []error
	for _, s := range t.surfaces {
		errs = append(errs, s.Flush())
	}
	return errors.Join(errs...)
}
