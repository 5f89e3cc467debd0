package surface

import (
	"fmt"
	"image"
	"image/draw"
	"sync"
)

// Memory keeps backgrounds in process and tracks what a window showing the
// installed background would display after each ClearArea.
type Memory struct {
	mu         sync.Mutex
	next       Handle
	images     map[Handle]*image.RGBA
	installed  Handle
	background *image.RGBA
	visible    *image.RGBA
	flushed    *image.RGBA
	// Ops records every call in order, e.g. "upload 1", "set 1", "clear", "release 0", "flush".
	Ops []string
}

func NewMemory() *Memory {
	return &Memory{images: make(map[Handle]*image.RGBA)}
}

func (m *Memory) Upload(img *image.RGBA) (Handle, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.next++
	h := m.next
	cp := image.NewRGBA(img.Bounds())
	draw.Draw(cp, cp.Bounds(), img, img.Bounds().Min, draw.Src)
	m.images[h] = cp
	m.Ops = append(m.Ops, fmt.Sprintf("upload %d", h))
	return h, nil
}

func (m *Memory) SetBackground(h Handle) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	img, ok := m.images[h]
	if !ok {
		return fmt.Errorf("set background %d: %w", h, ErrUnknownResource)
	}
	m.installed = h
	m.background = img
	m.Ops = append(m.Ops, fmt.Sprintf("set %d", h))
	return nil
}

func (m *Memory) ClearArea(r image.Rectangle) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	bg := m.background
	if bg == nil {
		return fmt.Errorf("clear area: %w", ErrUnknownResource)
	}
	if m.visible == nil || m.visible.Bounds() != bg.Bounds() {
		m.visible = image.NewRGBA(bg.Bounds())
	}
	r = r.Intersect(bg.Bounds())
	draw.Draw(m.visible, r, bg, r.Min, draw.Src)
	m.Ops = append(m.Ops, "clear")
	return nil
}

// Release drops an uploaded background. Like a freed X pixmap, an installed
// background keeps showing; only its handle becomes invalid.
func (m *Memory) Release(h Handle) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.images[h]; !ok {
		return fmt.Errorf("release %d: %w", h, ErrUnknownResource)
	}
	delete(m.images, h)
	m.Ops = append(m.Ops, fmt.Sprintf("release %d", h))
	return nil
}

func (m *Memory) Flush() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.visible != nil {
		cp := image.NewRGBA(m.visible.Bounds())
		copy(cp.Pix, m.visible.Pix)
		m.flushed = cp
	}
	m.Ops = append(m.Ops, "flush")
	return nil
}

// Frame returns the last flushed frame, or nil before the first flush.
func (m *Memory) Frame() *image.RGBA {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.flushed
}

// Live returns the number of uploaded backgrounds not yet released.
func (m *Memory) Live() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.images)
}

func (m *Memory) installedImage() *image.RGBA {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.background
}
