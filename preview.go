package main

import (
	"context"
	"log"
	"sync"
	"time"

	"github.com/photonicat/svglock/internal/config"
	"github.com/photonicat/svglock/internal/present"
	"github.com/photonicat/svglock/internal/surface"
)

// previewSession serializes events arriving on fiber's goroutines and the
// highlight timer.
type previewSession struct {
	mu         sync.Mutex
	p          *present.Presenter
	clearAfter time.Duration
	timer      *time.Timer
}

func (s *previewSession) handle(name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	ev, err := present.ParseEvent(name)
	if err != nil {
		return err
	}
	if err := s.p.Handle(ev); err != nil {
		return err
	}
	if ev == present.EventKey || ev == present.EventBackspace {
		s.armClear()
	}
	return nil
}

func (s *previewSession) armClear() {
	if s.timer != nil {
		s.timer.Stop()
	}
	s.timer = time.AfterFunc(s.clearAfter, func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		if err := s.p.ClearIndicator(); err != nil {
			log.Printf("Error clearing indicator: %v", err)
		}
	})
}

func (s *previewSession) snapshot() any {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.p.Snapshot()
}

func execPreview(ctx context.Context, cfg *config.Config, cf canvasFlags, listen, fbPath string) error {
	displays, err := parseDisplays(cf.displays)
	if err != nil {
		return err
	}
	composer, err := newComposer(cfg)
	if err != nil {
		return err
	}

	web := surface.NewWeb(listen)
	var out surface.Surface = web
	canvas := cf.canvas()
	if fbPath != "" {
		fb, err := surface.OpenFramebuffer(fbPath)
		if err != nil {
			return err
		}
		defer fb.Close()
		b := fb.Bounds()
		canvas.Width, canvas.Height = b.Dx(), b.Dy()
		log.Printf("Mirroring to %s (%dx%d)", fbPath, canvas.Width, canvas.Height)
		out = surface.NewTee(web, fb)
	}

	p := present.New(composer, out, nil, canvas)
	p.Displays = displays
	p.Debug = cfg.Debug
	session := &previewSession{p: p, clearAfter: cfg.ClearAfter}
	web.OnEvent = session.handle
	web.State = session.snapshot

	if err := p.Redraw(); err != nil {
		return err
	}

	errc := make(chan error, 1)
	go func() {
		errc <- web.Listen()
	}()

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
		log.Println("Shutting down preview server")
		if err := web.Shutdown(); err != nil {
			return err
		}
		session.mu.Lock()
		defer session.mu.Unlock()
		if session.timer != nil {
			session.timer.Stop()
		}
		return p.Close()
	}
}
