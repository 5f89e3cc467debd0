package main

import (
	"fmt"
	"image"
	"image/png"
	"log"
	"os"

	"github.com/photonicat/svglock/internal/config"
	"github.com/photonicat/svglock/internal/indicator"
	"github.com/photonicat/svglock/internal/present"
	"github.com/photonicat/svglock/internal/surface"
)

func execRender(cfg *config.Config, cf canvasFlags, events, out string) error {
	displays, err := parseDisplays(cf.displays)
	if err != nil {
		return err
	}
	evs, err := parseEvents(events)
	if err != nil {
		return err
	}
	p, mem, err := newMemoryPresenter(cfg, cf.canvas(), displays)
	if err != nil {
		return err
	}

	if err := p.Redraw(); err != nil {
		return err
	}
	for _, ev := range evs {
		if err := p.Handle(ev); err != nil {
			return fmt.Errorf("%v: %w", ev, err)
		}
	}

	f, err := os.Create(out)
	if err != nil {
		return err
	}
	defer f.Close()
	if err := png.Encode(f, mem.Frame()); err != nil {
		return fmt.Errorf("encoding %s: %w", out, err)
	}
	snap := p.Snapshot()
	log.Printf("Wrote %s: indicator=%s auth=%s layers=%v", out, snap.Indicator, snap.Auth, snap.Layers)
	return f.Close()
}

// newMemoryPresenter wires cfg to a presenter drawing into memory.
func newMemoryPresenter(cfg *config.Config, canvas indicator.Canvas, displays []image.Rectangle) (*present.Presenter, *surface.Memory, error) {
	composer, err := newComposer(cfg)
	if err != nil {
		return nil, nil, err
	}
	mem := surface.NewMemory()
	p := present.New(composer, mem, nil, canvas)
	p.Displays = displays
	p.Debug = cfg.Debug
	return p, mem, nil
}

func newComposer(cfg *config.Config) (*indicator.Composer, error) {
	svg, err := cfg.Asset()
	if err != nil {
		return nil, err
	}
	opts, err := cfg.Options(svg)
	if err != nil {
		return nil, err
	}
	return indicator.NewComposer(svg, opts), nil
}
