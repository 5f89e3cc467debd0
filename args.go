package main

import (
	"fmt"
	"image"
	"strconv"
	"strings"

	"github.com/photonicat/svglock/internal/indicator"
	"github.com/photonicat/svglock/internal/present"
)

func (c canvasFlags) canvas() indicator.Canvas {
	return indicator.Canvas{Width: c.width, Height: c.height, HeightMM: c.heightMM}
}

// parseDisplays reads "x,y,w,h;x,y,w,h".
func parseDisplays(s string) ([]image.Rectangle, error) {
	var out []image.Rectangle
	for _, part := range strings.Split(s, ";") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		fields := strings.Split(part, ",")
		if len(fields) != 4 {
			return nil, fmt.Errorf("display %q: want x,y,w,h", part)
		}
		var v [4]int
		for i, f := range fields {
			n, err := strconv.Atoi(strings.TrimSpace(f))
			if err != nil {
				return nil, fmt.Errorf("display %q: %w", part, err)
			}
			v[i] = n
		}
		if v[2] <= 0 || v[3] <= 0 {
			return nil, fmt.Errorf("display %q: empty rectangle", part)
		}
		out = append(out, image.Rect(v[0], v[1], v[0]+v[2], v[1]+v[3]))
	}
	return out, nil
}

func parseEvents(s string) ([]present.Event, error) {
	var out []present.Event
	for _, name := range strings.Split(s, ",") {
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}
		ev, err := present.ParseEvent(name)
		if err != nil {
			return nil, err
		}
		out = append(out, ev)
	}
	return out, nil
}
