// Package config holds the lock screen settings shared by every command.
package config

import (
	"flag"
	"fmt"
	"log"
	"time"

	"github.com/peterbourgon/ff/v3"

	"github.com/photonicat/svglock/internal/asset"
	"github.com/photonicat/svglock/internal/indicator"
)

// EnvPrefix is prepended to flag names to form environment variables,
// e.g. SVGLOCK_COLOR for -color.
const EnvPrefix = "SVGLOCK"

// AutoAnimLayers asks for the number of anim layers to be counted from the SVG.
const AutoAnimLayers = -1

type Config struct {
	Indicator        bool
	Color            string
	Image            string
	Tile             bool
	RemoveBackground bool
	Sequential       bool
	AnimLayers       int
	SVG              string
	Debug            bool
	// ClearAfter is how long a keystroke highlight stays on screen.
	ClearAfter time.Duration
}

// Register adds the lock screen flags to fs.
func (c *Config) Register(fs *flag.FlagSet) {
	fs.BoolVar(&c.Indicator, "indicator", true, "draw the unlock indicator")
	fs.StringVar(&c.Color, "color", "ffffff", "background color as rrggbb")
	fs.StringVar(&c.Image, "image", "", "background image (png, jpg, gif, bmp, webp or svg)")
	fs.BoolVar(&c.Tile, "tile", false, "tile the background image instead of drawing it once")
	fs.BoolVar(&c.RemoveBackground, "remove-background", false, "hide the status ring while a keystroke is highlighted")
	fs.BoolVar(&c.Sequential, "sequential", false, "cycle highlight layers in order instead of at random")
	fs.IntVar(&c.AnimLayers, "anim-layers", AutoAnimLayers, "number of anim layers in the SVG, -1 to count them")
	fs.StringVar(&c.SVG, "svg", "", "indicator SVG; the built-in ring is used when empty")
	fs.BoolVar(&c.Debug, "debug", false, "outline indicator placements and log every frame")
	fs.DurationVar(&c.ClearAfter, "clear-after", time.Second, "how long a keystroke highlight is shown")
	fs.String("config", "", "JSON config file")
}

// ParseOptions are the ff options every command parses its flags with:
// flags first, then SVGLOCK_* variables, then the -config file.
func ParseOptions() []ff.Option {
	return []ff.Option{
		ff.WithEnvVarPrefix(EnvPrefix),
		ff.WithConfigFileFlag("config"),
		ff.WithConfigFileParser(ff.JSONParser),
		ff.WithAllowMissingConfigFile(true),
	}
}

// Asset loads the indicator SVG, or builds the default one.
func (c *Config) Asset() (*asset.SVG, error) {
	if c.SVG == "" {
		n := c.AnimLayers
		if n < 0 {
			n = asset.DefaultAnimLayers
		}
		return asset.Default(n)
	}
	svg, err := asset.LoadSVG(c.SVG)
	if err != nil {
		return nil, fmt.Errorf("loading indicator %s: %w", c.SVG, err)
	}
	return svg, nil
}

// Options converts the config into composer options. svg is consulted when
// the anim layer count is left to auto-detection.
func (c *Config) Options(svg *asset.SVG) (indicator.Options, error) {
	color, err := indicator.ParseHexColor(c.Color)
	if err != nil {
		return indicator.Options{}, err
	}
	opts := indicator.Options{
		Enabled:          c.Indicator,
		Color:            color,
		Tile:             c.Tile,
		RemoveBackground: c.RemoveBackground,
		Sequential:       c.Sequential,
		AnimLayers:       c.AnimLayers,
		Debug:            c.Debug,
	}
	if opts.AnimLayers < 0 {
		opts.AnimLayers = 0
		if svg != nil {
			opts.AnimLayers = svg.AnimLayerCount()
		}
		if c.Debug {
			log.Printf("Detected %d anim layers", opts.AnimLayers)
		}
	}
	if c.Image != "" {
		img, err := asset.LoadImage(c.Image)
		if err != nil {
			return indicator.Options{}, fmt.Errorf("loading background %s: %w", c.Image, err)
		}
		opts.Image = img
	}
	return opts, nil
}
