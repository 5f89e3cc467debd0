package config

import (
	"errors"
	"flag"
	"image/color"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/peterbourgon/ff/v3"

	"github.com/photonicat/svglock/internal/asset"
	"github.com/photonicat/svglock/internal/indicator"
)

func parse(t *testing.T, args []string) *Config {
	t.Helper()
	var c Config
	fs := flag.NewFlagSet("test", flag.ContinueOnError)
	c.Register(fs)
	if err := ff.Parse(fs, args, ParseOptions()...); err != nil {
		t.Fatalf("parse %v: %v", args, err)
	}
	return &c
}

func TestDefaults(t *testing.T) {
	c := parse(t, nil)
	if !c.Indicator || c.Color != "ffffff" || c.AnimLayers != AutoAnimLayers || c.ClearAfter != time.Second {
		t.Errorf("defaults = %+v", c)
	}
}

func TestSources(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "svglock.json")
	data := `{"color": "#102030", "sequential": true, "anim-layers": 5}`
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatal(err)
	}
	t.Setenv("SVGLOCK_TILE", "true")

	c := parse(t, []string{"-config", path, "-anim-layers", "3"})
	if c.Color != "#102030" {
		t.Errorf("Color = %q; want value from the config file", c.Color)
	}
	if !c.Sequential {
		t.Error("Sequential not read from the config file")
	}
	if !c.Tile {
		t.Error("Tile not read from SVGLOCK_TILE")
	}
	if c.AnimLayers != 3 {
		t.Errorf("AnimLayers = %d; the flag should win over the file", c.AnimLayers)
	}
}

func TestMissingConfigFile(t *testing.T) {
	c := parse(t, []string{"-config", filepath.Join(t.TempDir(), "none.json"), "-debug"})
	if !c.Debug {
		t.Error("flags after a missing config file were not parsed")
	}
}

func TestOptions(t *testing.T) {
	c := parse(t, []string{"-color", "ff8000", "-remove-background", "-sequential"})
	svg, err := c.Asset()
	if err != nil {
		t.Fatalf("Asset: %v", err)
	}
	opts, err := c.Options(svg)
	if err != nil {
		t.Fatalf("Options: %v", err)
	}
	want := indicator.Options{
		Enabled:          true,
		Color:            color.RGBA{R: 0xff, G: 0x80, B: 0x00, A: 0xff},
		RemoveBackground: true,
		Sequential:       true,
		AnimLayers:       asset.DefaultAnimLayers,
	}
	if opts != want {
		t.Errorf("Options = %+v; want %+v", opts, want)
	}
}

func TestOptionsAnimLayers(t *testing.T) {
	svg, err := asset.Default(3)
	if err != nil {
		t.Fatalf("Default: %v", err)
	}
	tests := []struct {
		name string
		n    int
		svg  *asset.SVG
		want int
	}{
		{"explicit", 5, svg, 5},
		{"detected", AutoAnimLayers, svg, 3},
		{"no asset", AutoAnimLayers, nil, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := &Config{Color: "000000", AnimLayers: tt.n}
			opts, err := c.Options(tt.svg)
			if err != nil {
				t.Fatalf("Options: %v", err)
			}
			if opts.AnimLayers != tt.want {
				t.Errorf("AnimLayers = %d; want %d", opts.AnimLayers, tt.want)
			}
		})
	}
}

func TestOptionsErrors(t *testing.T) {
	c := &Config{Color: "fff"}
	if _, err := c.Options(nil); !errors.Is(err, indicator.ErrInvalidColor) {
		t.Errorf("short color error = %v", err)
	}

	c = &Config{Color: "000000", Image: filepath.Join(t.TempDir(), "missing.png")}
	if _, err := c.Options(nil); err == nil {
		t.Error("missing background image was accepted")
	}

	c = &Config{SVG: filepath.Join(t.TempDir(), "missing.svg")}
	if _, err := c.Asset(); err == nil {
		t.Error("missing indicator SVG was accepted")
	}
}
