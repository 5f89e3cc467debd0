package main

import (
	"flag"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/jezek/xgb/xproto"

	"github.com/photonicat/svglock/internal/config"
	"github.com/photonicat/svglock/internal/indicator"
	"github.com/photonicat/svglock/internal/present"
)

func TestParseDisplays(t *testing.T) {
	tests := []struct {
		in      string
		want    []image.Rectangle
		wantErr bool
	}{
		{"", nil, false},
		{"100,50,800,600", []image.Rectangle{image.Rect(100, 50, 900, 650)}, false},
		{"0,0,1920,1080; 1920,0,1280,1024", []image.Rectangle{image.Rect(0, 0, 1920, 1080), image.Rect(1920, 0, 3200, 1024)}, false},
		{"0,0,10", nil, true},
		{"0,0,a,10", nil, true},
		{"0,0,0,10", nil, true},
	}
	for _, tt := range tests {
		got, err := parseDisplays(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("parseDisplays(%q) error = %v; wantErr %v", tt.in, err, tt.wantErr)
			continue
		}
		if !reflect.DeepEqual(got, tt.want) {
			t.Errorf("parseDisplays(%q) = %v; want %v", tt.in, got, tt.want)
		}
	}
}

func TestParseEvents(t *testing.T) {
	got, err := parseEvents("key, key,backspace,")
	if err != nil {
		t.Fatalf("parseEvents: %v", err)
	}
	want := []present.Event{present.EventKey, present.EventKey, present.EventBackspace}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("parseEvents = %v; want %v", got, want)
	}
	if _, err := parseEvents("key,enter"); err == nil {
		t.Error("unknown event accepted")
	}
}

func TestKeyEvent(t *testing.T) {
	typed := func(n int) indicator.State { return indicator.State{InputLen: n} }
	verifying := indicator.State{InputLen: 2, Auth: indicator.AuthVerifying}
	tests := []struct {
		name     string
		sym      xproto.Keysym
		known    bool
		st       indicator.State
		want     present.Event
		ok, quit bool
	}{
		{"letter", 0x61, false, typed(0), present.EventKey, true, false},
		{"backspace", 0xff08, true, typed(2), present.EventBackspace, true, false},
		{"escape with input", 0xff1b, true, typed(2), present.EventEscape, true, false},
		{"escape on empty buffer", 0xff1b, true, typed(0), 0, false, true},
		{"return with input", 0xff0d, true, typed(1), present.EventVerify, true, false},
		{"return on empty buffer", 0xff0d, true, typed(0), 0, false, false},
		{"return while verifying", 0xff0d, true, verifying, 0, false, false},
		{"keypad enter", 0xff8d, true, typed(3), present.EventVerify, true, false},
		{"shift", 0xffe1, true, typed(0), 0, false, false},
		{"control", 0xffe3, true, typed(1), 0, false, false},
		{"caps lock", 0xffe5, true, typed(0), 0, false, false},
		{"alt", 0xffe9, true, typed(0), 0, false, false},
		{"super", 0xffeb, true, typed(0), 0, false, false},
		{"mode switch", 0xff7e, true, typed(0), 0, false, false},
		{"num lock", 0xff7f, true, typed(0), 0, false, false},
		{"altgr", 0xfe03, true, typed(0), 0, false, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ev, ok, quit := keyEvent(tt.sym, tt.known, tt.st)
			if ok != tt.ok || quit != tt.quit || (ok && ev != tt.want) {
				t.Errorf("keyEvent = %v, %v, %v; want %v, %v, %v", ev, ok, quit, tt.want, tt.ok, tt.quit)
			}
		})
	}
}

func TestModifiersDoNotType(t *testing.T) {
	var st indicator.State
	for _, sym := range lookupKeysyms() {
		if !isModifier(sym) {
			continue
		}
		if ev, ok, _ := keyEvent(sym, true, st); ok {
			present.Apply(&st, ev)
		}
	}
	if st.InputLen != 0 || st.Indicator != indicator.StateIdle {
		t.Errorf("after modifiers: InputLen=%d Indicator=%v; want 0 and IDLE", st.InputLen, st.Indicator)
	}
}

func TestExecRender(t *testing.T) {
	var cfg config.Config
	fs := flag.NewFlagSet("test", flag.ContinueOnError)
	cfg.Register(fs)
	if err := fs.Parse([]string{"-sequential"}); err != nil {
		t.Fatal(err)
	}
	out := filepath.Join(t.TempDir(), "frame.png")
	cf := canvasFlags{width: 600, height: 300, displays: "0,0,300,300;300,0,300,300"}

	if err := execRender(&cfg, cf, "key,key,backspace", out); err != nil {
		t.Fatalf("execRender: %v", err)
	}
	f, err := os.Open(out)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	img, err := png.Decode(f)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if img.Bounds() != image.Rect(0, 0, 600, 300) {
		t.Errorf("bounds = %v", img.Bounds())
	}
	white := func(x, y int) bool {
		r, g, b, _ := img.At(x, y).RGBA()
		return r == 0xffff && g == 0xffff && b == 0xffff
	}
	if !white(0, 0) {
		t.Errorf("corner pixel = %v; want the white fill", img.At(0, 0))
	}
	for _, x := range []int{150, 450} {
		if white(x, 150) {
			t.Errorf("no indicator drawn at (%d, 150)", x)
		}
	}
}

func TestExecRenderErrors(t *testing.T) {
	var cfg config.Config
	fs := flag.NewFlagSet("test", flag.ContinueOnError)
	cfg.Register(fs)
	fs.Parse(nil)
	out := filepath.Join(t.TempDir(), "frame.png")

	if err := execRender(&cfg, canvasFlags{width: 10, height: 10, displays: "1,2"}, "key", out); err == nil {
		t.Error("bad displays accepted")
	}
	if err := execRender(&cfg, canvasFlags{width: 10, height: 10}, "jump", out); err == nil {
		t.Error("bad event accepted")
	}
	if err := execRender(&cfg, canvasFlags{width: 0, height: 10}, "key", out); err == nil {
		t.Error("empty canvas accepted")
	}
}
