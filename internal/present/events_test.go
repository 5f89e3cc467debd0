package present

import (
	"errors"
	"reflect"
	"testing"

	"github.com/photonicat/svglock/internal/indicator"
	"github.com/photonicat/svglock/internal/surface"
)

func TestParseEvent(t *testing.T) {
	for e, name := range eventNames {
		got, err := ParseEvent(name)
		if err != nil || got != e {
			t.Errorf("ParseEvent(%q) = %v, %v; want %v", name, got, err, e)
		}
		if e.String() != name {
			t.Errorf("%d.String() = %q; want %q", int(e), e.String(), name)
		}
	}
	if _, err := ParseEvent("enter"); !errors.Is(err, ErrUnknownEvent) {
		t.Errorf("ParseEvent(enter) error = %v", err)
	}
}

func TestApply(t *testing.T) {
	tests := []struct {
		name   string
		events []Event
		want   indicator.State
	}{
		{"key", []Event{EventKey}, indicator.State{Indicator: indicator.StateKeyActive, InputLen: 1}},
		{"key then backspace", []Event{EventKey, EventKey, EventBackspace},
			indicator.State{Indicator: indicator.StateBackspaceActive, InputLen: 1}},
		{"backspace on empty buffer", []Event{EventBackspace}, indicator.State{Indicator: indicator.StateIdle}},
		{"escape", []Event{EventKey, EventKey, EventEscape}, indicator.State{Indicator: indicator.StateIdle}},
		{"verify", []Event{EventKey, EventVerify},
			indicator.State{Indicator: indicator.StateInputStarted, Auth: indicator.AuthVerifying, InputLen: 1}},
		{"wrong clears buffer", []Event{EventKey, EventVerify, EventWrong},
			indicator.State{Indicator: indicator.StateInputStarted, Auth: indicator.AuthWrong}},
		{"reset after wrong", []Event{EventKey, EventWrong, EventReset},
			indicator.State{Indicator: indicator.StateIdle, Auth: indicator.AuthIdle}},
		{"timeout with input", []Event{EventKey, EventTimeout},
			indicator.State{Indicator: indicator.StateInputStarted, InputLen: 1}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var st indicator.State
			for _, ev := range tt.events {
				if err := Apply(&st, ev); err != nil {
					t.Fatalf("Apply(%v): %v", ev, err)
				}
			}
			if st != tt.want {
				t.Errorf("state = %+v; want %+v", st, tt.want)
			}
		})
	}

	var st indicator.State
	if err := Apply(&st, Event(99)); !errors.Is(err, ErrUnknownEvent) {
		t.Errorf("Apply(99) error = %v", err)
	}
}

func TestHandleAdvancesFrames(t *testing.T) {
	p := newTestPresenter(surface.NewMemory())
	var frames []int
	for i := 0; i < 6; i++ {
		if err := p.HandleName("key"); err != nil {
			t.Fatalf("HandleName(key): %v", err)
		}
		frames = append(frames, p.State.Frame)
	}
	if want := []int{1, 2, 3, 0, 1, 2}; !reflect.DeepEqual(frames, want) {
		t.Errorf("next frames = %v; want %v", frames, want)
	}

	if err := p.Handle(EventTimeout); err != nil {
		t.Fatalf("Handle(timeout): %v", err)
	}
	snap := p.Snapshot()
	if snap.Indicator != "INPUT_STARTED" || snap.InputLen != 6 {
		t.Errorf("snapshot = %+v", snap)
	}
	if len(snap.Placements) != 1 || snap.Placements[0] != [4]int{40, 30, 20, 20} {
		t.Errorf("placements = %v", snap.Placements)
	}

	if err := p.HandleName("enter"); !errors.Is(err, ErrUnknownEvent) {
		t.Errorf("HandleName(enter) error = %v", err)
	}
}
