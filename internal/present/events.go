package present

import (
	"errors"
	"fmt"

	"github.com/photonicat/svglock/internal/indicator"
)

var ErrUnknownEvent = errors.New("unknown event")

// Event is something the lock screen reacts to.
type Event int

const (
	EventKey Event = iota
	EventBackspace
	EventEscape
	EventVerify
	EventWrong
	EventReset
	EventTimeout
)

var eventNames = map[Event]string{
	EventKey:       "key",
	EventBackspace: "backspace",
	EventEscape:    "escape",
	EventVerify:    "verify",
	EventWrong:     "wrong",
	EventReset:     "reset",
	EventTimeout:   "timeout",
}

func (e Event) String() string {
	if name, ok := eventNames[e]; ok {
		return name
	}
	return fmt.Sprintf("Event(%d)", int(e))
}

func ParseEvent(name string) (Event, error) {
	for e, n := range eventNames {
		if n == name {
			return e, nil
		}
	}
	return 0, fmt.Errorf("%q: %w", name, ErrUnknownEvent)
}

// Apply mutates st for ev without drawing anything.
//
// A backspace on an empty buffer has nothing to delete and hides the
// indicator. Verify and wrong keep the status ring on screen even when the
// buffer is empty; a failed attempt clears the buffer.
func Apply(st *indicator.State, ev Event) error {
	switch ev {
	case EventKey:
		st.InputLen++
		st.KeyPressed()
	case EventBackspace:
		if st.InputLen == 0 {
			st.Indicator = indicator.StateIdle
			return nil
		}
		st.InputLen--
		st.BackspacePressed()
	case EventEscape:
		st.OnInputChanged(0)
	case EventVerify:
		st.Auth = indicator.AuthVerifying
		st.Indicator = indicator.StateInputStarted
	case EventWrong:
		st.Auth = indicator.AuthWrong
		st.InputLen = 0
		st.Indicator = indicator.StateInputStarted
	case EventReset:
		st.Auth = indicator.AuthIdle
		st.OnInputChanged(st.InputLen)
	case EventTimeout:
		if st.InputLen == 0 {
			st.Indicator = indicator.StateIdle
		} else {
			st.Indicator = indicator.StateInputStarted
		}
	default:
		return fmt.Errorf("%v: %w", ev, ErrUnknownEvent)
	}
	return nil
}

// Handle applies ev to the presenter's state and redraws.
func (p *Presenter) Handle(ev Event) error {
	if ev == EventTimeout {
		return p.ClearIndicator()
	}
	if err := Apply(p.State, ev); err != nil {
		return err
	}
	return p.Redraw()
}

// HandleName is Handle for event names, as posted by the preview page.
func (p *Presenter) HandleName(name string) error {
	ev, err := ParseEvent(name)
	if err != nil {
		return err
	}
	return p.Handle(ev)
}

// Snapshot is the JSON view of the presenter's state.
type Snapshot struct {
	Indicator  string            `json:"indicator"`
	Auth       string            `json:"auth"`
	InputLen   int               `json:"input_len"`
	Frame      int               `json:"frame"`
	Layers     []indicator.Layer `json:"layers"`
	Placements [][4]int          `json:"placements"`
}

func (p *Presenter) Snapshot() Snapshot {
	s := Snapshot{
		Indicator: p.State.Indicator.String(),
		Auth:      p.State.Auth.String(),
		InputLen:  p.State.InputLen,
		Frame:     p.State.Frame,
	}
	if p.last != nil {
		s.Layers = p.last.Layers
		for _, r := range p.last.Placements {
			s.Placements = append(s.Placements, [4]int{r.Min.X, r.Min.Y, r.Dx(), r.Dy()})
		}
	}
	return s
}
