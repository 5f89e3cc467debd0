package indicator

// IndicatorState is what the input side last told us about the password buffer.
type IndicatorState int

const (
	// StateIdle means nothing has been typed yet; the indicator is hidden.
	StateIdle IndicatorState = iota
	// StateInputStarted means the buffer is non-empty but no key is being highlighted.
	StateInputStarted
	// StateKeyActive means a character key was just pressed.
	StateKeyActive
	// StateBackspaceActive means backspace was just pressed.
	StateBackspaceActive
)

func (s IndicatorState) String() string {
	switch s {
	case StateIdle:
		return "IDLE"
	case StateInputStarted:
		return "INPUT_STARTED"
	case StateKeyActive:
		return "KEY_ACTIVE"
	case StateBackspaceActive:
		return "BACKSPACE_ACTIVE"
	default:
		return "UNKNOWN"
	}
}

// AuthState is owned by the credential checker; the composer only reads it.
type AuthState int

const (
	AuthIdle AuthState = iota
	AuthVerifying
	AuthWrong
)

func (s AuthState) String() string {
	switch s {
	case AuthIdle:
		return "IDLE"
	case AuthVerifying:
		return "VERIFYING"
	case AuthWrong:
		return "WRONG"
	default:
		return "UNKNOWN"
	}
}

// State is everything that decides what a frame looks like. It is owned by
// whoever drives the event loop and is handed to the composer by pointer.
type State struct {
	Indicator IndicatorState
	Auth      AuthState
	InputLen  int
	// Frame is the animation layer the next sequential key press shows.
	Frame int
}

// OnInputChanged records the new buffer length and drops any key highlight.
func (s *State) OnInputChanged(length int) {
	s.InputLen = length
	if length == 0 {
		s.Indicator = StateIdle
	} else {
		s.Indicator = StateInputStarted
	}
}

func (s *State) KeyPressed() { s.Indicator = StateKeyActive }

func (s *State) BackspacePressed() { s.Indicator = StateBackspaceActive }

// Active reports whether a keystroke highlight should be drawn this frame.
func (s *State) Active() bool {
	return s.Indicator == StateKeyActive || s.Indicator == StateBackspaceActive
}

// Visible reports whether the indicator has anything to show.
func (s *State) Visible() bool {
	return s.Indicator != StateIdle
}
