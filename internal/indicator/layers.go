package indicator

import "fmt"

// Layer is the id of a drawable element in the indicator SVG.
type Layer string

const (
	LayerBackground Layer = "bg"
	LayerVerify     Layer = "verify"
	LayerFail       Layer = "fail"
	LayerIdle       Layer = "idle"
	LayerBackspace  Layer = "backspace"
	LayerForeground Layer = "fg"
)

// AnimLayer returns the id of the numbered highlight layer i ("anim00", "anim01", ...).
func AnimLayer(i int) Layer {
	return Layer(fmt.Sprintf("anim%02d", i))
}

// Rand is the source used to pick highlight layers in random order.
// *math/rand.Rand satisfies it.
type Rand interface {
	Intn(n int) int
}

// statusLayer maps the credential check state to its ring color.
func statusLayer(auth AuthState) Layer {
	switch auth {
	case AuthVerifying:
		return LayerVerify
	case AuthWrong:
		return LayerFail
	case AuthIdle:
		return LayerIdle
	default:
		return LayerIdle
	}
}

// hidesStatus is the remove-background guard: while a keystroke is being
// highlighted the steady ring is left out.
func hidesStatus(st *State, opts Options) bool {
	return opts.RemoveBackground && st.Active()
}

// planLayers returns the layers to paint, bottom first. It advances the
// animation counter in st as a side effect on key and backspace frames.
func planLayers(st *State, opts Options, rnd Rand) []Layer {
	plan := []Layer{LayerBackground}
	if !hidesStatus(st, opts) {
		plan = append(plan, statusLayer(st.Auth))
	}

	switch st.Indicator {
	case StateKeyActive:
		if frame, ok := nextFrame(st, opts, rnd); ok {
			plan = append(plan, AnimLayer(frame))
		}
	case StateBackspaceActive:
		advanceFrame(st, opts.AnimLayers)
		plan = append(plan, LayerBackspace)
	case StateIdle, StateInputStarted:
	}

	return append(plan, LayerForeground)
}

// nextFrame picks the highlight layer for a key press. ok is false when the
// asset has no animation layers.
func nextFrame(st *State, opts Options, rnd Rand) (frame int, ok bool) {
	n := opts.AnimLayers
	if n <= 0 {
		st.Frame = 0
		return 0, false
	}
	if opts.Sequential || rnd == nil {
		frame = wrapFrame(st.Frame, n)
	} else {
		frame = rnd.Intn(n)
	}
	st.Frame = (frame + 1) % n
	return frame, true
}

// advanceFrame moves the counter on by one without drawing a numbered layer.
func advanceFrame(st *State, n int) {
	if n <= 0 {
		st.Frame = 0
		return
	}
	st.Frame = (wrapFrame(st.Frame, n) + 1) % n
}

func wrapFrame(frame, n int) int {
	frame %= n
	if frame < 0 {
		frame += n
	}
	return frame
}
