package main

import (
	"context"
	"log"
	"time"

	"github.com/jezek/xgb"
	"github.com/jezek/xgb/xproto"

	"github.com/photonicat/svglock/internal/config"
	"github.com/photonicat/svglock/internal/indicator"
	"github.com/photonicat/svglock/internal/present"
	"github.com/photonicat/svglock/internal/surface"
)

const (
	keysymBackSpace  xproto.Keysym = 0xff08
	keysymReturn     xproto.Keysym = 0xff0d
	keysymEscape     xproto.Keysym = 0xff1b
	keysymKPEnter    xproto.Keysym = 0xff8d
	keysymScrollLock xproto.Keysym = 0xff14
	keysymModeSwitch xproto.Keysym = 0xff7e
	keysymNumLock    xproto.Keysym = 0xff7f
	keysymLevel3     xproto.Keysym = 0xfe03 // ISO_Level3_Shift
	keysymShiftL     xproto.Keysym = 0xffe1
	keysymHyperR     xproto.Keysym = 0xffee
)

// lookupKeysyms are the keysyms whose keycodes the event loop resolves.
func lookupKeysyms() []xproto.Keysym {
	syms := []xproto.Keysym{
		keysymBackSpace, keysymReturn, keysymEscape, keysymKPEnter,
		keysymScrollLock, keysymModeSwitch, keysymNumLock, keysymLevel3,
	}
	for s := keysymShiftL; s <= keysymHyperR; s++ {
		syms = append(syms, s)
	}
	return syms
}

// isModifier reports keys that type nothing: Shift, Control, Caps Lock,
// Alt, Meta, Super, Hyper and the lock and level shift keys.
func isModifier(sym xproto.Keysym) bool {
	switch sym {
	case keysymScrollLock, keysymModeSwitch, keysymNumLock, keysymLevel3:
		return true
	}
	return sym >= keysymShiftL && sym <= keysymHyperR
}

// keyEvent maps a key press to a lock screen event. quit is set for Escape
// on an empty buffer. Modifiers are ignored, as is Return while an attempt
// is being verified.
func keyEvent(sym xproto.Keysym, known bool, st indicator.State) (ev present.Event, ok, quit bool) {
	if !known {
		return present.EventKey, true, false
	}
	if isModifier(sym) {
		return 0, false, false
	}
	switch sym {
	case keysymBackSpace:
		return present.EventBackspace, true, false
	case keysymEscape:
		if st.InputLen == 0 {
			return 0, false, true
		}
		return present.EventEscape, true, false
	case keysymReturn, keysymKPEnter:
		if st.InputLen == 0 || st.Auth == indicator.AuthVerifying {
			return 0, false, false
		}
		return present.EventVerify, true, false
	}
	return present.EventKey, true, false
}

func execX11(ctx context.Context, cfg *config.Config, display string, verifyDelay time.Duration) error {
	x, err := surface.DialX11(display)
	if err != nil {
		return err
	}
	defer x.Close()

	composer, err := newComposer(cfg)
	if err != nil {
		return err
	}
	keys, err := x.Keycodes(lookupKeysyms()...)
	if err != nil {
		return err
	}
	if err := x.CreateWindow(); err != nil {
		return err
	}

	width, height, heightMM := x.Size()
	p := present.New(composer, x, nil, indicator.Canvas{Width: width, Height: height, HeightMM: heightMM})
	p.Debug = cfg.Debug
	if err := p.LoadDisplays(x); err != nil {
		log.Printf("Error reading displays: %v", err)
	}
	if err := p.Redraw(); err != nil {
		return err
	}
	defer p.Close()

	events := make(chan xgb.Event)
	errc := make(chan error, 1)
	go func() {
		for {
			ev, err := x.NextEvent()
			if err != nil {
				errc <- err
				return
			}
			select {
			case events <- ev:
			case <-ctx.Done():
				return
			}
		}
	}()

	clearTimer := time.NewTimer(time.Hour)
	clearTimer.Stop()
	auth := make(chan present.Event, 2)
	// Results arriving while the queue is full or after the loop ended are
	// dropped.
	sendAuth := func(ev present.Event) {
		select {
		case auth <- ev:
		default:
		}
	}
	dispatch := func(ev present.Event) {
		if err := p.Handle(ev); err != nil {
			log.Printf("Error handling %v: %v", ev, err)
		}
	}

	for {
		select {
		case <-ctx.Done():
			return nil
		case err := <-errc:
			return err
		case <-clearTimer.C:
			dispatch(present.EventTimeout)
		case ev := <-auth:
			dispatch(ev)
		case xev := <-events:
			switch e := xev.(type) {
			case xproto.KeyPressEvent:
				sym, known := keys[e.Detail]
				ev, ok, quit := keyEvent(sym, known, *p.State)
				if quit {
					return nil
				}
				if !ok {
					continue
				}
				dispatch(ev)
				switch ev {
				case present.EventKey, present.EventBackspace:
					clearTimer.Reset(cfg.ClearAfter)
				case present.EventVerify:
					// No credentials are checked; every attempt fails.
					time.AfterFunc(verifyDelay, func() { sendAuth(present.EventWrong) })
					time.AfterFunc(3*verifyDelay, func() { sendAuth(present.EventReset) })
				}
			case xproto.ConfigureNotifyEvent:
				p.SetGeometry(indicator.Canvas{Width: int(e.Width), Height: int(e.Height), HeightMM: heightMM}, p.Displays)
				if err := p.LoadDisplays(x); err != nil {
					log.Printf("Error reading displays: %v", err)
				}
				if err := p.Redraw(); err != nil {
					log.Printf("Error redrawing: %v", err)
				}
			}
		}
	}
}
