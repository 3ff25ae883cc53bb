package console

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/joyterm/joyterm/pad"
)

// RegisterControllerCommands populates the registry with the button commands.
// The deprecated amiibo entry is registered last so it replaces nothing and
// demonstrates the retirement path explicitly.
func RegisterControllerCommands(reg *Registry) {
	reg.Register(Command{
		Name: "click",
		Help: "click <buttons...> - Taps the given buttons once.",
		Run:  cmdClick,
	})
	reg.Register(Command{
		Name: "hold",
		Help: "hold [duration] <buttons...> - Presses and holds buttons; releases after duration if given.",
		Run:  cmdHold,
	})
	reg.Register(Command{
		Name: "release",
		Help: "release <buttons...> - Releases the given buttons.",
		Run:  cmdRelease,
	})
	reg.Register(Command{
		Name: "mash",
		Help: "mash <button> <interval> [hold <duration>] - Presses a button every interval seconds until enter.",
		Run:  cmdMash,
	})
	reg.Register(Command{
		Name: "cycle",
		Help: "cycle - Pushes every available button consecutively until enter.",
		Run:  cmdCycle,
	})
	reg.Register(Command{
		Name: "nfc",
		Help: "nfc <file>|remove - Sets or removes the controller's nfc content.",
		Run:  cmdNFC,
	})
	reg.Register(Command{
		Name: "pause",
		Help: "pause - Pauses the bridge's regular input report push.",
		Run:  cmdPause,
	})
	reg.Register(Command{
		Name: "unpause",
		Help: "unpause - Resumes the bridge's regular input report push.",
		Run:  cmdUnpause,
	})
	reg.Register(Command{
		Name: "amiibo",
		Help: "amiibo - Removed.",
		Run:  Deprecated(`Command was removed - use "nfc" instead!`),
	})
}

func toButtons(args []string) []pad.Button {
	out := make([]pad.Button, len(args))
	for i, a := range args {
		out[i] = pad.Button(a)
	}
	return out
}

// parseSeconds parses a float second count the way the original CLI did: any
// parseable value is used as-is.
func parseSeconds(s string) (time.Duration, error) {
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, err
	}
	return time.Duration(f * float64(time.Second)), nil
}

func sleepCtx(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-t.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func cmdClick(ctx context.Context, s *Session, args ...string) error {
	if len(args) == 0 {
		return validationf(`"click" command requires a button!`)
	}
	buttons := toButtons(args)
	if err := s.State.Connect(ctx); err != nil {
		return err
	}
	if err := EnsureValidButton(s.State, buttons...); err != nil {
		return err
	}
	return pad.Push(ctx, s.State, buttons...)
}

func cmdHold(ctx context.Context, s *Session, args ...string) error {
	if len(args) == 0 {
		return validationf(`"hold" command requires a button!`)
	}

	// A leading float is an automatic release duration.
	if dur, err := parseSeconds(args[0]); err == nil {
		buttons := toButtons(args[1:])
		if err := EnsureValidButton(s.State, buttons...); err != nil {
			return err
		}
		if err := s.State.Connect(ctx); err != nil {
			return err
		}
		if err := pad.Press(s.State, buttons...); err != nil {
			return err
		}
		s.Logger.Info("holding buttons", "buttons", args[1:], "duration", dur)
		if err := sleepCtx(ctx, dur); err != nil {
			return err
		}
		if err := pad.Release(s.State, buttons...); err != nil {
			return err
		}
		s.Logger.Info("released buttons", "buttons", args[1:], "held", dur)
		return nil
	}

	buttons := toButtons(args)
	if err := EnsureValidButton(s.State, buttons...); err != nil {
		return err
	}
	if err := s.State.Connect(ctx); err != nil {
		return err
	}
	if err := pad.Press(s.State, buttons...); err != nil {
		return err
	}
	s.Logger.Info("holding buttons until released manually", "buttons", args)
	return nil
}

func cmdRelease(ctx context.Context, s *Session, args ...string) error {
	if len(args) == 0 {
		return validationf(`"release" command requires a button!`)
	}
	buttons := toButtons(args)
	if err := EnsureValidButton(s.State, buttons...); err != nil {
		return err
	}
	if err := s.State.Connect(ctx); err != nil {
		return err
	}
	return pad.Release(s.State, buttons...)
}

func cmdMash(ctx context.Context, s *Session, args ...string) error {
	if len(args) < 2 {
		return validationf(`"mash" command requires a button and interval as arguments!`)
	}

	var button, interval, hold, holdDur string
	switch len(args) {
	case 2:
		button, interval = args[0], args[1]
	case 4:
		button, interval, hold, holdDur = args[0], args[1], args[2], args[3]
	default:
		return validationf("syntax could not be recognized")
	}

	iv, err := parseSeconds(interval)
	if err != nil {
		return validationf("invalid interval %q", interval)
	}
	opts := pad.MashOptions{Interval: iv}
	if hold != "" {
		if hold != "hold" {
			return validationf("hold wasn't specified correctly, please ensure there's no typo")
		}
		hd, err := parseSeconds(holdDur)
		if err != nil {
			return validationf("invalid hold duration %q", holdDur)
		}
		opts.Hold, opts.HoldFor = true, hd
	}

	if err := s.State.Connect(ctx); err != nil {
		return err
	}
	b := pad.Button(button)
	if err := EnsureValidButton(s.State, b); err != nil {
		return err
	}

	var prompt string
	if opts.Hold {
		prompt = fmt.Sprintf("Pressing the %s button every %s seconds and holding for %s seconds each time... Press <enter> to stop.",
			b, interval, holdDur)
	} else {
		prompt = fmt.Sprintf("Pressing the %s button every %s seconds... Press <enter> to stop.", b, interval)
	}
	sig := s.Input.Pending(prompt)

	s.Logger.Info("started the mash pattern", "button", b, "interval", iv)
	res, err := pad.Mash(ctx, s.State, b, opts, sig)
	if err != nil {
		return err
	}
	if res.Early {
		s.Logger.Info("exited the pattern early",
			"secondsUntilNextPress", res.Remaining.Seconds())
	}
	s.Logger.Info("mash pattern finished",
		"presses", res.Presses, "elapsedSeconds", res.Elapsed.Seconds())
	return nil
}

func cmdCycle(ctx context.Context, s *Session, args ...string) error {
	if err := s.State.Connect(ctx); err != nil {
		return err
	}

	var buttons []pad.Button
	for _, b := range s.State.AvailableButtons() {
		if b == pad.ButtonHome || b == pad.ButtonCapture {
			continue
		}
		buttons = append(buttons, b)
	}

	sig := s.Input.Pending("Pressing all buttons... Press <enter> to stop.")
	for {
		for _, b := range buttons {
			select {
			case <-sig.Done():
				return sig.Err()
			default:
			}
			if err := pad.Push(ctx, s.State, b); err != nil {
				return err
			}
			if err := sleepCtx(ctx, 100*time.Millisecond); err != nil {
				return err
			}
		}
	}
}

func cmdNFC(ctx context.Context, s *Session, args ...string) error {
	if s.State.Variant() == pad.JoyConL {
		return validationf("NFC content cannot be set for JOYCON_L")
	}
	if len(args) == 0 {
		return validationf(`"nfc" command requires a file path to an nfc dump or "remove" as argument!`)
	}
	if args[0] == "remove" {
		if err := s.Client.SetNFC(ctx, s.ControllerID, nil); err != nil {
			return err
		}
		s.State.SetNFC(nil)
		s.Printf("Removed nfc content.\n")
		return nil
	}

	data, err := pad.LoadAmiibo(args[0])
	if err != nil {
		return validationf("%v", err)
	}
	if err := s.Client.SetNFC(ctx, s.ControllerID, data); err != nil {
		return err
	}
	s.State.SetNFC(data)
	s.Printf("Added nfc content.\n")
	return nil
}

func cmdPause(ctx context.Context, s *Session, args ...string) error {
	return s.Client.Pause(ctx, s.ControllerID)
}

func cmdUnpause(ctx context.Context, s *Session, args ...string) error {
	return s.Client.Resume(ctx, s.ControllerID)
}
