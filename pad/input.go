package pad

import (
	"context"
	"time"
)

// DefaultPushInterval is how long a pushed button stays down.
const DefaultPushInterval = 100 * time.Millisecond

// Press flips the given buttons on and transmits the new state. Presses are
// not balanced here: pressing an already-pressed button flips its bit back
// off, exactly like the paired release would.
func Press(st *ControllerState, buttons ...Button) error {
	for _, b := range buttons {
		if err := st.Buttons.Flip(b); err != nil {
			return err
		}
	}
	return st.Send()
}

// Release flips the given buttons off and transmits the new state.
func Release(st *ControllerState, buttons ...Button) error {
	for _, b := range buttons {
		if err := st.Buttons.Flip(b); err != nil {
			return err
		}
	}
	return st.Send()
}

// Push taps the given buttons: press, hold for DefaultPushInterval, release.
func Push(ctx context.Context, st *ControllerState, buttons ...Button) error {
	return PushFor(ctx, st, DefaultPushInterval, buttons...)
}

// PushFor taps the given buttons, holding them down for d.
func PushFor(ctx context.Context, st *ControllerState, d time.Duration, buttons ...Button) error {
	if err := Press(st, buttons...); err != nil {
		return err
	}
	if err := sleep(ctx, d); err != nil {
		return err
	}
	return Release(st, buttons...)
}

// sleep pauses for d unless ctx is cancelled first.
func sleep(ctx context.Context, d time.Duration) error {
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
