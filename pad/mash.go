package pad

import (
	"context"
	"time"
)

// CancelSignal is the single pending user interrupt driving a mash session.
// Done is closed when the user requested a stop; Err reports the outcome of
// the read that completed it (nil for a clean stop). context.Context
// satisfies the interface, which is handy in tests.
type CancelSignal interface {
	Done() <-chan struct{}
	Err() error
}

// MashOptions configure one mash session.
//
// Interval is used as given; no minimum is enforced. Below one second the
// wait degenerates to a single uninterruptible sleep, because cancellation
// is only checked once per elapsed second.
type MashOptions struct {
	Interval time.Duration
	Hold     bool
	HoldFor  time.Duration

	// tick is the cancellation check granularity. Zero means one second.
	tick time.Duration
}

// MashResult reports how a mash session ended.
type MashResult struct {
	// Early is true when the stop arrived mid-interval rather than at a
	// cycle boundary.
	Early bool
	// Remaining is how much of the interval was left when the stop was seen.
	Remaining time.Duration
	// Presses counts completed press cycles.
	Presses int
	// Elapsed is the accounted hold and wait time.
	Elapsed time.Duration
}

// Mash presses button repeatedly every opts.Interval until sig completes.
// With opts.Hold set, each cycle holds the button for opts.HoldFor and that
// time counts toward Elapsed; otherwise each cycle is a plain push.
//
// The interval is waited out in increments of at most one second, checking
// sig after each full increment; a sub-second tail is slept in one step with
// no check. The loop never terminates on its own. Any error from the
// underlying primitives aborts the session with no result; an error carried
// by sig is returned alongside the result.
func Mash(ctx context.Context, st *ControllerState, button Button, opts MashOptions, sig CancelSignal) (MashResult, error) {
	tick := opts.tick
	if tick <= 0 {
		tick = time.Second
	}

	presses := 0
	var elapsed time.Duration
	for {
		select {
		case <-sig.Done():
			// Stop seen at a cycle boundary.
			return MashResult{Presses: presses, Elapsed: elapsed}, sig.Err()
		default:
		}

		if opts.Hold {
			if err := Press(st, button); err != nil {
				return MashResult{}, err
			}
			if err := sleep(ctx, opts.HoldFor); err != nil {
				return MashResult{}, err
			}
			if err := Release(st, button); err != nil {
				return MashResult{}, err
			}
			elapsed += opts.HoldFor
		} else {
			if err := Push(ctx, st, button); err != nil {
				return MashResult{}, err
			}
		}
		presses++

		var waited time.Duration
		for waited < opts.Interval {
			if remain := opts.Interval - waited; remain < tick {
				// Sub-second tail: sleep it out in one step, no check.
				if err := sleep(ctx, remain); err != nil {
					return MashResult{}, err
				}
				elapsed += remain
				break
			}
			if err := sleep(ctx, tick); err != nil {
				return MashResult{}, err
			}
			select {
			case <-sig.Done():
				elapsed += waited
				return MashResult{
					Early:     true,
					Remaining: opts.Interval - waited,
					Presses:   presses,
					Elapsed:   elapsed,
				}, sig.Err()
			default:
			}
			waited += tick
		}
		elapsed += opts.Interval
	}
}
