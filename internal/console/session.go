package console

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/joyterm/joyterm/bridge"
	"github.com/joyterm/joyterm/pad"
)

// InputSource supplies pending user-input signals. The readline console
// implements it; tests substitute pre-completed signals.
type InputSource interface {
	// Pending prints the prompt and returns a signal that completes when
	// the user hits enter. A failing read completes the signal with its
	// error.
	Pending(prompt string) pad.CancelSignal
}

// Session is the live context handlers operate on.
type Session struct {
	State        *pad.ControllerState
	Client       *bridge.Client
	ControllerID string
	Input        InputSource
	Logger       *slog.Logger

	// Out receives user-facing prints; defaults to stdout.
	Out io.Writer
}

func (s *Session) Printf(format string, args ...any) {
	w := s.Out
	if w == nil {
		w = os.Stdout
	}
	fmt.Fprintf(w, format, args...)
}

// EnsureValidButton fails with a ValidationError naming the offending button
// and the controller variant if any given button is not available. It never
// mutates state.
func EnsureValidButton(st *pad.ControllerState, buttons ...pad.Button) error {
	for _, b := range buttons {
		if !st.HasButton(b) {
			return validationf("button %q does not exist on %s", b, st.Variant())
		}
	}
	return nil
}
