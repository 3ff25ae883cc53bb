// Package console implements the interactive command loop driving a
// controller session: the command registry, the handlers, and the pending
// user-input signal that cancels timed patterns.
package console

import (
	"context"
	"fmt"
)

// HandlerFunc runs one console command. Handlers take the session explicitly,
// validate their own arguments before mutating anything, and run one at a
// time; the dispatcher never executes two handlers concurrently.
type HandlerFunc func(ctx context.Context, s *Session, args ...string) error

// Command is a registered console command.
type Command struct {
	Name string
	Help string
	Run  HandlerFunc
}

// Registry maps command names (case-sensitive) to handlers.
type Registry struct {
	commands map[string]Command
	order    []string
}

func NewRegistry() *Registry {
	return &Registry{commands: map[string]Command{}}
}

// Register inserts or replaces the entry for cmd.Name. A later registration
// silently wins, which is how a retired command gets swapped for an
// error-reporting stub.
func (r *Registry) Register(cmd Command) {
	if _, exists := r.commands[cmd.Name]; !exists {
		r.order = append(r.order, cmd.Name)
	}
	r.commands[cmd.Name] = cmd
}

// Lookup returns the command registered under name.
func (r *Registry) Lookup(name string) (Command, bool) {
	cmd, ok := r.commands[name]
	return cmd, ok
}

// Commands lists all registered commands in registration order.
func (r *Registry) Commands() []Command {
	out := make([]Command, 0, len(r.order))
	for _, name := range r.order {
		out = append(out, r.commands[name])
	}
	return out
}

// Deprecated returns a handler that only reports the removal message.
func Deprecated(msg string) HandlerFunc {
	return func(ctx context.Context, s *Session, args ...string) error {
		return &ValidationError{Detail: msg}
	}
}

// ValidationError reports a rejected command argument. Nothing was mutated
// when one is returned.
type ValidationError struct {
	Detail string
}

func (e *ValidationError) Error() string { return e.Detail }

func validationf(format string, args ...any) error {
	return &ValidationError{Detail: fmt.Sprintf(format, args...)}
}
