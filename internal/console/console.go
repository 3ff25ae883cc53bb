package console

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/chzyer/readline"

	"github.com/joyterm/joyterm/pad"
)

// Console runs the interactive command loop over a controller session.
type Console struct {
	rl   *readline.Instance
	reg  *Registry
	sess *Session
}

// New creates the console and wires itself in as the session's input source
// and output sink.
func New(sess *Session, reg *Registry) (*Console, error) {
	rl, err := readline.NewEx(&readline.Config{
		Prompt:          "cmd >> ",
		InterruptPrompt: "^C",
		EOFPrompt:       "exit",
	})
	if err != nil {
		return nil, fmt.Errorf("create readline: %w", err)
	}

	c := &Console{rl: rl, reg: reg, sess: sess}
	sess.Input = c
	sess.Out = rl.Stdout()
	return c, nil
}

// Pending prints the prompt and reads one line in the background. The
// returned signal completes when the user hits enter; a failed read (EOF,
// interrupt) completes it with that error so callers can propagate it.
func (c *Console) Pending(prompt string) pad.CancelSignal {
	p := newPendingInput()
	fmt.Fprintln(c.rl.Stdout(), prompt)
	go func() {
		_, err := c.rl.Readline()
		if errors.Is(err, readline.ErrInterrupt) {
			err = fmt.Errorf("interrupted")
		}
		p.complete(err)
	}()
	return p
}

// Run reads and dispatches commands until exit or EOF. Handler errors are
// reported to the user and never tear down the session.
func (c *Console) Run(ctx context.Context) error {
	defer c.rl.Close()

	fmt.Fprintln(c.rl.Stdout(), `Type "help" for a list of commands.`)

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		line, err := c.rl.Readline()
		if err != nil {
			if errors.Is(err, readline.ErrInterrupt) {
				continue
			}
			if errors.Is(err, io.EOF) {
				return nil
			}
			return err
		}

		fields := strings.Fields(strings.TrimSpace(line))
		if len(fields) == 0 {
			continue
		}
		name, args := fields[0], fields[1:]

		switch name {
		case "help":
			c.printHelp()
			continue
		case "exit", "quit":
			return nil
		}

		cmd, ok := c.reg.Lookup(name)
		if !ok {
			fmt.Fprintf(c.rl.Stdout(), "command %s not found, call help for a list of commands\n", name)
			continue
		}

		if err := cmd.Run(ctx, c.sess, args...); err != nil {
			var ve *ValidationError
			if errors.As(err, &ve) {
				fmt.Fprintln(c.rl.Stdout(), ve.Detail)
				continue
			}
			c.sess.Logger.Error("command failed", "command", name, "error", err)
		}
	}
}

func (c *Console) printHelp() {
	out := c.rl.Stdout()
	fmt.Fprintln(out, "Commands:")
	for _, cmd := range c.reg.Commands() {
		help := cmd.Help
		if help == "" {
			help = cmd.Name
		}
		fmt.Fprintln(out, help)
	}
	fmt.Fprintln(out, "help - Prints this help text.")
	fmt.Fprintln(out, "exit - Closes the console.")
}
