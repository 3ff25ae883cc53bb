// Package cmd holds the kong command structs.
package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"golang.org/x/term"

	"github.com/joyterm/joyterm/bridge"
	"github.com/joyterm/joyterm/internal/configpaths"
	"github.com/joyterm/joyterm/internal/console"
	"github.com/joyterm/joyterm/internal/log"
	"github.com/joyterm/joyterm/pad"
)

// Console is the interactive controller console command.
type Console struct {
	Controller string `arg:"" help:"Controller to emulate: JOYCON_L, JOYCON_R or PRO_CONTROLLER"`

	Addr            string        `help:"HID bridge address; empty to discover via mDNS" env:"JOYTERM_BRIDGE_ADDR"`
	DiscoverTimeout time.Duration `help:"mDNS discovery timeout" default:"5s" env:"JOYTERM_DISCOVER_TIMEOUT"`
	Key             string        `help:"Bridge access key (default: read from the key file if present)" env:"JOYTERM_BRIDGE_KEY"`
	PromptKey       bool          `help:"Prompt for the bridge access key" env:"JOYTERM_PROMPT_KEY"`
	Reconnect       string        `help:"Bluetooth address of an already paired console, skips the pairing menu" env:"JOYTERM_RECONNECT"`
	NFC             string        `help:"Amiibo dump to present on connect" type:"existingfile" env:"JOYTERM_NFC"`
	ConnectTimeout  time.Duration `help:"Time to wait for the console to accept the controller" default:"90s" env:"JOYTERM_CONNECT_TIMEOUT"`
}

// Run is called by kong when the console command is executed.
func (c *Console) Run(logger *slog.Logger, capture log.Capture) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return c.StartConsole(ctx, logger, capture)
}

func (c *Console) StartConsole(ctx context.Context, logger *slog.Logger, capture log.Capture) error {
	variant, err := pad.ParseVariant(c.Controller)
	if err != nil {
		return err
	}

	addr := c.Addr
	if addr == "" {
		logger.Info("no bridge address configured, browsing mDNS", "service", bridge.ServiceType)
		discCtx, cancel := context.WithTimeout(ctx, c.DiscoverTimeout)
		addr, err = bridge.Discover(discCtx)
		cancel()
		if err != nil {
			return err
		}
		logger.Info("found bridge", "addr", addr)
	}

	key, err := c.resolveKey(logger)
	if err != nil {
		return err
	}

	cfg := bridge.Config{
		DialTimeout:  3 * time.Second,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 5 * time.Second,
		Key:          key,
	}
	client := bridge.NewWithConfig(addr, &cfg)

	var attach *bridge.AttachResponse
	if c.Reconnect != "" {
		attach, err = client.AttachReconnect(ctx, variant.String(), c.Reconnect)
	} else {
		attach, err = client.Attach(ctx, variant.String())
	}
	if err != nil {
		return err
	}
	logger.Info("attached controller", "type", variant, "controller", attach.ControllerID)

	stream, err := client.OpenStreamCapture(ctx, attach.ControllerID, capture)
	if err != nil {
		_ = client.Detach(ctx, attach.ControllerID)
		return err
	}
	defer func() {
		logger.Info("stopping communication")
		_ = stream.Close()
		_ = client.Detach(context.Background(), attach.ControllerID)
	}()

	state := pad.NewControllerState(variant, stream)

	logger.Info("waiting for the console to accept the controller", "timeout", c.ConnectTimeout)
	connectCtx, cancel := context.WithTimeout(ctx, c.ConnectTimeout)
	err = state.Connect(connectCtx)
	cancel()
	if err != nil {
		return err
	}
	logger.Info("controller connected")

	reg := console.NewRegistry()
	console.RegisterControllerCommands(reg)

	sess := &console.Session{
		State:        state,
		Client:       client,
		ControllerID: attach.ControllerID,
		Logger:       logger,
	}

	ui, err := console.New(sess, reg)
	if err != nil {
		return err
	}

	if c.NFC != "" {
		nfc, ok := reg.Lookup("nfc")
		if !ok {
			return fmt.Errorf("nfc command not registered")
		}
		if err := nfc.Run(ctx, sess, c.NFC); err != nil {
			return err
		}
	}

	return ui.Run(ctx)
}

// resolveKey picks the bridge access key: the flag, then a prompt when
// requested, then the key file. No key means an unauthenticated bridge.
func (c *Console) resolveKey(logger *slog.Logger) (string, error) {
	if c.Key != "" {
		return c.Key, nil
	}
	if c.PromptKey {
		fmt.Fprint(os.Stderr, "Bridge access key: ")
		raw, err := term.ReadPassword(int(os.Stdin.Fd()))
		fmt.Fprintln(os.Stderr)
		if err != nil {
			return "", fmt.Errorf("read key: %w", err)
		}
		return strings.TrimSpace(string(raw)), nil
	}
	if path, err := configpaths.KeyFilePath(); err == nil {
		if raw, err := os.ReadFile(path); err == nil {
			logger.Debug("using bridge key file", "path", path)
			return strings.TrimSpace(string(raw)), nil
		}
	}
	return "", nil
}
