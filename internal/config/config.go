// Package config defines the CLI structure for kong parsing.
package config

import (
	"github.com/joyterm/joyterm/internal/cmd"
)

type Log struct {
	Level       string `help:"Log level: trace, debug, info, warn, error" default:"info" env:"JOYTERM_LOG_LEVEL"`
	File        string `help:"Log file path (default: none; logs only to console)" env:"JOYTERM_LOG_FILE"`
	CaptureFile string `help:"HID report capture file path (CBOR records; default: none)" env:"JOYTERM_LOG_CAPTURE_FILE"`
}

// CLI is the root command structure.
type CLI struct {
	Log `embed:"" prefix:"log."`

	Console cmd.Console       `cmd:"" help:"Run the interactive controller console"`
	Config  cmd.ConfigCommand `cmd:"" help:"Configuration file helpers"`
	Key     cmd.KeyCommand    `cmd:"" help:"Bridge access key helpers"`
}
