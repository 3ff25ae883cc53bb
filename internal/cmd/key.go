package cmd

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/joyterm/joyterm/bridge/auth"
	"github.com/joyterm/joyterm/internal/configpaths"
)

// KeyCommand groups bridge access key helpers.
type KeyCommand struct {
	Gen  KeyGen  `cmd:"" help:"Generate a bridge access key and store it in the key file"`
	Show KeyShow `cmd:"" help:"Print the stored bridge access key"`
}

// KeyGen creates a fresh access key. The bridge daemon has to be given the
// same key to accept the console.
type KeyGen struct {
	Force bool `help:"Overwrite an existing key file"`
}

func (k *KeyGen) Run(logger *slog.Logger) error {
	path, err := configpaths.KeyFilePath()
	if err != nil {
		return fmt.Errorf("resolve key file path: %w", err)
	}
	if !k.Force {
		if _, err := os.Stat(path); err == nil {
			return errors.New("key file exists; use --force to replace it")
		}
	}

	key, err := auth.GenerateKey()
	if err != nil {
		return fmt.Errorf("generate key: %w", err)
	}
	if err := configpaths.EnsureDir(path); err != nil {
		return fmt.Errorf("create config dir: %w", err)
	}
	if err := os.WriteFile(path, []byte(key), 0o600); err != nil {
		return fmt.Errorf("write key file: %w", err)
	}

	logger.Info("Generated bridge access key", "path", path)
	logger.Info("-------------------------------------")
	logger.Info(key)
	logger.Info("-------------------------------------")
	logger.Info("Configure the bridge daemon with the same key.")
	return nil
}

// KeyShow prints the stored key to stdout.
type KeyShow struct{}

func (k *KeyShow) Run() error {
	path, err := configpaths.KeyFilePath()
	if err != nil {
		return fmt.Errorf("resolve key file path: %w", err)
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read key file: %w", err)
	}
	fmt.Println(strings.TrimSpace(string(raw)))
	return nil
}
