package main

import (
	"os"
	"strings"

	"github.com/joyterm/joyterm/internal/config"
	"github.com/joyterm/joyterm/internal/configpaths"
	"github.com/joyterm/joyterm/internal/log"

	"github.com/alecthomas/kong"
	kongtoml "github.com/alecthomas/kong-toml"
	kongyaml "github.com/alecthomas/kong-yaml"
)

func main() {

	userCfg := findUserConfig(os.Args[1:])
	jsonPaths, yamlPaths, tomlPaths := configpaths.ConfigCandidatePaths(userCfg)

	var cli config.CLI
	ctx := kong.Parse(&cli,
		kong.Name("joyterm"),
		kong.Description("Interactive console for emulated Switch controllers"),
		kong.UsageOnError(),
		// Load configuration from JSON/YAML/TOML in priority order; flags/env override config values.
		kong.Configuration(kong.JSON, jsonPaths...),
		kong.Configuration(kongyaml.Loader, yamlPaths...),
		kong.Configuration(kongtoml.Loader, tomlPaths...),
	)

	logger, closeFiles, err := log.SetupLogger(cli.Log.Level, cli.Log.File)
	if err != nil {
		_, _ = os.Stderr.WriteString("failed to setup logger: " + err.Error() + "\n")
		os.Exit(2)
	}
	defer func() {
		for _, c := range closeFiles {
			_ = c.Close()
		}
	}()

	var capture log.Capture
	if cli.Log.CaptureFile != "" {
		f, err := os.OpenFile(cli.Log.CaptureFile, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, 0o644)
		if err != nil {
			logger.Error("failed to open capture file", "file", cli.Log.CaptureFile, "error", err)
			capture = log.NewCapture(nil)
		} else {
			capture = log.NewCapture(f)
			closeFiles = append(closeFiles, f)
		}
	} else {
		capture = log.NewCapture(nil)
	}

	ctx.Bind(logger)
	ctx.BindTo(capture, (*log.Capture)(nil))

	err = ctx.Run()
	ctx.FatalIfErrorf(err)
}

func findUserConfig(args []string) string {
	for i := 0; i < len(args); i++ {
		a := args[i]
		if strings.HasPrefix(a, "--config=") {
			return a[len("--config="):]
		}
		if a == "--config" && i+1 < len(args) {
			return args[i+1]
		}
	}
	if v := os.Getenv("JOYTERM_CONFIG"); v != "" {
		return v
	}
	return ""
}
