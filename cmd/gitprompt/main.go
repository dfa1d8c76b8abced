// Package main is the entry point for the gitprompt binary.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/chmouel/gitprompt/internal/buildinfo"
	"github.com/chmouel/gitprompt/internal/config"
	"github.com/chmouel/gitprompt/internal/log"
	urfavecli "github.com/urfave/cli/v2"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
	builtBy = "unknown"
)

func main() {
	buildinfo.Set(version, commit, date, builtBy)
	buildinfo.Enrich()

	cliApp := &urfavecli.App{
		Name:                 "gitprompt",
		Usage:                "Render a git status fragment for interactive shell prompts",
		Version:              buildinfo.Version(),
		EnableBashCompletion: true,

		Flags: globalFlags(),

		Commands: []*urfavecli.Command{
			initCommand(),
			watchCommand(),
		},

		Action: runPrompt,
	}

	if err := cliApp.Run(os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}
}

// runPrompt is the default action: print the fragment, or nothing at
// all when the repository state cannot be collected. It always exits 0
// so a failing render never breaks the caller's prompt.
func runPrompt(c *urfavecli.Context) error {
	cfg, err := setup(c)
	if err != nil {
		return err
	}
	defer func() { _ = log.Close() }()

	cwd, err := os.Getwd()
	if err != nil {
		log.Printf("prompt skipped: %v", err)
		return nil
	}

	renderer, _ := buildRenderer(cfg, cwd)
	fragment, err := renderer.Render(context.Background())
	if err != nil {
		log.Printf("prompt skipped: %v", err)
		return nil
	}

	fmt.Println(colorize(cfg, fragment))
	return nil
}

// setup loads the configuration and wires the debug log, applying flag
// overrides on top. Configuration problems fall back to defaults; only
// explicitly malformed CLI overrides are reported as errors.
func setup(c *urfavecli.Context) (*config.AppConfig, error) {
	if debugLog := c.String("debug-log"); debugLog != "" {
		if err := log.SetFile(debugLog); err != nil {
			fmt.Fprintf(os.Stderr, "Error opening debug log file %q: %v\n", debugLog, err)
		}
	}

	cfg, err := config.LoadConfig(c.String("config-file"))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		cfg = config.DefaultConfig()
	}

	// If debug log wasn't set via flag, check if it's in the config
	if c.String("debug-log") == "" {
		if cfg.DebugLog != "" {
			if err := log.SetFile(cfg.DebugLog); err != nil {
				fmt.Fprintf(os.Stderr, "Error opening debug log file from config %q: %v\n", cfg.DebugLog, err)
			}
		} else {
			_ = log.SetFile("")
		}
	}

	if c.IsSet("timeout") {
		cfg.Timeout = c.Duration("timeout")
	}
	if color := c.String("color"); color != "" {
		switch color {
		case config.ColorAuto, config.ColorAlways, config.ColorNever:
			cfg.Color = color
		default:
			return nil, fmt.Errorf("invalid color mode %q (expected auto, always or never)", color)
		}
	}

	if overrides := c.StringSlice("config"); len(overrides) > 0 {
		if err := cfg.ApplyCLIOverrides(overrides); err != nil {
			return nil, err
		}
	}

	return cfg, nil
}
