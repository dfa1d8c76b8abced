// Package main provides CLI command definitions for gitprompt.
package main

import (
	"context"
	"fmt"
	"os"

	_ "embed"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/chmouel/gitprompt/internal/app"
	"github.com/chmouel/gitprompt/internal/log"
	"github.com/chmouel/gitprompt/internal/theme"
	urfavecli "github.com/urfave/cli/v2"
)

//go:embed templates/init.bash
var bashInit []byte

//go:embed templates/init.zsh
var zshInit []byte

//go:embed templates/init.fish
var fishInit []byte

// initCommand returns the init subcommand definition.
func initCommand() *urfavecli.Command {
	return &urfavecli.Command{
		Name:      "init",
		Usage:     "Emit the shell integration snippet",
		ArgsUsage: "<bash|zsh|fish>",
		Action:    handleInit,
	}
}

// handleInit prints the integration snippet for the requested shell.
func handleInit(c *urfavecli.Context) error {
	if c.NArg() == 0 {
		return fmt.Errorf("usage: gitprompt init <bash|zsh|fish>")
	}

	switch shell := c.Args().First(); shell {
	case "bash":
		_, _ = os.Stdout.Write(bashInit)
	case "zsh":
		_, _ = os.Stdout.Write(zshInit)
	case "fish":
		_, _ = os.Stdout.Write(fishInit)
	default:
		return fmt.Errorf("unsupported shell: %s (supported: bash, zsh, fish)", shell)
	}
	return nil
}

// watchCommand returns the watch subcommand definition.
func watchCommand() *urfavecli.Command {
	return &urfavecli.Command{
		Name:   "watch",
		Usage:  "Live preview of the prompt fragment while the repository changes",
		Action: runWatch,
	}
}

func runWatch(c *urfavecli.Context) error {
	cfg, err := setup(c)
	if err != nil {
		return err
	}
	defer func() { _ = log.Close() }()

	cwd, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("get working directory: %w", err)
	}

	renderer, collector := buildRenderer(cfg, cwd)

	var watcher *app.Watcher
	if gitDir, err := collector.GitDir(context.Background()); err == nil {
		watcher, err = app.NewWatcher(gitDir, log.Printf)
		if err != nil {
			log.Printf("watch: falling back to manual refresh: %v", err)
			watcher = nil
		}
	} else {
		return fmt.Errorf("not inside a git repository: %w", err)
	}

	model := app.NewModel(collector, renderer, theme.NewPalette(os.Stdout, true), watcher)
	p := tea.NewProgram(model, tea.WithAltScreen())

	_, err = p.Run()
	model.Close()
	if err != nil {
		return fmt.Errorf("run watch view: %w", err)
	}
	return nil
}
