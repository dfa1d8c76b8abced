package main

import (
	"os"
	"strings"

	"github.com/chmouel/gitprompt/internal/config"
	"github.com/chmouel/gitprompt/internal/gitstatus"
	"github.com/chmouel/gitprompt/internal/prompt"
	"github.com/chmouel/gitprompt/internal/runner"
	"github.com/chmouel/gitprompt/internal/symbols"
	"github.com/chmouel/gitprompt/internal/theme"
	"golang.org/x/term"
)

// buildRenderer wires runner, collector, symbol resolver and renderer
// for the given working directory. The environment snapshot is taken
// once: symbol overrides read the unmodified process environment, while
// the git child processes additionally get a stable locale and are told
// not to take optional locks.
func buildRenderer(cfg *config.AppConfig, cwd string) (*prompt.Renderer, *gitstatus.Collector) {
	env := os.Environ()
	resolver := buildResolver(cfg, environToMap(env), cwd)

	gitEnv := append(append([]string{}, env...), "LC_ALL=C", "GIT_OPTIONAL_LOCKS=0")
	run := runner.NewExecRunner(cfg.GitBin, cwd, gitEnv, cfg.Timeout)
	collector := gitstatus.New(run, cwd, resolver.Resolve(symbols.Hash))

	return prompt.New(collector, resolver), collector
}

// buildResolver layers the override sources: environment first, then
// repository git config (when enabled), then the config file symbols.
func buildResolver(cfg *config.AppConfig, env map[string]string, cwd string) *symbols.Resolver {
	sources := []symbols.Source{symbols.EnvSource{Env: env}}
	if cfg.UseGitConfig {
		if overrides := config.GitConfigSymbols(cfg.GitBin, cwd); len(overrides) > 0 {
			sources = append(sources, symbols.MapSource(overrides))
		}
	}
	sources = append(sources, symbols.MapSource(cfg.Symbols))
	return symbols.NewResolver(sources...)
}

// colorize applies the configured color mode to the tagged fragment.
func colorize(cfg *config.AppConfig, fragment string) string {
	switch cfg.Color {
	case config.ColorNever:
		return theme.Strip(fragment)
	case config.ColorAlways:
		return theme.NewPalette(os.Stdout, true).Expand(fragment)
	default:
		if term.IsTerminal(int(os.Stdout.Fd())) {
			return theme.NewPalette(os.Stdout, false).Expand(fragment)
		}
		return theme.Strip(fragment)
	}
}

func environToMap(env []string) map[string]string {
	m := make(map[string]string, len(env))
	for _, kv := range env {
		if key, value, found := strings.Cut(kv, "="); found {
			m[key] = value
		}
	}
	return m
}
