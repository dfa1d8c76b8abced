// Package config loads the gitprompt configuration from YAML.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Color output modes.
const (
	ColorAuto   = "auto"
	ColorAlways = "always"
	ColorNever  = "never"
)

// DefaultTimeout bounds each git invocation when the configuration does
// not supply one.
const DefaultTimeout = 2 * time.Second

// AppConfig defines the global gitprompt configuration options.
type AppConfig struct {
	Timeout      time.Duration     // Per-invocation git timeout
	DebugLog     string            // Path to the debug log file
	Color        string            // Color mode: "auto", "always", "never"
	GitBin       string            // Git binary to invoke
	UseGitConfig bool              // Also read symbol overrides from git config (gitprompt.symbol.*)
	Symbols      map[string]string // Per-key symbol overrides; empty values suppress segments
}

// DefaultConfig returns the default configuration values.
func DefaultConfig() *AppConfig {
	return &AppConfig{
		Timeout: DefaultTimeout,
		Color:   ColorAuto,
		GitBin:  "git",
		Symbols: map[string]string{},
	}
}

func coerceBool(value any, defaultVal bool) bool {
	if value == nil {
		return defaultVal
	}

	switch v := value.(type) {
	case bool:
		return v
	case int:
		return v != 0
	case string:
		text := strings.ToLower(strings.TrimSpace(v))
		switch text {
		case "1", "true", "yes", "y", "on":
			return true
		case "0", "false", "no", "n", "off":
			return false
		}
	}
	return defaultVal
}

// coerceDuration accepts a Go duration string ("500ms"), an integer or
// float number of seconds, or a numeric string.
func coerceDuration(value any, defaultVal time.Duration) time.Duration {
	switch v := value.(type) {
	case nil:
		return defaultVal
	case int:
		return time.Duration(v) * time.Second
	case float64:
		return time.Duration(v * float64(time.Second))
	case string:
		text := strings.TrimSpace(v)
		if text == "" {
			return defaultVal
		}
		if d, err := time.ParseDuration(text); err == nil {
			return d
		}
		if secs, err := strconv.ParseFloat(text, 64); err == nil {
			return time.Duration(secs * float64(time.Second))
		}
	}
	return defaultVal
}

// parseSymbols reads the symbols mapping. Keys are uppercased to match
// the semantic key names; empty values are preserved since an empty
// override suppresses a segment.
func parseSymbols(value any) map[string]string {
	symbols := map[string]string{}

	raw, ok := value.(map[string]any)
	if !ok {
		return symbols
	}
	for key, val := range raw {
		key = strings.ToUpper(strings.TrimSpace(key))
		if key == "" {
			continue
		}
		switch v := val.(type) {
		case nil:
			symbols[key] = ""
		case string:
			symbols[key] = v
		default:
			symbols[key] = fmt.Sprintf("%v", v)
		}
	}
	return symbols
}

func parseConfig(data map[string]any) *AppConfig {
	cfg := DefaultConfig()

	cfg.Timeout = coerceDuration(data["timeout"], cfg.Timeout)
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultTimeout
	}

	if debugLog, ok := data["debug_log"].(string); ok {
		debugLog = strings.TrimSpace(debugLog)
		if debugLog != "" {
			cfg.DebugLog = debugLog
		}
	}

	if color, ok := data["color"].(string); ok {
		color = strings.ToLower(strings.TrimSpace(color))
		switch color {
		case ColorAuto, ColorAlways, ColorNever:
			cfg.Color = color
		}
	}

	if gitBin, ok := data["git_bin"].(string); ok {
		gitBin = strings.TrimSpace(gitBin)
		if gitBin != "" {
			cfg.GitBin = gitBin
		}
	}

	cfg.UseGitConfig = coerceBool(data["use_git_config"], false)

	if _, ok := data["symbols"]; ok {
		cfg.Symbols = parseSymbols(data["symbols"])
	}

	return cfg
}

func getConfigDir() string {
	if xdgConfigHome := os.Getenv("XDG_CONFIG_HOME"); xdgConfigHome != "" {
		return xdgConfigHome
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".config")
}

// LoadConfig reads the application configuration from a YAML file. A
// missing or malformed file yields the defaults; the prompt must never
// break over configuration problems.
func LoadConfig(configPath string) (*AppConfig, error) {
	configBase := filepath.Clean(filepath.Join(getConfigDir(), "gitprompt"))

	var paths []string

	if configPath != "" {
		expanded, err := expandPath(configPath)
		if err != nil {
			return DefaultConfig(), err
		}
		absPath, err := filepath.Abs(expanded)
		if err != nil {
			return DefaultConfig(), err
		}
		paths = []string{absPath}
	} else {
		paths = []string{
			filepath.Join(configBase, "config.yaml"),
			filepath.Join(configBase, "config.yml"),
		}
	}

	for _, path := range paths {
		if _, err := os.Stat(path); os.IsNotExist(err) {
			continue
		}

		// #nosec G304 -- path comes from the user's own configuration directory or flag
		data, err := os.ReadFile(path)
		if err != nil {
			continue
		}

		var yamlData map[string]any
		if err := yaml.Unmarshal(data, &yamlData); err != nil {
			return DefaultConfig(), nil
		}

		return parseConfig(yamlData), nil
	}

	return DefaultConfig(), nil
}

// ApplyCLIOverrides applies --config/-C key=value overrides on top of
// the loaded configuration. Symbol overrides use a "symbol." prefix,
// e.g. -C symbol.BRANCH='{MAGENTA}'.
func (c *AppConfig) ApplyCLIOverrides(overrides []string) error {
	for _, override := range overrides {
		key, value, found := strings.Cut(override, "=")
		if !found {
			return fmt.Errorf("invalid config override %q (expected key=value)", override)
		}
		key = strings.ToLower(strings.TrimSpace(key))

		if symbolKey, ok := strings.CutPrefix(key, "symbol."); ok {
			symbolKey = strings.ToUpper(strings.TrimSpace(symbolKey))
			if symbolKey == "" {
				return fmt.Errorf("invalid config override %q (empty symbol key)", override)
			}
			if c.Symbols == nil {
				c.Symbols = map[string]string{}
			}
			c.Symbols[symbolKey] = value
			continue
		}

		switch key {
		case "timeout":
			c.Timeout = coerceDuration(value, c.Timeout)
		case "debug_log":
			c.DebugLog = value
		case "color":
			switch strings.ToLower(strings.TrimSpace(value)) {
			case ColorAuto, ColorAlways, ColorNever:
				c.Color = strings.ToLower(strings.TrimSpace(value))
			default:
				return fmt.Errorf("invalid color mode %q", value)
			}
		case "git_bin":
			c.GitBin = strings.TrimSpace(value)
		case "use_git_config":
			c.UseGitConfig = coerceBool(value, c.UseGitConfig)
		default:
			return fmt.Errorf("unknown config key %q", key)
		}
	}
	return nil
}

func expandPath(path string) (string, error) {
	if strings.HasPrefix(path, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		path = filepath.Join(home, path[1:])
	}
	return os.ExpandEnv(path), nil
}
