package config

import (
	"os/exec"
	"strings"
)

// gitConfigSection is where per-repository symbol overrides live, e.g.
// `git config gitprompt.symbol.branch "{MAGENTA}"`.
const gitConfigSection = "gitprompt.symbol."

// gitConfigMock allows tests to mock git config output.
var gitConfigMock func(gitBin string, args []string, repoPath string) (string, error)

// runGitConfig executes a git config command and returns the raw output.
func runGitConfig(gitBin string, args []string, repoPath string) (string, error) {
	if gitConfigMock != nil {
		return gitConfigMock(gitBin, args, repoPath)
	}
	if gitBin == "" {
		gitBin = "git"
	}

	// #nosec G204 -- the binary comes from local configuration, the arguments are fixed
	cmd := exec.Command(gitBin, args...)
	if repoPath != "" {
		cmd.Dir = repoPath
	}

	output, err := cmd.Output()
	if err != nil {
		// git config returns exit code 1 when no key matches (not an error)
		if exitErr, ok := err.(*exec.ExitError); ok && exitErr.ExitCode() == 1 {
			return "", nil
		}
		return "", err
	}
	return string(output), nil
}

// GitConfigSymbols reads symbol overrides from git config. Failures
// degrade to no overrides; the prompt must not break over them.
func GitConfigSymbols(gitBin, repoPath string) map[string]string {
	output, err := runGitConfig(gitBin, []string{"config", "--get-regexp", `^gitprompt\.symbol\.`}, repoPath)
	if err != nil {
		return nil
	}
	return parseGitConfigSymbols(output)
}

// parseGitConfigSymbols parses --get-regexp output into an override map.
// Input format: "gitprompt.symbol.branch {MAGENTA}\ngitprompt.symbol.clean\n"
// (git config lowercases key names; a key with no value means an empty
// override, which suppresses the segment).
func parseGitConfigSymbols(output string) map[string]string {
	if strings.TrimSpace(output) == "" {
		return nil
	}

	overrides := map[string]string{}
	for _, line := range strings.Split(strings.TrimSpace(output), "\n") {
		if line == "" {
			continue
		}

		// SplitN with 2 keeps values containing spaces intact.
		parts := strings.SplitN(line, " ", 2)
		key := strings.TrimPrefix(parts[0], gitConfigSection)
		if key == parts[0] || key == "" {
			continue
		}

		value := ""
		if len(parts) == 2 {
			value = parts[1]
		}
		overrides[strings.ToUpper(key)] = value
	}
	return overrides
}
