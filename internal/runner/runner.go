// Package runner executes the git binary with a bounded timeout and a
// caller-supplied environment snapshot.
package runner

import (
	"context"
	"fmt"
	"io"
	"os/exec"
	"strings"
	"time"
)

// DefaultTimeout bounds a single git invocation when the caller does not
// configure one.
const DefaultTimeout = 2 * time.Second

// Runner abstracts running a git query and capturing its standard output.
// Implementations return the decoded output with normalized line endings,
// or an error when the invocation failed for any reason.
type Runner interface {
	Run(ctx context.Context, args ...string) (string, error)
}

// ExecRunner invokes the configured git binary. Diagnostic output is
// discarded; a non-zero exit status, a launch failure and a timeout all
// surface as the same error shape.
type ExecRunner struct {
	GitBin  string
	Dir     string
	Env     []string
	Timeout time.Duration
}

// NewExecRunner returns a runner for the given binary, working directory
// and environment snapshot. An empty binary falls back to "git".
func NewExecRunner(gitBin, dir string, env []string, timeout time.Duration) *ExecRunner {
	if strings.TrimSpace(gitBin) == "" {
		gitBin = "git"
	}
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &ExecRunner{GitBin: gitBin, Dir: dir, Env: env, Timeout: timeout}
}

// Run executes the binary with the given arguments and returns its
// standard output. The child is killed when the timeout expires.
func (e *ExecRunner) Run(ctx context.Context, args ...string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, e.Timeout)
	defer cancel()

	// #nosec G204 -- argument vectors come from internal call sites and are not shell interpolated
	cmd := exec.CommandContext(ctx, e.GitBin, args...)
	if e.Dir != "" {
		cmd.Dir = e.Dir
	}
	if e.Env != nil {
		cmd.Env = e.Env
	}
	cmd.Stderr = io.Discard

	var out strings.Builder
	cmd.Stdout = &out

	if err := cmd.Run(); err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return "", fmt.Errorf("%s %s: %w", e.GitBin, summarizeArgs(args), ctxErr)
		}
		return "", fmt.Errorf("%s %s: %w", e.GitBin, summarizeArgs(args), err)
	}

	return normalizeNewlines(out.String()), nil
}

func normalizeNewlines(s string) string {
	return strings.ReplaceAll(s, "\r\n", "\n")
}

func summarizeArgs(args []string) string {
	if len(args) == 0 {
		return "<no-args>"
	}
	return strings.Join(args, " ")
}
