package runner

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewExecRunnerDefaults(t *testing.T) {
	r := NewExecRunner("", "", nil, 0)
	assert.Equal(t, "git", r.GitBin)
	assert.Equal(t, DefaultTimeout, r.Timeout)

	r = NewExecRunner("  ", "/tmp", nil, time.Second)
	assert.Equal(t, "git", r.GitBin)
	assert.Equal(t, time.Second, r.Timeout)
}

func TestRunCapturesStdout(t *testing.T) {
	r := NewExecRunner("echo", "", nil, time.Second)
	out, err := r.Run(context.Background(), "hello")
	require.NoError(t, err)
	assert.Equal(t, "hello\n", out)
}

func TestRunDiscardsStderr(t *testing.T) {
	r := NewExecRunner("sh", "", nil, time.Second)
	out, err := r.Run(context.Background(), "-c", "echo out; echo err 1>&2")
	require.NoError(t, err)
	assert.Equal(t, "out\n", out)
}

func TestRunNormalizesNewlines(t *testing.T) {
	r := NewExecRunner("sh", "", nil, time.Second)
	out, err := r.Run(context.Background(), "-c", `printf 'a\r\nb\r\n'`)
	require.NoError(t, err)
	assert.Equal(t, "a\nb\n", out)
}

func TestRunNonZeroExit(t *testing.T) {
	r := NewExecRunner("sh", "", nil, time.Second)
	out, err := r.Run(context.Background(), "-c", "exit 3")
	require.Error(t, err)
	assert.Empty(t, out)
}

func TestRunMissingBinary(t *testing.T) {
	r := NewExecRunner("gitprompt-test-no-such-binary", "", nil, time.Second)
	_, err := r.Run(context.Background(), "status")
	require.Error(t, err)
}

func TestRunTimeout(t *testing.T) {
	r := NewExecRunner("sleep", "", nil, 50*time.Millisecond)
	_, err := r.Run(context.Background(), "5")
	require.Error(t, err)
	assert.True(t, errors.Is(err, context.DeadlineExceeded), "expected deadline error, got %v", err)
}

func TestRunEnvSnapshot(t *testing.T) {
	r := NewExecRunner("sh", "", []string{"GITPROMPT_TEST_VALUE=injected"}, time.Second)
	out, err := r.Run(context.Background(), "-c", `printf '%s' "$GITPROMPT_TEST_VALUE"`)
	require.NoError(t, err)
	assert.Equal(t, "injected", out)
}

func TestRunWorkingDirectory(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "marker.txt"), []byte("x"), 0o600))

	r := NewExecRunner("sh", dir, nil, time.Second)
	out, err := r.Run(context.Background(), "-c", "ls")
	require.NoError(t, err)
	assert.Contains(t, out, "marker.txt")
}
