package prompt

import (
	"context"
	"errors"
	"testing"

	"github.com/chmouel/gitprompt/internal/models"
	"github.com/chmouel/gitprompt/internal/symbols"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeProvider struct {
	status *models.Status
	err    error
}

func (f *fakeProvider) Collect(context.Context) (*models.Status, error) {
	return f.status, f.err
}

func newRenderer(st *models.Status, overrides map[string]string) *Renderer {
	return New(&fakeProvider{status: st}, symbols.NewResolver(symbols.MapSource(overrides)))
}

func TestRenderCleanRepository(t *testing.T) {
	r := newRenderer(&models.Status{Branch: "main"}, nil)
	out, err := r.Render(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "{CYAN}main|{BOLD_GREEN}✓{RESET}", out)
}

func TestRenderDivergence(t *testing.T) {
	r := newRenderer(&models.Status{Branch: "main", Ahead: 2, Behind: 1}, nil)
	out, err := r.Render(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "{CYAN}main↑·2↓·1|{BOLD_GREEN}✓{RESET}", out)
}

func TestRenderEndToEndScenario(t *testing.T) {
	st := &models.Status{
		Branch:     "main",
		Ahead:      1,
		Changed:    1,
		Untracked:  1,
		Conflicts:  1,
		Stashed:    1,
		Operations: []string{models.OpRebase},
	}
	r := newRenderer(st, nil)
	out, err := r.Render(context.Background())
	require.NoError(t, err)
	assert.Equal(t,
		"{CYAN}main↑·1|{CYAN}|REBASE|{RED}×1{RESET}{BLUE}+1{RESET}…1{RESET}⚑1{RESET}",
		out)
}

func TestRenderMultipleOperations(t *testing.T) {
	st := &models.Status{
		Branch:     "fix",
		Operations: []string{models.OpRebase, models.OpMerging},
	}
	r := newRenderer(st, map[string]string{"CLEAN": ""})
	out, err := r.Render(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "{CYAN}fix|{CYAN}|REBASE|MERGING", out)
}

func TestRenderStashOnly(t *testing.T) {
	r := newRenderer(&models.Status{Branch: "main", Stashed: 2}, nil)
	out, err := r.Render(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "{CYAN}main|⚑2{RESET}", out)
}

func TestRenderCollectFailure(t *testing.T) {
	r := New(&fakeProvider{err: errors.New("timed out")},
		symbols.NewResolver())
	out, err := r.Render(context.Background())
	require.Error(t, err)
	assert.Empty(t, out)
}

func TestRenderEmptyCleanOverrideOmitsNumbers(t *testing.T) {
	r := newRenderer(&models.Status{Branch: "main"},
		map[string]string{"CLEAN": ""})
	out, err := r.Render(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "{CYAN}main", out)
}

func TestRenderEmptyAheadOverrideSuppressesCount(t *testing.T) {
	r := newRenderer(&models.Status{Branch: "main", Ahead: 4},
		map[string]string{"AHEAD": "", "CLEAN": ""})
	out, err := r.Render(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "{CYAN}main", out)
}

func TestRenderCustomSeparators(t *testing.T) {
	st := &models.Status{Branch: "dev", Ahead: 1, Staged: 2}
	r := newRenderer(st, map[string]string{
		"PARTS_SEPARATOR":        " ",
		"AHEAD_BEHIND_SEPARATOR": "/",
		"NUMBERS_SEPARATOR":      ",",
	})
	out, err := r.Render(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "{CYAN}dev/↑·1 {RED}●2{RESET}", out)
}

func TestRenderIdempotent(t *testing.T) {
	st := &models.Status{Branch: "main", Changed: 3, Stashed: 1}
	r := newRenderer(st, nil)

	first, err := r.Render(context.Background())
	require.NoError(t, err)
	second, err := r.Render(context.Background())
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestNumbersOrderIsFixed(t *testing.T) {
	st := &models.Status{
		Branch:    "b",
		Staged:    1,
		Conflicts: 2,
		Changed:   3,
		Untracked: 4,
		Stashed:   5,
	}
	r := newRenderer(st, map[string]string{
		"STAGED":    "s",
		"CONFLICTS": "c",
		"CHANGED":   "m",
		"UNTRACKED": "u",
		"STASHED":   "t",
	})
	out, err := r.Render(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "{CYAN}b|s1{RESET}c2{RESET}m3{RESET}u4{RESET}t5{RESET}", out)
}
