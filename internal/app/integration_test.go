package app

import (
	"bytes"
	"io"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/x/exp/teatest"
	"github.com/chmouel/gitprompt/internal/models"
	"github.com/chmouel/gitprompt/internal/prompt"
	"github.com/chmouel/gitprompt/internal/symbols"
	"github.com/chmouel/gitprompt/internal/theme"
)

// TestWatchSessionRendersAndQuits drives a full session: initial
// refresh, a manual one, then quit.
func TestWatchSessionRendersAndQuits(t *testing.T) {
	provider := &stubProvider{status: &models.Status{
		Branch:    "main",
		Changed:   1,
		Untracked: 2,
		Files: []models.StatusFile{
			{Filename: "main.go", Status: " M"},
		},
	}}
	renderer := prompt.New(provider, symbols.NewResolver())
	m := NewModel(provider, renderer, theme.NewPalette(io.Discard, false), nil)

	tm := teatest.NewTestModel(
		t,
		m,
		teatest.WithInitialTermSize(100, 30),
	)

	teatest.WaitFor(t, tm.Output(), func(bts []byte) bool {
		return bytes.Contains(bts, []byte("gitprompt watch")) &&
			bytes.Contains(bts, []byte("main.go"))
	}, teatest.WithDuration(3*time.Second))

	tm.Send(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("r")})
	time.Sleep(50 * time.Millisecond)

	tm.Send(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("q")})
	tm.WaitFinished(t, teatest.WithFinalTimeout(2*time.Second))

	fm := tm.FinalModel(t)
	final, ok := fm.(*Model)
	if !ok {
		t.Fatal("final model is not *Model")
	}
	if !final.quitting {
		t.Error("model should be quitting after 'q'")
	}
	if provider.calls < 2 {
		t.Errorf("expected at least 2 status collections, got %d", provider.calls)
	}
}

// TestWatchSessionShowsCollectError verifies a failing provider renders
// the error state instead of a fragment.
func TestWatchSessionShowsCollectError(t *testing.T) {
	provider := &stubProvider{err: io.ErrUnexpectedEOF}
	renderer := prompt.New(provider, symbols.NewResolver())
	m := NewModel(provider, renderer, theme.NewPalette(io.Discard, false), nil)

	tm := teatest.NewTestModel(
		t,
		m,
		teatest.WithInitialTermSize(100, 30),
	)

	teatest.WaitFor(t, tm.Output(), func(bts []byte) bool {
		return bytes.Contains(bts, []byte("status unavailable"))
	}, teatest.WithDuration(3*time.Second))

	tm.Send(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("q")})
	tm.WaitFinished(t, teatest.WithFinalTimeout(2*time.Second))
}
