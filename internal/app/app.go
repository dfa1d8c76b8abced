// Package app implements the watch TUI: a live preview of the prompt
// fragment that refreshes while the repository changes.
package app

import (
	"context"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/chmouel/gitprompt/internal/models"
	"github.com/chmouel/gitprompt/internal/prompt"
	"github.com/chmouel/gitprompt/internal/theme"
)

type statusMsg struct {
	status   *models.Status
	fragment string
	err      error
}

type watchEventMsg struct{}

// Model is the bubbletea model for the watch view.
type Model struct {
	provider prompt.StatusProvider
	renderer *prompt.Renderer
	palette  *theme.Palette
	watcher  *Watcher

	status   *models.Status
	fragment string
	loadErr  error

	width       int
	height      int
	keys        keyMap
	help        help.Model
	lastRefresh time.Time
	quitting    bool
}

// NewModel builds the watch model. watcher may be nil, in which case
// only manual refreshes are available.
func NewModel(provider prompt.StatusProvider, renderer *prompt.Renderer, palette *theme.Palette, watcher *Watcher) *Model {
	return &Model{
		provider: provider,
		renderer: renderer,
		palette:  palette,
		watcher:  watcher,
		keys:     newKeyMap(),
		help:     help.New(),
	}
}

// Close releases the watcher.
func (m *Model) Close() {
	if m.watcher != nil {
		m.watcher.Close()
	}
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	return tea.Batch(m.refreshCmd(), m.waitForEvent())
}

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit
		case key.Matches(msg, m.keys.Refresh):
			return m, m.refreshCmd()
		case key.Matches(msg, m.keys.Help):
			m.help.ShowAll = !m.help.ShowAll
		}
	case statusMsg:
		m.status = msg.status
		m.fragment = msg.fragment
		m.loadErr = msg.err
	case watchEventMsg:
		cmds := []tea.Cmd{m.waitForEvent()}
		if m.shouldRefresh(time.Now()) {
			cmds = append(cmds, m.refreshCmd())
		}
		return m, tea.Batch(cmds...)
	}
	return m, nil
}

// refreshCmd collects a fresh snapshot and formats the fragment.
func (m *Model) refreshCmd() tea.Cmd {
	return func() tea.Msg {
		st, err := m.provider.Collect(context.Background())
		if err != nil {
			return statusMsg{err: err}
		}
		return statusMsg{status: st, fragment: m.renderer.Format(st)}
	}
}

// waitForEvent blocks on the next watcher trigger.
func (m *Model) waitForEvent() tea.Cmd {
	if m.watcher == nil {
		return nil
	}
	events := m.watcher.Events()
	return func() tea.Msg {
		if _, ok := <-events; !ok {
			return nil
		}
		return watchEventMsg{}
	}
}

// shouldRefresh applies the debounce window to watcher triggers.
func (m *Model) shouldRefresh(now time.Time) bool {
	if !m.lastRefresh.IsZero() && now.Sub(m.lastRefresh) < WatchDebounce {
		return false
	}
	m.lastRefresh = now
	return true
}
