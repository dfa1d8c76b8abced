package app

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/chmouel/gitprompt/internal/models"
	"github.com/muesli/reflow/truncate"
)

var (
	titleStyle     = lipgloss.NewStyle().Bold(true)
	mutedStyle     = lipgloss.NewStyle().Faint(true)
	errorStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("1"))
	stagedStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
	conflictStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("1"))
	changedStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("4"))
	untrackedStyle = lipgloss.NewStyle().Faint(true)
)

// View implements tea.Model.
func (m *Model) View() string {
	if m.quitting {
		return ""
	}

	var lines []string
	lines = append(lines, titleStyle.Render("gitprompt watch"), "")

	switch {
	case m.loadErr != nil:
		lines = append(lines, errorStyle.Render("status unavailable"),
			mutedStyle.Render(m.loadErr.Error()))
	case m.status == nil:
		lines = append(lines, mutedStyle.Render("collecting status..."))
	default:
		lines = append(lines, m.palette.Expand(m.fragment), "")
		lines = append(lines, m.countsLine())
		lines = append(lines, m.fileLines()...)
	}

	lines = append(lines, "", m.help.View(m.keys))

	if m.width > 0 {
		for i, line := range lines {
			lines[i] = truncate.String(line, uint(m.width)) // #nosec G115 -- width is a terminal dimension
		}
	}
	return strings.Join(lines, "\n")
}

func (m *Model) countsLine() string {
	st := m.status
	counts := fmt.Sprintf("staged %d  conflicts %d  changed %d  untracked %d  stashed %d",
		st.Staged, st.Conflicts, st.Changed, st.Untracked, st.Stashed)
	if len(st.Operations) > 0 {
		counts += "  [" + strings.Join(st.Operations, ", ") + "]"
	}
	return mutedStyle.Render(counts)
}

func (m *Model) fileLines() []string {
	files := m.status.Files
	if len(files) == 0 {
		return nil
	}

	limit := len(files)
	if m.height > 0 && m.height-9 < limit {
		limit = m.height - 9
		if limit < 1 {
			limit = 1
		}
	}

	lines := make([]string, 0, limit+2)
	lines = append(lines, "")
	for _, f := range files[:limit] {
		lines = append(lines, fileLine(f))
	}
	if limit < len(files) {
		lines = append(lines, mutedStyle.Render(fmt.Sprintf("... and %d more", len(files)-limit)))
	}
	return lines
}

func fileLine(f models.StatusFile) string {
	style := stagedStyle
	switch {
	case f.Conflicted():
		style = conflictStyle
	case f.Untracked():
		style = untrackedStyle
	case len(f.Status) > 1 && f.Status[1] == 'M':
		style = changedStyle
	}

	icon := deviconForName(f.Filename)
	if icon != "" {
		icon += " "
	}
	return fmt.Sprintf("  %s %s%s", style.Render(f.Status), icon, f.Filename)
}
