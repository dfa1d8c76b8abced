// Package theme expands the color tags embedded in symbol definitions
// into ANSI sequences, or strips them for plain output.
package theme

import (
	"io"
	"regexp"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

// resetTagName ends the current color run.
const resetTagName = "RESET"

var tagPattern = regexp.MustCompile(`\{[A-Z_]+\}`)

// Palette renders tagged fragments. Tags open a color run that lasts
// until the next tag; unknown tags are left untouched.
type Palette struct {
	styles map[string]lipgloss.Style
}

// NewPalette builds a palette writing ANSI for the given output. When
// force is set the color profile is pinned to ANSI so escape sequences
// are emitted even without a terminal (e.g. when the shell captures the
// fragment through a command substitution).
func NewPalette(out io.Writer, force bool) *Palette {
	renderer := lipgloss.NewRenderer(out)
	if force {
		renderer.SetColorProfile(termenv.ANSI)
	}

	style := func(color string, bold bool) lipgloss.Style {
		s := renderer.NewStyle().Foreground(lipgloss.Color(color))
		if bold {
			s = s.Bold(true)
		}
		return s
	}

	return &Palette{styles: map[string]lipgloss.Style{
		"RED":        style("1", false),
		"GREEN":      style("2", false),
		"YELLOW":     style("3", false),
		"BLUE":       style("4", false),
		"MAGENTA":    style("5", false),
		"CYAN":       style("6", false),
		"BOLD_GREEN": style("2", true),
	}}
}

// Expand replaces tagged runs with styled text. The text following a
// color tag is rendered in that color up to the next tag; a reset tag
// ends the run.
func (p *Palette) Expand(s string) string {
	locs := tagPattern.FindAllStringIndex(s, -1)
	if len(locs) == 0 {
		return s
	}

	var b strings.Builder
	var current *lipgloss.Style
	pos := 0
	for _, loc := range locs {
		p.writeRun(&b, current, s[pos:loc[0]])
		name := s[loc[0]+1 : loc[1]-1]
		switch {
		case name == resetTagName:
			current = nil
		default:
			if style, ok := p.styles[name]; ok {
				current = &style
			} else {
				// Unknown tag: emit it literally and keep the run.
				b.WriteString(s[loc[0]:loc[1]])
			}
		}
		pos = loc[1]
	}
	p.writeRun(&b, current, s[pos:])
	return b.String()
}

func (p *Palette) writeRun(b *strings.Builder, style *lipgloss.Style, text string) {
	if text == "" {
		return
	}
	if style == nil {
		b.WriteString(text)
		return
	}
	b.WriteString(style.Render(text))
}

// Strip removes every recognized tag, known or not, leaving plain text.
func Strip(s string) string {
	return tagPattern.ReplaceAllString(s, "")
}
