package theme

import (
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStrip(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"no tags", "main|✓", "main|✓"},
		{"single tag", "{CYAN}main", "main"},
		{"interleaved", "{CYAN}main↑·1|{RED}×1{RESET}…2{RESET}", "main↑·1|×1…2"},
		{"unknown tag removed too", "{SPARKLE}main", "main"},
		{"lowercase braces kept", "{cyan}main", "{cyan}main"},
		{"empty", "", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Strip(tt.input))
		})
	}
}

func TestExpandForcedEmitsANSI(t *testing.T) {
	p := NewPalette(io.Discard, true)

	out := p.Expand("{CYAN}main")
	assert.Contains(t, out, "main")
	assert.Contains(t, out, "\x1b[", "forced palette must emit escape sequences")
	assert.NotContains(t, out, "{CYAN}")
}

func TestExpandResetEndsRun(t *testing.T) {
	p := NewPalette(io.Discard, true)

	out := p.Expand("{RED}×1{RESET}plain")
	assert.True(t, strings.HasSuffix(out, "plain"),
		"text after a reset tag must be unstyled: %q", out)
}

func TestExpandRunLastsUntilNextTag(t *testing.T) {
	p := NewPalette(io.Discard, true)

	red := p.Expand("{RED}×1")
	blue := p.Expand("{BLUE}+2")
	both := p.Expand("{RED}×1{BLUE}+2")
	assert.Equal(t, red+blue, both)
}

func TestExpandUnknownTagLeftLiterally(t *testing.T) {
	p := NewPalette(io.Discard, true)

	out := p.Expand("{SPARKLE}main")
	assert.Contains(t, out, "{SPARKLE}")
	assert.Contains(t, out, "main")
}

func TestExpandNoTagsPassesThrough(t *testing.T) {
	p := NewPalette(io.Discard, true)
	assert.Equal(t, "main|✓", p.Expand("main|✓"))
}

func TestExpandBoldGreenDiffersFromGreen(t *testing.T) {
	p := NewPalette(io.Discard, true)

	assert.NotEqual(t, p.Expand("{GREEN}✓"), p.Expand("{BOLD_GREEN}✓"))
}
