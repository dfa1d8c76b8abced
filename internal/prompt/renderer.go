// Package prompt assembles the color-tagged status fragment shown in an
// interactive shell prompt.
package prompt

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/chmouel/gitprompt/internal/models"
	"github.com/chmouel/gitprompt/internal/symbols"
)

// ResetTag closes the color run of every counted entry. It is part of
// the fragment format, not a configurable symbol.
const ResetTag = "{RESET}"

// StatusProvider yields a repository status snapshot.
type StatusProvider interface {
	Collect(ctx context.Context) (*models.Status, error)
}

// Renderer turns a status snapshot into the final prompt fragment.
type Renderer struct {
	status  StatusProvider
	symbols *symbols.Resolver
}

// New returns a renderer over the given status provider and symbol
// resolver.
func New(status StatusProvider, resolver *symbols.Resolver) *Renderer {
	return &Renderer{status: status, symbols: resolver}
}

// Render collects the status and formats it. A collection failure
// surfaces as an error; callers are expected to omit the fragment
// silently rather than show anything.
func (r *Renderer) Render(ctx context.Context) (string, error) {
	st, err := r.status.Collect(ctx)
	if err != nil {
		return "", fmt.Errorf("collect status: %w", err)
	}
	return r.Format(st), nil
}

// Format assembles the fragment from an already collected snapshot. The
// parts compose in a fixed order: branch, operations, numbers; the
// latter two are omitted when empty.
func (r *Renderer) Format(st *models.Status) string {
	parts := []string{r.branchPart(st)}
	if len(st.Operations) > 0 {
		parts = append(parts, r.operationsPart(st))
	}
	if numbers := r.numbersPart(st); numbers != "" {
		parts = append(parts, numbers)
	}
	return strings.Join(parts, r.symbols.Resolve(symbols.PartsSeparator))
}

// branchPart renders the branch name with optional ahead/behind entries.
func (r *Renderer) branchPart(st *models.Status) string {
	entries := []string{r.symbols.Resolve(symbols.Branch) + st.Branch}
	if st.Ahead > 0 {
		if sym := r.symbols.Resolve(symbols.Ahead); sym != "" {
			entries = append(entries, sym+strconv.Itoa(st.Ahead))
		}
	}
	if st.Behind > 0 {
		if sym := r.symbols.Resolve(symbols.Behind); sym != "" {
			entries = append(entries, sym+strconv.Itoa(st.Behind))
		}
	}
	return strings.Join(entries, r.symbols.Resolve(symbols.AheadBehindSeparator))
}

// operationsPart renders the in-progress operation labels, led by the
// operation symbol as the first joined element.
func (r *Renderer) operationsPart(st *models.Status) string {
	entries := append([]string{r.symbols.Resolve(symbols.Operation)}, st.Operations...)
	return strings.Join(entries, r.symbols.Resolve(symbols.OperationsSeparator))
}

// numbersPart renders the working tree counters in their fixed order,
// falling back to the clean symbol when every counter is zero. Each
// entry gets a trailing reset tag. An empty result omits the part.
func (r *Renderer) numbersPart(st *models.Status) string {
	counters := []struct {
		key   symbols.Key
		count int
	}{
		{symbols.Staged, st.Staged},
		{symbols.Conflicts, st.Conflicts},
		{symbols.Changed, st.Changed},
		{symbols.Untracked, st.Untracked},
		{symbols.Stashed, st.Stashed},
	}

	var entries []string
	for _, c := range counters {
		if c.count <= 0 {
			continue
		}
		if sym := r.symbols.Resolve(c.key); sym != "" {
			entries = append(entries, sym+strconv.Itoa(c.count))
		}
	}
	if st.Clean() {
		if sym := r.symbols.Resolve(symbols.Clean); sym != "" {
			entries = append(entries, sym)
		}
	}
	if len(entries) == 0 {
		return ""
	}

	for i, entry := range entries {
		entries[i] = entry + ResetTag
	}
	return strings.Join(entries, r.symbols.Resolve(symbols.NumbersSeparator))
}
