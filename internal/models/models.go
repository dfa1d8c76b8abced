// Package models defines the data objects shared across gitprompt packages.
package models

// Status summarizes the state of a repository at the moment the status
// queries ran. It is built once per render and never mutated afterwards.
type Status struct {
	Branch     string
	Ahead      int
	Behind     int
	Untracked  int
	Changed    int
	Conflicts  int
	Staged     int
	Stashed    int
	Operations []string

	// Files lists the classified working tree entries. It is kept for
	// display surfaces such as the watch view and carries no information
	// beyond what the counters already aggregate.
	Files []StatusFile
}

// Clean reports whether the working tree has no entries in any of the
// five counted categories.
func (s *Status) Clean() bool {
	return s.Staged == 0 && s.Conflicts == 0 && s.Changed == 0 &&
		s.Untracked == 0 && s.Stashed == 0
}

// Operation labels reported for in-progress git operations, in the fixed
// priority order the markers are probed.
const (
	OpRebase     = "REBASE"
	OpAMRebase   = "AM/REBASE"
	OpMerging    = "MERGING"
	OpCherryPick = "CHERRY-PICKING"
	OpReverting  = "REVERTING"
	OpBisecting  = "BISECTING"
)
