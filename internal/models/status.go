package models

// StatusFile represents a single file entry from git status.
type StatusFile struct {
	Filename string
	Status   string // XY status code (e.g., " M", "M ", "UU", "??")
}

// Untracked reports whether the entry is an untracked file.
func (f StatusFile) Untracked() bool {
	return f.Status == "??"
}

// Conflicted reports whether the entry is an unmerged path.
func (f StatusFile) Conflicted() bool {
	return len(f.Status) > 0 && f.Status[0] == 'U'
}
