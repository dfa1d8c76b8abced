// Package gitstatus gathers a repository status snapshot by querying the
// git binary and probing the metadata directory.
package gitstatus

import (
	"bufio"
	"context"
	"os"
	"path/filepath"
	"strings"

	"github.com/chmouel/gitprompt/internal/log"
	"github.com/chmouel/gitprompt/internal/models"
	"github.com/chmouel/gitprompt/internal/runner"
)

const branchHeaderMarker = "##"

// Collector assembles a models.Status from three queries: the porcelain
// status with branch header, the metadata directory path, and local
// reads under that directory (stash log and operation markers).
type Collector struct {
	runner     runner.Runner
	dir        string
	hashMarker string
}

// New returns a collector. dir is the working directory the queries run
// in; hashMarker prefixes the abbreviated hash used as branch identity
// on a detached HEAD with no reachable tag.
func New(r runner.Runner, dir, hashMarker string) *Collector {
	return &Collector{runner: r, dir: dir, hashMarker: hashMarker}
}

// Collect runs the status queries and returns the assembled snapshot.
// Any git invocation failure aborts the whole collection; no partial
// record is ever returned.
func (c *Collector) Collect(ctx context.Context) (*models.Status, error) {
	out, err := c.runner.Run(ctx, "status", "--porcelain", "--branch")
	if err != nil {
		return nil, err
	}

	st := &models.Status{}
	for _, line := range strings.Split(out, "\n") {
		if strings.HasPrefix(line, branchHeaderMarker) {
			hdr := parseBranchHeader(strings.TrimSpace(line[len(branchHeaderMarker):]))
			st.Ahead, st.Behind = hdr.ahead, hdr.behind
			if hdr.detached {
				branch, err := c.tagOrHash(ctx)
				if err != nil {
					return nil, err
				}
				st.Branch = branch
			} else {
				st.Branch = hdr.branch
			}
			continue
		}
		classifyEntry(line, st)
	}

	gitDir, err := c.resolveGitDir(ctx)
	if err != nil {
		return nil, err
	}
	st.Stashed = countStashEntries(gitDir)
	st.Operations = operationsInProgress(gitDir)

	log.Printf("collected status: branch=%s ahead=%d behind=%d staged=%d conflicts=%d changed=%d untracked=%d stashed=%d ops=%v",
		st.Branch, st.Ahead, st.Behind, st.Staged, st.Conflicts, st.Changed, st.Untracked, st.Stashed, st.Operations)
	return st, nil
}

// classifyEntry buckets a single non-header status line. A line may
// count toward both changed (worktree side) and staged (index side); the
// conflict check takes priority over the staged one.
func classifyEntry(line string, st *models.Status) {
	if strings.HasPrefix(line, "??") {
		st.Untracked++
		appendFile(line, st)
		return
	}

	counted := false
	if len(line) > 1 && line[1] == 'M' {
		st.Changed++
		counted = true
	}
	if len(line) > 0 && line[0] == 'U' {
		st.Conflicts++
		counted = true
	} else if len(line) > 0 && line[0] != ' ' {
		st.Staged++
		counted = true
	}
	if counted {
		appendFile(line, st)
	}
}

func appendFile(line string, st *models.Status) {
	file := models.StatusFile{Status: line}
	if len(line) >= 2 {
		file.Status = line[:2]
	}
	if len(line) > 3 {
		file.Filename = line[3:]
	}
	st.Files = append(st.Files, file)
}

// tagOrHash resolves the identity of a detached HEAD: an exact-match tag
// when one exists, otherwise the configured hash marker followed by the
// abbreviated commit hash. A failed tag lookup degrades to the hash.
func (c *Collector) tagOrHash(ctx context.Context) (string, error) {
	tag, err := c.runner.Run(ctx, "describe", "--exact-match")
	if err == nil {
		if tag = strings.TrimSpace(tag); tag != "" {
			return tag, nil
		}
	}

	hash, err := c.runner.Run(ctx, "rev-parse", "--short", "HEAD")
	if err != nil {
		return "", err
	}
	return c.hashMarker + strings.TrimSpace(hash), nil
}

// GitDir returns the repository metadata directory path.
func (c *Collector) GitDir(ctx context.Context) (string, error) {
	return c.resolveGitDir(ctx)
}

// resolveGitDir queries the metadata directory path, making relative
// results absolute against the collector's working directory.
func (c *Collector) resolveGitDir(ctx context.Context) (string, error) {
	out, err := c.runner.Run(ctx, "rev-parse", "--git-dir")
	if err != nil {
		return "", err
	}
	gitDir := strings.TrimSpace(out)
	if !filepath.IsAbs(gitDir) {
		gitDir = filepath.Join(c.dir, gitDir)
	}
	return gitDir, nil
}

// countStashEntries counts the lines of the stash reflog; one line per
// stash entry. A missing or unreadable file means zero stashes.
func countStashEntries(gitDir string) int {
	f, err := os.Open(filepath.Join(gitDir, "logs", "refs", "stash")) // #nosec G304 -- path is derived from git rev-parse output
	if err != nil {
		return 0
	}
	defer func() { _ = f.Close() }()

	count := 0
	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 64*1024), 1024*1024)
	for scanner.Scan() {
		count++
	}
	return count
}

// operationMarkers maps metadata directory entries to the in-progress
// operation labels, in the fixed priority order they are reported.
var operationMarkers = []struct {
	marker string
	label  string
}{
	{"rebase-merge", models.OpRebase},
	{"rebase-apply", models.OpAMRebase},
	{"MERGE_HEAD", models.OpMerging},
	{"CHERRY_PICK_HEAD", models.OpCherryPick},
	{"REVERT_HEAD", models.OpReverting},
	{"BISECT_LOG", models.OpBisecting},
}

// operationsInProgress reports every operation whose marker exists under
// the metadata directory; several may be present at once.
func operationsInProgress(gitDir string) []string {
	var ops []string
	for _, m := range operationMarkers {
		if _, err := os.Stat(filepath.Join(gitDir, m.marker)); err == nil {
			ops = append(ops, m.label)
		}
	}
	return ops
}
