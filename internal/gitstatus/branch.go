package gitstatus

import (
	"strconv"
	"strings"
)

// branchHeader is the parsed form of the "## " line emitted by
// git status --porcelain --branch.
type branchHeader struct {
	branch   string
	ahead    int
	behind   int
	detached bool
}

// parseBranchHeader interprets the status header line, already stripped
// of the "##" marker and surrounding whitespace. The mutually exclusive
// cases are probed in a fixed order: unborn branch, detached HEAD,
// branch without tracking info, tracking branch with an optional
// divergence clause. Detached identity (tag or hash) is resolved by the
// caller since it needs further git queries.
func parseBranchHeader(line string) branchHeader {
	switch {
	case strings.Contains(line, "Initial commit on"),
		strings.Contains(line, "No commits yet on"):
		return parseUnbornBranch(line)
	case strings.Contains(line, "no branch"):
		return branchHeader{detached: true}
	case !strings.Contains(line, "..."):
		return branchHeader{branch: line}
	default:
		return parseTrackingBranch(line)
	}
}

// parseUnbornBranch handles the header of a repository with no commits
// yet; the branch name is the last whitespace-separated token.
func parseUnbornBranch(line string) branchHeader {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return branchHeader{}
	}
	return branchHeader{branch: fields[len(fields)-1]}
}

// parseTrackingBranch splits "local...remote [ahead N, behind M]" into
// the local branch name and the divergence counts.
func parseTrackingBranch(line string) branchHeader {
	parts := strings.SplitN(line, "...", 2)
	hdr := branchHeader{branch: parts[0]}

	rest := parts[1]
	if idx := strings.Index(rest, " "); idx >= 0 {
		hdr.ahead, hdr.behind = parseDivergence(rest[idx+1:])
	}
	return hdr
}

// parseDivergence reads a bracketed divergence clause such as
// "[ahead 2, behind 1]". Malformed pieces degrade to zero.
func parseDivergence(clause string) (ahead, behind int) {
	clause = strings.Trim(clause, "[]")
	for _, piece := range strings.Split(clause, ", ") {
		switch {
		case strings.Contains(piece, "ahead"):
			ahead = trailingInt(piece, "ahead ")
		case strings.Contains(piece, "behind"):
			behind = trailingInt(piece, "behind ")
		}
	}
	return ahead, behind
}

func trailingInt(piece, prefix string) int {
	n, err := strconv.Atoi(strings.TrimSpace(strings.TrimPrefix(piece, prefix)))
	if err != nil {
		return 0
	}
	return n
}
