// Package symbols resolves the display symbols and separators used to
// assemble the prompt fragment, with per-key overrides layered over
// built-in defaults.
package symbols

// Key identifies one entry of the closed symbol set.
type Key string

// The semantic keys of the symbol table.
const (
	Hash                 Key = "HASH"
	Branch               Key = "BRANCH"
	Operation            Key = "OPERATION"
	Staged               Key = "STAGED"
	Conflicts            Key = "CONFLICTS"
	Changed              Key = "CHANGED"
	Untracked            Key = "UNTRACKED"
	Stashed              Key = "STASHED"
	Clean                Key = "CLEAN"
	Ahead                Key = "AHEAD"
	Behind               Key = "BEHIND"
	PartsSeparator       Key = "PARTS_SEPARATOR"
	AheadBehindSeparator Key = "AHEAD_BEHIND_SEPARATOR"
	OperationsSeparator  Key = "OPERATIONS_SEPARATOR"
	NumbersSeparator     Key = "NUMBERS_SEPARATOR"
)

// Keys lists every key of the closed set.
var Keys = []Key{
	Hash, Branch, Operation, Staged, Conflicts, Changed, Untracked,
	Stashed, Clean, Ahead, Behind, PartsSeparator, AheadBehindSeparator,
	OperationsSeparator, NumbersSeparator,
}

// defaults holds the immutable built-in symbol definitions. Color tags
// are expanded (or stripped) by the theme package at output time.
var defaults = map[Key]string{
	Hash:                 ":",
	Branch:               "{CYAN}",
	Operation:            "{CYAN}",
	Staged:               "{RED}●",
	Conflicts:            "{RED}×",
	Changed:              "{BLUE}+",
	Untracked:            "…",
	Stashed:              "⚑",
	Clean:                "{BOLD_GREEN}✓",
	Ahead:                "↑·",
	Behind:               "↓·",
	PartsSeparator:       "|",
	AheadBehindSeparator: "",
	OperationsSeparator:  "|",
	NumbersSeparator:     "",
}

// Default returns the built-in definition for a key.
func Default(k Key) string {
	return defaults[k]
}

// Source supplies per-key overrides. ok must be true whenever the key is
// present, even with an empty value: an empty override suppresses the
// segment rather than falling back to the default.
type Source interface {
	Lookup(key string) (value string, ok bool)
}

// Resolver looks a key up through an ordered list of sources and falls
// back to the built-in default. Precedence is data, not control flow:
// the first source reporting the key wins.
type Resolver struct {
	sources []Source
}

// NewResolver builds a resolver over the given sources, highest
// precedence first.
func NewResolver(sources ...Source) *Resolver {
	return &Resolver{sources: sources}
}

// Resolve returns the effective definition for a key. Every key of the
// closed set has a default, so there is no error path.
func (r *Resolver) Resolve(k Key) string {
	for _, src := range r.sources {
		if src == nil {
			continue
		}
		if v, ok := src.Lookup(string(k)); ok {
			return v
		}
	}
	return defaults[k]
}

// MapSource adapts a plain map, such as the config file symbols section.
type MapSource map[string]string

// Lookup implements Source.
func (m MapSource) Lookup(key string) (string, bool) {
	v, ok := m[key]
	return v, ok
}

// EnvSource reads overrides from an environment snapshot using a fixed
// naming convention: prefix + key, e.g. GITPROMPT_BRANCH.
type EnvSource struct {
	Prefix string
	Env    map[string]string
}

// EnvPrefix is the naming convention used for environment overrides.
const EnvPrefix = "GITPROMPT_"

// Lookup implements Source.
func (e EnvSource) Lookup(key string) (string, bool) {
	prefix := e.Prefix
	if prefix == "" {
		prefix = EnvPrefix
	}
	v, ok := e.Env[prefix+key]
	return v, ok
}
