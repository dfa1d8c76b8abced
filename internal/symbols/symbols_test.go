package symbols

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDefaultsCoverEveryKey(t *testing.T) {
	for _, k := range Keys {
		_, ok := defaults[k]
		assert.True(t, ok, "missing default for %s", k)
	}
	assert.Len(t, defaults, len(Keys))
}

func TestResolverFallsBackToDefaults(t *testing.T) {
	r := NewResolver()
	for _, k := range Keys {
		assert.Equal(t, Default(k), r.Resolve(k))
	}
}

func TestResolverOverridePrecedence(t *testing.T) {
	r := NewResolver(
		EnvSource{Env: map[string]string{"GITPROMPT_BRANCH": "{MAGENTA}"}},
		MapSource{"BRANCH": "{YELLOW}", "STAGED": "+"},
	)

	// Environment wins over the config map, which wins over defaults.
	assert.Equal(t, "{MAGENTA}", r.Resolve(Branch))
	assert.Equal(t, "+", r.Resolve(Staged))
	assert.Equal(t, Default(Clean), r.Resolve(Clean))
}

func TestResolverEmptyOverrideIsHonored(t *testing.T) {
	r := NewResolver(MapSource{"CLEAN": "", "AHEAD": ""})

	// An empty override must not fall through to the default; it
	// suppresses the segment.
	assert.Equal(t, "", r.Resolve(Clean))
	assert.Equal(t, "", r.Resolve(Ahead))
	assert.Equal(t, Default(Behind), r.Resolve(Behind))
}

func TestResolverSkipsNilSources(t *testing.T) {
	r := NewResolver(nil, MapSource{"HASH": "#"})
	assert.Equal(t, "#", r.Resolve(Hash))
}

func TestEnvSourceCustomPrefix(t *testing.T) {
	src := EnvSource{Prefix: "MYPROMPT_", Env: map[string]string{"MYPROMPT_HASH": "@"}}
	v, ok := src.Lookup("HASH")
	assert.True(t, ok)
	assert.Equal(t, "@", v)

	_, ok = src.Lookup("BRANCH")
	assert.False(t, ok)
}
