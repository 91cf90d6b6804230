package roster

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/calebhart/seedpost/internal/domain"
)

func personas(usernames ...string) []domain.Persona {
	out := make([]domain.Persona, len(usernames))
	for i, u := range usernames {
		out[i] = domain.Persona{Username: u}
	}
	return out
}

func TestPickPostAuthorRotates(t *testing.T) {
	reg := NewRegistry(personas("a", "b", "c"), Options{RotationBias: 1, Seed: 7})

	counts := make(map[string]int)
	for i := 0; i < 9; i++ {
		counts[reg.PickPostAuthor().Username]++
	}

	// Strict rotation spreads nine picks evenly over three personas.
	assert.Equal(t, map[string]int{"a": 3, "b": 3, "c": 3}, counts)
}

func TestPickCommenterExcludesDisallowed(t *testing.T) {
	reg := NewRegistry(personas("author", "x", "y"), Options{RotationBias: 1, Seed: 1})
	disallowed := map[string]bool{"author": true}

	for i := 0; i < 20; i++ {
		p, err := reg.PickCommenter(disallowed, map[string]bool{})
		require.NoError(t, err)
		assert.NotEqual(t, "author", p.Username)
	}
}

func TestPickCommenterPrefersFreshVoices(t *testing.T) {
	reg := NewRegistry(personas("a", "b", "c", "d"), Options{RotationBias: 1, Seed: 3})

	used := map[string]bool{"a": true}
	seen := make(map[string]bool)
	for i := 0; i < 3; i++ {
		p, err := reg.PickCommenter(map[string]bool{"a": true}, used)
		require.NoError(t, err)
		assert.False(t, seen[p.Username], "picked %s twice while fresh voices remained", p.Username)
		seen[p.Username] = true
		used[p.Username] = true
	}
}

func TestPickCommenterFallsBackWhenAllUsed(t *testing.T) {
	reg := NewRegistry(personas("a", "b"), Options{RotationBias: 1, Seed: 5})

	p, err := reg.PickCommenter(
		map[string]bool{"a": true},
		map[string]bool{"a": true, "b": true})
	require.NoError(t, err)
	assert.Equal(t, "b", p.Username)
}

func TestPickCommenterNoEligible(t *testing.T) {
	reg := NewRegistry(personas("a", "b"), Options{RotationBias: 1, Seed: 5})

	_, err := reg.PickCommenter(map[string]bool{"a": true, "b": true}, nil)
	assert.ErrorIs(t, err, ErrNoEligiblePersona)
}

func TestSeedReproducibility(t *testing.T) {
	pickAll := func() []string {
		reg := NewRegistry(personas("a", "b", "c"), Options{RotationBias: 0.85, Seed: 42})
		var out []string
		for i := 0; i < 12; i++ {
			out = append(out, reg.PickPostAuthor().Username)
		}
		return out
	}
	assert.Equal(t, pickAll(), pickAll())
}

func TestGetAndHas(t *testing.T) {
	reg := NewRegistry(personas("a"), Options{Seed: 1})
	p, ok := reg.Get("a")
	require.True(t, ok)
	assert.Equal(t, "a", p.Username)
	_, ok = reg.Get("missing")
	assert.False(t, ok)
	assert.True(t, reg.Has("a"))
	assert.Equal(t, 1, reg.Len())
}
