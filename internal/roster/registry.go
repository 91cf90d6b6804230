package roster

import (
	"errors"
	"math/rand"
	"sort"
	"sync"

	"github.com/calebhart/seedpost/internal/domain"
)

// ErrNoEligiblePersona indicates every persona was excluded for a pick.
var ErrNoEligiblePersona = errors.New("no eligible persona")

// Options tunes the rotation policy.
type Options struct {
	// RotationBias is the probability of picking the least-used eligible
	// persona instead of a uniform random one. 1.0 is strict rotation.
	RotationBias float64
	// Seed makes picks reproducible. Zero means a random seed.
	Seed int64
}

// DefaultOptions favors rotation strongly while leaving room for the
// occasional repeat, which reads more human than perfect round-robin.
func DefaultOptions() Options {
	return Options{RotationBias: 0.85}
}

// Registry holds the fixed persona set for one generation run and tracks
// usage so author selection favors personas not yet used this week.
// Safe for concurrent use; comment tasks pick authors in parallel.
type Registry struct {
	mu            sync.Mutex
	personas      []domain.Persona
	byUsername    map[string]int
	authorUses    map[string]int
	commenterUses map[string]int
	rng           *rand.Rand
	bias          float64
}

// NewRegistry builds a Registry over the configured personas.
func NewRegistry(personas []domain.Persona, opts Options) *Registry {
	seed := opts.Seed
	if seed == 0 {
		seed = rand.Int63()
	}
	r := &Registry{
		personas:      append([]domain.Persona(nil), personas...),
		byUsername:    make(map[string]int, len(personas)),
		authorUses:    make(map[string]int, len(personas)),
		commenterUses: make(map[string]int, len(personas)),
		rng:           rand.New(rand.NewSource(seed)),
		bias:          opts.RotationBias,
	}
	for i, p := range r.personas {
		r.byUsername[p.Username] = i
	}
	return r
}

// Get returns the persona with the given username.
func (r *Registry) Get(username string) (domain.Persona, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	i, ok := r.byUsername[username]
	if !ok {
		return domain.Persona{}, false
	}
	return r.personas[i], true
}

// Has reports whether a username belongs to the registry.
func (r *Registry) Has(username string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	_, ok := r.byUsername[username]
	return ok
}

// Len returns the number of registered personas.
func (r *Registry) Len() int {
	return len(r.personas)
}

// PickPostAuthor selects an author for a new post, preferring personas that
// have authored the fewest posts so far this week.
func (r *Registry) PickPostAuthor() domain.Persona {
	r.mu.Lock()
	defer r.mu.Unlock()

	p := r.pick(r.personas, r.authorUses)
	r.authorUses[p.Username]++
	return p
}

// PickCommenter selects a comment author. Personas in disallowed are never
// chosen (post author, parent comment author); personas in usedOnPost are
// avoided while fresh voices remain, so threads read as distinct people.
func (r *Registry) PickCommenter(disallowed, usedOnPost map[string]bool) (domain.Persona, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var eligible []domain.Persona
	for _, p := range r.personas {
		if !disallowed[p.Username] {
			eligible = append(eligible, p)
		}
	}
	if len(eligible) == 0 {
		return domain.Persona{}, ErrNoEligiblePersona
	}

	var fresh []domain.Persona
	for _, p := range eligible {
		if !usedOnPost[p.Username] {
			fresh = append(fresh, p)
		}
	}
	if len(fresh) > 0 {
		eligible = fresh
	}

	p := r.pick(eligible, r.commenterUses)
	r.commenterUses[p.Username]++
	return p, nil
}

// pick applies the rotation policy over candidates given their usage counts.
// Caller holds the mutex.
func (r *Registry) pick(candidates []domain.Persona, uses map[string]int) domain.Persona {
	if len(candidates) == 1 {
		return candidates[0]
	}

	if r.rng.Float64() >= r.bias {
		return candidates[r.rng.Intn(len(candidates))]
	}

	minUses := -1
	for _, p := range candidates {
		if minUses == -1 || uses[p.Username] < minUses {
			minUses = uses[p.Username]
		}
	}
	var least []domain.Persona
	for _, p := range candidates {
		if uses[p.Username] == minUses {
			least = append(least, p)
		}
	}
	sort.Slice(least, func(i, j int) bool { return least[i].Username < least[j].Username })
	return least[r.rng.Intn(len(least))]
}
