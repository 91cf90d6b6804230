package domain

import (
	"fmt"
	"strings"
)

// Bounds enforced on a GenerationConfig before any generation work starts.
const (
	MinCompanyInfoLen = 50
	MaxCompanyInfoLen = 2000
	MinPersonas       = 2
	MaxPersonas       = 10
	MaxQuirks         = 10
	MinSubreddits     = 1
	MaxSubreddits     = 20
	MinQueries        = 1
	MaxQueries        = 30
	MinPostsPerWeek   = 1
	MaxPostsPerWeek   = 15
	MinWeekNumber     = 1
	MaxWeekNumber     = 52
)

// SubredditPrefix is the canonical prefix every configured subreddit must carry.
const SubredditPrefix = "r/"

// GenerationConfig holds the caller-supplied parameters that persist across
// "next week" continuations. The engine treats it as read-only input.
type GenerationConfig struct {
	CompanyInfo   string    `json:"company_info"`
	Personas      []Persona `json:"personas"`
	Subreddits    []string  `json:"subreddits"`
	TargetQueries []string  `json:"target_queries"`
	PostsPerWeek  int       `json:"posts_per_week"`
	WeekNumber    int       `json:"week_number"`
}

// ValidationError reports malformed or out-of-range caller input.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

func invalid(field, format string, args ...any) *ValidationError {
	return &ValidationError{Field: field, Message: fmt.Sprintf(format, args...)}
}

// Validate checks every bound the engine assumes. It returns the first
// violation found as a *ValidationError.
func (c *GenerationConfig) Validate() error {
	if n := len(strings.TrimSpace(c.CompanyInfo)); n < MinCompanyInfoLen {
		return invalid("company_info", "must be at least %d characters, got %d", MinCompanyInfoLen, n)
	} else if n > MaxCompanyInfoLen {
		return invalid("company_info", "must be at most %d characters, got %d", MaxCompanyInfoLen, n)
	}

	if n := len(c.Personas); n < MinPersonas || n > MaxPersonas {
		return invalid("personas", "need between %d and %d personas, got %d", MinPersonas, MaxPersonas, n)
	}
	seen := make(map[string]bool, len(c.Personas))
	for _, p := range c.Personas {
		if strings.TrimSpace(p.Username) == "" {
			return invalid("personas", "persona username must not be empty")
		}
		if seen[p.Username] {
			return invalid("personas", "duplicate persona username %q", p.Username)
		}
		seen[p.Username] = true
		if len(p.Quirks) > MaxQuirks {
			return invalid("personas", "persona %q has %d quirks, maximum is %d", p.Username, len(p.Quirks), MaxQuirks)
		}
		for _, q := range p.Quirks {
			if len(q) < 2 || len(q) > 100 {
				return invalid("personas", "persona %q quirk must be 2-100 characters", p.Username)
			}
		}
	}

	if n := len(c.Subreddits); n < MinSubreddits || n > MaxSubreddits {
		return invalid("subreddits", "need between %d and %d subreddits, got %d", MinSubreddits, MaxSubreddits, n)
	}
	for _, sub := range c.Subreddits {
		if !strings.HasPrefix(sub, SubredditPrefix) {
			return invalid("subreddits", "subreddit must start with %q, got %q", SubredditPrefix, sub)
		}
		if len(sub) < 4 || len(sub) > 30 {
			return invalid("subreddits", "subreddit name has invalid length: %q", sub)
		}
	}

	if n := len(c.TargetQueries); n < MinQueries || n > MaxQueries {
		return invalid("target_queries", "need between %d and %d queries, got %d", MinQueries, MaxQueries, n)
	}
	for _, q := range c.TargetQueries {
		if len(q) < 2 || len(q) > 100 {
			return invalid("target_queries", "query must be 2-100 characters: %q", q)
		}
	}

	if c.PostsPerWeek < MinPostsPerWeek || c.PostsPerWeek > MaxPostsPerWeek {
		return invalid("posts_per_week", "must be between %d and %d, got %d", MinPostsPerWeek, MaxPostsPerWeek, c.PostsPerWeek)
	}
	if c.WeekNumber < MinWeekNumber || c.WeekNumber > MaxWeekNumber {
		return invalid("week_number", "must be between %d and %d, got %d", MinWeekNumber, MaxWeekNumber, c.WeekNumber)
	}

	return nil
}

// PersonaByUsername returns the persona with the given username, or nil.
func (c *GenerationConfig) PersonaByUsername(username string) *Persona {
	for i := range c.Personas {
		if c.Personas[i].Username == username {
			return &c.Personas[i]
		}
	}
	return nil
}

// Clone returns a deep copy so stored configuration cannot be mutated through
// a caller-held reference.
func (c *GenerationConfig) Clone() *GenerationConfig {
	out := *c
	out.Personas = make([]Persona, len(c.Personas))
	copy(out.Personas, c.Personas)
	for i := range out.Personas {
		out.Personas[i].Quirks = append([]string(nil), c.Personas[i].Quirks...)
	}
	out.Subreddits = append([]string(nil), c.Subreddits...)
	out.TargetQueries = append([]string(nil), c.TargetQueries...)
	return &out
}
