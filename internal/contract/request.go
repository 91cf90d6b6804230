package contract

import (
	"strings"

	"github.com/calebhart/seedpost/internal/domain"
)

// PersonaRequest is the wire form of a persona definition.
type PersonaRequest struct {
	Username        string   `json:"username" validate:"required,min=3,max=50"`
	Name            string   `json:"name" validate:"required,min=2,max=100"`
	Background      string   `json:"background" validate:"required,min=10,max=500"`
	Style           string   `json:"style" validate:"required,min=10,max=300"`
	Expertise       string   `json:"expertise" validate:"required,min=5,max=300"`
	Quirks          []string `json:"quirks" validate:"max=10,dive,min=2,max=100"`
	PostingPatterns string   `json:"posting_patterns" validate:"max=200"`
}

// GenerateRequest is the body of POST /api/generate.
type GenerateRequest struct {
	CompanyInfo   string           `json:"company_info" validate:"required,min=50,max=2000"`
	Personas      []PersonaRequest `json:"personas" validate:"required,min=2,max=10,dive"`
	Subreddits    []string         `json:"subreddits" validate:"required,min=1,max=20,dive,startswith=r/,min=4,max=30"`
	TargetQueries []string         `json:"target_queries" validate:"required,min=1,max=30,dive,min=2,max=100"`
	PostsPerWeek  int              `json:"posts_per_week" validate:"required,min=1,max=15"`
	WeekNumber    int              `json:"week_number" validate:"omitempty,min=1,max=52"`
}

// ToConfig converts the request into the engine's configuration. A missing
// week number defaults to week 1.
func (r *GenerateRequest) ToConfig() *domain.GenerationConfig {
	week := r.WeekNumber
	if week == 0 {
		week = 1
	}

	personas := make([]domain.Persona, len(r.Personas))
	for i, p := range r.Personas {
		personas[i] = domain.Persona{
			Username:        p.Username,
			Name:            p.Name,
			Background:      p.Background,
			Style:           p.Style,
			Expertise:       p.Expertise,
			Quirks:          append([]string(nil), p.Quirks...),
			PostingPatterns: p.PostingPatterns,
		}
	}

	return &domain.GenerationConfig{
		CompanyInfo:   r.CompanyInfo,
		Personas:      personas,
		Subreddits:    append([]string(nil), r.Subreddits...),
		TargetQueries: append([]string(nil), r.TargetQueries...),
		PostsPerWeek:  r.PostsPerWeek,
		WeekNumber:    week,
	}
}

// ReviewResult is the advisory output of POST /api/validate. Issues make the
// request invalid; warnings flag configurations likely to read unnatural.
type ReviewResult struct {
	Valid    bool     `json:"valid"`
	Issues   []string `json:"issues"`
	Warnings []string `json:"warnings"`
}

// Review inspects the request without touching the generation provider.
func (r *GenerateRequest) Review() ReviewResult {
	res := ReviewResult{Valid: true, Issues: []string{}, Warnings: []string{}}

	if err := r.ToConfig().Validate(); err != nil {
		res.Valid = false
		res.Issues = append(res.Issues, err.Error())
	}

	seen := make(map[string]bool, len(r.Personas))
	for _, p := range r.Personas {
		if seen[p.Username] {
			res.Valid = false
			res.Issues = append(res.Issues, "duplicate persona username: "+p.Username)
		}
		seen[p.Username] = true
	}

	expertise := make(map[string]bool, len(r.Personas))
	for _, p := range r.Personas {
		expertise[strings.ToLower(strings.TrimSpace(p.Expertise))] = true
	}
	if len(r.Personas) > 0 && len(expertise)*2 < len(r.Personas) {
		res.Warnings = append(res.Warnings, "personas lack diversity in expertise")
	}

	if len(r.Subreddits) > len(r.Personas)*2 {
		res.Warnings = append(res.Warnings, "more subreddits than personas can cover may lead to overposting")
	}
	if len(r.Subreddits) > 0 && r.PostsPerWeek > len(r.Subreddits)*2 {
		res.Warnings = append(res.Warnings, "high posts_per_week for this many subreddits may appear unnatural")
	}
	if len(r.TargetQueries) < r.PostsPerWeek {
		res.Warnings = append(res.Warnings, "consider more target queries than posts per week")
	}

	return res
}
