package testutil

import "github.com/calebhart/seedpost/internal/domain"

// Config returns a valid three-persona configuration for tests.
func Config() *domain.GenerationConfig {
	return &domain.GenerationConfig{
		CompanyInfo: "Slideforge is an AI-powered presentation tool that turns outlines " +
			"into polished slide decks for startup operators and consultants.",
		Personas: []domain.Persona{
			{
				Username:   "riley_ops",
				Name:       "Riley Hart",
				Background: "Head of operations at a SaaS startup",
				Style:      "Professional but authentic, shares personal struggles",
				Expertise:  "Operations, presentations, board decks",
				Quirks:     []string{"Miro boards", "morning runs"},
			},
			{
				Username:   "jordan_consults",
				Name:       "Jordan Brooks",
				Background: "Independent consultant for early-stage founders",
				Style:      "Thoughtful, narrative-focused, takes pride in work",
				Expertise:  "Strategy, competitive analysis, storytelling",
				Quirks:     []string{"archive of best decks"},
			},
			{
				Username:   "emily_econ",
				Name:       "Emily Chen",
				Background: "Economics major at a state university",
				Style:      "Practical student voice, exhausted but dedicated",
				Expertise:  "Academic presentations, research, group projects",
				Quirks:     []string{"Google Doc outlines first"},
			},
		},
		Subreddits:    []string{"r/startups", "r/productivity"},
		TargetQueries: []string{"presentation tools", "pitch deck help"},
		PostsPerWeek:  3,
		WeekNumber:    1,
	}
}
