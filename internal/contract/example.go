package contract

// SampleRequest returns a complete example request usable to pre-fill the
// form or exercise the API end to end.
func SampleRequest() *GenerateRequest {
	return &GenerateRequest{
		CompanyInfo: "Slideforge is an AI-powered presentation tool that turns outlines into polished slide decks. " +
			"Users paste content, choose a style, and get structured layouts with visuals. " +
			"Exports to PowerPoint, Google Slides, PDF. Has API for integrations. " +
			"Target users: startup operators, consultants, sales teams, educators.",
		Personas: []PersonaRequest{
			{
				Username:        "riley_ops",
				Name:            "Riley Hart",
				Background:      "Head of operations at a SaaS startup, grew up in Colorado",
				Style:           "Professional but authentic, shares personal struggles",
				Expertise:       "Operations, presentations, board decks",
				Quirks:          []string{"Miro boards", "morning runs", "color-coded folders"},
				PostingPatterns: "Posts during work hours, prefers r/startups",
			},
			{
				Username:        "jordan_consults",
				Name:            "Jordan Brooks",
				Background:      "Independent consultant for early-stage founders",
				Style:           "Thoughtful, narrative-focused, takes pride in work",
				Expertise:       "Strategy, competitive analysis, storytelling",
				Quirks:          []string{"archive of best decks", "works at a cafe"},
				PostingPatterns: "Evening poster, active in consulting communities",
			},
			{
				Username:        "emily_econ",
				Name:            "Emily Chen",
				Background:      "Economics major at a state university",
				Style:           "Practical student voice, exhausted but dedicated",
				Expertise:       "Academic presentations, research, group projects",
				Quirks:          []string{"Google Doc outlines first", "library quiet floor"},
				PostingPatterns: "Late-night poster around deadlines",
			},
		},
		Subreddits:    []string{"r/startups", "r/consulting", "r/productivity"},
		TargetQueries: []string{"presentation tools", "pitch deck help", "slide design tips"},
		PostsPerWeek:  3,
		WeekNumber:    1,
	}
}
