package score

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/calebhart/seedpost/internal/domain"
)

func sampleInput() Input {
	return Input{
		Posts: []domain.Post{
			{
				PostID: "P1", Subreddit: "r/startups", AuthorUsername: "riley",
				Title: "Best presentation tools for board decks?",
				Body:  "I keep rebuilding the same slides. What presentation tools do you use?",
				PostType: domain.PostQuestion, TargetQuery: "presentation tools",
			},
			{
				PostID: "P2", Subreddit: "r/productivity", AuthorUsername: "jordan",
				Title: "How I stopped dreading pitch deck work",
				Body:  "A story about finally getting pitch deck help from a workflow change.",
				PostType: domain.PostStory, TargetQuery: "pitch deck help",
			},
		},
		Comments: []domain.Comment{
			{CommentID: "C1", PostID: "P1", AuthorUsername: "jordan", Body: "I keep an archive of my best decks for this."},
			{CommentID: "C2", PostID: "P2", AuthorUsername: "riley", Body: "Miro boards changed how I outline these."},
		},
		Personas: []domain.Persona{
			{Username: "riley", Style: "direct and practical", Quirks: []string{"Miro boards"}},
			{Username: "jordan", Style: "narrative-focused", Quirks: []string{"archive of best decks"}},
		},
		SlotCount: 2,
		Weights:   DefaultWeights(),
	}
}

func TestScoreWithinRange(t *testing.T) {
	s := Score(sampleInput())
	assert.GreaterOrEqual(t, s, 0.0)
	assert.LessOrEqual(t, s, 10.0)
	assert.Greater(t, s, 5.0, "a coherent on-query calendar should score well")
}

func TestScoreZeroPosts(t *testing.T) {
	in := sampleInput()
	in.Posts = nil
	in.Comments = nil
	assert.Equal(t, 0.0, Score(in))
}

func TestScoreZeroWeightsFallsBack(t *testing.T) {
	in := sampleInput()
	in.Weights = Weights{}
	assert.Equal(t, Score(sampleInput()), Score(in))
}

func TestDiversityPenalizesRepetition(t *testing.T) {
	in := sampleInput()
	varied := scoreDiversity(in)

	for i := range in.Posts {
		in.Posts[i].AuthorUsername = "riley"
		in.Posts[i].Subreddit = "r/startups"
		in.Posts[i].PostType = domain.PostQuestion
	}
	assert.Less(t, scoreDiversity(in), varied)
}

func TestTargetingDetectsOffQueryPosts(t *testing.T) {
	in := sampleInput()
	onQuery := scoreTargeting(in)

	for i := range in.Posts {
		in.Posts[i].Title = "Completely unrelated musing"
		in.Posts[i].Body = "Nothing about the subject at all."
	}
	assert.Less(t, scoreTargeting(in), onQuery)
}

func TestCompletenessRewardsEngagement(t *testing.T) {
	in := sampleInput()
	engaged := scoreCompleteness(in)

	in.Comments = nil
	assert.Less(t, scoreCompleteness(in), engaged)
}

func TestCompletenessPenalizesMissedSlots(t *testing.T) {
	in := sampleInput()
	full := scoreCompleteness(in)

	in.SlotCount = 4
	assert.Less(t, scoreCompleteness(in), full)
}

func TestVoiceNeutralWithoutKeywords(t *testing.T) {
	in := sampleInput()
	for i := range in.Personas {
		in.Personas[i].Quirks = nil
		in.Personas[i].Style = ""
	}
	assert.Equal(t, 0.5, scoreVoice(in))
}

func TestVoiceRewardsQuirkMentions(t *testing.T) {
	in := sampleInput()
	with := scoreVoice(in)

	for i := range in.Comments {
		in.Comments[i].Body = "Generic agreement without any personal touch."
	}
	for i := range in.Posts {
		in.Posts[i].Title = "Plain title"
		in.Posts[i].Body = "Plain body text with nothing personal in it."
	}
	assert.Less(t, scoreVoice(in), with)
}
