package generate

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/calebhart/seedpost/internal/domain"
	"github.com/calebhart/seedpost/internal/llm"
	"github.com/calebhart/seedpost/internal/scheduler"
	"github.com/calebhart/seedpost/internal/testutil"
)

func testSlot() scheduler.Slot {
	return scheduler.Slot{
		Index:         0,
		Subreddit:     "r/startups",
		TargetQuery:   "presentation tools",
		PostType:      domain.PostQuestion,
		ScheduledTime: time.Date(2026, 3, 2, 11, 30, 0, 0, time.UTC),
	}
}

func TestPostGenerate(t *testing.T) {
	client := testutil.NewFakeClient()
	gen := NewPostGenerator(client, 2)
	cfg := testutil.Config()

	post, err := gen.Generate(context.Background(), cfg, cfg.Personas[0], testSlot())
	require.NoError(t, err)

	assert.Empty(t, post.PostID, "identity is assigned at assembly, not generation")
	assert.Equal(t, "r/startups", post.Subreddit)
	assert.Equal(t, "riley_ops", post.AuthorUsername)
	assert.Equal(t, domain.PostQuestion, post.PostType)
	assert.Equal(t, "presentation tools", post.TargetQuery)
	assert.NotEmpty(t, post.Title)
	assert.GreaterOrEqual(t, len(post.Body), minPostBodyLen)
	assert.Equal(t, 1, client.Calls())
}

func TestPostGenerateRetriesBadFormat(t *testing.T) {
	client := testutil.NewFakeClient()
	client.Script(llm.TaskPost, func(n int, req llm.GenerateRequest) (string, error) {
		if n == 0 {
			return "sorry, I can't structure that", nil
		}
		return `{"title": "Recovered on retry", "body": "a body comfortably over the minimum plausible length for a post"}`, nil
	})

	gen := NewPostGenerator(client, 2)
	cfg := testutil.Config()

	post, err := gen.Generate(context.Background(), cfg, cfg.Personas[0], testSlot())
	require.NoError(t, err)
	assert.Equal(t, "Recovered on retry", post.Title)
	assert.Equal(t, 2, client.Calls())
}

func TestPostGenerateFormatExhausted(t *testing.T) {
	client := testutil.NewFakeClient()
	client.Script(llm.TaskPost, func(int, llm.GenerateRequest) (string, error) {
		return `{"title": "t", "body": "too short"}`, nil
	})

	gen := NewPostGenerator(client, 1)
	cfg := testutil.Config()

	_, err := gen.Generate(context.Background(), cfg, cfg.Personas[0], testSlot())
	require.Error(t, err)
	assert.ErrorIs(t, err, llm.ErrInvalidOutput)
	assert.Equal(t, 2, client.Calls())
}

func TestPostGenerateClientErrorNotRetried(t *testing.T) {
	client := testutil.NewFakeClient()
	client.Fail(llm.TaskPost, llm.ErrProvider)

	gen := NewPostGenerator(client, 3)
	cfg := testutil.Config()

	_, err := gen.Generate(context.Background(), cfg, cfg.Personas[0], testSlot())
	require.Error(t, err)
	assert.ErrorIs(t, err, llm.ErrProvider)
	assert.Equal(t, 1, client.Calls(), "transport failures are not re-prompted")
}

func TestValidatePostDraft(t *testing.T) {
	longBody := "a body comfortably over the minimum plausible length for a post"

	assert.NoError(t, validatePostDraft(postDraft{Title: "t", Body: longBody}))
	assert.Error(t, validatePostDraft(postDraft{Title: "", Body: longBody}))
	assert.Error(t, validatePostDraft(postDraft{Title: "t", Body: "short"}))
}
