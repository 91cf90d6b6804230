package generate

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/calebhart/seedpost/internal/domain"
	"github.com/calebhart/seedpost/internal/llm"
	"github.com/calebhart/seedpost/internal/scheduler"
)

// Plausible content bounds; anything outside these came back degenerate.
const (
	minPostBodyLen  = 40
	maxPostBodyLen  = 4000
	maxPostTitleLen = 300
)

// postDraft is the JSON shape the model returns for a post.
type postDraft struct {
	Title string `json:"title"`
	Body  string `json:"body"`
}

// PostGenerator produces one Post per slot in a persona's voice.
type PostGenerator struct {
	client        llm.Client
	formatRetries int
}

// NewPostGenerator creates a generator. formatRetries bounds how many times
// an unparseable response is re-requested with reinforced instructions.
func NewPostGenerator(client llm.Client, formatRetries int) *PostGenerator {
	if formatRetries < 0 {
		formatRetries = 0
	}
	return &PostGenerator{client: client, formatRetries: formatRetries}
}

// Generate fills one slot. The returned post has no ID yet; identity is
// assigned at calendar assembly.
func (g *PostGenerator) Generate(ctx context.Context, cfg *domain.GenerationConfig, persona domain.Persona, slot scheduler.Slot) (*domain.Post, error) {
	var lastErr error

	for attempt := 0; attempt <= g.formatRetries; attempt++ {
		prompt := postUserPrompt(cfg, persona, slot, attempt)
		if attempt > 0 {
			prompt += formatReinforcement
		}

		resp, err := g.client.Generate(ctx, llm.GenerateRequest{
			Task:         llm.TaskPost,
			SystemPrompt: postSystemPrompt,
			UserPrompt:   prompt,
		})
		if err != nil {
			// Transport/auth/rate-limit outcomes are not fixable by
			// re-prompting; surface them to the pipeline.
			return nil, fmt.Errorf("generating post for %s: %w", slot.Subreddit, err)
		}

		draft, err := llm.ExtractJSON[postDraft](resp.Text, validatePostDraft)
		if err != nil {
			lastErr = err
			continue
		}

		return &domain.Post{
			Subreddit:      slot.Subreddit,
			AuthorUsername: persona.Username,
			Title:          strings.TrimSpace(draft.Title),
			Body:           strings.TrimSpace(draft.Body),
			PostType:       slot.PostType,
			TargetQuery:    slot.TargetQuery,
			ScheduledTime:  slot.ScheduledTime,
		}, nil
	}

	return nil, fmt.Errorf("post for %s did not parse after %d attempts: %w",
		slot.Subreddit, g.formatRetries+1, lastErr)
}

func validatePostDraft(d postDraft) error {
	title := strings.TrimSpace(d.Title)
	body := strings.TrimSpace(d.Body)
	if title == "" {
		return errors.New("title is empty")
	}
	if len(title) > maxPostTitleLen {
		return fmt.Errorf("title too long (%d chars)", len(title))
	}
	if len(body) < minPostBodyLen {
		return fmt.Errorf("body too short (%d chars)", len(body))
	}
	if len(body) > maxPostBodyLen {
		return fmt.Errorf("body too long (%d chars)", len(body))
	}
	return nil
}
