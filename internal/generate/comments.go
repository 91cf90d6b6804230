package generate

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"strings"
	"sync"

	"github.com/calebhart/seedpost/internal/domain"
	"github.com/calebhart/seedpost/internal/llm"
	"github.com/calebhart/seedpost/internal/roster"
)

const (
	minCommentDelay = 15
	maxCommentDelay = 360
	minCommentLen   = 2
	maxCommentLen   = 2000
)

// commentDraftJSON is the JSON shape the model returns for a comment.
type commentDraftJSON struct {
	Body         string `json:"body"`
	DelayMinutes int    `json:"delay_minutes"`
}

// ThreadBuilder grows a bounded comment tree under a generated post.
// Thread depth is capped at two levels: top-level comments, each of which
// may receive at most one nested reply.
type ThreadBuilder struct {
	client        llm.Client
	reg           *roster.Registry
	formatRetries int
	replyChance   float64

	mu  sync.Mutex
	rng *rand.Rand
}

// NewThreadBuilder creates a builder. replyChance is the probability that a
// top-level comment receives a nested reply.
func NewThreadBuilder(client llm.Client, reg *roster.Registry, formatRetries int, replyChance float64, rng *rand.Rand) *ThreadBuilder {
	if formatRetries < 0 {
		formatRetries = 0
	}
	return &ThreadBuilder{
		client:        client,
		reg:           reg,
		formatRetries: formatRetries,
		replyChance:   replyChance,
		rng:           rng,
	}
}

// commentPlan is one decided thread entry: who comments, and who (if anyone)
// replies to them. Planning happens up front under the rng lock so the
// actual generation calls can run concurrently.
type commentPlan struct {
	author      domain.Persona
	replyAuthor *domain.Persona
}

// Build generates the comment thread for a post. Failed comments are simply
// omitted and a failed top-level comment also drops its planned reply, but a
// provider outage is returned so the whole run can abort instead of quietly
// producing a comment-free calendar.
func (b *ThreadBuilder) Build(ctx context.Context, cfg *domain.GenerationConfig, post *domain.Post) ([]CommentDraft, error) {
	plans := b.plan(post)

	type threadResult struct {
		top   *CommentDraft
		reply *CommentDraft
		err   error
	}
	results := make([]threadResult, len(plans))

	var wg sync.WaitGroup
	for i, plan := range plans {
		wg.Add(1)
		go func(i int, plan commentPlan) {
			defer wg.Done()

			top, err := b.generateComment(ctx, cfg, plan.author, post, "")
			if err != nil {
				results[i].err = err
				return
			}
			results[i].top = top

			// A nested reply waits on its parent: it needs the parent's
			// body for context.
			if plan.replyAuthor != nil {
				reply, err := b.generateComment(ctx, cfg, *plan.replyAuthor, post, top.Body)
				if err != nil {
					results[i].err = err
					return
				}
				results[i].reply = reply
			}
		}(i, plan)
	}
	wg.Wait()

	for _, r := range results {
		if r.err != nil && errors.Is(r.err, llm.ErrProvider) {
			return nil, r.err
		}
	}

	var drafts []CommentDraft
	for _, r := range results {
		if r.top == nil {
			continue
		}
		topIdx := len(drafts)
		drafts = append(drafts, *r.top)
		if r.reply != nil {
			reply := *r.reply
			reply.ParentIndex = topIdx
			drafts = append(drafts, reply)
		}
	}
	return drafts, nil
}

// plan decides thread shape: how many top-level comments, who writes them,
// and which get replies.
func (b *ThreadBuilder) plan(post *domain.Post) []commentPlan {
	b.mu.Lock()
	defer b.mu.Unlock()

	n := b.topLevelCount(post.PostType)
	if max := b.reg.Len() - 1; n > max {
		n = max
	}

	usedOnPost := map[string]bool{post.AuthorUsername: true}
	var plans []commentPlan

	for i := 0; i < n; i++ {
		author, err := b.reg.PickCommenter(
			map[string]bool{post.AuthorUsername: true}, usedOnPost)
		if err != nil {
			break
		}
		usedOnPost[author.Username] = true

		plan := commentPlan{author: author}
		if b.rng.Float64() < b.replyChance {
			replier, err := b.reg.PickCommenter(map[string]bool{
				post.AuthorUsername: true,
				author.Username:     true,
			}, usedOnPost)
			if err == nil {
				usedOnPost[replier.Username] = true
				plan.replyAuthor = &replier
			}
		}
		plans = append(plans, plan)
	}
	return plans
}

// topLevelCount sizes the thread by engagement expectations: questions pull
// more answers than stories. Caller holds the rng lock.
func (b *ThreadBuilder) topLevelCount(t domain.PostType) int {
	switch t {
	case domain.PostQuestion:
		return 3 + b.rng.Intn(4) // 3-6
	case domain.PostRecommendation:
		return 2 + b.rng.Intn(4) // 2-5
	default:
		return 2 + b.rng.Intn(3) // 2-4
	}
}

func (b *ThreadBuilder) generateComment(ctx context.Context, cfg *domain.GenerationConfig, persona domain.Persona, post *domain.Post, parentBody string) (*CommentDraft, error) {
	var lastErr error

	for attempt := 0; attempt <= b.formatRetries; attempt++ {
		prompt := commentUserPrompt(cfg, persona, post, parentBody)
		if attempt > 0 {
			prompt += formatReinforcement
		}

		resp, err := b.client.Generate(ctx, llm.GenerateRequest{
			Task:         llm.TaskComment,
			SystemPrompt: commentSystemPrompt,
			UserPrompt:   prompt,
		})
		if err != nil {
			return nil, fmt.Errorf("generating comment by %s: %w", persona.Username, err)
		}

		draft, err := llm.ExtractJSON[commentDraftJSON](resp.Text, validateCommentDraft)
		if err != nil {
			lastErr = err
			continue
		}

		return &CommentDraft{
			Author:       persona.Username,
			Body:         strings.TrimSpace(draft.Body),
			ParentIndex:  -1,
			DelayMinutes: clampDelay(draft.DelayMinutes),
		}, nil
	}

	return nil, fmt.Errorf("comment by %s did not parse after %d attempts: %w",
		persona.Username, b.formatRetries+1, lastErr)
}

func validateCommentDraft(d commentDraftJSON) error {
	body := strings.TrimSpace(d.Body)
	if len(body) < minCommentLen {
		return errors.New("comment body is empty")
	}
	if len(body) > maxCommentLen {
		return fmt.Errorf("comment body too long (%d chars)", len(body))
	}
	return nil
}

func clampDelay(d int) int {
	if d < minCommentDelay {
		return minCommentDelay
	}
	if d > maxCommentDelay {
		return maxCommentDelay
	}
	return d
}
