package generate

import (
	"context"
	"errors"
	"math/rand"
	"sync"
	"time"

	"github.com/calebhart/seedpost/internal/domain"
	"github.com/calebhart/seedpost/internal/llm"
	"github.com/calebhart/seedpost/internal/roster"
	"github.com/calebhart/seedpost/internal/scheduler"
	"github.com/calebhart/seedpost/internal/score"
)

// Options tunes pipeline behavior. Start from DefaultOptions and override;
// zero values are honored as configured, so FormatRetries 0 disables format
// retries and ReplyChance 0 disables nested replies.
type Options struct {
	Weights       score.Weights
	Roster        roster.Options
	FormatRetries int     // re-prompt attempts for unparseable output
	ReplyChance   float64 // probability a top-level comment gets a reply
	Seed          int64   // rng seed; 0 derives one from the clock
	Now           func() time.Time
	Logf          func(format string, args ...any) // nil discards
}

// DefaultOptions returns the stock pipeline tuning.
func DefaultOptions() Options {
	return Options{
		Weights:       score.DefaultWeights(),
		Roster:        roster.DefaultOptions(),
		FormatRetries: 2,
		ReplyChance:   0.35,
		Now:           time.Now,
	}
}

// Pipeline runs the full weekly generation: schedule slots, generate posts
// and threads concurrently, assemble, score.
type Pipeline struct {
	client llm.Client
	opts   Options
}

// NewPipeline creates a pipeline over a generation client.
func NewPipeline(client llm.Client, opts Options) *Pipeline {
	if opts.Now == nil {
		opts.Now = time.Now
	}
	return &Pipeline{client: client, opts: opts}
}

// GenerateWeek produces the Calendar for cfg.WeekNumber. The configuration
// must already be validated. Individual post or comment failures are
// absorbed; a provider outage or a cancelled context aborts the whole run
// with no partial result.
func (p *Pipeline) GenerateWeek(ctx context.Context, cfg *domain.GenerationConfig) (*domain.Calendar, error) {
	now := p.opts.Now()

	seed := p.opts.Seed
	if seed == 0 {
		seed = now.UnixNano()
	}
	rng := rand.New(rand.NewSource(seed))

	rosterOpts := p.opts.Roster
	if rosterOpts.Seed == 0 {
		rosterOpts.Seed = seed + 1
	}
	reg := roster.NewRegistry(cfg.Personas, rosterOpts)

	weekStart, _ := scheduler.WeekRange(now.Year(), cfg.WeekNumber)
	slots, repeated := scheduler.BuildSlots(cfg, weekStart, rng)
	if repeated {
		p.logf("week %d: posts_per_week exceeds distinct subreddit/query combinations; repeating assignments", cfg.WeekNumber)
	}

	gen := NewPostGenerator(p.client, p.opts.FormatRetries)
	threads := NewThreadBuilder(p.client, reg, p.opts.FormatRetries, p.opts.ReplyChance, rng)

	// One task per slot; each slot's thread fans out further inside Build.
	// The client's semaphore keeps total provider concurrency bounded.
	results := make([]SlotResult, len(slots))
	var wg sync.WaitGroup
	for i, slot := range slots {
		wg.Add(1)
		go func(i int, slot scheduler.Slot) {
			defer wg.Done()

			persona := reg.PickPostAuthor()
			post, err := gen.Generate(ctx, cfg, persona, slot)
			if err != nil {
				results[i] = SlotResult{Slot: slot, Err: err}
				return
			}
			comments, err := threads.Build(ctx, cfg, post)
			if err != nil {
				results[i] = SlotResult{Slot: slot, Err: err}
				return
			}
			results[i] = SlotResult{Slot: slot, Post: post, Comments: comments}
		}(i, slot)
	}
	wg.Wait()

	if err := ctx.Err(); err != nil {
		// Completed posts are discarded; partial calendars are never kept.
		return nil, err
	}

	for _, r := range results {
		if r.Err == nil {
			continue
		}
		if errors.Is(r.Err, llm.ErrProvider) {
			// Provider outage is fatal for the request, not a per-item skip.
			return nil, r.Err
		}
		p.logf("week %d slot %d (%s): %v", cfg.WeekNumber, r.Slot.Index, r.Slot.Subreddit, r.Err)
	}

	cal := Assemble(cfg.WeekNumber, now.UTC(), results)
	cal.QualityScore = score.Score(score.Input{
		Posts:     cal.Posts,
		Comments:  cal.Comments,
		Personas:  cfg.Personas,
		SlotCount: len(slots),
		Weights:   p.opts.Weights,
	})

	return cal, nil
}

func (p *Pipeline) logf(format string, args ...any) {
	if p.opts.Logf != nil {
		p.opts.Logf(format, args...)
	}
}
