package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/calebhart/seedpost/internal/domain"
	"github.com/calebhart/seedpost/internal/generate"
	"github.com/calebhart/seedpost/internal/state"
	"github.com/calebhart/seedpost/internal/testutil"
)

func newTestService(client *testutil.FakeClient) (CalendarService, *state.MemoryStore) {
	opts := generate.DefaultOptions()
	opts.Seed = 42
	opts.Now = func() time.Time { return time.Date(2026, 3, 4, 10, 0, 0, 0, time.UTC) }
	store := state.NewMemoryStore()
	return NewCalendarService(generate.NewPipeline(client, opts), store), store
}

func TestGenerateThenNextWeeks(t *testing.T) {
	ctx := context.Background()
	client := testutil.NewFakeClient()
	svc, store := newTestService(client)
	cfg := testutil.Config()

	first, err := svc.Generate(ctx, "s", cfg)
	require.NoError(t, err)
	assert.Equal(t, 1, first.WeekNumber)

	second, err := svc.NextWeek(ctx, "s")
	require.NoError(t, err)
	assert.Equal(t, 2, second.WeekNumber)

	third, err := svc.NextWeek(ctx, "s")
	require.NoError(t, err)
	assert.Equal(t, 3, third.WeekNumber)

	// Continuations reuse the original configuration except for the week.
	snap, err := store.Load(ctx, "s")
	require.NoError(t, err)
	assert.Equal(t, 3, snap.Config.WeekNumber)
	assert.Equal(t, cfg.CompanyInfo, snap.Config.CompanyInfo)
	assert.Equal(t, cfg.Personas, snap.Config.Personas)
	assert.Equal(t, cfg.Subreddits, snap.Config.Subreddits)
	assert.Equal(t, cfg.TargetQueries, snap.Config.TargetQueries)
	assert.Equal(t, third.WeekNumber, snap.Calendar.WeekNumber)
}

func TestNextWeekWithoutState(t *testing.T) {
	client := testutil.NewFakeClient()
	svc, _ := newTestService(client)

	_, err := svc.NextWeek(context.Background(), "fresh")
	assert.ErrorIs(t, err, state.ErrNotFound)
	assert.Zero(t, client.Calls(), "no generation work before state is loaded")
}

func TestGenerateRejectsInvalidConfig(t *testing.T) {
	client := testutil.NewFakeClient()
	svc, store := newTestService(client)

	cfg := testutil.Config()
	cfg.CompanyInfo = "too short"

	_, err := svc.Generate(context.Background(), "s", cfg)
	require.Error(t, err)

	var verr *domain.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "company_info", verr.Field)
	assert.Zero(t, client.Calls(), "validation happens before any provider call")

	_, err = store.Load(context.Background(), "s")
	assert.ErrorIs(t, err, state.ErrNotFound, "rejected requests leave no state")
}

func TestNextWeekCapsAtYearEnd(t *testing.T) {
	ctx := context.Background()
	client := testutil.NewFakeClient()
	svc, _ := newTestService(client)

	cfg := testutil.Config()
	cfg.WeekNumber = domain.MaxWeekNumber

	_, err := svc.Generate(ctx, "s", cfg)
	require.NoError(t, err)

	_, err = svc.NextWeek(ctx, "s")
	var verr *domain.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "week_number", verr.Field)
}

func TestFailedGenerationPreservesPriorState(t *testing.T) {
	ctx := context.Background()
	client := testutil.NewFakeClient()
	svc, store := newTestService(client)

	_, err := svc.Generate(ctx, "s", testutil.Config())
	require.NoError(t, err)

	cancelled, cancel := context.WithCancel(ctx)
	cancel()
	_, err = svc.NextWeek(cancelled, "s")
	require.Error(t, err)

	snap, loadErr := store.Load(ctx, "s")
	require.NoError(t, loadErr)
	assert.Equal(t, 1, snap.Config.WeekNumber, "failed continuation must not advance stored state")
}

func TestCurrent(t *testing.T) {
	ctx := context.Background()
	client := testutil.NewFakeClient()
	svc, _ := newTestService(client)

	_, err := svc.Current(ctx, "s")
	assert.ErrorIs(t, err, state.ErrNotFound)

	generated, err := svc.Generate(ctx, "s", testutil.Config())
	require.NoError(t, err)

	current, err := svc.Current(ctx, "s")
	require.NoError(t, err)
	assert.Equal(t, generated.WeekNumber, current.WeekNumber)
	assert.Equal(t, generated.TotalPosts, current.TotalPosts)
}

func TestReset(t *testing.T) {
	ctx := context.Background()
	client := testutil.NewFakeClient()
	svc, _ := newTestService(client)

	_, err := svc.Generate(ctx, "s", testutil.Config())
	require.NoError(t, err)

	require.NoError(t, svc.Reset(ctx, "s"))

	_, err = svc.Current(ctx, "s")
	assert.ErrorIs(t, err, state.ErrNotFound)
	_, err = svc.NextWeek(ctx, "s")
	assert.ErrorIs(t, err, state.ErrNotFound, "a reset session requires a fresh Generate")
}

func TestResetUnknownSessionIsNoop(t *testing.T) {
	client := testutil.NewFakeClient()
	svc, _ := newTestService(client)
	assert.NoError(t, svc.Reset(context.Background(), "never-generated"))
}

func TestSessionsAreIsolated(t *testing.T) {
	ctx := context.Background()
	client := testutil.NewFakeClient()
	svc, _ := newTestService(client)

	cfgA := testutil.Config()
	cfgB := testutil.Config()
	cfgB.WeekNumber = 10

	_, err := svc.Generate(ctx, "a", cfgA)
	require.NoError(t, err)
	_, err = svc.Generate(ctx, "b", cfgB)
	require.NoError(t, err)

	_, err = svc.NextWeek(ctx, "a")
	require.NoError(t, err)

	calB, err := svc.Current(ctx, "b")
	require.NoError(t, err)
	assert.Equal(t, 10, calB.WeekNumber, "advancing one session must not touch another")
}
