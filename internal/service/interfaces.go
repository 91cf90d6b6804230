package service

import (
	"context"

	"github.com/calebhart/seedpost/internal/domain"
)

// WeekGenerator is the pipeline port: it turns a validated configuration
// into one week's calendar.
type WeekGenerator interface {
	GenerateWeek(ctx context.Context, cfg *domain.GenerationConfig) (*domain.Calendar, error)
}

// CalendarService is the engine's top-level surface: initial generation,
// stored-state continuation, and retrieval of the current calendar.
type CalendarService interface {
	// Generate validates cfg, produces the requested week, and saves it as
	// the session's current state.
	Generate(ctx context.Context, session string, cfg *domain.GenerationConfig) (*domain.Calendar, error)

	// NextWeek advances the session's stored week number by one and
	// regenerates with the stored configuration. Fails with
	// state.ErrNotFound before any initial Generate.
	NextWeek(ctx context.Context, session string) (*domain.Calendar, error)

	// Current returns the session's last generated calendar, or
	// state.ErrNotFound.
	Current(ctx context.Context, session string) (*domain.Calendar, error)

	// Reset discards the session's stored state. Resetting a session that
	// was never generated is a no-op.
	Reset(ctx context.Context, session string) error
}
