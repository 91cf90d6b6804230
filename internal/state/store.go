package state

import (
	"context"
	"errors"
	"time"

	"github.com/calebhart/seedpost/internal/domain"
)

// ErrNotFound indicates no calendar has ever been saved for the session.
var ErrNotFound = errors.New("no calendar saved for session")

// Snapshot pairs the most recently produced calendar with the configuration
// that produced it. The store is only ever written with fully assembled,
// scored calendars.
type Snapshot struct {
	Config   *domain.GenerationConfig `json:"config"`
	Calendar *domain.Calendar         `json:"calendar"`
	SavedAt  time.Time                `json:"saved_at"`
}

// Store holds per-session generation state so "generate next week" can run
// without the caller re-supplying full history.
type Store interface {
	// Save overwrites the session's state.
	Save(ctx context.Context, session string, snap Snapshot) error

	// Load returns the last saved snapshot or ErrNotFound.
	Load(ctx context.Context, session string) (*Snapshot, error)

	// Clear removes the session's state. Clearing an absent session is a no-op.
	Clear(ctx context.Context, session string) error
}
