package service

import (
	"context"
	"fmt"
	"sync"

	"github.com/calebhart/seedpost/internal/domain"
	"github.com/calebhart/seedpost/internal/state"
)

type calendarService struct {
	gen   WeekGenerator
	store state.Store

	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

// NewCalendarService wires the generation pipeline to the state store.
func NewCalendarService(gen WeekGenerator, store state.Store) CalendarService {
	return &calendarService{
		gen:   gen,
		store: store,
		locks: make(map[string]*sync.Mutex),
	}
}

// sessionLock returns the mutex serializing this session's
// load-generate-save sequence. Two concurrent "next week" requests must not
// both increment from the same stale week number.
func (s *calendarService) sessionLock(session string) *sync.Mutex {
	s.mu.Lock()
	defer s.mu.Unlock()
	l, ok := s.locks[session]
	if !ok {
		l = &sync.Mutex{}
		s.locks[session] = l
	}
	return l
}

func (s *calendarService) Generate(ctx context.Context, session string, cfg *domain.GenerationConfig) (*domain.Calendar, error) {
	// Rejected before any generation work starts; no state is touched.
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	lock := s.sessionLock(session)
	lock.Lock()
	defer lock.Unlock()

	return s.run(ctx, session, cfg)
}

func (s *calendarService) NextWeek(ctx context.Context, session string) (*domain.Calendar, error) {
	lock := s.sessionLock(session)
	lock.Lock()
	defer lock.Unlock()

	snap, err := s.store.Load(ctx, session)
	if err != nil {
		return nil, err
	}

	cfg := snap.Config.Clone()
	cfg.WeekNumber++
	if cfg.WeekNumber > domain.MaxWeekNumber {
		return nil, &domain.ValidationError{
			Field:   "week_number",
			Message: fmt.Sprintf("cannot advance past week %d", domain.MaxWeekNumber),
		}
	}

	return s.run(ctx, session, cfg)
}

func (s *calendarService) Reset(ctx context.Context, session string) error {
	lock := s.sessionLock(session)
	lock.Lock()
	defer lock.Unlock()

	return s.store.Clear(ctx, session)
}

func (s *calendarService) Current(ctx context.Context, session string) (*domain.Calendar, error) {
	snap, err := s.store.Load(ctx, session)
	if err != nil {
		return nil, err
	}
	return snap.Calendar, nil
}

// run executes the pipeline and persists the result. Caller holds the
// session lock. The store is only written on a fully assembled, scored
// calendar; any pipeline error leaves prior state untouched.
func (s *calendarService) run(ctx context.Context, session string, cfg *domain.GenerationConfig) (*domain.Calendar, error) {
	cal, err := s.gen.GenerateWeek(ctx, cfg)
	if err != nil {
		return nil, err
	}

	snap := state.Snapshot{
		Config:   cfg,
		Calendar: cal,
		SavedAt:  cal.GeneratedAt,
	}
	if err := s.store.Save(ctx, session, snap); err != nil {
		return nil, fmt.Errorf("saving calendar state: %w", err)
	}

	return cal, nil
}
