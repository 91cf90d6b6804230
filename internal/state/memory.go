package state

import (
	"context"
	"sync"
)

// MemoryStore keeps session state in process memory. It is the default
// store; state survives across calls but not across restarts.
type MemoryStore struct {
	mu       sync.RWMutex
	sessions map[string]Snapshot
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{sessions: make(map[string]Snapshot)}
}

func (s *MemoryStore) Save(_ context.Context, session string, snap Snapshot) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	// Deep-copy the config so later caller mutations can't reach stored state.
	snap.Config = snap.Config.Clone()
	s.sessions[session] = snap
	return nil
}

func (s *MemoryStore) Load(_ context.Context, session string) (*Snapshot, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	snap, ok := s.sessions[session]
	if !ok {
		return nil, ErrNotFound
	}
	out := snap
	out.Config = snap.Config.Clone()
	return &out, nil
}

func (s *MemoryStore) Clear(_ context.Context, session string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, session)
	return nil
}
