package memory

import (
	"context"
	"maps"
	"slices"
	"sync"

	"github.com/aretw0/walkthrough/pkg/domain"
)

// Store keeps tour states in a map. Safe for concurrent use.
// States are copied on the way in and out so callers never share them with the store.
type Store struct {
	mu     sync.RWMutex
	states map[string]*domain.State
}

// NewStore creates an empty store.
func NewStore() *Store {
	return &Store{states: make(map[string]*domain.State)}
}

func (s *Store) Save(_ context.Context, sessionID string, state *domain.State) error {
	snapshot := state.Snapshot()

	s.mu.Lock()
	s.states[sessionID] = snapshot
	s.mu.Unlock()
	return nil
}

func (s *Store) Load(_ context.Context, sessionID string) (*domain.State, error) {
	s.mu.RLock()
	state, ok := s.states[sessionID]
	s.mu.RUnlock()

	if !ok {
		return nil, domain.ErrSessionNotFound
	}
	return state.Snapshot(), nil
}

// Delete forgets a session. Unknown sessions are ignored.
func (s *Store) Delete(_ context.Context, sessionID string) error {
	s.mu.Lock()
	delete(s.states, sessionID)
	s.mu.Unlock()
	return nil
}

// List returns the session IDs in lexical order.
func (s *Store) List(_ context.Context) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Sorted(maps.Keys(s.states)), nil
}
