package wizard

import (
	"context"
	"sync"
	"time"
)

type memoryStore struct {
	mu       sync.Mutex
	sessions map[string]State
	inSubmit map[string]bool
}

// NewMemoryStore builds an in-memory session store for testing and dev mode.
// TTLs are ignored; sessions live until deleted.
func NewMemoryStore() Store {
	return &memoryStore{
		sessions: make(map[string]State),
		inSubmit: make(map[string]bool),
	}
}

func (s *memoryStore) Save(_ context.Context, st State, _ time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[st.SessionID] = st
	return nil
}

func (s *memoryStore) Get(_ context.Context, sessionID string) (State, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	st, ok := s.sessions[sessionID]
	if !ok {
		return State{}, ErrSessionNotFound
	}
	return st, nil
}

func (s *memoryStore) Delete(_ context.Context, sessionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, sessionID)
	delete(s.inSubmit, sessionID)
	return nil
}

func (s *memoryStore) BeginSubmit(_ context.Context, sessionID string, _ time.Duration) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.inSubmit[sessionID] {
		return false, nil
	}
	s.inSubmit[sessionID] = true
	return true, nil
}

func (s *memoryStore) EndSubmit(_ context.Context, sessionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.inSubmit, sessionID)
	return nil
}
