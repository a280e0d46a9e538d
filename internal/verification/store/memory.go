package store

import (
	"context"
	"sync"

	"assetoracle/internal/verification"
)

// InMemoryStore keeps runs in a map for tests and local runs.
type InMemoryStore struct {
	mu   sync.RWMutex
	runs map[string]verification.Run
}

func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{runs: make(map[string]verification.Run)}
}

func (s *InMemoryStore) Save(_ context.Context, run verification.Run) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.runs[run.ID] = run
	return nil
}

func (s *InMemoryStore) Find(_ context.Context, id string) (verification.Run, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if run, ok := s.runs[id]; ok {
		return run, nil
	}
	return verification.Run{}, ErrRunNotFound
}
