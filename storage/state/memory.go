package state

import (
	"sync"

	"github.com/santarita/portal/core/session"
)

// MemScope is an in-memory Scope for tests.
type MemScope struct {
	mu     sync.Mutex
	values map[string]string
}

var _ session.Scope = (*MemScope)(nil)

func NewMemScope() *MemScope {
	return &MemScope{values: map[string]string{}}
}

func (s *MemScope) Get(key string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	value, ok := s.values[key]
	if !ok {
		return "", session.ErrNoValue
	}
	return value, nil
}

func (s *MemScope) Set(key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.values[key] = value
	return nil
}

func (s *MemScope) Delete(key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.values, key)
	return nil
}

// Len reports how many keys the scope holds.
func (s *MemScope) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.values)
}
