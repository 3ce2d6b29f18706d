// Package prompt implements the blocking confirmation mechanism. The
// slot has capacity one: a second request while one is pending is
// rejected with ErrPending rather than silently replacing the first.
package prompt

import (
	"sync"

	"github.com/pkg/errors"
)

// ErrPending is returned when a confirmation is already awaiting an
// answer.
var ErrPending = errors.New("another confirmation is already pending")

// slot is the single-occupancy guard shared by implementations.
type slot struct {
	mu   sync.Mutex
	busy bool
}

func (s *slot) acquire() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.busy {
		return ErrPending
	}
	s.busy = true
	return nil
}

func (s *slot) release() {
	s.mu.Lock()
	s.busy = false
	s.mu.Unlock()
}
