package prompt

import (
	"sync"

	"github.com/santarita/portal/core"
)

// Stub is a scripted Confirmer for tests. It answers with Replies in
// order (repeating the last one when exhausted) and records every
// message it was asked.
type Stub struct {
	slot slot

	mu      sync.Mutex
	Replies []bool
	Err     error
	asked   []string
	next    int
}

var _ core.Confirmer = (*Stub)(nil)

func NewStub(replies ...bool) *Stub {
	return &Stub{Replies: replies}
}

func (s *Stub) Confirm(message string) (bool, error) {
	if err := s.slot.acquire(); err != nil {
		return false, err
	}
	defer s.slot.release()

	s.mu.Lock()
	defer s.mu.Unlock()
	s.asked = append(s.asked, message)
	if s.Err != nil {
		return false, s.Err
	}
	if len(s.Replies) == 0 {
		return true, nil
	}
	reply := s.Replies[s.next]
	if s.next < len(s.Replies)-1 {
		s.next++
	}
	return reply, nil
}

// Asked returns the confirmation messages received so far.
func (s *Stub) Asked() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]string, len(s.asked))
	copy(out, s.asked)
	return out
}
