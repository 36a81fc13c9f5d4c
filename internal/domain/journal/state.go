package journal

import "sync"

// State remembers the batch served by the previous invocation.
// It starts empty and lives for the lifetime of the process.
type State struct {
	mu   sync.RWMutex
	last Batch
}

// NewState returns an empty State.
func NewState() *State {
	return &State{}
}

// Last returns a copy of the previously served batch (nil before the first one).
func (s *State) Last() Batch {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.last.Clone()
}

// Store replaces the remembered batch.
func (s *State) Store(b Batch) {
	c := b.Clone()
	s.mu.Lock()
	s.last = c
	s.mu.Unlock()
}
