// internal/state/store.go
package state

import "sync"

// Store is the only shared mutable state between the background jobs
// and the foreground loop. Readers always get a value copy.
type Store struct {
	mu      sync.RWMutex
	control ControlState
	lander  LanderState
	updates uint64
}

// NewStore creates a store holding the startup defaults.
func NewStore() *Store {
	return &Store{
		control: DefaultControl(),
		lander:  DefaultLander(),
	}
}

func (s *Store) Control() ControlState {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.control
}

func (s *Store) SetControl(c ControlState) {
	s.mu.Lock()
	s.control = c
	s.mu.Unlock()
}

func (s *Store) Lander() LanderState {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.lander
}

// UpdateLander applies fn to a copy of the lander state and commits it.
// It is the single write path for LanderState (the lander decode step).
func (s *Store) UpdateLander(fn func(*LanderState)) {
	s.mu.Lock()
	defer s.mu.Unlock()

	next := s.lander
	fn(&next)
	s.lander = next
	s.updates++
}

// Updates reports how many lander responses have been committed.
func (s *Store) Updates() uint64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.updates
}

// Snapshot returns both states under one lock, so they belong to the same instant.
func (s *Store) Snapshot() (LanderState, ControlState) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.lander, s.control
}
