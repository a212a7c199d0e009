package visibility

import "sync"

// State is the process-wide "window hidden" flag.
// It is consulted only on hosts that cannot report live window visibility;
// everywhere else the host is the single source of truth.
// The zero value is ready to use and reports not hidden.
type State struct {
	mu     sync.Mutex
	hidden bool
}

// New creates a State in the initial (not hidden) position.
func New() *State {
	return &State{}
}

// Read returns the current flag value.
func (s *State) Read() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.hidden
}

// Toggle flips the flag and returns the new value.
// The lock covers only the read-modify-write; callers act on the returned
// value after it is released.
func (s *State) Toggle() bool {
	s.mu.Lock()
	s.hidden = !s.hidden
	next := s.hidden
	s.mu.Unlock()
	return next
}
