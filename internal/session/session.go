package session

import (
	"sync"

	"github.com/google/uuid"
)

// State is a point-in-time view of the authentication signal.
type State struct {
	UserID        string
	GuestID       string
	Authenticated bool
}

// Watcher receives the new state after every transition.
type Watcher func(State)

// Session is the process-wide authentication signal. Stores register
// watchers and react to login/logout independently of each other; no store
// calls another.
type Session struct {
	mu       sync.Mutex
	state    State
	watchers []Watcher
}

// New returns an unauthenticated session with a fresh guest id.
func New() *Session {
	return &Session{
		state: State{GuestID: uuid.NewString()},
	}
}

// Current returns the current state.
func (s *Session) Current() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// UserID returns the authenticated user id, or "" when signed out.
func (s *Session) UserID() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.state.Authenticated {
		return ""
	}
	return s.state.UserID
}

// Authenticated reports whether a user is signed in.
func (s *Session) Authenticated() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.Authenticated
}

// Watch registers fn for future transitions. Watchers run synchronously on
// the goroutine that calls Login or Logout, outside the session mutex.
func (s *Session) Watch(fn Watcher) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.watchers = append(s.watchers, fn)
}

// Login transitions to the authenticated state for userID. A login while
// already authenticated as the same user is a no-op.
func (s *Session) Login(userID string) {
	s.mu.Lock()
	if s.state.Authenticated && s.state.UserID == userID {
		s.mu.Unlock()
		return
	}
	s.state.UserID = userID
	s.state.Authenticated = true
	state, watchers := s.state, s.snapshotWatchers()
	s.mu.Unlock()

	for _, fn := range watchers {
		fn(state)
	}
}

// Logout clears the authenticated user and mints a new guest id.
func (s *Session) Logout() {
	s.mu.Lock()
	if !s.state.Authenticated {
		s.mu.Unlock()
		return
	}
	s.state = State{GuestID: uuid.NewString()}
	state, watchers := s.state, s.snapshotWatchers()
	s.mu.Unlock()

	for _, fn := range watchers {
		fn(state)
	}
}

func (s *Session) snapshotWatchers() []Watcher {
	dup := make([]Watcher, len(s.watchers))
	copy(dup, s.watchers)
	return dup
}
