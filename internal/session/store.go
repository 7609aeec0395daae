package session

import (
	"sync"

	"github.com/google/uuid"
)

// Store maps session identifiers to live sessions for the dashboard
// backend. It is the only cross-request structure; the sessions themselves
// stay independent of each other.
type Store struct {
	mu       sync.RWMutex
	sessions map[string]*Session
}

func NewStore() *Store {
	return &Store{sessions: make(map[string]*Session)}
}

// Create registers a new session for an authenticated user.
func (s *Store) Create(username, token string) *Session {
	sess := newSession(uuid.NewString(), username, token)
	s.mu.Lock()
	s.sessions[sess.ID()] = sess
	s.mu.Unlock()
	return sess
}

// Get looks a session up by its identifier.
func (s *Store) Get(id string) (*Session, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	sess, ok := s.sessions[id]
	return sess, ok
}

// Delete removes a session, e.g. on logout.
func (s *Store) Delete(id string) {
	s.mu.Lock()
	delete(s.sessions, id)
	s.mu.Unlock()
}
