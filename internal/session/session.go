package session

import (
	"context"
	"sync"

	"playconsole/internal/studio"
)

// FetchFunc downloads a result bundle from its location URI.
type FetchFunc func(ctx context.Context, location string) (*studio.ResultBundle, error)

// Session owns the mutable state of one interactive user: the bearer token,
// the current job, and the result bundle cached after the first terminal
// success. Sessions never share state; two browser tabs are two sessions.
type Session struct {
	mu sync.Mutex

	id       string
	username string
	token    string

	handle *studio.JobHandle
	last   studio.JobStatus
	polled bool
	bundle *studio.ResultBundle
}

func newSession(id, username, token string) *Session {
	return &Session{id: id, username: username, token: token}
}

// ID returns the session identifier handed to the browser.
func (s *Session) ID() string { return s.id }

// Username returns the identity the session authenticated as.
func (s *Session) Username() string { return s.username }

// Token returns the bearer token. The token is treated as valid until an
// upstream call rejects it; there is no local expiry bookkeeping.
func (s *Session) Token() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.token
}

// SetJob makes handle the session's current job, discarding the previous
// job's status and cached bundle.
func (s *Session) SetJob(handle studio.JobHandle) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.handle = &handle
	s.last = studio.JobStatus{Phase: studio.PhasePending}
	s.polled = false
	s.bundle = nil
}

// Job returns the current job handle, if one was submitted.
func (s *Session) Job() (studio.JobHandle, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.handle == nil {
		return studio.JobHandle{}, false
	}
	return *s.handle, true
}

// RecordStatus stores a poll observation, superseding the previous one.
func (s *Session) RecordStatus(status studio.JobStatus) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.last = status
	s.polled = true
}

// LastStatus returns the most recent observation for the current job.
func (s *Session) LastStatus() (studio.JobStatus, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.last, s.polled
}

// Result returns the bundle for the current job, fetching it on first call
// and serving the cached copy afterward. Rendering twice never fetches
// twice. A fetch failure leaves the cache empty so a user-driven retry can
// try again.
func (s *Session) Result(ctx context.Context, fetch FetchFunc) (*studio.ResultBundle, error) {
	s.mu.Lock()
	if s.bundle != nil {
		bundle := s.bundle
		s.mu.Unlock()
		return bundle, nil
	}
	handle := s.handle
	s.mu.Unlock()

	if handle == nil || handle.ResultLocation == "" {
		return nil, studio.ErrFetch
	}
	bundle, err := fetch(ctx, handle.ResultLocation)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	if s.bundle == nil {
		s.bundle = bundle
	}
	bundle = s.bundle
	s.mu.Unlock()
	return bundle, nil
}

// CachedResult returns the bundle when it has already been fetched.
func (s *Session) CachedResult() (*studio.ResultBundle, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.bundle, s.bundle != nil
}
