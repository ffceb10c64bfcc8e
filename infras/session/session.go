package session

import (
	"sync"
	"time"

	"innkeep/config"
)

// Session is the credential issued by the hosted identity provider. The
// access token is opaque to this service; it is attached as a bearer
// credential to every data-backend call.
type Session struct {
	AccessToken string
	Email       string
	ExpiresAt   time.Time
}

// Listener observes session transitions (sign-in, sign-out).
type Listener func(current *Session)

// Store is the single owner of the current session. It replaces the
// process-wide cached-token variable of the original design: callers that
// need a credential receive the store and ask it at call time, and auth
// transitions replace the session wholesale through exactly one path.
type Store struct {
	mu        sync.RWMutex
	current   *Session
	anonKey   string
	listeners []Listener
}

func NewStore(cfg *config.Config) *Store {
	return &Store{
		anonKey: cfg.Backend.APIKey,
	}
}

// Set replaces the current session and notifies listeners. Passing nil
// signs the store out.
func (s *Store) Set(sess *Session) {
	s.mu.Lock()
	s.current = sess
	listeners := make([]Listener, len(s.listeners))
	copy(listeners, s.listeners)
	s.mu.Unlock()

	for _, listener := range listeners {
		listener(sess)
	}
}

// Clear signs out.
func (s *Store) Clear() {
	s.Set(nil)
}

// Current returns a copy of the session, or nil when signed out.
func (s *Store) Current() *Session {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.current == nil {
		return nil
	}

	copied := *s.current

	return &copied
}

// Token returns the bearer credential for a backend call: the session's
// access token when signed in, otherwise the anonymous API key.
func (s *Store) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.current == nil || s.current.AccessToken == "" {
		return s.anonKey
	}

	return s.current.AccessToken
}

// SignedIn reports whether an authenticated session is held.
func (s *Store) SignedIn() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.current != nil
}

// OnChange registers a listener for session transitions. Listeners are
// invoked synchronously in registration order.
func (s *Store) OnChange(listener Listener) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.listeners = append(s.listeners, listener)
}
