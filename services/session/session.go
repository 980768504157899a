package session

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
)

// ValidationError is a recoverable input problem shown back to the user.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// Session is the state of one visitor: logged out, or logged in under a name.
type Session struct {
	ID        string
	Username  string
	LoggedIn  bool
	ExpiresAt time.Time
}

// Login moves the session to the logged-in state. An empty name leaves the
// session unchanged.
func (s *Session) Login(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return &ValidationError{Field: "username", Message: "please enter your name"}
	}
	s.Username = name
	s.LoggedIn = true
	return nil
}

// Logout forgets the username unconditionally.
func (s *Session) Logout() {
	s.Username = ""
	s.LoggedIn = false
}

// Registry keeps sessions in memory, keyed by cookie id. Nothing survives a
// restart. A saved session lives for ttl, the same as its cookie.
type Registry struct {
	mu       sync.RWMutex
	sessions map[string]Session
	ttl      time.Duration
	now      func() time.Time
}

func NewRegistry(ttl time.Duration) *Registry {
	return &Registry{sessions: make(map[string]Session), ttl: ttl, now: time.Now}
}

// Get returns a copy of the session for id, or a fresh logged-out session
// with a new id when id is unknown or expired.
func (r *Registry) Get(id string) Session {
	r.mu.RLock()
	s, ok := r.sessions[id]
	r.mu.RUnlock()
	if ok && r.now().Before(s.ExpiresAt) {
		return s
	}
	if ok {
		r.Delete(id)
	}
	return Session{ID: uuid.New().String()}
}

// Save stores s and starts its lifetime.
func (r *Registry) Save(s Session) {
	r.mu.Lock()
	defer r.mu.Unlock()
	s.ExpiresAt = r.now().Add(r.ttl)
	r.sessions[s.ID] = s
}

func (r *Registry) Delete(id string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.sessions, id)
}

// Sweep drops expired sessions and returns how many were removed.
func (r *Registry) Sweep() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	now := r.now()
	removed := 0
	for id, s := range r.sessions {
		if !now.Before(s.ExpiresAt) {
			delete(r.sessions, id)
			removed++
		}
	}
	return removed
}

// RunSweeper calls Sweep every interval until ctx is done.
func (r *Registry) RunSweeper(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			r.Sweep()
		}
	}
}

func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.sessions)
}
