package sessions

import (
	"sync"
	"time"
)

// Registry owns every session, keyed by username with one session per
// identity. It is constructed at process start and shared by all in-flight
// requests.
type Registry struct {
	mu           sync.RWMutex
	sessions     map[string]*Session
	capacity     int
	refillPeriod time.Duration
	sessionTTL   time.Duration
}

// NewRegistry creates a Registry whose sessions carry a bucket of the
// given capacity and refill period and expire sessionTTL after creation.
func NewRegistry(capacity int, refillPeriod, sessionTTL time.Duration) *Registry {
	return &Registry{
		sessions:     make(map[string]*Session),
		capacity:     capacity,
		refillPeriod: refillPeriod,
		sessionTTL:   sessionTTL,
	}
}

// GetOrCreate returns the live session for username, constructing a fresh
// one (full bucket, fresh createdAt) when none exists or the prior entry
// has expired. A live session is returned unchanged, so a second login for
// the same identity never resets a drained bucket.
func (r *Registry) GetOrCreate(username string, now time.Time) *Session {
	r.mu.Lock()
	defer r.mu.Unlock()

	if session, ok := r.sessions[username]; ok && !session.IsExpired(now, r.sessionTTL) {
		return session
	}

	session := newSession(username, r.capacity, r.refillPeriod, now)
	r.sessions[username] = session
	return session
}

// Resolve returns the session for username as-is, creating a fresh one
// only when none exists at all. Unlike GetOrCreate it hands back an
// expired entry unchanged: expired sessions are rejected by the admission
// pipeline and replaced only by a new login or registration.
func (r *Registry) Resolve(username string, now time.Time) *Session {
	r.mu.Lock()
	defer r.mu.Unlock()

	if session, ok := r.sessions[username]; ok {
		return session
	}

	session := newSession(username, r.capacity, r.refillPeriod, now)
	r.sessions[username] = session
	return session
}

// SessionTTL returns the configured absolute session lifetime.
func (r *Registry) SessionTTL() time.Duration {
	return r.sessionTTL
}

// CountActive returns the number of non-expired sessions in the registry.
func (r *Registry) CountActive(now time.Time) int {
	r.mu.RLock()
	defer r.mu.RUnlock()

	count := 0
	for _, session := range r.sessions {
		if !session.IsExpired(now, r.sessionTTL) {
			count++
		}
	}
	return count
}

// Clear empties the registry. Test/reset hook; user records in the
// credential store are untouched.
func (r *Registry) Clear() {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.sessions = make(map[string]*Session)
}
