// Package sessions tracks per-identity runtime state: a fixed-lifetime
// session with an embedded rate-limit bucket and a usage counter. Sessions
// are local bookkeeping; the signed token remains the source of truth for
// identity.
package sessions

import (
	"sync"
	"time"

	"github.com/jrsteele09/go-trade-insights/ratelimit"
)

// AdmitResult is the outcome of a single admission attempt on a session.
type AdmitResult int

const (
	AdmitOK AdmitResult = iota
	AdmitSessionExpired
	AdmitRateLimited
)

// Session is the per-identity state. All mutating access goes through its
// own mutex, which gives the authentication pipeline per-identity mutual
// exclusion over expiry check, bucket consumption and usage accounting.
// Operations for distinct identities never serialize with each other.
type Session struct {
	mu         sync.Mutex
	username   string
	createdAt  time.Time
	bucket     *ratelimit.Bucket
	usageCount uint64
}

func newSession(username string, capacity int, refillPeriod time.Duration, now time.Time) *Session {
	return &Session{
		username:  username,
		createdAt: now,
		bucket:    ratelimit.NewBucket(capacity, refillPeriod, now),
	}
}

func (s *Session) Username() string { return s.username }

func (s *Session) CreatedAt() time.Time { return s.createdAt }

// IsExpired reports whether the session's absolute lifetime has run out.
// Sessions are fixed-duration from creation: activity does not extend
// them, only a new login does.
func (s *Session) IsExpired(now time.Time, ttl time.Duration) bool {
	return now.Sub(s.createdAt) >= ttl
}

// Admit runs the session-local part of the admission pipeline atomically:
// expiry check, then rate-limit consume, then usage accounting. The usage
// counter is incremented only when the request is admitted. An expired
// session is not renewed by this check.
func (s *Session) Admit(now time.Time, ttl time.Duration) AdmitResult {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.IsExpired(now, ttl) {
		return AdmitSessionExpired
	}
	if !s.bucket.TryConsume(now) {
		return AdmitRateLimited
	}
	s.usageCount++
	return AdmitOK
}

// UsageCount returns the number of requests admitted on this session.
func (s *Session) UsageCount() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.usageCount
}

// Remaining reports the rate-limit tokens currently available, applying
// the same lazy-refill projection as consumption without mutating state.
func (s *Session) Remaining(now time.Time) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.bucket.Remaining(now)
}
