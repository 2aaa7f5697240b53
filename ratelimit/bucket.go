// Package ratelimit implements per-identity request admission using a
// discrete-refill token bucket: the whole capacity snaps back at once when
// a full refill period has elapsed, rather than trickling in proportionally
// to elapsed time. Refill is computed lazily on access; there is no
// background timer.
package ratelimit

import "time"

// Bucket is the token bucket state for one identity. It is not safe for
// concurrent use; the owning session serializes access to it.
type Bucket struct {
	capacity     int
	tokens       float64 // clamped to [0, capacity]
	refillPeriod time.Duration
	lastRefill   time.Time
}

// NewBucket returns a bucket initialized to full capacity, anchored at now.
func NewBucket(capacity int, refillPeriod time.Duration, now time.Time) *Bucket {
	return &Bucket{
		capacity:     capacity,
		tokens:       float64(capacity),
		refillPeriod: refillPeriod,
		lastRefill:   now,
	}
}

// refill applies the lazy discrete refill: once a full period has elapsed
// since the last reset point, availability snaps back to capacity and the
// reset point moves to now. Within a period tokens are left untouched - an
// access at period-1s after depletion still sees an empty bucket.
func (b *Bucket) refill(now time.Time) {
	if now.Sub(b.lastRefill) >= b.refillPeriod {
		b.tokens = float64(b.capacity)
		b.lastRefill = now
	}
}

// TryConsume refills lazily, then consumes one token if available. It
// reports whether the request is admitted; on rejection the bucket is left
// unchanged.
func (b *Bucket) TryConsume(now time.Time) bool {
	b.refill(now)
	if b.tokens >= 1 {
		b.tokens--
		return true
	}
	return false
}

// Remaining projects the number of tokens that would be available at now,
// without mutating the bucket.
func (b *Bucket) Remaining(now time.Time) int {
	if now.Sub(b.lastRefill) >= b.refillPeriod {
		return b.capacity
	}
	return int(b.tokens)
}

// Capacity returns the configured maximum number of tokens.
func (b *Bucket) Capacity() int {
	return b.capacity
}
