package sessions_test

import (
	"testing"
	"time"

	"github.com/jrsteele09/go-trade-insights/sessions"
	"github.com/stretchr/testify/require"
)

const (
	testUsername = "johndoe"
	capacity     = 5
	refillPeriod = 60 * time.Second
	sessionTTL   = 30 * time.Minute
)

func newRegistry() (*sessions.Registry, time.Time) {
	start := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	return sessions.NewRegistry(capacity, refillPeriod, sessionTTL), start
}

func TestGetOrCreateReturnsLiveSession(t *testing.T) {
	registry, start := newRegistry()

	first := registry.GetOrCreate(testUsername, start)
	second := registry.GetOrCreate(testUsername, start.Add(time.Minute))
	require.Same(t, first, second)
}

func TestGetOrCreateDoesNotResetLiveSession(t *testing.T) {
	registry, start := newRegistry()

	session := registry.GetOrCreate(testUsername, start)
	for i := 0; i < capacity; i++ {
		require.Equal(t, sessions.AdmitOK, session.Admit(start, sessionTTL))
	}
	require.Equal(t, 0, session.Remaining(start))

	// A second login while the session is live must not launder the
	// drained bucket.
	again := registry.GetOrCreate(testUsername, start.Add(time.Minute))
	require.Same(t, session, again)
	require.Equal(t, 0, again.Remaining(start))
}

func TestGetOrCreateReplacesExpiredSession(t *testing.T) {
	registry, start := newRegistry()

	stale := registry.GetOrCreate(testUsername, start)
	later := start.Add(sessionTTL)
	require.True(t, stale.IsExpired(later, sessionTTL))

	fresh := registry.GetOrCreate(testUsername, later)
	require.NotSame(t, stale, fresh)
	require.Equal(t, later, fresh.CreatedAt())
	require.Equal(t, capacity, fresh.Remaining(later))
}

func TestResolveKeepsExpiredSession(t *testing.T) {
	registry, start := newRegistry()

	stale := registry.GetOrCreate(testUsername, start)
	later := start.Add(sessionTTL + time.Minute)

	// Request-time resolution hands back the expired entry for the
	// pipeline to reject; only a login replaces it.
	resolved := registry.Resolve(testUsername, later)
	require.Same(t, stale, resolved)
	require.Equal(t, sessions.AdmitSessionExpired, resolved.Admit(later, sessionTTL))
}

func TestResolveCreatesWhenAbsent(t *testing.T) {
	registry, start := newRegistry()

	session := registry.Resolve(testUsername, start)
	require.NotNil(t, session)
	require.Equal(t, testUsername, session.Username())
	require.Same(t, session, registry.Resolve(testUsername, start))
}

func TestSessionExpiryIsAbsolute(t *testing.T) {
	registry, start := newRegistry()
	session := registry.GetOrCreate(testUsername, start)

	// Admitted activity throughout the lifetime does not extend it.
	for i := 0; i < capacity; i++ {
		require.Equal(t, sessions.AdmitOK, session.Admit(start.Add(time.Duration(i)*time.Minute), sessionTTL))
	}

	require.False(t, session.IsExpired(start.Add(sessionTTL-time.Second), sessionTTL))
	require.True(t, session.IsExpired(start.Add(sessionTTL), sessionTTL))
	require.True(t, session.IsExpired(start.Add(sessionTTL+time.Hour), sessionTTL))
}

func TestAdmitCountsUsageOnlyOnAdmission(t *testing.T) {
	registry, start := newRegistry()
	session := registry.GetOrCreate(testUsername, start)

	for i := 0; i < capacity; i++ {
		require.Equal(t, sessions.AdmitOK, session.Admit(start, sessionTTL))
	}
	require.Equal(t, uint64(capacity), session.UsageCount())

	require.Equal(t, sessions.AdmitRateLimited, session.Admit(start, sessionTTL))
	require.Equal(t, uint64(capacity), session.UsageCount())

	expired := start.Add(sessionTTL)
	require.Equal(t, sessions.AdmitSessionExpired, session.Admit(expired, sessionTTL))
	require.Equal(t, uint64(capacity), session.UsageCount())
}

func TestExpiredSessionIsNotRenewedByAdmit(t *testing.T) {
	registry, start := newRegistry()
	session := registry.GetOrCreate(testUsername, start)

	expired := start.Add(sessionTTL)
	require.Equal(t, sessions.AdmitSessionExpired, session.Admit(expired, sessionTTL))
	require.Equal(t, sessions.AdmitSessionExpired, session.Admit(expired.Add(time.Minute), sessionTTL))
}

func TestCountActive(t *testing.T) {
	registry, start := newRegistry()

	registry.GetOrCreate("alice", start)
	registry.GetOrCreate("bob", start.Add(10*time.Minute))
	require.Equal(t, 2, registry.CountActive(start.Add(10*time.Minute)))

	// alice expires first; bob remains.
	atAliceExpiry := start.Add(sessionTTL)
	require.Equal(t, 1, registry.CountActive(atAliceExpiry))
	require.Equal(t, 0, registry.CountActive(start.Add(sessionTTL+10*time.Minute)))
}

func TestClear(t *testing.T) {
	registry, start := newRegistry()

	registry.GetOrCreate("alice", start)
	registry.GetOrCreate("bob", start)
	registry.Clear()
	require.Equal(t, 0, registry.CountActive(start))

	// A still-valid token presented after a reset recreates a fresh
	// session rather than failing.
	session := registry.Resolve("alice", start)
	require.Equal(t, sessions.AdmitOK, session.Admit(start, sessionTTL))
}

func TestSessionsAreIndependentAcrossIdentities(t *testing.T) {
	registry, start := newRegistry()

	alice := registry.GetOrCreate("alice", start)
	bob := registry.GetOrCreate("bob", start)

	for i := 0; i < capacity; i++ {
		require.Equal(t, sessions.AdmitOK, alice.Admit(start, sessionTTL))
	}
	require.Equal(t, sessions.AdmitRateLimited, alice.Admit(start, sessionTTL))
	require.Equal(t, sessions.AdmitOK, bob.Admit(start, sessionTTL))
}
