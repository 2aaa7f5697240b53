// Package auth implements the request admission pipeline: decode the
// bearer token, resolve the identity's session, check session expiry, then
// check and consume rate-limit capacity. The pipeline is strictly
// sequential and short-circuits on the first failure, so a request with a
// bad or expired token never touches the session registry or a bucket.
package auth

import (
	"strings"
	"time"

	"github.com/jrsteele09/go-trade-insights/sessions"
	"github.com/jrsteele09/go-trade-insights/token"
	"github.com/pkg/errors"
)

const bearerPrefix = "Bearer "

// Service is the authentication gate shared by all requests.
type Service struct {
	codec    *token.Codec
	registry *sessions.Registry
	nowTime  func() time.Time // nowTime function (injectable for testing)
}

// ServiceOption defines a function type to modify the Service instance.
type ServiceOption func(*Service)

// WithNowTime sets the now time function (primarily for testing)
func WithNowTime(nowFunc func() time.Time) ServiceOption {
	return func(s *Service) {
		s.nowTime = nowFunc
	}
}

// NewService initializes the gate with its collaborators.
func NewService(codec *token.Codec, registry *sessions.Registry, options ...ServiceOption) (*Service, error) {
	if codec == nil {
		return nil, errors.New("[NewService] token codec is required")
	}
	if registry == nil {
		return nil, errors.New("[NewService] session registry is required")
	}

	service := &Service{
		codec:    codec,
		registry: registry,
		nowTime:  time.Now,
	}
	for _, opt := range options {
		opt(service)
	}
	return service, nil
}

// Authenticate admits or rejects a request based on its Authorization
// header value. On admission it returns the authenticated identity after
// recording the usage; every failure is one of the sentinel errors in this
// package.
func (s *Service) Authenticate(authorizationHeader string) (string, error) {
	// Extract - the scheme prefix is matched case-sensitively with a
	// single space and the token remainder must be non-empty.
	rawToken, ok := bearerToken(authorizationHeader)
	if !ok {
		return "", ErrInvalidCredentials
	}

	// Decode - fails closed on any decode error.
	claims, err := s.codec.Decode(rawToken)
	if err != nil {
		if errors.Is(err, token.ErrExpired) {
			return "", ErrTokenExpired
		}
		return "", ErrInvalidCredentials
	}

	now := s.nowTime()

	// Resolve session. The registry may legitimately hold no session for a
	// still-valid token (e.g. after a reset); a fresh one is created
	// rather than failing. An expired entry is returned as-is so the next
	// step can reject it - only a new login replaces it.
	session := s.registry.Resolve(claims.Subject, now)

	// Expiry check, rate-limit consume and usage accounting run under the
	// session's own lock.
	switch session.Admit(now, s.registry.SessionTTL()) {
	case sessions.AdmitSessionExpired:
		return "", ErrSessionExpired
	case sessions.AdmitRateLimited:
		return "", ErrRateLimited
	}

	return claims.Subject, nil
}

// bearerToken extracts the token from an Authorization header value.
func bearerToken(header string) (string, bool) {
	rawToken, ok := strings.CutPrefix(header, bearerPrefix)
	if !ok || rawToken == "" {
		return "", false
	}
	return rawToken, true
}
