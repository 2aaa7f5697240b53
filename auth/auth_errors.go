package auth

import "errors"

// Every admission failure is one of these sentinels. All are client-facing
// and recoverable; the HTTP layer maps each to its own status. The
// messages are the diagnostic text returned to clients, so an expired
// token is distinguishable from a bad one even though both are
// unauthenticated.
var (
	ErrInvalidCredentials = errors.New("could not validate credentials")
	ErrTokenExpired       = errors.New("token expired")
	ErrSessionExpired     = errors.New("session expired, please login again")
	ErrRateLimited        = errors.New("rate limit exceeded, please try again later")
)
