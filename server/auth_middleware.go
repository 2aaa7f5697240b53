package server

import (
	"context"
	"net/http"

	"github.com/jrsteele09/go-trade-insights/auth"
	"github.com/pkg/errors"
)

// ContextKey is a custom type for context keys to avoid collisions
type ContextKey string

// ContextKeyUsername stores the authenticated identity
const ContextKeyUsername ContextKey = "username"

// RequireAuth runs the admission pipeline on the request's Authorization
// header and maps each gate outcome to its transport status. On admission
// the identity is injected into the request context.
func (s *Server) RequireAuth() func(http.HandlerFunc) http.HandlerFunc {
	return func(next http.HandlerFunc) http.HandlerFunc {
		return func(w http.ResponseWriter, r *http.Request) {
			identity, err := s.gate.Authenticate(r.Header.Get("Authorization"))
			if err != nil {
				if errors.Is(err, auth.ErrRateLimited) {
					writeError(w, http.StatusTooManyRequests, err.Error())
					return
				}
				w.Header().Set("WWW-Authenticate", "Bearer")
				writeError(w, http.StatusUnauthorized, err.Error())
				return
			}

			ctx := context.WithValue(r.Context(), ContextKeyUsername, identity)
			next(w, r.WithContext(ctx))
		}
	}
}

// usernameFromContext returns the identity stored by RequireAuth.
func usernameFromContext(ctx context.Context) string {
	username, _ := ctx.Value(ContextKeyUsername).(string)
	return username
}
