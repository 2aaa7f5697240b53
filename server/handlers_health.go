package server

import (
	"net/http"
	"time"
)

type healthResponse struct {
	Status         string    `json:"status"`
	Timestamp      time.Time `json:"timestamp"`
	Version        string    `json:"version"`
	ActiveSessions int       `json:"active_sessions"`
}

// HealthHandler reports service liveness plus the number of live sessions.
// Read-only; it never mutates registry state.
func (s *Server) HealthHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, healthResponse{
			Status:         "healthy",
			Timestamp:      s.nowTime().UTC(),
			Version:        s.config.GetAppVersion(),
			ActiveSessions: s.repos.Sessions.CountActive(s.nowTime()),
		})
	}
}
