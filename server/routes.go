package server

import "net/http"

func (s *Server) initRoutes() {
	s.RegisterRouteHandler("GET /{$}", ChainMiddleware(s.IndexHandler(), s.APIMiddleware()...))

	// AUTH
	s.RegisterRouteHandler("POST "+RouteAuthRegister, ChainMiddleware(s.RegisterHandler(), s.APIMiddleware()...))
	s.RegisterRouteHandler("POST "+RouteAuthToken, ChainMiddleware(s.LoginHandler(), s.APIMiddleware()...))

	// ANALYSIS (requires a valid bearer token, live session and rate-limit capacity)
	s.RegisterRouteHandler("GET "+RouteAnalyze, ChainMiddleware(s.AnalyzeHandler(), append(s.APIMiddleware(), s.RequireAuth())...))

	// OBSERVABILITY
	s.RegisterRouteHandler("GET "+RouteHealth, ChainMiddleware(s.HealthHandler(), s.APIMiddleware()...))
}

// IndexHandler points callers at the API surface.
func (s *Server) IndexHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{
			"name":     s.config.GetAppName(),
			"version":  s.config.GetAppVersion(),
			"register": RouteAuthRegister,
			"login":    RouteAuthToken,
			"analyze":  RouteAnalyze,
			"health":   RouteHealth,
		})
	}
}
