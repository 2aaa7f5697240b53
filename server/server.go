package server

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/jrsteele09/go-trade-insights/analysis"
	"github.com/jrsteele09/go-trade-insights/auth"
	"github.com/jrsteele09/go-trade-insights/internal/config"
	"github.com/jrsteele09/go-trade-insights/sessions"
	"github.com/jrsteele09/go-trade-insights/token"
	"github.com/jrsteele09/go-trade-insights/users"
	"github.com/rs/zerolog/log"
)

const contentTypeJSON = "application/json; charset=utf-8"

// Analyzer produces a market report for a sector. Satisfied by
// analysis.Service; stubbed in tests.
type Analyzer interface {
	AnalyzeSector(ctx context.Context, sector string) (*analysis.Report, error)
}

// Repos holds the state shared by all requests.
type Repos struct {
	Users    users.Repo
	Sessions *sessions.Registry
}

type Server struct {
	env      string // Environment (e.g., "DEV", "production")
	mux      *http.ServeMux
	routes   []string
	config   config.Config
	repos    Repos
	codec    *token.Codec
	gate     *auth.Service
	analyzer Analyzer
	nowTime  func() time.Time // nowTime function (injectable for testing)
}

// ServerOption defines a function type to modify the Server instance.
type ServerOption func(*Server)

// WithNowTime sets the now time function (primarily for testing)
func WithNowTime(nowFunc func() time.Time) ServerOption {
	return func(s *Server) {
		s.nowTime = nowFunc
	}
}

func New(cfg config.Config, repos Repos, codec *token.Codec, gate *auth.Service, analyzer Analyzer, options ...ServerOption) (*Server, error) {
	if repos.Users == nil {
		return nil, fmt.Errorf("[Server New] users repo is required")
	}
	if repos.Sessions == nil {
		return nil, fmt.Errorf("[Server New] session registry is required")
	}
	if codec == nil {
		return nil, fmt.Errorf("[Server New] token codec is required")
	}
	if gate == nil {
		return nil, fmt.Errorf("[Server New] auth gate is required")
	}
	if analyzer == nil {
		return nil, fmt.Errorf("[Server New] analyzer is required")
	}

	s := &Server{
		mux:      http.NewServeMux(),
		config:   cfg,
		repos:    repos,
		codec:    codec,
		gate:     gate,
		analyzer: analyzer,
		nowTime:  time.Now,
	}
	s.env = cfg.GetEnv()
	for _, opt := range options {
		opt(s)
	}

	s.initRoutes()
	s.logRoutes()

	return s, nil
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.mux.ServeHTTP(w, r)
}

func (s *Server) RegisterRouteHandler(pattern string, handler http.Handler) {
	s.routes = append(s.routes, pattern)
	s.mux.Handle(pattern, handler)
}

func (s *Server) logRoutes() {
	if s.env != "DEV" {
		return // Skip logging in non-development environments
	}
	for _, route := range s.routes {
		log.Info().Str("route", route).Msg("registered")
	}
}

// writeJSON encodes v with the correct content type.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", contentTypeJSON)
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// errorResponse is the body shape for every error reply.
type errorResponse struct {
	Detail string `json:"detail"`
}

func writeError(w http.ResponseWriter, status int, detail string) {
	writeJSON(w, status, errorResponse{Detail: detail})
}
