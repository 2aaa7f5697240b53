package server

import (
	"encoding/json"
	"net/http"

	"github.com/jrsteele09/go-trade-insights/users"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
)

// tokenResponse is the body returned by both registration and login.
type tokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

type registerRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// RegisterHandler creates a new user and returns an access token
// immediately, so no separate login is needed after signup.
func (s *Server) RegisterHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req registerRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}

		if err := users.ValidateUsername(req.Username); err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		if err := users.ValidatePasswordStrength(req.Password); err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}

		if err := s.repos.Users.Register(req.Username, req.Password); err != nil {
			if errors.Is(err, users.ErrDuplicateUser) {
				writeError(w, http.StatusBadRequest, "Username already registered")
				return
			}
			log.Error().Err(err).Msg("registration failed")
			writeError(w, http.StatusInternalServerError, "registration failed")
			return
		}
		log.Info().Str("username", req.Username).Msg("new user registered")

		s.issueToken(w, req.Username, http.StatusCreated)
	}
}

// LoginHandler exchanges a username and password for an access token. The
// request body is form-encoded, mirroring the OAuth2 password form shape.
func (s *Server) LoginHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseForm(); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}
		username := r.PostFormValue("username")
		password := r.PostFormValue("password")

		if !s.repos.Users.Verify(username, password) {
			w.Header().Set("WWW-Authenticate", "Bearer")
			writeError(w, http.StatusUnauthorized, "Incorrect username or password")
			return
		}
		log.Info().Str("username", username).Msg("user logged in")

		s.issueToken(w, username, http.StatusOK)
	}
}

// issueToken signs a fresh token and materializes the identity's session.
// An expired prior session is replaced here, at login/registration time.
func (s *Server) issueToken(w http.ResponseWriter, username string, status int) {
	accessToken, err := s.codec.Issue(username, s.config.GetTokenTTL())
	if err != nil {
		log.Error().Err(err).Msg("token issue failed")
		writeError(w, http.StatusInternalServerError, "could not issue token")
		return
	}

	s.repos.Sessions.GetOrCreate(username, s.nowTime())

	writeJSON(w, status, tokenResponse{AccessToken: accessToken, TokenType: "bearer"})
}
