package server

import (
	"fmt"
	"net/http"
	"unicode"

	"github.com/jrsteele09/go-trade-insights/analysis"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
)

// ValidateSector checks that a sector name is 2-30 alphabetic characters.
func ValidateSector(sector string) error {
	if len(sector) < 2 || len(sector) > 30 {
		return fmt.Errorf("sector must be between 2 and 30 characters")
	}
	for _, char := range sector {
		if !unicode.IsLetter(char) {
			return fmt.Errorf("sector must contain only letters")
		}
	}
	return nil
}

// AnalyzeHandler generates a market analysis report for the sector in the
// path. The identity has already been admitted by RequireAuth.
func (s *Server) AnalyzeHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sector := r.PathValue("sector")
		if err := ValidateSector(sector); err != nil {
			log.Warn().Str("sector", sector).Err(err).Msg("invalid sector parameter")
			writeError(w, http.StatusBadRequest, fmt.Sprintf("Invalid sector parameter. %s", err.Error()))
			return
		}

		username := usernameFromContext(r.Context())
		log.Info().Str("sector", sector).Str("username", username).Msg("analyze requested")

		report, err := s.analyzer.AnalyzeSector(r.Context(), sector)
		if err != nil {
			switch {
			case errors.Is(err, analysis.ErrDataCollection):
				writeError(w, http.StatusBadGateway, "Failed to collect market data")
			case errors.Is(err, analysis.ErrAnalysis):
				writeError(w, http.StatusBadGateway, "LLM analysis failed")
			default:
				log.Error().Err(err).Str("sector", sector).Msg("analysis failed")
				writeError(w, http.StatusInternalServerError, "analysis failed")
			}
			return
		}

		writeJSON(w, http.StatusOK, report)
	}
}
