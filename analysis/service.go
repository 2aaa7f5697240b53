package analysis

import (
	"context"
	"fmt"
	"time"

	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
)

const snippetLimit = 6

var (
	// ErrDataCollection indicates the source-material stage failed; the
	// HTTP layer maps it to an upstream-failure status.
	ErrDataCollection = errors.New("failed to collect market data")
	// ErrAnalysis indicates the LLM stage failed.
	ErrAnalysis = errors.New("llm analysis failed")
)

// Report is the result of one sector analysis.
type Report struct {
	Sector         string    `json:"sector"`
	GeneratedAt    time.Time `json:"generated_at"`
	ReportMarkdown string    `json:"report_markdown"`
}

// Service runs the full analysis pipeline: collect, analyze, persist.
type Service struct {
	collector *Collector
	llm       *LLMClient
	reports   *ReportStore
	modelName string
	nowTime   func() time.Time // nowTime function (injectable for testing)
}

// ServiceOption defines a function type to modify the Service instance.
type ServiceOption func(*Service)

// WithNowTime sets the now time function (primarily for testing)
func WithNowTime(nowFunc func() time.Time) ServiceOption {
	return func(s *Service) {
		s.nowTime = nowFunc
	}
}

func NewService(collector *Collector, llm *LLMClient, reports *ReportStore, modelName string, options ...ServiceOption) *Service {
	service := &Service{
		collector: collector,
		llm:       llm,
		reports:   reports,
		modelName: modelName,
		nowTime:   time.Now,
	}
	for _, opt := range options {
		opt(service)
	}
	return service
}

// AnalyzeSector produces a market report for the named sector.
func (s *Service) AnalyzeSector(ctx context.Context, sector string) (*Report, error) {
	query := fmt.Sprintf("%s sector current market data and news", sector)
	snippets, err := s.collector.SearchNews(ctx, query, snippetLimit)
	if err != nil {
		log.Error().Err(err).Str("sector", sector).Msg("data collection failed")
		return nil, ErrDataCollection
	}

	markdown, err := s.llm.Analyze(ctx, sector, snippets)
	if err != nil {
		log.Error().Err(err).Str("sector", sector).Msg("llm analysis failed")
		return nil, ErrAnalysis
	}

	// Persistence is best effort: a report the client already has in hand
	// should not fail the request.
	filename := fmt.Sprintf("%s_sector_report_by_%s.md", sector, s.modelName)
	if _, err := s.reports.Save(filename, markdown); err != nil {
		log.Error().Err(err).Str("sector", sector).Msg("saving report failed")
	}

	return &Report{
		Sector:         sector,
		GeneratedAt:    s.nowTime().UTC(),
		ReportMarkdown: markdown,
	}, nil
}
