package service

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"textstats/internal/analysis"
	"textstats/internal/domain"
)

// ErrNotAnalyzed is returned when exporting before any analysis ran.
var ErrNotAnalyzed = errors.New("no analysis has been run yet")

// ErrExportDisabled is returned by Export when no exporter is configured.
var ErrExportDisabled = errors.New("export disabled")

// Options holds the analysis settings of the service.
type Options struct {
	StopwordsFile    string
	BuiltinStopwords string
	TopN             int
	PhraseMatch      analysis.MatchMode
}

var _ domain.AnalyticsService = (*AnalyticsServiceImpl)(nil)

type AnalyticsServiceImpl struct {
	source   domain.DocumentSource
	exporter domain.StatsExporter
	opts     Options

	mu     sync.RWMutex
	result analysis.Result
	ran    bool
}

// NewAnalyticsService wires a document source and an optional exporter.
func NewAnalyticsService(source domain.DocumentSource, exporter domain.StatsExporter, opts Options) (*AnalyticsServiceImpl, error) {
	if source == nil {
		return nil, errors.New("document source missing")
	}
	if err := analysis.NewStopwords().WithBuiltin(opts.BuiltinStopwords); err != nil {
		return nil, err
	}
	if opts.PhraseMatch == "" {
		opts.PhraseMatch = analysis.MatchPadded
	}
	return &AnalyticsServiceImpl{source: source, exporter: exporter, opts: opts}, nil
}

// Analyze loads stopwords and documents and runs the statistics pass.
// Missing stopwords and source failures become warnings in the report.
func (s *AnalyticsServiceImpl) Analyze(ctx context.Context) (domain.Report, error) {
	stop, warnings := analysis.LoadStopwords(s.opts.StopwordsFile)
	if err := stop.WithBuiltin(s.opts.BuiltinStopwords); err != nil {
		return domain.Report{}, err
	}

	docs, err := s.source.ListDocuments(ctx)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return domain.Report{}, ctxErr
		}
		warnings = append(warnings, domain.Warning{
			Code:    domain.WarnSourceFailed,
			Message: fmt.Sprintf("loading documents from %s failed: %v", s.source.Name(), err),
		})
		docs = nil
	}
	if len(docs) == 0 {
		warnings = append(warnings, domain.Warning{
			Code:    domain.WarnNoDocuments,
			Message: fmt.Sprintf("no text documents found in %s source", s.source.Name()),
		})
	}

	res := analysis.Aggregate(docs, stop)
	report := domain.Report{
		Stats:     res.Stats,
		Top:       res.Top(s.opts.TopN),
		Documents: len(docs),
		Warnings:  warnings,
	}

	s.mu.Lock()
	s.result = res
	s.ran = true
	s.mu.Unlock()
	return report, nil
}

// SearchPhrases parses comma separated phrases and counts them in every
// document of the last analysis.
func (s *AnalyticsServiceImpl) SearchPhrases(input string) []domain.PhraseResult {
	phrases := analysis.ParsePhrases(input)
	s.mu.RLock()
	defer s.mu.RUnlock()
	return analysis.SearchPhrases(s.result.Corpus, phrases, s.opts.PhraseMatch)
}

// Export writes the statistics of the last analysis.
func (s *AnalyticsServiceImpl) Export(ctx context.Context) error {
	if s.exporter == nil {
		return ErrExportDisabled
	}
	s.mu.RLock()
	stats, ran := s.result.Stats, s.ran
	s.mu.RUnlock()
	if !ran {
		return ErrNotAnalyzed
	}
	return s.exporter.Export(ctx, stats)
}
