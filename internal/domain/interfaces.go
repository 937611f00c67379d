package domain

import "context"

// Document is one episode of the analyzed sequence.
// Ordinal is 1-based and follows the order the source supplied it in.
type Document struct {
	Ordinal int
	Name    string
	Text    string
}

// NormalizedDocument keeps the normalized text of a document for phrase search.
type NormalizedDocument struct {
	Ordinal int
	Name    string
	Text    string
}

// DocumentStats is the per-episode statistics row.
type DocumentStats struct {
	Ordinal     int
	Name        string
	TotalWords  int
	UniqueWords int
	NewWords    int
}

// WordCount is one entry of the global frequency ranking.
type WordCount struct {
	Word  string
	Count int
}

// PhraseResult is the occurrence count of one phrase in one document.
type PhraseResult struct {
	Ordinal int
	Name    string
	Phrase  string
	Count   int
}

// Warning codes reported alongside results.
const (
	WarnStopwordsMissing = "stopwords_missing"
	WarnNoDocuments      = "no_documents"
	WarnSourceFailed     = "source_failed"
)

// Warning is a non-fatal condition the caller may want to show.
type Warning struct {
	Code    string
	Message string
}

func (w Warning) String() string { return w.Message }

// Report is the outcome of one analysis run.
type Report struct {
	Stats     []DocumentStats
	Top       []WordCount
	Documents int
	Warnings  []Warning
}

// DocumentSource supplies the ordered episode sequence.
type DocumentSource interface {
	Name() string
	ListDocuments(ctx context.Context) ([]Document, error)
}

// StatsExporter writes the statistics table somewhere outside the process.
type StatsExporter interface {
	Export(ctx context.Context, stats []DocumentStats) error
}

// AnalyticsService defines the operations exposed by the application core.
type AnalyticsService interface {
	Analyze(ctx context.Context) (Report, error)
	SearchPhrases(input string) []PhraseResult
	Export(ctx context.Context) error
}
