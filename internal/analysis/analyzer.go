package analysis

import (
	"slices"

	"textstats/internal/domain"
)

// AnalyzeDocument computes the statistics of one normalized document.
// It returns the stats row (Ordinal left zero), the filtered tokens with
// duplicates, and the cumulative vocabulary extended by this document.
func AnalyzeDocument(name, normalized string, stop *Stopwords, vocab *Vocabulary) (domain.DocumentStats, []string, *Vocabulary) {
	tokens := Tokenize(normalized)
	filtered := stop.Filter(tokens)

	distinct := make(map[string]struct{}, len(filtered))
	for _, t := range filtered {
		distinct[t] = struct{}{}
	}
	next, fresh := vocab.Merge(filtered)

	return domain.DocumentStats{
		Name:        name,
		TotalWords:  len(tokens),
		UniqueWords: len(distinct),
		NewWords:    fresh,
	}, filtered, next
}

// Accumulator carries the state threaded through the aggregation pass.
// Step returns a new Accumulator and leaves the receiver usable as before.
type Accumulator struct {
	Vocabulary *Vocabulary
	Frequency  *Frequency
	Stats      []domain.DocumentStats
	Corpus     []domain.NormalizedDocument
}

// NewAccumulator returns the state before the first document.
func NewAccumulator() Accumulator {
	return Accumulator{Vocabulary: NewVocabulary(), Frequency: NewFrequency()}
}

// Step folds the next document of the sequence into the accumulator.
// The document's ordinal is its position in the fold, starting at 1.
func (a Accumulator) Step(doc domain.Document, stop *Stopwords) Accumulator {
	ordinal := len(a.Stats) + 1
	normalized := Normalize(doc.Text)

	stats, filtered, vocab := AnalyzeDocument(doc.Name, normalized, stop, a.Vocabulary)
	stats.Ordinal = ordinal

	return Accumulator{
		Vocabulary: vocab,
		Frequency:  a.Frequency.With(filtered),
		Stats:      append(slices.Clip(a.Stats), stats),
		Corpus: append(slices.Clip(a.Corpus), domain.NormalizedDocument{
			Ordinal: ordinal,
			Name:    doc.Name,
			Text:    normalized,
		}),
	}
}

// Result is the finished aggregation pass.
type Result struct {
	Stats     []domain.DocumentStats
	Frequency *Frequency
	Corpus    []domain.NormalizedDocument
}

// Aggregate runs the documents through Step in the order given.
// No documents yields an empty Result.
func Aggregate(docs []domain.Document, stop *Stopwords) Result {
	acc := NewAccumulator()
	for _, d := range docs {
		acc = acc.Step(d, stop)
	}
	return Result{Stats: acc.Stats, Frequency: acc.Frequency, Corpus: acc.Corpus}
}

// Top returns the n most frequent filtered tokens across the corpus.
func (r Result) Top(n int) []domain.WordCount {
	return r.Frequency.Top(n)
}

// Text returns the normalized text of the named document.
func (r Result) Text(name string) (string, bool) {
	for _, d := range r.Corpus {
		if d.Name == name {
			return d.Text, true
		}
	}
	return "", false
}
