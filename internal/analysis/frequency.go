package analysis

import (
	"sort"

	"textstats/internal/domain"
)

// Frequency counts filtered token occurrences and remembers the order in
// which each token was first counted. That order breaks ties in Top.
type Frequency struct {
	counts map[string]int
	order  []string
}

// NewFrequency returns an empty counter.
func NewFrequency() *Frequency {
	return &Frequency{counts: make(map[string]int)}
}

// With returns a copy of f with every token counted once more.
func (f *Frequency) With(tokens []string) *Frequency {
	if f == nil {
		f = NewFrequency()
	}
	next := &Frequency{
		counts: make(map[string]int, len(f.counts)+len(tokens)),
		order:  make([]string, len(f.order), len(f.order)+len(tokens)),
	}
	for k, c := range f.counts {
		next.counts[k] = c
	}
	copy(next.order, f.order)
	for _, t := range tokens {
		if _, ok := next.counts[t]; !ok {
			next.order = append(next.order, t)
		}
		next.counts[t]++
	}
	return next
}

// Count returns the number of occurrences of word.
func (f *Frequency) Count(word string) int {
	if f == nil {
		return 0
	}
	return f.counts[word]
}

// Len returns the number of distinct counted tokens.
func (f *Frequency) Len() int {
	if f == nil {
		return 0
	}
	return len(f.order)
}

// All returns every token with its count in first-occurrence order.
func (f *Frequency) All() []domain.WordCount {
	if f == nil {
		return nil
	}
	out := make([]domain.WordCount, len(f.order))
	for i, w := range f.order {
		out[i] = domain.WordCount{Word: w, Count: f.counts[w]}
	}
	return out
}

// Top returns the n most frequent tokens, highest count first. Equal counts
// keep first-occurrence order. n <= 0 returns the full ranking.
func (f *Frequency) Top(n int) []domain.WordCount {
	all := f.All()
	sort.SliceStable(all, func(i, j int) bool { return all[i].Count > all[j].Count })
	if n > 0 && n < len(all) {
		all = all[:n]
	}
	return all
}
