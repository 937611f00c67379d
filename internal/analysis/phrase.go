package analysis

import (
	"fmt"
	"strings"

	"textstats/internal/domain"
)

// MatchMode selects how phrase occurrences are counted.
type MatchMode string

const (
	// MatchPadded counts non-overlapping occurrences of " "+phrase+" " in
	// the normalized text. Phrases touching the start or end of the text
	// are not counted.
	MatchPadded MatchMode = "padded"
	// MatchTokens counts non-overlapping occurrences of the phrase's token
	// sequence in the document's token stream.
	MatchTokens MatchMode = "tokens"
)

// ParseMatchMode maps a config value to a MatchMode. Empty means padded.
func ParseMatchMode(s string) (MatchMode, error) {
	switch MatchMode(strings.ToLower(strings.TrimSpace(s))) {
	case "", MatchPadded:
		return MatchPadded, nil
	case MatchTokens:
		return MatchTokens, nil
	default:
		return "", fmt.Errorf("unknown phrase match mode: %s", s)
	}
}

// ParsePhrases splits comma separated input into lowercased, trimmed
// phrases. Empty entries are dropped; duplicates are kept.
func ParsePhrases(input string) []string {
	var out []string
	for _, p := range strings.Split(input, ",") {
		p = strings.ToLower(strings.TrimSpace(p))
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}

// CountPhrase counts the occurrences of phrase in one normalized text.
func CountPhrase(normalized, phrase string, mode MatchMode) int {
	if phrase == "" {
		return 0
	}
	if mode == MatchTokens {
		return countTokenRun(Tokenize(normalized), Tokenize(Normalize(phrase)))
	}
	return strings.Count(normalized, " "+phrase+" ")
}

func countTokenRun(tokens, phrase []string) int {
	if len(phrase) == 0 {
		return 0
	}
	n := 0
	for i := 0; i+len(phrase) <= len(tokens); {
		if equalRun(tokens[i:i+len(phrase)], phrase) {
			n++
			i += len(phrase)
			continue
		}
		i++
	}
	return n
}

func equalRun(a, b []string) bool {
	for i := range b {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// SearchPhrases returns one row per document and phrase, ordered by
// document ordinal and then by phrase input order. Zero counts are kept.
func SearchPhrases(corpus []domain.NormalizedDocument, phrases []string, mode MatchMode) []domain.PhraseResult {
	if len(phrases) == 0 {
		return nil
	}
	out := make([]domain.PhraseResult, 0, len(corpus)*len(phrases))
	for _, d := range corpus {
		var tokens []string
		if mode == MatchTokens {
			tokens = Tokenize(d.Text)
		}
		for _, p := range phrases {
			var count int
			if mode == MatchTokens {
				count = countTokenRun(tokens, Tokenize(Normalize(p)))
			} else {
				count = CountPhrase(d.Text, p, MatchPadded)
			}
			out = append(out, domain.PhraseResult{Ordinal: d.Ordinal, Name: d.Name, Phrase: p, Count: count})
		}
	}
	return out
}
