package analysis

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"unicode/utf8"

	"github.com/kljensen/snowball/english"

	"textstats/internal/domain"
)

// Stopwords is the set of tokens excluded from frequency-bearing statistics.
// A nil *Stopwords filters nothing.
type Stopwords struct {
	words   map[string]struct{}
	builtin func(string) bool
}

// NewStopwords builds a set from already-lowercased words.
func NewStopwords(words ...string) *Stopwords {
	s := &Stopwords{words: make(map[string]struct{}, len(words))}
	for _, w := range words {
		if w = strings.TrimSpace(w); w != "" {
			s.words[strings.ToLower(w)] = struct{}{}
		}
	}
	return s
}

// ParseStopwords reads one stopword per line. Lines are trimmed and
// lowercased, blank lines are skipped.
func ParseStopwords(r io.Reader) (*Stopwords, error) {
	s := NewStopwords()
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	sc.Split(scanLines)
	for sc.Scan() {
		w := strings.ToLower(strings.TrimSpace(sc.Text()))
		if w == "" {
			continue
		}
		s.words[w] = struct{}{}
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	return s, nil
}

// isLineBreak reports the separators that end a line: \n, \r, \r\n and
// the Unicode line and paragraph separators.
func isLineBreak(r rune) bool {
	switch r {
	case '\n', '\r', '\v', '\f', '\x1c', '\x1d', '\x1e', '\u0085', '\u2028', '\u2029':
		return true
	}
	return false
}

// scanLines is a bufio.SplitFunc like bufio.ScanLines that also splits on
// bare \r and the other separators of isLineBreak.
func scanLines(data []byte, atEOF bool) (int, []byte, error) {
	for i := 0; i < len(data); {
		if !atEOF && !utf8.FullRune(data[i:]) {
			return 0, nil, nil
		}
		r, size := utf8.DecodeRune(data[i:])
		if !isLineBreak(r) {
			i += size
			continue
		}
		if r == '\r' {
			switch {
			case i+1 < len(data) && data[i+1] == '\n':
				return i + 2, data[:i], nil
			case i+1 == len(data) && !atEOF:
				return 0, nil, nil
			}
		}
		return i + size, data[:i], nil
	}
	if atEOF && len(data) > 0 {
		return len(data), data, nil
	}
	return 0, nil, nil
}

// LoadStopwords reads the stopword file at path. A missing or unreadable
// file yields an empty set and a warning, never an error.
func LoadStopwords(path string) (*Stopwords, []domain.Warning) {
	if path == "" {
		return NewStopwords(), nil
	}
	f, err := os.Open(path)
	if err != nil {
		msg := fmt.Sprintf("no stopword file at %q, no stopwords are filtered", path)
		if !errors.Is(err, os.ErrNotExist) {
			msg = fmt.Sprintf("stopword file %q unreadable (%v), no stopwords are filtered", path, err)
		}
		return NewStopwords(), []domain.Warning{{Code: domain.WarnStopwordsMissing, Message: msg}}
	}
	defer f.Close()
	s, err := ParseStopwords(f)
	if err != nil {
		return NewStopwords(), []domain.Warning{{
			Code:    domain.WarnStopwordsMissing,
			Message: fmt.Sprintf("stopword file %q unreadable (%v), no stopwords are filtered", path, err),
		}}
	}
	return s, nil
}

// WithBuiltin adds a builtin stopword list on top of the loaded words.
// Supported: "english". An empty name is a no-op.
func (s *Stopwords) WithBuiltin(lang string) error {
	switch strings.ToLower(lang) {
	case "":
		return nil
	case "english":
		s.builtin = english.IsStopWord
		return nil
	default:
		return fmt.Errorf("unknown builtin stopword list: %s", lang)
	}
}

// Contains reports whether token is a stopword.
func (s *Stopwords) Contains(token string) bool {
	if s == nil {
		return false
	}
	if _, ok := s.words[token]; ok {
		return true
	}
	return s.builtin != nil && s.builtin(token)
}

// Len returns the number of words loaded from the file source.
func (s *Stopwords) Len() int {
	if s == nil {
		return 0
	}
	return len(s.words)
}

// Filter returns the tokens that are not stopwords, duplicates kept.
func (s *Stopwords) Filter(tokens []string) []string {
	out := make([]string, 0, len(tokens))
	for _, t := range tokens {
		if !s.Contains(t) {
			out = append(out, t)
		}
	}
	return out
}
