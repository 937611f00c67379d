package analysis

import (
	"regexp"
	"strings"
)

// nonWordRe matches runs of characters that are not letters, digits or underscore.
var nonWordRe = regexp.MustCompile(`[^\p{L}\p{N}_]+`)

// Normalize lowercases text and collapses every run of non-word characters
// into a single space. Leading and trailing spaces are kept.
func Normalize(text string) string {
	return nonWordRe.ReplaceAllString(strings.ToLower(text), " ")
}

// Tokenize splits normalized text on whitespace, dropping empty segments.
func Tokenize(normalized string) []string {
	return strings.Fields(normalized)
}
