package local

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/htmlindex"

	"textstats/internal/domain"
)

// Config configures the directory source.
type Config struct {
	Dir      string
	Patterns []string
	Encoding string
}

// Source reads episodes from files in one directory, ordered by file name.
type Source struct {
	dir      string
	patterns []string
	enc      encoding.Encoding
}

// NewSource validates the charset name and returns a directory source.
func NewSource(cfg Config) (*Source, error) {
	name := cfg.Encoding
	if name == "" {
		name = "utf-8"
	}
	enc, err := htmlindex.Get(name)
	if err != nil {
		return nil, fmt.Errorf("unknown text encoding %q: %w", name, err)
	}
	patterns := cfg.Patterns
	if len(patterns) == 0 {
		patterns = []string{"*.txt"}
	}
	return &Source{dir: cfg.Dir, patterns: patterns, enc: enc}, nil
}

// Name returns the identifier of this source implementation.
func (s *Source) Name() string { return "local" }

// ListDocuments returns every matching file, sorted by name.
// A missing directory yields no documents.
func (s *Source) ListDocuments(ctx context.Context) ([]domain.Document, error) {
	seen := make(map[string]struct{})
	var paths []string
	for _, p := range s.patterns {
		matches, err := filepath.Glob(filepath.Join(s.dir, p))
		if err != nil {
			return nil, fmt.Errorf("bad pattern %q: %w", p, err)
		}
		for _, m := range matches {
			if _, ok := seen[m]; ok {
				continue
			}
			if fi, err := os.Stat(m); err != nil || fi.IsDir() {
				continue
			}
			seen[m] = struct{}{}
			paths = append(paths, m)
		}
	}
	sort.Slice(paths, func(i, j int) bool { return filepath.Base(paths[i]) < filepath.Base(paths[j]) })

	docs := make([]domain.Document, 0, len(paths))
	for i, p := range paths {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		text, err := s.readText(p)
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", p, err)
		}
		docs = append(docs, domain.Document{Ordinal: i + 1, Name: filepath.Base(p), Text: text})
	}
	return docs, nil
}

func (s *Source) readText(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer f.Close()
	data, err := io.ReadAll(s.enc.NewDecoder().Reader(f))
	if err != nil {
		return "", err
	}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".html", ".htm":
		return VisibleText(data)
	}
	return string(data), nil
}

// VisibleText returns the text content of an HTML document, skipping
// script and style elements. Text nodes are separated by spaces.
func VisibleText(body []byte) (string, error) {
	root, err := html.Parse(bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	var sb strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode && (n.Data == "script" || n.Data == "style") {
			return
		}
		if n.Type == html.TextNode {
			sb.WriteString(n.Data)
			sb.WriteByte(' ')
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(root)
	return sb.String(), nil
}
