package tui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"textstats/internal/domain"
)

var (
	headerStyle  = lipgloss.NewStyle().Bold(true)
	barStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("12"))
	mutedStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	warningStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("11"))
)

// Bar returns a horizontal bar of at most width cells scaled to max.
func Bar(value, max, width int) string {
	if max <= 0 || value <= 0 || width <= 0 {
		return ""
	}
	n := value * width / max
	if n == 0 {
		n = 1
	}
	return strings.Repeat("█", n)
}

func cell(s string, width int) string {
	return lipgloss.NewStyle().Width(width).Render(s)
}

// RenderStats renders one line per episode with its counts and a bar of
// the total word count.
func RenderStats(stats []domain.DocumentStats, barWidth int) string {
	if len(stats) == 0 {
		return mutedStyle.Render("No documents.")
	}
	nameW := len("Dateiname")
	maxTotal := 0
	for _, s := range stats {
		nameW = max(nameW, lipgloss.Width(s.Name))
		maxTotal = max(maxTotal, s.TotalWords)
	}
	var b strings.Builder
	b.WriteString(headerStyle.Render(
		cell("#", 4) + cell("Dateiname", nameW+2) + cell("Wörter", 9) + cell("Einzig.", 9) + cell("Neu", 7)))
	for _, s := range stats {
		b.WriteString("\n")
		b.WriteString(cell(strconv.Itoa(s.Ordinal), 4))
		b.WriteString(cell(s.Name, nameW+2))
		b.WriteString(cell(strconv.Itoa(s.TotalWords), 9))
		b.WriteString(cell(strconv.Itoa(s.UniqueWords), 9))
		b.WriteString(cell(strconv.Itoa(s.NewWords), 7))
		b.WriteString(barStyle.Render(Bar(s.TotalWords, maxTotal, barWidth)))
	}
	return b.String()
}

// RenderTop renders the frequency ranking as a bar chart.
func RenderTop(top []domain.WordCount, barWidth int) string {
	if len(top) == 0 {
		return mutedStyle.Render("No words.")
	}
	wordW := 0
	for _, w := range top {
		wordW = max(wordW, lipgloss.Width(w.Word))
	}
	maxCount := top[0].Count
	var b strings.Builder
	for i, w := range top {
		if i > 0 {
			b.WriteString("\n")
		}
		b.WriteString(cell(w.Word, wordW+2))
		b.WriteString(barStyle.Render(Bar(w.Count, maxCount, barWidth)))
		b.WriteString(" ")
		b.WriteString(strconv.Itoa(w.Count))
	}
	return b.String()
}

// RenderPhrases renders phrase counts as a matrix of episodes by phrases.
// Columns keep the query order, repeated phrases included.
func RenderPhrases(rows []domain.PhraseResult) string {
	if len(rows) == 0 {
		return mutedStyle.Render("No phrase results.")
	}
	var phrases []string
	for _, r := range rows {
		if r.Ordinal != rows[0].Ordinal {
			break
		}
		phrases = append(phrases, r.Phrase)
	}
	nameW := len("Episode")
	for _, r := range rows {
		nameW = max(nameW, lipgloss.Width(fmt.Sprintf("%d %s", r.Ordinal, r.Name)))
	}
	colW := make([]int, len(phrases))
	var head strings.Builder
	head.WriteString(cell("Episode", nameW+2))
	for i, p := range phrases {
		colW[i] = max(lipgloss.Width(p), 5) + 2
		head.WriteString(cell(p, colW[i]))
	}
	var b strings.Builder
	b.WriteString(headerStyle.Render(head.String()))
	for i, r := range rows {
		col := i % len(phrases)
		if col == 0 {
			b.WriteString("\n")
			b.WriteString(cell(fmt.Sprintf("%d %s", r.Ordinal, r.Name), nameW+2))
		}
		b.WriteString(cell(strconv.Itoa(r.Count), colW[col]))
	}
	return b.String()
}

// RenderWarnings renders warnings one per line.
func RenderWarnings(ws []domain.Warning) string {
	lines := make([]string, len(ws))
	for i, w := range ws {
		lines[i] = warningStyle.Render("! " + w.Message)
	}
	return strings.Join(lines, "\n")
}

// RenderReport renders a full plain report: warnings, stats, top words and
// optionally phrase counts.
func RenderReport(rep domain.Report, phrases []domain.PhraseResult) string {
	var parts []string
	if len(rep.Warnings) > 0 {
		parts = append(parts, RenderWarnings(rep.Warnings))
	}
	parts = append(parts,
		headerStyle.Render("Statistics per episode"),
		RenderStats(rep.Stats, 30),
		headerStyle.Render(fmt.Sprintf("Top %d words (stopwords excluded)", len(rep.Top))),
		RenderTop(rep.Top, 30),
	)
	if phrases != nil {
		parts = append(parts, headerStyle.Render("Phrase frequency"), RenderPhrases(phrases))
	}
	return strings.Join(parts, "\n\n")
}
