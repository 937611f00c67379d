package tui

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"textstats/internal/analysis"
	"textstats/internal/domain"
)

// AnalyticsPort is the TUI-facing subset of the analytics service.
type AnalyticsPort interface {
	SearchPhrases(input string) []domain.PhraseResult
	Export(ctx context.Context) error
}

type exportDoneMsg struct{ err error }

// maxTableRows caps the stats table height before the window size is known.
const maxTableRows = 10

// Model is the Bubble Tea model for the statistics dashboard.
type Model struct {
	service  AnalyticsPort
	report   domain.Report
	table    table.Model
	input    textinput.Model
	viewport viewport.Model
	phrases  []domain.PhraseResult
	status   string
	// tableFocus routes navigation keys to the stats table instead of
	// the phrase input.
	tableFocus bool
	width    int
	ready    bool
}

// New creates a dashboard for an analysis report.
func New(service AnalyticsPort, report domain.Report) Model {
	ti := textinput.New()
	ti.Prompt = "> "
	ti.Placeholder = "Phrases separated by commas, e.g. feuer, schwarzer rauch"
	ti.Focus()
	ti.CharLimit = 0

	tbl := table.New(
		table.WithColumns(statsColumns(report.Stats)),
		table.WithRows(statsRows(report.Stats)),
		table.WithHeight(min(len(report.Stats), maxTableRows)),
		table.WithFocused(false),
	)

	status := fmt.Sprintf("Analyzed %d documents. Enter phrases and press Enter; tab scrolls the table; ctrl+s exports.", report.Documents)
	if len(report.Warnings) > 0 {
		status = joinWarnings(report.Warnings)
	}
	return Model{
		service:  service,
		report:   report,
		table:    tbl,
		input:    ti,
		viewport: viewport.New(0, 0),
		status:   status,
	}
}

func joinWarnings(ws []domain.Warning) string {
	msgs := make([]string, len(ws))
	for i, w := range ws {
		msgs[i] = w.Message
	}
	return strings.Join(msgs, "; ")
}

func statsColumns(stats []domain.DocumentStats) []table.Column {
	nameW := len("Dateiname")
	for _, s := range stats {
		nameW = max(nameW, lipgloss.Width(s.Name))
	}
	return []table.Column{
		{Title: "#", Width: 4},
		{Title: "Dateiname", Width: nameW},
		{Title: "Wörter gesamt", Width: 14},
		{Title: "Einzigartige Wörter", Width: 20},
		{Title: "Neue Wörter (kumulativ)", Width: 24},
	}
}

func statsRows(stats []domain.DocumentStats) []table.Row {
	rows := make([]table.Row, len(stats))
	for i, s := range stats {
		rows[i] = table.Row{
			strconv.Itoa(s.Ordinal),
			s.Name,
			strconv.Itoa(s.TotalWords),
			strconv.Itoa(s.UniqueWords),
			strconv.Itoa(s.NewWords),
		}
	}
	return rows
}

// Init initializes the model (text input cursor blink).
func (m Model) Init() tea.Cmd { return textinput.Blink }

// Update handles key and window events and updates the view state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.ready = true
		m.width = msg.Width
		// the table gets up to a third of the screen, the rest scrolls
		m.table.SetHeight(max(1, min(len(m.report.Stats), msg.Height/3)))
		_, fh := boxStyle.GetFrameSize()
		reserved := lipgloss.Height(m.topSection()) + 1 + 3 + 1 + fh // input box, status
		m.viewport.Width = max(20, msg.Width-2)
		m.viewport.Height = max(3, msg.Height-reserved-fh)
		m.viewport.SetContent(m.renderResults())
		return m, nil
	case exportDoneMsg:
		if msg.err != nil {
			m.status = "Export failed: " + msg.err.Error()
		} else {
			m.status = "Statistics exported."
		}
		return m, nil
	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC || msg.Type == tea.KeyCtrlD {
			return m, tea.Quit
		}
		switch msg.String() {
		case "ctrl+s":
			m.status = "Exporting..."
			return m, m.exportCmd()
		case "tab":
			return m.toggleFocus(), nil
		case "esc":
			if m.tableFocus {
				return m.toggleFocus(), nil
			}
		}
		if m.tableFocus {
			var cmd tea.Cmd
			m.table, cmd = m.table.Update(msg)
			return m, cmd
		}
		switch msg.String() {
		case "enter":
			return m.Search(m.input.Value()), nil
		case "up", "down", "pgup", "pgdown":
			var cmd tea.Cmd
			m.viewport, cmd = m.viewport.Update(msg)
			return m, cmd
		}
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m Model) toggleFocus() Model {
	m.tableFocus = !m.tableFocus
	if m.tableFocus {
		m.input.Blur()
		m.table.Focus()
	} else {
		m.table.Blur()
		m.input.Focus()
	}
	return m
}

// Search runs a phrase search and shows its results.
func (m Model) Search(input string) Model {
	q := strings.TrimSpace(input)
	m.input.SetValue(q)
	m.phrases = m.service.SearchPhrases(q)
	switch {
	case len(analysis.ParsePhrases(q)) == 0:
		m.status = "No phrases entered."
	case len(m.phrases) == 0:
		m.status = "No documents to search."
	default:
		m.status = fmt.Sprintf("Phrase counts for %q", q)
	}
	m.viewport.SetContent(m.renderResults())
	m.viewport.GotoTop()
	return m
}

func (m Model) exportCmd() tea.Cmd {
	svc := m.service
	return func() tea.Msg {
		return exportDoneMsg{err: svc.Export(context.Background())}
	}
}

// View renders the dashboard layout.
func (m Model) View() string {
	if !m.ready {
		return "Loading..."
	}
	input := boxStyle.Render(m.input.View())
	status := statusStyle.Render(m.status)
	results := boxStyle.Render(m.viewport.View())
	return m.topSection() + "\n" + results + "\n" + input + "\n" + status
}

func (m Model) topSection() string {
	header := titleStyle.Render("Wortanalyse in Textdateien")
	top := RenderTop(m.report.Top, max(10, m.width/4))
	return header + "\n" + m.table.View() + "\n\n" + headerStyle.Render("Top words") + "\n" + top
}

func (m Model) renderResults() string {
	if m.phrases == nil {
		return mutedStyle.Render("No phrase search yet.")
	}
	return RenderPhrases(m.phrases)
}

var (
	titleStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("10"))
	boxStyle    = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
	statusStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
)
