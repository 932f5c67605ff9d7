package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"deprecheck/internal/report"
	"deprecheck/internal/reportfmt"
	"deprecheck/internal/source"
)

var (
	baseStyle = lipgloss.NewStyle().
			BorderStyle(lipgloss.NormalBorder()).
			BorderForeground(lipgloss.Color("240"))
	titleStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("7"))
	passStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("2"))
	failStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("1"))
	detailStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
)

// RunFunc produces the artifact to browse.
type RunFunc func() (report.Artifact, error)

type resultMsg struct {
	artifact report.Artifact
	err      error
}

type findingsModel struct {
	title    string
	run      RunFunc
	urlMode  source.URLMode
	spinner  spinner.Model
	table    table.Model
	artifact *report.Artifact
	err      error
	width    int
	height   int
}

// NewFindingsModel returns a Bubble Tea model that shows a spinner while
// run executes and then a navigable table of findings.
func NewFindingsModel(title string, urlMode source.URLMode, run RunFunc) tea.Model {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("6"))
	return &findingsModel{
		title:   title,
		run:     run,
		urlMode: urlMode,
		spinner: sp,
		width:   100,
		height:  24,
	}
}

// Artifact returns the browsed artifact, or nil when the run did not finish.
func Artifact(m tea.Model) (*report.Artifact, error) {
	fm, ok := m.(*findingsModel)
	if !ok {
		return nil, fmt.Errorf("unexpected model %T", m)
	}
	return fm.artifact, fm.err
}

func (m *findingsModel) Init() tea.Cmd {
	run := m.run
	return tea.Batch(m.spinner.Tick, func() tea.Msg {
		a, err := run()
		return resultMsg{artifact: a, err: err}
	})
}

func (m *findingsModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case resultMsg:
		if msg.err != nil {
			m.err = msg.err
			return m, tea.Quit
		}
		a := msg.artifact
		m.artifact = &a
		m.initTable()
		return m, nil
	case spinner.TickMsg:
		if m.artifact != nil {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	case tea.WindowSizeMsg:
		if msg.Width > 0 {
			m.width = msg.Width
		}
		if msg.Height > 0 {
			m.height = msg.Height
		}
		if m.artifact != nil {
			m.initTable()
		}
		return m, nil
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "esc", "ctrl+c":
			return m, tea.Quit
		}
	}
	if m.artifact == nil {
		return m, nil
	}
	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

func (m *findingsModel) initTable() {
	msgWidth := m.width * 3 / 5
	if msgWidth < 20 {
		msgWidth = 20
	}
	srcWidth := m.width - msgWidth - 8
	if srcWidth < 16 {
		srcWidth = 16
	}
	h := m.artifact.Details.Headings
	columns := []table.Column{
		{Title: h[0].Label, Width: msgWidth},
		{Title: h[1].Label, Width: srcWidth},
	}
	rows := make([]table.Row, 0, len(m.artifact.Details.Rows))
	for _, f := range m.artifact.Details.Rows {
		rows = append(rows, table.Row{
			runewidth.Truncate(strings.Join(strings.Fields(f.Value), " "), msgWidth, "…"),
			runewidth.Truncate(reportfmt.FormatLocation(f.Source, m.urlMode), srcWidth, "…"),
		})
	}

	height := m.height - 8
	if height < 3 {
		height = 3
	}
	t := table.New(
		table.WithColumns(columns),
		table.WithRows(rows),
		table.WithFocused(true),
		table.WithHeight(height),
	)
	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(false)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Bold(true)
	t.SetStyles(s)
	m.table = t
}

func (m *findingsModel) View() string {
	if m.err != nil {
		return failStyle.Render("error: "+m.err.Error()) + "\n"
	}
	if m.artifact == nil {
		return fmt.Sprintf("%s %s\n", m.spinner.View(), titleStyle.Render(m.title))
	}

	var b strings.Builder
	a := m.artifact
	if a.Passed() {
		b.WriteString(passStyle.Render("PASS"))
		b.WriteString(" " + titleStyle.Render(a.Title) + "\n")
		b.WriteString(detailStyle.Render("q: quit") + "\n")
		return b.String()
	}
	b.WriteString(failStyle.Render("FAIL"))
	b.WriteString(" " + titleStyle.Render(fmt.Sprintf("%s (%s)", a.Title, a.DisplayValue)) + "\n")
	b.WriteString(baseStyle.Render(m.table.View()))
	b.WriteString("\n")
	b.WriteString(m.detail())
	b.WriteString(detailStyle.Render("↑/↓: move  q: quit") + "\n")
	return b.String()
}

// detail describes the selected row in full, including the original
// position when one was resolved.
func (m *findingsModel) detail() string {
	rows := m.artifact.Details.Rows
	i := m.table.Cursor()
	if i < 0 || i >= len(rows) {
		return ""
	}
	f := rows[i]
	var b strings.Builder
	b.WriteString(detailStyle.Render(runewidth.Truncate(f.Value, m.width, "…")))
	b.WriteString("\n")
	b.WriteString(detailStyle.Render("at " + reportfmt.FormatLocation(f.Source, source.URLModeFull)))
	b.WriteString("\n")
	if orig := reportfmt.FormatOriginal(f.Source, source.URLModeFull); orig != "" {
		b.WriteString(detailStyle.Render("original " + orig))
		b.WriteString("\n")
	}
	return b.String()
}
