package tui

import (
	"fmt"
	"slices"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/minemarker/internal/storage"
)

// Results board layout constants
const (
	minWidthForSidebar = 90  // Minimum width to show the label sidebar
	sidebarWidth       = 20  // Width of label sidebar
	maxResults         = 100 // Max results to load
	allLabels          = ""  // Sidebar entry listing every label
)

// ScoreboardKeyMap defines the key bindings for the results board.
type ScoreboardKeyMap struct {
	Up        key.Binding
	Down      key.Binding
	NextLabel key.Binding
	PrevLabel key.Binding
	Back      key.Binding
	Quit      key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k ScoreboardKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.NextLabel, k.PrevLabel, k.Back}
}

// FullHelp returns key bindings for the full help view.
func (k ScoreboardKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.NextLabel, k.PrevLabel},
		{k.Back, k.Quit},
	}
}

// DefaultScoreboardKeyMap returns default key bindings.
func DefaultScoreboardKeyMap() ScoreboardKeyMap {
	return ScoreboardKeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("up/k", "scroll up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("down/j", "scroll down"),
		),
		NextLabel: key.NewBinding(
			key.WithKeys("tab", "right", "l"),
			key.WithHelp("tab", "next scenario"),
		),
		PrevLabel: key.NewBinding(
			key.WithKeys("shift+tab", "left", "h"),
			key.WithHelp("S-tab", "prev scenario"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc", "b"),
			key.WithHelp("esc/b", "back"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// ScoreboardModel shows recorded marking results, best first, per label.
type ScoreboardModel struct {
	labels      []string // allLabels followed by every recorded label
	labelCursor int
	store       *storage.Store
	results     []storage.ResultEntry
	stats       *storage.LabelStats
	table       table.Model
	help        help.Model
	keys        ScoreboardKeyMap
	width       int
	height      int
	standalone  bool
	quitting    bool
	goingBack   bool
	showSidebar bool
}

// NewScoreboardModel creates a results board. extra labels (usually the
// known scenario IDs) are listed even when nothing is recorded for them.
func NewScoreboardModel(store *storage.Store, extra []string, width, height int) ScoreboardModel {
	h := help.New()
	h.ShowAll = false

	m := ScoreboardModel{
		labels:      collectLabels(store, extra),
		store:       store,
		keys:        DefaultScoreboardKeyMap(),
		help:        h,
		width:       width,
		height:      height,
		showSidebar: width >= minWidthForSidebar,
	}
	m.table = m.createTable()
	m.loadResults()
	return m
}

func collectLabels(store *storage.Store, extra []string) []string {
	labels := slices.Clone(extra)
	if store != nil {
		if stats, err := store.AllStats(); err == nil {
			for label := range stats {
				labels = append(labels, label)
			}
		}
	}
	slices.Sort(labels)
	labels = slices.Compact(labels)
	return append([]string{allLabels}, labels...)
}

// createTable creates a new table with columns sized to the screen.
func (m *ScoreboardModel) createTable() table.Model {
	labelWidth := 14
	tableWidth := m.width - 4
	if m.showSidebar {
		tableWidth -= sidebarWidth + 3
	}
	if tableWidth > 80 {
		labelWidth = 20
	}

	columns := []table.Column{
		{Title: "Rank", Width: 5},
		{Title: "Scenario", Width: labelWidth},
		{Title: "Outcome", Width: 10},
		{Title: "Steps", Width: 5},
		{Title: "Volleys", Width: 7},
		{Title: "Moves", Width: 5},
		{Title: "Date", Width: 12},
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(max(m.height-10, 3)),
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(true)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Bold(false)
	t.SetStyles(s)

	return t
}

// loadResults loads results and stats for the selected label.
func (m *ScoreboardModel) loadResults() {
	m.results = nil
	m.stats = nil
	if m.store != nil {
		label := m.labels[m.labelCursor]
		if results, err := m.store.TopResults(label, maxResults); err == nil {
			m.results = results
		}
		if label != allLabels {
			if stats, err := m.store.Stats(label); err == nil {
				m.stats = stats
			}
		}
	}
	m.updateTableRows()
}

func (m *ScoreboardModel) updateTableRows() {
	rows := make([]table.Row, len(m.results))
	for i, r := range m.results {
		rows[i] = table.Row{
			fmt.Sprintf("#%d", i+1),
			r.Label,
			r.Outcome,
			fmt.Sprintf("%d", r.Steps),
			fmt.Sprintf("%d", r.Volleys),
			fmt.Sprintf("%d", r.Moves),
			r.CreatedAt.Format("Jan 02 15:04"),
		}
	}
	m.table.SetRows(rows)
	m.table.GotoTop()
}

// Init initializes the results board.
func (m ScoreboardModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the results board.
func (m ScoreboardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit

		case key.Matches(msg, m.keys.Back):
			m.goingBack = true
			if m.standalone {
				return m, tea.Quit
			}
			return m, nil

		case key.Matches(msg, m.keys.NextLabel):
			m.labelCursor = (m.labelCursor + 1) % len(m.labels)
			m.loadResults()
			return m, nil

		case key.Matches(msg, m.keys.PrevLabel):
			m.labelCursor = (m.labelCursor - 1 + len(m.labels)) % len(m.labels)
			m.loadResults()
			return m, nil
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.showSidebar = m.width >= minWidthForSidebar
		m.table = m.createTable()
		m.updateTableRows()
		m.help.Width = msg.Width
		return m, nil
	}

	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

// View renders the results board.
func (m ScoreboardModel) View() string {
	if m.quitting || m.goingBack {
		return ""
	}

	var b strings.Builder

	title := "RESULTS - " + m.labelTitle(m.labels[m.labelCursor])
	b.WriteString(titleStyle.Render(centerText(title, m.width)))
	b.WriteString("\n")
	if m.stats != nil && m.stats.Runs > 0 {
		summary := fmt.Sprintf("%d runs, %.0f%% passed, best %d, average %.1f",
			m.stats.Runs, 100*m.stats.PassRate(), m.stats.HighScore, m.stats.AvgScore)
		b.WriteString(dimStyle.Render(centerText(summary, m.width)))
	}
	b.WriteString("\n\n")

	if m.showSidebar {
		b.WriteString(m.renderWideLayout())
	} else {
		b.WriteString(m.renderNarrowLayout())
	}

	b.WriteString("\n")
	b.WriteString(dimStyle.Render(m.help.View(m.keys)))

	return b.String()
}

func (m ScoreboardModel) labelTitle(label string) string {
	if label == allLabels {
		return "all scenarios"
	}
	return label
}

// renderWideLayout renders the board with a sidebar for label selection.
func (m ScoreboardModel) renderWideLayout() string {
	sidebarStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("240")).
		Width(sidebarWidth).
		Padding(0, 1)

	var sidebar strings.Builder
	sidebar.WriteString("Scenarios\n")
	sidebar.WriteString(strings.Repeat("-", sidebarWidth-4))
	sidebar.WriteString("\n")

	for i, label := range m.labels {
		cursor := "  "
		style := lipgloss.NewStyle()
		if i == m.labelCursor {
			cursor = "> "
			style = style.Bold(true).Foreground(lipgloss.Color("229"))
		}

		name := m.labelTitle(label)
		if maxLen := sidebarWidth - 6; len(name) > maxLen {
			name = name[:maxLen-1] + "."
		}
		sidebar.WriteString(style.Render(cursor + name))
		sidebar.WriteString("\n")
	}

	results := boxStyle.Render(m.renderTableContent())
	return lipgloss.JoinHorizontal(lipgloss.Top, sidebarStyle.Render(sidebar.String()), "  ", results)
}

// renderNarrowLayout shows only the selected label with arrows.
func (m ScoreboardModel) renderNarrowLayout() string {
	var b strings.Builder
	b.WriteString(centerText(fmt.Sprintf("< %s >", m.labelTitle(m.labels[m.labelCursor])), m.width))
	b.WriteString("\n\n")
	b.WriteString(boxStyle.Render(m.renderTableContent()))
	return b.String()
}

func (m ScoreboardModel) renderTableContent() string {
	if len(m.results) == 0 {
		return dimStyle.Italic(true).Padding(2, 4).
			Render("No results recorded yet.\nMark a script with --record to add one!")
	}
	return m.table.View()
}

// IsGoingBack returns true if user wants to go back to menu.
func (m ScoreboardModel) IsGoingBack() bool {
	return m.goingBack
}

// IsQuitting returns true if user wants to quit entirely.
func (m ScoreboardModel) IsQuitting() bool {
	return m.quitting
}

// RunScoreboard runs the results board.
// Returns true if user wants to go back to menu, false if quitting.
func RunScoreboard(store *storage.Store, labels []string, width, height int) (goBack bool, err error) {
	model := NewScoreboardModel(store, labels, width, height)
	model.standalone = true

	p := tea.NewProgram(model, tea.WithAltScreen())

	finalModel, err := p.Run()
	if err != nil {
		return false, err
	}

	m, ok := finalModel.(ScoreboardModel)
	if !ok {
		return false, nil
	}
	return m.IsGoingBack(), nil
}
