package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/minemarker/internal/scenario"
	"github.com/vovakirdan/minemarker/internal/storage"
)

// MenuItem represents a selectable scenario in the menu.
type MenuItem struct {
	ScenarioID  string
	Title       string
	Description string
	Best        int // Best recorded passing score, 0 when none
}

// MenuModel is the Bubble Tea model for the scenario picker.
type MenuModel struct {
	items          []MenuItem
	cursor         int
	config         Config
	keyMapper      *KeyMapper
	standalone     bool // Quit the program on select, as RunMenu does
	quitting       bool
	selected       *MenuItem
	openScoreboard bool
}

// NewMenuModel creates a menu over scenarios. The store is optional and
// only used to show best scores.
func NewMenuModel(scenarios []scenario.Scenario, store *storage.Store, cfg Config) MenuModel {
	items := make([]MenuItem, 0, len(scenarios))
	for _, s := range scenarios {
		item := MenuItem{
			ScenarioID:  s.ID,
			Title:       s.Name,
			Description: s.Description,
		}
		if store != nil {
			if best, err := store.HighScore(s.ID); err == nil {
				item.Best = best
			}
		}
		items = append(items, item)
	}

	return MenuModel{
		items:     items,
		config:    cfg,
		keyMapper: NewKeyMapper(),
	}
}

// Init initializes the menu model.
func (m MenuModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the menu.
func (m MenuModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.config.ScreenW = msg.Width
		m.config.ScreenH = msg.Height
		return m, nil
	}

	return m, nil
}

// handleKey processes keyboard input for menu navigation.
func (m MenuModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.keyMapper.MapKeyToMenuAction(msg) {
	case MenuActionQuit:
		m.quitting = true
		return m, tea.Quit

	case MenuActionUp:
		if m.cursor > 0 {
			m.cursor--
		}

	case MenuActionDown:
		if m.cursor < len(m.items)-1 {
			m.cursor++
		}

	case MenuActionSelect:
		if len(m.items) > 0 {
			selected := m.items[m.cursor]
			m.selected = &selected
			return m, m.exit()
		}

	case MenuActionScoreboard:
		m.openScoreboard = true
		return m, m.exit()
	}

	return m, nil
}

func (m MenuModel) exit() tea.Cmd {
	if m.standalone {
		return tea.Quit
	}
	return nil
}

// View renders the menu.
func (m MenuModel) View() string {
	if m.quitting {
		return ""
	}

	width := m.config.ScreenW
	var b strings.Builder

	b.WriteString("\n")
	b.WriteString(centerText(titleStyle.Render("  M I N E M A R K E R  "), width))
	b.WriteString("\n\n")
	b.WriteString(centerText("Select a scenario to replay", width))
	b.WriteString("\n\n")

	if len(m.items) == 0 {
		b.WriteString(centerText(dimStyle.Render("No scenarios found."), width))
		b.WriteString("\n")
	}

	for i, item := range m.items {
		cursor := "  "
		if i == m.cursor {
			cursor = "> "
		}
		line := fmt.Sprintf("%s%-10s %s", cursor, item.ScenarioID, item.Title)
		if item.Best > 0 {
			line += fmt.Sprintf("  [best %d]", item.Best)
		}
		b.WriteString(centerText(line, width))
		b.WriteString("\n")
	}

	if len(m.items) > 0 && m.items[m.cursor].Description != "" {
		b.WriteString("\n")
		b.WriteString(centerText(dimStyle.Render(m.items[m.cursor].Description), width))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	controls := "Up/Down: Navigate  |  Enter: Replay  |  Tab: Results  |  Q: Quit"
	b.WriteString(centerText(controls, width))
	b.WriteString("\n")

	return b.String()
}

// Selected returns the selected menu item, or nil if none selected.
func (m MenuModel) Selected() *MenuItem {
	return m.selected
}

// IsQuitting returns true if user requested to quit.
func (m MenuModel) IsQuitting() bool {
	return m.quitting
}

// WantsScoreboard returns true if user requested the results board.
func (m MenuModel) WantsScoreboard() bool {
	return m.openScoreboard
}

// Config returns the current view config (may have been updated by resize).
func (m MenuModel) Config() Config {
	return m.config
}

// MenuResult holds the result of running the menu.
type MenuResult struct {
	ScenarioID      string
	Config          Config
	WantsScoreboard bool
	Quit            bool
}

// RunMenu runs the menu and returns the selection result.
func RunMenu(scenarios []scenario.Scenario, store *storage.Store, cfg Config) (MenuResult, error) {
	model := NewMenuModel(scenarios, store, cfg)
	model.standalone = true

	p := tea.NewProgram(model, tea.WithAltScreen())

	finalModel, err := p.Run()
	if err != nil {
		return MenuResult{Config: cfg}, err
	}

	m, ok := finalModel.(MenuModel)
	if !ok {
		return MenuResult{Config: cfg, Quit: true}, nil
	}

	result := MenuResult{Config: m.Config()}

	switch {
	case m.WantsScoreboard():
		result.WantsScoreboard = true
	case m.Selected() != nil:
		result.ScenarioID = m.Selected().ScenarioID
	default:
		result.Quit = true
	}
	return result, nil
}
