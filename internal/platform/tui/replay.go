package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/minemarker/internal/sim"
)

// ReplayModel steps through a finished run one turn at a time.
// Frames 0..len(Steps)-1 show a step; the last frame shows the outcome.
type ReplayModel struct {
	title      string
	result     *sim.Result
	config     Config
	frame      int
	playing    bool
	gen        int
	keys       ReplayKeyMap
	help       help.Model
	quitting   bool
	backToMenu bool
}

// NewReplayModel creates a replay positioned on the first step.
func NewReplayModel(title string, result *sim.Result, cfg Config) ReplayModel {
	h := help.New()
	h.ShowAll = false

	return ReplayModel{
		title:   title,
		result:  result,
		config:  cfg,
		playing: cfg.Autoplay && len(result.Steps) > 0,
		keys:    DefaultReplayKeyMap(),
		help:    h,
	}
}

// Init starts autoplay when enabled.
func (m ReplayModel) Init() tea.Cmd {
	if m.playing {
		return tickCmd(m.config.StepInterval, m.gen)
	}
	return nil
}

// Update handles messages.
func (m ReplayModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.config.ScreenW = msg.Width
		m.config.ScreenH = msg.Height
		m.help.Width = msg.Width
		return m, nil

	case TickMsg:
		if !m.playing || msg.Gen != m.gen {
			return m, nil
		}
		m.frame++
		if m.frame >= m.lastFrame() {
			m.frame = m.lastFrame()
			m.playing = false
			return m, nil
		}
		return m, tickCmd(m.config.StepInterval, m.gen)

	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

func (m ReplayModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		m.quitting = true
		return m, tea.Quit

	case key.Matches(msg, m.keys.Back):
		m.backToMenu = true
		return m, nil

	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		return m, nil

	case key.Matches(msg, m.keys.Play):
		return m.togglePlay()

	case key.Matches(msg, m.keys.Next):
		m.stop()
		if m.frame < m.lastFrame() {
			m.frame++
		}

	case key.Matches(msg, m.keys.Prev):
		m.stop()
		if m.frame > 0 {
			m.frame--
		}

	case key.Matches(msg, m.keys.First):
		m.stop()
		m.frame = 0

	case key.Matches(msg, m.keys.Last):
		m.stop()
		m.frame = m.lastFrame()
	}
	return m, nil
}

func (m ReplayModel) togglePlay() (tea.Model, tea.Cmd) {
	if m.playing {
		m.stop()
		return m, nil
	}
	if m.frame >= m.lastFrame() {
		m.frame = 0
	}
	if m.lastFrame() == 0 {
		return m, nil
	}
	m.playing = true
	m.gen++
	return m, tickCmd(m.config.StepInterval, m.gen)
}

// stop pauses autoplay and invalidates any pending tick.
func (m *ReplayModel) stop() {
	if m.playing {
		m.playing = false
		m.gen++
	}
}

func (m ReplayModel) lastFrame() int {
	return len(m.result.Steps)
}

// View renders the current frame.
func (m ReplayModel) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render(m.title))
	b.WriteString("\n")

	if m.frame < m.lastFrame() {
		b.WriteString(m.renderStep(m.result.Steps[m.frame]))
	} else {
		b.WriteString(m.renderOutcome())
	}

	b.WriteString("\n\n")
	status := fmt.Sprintf("frame %d/%d", m.frame+1, m.lastFrame()+1)
	if m.playing {
		status += " ▶ playing"
	}
	b.WriteString(dimStyle.Render(status))
	b.WriteString("\n")
	b.WriteString(m.help.View(m.keys))
	return b.String()
}

func (m ReplayModel) renderStep(step sim.Step) string {
	header := fmt.Sprintf("Step %d of %d", step.Number, len(m.result.Steps))

	before := boxStyle.Render("before\n" + RenderGrid(step.Before))
	after := boxStyle.Render("after\n" + RenderGrid(step.After))

	ordersText := step.Orders
	if ordersText == "" {
		ordersText = dimStyle.Render("(no orders)")
	}
	middle := lipgloss.NewStyle().Padding(1, 2).Render(ordersText + "\n→")

	grids := lipgloss.JoinHorizontal(lipgloss.Center, before, middle, after)
	info := fmt.Sprintf("ship at (%d, %d, %d)   mines left: %d",
		step.Ship.X, step.Ship.Y, step.Ship.Z, step.MinesLeft)

	return lipgloss.JoinVertical(lipgloss.Left, header, grids, dimStyle.Render(info))
}

func (m ReplayModel) renderOutcome() string {
	r := m.result
	lines := []string{
		RenderOutcome(r.Outcome()),
		"",
		fmt.Sprintf("ended:   %s", r.Ending),
		fmt.Sprintf("mines:   %d of %d cleared", r.InitialMines-r.MinesLeft, r.InitialMines),
		fmt.Sprintf("steps:   %d of %d scripted", len(r.Steps), r.TurnsCovered),
		fmt.Sprintf("volleys: %d", r.Volleys),
		fmt.Sprintf("moves:   %d", r.Moves),
	}
	return boxStyle.Render(strings.Join(lines, "\n"))
}

// Frame returns the index of the frame on screen.
func (m ReplayModel) Frame() int {
	return m.frame
}

// Playing reports whether autoplay is running.
func (m ReplayModel) Playing() bool {
	return m.playing
}

// IsQuitting returns true if user requested to quit entirely.
func (m ReplayModel) IsQuitting() bool {
	return m.quitting
}

// BackToMenu returns true if user requested to go back to menu.
func (m ReplayModel) BackToMenu() bool {
	return m.backToMenu
}

// RunReplay runs the replay viewer as a standalone program.
func RunReplay(title string, result *sim.Result, cfg Config) error {
	p := tea.NewProgram(NewReplayModel(title, result, cfg), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
