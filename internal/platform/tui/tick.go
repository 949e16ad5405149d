// Package tui provides the Bubble Tea front end for minemarker: a scenario
// picker, a step-by-step replay viewer, a results board and an SSH server
// serving all three.
package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// TickMsg advances an autoplaying replay by one frame.
// Gen identifies the autoplay run that scheduled it, so ticks left over
// from a paused run are ignored.
type TickMsg struct {
	Time time.Time
	Gen  int
}

// tickCmd returns a Bubble Tea command that sends one tick after interval.
func tickCmd(interval time.Duration, gen int) tea.Cmd {
	return tea.Tick(interval, func(t time.Time) tea.Msg {
		return TickMsg{Time: t, Gen: gen}
	})
}

// Config is the per-session view configuration.
type Config struct {
	ScreenW      int
	ScreenH      int
	StepInterval time.Duration
	Autoplay     bool
}

// DefaultConfig returns an 80x24 view stepping every half second.
func DefaultConfig() Config {
	return Config{
		ScreenW:      80,
		ScreenH:      24,
		StepInterval: 500 * time.Millisecond,
	}
}
