package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/minemarker/internal/minefield"
)

// Cell styles by how close a mine is to the ship.
var (
	emptyStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	reachedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true)
	closeStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("208"))
	nearStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("11"))
	farStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("14"))
	deepStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("12"))
	shipStyle    = lipgloss.NewStyle().Background(lipgloss.Color("57"))

	passStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("10")).Bold(true)
	failStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true)
	titleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229"))
	dimStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	boxStyle   = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("240")).
			Padding(0, 1)
)

// cellStyle picks the style for one projected cell.
func cellStyle(c byte) lipgloss.Style {
	if c == minefield.EmptyCell {
		return emptyStyle
	}
	depth, err := minefield.DecodeDepth(c)
	if err != nil {
		return lipgloss.NewStyle()
	}
	switch {
	case depth == 0:
		return reachedStyle
	case depth <= 2:
		return closeStyle
	case depth <= 8:
		return nearStyle
	case depth <= 26:
		return farStyle
	default:
		return deepStyle
	}
}

// RenderGrid styles projected rows. The projection is always centred on the
// ship, so the middle cell is highlighted as the ship's position.
func RenderGrid(rows []string) string {
	if len(rows) == 0 {
		return ""
	}
	shipY, shipX := len(rows)/2, len(rows[0])/2

	var sb strings.Builder
	for y, row := range rows {
		if y > 0 {
			sb.WriteByte('\n')
		}
		for x := 0; x < len(row); x++ {
			style := cellStyle(row[x])
			if x == shipX && y == shipY {
				style = style.Inherit(shipStyle)
			}
			sb.WriteString(style.Render(string(row[x])))
		}
	}
	return sb.String()
}

// RenderOutcome styles a "pass (S)" / "fail (0)" line.
func RenderOutcome(outcome string) string {
	if strings.HasPrefix(outcome, "pass") {
		return passStyle.Render(outcome)
	}
	return failStyle.Render(outcome)
}

// centerText centers text within given width.
func centerText(text string, width int) string {
	w := lipgloss.Width(text)
	if w >= width {
		return text
	}
	return strings.Repeat(" ", (width-w)/2) + text
}
