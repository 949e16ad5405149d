package sim

import (
	"fmt"

	"github.com/vovakirdan/minemarker/internal/geom"
)

// Step is one recorded turn of a run.
type Step struct {
	Number    int      // 1-based
	Before    []string // Projection before the orders are executed
	Orders    string   // Orders text, empty for a turn with no orders
	After     []string // Projection after the ship descended
	Ship      geom.Point
	MinesLeft int
}

// Lines renders the step the way it appears in the transcript.
func (s Step) Lines() []string {
	lines := make([]string, 0, len(s.Before)+len(s.After)+6)
	lines = append(lines, fmt.Sprintf("Step %d", s.Number), "")
	lines = append(lines, s.Before...)
	lines = append(lines, "", s.Orders, "")
	lines = append(lines, s.After...)
	lines = append(lines, "")
	return lines
}

// Ending describes why a run stopped.
type Ending int

const (
	EndedCleared     Ending = iota // Every mine was destroyed
	EndedMineReached               // The ship sank to the depth of a mine
	EndedOutOfOrders               // The script ran out with mines left
)

// String implements fmt.Stringer.
func (e Ending) String() string {
	switch e {
	case EndedCleared:
		return "cleared"
	case EndedMineReached:
		return "mine reached"
	case EndedOutOfOrders:
		return "out of orders"
	default:
		return fmt.Sprintf("Ending(%d)", int(e))
	}
}

// Result is the scored outcome of a run.
type Result struct {
	Steps        []Step
	Ending       Ending
	Passed       bool
	Score        int
	InitialMines int
	MinesLeft    int
	TurnsCovered int
	Volleys      int
	Moves        int
}

// Outcome returns the final transcript line: "pass (S)" or "fail (0)".
func (r *Result) Outcome() string {
	if r.Passed {
		return fmt.Sprintf("pass (%d)", r.Score)
	}
	return "fail (0)"
}

// Transcript returns every step followed by the outcome line.
func (r *Result) Transcript() []string {
	var lines []string
	for _, step := range r.Steps {
		lines = append(lines, step.Lines()...)
	}
	return append(lines, r.Outcome())
}

// score applies the marking rules. n is the initial number of mines.
//
// Mines left always fail. Clearing the field before the script runs out
// earns 1. Otherwise the score starts at 10 per mine and loses 5 per volley
// and 2 per move, capped at 5n and 3n respectively.
func score(n, minesLeft, steps, turnsCovered, volleys, moves int) (int, bool) {
	if minesLeft > 0 {
		return 0, false
	}
	if steps < turnsCovered {
		return 1, true
	}
	s := 10*n - min(5*n, 5*volleys) - min(3*n, 2*moves)
	if s <= 0 {
		return 0, false
	}
	return s, true
}
