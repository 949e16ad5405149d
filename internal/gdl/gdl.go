// Package gdl produces a Game Description Language puzzle from a minefield,
// for use by general game playing engines.
package gdl

import (
	_ "embed"
	"fmt"
	"maps"
	"slices"
	"strings"

	"github.com/vovakirdan/minemarker/internal/geom"
	"github.com/vovakirdan/minemarker/internal/minefield"
)

//go:embed minesweeper.kif
var template string

// Separator is the comment line between the static rules and the generated
// facts.
const Separator = ";;;; Generated section:"

// DepthSymbol returns the GDL symbol for a mine depth: "star" for 0, "a"-"z"
// for 1-26 and "_a"-"_z" for 27-52. GDL symbols are case insensitive, so
// the upper-case half of the text format gets a prefix instead.
func DepthSymbol(depth int) (string, error) {
	if depth < 0 || depth > minefield.MaxDepth {
		return "", minefield.NewModelError("depth %d is outside the representable range 0-%d", depth, minefield.MaxDepth)
	}
	if depth == 0 {
		return "star", nil
	}

	prefix := ""
	for depth > 26 {
		prefix += "_"
		depth -= 26
	}
	return prefix + string(rune('a'+depth-1)), nil
}

// Generator writes the GDL description of one static minefield.
type Generator struct {
	field minefield.Minefield
}

// New creates a generator for field. The field is only read.
func New(field minefield.Minefield) *Generator {
	return &Generator{field: field}
}

// Generate is shorthand for New(field).GDL().
func Generate(field minefield.Minefield) (string, error) {
	return New(field).GDL()
}

// GDL returns the template followed by the generated facts.
func (g *Generator) GDL() (string, error) {
	facts, err := g.facts()
	if err != nil {
		return "", err
	}

	var b strings.Builder
	b.WriteString(template)
	b.WriteString("\n\n")
	b.WriteString(Separator)
	b.WriteString("\n\n")
	b.WriteString(facts)
	return b.String(), nil
}

// facts renders the generated section.
func (g *Generator) facts() (string, error) {
	box, ok := g.field.BoundingCuboid()
	if !ok {
		return "", minefield.NewModelError("cannot describe an empty minefield")
	}
	if box.NorthWestTop.Z < 1 {
		return "", minefield.NewModelError("mine at depth %d is not below the surface", box.NorthWestTop.Z)
	}

	maxX, maxY, maxZ := box.SouthEastBottom.X, box.SouthEastBottom.Y, box.SouthEastBottom.Z
	side := max(maxX, maxY) + 1

	var b strings.Builder

	for i := 1; i <= side; i++ {
		fmt.Fprintf(&b, "(index %d)\n", i)
	}
	b.WriteString("\n")

	markings := make([]string, 0, maxZ+1)
	for depth := maxZ; depth >= 0; depth-- {
		sym, err := DepthSymbol(depth)
		if err != nil {
			return "", err
		}
		markings = append(markings, sym)
	}
	for _, sym := range markings[:maxZ] {
		fmt.Fprintf(&b, "(minemarking %s)\n", sym)
	}
	b.WriteString("\n")

	// Counters never exceed the number of turns, which is bounded by maxZ
	maxSeq := max(side, 4*maxZ)
	for i := 0; i < maxSeq; i++ {
		fmt.Fprintf(&b, "(successor %d %d)\n", i, i+1)
	}
	for i := 0; i < maxZ; i++ {
		fmt.Fprintf(&b, "(successor %s %s)\n", markings[i], markings[i+1])
	}
	b.WriteString("\n")

	middleX, middleY := maxX/2+1, maxY/2+1
	fmt.Fprintf(&b, "(init (ship %d %d))\n", middleX, middleY)

	projection, err := g.field.Project(geom.P(middleX-1, middleY-1, 0))
	if err != nil {
		return "", err
	}
	for y := 1; y <= side; y++ {
		for x := 1; x <= side; x++ {
			state, err := cellState(projection.At(x-1, y-1))
			if err != nil {
				return "", err
			}
			fmt.Fprintf(&b, "(init (cell %d %d %s))\n", x, y, state)
		}
	}

	b.WriteString(goals(g.field.NumMines()))
	b.WriteString("\n")
	return b.String(), nil
}

func cellState(c byte) (string, error) {
	if c == minefield.EmptyCell {
		return "dot", nil
	}
	depth, err := minefield.DecodeDepth(c)
	if err != nil {
		return "", err
	}
	return DepthSymbol(depth)
}

// MaxScore returns the best raw score achievable with n mines: every volley
// uses a four-torpedo pattern and the ship never moves.
func MaxScore(n int) int {
	return 10*n - 5*ceilDiv(n, 4)
}

// moveLimit is the number of moves after which the move penalty is capped.
func moveLimit(n int) int {
	return ceilDiv(3*n, 2)
}

func ceilDiv(a, b int) int {
	return (a + b - 1) / b
}

// goals renders the goal rules for every (shots, moves) outcome of a
// cleared field, followed by the scoremap facts normalizing raw scores to
// 0-100.
func goals(n int) string {
	var b strings.Builder
	scores := make(map[int]int)
	best := MaxScore(n)
	limit := moveLimit(n)

	record := func(raw int) {
		scores[raw] = 100 * raw / best
	}

	for shots := ceilDiv(n, 4); shots < n; shots++ {
		ceiling := 10*n - 5*shots
		for moves := 0; moves < limit; moves++ {
			raw := ceiling - 2*moves
			writeGoal(&b, raw, fmt.Sprint(moves), fmt.Sprint(shots), 0, 0)
			record(raw)
		}
		raw := ceiling - 3*n
		writeGoal(&b, raw, "?m", fmt.Sprint(shots), limit, 0)
		record(raw)
	}

	// n or more volleys all carry the capped volley penalty
	ceiling := 5 * n
	for moves := 0; moves < limit; moves++ {
		raw := ceiling - 2*moves
		writeGoal(&b, raw, fmt.Sprint(moves), "?f", 0, n)
		record(raw)
	}
	raw := ceiling - 3*n
	writeGoal(&b, raw, "?m", "?f", limit, n)
	record(raw)

	b.WriteString("\n")
	for _, raw := range slices.Sorted(maps.Keys(scores)) {
		fmt.Fprintf(&b, "(scoremap %d %d)\n", raw, scores[raw])
	}
	return b.String()
}

// writeGoal writes one goal rule. When moved or fired is a variable, the
// matching exclusions rule out the values 0..n-1 covered by explicit rules.
func writeGoal(b *strings.Builder, raw int, moved, fired string, movedExcl, firedExcl int) {
	fmt.Fprintf(b, "(<= (goal sweeper ?s)\n")
	fmt.Fprintf(b, "    (scoremap %d ?s)\n", raw)
	b.WriteString("    (not minesremaining)\n")
	fmt.Fprintf(b, "    (true (moved %s))\n", moved)
	for i := 0; i < movedExcl; i++ {
		fmt.Fprintf(b, "    (distinct %s %d)\n", moved, i)
	}
	for i := 0; i < firedExcl; i++ {
		fmt.Fprintf(b, "    (distinct %s %d)\n", fired, i)
	}
	fmt.Fprintf(b, "    (true (fired %s)))\n", fired)
}
