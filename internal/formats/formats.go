// Package formats parses the plain-text minefield and script files.
package formats

import (
	"fmt"
	"os"
	"strings"
	"unicode"

	"github.com/vovakirdan/minemarker/internal/geom"
	"github.com/vovakirdan/minemarker/internal/minefield"
	"github.com/vovakirdan/minemarker/internal/orders"
)

// ParseError reports malformed input text.
type ParseError struct {
	Source string // File name, empty for in-memory text
	Line   int    // 1-based, 0 if the error is not tied to a line
	Column int    // 1-based, 0 if unknown
	Msg    string
}

// Error implements error.
func (e *ParseError) Error() string {
	var b strings.Builder
	if e.Source != "" {
		b.WriteString(e.Source)
		b.WriteString(":")
	}
	if e.Line > 0 {
		fmt.Fprintf(&b, "%d:", e.Line)
		if e.Column > 0 {
			fmt.Fprintf(&b, "%d:", e.Column)
		}
	}
	if b.Len() > 0 {
		b.WriteString(" ")
	}
	b.WriteString(e.Msg)
	return b.String()
}

// splitLines normalizes line endings and splits text into lines.
// A single trailing line terminator does not produce an extra empty line.
func splitLines(text string) []string {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	if text == "" {
		return nil
	}
	text = strings.TrimSuffix(text, "\n")
	return strings.Split(text, "\n")
}

// ParseMinefield parses minefield text. Each row is one line of equal width;
// '.' is an empty cell, 'a'-'z' a mine at depth 1-26 and 'A'-'Z' a mine at
// depth 27-52. The top-left character is (0, 0).
func ParseMinefield(text string) (*minefield.Set, error) {
	lines := splitLines(text)
	if len(lines) == 0 {
		return nil, &ParseError{Msg: "minefield is empty"}
	}

	field := minefield.NewSet()
	width := len(lines[0])
	for y, line := range lines {
		if line == "" {
			return nil, &ParseError{Line: y + 1, Msg: "blank row in minefield"}
		}
		if len(line) != width {
			return nil, &ParseError{
				Line: y + 1,
				Msg:  fmt.Sprintf("row has width %d, expected %d", len(line), width),
			}
		}

		for x := 0; x < len(line); x++ {
			c := line[x]
			if c == minefield.EmptyCell {
				continue
			}
			if !isMineChar(c) {
				return nil, &ParseError{
					Line:   y + 1,
					Column: x + 1,
					Msg:    fmt.Sprintf("unexpected character %q", c),
				}
			}
			depth, err := minefield.DecodeDepth(c)
			if err != nil {
				return nil, &ParseError{Line: y + 1, Column: x + 1, Msg: err.Error()}
			}
			field.AddMine(geom.P(x, y, depth))
		}
	}

	if field.NumMines() == 0 {
		return nil, &ParseError{Msg: "minefield contains no mines"}
	}
	return field, nil
}

func isMineChar(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

// ParseScript parses script text, one line per turn. A blank line is a turn
// with no orders. Illegal combinations within a line are reported as
// *orders.ScriptError.
func ParseScript(text string) (*orders.Orders, error) {
	script := orders.New()

	for i, line := range splitLines(text) {
		tokens := strings.FieldsFunc(line, unicode.IsSpace)
		if len(tokens) == 0 {
			if err := script.SetTurnOrders(i, nil); err != nil {
				return nil, err
			}
			continue
		}

		turn := &orders.TurnOrders{}
		start := 0 // Byte offset just past the previous token
		for _, token := range tokens {
			column := start + strings.Index(line[start:], token)
			start = column + len(token)

			action, ok := orders.ParseAction(token)
			if !ok {
				return nil, &ParseError{
					Line:   i + 1,
					Column: column + 1,
					Msg:    fmt.Sprintf("unknown order %q", token),
				}
			}
			if err := turn.Add(action); err != nil {
				return nil, withTurn(err, i)
			}
		}

		if err := script.SetTurnOrders(i, turn); err != nil {
			return nil, err
		}
	}

	return script, nil
}

// withTurn attaches the turn number to a ScriptError raised while building
// a single turn.
func withTurn(err error, turn int) error {
	if se, ok := err.(*orders.ScriptError); ok && se.Turn < 0 {
		return &orders.ScriptError{Turn: turn, Msg: se.Msg}
	}
	return err
}

// LoadMinefield reads and parses a minefield file.
func LoadMinefield(path string) (*minefield.Set, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("formats: cannot read minefield: %w", err)
	}
	field, err := ParseMinefield(string(data))
	if err != nil {
		return nil, withSource(err, path)
	}
	return field, nil
}

// LoadScript reads and parses a script file.
func LoadScript(path string) (*orders.Orders, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("formats: cannot read script: %w", err)
	}
	script, err := ParseScript(string(data))
	if err != nil {
		return nil, withSource(err, path)
	}
	return script, nil
}

func withSource(err error, source string) error {
	if pe, ok := err.(*ParseError); ok {
		copied := *pe
		copied.Source = source
		return &copied
	}
	return fmt.Errorf("%s: %w", source, err)
}

// FormatMinefield renders a field the way ParseMinefield reads it: a grid
// anchored at (0, 0) spanning to the bounding cuboid's south-east corner,
// with depths measured from the surface.
func FormatMinefield(field minefield.Minefield) (string, error) {
	box, ok := field.BoundingCuboid()
	if !ok {
		return "", minefield.NewModelError("cannot format an empty minefield")
	}
	if box.NorthWestTop.X < 0 || box.NorthWestTop.Y < 0 {
		return "", minefield.NewModelError("minefield extends to negative coordinates %v", box.NorthWestTop)
	}

	width, height := box.SouthEastBottom.X+1, box.SouthEastBottom.Y+1
	grid := make([][]byte, height)
	for y := range grid {
		grid[y] = []byte(strings.Repeat(string(rune(minefield.EmptyCell)), width))
	}

	for _, mine := range field.Mines() {
		c, err := minefield.EncodeDepth(mine.Z)
		if err != nil {
			return "", err
		}
		// Mines() is ordered by z within a column, so the first one wins
		if grid[mine.Y][mine.X] == minefield.EmptyCell {
			grid[mine.Y][mine.X] = c
		}
	}

	var b strings.Builder
	for _, row := range grid {
		b.Write(row)
		b.WriteByte('\n')
	}
	return b.String(), nil
}
