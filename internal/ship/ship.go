// Package ship implements the sweeper ship: its movement, its torpedo
// patterns and the counters used for scoring.
package ship

import (
	"github.com/vovakirdan/minemarker/internal/geom"
	"github.com/vovakirdan/minemarker/internal/minefield"
	"github.com/vovakirdan/minemarker/internal/orders"
)

// launchOffsets are the (dx, dy) torpedo launch points of each firing pattern,
// relative to the ship.
var launchOffsets = map[orders.Action][]geom.Point{
	orders.Alpha: {{X: -1, Y: 1}, {X: -1, Y: -1}, {X: 1, Y: 1}, {X: 1, Y: -1}},
	orders.Beta:  {{X: -1, Y: 0}, {X: 0, Y: 1}, {X: 0, Y: -1}, {X: 1, Y: 0}},
	orders.Gamma: {{X: -1, Y: 0}, {X: 0, Y: 0}, {X: 1, Y: 0}},
	orders.Delta: {{X: 0, Y: 1}, {X: 0, Y: -1}, {X: 0, Y: 0}},
}

// Delta returns the (dx, dy) offset of a movement action.
// North decreases Y, south increases Y (screen coordinates).
func Delta(a orders.Action) (dx, dy int) {
	switch a {
	case orders.North:
		return 0, -1
	case orders.South:
		return 0, 1
	case orders.East:
		return 1, 0
	case orders.West:
		return -1, 0
	default:
		return 0, 0
	}
}

// LaunchPoints returns the launch offsets of a firing action.
func LaunchPoints(a orders.Action) []geom.Point {
	offsets := launchOffsets[a]
	result := make([]geom.Point, len(offsets))
	copy(result, offsets)
	return result
}

// Ship is the sweeper. It does not own the minefield it sweeps; the
// simulation environment holding both does.
type Ship struct {
	field   minefield.Minefield
	pos     geom.Point
	volleys int
	moves   int
}

// New creates a ship at pos sweeping field.
func New(pos geom.Point, field minefield.Minefield) *Ship {
	return &Ship{field: field, pos: pos}
}

// Position returns the ship's coordinates.
func (s *Ship) Position() geom.Point {
	return s.pos
}

// Volleys returns the number of firing actions executed.
func (s *Ship) Volleys() int {
	return s.volleys
}

// Moves returns the number of movement actions executed.
func (s *Ship) Moves() int {
	return s.moves
}

// Descend lowers the ship by one depth unit.
func (s *Ship) Descend() {
	s.pos = s.pos.Displace(geom.Point{Z: 1})
}

// ExecuteTurnOrders executes each action of the turn in order.
// Nil orders are a no-op turn.
func (s *Ship) ExecuteTurnOrders(turn *orders.TurnOrders) error {
	for _, a := range turn.Actions() {
		if err := s.ExecuteAction(a); err != nil {
			return err
		}
	}
	return nil
}

// ExecuteAction executes a single movement or firing action.
func (s *Ship) ExecuteAction(a orders.Action) error {
	switch {
	case a.IsMovement():
		dx, dy := Delta(a)
		s.pos = s.pos.Displace(geom.Point{X: dx, Y: dy})
		s.moves++
		return nil
	case a.IsTorpedoLaunch():
		s.fire(a)
		s.volleys++
		return nil
	default:
		return minefield.NewModelError("unknown action %v", a)
	}
}

// fire launches one torpedo per launch point. Each torpedo clears the 1x1
// column strictly below its launch point down to the bottom of the minefield.
func (s *Ship) fire(a orders.Action) {
	box, ok := s.field.BoundingCuboid()
	if !ok {
		return
	}

	remainingDepth := box.SouthEastBottom.Z - s.pos.Z
	if remainingDepth < 1 {
		return
	}
	below := geom.Point{Z: 1}
	for _, offset := range launchOffsets[a] {
		top := s.pos.Displace(offset).Displace(below)
		s.field.ClearRegion(geom.Column(top, remainingDepth-1))
	}
}
