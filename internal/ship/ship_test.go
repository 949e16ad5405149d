package ship

import (
	"testing"

	"github.com/vovakirdan/minemarker/internal/geom"
	"github.com/vovakirdan/minemarker/internal/minefield"
	"github.com/vovakirdan/minemarker/internal/orders"
)

// sampleField returns the field
//
//	.e.
//	..a
//	A..
func sampleField() *minefield.Set {
	return minefield.NewSetOf(
		geom.P(1, 0, 5),
		geom.P(2, 1, 1),
		geom.P(0, 2, 27),
	)
}

func mustTurn(t *testing.T, actions ...orders.Action) *orders.TurnOrders {
	t.Helper()
	turn, err := orders.NewTurnOrders(actions...)
	if err != nil {
		t.Fatalf("NewTurnOrders(%v) failed: %v", actions, err)
	}
	return turn
}

func TestMovement(t *testing.T) {
	tests := []struct {
		action   orders.Action
		expected geom.Point
	}{
		{orders.North, geom.P(5, 4, 2)},
		{orders.South, geom.P(5, 6, 2)},
		{orders.East, geom.P(6, 5, 2)},
		{orders.West, geom.P(4, 5, 2)},
	}

	for _, tc := range tests {
		t.Run(tc.action.String(), func(t *testing.T) {
			s := New(geom.P(5, 5, 2), minefield.NewSet())
			if err := s.ExecuteAction(tc.action); err != nil {
				t.Fatalf("ExecuteAction() failed: %v", err)
			}
			if s.Position() != tc.expected {
				t.Errorf("Position() = %v, expected %v", s.Position(), tc.expected)
			}
			if s.Moves() != 1 {
				t.Errorf("Moves() = %d, expected 1", s.Moves())
			}
			if s.Volleys() != 0 {
				t.Errorf("Volleys() = %d, expected 0", s.Volleys())
			}
		})
	}
}

func TestDeltaVolley(t *testing.T) {
	field := sampleField()
	s := New(geom.P(1, 1, 0), field)

	if err := s.ExecuteTurnOrders(mustTurn(t, orders.Delta)); err != nil {
		t.Fatalf("ExecuteTurnOrders() failed: %v", err)
	}

	box, ok := field.BoundingCuboid()
	if !ok {
		t.Fatal("field should not be empty")
	}
	if box.Width() != 3 || box.Height() != 2 || box.Depth() != 27 {
		t.Errorf("extent = %dx%dx%d, expected 3x2x27", box.Width(), box.Height(), box.Depth())
	}
	if field.NumMines() != 2 {
		t.Errorf("NumMines() = %d, expected 2", field.NumMines())
	}
	if s.Volleys() != 1 {
		t.Errorf("Volleys() = %d, expected 1", s.Volleys())
	}
}

func TestGammaVolleyClearsRow(t *testing.T) {
	field := sampleField()
	s := New(geom.P(1, 1, 0), field)

	if err := s.ExecuteAction(orders.Gamma); err != nil {
		t.Fatalf("ExecuteAction() failed: %v", err)
	}

	if field.Has(geom.P(2, 1, 1)) {
		t.Error("mine at (2,1,1) should be cleared by gamma")
	}
	if field.NumMines() != 2 {
		t.Errorf("NumMines() = %d, expected 2", field.NumMines())
	}
}

func TestPatterns(t *testing.T) {
	// One mine under every cell of a 3x3 footprint around the ship
	var all []geom.Point
	for y := 0; y < 3; y++ {
		for x := 0; x < 3; x++ {
			all = append(all, geom.P(x, y, 3))
		}
	}

	tests := []struct {
		action    orders.Action
		remaining []geom.Point
	}{
		{orders.Alpha, []geom.Point{geom.P(1, 0, 3), geom.P(0, 1, 3), geom.P(1, 1, 3), geom.P(2, 1, 3), geom.P(1, 2, 3)}},
		{orders.Beta, []geom.Point{geom.P(0, 0, 3), geom.P(2, 0, 3), geom.P(1, 1, 3), geom.P(0, 2, 3), geom.P(2, 2, 3)}},
		{orders.Gamma, []geom.Point{geom.P(0, 0, 3), geom.P(1, 0, 3), geom.P(2, 0, 3), geom.P(0, 2, 3), geom.P(1, 2, 3), geom.P(2, 2, 3)}},
		{orders.Delta, []geom.Point{geom.P(0, 0, 3), geom.P(2, 0, 3), geom.P(0, 1, 3), geom.P(2, 1, 3), geom.P(0, 2, 3), geom.P(2, 2, 3)}},
	}

	for _, tc := range tests {
		t.Run(tc.action.String(), func(t *testing.T) {
			field := minefield.NewSetOf(all...)
			s := New(geom.P(1, 1, 0), field)

			if err := s.ExecuteAction(tc.action); err != nil {
				t.Fatalf("ExecuteAction() failed: %v", err)
			}
			if field.NumMines() != len(tc.remaining) {
				t.Fatalf("NumMines() = %d, expected %d", field.NumMines(), len(tc.remaining))
			}
			for _, p := range tc.remaining {
				if !field.Has(p) {
					t.Errorf("mine at %v should survive %v", p, tc.action)
				}
			}
		})
	}
}

func TestTorpedoesOnlyClearBelowShip(t *testing.T) {
	field := minefield.NewSetOf(
		geom.P(1, 1, 1), // above the ship
		geom.P(1, 1, 2), // level with the ship
		geom.P(1, 1, 3), // below
		geom.P(1, 1, 9), // far below
	)
	s := New(geom.P(1, 1, 2), field)

	if err := s.ExecuteAction(orders.Gamma); err != nil {
		t.Fatalf("ExecuteAction() failed: %v", err)
	}

	if !field.Has(geom.P(1, 1, 1)) || !field.Has(geom.P(1, 1, 2)) {
		t.Error("mines at or above the ship must not be cleared")
	}
	if field.Has(geom.P(1, 1, 3)) || field.Has(geom.P(1, 1, 9)) {
		t.Error("mines below the ship should be cleared")
	}
}

func TestFireAtEmptyField(t *testing.T) {
	s := New(geom.P(0, 0, 0), minefield.NewSet())

	if err := s.ExecuteAction(orders.Beta); err != nil {
		t.Fatalf("ExecuteAction() failed: %v", err)
	}
	if s.Volleys() != 1 {
		t.Errorf("Volleys() = %d, expected 1", s.Volleys())
	}
}

func TestNilTurnIsNoOp(t *testing.T) {
	field := sampleField()
	s := New(geom.P(1, 1, 0), field)

	if err := s.ExecuteTurnOrders(nil); err != nil {
		t.Fatalf("ExecuteTurnOrders(nil) failed: %v", err)
	}
	if s.Position() != geom.P(1, 1, 0) || field.NumMines() != 3 {
		t.Error("nil orders should not change anything")
	}
}

func TestMoveThenFireUsesNewPosition(t *testing.T) {
	field := sampleField()
	s := New(geom.P(1, 1, 0), field)

	// Moving north first puts the 'e' mine at (1,0) under the ship
	if err := s.ExecuteTurnOrders(mustTurn(t, orders.North, orders.Delta)); err != nil {
		t.Fatalf("ExecuteTurnOrders() failed: %v", err)
	}

	if field.Has(geom.P(1, 0, 5)) {
		t.Error("mine at (1,0,5) should be cleared")
	}
	if s.Position() != geom.P(1, 0, 0) {
		t.Errorf("Position() = %v, expected (1,0,0)", s.Position())
	}
	if s.Moves() != 1 || s.Volleys() != 1 {
		t.Errorf("Moves()/Volleys() = %d/%d, expected 1/1", s.Moves(), s.Volleys())
	}
}

func TestDescend(t *testing.T) {
	s := New(geom.P(3, 4, 0), minefield.NewSet())
	s.Descend()
	s.Descend()

	if s.Position() != geom.P(3, 4, 2) {
		t.Errorf("Position() = %v, expected (3,4,2)", s.Position())
	}
}

func TestLaunchPointsIsACopy(t *testing.T) {
	pts := LaunchPoints(orders.Gamma)
	pts[0] = geom.P(9, 9, 9)

	if LaunchPoints(orders.Gamma)[0] == geom.P(9, 9, 9) {
		t.Error("LaunchPoints() should return a copy")
	}
	if len(LaunchPoints(orders.North)) != 0 {
		t.Error("movement actions have no launch points")
	}
}
