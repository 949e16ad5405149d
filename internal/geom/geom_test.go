package geom

import "testing"

func TestCuboidContains(t *testing.T) {
	c := NewCuboid(P(1, 1, 1), P(3, 4, 5))

	tests := []struct {
		name     string
		p        Point
		expected bool
	}{
		{"inside", P(2, 2, 2), true},
		{"north-west-top corner", P(1, 1, 1), true},
		{"south-east-bottom corner (inclusive)", P(3, 4, 5), true},
		{"outside west", P(0, 2, 2), false},
		{"outside east", P(4, 2, 2), false},
		{"outside north", P(2, 0, 2), false},
		{"outside south", P(2, 5, 2), false},
		{"above", P(2, 2, 0), false},
		{"below", P(2, 2, 6), false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			result := c.Contains(tc.p)
			if result != tc.expected {
				t.Errorf("Contains(%v) = %v, expected %v", tc.p, result, tc.expected)
			}
		})
	}
}

func TestDisplace(t *testing.T) {
	p := P(1, 2, 3).Displace(P(-1, 1, 4))
	if p != P(0, 3, 7) {
		t.Errorf("Displace() = %v, expected (0,3,7)", p)
	}
}

func TestColumn(t *testing.T) {
	c := Column(P(2, 3, 1), 4)

	if c.NorthWestTop != P(2, 3, 1) {
		t.Errorf("NorthWestTop = %v, expected (2,3,1)", c.NorthWestTop)
	}
	if c.SouthEastBottom != P(2, 3, 5) {
		t.Errorf("SouthEastBottom = %v, expected (2,3,5)", c.SouthEastBottom)
	}
	if c.Width() != 1 || c.Height() != 1 || c.Depth() != 5 {
		t.Errorf("extent = %dx%dx%d, expected 1x1x5", c.Width(), c.Height(), c.Depth())
	}
	if c.Contains(P(2, 3, 0)) {
		t.Error("column should not reach above its top")
	}
}

func TestBound(t *testing.T) {
	if _, ok := Bound(nil); ok {
		t.Error("Bound(nil) should report no cuboid")
	}

	c, ok := Bound([]Point{P(1, 0, 5), P(2, 1, 1), P(0, 2, 27)})
	if !ok {
		t.Fatal("Bound() reported no cuboid for non-empty input")
	}
	if c.NorthWestTop != P(0, 0, 1) {
		t.Errorf("NorthWestTop = %v, expected (0,0,1)", c.NorthWestTop)
	}
	if c.SouthEastBottom != P(2, 2, 27) {
		t.Errorf("SouthEastBottom = %v, expected (2,2,27)", c.SouthEastBottom)
	}
}

func TestLess(t *testing.T) {
	tests := []struct {
		a, b     Point
		expected bool
	}{
		{P(0, 5, 5), P(1, 0, 0), true},
		{P(1, 0, 5), P(1, 1, 0), true},
		{P(1, 1, 0), P(1, 1, 1), true},
		{P(1, 1, 1), P(1, 1, 1), false},
		{P(2, 0, 0), P(1, 9, 9), false},
	}

	for _, tc := range tests {
		if got := tc.a.Less(tc.b); got != tc.expected {
			t.Errorf("%v.Less(%v) = %v, expected %v", tc.a, tc.b, got, tc.expected)
		}
	}
}
