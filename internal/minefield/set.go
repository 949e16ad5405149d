package minefield

import (
	"slices"

	"github.com/vovakirdan/minemarker/internal/geom"
)

// Set is a hash-set backed Minefield with no particular concern for scaling:
// the text format keeps fields small, so every mutation rescans all mines to
// rebuild the bounding cuboid.
type Set struct {
	mines  map[geom.Point]struct{}
	box    geom.Cuboid
	hasBox bool
}

var _ Minefield = (*Set)(nil)

// NewSet creates an empty minefield.
func NewSet() *Set {
	return &Set{mines: make(map[geom.Point]struct{})}
}

// NewSetOf creates a minefield holding the given mines.
func NewSetOf(mines ...geom.Point) *Set {
	s := NewSet()
	for _, m := range mines {
		s.AddMine(m)
	}
	return s
}

// AddMine inserts a mine, growing the bounding cuboid when needed.
func (s *Set) AddMine(at geom.Point) {
	s.mines[at] = struct{}{}
	if !s.hasBox || !s.box.Contains(at) {
		s.updateBoundingCuboid()
	}
}

// ClearRegion removes every mine inside region and rebuilds the bounding
// cuboid, even when nothing was removed.
func (s *Set) ClearRegion(region geom.Cuboid) {
	for mine := range s.mines {
		if region.Contains(mine) {
			delete(s.mines, mine)
		}
	}
	s.updateBoundingCuboid()
}

// BoundingCuboid returns the tight box around all mines.
func (s *Set) BoundingCuboid() (geom.Cuboid, bool) {
	return s.box, s.hasBox
}

// NumMines returns the number of mines left.
func (s *Set) NumMines() int {
	return len(s.mines)
}

// Has reports whether there is a mine at p.
func (s *Set) Has(p geom.Point) bool {
	_, ok := s.mines[p]
	return ok
}

// Mines returns all mines ordered by (x, y, z).
func (s *Set) Mines() []geom.Point {
	result := make([]geom.Point, 0, len(s.mines))
	for m := range s.mines {
		result = append(result, m)
	}
	slices.SortFunc(result, func(a, b geom.Point) int {
		switch {
		case a.Less(b):
			return -1
		case b.Less(a):
			return 1
		default:
			return 0
		}
	})
	return result
}

// Clone returns a deep copy of the minefield.
func (s *Set) Clone() *Set {
	c := &Set{
		mines:  make(map[geom.Point]struct{}, len(s.mines)),
		box:    s.box,
		hasBox: s.hasBox,
	}
	for m := range s.mines {
		c.mines[m] = struct{}{}
	}
	return c
}

// Project flattens the field onto the plane of centerOn.
func (s *Set) Project(centerOn geom.Point) (*Projection, error) {
	return Project(s.Mines(), centerOn)
}

// ToOutputFormat renders the field centred on centerOn.
func (s *Set) ToOutputFormat(centerOn geom.Point) ([]string, error) {
	p, err := s.Project(centerOn)
	if err != nil {
		return nil, err
	}
	return p.Lines(), nil
}

// updateBoundingCuboid recomputes the bounding cuboid from scratch.
func (s *Set) updateBoundingCuboid() {
	points := make([]geom.Point, 0, len(s.mines))
	for m := range s.mines {
		points = append(points, m)
	}
	s.box, s.hasBox = geom.Bound(points)
}
