package minefield

import (
	"iter"
	"slices"

	"github.com/vovakirdan/minemarker/internal/geom"
)

// Projection is a minefield flattened onto the plane of an observer.
// Cells are stored in row-major order: index = y*Width + x.
type Projection struct {
	Origin geom.Point // Absolute coordinate of the top-left cell; Z is the observer depth
	Width  int
	Height int
	cells  []byte
}

// Project builds the projection of mines centred on centerOn.
//
// The window radius is computed per axis so that the grid is just large
// enough to hold the observer and every mine symmetrically about the
// observer. Each column shows its shallowest mine. All depths are validated
// here, so iterating the rows afterwards cannot fail.
func Project(mines []geom.Point, centerOn geom.Point) (*Projection, error) {
	box, ok := geom.Bound(mines)
	if !ok {
		// Nothing here but the implicit ship
		return &Projection{
			Origin: geom.P(centerOn.X, centerOn.Y, centerOn.Z),
			Width:  1,
			Height: 1,
			cells:  []byte{EmptyCell},
		}, nil
	}

	radiusX := max(centerOn.X-box.NorthWestTop.X, box.SouthEastBottom.X-centerOn.X)
	radiusY := max(centerOn.Y-box.NorthWestTop.Y, box.SouthEastBottom.Y-centerOn.Y)

	p := &Projection{
		Origin: geom.P(centerOn.X-radiusX, centerOn.Y-radiusY, centerOn.Z),
		Width:  2*radiusX + 1,
		Height: 2*radiusY + 1,
	}
	p.cells = make([]byte, p.Width*p.Height)
	for i := range p.cells {
		p.cells[i] = EmptyCell
	}

	// Flatten z first so rendering is a single pass over the window
	columns := make(map[[2]int]geom.Point, len(mines))
	for _, mine := range mines {
		key := [2]int{mine.X, mine.Y}
		if shallowest, seen := columns[key]; !seen || mine.Z < shallowest.Z {
			columns[key] = mine
		}
	}

	for _, mine := range columns {
		c, err := EncodeDepth(mine.Z - centerOn.Z)
		if err != nil {
			return nil, err
		}
		p.cells[p.index(mine.X-p.Origin.X, mine.Y-p.Origin.Y)] = c
	}

	return p, nil
}

// index converts a window-relative coordinate to a flat array index.
func (p *Projection) index(x, y int) int {
	return y*p.Width + x
}

// At returns the cell at the absolute coordinate (x, y).
// Cells outside the window are empty.
func (p *Projection) At(x, y int) byte {
	rx, ry := x-p.Origin.X, y-p.Origin.Y
	if rx < 0 || rx >= p.Width || ry < 0 || ry >= p.Height {
		return EmptyCell
	}
	return p.cells[p.index(rx, ry)]
}

// Rows returns the rendered rows as a lazy sequence.
// The sequence can be ranged over any number of times.
func (p *Projection) Rows() iter.Seq[string] {
	return func(yield func(string) bool) {
		for y := 0; y < p.Height; y++ {
			start := p.index(0, y)
			if !yield(string(p.cells[start : start+p.Width])) {
				return
			}
		}
	}
}

// Lines collects Rows into a slice.
func (p *Projection) Lines() []string {
	return slices.Collect(p.Rows())
}
