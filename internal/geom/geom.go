// Package geom provides the integer 3-D primitives used by the minefield
// model. It has no dependencies so that every other package can share it.
package geom

import "fmt"

// Point is a coordinate on the quantized grid.
// X grows to the right along a rendered row, Y grows with later rows and
// Z is depth below the surface (0 = surface).
type Point struct {
	X, Y, Z int
}

// P is shorthand for constructing a Point.
func P(x, y, z int) Point {
	return Point{X: x, Y: y, Z: z}
}

// Displace returns the point offset by d on every axis.
func (p Point) Displace(d Point) Point {
	return Point{X: p.X + d.X, Y: p.Y + d.Y, Z: p.Z + d.Z}
}

// String implements fmt.Stringer.
func (p Point) String() string {
	return fmt.Sprintf("(%d,%d,%d)", p.X, p.Y, p.Z)
}

// Less orders points by X, then Y, then Z.
func (p Point) Less(other Point) bool {
	if p.X != other.X {
		return p.X < other.X
	}
	if p.Y != other.Y {
		return p.Y < other.Y
	}
	return p.Z < other.Z
}

// Cuboid is an inclusive axis-aligned box.
type Cuboid struct {
	NorthWestTop    Point // Minimal corner
	SouthEastBottom Point // Maximal corner
}

// NewCuboid creates a cuboid from its two corners.
func NewCuboid(northWestTop, southEastBottom Point) Cuboid {
	return Cuboid{NorthWestTop: northWestTop, SouthEastBottom: southEastBottom}
}

// Column returns the 1x1 cuboid starting at top and extending depth cells down.
func Column(top Point, depth int) Cuboid {
	return NewCuboid(top, top.Displace(Point{Z: depth}))
}

// Contains returns true if p lies inside the cuboid, borders included.
func (c Cuboid) Contains(p Point) bool {
	return c.NorthWestTop.X <= p.X && p.X <= c.SouthEastBottom.X &&
		c.NorthWestTop.Y <= p.Y && p.Y <= c.SouthEastBottom.Y &&
		c.NorthWestTop.Z <= p.Z && p.Z <= c.SouthEastBottom.Z
}

// Width returns the number of cells spanned along X.
func (c Cuboid) Width() int {
	return c.SouthEastBottom.X - c.NorthWestTop.X + 1
}

// Height returns the number of cells spanned along Y.
func (c Cuboid) Height() int {
	return c.SouthEastBottom.Y - c.NorthWestTop.Y + 1
}

// Depth returns the number of cells spanned along Z.
func (c Cuboid) Depth() int {
	return c.SouthEastBottom.Z - c.NorthWestTop.Z + 1
}

// String implements fmt.Stringer.
func (c Cuboid) String() string {
	return fmt.Sprintf("[%v..%v]", c.NorthWestTop, c.SouthEastBottom)
}

// Bound returns the tight cuboid around points.
// ok is false when points is empty.
func Bound(points []Point) (c Cuboid, ok bool) {
	if len(points) == 0 {
		return Cuboid{}, false
	}

	lo, hi := points[0], points[0]
	for _, p := range points[1:] {
		lo.X = min(lo.X, p.X)
		lo.Y = min(lo.Y, p.Y)
		lo.Z = min(lo.Z, p.Z)
		hi.X = max(hi.X, p.X)
		hi.Y = max(hi.Y, p.Y)
		hi.Z = max(hi.Z, p.Z)
	}
	return NewCuboid(lo, hi), true
}
