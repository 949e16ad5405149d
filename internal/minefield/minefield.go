// Package minefield models the 3-D set of mines swept by the ship and its
// projection onto the surface for textual rendering.
//
// The package is UI-agnostic and deterministic: the same operations on the
// same field always produce the same rows.
package minefield

import (
	"fmt"

	"github.com/vovakirdan/minemarker/internal/geom"
)

// Minefield is the capability set every minefield backing must provide.
// Set is the only implementation today; a spatially indexed one can be added
// without touching callers.
type Minefield interface {
	// AddMine inserts a mine. Adding an existing coordinate is a no-op.
	AddMine(at geom.Point)

	// ClearRegion removes every mine contained in region.
	ClearRegion(region geom.Cuboid)

	// BoundingCuboid returns the tight box around all mines.
	// ok is false when the field is empty.
	BoundingCuboid() (box geom.Cuboid, ok bool)

	// NumMines returns the number of mines left.
	NumMines() int

	// Mines returns a snapshot of all mines ordered by (x, y, z).
	Mines() []geom.Point

	// Project flattens the field onto the plane of centerOn.
	Project(centerOn geom.Point) (*Projection, error)

	// ToOutputFormat renders the projection centred on centerOn as rows.
	ToOutputFormat(centerOn geom.Point) ([]string, error)
}

// ModelError reports a violated model invariant: the renderer or engine
// reached a state that well-formed input can never produce.
type ModelError struct {
	Msg string
}

// Error implements error.
func (e *ModelError) Error() string {
	return "model: " + e.Msg
}

// NewModelError creates a ModelError with a formatted message.
func NewModelError(format string, args ...any) *ModelError {
	return &ModelError{Msg: fmt.Sprintf(format, args...)}
}
