// Package sim runs a scripted sweep of a minefield and scores the outcome.
//
// The engine is deterministic and single-threaded: one Environment owns one
// minefield and one ship, and a run never touches anything else.
package sim

import (
	"github.com/vovakirdan/minemarker/internal/geom"
	"github.com/vovakirdan/minemarker/internal/minefield"
	"github.com/vovakirdan/minemarker/internal/ship"
)

// Environment owns the minefield under simulation and the ship sweeping it.
type Environment struct {
	field        *minefield.Set
	ship         *ship.Ship
	initialMines int
}

// NewEnvironment copies field and places the ship at the surface above the
// centre of the field's x/y footprint. The caller's field is not modified.
func NewEnvironment(field *minefield.Set) (*Environment, error) {
	box, ok := field.BoundingCuboid()
	if !ok {
		return nil, minefield.NewModelError("cannot simulate an empty minefield")
	}

	own := field.Clone()
	start := geom.P(
		(box.NorthWestTop.X+box.SouthEastBottom.X)/2,
		(box.NorthWestTop.Y+box.SouthEastBottom.Y)/2,
		0,
	)

	return &Environment{
		field:        own,
		ship:         ship.New(start, own),
		initialMines: own.NumMines(),
	}, nil
}

// Field returns the environment's minefield.
func (e *Environment) Field() *minefield.Set {
	return e.field
}

// Ship returns the environment's ship.
func (e *Environment) Ship() *ship.Ship {
	return e.ship
}

// InitialMines returns the number of mines at the start of the run.
func (e *Environment) InitialMines() int {
	return e.initialMines
}

// render projects the field centred on the ship.
func (e *Environment) render() ([]string, error) {
	return e.field.ToOutputFormat(e.ship.Position())
}

// mineReached reports whether the shallowest mine is level with or above
// the ship.
func (e *Environment) mineReached() bool {
	box, ok := e.field.BoundingCuboid()
	return ok && box.NorthWestTop.Z <= e.ship.Position().Z
}
