// Package orders models the scripted actions a sweeper ship executes, one
// set of actions per turn.
package orders

import (
	"fmt"
	"strings"
)

// Action is a single order given to the ship.
type Action uint8

const (
	// Movement actions
	North Action = iota
	South
	East
	West

	// Firing actions
	Alpha
	Beta
	Gamma
	Delta
)

var actionNames = [...]string{
	North: "north",
	South: "south",
	East:  "east",
	West:  "west",
	Alpha: "alpha",
	Beta:  "beta",
	Gamma: "gamma",
	Delta: "delta",
}

// String returns the script token for the action.
func (a Action) String() string {
	if int(a) < len(actionNames) {
		return actionNames[a]
	}
	return fmt.Sprintf("Action(%d)", a)
}

// IsMovement reports whether the action moves the ship.
func (a Action) IsMovement() bool {
	return a >= North && a <= West
}

// IsTorpedoLaunch reports whether the action fires a torpedo pattern.
func (a Action) IsTorpedoLaunch() bool {
	return a >= Alpha && a <= Delta
}

// ParseAction converts a script token to an Action.
func ParseAction(token string) (Action, bool) {
	for i, name := range actionNames {
		if name == token {
			return Action(i), true
		}
	}
	return 0, false
}

// ScriptError reports an illegal script: conflicting actions within a turn
// or orders set twice for the same turn.
type ScriptError struct {
	Turn int // 0-based turn, -1 if unknown
	Msg  string
}

// Error implements error.
func (e *ScriptError) Error() string {
	if e.Turn < 0 {
		return "script: " + e.Msg
	}
	return fmt.Sprintf("script: turn %d: %s", e.Turn+1, e.Msg)
}

// TurnOrders holds the actions for one turn: at most one movement and at most
// one torpedo launch, in either order.
type TurnOrders struct {
	actions []Action
}

// NewTurnOrders builds turn orders from actions, validating each addition.
func NewTurnOrders(actions ...Action) (*TurnOrders, error) {
	t := &TurnOrders{}
	for _, a := range actions {
		if err := t.Add(a); err != nil {
			return nil, err
		}
	}
	return t, nil
}

// Add appends an action to the turn.
func (t *TurnOrders) Add(action Action) error {
	if !action.IsMovement() && !action.IsTorpedoLaunch() {
		return &ScriptError{Turn: -1, Msg: fmt.Sprintf("unknown action %v", action)}
	}
	if len(t.actions) > 1 {
		return &ScriptError{Turn: -1, Msg: "too many actions in one turn"}
	}

	for _, existing := range t.actions {
		if existing.IsMovement() && action.IsMovement() {
			return &ScriptError{Turn: -1, Msg: "only a single movement action per turn is allowed"}
		}
		if existing.IsTorpedoLaunch() && action.IsTorpedoLaunch() {
			return &ScriptError{Turn: -1, Msg: "only a single firing action per turn is allowed"}
		}
	}

	t.actions = append(t.actions, action)
	return nil
}

// Actions returns the actions in execution order.
func (t *TurnOrders) Actions() []Action {
	if t == nil {
		return nil
	}
	result := make([]Action, len(t.actions))
	copy(result, t.actions)
	return result
}

// String returns the orders in script form, space separated.
// Nil or empty orders produce an empty string.
func (t *TurnOrders) String() string {
	if t == nil {
		return ""
	}
	tokens := make([]string, len(t.actions))
	for i, a := range t.actions {
		tokens[i] = a.String()
	}
	return strings.Join(tokens, " ")
}

// Orders is the sparse per-turn table of a whole script.
// A nil entry means no actions on that turn.
type Orders struct {
	turns []*TurnOrders
	set   []bool
}

// New creates an empty script.
func New() *Orders {
	return &Orders{}
}

// SetTurnOrders sets the orders for a 0-based turn. Orders may be nil for a
// turn with no actions; the turn still counts towards NumTurnsCovered.
// Setting the same turn twice is a ScriptError.
func (o *Orders) SetTurnOrders(turn int, orders *TurnOrders) error {
	if turn < 0 {
		return &ScriptError{Turn: turn, Msg: "negative turn number"}
	}
	if turn < len(o.set) && o.set[turn] {
		return &ScriptError{Turn: turn, Msg: "orders set multiple times"}
	}

	for len(o.turns) <= turn {
		o.turns = append(o.turns, nil)
		o.set = append(o.set, false)
	}
	o.turns[turn] = orders
	o.set[turn] = true
	return nil
}

// ForTurn returns the orders for a 0-based turn, or nil if there are none.
func (o *Orders) ForTurn(turn int) *TurnOrders {
	if turn < 0 || turn >= len(o.turns) {
		return nil
	}
	return o.turns[turn]
}

// NumTurnsCovered returns the number of turns the script spans.
func (o *Orders) NumTurnsCovered() int {
	return len(o.turns)
}
