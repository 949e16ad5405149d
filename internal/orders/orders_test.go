package orders

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	movements = []Action{North, South, East, West}
	launches  = []Action{Alpha, Beta, Gamma, Delta}
)

func TestActionKinds(t *testing.T) {
	for _, a := range movements {
		assert.True(t, a.IsMovement(), "%v should be a movement", a)
		assert.False(t, a.IsTorpedoLaunch(), "%v should not be a launch", a)
	}
	for _, a := range launches {
		assert.True(t, a.IsTorpedoLaunch(), "%v should be a launch", a)
		assert.False(t, a.IsMovement(), "%v should not be a movement", a)
	}
}

func TestParseAction(t *testing.T) {
	for _, a := range append(append([]Action{}, movements...), launches...) {
		got, ok := ParseAction(a.String())
		require.True(t, ok, "token %q", a.String())
		assert.Equal(t, a, got)
	}

	for _, token := range []string{"", "North", "fire", "epsilon", " north"} {
		_, ok := ParseAction(token)
		assert.False(t, ok, "token %q should not parse", token)
	}
}

func TestTurnOrdersLegalCombinations(t *testing.T) {
	for _, m := range movements {
		for _, f := range launches {
			moveFirst, err := NewTurnOrders(m, f)
			require.NoError(t, err, "%v %v", m, f)
			assert.Equal(t, []Action{m, f}, moveFirst.Actions())

			fireFirst, err := NewTurnOrders(f, m)
			require.NoError(t, err, "%v %v", f, m)
			assert.Equal(t, []Action{f, m}, fireFirst.Actions())
		}
	}
}

func TestTurnOrdersRejectsDuplicateKinds(t *testing.T) {
	tests := []struct {
		name    string
		actions []Action
	}{
		{"two movements", []Action{North, East}},
		{"same movement twice", []Action{West, West}},
		{"two launches", []Action{Alpha, Delta}},
		{"launch move launch", []Action{Gamma, South, Beta}},
		{"three actions", []Action{North, Alpha, South}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewTurnOrders(tt.actions...)
			var scriptErr *ScriptError
			require.True(t, errors.As(err, &scriptErr), "expected ScriptError, got %v", err)
		})
	}
}

func TestTurnOrdersString(t *testing.T) {
	var none *TurnOrders
	assert.Equal(t, "", none.String())

	empty, err := NewTurnOrders()
	require.NoError(t, err)
	assert.Equal(t, "", empty.String())

	both, err := NewTurnOrders(Beta, South)
	require.NoError(t, err)
	assert.Equal(t, "beta south", both.String())
}

func TestOrdersSparseTable(t *testing.T) {
	o := New()
	assert.Equal(t, 0, o.NumTurnsCovered())
	assert.Nil(t, o.ForTurn(0))

	gamma, err := NewTurnOrders(Gamma)
	require.NoError(t, err)

	require.NoError(t, o.SetTurnOrders(0, gamma))
	require.NoError(t, o.SetTurnOrders(1, nil))
	require.NoError(t, o.SetTurnOrders(3, gamma))

	assert.Equal(t, 4, o.NumTurnsCovered())
	assert.Same(t, gamma, o.ForTurn(0))
	assert.Nil(t, o.ForTurn(1))
	assert.Nil(t, o.ForTurn(2))
	assert.Same(t, gamma, o.ForTurn(3))
	assert.Nil(t, o.ForTurn(4))
	assert.Nil(t, o.ForTurn(-1))

	// Skipped turn can still be filled in once
	require.NoError(t, o.SetTurnOrders(2, gamma))
	assert.Equal(t, 4, o.NumTurnsCovered())
}

func TestOrdersRejectsSecondSet(t *testing.T) {
	o := New()
	require.NoError(t, o.SetTurnOrders(0, nil))

	err := o.SetTurnOrders(0, nil)
	var scriptErr *ScriptError
	require.True(t, errors.As(err, &scriptErr))
	assert.Equal(t, 0, scriptErr.Turn)
	assert.Contains(t, err.Error(), "turn 1")

	assert.Error(t, o.SetTurnOrders(-1, nil))
}
