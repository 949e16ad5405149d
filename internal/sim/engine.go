package sim

import (
	"io"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/minemarker/internal/minefield"
	"github.com/vovakirdan/minemarker/internal/orders"
)

// Option configures an Engine.
type Option func(*Engine)

// WithLogger sets the logger used for per-turn debug output.
func WithLogger(logger *log.Logger) Option {
	return func(e *Engine) {
		if logger != nil {
			e.logger = logger
		}
	}
}

// WithStepHook registers a callback invoked after every completed step.
func WithStepHook(hook func(Step)) Option {
	return func(e *Engine) {
		e.onStep = hook
	}
}

// Engine drives one Environment through a script.
type Engine struct {
	env    *Environment
	script *orders.Orders
	logger *log.Logger
	onStep func(Step)

	steps []Step
}

// NewEngine creates an engine for env following script.
// The script is only read.
func NewEngine(env *Environment, script *orders.Orders, opts ...Option) *Engine {
	e := &Engine{
		env:    env,
		script: script,
		logger: log.New(io.Discard),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// terminal reports whether the run is over and why.
func (e *Engine) terminal() (Ending, bool) {
	switch {
	case e.env.Field().NumMines() == 0:
		return EndedCleared, true
	case e.env.mineReached():
		return EndedMineReached, true
	case len(e.steps) >= e.script.NumTurnsCovered():
		return EndedOutOfOrders, true
	default:
		return 0, false
	}
}

// Run executes turns until the field is cleared, a mine is reached or the
// script runs out, then scores the run. An Engine runs once.
func (e *Engine) Run() (*Result, error) {
	ship := e.env.Ship()

	ending, done := e.terminal()
	for !done {
		turn := len(e.steps)
		before, err := e.env.render()
		if err != nil {
			return nil, err
		}

		turnOrders := e.script.ForTurn(turn)
		if err := ship.ExecuteTurnOrders(turnOrders); err != nil {
			return nil, err
		}
		ship.Descend()

		after, err := e.env.render()
		if err != nil {
			return nil, err
		}

		step := Step{
			Number:    turn + 1,
			Before:    before,
			Orders:    turnOrders.String(),
			After:     after,
			Ship:      ship.Position(),
			MinesLeft: e.env.Field().NumMines(),
		}
		e.steps = append(e.steps, step)
		e.logger.Debug("turn", "step", step.Number, "orders", step.Orders, "ship", step.Ship, "mines", step.MinesLeft)
		if e.onStep != nil {
			e.onStep(step)
		}

		ending, done = e.terminal()
	}

	result := &Result{
		Steps:        e.steps,
		Ending:       ending,
		InitialMines: e.env.InitialMines(),
		MinesLeft:    e.env.Field().NumMines(),
		TurnsCovered: e.script.NumTurnsCovered(),
		Volleys:      ship.Volleys(),
		Moves:        ship.Moves(),
	}
	result.Score, result.Passed = score(
		result.InitialMines, result.MinesLeft, len(result.Steps),
		result.TurnsCovered, result.Volleys, result.Moves,
	)

	e.logger.Info("run finished", "outcome", result.Outcome(), "ending", result.Ending, "steps", len(result.Steps))
	return result, nil
}

// RunAndMark runs the simulation and returns the full transcript.
func (e *Engine) RunAndMark() ([]string, error) {
	result, err := e.Run()
	if err != nil {
		return nil, err
	}
	return result.Transcript(), nil
}

// Mark simulates script against a copy of field and returns the result.
func Mark(field *minefield.Set, script *orders.Orders, opts ...Option) (*Result, error) {
	env, err := NewEnvironment(field)
	if err != nil {
		return nil, err
	}
	return NewEngine(env, script, opts...).Run()
}
