package puzzle

import "errors"

var (
	// ErrInvalidReveal indicates a malformed puzzle reveal.
	ErrInvalidReveal = errors.New("puzzle: invalid puzzle reveal")

	// ErrInvalidSolution indicates a malformed solution.
	ErrInvalidSolution = errors.New("puzzle: invalid solution")

	// ErrConditionShape indicates a condition's operands do not match
	// its opcode.
	ErrConditionShape = errors.New("puzzle: malformed condition")

	// ErrCostBudget indicates execution cost exceeded the caller's budget.
	ErrCostBudget = errors.New("puzzle: execution cost exceeds budget")
)
