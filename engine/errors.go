package engine

import "errors"

var (
	// ErrInvalidScore is returned when the oracle yields NaN or ±Inf.
	ErrInvalidScore = errors.New("engine: oracle returned a non-finite score")

	// ErrOracle wraps every error returned by the oracle.
	ErrOracle = errors.New("engine: oracle failed")

	// ErrNoOracle is returned by Run when oracle is nil.
	ErrNoOracle = errors.New("engine: nil oracle")
)
