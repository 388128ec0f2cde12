package nodenet

import "errors"

// Error categories. Callers match them with errors.Is; the wrapped message
// carries the specifics.
var (
	// ErrConfig reports invalid construction parameters, config values or datasets.
	ErrConfig = errors.New("config error")
	// ErrLengthMismatch reports input and output sequences of different lengths.
	ErrLengthMismatch = errors.New("length mismatch")
	// ErrInvariant reports a broken topology or forward-pass invariant.
	// A run that hits it cannot produce trustworthy numbers.
	ErrInvariant = errors.New("invariant violation")
)
