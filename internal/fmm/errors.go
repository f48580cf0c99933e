package fmm

import "errors"

// Failure classes of a gravity step. Every failure aborts the step; there is
// no local recovery and no partial result.
var (
	// ErrConfig indicates an out-of-range tuning parameter.
	ErrConfig = errors.New("fmm: invalid configuration")

	// ErrCollective indicates a transport failure in a collective phase.
	ErrCollective = errors.New("fmm: collective exchange failed")

	// ErrInvariant indicates corrupted exchange state or kernel output
	// (mismatched slot metadata, unresolvable branch id, NaN in a tensor).
	// It means a bug, not a recoverable condition.
	ErrInvariant = errors.New("fmm: invariant violation")
)
