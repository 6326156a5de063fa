package chaining

import (
	"errors"
	"fmt"
)

// Sentinel error kinds. Only ErrCancelled is recoverable above the
// engine boundary; the others are programming errors and must surface
// to the caller rather than be swallowed.
var (
	// ErrMissingParent signals that add_hidden_parents could not locate
	// an expected off-parent in the accumulated off-set — a logic
	// invariant violation, not a user-facing condition.
	ErrMissingParent = errors.New("chaining: missing expected parent potential")

	// ErrCancelled signals a caller-initiated interruption observed
	// between sub-rule invocations.
	ErrCancelled = errors.New("chaining: cancelled")

	// ErrIllegalConfig signals a configuration that cannot yield a
	// difficulty score (non-multiple, non-dynamic, non-nishio, level 0).
	ErrIllegalConfig = errors.New("chaining: illegal configuration")

	// ErrWorkerFailure signals that a parallel worker faulted.
	ErrWorkerFailure = errors.New("chaining: worker failed")
)

// emptyRemovable is not an error returned to callers: a hint with no
// removable candidates is simply not worth emitting (spec.md §7,
// EmptyRemovable). isWorth below is how that policy is applied.
func isWorth(removable map[int][]int) bool {
	for _, vals := range removable {
		if len(vals) > 0 {
			return true
		}
	}
	return false
}

// wrapMissingParent adds context to ErrMissingParent for diagnostics.
func wrapMissingParent(cell, value int) error {
	return fmt.Errorf("%w: cell=%d value=%d", ErrMissingParent, cell, value)
}

// wrapWorkerFailure records a recovered panic value from a worker.
func wrapWorkerFailure(cellIndex int, recovered any) error {
	return fmt.Errorf("%w: starting cell %d: %v", ErrWorkerFailure, cellIndex, recovered)
}
