package sqlgen

import (
	"errors"
	"fmt"
)

// ErrInvalidState is the sentinel matched by every builder usage error.
var ErrInvalidState = errors.New("sqlgen: invalid builder state")

// StateError reports a builder misuse: setting a single-valued clause
// twice, requesting an INSERT body of the wrong kind, passing a nil where
// a value was required, and so on. These are programmer errors, not
// runtime conditions, so builders panic with a *StateError at the call
// that violates the invariant, before any SQL is rendered.
type StateError struct {
	Op     string // the builder operation, e.g. "select.from"
	Reason string
}

// Error returns the error string.
func (e *StateError) Error() string {
	return fmt.Sprintf("sqlgen: %s: %s", e.Op, e.Reason)
}

// Is reports whether the target matches ErrInvalidState, so that
// errors.Is(err, ErrInvalidState) holds for recovered builder panics.
func (e *StateError) Is(err error) bool {
	return err == ErrInvalidState
}

// badUsage panics with a *StateError.
func badUsage(op, reason string) {
	panic(&StateError{Op: op, Reason: reason})
}
