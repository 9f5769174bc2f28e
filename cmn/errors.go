// Package cmn holds the ambient pieces every rank shares: sentinel
// errors and their wire codes, and the global, atomically-swapped
// process configuration (GCO).
package cmn

import "github.com/pkg/errors"

// Wire error codes.
const (
	CodeOutOfMemory  = -1
	CodeTooLarge     = -1
	CodeUnknownKey   = -2
	CodeSizeMismatch = -3
)

// Coded is implemented by every sentinel error below, letting the
// coordinator's dispatch loop map any returned error to its wire code
// with one helper (CodeOf) instead of a type switch at every call site.
type Coded interface {
	error
	Code() int
}

type codedErr struct {
	msg  string
	code int
}

func (e *codedErr) Error() string { return e.msg }
func (e *codedErr) Code() int     { return e.code }

var (
	// ErrOutOfMemory is returned by Allocate when no first-fit
	// placement can satisfy the requested size.
	ErrOutOfMemory = &codedErr{"out of memory", CodeOutOfMemory}
	// ErrTooLarge is returned by the conformance check when the
	// accumulated descriptor cardinality exceeds the per-worker
	// max_size cap (see DESIGN.md Open Question 2 for why the cap is
	// per-worker and not cluster-wide).
	ErrTooLarge = &codedErr{"request too large", CodeTooLarge}
	// ErrUnknownKey is returned when a descriptor or delete target
	// names a BlockId absent from the placement table.
	ErrUnknownKey = &codedErr{"unknown key", CodeUnknownKey}
	// ErrSizeMismatch is returned by WriteSlices when a non-scalar
	// value's length doesn't match the first descriptor's cardinality.
	ErrSizeMismatch = &codedErr{"size mismatch", CodeSizeMismatch}
)

// CodeOf maps err to its wire code, walking wrapped errors via
// errors.Cause (github.com/pkg/errors). Returns 0 (no error /
// unrecognized) when err does not carry a Coded cause.
func CodeOf(err error) int {
	if err == nil {
		return 0
	}
	cause := errors.Cause(err)
	if c, ok := cause.(Coded); ok {
		return c.Code()
	}
	return 0
}
