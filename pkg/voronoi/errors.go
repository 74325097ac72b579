package voronoi

import (
	"github.com/pkg/errors"
)

// Input validation errors, returned before the sweep starts.
var (
	ErrNoSites        = errors.New("no sites")
	ErrNonFiniteSite  = errors.New("site coordinates must be finite")
	ErrInvalidBounds  = errors.New("invalid bounding box")
	ErrInvalidJobSize = errors.New("max sites per job must be positive")
	ErrInvalidOption  = errors.New("invalid option")
)

// Causes of a failed build. They are wrapped in a *FatalError.
var (
	ErrFatal          = errors.New("voronoi build failed")
	ErrCapacity       = errors.New("capacity exhausted")
	ErrEmptyQueue     = errors.New("event queue is empty")
	ErrNoCrossing     = errors.New("dividing chain found no crossing")
	ErrMergeDiverged  = errors.New("dividing chain did not reach the lower tangent")
	ErrInvalidDiagram = errors.New("invalid diagram")
)

// FatalError reports a broken invariant inside the sweep or the merge.
// errors.Is matches both ErrFatal and the wrapped cause.
type FatalError struct {
	cause error
}

func (e *FatalError) Error() string {
	return ErrFatal.Error() + ": " + e.cause.Error()
}

func (e *FatalError) Unwrap() error {
	return e.cause
}

func (e *FatalError) Is(target error) bool {
	return target == ErrFatal
}

// buildPanic is the panic payload of fatalf; anything else is re-raised by
// recoverFatal.
type buildPanic struct {
	err error
}

// Threading errors through every beach line handler and merge step would
// bloat all of them, so invariant violations panic and the task boundary
// recovers them.
func fatalf(cause error, format string, args ...interface{}) {
	panic(buildPanic{errors.Wrapf(cause, format, args...)})
}

func recoverFatal(r interface{}) error {
	if r == nil {
		return nil
	}
	if p, ok := r.(buildPanic); ok {
		return &FatalError{cause: p.err}
	}
	panic(r)
}
