package kinematics

import (
	"fmt"

	"github.com/pkg/errors"
)

// OutOfRangeReason says which precondition a rejected target failed. Each maps to a different
// corrective action for the operator.
type OutOfRangeReason int

const (
	// RailTravel means the target lies beyond the end of the linear rail.
	RailTravel OutOfRangeReason = iota
	// ArmReach means the target is further from the shoulder than the two links can stretch, or
	// closer than they can fold.
	ArmReach
)

func (r OutOfRangeReason) String() string {
	if r == RailTravel {
		return "outside rail travel"
	}
	return "outside arm reach"
}

// OutOfRangeError is returned when a target fails the rail or reach precondition. The solver is
// never run for such a target.
type OutOfRangeError struct {
	Reason OutOfRangeReason
	// Value is the offending measurement (rail coordinate or distance) and Limit the bound it broke.
	Value float64
	Limit float64
}

func (e *OutOfRangeError) Error() string {
	return fmt.Sprintf("target %s: %.6g exceeds limit %.6g", e.Reason, e.Value, e.Limit)
}

func newOutOfRangeError(reason OutOfRangeReason, value, limit float64) error {
	return &OutOfRangeError{Reason: reason, Value: value, Limit: limit}
}

// DomainError is returned when a computation meets degenerate numeric input, such as a NaN
// coordinate, a target on top of the shoulder or an arccos argument outside [-1, 1].
type DomainError struct {
	Op  string
	err error
}

func (e *DomainError) Error() string {
	return fmt.Sprintf("degenerate numeric input in %s: %v", e.Op, e.err)
}

// Unwrap returns the underlying numeric failure.
func (e *DomainError) Unwrap() error {
	return e.err
}

func newDomainError(op string, err error) error {
	return &DomainError{Op: op, err: err}
}

// IsOutOfRange reports whether err is an OutOfRangeError and, if so, for which reason.
func IsOutOfRange(err error) (OutOfRangeReason, bool) {
	var target *OutOfRangeError
	if errors.As(err, &target) {
		return target.Reason, true
	}
	return 0, false
}

// IsDomainError reports whether err is a DomainError.
func IsDomainError(err error) bool {
	var target *DomainError
	return errors.As(err, &target)
}
