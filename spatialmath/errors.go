package spatialmath

import (
	"fmt"

	"github.com/pkg/errors"
)

// UnsupportedShapePairError is returned when no intersection test exists for a pair of primitives.
type UnsupportedShapePairError struct {
	A, B Shape
}

func (e *UnsupportedShapePairError) Error() string {
	return fmt.Sprintf("intersection between %T and %T is not supported", e.A, e.B)
}

func newUnsupportedShapePairError(a, b Shape) error {
	return &UnsupportedShapePairError{A: a, B: b}
}

// IsUnsupportedShapePair reports whether err, or anything it wraps, is an UnsupportedShapePairError.
func IsUnsupportedShapePair(err error) bool {
	var target *UnsupportedShapePairError
	return errors.As(err, &target)
}

func newBadShapeDimensionsError(s Shape, reason string) error {
	return errors.Errorf("invalid dimensions for %T: %s", s, reason)
}
