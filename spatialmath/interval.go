package spatialmath

import (
	"fmt"
	"math"

	"github.com/pkg/errors"
)

// Interval is a closed 1D range [Min, Max] with Min <= Max, e.g. the travel of a rail.
type Interval struct {
	Min float64
	Max float64
}

// NewInterval instantiates an Interval, rejecting reversed or non-finite bounds.
func NewInterval(lo, hi float64) (Interval, error) {
	if math.IsNaN(lo) || math.IsNaN(hi) {
		return Interval{}, errors.New("interval bounds cannot be NaN")
	}
	if lo > hi {
		return Interval{}, errors.Errorf("interval min %v is greater than max %v", lo, hi)
	}
	return Interval{Min: lo, Max: hi}, nil
}

// IntervalFromSlice builds an Interval from a two element [min, max] slice, as found in config files.
func IntervalFromSlice(bounds []float64) (Interval, error) {
	if len(bounds) != 2 {
		return Interval{}, errors.Errorf("interval needs exactly 2 bounds, got %d", len(bounds))
	}
	return NewInterval(bounds[0], bounds[1])
}

// Overlaps reports whether two intervals share more than an endpoint. Intervals that only touch,
// like [3, 5] and [5, 8], do not overlap. The result does not depend on argument order.
func (i Interval) Overlaps(other Interval) bool {
	a, b := i, other
	if a.Min > b.Min {
		a, b = b, a
	}
	return a.Max > b.Min
}

// Contains reports whether v lies in the closed interval.
func (i Interval) Contains(v float64) bool {
	return v >= i.Min && v <= i.Max
}

// Length is Max - Min.
func (i Interval) Length() float64 {
	return i.Max - i.Min
}

// gap is the distance between the two intervals, zero when they touch or overlap.
func (i Interval) gap(other Interval) float64 {
	return math.Max(0, math.Max(other.Min-i.Max, i.Min-other.Max))
}

func (i Interval) String() string {
	return fmt.Sprintf("[%g, %g]", i.Min, i.Max)
}
