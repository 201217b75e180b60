package spatialmath

import (
	"fmt"
	"math"

	"github.com/golang/geo/r3"
)

// Footprint is the reach of an overhead gantry: a vertical prism over the rectangle spanned by its
// two rails, dilated by the reach of the hanging arm.
type Footprint struct {
	X      Interval
	Y      Interval
	Radius float64
}

// NewFootprint instantiates a Footprint.
func NewFootprint(x, y Interval, radius float64) (*Footprint, error) {
	f := &Footprint{X: x, Y: y, Radius: radius}
	if !(radius > 0) {
		return nil, newBadShapeDimensionsError(f, fmt.Sprintf("radius must be positive, got %v", radius))
	}
	if x.Min > x.Max || y.Min > y.Max {
		return nil, newBadShapeDimensionsError(f, fmt.Sprintf("rail ranges %s, %s must not be reversed", x, y))
	}
	return f, nil
}

// Bounds returns the dilated rectangle; the prism is unbounded in z.
func (f *Footprint) Bounds() (r3.Vector, r3.Vector) {
	return r3.Vector{X: f.X.Min - f.Radius, Y: f.Y.Min - f.Radius, Z: math.Inf(-1)},
		r3.Vector{X: f.X.Max + f.Radius, Y: f.Y.Max + f.Radius, Z: math.Inf(1)}
}

// ContainsPoint reports whether pt is strictly within Radius of the rail rectangle, at any height.
func (f *Footprint) ContainsPoint(pt r3.Vector) bool {
	return f.distanceTo(Interval{pt.X, pt.X}, Interval{pt.Y, pt.Y}) < f.Radius
}

// IntersectsWith tests f against other under the Permissive mode.
func (f *Footprint) IntersectsWith(other Shape) (bool, error) {
	return Intersects(f, other, Permissive)
}

func (f *Footprint) String() string {
	return fmt.Sprintf("Type: Footprint, X: %s, Y: %s, Radius: %g", f.X, f.Y, f.Radius)
}

// distanceTo is the floor distance between the rail rectangle and the box spanned by xs and ys.
func (f *Footprint) distanceTo(xs, ys Interval) float64 {
	return math.Hypot(f.X.gap(xs), f.Y.gap(ys))
}
