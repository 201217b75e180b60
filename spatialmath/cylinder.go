package spatialmath

import (
	"fmt"
	"math"

	"github.com/golang/geo/r2"
	"github.com/golang/geo/r3"

	"github.com/ariaclab/workcell/utils"
)

// Cylinder is the reach envelope of an arm riding a horizontal rail: every point within Radius of
// the rail centerline, for the stretch of rail given by Range.
type Cylinder struct {
	Axis   Axis
	Range  Interval
	Center r2.Point // center of the cross section, pose with the Axis coordinate dropped
	Radius float64
}

// NewCylinder instantiates a Cylinder whose centerline passes through pose and runs along axis.
func NewCylinder(pose r3.Vector, axis Axis, rng Interval, radius float64) (*Cylinder, error) {
	c := &Cylinder{Axis: axis, Range: rng, Radius: radius}
	if !axis.Horizontal() {
		return nil, newBadShapeDimensionsError(c, fmt.Sprintf("rail axis must be x or y, got %s", axis))
	}
	if !(radius > 0) {
		return nil, newBadShapeDimensionsError(c, fmt.Sprintf("radius must be positive, got %v", radius))
	}
	if rng.Min > rng.Max {
		return nil, newBadShapeDimensionsError(c, fmt.Sprintf("range %s is reversed", rng))
	}
	c.Center = dropAxis(pose, axis)
	return c, nil
}

// Bounds returns the box enclosing the cylinder.
func (c *Cylinder) Bounds() (r3.Vector, r3.Vector) {
	lo := r2.Point{X: c.Center.X - c.Radius, Y: c.Center.Y - c.Radius}
	hi := r2.Point{X: c.Center.X + c.Radius, Y: c.Center.Y + c.Radius}
	return liftPoint(lo, c.Axis, c.Range.Min), liftPoint(hi, c.Axis, c.Range.Max)
}

// ContainsPoint reports whether pt is strictly inside the reach radius and on the rail range.
func (c *Cylinder) ContainsPoint(pt r3.Vector) bool {
	if !c.Range.Contains(component(pt, c.Axis)) {
		return false
	}
	return utils.PointDistance(c.Center, dropAxis(pt, c.Axis)) < c.Radius
}

// IntersectsWith tests c against other under the Permissive mode.
func (c *Cylinder) IntersectsWith(other Shape) (bool, error) {
	return Intersects(c, other, Permissive)
}

func (c *Cylinder) String() string {
	return fmt.Sprintf("Type: Cylinder, Axis: %s, Range: %s, Center: (%g, %g), Radius: %g",
		c.Axis, c.Range, c.Center.X, c.Center.Y, c.Radius)
}

// distanceToSegment is the planar distance from p to the segment ab.
func distanceToSegment(p, a, b r2.Point) float64 {
	ab := b.Sub(a)
	l2 := ab.Dot(ab)
	if l2 == 0 {
		return utils.PointDistance(p, a)
	}
	t := math.Max(0, math.Min(1, p.Sub(a).Dot(ab)/l2))
	return utils.PointDistance(p, a.Add(ab.Mul(t)))
}
