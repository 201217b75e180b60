package spatialmath

import (
	"fmt"
	"math"

	"github.com/golang/geo/r2"
	"github.com/golang/geo/r3"
)

const lineEpsilon = 1e-9

// Line is an axis aligned segment: a conveyor belt running along a rail axis, or the vertical
// column above a vehicle docking position.
type Line struct {
	Axis  Axis
	Range Interval
	Point r2.Point // pose with the Axis coordinate dropped
}

// NewLine instantiates a Line through pose along axis.
func NewLine(pose r3.Vector, axis Axis, rng Interval) (*Line, error) {
	l := &Line{Axis: axis, Range: rng}
	if !axis.valid() {
		return nil, newBadShapeDimensionsError(l, fmt.Sprintf("unknown axis %d", int(axis)))
	}
	if rng.Min > rng.Max {
		return nil, newBadShapeDimensionsError(l, fmt.Sprintf("range %s is reversed", rng))
	}
	l.Point = dropAxis(pose, axis)
	return l, nil
}

// Endpoints returns both ends of the segment in world coordinates.
func (l *Line) Endpoints() (r3.Vector, r3.Vector) {
	return liftPoint(l.Point, l.Axis, l.Range.Min), liftPoint(l.Point, l.Axis, l.Range.Max)
}

// Bounds returns the endpoints, which already form the enclosing box.
func (l *Line) Bounds() (r3.Vector, r3.Vector) {
	return l.Endpoints()
}

// ContainsPoint reports whether pt lies on the segment.
func (l *Line) ContainsPoint(pt r3.Vector) bool {
	if !l.Range.Contains(component(pt, l.Axis)) {
		return false
	}
	p := dropAxis(pt, l.Axis)
	return math.Abs(p.X-l.Point.X) < lineEpsilon && math.Abs(p.Y-l.Point.Y) < lineEpsilon
}

// IntersectsWith tests l against other under the Permissive mode.
func (l *Line) IntersectsWith(other Shape) (bool, error) {
	return Intersects(l, other, Permissive)
}

func (l *Line) String() string {
	return fmt.Sprintf("Type: Line, Axis: %s, Range: %s, Point: (%g, %g)", l.Axis, l.Range, l.Point.X, l.Point.Y)
}

// planarExtent returns the x and y intervals covered by the segment's shadow on the floor.
func (l *Line) planarExtent() (Interval, Interval) {
	a, b := l.Endpoints()
	return Interval{Min: math.Min(a.X, b.X), Max: math.Max(a.X, b.X)},
		Interval{Min: math.Min(a.Y, b.Y), Max: math.Max(a.Y, b.Y)}
}
