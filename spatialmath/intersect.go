package spatialmath

import (
	"github.com/ariaclab/workcell/utils"
)

// Intersects reports whether two primitives share any volume. The test is symmetric in a and b.
// Pairs without a defined test, such as two cylinders or two lines, return an
// UnsupportedShapePairError.
func Intersects(a, b Shape, mode IntersectionMode) (bool, error) {
	switch sa := a.(type) {
	case *Cylinder:
		if l, ok := b.(*Line); ok {
			return cylinderVsLine(sa, l, mode), nil
		}
	case *Footprint:
		if l, ok := b.(*Line); ok {
			return footprintVsLine(sa, l, mode), nil
		}
	case *Line:
		switch sb := b.(type) {
		case *Cylinder:
			return cylinderVsLine(sb, sa, mode), nil
		case *Footprint:
			return footprintVsLine(sb, sa, mode), nil
		}
	}
	return false, newUnsupportedShapePairError(a, b)
}

func cylinderVsLine(c *Cylinder, l *Line, mode IntersectionMode) bool {
	if c.Axis == l.Axis {
		if !c.Range.Overlaps(l.Range) {
			return false
		}
		// the line runs parallel to the rail, so it is inside iff its cross section point is
		return utils.PointDistance(c.Center, l.Point) < c.Radius
	}
	if mode == Permissive {
		return true
	}

	lo, hi := l.Endpoints()
	// l is orthogonal to the rail, so it sits at a single rail coordinate
	if !c.Range.Contains(component(lo, c.Axis)) {
		return false
	}
	return distanceToSegment(c.Center, dropAxis(lo, c.Axis), dropAxis(hi, c.Axis)) < c.Radius
}

func footprintVsLine(f *Footprint, l *Line, mode IntersectionMode) bool {
	if mode == Permissive {
		return true
	}
	xs, ys := l.planarExtent()
	return f.distanceTo(xs, ys) < f.Radius
}
