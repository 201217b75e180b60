// Package spatialmath defines the primitive work envelopes used to reason about a work cell:
// cylinders swept by rail-mounted arms, lines traced by belts and vehicle docking columns, and
// gantry footprints. It also decides which pairs of primitives intersect.
package spatialmath

import (
	"fmt"
	"strings"

	"github.com/golang/geo/r2"
	"github.com/golang/geo/r3"
	"github.com/pkg/errors"
)

// Axis names a world frame axis.
type Axis int

// The world frame axes.
const (
	AxisX Axis = iota
	AxisY
	AxisZ
)

// NewAxis validates a raw axis index as found in layout configs (0=x, 1=y, 2=z).
func NewAxis(i int) (Axis, error) {
	a := Axis(i)
	if !a.valid() {
		return 0, errors.Errorf("axis must be 0 (x), 1 (y) or 2 (z), got %d", i)
	}
	return a, nil
}

func (a Axis) valid() bool {
	return a >= AxisX && a <= AxisZ
}

// Horizontal reports whether the axis lies in the floor plane, as rails do.
func (a Axis) Horizontal() bool {
	return a == AxisX || a == AxisY
}

func (a Axis) String() string {
	switch a {
	case AxisX:
		return "x"
	case AxisY:
		return "y"
	case AxisZ:
		return "z"
	default:
		return fmt.Sprintf("axis(%d)", int(a))
	}
}

// component returns the coordinate of p along a.
func component(p r3.Vector, a Axis) float64 {
	switch a {
	case AxisX:
		return p.X
	case AxisY:
		return p.Y
	default:
		return p.Z
	}
}

// dropAxis projects p onto the plane orthogonal to a, keeping the remaining coordinates in x, y, z order.
func dropAxis(p r3.Vector, a Axis) r2.Point {
	switch a {
	case AxisX:
		return r2.Point{X: p.Y, Y: p.Z}
	case AxisY:
		return r2.Point{X: p.X, Y: p.Z}
	default:
		return r2.Point{X: p.X, Y: p.Y}
	}
}

// liftPoint is the inverse of dropAxis: it places the planar point back in 3D with coordinate along at a.
func liftPoint(p r2.Point, a Axis, along float64) r3.Vector {
	switch a {
	case AxisX:
		return r3.Vector{X: along, Y: p.X, Z: p.Y}
	case AxisY:
		return r3.Vector{X: p.X, Y: along, Z: p.Y}
	default:
		return r3.Vector{X: p.X, Y: p.Y, Z: along}
	}
}

// Shape is a work envelope primitive.
type Shape interface {
	fmt.Stringer
	// Bounds returns the corners of the axis aligned box enclosing the shape. Unbounded directions
	// are reported as infinities.
	Bounds() (r3.Vector, r3.Vector)
	ContainsPoint(pt r3.Vector) bool
	// IntersectsWith tests the shape against other under the Permissive mode.
	IntersectsWith(other Shape) (bool, error)
}

// IntersectionMode selects how pairs without an agreed geometric test are resolved.
type IntersectionMode int

const (
	// Permissive reports intersection for cylinder/line pairs on different axes and for
	// footprint/line pairs, which is what the reference layout tooling does.
	Permissive IntersectionMode = iota
	// Geometric requires true geometric contact for every supported pair.
	Geometric
)

// ParseIntersectionMode parses "permissive" or "geometric". The empty string means Permissive.
func ParseIntersectionMode(s string) (IntersectionMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "permissive":
		return Permissive, nil
	case "geometric":
		return Geometric, nil
	default:
		return Permissive, errors.Errorf("unknown intersection mode %q, expected permissive or geometric", s)
	}
}

func (m IntersectionMode) String() string {
	if m == Geometric {
		return "geometric"
	}
	return "permissive"
}
