package spatialmath

import (
	"math"
	"testing"

	"github.com/golang/geo/r2"
	"github.com/golang/geo/r3"
	"go.viam.com/test"
)

func makeTestInterval(t *testing.T, lo, hi float64) Interval {
	t.Helper()
	i, err := NewInterval(lo, hi)
	test.That(t, err, test.ShouldBeNil)
	return i
}

func TestIntervalOverlaps(t *testing.T) {
	for _, tc := range []struct {
		name     string
		a, b     Interval
		expected bool
	}{
		{"touching", Interval{3, 5}, Interval{5, 8}, false},
		{"overlapping", Interval{3, 5}, Interval{4, 8}, true},
		{"disjoint", Interval{0, 1}, Interval{2, 3}, false},
		{"nested", Interval{-4.8, 4.8}, Interval{-1, 1}, true},
		{"identical", Interval{-4.8, 4.8}, Interval{-4.8, 4.8}, true},
		{"degenerate inside", Interval{0, 2}, Interval{1, 1}, true},
	} {
		t.Run(tc.name, func(t *testing.T) {
			test.That(t, tc.a.Overlaps(tc.b), test.ShouldEqual, tc.expected)
			test.That(t, tc.b.Overlaps(tc.a), test.ShouldEqual, tc.expected)
		})
	}
}

func TestNewInterval(t *testing.T) {
	i, err := NewInterval(-4.8, 4.8)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, i.Length(), test.ShouldAlmostEqual, 9.6, 1e-12)
	test.That(t, i.Contains(4.8), test.ShouldBeTrue)
	test.That(t, i.Contains(4.81), test.ShouldBeFalse)
	test.That(t, i.String(), test.ShouldEqual, "[-4.8, 4.8]")

	_, err = NewInterval(2, 1)
	test.That(t, err, test.ShouldNotBeNil)
	_, err = NewInterval(math.NaN(), 1)
	test.That(t, err, test.ShouldNotBeNil)

	i, err = IntervalFromSlice([]float64{0.81, 2})
	test.That(t, err, test.ShouldBeNil)
	test.That(t, i, test.ShouldResemble, Interval{Min: 0.81, Max: 2})
	_, err = IntervalFromSlice([]float64{1})
	test.That(t, err, test.ShouldNotBeNil)
}

func TestAxis(t *testing.T) {
	a, err := NewAxis(1)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, a, test.ShouldEqual, AxisY)
	test.That(t, a.Horizontal(), test.ShouldBeTrue)
	test.That(t, AxisZ.Horizontal(), test.ShouldBeFalse)
	test.That(t, AxisZ.String(), test.ShouldEqual, "z")

	_, err = NewAxis(3)
	test.That(t, err, test.ShouldNotBeNil)

	p := r3.Vector{X: 1, Y: 2, Z: 3}
	for _, axis := range []Axis{AxisX, AxisY, AxisZ} {
		test.That(t, liftPoint(dropAxis(p, axis), axis, component(p, axis)), test.ShouldResemble, p)
	}
	test.That(t, dropAxis(p, AxisY), test.ShouldResemble, r2.Point{X: 1, Y: 3})
}

func TestParseIntersectionMode(t *testing.T) {
	m, err := ParseIntersectionMode("")
	test.That(t, err, test.ShouldBeNil)
	test.That(t, m, test.ShouldEqual, Permissive)

	m, err = ParseIntersectionMode("Geometric")
	test.That(t, err, test.ShouldBeNil)
	test.That(t, m, test.ShouldEqual, Geometric)
	test.That(t, m.String(), test.ShouldEqual, "geometric")

	_, err = ParseIntersectionMode("strict")
	test.That(t, err, test.ShouldNotBeNil)
}

func TestCylinder(t *testing.T) {
	c, err := NewCylinder(r3.Vector{X: -1.3, Y: 0, Z: 1.127}, AxisY, makeTestInterval(t, -4.8, 4.8), 1.1843)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, c.Center, test.ShouldResemble, r2.Point{X: -1.3, Y: 1.127})

	test.That(t, c.ContainsPoint(r3.Vector{X: -1.3, Y: 4, Z: 1.5}), test.ShouldBeTrue)
	test.That(t, c.ContainsPoint(r3.Vector{X: -1.3, Y: 5, Z: 1.5}), test.ShouldBeFalse)
	test.That(t, c.ContainsPoint(r3.Vector{X: 0, Y: 0, Z: 2.5}), test.ShouldBeFalse)

	lo, hi := c.Bounds()
	test.That(t, lo.X, test.ShouldAlmostEqual, -1.3-1.1843, 1e-12)
	test.That(t, lo.Y, test.ShouldAlmostEqual, -4.8, 1e-12)
	test.That(t, hi.Z, test.ShouldAlmostEqual, 1.127+1.1843, 1e-12)

	_, err = NewCylinder(r3.Vector{}, AxisZ, makeTestInterval(t, 0, 1), 1)
	test.That(t, err, test.ShouldNotBeNil)
	_, err = NewCylinder(r3.Vector{}, AxisX, makeTestInterval(t, 0, 1), 0)
	test.That(t, err, test.ShouldNotBeNil)
	_, err = NewCylinder(r3.Vector{}, AxisX, Interval{Min: 1, Max: 0}, 1)
	test.That(t, err, test.ShouldNotBeNil)
}

func TestLine(t *testing.T) {
	l, err := NewLine(r3.Vector{X: -2.266, Y: 4.675, Z: 0}, AxisZ, makeTestInterval(t, 0.81, 2))
	test.That(t, err, test.ShouldBeNil)
	test.That(t, l.Point, test.ShouldResemble, r2.Point{X: -2.266, Y: 4.675})

	lo, hi := l.Bounds()
	test.That(t, lo, test.ShouldResemble, r3.Vector{X: -2.266, Y: 4.675, Z: 0.81})
	test.That(t, hi, test.ShouldResemble, r3.Vector{X: -2.266, Y: 4.675, Z: 2})

	test.That(t, l.ContainsPoint(r3.Vector{X: -2.266, Y: 4.675, Z: 1}), test.ShouldBeTrue)
	test.That(t, l.ContainsPoint(r3.Vector{X: -2.266, Y: 4.675, Z: 3}), test.ShouldBeFalse)
	test.That(t, l.ContainsPoint(r3.Vector{X: -2.2, Y: 4.675, Z: 1}), test.ShouldBeFalse)

	_, err = NewLine(r3.Vector{}, Axis(5), makeTestInterval(t, 0, 1))
	test.That(t, err, test.ShouldNotBeNil)
}

func TestFootprint(t *testing.T) {
	f, err := NewFootprint(makeTestInterval(t, -15, 0), makeTestInterval(t, -5, 5), 1)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, f.ContainsPoint(r3.Vector{X: -3, Y: 2, Z: 100}), test.ShouldBeTrue)
	test.That(t, f.ContainsPoint(r3.Vector{X: 0.5, Y: 5.5, Z: 0}), test.ShouldBeTrue)
	test.That(t, f.ContainsPoint(r3.Vector{X: 1, Y: 5, Z: 0}), test.ShouldBeFalse)

	lo, hi := f.Bounds()
	test.That(t, lo.X, test.ShouldEqual, -16.0)
	test.That(t, hi.Y, test.ShouldEqual, 6.0)
	test.That(t, math.IsInf(hi.Z, 1), test.ShouldBeTrue)

	_, err = NewFootprint(makeTestInterval(t, 0, 1), makeTestInterval(t, 0, 1), -1)
	test.That(t, err, test.ShouldNotBeNil)
}
