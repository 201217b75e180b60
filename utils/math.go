package utils

import (
	"math"

	"github.com/pkg/errors"
)

// DegToRad converts degrees to radians.
func DegToRad(degrees float64) float64 {
	return degrees * math.Pi / 180
}

// RadToDeg converts radians to degrees.
func RadToDeg(radians float64) float64 {
	return radians * 180 / math.Pi
}

// Math.pow( x, 2 ) is slow, this is faster
func Square(n float64) float64 {
	return n * n
}

// Float64AlmostEqual compares two float64s and returns if the difference between them is less than epsilon.
func Float64AlmostEqual(a, b, epsilon float64) bool {
	return math.Abs(a-b) < epsilon
}

// IsFinite reports whether every value is neither NaN nor infinite.
func IsFinite(values ...float64) bool {
	for _, v := range values {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}

// ClampCosine pulls a cosine argument that overshoots [-1, 1] by at most tolerance back onto the
// interval. Arguments further out, or NaN, are returned with ok == false.
func ClampCosine(c, tolerance float64) (float64, bool) {
	switch {
	case math.IsNaN(c):
		return c, false
	case c > 1:
		if c-1 > tolerance {
			return c, false
		}
		return 1, true
	case c < -1:
		if -1-c > tolerance {
			return c, false
		}
		return -1, true
	default:
		return c, true
	}
}

// LawOfCosinesAngle returns the angle, in radians, between sides a and b of a triangle whose third
// side is c. It errors when the sides cannot form a triangle.
func LawOfCosinesAngle(a, b, c float64) (float64, error) {
	return LawOfCosinesAngleTolerance(a, b, c, 0)
}

// LawOfCosinesAngleTolerance is LawOfCosinesAngle but clamps cosine arguments that land within
// tolerance of [-1, 1].
func LawOfCosinesAngleTolerance(a, b, c, tolerance float64) (float64, error) {
	if a == 0 || b == 0 {
		return math.NaN(), errors.Errorf("law of cosines needs non-zero adjacent sides, got %v and %v", a, b)
	}
	arg := (Square(a) + Square(b) - Square(c)) / (2 * a * b)
	clamped, ok := ClampCosine(arg, tolerance)
	if !ok {
		return math.NaN(), errors.Errorf("arccos argument %v out of [-1, 1] for sides (%v, %v, %v)", arg, a, b, c)
	}
	return math.Acos(clamped), nil
}
