package utils

import (
	"math"

	"github.com/golang/geo/r2"
	"github.com/pkg/errors"
	"gonum.org/v1/gonum/floats"
)

// EuclideanDistance computes the euclidean distance between 2 vectors.
func EuclideanDistance(p1, p2 []float64) (float64, error) {
	if len(p1) != len(p2) {
		return -1, errors.New("must have same length")
	}
	return floats.Distance(p1, p2, 2), nil
}

// PlanarDistance is the distance between (x1, z1) and (x2, z2). It does not allocate.
func PlanarDistance(x1, z1, x2, z2 float64) float64 {
	return math.Hypot(x2-x1, z2-z1)
}

// PointDistance is the distance between two planar points.
func PointDistance(a, b r2.Point) float64 {
	return b.Sub(a).Norm()
}
