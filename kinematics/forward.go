package kinematics

import "math"

// Forward returns the wrist position in the arm plane for a planar solution. The arm reaches
// toward +x when towardPositiveX is set, toward -x otherwise, matching the side Solve was given.
func (s *Solver) Forward(sol JointSolution, towardPositiveX bool) (x, z float64) {
	dir := -1.0
	if towardPositiveX {
		dir = 1
	}
	upper := -sol.Alpha
	fore := upper - sol.Beta
	x = s.cfg.BaseX + dir*(s.cfg.ShoulderLink*math.Cos(upper)+s.cfg.ElbowLink*math.Cos(fore))
	z = s.cfg.BaseZ + s.cfg.ShoulderLink*math.Sin(upper) + s.cfg.ElbowLink*math.Sin(fore)
	return x, z
}

// Elbow returns the elbow joint position in the arm plane for a planar solution.
func (s *Solver) Elbow(sol JointSolution, towardPositiveX bool) (x, z float64) {
	dir := -1.0
	if towardPositiveX {
		dir = 1
	}
	return s.cfg.BaseX + dir*s.cfg.ShoulderLink*math.Cos(-sol.Alpha), s.cfg.BaseZ + s.cfg.ShoulderLink*math.Sin(-sol.Alpha)
}
