package kinematics

import (
	"math"

	"github.com/pkg/errors"

	"github.com/ariaclab/workcell/utils"
)

// Cosine arguments overshooting [-1, 1] by this much are clamped. Only rounding error gets here
// since Solve rejects everything past full stretch.
const cosineTolerance = 1e-9

// JointSolution holds the shoulder lift (Alpha) and elbow (Beta) angles in radians. Increasing
// Alpha lowers the arm.
type JointSolution struct {
	Alpha float64
	Beta  float64
}

// Solver computes closed form inverse kinematics for the kitting arm. It holds no mutable state
// and is safe for concurrent use.
type Solver struct {
	cfg ArmConfig
	// gated targets up to this far past full stretch are pulled onto it by SolveTarget
	reachSlack float64
}

// NewSolver returns a Solver for the given arm geometry.
func NewSolver(cfg ArmConfig) (*Solver, error) {
	if err := cfg.Validate("arm"); err != nil {
		return nil, err
	}
	// the gate measures from (BaseX, ReachAnchorZ) with radius MaxReach, the links from (BaseX, BaseZ)
	slack := math.Max(0, cfg.MaxReach-cfg.MaxLinkReach()) + math.Abs(cfg.ReachAnchorZ-cfg.BaseZ) + cosineTolerance
	return &Solver{cfg: cfg, reachSlack: slack}, nil
}

// Config returns the arm geometry the solver was built with.
func (s *Solver) Config() ArmConfig {
	return s.cfg
}

// Solve returns the joint angles that place the wrist at (x, z) in the arm's vertical plane. The
// coordinates must already carry the wrist and vertical offsets; see SolveTarget.
//
// The elbow is always above the line from shoulder to target. Targets the links cannot reach fail
// with an OutOfRangeError, numerically degenerate input with a DomainError.
func (s *Solver) Solve(x, z float64) (JointSolution, error) {
	if !utils.IsFinite(x, z) {
		return JointSolution{}, newDomainError("solve", errors.Errorf("target (%v, %v) is not finite", x, z))
	}
	r1, r2 := s.cfg.ShoulderLink, s.cfg.ElbowLink
	dx := x - s.cfg.BaseX
	ab := utils.PlanarDistance(s.cfg.BaseX, s.cfg.BaseZ, x, z)
	if ab == 0 {
		return JointSolution{}, newDomainError("solve", errors.New("target coincides with the shoulder joint"))
	}
	if maxReach := s.cfg.MaxLinkReach(); ab > maxReach {
		return JointSolution{}, newOutOfRangeError(ArmReach, ab, maxReach)
	}
	if minReach := s.cfg.MinLinkReach(); ab < minReach {
		return JointSolution{}, newOutOfRangeError(ArmReach, ab, minReach)
	}

	// interior angle between the links, opposite the shoulder-target side
	gamma, err := utils.LawOfCosinesAngleTolerance(r1, r2, ab, cosineTolerance)
	if err != nil {
		return JointSolution{}, newDomainError("elbow angle", err)
	}
	// angle at the shoulder between the upper link and the shoulder-target line
	a1, err := utils.LawOfCosinesAngleTolerance(r1, ab, r2, cosineTolerance)
	if err != nil {
		return JointSolution{}, newDomainError("shoulder angle", err)
	}
	// elevation of the shoulder-target line
	cosA2, ok := utils.ClampCosine(math.Abs(dx)/ab, cosineTolerance)
	if !ok {
		return JointSolution{}, newDomainError("target elevation", errors.Errorf("arccos argument %v", math.Abs(dx)/ab))
	}
	a2 := math.Acos(cosA2)

	alpha := a1 - a2
	if z >= s.cfg.BaseZ {
		alpha = a1 + a2
	}
	return JointSolution{Alpha: -alpha, Beta: math.Pi - gamma}, nil
}

// SolveTarget gates a world target (x along the arm plane, y along the rail, z up) against the rail
// travel and the arm reach, applies the side dependent wrist offsets and solves the full joint
// vector of the kitting arm.
func (s *Solver) SolveTarget(x, y, z float64) (KittingJoints, error) {
	if !utils.IsFinite(x, y, z) {
		return KittingJoints{}, newDomainError("target", errors.Errorf("target (%v, %v, %v) is not finite", x, y, z))
	}
	if !s.cfg.WithinRail(y) {
		return KittingJoints{}, newOutOfRangeError(RailTravel, y, s.cfg.RailHalfTravel())
	}
	if d := s.cfg.ReachDistance(x, z); d > s.cfg.MaxReach {
		return KittingJoints{}, newOutOfRangeError(ArmReach, d, s.cfg.MaxReach)
	}

	near := s.cfg.NearSide(x)
	adjX := x + s.cfg.FarWristOffset
	if near {
		adjX = x - s.cfg.NearWristOffset
	}
	adjX, adjZ := s.stretchToReach(adjX, z+s.cfg.VerticalOffset)
	sol, err := s.Solve(adjX, adjZ)
	if err != nil {
		return KittingJoints{}, err
	}
	return newKittingJoints(s.cfg, sol, y, near), nil
}

// stretchToReach pulls a wrist target that passed the reach gate but sits within reachSlack past
// full stretch back onto the circle the links can reach. Other targets are returned unchanged.
func (s *Solver) stretchToReach(x, z float64) (float64, float64) {
	maxReach := s.cfg.MaxLinkReach()
	ab := utils.PlanarDistance(s.cfg.BaseX, s.cfg.BaseZ, x, z)
	if ab <= maxReach || ab > maxReach+s.reachSlack {
		return x, z
	}
	dx, dz := x-s.cfg.BaseX, z-s.cfg.BaseZ
	scale := maxReach / ab
	for {
		sx, sz := s.cfg.BaseX+dx*scale, s.cfg.BaseZ+dz*scale
		if utils.PlanarDistance(s.cfg.BaseX, s.cfg.BaseZ, sx, sz) <= maxReach {
			return sx, sz
		}
		scale = math.Nextafter(scale, 0)
	}
}
