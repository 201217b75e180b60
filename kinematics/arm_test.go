package kinematics

import (
	"math"
	"math/rand"
	"sync"
	"testing"

	"go.viam.com/test"

	"github.com/ariaclab/workcell/utils"
)

func makeTestSolver(t *testing.T) *Solver {
	t.Helper()
	s, err := NewSolver(DefaultArmConfig())
	test.That(t, err, test.ShouldBeNil)
	return s
}

func TestDefaultArmConfig(t *testing.T) {
	cfg := DefaultArmConfig()
	test.That(t, cfg.Validate("arm"), test.ShouldBeNil)
	test.That(t, cfg.RailHalfTravel(), test.ShouldAlmostEqual, 4.8, 1e-12)
	test.That(t, cfg.MaxLinkReach(), test.ShouldAlmostEqual, 1.1845, 1e-12)
	test.That(t, cfg.MinLinkReach(), test.ShouldAlmostEqual, 0.0398, 1e-12)
	test.That(t, cfg.WithinRail(4.8), test.ShouldBeTrue)
	test.That(t, cfg.WithinRail(-4.8), test.ShouldBeTrue)
	test.That(t, cfg.WithinRail(4.81), test.ShouldBeFalse)
	test.That(t, cfg.NearSide(-1.3), test.ShouldBeTrue)
	test.That(t, cfg.NearSide(-1.31), test.ShouldBeFalse)
	test.That(t, cfg.String(), test.ShouldContainSubstring, "reach 1.1845")
}

func TestArmConfigValidate(t *testing.T) {
	cfg := DefaultArmConfig()
	cfg.ShoulderLink = 0
	cfg.MaxReach = -1
	err := cfg.Validate("arm")
	test.That(t, err, test.ShouldNotBeNil)
	test.That(t, err.Error(), test.ShouldContainSubstring, "arm.shoulder_link must be positive")
	test.That(t, err.Error(), test.ShouldContainSubstring, "arm.max_reach must be positive")

	cfg = DefaultArmConfig()
	cfg.BaseLength = 6
	test.That(t, cfg.Validate("arm").Error(), test.ShouldContainSubstring, "leaves no rail travel")

	cfg = DefaultArmConfig()
	cfg.BaseX = math.NaN()
	test.That(t, cfg.Validate("arm"), test.ShouldNotBeNil)

	_, err = NewSolver(cfg)
	test.That(t, err, test.ShouldNotBeNil)
}

func TestSolveRoundTrip(t *testing.T) {
	s := makeTestSolver(t)
	cfg := s.Config()
	//nolint:gosec
	r := rand.New(rand.NewSource(1))

	for i := 0; i < 500; i++ {
		// sample strictly inside the annulus the links can reach
		dist := cfg.MinLinkReach() + 1e-3 + r.Float64()*(cfg.MaxLinkReach()-cfg.MinLinkReach()-2e-3)
		theta := r.Float64() * 2 * math.Pi
		x := cfg.BaseX + dist*math.Cos(theta)
		z := cfg.BaseZ + dist*math.Sin(theta)

		sol, err := s.Solve(x, z)
		test.That(t, err, test.ShouldBeNil)
		test.That(t, sol.Alpha, test.ShouldBeBetweenOrEqual, -math.Pi, math.Pi)
		test.That(t, sol.Beta, test.ShouldBeBetweenOrEqual, 0.0, math.Pi)

		fx, fz := s.Forward(sol, x >= cfg.BaseX)
		test.That(t, fx, test.ShouldAlmostEqual, x, 1e-9)
		test.That(t, fz, test.ShouldAlmostEqual, z, 1e-9)

		// the elbow stays above the shoulder-target line
		ex, ez := s.Elbow(sol, x >= cfg.BaseX)
		cross := (x-cfg.BaseX)*(ez-cfg.BaseZ) - (z-cfg.BaseZ)*(ex-cfg.BaseX)
		if x >= cfg.BaseX {
			test.That(t, cross, test.ShouldBeGreaterThanOrEqualTo, -1e-12)
		} else {
			test.That(t, cross, test.ShouldBeLessThanOrEqualTo, 1e-12)
		}
	}
}

func TestSolveStraightOut(t *testing.T) {
	s := makeTestSolver(t)
	cfg := s.Config()

	// target level with the shoulder at full stretch: links in line, horizontal
	sol, err := s.Solve(cfg.BaseX+cfg.MaxLinkReach()*(1-1e-14), cfg.BaseZ)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, sol.Alpha, test.ShouldAlmostEqual, 0.0, 1e-6)
	test.That(t, sol.Beta, test.ShouldAlmostEqual, 0.0, 1e-6)
}

func TestSolveRejects(t *testing.T) {
	s := makeTestSolver(t)
	cfg := s.Config()

	_, err := s.Solve(cfg.BaseX+cfg.MaxLinkReach()+0.01, cfg.BaseZ)
	test.That(t, err, test.ShouldNotBeNil)
	reason, ok := IsOutOfRange(err)
	test.That(t, ok, test.ShouldBeTrue)
	test.That(t, reason, test.ShouldEqual, ArmReach)
	test.That(t, err.Error(), test.ShouldContainSubstring, "outside arm reach")

	// no slack past full stretch, in any direction
	for _, target := range [][2]float64{
		{cfg.BaseX + cfg.MaxLinkReach() + 1e-4, cfg.BaseZ},
		{cfg.BaseX, cfg.BaseZ - (cfg.MaxLinkReach() + 1e-4)},
		{cfg.BaseX, cfg.BaseZ - (cfg.MaxLinkReach() + 0.0008)},
	} {
		_, err = s.Solve(target[0], target[1])
		reason, ok = IsOutOfRange(err)
		test.That(t, ok, test.ShouldBeTrue)
		test.That(t, reason, test.ShouldEqual, ArmReach)
	}

	_, err = s.Solve(cfg.BaseX+0.01, cfg.BaseZ)
	reason, ok = IsOutOfRange(err)
	test.That(t, ok, test.ShouldBeTrue)
	test.That(t, reason, test.ShouldEqual, ArmReach)

	_, err = s.Solve(cfg.BaseX, cfg.BaseZ)
	test.That(t, IsDomainError(err), test.ShouldBeTrue)
	test.That(t, err.Error(), test.ShouldContainSubstring, "degenerate numeric input")

	_, err = s.Solve(math.NaN(), 1)
	test.That(t, IsDomainError(err), test.ShouldBeTrue)
	_, err = s.Solve(0, math.Inf(1))
	test.That(t, IsDomainError(err), test.ShouldBeTrue)
	_, ok = IsOutOfRange(err)
	test.That(t, ok, test.ShouldBeFalse)
}

func TestSolveTargetNearSide(t *testing.T) {
	s := makeTestSolver(t)
	cfg := s.Config()

	// above the conveyor belt
	x, y, z := -0.573075, 2.274176, 0.944
	joints, err := s.SolveTarget(x, y, z)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, joints.ConveyorSide, test.ShouldBeTrue)
	test.That(t, joints.Rail, test.ShouldAlmostEqual, y-cfg.RailJointOffset, 1e-12)
	test.That(t, joints.ShoulderPan, test.ShouldEqual, 0.0)
	test.That(t, joints.Wrist1, test.ShouldAlmostEqual, -joints.ShoulderLift-joints.Elbow-math.Pi/2, 1e-12)
	test.That(t, joints.Wrist2, test.ShouldAlmostEqual, -math.Pi/2, 1e-12)
	test.That(t, joints.Wrist3, test.ShouldEqual, 0.0)

	fx, fz := s.Forward(joints.PlanarSolution, true)
	test.That(t, fx, test.ShouldAlmostEqual, x-cfg.NearWristOffset, 1e-9)
	test.That(t, fz, test.ShouldAlmostEqual, z+cfg.VerticalOffset, 1e-9)

	positions := joints.Positions()
	test.That(t, positions, test.ShouldHaveLength, NumKittingJoints)
	test.That(t, positions[2], test.ShouldEqual, joints.ShoulderLift)
	test.That(t, joints.Degrees()[5], test.ShouldAlmostEqual, -90, 1e-9)
	test.That(t, joints.Degrees()[0], test.ShouldEqual, joints.Rail)
}

func TestSolveTargetFarSide(t *testing.T) {
	s := makeTestSolver(t)
	cfg := s.Config()

	x, y, z := -2.0, -1.5, 1.0
	joints, err := s.SolveTarget(x, y, z)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, joints.ConveyorSide, test.ShouldBeFalse)
	test.That(t, joints.Rail, test.ShouldAlmostEqual, y+cfg.RailJointOffset, 1e-12)
	test.That(t, joints.ShoulderPan, test.ShouldEqual, cfg.FarSidePan)

	fx, fz := s.Forward(joints.PlanarSolution, false)
	test.That(t, fx, test.ShouldAlmostEqual, x+cfg.FarWristOffset, 1e-9)
	test.That(t, fz, test.ShouldAlmostEqual, z+cfg.VerticalOffset, 1e-9)
}

func TestSolveTargetGates(t *testing.T) {
	s := makeTestSolver(t)
	cfg := s.Config()

	_, err := s.SolveTarget(-0.6, 4.9, 1)
	reason, ok := IsOutOfRange(err)
	test.That(t, ok, test.ShouldBeTrue)
	test.That(t, reason, test.ShouldEqual, RailTravel)
	test.That(t, err.Error(), test.ShouldContainSubstring, "outside rail travel")

	_, err = s.SolveTarget(-0.6, -4.8, 1)
	test.That(t, err, test.ShouldBeNil)

	// every target further than max reach from the shifted anchor is rejected
	for _, target := range [][2]float64{{1.5, 1}, {-1.3, 3}, {-1.3, -1}, {-3.5, 1.1}} {
		test.That(t, cfg.ReachDistance(target[0], target[1]), test.ShouldBeGreaterThan, cfg.MaxReach)
		_, err = s.SolveTarget(target[0], 0, target[1])
		reason, ok = IsOutOfRange(err)
		test.That(t, ok, test.ShouldBeTrue)
		test.That(t, reason, test.ShouldEqual, ArmReach)
	}

	_, err = s.SolveTarget(math.NaN(), 0, 1)
	test.That(t, IsDomainError(err), test.ShouldBeTrue)
}

func TestSolveTargetOnReachBoundary(t *testing.T) {
	s := makeTestSolver(t)
	cfg := s.Config()

	// on the gate boundary the wrist is a hair past full stretch and must still solve
	x := cfg.BaseX + cfg.NearWristOffset + cfg.MaxReach - 1e-9
	z := cfg.ReachAnchorZ - cfg.VerticalOffset
	joints, err := s.SolveTarget(x, 0, z)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, joints.Elbow, test.ShouldAlmostEqual, 0.0, 1e-2)
}

func TestReachBoundaryULP(t *testing.T) {
	cfg := ArmConfig{ShoulderLink: 0.61215, ElbowLink: 0.57235, MaxReach: 1.1845, ActuatorLength: 10}
	test.That(t, cfg.WithinReach(1.1845, 0), test.ShouldBeTrue)
	test.That(t, cfg.WithinReach(math.Nextafter(1.1845, 2), 0), test.ShouldBeFalse)
	test.That(t, cfg.WithinReach(0, -1.1845), test.ShouldBeTrue)
	test.That(t, cfg.WithinReach(0, math.Nextafter(-1.1845, -2)), test.ShouldBeFalse)
}

func TestSolveTargetReachBoundaryULPDefaultArm(t *testing.T) {
	s := makeTestSolver(t)
	cfg := s.Config()

	// the gate circle, in target coordinates, is centered here
	ax, az := cfg.BaseX+cfg.NearWristOffset, cfg.ReachAnchorZ-cfg.VerticalOffset

	// lastAccepted walks ULPs from start until accepts(v) holds and accepts(next ULP away) does not.
	lastAccepted := func(start, away float64, accepts func(float64) bool) float64 {
		v := start
		for !accepts(v) {
			v = math.Nextafter(v, -away)
		}
		for accepts(math.Nextafter(v, away)) {
			v = math.Nextafter(v, away)
		}
		return v
	}

	for _, tc := range []struct {
		name   string
		target func(v float64) (float64, float64)
		start  float64
		away   float64
	}{
		{"toward conveyor", func(v float64) (float64, float64) { return v, az }, ax + cfg.MaxReach, math.Inf(1)},
		{"up", func(v float64) (float64, float64) { return ax, v }, az + cfg.MaxReach, math.Inf(1)},
		{"down", func(v float64) (float64, float64) { return ax, v }, az - cfg.MaxReach, math.Inf(-1)},
	} {
		t.Run(tc.name, func(t *testing.T) {
			v := lastAccepted(tc.start, tc.away, func(v float64) bool { return cfg.WithinReach(tc.target(v)) })
			test.That(t, v, test.ShouldAlmostEqual, tc.start, 1e-12)

			x, z := tc.target(v)
			joints, err := s.SolveTarget(x, 0, z)
			test.That(t, err, test.ShouldBeNil)
			fx, fz := s.Forward(joints.PlanarSolution, true)
			miss := utils.PlanarDistance(fx, fz, x-cfg.NearWristOffset, z+cfg.VerticalOffset)
			test.That(t, miss, test.ShouldBeLessThanOrEqualTo, math.Abs(cfg.ReachAnchorZ-cfg.BaseZ)+1e-6)

			x, z = tc.target(math.Nextafter(v, tc.away))
			_, err = s.SolveTarget(x, 0, z)
			reason, ok := IsOutOfRange(err)
			test.That(t, ok, test.ShouldBeTrue)
			test.That(t, reason, test.ShouldEqual, ArmReach)
		})
	}
}

func TestStretchToReach(t *testing.T) {
	s := makeTestSolver(t)
	cfg := s.Config()
	maxReach := cfg.MaxLinkReach()

	// inside reach: untouched
	x, z := s.stretchToReach(cfg.BaseX+0.5, cfg.BaseZ+0.5)
	test.That(t, x, test.ShouldEqual, cfg.BaseX+0.5)
	test.That(t, z, test.ShouldEqual, cfg.BaseZ+0.5)

	// within the anchor gap past full stretch: pulled onto the circle along the same ray
	x, z = s.stretchToReach(cfg.BaseX, cfg.BaseZ+maxReach+0.0008)
	test.That(t, utils.PlanarDistance(cfg.BaseX, cfg.BaseZ, x, z), test.ShouldBeLessThanOrEqualTo, maxReach)
	test.That(t, utils.PlanarDistance(cfg.BaseX, cfg.BaseZ, x, z), test.ShouldAlmostEqual, maxReach, 1e-12)
	test.That(t, x, test.ShouldEqual, cfg.BaseX)
	sol, err := s.Solve(x, z)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, sol.Beta, test.ShouldAlmostEqual, 0.0, 1e-5)

	// further out: left for Solve to reject
	x, z = s.stretchToReach(cfg.BaseX, cfg.BaseZ+maxReach+0.01)
	test.That(t, z, test.ShouldEqual, cfg.BaseZ+maxReach+0.01)
	_, err = s.Solve(x, z)
	_, ok := IsOutOfRange(err)
	test.That(t, ok, test.ShouldBeTrue)
}

func TestSolverConcurrentUse(t *testing.T) {
	s := makeTestSolver(t)
	want, err := s.Solve(-0.8, 1.4)
	test.That(t, err, test.ShouldBeNil)

	var wg sync.WaitGroup
	results := make([]JointSolution, 16)
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i], _ = s.Solve(-0.8, 1.4)
		}(i)
	}
	wg.Wait()
	for _, got := range results {
		test.That(t, got, test.ShouldResemble, want)
	}
}
