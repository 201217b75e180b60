package kinematics

import (
	"fmt"
	"math"

	"github.com/ariaclab/workcell/utils"
)

// NumKittingJoints is the number of joints the kitting arm controller expects.
const NumKittingJoints = 7

// KittingJoints is the full joint vector of the kitting arm: the rail carriage followed by the six
// arm joints. Wrist angles are derived so the end effector stays flat.
type KittingJoints struct {
	Rail         float64
	ShoulderPan  float64
	ShoulderLift float64
	Elbow        float64
	Wrist1       float64
	Wrist2       float64
	Wrist3       float64

	ConveyorSide   bool
	PlanarSolution JointSolution
}

func newKittingJoints(cfg ArmConfig, sol JointSolution, y float64, near bool) KittingJoints {
	j := KittingJoints{
		Rail:           y + cfg.RailJointOffset,
		ShoulderPan:    cfg.FarSidePan,
		ShoulderLift:   sol.Alpha,
		Elbow:          sol.Beta,
		Wrist1:         -sol.Alpha - sol.Beta - math.Pi/2,
		Wrist2:         -math.Pi / 2,
		Wrist3:         0,
		ConveyorSide:   near,
		PlanarSolution: sol,
	}
	if near {
		j.Rail = y - cfg.RailJointOffset
		j.ShoulderPan = 0
	}
	return j
}

// Positions returns the joints in controller order, in radians (the rail in meters).
func (j KittingJoints) Positions() []float64 {
	return []float64{j.Rail, j.ShoulderPan, j.ShoulderLift, j.Elbow, j.Wrist1, j.Wrist2, j.Wrist3}
}

// Degrees returns Positions with every angular joint converted to degrees.
func (j KittingJoints) Degrees() []float64 {
	out := j.Positions()
	for i := 1; i < len(out); i++ {
		out[i] = utils.RadToDeg(out[i])
	}
	return out
}

func (j KittingJoints) String() string {
	return fmt.Sprintf("rail %.4f pan %.4f lift %.4f elbow %.4f wrist (%.4f, %.4f, %.4f)",
		j.Rail, j.ShoulderPan, j.ShoulderLift, j.Elbow, j.Wrist1, j.Wrist2, j.Wrist3)
}
