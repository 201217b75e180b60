// Package kinematics solves joint angles for the kitting arm: a two link planar arm (shoulder
// lift and elbow) mounted on a linear rail, with a shoulder pan that flips it between the
// conveyor side and the far side of the rail.
package kinematics

import (
	"fmt"
	"math"

	"github.com/pkg/errors"
	"go.uber.org/multierr"

	"github.com/ariaclab/workcell/utils"
)

// ArmConfig holds the geometry of the kitting arm. The values must match the physical robot model;
// they are fixed at startup and never mutated.
type ArmConfig struct {
	// ShoulderLink and ElbowLink are the reach radii of the two links.
	ShoulderLink float64 `json:"shoulder_link"`
	ElbowLink    float64 `json:"elbow_link"`

	// BaseX and BaseZ anchor the shoulder joint in the arm's vertical operating plane.
	BaseX float64 `json:"base_x"`
	BaseZ float64 `json:"base_z"`

	// The reach gate measures from (BaseX, ReachAnchorZ) after applying the near side wrist offset
	// and the vertical offset to the target.
	ReachAnchorZ float64 `json:"reach_anchor_z"`
	MaxReach     float64 `json:"max_reach"`

	// Wrist length corrections. The arm is asymmetric, so the two sides differ.
	NearWristOffset float64 `json:"near_wrist_offset"`
	FarWristOffset  float64 `json:"far_wrist_offset"`
	VerticalOffset  float64 `json:"vertical_offset"`

	ActuatorLength  float64 `json:"actuator_length"`
	BaseLength      float64 `json:"base_length"`
	RailJointOffset float64 `json:"rail_joint_offset"`
	FarSidePan      float64 `json:"far_side_pan"`
}

// DefaultArmConfig returns the geometry of the competition kitting arm.
func DefaultArmConfig() ArmConfig {
	return ArmConfig{
		ShoulderLink:    0.61215,
		ElbowLink:       0.57235,
		BaseX:           -1.3,
		BaseZ:           1.1264,
		ReachAnchorZ:    1.12725,
		MaxReach:        1.1845,
		NearWristOffset: 0.1158,
		FarWristOffset:  0.1154,
		VerticalOffset:  0.1,
		ActuatorLength:  10,
		BaseLength:      0.2,
		RailJointOffset: 0.1616191,
		FarSidePan:      3.14,
	}
}

// RailHalfTravel is how far the arm base can slide from the rail origin in either direction.
func (c ArmConfig) RailHalfTravel() float64 {
	return c.ActuatorLength/2 - c.BaseLength
}

// MaxLinkReach is the reach of both links fully stretched.
func (c ArmConfig) MaxLinkReach() float64 {
	return c.ShoulderLink + c.ElbowLink
}

// MinLinkReach is the distance of the wrist from the shoulder with the elbow fully folded.
func (c ArmConfig) MinLinkReach() float64 {
	return math.Abs(c.ShoulderLink - c.ElbowLink)
}

// WithinRail reports whether y is reachable by sliding along the rail. The ends are inclusive.
func (c ArmConfig) WithinRail(y float64) bool {
	half := c.RailHalfTravel()
	return y >= -half && y <= half
}

// ReachDistance is the distance the reach gate compares with MaxReach.
func (c ArmConfig) ReachDistance(x, z float64) float64 {
	return utils.PlanarDistance(x-c.NearWristOffset, z+c.VerticalOffset, c.BaseX, c.ReachAnchorZ)
}

// WithinReach reports whether (x, z) passes the reach gate. A target exactly on the boundary passes.
func (c ArmConfig) WithinReach(x, z float64) bool {
	return c.ReachDistance(x, z) <= c.MaxReach
}

// NearSide reports whether x is on the conveyor side of the shoulder.
func (c ArmConfig) NearSide(x float64) bool {
	return x >= c.BaseX
}

// Validate ensures all parts of the config are valid.
func (c ArmConfig) Validate(path string) error {
	var errs error
	for _, field := range []struct {
		name  string
		value float64
	}{
		{"shoulder_link", c.ShoulderLink},
		{"elbow_link", c.ElbowLink},
		{"max_reach", c.MaxReach},
		{"actuator_length", c.ActuatorLength},
	} {
		if !(field.value > 0) {
			errs = multierr.Append(errs, errors.Errorf("%s.%s must be positive, got %v", path, field.name, field.value))
		}
	}
	if !utils.IsFinite(c.BaseX, c.BaseZ, c.ReachAnchorZ, c.NearWristOffset, c.FarWristOffset,
		c.VerticalOffset, c.BaseLength, c.RailJointOffset, c.FarSidePan) {
		errs = multierr.Append(errs, errors.Errorf("%s: offsets must be finite", path))
	}
	if c.ActuatorLength > 0 && c.RailHalfTravel() < 0 {
		errs = multierr.Append(errs, errors.Errorf("%s.base_length %v leaves no rail travel", path, c.BaseLength))
	}
	return errs
}

func (c ArmConfig) String() string {
	return fmt.Sprintf("links (%g, %g), shoulder (%g, %g), reach %g, rail +-%g",
		c.ShoulderLink, c.ElbowLink, c.BaseX, c.BaseZ, c.MaxReach, c.RailHalfTravel())
}
