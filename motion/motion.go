// Package motion drives the kitting arm through joint targets computed by the kinematics solver.
// Commands are refused until the work cell layout has been verified as connected.
package motion

import (
	"context"
	"sync"

	"github.com/golang/geo/r3"
	"github.com/pkg/errors"

	"github.com/ariaclab/workcell/kinematics"
	"github.com/ariaclab/workcell/logging"
	"github.com/ariaclab/workcell/spatialmath"
	"github.com/ariaclab/workcell/workcell"
)

// DescendStep is how far the arm lowers between gripper checks while reaching for a part.
const DescendStep = 0.005

// DefaultMaxDescent bounds how far DescendUntilAttached lowers below its starting target.
const DefaultMaxDescent = 0.1

// ErrNotVerified is returned by commands issued before any layout was verified.
var ErrNotVerified = errors.New("work cell layout has not been verified")

// An Arm moves the seven joints of the kitting arm in the order of kinematics.KittingJoints. The
// rail is in meters, every other joint in radians.
type Arm interface {
	MoveToJointPositions(ctx context.Context, positions []float64) error
	JointPositions(ctx context.Context) ([]float64, error)
	Stop(ctx context.Context) error
}

// Gripper is a vacuum gripper.
type Gripper interface {
	// Grab turns suction on.
	Grab(ctx context.Context) error
	// Open turns suction off, releasing any part.
	Open(ctx context.Context) error
	// IsHolding reports whether a part is attached.
	IsHolding(ctx context.Context) (bool, error)
}

// A Controller executes motion commands for one kitting arm.
type Controller struct {
	solver  *kinematics.Solver
	arm     Arm
	gripper Gripper
	logger  logging.Logger

	mu      sync.RWMutex
	verdict error
}

// NewController returns a controller that stays disabled until Verify succeeds.
func NewController(solver *kinematics.Solver, arm Arm, gripper Gripper, logger logging.Logger) *Controller {
	return &Controller{
		solver:  solver,
		arm:     arm,
		gripper: gripper,
		logger:  logger,
		verdict: ErrNotVerified,
	}
}

// Verify checks layout and enables the controller only if it is complete and fully connected.
// It can be called again whenever the layout is rebuilt.
func (c *Controller) Verify(layout *workcell.Layout, mode spatialmath.IntersectionMode) error {
	verdict := workcell.Check(layout, mode, c.logger)
	c.mu.Lock()
	c.verdict = verdict
	c.mu.Unlock()
	if verdict != nil {
		c.logger.Warnw("motion disabled", "error", verdict)
	} else {
		c.logger.Info("motion enabled")
	}
	return verdict
}

// Ready returns nil when commands are accepted, otherwise the reason they are not.
func (c *Controller) Ready() error {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.verdict != nil {
		return errors.Wrap(c.verdict, "motion disabled")
	}
	return nil
}

// Plan returns the joint targets for target without moving.
func (c *Controller) Plan(target r3.Vector) (kinematics.KittingJoints, error) {
	return c.solver.SolveTarget(target.X, target.Y, target.Z)
}

// GoTo moves the gripper to target.
func (c *Controller) GoTo(ctx context.Context, target r3.Vector) (kinematics.KittingJoints, error) {
	if err := c.Ready(); err != nil {
		return kinematics.KittingJoints{}, err
	}
	return c.goTo(ctx, target)
}

func (c *Controller) goTo(ctx context.Context, target r3.Vector) (kinematics.KittingJoints, error) {
	joints, err := c.Plan(target)
	if err != nil {
		return kinematics.KittingJoints{}, err
	}
	c.logger.Debugw("moving", "target", target, "joints", joints.Positions())
	if err := c.arm.MoveToJointPositions(ctx, joints.Positions()); err != nil {
		return kinematics.KittingJoints{}, errors.Wrapf(err, "moving to %v", target)
	}
	return joints, nil
}

// DescendUntilAttached lowers the gripper from start in DescendStep increments until it holds a
// part, giving up once it would travel more than maxDescent. It returns where the part attached.
func (c *Controller) DescendUntilAttached(ctx context.Context, start r3.Vector, maxDescent float64) (r3.Vector, error) {
	if err := c.Ready(); err != nil {
		return r3.Vector{}, err
	}
	current := start
	for {
		holding, err := c.gripper.IsHolding(ctx)
		if err != nil {
			return current, errors.Wrap(err, "reading gripper state")
		}
		if holding {
			return current, nil
		}
		if err := ctx.Err(); err != nil {
			return current, err
		}
		next := current
		next.Z -= DescendStep
		if start.Z-next.Z > maxDescent+1e-9 {
			return current, errors.Errorf("no part attached after descending %.3f", start.Z-current.Z)
		}
		if _, err := c.goTo(ctx, next); err != nil {
			return current, err
		}
		current = next
	}
}

// PickAndPlace picks a part at src and releases it at dst. Both targets are checked before the
// arm moves.
func (c *Controller) PickAndPlace(ctx context.Context, src, dst r3.Vector) error {
	if err := c.Ready(); err != nil {
		return err
	}
	if _, err := c.Plan(src); err != nil {
		return errors.Wrap(err, "pick location")
	}
	if _, err := c.Plan(dst); err != nil {
		return errors.Wrap(err, "place location")
	}

	if err := c.gripper.Grab(ctx); err != nil {
		return errors.Wrap(err, "activating gripper")
	}
	if _, err := c.goTo(ctx, src); err != nil {
		return err
	}
	at, err := c.DescendUntilAttached(ctx, src, DefaultMaxDescent)
	if err != nil {
		return c.abort(ctx, err)
	}
	c.logger.Infow("picked part", "at", at)
	if _, err := c.goTo(ctx, dst); err != nil {
		return c.abort(ctx, err)
	}
	if err := c.gripper.Open(ctx); err != nil {
		return errors.Wrap(err, "releasing gripper")
	}
	c.logger.Infow("placed part", "at", dst)
	return nil
}

// abort stops the arm after a failed pick and place, keeping the original error.
func (c *Controller) abort(ctx context.Context, cause error) error {
	if err := c.arm.Stop(ctx); err != nil {
		c.logger.Errorw("failed to stop arm", "error", err)
	}
	return cause
}
