// Package fake implements an in-memory kitting arm and vacuum gripper.
package fake

import (
	"context"
	"sync"

	"github.com/pkg/errors"
	"go.uber.org/atomic"

	"github.com/ariaclab/workcell/kinematics"
	"github.com/ariaclab/workcell/logging"
)

// Arm records the joint targets it is sent.
type Arm struct {
	mu      sync.Mutex
	logger  logging.Logger
	joints  []float64
	history [][]float64
	stopped atomic.Int32

	// MoveError, if set, is returned by every move.
	MoveError error
}

// NewArm returns an arm resting with every joint at zero.
func NewArm(logger logging.Logger) *Arm {
	return &Arm{logger: logger, joints: make([]float64, kinematics.NumKittingJoints)}
}

// MoveToJointPositions sets the joints to positions.
func (a *Arm) MoveToJointPositions(ctx context.Context, positions []float64) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if len(positions) != kinematics.NumKittingJoints {
		return errors.Errorf("expected %d joint positions, got %d", kinematics.NumKittingJoints, len(positions))
	}
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.MoveError != nil {
		return a.MoveError
	}
	a.joints = append([]float64(nil), positions...)
	a.history = append(a.history, a.joints)
	a.logger.Debugw("fake arm moved", "joints", a.joints)
	return nil
}

// JointPositions returns the current joint positions.
func (a *Arm) JointPositions(ctx context.Context) ([]float64, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	return append([]float64(nil), a.joints...), nil
}

// Stop counts the stop request.
func (a *Arm) Stop(ctx context.Context) error {
	a.stopped.Inc()
	return nil
}

// History returns every joint target received, oldest first.
func (a *Arm) History() [][]float64 {
	a.mu.Lock()
	defer a.mu.Unlock()
	out := make([][]float64, len(a.history))
	copy(out, a.history)
	return out
}

// Stops returns how many times Stop was called.
func (a *Arm) Stops() int {
	return int(a.stopped.Load())
}

// Gripper is a vacuum gripper that picks up a part after a number of state checks while
// suction is on.
type Gripper struct {
	mu      sync.Mutex
	suction bool
	checks  int
	holding bool

	// AttachAfter is the number of IsHolding calls with suction on before a part attaches.
	// Negative means never.
	AttachAfter int
}

// NewGripper returns a gripper that attaches a part once attachAfter checks with suction on have
// come back empty.
func NewGripper(attachAfter int) *Gripper {
	return &Gripper{AttachAfter: attachAfter}
}

// Grab turns suction on.
func (g *Gripper) Grab(ctx context.Context) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.suction = true
	g.checks = 0
	return nil
}

// Open turns suction off and drops any part.
func (g *Gripper) Open(ctx context.Context) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.suction = false
	g.holding = false
	return nil
}

// IsHolding reports whether a part is attached.
func (g *Gripper) IsHolding(ctx context.Context) (bool, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if !g.suction {
		return false, nil
	}
	if !g.holding && g.AttachAfter >= 0 && g.checks >= g.AttachAfter {
		g.holding = true
	}
	g.checks++
	return g.holding, nil
}

// Suction reports whether suction is on.
func (g *Gripper) Suction() bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.suction
}
