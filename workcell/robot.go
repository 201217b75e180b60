// Package workcell models the robots of a kitting work cell and decides whether parts can flow
// from every conveyor to every robot through the hand-off volumes the robots share.
package workcell

import (
	"fmt"
	"strings"

	"github.com/golang/geo/r3"
	"github.com/pkg/errors"

	"github.com/ariaclab/workcell/spatialmath"
)

// Kind identifies one of the robot types of the work cell.
type Kind string

// The known robot kinds.
const (
	KindConveyor = Kind("conveyor")
	KindKitting  = Kind("kitting")
	KindAGV      = Kind("agv")
	KindGantry   = Kind("gantry")
)

// stages lists the kinds in the order parts flow through the cell.
var stages = []Kind{KindConveyor, KindKitting, KindAGV, KindGantry}

// requiredStages must hold at least one robot for a layout to be checkable.
var requiredStages = []Kind{KindConveyor, KindKitting, KindAGV}

// Stages returns the kinds in flow order.
func Stages() []Kind {
	return append([]Kind(nil), stages...)
}

// ParseKind returns the Kind named by s.
func ParseKind(s string) (Kind, error) {
	k := Kind(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range stages {
		if k == known {
			return k, nil
		}
	}
	return "", errors.Errorf("unknown robot type %q", s)
}

// Robot is a single machine of the work cell. The set of implementations is closed.
type Robot interface {
	fmt.Stringer
	ID() int
	Name() string
	Kind() Kind
	Pose() r3.Vector
	// Inbound returns the volumes in which the robot accepts parts.
	Inbound() []spatialmath.Shape
	// Outbound returns the volumes in which the robot releases parts.
	Outbound() []spatialmath.Shape

	setID(id int)
}

type robotBase struct {
	id   int
	name string
	pose r3.Vector
}

func newRobotBase(name string, pose r3.Vector) (robotBase, error) {
	if name == "" {
		return robotBase{}, errors.New("robot name cannot be empty")
	}
	return robotBase{id: -1, name: name, pose: pose}, nil
}

// ID returns the index assigned by Layout.Add, or -1 before the robot is added.
func (b *robotBase) ID() int { return b.id }

// Name returns the robot's name.
func (b *robotBase) Name() string { return b.name }

// Pose returns the robot's world position.
func (b *robotBase) Pose() r3.Vector { return b.pose }

func (b *robotBase) setID(id int) { b.id = id }

func describe(r Robot) string {
	return fmt.Sprintf("%s %q (id %d)", r.Kind(), r.Name(), r.ID())
}

// Kitting is a rail-mounted arm whose workspace is a cylinder swept along the rail.
type Kitting struct {
	robotBase
	workspace *spatialmath.Cylinder
}

// NewKitting returns a kitting arm at pose whose rail runs along axis over railRange.
func NewKitting(name string, pose r3.Vector, axis spatialmath.Axis, railRange spatialmath.Interval, reach float64) (*Kitting, error) {
	base, err := newRobotBase(name, pose)
	if err != nil {
		return nil, err
	}
	cyl, err := spatialmath.NewCylinder(pose, axis, railRange, reach)
	if err != nil {
		return nil, errors.Wrapf(err, "kitting robot %q", name)
	}
	return &Kitting{robotBase: base, workspace: cyl}, nil
}

// Kind returns KindKitting.
func (k *Kitting) Kind() Kind { return KindKitting }

// Workspace returns the cylinder the arm can reach.
func (k *Kitting) Workspace() *spatialmath.Cylinder { return k.workspace }

// Inbound returns the arm's workspace.
func (k *Kitting) Inbound() []spatialmath.Shape { return []spatialmath.Shape{k.workspace} }

// Outbound returns the arm's workspace.
func (k *Kitting) Outbound() []spatialmath.Shape { return []spatialmath.Shape{k.workspace} }

func (k *Kitting) String() string { return describe(k) + " " + k.workspace.String() }

// Conveyor is a belt that carries parts along a horizontal line at a fixed height.
type Conveyor struct {
	robotBase
	belt *spatialmath.Line
}

// NewConveyor returns a conveyor whose belt runs along axis over railRange at the given height.
func NewConveyor(name string, pose r3.Vector, axis spatialmath.Axis, railRange spatialmath.Interval, height float64) (*Conveyor, error) {
	base, err := newRobotBase(name, pose)
	if err != nil {
		return nil, err
	}
	if !axis.Horizontal() {
		return nil, errors.Errorf("conveyor %q must run along a horizontal axis, got %s", name, axis)
	}
	belt, err := spatialmath.NewLine(r3.Vector{X: pose.X, Y: pose.Y, Z: height}, axis, railRange)
	if err != nil {
		return nil, errors.Wrapf(err, "conveyor %q", name)
	}
	return &Conveyor{robotBase: base, belt: belt}, nil
}

// Kind returns KindConveyor.
func (c *Conveyor) Kind() Kind { return KindConveyor }

// Belt returns the belt line.
func (c *Conveyor) Belt() *spatialmath.Line { return c.belt }

// Inbound returns nothing; conveyors are sources.
func (c *Conveyor) Inbound() []spatialmath.Shape { return nil }

// Outbound returns the belt line.
func (c *Conveyor) Outbound() []spatialmath.Shape { return []spatialmath.Shape{c.belt} }

func (c *Conveyor) String() string { return describe(c) + " " + c.belt.String() }

// AGV is a mobile tray that is loaded at its start pose and unloaded at any of its destinations.
// Each stop is a vertical column over which parts can be placed.
type AGV struct {
	robotBase
	start        *spatialmath.Line
	destinations []*spatialmath.Line
}

// NewAGV returns an AGV loaded at pose and driving to each of destinations.
func NewAGV(name string, pose r3.Vector, destinations []r3.Vector, columnRange spatialmath.Interval) (*AGV, error) {
	base, err := newRobotBase(name, pose)
	if err != nil {
		return nil, err
	}
	start, err := spatialmath.NewLine(pose, spatialmath.AxisZ, columnRange)
	if err != nil {
		return nil, errors.Wrapf(err, "agv %q", name)
	}
	agv := &AGV{robotBase: base, start: start}
	for _, dest := range destinations {
		col, err := spatialmath.NewLine(dest, spatialmath.AxisZ, columnRange)
		if err != nil {
			return nil, errors.Wrapf(err, "agv %q destination", name)
		}
		agv.destinations = append(agv.destinations, col)
	}
	return agv, nil
}

// Kind returns KindAGV.
func (a *AGV) Kind() Kind { return KindAGV }

// Inbound returns the column over the start pose.
func (a *AGV) Inbound() []spatialmath.Shape { return []spatialmath.Shape{a.start} }

// Outbound returns one column per destination.
func (a *AGV) Outbound() []spatialmath.Shape {
	out := make([]spatialmath.Shape, 0, len(a.destinations))
	for _, d := range a.destinations {
		out = append(out, d)
	}
	return out
}

func (a *AGV) String() string {
	return fmt.Sprintf("%s %s, %d destinations", describe(a), a.start, len(a.destinations))
}

// Gantry is an overhead arm moving over a rectangle of rails. It is the final stage.
type Gantry struct {
	robotBase
	footprint *spatialmath.Footprint
}

// NewGantry returns a gantry covering the xRail by yRail rectangle, dilated by reach.
func NewGantry(name string, pose r3.Vector, xRail, yRail spatialmath.Interval, reach float64) (*Gantry, error) {
	base, err := newRobotBase(name, pose)
	if err != nil {
		return nil, err
	}
	fp, err := spatialmath.NewFootprint(xRail, yRail, reach)
	if err != nil {
		return nil, errors.Wrapf(err, "gantry %q", name)
	}
	return &Gantry{robotBase: base, footprint: fp}, nil
}

// Kind returns KindGantry.
func (g *Gantry) Kind() Kind { return KindGantry }

// Inbound returns the gantry footprint.
func (g *Gantry) Inbound() []spatialmath.Shape { return []spatialmath.Shape{g.footprint} }

// Outbound returns nothing; gantries are sinks.
func (g *Gantry) Outbound() []spatialmath.Shape { return nil }

func (g *Gantry) String() string { return describe(g) + " " + g.footprint.String() }
