package workcell

import (
	"github.com/pkg/errors"
	"github.com/samber/lo"
)

// Layout is the ordered set of robots in a work cell. Robots are assigned ids 0..N-1 in the
// order they are added; ids are never reused.
type Layout struct {
	robots []Robot
	byKind map[Kind][]Robot
	names  map[string]struct{}
}

// NewLayout returns a layout holding robots, added in order. If any robot is rejected, none of
// them keeps an id and all can be added elsewhere.
func NewLayout(robots ...Robot) (*Layout, error) {
	l := &Layout{
		byKind: make(map[Kind][]Robot),
		names:  make(map[string]struct{}),
	}
	for _, r := range robots {
		if err := l.Add(r); err != nil {
			for _, added := range l.robots {
				added.setID(-1)
			}
			return nil, err
		}
	}
	return l, nil
}

// Add assigns r the next id and appends it to the layout.
func (l *Layout) Add(r Robot) error {
	if r == nil {
		return errors.New("cannot add nil robot")
	}
	if r.ID() >= 0 {
		return errors.Errorf("robot %q already belongs to a layout as id %d", r.Name(), r.ID())
	}
	if _, ok := l.names[r.Name()]; ok {
		return errors.Errorf("duplicate robot name %q", r.Name())
	}
	if l.byKind == nil {
		l.byKind = make(map[Kind][]Robot)
		l.names = make(map[string]struct{})
	}
	r.setID(len(l.robots))
	l.robots = append(l.robots, r)
	l.byKind[r.Kind()] = append(l.byKind[r.Kind()], r)
	l.names[r.Name()] = struct{}{}
	return nil
}

// Count returns the number of robots in the layout.
func (l *Layout) Count() int {
	return len(l.robots)
}

// Robot returns the robot with the given id.
func (l *Layout) Robot(id int) (Robot, bool) {
	if id < 0 || id >= len(l.robots) {
		return nil, false
	}
	return l.robots[id], true
}

// Robots returns every robot ordered by id.
func (l *Layout) Robots() []Robot {
	return append([]Robot(nil), l.robots...)
}

// ByKind returns the robots of kind k in insertion order.
func (l *Layout) ByKind(k Kind) []Robot {
	return append([]Robot(nil), l.byKind[k]...)
}

// RobotByName returns the robot called name.
func (l *Layout) RobotByName(name string) (Robot, bool) {
	return lo.Find(l.robots, func(r Robot) bool { return r.Name() == name })
}
