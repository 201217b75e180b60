package workcell

import (
	"fmt"
	"strings"

	"github.com/pkg/errors"
	"github.com/samber/lo"

	"github.com/ariaclab/workcell/logging"
	"github.com/ariaclab/workcell/spatialmath"
)

// IncompleteLayoutError is returned when a required stage of the cell has no robots.
type IncompleteLayoutError struct {
	Missing []Kind
}

func (e *IncompleteLayoutError) Error() string {
	kinds := lo.Map(e.Missing, func(k Kind, _ int) string { return string(k) })
	return fmt.Sprintf("incomplete layout: no %s robots", strings.Join(kinds, ", "))
}

// DisconnectedError lists the robots that no conveyor can reach.
type DisconnectedError struct {
	Unreached []Robot
	Total     int
}

func (e *DisconnectedError) Error() string {
	names := lo.Map(e.Unreached, func(r Robot, _ int) string {
		return fmt.Sprintf("%s(%s)", r.Name(), r.Kind())
	})
	return fmt.Sprintf("work cell is disconnected: %d of %d robots unreachable from any conveyor: %s",
		len(e.Unreached), e.Total, strings.Join(names, ", "))
}

// IsDisconnected reports whether err is a DisconnectedError.
func IsDisconnected(err error) bool {
	var target *DisconnectedError
	return errors.As(err, &target)
}

// IsIncompleteLayout reports whether err is an IncompleteLayoutError.
func IsIncompleteLayout(err error) bool {
	var target *IncompleteLayoutError
	return errors.As(err, &target)
}

// Check verifies that layout is complete and fully connected, explaining why when it is not.
func Check(layout *Layout, mode spatialmath.IntersectionMode, logger logging.Logger) error {
	missing := lo.Filter(requiredStages, func(k Kind, _ int) bool { return len(layout.ByKind(k)) == 0 })
	if len(missing) > 0 {
		err := &IncompleteLayoutError{Missing: missing}
		logger.Warnw("layout is incomplete", "missing", missing)
		return err
	}

	g, err := BuildGraph(layout, mode)
	if err != nil {
		return err
	}
	for id, row := range g.rows {
		logger.Debugw("hand-off edges", "id", id, "to", row)
	}

	if unreached := g.Unreached(); len(unreached) > 0 {
		err := &DisconnectedError{Unreached: unreached, Total: layout.Count()}
		logger.Warnw("work cell is disconnected", "mode", mode.String(), "unreached", len(unreached))
		return err
	}
	logger.Infow("work cell is fully connected", "mode", mode.String(), "robots", layout.Count())
	return nil
}
