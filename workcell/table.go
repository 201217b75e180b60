package workcell

import (
	"fmt"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/samber/lo"
)

// String renders the layout as a table of robots ordered by id.
func (l *Layout) String() string {
	t := table.NewWriter()
	t.AppendHeader(table.Row{"#", "Name", "Kind", "Pose"})
	for _, r := range l.robots {
		p := r.Pose()
		t.AppendRow([]interface{}{
			fmt.Sprintf("%d", r.ID()),
			r.Name(),
			string(r.Kind()),
			fmt.Sprintf("X:%.3f, Y:%.3f, Z:%.3f", p.X, p.Y, p.Z),
		})
	}
	return t.Render()
}

// String renders the adjacency rows with each robot's hand-off targets by name.
func (g *Graph) String() string {
	reached := g.reachableFromConveyors()
	t := table.NewWriter()
	t.AppendHeader(table.Row{"#", "Name", "Kind", "Hands Off To", "Reached"})
	for id, row := range g.rows {
		r, _ := g.layout.Robot(id)
		targets := lo.Map(row, func(next, _ int) string {
			nr, _ := g.layout.Robot(next)
			return nr.Name()
		})
		t.AppendRow([]interface{}{
			fmt.Sprintf("%d", id),
			r.Name(),
			string(r.Kind()),
			strings.Join(targets, ", "),
			reached[id],
		})
	}
	return t.Render()
}
