package workcell

import (
	"github.com/pkg/errors"

	"github.com/ariaclab/workcell/spatialmath"
)

// Graph holds directed hand-off edges between robots of consecutive stages. Row i lists the ids
// of the robots that robot i can pass a part to.
type Graph struct {
	layout *Layout
	rows   [][]int
}

// BuildGraph computes the hand-off graph of layout. A robot of one stage links to a robot of the
// next stage when any of its outbound shapes intersects any inbound shape of the other.
func BuildGraph(layout *Layout, mode spatialmath.IntersectionMode) (*Graph, error) {
	g := &Graph{layout: layout, rows: make([][]int, layout.Count())}
	for i := range g.rows {
		g.rows[i] = []int{}
	}
	for s := 0; s+1 < len(stages); s++ {
		for _, up := range layout.ByKind(stages[s]) {
			for _, down := range layout.ByKind(stages[s+1]) {
				linked, err := handsOff(up, down, mode)
				if err != nil {
					return nil, errors.Wrapf(err, "linking %s to %s", describe(up), describe(down))
				}
				if linked {
					g.rows[up.ID()] = append(g.rows[up.ID()], down.ID())
				}
			}
		}
	}
	return g, nil
}

func handsOff(up, down Robot, mode spatialmath.IntersectionMode) (bool, error) {
	for _, out := range up.Outbound() {
		for _, in := range down.Inbound() {
			hit, err := spatialmath.Intersects(out, in, mode)
			if err != nil {
				return false, err
			}
			if hit {
				return true, nil
			}
		}
	}
	return false, nil
}

// Layout returns the layout the graph was built from.
func (g *Graph) Layout() *Layout {
	return g.layout
}

// Rows returns a copy of the adjacency rows indexed by robot id.
func (g *Graph) Rows() [][]int {
	out := make([][]int, len(g.rows))
	for i, row := range g.rows {
		out[i] = append([]int{}, row...)
	}
	return out
}

// Neighbors returns the ids robot id hands parts to.
func (g *Graph) Neighbors(id int) []int {
	if id < 0 || id >= len(g.rows) {
		return nil
	}
	return append([]int{}, g.rows[id]...)
}

// Reachable returns the sorted ids of every robot reachable from start, start included.
func (g *Graph) Reachable(start int) []int {
	visited := make([]bool, len(g.rows))
	g.visit(start, visited)
	var out []int
	for id, seen := range visited {
		if seen {
			out = append(out, id)
		}
	}
	return out
}

// visit marks everything reachable from start using an explicit stack.
func (g *Graph) visit(start int, visited []bool) {
	if start < 0 || start >= len(g.rows) || visited[start] {
		return
	}
	stack := []int{start}
	visited[start] = true
	for len(stack) > 0 {
		node := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		for _, next := range g.rows[node] {
			if !visited[next] {
				visited[next] = true
				stack = append(stack, next)
			}
		}
	}
}

// reachableFromConveyors returns which robots any conveyor can reach.
func (g *Graph) reachableFromConveyors() []bool {
	visited := make([]bool, len(g.rows))
	for _, c := range g.layout.ByKind(KindConveyor) {
		g.visit(c.ID(), visited)
	}
	return visited
}

// Unreached returns the robots no conveyor can reach, ordered by id.
func (g *Graph) Unreached() []Robot {
	var out []Robot
	for id, seen := range g.reachableFromConveyors() {
		if !seen {
			r, _ := g.layout.Robot(id)
			out = append(out, r)
		}
	}
	return out
}

// FullyConnected reports whether every robot is reachable from some conveyor.
func (g *Graph) FullyConnected() bool {
	count := 0
	for _, seen := range g.reachableFromConveyors() {
		if seen {
			count++
		}
	}
	return count == g.layout.Count()
}

// IsFullyConnected reports whether parts can flow from the conveyors to every robot of layout.
// An empty layout is trivially connected. A layout whose shapes cannot be compared is not.
func IsFullyConnected(layout *Layout, mode spatialmath.IntersectionMode) bool {
	g, err := BuildGraph(layout, mode)
	if err != nil {
		return false
	}
	return g.FullyConnected()
}
