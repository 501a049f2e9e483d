package motionplan

import (
	"fmt"
	"math"

	"github.com/golang/geo/r3"
	"gonum.org/v1/gonum/floats"
)

// Plan is the outcome of one RRT search.
type Plan struct {
	path        []r3.Vector
	nodes       []Node
	attempts    int
	goal        r3.Vector
	goalReached bool
}

func newPlan(t *tree, path []r3.Vector, attempts int, goal r3.Vector, goalReached bool) *Plan {
	return &Plan{
		path:        path,
		nodes:       t.snapshot(),
		attempts:    attempts,
		goal:        goal,
		goalReached: goalReached,
	}
}

// Path returns a copy of the waypoints from the start to the terminal node.
func (p *Plan) Path() []r3.Vector {
	out := make([]r3.Vector, len(p.path))
	copy(out, p.path)
	return out
}

// NodesExplored returns the number of nodes in the tree, root included.
func (p *Plan) NodesExplored() int {
	return len(p.nodes)
}

// Attempts returns the number of samples drawn during the search.
func (p *Plan) Attempts() int {
	return p.attempts
}

// GoalReached reports whether the search stopped because a node landed within GoalDistance of
// the goal, as opposed to running out of attempts.
func (p *Plan) GoalReached() bool {
	return p.goalReached
}

// DistanceToGoal returns the distance from the last waypoint to the goal.
func (p *Plan) DistanceToGoal() float64 {
	if len(p.path) == 0 {
		return math.Inf(1)
	}
	return p.path[len(p.path)-1].Distance(p.goal)
}

// Length returns the summed length of the path's segments.
func (p *Plan) Length() float64 {
	if len(p.path) < 2 {
		return 0
	}
	segments := make([]float64, 0, len(p.path)-1)
	for i := 1; i < len(p.path); i++ {
		segments = append(segments, p.path[i].Distance(p.path[i-1]))
	}
	return floats.Sum(segments)
}

// Nodes returns a copy of the search tree in insertion order; the root is first.
func (p *Plan) Nodes() []Node {
	out := make([]Node, len(p.nodes))
	copy(out, p.nodes)
	return out
}

// String returns a human-readable version of the Plan, suitable for debugging.
func (p *Plan) String() string {
	str := fmt.Sprintf("goal reached: %t, attempts: %d, nodes: %d", p.goalReached, p.attempts, len(p.nodes))
	for i, pt := range p.path {
		str += fmt.Sprintf("\n%d: X:%.3f Y:%.3f Z:%.3f", i, pt.X, pt.Y, pt.Z)
	}
	return str
}
