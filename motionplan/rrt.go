package motionplan

import (
	"math/rand"

	"github.com/golang/geo/r3"

	"go.viam.com/rrtplan/logging"
	"go.viam.com/rrtplan/spatialmath"
	"go.viam.com/rrtplan/utils"
)

// Problem is a single-query planning request. The planner assumes the caller has already checked
// it: the domain is non-degenerate, start and goal lie inside the domain and outside every
// obstacle.
type Problem struct {
	Domain    spatialmath.Domain
	Start     r3.Vector
	Goal      r3.Vector
	Obstacles []spatialmath.Box
}

// RRTPlanner grows a single rapidly-exploring random tree from the start of a Problem until a
// node lands within GoalDistance of the goal or NodeLimit attempts have been made.
type RRTPlanner struct {
	problem  *Problem
	settings *RRTSettings
	sampler  Sampler
	checker  *obstacleChecker
	logger   logging.Logger
}

// NewRRTPlanner creates an RRTPlanner. A nil settings uses NewDefaultRRTSettings, and a nil
// logger discards output. The sampler is the planner's only source of randomness.
func NewRRTPlanner(problem *Problem, settings *RRTSettings, sampler Sampler, logger logging.Logger) *RRTPlanner {
	if settings == nil {
		settings = NewDefaultRRTSettings()
	}
	if logger == nil {
		logger = logging.NewBlankLogger("rrt")
	}
	return &RRTPlanner{
		problem:  problem,
		settings: settings,
		sampler:  sampler,
		checker:  newObstacleChecker(problem.Obstacles, settings.SafeDistance, settings.parallelAxisRule()),
		logger:   logger,
	}
}

// PlanPath plans from problem.Start toward problem.Goal with a sampler built from settings and
// rng, and returns the path and the number of tree nodes created, root included. When the node
// limit is exhausted the path leads to the most recently inserted node instead of the goal;
// callers that need to tell the two apart should measure the last point's distance to the goal.
func PlanPath(problem *Problem, settings *RRTSettings, rng *rand.Rand, logger logging.Logger) ([]r3.Vector, int) {
	if settings == nil {
		settings = NewDefaultRRTSettings()
	}
	sampler := NewSampler(problem.Domain, problem.Goal, settings, rng)
	plan := NewRRTPlanner(problem, settings, sampler, logger).Plan()
	return plan.Path(), plan.NodesExplored()
}

// Plan runs the search to completion.
func (mp *RRTPlanner) Plan() *Plan {
	goal := mp.problem.Goal
	limit := mp.settings.NodeLimit
	t := newTree(mp.problem.Start, 1+limit/4)

	logEvery := utils.ScaleByPct(limit, mp.settings.LoggingInterval)

	attempts := 0
	for attempts < limit {
		attempts++
		if logEvery > 0 && attempts%logEvery == 0 {
			mp.logger.Debugf("rrt attempt %d/%d, tree size %d", attempts, limit, t.size())
		}

		target := mp.sampler.Sample()
		nearIdx := t.nearest(target)
		near := t.nodes[nearIdx].Position
		newPos := steer(near, target, mp.settings.NodeDistance)

		if !mp.checker.edgeIsFree(near, newPos) {
			continue
		}

		newIdx := t.insert(newPos, attempts, nearIdx)
		if newPos.Distance(goal) < mp.settings.GoalDistance {
			mp.logger.Infow("goal reached", "attempts", attempts, "nodes", t.size())
			return newPlan(t, extractPath(t, newIdx), attempts, goal, true)
		}
	}

	mp.logger.Warnw("maximum nodes reached, returning current path", "attempts", attempts, "nodes", t.size())
	return newPlan(t, extractPath(t, t.last()), attempts, goal, false)
}

// steer returns target if it is within maxDist of from, and otherwise the point maxDist along the
// straight line from from toward target.
func steer(from, target r3.Vector, maxDist float64) r3.Vector {
	diff := target.Sub(from)
	dist := diff.Norm()
	if dist <= maxDist {
		return target
	}
	return from.Add(diff.Mul(maxDist / dist))
}
