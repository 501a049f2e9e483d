package motionplan

import (
	"github.com/golang/geo/r3"

	"go.viam.com/rrtplan/spatialmath"
)

// obstacleChecker validates tree edges against a fixed set of inflated obstacles.
type obstacleChecker struct {
	obstacles []spatialmath.Box
	rule      spatialmath.ParallelAxisRule
}

// newObstacleChecker inflates every obstacle by safeDistance once, up front.
func newObstacleChecker(obstacles []spatialmath.Box, safeDistance float64, rule spatialmath.ParallelAxisRule) *obstacleChecker {
	inflated := make([]spatialmath.Box, 0, len(obstacles))
	for _, o := range obstacles {
		inflated = append(inflated, o.Inflate(safeDistance))
	}
	return &obstacleChecker{obstacles: inflated, rule: rule}
}

// segmentHitsObstacle reports whether the segment from->to touches the already inflated obstacle.
func (oc *obstacleChecker) segmentHitsObstacle(from, to r3.Vector, obstacle spatialmath.Box) bool {
	return spatialmath.SegmentIntersectsBox(from, to, obstacle, oc.rule)
}

// edgeIsFree reports whether the segment from->to misses every obstacle.
func (oc *obstacleChecker) edgeIsFree(from, to r3.Vector) bool {
	for _, o := range oc.obstacles {
		if oc.segmentHitsObstacle(from, to, o) {
			return false
		}
	}
	return true
}
