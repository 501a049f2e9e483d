package benchmark

import (
	"fmt"
	"math"
	"time"

	"github.com/montanaflynn/stats"
	"github.com/samber/lo"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// RunResult is the outcome of one planner run within a batch.
type RunResult struct {
	// Index is 1-based, matching the run log.
	Index         int
	NodesExplored int
	Attempts      int
	GoalReached   bool
	PathLength    float64
	Waypoints     int
	Started       time.Time
	Duration      time.Duration
}

// Report collects the results of a batch.
type Report struct {
	BatchID  string
	Seed     int64
	Started  time.Time
	Finished time.Time
	Results  []RunResult
}

// Summary aggregates a Report. Node statistics are computed over every run; a run that exhausted
// its node limit counts with the nodes it created.
type Summary struct {
	Runs        int
	Successes   int
	SuccessRate float64
	MeanNodes   float64
	StdDevNodes float64
	MedianNodes float64
	P90Nodes    float64
	MinNodes    float64
	MaxNodes    float64
	// MeanPathLength only covers runs that reached the goal.
	MeanPathLength float64
	TotalDuration  time.Duration
}

// NodeCounts returns the nodes explored by each run, in run order.
func (r *Report) NodeCounts() []float64 {
	return lo.Map(r.Results, func(res RunResult, _ int) float64 {
		return float64(res.NodesExplored)
	})
}

// Summary computes the batch statistics. An empty report gives a zero Summary.
func (r *Report) Summary() Summary {
	s := Summary{Runs: len(r.Results)}
	if s.Runs == 0 {
		return s
	}

	var lengths []float64
	for _, res := range r.Results {
		s.TotalDuration += res.Duration
		if res.GoalReached {
			s.Successes++
			lengths = append(lengths, res.PathLength)
		}
	}
	s.SuccessRate = float64(s.Successes) / float64(s.Runs)
	if len(lengths) > 0 {
		s.MeanPathLength = stat.Mean(lengths, nil)
	}

	counts := r.NodeCounts()
	s.MinNodes = floats.Min(counts)
	s.MaxNodes = floats.Max(counts)
	s.MeanNodes, s.StdDevNodes = stat.MeanStdDev(counts, nil)
	if math.IsNaN(s.StdDevNodes) {
		s.StdDevNodes = 0
	}
	// both only fail on empty input
	s.MedianNodes, _ = stats.Median(counts)
	s.P90Nodes, _ = stats.Percentile(counts, 90)
	return s
}

// String returns a one line description of the summary.
func (s Summary) String() string {
	return fmt.Sprintf("runs: %d, reached goal: %d (%.1f%%), nodes mean: %.1f stddev: %.1f median: %.1f p90: %.1f",
		s.Runs, s.Successes, 100*s.SuccessRate, s.MeanNodes, s.StdDevNodes, s.MedianNodes, s.P90Nodes)
}
