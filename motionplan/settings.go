package motionplan

import (
	"go.uber.org/multierr"

	"go.viam.com/rrtplan/spatialmath"
)

// default values for RRT settings.
const (
	// Multiplicative inflation applied to each obstacle's half size during collision checks.
	defaultSafeDistance = 1.75

	// A node closer than this to the goal ends the search.
	defaultGoalDistance = 0.3

	// Maximum length of a single tree edge.
	defaultNodeDistance = 0.3

	// Number of sampling attempts before giving up.
	defaultNodeLimit = 5000

	// Grid cells per axis used for goal-biased sampling.
	defaultNumQuadrantsPerAxis = 2

	// Probability of drawing a sample from the goal's cell when biasing.
	defaultQuadrantProb = 0.5

	// Fraction of NodeLimit between progress logs.
	defaultLoggingInterval = 0.1
)

// RRTSettings are the knobs of the RRT planner. Modifying some of these may cause collisions or
// prevent the goal from being reached.
type RRTSettings struct {
	// Obstacle half sizes are multiplied by this before collision checks. Values below 1 shrink
	// obstacles.
	SafeDistance float64 `json:"safe_distance" mapstructure:"safe_distance"`

	// A new node closer than this to the goal terminates the search successfully.
	GoalDistance float64 `json:"goal_distance" mapstructure:"goal_distance"`

	// Maximum distance between a node and its parent.
	NodeDistance float64 `json:"node_distance" mapstructure:"node_distance"`

	// Maximum number of sampling attempts, successful or not.
	NodeLimit int `json:"node_limit" mapstructure:"node_limit"`

	// Enables goal-biased sampling.
	Quadrants bool `json:"quadrants" mapstructure:"quadrants"`

	// The domain is split into NumQuadrantsPerAxis^3 cells when biasing.
	NumQuadrantsPerAxis int `json:"num_quadrants_per_axis" mapstructure:"num_quadrants_per_axis"`

	// Probability of sampling inside the goal's cell rather than the whole domain.
	QuadrantProb float64 `json:"quadrant_prob" mapstructure:"quadrant_prob"`

	// Percentage interval of NodeLimit after which to print debug logs.
	LoggingInterval float64 `json:"logging_interval" mapstructure:"logging_interval"`

	// Reproduces the historical quadrant layout, which only contains the diagonal cells.
	LegacyQuadrantPartition bool `json:"legacy_quadrant_partition" mapstructure:"legacy_quadrant_partition"`

	// Reproduces the historical slab test, which blocks any edge lying outside a slab it is
	// parallel to.
	LegacyParallelAxisCheck bool `json:"legacy_parallel_axis_check" mapstructure:"legacy_parallel_axis_check"`
}

// NewDefaultRRTSettings returns the settings used when the caller does not specify any.
func NewDefaultRRTSettings() *RRTSettings {
	return &RRTSettings{
		SafeDistance:        defaultSafeDistance,
		GoalDistance:        defaultGoalDistance,
		NodeDistance:        defaultNodeDistance,
		NodeLimit:           defaultNodeLimit,
		Quadrants:           false,
		NumQuadrantsPerAxis: defaultNumQuadrantsPerAxis,
		QuadrantProb:        defaultQuadrantProb,
		LoggingInterval:     defaultLoggingInterval,
	}
}

// Validate checks the settings and returns every problem found. The planner itself never calls
// this; it is up to the caller to reject bad settings before planning.
func (s *RRTSettings) Validate() error {
	var errs error
	if s.SafeDistance <= 0 {
		errs = multierr.Append(errs, newNonPositiveSettingError("safe_distance", s.SafeDistance))
	}
	if s.GoalDistance <= 0 {
		errs = multierr.Append(errs, newNonPositiveSettingError("goal_distance", s.GoalDistance))
	}
	if s.NodeDistance <= 0 {
		errs = multierr.Append(errs, newNonPositiveSettingError("node_distance", s.NodeDistance))
	}
	if s.NodeLimit <= 0 {
		errs = multierr.Append(errs, newNonPositiveSettingError("node_limit", s.NodeLimit))
	}
	if s.LoggingInterval < 0 || s.LoggingInterval > 1 {
		errs = multierr.Append(errs, newSettingOutOfRangeError("logging_interval", s.LoggingInterval, 0, 1))
	}
	if s.Quadrants {
		if s.NumQuadrantsPerAxis <= 0 {
			errs = multierr.Append(errs, newNonPositiveSettingError("num_quadrants_per_axis", s.NumQuadrantsPerAxis))
		}
		if s.QuadrantProb < 0 || s.QuadrantProb > 1 {
			errs = multierr.Append(errs, newSettingOutOfRangeError("quadrant_prob", s.QuadrantProb, 0, 1))
		}
	}
	return errs
}

func (s *RRTSettings) parallelAxisRule() spatialmath.ParallelAxisRule {
	if s.LegacyParallelAxisCheck {
		return spatialmath.ParallelOutsideHits
	}
	return spatialmath.ParallelOutsideMisses
}
