// Package benchmark runs a planning problem many times in a row and collects how the planner
// behaved: a plain text run log in the testLog.log format, summary statistics,
// prometheus metrics and an optional sqlite results store.
package benchmark

import (
	"context"

	"github.com/benbjohnson/clock"
	"github.com/google/uuid"
	"github.com/pkg/errors"

	"go.viam.com/rrtplan/logging"
	"go.viam.com/rrtplan/motionplan"
	"go.viam.com/rrtplan/utils"
)

// Runner executes batches of sequential planner runs.
type Runner struct {
	logger  logging.Logger
	clock   clock.Clock
	runLog  *RunLog
	store   *Store
	metrics *Metrics
	newID   func() string
}

// Option configures a Runner.
type Option func(*Runner)

// WithClock sets the clock used to time runs.
func WithClock(c clock.Clock) Option {
	return func(r *Runner) {
		r.clock = c
	}
}

// WithRunLog appends a line per run to the given run log.
func WithRunLog(l *RunLog) Option {
	return func(r *Runner) {
		r.runLog = l
	}
}

// WithStore records every run in the given store.
func WithStore(s *Store) Option {
	return func(r *Runner) {
		r.store = s
	}
}

// WithMetrics observes every run in the given metrics.
func WithMetrics(m *Metrics) Option {
	return func(r *Runner) {
		r.metrics = m
	}
}

// NewRunner returns a Runner that logs to logger.
func NewRunner(logger logging.Logger, opts ...Option) *Runner {
	if logger == nil {
		logger = logging.NewBlankLogger("benchmark")
	}
	r := &Runner{
		logger: logger,
		clock:  clock.New(),
		newID:  uuid.NewString,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Run plans problem runs times in a row. All runs draw from one random source seeded with seed,
// so a batch is reproducible as a whole but its runs differ from each other. A negative seed uses
// the current time. ctx is only checked between runs; on cancellation the runs finished so far
// are returned along with the context's error.
func (r *Runner) Run(
	ctx context.Context,
	problem *motionplan.Problem,
	settings *motionplan.RRTSettings,
	runs int,
	seed int64,
) (*Report, error) {
	if runs <= 0 {
		return nil, errors.Errorf("number of runs must be positive, got %d", runs)
	}
	if settings == nil {
		settings = motionplan.NewDefaultRRTSettings()
	}
	if err := settings.Validate(); err != nil {
		return nil, err
	}

	rng, seed := utils.NewRandomSource(seed)
	report := &Report{
		BatchID: r.newID(),
		Seed:    seed,
		Started: r.clock.Now(),
		Results: make([]RunResult, 0, runs),
	}
	if r.runLog != nil {
		if err := r.runLog.StartTest(); err != nil {
			return nil, errors.Wrap(err, "cannot write run log")
		}
	}
	r.logger.Infow("starting batch", "batch", report.BatchID, "runs", runs, "seed", seed)

	for i := 0; i < runs; i++ {
		if err := ctx.Err(); err != nil {
			report.Finished = r.clock.Now()
			return report, err
		}

		start := r.clock.Now()
		sampler := motionplan.NewSampler(problem.Domain, problem.Goal, settings, rng)
		plan := motionplan.NewRRTPlanner(problem, settings, sampler, r.logger.Sublogger("rrt")).Plan()
		result := RunResult{
			Index:         i + 1,
			NodesExplored: plan.NodesExplored(),
			Attempts:      plan.Attempts(),
			GoalReached:   plan.GoalReached(),
			PathLength:    plan.Length(),
			Waypoints:     len(plan.Path()),
			Started:       start,
			Duration:      r.clock.Since(start),
		}
		report.Results = append(report.Results, result)
		r.logger.Debugf("%d/%d", result.Index, runs)

		if err := r.record(ctx, report.BatchID, runs, result); err != nil {
			report.Finished = r.clock.Now()
			return report, err
		}
	}
	report.Finished = r.clock.Now()

	summary := report.Summary()
	r.logger.Infow("batch finished",
		"batch", report.BatchID,
		"success_rate", summary.SuccessRate,
		"mean_nodes", summary.MeanNodes,
		"median_nodes", summary.MedianNodes,
	)
	return report, nil
}

func (r *Runner) record(ctx context.Context, batchID string, runs int, result RunResult) error {
	if r.runLog != nil {
		if err := r.runLog.RecordRun(result.Index, runs, result.NodesExplored); err != nil {
			return errors.Wrap(err, "cannot write run log")
		}
	}
	if r.metrics != nil {
		r.metrics.Observe(result)
	}
	if r.store != nil {
		if err := r.store.Record(ctx, batchID, result); err != nil {
			return err
		}
	}
	return nil
}
