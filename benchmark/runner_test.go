package benchmark

import (
	"bytes"
	"context"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/benbjohnson/clock"
	"github.com/golang/geo/r3"
	"github.com/google/go-cmp/cmp"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"go.viam.com/test"

	"go.viam.com/rrtplan/logging"
	"go.viam.com/rrtplan/motionplan"
	"go.viam.com/rrtplan/spatialmath"
)

// reachableProblem is solved by the first inserted node whatever the sample.
func reachableProblem() *motionplan.Problem {
	return &motionplan.Problem{
		Domain: spatialmath.NewDomain(
			spatialmath.NewInterval(-0.1, 0.1),
			spatialmath.NewInterval(-0.1, 0.1),
			spatialmath.NewInterval(0, 0.3),
		),
		Start: r3.Vector{X: 0, Y: 0, Z: 0},
		Goal:  r3.Vector{X: 0, Y: 0, Z: 0.25},
	}
}

// walledProblem can never be solved: the inflated wall spans the whole domain.
func walledProblem(t *testing.T) *motionplan.Problem {
	t.Helper()
	wall, err := spatialmath.NewBox(r3.Vector{}, r3.Vector{X: 6, Y: 6, Z: 0.5})
	test.That(t, err, test.ShouldBeNil)
	return &motionplan.Problem{
		Domain: spatialmath.NewDomain(
			spatialmath.NewInterval(-3, 3),
			spatialmath.NewInterval(-3, 3),
			spatialmath.NewInterval(-3, 3),
		),
		Start:     r3.Vector{X: 0, Y: 0, Z: -2},
		Goal:      r3.Vector{X: 0, Y: 0, Z: 2},
		Obstacles: []spatialmath.Box{wall},
	}
}

func TestRunWritesRunLog(t *testing.T) {
	var buf bytes.Buffer
	runner := NewRunner(logging.NewTestLogger(t), WithRunLog(NewRunLogWriter(&buf)))

	report, err := runner.Run(context.Background(), reachableProblem(), nil, 3, 1)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, report.Results, test.ShouldHaveLength, 3)
	_, err = uuid.Parse(report.BatchID)
	test.That(t, err, test.ShouldBeNil)

	test.That(t, buf.String(), test.ShouldEqual, "New Test\n1/3 - Nodes: 2\n2/3 - Nodes: 2\n3/3 - Nodes: 2\n")

	for i, res := range report.Results {
		test.That(t, res.Index, test.ShouldEqual, i+1)
		test.That(t, res.GoalReached, test.ShouldBeTrue)
		test.That(t, res.Attempts, test.ShouldEqual, 1)
		test.That(t, res.Waypoints, test.ShouldEqual, 2)
	}
	test.That(t, report.Summary().SuccessRate, test.ShouldEqual, 1.)
}

func TestRunIsReproducible(t *testing.T) {
	settings := motionplan.NewDefaultRRTSettings()
	settings.NodeLimit = 40
	problem := walledProblem(t)

	first, err := NewRunner(nil).Run(context.Background(), problem, settings, 4, 7)
	test.That(t, err, test.ShouldBeNil)
	second, err := NewRunner(nil).Run(context.Background(), problem, settings, 4, 7)
	test.That(t, err, test.ShouldBeNil)

	test.That(t, first.NodeCounts(), test.ShouldResemble, second.NodeCounts())
	for _, res := range first.Results {
		test.That(t, res.GoalReached, test.ShouldBeFalse)
		test.That(t, res.Attempts, test.ShouldEqual, 40)
	}
	test.That(t, first.Summary().SuccessRate, test.ShouldEqual, 0.)
}

func TestRunReportsClockSeed(t *testing.T) {
	settings := motionplan.NewDefaultRRTSettings()
	settings.NodeLimit = 40
	problem := walledProblem(t)

	first, err := NewRunner(nil).Run(context.Background(), problem, settings, 3, -1)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, first.Seed, test.ShouldBeGreaterThanOrEqualTo, 0)

	replay, err := NewRunner(nil).Run(context.Background(), problem, settings, 3, first.Seed)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, replay.Seed, test.ShouldEqual, first.Seed)
	test.That(t, replay.NodeCounts(), test.ShouldResemble, first.NodeCounts())
	for i := range first.Results {
		test.That(t, replay.Results[i].PathLength, test.ShouldEqual, first.Results[i].PathLength)
	}
}

func TestRunRejectsBadInput(t *testing.T) {
	runner := NewRunner(nil)
	_, err := runner.Run(context.Background(), reachableProblem(), nil, 0, 1)
	test.That(t, err, test.ShouldNotBeNil)

	settings := motionplan.NewDefaultRRTSettings()
	settings.NodeDistance = 0
	_, err = runner.Run(context.Background(), reachableProblem(), settings, 1, 1)
	test.That(t, err, test.ShouldNotBeNil)
	test.That(t, err.Error(), test.ShouldContainSubstring, "node_distance")
}

func TestRunStopsOnCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	report, err := NewRunner(nil).Run(ctx, reachableProblem(), nil, 5, 1)
	test.That(t, err, test.ShouldEqual, context.Canceled)
	test.That(t, report.Results, test.ShouldBeEmpty)
}

func TestRunUsesClock(t *testing.T) {
	mock := clock.NewMock()
	mock.Set(time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC))
	report, err := NewRunner(nil, WithClock(mock)).Run(context.Background(), reachableProblem(), nil, 2, 1)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, report.Started, test.ShouldEqual, mock.Now())
	test.That(t, report.Finished, test.ShouldEqual, mock.Now())
	for _, res := range report.Results {
		test.That(t, res.Duration, test.ShouldEqual, time.Duration(0))
	}
}

func TestRunRecordsMetricsAndStore(t *testing.T) {
	store, err := OpenStore(filepath.Join(t.TempDir(), "results.db"))
	test.That(t, err, test.ShouldBeNil)
	defer func() {
		test.That(t, store.Close(), test.ShouldBeNil)
	}()
	metrics := NewMetrics()

	runner := NewRunner(logging.NewTestLogger(t), WithStore(store), WithMetrics(metrics))
	report, err := runner.Run(context.Background(), reachableProblem(), nil, 3, 2)
	test.That(t, err, test.ShouldBeNil)

	test.That(t, testutil.ToFloat64(metrics.runs.WithLabelValues(outcomeGoalReached)), test.ShouldEqual, 3.)
	test.That(t, testutil.ToFloat64(metrics.runs.WithLabelValues(outcomeExhausted)), test.ShouldEqual, 0.)

	stored, err := store.Results(context.Background(), report.BatchID)
	test.That(t, err, test.ShouldBeNil)
	// time.Time compares with its Equal method, which ignores the monotonic reading lost in storage
	test.That(t, cmp.Diff(report.Results, stored), test.ShouldBeEmpty)

	path := filepath.Join(t.TempDir(), "rrt.prom")
	test.That(t, metrics.WriteTextfile(path), test.ShouldBeNil)
}

func TestRunLogFileAppends(t *testing.T) {
	path := filepath.Join(t.TempDir(), DefaultRunLogPath)
	for i := 0; i < 2; i++ {
		runLog := NewRunLog(path)
		_, err := NewRunner(nil, WithRunLog(runLog)).Run(context.Background(), reachableProblem(), nil, 1, 1)
		test.That(t, err, test.ShouldBeNil)
		test.That(t, runLog.Close(), test.ShouldBeNil)
	}
	contents := readFile(t, path)
	test.That(t, strings.Count(contents, "New Test\n"), test.ShouldEqual, 2)
	test.That(t, strings.Count(contents, "1/1 - Nodes: 2\n"), test.ShouldEqual, 2)
}
