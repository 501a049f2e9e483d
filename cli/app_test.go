package cli

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"go.viam.com/test"
)

// every point of this map is within goal distance of the goal, so any seed succeeds at once
const reachableMap = `{
    "mapSize": [[-0.1, 0.1], [-0.1, 0.1], [0, 0.3]],
    "posStart": [0, 0, 0],
    "posGoal": [0, 0, 0.25],
    "listObstacles": []
}`

func writeMap(t *testing.T, contents string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "map.json")
	test.That(t, os.WriteFile(path, []byte(contents), 0o600), test.ShouldBeNil)
	return path
}

func runApp(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	var out, errOut bytes.Buffer
	err := NewApp(&out, &errOut).Run(append([]string{"rrtplan"}, args...))
	return out.String(), errOut.String(), err
}

func readFile(t *testing.T, path string) string {
	t.Helper()
	//nolint:gosec
	data, err := os.ReadFile(path)
	test.That(t, err, test.ShouldBeNil)
	return string(data)
}

func TestPlanCommand(t *testing.T) {
	mapPath := writeMap(t, reachableMap)
	outPath := filepath.Join(t.TempDir(), "plan.json")

	out, _, err := runApp(t, "plan", "--seed", "4", "--output", outPath, mapPath)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, out, test.ShouldContainSubstring, "goal reached after 1 attempts, 2 nodes explored")
	test.That(t, out, test.ShouldContainSubstring, "0.000")

	var written planOutput
	test.That(t, json.Unmarshal([]byte(readFile(t, outPath)), &written), test.ShouldBeNil)
	test.That(t, written.GoalReached, test.ShouldBeTrue)
	test.That(t, written.NodesExplored, test.ShouldEqual, 2)
	test.That(t, written.Seed, test.ShouldEqual, int64(4))
	test.That(t, written.Path, test.ShouldHaveLength, 2)
	test.That(t, written.Path[0], test.ShouldResemble, [3]float64{0, 0, 0})
	test.That(t, written.DistanceToGoal, test.ShouldBeLessThan, 0.3)
	test.That(t, written.Settings.NodeLimit, test.ShouldEqual, 5000)
}

func TestPlanCommandFlagsOverrideMap(t *testing.T) {
	mapPath := writeMap(t, reachableMap)
	_, _, err := runApp(t, "plan", "--node-limit", "0", mapPath)
	test.That(t, err, test.ShouldNotBeNil)
	test.That(t, err.Error(), test.ShouldContainSubstring, "node_limit must be positive")

	// a goal distance too small to ever be met leaves the planner at its node limit
	out, _, err := runApp(t, "plan", "--seed", "1", "--node-limit", "5", "--goal-distance", "1e-9", mapPath)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, out, test.ShouldContainSubstring, "node limit of 5 reached")
}

func TestPlanCommandRecordsClockSeed(t *testing.T) {
	outPath := filepath.Join(t.TempDir(), "plan.json")
	_, _, err := runApp(t, "plan", "--output", outPath, writeMap(t, reachableMap))
	test.That(t, err, test.ShouldBeNil)

	var written planOutput
	test.That(t, json.Unmarshal([]byte(readFile(t, outPath)), &written), test.ShouldBeNil)
	test.That(t, written.Seed, test.ShouldBeGreaterThanOrEqualTo, 0)
}

func TestFlagsRepairMapSettings(t *testing.T) {
	mapPath := writeMap(t, `{
    "mapSize": [[-0.1, 0.1], [-0.1, 0.1], [0, 0.3]],
    "posStart": [0, 0, 0],
    "posGoal": [0, 0, 0.25],
    "listObstacles": [],
    "rrt": {"node_limit": 0}
}`)
	_, _, err := runApp(t, "validate", mapPath)
	test.That(t, err, test.ShouldNotBeNil)
	test.That(t, err.Error(), test.ShouldContainSubstring, "node_limit must be positive")

	out, _, err := runApp(t, "validate", "--node-limit", "100", mapPath)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, out, test.ShouldContainSubstring, "node_limit=100")

	_, _, err = runApp(t, "plan", "--seed", "3", "--node-limit", "100", mapPath)
	test.That(t, err, test.ShouldBeNil)
}

func TestPlanCommandRequiresMap(t *testing.T) {
	_, _, err := runApp(t, "plan")
	test.That(t, err, test.ShouldEqual, errMapRequired)
}

func TestBatchCommand(t *testing.T) {
	dir := t.TempDir()
	mapPath := writeMap(t, reachableMap)
	logPath := filepath.Join(dir, "testLog.log")
	metricsPath := filepath.Join(dir, "rrt.prom")

	out, _, err := runApp(t, "batch",
		"--runs", "3",
		"--seed", "9",
		"--log", logPath,
		"--db", filepath.Join(dir, "results.db"),
		"--metrics-file", metricsPath,
		mapPath,
	)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, out, test.ShouldContainSubstring, "every run reached the goal")
	test.That(t, out, test.ShouldContainSubstring, "3 (100.0%)")

	test.That(t, readFile(t, logPath), test.ShouldEqual, "New Test\n1/3 - Nodes: 2\n2/3 - Nodes: 2\n3/3 - Nodes: 2\n")
	test.That(t, readFile(t, metricsPath), test.ShouldContainSubstring, `rrt_runs_total{outcome="goal_reached"} 3`)
}

func TestBatchCommandRequiresRuns(t *testing.T) {
	_, _, err := runApp(t, "batch", writeMap(t, reachableMap))
	test.That(t, err, test.ShouldNotBeNil)
	test.That(t, err.Error(), test.ShouldContainSubstring, "runs")
}

func TestValidateCommand(t *testing.T) {
	out, _, err := runApp(t, "validate", writeMap(t, reachableMap))
	test.That(t, err, test.ShouldBeNil)
	test.That(t, out, test.ShouldContainSubstring, "is valid: 0 obstacles")

	badMap := `{
    "mapSize": [[0, 10], [0, 10], [0, 10]],
    "posStart": [1.5, 1.5, 1.5],
    "posGoal": [20, 5, 5],
    "listObstacles": [["block", [1, 1, 1], [1, 1, 1], [1, 0, 0, 1]]]
}`
	_, _, err = runApp(t, "validate", writeMap(t, badMap))
	test.That(t, err, test.ShouldNotBeNil)
	test.That(t, err.Error(), test.ShouldContainSubstring, "start point is inside obstacle block")
	test.That(t, err.Error(), test.ShouldContainSubstring, "goal point")
}

func TestDebugLogsToErrWriterAndFile(t *testing.T) {
	logPath := filepath.Join(t.TempDir(), "rrtplan.log")
	_, errOut, err := runApp(t, "--debug", "--log-file", logPath, "plan", "--seed", "2", writeMap(t, reachableMap))
	test.That(t, err, test.ShouldBeNil)
	test.That(t, errOut, test.ShouldContainSubstring, "goal reached")
	test.That(t, readFile(t, logPath), test.ShouldContainSubstring, "goal reached")
}

func TestPlotOutputs(t *testing.T) {
	dir := t.TempDir()
	mapPath := writeMap(t, reachableMap)

	planPlot := filepath.Join(dir, "plan.png")
	out, _, err := runApp(t, "plan", "--seed", "3", "--plot", planPlot, "--projection", "xz", mapPath)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, out, test.ShouldContainSubstring, "plot written to")
	_, err = os.Stat(planPlot)
	test.That(t, err, test.ShouldBeNil)

	_, _, err = runApp(t, "plan", "--projection", "zz", mapPath)
	test.That(t, err, test.ShouldNotBeNil)

	histogram := filepath.Join(dir, "nodes.svg")
	_, _, err = runApp(t, "batch", "--runs", "2", "--log", filepath.Join(dir, "runs.log"), "--histogram", histogram, mapPath)
	test.That(t, err, test.ShouldBeNil)
	_, err = os.Stat(histogram)
	test.That(t, err, test.ShouldBeNil)
}

func TestSchemaCommand(t *testing.T) {
	out, _, err := runApp(t, "schema")
	test.That(t, err, test.ShouldBeNil)
	var schema map[string]interface{}
	test.That(t, json.Unmarshal([]byte(out), &schema), test.ShouldBeNil)
	test.That(t, out, test.ShouldContainSubstring, "listObstacles")
}
