package cli

import (
	"github.com/pkg/errors"
	"github.com/urfave/cli/v2"

	"go.viam.com/rrtplan/config"
	"go.viam.com/rrtplan/logging"
	"go.viam.com/rrtplan/motionplan"
)

var errMapRequired = errors.New("a map file is required")

// newLogger builds the command's logger. Logs go to the app's error writer so they never mix
// with printed results, and additionally to --log-file when set.
func newLogger(c *cli.Context) (logging.Logger, func() error) {
	logger := logging.NewBlankLogger("rrtplan")
	level := logging.WARN
	if c.Bool(debugFlag) {
		level = logging.DEBUG
	}
	logger.SetLevel(level)
	logger.AddAppender(logging.NewWriterAppender(c.App.ErrWriter))

	closer := func() error { return nil }
	if path := c.Path(logFileFlag); path != "" {
		fa := logging.NewFileAppender(path, logging.FileAppenderConfig{})
		logger.AddAppender(fa)
		closer = fa.Close
	}
	return logger, closer
}

// loadMap reads and validates the map named by the first argument, then applies planner flag
// overrides to its settings. Settings values are only checked once the flags are applied.
func loadMap(c *cli.Context) (*config.MapConfig, *motionplan.Problem, *motionplan.RRTSettings, error) {
	path := c.Args().First()
	if path == "" {
		return nil, nil, nil, errMapRequired
	}
	cfg, err := config.Read(path)
	if err != nil {
		return nil, nil, nil, err
	}
	if err := cfg.ValidateProblem(); err != nil {
		return nil, nil, nil, errors.Wrapf(err, "invalid map %q", path)
	}
	problem, err := cfg.Problem()
	if err != nil {
		return nil, nil, nil, err
	}
	settings, err := cfg.Settings()
	if err != nil {
		return nil, nil, nil, err
	}
	applySettingFlags(c, settings)
	if err := settings.Validate(); err != nil {
		return nil, nil, nil, errors.Wrapf(err, "invalid planner settings for %q", path)
	}
	return cfg, problem, settings, nil
}

// applySettingFlags overrides settings with the planner flags the user set explicitly.
func applySettingFlags(c *cli.Context, settings *motionplan.RRTSettings) {
	if c.IsSet(quadrantsFlag) {
		settings.Quadrants = c.Bool(quadrantsFlag)
	}
	if c.IsSet(quadrantsPerAxisFlag) {
		settings.NumQuadrantsPerAxis = c.Int(quadrantsPerAxisFlag)
	}
	if c.IsSet(quadrantProbFlag) {
		settings.QuadrantProb = c.Float64(quadrantProbFlag)
	}
	if c.IsSet(nodeLimitFlag) {
		settings.NodeLimit = c.Int(nodeLimitFlag)
	}
	if c.IsSet(nodeDistanceFlag) {
		settings.NodeDistance = c.Float64(nodeDistanceFlag)
	}
	if c.IsSet(goalDistanceFlag) {
		settings.GoalDistance = c.Float64(goalDistanceFlag)
	}
	if c.IsSet(safeDistanceFlag) {
		settings.SafeDistance = c.Float64(safeDistanceFlag)
	}
	if c.IsSet(legacyPartitionFlag) {
		settings.LegacyQuadrantPartition = c.Bool(legacyPartitionFlag)
	}
	if c.IsSet(legacyParallelFlag) {
		settings.LegacyParallelAxisCheck = c.Bool(legacyParallelFlag)
	}
}
