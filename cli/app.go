// Package cli contains the rrtplan command line: planning a single map, batch testing a map and
// validating map files.
package cli

import (
	"io"

	"github.com/urfave/cli/v2"

	"go.viam.com/rrtplan/benchmark"
)

const (
	// Global flags.
	debugFlag   = "debug"
	logFileFlag = "log-file"

	// Planner flags, shared by plan and batch.
	seedFlag             = "seed"
	quadrantsFlag        = "quadrants"
	quadrantsPerAxisFlag = "quadrants-per-axis"
	quadrantProbFlag     = "quadrant-prob"
	nodeLimitFlag        = "node-limit"
	nodeDistanceFlag     = "node-distance"
	goalDistanceFlag     = "goal-distance"
	safeDistanceFlag     = "safe-distance"
	legacyPartitionFlag  = "legacy-partition"
	legacyParallelFlag   = "legacy-parallel-check"

	// plan flags.
	outputFlag     = "output"
	plotFlag       = "plot"
	projectionFlag = "projection"

	// batch flags.
	runsFlag        = "runs"
	runLogFlag      = "log"
	dbFlag          = "db"
	metricsFileFlag = "metrics-file"
	histogramFlag   = "histogram"
)

func plannerFlags() []cli.Flag {
	return []cli.Flag{
		&cli.Int64Flag{
			Name:  seedFlag,
			Value: -1,
			Usage: "seed for the random source, negative seeds from the current time",
		},
		&cli.BoolFlag{
			Name:  quadrantsFlag,
			Usage: "bias sampling toward the partition cell that holds the goal",
		},
		&cli.IntFlag{
			Name:  quadrantsPerAxisFlag,
			Usage: "partition cells per axis when sampling with --quadrants",
		},
		&cli.Float64Flag{
			Name:  quadrantProbFlag,
			Usage: "probability of sampling inside the goal cell when sampling with --quadrants",
		},
		&cli.IntFlag{
			Name:  nodeLimitFlag,
			Usage: "maximum number of sampling attempts",
		},
		&cli.Float64Flag{
			Name:  nodeDistanceFlag,
			Usage: "maximum length of a new tree edge",
		},
		&cli.Float64Flag{
			Name:  goalDistanceFlag,
			Usage: "distance to the goal at which planning stops",
		},
		&cli.Float64Flag{
			Name:  safeDistanceFlag,
			Usage: "factor obstacle half sizes are scaled by before collision checks",
		},
		&cli.BoolFlag{
			Name:  legacyPartitionFlag,
			Usage: "use the diagonal-only quadrant partition of earlier releases",
		},
		&cli.BoolFlag{
			Name:  legacyParallelFlag,
			Usage: "treat axis-parallel edges outside an obstacle's slab as colliding, as earlier releases did",
		},
	}
}

// NewApp returns a new app with the CLI API, Writer set to out, and ErrWriter
// set to errOut.
func NewApp(out, errOut io.Writer) *cli.App {
	return &cli.App{
		Name:            "rrtplan",
		Usage:           "plan collision-free paths through box-obstacle maps",
		HideHelpCommand: true,
		Writer:          out,
		ErrWriter:       errOut,
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:    debugFlag,
				Aliases: []string{"vvv"},
				Usage:   "enable debug logging",
			},
			&cli.PathFlag{
				Name:  logFileFlag,
				Usage: "also write logs to `FILE`, rotated by size",
			},
		},
		Commands: []*cli.Command{
			{
				Name:      "plan",
				Usage:     "plan a path through a map and print it",
				ArgsUsage: "<map file>",
				Flags: append(plannerFlags(),
					&cli.PathFlag{
						Name:    outputFlag,
						Aliases: []string{"o"},
						Usage:   "write the plan as JSON to `FILE`",
					},
					&cli.PathFlag{
						Name:  plotFlag,
						Usage: "draw the tree and path to `FILE`, format chosen by extension",
					},
					&cli.StringFlag{
						Name:  projectionFlag,
						Value: "xy",
						Usage: "axes to draw with --plot: xy, xz or yz",
					},
				),
				Action: PlanAction,
			},
			{
				Name:      "batch",
				Usage:     "plan a map many times and report node statistics",
				ArgsUsage: "<map file>",
				Flags: append(plannerFlags(),
					&cli.IntFlag{
						Name:     runsFlag,
						Aliases:  []string{"n"},
						Required: true,
						Usage:    "number of runs",
					},
					&cli.PathFlag{
						Name:  runLogFlag,
						Value: benchmark.DefaultRunLogPath,
						Usage: "append one line per run to `FILE`",
					},
					&cli.PathFlag{
						Name:  dbFlag,
						Usage: "record every run in the sqlite database `FILE`",
					},
					&cli.PathFlag{
						Name:  metricsFileFlag,
						Usage: "write prometheus metrics for the batch to `FILE`",
					},
					&cli.PathFlag{
						Name:  histogramFlag,
						Usage: "draw a histogram of nodes explored per run to `FILE`",
					},
				),
				Action: BatchAction,
			},
			{
				Name:      "validate",
				Usage:     "check a map file and its planner settings",
				ArgsUsage: "<map file>",
				Flags:     plannerFlags(),
				Action:    ValidateAction,
			},
			{
				Name:   "schema",
				Usage:  "print the JSON schema of map files",
				Action: SchemaAction,
			},
		},
	}
}
