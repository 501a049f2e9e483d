package cli

import (
	"encoding/json"
	"fmt"
	"image/color"
	"os"

	"github.com/golang/geo/r3"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/pkg/errors"
	"github.com/samber/lo"
	"github.com/urfave/cli/v2"
	"go.uber.org/multierr"

	"go.viam.com/rrtplan/config"
	"go.viam.com/rrtplan/motionplan"
	"go.viam.com/rrtplan/render"
	"go.viam.com/rrtplan/utils"
)

// planOutput is the JSON written by plan --output.
type planOutput struct {
	Path           [][3]float64            `json:"path"`
	NodesExplored  int                     `json:"nodes_explored"`
	Attempts       int                     `json:"attempts"`
	GoalReached    bool                    `json:"goal_reached"`
	DistanceToGoal float64                 `json:"distance_to_goal"`
	Length         float64                 `json:"length"`
	Seed           int64                   `json:"seed"`
	Settings       *motionplan.RRTSettings `json:"settings"`
}

// PlanAction plans a single path through a map.
func PlanAction(c *cli.Context) (err error) {
	logger, closeLog := newLogger(c)
	defer func() {
		err = multierr.Combine(err, closeLog())
	}()

	cfg, problem, settings, err := loadMap(c)
	if err != nil {
		return err
	}
	proj, err := render.ParseProjection(c.String(projectionFlag))
	if err != nil {
		return err
	}

	rng, seed := utils.NewRandomSource(c.Int64(seedFlag))
	sampler := motionplan.NewSampler(problem.Domain, problem.Goal, settings, rng)
	plan := motionplan.NewRRTPlanner(problem, settings, sampler, logger.Sublogger("rrt")).Plan()

	printf(c.App.Writer, "%s", pathTable(plan.Path()))
	if plan.GoalReached() {
		successf(c.App.Writer, "goal reached after %d attempts, %d nodes explored, path length %.3f",
			plan.Attempts(), plan.NodesExplored(), plan.Length())
	} else {
		warningf(c.App.Writer, "node limit of %d reached with %d nodes explored, path ends %.3f from the goal",
			settings.NodeLimit, plan.NodesExplored(), plan.DistanceToGoal())
	}

	if out := c.Path(outputFlag); out != "" {
		if err := writePlan(out, plan, seed, settings); err != nil {
			return err
		}
		printf(c.App.Writer, "plan written to %s", out)
	}
	if out := c.Path(plotFlag); out != "" {
		colors := lo.Map(cfg.Obstacles, func(o config.ObstacleConfig, _ int) color.Color {
			return render.EditorColor(o.Color)
		})
		p, err := render.Plan(problem, plan, colors, proj)
		if err != nil {
			return err
		}
		if err := render.Save(p, out); err != nil {
			return err
		}
		printf(c.App.Writer, "plot written to %s", out)
	}
	return nil
}

func pathTable(path []r3.Vector) string {
	t := table.NewWriter()
	t.AppendHeader(table.Row{"#", "X", "Y", "Z"})
	for i, pt := range path {
		t.AppendRow(table.Row{
			i,
			fmt.Sprintf("%.3f", pt.X),
			fmt.Sprintf("%.3f", pt.Y),
			fmt.Sprintf("%.3f", pt.Z),
		})
	}
	return t.Render()
}

func writePlan(path string, plan *motionplan.Plan, seed int64, settings *motionplan.RRTSettings) error {
	out := planOutput{
		Path: lo.Map(plan.Path(), func(pt r3.Vector, _ int) [3]float64 {
			return [3]float64{pt.X, pt.Y, pt.Z}
		}),
		NodesExplored:  plan.NodesExplored(),
		Attempts:       plan.Attempts(),
		GoalReached:    plan.GoalReached(),
		DistanceToGoal: plan.DistanceToGoal(),
		Length:         plan.Length(),
		Seed:           seed,
		Settings:       settings,
	}
	data, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return err
	}
	//nolint:gosec
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return errors.Wrapf(err, "cannot write plan to %q", path)
	}
	return nil
}
