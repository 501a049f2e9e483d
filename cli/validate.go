package cli

import (
	"github.com/urfave/cli/v2"
)

// ValidateAction checks a map file, its planner settings and the planner flags.
func ValidateAction(c *cli.Context) error {
	cfg, problem, settings, err := loadMap(c)
	if err != nil {
		return err
	}
	start, goal := problem.Start, problem.Goal
	successf(c.App.Writer, "%s is valid: %d obstacles, start (%.3f, %.3f, %.3f), goal (%.3f, %.3f, %.3f)",
		c.Args().First(), len(cfg.Obstacles), start.X, start.Y, start.Z, goal.X, goal.Y, goal.Z)
	printf(c.App.Writer, "settings: node_limit=%d node_distance=%v goal_distance=%v safe_distance=%v quadrants=%t",
		settings.NodeLimit, settings.NodeDistance, settings.GoalDistance, settings.SafeDistance, settings.Quadrants)
	return nil
}
