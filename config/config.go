// Package config reads planning maps from disk, validates them on behalf of the planner, and
// projects them onto the planner's minimal problem description.
package config

import (
	"encoding/json"
	"fmt"

	"github.com/go-viper/mapstructure/v2"
	"github.com/golang/geo/r3"
	"github.com/pkg/errors"
	"go.uber.org/multierr"

	"go.viam.com/rrtplan/motionplan"
	"go.viam.com/rrtplan/spatialmath"
)

var axisNames = [3]string{"x", "y", "z"}

// MapConfig is a planning map as written by the map editor: domain bounds, start, goal and box
// obstacles, plus optional planner attributes.
type MapConfig struct {
	MapSize   [][]float64      `json:"mapSize"`
	Start     []float64        `json:"posStart"`
	Goal      []float64        `json:"posGoal"`
	Obstacles []ObstacleConfig `json:"listObstacles"`
	// RRT holds planner setting overrides keyed by their json names, e.g. "node_limit".
	RRT map[string]interface{} `json:"rrt,omitempty"`
}

// ObstacleConfig is one editor obstacle. Position is the corner with the smallest coordinates,
// Size the full dimensions. Color is carried for display only.
type ObstacleConfig struct {
	ID       string    `json:"id"`
	Position []float64 `json:"position"`
	Size     []float64 `json:"size"`
	Color    []float64 `json:"color,omitempty"`
}

// UnmarshalJSON accepts both the editor's tuple form, [id, [x, y, z], [sx, sy, sz], [r, g, b, a]],
// and a plain object.
func (o *ObstacleConfig) UnmarshalJSON(data []byte) error {
	var tuple []json.RawMessage
	if err := json.Unmarshal(data, &tuple); err != nil {
		type plain ObstacleConfig
		var p plain
		if err := json.Unmarshal(data, &p); err != nil {
			return errors.Wrap(err, "obstacle must be a [id, position, size, color] list or an object")
		}
		*o = ObstacleConfig(p)
		return nil
	}
	if len(tuple) < 3 || len(tuple) > 4 {
		return errors.Errorf("obstacle list must have 3 or 4 elements, got %d", len(tuple))
	}

	var id interface{}
	if err := json.Unmarshal(tuple[0], &id); err != nil {
		return errors.Wrap(err, "obstacle id")
	}
	if id != nil {
		o.ID = fmt.Sprint(id)
	}
	if err := json.Unmarshal(tuple[1], &o.Position); err != nil {
		return errors.Wrap(err, "obstacle position")
	}
	if err := json.Unmarshal(tuple[2], &o.Size); err != nil {
		return errors.Wrap(err, "obstacle size")
	}
	if len(tuple) == 4 {
		if err := json.Unmarshal(tuple[3], &o.Color); err != nil {
			return errors.Wrap(err, "obstacle color")
		}
	}
	return nil
}

// Validate ensures the map is something the planner can work with and returns every problem
// found, so the user can fix them all at once.
func (c *MapConfig) Validate() error {
	errs := c.validateProblem()
	settings, err := c.Settings()
	if err != nil {
		return multierr.Append(errs, err)
	}
	return multierr.Append(errs, errors.Wrap(settings.Validate(), "rrt"))
}

func (c *MapConfig) validateProblem() error {
	var errs error

	domain, err := c.domain()
	errs = multierr.Append(errs, err)

	start, startErr := vectorField("posStart", "start position", c.Start)
	errs = multierr.Append(errs, startErr)
	goal, goalErr := vectorField("posGoal", "goal position", c.Goal)
	errs = multierr.Append(errs, goalErr)

	if err == nil {
		if startErr == nil && !domain.Contains(start) {
			errs = multierr.Append(errs, newOutOfBoundsError("start", start, domain))
		}
		if goalErr == nil && !domain.Contains(goal) {
			errs = multierr.Append(errs, newOutOfBoundsError("goal", goal, domain))
		}
	}

	for idx, o := range c.Obstacles {
		box, err := o.box(fmt.Sprintf("listObstacles.%d", idx))
		if err != nil {
			errs = multierr.Append(errs, err)
			continue
		}
		if startErr == nil && box.ContainsPoint(start) {
			errs = multierr.Append(errs, newInsideObstacleError("start", o.name(idx)))
		}
		if goalErr == nil && box.ContainsPoint(goal) {
			errs = multierr.Append(errs, newInsideObstacleError("goal", o.name(idx)))
		}
	}

	return errs
}

// ValidateProblem checks everything Validate does except the planner settings' values, which
// callers may still override. The rrt attributes must decode.
func (c *MapConfig) ValidateProblem() error {
	errs := c.validateProblem()
	if _, err := c.Settings(); err != nil {
		errs = multierr.Append(errs, err)
	}
	return errs
}

// Settings returns the default planner settings overridden by the map's rrt attributes.
func (c *MapConfig) Settings() (*motionplan.RRTSettings, error) {
	settings := motionplan.NewDefaultRRTSettings()
	if len(c.RRT) == 0 {
		return settings, nil
	}
	if err := DecodeSettings(c.RRT, settings); err != nil {
		return nil, err
	}
	return settings, nil
}

// DecodeSettings overlays attrs onto settings. Unknown keys are an error.
func DecodeSettings(attrs map[string]interface{}, settings *motionplan.RRTSettings) error {
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           settings,
		TagName:          "mapstructure",
		ErrorUnused:      true,
		WeaklyTypedInput: true,
	})
	if err != nil {
		return err
	}
	return errors.Wrap(decoder.Decode(attrs), "rrt")
}

// Problem projects the map onto the planner's input. Obstacles are converted from editor corner
// form into center and half size. Call Validate first; Problem only reports what stops it from
// building the projection.
func (c *MapConfig) Problem() (*motionplan.Problem, error) {
	domain, err := c.domain()
	if err != nil {
		return nil, err
	}
	start, err := vectorField("posStart", "start position", c.Start)
	if err != nil {
		return nil, err
	}
	goal, err := vectorField("posGoal", "goal position", c.Goal)
	if err != nil {
		return nil, err
	}
	obstacles := make([]spatialmath.Box, 0, len(c.Obstacles))
	for idx, o := range c.Obstacles {
		box, err := o.box(fmt.Sprintf("listObstacles.%d", idx))
		if err != nil {
			return nil, err
		}
		obstacles = append(obstacles, box)
	}
	return &motionplan.Problem{
		Domain:    domain,
		Start:     start,
		Goal:      goal,
		Obstacles: obstacles,
	}, nil
}

func (c *MapConfig) domain() (spatialmath.Domain, error) {
	var domain spatialmath.Domain
	if len(c.MapSize) != 3 {
		return domain, newFieldRequiredError("mapSize", "three [min, max] pairs")
	}
	var errs error
	for i, bounds := range c.MapSize {
		if len(bounds) != 2 {
			errs = multierr.Append(errs, errors.Errorf("mapSize.%s: expected [min, max], got %v", axisNames[i], bounds))
			continue
		}
		domain[i] = spatialmath.NewInterval(bounds[0], bounds[1])
		if !domain[i].Valid() {
			errs = multierr.Append(errs, errors.Errorf("mapSize.%s: min (%v) must be less than max (%v)",
				axisNames[i], bounds[0], bounds[1]))
		}
	}
	return domain, errs
}

func (o ObstacleConfig) name(idx int) string {
	if o.ID != "" {
		return o.ID
	}
	return fmt.Sprintf("#%d", idx)
}

func (o ObstacleConfig) box(path string) (spatialmath.Box, error) {
	pos, err := vectorField(path+".position", "obstacle position", o.Position)
	if err != nil {
		return spatialmath.Box{}, err
	}
	size, err := vectorField(path+".size", "obstacle size", o.Size)
	if err != nil {
		return spatialmath.Box{}, err
	}
	box, err := spatialmath.NewBoxFromCorner(pos, size)
	if err != nil {
		return spatialmath.Box{}, errors.Wrap(err, path)
	}
	return box, nil
}

func vectorField(path, what string, v []float64) (r3.Vector, error) {
	if len(v) == 0 {
		return r3.Vector{}, newFieldRequiredError(path, what)
	}
	if len(v) != 3 {
		return r3.Vector{}, errors.Errorf("%s: %s must have 3 coordinates, got %d", path, what, len(v))
	}
	return r3.Vector{X: v[0], Y: v[1], Z: v[2]}, nil
}
