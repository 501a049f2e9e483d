// Package render draws plans and batch results with gonum/plot. The output format follows the
// file extension passed to Save: png, svg, pdf and the other formats plot supports.
package render

import (
	"fmt"
	"image/color"
	"math"
	"strings"

	"github.com/golang/geo/r3"
	"github.com/lucasb-eyer/go-colorful"
	"github.com/pkg/errors"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"

	"go.viam.com/rrtplan/motionplan"
)

// DefaultSize is the width and height of saved images.
const DefaultSize = 6 * vg.Inch

var (
	// DefaultObstacleColor is the editor's default obstacle color.
	DefaultObstacleColor color.Color = colorful.Color{R: 1, G: 0, B: 0}

	treeColor  = color.Gray{Y: 160}
	pathColor  = colorful.Color{R: 0.1, G: 0.3, B: 0.9}
	startColor = colorful.Color{R: 0.1, G: 0.7, B: 0.2}
	goalColor  = colorful.Color{R: 0.9, G: 0.6, B: 0}
)

// Projection is the pair of axes a plan is drawn on.
type Projection int

// Supported projections.
const (
	ProjectXY Projection = iota
	ProjectXZ
	ProjectYZ
)

var axisNames = [3]string{"X", "Y", "Z"}

// ParseProjection parses "xy", "xz" or "yz".
func ParseProjection(s string) (Projection, error) {
	switch strings.ToLower(s) {
	case "xy":
		return ProjectXY, nil
	case "xz":
		return ProjectXZ, nil
	case "yz":
		return ProjectYZ, nil
	}
	return ProjectXY, errors.Errorf("unknown projection %q, expected xy, xz or yz", s)
}

func (p Projection) axes() (int, int) {
	switch p {
	case ProjectXZ:
		return 0, 2
	case ProjectYZ:
		return 1, 2
	case ProjectXY:
	}
	return 0, 1
}

func (p Projection) String() string {
	a, b := p.axes()
	return strings.ToLower(axisNames[a] + axisNames[b])
}

func (p Projection) project(v r3.Vector) plotter.XY {
	a, b := p.axes()
	return plotter.XY{X: component(v, a), Y: component(v, b)}
}

func component(v r3.Vector, i int) float64 {
	switch i {
	case 0:
		return v.X
	case 1:
		return v.Y
	default:
		return v.Z
	}
}

// EditorColor converts an editor [r, g, b, a] color with components in [0, 1]. Alpha is ignored
// and missing or short colors give DefaultObstacleColor.
func EditorColor(rgba []float64) color.Color {
	if len(rgba) < 3 {
		return DefaultObstacleColor
	}
	return colorful.Color{R: rgba[0], G: rgba[1], B: rgba[2]}.Clamped()
}

// Plan draws the projection of a plan: obstacles, every tree edge, the path, start and goal.
// colors is indexed like problem.Obstacles; missing entries use DefaultObstacleColor.
func Plan(problem *motionplan.Problem, result *motionplan.Plan, colors []color.Color, proj Projection) (*plot.Plot, error) {
	a, b := proj.axes()
	p := plot.New()
	p.Title.Text = fmt.Sprintf("RRT plan (%s), %d nodes", proj, result.NodesExplored())
	p.X.Label.Text = axisNames[a]
	p.Y.Label.Text = axisNames[b]
	p.X.Min, p.X.Max = problem.Domain[a].Min, problem.Domain[a].Max
	p.Y.Min, p.Y.Max = problem.Domain[b].Min, problem.Domain[b].Max

	for i, box := range problem.Obstacles {
		lo, hi := proj.project(box.Min()), proj.project(box.Max())
		poly, err := plotter.NewPolygon(plotter.XYs{lo, {X: hi.X, Y: lo.Y}, hi, {X: lo.X, Y: hi.Y}})
		if err != nil {
			return nil, err
		}
		poly.Color = DefaultObstacleColor
		if i < len(colors) && colors[i] != nil {
			poly.Color = colors[i]
		}
		p.Add(poly)
	}

	nodes := result.Nodes()
	positions := make(map[int]r3.Vector, len(nodes))
	for _, n := range nodes {
		positions[n.ID] = n.Position
	}
	for _, n := range nodes {
		if n.IsRoot() {
			continue
		}
		edge, err := plotter.NewLine(plotter.XYs{proj.project(positions[n.ParentID]), proj.project(n.Position)})
		if err != nil {
			return nil, err
		}
		edge.Color = treeColor
		edge.Width = vg.Points(0.5)
		p.Add(edge)
	}

	path := result.Path()
	pts := make(plotter.XYs, 0, len(path))
	for _, pt := range path {
		pts = append(pts, proj.project(pt))
	}
	pathLine, err := plotter.NewLine(pts)
	if err != nil {
		return nil, err
	}
	pathLine.Color = pathColor
	pathLine.Width = vg.Points(2)
	p.Add(pathLine)
	p.Legend.Add("path", pathLine)

	for _, marker := range []struct {
		name string
		at   r3.Vector
		clr  color.Color
	}{
		{"start", problem.Start, startColor},
		{"goal", problem.Goal, goalColor},
	} {
		s, err := plotter.NewScatter(plotter.XYs{proj.project(marker.at)})
		if err != nil {
			return nil, err
		}
		s.GlyphStyle = draw.GlyphStyle{Color: marker.clr, Radius: vg.Points(4), Shape: draw.CircleGlyph{}}
		p.Add(s)
		p.Legend.Add(marker.name, s)
	}
	return p, nil
}

// HistogramBins picks a bin count for n runs with Sturges' rule.
func HistogramBins(n int) int {
	if n <= 1 {
		return 1
	}
	return int(math.Ceil(math.Log2(float64(n)))) + 1
}

// NodeHistogram draws how many runs needed how many nodes. bins <= 0 picks a bin count from the
// number of runs.
func NodeHistogram(counts []float64, bins int) (*plot.Plot, error) {
	if len(counts) == 0 {
		return nil, errors.New("no runs to plot")
	}
	if bins <= 0 {
		bins = HistogramBins(len(counts))
	}
	p := plot.New()
	p.Title.Text = fmt.Sprintf("Nodes explored over %d runs", len(counts))
	p.X.Label.Text = "nodes"
	p.Y.Label.Text = "runs"
	h, err := plotter.NewHist(plotter.Values(counts), bins)
	if err != nil {
		return nil, err
	}
	h.FillColor = pathColor
	p.Add(h)
	return p, nil
}

// Save writes p to path in the format given by its extension.
func Save(p *plot.Plot, path string) error {
	return errors.Wrapf(p.Save(DefaultSize, DefaultSize, path), "cannot save plot to %q", path)
}
