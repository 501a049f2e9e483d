package cli

import (
	"fmt"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/urfave/cli/v2"
	"go.uber.org/multierr"

	"go.viam.com/rrtplan/benchmark"
	"go.viam.com/rrtplan/render"
)

// BatchAction plans a map --runs times in a row and reports how many nodes each run needed.
func BatchAction(c *cli.Context) (err error) {
	logger, closeLog := newLogger(c)
	defer func() {
		err = multierr.Combine(err, closeLog())
	}()

	_, problem, settings, err := loadMap(c)
	if err != nil {
		return err
	}

	opts := []benchmark.Option{}
	if path := c.Path(runLogFlag); path != "" {
		runLog := benchmark.NewRunLog(path)
		defer func() {
			err = multierr.Combine(err, runLog.Close())
		}()
		opts = append(opts, benchmark.WithRunLog(runLog))
	}
	if path := c.Path(dbFlag); path != "" {
		store, openErr := benchmark.OpenStore(path)
		if openErr != nil {
			return openErr
		}
		defer func() {
			err = multierr.Combine(err, store.Close())
		}()
		opts = append(opts, benchmark.WithStore(store))
	}
	var metrics *benchmark.Metrics
	if c.Path(metricsFileFlag) != "" {
		metrics = benchmark.NewMetrics()
		opts = append(opts, benchmark.WithMetrics(metrics))
	}

	runner := benchmark.NewRunner(logger.Sublogger("benchmark"), opts...)
	report, err := runner.Run(c.Context, problem, settings, c.Int(runsFlag), c.Int64(seedFlag))
	if report != nil {
		printf(c.App.Writer, "%s", summaryTable(report))
	}
	if err != nil {
		return err
	}

	if metrics != nil {
		if err := metrics.WriteTextfile(c.Path(metricsFileFlag)); err != nil {
			return err
		}
	}
	if out := c.Path(histogramFlag); out != "" {
		p, err := render.NodeHistogram(report.NodeCounts(), 0)
		if err != nil {
			return err
		}
		if err := render.Save(p, out); err != nil {
			return err
		}
	}

	summary := report.Summary()
	if summary.Successes == summary.Runs {
		successf(c.App.Writer, "batch %s: every run reached the goal", report.BatchID)
	} else {
		warningf(c.App.Writer, "batch %s: %d of %d runs hit the node limit",
			report.BatchID, summary.Runs-summary.Successes, summary.Runs)
	}
	return nil
}

func summaryTable(report *benchmark.Report) string {
	s := report.Summary()
	t := table.NewWriter()
	t.AppendHeader(table.Row{"Runs", "Reached goal", "Mean nodes", "Std dev", "Median", "P90", "Min", "Max"})
	t.AppendRow(table.Row{
		s.Runs,
		fmt.Sprintf("%d (%.1f%%)", s.Successes, 100*s.SuccessRate),
		fmt.Sprintf("%.1f", s.MeanNodes),
		fmt.Sprintf("%.1f", s.StdDevNodes),
		fmt.Sprintf("%.1f", s.MedianNodes),
		fmt.Sprintf("%.1f", s.P90Nodes),
		fmt.Sprintf("%.0f", s.MinNodes),
		fmt.Sprintf("%.0f", s.MaxNodes),
	})
	return t.Render()
}
