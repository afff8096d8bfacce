package main

import (
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"github.com/YuminosukeSato/hashftrl/core/frame"
	"github.com/YuminosukeSato/hashftrl/pkg/errors"
)

// plotImportances saves a bar chart of a feature importance frame.
func plotImportances(fi *frame.Frame, filename string) error {
	n := fi.NRows()
	names := make([]string, n)
	values := make(plotter.Values, n)
	for i := 0; i < n; i++ {
		names[i] = fi.Col(0).Text(i)
		values[i] = fi.Col(1).Float64(i)
	}

	p := plot.New()
	p.Title.Text = "Feature importance"
	p.Y.Label.Text = "importance"

	bars, err := plotter.NewBarChart(values, vg.Points(20))
	if err != nil {
		return errors.Wrap(err, "bar chart")
	}
	p.Add(bars)
	p.NominalX(names...)

	width := vg.Length(n)*0.5*vg.Inch + 2*vg.Inch
	if err := p.Save(width, 4*vg.Inch, filename); err != nil {
		return errors.Wrapf(err, "save %s", filename)
	}
	return nil
}
