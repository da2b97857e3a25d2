package report

import (
	"fmt"
	"strconv"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"

	"github.com/quantastica/qubench/harness"
)

// WriteChart renders the table as a latency comparison chart and writes
// a PNG to path, overwriting any previous artifact. The x axis is the
// qubit count with a tick every second value; the y axis is log-scale
// latency in milliseconds; one line per backend, legend in column
// insertion order.
func WriteChart(path string, table *harness.Table) error {
	cols := table.Columns()
	if len(cols) == 0 {
		return fmt.Errorf("no results to plot")
	}

	p := plot.New()
	p.Title.Text = "QFT"
	p.X.Label.Text = "Qubits"
	p.Y.Label.Text = "Time (ms)"
	p.Y.Scale = plot.LogScale{}
	p.Y.Tick.Marker = plot.LogTicks{Prec: -1}
	p.X.Tick.Marker = plot.ConstantTicks(qubitTicks(table.From, table.To))
	p.Add(plotter.NewGrid())
	p.Legend.Top = true
	p.Legend.Left = true

	rows := table.Rows()

	for i, label := range cols {
		inLegend := false

		for _, seg := range segments(rows, label) {
			line, err := plotter.NewLine(seg)
			if err != nil {
				return fmt.Errorf("line for %s: %w", label, err)
			}

			line.LineStyle.Width = vg.Points(1.5)
			line.LineStyle.Color = plotutil.Color(i)

			p.Add(line)

			if !inLegend {
				p.Legend.Add(label, line)
				inLegend = true
			}
		}
	}

	if err := p.Save(8*vg.Inch, 6*vg.Inch, path); err != nil {
		return fmt.Errorf("save chart: %w", err)
	}

	return nil
}

// qubitTicks labels every second qubit count on the x axis.
func qubitTicks(from, to int) []plot.Tick {
	ticks := make([]plot.Tick, 0, (to-from)/2+1)

	for n := from; n <= to; n += 2 {
		ticks = append(ticks, plot.Tick{
			Value: float64(n),
			Label: strconv.Itoa(n),
		})
	}

	return ticks
}

// segments splits a column into contiguous runs of available cells so a
// missing value breaks the line instead of being interpolated across.
func segments(rows []harness.Row, label string) []plotter.XYs {
	var segs []plotter.XYs
	var cur plotter.XYs

	for _, row := range rows {
		m := row.Cells[label]
		if !m.OK {
			if len(cur) > 0 {
				segs = append(segs, cur)
				cur = nil
			}

			continue
		}

		cur = append(cur, plotter.XY{X: float64(row.Qubits), Y: m.Millis})
	}

	if len(cur) > 0 {
		segs = append(segs, cur)
	}

	return segs
}
