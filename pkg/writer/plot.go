package writer

import (
	"fmt"
	"io"
	"strings"

	"github.com/guptarohit/asciigraph"
)

// PlotWriter draws every column of a table as a line on one terminal chart.
type PlotWriter struct {
	Height    int
	Width     int
	Precision uint
}

// NewPlotWriter creates a plot writer with the given chart size.
func NewPlotWriter(height, width int, precision uint) *PlotWriter {
	return &PlotWriter{Height: height, Width: width, Precision: precision}
}

var plotColors = []asciigraph.AnsiColor{
	asciigraph.Blue,
	asciigraph.Red,
	asciigraph.Green,
	asciigraph.Yellow,
	asciigraph.Magenta,
	asciigraph.Cyan,
}

// Write renders the chart. Empty columns are skipped.
func (w *PlotWriter) Write(t *Table, out io.Writer) error {
	if t == nil {
		return fmt.Errorf("nil table")
	}

	var data [][]float64
	var labels []string
	var colors []asciigraph.AnsiColor
	for i, col := range t.Columns {
		if len(col) == 0 {
			continue
		}
		data = append(data, col)
		if i < len(t.Headers) {
			labels = append(labels, t.Headers[i])
		}
		colors = append(colors, plotColors[len(colors)%len(plotColors)])
	}
	if len(data) == 0 {
		return fmt.Errorf("nothing to plot")
	}

	opts := []asciigraph.Option{
		asciigraph.Precision(w.Precision),
		asciigraph.Caption(strings.Join(labels, ", ")),
	}
	if w.Height > 0 {
		opts = append(opts, asciigraph.Height(w.Height))
	}
	if w.Width > 0 {
		opts = append(opts, asciigraph.Width(w.Width))
	}
	if len(data) > 1 {
		opts = append(opts, asciigraph.SeriesColors(colors...))
	}

	_, err := fmt.Fprintln(out, asciigraph.PlotMany(data, opts...))
	return err
}
