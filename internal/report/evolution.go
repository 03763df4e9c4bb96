// Package report produces the human-facing outputs of a batch: evolution
// curves, the metric comparison figure, the summary table and the run
// manifest.
package report

import (
	"fmt"
	"image/color"
	"io"

	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

	"firespread/internal/batch"
	"firespread/internal/fire"
	"firespread/internal/render"
)

func chartColor(c color.RGBA) drawing.Color {
	return drawing.Color{R: c.R, G: c.G, B: c.B, A: c.A}
}

// EvolutionChart renders the empty, burning and burned counts over time as a
// PNG line chart.
func EvolutionChart(w io.Writer, title string, t batch.Trajectory) error {
	n := t.Len()
	if n == 0 {
		return fmt.Errorf("%w: empty trajectory", fire.ErrInvalidParameter)
	}
	xs := make([]float64, n)
	for i := range xs {
		xs[i] = float64(i)
	}
	yMax := t.Empty[0] + t.Burning[0] + t.Burned[0]
	if yMax <= 0 {
		yMax = 1
	}
	xMax := float64(n - 1)
	if xMax < 1 {
		xMax = 1
	}

	series := func(name string, ys []float64, state fire.CellState) chart.Series {
		return chart.ContinuousSeries{
			Name:    name,
			XValues: xs,
			YValues: ys,
			Style: chart.Style{
				StrokeColor: chartColor(render.Palette[state]),
				StrokeWidth: 2.5,
			},
		}
	}

	graph := chart.Chart{
		Title:  title,
		Width:  1000,
		Height: 600,
		Background: chart.Style{
			Padding: chart.Box{Top: 40, Left: 20, Right: 20, Bottom: 20},
		},
		XAxis: chart.XAxis{
			Name:  "Iteration",
			Range: &chart.ContinuousRange{Min: 0, Max: xMax},
			ValueFormatter: func(v interface{}) string {
				return fmt.Sprintf("%d", int(v.(float64)))
			},
		},
		YAxis: chart.YAxis{
			Name:  "Cells",
			Range: &chart.ContinuousRange{Min: 0, Max: yMax},
			ValueFormatter: func(v interface{}) string {
				return fmt.Sprintf("%.0f", v.(float64))
			},
		},
		Series: []chart.Series{
			series("Empty", t.Empty, fire.Empty),
			series("Burning", t.Burning, fire.Burning),
			series("Burned", t.Burned, fire.Burned),
		},
	}
	graph.Elements = []chart.Renderable{chart.Legend(&graph)}

	if err := graph.Render(chart.PNG, w); err != nil {
		return fmt.Errorf("rendering evolution chart: %w", err)
	}
	return nil
}
