package report

import (
	"fmt"
	"io"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
	"gonum.org/v1/plot/vg/vgimg"

	"firespread/internal/batch"
	"firespread/internal/fire"
)

// ComparisonChart draws the mean spread rate and mean extinction time of each
// parameter set as two bar charts side by side and writes the PNG to w.
func ComparisonChart(w io.Writer, rows []batch.Summary) error {
	if len(rows) == 0 {
		return fmt.Errorf("%w: nothing to compare", fire.ErrInvalidParameter)
	}
	labels := make([]string, len(rows))
	spread := make(plotter.Values, len(rows))
	ext := make(plotter.Values, len(rows))
	for i, r := range rows {
		labels[i] = r.Label
		spread[i] = r.SpreadRate
		ext[i] = r.ExtinctionTime
	}

	left, err := barPlot("Spread rate", "Burned cells per iteration", labels, spread, 0)
	if err != nil {
		return err
	}
	right, err := barPlot("Extinction time", "Iterations", labels, ext, 1)
	if err != nil {
		return err
	}

	img := vgimg.New(12*vg.Inch, 6*vg.Inch)
	dc := draw.New(img)
	tiles := draw.Tiles{
		Rows:      1,
		Cols:      2,
		PadX:      vg.Millimeter * 4,
		PadY:      vg.Millimeter * 4,
		PadTop:    vg.Millimeter * 2,
		PadBottom: vg.Millimeter * 2,
		PadLeft:   vg.Millimeter * 2,
		PadRight:  vg.Millimeter * 2,
	}
	canvases := plot.Align([][]*plot.Plot{{left, right}}, tiles, dc)
	left.Draw(canvases[0][0])
	right.Draw(canvases[0][1])

	if _, err := (vgimg.PngCanvas{Canvas: img}).WriteTo(w); err != nil {
		return fmt.Errorf("writing comparison chart: %w", err)
	}
	return nil
}

func barPlot(title, ylabel string, labels []string, values plotter.Values, colour int) (*plot.Plot, error) {
	p := plot.New()
	p.Title.Text = title
	p.Y.Label.Text = ylabel
	p.Y.Min = 0

	bars, err := plotter.NewBarChart(values, vg.Points(28))
	if err != nil {
		return nil, fmt.Errorf("building %s bars: %w", title, err)
	}
	bars.Color = plotutil.Color(colour)
	bars.LineStyle.Width = 0
	p.Add(bars)
	p.NominalX(labels...)
	p.X.Tick.Label.Rotation = 0.35
	p.X.Tick.Label.XAlign = draw.XRight
	return p, nil
}
