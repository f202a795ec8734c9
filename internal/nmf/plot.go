package nmf

import (
	"fmt"

	"github.com/guptarohit/asciigraph"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"
)

// PlotSignatures saves a grouped bar chart of the signature profiles to
// path (format chosen by extension, e.g. .png).
func (r *Result) PlotSignatures(path string) error {
	p := plot.New()
	p.Title.Text = "Mutation Signatures"
	p.Y.Label.Text = "Contribution"
	p.X.Label.Text = "Mutation category"

	k := len(r.Components)
	barWidth := vg.Points(24 / float64(k))

	for i, name := range r.Components {
		vals := make(plotter.Values, len(r.Features))
		for j := range r.Features {
			vals[j] = r.Signatures.At(i, j)
		}

		bars, err := plotter.NewBarChart(vals, barWidth)
		if err != nil {
			return fmt.Errorf("signature bar chart: %w", err)
		}
		bars.LineStyle.Width = 0
		bars.Color = plotutil.Color(i)
		bars.Offset = barWidth * vg.Length(i-k/2)

		p.Add(bars)
		p.Legend.Add(name, bars)
	}

	p.Legend.Top = true
	p.NominalX(r.Features...)
	p.X.Tick.Label.Rotation = 0.785 // 45 degrees
	p.X.Tick.Label.XAlign = -1
	p.X.Tick.Label.YAlign = -0.5

	if err := p.Save(12*vg.Inch, 4*vg.Inch, path); err != nil {
		return fmt.Errorf("save signature plot: %w", err)
	}
	return nil
}

// Preview renders the signature profiles as a terminal plot, one colored
// series per signature.
func (r *Result) Preview() string {
	series := make([][]float64, len(r.Components))
	for i := range r.Components {
		row := make([]float64, len(r.Features))
		for j := range r.Features {
			row[j] = r.Signatures.At(i, j)
		}
		series[i] = row
	}

	return asciigraph.PlotMany(series,
		asciigraph.Height(10),
		asciigraph.Precision(2),
		asciigraph.Caption(fmt.Sprintf("signature profiles across %d categories", len(r.Features))),
		asciigraph.SeriesColors(
			asciigraph.Red,
			asciigraph.Yellow,
			asciigraph.Green,
			asciigraph.Blue,
			asciigraph.Cyan,
			asciigraph.BlueViolet,
			asciigraph.Brown,
			asciigraph.Gray,
			asciigraph.Orange,
			asciigraph.Olive,
		))
}
