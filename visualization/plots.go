// Package visualization renders training and evaluation charts with gonum/plot.
// The output format follows the file extension (.png, .svg, .pdf, ...).
package visualization

import (
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"

	"github.com/YuminosukeSato/fruitlogit/pkg/errors"
)

// Chart size.
var (
	Width  = 6 * vg.Inch
	Height = 4 * vg.Inch
)

// histogramBins splits [0, 1] probabilities.
const histogramBins = 20

// SaveLossCurve plots the per-epoch loss and writes it to path.
func SaveLossCurve(history []float64, path string) error {
	if len(history) == 0 {
		return errors.NewValueError("SaveLossCurve", "empty loss history")
	}

	p := plot.New()
	p.Title.Text = "Training loss"
	p.X.Label.Text = "Epoch"
	p.Y.Label.Text = "Binary log loss"

	pts := make(plotter.XYs, len(history))
	for i, loss := range history {
		pts[i].X = float64(i + 1)
		pts[i].Y = loss
	}
	line, err := plotter.NewLine(pts)
	if err != nil {
		return errors.Wrap(err, "SaveLossCurve")
	}
	line.LineStyle.Width = vg.Points(2)
	line.LineStyle.Color = plotutil.Color(0)
	p.Add(line, plotter.NewGrid())

	if err := p.Save(Width, Height, path); err != nil {
		return errors.Wrapf(err, "SaveLossCurve: saving %s", path)
	}
	return nil
}

// SaveProbabilityHistogram plots the predicted probabilities of cherries and
// of other fruit side by side, with a vertical line at the threshold.
func SaveProbabilityHistogram(cherry, other *mat.VecDense, threshold float64, path string) error {
	if cherry == nil || other == nil || cherry.Len() == 0 || other.Len() == 0 {
		return errors.NewValueError("SaveProbabilityHistogram", "empty probabilities")
	}

	p := plot.New()
	p.Title.Text = "Predicted cherry probability"
	p.X.Label.Text = "Probability"
	p.Y.Label.Text = "Samples"
	p.X.Min, p.X.Max = 0, 1

	series := []struct {
		name  string
		proba *mat.VecDense
	}{
		{"cherry", cherry},
		{"apple and grape", other},
	}
	for i, s := range series {
		values := make(plotter.Values, s.proba.Len())
		for j := range values {
			values[j] = s.proba.AtVec(j)
		}
		h, err := plotter.NewHist(values, histogramBins)
		if err != nil {
			return errors.Wrapf(err, "SaveProbabilityHistogram: %s", s.name)
		}
		h.FillColor = plotutil.Color(i)
		p.Add(h)
		p.Legend.Add(s.name, h)
	}

	limit := float64(max(cherry.Len(), other.Len()))
	cut, err := plotter.NewLine(plotter.XYs{{X: threshold, Y: 0}, {X: threshold, Y: limit}})
	if err != nil {
		return errors.Wrap(err, "SaveProbabilityHistogram")
	}
	cut.LineStyle.Dashes = []vg.Length{vg.Points(4), vg.Points(4)}
	p.Add(cut)
	p.Legend.Add("threshold", cut)

	if err := p.Save(Width, Height, path); err != nil {
		return errors.Wrapf(err, "SaveProbabilityHistogram: saving %s", path)
	}
	return nil
}
