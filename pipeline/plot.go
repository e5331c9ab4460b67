package pipeline

import (
	"image/color"
	"math"
	"os"
	"path/filepath"

	"github.com/YuminosukeSato/scorecast/pkg/errors"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
)

// PlotPredictions writes a predicted-versus-actual scatter plot with the
// identity line to path. The image format follows the file extension
// (png, svg, pdf, ...).
func PlotPredictions(path string, actual, predicted []float64) error {
	if len(actual) == 0 {
		return errors.NewValueError("PlotPredictions", "no points to plot")
	}
	if len(actual) != len(predicted) {
		return errors.NewDimensionError("PlotPredictions", len(actual), len(predicted), 0)
	}

	p := plot.New()
	p.Title.Text = "Predicted vs actual score"
	p.X.Label.Text = "Actual score"
	p.Y.Label.Text = "Predicted score"
	p.Add(plotter.NewGrid())

	pts := make(plotter.XYs, len(actual))
	for i := range actual {
		pts[i].X = actual[i]
		pts[i].Y = predicted[i]
	}
	scatter, err := plotter.NewScatter(pts)
	if err != nil {
		return errors.Wrap(err, "build scatter")
	}
	scatter.GlyphStyle.Color = color.RGBA{R: 31, G: 119, B: 180, A: 255}
	scatter.GlyphStyle.Radius = vg.Points(3)

	lo := math.Min(floats.Min(actual), floats.Min(predicted))
	hi := math.Max(floats.Max(actual), floats.Max(predicted))
	identity, err := plotter.NewLine(plotter.XYs{{X: lo, Y: lo}, {X: hi, Y: hi}})
	if err != nil {
		return errors.Wrap(err, "build identity line")
	}
	identity.LineStyle.Color = color.RGBA{R: 214, G: 39, B: 40, A: 255}
	identity.LineStyle.Dashes = []vg.Length{vg.Points(4), vg.Points(4)}

	p.Add(scatter, identity)
	p.Legend.Add("test rows", scatter)
	p.Legend.Add("y = x", identity)
	p.Legend.Top = true
	p.Legend.Left = true

	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return errors.Wrapf(err, "create plot directory %s", dir)
		}
	}
	if err := p.Save(6*vg.Inch, 6*vg.Inch, path); err != nil {
		return errors.Wrapf(err, "save plot %s", path)
	}
	return nil
}
