// Package plotting is the rendering collaborator of the MolDesc-Toolkit:
// a gonum/plot-backed implementation of the chart and attribution-image
// surfaces consumed by the analysis services.  Rendering is a pure side
// effect — an image artifact on disk — and never feeds back into the
// pipeline.  The output format is inferred from the file extension
// (.png, .svg, .pdf).
package plotting

import (
	"fmt"
	"math"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"github.com/turtacn/MolDesc-Toolkit/pkg/errors"
	ctypes "github.com/turtacn/MolDesc-Toolkit/pkg/types/chem"
)

// Renderer renders charts and attribution images to files.
type Renderer struct {
	width  vg.Length
	height vg.Length
	bins   int
}

// NewRenderer constructs a Renderer with the given canvas size (inches) and
// default histogram bin count.
func NewRenderer(widthInches, heightInches float64, bins int) *Renderer {
	if widthInches <= 0 {
		widthInches = 8
	}
	if heightInches <= 0 {
		heightInches = 6
	}
	if bins <= 0 {
		bins = 20
	}
	return &Renderer{
		width:  vg.Length(widthInches) * vg.Inch,
		height: vg.Length(heightInches) * vg.Inch,
		bins:   bins,
	}
}

func (r *Renderer) save(p *plot.Plot, path string) error {
	if err := p.Save(r.width, r.height, path); err != nil {
		return errors.Wrap(err, errors.ErrCodePlotFailed, "failed to save plot to "+path)
	}
	return nil
}

// Scatter renders an XY scatter plot.
func (r *Renderer) Scatter(xs, ys []float64, xLabel, yLabel, title, path string) error {
	if len(xs) != len(ys) {
		return errors.Newf(errors.CodeShapeMismatch,
			"scatter needs equal series lengths, got %d and %d", len(xs), len(ys))
	}
	pts := make(plotter.XYs, len(xs))
	for i := range xs {
		pts[i].X = xs[i]
		pts[i].Y = ys[i]
	}

	p := plot.New()
	p.Title.Text = title
	p.X.Label.Text = xLabel
	p.Y.Label.Text = yLabel

	s, err := plotter.NewScatter(pts)
	if err != nil {
		return errors.Wrap(err, errors.ErrCodePlotFailed, "failed to build scatter plot")
	}
	p.Add(s, plotter.NewGrid())
	return r.save(p, path)
}

// Histogram renders a value histogram using the renderer's bin count.
func (r *Renderer) Histogram(values []float64, label, title, path string) error {
	if len(values) == 0 {
		return errors.New(errors.CodeInvalidParam, "histogram needs at least one value")
	}
	vals := make(plotter.Values, len(values))
	copy(vals, values)

	p := plot.New()
	p.Title.Text = title
	p.X.Label.Text = label
	p.Y.Label.Text = "count"

	h, err := plotter.NewHist(vals, r.bins)
	if err != nil {
		return errors.Wrap(err, errors.ErrCodePlotFailed, "failed to build histogram")
	}
	p.Add(h)
	return r.save(p, path)
}

// Correlation renders a scatter plot annotated with the Pearson correlation
// coefficient of the two series.
func (r *Renderer) Correlation(xs, ys []float64, xLabel, yLabel, path string) error {
	if len(xs) != len(ys) || len(xs) == 0 {
		return errors.Newf(errors.CodeShapeMismatch,
			"correlation needs equal non-empty series, got %d and %d", len(xs), len(ys))
	}
	title := fmt.Sprintf("%s vs %s (r = %.3f)", yLabel, xLabel, pearson(xs, ys))
	return r.Scatter(xs, ys, xLabel, yLabel, title, path)
}

// pearson computes the Pearson correlation coefficient of two equal-length
// series.  Returns 0 when either series has zero variance.
func pearson(xs, ys []float64) float64 {
	n := float64(len(xs))
	var mx, my float64
	for i := range xs {
		mx += xs[i]
		my += ys[i]
	}
	mx /= n
	my /= n

	var sxy, sxx, syy float64
	for i := range xs {
		dx := xs[i] - mx
		dy := ys[i] - my
		sxy += dx * dy
		sxx += dx * dx
		syy += dy * dy
	}
	if sxx == 0 || syy == 0 {
		return 0
	}
	return sxy / math.Sqrt(sxx*syy)
}

// AtomContributions renders a per-atom contribution bar chart: one bar per
// atom in index order, labelled "<symbol><index>", bar height equal to the
// signed contribution.  This is the 2-D rendition of an attribution map.
func (r *Renderer) AtomContributions(symbols []string, contributions ctypes.AttributionMap, title, path string) error {
	if len(symbols) == 0 {
		return errors.New(errors.CodeInvalidParam, "attribution rendering needs at least one atom")
	}

	vals := make(plotter.Values, len(symbols))
	labels := make([]string, len(symbols))
	for i, sym := range symbols {
		vals[i] = contributions[i]
		labels[i] = fmt.Sprintf("%s%d", sym, i)
	}

	p := plot.New()
	p.Title.Text = title
	p.Y.Label.Text = "contribution"

	bars, err := plotter.NewBarChart(vals, vg.Points(18))
	if err != nil {
		return errors.Wrap(err, errors.ErrCodePlotFailed, "failed to build attribution chart")
	}
	p.Add(bars)
	p.NominalX(labels...)
	return r.save(p, path)
}
