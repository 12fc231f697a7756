package render

import (
	"fmt"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
)

// Figure wraps a plot with deferred error reporting. Drawing methods record
// the first failure instead of returning it, so figure-creation functions
// stay linear; Save surfaces the recorded error.
type Figure struct {
	plot   *plot.Plot
	width  vg.Length
	height vg.Length
	err    error
}

// NewFigure creates a figure with default dimensions and registers it as
// the current figure.
func NewFigure() *Figure {
	p := plot.New()
	scale := currentFontScale()
	if scale != 1.0 {
		p.Title.TextStyle.Font.Size *= vg.Length(scale)
		p.X.Label.TextStyle.Font.Size *= vg.Length(scale)
		p.Y.Label.TextStyle.Font.Size *= vg.Length(scale)
		p.X.Tick.Label.Font.Size *= vg.Length(scale)
		p.Y.Tick.Label.Font.Size *= vg.Length(scale)
	}
	f := &Figure{
		plot:   p,
		width:  6 * vg.Inch,
		height: 4 * vg.Inch,
	}
	setCurrent(f)
	return f
}

// Plot exposes the underlying plot for drawing not covered by the
// convenience methods.
func (f *Figure) Plot() *plot.Plot {
	return f.plot
}

// Err returns the first recorded drawing error, if any.
func (f *Figure) Err() error {
	return f.err
}

func (f *Figure) fail(err error) {
	if f.err == nil {
		f.err = err
	}
}

func xyPoints(xs, ys []float64) (plotter.XYs, error) {
	if len(xs) != len(ys) {
		return nil, fmt.Errorf("mismatched series lengths: %d vs %d", len(xs), len(ys))
	}
	pts := make(plotter.XYs, len(xs))
	for i := range xs {
		pts[i].X = xs[i]
		pts[i].Y = ys[i]
	}
	return pts, nil
}

// Line draws a line through the given points.
func (f *Figure) Line(xs, ys []float64) {
	pts, err := xyPoints(xs, ys)
	if err != nil {
		f.fail(fmt.Errorf("line: %w", err))
		return
	}
	ln, err := plotter.NewLine(pts)
	if err != nil {
		f.fail(fmt.Errorf("line: %w", err))
		return
	}
	f.plot.Add(ln)
}

// Scatter draws individual markers at the given points.
func (f *Figure) Scatter(xs, ys []float64) {
	pts, err := xyPoints(xs, ys)
	if err != nil {
		f.fail(fmt.Errorf("scatter: %w", err))
		return
	}
	sc, err := plotter.NewScatter(pts)
	if err != nil {
		f.fail(fmt.Errorf("scatter: %w", err))
		return
	}
	f.plot.Add(sc)
}

// HLine draws a horizontal rule at y spanning [xmin, xmax].
func (f *Figure) HLine(y, xmin, xmax float64) {
	f.Line([]float64{xmin, xmax}, []float64{y, y})
}

// Title sets the figure title.
func (f *Figure) Title(s string) {
	f.plot.Title.Text = s
}

// Labels sets the axis labels.
func (f *Figure) Labels(x, y string) {
	f.plot.X.Label.Text = x
	f.plot.Y.Label.Text = y
}
