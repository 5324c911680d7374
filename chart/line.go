package chart

import (
	"fmt"
	"image/color"
	"math"
	"strings"

	"github.com/abderr03/On-Constrained-and-k-Shortest-Paths/aggregate"
	"github.com/abderr03/On-Constrained-and-k-Shortest-Paths/algo"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
)

const (
	chartWidth  = 15 * vg.Inch
	chartHeight = 7 * vg.Inch
	bandAlpha   = 0x40
)

type seriesStyle struct {
	color color.RGBA
	shape draw.GlyphDrawer
}

// series styles are assigned to algorithms by their order
var seriesStyles = []seriesStyle{
	{color.RGBA{0, 128, 0, 255}, draw.CircleGlyph{}},      // green
	{color.RGBA{255, 0, 0, 255}, draw.SquareGlyph{}},      // red
	{color.RGBA{173, 255, 47, 255}, draw.TriangleGlyph{}}, // greenyellow
	{color.RGBA{255, 140, 0, 255}, draw.CrossGlyph{}},     // darkorange
}

func styleOf(i int) seriesStyle {
	return seriesStyles[i%len(seriesStyles)]
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

func algorithmsOf(points []aggregate.LinePoint) []algo.Algorithm {
	ans := make([]algo.Algorithm, 0, 2)
	for _, p := range points {
		if len(ans) == 0 || ans[len(ans)-1] != p.Algorithm {
			ans = append(ans, p.Algorithm)
		}
	}
	return ans
}

// LineChart draws the metric mean (y, log scale) against the path weight (x),
// one series per algorithm with a shaded confidence band. The points
// are expected to be sorted by algorithm and path weight
// (as produced by aggregate.Line).
func LineChart(points []aggregate.LinePoint, metric aggregate.Metric, confidenceLevel float64, path string) error {
	// log scale cannot handle non-positive values, so the band is cut
	// at a half of the smallest positive mean
	floor := math.Inf(1)
	for _, pt := range points {
		if m := pt.Stat(metric).Mean; m > 0 && m < floor {
			floor = m
		}
	}
	if math.IsInf(floor, 1) {
		return fmt.Errorf("failed to create line chart of %s: no positive values to plot", metric)
	}
	floor /= 2

	p := plot.New()
	p.Title.Text = fmt.Sprintf(
		"Average %s (in ns) of the algorithms (with %.0f%% confidence intervals)",
		metric.Title(), confidenceLevel*100)
	p.X.Label.Text = "Path weight"
	p.Y.Label.Text = fmt.Sprintf("%s (in ns)", capitalize(metric.Title()))
	p.Y.Scale = plot.LogScale{}
	p.Y.Tick.Marker = plot.LogTicks{Prec: -1}
	p.Legend.Top = false
	p.Legend.Left = false
	p.Add(plotter.NewGrid())

	for i, alg := range algorithmsOf(points) {
		style := styleOf(i)
		series := aggregate.LineSeries(points, alg)
		pts := make(plotter.XYs, 0, len(series))
		upper := make(plotter.XYs, 0, len(series))
		lower := make(plotter.XYs, 0, len(series))
		for _, pt := range series {
			stat := pt.Stat(metric)
			if stat.Mean <= 0 {
				continue
			}
			x := float64(pt.PathWeight)
			pts = append(pts, plotter.XY{X: x, Y: stat.Mean})
			upper = append(upper, plotter.XY{X: x, Y: stat.High})
			lower = append(lower, plotter.XY{X: x, Y: math.Max(stat.Low, floor)})
		}
		if len(pts) == 0 {
			continue
		}
		if len(pts) > 1 {
			band := make(plotter.XYs, 0, 2*len(upper))
			band = append(band, upper...)
			for j := len(lower) - 1; j >= 0; j-- {
				band = append(band, lower[j])
			}
			poly, err := plotter.NewPolygon(band)
			if err != nil {
				return fmt.Errorf("failed to create line chart of %s: %w", metric, err)
			}
			poly.Color = color.NRGBA{R: style.color.R, G: style.color.G, B: style.color.B, A: bandAlpha}
			poly.LineStyle.Width = 0
			p.Add(poly)
		}
		line, scatter, err := plotter.NewLinePoints(pts)
		if err != nil {
			return fmt.Errorf("failed to create line chart of %s: %w", metric, err)
		}
		line.Color = style.color
		line.Width = vg.Points(1.5)
		scatter.GlyphStyle.Color = style.color
		scatter.GlyphStyle.Shape = style.shape
		scatter.GlyphStyle.Radius = vg.Points(3)
		p.Add(line, scatter)
		p.Legend.Add(alg.DisplayName(), line, scatter)
	}

	if err := p.Save(chartWidth, chartHeight, path); err != nil {
		return fmt.Errorf("failed to save line chart of %s: %w", metric, err)
	}
	return nil
}
