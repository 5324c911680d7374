package chart

import (
	"fmt"
	"image/color"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/abderr03/On-Constrained-and-k-Shortest-Paths/aggregate"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
)

const (
	nsPerMicrosecond = 1000.0
	colorBarWidth    = 1.5 * vg.Inch
	heatmapColors    = 256
	colorBarTicks    = 6
)

var missingCellColor = color.RGBA{0x80, 0x80, 0x80, 0xff}

// HeatmapScale defines fixed color scale bounds in microseconds.
type HeatmapScale struct {
	Min    float64
	Max    float64
	Method ScalingMethod
}

// matrixGrid adapts aggregate.Matrix to plotter.GridXYZ. Columns are
// targets, rows are sources with the first source at the top.
// Values are converted from ns to µs.
type matrixGrid struct {
	mtx aggregate.Matrix
}

func (g matrixGrid) Dims() (c, r int) {
	return len(g.mtx.Targets), len(g.mtx.Sources)
}

func (g matrixGrid) Z(c, r int) float64 {
	return g.mtx.Values[len(g.mtx.Sources)-1-r][c] / nsPerMicrosecond
}

func (g matrixGrid) X(c int) float64 {
	return float64(c)
}

func (g matrixGrid) Y(r int) float64 {
	return float64(r)
}

func vertexTicks(ids []int, reversed bool) plot.ConstantTicks {
	ans := make(plot.ConstantTicks, len(ids))
	for i, id := range ids {
		pos := i
		if reversed {
			pos = len(ids) - 1 - i
		}
		ans[i] = plot.Tick{Value: float64(pos), Label: strconv.Itoa(id)}
	}
	return ans
}

func colorBarTickMarks(scale HeatmapScale) plot.ConstantTicks {
	ans := make(plot.ConstantTicks, colorBarTicks)
	step := (scale.Max - scale.Min) / float64(colorBarTicks-1)
	for i := range ans {
		v := scale.Min + float64(i)*step
		label := strconv.FormatFloat(v, 'f', -1, 64) + " µs"
		if i == 0 {
			label = "≤ " + label

		} else if i == colorBarTicks-1 {
			label = "≥ " + label
		}
		ans[i] = plot.Tick{Value: v, Label: label}
	}
	return ans
}

// Heatmap draws a source x target matrix of a single metric mean.
// The color scale is fixed to the provided bounds, values outside
// are drawn using the boundary colors, missing cells are gray.
func Heatmap(mtx aggregate.Matrix, scale HeatmapScale, path string) error {
	if len(mtx.Sources) == 0 || len(mtx.Targets) == 0 {
		return fmt.Errorf("failed to create heatmap of %s: no data for %s", mtx.Metric, mtx.Algorithm)
	}
	if scale.Max <= scale.Min {
		return fmt.Errorf("failed to create heatmap of %s: invalid scale bounds", mtx.Metric)
	}
	grad := newGradient(heatmapStops, scale.Min, scale.Max, scale.Method)
	pal := grad.Palette(heatmapColors)
	hm := plotter.NewHeatMap(matrixGrid{mtx: mtx}, pal)
	hm.Min = scale.Min
	hm.Max = scale.Max
	hm.Underflow = pal.Colors()[0]
	hm.Overflow = pal.Colors()[heatmapColors-1]
	hm.NaN = missingCellColor

	hp := plot.New()
	hp.Title.Text = fmt.Sprintf(
		"Heatmap of the %s (in µs) of %s", mtx.Metric.Title(), mtx.Algorithm.DisplayName())
	hp.X.Label.Text = "Target vertex"
	hp.Y.Label.Text = "Source vertex"
	hp.X.Tick.Marker = vertexTicks(mtx.Targets, false)
	hp.Y.Tick.Marker = vertexTicks(mtx.Sources, true)
	hp.Add(hm)

	cb := plot.New()
	cb.HideX()
	cb.Y.Padding = 0
	cb.Y.Label.Text = "Running time (in µs)"
	cb.Y.Tick.Marker = colorBarTickMarks(scale)
	cb.Add(&plotter.ColorBar{ColorMap: grad, Vertical: true, Colors: heatmapColors})

	format := strings.TrimPrefix(filepath.Ext(path), ".")
	canvas, err := draw.NewFormattedCanvas(chartWidth, chartHeight, format)
	if err != nil {
		return fmt.Errorf("failed to create heatmap of %s: %w", mtx.Metric, err)
	}
	dc := draw.New(canvas)
	hp.Draw(draw.Crop(dc, 0, -colorBarWidth, 0, 0))
	cb.Draw(draw.Crop(dc, chartWidth-colorBarWidth, 0, 0, 0))

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to save heatmap of %s: %w", mtx.Metric, err)
	}
	defer f.Close()
	if _, err := canvas.WriteTo(f); err != nil {
		return fmt.Errorf("failed to save heatmap of %s: %w", mtx.Metric, err)
	}
	return nil
}
