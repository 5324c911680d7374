package chart

import (
	"fmt"
	"image/color"
	"math"

	"gonum.org/v1/plot/palette"
)

// ScalingMethod represents the method used for mapping values to colors
type ScalingMethod int

const (
	Linear ScalingMethod = iota
	Logarithmic
)

// heatmapStops are the colors of the heat map gradient (from fast to slow)
var heatmapStops = []color.RGBA{
	{0x0C, 0xD7, 0x9F, 0xff},
	{0xEB, 0xE5, 0x39, 0xff},
	{0xEB, 0xB8, 0x39, 0xff},
	{0xDB, 0xA3, 0x16, 0xff},
	{0xF0, 0x49, 0x6E, 0xff},
	{0xDA, 0x12, 0x3E, 0xff},
}

// gradient is a palette.ColorMap interpolating linearly between
// equally spaced color stops.
type gradient struct {
	stops  []color.RGBA
	min    float64
	max    float64
	alpha  float64
	method ScalingMethod
}

func newGradient(stops []color.RGBA, min, max float64, method ScalingMethod) *gradient {
	return &gradient{stops: stops, min: min, max: max, alpha: 1, method: method}
}

// scaleValue maps a value into [0, 1] based on the chosen method
func (g *gradient) scaleValue(v float64) float64 {
	switch g.method {
	case Logarithmic:
		return logScale(v, g.min, g.max)
	default: // Linear
		return (v - g.min) / (g.max - g.min)
	}
}

// logScale applies logarithmic scaling to a value
func logScale(val, minVal, maxVal float64) float64 {
	// Ensure all values are positive by shifting if necessary
	if minVal <= 0 {
		val -= minVal - 1
		maxVal -= minVal - 1
		minVal = 1
	}
	return (math.Log(val) - math.Log(minVal)) / (math.Log(maxVal) - math.Log(minVal))
}

func (g *gradient) At(v float64) (color.Color, error) {
	if math.IsNaN(v) {
		return nil, fmt.Errorf("cannot map NaN to a color")
	}
	tol := 1e-9 * (g.max - g.min)
	if v < g.min-tol {
		return nil, palette.ErrUnderflow
	}
	if v > g.max+tol {
		return nil, palette.ErrOverflow
	}
	return g.colorOf(g.scaleValue(v)), nil
}

// colorOf finds color for a scaled value in [0, 1]
func (g *gradient) colorOf(x float64) color.Color {
	x = math.Max(0, math.Min(1, x))
	pos := x * float64(len(g.stops)-1)
	idx := int(math.Floor(pos))
	if idx >= len(g.stops)-1 {
		idx = len(g.stops) - 2
	}
	frac := pos - float64(idx)
	c1, c2 := g.stops[idx], g.stops[idx+1]
	mix := func(a, b uint8) uint8 {
		return uint8(math.Round(float64(a) + frac*(float64(b)-float64(a))))
	}
	return color.NRGBA{
		R: mix(c1.R, c2.R),
		G: mix(c1.G, c2.G),
		B: mix(c1.B, c2.B),
		A: uint8(math.Round(g.alpha * 255)),
	}
}

func (g *gradient) Max() float64 {
	return g.max
}

func (g *gradient) SetMax(v float64) {
	g.max = v
}

func (g *gradient) Min() float64 {
	return g.min
}

func (g *gradient) SetMin(v float64) {
	g.min = v
}

func (g *gradient) Alpha() float64 {
	return g.alpha
}

func (g *gradient) SetAlpha(v float64) {
	g.alpha = v
}

// Palette creates a palette of n colors for values evenly covering
// the [min, max] range (heat maps map values to palette indices linearly)
func (g *gradient) Palette(n int) palette.Palette {
	colors := make([]color.Color, n)
	for i := range colors {
		if n == 1 {
			colors[i] = g.colorOf(0)
			continue
		}
		v := g.min + float64(i)/float64(n-1)*(g.max-g.min)
		colors[i] = g.colorOf(g.scaleValue(v))
	}
	return colorList(colors)
}

type colorList []color.Color

func (cl colorList) Colors() []color.Color {
	return cl
}
