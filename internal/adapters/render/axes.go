package render

import (
	"math"

	"github.com/corey/foilview/internal/domain/airfoil"
)

// Gridline counts and limits of the chord/thickness plot. The x range pads
// the chord by a tenth on each side; the y range spans ±0.3 chord.
const (
	xMajorTicks = 13
	xMinorTicks = 61
	yMajorTicks = 7
	yMinorTicks = 31

	xPadFraction   = 0.1
	yRangeFraction = 0.3
)

// Axes holds the data limits and gridline positions of a plot.
type Axes struct {
	XMin, XMax float64
	YMin, YMax float64

	XMajor, XMinor []float64
	YMajor, YMinor []float64
}

// NewAxes lays out the axes for an airfoil with the given extent.
// A degenerate chord (no points, or all points on one x) falls back to a
// unit chord so the plot still has a usable range.
func NewAxes(b airfoil.Bounds) Axes {
	le, te := b.MinX, b.MaxX
	chord := te - le
	if !(chord > 0) || math.IsInf(chord, 0) {
		if math.IsNaN(le) || math.IsInf(le, 0) {
			le = 0
		}
		te, chord = le+1, 1
	}

	ax := Axes{
		XMin: le - chord*xPadFraction,
		XMax: te + chord*xPadFraction,
		YMin: -yRangeFraction * chord,
		YMax: yRangeFraction * chord,
	}
	ax.XMajor = Linspace(ax.XMin, ax.XMax, xMajorTicks)
	ax.XMinor = Linspace(ax.XMin, ax.XMax, xMinorTicks)
	ax.YMajor = Linspace(ax.YMin, ax.YMax, yMajorTicks)
	ax.YMinor = Linspace(ax.YMin, ax.YMax, yMinorTicks)
	return ax
}

// Width returns the x data range.
func (ax Axes) Width() float64 { return ax.XMax - ax.XMin }

// Height returns the y data range.
func (ax Axes) Height() float64 { return ax.YMax - ax.YMin }

// Linspace returns n evenly spaced values over [start, stop], endpoints
// included. n < 1 yields nil; n == 1 yields start.
func Linspace(start, stop float64, n int) []float64 {
	if n < 1 {
		return nil
	}
	if n == 1 {
		return []float64{start}
	}
	out := make([]float64, n)
	step := (stop - start) / float64(n-1)
	for i := range out {
		out[i] = start + float64(i)*step
	}
	out[n-1] = stop
	return out
}
