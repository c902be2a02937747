// Package airfoil decodes airfoil coordinate files into a canonical shape.
//
// Two community layouts are supported:
//
//   - Selig: one perimeter traversal, trailing edge → upper surface →
//     leading edge → lower surface → trailing edge. The surface split is
//     inferred from the leading-edge point (0, 0).
//   - Lednicer: a point-count header followed by two separately listed
//     surfaces, each ordered leading edge → trailing edge.
//
// Both decoders produce the same Airfoil value. An Airfoil is immutable:
// its accessors hand out copies.
package airfoil

import (
	"math"
	"slices"
)

// Point is a 2D coordinate in chord-fraction units.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// IsOrigin reports whether p is exactly the leading edge (0, 0).
func (p Point) IsOrigin() bool {
	return p.X == 0.0 && p.Y == 0.0
}

// Bounds is the axis-aligned extent of a point sequence.
type Bounds struct {
	MinX, MaxX float64
	MinY, MaxY float64
}

// Airfoil is the canonical decoded shape.
//
//	upper:  leading edge → trailing edge
//	lower:  leading edge → trailing edge (shares the leading edge with upper)
//	points: trailing edge → upper → leading edge → lower → trailing edge
type Airfoil struct {
	name   string
	format Format
	upper  []Point
	lower  []Point
	points []Point
}

// New builds an Airfoil from already-ordered sequences. The slices are
// copied, so later changes by the caller do not leak into the value.
func New(name string, format Format, upper, lower, points []Point) Airfoil {
	return Airfoil{
		name:   name,
		format: format,
		upper:  slices.Clone(upper),
		lower:  slices.Clone(lower),
		points: slices.Clone(points),
	}
}

// Name returns the label from the first line of the source file.
func (a Airfoil) Name() string { return a.name }

// Format returns the layout the airfoil was decoded from.
func (a Airfoil) Format() Format { return a.format }

// Upper returns the upper surface, leading edge first.
func (a Airfoil) Upper() []Point { return slices.Clone(a.upper) }

// Lower returns the lower surface, leading edge first.
func (a Airfoil) Lower() []Point { return slices.Clone(a.lower) }

// Points returns the full perimeter traversal.
func (a Airfoil) Points() []Point { return slices.Clone(a.points) }

// NumUpper returns the number of upper surface points.
func (a Airfoil) NumUpper() int { return len(a.upper) }

// NumLower returns the number of lower surface points.
func (a Airfoil) NumLower() int { return len(a.lower) }

// NumPoints returns the number of perimeter points.
func (a Airfoil) NumPoints() int { return len(a.points) }

// LeadingEdge returns the first upper surface point. ok is false when the
// upper surface is empty.
func (a Airfoil) LeadingEdge() (p Point, ok bool) {
	if len(a.upper) == 0 {
		return Point{}, false
	}
	return a.upper[0], true
}

// Bounds returns the extent of the perimeter. The zero Bounds is returned
// for an airfoil without points.
func (a Airfoil) Bounds() Bounds {
	if len(a.points) == 0 {
		return Bounds{}
	}
	b := Bounds{
		MinX: math.Inf(1), MaxX: math.Inf(-1),
		MinY: math.Inf(1), MaxY: math.Inf(-1),
	}
	for _, p := range a.points {
		b.MinX = min(b.MinX, p.X)
		b.MaxX = max(b.MaxX, p.X)
		b.MinY = min(b.MinY, p.Y)
		b.MaxY = max(b.MaxY, p.Y)
	}
	return b
}

// Chord returns the distance between the leading and trailing edge along x.
func (a Airfoil) Chord() float64 {
	b := a.Bounds()
	return b.MaxX - b.MinX
}

// Thickness returns the overall y extent of the section.
func (a Airfoil) Thickness() float64 {
	b := a.Bounds()
	return b.MaxY - b.MinY
}
