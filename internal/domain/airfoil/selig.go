package airfoil

import "slices"

// side is the surface a Selig point is assigned to during the forward pass.
type side int

const (
	sideUpper side = iota
	sideLower
)

// ParseSelig reads a Selig-style coordinate file.
func ParseSelig(path string) (Airfoil, error) {
	data, err := readFile(path)
	if err != nil {
		return Airfoil{}, err
	}
	return DecodeSelig(path, data)
}

// DecodeSelig decodes Selig-style text. source only labels errors.
//
// The points are one traversal starting at the trailing edge. Every point
// before the exact leading edge (0, 0) belongs to the upper surface, every
// point after it to the lower surface, and the leading edge to both. A file
// without an exact (0, 0) point is classified entirely as upper surface.
func DecodeSelig(source string, data []byte) (Airfoil, error) {
	lines := splitLines(data)
	name, err := readName(source, lines)
	if err != nil {
		return Airfoil{}, err
	}

	var upper, lower, points []Point
	state := sideUpper

	for idx := 1; idx < len(lines); idx++ {
		p, err := parsePoint(source, lines, idx)
		if err != nil {
			return Airfoil{}, err
		}
		points = append(points, p)

		switch {
		case p.IsOrigin():
			upper = append(upper, p)
			lower = append(lower, p)
			state = sideLower
		case state == sideUpper:
			upper = append(upper, p)
		default:
			lower = append(lower, p)
		}
	}

	// Upper was collected trailing edge first.
	slices.Reverse(upper)

	return Airfoil{
		name:   name,
		format: FormatSelig,
		upper:  upper,
		lower:  lower,
		points: points,
	}, nil
}
