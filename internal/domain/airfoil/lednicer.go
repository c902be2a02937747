package airfoil

import (
	"fmt"
	"slices"
	"strconv"
	"strings"
	"unicode"
)

// Lednicer layout, 0-based line indexes:
//
//	0              name
//	1              nUpper nLower
//	2              separator
//	3 ..           nUpper upper points
//	3+nUpper       separator
//	4+nUpper ..    nLower lower points
const lednicerFirstPoint = 3

// ParseLednicer reads a Lednicer-style coordinate file.
func ParseLednicer(path string, opts ...Option) (Airfoil, error) {
	data, err := readFile(path)
	if err != nil {
		return Airfoil{}, err
	}
	return DecodeLednicer(path, data, opts...)
}

// DecodeLednicer decodes Lednicer-style text. source only labels errors.
//
// The first lower point repeats the leading edge and is left out of the
// perimeter. By default that duplicate is trusted; WithStrictLeadingEdge
// turns a mismatch into a ParseError.
func DecodeLednicer(source string, data []byte, opts ...Option) (Airfoil, error) {
	o := newOptions(opts)

	lines := splitLines(data)
	name, err := readName(source, lines)
	if err != nil {
		return Airfoil{}, err
	}
	if len(lines) < 2 {
		return Airfoil{}, &ParseError{Path: source, Line: 2, Msg: "missing point count line"}
	}

	nUpper, nLower, err := parseCounts(source, lines)
	if err != nil {
		return Airfoil{}, err
	}

	lowerStart := lednicerFirstPoint + nUpper + 1
	if need := lowerStart + nLower; nUpper > len(lines) || nLower > len(lines) || len(lines) < need {
		msg := fmt.Sprintf("file has %d lines, point counts %d+%d need %d", len(lines), nUpper, nLower, need)
		return Airfoil{}, &ParseError{Path: source, Msg: msg}
	}

	upper, err := parseRun(source, lines, lednicerFirstPoint, nUpper)
	if err != nil {
		return Airfoil{}, err
	}
	lower, err := parseRun(source, lines, lowerStart, nLower)
	if err != nil {
		return Airfoil{}, err
	}

	if o.strictLeadingEdge {
		if len(upper) == 0 || len(lower) == 0 || upper[0] != lower[0] {
			return Airfoil{}, errorf(source, lowerStart, nil,
				"lower surface does not start at the upper leading edge")
		}
	}

	points := slices.Clone(upper)
	slices.Reverse(points)
	if len(lower) > 0 {
		points = append(points, lower[1:]...)
	}

	return Airfoil{
		name:   name,
		format: FormatLednicer,
		upper:  upper,
		lower:  lower,
		points: points,
	}, nil
}

// parseCounts reads nUpper and nLower from line 2. Non-digit characters
// such as the trailing "." in "61." are stripped before conversion.
func parseCounts(source string, lines []string) (nUpper, nLower int, err error) {
	const idx = 1
	fields := strings.Fields(lines[idx])
	if len(fields) < 2 {
		return 0, 0, errorf(source, idx, nil, "expected two point counts, got %d field(s)", len(fields))
	}
	counts := [2]int{}
	for i := range counts {
		digits := stripNonDigits(fields[i])
		n, convErr := strconv.Atoi(digits)
		if convErr != nil {
			return 0, 0, errorf(source, idx, convErr, "invalid point count %q", fields[i])
		}
		counts[i] = n
	}
	return counts[0], counts[1], nil
}

func stripNonDigits(s string) string {
	return strings.Map(func(r rune) rune {
		if r > unicode.MaxASCII || !unicode.IsDigit(r) {
			return -1
		}
		return r
	}, s)
}

// parseRun decodes n consecutive coordinate lines starting at start.
func parseRun(source string, lines []string, start, n int) ([]Point, error) {
	pts := make([]Point, 0, n)
	for idx := start; idx < start+n; idx++ {
		p, err := parsePoint(source, lines, idx)
		if err != nil {
			return nil, err
		}
		pts = append(pts, p)
	}
	return pts, nil
}
