package airfoil

import (
	"strconv"
	"strings"
)

var newlines = strings.NewReplacer("\r\n", "\n", "\r", "\n")

// splitLines splits text on any of "\n", "\r\n" or a lone "\r" and trims
// each line. Trailing blank lines are dropped.
func splitLines(data []byte) []string {
	lines := strings.Split(newlines.Replace(string(data)), "\n")
	for i := range lines {
		lines[i] = strings.TrimSpace(lines[i])
	}
	for len(lines) > 0 && lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	return lines
}

// readName returns the trimmed first line. Empty input and a blank first
// line are ParseErrors.
func readName(source string, lines []string) (string, error) {
	if len(lines) == 0 {
		return "", &ParseError{Path: source, Msg: "empty file, missing name line"}
	}
	if lines[0] == "" {
		return "", errorf(source, 0, nil, "missing name line")
	}
	return lines[0], nil
}

// parsePoint decodes the first two whitespace-separated fields of
// lines[idx]. Extra fields are ignored.
func parsePoint(source string, lines []string, idx int) (Point, error) {
	fields := strings.Fields(lines[idx])
	if len(fields) < 2 {
		return Point{}, errorf(source, idx, nil, "expected two coordinates, got %d field(s)", len(fields))
	}
	x, err := strconv.ParseFloat(fields[0], 64)
	if err != nil {
		return Point{}, errorf(source, idx, err, "invalid x coordinate %q", fields[0])
	}
	y, err := strconv.ParseFloat(fields[1], 64)
	if err != nil {
		return Point{}, errorf(source, idx, err, "invalid y coordinate %q", fields[1])
	}
	return Point{X: x, Y: y}, nil
}
