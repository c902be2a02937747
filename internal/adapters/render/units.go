package render

import "math"

const (
	mmPerInch     = 25.4
	pointsPerInch = 72.0
)

// MillimetersToInches converts a physical length.
func MillimetersToInches(mm float64) float64 {
	return mm / mmPerInch
}

// PixelsFor returns the pixel count of a physical length at dpi, rounded to
// the nearest pixel.
func PixelsFor(mm float64, dpi int) int {
	return int(math.Round(MillimetersToInches(mm) * float64(dpi)))
}

// pointsToPixels converts typographic points (1/72 in) to pixels at dpi.
func pointsToPixels(pt float64, dpi int) float64 {
	return pt * float64(dpi) / pointsPerInch
}
