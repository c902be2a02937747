package ports

import (
	"image"

	"github.com/corey/foilview/internal/domain/airfoil"
)

// Renderer draws an airfoil as a chord/thickness plot.
type Renderer interface {
	// Render returns an image sized from fig. The data area keeps an equal
	// aspect ratio, so one chord fraction spans the same number of pixels
	// on both axes.
	Render(a airfoil.Airfoil, fig Figure) (image.Image, error)
}

// Figure is the physical size and resolution of a rendered plot.
type Figure struct {
	HeightMM  float64 `yaml:"height_mm"`
	WidthMM   float64 `yaml:"width_mm"`
	DPI       int     `yaml:"dpi"`
	LineColor string  `yaml:"line_color"` // hex, e.g. "#b22222"
}

// DefaultFigure matches the size used for printed inspection sheets.
func DefaultFigure() Figure {
	return Figure{
		HeightMM:  100,
		WidthMM:   150,
		DPI:       300,
		LineColor: "#b22222",
	}
}
