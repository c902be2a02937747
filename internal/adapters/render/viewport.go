package render

import "fmt"

// Page margins around the data area, in typographic points. The left margin
// carries the y tick labels and the "thickness" label.
const (
	marginLeftPt   = 72
	marginRightPt  = 14
	marginTopPt    = 28
	marginBottomPt = 40
)

// viewport maps data coordinates to pixels with one scale for both axes,
// centring the data area inside the margins.
type viewport struct {
	ax     Axes
	left   float64 // pixel x of ax.XMin
	top    float64 // pixel y of ax.YMax
	width  float64
	height float64
	scale  float64 // pixels per data unit
}

func newViewport(ax Axes, imgW, imgH, dpi int) (viewport, error) {
	left := pointsToPixels(marginLeftPt, dpi)
	top := pointsToPixels(marginTopPt, dpi)
	areaW := float64(imgW) - left - pointsToPixels(marginRightPt, dpi)
	areaH := float64(imgH) - top - pointsToPixels(marginBottomPt, dpi)
	if areaW <= 0 || areaH <= 0 {
		return viewport{}, fmt.Errorf("figure %dx%d px leaves no room for the plot area", imgW, imgH)
	}

	scale := min(areaW/ax.Width(), areaH/ax.Height())
	w := ax.Width() * scale
	h := ax.Height() * scale

	return viewport{
		ax:     ax,
		left:   left + (areaW-w)/2,
		top:    top + (areaH-h)/2,
		width:  w,
		height: h,
		scale:  scale,
	}, nil
}

// toPixel converts a data point to image coordinates (y grows downwards).
func (v viewport) toPixel(x, y float64) (px, py float64) {
	return v.left + (x-v.ax.XMin)*v.scale, v.top + (v.ax.YMax-y)*v.scale
}

func (v viewport) right() float64  { return v.left + v.width }
func (v viewport) bottom() float64 { return v.top + v.height }
