// Package render implements ports.Renderer with the gogpu/gg software
// rasterizer. Plots show the airfoil perimeter on a chord/thickness grid:
// major and minor gridlines, equal aspect, title from the airfoil name.
package render

import (
	"errors"
	"fmt"
	"image"
	"io"
	"strconv"

	"github.com/disintegration/imaging"
	"github.com/gogpu/gg"
	"github.com/gogpu/gg/text"
	"golang.org/x/image/font/gofont/goregular"

	"github.com/corey/foilview/internal/domain/airfoil"
	"github.com/corey/foilview/internal/ports"
)

// maxSidePx bounds each image side. 600 mm at 1200 dpi stays below it.
const maxSidePx = 30000

// Stroke and text sizes in points.
const (
	plotLineWidthPt  = 1.0
	gridLineWidthPt  = 0.2
	frameLineWidthPt = 0.6
	minorDashPt      = 1.5
	tickFontPt       = 7
	labelFontPt      = 8
	titleFontPt      = 10
)

var _ ports.Renderer = (*Renderer)(nil)

// Renderer draws airfoil plots. It is safe for concurrent use: every Render
// call works on its own gg.Context.
type Renderer struct {
	font *text.FontSource
}

// NewRenderer loads the embedded Go Regular font.
func NewRenderer() (*Renderer, error) {
	src, err := text.NewFontSource(goregular.TTF)
	if err != nil {
		return nil, fmt.Errorf("load font: %w", err)
	}
	return &Renderer{font: src}, nil
}

// Close releases the font source.
func (r *Renderer) Close() error {
	return r.font.Close()
}

// Render draws a to an image sized from fig.
func (r *Renderer) Render(a airfoil.Airfoil, fig ports.Figure) (image.Image, error) {
	if err := validateFigure(fig); err != nil {
		return nil, err
	}
	if fig.LineColor == "" {
		fig.LineColor = ports.DefaultFigure().LineColor
	}

	w, h := PixelsFor(fig.WidthMM, fig.DPI), PixelsFor(fig.HeightMM, fig.DPI)
	ax := NewAxes(a.Bounds())
	v, err := newViewport(ax, w, h, fig.DPI)
	if err != nil {
		return nil, err
	}

	dc := gg.NewContext(w, h)
	defer dc.Close()
	dc.ClearWithColor(gg.White)

	p := plotter{dc: dc, v: v, dpi: fig.DPI, font: r.font}
	if err := p.grid(); err != nil {
		return nil, fmt.Errorf("draw grid: %w", err)
	}
	if err := p.outline(a.Points(), fig.LineColor); err != nil {
		return nil, fmt.Errorf("draw outline: %w", err)
	}
	p.labels(a.Name())

	if err := dc.FlushGPU(); err != nil {
		return nil, fmt.Errorf("flush: %w", err)
	}
	return dc.Image(), nil
}

func validateFigure(fig ports.Figure) error {
	var errs []error
	if fig.WidthMM <= 0 {
		errs = append(errs, fmt.Errorf("width must be positive, got %g mm", fig.WidthMM))
	}
	if fig.HeightMM <= 0 {
		errs = append(errs, fmt.Errorf("height must be positive, got %g mm", fig.HeightMM))
	}
	if fig.DPI <= 0 {
		errs = append(errs, fmt.Errorf("dpi must be positive, got %d", fig.DPI))
	}
	if err := errors.Join(errs...); err != nil {
		return fmt.Errorf("invalid figure: %w", err)
	}
	if PixelsFor(fig.WidthMM, fig.DPI) > maxSidePx || PixelsFor(fig.HeightMM, fig.DPI) > maxSidePx {
		return fmt.Errorf("invalid figure: %gx%g mm at %d dpi exceeds %d px per side",
			fig.WidthMM, fig.HeightMM, fig.DPI, maxSidePx)
	}
	return nil
}

// plotter carries the drawing state of one Render call.
type plotter struct {
	dc   *gg.Context
	v    viewport
	dpi  int
	font *text.FontSource
}

func (p plotter) pt(v float64) float64 { return pointsToPixels(v, p.dpi) }

func (p plotter) grid() error {
	dc, v := p.dc, p.v

	// Minor grid: dashed, translucent.
	dc.SetRGBA(0, 0, 0, 0.75)
	dc.SetLineWidth(p.pt(gridLineWidthPt))
	dc.SetDash(p.pt(minorDashPt), p.pt(minorDashPt))
	p.gridLines(v.ax.XMinor, v.ax.YMinor)
	if err := dc.Stroke(); err != nil {
		return err
	}
	dc.ClearDash()

	dc.SetRGB(0, 0, 0)
	p.gridLines(v.ax.XMajor, v.ax.YMajor)
	if err := dc.Stroke(); err != nil {
		return err
	}

	dc.SetLineWidth(p.pt(frameLineWidthPt))
	dc.DrawRectangle(v.left, v.top, v.width, v.height)
	return dc.Stroke()
}

func (p plotter) gridLines(xs, ys []float64) {
	v := p.v
	for _, x := range xs {
		px, _ := v.toPixel(x, 0)
		p.dc.MoveTo(px, v.top)
		p.dc.LineTo(px, v.bottom())
	}
	for _, y := range ys {
		_, py := v.toPixel(0, y)
		p.dc.MoveTo(v.left, py)
		p.dc.LineTo(v.right(), py)
	}
}

func (p plotter) outline(pts []airfoil.Point, color string) error {
	if len(pts) < 2 {
		return nil
	}
	dc, v := p.dc, p.v

	dc.Push()
	defer dc.Pop()
	dc.ClipRect(v.left, v.top, v.width, v.height)

	dc.SetHexColor(color)
	dc.SetLineWidth(p.pt(plotLineWidthPt))
	for i, pt := range pts {
		x, y := v.toPixel(pt.X, pt.Y)
		if i == 0 {
			dc.MoveTo(x, y)
			continue
		}
		dc.LineTo(x, y)
	}
	return dc.Stroke()
}

func (p plotter) labels(title string) {
	dc, v := p.dc, p.v
	dc.SetRGB(0, 0, 0)

	dc.SetFont(p.font.Face(p.pt(tickFontPt)))
	_, tickH := dc.MeasureString("0")
	for _, x := range v.ax.XMajor {
		px, _ := v.toPixel(x, 0)
		dc.DrawStringAnchored(tickLabel(x), px, v.bottom()+p.pt(3), 0.5, 1)
	}
	for _, y := range v.ax.YMajor {
		_, py := v.toPixel(0, y)
		dc.DrawStringAnchored(tickLabel(y), v.left-p.pt(3), py, 1, 0.35)
	}

	dc.SetFont(p.font.Face(p.pt(labelFontPt)))
	dc.DrawStringAnchored("chord", v.left+v.width/2, v.bottom()+p.pt(6)+tickH, 0.5, 1)
	dc.DrawStringAnchored("thickness", p.pt(4), v.top+v.height/2, 0, 0.35)

	dc.SetFont(p.font.Face(p.pt(titleFontPt)))
	dc.DrawStringAnchored(title, v.left+v.width/2, v.top-p.pt(8), 0.5, 0)
}

// tickLabel formats a gridline value with two decimals, without "-0.00".
func tickLabel(v float64) string {
	s := strconv.FormatFloat(v, 'f', 2, 64)
	if s == "-0.00" {
		return "0.00"
	}
	return s
}

// Thumbnail scales img down to fit in a maxPx square, keeping the aspect
// ratio. Images that already fit are returned unchanged.
func Thumbnail(img image.Image, maxPx int) image.Image {
	b := img.Bounds()
	if maxPx <= 0 || (b.Dx() <= maxPx && b.Dy() <= maxPx) {
		return img
	}
	return imaging.Fit(img, maxPx, maxPx, imaging.Lanczos)
}

// EncodePNG writes img as PNG.
func EncodePNG(w io.Writer, img image.Image) error {
	return imaging.Encode(w, img, imaging.PNG)
}

// Save writes img to path; the extension picks the encoding (.png, .jpg, ...).
func Save(img image.Image, path string) error {
	if err := imaging.Save(img, path); err != nil {
		return fmt.Errorf("save %s: %w", path, err)
	}
	return nil
}
