package cmd

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/corey/foilview/internal/adapters/render"
	"github.com/corey/foilview/internal/app"
	"github.com/corey/foilview/internal/ports"
)

var (
	renderOutput    string
	renderThumbnail int
)

var renderCmd = &cobra.Command{
	Use:   "render <file>",
	Short: "Render a coordinate file to an image",
	Long: "Draws the airfoil on a chord/thickness grid with equal aspect and writes it\n" +
		"to -o (PNG, JPEG, GIF, TIFF or BMP by extension). Defaults to <file>.png.",
	Args: cobra.ExactArgs(1),
	RunE: runRender,
}

func init() {
	f := renderCmd.Flags()
	f.StringVarP(&renderOutput, "output", "o", "", "output image path")
	f.String("format", "auto", "file layout: auto, selig, lednicer")
	f.Bool("strict", false, "reject Lednicer files whose surfaces do not share a leading edge")
	f.Float64("height-mm", 0, "figure height in millimeters (default from config)")
	f.Float64("width-mm", 0, "figure width in millimeters (default from config)")
	f.Int("dpi", 0, "resolution in dots per inch (default from config)")
	f.String("line-color", "", "outline color as #rrggbb (default from config)")
	f.IntVar(&renderThumbnail, "thumbnail", 0, "shrink the image to fit N×N pixels")
}

// figureFromFlags overlays the figure flags that were set onto fig.
func figureFromFlags(cmd *cobra.Command, fig ports.Figure) (ports.Figure, error) {
	f := cmd.Flags()
	var err error
	if f.Changed("height-mm") {
		if fig.HeightMM, err = f.GetFloat64("height-mm"); err != nil {
			return fig, err
		}
	}
	if f.Changed("width-mm") {
		if fig.WidthMM, err = f.GetFloat64("width-mm"); err != nil {
			return fig, err
		}
	}
	if f.Changed("dpi") {
		if fig.DPI, err = f.GetInt("dpi"); err != nil {
			return fig, err
		}
	}
	if f.Changed("line-color") {
		if fig.LineColor, err = f.GetString("line-color"); err != nil {
			return fig, err
		}
	}
	return fig, nil
}

func runRender(cmd *cobra.Command, args []string) error {
	s, err := openSession(cmd)
	if err != nil {
		return err
	}
	defer s.Close()

	fig := s.cfg.Figure

	path := args[0]
	out := renderOutput
	if out == "" {
		out = strings.TrimSuffix(path, filepath.Ext(path)) + ".png"
	}

	lib, err := s.library(projectRoot())
	if err != nil {
		return err
	}
	r, err := s.newRenderer()
	if err != nil {
		return err
	}

	start := time.Now()
	a, err := lib.LoadFile(path)
	if err != nil {
		return err
	}
	img, err := r.Render(a, fig)
	if err != nil {
		return err
	}
	img = render.Thumbnail(img, renderThumbnail)
	if err := render.Save(img, out); err != nil {
		return err
	}

	res := app.PlotResult{Name: path, Output: out, Elapsed: time.Since(start)}
	fmt.Fprintln(cmd.OutOrStdout(), formatPlotResult(res))
	return nil
}
