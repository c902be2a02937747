package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/corey/foilview/internal/adapters/fsnotify"
	"github.com/corey/foilview/internal/app"
)

var watchOutput string

var watchCmd = &cobra.Command{
	Use:   "watch [dir]",
	Short: "Re-render coordinate files as they change",
	Long: "Renders every coordinate file under dir (default: project root) into the\n" +
		"output directory, then keeps watching and re-renders each file on save.\n" +
		"Deleting a coordinate file deletes its plot. Stop with Ctrl-C.",
	Args: cobra.MaximumNArgs(1),
	RunE: runWatch,
}

func init() {
	f := watchCmd.Flags()
	f.StringVarP(&watchOutput, "output", "o", "", "output directory (default: <dir>/plots)")
	f.String("format", "auto", "file layout: auto, selig, lednicer")
	f.Bool("strict", false, "reject Lednicer files whose surfaces do not share a leading edge")
	f.Float64("height-mm", 0, "figure height in millimeters (default from config)")
	f.Float64("width-mm", 0, "figure width in millimeters (default from config)")
	f.Int("dpi", 0, "resolution in dots per inch (default from config)")
	f.String("line-color", "", "outline color as #rrggbb (default from config)")
}

// dirArg returns the directory argument or the project root.
func dirArg(args []string) string {
	if len(args) > 0 {
		return args[0]
	}
	return projectRoot()
}

func runWatch(cmd *cobra.Command, args []string) error {
	s, err := openSession(cmd)
	if err != nil {
		return err
	}
	defer s.Close()

	fig := s.cfg.Figure
	lib, err := s.library(dirArg(args))
	if err != nil {
		return err
	}
	r, err := s.newRenderer()
	if err != nil {
		return err
	}
	outDir := watchOutput
	if outDir == "" {
		outDir = app.NewPaths(lib.Dir()).PlotDir
	}

	w, err := fsnotify.NewWatcher(app.Logger())
	if err != nil {
		return fmt.Errorf("watcher: %w", err)
	}

	p := &app.Plotter{Library: lib, Renderer: r, Figure: fig, OutDir: outDir}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "%s⚡ watching %s%s → %s\n", colorBold, lib.Dir(), colorReset, outDir)
	err = p.Watch(ctx, w, func(res app.PlotResult) {
		fmt.Fprintln(out, formatPlotResult(res))
	})
	fmt.Fprintln(out, "\n⚡ stopped")
	return err
}
