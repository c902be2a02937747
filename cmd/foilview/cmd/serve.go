package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/corey/foilview/internal/adapters/web"
	"github.com/corey/foilview/internal/app"
)

var serveCmd = &cobra.Command{
	Use:   "serve [dir]",
	Short: "Serve a browsable preview of a directory of airfoils",
	Long: "Starts a localhost-only HTTP server listing every coordinate file under dir\n" +
		"(default: project root) with on-demand plots and a JSON API:\n" +
		"  GET /api/health, /api/airfoils, /api/airfoils/{name}, /plot/{name}",
	Args: cobra.MaximumNArgs(1),
	RunE: runServe,
}

func init() {
	f := serveCmd.Flags()
	f.IntP("port", "p", 0, "port to listen on (default from config, else derived from dir)")
	f.String("format", "auto", "file layout: auto, selig, lednicer")
	f.Bool("strict", false, "reject Lednicer files whose surfaces do not share a leading edge")
	f.Float64("height-mm", 0, "figure height in millimeters (default from config)")
	f.Float64("width-mm", 0, "figure width in millimeters (default from config)")
	f.Int("dpi", 0, "resolution in dots per inch (default from config)")
	f.String("line-color", "", "outline color as #rrggbb (default from config)")
}

func runServe(cmd *cobra.Command, args []string) error {
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

	port := s.cfg.Port
	if port == 0 {
		port = web.DefaultPort(lib.Dir())
	}

	if err := s.paths.EnsureDirs(); err != nil {
		return err
	}
	srv := web.NewServer(lib, r, fig, s.paths.PortFile, app.Logger())
	if err := srv.Start(port); err != nil {
		return err
	}
	defer srv.Stop()

	app.Logger().Info("serving", "dir", lib.Dir(), "port", srv.Port())
	fmt.Fprintf(cmd.OutOrStdout(), "%s⚡ serving %s%s at %s%s%s\n",
		colorBold, lib.Dir(), colorReset, colorCyan, srv.URL(), colorReset)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	<-ctx.Done()

	fmt.Fprintln(cmd.OutOrStdout(), "\n⚡ shutting down...")
	return nil
}
