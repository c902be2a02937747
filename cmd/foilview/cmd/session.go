package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/corey/foilview/internal/adapters/bbolt"
	"github.com/corey/foilview/internal/adapters/render"
	"github.com/corey/foilview/internal/app"
	"github.com/corey/foilview/internal/ports"
)

// session bundles the resolved config and opened adapters for one command.
type session struct {
	paths    *app.Paths
	cfg      app.Config
	store    *bbolt.Store // nil when caching is off or the DB is locked
	renderer *render.Renderer
}

// openSession loads config for the project root, installs the logger and
// opens the cache. A locked cache (another foilview holds it) degrades to
// uncached operation.
func openSession(cmd *cobra.Command) (*session, error) {
	paths := app.NewPaths(projectRoot())
	cfg, err := app.LoadConfig(paths)
	if err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	if flagLogLevel != "" {
		cfg.LogLevel = flagLogLevel
	}
	if flagNoCache {
		cfg.NoCache = true
	}
	if err := applyFlags(cmd, &cfg); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}

	logger, err := app.NewLogger(os.Stderr, cfg.LogLevel)
	if err != nil {
		return nil, err
	}
	app.SetLogger(logger)

	s := &session{paths: paths, cfg: cfg}
	if !cfg.NoCache {
		if err := paths.EnsureDirs(); err != nil {
			return nil, fmt.Errorf("create %s: %w", paths.Root, err)
		}
		store, err := bbolt.NewStore(paths.CacheDB)
		switch {
		case err == nil:
			s.store = store
		case isDBLockError(err):
			logger.Warn("cache is locked by another process, continuing without it", "path", paths.CacheDB)
		default:
			return nil, err
		}
	}
	return s, nil
}

// applyFlags overlays the command's decode, figure and port flags onto cfg.
// Only flags the command defines and the user set take effect.
func applyFlags(cmd *cobra.Command, cfg *app.Config) error {
	f := cmd.Flags()
	var err error
	if f.Changed("format") {
		if cfg.Format, err = f.GetString("format"); err != nil {
			return err
		}
	}
	if f.Changed("strict") {
		if cfg.Strict, err = f.GetBool("strict"); err != nil {
			return err
		}
	}
	if f.Changed("port") {
		if cfg.Port, err = f.GetInt("port"); err != nil {
			return err
		}
	}
	cfg.Figure, err = figureFromFlags(cmd, cfg.Figure)
	return err
}

// storage returns the cache as a port, or nil when caching is off.
func (s *session) storage() ports.Storage {
	if s.store == nil {
		return nil
	}
	return s.store
}

func (s *session) decoder() app.FormatDecoder {
	return app.FormatDecoder{Format: s.cfg.DecodeFormat(), Strict: s.cfg.Strict}
}

// library opens a library over dir with the session's cache and decoder.
func (s *session) library(dir string) (*app.Library, error) {
	return app.NewLibrary(dir, s.storage(), s.decoder())
}

// newRenderer lazily creates the plot renderer.
func (s *session) newRenderer() (*render.Renderer, error) {
	if s.renderer == nil {
		r, err := render.NewRenderer()
		if err != nil {
			return nil, err
		}
		s.renderer = r
	}
	return s.renderer, nil
}

// Close releases the cache and renderer.
func (s *session) Close() {
	if s.renderer != nil {
		s.renderer.Close()
	}
	if s.store != nil {
		s.store.Close()
	}
}
