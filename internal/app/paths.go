package app

import (
	"os"
	"path/filepath"
)

// Paths holds all resolved filesystem paths for the .foilview/ directory.
type Paths struct {
	Project string // directory holding the coordinate files
	Root    string // .foilview/
	CacheDB string // .foilview/cache.db
	Config  string // .foilview/config.yaml
	EnvFile string // .foilview/.env

	RunDir   string // .foilview/run/
	PortFile string // .foilview/run/http.port

	PlotDir string // plots/ beside the coordinate files
}

// NewPaths constructs all resolved paths from a project directory.
func NewPaths(projectRoot string) *Paths {
	root := filepath.Join(projectRoot, ".foilview")
	return &Paths{
		Project: projectRoot,
		Root:    root,
		CacheDB: filepath.Join(root, "cache.db"),
		Config:  filepath.Join(root, "config.yaml"),
		EnvFile: filepath.Join(root, ".env"),

		RunDir:   filepath.Join(root, "run"),
		PortFile: filepath.Join(root, "run", "http.port"),

		PlotDir: filepath.Join(projectRoot, "plots"),
	}
}

// EnsureDirs creates all subdirectories under .foilview/. Idempotent.
func (p *Paths) EnsureDirs() error {
	for _, d := range []string{p.Root, p.RunDir} {
		if err := os.MkdirAll(d, 0755); err != nil {
			return err
		}
	}
	return nil
}
