package app

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/corey/foilview/internal/adapters/render"
	"github.com/corey/foilview/internal/ports"
)

// PlotResult reports the outcome of rendering one coordinate file.
type PlotResult struct {
	Name    string // library-relative name
	Output  string // PNG path; empty when Removed
	Removed bool   // the source file is gone and its plot was deleted
	Elapsed time.Duration
	Err     error
}

// Plotter renders library airfoils to PNG files under OutDir, mirroring the
// library's directory structure.
type Plotter struct {
	Library  *Library
	Renderer ports.Renderer
	Figure   ports.Figure
	OutDir   string
	MaxPx    int // thumbnail bound; 0 keeps full size
}

// OutputPath returns the PNG path for a library-relative name.
func (p *Plotter) OutputPath(name string) string {
	base := strings.TrimSuffix(filepath.FromSlash(name), filepath.Ext(name))
	return filepath.Join(p.OutDir, base+".png")
}

// RenderName loads, renders and saves one airfoil.
func (p *Plotter) RenderName(name string) (res PlotResult) {
	start := time.Now()
	res = PlotResult{Name: name, Output: p.OutputPath(name)}
	defer func() { res.Elapsed = time.Since(start) }()

	a, err := p.Library.Load(name)
	if err != nil {
		res.Err = err
		return res
	}
	img, err := p.Renderer.Render(a, p.Figure)
	if err != nil {
		res.Err = fmt.Errorf("render %s: %w", name, err)
		return res
	}
	img = render.Thumbnail(img, p.MaxPx)

	if err := os.MkdirAll(filepath.Dir(res.Output), 0755); err != nil {
		res.Err = err
		return res
	}
	res.Err = render.Save(img, res.Output)
	return res
}

// RenderAll renders every airfoil in the library, calling report per file.
// It returns the number of plots written and the joined failures.
func (p *Plotter) RenderAll(ctx context.Context, report func(PlotResult)) (int, error) {
	names, err := p.Library.Names()
	if err != nil {
		return 0, err
	}
	var errs []error
	n := 0
	for _, name := range names {
		if err := ctx.Err(); err != nil {
			return n, err
		}
		res := p.RenderName(name)
		if res.Err != nil {
			errs = append(errs, res.Err)
		} else {
			n++
		}
		if report != nil {
			report(res)
		}
	}
	return n, errors.Join(errs...)
}

// Watch renders everything once, then re-renders each coordinate file that
// changes until ctx is cancelled. Deleted files lose their plot and cache
// entry. Rendering happens on the calling goroutine, one file at a time.
func (p *Plotter) Watch(ctx context.Context, w ports.Watcher, report func(PlotResult)) error {
	if report == nil {
		report = func(PlotResult) {}
	}
	if _, err := p.RenderAll(ctx, report); err != nil {
		Logger().Warn("initial render incomplete", "err", err)
	}

	changed := make(chan string, 64)
	err := w.Watch(p.Library.Dir(), func(path string) {
		select {
		case changed <- path:
		case <-ctx.Done():
		}
	})
	if err != nil {
		return fmt.Errorf("watch %s: %w", p.Library.Dir(), err)
	}
	defer w.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case path := <-changed:
			report(p.handleChange(path))
		}
	}
}

func (p *Plotter) handleChange(path string) PlotResult {
	rel, err := filepath.Rel(p.Library.Dir(), path)
	if err != nil {
		return PlotResult{Name: path, Err: err}
	}
	name := filepath.ToSlash(rel)

	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		if err := p.Library.Forget(path); err != nil {
			Logger().Warn("cache delete failed", "path", path, "err", err)
		}
		out := p.OutputPath(name)
		if err := os.Remove(out); err != nil && !errors.Is(err, os.ErrNotExist) {
			return PlotResult{Name: name, Removed: true, Err: err}
		}
		return PlotResult{Name: name, Removed: true}
	}

	res := p.RenderName(name)
	Logger().Debug("re-rendered", "path", path, "dur", res.Elapsed, "ok", res.Err == nil)
	return res
}
