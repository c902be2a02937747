package app

import (
	"context"
	"image/png"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/corey/foilview/internal/adapters/render"
	"github.com/corey/foilview/internal/ports"
)

// fakeWatcher hands the onChange callback to the test.
type fakeWatcher struct {
	mu       sync.Mutex
	onChange func(string)
	ready    chan struct{}
	stopped  bool
}

func newFakeWatcher() *fakeWatcher {
	return &fakeWatcher{ready: make(chan struct{})}
}

func (w *fakeWatcher) Watch(dir string, onChange func(string)) error {
	w.mu.Lock()
	w.onChange = onChange
	w.mu.Unlock()
	close(w.ready)
	return nil
}

func (w *fakeWatcher) Stop() error {
	w.mu.Lock()
	w.stopped = true
	w.mu.Unlock()
	return nil
}

func (w *fakeWatcher) fire(path string) {
	w.mu.Lock()
	cb := w.onChange
	w.mu.Unlock()
	cb(path)
}

var _ ports.Watcher = (*fakeWatcher)(nil)

func newTestPlotter(t *testing.T, dir string) *Plotter {
	t.Helper()
	r, err := render.NewRenderer()
	require.NoError(t, err)
	t.Cleanup(func() { r.Close() })
	lib, err := NewLibrary(dir, nil, FormatDecoder{})
	require.NoError(t, err)
	return &Plotter{
		Library:  lib,
		Renderer: r,
		Figure:   ports.Figure{HeightMM: 40, WidthMM: 60, DPI: 72},
		OutDir:   filepath.Join(dir, "plots"),
	}
}

func TestPlotter_OutputPath(t *testing.T) {
	p := &Plotter{OutDir: "/out"}
	assert.Equal(t, filepath.Join("/out", "naca", "n0012.png"), p.OutputPath("naca/n0012.dat"))
	assert.Equal(t, filepath.Join("/out", "clarky.png"), p.OutputPath("clarky.txt"))
}

func TestPlotter_RenderAll(t *testing.T) {
	dir := t.TempDir()
	writeFoil(t, dir, "testfoil.dat", testFoil)
	writeFoil(t, dir, "sub/other.dat", testFoil)
	writeFoil(t, dir, "broken.dat", "BROKEN\n0.5\n")
	p := newTestPlotter(t, dir)

	var results []PlotResult
	n, err := p.RenderAll(context.Background(), func(r PlotResult) { results = append(results, r) })
	assert.Error(t, err, "broken.dat should fail")
	assert.Equal(t, 2, n)
	assert.Len(t, results, 3)

	f, err := os.Open(p.OutputPath("sub/other.dat"))
	require.NoError(t, err)
	defer f.Close()
	img, err := png.Decode(f)
	require.NoError(t, err)
	assert.Equal(t, render.PixelsFor(60, 72), img.Bounds().Dx())
}

func TestPlotter_Thumbnail(t *testing.T) {
	dir := t.TempDir()
	writeFoil(t, dir, "testfoil.dat", testFoil)
	p := newTestPlotter(t, dir)
	p.MaxPx = 64

	res := p.RenderName("testfoil.dat")
	require.NoError(t, res.Err)
	f, err := os.Open(res.Output)
	require.NoError(t, err)
	defer f.Close()
	cfg, err := png.DecodeConfig(f)
	require.NoError(t, err)
	assert.Equal(t, 64, cfg.Width)
}

func TestPlotter_RenderAllCancelled(t *testing.T) {
	dir := t.TempDir()
	writeFoil(t, dir, "testfoil.dat", testFoil)
	p := newTestPlotter(t, dir)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	n, err := p.RenderAll(ctx, nil)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Zero(t, n)
}

func TestPlotter_Watch(t *testing.T) {
	dir := t.TempDir()
	path := writeFoil(t, dir, "testfoil.dat", testFoil)
	p := newTestPlotter(t, dir)
	w := newFakeWatcher()

	results := make(chan PlotResult, 10)
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		done <- p.Watch(ctx, w, func(r PlotResult) { results <- r })
	}()

	// Initial pass.
	first := <-results
	require.NoError(t, first.Err)
	assert.FileExists(t, first.Output)

	<-w.ready

	// A new file appears.
	added := writeFoil(t, dir, "added.dat", testFoil)
	w.fire(added)
	select {
	case r := <-results:
		require.NoError(t, r.Err)
		assert.Equal(t, "added.dat", r.Name)
		assert.FileExists(t, r.Output)
	case <-time.After(5 * time.Second):
		t.Fatal("no result for added file")
	}

	// The original file is deleted.
	require.NoError(t, os.Remove(path))
	w.fire(path)
	select {
	case r := <-results:
		require.NoError(t, r.Err)
		assert.True(t, r.Removed)
		assert.NoFileExists(t, p.OutputPath("testfoil.dat"))
	case <-time.After(5 * time.Second):
		t.Fatal("no result for removed file")
	}

	cancel()
	require.NoError(t, <-done)
	w.mu.Lock()
	assert.True(t, w.stopped)
	w.mu.Unlock()
}
