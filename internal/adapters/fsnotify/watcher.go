// Package fsnotify watches a directory tree for changes to airfoil coordinate
// files. A burst of events on one path is reported once, after the path has
// been quiet for debounceInterval.
package fsnotify

import (
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/corey/foilview/internal/ports"
)

var _ ports.Watcher = (*Watcher)(nil)

const debounceInterval = 50 * time.Millisecond

// Never descended into.
var ignoreDirs = map[string]bool{
	".git":      true,
	".foilview": true,
	".idea":     true,
	".vscode":   true,
	"plots":     true,
}

// Extensions that carry airfoil coordinates.
var coordExts = map[string]bool{
	".dat": true,
	".txt": true,
	".cor": true,
}

type Watcher struct {
	fw      *fsnotify.Watcher
	done    chan struct{}
	stopped bool
	mu      sync.Mutex
	log     *slog.Logger
}

// NewWatcher creates a new file system watcher. A nil logger discards output.
func NewWatcher(log *slog.Logger) (*Watcher, error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	return &Watcher{
		fw:   fw,
		done: make(chan struct{}),
		log:  log,
	}, nil
}

// Watch starts monitoring dir recursively.
// onChange is called with the absolute path of each changed coordinate file.
func (w *Watcher) Watch(dir string, onChange func(path string)) error {
	absPath, err := filepath.Abs(dir)
	if err != nil {
		return err
	}

	err = filepath.WalkDir(absPath, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return nil // skip inaccessible paths
		}
		if d.IsDir() {
			if ShouldIgnoreDir(d.Name()) && path != absPath {
				return filepath.SkipDir
			}
			return w.fw.Add(path)
		}
		return nil
	})
	if err != nil {
		return err
	}

	go w.loop(onChange)
	return nil
}

func (w *Watcher) loop(onChange func(string)) {
	// Per-path trailing-edge debounce: each event restarts the path's timer
	// and the callback runs once the path has been quiet for debounceInterval.
	pending := make(map[string]*time.Timer)
	fire := make(chan string)
	defer func() {
		for _, t := range pending {
			t.Stop()
		}
	}()

	for {
		select {
		case event, ok := <-w.fw.Events:
			if !ok {
				return
			}
			path := event.Name

			// New subdirectories join the watch list.
			if event.Has(fsnotify.Create) {
				if info, err := os.Stat(path); err == nil && info.IsDir() {
					if !ShouldIgnoreDir(info.Name()) {
						if err := w.fw.Add(path); err != nil {
							w.log.Warn("watch add failed", "dir", path, "err", err)
						}
					}
					continue
				}
			}

			if !IsCoordinateFile(path) || !reportable(event.Op) {
				continue
			}
			w.log.Debug("coordinate file event", "path", path, "op", event.Op.String())

			if t, ok := pending[path]; ok && t.Stop() {
				t.Reset(debounceInterval)
				continue
			}
			pending[path] = time.AfterFunc(debounceInterval, func() {
				select {
				case fire <- path:
				case <-w.done:
				}
			})

		case path := <-fire:
			delete(pending, path)
			onChange(path)

		case err, ok := <-w.fw.Errors:
			if !ok {
				return
			}
			w.log.Warn("watcher error", "err", err)

		case <-w.done:
			return
		}
	}
}

// reportable is false for metadata-only events such as Chmod.
func reportable(op fsnotify.Op) bool {
	return op.Has(fsnotify.Write) || op.Has(fsnotify.Create) ||
		op.Has(fsnotify.Remove) || op.Has(fsnotify.Rename)
}

// Stop closes the underlying watcher. Calls after the first are no-ops.
func (w *Watcher) Stop() error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.stopped {
		return nil
	}
	w.stopped = true
	close(w.done)
	return w.fw.Close()
}

// ShouldIgnoreDir reports whether a directory with this base name is skipped.
func ShouldIgnoreDir(name string) bool {
	return ignoreDirs[name]
}

// IsCoordinateFile reports whether path looks like an airfoil coordinate file.
// Hidden files and editor swap files never qualify.
func IsCoordinateFile(path string) bool {
	base := filepath.Base(path)
	if strings.HasPrefix(base, ".") || strings.HasSuffix(base, "~") {
		return false
	}
	return coordExts[strings.ToLower(filepath.Ext(base))]
}
