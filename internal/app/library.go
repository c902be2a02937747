package app

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	fswatch "github.com/corey/foilview/internal/adapters/fsnotify"
	"github.com/corey/foilview/internal/domain/airfoil"
	"github.com/corey/foilview/internal/ports"
)

var _ ports.Decoder = FormatDecoder{}

// FormatDecoder decodes with a fixed format and option set.
type FormatDecoder struct {
	Format airfoil.Format
	Strict bool
}

// Decode implements ports.Decoder.
func (d FormatDecoder) Decode(source string, data []byte) (airfoil.Airfoil, error) {
	var opts []airfoil.Option
	if d.Strict {
		opts = append(opts, airfoil.WithStrictLeadingEdge())
	}
	return airfoil.Decode(source, data, d.Format, opts...)
}

// Variant implements ports.Decoder.
func (d FormatDecoder) Variant() string {
	if d.Strict {
		return d.Format.String() + "+strict"
	}
	return d.Format.String()
}

// Library loads airfoils from a directory of coordinate files. Decoded
// results go through the cache when one is configured; an entry is reused
// while the file's size and modification time are unchanged.
type Library struct {
	dir     string
	store   ports.Storage // nil disables caching
	decoder ports.Decoder
}

// NewLibrary creates a library rooted at dir. store may be nil.
func NewLibrary(dir string, store ports.Storage, dec ports.Decoder) (*Library, error) {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return nil, err
	}
	return &Library{dir: abs, store: store, decoder: dec}, nil
}

// Dir returns the absolute library directory.
func (l *Library) Dir() string { return l.dir }

// Names lists every coordinate file under the library directory as a
// slash-separated path relative to it, sorted.
func (l *Library) Names() ([]string, error) {
	var names []string
	err := filepath.WalkDir(l.dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if path == l.dir {
				return err
			}
			return nil
		}
		if d.IsDir() {
			if path != l.dir && fswatch.ShouldIgnoreDir(d.Name()) {
				return filepath.SkipDir
			}
			return nil
		}
		if !fswatch.IsCoordinateFile(path) {
			return nil
		}
		rel, err := filepath.Rel(l.dir, path)
		if err != nil {
			return nil
		}
		names = append(names, filepath.ToSlash(rel))
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("list %s: %w", l.dir, err)
	}
	sort.Strings(names)
	return names, nil
}

// Resolve maps a name from Names back to an absolute path. Names that
// escape the library or are not coordinate files report fs.ErrNotExist.
func (l *Library) Resolve(name string) (string, error) {
	local := filepath.FromSlash(name)
	if !filepath.IsLocal(local) || !fswatch.IsCoordinateFile(local) {
		return "", fmt.Errorf("airfoil %q: %w", name, fs.ErrNotExist)
	}
	return filepath.Join(l.dir, local), nil
}

// Load decodes the named airfoil. See Resolve for valid names.
func (l *Library) Load(name string) (airfoil.Airfoil, error) {
	path, err := l.Resolve(name)
	if err != nil {
		return airfoil.Airfoil{}, err
	}
	return l.LoadFile(path)
}

// LoadFile decodes the coordinate file at path, which may lie outside the
// library directory.
func (l *Library) LoadFile(path string) (airfoil.Airfoil, error) {
	log := Logger()

	abs, err := filepath.Abs(path)
	if err != nil {
		return airfoil.Airfoil{}, err
	}
	// Stat before reading: a write racing the read leaves a stale mtime
	// in the entry, which forces a decode next time.
	info, err := os.Stat(abs)
	if err != nil {
		return airfoil.Airfoil{}, fmt.Errorf("read %s: %w", path, err)
	}
	if info.IsDir() {
		return airfoil.Airfoil{}, fmt.Errorf("read %s: is a directory", path)
	}
	size, mod := info.Size(), info.ModTime().UnixNano()
	key := l.cacheKey(abs)

	if l.store != nil {
		entry, err := l.store.LoadAirfoil(key)
		switch {
		case err != nil:
			log.Warn("cache read failed", "path", abs, "err", err)
		case entry != nil && entry.Fresh(size, mod):
			log.Debug("cache hit", "path", abs)
			return entry.Airfoil, nil
		}
	}

	data, err := os.ReadFile(abs)
	if err != nil {
		return airfoil.Airfoil{}, fmt.Errorf("read %s: %w", path, err)
	}

	start := time.Now()
	a, err := l.decoder.Decode(path, data)
	if err != nil {
		return airfoil.Airfoil{}, err
	}
	log.Debug("decoded", "path", abs, "format", a.Format(), "points", a.NumPoints(), "dur", time.Since(start))

	if l.store != nil {
		entry := &ports.CacheEntry{Airfoil: a, Size: size, ModTime: mod}
		if err := l.store.SaveAirfoil(key, entry); err != nil {
			log.Warn("cache write failed", "path", abs, "err", err)
		}
	}
	return a, nil
}

// Forget drops any cached entry for path.
func (l *Library) Forget(path string) error {
	if l.store == nil {
		return nil
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return err
	}
	return l.store.DeleteAirfoil(l.cacheKey(abs))
}

func (l *Library) cacheKey(abs string) string {
	return l.decoder.Variant() + "|" + abs
}

// SplitCacheKey separates a cache key into decoder variant and path.
func SplitCacheKey(key string) (variant, path string) {
	variant, path, ok := strings.Cut(key, "|")
	if !ok {
		return "", key
	}
	return variant, path
}

// IsNotFound reports whether err means the airfoil file does not exist.
func IsNotFound(err error) bool {
	return errors.Is(err, fs.ErrNotExist)
}
