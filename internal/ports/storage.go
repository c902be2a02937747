// Package ports defines the interfaces (contracts) that adapters must implement.
// These are the boundaries of the hexagonal architecture. Application code
// depends only on these interfaces, never on concrete implementations.
package ports

import "github.com/corey/foilview/internal/domain/airfoil"

// Storage caches decoded airfoils so repeated renders skip parsing.
// Keys combine the decoder variant with the absolute file path. Concurrent reads are safe; writes
// are serialized by the adapter.
//
// Crash safety: SaveAirfoil must be transactional. A crash mid-write must not
// corrupt previously committed entries.
type Storage interface {
	// SaveAirfoil stores an entry, overwriting any prior entry for key.
	SaveAirfoil(key string, entry *CacheEntry) error

	// LoadAirfoil retrieves the entry for key.
	// Returns nil, nil if no entry exists.
	LoadAirfoil(key string) (*CacheEntry, error)

	// DeleteAirfoil removes the entry for key.
	// Idempotent: deleting a missing key is not an error.
	DeleteAirfoil(key string) error

	// ListAirfoils returns a summary of every cached entry, sorted by key.
	ListAirfoils() ([]CacheInfo, error)

	// Clear removes all entries and returns how many were removed.
	Clear() (int, error)
}

// CacheEntry is a decoded airfoil plus the file stamp it was decoded from.
// The entry is stale once the file's size or modification time changes.
type CacheEntry struct {
	Airfoil airfoil.Airfoil
	Size    int64 // file size in bytes
	ModTime int64 // file modification time, unix nanoseconds
}

// Fresh reports whether the entry still describes a file with the given stamp.
func (e *CacheEntry) Fresh(size, modTime int64) bool {
	return e != nil && e.Size == size && e.ModTime == modTime
}

// CacheInfo summarizes one cached entry for listings.
type CacheInfo struct {
	Key       string
	Name      string
	Format    airfoil.Format
	NumPoints int
	ModTime   int64
}
