// Package bbolt implements the ports.Storage interface using bbolt (embedded B+ tree).
// Decoded airfoils live in a single "airfoils" bucket, binary-encoded (see
// encoding.go). Writes are transactional, so a crash mid-write cannot corrupt
// previously committed data.
package bbolt

import (
	"fmt"
	"time"

	"github.com/corey/foilview/internal/ports"
	bolt "go.etcd.io/bbolt"
)

var bucketAirfoils = []byte("airfoils")

var _ ports.Storage = (*Store)(nil)

// Store implements ports.Storage backed by bbolt.
type Store struct {
	db *bolt.DB
}

// NewStore opens (or creates) a bbolt database at the given path.
func NewStore(path string) (*Store, error) {
	db, err := bolt.Open(path, 0600, &bolt.Options{Timeout: 1 * time.Second})
	if err != nil {
		return nil, fmt.Errorf("bbolt open: %w", err)
	}
	return &Store{db: db}, nil
}

// Close closes the underlying bbolt database.
func (s *Store) Close() error {
	return s.db.Close()
}

// Path returns the database file path.
func (s *Store) Path() string {
	return s.db.Path()
}

// SaveAirfoil stores an entry, overwriting any prior entry for key.
func (s *Store) SaveAirfoil(key string, entry *ports.CacheEntry) error {
	if entry == nil {
		return fmt.Errorf("nil cache entry")
	}
	if key == "" {
		return fmt.Errorf("empty cache key")
	}

	data, err := encodeEntry(entry)
	if err != nil {
		return fmt.Errorf("encode %s: %w", key, err)
	}

	return s.db.Update(func(tx *bolt.Tx) error {
		b, err := tx.CreateBucketIfNotExists(bucketAirfoils)
		if err != nil {
			return err
		}
		return b.Put([]byte(key), data)
	})
}

// LoadAirfoil retrieves the entry for key.
// Returns nil, nil if no entry exists.
func (s *Store) LoadAirfoil(key string) (*ports.CacheEntry, error) {
	var data []byte

	err := s.db.View(func(tx *bolt.Tx) error {
		b := tx.Bucket(bucketAirfoils)
		if b == nil {
			return nil
		}
		// Copy bytes out of the transaction (bbolt slices are only valid within tx)
		if v := b.Get([]byte(key)); v != nil {
			data = make([]byte, len(v))
			copy(data, v)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	if data == nil {
		return nil, nil
	}

	entry, err := decodeEntry(data)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", key, err)
	}
	return entry, nil
}

// DeleteAirfoil removes the entry for key.
// Idempotent: deleting a missing key is not an error.
func (s *Store) DeleteAirfoil(key string) error {
	return s.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket(bucketAirfoils)
		if b == nil {
			return nil
		}
		return b.Delete([]byte(key))
	})
}

// ListAirfoils returns a summary of every cached entry, sorted by key.
// Entries that fail to decode are skipped.
func (s *Store) ListAirfoils() ([]ports.CacheInfo, error) {
	var infos []ports.CacheInfo

	err := s.db.View(func(tx *bolt.Tx) error {
		b := tx.Bucket(bucketAirfoils)
		if b == nil {
			return nil
		}
		return b.ForEach(func(k, v []byte) error {
			entry, err := decodeEntry(v)
			if err != nil {
				return nil
			}
			infos = append(infos, ports.CacheInfo{
				Key:       string(k),
				Name:      entry.Airfoil.Name(),
				Format:    entry.Airfoil.Format(),
				NumPoints: entry.Airfoil.NumPoints(),
				ModTime:   entry.ModTime,
			})
			return nil
		})
	})
	if err != nil {
		return nil, err
	}
	return infos, nil
}

// Clear removes all entries and returns how many were removed.
func (s *Store) Clear() (int, error) {
	var n int
	err := s.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket(bucketAirfoils)
		if b == nil {
			return nil
		}
		n = b.Stats().KeyN
		return tx.DeleteBucket(bucketAirfoils)
	})
	if err != nil {
		return 0, err
	}
	return n, nil
}
