package store

import (
	"crypto/sha256"
	"encoding/binary"
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/mmcdole/reel/internal/domain"
	bolt "go.etcd.io/bbolt"
)

// Bucket names
var (
	bucketTV     = []byte("tv")
	bucketMovies = []byte("movies")

	allBuckets = [][]byte{bucketTV, bucketMovies}
)

// Store is the BoltDB-backed local cache. Rows are JSON documents keyed by
// big-endian entity id, one bucket per entity type.
type Store struct {
	db *bolt.DB

	// writeMu serializes writers so the memory cache is refreshed in
	// commit order
	writeMu sync.Mutex

	mu sync.RWMutex // Protects memory cache
	// In-memory cache for hot-path reads (promoted on access). In
	// memory-only mode it is the whole store.
	cache map[string][]byte
}

// Open opens (or creates) the cache database under baseCacheDir. Each
// server gets its own directory so switching servers never mixes rows.
// An empty baseCacheDir selects memory-only mode.
func Open(baseCacheDir, serverURL string) (*Store, error) {
	if baseCacheDir == "" {
		// Memory-only mode (no persistence)
		return &Store{cache: make(map[string][]byte)}, nil
	}

	dir := baseCacheDir
	if serverURL != "" {
		dir = filepath.Join(baseCacheDir, hashServerURL(serverURL))
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, err
	}

	dbPath := filepath.Join(dir, "reel.db")
	db, err := bolt.Open(dbPath, 0600, &bolt.Options{Timeout: 1 * time.Second})
	if err != nil {
		return nil, fmt.Errorf("failed to open bolt db: %w", err)
	}

	err = db.Update(func(tx *bolt.Tx) error {
		for _, bucket := range allBuckets {
			if _, err := tx.CreateBucketIfNotExists(bucket); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		db.Close()
		return nil, err
	}

	return &Store{db: db, cache: make(map[string][]byte)}, nil
}

func hashServerURL(serverURL string) string {
	normalized := strings.TrimRight(strings.ToLower(serverURL), "/")
	hash := sha256.Sum256([]byte(normalized))
	return hex.EncodeToString(hash[:6])
}

func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// TV returns the table of TV shows
func (s *Store) TV() *Table[*domain.TvShow] {
	return &Table[*domain.TvShow]{s: s, bucket: bucketTV}
}

// Movies returns the table of movies
func (s *Store) Movies() *Table[*domain.Movie] {
	return &Table[*domain.Movie]{s: s, bucket: bucketMovies}
}

// Clear wipes every row in every bucket
func (s *Store) Clear() error {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	s.mu.Lock()
	s.cache = make(map[string][]byte)
	s.mu.Unlock()

	if s.db == nil {
		return nil
	}

	return s.db.Update(func(tx *bolt.Tx) error {
		for _, bucket := range allBuckets {
			if tx.Bucket(bucket) != nil {
				if err := tx.DeleteBucket(bucket); err != nil {
					return err
				}
			}
			if _, err := tx.CreateBucket(bucket); err != nil {
				return err
			}
		}
		return nil
	})
}

// === Generic helpers ===

func idKey(id int64) []byte {
	key := make([]byte, 8)
	binary.BigEndian.PutUint64(key, uint64(id))
	return key
}

func cacheKey(bucket, key []byte) string {
	return string(bucket) + ":" + string(key)
}

func (s *Store) get(bucket, key []byte) ([]byte, error) {
	ck := cacheKey(bucket, key)

	// Check memory cache first
	s.mu.RLock()
	if data, ok := s.cache[ck]; ok {
		s.mu.RUnlock()
		return data, nil
	}
	s.mu.RUnlock()

	if s.db == nil {
		return nil, nil
	}

	var data []byte
	err := s.db.View(func(tx *bolt.Tx) error {
		b := tx.Bucket(bucket)
		if b == nil {
			return nil
		}
		if v := b.Get(key); v != nil {
			data = make([]byte, len(v))
			copy(data, v)
		}
		return nil
	})
	if err != nil || data == nil {
		return nil, err
	}

	// Promote to memory cache
	s.mu.Lock()
	s.cache[ck] = data
	s.mu.Unlock()

	return data, nil
}

// scan visits every row of a bucket in key order
func (s *Store) scan(bucket []byte, fn func(key, data []byte) error) error {
	if s.db == nil {
		s.mu.RLock()
		defer s.mu.RUnlock()
		prefix := string(bucket) + ":"
		for k, v := range s.cache {
			if strings.HasPrefix(k, prefix) {
				if err := fn([]byte(k[len(prefix):]), v); err != nil {
					return err
				}
			}
		}
		return nil
	}

	return s.db.View(func(tx *bolt.Tx) error {
		b := tx.Bucket(bucket)
		if b == nil {
			return nil
		}
		return b.ForEach(func(k, v []byte) error {
			return fn(k, v)
		})
	})
}

// txn is the read-modify-write view handed to update callbacks
type txn struct {
	bucket  *bolt.Bucket      // nil in memory-only mode
	mem     map[string][]byte // memory-only rows
	name    []byte
	written map[string][]byte // rows to mirror into the memory cache
}

func (t *txn) get(key []byte) []byte {
	if data, ok := t.written[string(key)]; ok {
		return data
	}
	if t.bucket == nil {
		return t.mem[cacheKey(t.name, key)]
	}
	return t.bucket.Get(key)
}

func (t *txn) put(key, data []byte) error {
	t.written[string(key)] = data
	if t.bucket == nil {
		return nil
	}
	return t.bucket.Put(key, data)
}

// update runs fn inside one write transaction on bucket. In memory-only
// mode the whole callback runs under the cache lock.
func (s *Store) update(bucket []byte, fn func(t *txn) error) error {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	t := &txn{name: bucket, written: make(map[string][]byte)}

	if s.db == nil {
		s.mu.Lock()
		defer s.mu.Unlock()
		t.mem = s.cache
		if err := fn(t); err != nil {
			return err
		}
		for k, v := range t.written {
			s.cache[cacheKey(bucket, []byte(k))] = v
		}
		return nil
	}

	err := s.db.Update(func(tx *bolt.Tx) error {
		b, err := tx.CreateBucketIfNotExists(bucket)
		if err != nil {
			return err
		}
		t.bucket = b
		return fn(t)
	})
	if err != nil {
		return err
	}

	// Update memory cache after commit
	s.mu.Lock()
	for k, v := range t.written {
		s.cache[cacheKey(bucket, []byte(k))] = v
	}
	s.mu.Unlock()
	return nil
}
