package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"
)

// FileCache keeps each entry in its own JSON file, sharded into
// subdirectories by the first byte of the key hash:
//
//	<dir>/3f/a1c9...e2.json
type FileCache struct {
	dir string
	now func() time.Time
}

// NewFileCache opens a cache rooted at dir, creating it if needed.
func NewFileCache(dir string) (*FileCache, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("create cache dir: %w", err)
	}
	return &FileCache{dir: dir, now: time.Now}, nil
}

// Dir is the cache root.
func (c *FileCache) Dir() string { return c.dir }

type fileEntry struct {
	Kind      Kind      `json:"kind"`
	Data      []byte    `json:"data"`
	CreatedAt time.Time `json:"created_at"`
	ExpiresAt time.Time `json:"expires_at,omitzero"`
}

func (e fileEntry) expired(now time.Time) bool {
	return !e.ExpiresAt.IsZero() && now.After(e.ExpiresAt)
}

// Get returns the entry for key. Expired and unreadable entries are removed
// and reported as misses.
func (c *FileCache) Get(ctx context.Context, key string) ([]byte, bool, error) {
	path := c.path(key)
	raw, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}

	var e fileEntry
	if err := json.Unmarshal(raw, &e); err != nil || e.expired(c.now()) {
		_ = os.Remove(path)
		return nil, false, nil
	}
	return e.Data, true, nil
}

// Set writes the entry through a temporary file so concurrent readers never
// see a partial entry.
func (c *FileCache) Set(ctx context.Context, key string, data []byte, ttl time.Duration) error {
	now := c.now()
	e := fileEntry{Kind: KindOf(key), Data: data, CreatedAt: now}
	if ttl > 0 {
		e.ExpiresAt = now.Add(ttl)
	}
	raw, err := json.Marshal(e)
	if err != nil {
		return err
	}

	path := c.path(key)
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	tmp, err := os.CreateTemp(filepath.Dir(path), ".tmp-*")
	if err != nil {
		return err
	}
	if _, err := tmp.Write(raw); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return err
	}
	return os.Rename(tmp.Name(), path)
}

func (c *FileCache) Delete(ctx context.Context, key string) error {
	err := os.Remove(c.path(key))
	if os.IsNotExist(err) {
		return nil
	}
	return err
}

// Ping checks that the cache root is still a directory.
func (c *FileCache) Ping(ctx context.Context) error {
	info, err := os.Stat(c.dir)
	if err != nil {
		return unavailable("file", err)
	}
	if !info.IsDir() {
		return unavailable("file", fmt.Errorf("%s is not a directory", c.dir))
	}
	return nil
}

func (c *FileCache) Close() error { return nil }

func (c *FileCache) path(key string) string {
	h := Hash([]byte(key))
	return filepath.Join(c.dir, h[:2], h[2:]+".json")
}

// Stats summarizes the entries of a FileCache.
type Stats struct {
	Entries int
	Bytes   int64
	// Expired counts entries past their TTL, corrupt ones included.
	Expired int
	Kinds   map[Kind]int
}

func (s *Stats) add(kind Kind, size int64, stale bool) {
	s.Entries++
	s.Bytes += size
	if stale {
		s.Expired++
	}
	s.Kinds[kind]++
}

// Stats walks the cache without changing it.
func (c *FileCache) Stats() (Stats, error) {
	kept, _, err := c.walk(func(fileEntry, bool) bool { return false })
	return kept, err
}

// Prune removes expired and corrupt entries and reports what it removed.
func (c *FileCache) Prune() (Stats, error) {
	_, removed, err := c.walk(func(_ fileEntry, stale bool) bool { return stale })
	return removed, err
}

// Clear removes every entry and reports what it removed.
func (c *FileCache) Clear() (Stats, error) {
	_, removed, err := c.walk(func(fileEntry, bool) bool { return true })
	return removed, err
}

// walk visits every entry file, deleting those remove selects, then drops
// shard directories left empty. A missing root is an empty cache.
func (c *FileCache) walk(remove func(e fileEntry, stale bool) bool) (kept, removed Stats, err error) {
	kept, removed = Stats{Kinds: map[Kind]int{}}, Stats{Kinds: map[Kind]int{}}
	now := c.now()

	err = filepath.WalkDir(c.dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if path == c.dir && os.IsNotExist(err) {
				return fs.SkipDir
			}
			return nil
		}
		if d.IsDir() || filepath.Ext(path) != ".json" {
			return nil
		}
		info, err := d.Info()
		if err != nil {
			return nil
		}

		var e fileEntry
		var stale bool
		if raw, err := os.ReadFile(path); err != nil || json.Unmarshal(raw, &e) != nil {
			e, stale = fileEntry{Kind: KindUnknown}, true
		} else {
			stale = e.expired(now)
		}
		if e.Kind == "" {
			e.Kind = KindUnknown
		}

		if remove(e, stale) && os.Remove(path) == nil {
			removed.add(e.Kind, info.Size(), stale)
		} else {
			kept.add(e.Kind, info.Size(), stale)
		}
		return nil
	})
	if err != nil || removed.Entries == 0 {
		return kept, removed, err
	}

	shards, _ := os.ReadDir(c.dir)
	for _, s := range shards {
		if s.IsDir() {
			// Fails on shards that still hold entries.
			_ = os.Remove(filepath.Join(c.dir, s.Name()))
		}
	}
	return kept, removed, nil
}

var _ Cache = (*FileCache)(nil)
