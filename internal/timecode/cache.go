package timecode

import (
	"sync"

	"audiocut/internal/clip"
)

// Store is an optional second cache level that persists tables across
// process runs. Implemented by the tablestore package.
type Store interface {
	Load(fingerprint string) (Table, bool, error)
	Save(fingerprint string, table Table) error
}

// Cache memoizes built tables per clip fingerprint for the lifetime of the
// process. Clips are immutable, so entries are never invalidated. Reads may
// happen concurrently; when two callers race to build the same table the
// first stored result wins and the redundant build is discarded.
type Cache struct {
	mu     sync.RWMutex
	tables map[string]Table
	store  Store
}

// NewCache returns an empty in-process cache.
func NewCache() *Cache {
	return &Cache{tables: make(map[string]Table)}
}

// WithStore attaches a persistent store consulted on miss and written to
// after every build.
func (c *Cache) WithStore(store Store) *Cache {
	c.mu.Lock()
	c.store = store
	c.mu.Unlock()
	return c
}

// GetOrBuild returns the cached table for the fingerprint, building it with
// build on first use. The build runs outside the cache lock, so a concurrent
// caller may rebuild the same table; that costs time, not correctness.
func (c *Cache) GetOrBuild(fingerprint string, build func() (Table, error)) (Table, error) {
	if fingerprint == "" {
		return build()
	}

	c.mu.RLock()
	table, ok := c.tables[fingerprint]
	store := c.store
	c.mu.RUnlock()
	if ok {
		return table, nil
	}

	if store != nil {
		if persisted, found, err := store.Load(fingerprint); err == nil && found {
			return c.remember(fingerprint, persisted, nil), nil
		}
	}

	built, err := build()
	if err != nil {
		return nil, err
	}
	return c.remember(fingerprint, built, store), nil
}

func (c *Cache) remember(fingerprint string, table Table, store Store) Table {
	c.mu.Lock()
	if existing, ok := c.tables[fingerprint]; ok {
		c.mu.Unlock()
		return existing
	}
	c.tables[fingerprint] = table
	c.mu.Unlock()

	if store != nil {
		// Persistence is advisory; a failed save only costs a rebuild later.
		_ = store.Save(fingerprint, table)
	}
	return table
}

// Len reports the number of cached tables. Used by tests and diagnostics.
func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.tables)
}

// Build derives the table for a clip from the best available source: an
// explicit timecode file when given, the constant-rate formula for CFR clips,
// or per-frame duration accumulation for VFR clips.
func Build(c clip.Clip, timecodeFile string, opts ...BuildOption) (Table, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}
	if timecodeFile != "" {
		return ReadFile(timecodeFile, c.NumFrames, opts...)
	}
	if c.Rate.IsVariable() {
		return FromDurations(c.Durations, c.NumFrames, opts...)
	}
	return FromRate(c.NumFrames, c.Rate)
}
