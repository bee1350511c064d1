package timecode_test

import (
	"errors"
	"sync"
	"testing"

	"audiocut/internal/clip"
	"audiocut/internal/timecode"
)

func TestCacheMemoizesBuilds(t *testing.T) {
	cache := timecode.NewCache()
	builds := 0
	build := func() (timecode.Table, error) {
		builds++
		return timecode.Table{0, 1}, nil
	}

	for i := 0; i < 5; i++ {
		table, err := cache.GetOrBuild("clip-a", build)
		if err != nil {
			t.Fatalf("GetOrBuild: %v", err)
		}
		if len(table) != 2 {
			t.Fatalf("unexpected table %v", table)
		}
	}
	if builds != 1 {
		t.Fatalf("build ran %d times, want 1", builds)
	}
}

func TestCacheDistinctClips(t *testing.T) {
	cache := timecode.NewCache()
	for _, id := range []string{"a", "b", "a"} {
		if _, err := cache.GetOrBuild(id, func() (timecode.Table, error) {
			return timecode.Table{0}, nil
		}); err != nil {
			t.Fatalf("GetOrBuild(%s): %v", id, err)
		}
	}
	if cache.Len() != 2 {
		t.Fatalf("cached %d tables, want 2", cache.Len())
	}
}

func TestCacheBuildErrorNotCached(t *testing.T) {
	cache := timecode.NewCache()
	boom := errors.New("boom")
	if _, err := cache.GetOrBuild("c", func() (timecode.Table, error) { return nil, boom }); !errors.Is(err, boom) {
		t.Fatalf("expected boom, got %v", err)
	}
	if cache.Len() != 0 {
		t.Fatal("failed build must not be cached")
	}
	if _, err := cache.GetOrBuild("c", func() (timecode.Table, error) { return timecode.Table{0}, nil }); err != nil {
		t.Fatalf("retry should succeed: %v", err)
	}
}

func TestCacheConcurrentReaders(t *testing.T) {
	cache := timecode.NewCache()
	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			table, err := cache.GetOrBuild("shared", func() (timecode.Table, error) {
				return timecode.Table{0, 0.5}, nil
			})
			if err != nil || len(table) != 2 {
				t.Errorf("GetOrBuild: table=%v err=%v", table, err)
			}
		}()
	}
	wg.Wait()
	if cache.Len() != 1 {
		t.Fatalf("cached %d tables, want 1", cache.Len())
	}
}

type memStore struct {
	mu     sync.Mutex
	tables map[string]timecode.Table
	loads  int
	saves  int
}

func (s *memStore) Load(fingerprint string) (timecode.Table, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.loads++
	table, ok := s.tables[fingerprint]
	return table, ok, nil
}

func (s *memStore) Save(fingerprint string, table timecode.Table) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.saves++
	if s.tables == nil {
		s.tables = make(map[string]timecode.Table)
	}
	s.tables[fingerprint] = table
	return nil
}

func TestCachePersistentStore(t *testing.T) {
	store := &memStore{tables: map[string]timecode.Table{"warm": {0, 2.0}}}
	cache := timecode.NewCache().WithStore(store)

	table, err := cache.GetOrBuild("warm", func() (timecode.Table, error) {
		t.Fatal("build must not run when the store has the table")
		return nil, nil
	})
	if err != nil {
		t.Fatalf("GetOrBuild: %v", err)
	}
	if table[1] != 2.0 {
		t.Fatalf("unexpected table %v", table)
	}

	if _, err := cache.GetOrBuild("cold", func() (timecode.Table, error) {
		return timecode.Table{0, 1}, nil
	}); err != nil {
		t.Fatalf("GetOrBuild: %v", err)
	}
	if store.saves != 1 {
		t.Fatalf("store saved %d times, want 1", store.saves)
	}
}

func TestBuildSelectsSource(t *testing.T) {
	cfr := clip.Clip{NumFrames: 10, Rate: clip.Rate{Num: 24, Den: 1}}
	table, err := timecode.Build(cfr, "")
	if err != nil {
		t.Fatalf("Build CFR: %v", err)
	}
	if len(table) != 11 {
		t.Fatalf("CFR table length %d", len(table))
	}

	vfr := clip.Clip{
		NumFrames: 2,
		Rate:      clip.Variable,
		Durations: &clip.SliceDurations{Fractions: [][2]int64{{1, 24}, {1, 30}}},
	}
	table, err = timecode.Build(vfr, "")
	if err != nil {
		t.Fatalf("Build VFR: %v", err)
	}
	if len(table) != 3 {
		t.Fatalf("VFR table length %d", len(table))
	}
}
