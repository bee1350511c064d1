package testsupport

import (
	"testing"

	"audiocut/internal/config"
	"audiocut/internal/tablestore"
)

// MustOpenStore opens a tablestore.Store for tests and registers cleanup.
func MustOpenStore(t testing.TB, cfg *config.Config) *tablestore.Store {
	t.Helper()

	store, err := tablestore.Open(cfg.TableCache.Path)
	if err != nil {
		t.Fatalf("tablestore.Open: %v", err)
	}
	t.Cleanup(func() {
		store.Close()
	})
	return store
}
