// Package testutil provides shared test helpers for setting up note stores
// and history databases.
package testutil

import (
	"os"
	"testing"

	"github.com/aguiarsc/numen/internal/history"
	"github.com/aguiarsc/numen/internal/notes"
	"github.com/aguiarsc/numen/internal/storage"
)

// TestHistory creates a temporary SQLite history store that is automatically
// cleaned up.
func TestHistory(t *testing.T) *history.Store {
	t.Helper()
	dbFile, err := os.CreateTemp("", "numen-test-*.db")
	if err != nil {
		t.Fatal(err)
	}
	dbFile.Close()
	t.Cleanup(func() { os.Remove(dbFile.Name()) })

	store, err := history.Open(dbFile.Name())
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

// TestNotesDir creates a temporary notes directory with a storage.Provider.
func TestNotesDir(t *testing.T) (string, storage.Provider) {
	t.Helper()
	dir := t.TempDir()
	store, err := storage.NewFS(dir)
	if err != nil {
		t.Fatal(err)
	}
	return dir, store
}

// TestRepository creates a note repository over a temporary directory.
func TestRepository(t *testing.T) *notes.Repository {
	t.Helper()
	_, store := TestNotesDir(t)
	return notes.NewRepository(store)
}
