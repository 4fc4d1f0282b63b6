// Package testutil provides shared test helpers for setting up vaults,
// databases, and dictionaries.
package testutil

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/D3nams/Notepad/internal/index"
	"github.com/D3nams/Notepad/internal/spell"
	"github.com/D3nams/Notepad/internal/storage"
)

// TestDB creates a temporary SQLite database that is automatically cleaned up.
func TestDB(t *testing.T) *index.DB {
	t.Helper()
	dbFile, err := os.CreateTemp("", "notepad-test-*.db")
	if err != nil {
		t.Fatal(err)
	}
	dbFile.Close()
	t.Cleanup(func() { os.Remove(dbFile.Name()) })

	db, err := index.Open(dbFile.Name())
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

// TestVault creates a temporary vault directory with a storage.Provider.
func TestVault(t *testing.T) (string, storage.Provider) {
	t.Helper()
	vaultDir := t.TempDir()
	store, err := storage.NewFS(vaultDir)
	if err != nil {
		t.Fatal(err)
	}
	return vaultDir, store
}

// TestDictionary creates a dictionary oracle with a throwaway custom-word
// file.
func TestDictionary(t *testing.T) *spell.Dictionary {
	t.Helper()
	dict, err := spell.NewDictionary(filepath.Join(t.TempDir(), "custom.json"))
	if err != nil {
		t.Fatal(err)
	}
	return dict
}
