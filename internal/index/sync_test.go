package index

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/D3nams/Notepad/internal/notefile"
	"github.com/D3nams/Notepad/internal/storage"
)

func TestSync_IndexesAndPrunes(t *testing.T) {
	vaultDir := t.TempDir()
	store, err := storage.NewFS(vaultDir)
	if err != nil {
		t.Fatal(err)
	}
	db := testDB(t)
	logger := quietLogger()

	data, err := notefile.Encode(notefile.Meta{
		ID:         "id-sync",
		Title:      "Sync Target",
		Categories: []string{"work"},
		CreatedAt:  time.Now().UTC(),
	}, "<h1>Sync Target</h1><p>three little words</p>")
	if err != nil {
		t.Fatal(err)
	}
	_ = os.WriteFile(filepath.Join(vaultDir, "sync.html"), data, 0o644)

	if err := Sync(db, store, logger); err != nil {
		t.Fatalf("Sync: %v", err)
	}

	n, err := db.GetNote("sync.html")
	if err != nil {
		t.Fatalf("GetNote: %v", err)
	}
	if n.ID != "id-sync" || n.Title != "Sync Target" {
		t.Errorf("row = %+v", n)
	}
	if n.WordCount != 5 {
		t.Errorf("word count = %d, want 5", n.WordCount)
	}
	if len(n.Categories) != 1 || n.Categories[0] != "work" {
		t.Errorf("categories = %v", n.Categories)
	}

	// Removing the file and re-syncing prunes the row.
	_ = os.Remove(filepath.Join(vaultDir, "sync.html"))
	if err := Sync(db, store, logger); err != nil {
		t.Fatalf("Sync after delete: %v", err)
	}
	if cs, _ := db.GetChecksum("sync.html"); cs != "" {
		t.Error("stale entry not pruned")
	}
}

func TestSync_SkipsUnchanged(t *testing.T) {
	vaultDir := t.TempDir()
	store, _ := storage.NewFS(vaultDir)
	db := testDB(t)
	logger := quietLogger()

	_ = os.WriteFile(filepath.Join(vaultDir, "same.html"), []byte("<p>stable</p>"), 0o644)
	if err := Sync(db, store, logger); err != nil {
		t.Fatal(err)
	}
	first, err := db.GetNote("same.html")
	if err != nil {
		t.Fatal(err)
	}

	// A second pass with identical content leaves the row untouched.
	if err := Sync(db, store, logger); err != nil {
		t.Fatal(err)
	}
	second, err := db.GetNote("same.html")
	if err != nil {
		t.Fatal(err)
	}
	if first.Checksum != second.Checksum {
		t.Errorf("checksum changed: %q -> %q", first.Checksum, second.Checksum)
	}
}
