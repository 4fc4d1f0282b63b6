package index

import (
	"errors"
	"os"
	"testing"
	"time"

	"github.com/D3nams/Notepad/internal/apperr"
)

func testDB(t *testing.T) *DB {
	t.Helper()
	f, err := os.CreateTemp("", "notepad-test-*.db")
	if err != nil {
		t.Fatal(err)
	}
	f.Close()
	t.Cleanup(func() { os.Remove(f.Name()) })

	db, err := Open(f.Name())
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

func TestSchemaCreation(t *testing.T) {
	db := testDB(t)
	var count int
	if err := db.conn.QueryRow(`SELECT count(*) FROM notes`).Scan(&count); err != nil {
		t.Fatalf("notes table missing: %v", err)
	}
}

func TestUpsertAndGetChecksum(t *testing.T) {
	db := testDB(t)
	row := NoteRow{
		Path:       "hello.html",
		ID:         "id-1",
		Title:      "Hello World",
		Checksum:   "abc123",
		Categories: []string{"go", "test"},
		WordCount:  6,
		UpdatedAt:  time.Now(),
	}
	if err := db.UpsertNote(row, "This is a hello world note."); err != nil {
		t.Fatalf("UpsertNote: %v", err)
	}
	cs, err := db.GetChecksum("hello.html")
	if err != nil {
		t.Fatalf("GetChecksum: %v", err)
	}
	if cs != "abc123" {
		t.Errorf("checksum = %q, want %q", cs, "abc123")
	}
}

func TestGetNoteAndPathByID(t *testing.T) {
	db := testDB(t)
	_ = db.UpsertNote(NoteRow{
		Path: "a.html", ID: "id-a", Title: "A",
		Checksum: "1", Categories: []string{"work"}, WordCount: 2, UpdatedAt: time.Now(),
	}, "a body")

	n, err := db.GetNote("a.html")
	if err != nil {
		t.Fatalf("GetNote: %v", err)
	}
	if n.ID != "id-a" || n.Title != "A" || n.WordCount != 2 {
		t.Errorf("row = %+v", n)
	}
	if len(n.Categories) != 1 || n.Categories[0] != "work" {
		t.Errorf("categories = %v", n.Categories)
	}

	p, err := db.PathByID("id-a")
	if err != nil {
		t.Fatalf("PathByID: %v", err)
	}
	if p != "a.html" {
		t.Errorf("path = %q", p)
	}

	if _, err := db.GetNote("missing.html"); !errors.Is(err, apperr.ErrNotFound) {
		t.Errorf("GetNote missing: %v", err)
	}
	if _, err := db.PathByID("nope"); !errors.Is(err, apperr.ErrNotFound) {
		t.Errorf("PathByID missing: %v", err)
	}
}

func TestDeleteNote(t *testing.T) {
	db := testDB(t)
	_ = db.UpsertNote(NoteRow{Path: "del.html", Checksum: "x", UpdatedAt: time.Now()}, "body")

	if err := db.DeleteNote("del.html"); err != nil {
		t.Fatalf("DeleteNote: %v", err)
	}
	cs, _ := db.GetChecksum("del.html")
	if cs != "" {
		t.Errorf("deleted note still has checksum %q", cs)
	}
}

func TestUpsertUpdatesExisting(t *testing.T) {
	db := testDB(t)
	now := time.Now()
	_ = db.UpsertNote(NoteRow{Path: "up.html", Title: "Old", Checksum: "1", UpdatedAt: now}, "old body")
	_ = db.UpsertNote(NoteRow{Path: "up.html", Title: "New", Checksum: "2", Categories: []string{"new"}, UpdatedAt: now}, "new body")

	n, err := db.GetNote("up.html")
	if err != nil {
		t.Fatal(err)
	}
	if n.Title != "New" || n.Checksum != "2" {
		t.Errorf("row = %+v", n)
	}
}

func TestGetChecksum_NotFound(t *testing.T) {
	db := testDB(t)
	cs, err := db.GetChecksum("nonexistent.html")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cs != "" {
		t.Errorf("expected empty checksum, got %q", cs)
	}
}

func TestListNotes_FilterAndSort(t *testing.T) {
	db := testDB(t)
	base := time.Date(2025, 5, 1, 0, 0, 0, 0, time.UTC)
	_ = db.UpsertNote(NoteRow{Path: "b.html", Title: "Beta", Checksum: "1", Categories: []string{"work"}, UpdatedAt: base.Add(time.Hour)}, "")
	_ = db.UpsertNote(NoteRow{Path: "a.html", Title: "Alpha", Checksum: "2", Categories: []string{"home"}, UpdatedAt: base.Add(2 * time.Hour)}, "")
	_ = db.UpsertNote(NoteRow{Path: "c.html", Title: "Gamma", Checksum: "3", Categories: []string{"work"}, UpdatedAt: base}, "")

	rows, total, err := db.ListNotes(10, 0, "", "")
	if err != nil {
		t.Fatalf("ListNotes: %v", err)
	}
	if total != 3 || len(rows) != 3 {
		t.Fatalf("total = %d, rows = %d", total, len(rows))
	}
	if rows[0].Path != "a.html" {
		t.Errorf("default sort should be newest first, got %s", rows[0].Path)
	}

	rows, total, err = db.ListNotes(10, 0, "work", "title")
	if err != nil {
		t.Fatalf("ListNotes filtered: %v", err)
	}
	if total != 2 || len(rows) != 2 {
		t.Fatalf("filtered total = %d, rows = %d", total, len(rows))
	}
	if rows[0].Title != "Beta" || rows[1].Title != "Gamma" {
		t.Errorf("title sort order = %s, %s", rows[0].Title, rows[1].Title)
	}
}

func TestListNotes_Pagination(t *testing.T) {
	db := testDB(t)
	base := time.Date(2025, 5, 1, 0, 0, 0, 0, time.UTC)
	for i, p := range []string{"1.html", "2.html", "3.html"} {
		_ = db.UpsertNote(NoteRow{Path: p, Checksum: "x", UpdatedAt: base.Add(time.Duration(i) * time.Hour)}, "")
	}
	rows, total, err := db.ListNotes(2, 2, "", "")
	if err != nil {
		t.Fatal(err)
	}
	if total != 3 || len(rows) != 1 {
		t.Errorf("total = %d, page len = %d", total, len(rows))
	}
}

func TestCategories(t *testing.T) {
	db := testDB(t)
	_ = db.UpsertNote(NoteRow{Path: "a.html", Checksum: "1", Categories: []string{"work", "ideas"}, UpdatedAt: time.Now()}, "")
	_ = db.UpsertNote(NoteRow{Path: "b.html", Checksum: "2", Categories: []string{"work"}, UpdatedAt: time.Now()}, "")

	got, err := db.Categories()
	if err != nil {
		t.Fatalf("Categories: %v", err)
	}
	want := []CategoryCount{{Name: "ideas", Count: 1}, {Name: "work", Count: 2}}
	if len(got) != len(want) {
		t.Fatalf("categories = %+v", got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("categories[%d] = %+v, want %+v", i, got[i], want[i])
		}
	}
}

func TestAllChecksums(t *testing.T) {
	db := testDB(t)
	_ = db.UpsertNote(NoteRow{Path: "a.html", Checksum: "1", UpdatedAt: time.Now()}, "")
	_ = db.UpsertNote(NoteRow{Path: "b.html", Checksum: "2", UpdatedAt: time.Now()}, "")

	got, err := db.AllChecksums()
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 2 || got["a.html"] != "1" || got["b.html"] != "2" {
		t.Errorf("checksums = %v", got)
	}
}

func TestSearch_Basic(t *testing.T) {
	db := testDB(t)
	_ = db.UpsertNote(NoteRow{Path: "s.html", Title: "Search Me", Checksum: "1", UpdatedAt: time.Now()}, "uniqueword appears here")

	results, err := db.Search("uniqueword", 10)
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if len(results) != 1 || results[0].Path != "s.html" {
		t.Errorf("search results = %+v, want 1 hit for s.html", results)
	}
}
