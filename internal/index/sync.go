package index

import (
	"log/slog"
	"strings"
	"time"

	"github.com/D3nams/Notepad/internal/checksum"
	"github.com/D3nams/Notepad/internal/document"
	"github.com/D3nams/Notepad/internal/notefile"
	"github.com/D3nams/Notepad/internal/storage"
)

// Sync walks the vault and brings the index up to date:
//   - new/changed files are parsed and upserted
//   - files removed from disk are deleted from the index
func Sync(db *DB, store storage.Provider, logger *slog.Logger) error {
	metas, err := store.List("")
	if err != nil {
		return err
	}

	checksums, err := db.AllChecksums()
	if err != nil {
		return err
	}

	disk := make(map[string]struct{}, len(metas))
	for _, m := range metas {
		disk[m.Path] = struct{}{}

		if checksums[m.Path] == m.Checksum {
			continue
		}

		data, err := store.Read(m.Path)
		if err != nil {
			logger.Warn("sync: read failed", slog.String("path", m.Path), slog.String("error", err.Error()))
			continue
		}
		if err := indexFile(db, m.Path, data, m.UpdatedAt); err != nil {
			logger.Warn("sync: index failed", slog.String("path", m.Path), slog.String("error", err.Error()))
		} else {
			logger.Debug("sync: indexed", slog.String("path", m.Path))
		}
	}

	// Remove stale entries.
	for p := range checksums {
		if _, ok := disk[p]; !ok {
			if err := db.DeleteNote(p); err != nil {
				logger.Warn("sync: delete failed", slog.String("path", p), slog.String("error", err.Error()))
			} else {
				logger.Debug("sync: removed stale", slog.String("path", p))
			}
		}
	}

	return nil
}

// indexFile parses a note file and upserts it. The indexed body is the
// stripped plain text, so both search modes match what the user reads.
func indexFile(db *DB, path string, data []byte, updatedAt time.Time) error {
	meta, body, err := notefile.Parse(data)
	if err != nil {
		return err
	}
	doc := document.Document{Blocks: document.Parse(body)}
	plain := doc.PlainText()

	row := NoteRow{
		Path:       path,
		ID:         meta.ID,
		Title:      meta.Title,
		Checksum:   checksum.Sum(data),
		Categories: meta.Categories,
		WordCount:  len(strings.Fields(plain)),
		UpdatedAt:  updatedAt,
	}
	return db.UpsertNote(row, plain)
}
