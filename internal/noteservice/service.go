// Package noteservice implements the note operations shared by the HTTP API
// and the MCP server: CRUD over the vault, per-note editing sessions,
// spell-check annotation, the suggestion flow, and export.
package noteservice

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/D3nams/Notepad/internal/apperr"
	"github.com/D3nams/Notepad/internal/checksum"
	"github.com/D3nams/Notepad/internal/document"
	"github.com/D3nams/Notepad/internal/editor"
	"github.com/D3nams/Notepad/internal/export"
	"github.com/D3nams/Notepad/internal/index"
	"github.com/D3nams/Notepad/internal/notefile"
	"github.com/D3nams/Notepad/internal/spell"
	"github.com/D3nams/Notepad/internal/storage"
)

// NoteDetail is the full note representation returned to clients.
type NoteDetail struct {
	ID         string    `json:"id"`
	Path       string    `json:"path"`
	Title      string    `json:"title"`
	Content    string    `json:"content"`
	Checksum   string    `json:"checksum"`
	Categories []string  `json:"categories"`
	WordCount  int       `json:"word_count"`
	CharCount  int       `json:"char_count"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// NoteListItem is the compact representation used by list endpoints.
type NoteListItem struct {
	ID         string    `json:"id"`
	Path       string    `json:"path"`
	Title      string    `json:"title"`
	Categories []string  `json:"categories"`
	WordCount  int       `json:"word_count"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// EditorState is the result of a command or history operation: the frozen
// tree, its revision, and the history availability flags.
type EditorState struct {
	Document document.Document `json:"document"`
	Revision uint64            `json:"revision"`
	CanUndo  bool              `json:"can_undo"`
	CanRedo  bool              `json:"can_redo"`
	Changed  bool              `json:"changed"`
}

// SpellReport is the outcome of an annotation pass.
type SpellReport struct {
	Document   document.Document `json:"document"`
	Revision   uint64            `json:"revision"`
	Misspelled []string          `json:"misspelled"`
}

// Suggestions is the settled outcome of a suggestion fetch for one span.
type Suggestions struct {
	Word  string   `json:"word"`
	State string   `json:"state"`
	List  []string `json:"suggestions"`
}

// Event is a vault change notification fanned out to subscribers.
type Event struct {
	Kind string `json:"kind"`
	ID   string `json:"id"`
	Path string `json:"path"`
}

// Notifier receives events emitted by mutating operations. A nil notifier
// is silently skipped.
type Notifier func(Event)

// session bundles the live editing state of one open note.
type session struct {
	editor  *editor.Session
	suggest *spell.Session
	meta    notefile.Meta
	path    string
}

// Service coordinates storage, the search index, the spell engine, and the
// per-note editing sessions.
type Service struct {
	store  storage.Provider
	db     index.NoteIndex
	engine *spell.Engine
	logger *slog.Logger
	notify Notifier

	sessions syncMap
}

// New creates a note service. notify may be nil.
func New(store storage.Provider, db index.NoteIndex, engine *spell.Engine, logger *slog.Logger, notify Notifier) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{store: store, db: db, engine: engine, logger: logger, notify: notify}
}

func (s *Service) emit(kind, id, path string) {
	if s.notify != nil {
		s.notify(Event{Kind: kind, ID: id, Path: path})
	}
}

// CreateNote writes a new note file and indexes it. An empty title falls
// back to one derived from the content.
func (s *Service) CreateNote(ctx context.Context, title, content string, categories []string) (*NoteDetail, error) {
	id := uuid.NewString()
	path := notePath(title, id)

	if _, err := s.db.GetNote(path); err == nil {
		return nil, fmt.Errorf("noteservice: create %s: %w", path, apperr.ErrAlreadyExists)
	}

	doc := document.Document{ID: id, Title: title, Blocks: document.Parse(content)}
	doc = doc.Normalize()
	meta := notefile.Meta{
		ID:         id,
		Title:      title,
		Categories: append([]string(nil), categories...),
		CreatedAt:  time.Now().UTC(),
	}
	if err := s.persist(path, meta, doc); err != nil {
		return nil, err
	}
	s.emit("note.created", id, path)
	return s.buildDetail(path, meta, doc)
}

// GetNote loads a note by ID.
func (s *Service) GetNote(ctx context.Context, id string) (*NoteDetail, error) {
	sess, err := s.session(id)
	if err != nil {
		return nil, err
	}
	doc, _ := sess.editor.Document()
	return s.buildDetail(sess.path, sess.meta, doc)
}

// UpdateNote replaces a note's content wholesale. ifMatch, when non-empty,
// must equal the current file checksum or the update is rejected. A full
// replace resets the note's editing session, dropping its undo history.
func (s *Service) UpdateNote(ctx context.Context, id, title, content, ifMatch string, categories []string) (*NoteDetail, error) {
	path, err := s.db.PathByID(id)
	if err != nil {
		return nil, err
	}
	raw, err := s.store.Read(path)
	if err != nil {
		return nil, fmt.Errorf("noteservice: read %s: %w", path, err)
	}
	if ifMatch != "" && ifMatch != checksum.Sum(raw) {
		return nil, fmt.Errorf("noteservice: update %s: checksum mismatch: %w", path, apperr.ErrConflict)
	}
	meta, _, err := notefile.Parse(raw)
	if err != nil {
		return nil, fmt.Errorf("noteservice: parse %s: %w", path, err)
	}
	if title != "" {
		meta.Title = title
	}
	if categories != nil {
		meta.Categories = append([]string(nil), categories...)
	}

	doc := document.Document{ID: id, Title: meta.Title, Blocks: document.Parse(content)}
	doc = doc.Normalize()
	if err := s.persist(path, meta, doc); err != nil {
		return nil, err
	}
	s.sessions.Delete(id)
	s.emit("note.updated", id, path)
	return s.buildDetail(path, meta, doc)
}

// DeleteNote removes the note file, its index row, and any live session.
func (s *Service) DeleteNote(ctx context.Context, id string) error {
	path, err := s.db.PathByID(id)
	if err != nil {
		return err
	}
	if err := s.store.Delete(path); err != nil {
		return fmt.Errorf("noteservice: delete %s: %w", path, err)
	}
	if err := s.db.DeleteNote(path); err != nil {
		s.logger.Warn("deindex after delete failed", "path", path, "error", err)
	}
	s.sessions.Delete(id)
	s.emit("note.deleted", id, path)
	return nil
}

// ListNotes delegates to the index.
func (s *Service) ListNotes(ctx context.Context, limit, offset int, category, sort string) ([]NoteListItem, int, error) {
	rows, total, err := s.db.ListNotes(limit, offset, category, sort)
	if err != nil {
		return nil, 0, err
	}
	items := make([]NoteListItem, 0, len(rows))
	for _, r := range rows {
		items = append(items, NoteListItem{
			ID:         r.ID,
			Path:       r.Path,
			Title:      r.Title,
			Categories: nonNilSlice(r.Categories),
			WordCount:  r.WordCount,
			UpdatedAt:  r.UpdatedAt,
		})
	}
	return items, total, nil
}

// Search delegates a full-text query to the index.
func (s *Service) Search(ctx context.Context, query string, limit int) ([]index.SearchResult, error) {
	return s.db.Search(query, limit)
}

// Categories delegates to the index.
func (s *Service) Categories(ctx context.Context) ([]index.CategoryCount, error) {
	return s.db.Categories()
}

// ApplyCommand runs one editor command against the note's session and
// persists the result when the tree changed.
func (s *Service) ApplyCommand(ctx context.Context, id string, cmd editor.Command) (*EditorState, error) {
	sess, err := s.session(id)
	if err != nil {
		return nil, err
	}
	doc, rev, changed := sess.editor.Apply(cmd)
	if changed {
		if err := s.persist(sess.path, sess.meta, doc); err != nil {
			return nil, err
		}
		s.emit("note.updated", id, sess.path)
	}
	return &EditorState{
		Document: doc,
		Revision: rev,
		CanUndo:  sess.editor.CanUndo(),
		CanRedo:  sess.editor.CanRedo(),
		Changed:  changed,
	}, nil
}

// Undo reverts the note's last command.
func (s *Service) Undo(ctx context.Context, id string) (*EditorState, error) {
	return s.ApplyCommand(ctx, id, editor.Command{Kind: editor.CmdUndo})
}

// Redo reapplies the note's last undone command.
func (s *Service) Redo(ctx context.Context, id string) (*EditorState, error) {
	return s.ApplyCommand(ctx, id, editor.Command{Kind: editor.CmdRedo})
}

// CheckSpelling runs an annotation pass over the note's current tree. The
// rewritten tree is swapped in only if the revision did not move while the
// oracle was consulted; a stale result is discarded, never surfaced.
func (s *Service) CheckSpelling(ctx context.Context, id string) (*SpellReport, error) {
	sess, err := s.session(id)
	if err != nil {
		return nil, err
	}
	doc, rev := sess.editor.Document()
	annotated := s.engine.Annotate(ctx, doc)
	if !sess.editor.Replace(annotated, rev, false) {
		s.logger.Debug("annotation pass discarded", "id", id, "revision", rev, "error", apperr.ErrStaleRevision)
		doc, rev = sess.editor.Document()
		return &SpellReport{Document: doc, Revision: rev, Misspelled: nonNilSlice(doc.MisspelledWords())}, nil
	}
	s.emit("spellcheck.completed", id, sess.path)
	return &SpellReport{Document: annotated, Revision: rev, Misspelled: nonNilSlice(annotated.MisspelledWords())}, nil
}

// Suggest selects the annotation span at anchor and fetches replacement
// candidates for word. The fetch settles synchronously; a failed oracle
// call settles as an empty Ready-equivalent list.
func (s *Service) Suggest(ctx context.Context, id, word string, anchor spell.Anchor) (*Suggestions, error) {
	sess, err := s.session(id)
	if err != nil {
		return nil, err
	}
	token := sess.suggest.Select(word, anchor, sess.editor.Revision())
	sess.suggest.Fetch(ctx, token)
	state, w, list := sess.suggest.State()
	return &Suggestions{Word: w, State: string(state), List: nonNilSlice(list)}, nil
}

// ApplySuggestion replaces the selected span with replacement, consuming
// the suggestion selection. The span bounds come from the session anchor,
// so a click that was never made (or already consumed) is a conflict — as
// is any edit applied since the selection, which moves the revision the
// anchor was stamped with and leaves it addressing the wrong bytes.
func (s *Service) ApplySuggestion(ctx context.Context, id, replacement string) (*SpellReport, error) {
	sess, err := s.session(id)
	if err != nil {
		return nil, err
	}
	_, anchor, anchoredAt, ok := sess.suggest.Accept()
	if !ok {
		return nil, fmt.Errorf("noteservice: apply suggestion: no settled selection: %w", apperr.ErrConflict)
	}
	cur, rev := sess.editor.Document()
	if rev != anchoredAt {
		return nil, fmt.Errorf("noteservice: apply suggestion: document moved since selection: %w", apperr.ErrConflict)
	}
	spanFormat := document.Format(0)
	if anchor.Block >= 0 && anchor.Block < len(cur.Blocks) {
		spanFormat = cur.Blocks[anchor.Block].FormatAt(anchor.Start)
	}
	sel := editor.Selection{
		StartBlock: anchor.Block, StartOffset: anchor.Start,
		EndBlock: anchor.Block, EndOffset: anchor.End,
	}
	doc, _, changed := sess.editor.Apply(editor.Command{Kind: editor.CmdDeleteRange, Selection: sel})
	if changed && replacement != "" {
		caret := editor.Selection{
			StartBlock: anchor.Block, StartOffset: anchor.Start,
			EndBlock: anchor.Block, EndOffset: anchor.Start,
		}
		doc, _, _ = sess.editor.Apply(editor.Command{
			Kind: editor.CmdInsertText, Text: replacement, Format: spanFormat, Selection: caret,
		})
	}
	if err := s.persist(sess.path, sess.meta, doc); err != nil {
		return nil, err
	}
	s.emit("note.updated", id, sess.path)
	// An edit invalidates every span; rerun the pass so the remaining
	// annotations are anchored to the new offsets.
	return s.CheckSpelling(ctx, id)
}

// AddToDictionary adds word to the custom allow list and strips its spans
// from the note without a full annotation pass.
func (s *Service) AddToDictionary(ctx context.Context, id, word string) (*SpellReport, error) {
	sess, err := s.session(id)
	if err != nil {
		return nil, err
	}
	doc, rev := sess.editor.Document()
	stripped := s.engine.AddToDictionary(word, doc)
	if !sess.editor.Replace(stripped, rev, false) {
		s.logger.Debug("span strip discarded", "id", id, "revision", rev, "error", apperr.ErrStaleRevision)
	}
	doc, rev = sess.editor.Document()
	return &SpellReport{Document: doc, Revision: rev, Misspelled: nonNilSlice(doc.MisspelledWords())}, nil
}

// Export renders the note in the requested format. The tree handed to the
// renderer is a frozen clone; an in-flight edit never tears an artifact.
func (s *Service) Export(ctx context.Context, id string, format export.Format) (*export.Result, error) {
	sess, err := s.session(id)
	if err != nil {
		return nil, err
	}
	doc, _ := sess.editor.Document()
	updatedAt := time.Now().UTC()
	if info, err := s.fileInfo(sess.path); err == nil {
		updatedAt = info.UpdatedAt
	}
	req := export.Request{
		ID:         sess.meta.ID,
		Title:      sess.meta.Title,
		Doc:        doc,
		Categories: nonNilSlice(sess.meta.Categories),
		CreatedAt:  sess.meta.CreatedAt,
		UpdatedAt:  updatedAt,
		ExportedAt: time.Now().UTC(),
	}
	res, err := export.Export(format, req)
	if err != nil {
		return nil, err
	}
	return &res, nil
}

// RefreshSession drops the cached editing session for id so the next
// operation reloads the file from disk. Used by the watcher when a note
// changes outside the service.
func (s *Service) RefreshSession(id string) {
	s.sessions.Delete(id)
}

// session returns the live session for id, loading it from disk on first
// use.
func (s *Service) session(id string) (*session, error) {
	if cached, ok := s.sessions.Load(id); ok {
		return cached, nil
	}
	path, err := s.db.PathByID(id)
	if err != nil {
		return nil, err
	}
	raw, err := s.store.Read(path)
	if err != nil {
		return nil, fmt.Errorf("noteservice: read %s: %w", path, err)
	}
	meta, body, err := notefile.Parse(raw)
	if err != nil {
		return nil, fmt.Errorf("noteservice: parse %s: %w", path, err)
	}
	doc := document.Document{ID: meta.ID, Title: meta.Title, Blocks: document.Parse(body)}
	sess := &session{
		editor:  editor.NewSession(doc),
		suggest: spell.NewSession(s.engine.Oracle()),
		meta:    meta,
		path:    path,
	}
	return s.sessions.LoadOrStore(id, sess), nil
}

// persist writes the note file and refreshes its index row. Annotation
// spans are derived state; Flatten strips them before serialization.
func (s *Service) persist(path string, meta notefile.Meta, doc document.Document) error {
	body := doc.Flatten().Serialize()
	data, err := notefile.Encode(meta, body)
	if err != nil {
		return err
	}
	if err := s.store.Write(path, data); err != nil {
		return fmt.Errorf("noteservice: write %s: %w", path, err)
	}
	now := time.Now().UTC()
	row := index.NoteRow{
		Path:       path,
		ID:         meta.ID,
		Title:      meta.Title,
		Checksum:   checksum.Sum(data),
		Categories: nonNilSlice(meta.Categories),
		WordCount:  doc.WordCount(),
		UpdatedAt:  now,
	}
	if err := s.db.UpsertNote(row, doc.PlainText()); err != nil {
		s.logger.Warn("index upsert failed", "path", path, "error", err)
	}
	return nil
}

func (s *Service) buildDetail(path string, meta notefile.Meta, doc document.Document) (*NoteDetail, error) {
	body := doc.Flatten().Serialize()
	data, err := notefile.Encode(meta, body)
	if err != nil {
		return nil, err
	}
	updatedAt := time.Now().UTC()
	if info, err := s.fileInfo(path); err == nil {
		updatedAt = info.UpdatedAt
	}
	return &NoteDetail{
		ID:         meta.ID,
		Path:       path,
		Title:      meta.Title,
		Content:    body,
		Checksum:   checksum.Sum(data),
		Categories: nonNilSlice(meta.Categories),
		WordCount:  doc.WordCount(),
		CharCount:  doc.CharCount(),
		CreatedAt:  meta.CreatedAt,
		UpdatedAt:  updatedAt,
	}, nil
}

func (s *Service) fileInfo(path string) (storage.FileInfo, error) {
	infos, err := s.store.List(".")
	if err != nil {
		return storage.FileInfo{}, err
	}
	for _, info := range infos {
		if info.Path == path {
			return info, nil
		}
	}
	return storage.FileInfo{}, apperr.ErrNotFound
}

// notePath derives the vault file name for a new note: slugged title plus a
// short ID suffix so two notes may share a title.
func notePath(title, id string) string {
	slug := export.Sanitize(title)
	short := id
	if len(short) > 8 {
		short = short[:8]
	}
	if slug == "untitled" {
		return short + storage.NoteExt
	}
	return slug + "-" + short + storage.NoteExt
}

// nonNilSlice returns s, or an empty slice when s is nil, so JSON encodes
// [] instead of null.
func nonNilSlice[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}
