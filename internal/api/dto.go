package api

import (
	"github.com/D3nams/Notepad/internal/editor"
	"github.com/D3nams/Notepad/internal/noteservice"
)

// CreateNoteRequest is the request body for creating a note.
type CreateNoteRequest struct {
	Title      string   `json:"title"`
	Content    string   `json:"content"`
	Categories []string `json:"categories,omitempty"`
}

// UpdateNoteRequest is the request body for replacing a note wholesale.
// Optimistic concurrency rides on the If-Match header, not the body.
type UpdateNoteRequest struct {
	Title      string   `json:"title,omitempty"`
	Content    string   `json:"content"`
	Categories []string `json:"categories,omitempty"`
}

// CommandRequest is the request body for the editor command endpoint.
type CommandRequest = editor.Command

// ApplySuggestionRequest carries the replacement chosen from the
// suggestion list.
type ApplySuggestionRequest struct {
	Replacement string `json:"replacement"`
}

// DictionaryRequest adds a word to the custom dictionary.
type DictionaryRequest struct {
	Word string `json:"word"`
}

// NoteDetail is the full note response type (aliased from the domain layer).
type NoteDetail = noteservice.NoteDetail

// NoteListItem is a lightweight item in a list response (aliased from the domain layer).
type NoteListItem = noteservice.NoteListItem

// NoteListResponse wraps paginated note listings.
type NoteListResponse struct {
	Notes []NoteListItem `json:"notes"`
	Total int            `json:"total"`
}

// FormatsResponse lists the export formats the server supports.
type FormatsResponse struct {
	Formats []string `json:"formats"`
}
