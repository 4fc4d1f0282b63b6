package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/D3nams/Notepad/internal/noteservice"
)

// NewRouter creates a chi router with all API routes mounted.
// authEnabled controls whether Bearer token auth is enforced.
// sseHandler, if non-nil, is mounted at GET /events inside the auth group.
func NewRouter(svc *noteservice.Service, authEnabled bool, token string, sseHandler http.Handler) chi.Router {
	h := NewHandler(svc)

	r := chi.NewRouter()
	r.Use(AuthMiddleware(authEnabled, token))

	// Notes CRUD.
	r.Get("/notes", h.ListNotes)
	r.Post("/notes", h.CreateNote)
	r.Get("/notes/{id}", h.GetNote)
	r.Put("/notes/{id}", h.UpdateNote)
	r.Delete("/notes/{id}", h.DeleteNote)

	// Editing.
	r.Post("/notes/{id}/commands", h.ApplyCommand)

	// Spelling.
	r.Post("/notes/{id}/spellcheck", h.CheckSpelling)
	r.Get("/notes/{id}/suggestions", h.Suggestions)
	r.Post("/notes/{id}/suggestions/apply", h.ApplySuggestion)
	r.Post("/notes/{id}/dictionary", h.AddToDictionary)

	// Export.
	r.Get("/notes/{id}/export", h.ExportNote)
	r.Get("/export/formats", h.ExportFormats)

	// Search and categories.
	r.Get("/search", h.Search)
	r.Get("/categories", h.Categories)

	// SSE endpoint (protected by same auth middleware).
	if sseHandler != nil {
		r.Get("/events", sseHandler.ServeHTTP)
	}

	return r
}
