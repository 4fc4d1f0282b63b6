package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/D3nams/Notepad/internal/apperr"
	"github.com/D3nams/Notepad/internal/export"
	"github.com/D3nams/Notepad/internal/spell"
)

// ApplyCommand handles POST /api/notes/{id}/commands. The body is one
// editor command; undo and redo are commands like any other.
//
//	@Summary		Apply an editor command to a note
//	@Tags			editing
//	@Accept			json
//	@Produce		json
//	@Param			id		path		string			true	"Note ID"
//	@Param			body	body		CommandRequest	true	"Command"
//	@Success		200		{object}	noteservice.EditorState
//	@Failure		400		{object}	errResponse
//	@Failure		404		{object}	errResponse
//	@Security		BearerAuth
//	@Router			/notes/{id}/commands [post]
func (h *Handler) ApplyCommand(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, 1<<20)
	id := noteID(r)
	var cmd CommandRequest
	if err := json.NewDecoder(r.Body).Decode(&cmd); err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody("invalid JSON body"))
		return
	}
	if cmd.Kind == "" {
		writeJSON(w, http.StatusBadRequest, errorBody("command kind is required"))
		return
	}
	state, err := h.svc.ApplyCommand(r.Context(), id, cmd)
	if err != nil {
		h.writeServiceError(w, "apply command", id, err)
		return
	}
	writeJSON(w, http.StatusOK, state)
}

// CheckSpelling handles POST /api/notes/{id}/spellcheck.
//
//	@Summary		Run a spell-check annotation pass over a note
//	@Tags			spelling
//	@Produce		json
//	@Param			id	path		string	true	"Note ID"
//	@Success		200	{object}	noteservice.SpellReport
//	@Failure		404	{object}	errResponse
//	@Security		BearerAuth
//	@Router			/notes/{id}/spellcheck [post]
func (h *Handler) CheckSpelling(w http.ResponseWriter, r *http.Request) {
	id := noteID(r)
	report, err := h.svc.CheckSpelling(r.Context(), id)
	if err != nil {
		h.writeServiceError(w, "spellcheck", id, err)
		return
	}
	writeJSON(w, http.StatusOK, report)
}

// Suggestions handles GET /api/notes/{id}/suggestions. The query carries
// the clicked span: word plus its block/start/end anchor.
//
//	@Summary		Fetch replacement suggestions for a misspelled span
//	@Tags			spelling
//	@Produce		json
//	@Param			id		path		string	true	"Note ID"
//	@Param			word	query		string	true	"Misspelled word"
//	@Param			block	query		int		true	"Block index of the span"
//	@Param			start	query		int		true	"Span start offset"
//	@Param			end		query		int		true	"Span end offset"
//	@Success		200		{object}	noteservice.Suggestions
//	@Failure		400		{object}	errResponse
//	@Failure		404		{object}	errResponse
//	@Security		BearerAuth
//	@Router			/notes/{id}/suggestions [get]
func (h *Handler) Suggestions(w http.ResponseWriter, r *http.Request) {
	id := noteID(r)
	q := r.URL.Query()
	word := q.Get("word")
	if word == "" {
		writeJSON(w, http.StatusBadRequest, errorBody("query parameter 'word' is required"))
		return
	}
	anchor, err := parseAnchor(q.Get("block"), q.Get("start"), q.Get("end"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody(err.Error()))
		return
	}
	sugg, err := h.svc.Suggest(r.Context(), id, word, anchor)
	if err != nil {
		h.writeServiceError(w, "suggestions", id, err)
		return
	}
	writeJSON(w, http.StatusOK, sugg)
}

// ApplySuggestion handles POST /api/notes/{id}/suggestions/apply.
//
//	@Summary		Replace the selected span with a chosen suggestion
//	@Tags			spelling
//	@Accept			json
//	@Produce		json
//	@Param			id		path		string					true	"Note ID"
//	@Param			body	body		ApplySuggestionRequest	true	"Chosen replacement"
//	@Success		200		{object}	noteservice.SpellReport
//	@Failure		400		{object}	errResponse
//	@Failure		404		{object}	errResponse
//	@Failure		409		{object}	errResponse
//	@Security		BearerAuth
//	@Router			/notes/{id}/suggestions/apply [post]
func (h *Handler) ApplySuggestion(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, 1<<20)
	id := noteID(r)
	var req ApplySuggestionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody("invalid JSON body"))
		return
	}
	report, err := h.svc.ApplySuggestion(r.Context(), id, req.Replacement)
	if err != nil {
		if errors.Is(err, apperr.ErrConflict) {
			writeJSON(w, http.StatusConflict, errorBody("no suggestion selection to apply"))
			return
		}
		h.writeServiceError(w, "apply suggestion", id, err)
		return
	}
	writeJSON(w, http.StatusOK, report)
}

// AddToDictionary handles POST /api/notes/{id}/dictionary.
//
//	@Summary		Add a word to the custom dictionary
//	@Tags			spelling
//	@Accept			json
//	@Produce		json
//	@Param			id		path		string				true	"Note ID"
//	@Param			body	body		DictionaryRequest	true	"Word to allow"
//	@Success		200		{object}	noteservice.SpellReport
//	@Failure		400		{object}	errResponse
//	@Failure		404		{object}	errResponse
//	@Security		BearerAuth
//	@Router			/notes/{id}/dictionary [post]
func (h *Handler) AddToDictionary(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, 1<<20)
	id := noteID(r)
	var req DictionaryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody("invalid JSON body"))
		return
	}
	if req.Word == "" {
		writeJSON(w, http.StatusBadRequest, errorBody("word is required"))
		return
	}
	report, err := h.svc.AddToDictionary(r.Context(), id, req.Word)
	if err != nil {
		h.writeServiceError(w, "add to dictionary", id, err)
		return
	}
	writeJSON(w, http.StatusOK, report)
}

// ExportNote handles GET /api/notes/{id}/export. The artifact is returned
// as an attachment with its derived filename.
//
//	@Summary		Export a note in one of the supported formats
//	@Tags			export
//	@Param			id		path	string	true	"Note ID"
//	@Param			format	query	string	true	"Export format"
//	@Success		200		"Rendered artifact"
//	@Failure		400		{object}	errResponse
//	@Failure		404		{object}	errResponse
//	@Security		BearerAuth
//	@Router			/notes/{id}/export [get]
func (h *Handler) ExportNote(w http.ResponseWriter, r *http.Request) {
	id := noteID(r)
	format := export.Format(r.URL.Query().Get("format"))
	if format == "" {
		writeJSON(w, http.StatusBadRequest, errorBody("query parameter 'format' is required"))
		return
	}
	if !export.Supported(format) {
		writeJSON(w, http.StatusBadRequest, errorBody(fmt.Sprintf("unsupported format %q", format)))
		return
	}
	res, err := h.svc.Export(r.Context(), id, format)
	if err != nil {
		if errors.Is(err, apperr.ErrExportEncoding) {
			slog.Error("export encode failed", slog.String("id", id), slog.String("format", string(format)), slog.String("error", err.Error()))
			writeJSON(w, http.StatusInternalServerError, errorBody("export encoding failed"))
			return
		}
		h.writeServiceError(w, "export", id, err)
		return
	}
	w.Header().Set("Content-Type", res.ContentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", res.Filename))
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(res.Data); err != nil {
		slog.Error("export write failed", slog.String("id", id), slog.String("error", err.Error()))
	}
}

// ExportFormats handles GET /api/export/formats.
//
//	@Summary		List supported export formats
//	@Tags			export
//	@Produce		json
//	@Success		200	{object}	FormatsResponse
//	@Security		BearerAuth
//	@Router			/export/formats [get]
func (h *Handler) ExportFormats(w http.ResponseWriter, r *http.Request) {
	formats := export.Formats()
	names := make([]string, 0, len(formats))
	for _, f := range formats {
		names = append(names, string(f))
	}
	writeJSON(w, http.StatusOK, FormatsResponse{Formats: names})
}

func (h *Handler) writeServiceError(w http.ResponseWriter, op, id string, err error) {
	if errors.Is(err, apperr.ErrNotFound) {
		writeJSON(w, http.StatusNotFound, errorBody("not found"))
		return
	}
	slog.Error(op+" failed", slog.String("id", id), slog.String("error", err.Error()))
	writeJSON(w, http.StatusInternalServerError, errorBody("internal error"))
}

func parseAnchor(block, start, end string) (spell.Anchor, error) {
	b, err := strconv.Atoi(block)
	if err != nil {
		return spell.Anchor{}, errors.New("query parameter 'block' must be an integer")
	}
	s, err := strconv.Atoi(start)
	if err != nil {
		return spell.Anchor{}, errors.New("query parameter 'start' must be an integer")
	}
	e, err := strconv.Atoi(end)
	if err != nil {
		return spell.Anchor{}, errors.New("query parameter 'end' must be an integer")
	}
	if b < 0 || s < 0 || e < s {
		return spell.Anchor{}, errors.New("anchor out of range")
	}
	return spell.Anchor{Block: b, Start: s, End: e}, nil
}
