package adapthttp

import (
	"errors"
	"net/http"

	"github.com/clementchett/Zane-Food-Tracker/internal/domain"
)

func (s *Server) handleListEntries(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{"items": s.entries.List(r.Context())})
}

func (s *Server) handleCreateEntry(w http.ResponseWriter, r *http.Request) {
	data, ok := s.readDraft(w, r)
	if !ok {
		return
	}
	items, err := s.entries.Create(r.Context(), data)
	if err != nil {
		s.writeEntryError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]any{"entry": items[len(items)-1], "items": items})
}

func (s *Server) handleUpdateEntry(w http.ResponseWriter, r *http.Request) {
	data, ok := s.readDraft(w, r)
	if !ok {
		return
	}
	entry := domain.FeedingEntry{ID: r.PathValue("id"), EntryData: data}
	items, err := s.entries.Update(r.Context(), entry)
	if err != nil {
		s.writeEntryError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"items": items})
}

func (s *Server) handleDeleteEntry(w http.ResponseWriter, r *http.Request) {
	items, err := s.entries.Delete(r.Context(), r.PathValue("id"))
	if err != nil {
		s.writeEntryError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"items": items})
}

// readDraft decodes and validates an entry form body. On failure it has
// already written the response.
func (s *Server) readDraft(w http.ResponseWriter, r *http.Request) (domain.EntryData, bool) {
	var draft domain.Draft
	if err := parseJSON(r, &draft); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return domain.EntryData{}, false
	}
	data, err := draft.Resolve(s.loc)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return domain.EntryData{}, false
	}
	return data, true
}

func (s *Server) writeEntryError(w http.ResponseWriter, err error) {
	if errors.Is(err, domain.ErrInvalidEntry) {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	s.log.Error("entry mutation failed", "error", err)
	writeError(w, http.StatusInternalServerError, err)
}
