package httpapi

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/go-chi/chi/v5"

	"github.com/custodia-labs/horizon/internal/core/domain"
	"github.com/custodia-labs/horizon/internal/logger"
)

// EntityResponse is returned by the entity detail endpoint. Exactly one of
// Document and Entity is set.
type EntityResponse struct {
	Kind     domain.EntityKind     `json:"kind"`
	Document *domain.Document      `json:"document,omitempty"`
	Entity   *domain.DerivedEntity `json:"entity,omitempty"`
}

func (s *Server) handleCatalog(w http.ResponseWriter, r *http.Request) {
	options := make(map[string][]domain.TaxonomyTerm, len(domain.FacetKinds))
	if s.catalog != nil {
		catalog, err := s.catalog.Catalog(r.Context())
		if err != nil {
			writeError(w, err)
			return
		}
		for _, kind := range domain.FacetKinds {
			terms := catalog.Options(kind)
			if terms == nil {
				terms = []domain.TaxonomyTerm{}
			}
			options[kind.String()] = terms
		}
	}
	writeJSON(w, http.StatusOK, options)
}

func (s *Server) handleLibrary(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	filter, err := s.filterFrom(r.Context(), q)
	if err != nil {
		writeError(w, err)
		return
	}
	windows, err := windowsFrom(q)
	if err != nil {
		writeError(w, err)
		return
	}

	view, err := s.library.Query(r.Context(), viewerFrom(r), filter, windows)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, view)
}

// handleEntity serves a detail page. Entities the viewer may not see are
// reported as not found.
func (s *Server) handleEntity(w http.ResponseWriter, r *http.Request) {
	kind, err := kindFrom(chi.URLParam(r, "kind"))
	if err != nil {
		writeError(w, err)
		return
	}
	id := chi.URLParam(r, "id")
	viewer := viewerFrom(r)

	visible, err := s.library.CanView(r.Context(), viewer, kind, id)
	if err != nil {
		writeError(w, err)
		return
	}
	if !visible {
		writeError(w, errors.Wrapf(domain.ErrNotFound, "%s %s", kind, id))
		return
	}

	filtered, err := s.library.Filter(r.Context(), viewer, domain.DefaultFilter())
	if err != nil {
		writeError(w, err)
		return
	}
	resp := EntityResponse{Kind: kind}
	if kind == domain.KindDocument {
		for i := range filtered.Documents {
			if filtered.Documents[i].ID == id {
				resp.Document = &filtered.Documents[i]
				break
			}
		}
	} else {
		for i, e := range filtered.Derived[kind] {
			if e.ID == id {
				resp.Entity = &filtered.Derived[kind][i]
				break
			}
		}
	}
	if resp.Document == nil && resp.Entity == nil {
		// Deleted between the two reads.
		writeError(w, errors.Wrapf(domain.ErrNotFound, "%s %s", kind, id))
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleNeighbors(w http.ResponseWriter, r *http.Request) {
	kind, err := kindFrom(chi.URLParam(r, "kind"))
	if err != nil {
		writeError(w, err)
		return
	}
	filter, err := s.filterFrom(r.Context(), r.URL.Query())
	if err != nil {
		writeError(w, err)
		return
	}

	n, err := s.library.Neighbors(r.Context(), viewerFrom(r), filter, kind, chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, n)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.Warn("Encoding response: %v", err)
	}
}

// writeError maps domain errors onto status codes. Hints are appended to
// the message for client errors.
func writeError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, domain.ErrNotFound):
		status = http.StatusNotFound
	case errors.Is(err, domain.ErrUnknownEntityKind),
		errors.Is(err, domain.ErrUnknownFacet),
		errors.Is(err, domain.ErrInvalidInput):
		status = http.StatusBadRequest
	}

	msg := err.Error()
	if status == http.StatusInternalServerError {
		logger.Error("HTTP API: %v", err)
		msg = "internal error"
	} else if hints := errors.GetAllHints(err); len(hints) > 0 {
		msg += " (" + strings.Join(hints, "; ") + ")"
	}
	jsonError(w, msg, status)
}

func jsonError(w http.ResponseWriter, msg string, code int) {
	writeJSON(w, code, map[string]string{"error": msg})
}
