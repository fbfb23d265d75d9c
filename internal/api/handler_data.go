package api

import (
	"fmt"
	"net/http"
	"time"

	"cox_coop/internal/analytics"
	"cox_coop/internal/config"
	"cox_coop/internal/processing"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
)

type dataHandler struct {
	sheets analytics.GridFetcher
	tabs   config.Tabs
	now    func() time.Time
}

type rosterResponse struct {
	Creators   []processing.Creator  `json:"creators"`
	Count      int                   `json:"count"`
	Category   string                `json:"category,omitempty"`
	Categories []processing.Category `json:"categories"`
}

// Roster lists creators, optionally narrowed by ?category=.
func (h *dataHandler) Roster(w http.ResponseWriter, r *http.Request) {
	category := r.URL.Query().Get("category")
	creators := processing.FilterByContentType(
		analytics.LoadRoster(r.Context(), h.sheets, h.tabs.Roster),
		category,
	)
	if creators == nil {
		creators = []processing.Creator{}
	}

	writeJSON(w, http.StatusOK, rosterResponse{
		Creators:   creators,
		Count:      len(creators),
		Category:   category,
		Categories: processing.RosterCategories,
	})
}

func (h *dataHandler) Stats(w http.ResponseWriter, r *http.Request) {
	data := analytics.Load(r.Context(), h.sheets, h.tabs)
	writeJSON(w, http.StatusOK, data.Stats)
}

func (h *dataHandler) Analytics(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, analytics.Load(r.Context(), h.sheets, h.tabs))
}

// Export serves one entity kind as a CSV download.
func (h *dataHandler) Export(w http.ResponseWriter, r *http.Request) {
	kind := chi.URLParam(r, "kind")
	export := analytics.ExportCSV(analytics.Load(r.Context(), h.sheets, h.tabs))
	doc, ok := export.Document(kind)
	if !ok {
		writeError(w, http.StatusNotFound, fmt.Sprintf("Unknown export %q", kind))
		return
	}

	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, analytics.ExportFilename(kind, h.now())))
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write([]byte(doc)); err != nil {
		zerolog.Ctx(r.Context()).Warn().Err(err).Str("kind", kind).Msg("Failed to write export")
	}
}
