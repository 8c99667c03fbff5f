package handlers

import (
	"net/http"
	"strconv"

	"github.com/crossbom/crossbom/internal/history"
	"github.com/crossbom/crossbom/internal/observability"
)

// RunsHandler serves the processing-run history.
type RunsHandler struct {
	logger *observability.Logger
	store  *history.Store
}

// NewRunsHandler creates a runs handler.
func NewRunsHandler(logger *observability.Logger, store *history.Store) *RunsHandler {
	return &RunsHandler{logger: logger, store: store}
}

// List handles GET /runs?limit=N, newest first.
func (h *RunsHandler) List(w http.ResponseWriter, r *http.Request) {
	if h.store == nil {
		writeJSON(w, http.StatusOK, []*history.Run{})
		return
	}

	limit := 0
	if v := r.URL.Query().Get("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			limit = n
		}
	}

	runs, err := h.store.List(r.Context(), limit)
	if err != nil {
		h.logger.Error().Err(err).Msg("list runs failed")
		writeError(w, http.StatusInternalServerError, "failed to list runs", err.Error())
		return
	}
	if runs == nil {
		runs = []*history.Run{}
	}
	writeJSON(w, http.StatusOK, runs)
}
