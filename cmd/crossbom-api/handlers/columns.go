package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/crossbom/crossbom/internal/observability"
	"github.com/crossbom/crossbom/internal/suggest"
	"github.com/crossbom/crossbom/internal/table"
)

// CatalogLoader loads the configured Master BOM. The catalog is loaded
// per request; nothing is cached across runs.
type CatalogLoader func() (*table.Table, error)

// ColumnsHandler serves project-column discovery endpoints.
type ColumnsHandler struct {
	logger    *observability.Logger
	suggester *suggest.Suggester
	catalog   CatalogLoader
}

// NewColumnsHandler creates a columns handler.
func NewColumnsHandler(logger *observability.Logger, suggester *suggest.Suggester, catalog CatalogLoader) *ColumnsHandler {
	return &ColumnsHandler{logger: logger, suggester: suggester, catalog: catalog}
}

// List handles GET /columns: fill analysis of the Master BOM's
// candidate project columns.
func (h *ColumnsHandler) List(w http.ResponseWriter, r *http.Request) {
	catalog, err := h.catalog()
	if err != nil {
		h.logger.Error().Err(err).Msg("load master bom failed")
		writeError(w, http.StatusInternalServerError, "failed to load master bom", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, h.suggester.AnalyzeColumns(catalog))
}

// SuggestRequestDTO is the request body for column suggestion.
type SuggestRequestDTO struct {
	Hint       string   `json:"hint"`
	Candidates []string `json:"candidates,omitempty"`
}

// SuggestResponseDTO is the suggestion result.
type SuggestResponseDTO struct {
	Column     string  `json:"column"`
	Confidence float64 `json:"confidence"`
}

// Suggest handles POST /columns/suggest. When the request carries no
// candidate list, the Master BOM's candidate columns are used.
func (h *ColumnsHandler) Suggest(w http.ResponseWriter, r *http.Request) {
	var req SuggestRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	candidates := req.Candidates
	if len(candidates) == 0 {
		catalog, err := h.catalog()
		if err != nil {
			writeError(w, http.StatusInternalServerError, "failed to load master bom", err.Error())
			return
		}
		for _, c := range h.suggester.AnalyzeColumns(catalog).Columns {
			candidates = append(candidates, c.Name)
		}
	}

	column, confidence := h.suggester.Suggest(req.Hint, candidates)
	writeJSON(w, http.StatusOK, SuggestResponseDTO{Column: column, Confidence: confidence})
}

// BestResponseDTO is the best-project-column result.
type BestResponseDTO struct {
	Column     string           `json:"column"`
	Confidence float64          `json:"confidence"`
	Analysis   suggest.Analysis `json:"analysis"`
}

// Best handles POST /columns/best: hint-aware best project column over
// the Master BOM.
func (h *ColumnsHandler) Best(w http.ResponseWriter, r *http.Request) {
	var req SuggestRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	catalog, err := h.catalog()
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to load master bom", err.Error())
		return
	}

	column, confidence, analysis := h.suggester.FindBestProjectColumn(catalog, req.Hint)
	writeJSON(w, http.StatusOK, BestResponseDTO{
		Column:     column,
		Confidence: confidence,
		Analysis:   analysis,
	})
}
