package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"github.com/crossbom/crossbom/internal/clean"
	"github.com/crossbom/crossbom/internal/history"
	"github.com/crossbom/crossbom/internal/lookup"
	"github.com/crossbom/crossbom/internal/observability"
	"github.com/crossbom/crossbom/internal/process"
	"github.com/crossbom/crossbom/internal/sheet"
)

// ProcessHandler runs the cross-reference pipeline over an uploaded
// file and the configured Master BOM.
type ProcessHandler struct {
	logger    *observability.Logger
	processor *process.Processor
	cleaner   *clean.Cleaner
	catalog   CatalogLoader
	store     *history.Store // nil disables run recording

	uploadDir      string
	outputDir      string
	masterPath     string
	defaultProject string
	colors         sheet.HighlightColors
}

// ProcessHandlerConfig holds the handler's wiring.
type ProcessHandlerConfig struct {
	UploadDir      string
	OutputDir      string
	MasterPath     string
	DefaultProject string
	Colors         sheet.HighlightColors
}

// NewProcessHandler creates a process handler.
func NewProcessHandler(
	logger *observability.Logger,
	processor *process.Processor,
	cleaner *clean.Cleaner,
	catalog CatalogLoader,
	store *history.Store,
	cfg ProcessHandlerConfig,
) *ProcessHandler {
	return &ProcessHandler{
		logger:         logger,
		processor:      processor,
		cleaner:        cleaner,
		catalog:        catalog,
		store:          store,
		uploadDir:      cfg.UploadDir,
		outputDir:      cfg.OutputDir,
		masterPath:     cfg.MasterPath,
		defaultProject: cfg.DefaultProject,
		colors:         cfg.Colors,
	}
}

// ProcessRequestDTO is the request body for a processing run.
type ProcessRequestDTO struct {
	InputFile     string `json:"input_file"`
	ProjectColumn string `json:"project_column,omitempty"`
	KeyColumn     string `json:"key_column,omitempty"`
	OutputFormat  string `json:"output_format,omitempty"` // xlsx (default) or csv
}

// ProcessResponseDTO is the processing result summary.
type ProcessResponseDTO struct {
	RunID         string        `json:"run_id"`
	OutputFile    string        `json:"output_file"`
	ProjectColumn string        `json:"project_column"`
	Stats         process.Stats `json:"stats"`
	Cleaning      clean.Stats   `json:"cleaning"`
}

// Process handles POST /process.
func (h *ProcessHandler) Process(w http.ResponseWriter, r *http.Request) {
	var req ProcessRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}
	if req.InputFile == "" {
		writeError(w, http.StatusBadRequest, "input_file is required", "")
		return
	}

	projectColumn := req.ProjectColumn
	if projectColumn == "" {
		projectColumn = h.defaultProject
	}

	inputPath := filepath.Join(h.uploadDir, filepath.Base(req.InputFile))
	input, err := sheet.ReadFile(inputPath)
	if err != nil {
		writeError(w, http.StatusBadRequest, "failed to read input file", err.Error())
		return
	}

	catalog, err := h.catalog()
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to load master bom", err.Error())
		return
	}

	cleaned := h.cleaner.Clean(input)

	res, err := h.processor.Process(cleaned.Table, catalog, projectColumn, req.KeyColumn)
	if err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, process.ErrMissingRequiredColumns) ||
			errors.Is(err, lookup.ErrProjectColumnNotFound) ||
			errors.Is(err, lookup.ErrNoPartNumberColumn) {
			status = http.StatusUnprocessableEntity
		}
		writeError(w, status, "processing failed", err.Error())
		return
	}

	runID := uuid.New()
	outputFile := outputName(req.InputFile, runID, req.OutputFormat)
	outputPath := filepath.Join(h.outputDir, outputFile)

	opts := sheet.WriteOptions{
		Colors:  h.colors,
		Summary: summaryEntries(res, cleaned),
	}
	if err := sheet.WriteFile(outputPath, res.Output, opts); err != nil {
		h.logger.Error().Err(err).Str("path", outputPath).Msg("write output failed")
		writeError(w, http.StatusInternalServerError, "failed to write output file", err.Error())
		return
	}

	if h.store != nil {
		run := &history.Run{
			ID:            runID,
			InputFile:     filepath.Base(req.InputFile),
			MasterFile:    h.masterPath,
			ProjectColumn: res.ProjectColumn,
			OutputFile:    outputFile,
			Stats:         res.Stats,
		}
		if err := h.store.Record(r.Context(), run); err != nil {
			h.logger.Warn().Err(err).Msg("failed to record run history")
		}
	}

	writeJSON(w, http.StatusOK, ProcessResponseDTO{
		RunID:         runID.String(),
		OutputFile:    outputFile,
		ProjectColumn: res.ProjectColumn,
		Stats:         res.Stats,
		Cleaning:      cleaned.Stats,
	})
}

// outputName derives the result filename from the input name and run id.
func outputName(inputFile string, runID uuid.UUID, format string) string {
	base := filepath.Base(inputFile)
	stem := strings.TrimSuffix(base, filepath.Ext(base))
	ext := ".xlsx"
	if strings.EqualFold(format, "csv") {
		ext = ".csv"
	}
	return fmt.Sprintf("%s_processed_%s%s", stem, runID.String()[:8], ext)
}

func summaryEntries(res *process.Result, cleaned *clean.Result) []sheet.SummaryEntry {
	s := res.Stats
	return []sheet.SummaryEntry{
		{Label: "Project column", Value: res.ProjectColumn},
		{Label: "Total processed", Value: s.TotalProcessed},
		{Label: "Lookup matches", Value: s.LookupMatches},
		{Label: "Lookup misses", Value: s.LookupMisses},
		{Label: "Match rate %", Value: s.MatchRatePct},
		{Label: "Status D updated", Value: s.StatusDUpdates},
		{Label: "Duplicates added", Value: s.Status0Duplicates},
		{Label: "Unknowns added", Value: s.StatusNaNUnknowns},
		{Label: "Skipped (X)", Value: s.StatusXSkipped},
		{Label: "No action", Value: s.StatusNoAction},
		{Label: "Rows excluded by cleaning", Value: cleaned.Stats.RowsExcluded},
	}
}
