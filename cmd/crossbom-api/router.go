// Package main provides the API router setup.
package main

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/crossbom/crossbom/cmd/crossbom-api/handlers"
	"github.com/crossbom/crossbom/cmd/crossbom-api/middleware"
	"github.com/crossbom/crossbom/internal/clean"
	"github.com/crossbom/crossbom/internal/config"
	"github.com/crossbom/crossbom/internal/history"
	"github.com/crossbom/crossbom/internal/observability"
	"github.com/crossbom/crossbom/internal/process"
	"github.com/crossbom/crossbom/internal/sheet"
	"github.com/crossbom/crossbom/internal/suggest"
	"github.com/crossbom/crossbom/internal/table"
)

// NewRouter creates the main API router with all routes configured.
func NewRouter(logger *observability.Logger, cfg *config.Config, store *history.Store) http.Handler {
	r := chi.NewRouter()

	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(chimiddleware.Recoverer)
	r.Use(middleware.CORS([]string{"*"}))
	r.Use(chimiddleware.Timeout(cfg.Server.WriteTimeout))

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"status":"healthy","service":"crossbom"}`))
	})

	// The catalog is loaded per request; runs never share table state.
	loadCatalog := func() (*table.Table, error) {
		return sheet.ReadFile(cfg.Paths.MasterBOM)
	}

	suggester := suggest.NewWithWindow(suggest.Window{
		Start: cfg.Columns.WindowStart,
		End:   cfg.Columns.WindowEnd,
	})
	cleaner := clean.New(clean.Options{
		Uppercase:      cfg.Cleaning.Uppercase,
		StripNonASCII:  cfg.Cleaning.StripNonASCII,
		ExcludeInvalid: cfg.Cleaning.ExcludeInvalid,
	}, logger)
	processor := process.New(logger)

	columnsHandler := handlers.NewColumnsHandler(logger, suggester, loadCatalog)
	processHandler := handlers.NewProcessHandler(logger, processor, cleaner, loadCatalog, store,
		handlers.ProcessHandlerConfig{
			UploadDir:      cfg.Paths.UploadDir,
			OutputDir:      cfg.Paths.OutputDir,
			MasterPath:     cfg.Paths.MasterBOM,
			DefaultProject: cfg.Columns.DefaultProject,
			Colors: sheet.HighlightColors{
				Updated: cfg.Highlight.Updated,
				Added:   cfg.Highlight.Added,
				Skipped: cfg.Highlight.Skipped,
			},
		})
	filesHandler := handlers.NewFilesHandler(logger, cfg.Paths.UploadDir, cfg.Paths.OutputDir,
		cfg.Upload.MaxSizeMB, cfg.Upload.Extensions)
	runsHandler := handlers.NewRunsHandler(logger, store)

	r.Route("/api/v1", func(r chi.Router) {
		r.Route("/columns", func(r chi.Router) {
			r.Get("/", columnsHandler.List)
			r.Post("/suggest", columnsHandler.Suggest)
			r.Post("/best", columnsHandler.Best)
		})

		r.Post("/upload", filesHandler.Upload)
		r.Post("/process", processHandler.Process)

		r.Route("/outputs", func(r chi.Router) {
			r.Get("/", filesHandler.ListOutputs)
			r.Get("/{filename}", filesHandler.Download)
		})

		r.Get("/runs", runsHandler.List)
	})

	return r
}
