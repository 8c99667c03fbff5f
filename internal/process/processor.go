// Package process runs the full cross-reference pipeline: resolve
// columns, look up statuses against the Master BOM, classify each row,
// and assemble the annotated output with run statistics.
package process

import (
	"errors"
	"fmt"
	"math"

	"github.com/crossbom/crossbom/internal/classify"
	"github.com/crossbom/crossbom/internal/columns"
	"github.com/crossbom/crossbom/internal/lookup"
	"github.com/crossbom/crossbom/internal/observability"
	"github.com/crossbom/crossbom/internal/table"
)

// ErrMissingRequiredColumns means the input table lacks a resolvable
// part-number or project column. Raised before any lookup or catalog
// work starts.
var ErrMissingRequiredColumns = errors.New("missing required columns")

// Stats summarizes one processing run. Counter names follow the
// reporting contract of the run summary JSON.
type Stats struct {
	TotalProcessed int `json:"total_processed"`
	LookupMatches  int `json:"lookup_matches"`
	LookupMisses   int `json:"lookup_misses"`

	StatusDUpdates    int `json:"status_d_updates"`
	Status0Duplicates int `json:"status_0_duplicates"`
	StatusNaNUnknowns int `json:"status_nan_unknowns"`
	StatusXSkipped    int `json:"status_x_skipped"`
	StatusNoAction    int `json:"status_no_action"`
	StatusUnknown     int `json:"status_unknown"`

	CatalogRows   int `json:"catalog_rows"`
	CatalogUnique int `json:"catalog_unique_keys"`

	MatchRatePct float64 `json:"match_rate_pct"`
	MissRatePct  float64 `json:"miss_rate_pct"`
}

// Result is the complete outcome of a run. Output holds original rows
// first, synthetic audit rows after, without internal columns.
// UpdatedCatalog is a copy of the caller's catalog with Deprecated
// entries rewritten; the caller's tables are never touched.
type Result struct {
	Output         *table.Table
	UpdatedCatalog *table.Table
	Stats          Stats

	// ProjectColumn is the catalog column statuses were read from after
	// resolution, which may differ from the requested name.
	ProjectColumn string
}

// Processor wires the pipeline stages together.
type Processor struct {
	logger     *observability.Logger
	engine     *lookup.Engine
	classifier *classify.Classifier
}

// New creates a processor.
func New(logger *observability.Logger) *Processor {
	return &Processor{
		logger:     logger.WithComponent("process"),
		engine:     lookup.NewEngine(logger),
		classifier: classify.New(logger),
	}
}

// Process runs the pipeline over an input table and a Master BOM
// catalog. projectColumn names (or hints at) the catalog column holding
// activation statuses for this run; keyColumn optionally overrides the
// input part-number header. A structural failure returns before any
// output exists, so a failed run never yields a partially updated
// catalog.
func (p *Processor) Process(input, catalog *table.Table, projectColumn, keyColumn string) (*Result, error) {
	if ok, missing := columns.ValidateRequired(input.Columns); !ok {
		return nil, fmt.Errorf("%w: input lacks %v", ErrMissingRequiredColumns, missing)
	}

	lres, err := p.engine.Lookup(input, catalog, projectColumn, keyColumn)
	if err != nil {
		return nil, err
	}

	updated := catalog.Clone()
	cres := p.classifier.Classify(lres, updated)

	out := lres.Table
	for _, col := range cres.SyntheticColumns {
		out.EnsureColumn(col)
	}
	for _, row := range cres.Synthetic {
		out.Append(row)
	}
	out.DropColumn(lookup.KeyColumn)

	stats := Stats{
		TotalProcessed:    input.Len(),
		LookupMatches:     lres.Matches,
		LookupMisses:      lres.Misses,
		StatusDUpdates:    cres.Counts.DUpdates,
		Status0Duplicates: cres.Counts.Duplicates,
		StatusNaNUnknowns: cres.Counts.Unknowns,
		StatusXSkipped:    cres.Counts.Skipped,
		StatusNoAction:    cres.Counts.NoAction,
		StatusUnknown:     cres.Counts.UnknownStatus,
		CatalogRows:       lres.CatalogRows,
		CatalogUnique:     lres.CatalogUnique,
	}
	if stats.TotalProcessed > 0 {
		stats.MatchRatePct = round2(float64(stats.LookupMatches) / float64(stats.TotalProcessed) * 100)
		stats.MissRatePct = round2(float64(stats.LookupMisses) / float64(stats.TotalProcessed) * 100)
	}

	p.logger.Info().
		Int("total_processed", stats.TotalProcessed).
		Int("matches", stats.LookupMatches).
		Int("misses", stats.LookupMisses).
		Float64("match_rate_pct", stats.MatchRatePct).
		Str("project_column", lres.CatalogStatusColumn).
		Msg("processing run completed")

	return &Result{
		Output:         out,
		UpdatedCatalog: updated,
		Stats:          stats,
		ProjectColumn:  lres.CatalogStatusColumn,
	}, nil
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
