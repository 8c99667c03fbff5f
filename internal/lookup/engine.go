// Package lookup builds composite part-number/project keys and performs
// the first-match-wins join between an input table and the Master BOM.
package lookup

import (
	"errors"
	"fmt"
	"strings"

	"github.com/crossbom/crossbom/internal/columns"
	"github.com/crossbom/crossbom/internal/observability"
	"github.com/crossbom/crossbom/internal/table"
)

const (
	// KeyColumn is the internal composite-key column added to the working
	// table during a run and stripped before output.
	KeyColumn = "lookup_key"

	// StatusColumn is the column the resolved catalog status lands in.
	StatusColumn = "Status"

	// Separator joins part number and project inside a composite key.
	Separator = "|"

	// DuplicateSentinel stands in for a catalog entry whose key exists
	// but whose status cell is empty. Such entries route to the
	// Duplicate branch downstream.
	DuplicateSentinel = "0"
)

var (
	// ErrNoPartNumberColumn means the catalog has no discoverable
	// part-number column. Fatal for the run.
	ErrNoPartNumberColumn = errors.New("no part-number column found in catalog")

	// ErrProjectColumnNotFound means the requested project column could
	// not be found or approximated in the catalog. Fatal for the run.
	ErrProjectColumnNotFound = errors.New("project column not found in catalog")
)

// passthroughRoles are catalog columns copied onto matched input rows
// when the input file lacks them.
var passthroughRoles = []columns.Role{
	columns.RolePrice, columns.RoleSupplier, columns.RoleDescription,
}

// Result carries the joined table and the resolved catalog geometry the
// classifier needs to apply catalog mutations.
type Result struct {
	// Table is a copy of the input with Status, passthrough columns and
	// the internal lookup key attached.
	Table *table.Table

	// CatalogPNColumn is the resolved catalog part-number header.
	CatalogPNColumn string

	// CatalogStatusColumn is the catalog column the status values were
	// read from: the requested project column after resolution.
	CatalogStatusColumn string

	// CatalogProjectKeyColumn is the catalog column supplying the
	// project part of composite keys. Empty for single-status-column
	// catalogs without a project column; there the status column's own
	// name stands in as the constant project part.
	CatalogProjectKeyColumn string

	Matches       int
	Misses        int
	CatalogRows   int
	CatalogUnique int
}

// CatalogKey builds the composite key for a catalog row using the
// geometry resolved during the lookup.
func (r *Result) CatalogKey(row table.Row) string {
	pn, _ := row.String(r.CatalogPNColumn)
	project := r.CatalogStatusColumn
	if r.CatalogProjectKeyColumn != "" {
		project, _ = row.String(r.CatalogProjectKeyColumn)
	}
	return CompositeKey(pn, project)
}

// Engine performs the composite-key lookup.
type Engine struct {
	logger *observability.Logger
}

// NewEngine creates a lookup engine.
func NewEngine(logger *observability.Logger) *Engine {
	return &Engine{logger: logger.WithComponent("lookup")}
}

// CompositeKey builds the stable join key for a part number and project
// value. Keys compare equal after trimming and uppercasing; a null cell
// contributes the empty string, never a language-specific null marker.
func CompositeKey(pn, project string) string {
	return strings.ToUpper(strings.TrimSpace(pn)) + Separator + strings.ToUpper(strings.TrimSpace(project))
}

// Lookup left-joins the input rows against the catalog. The catalog is
// deduplicated by composite key, first occurrence wins, matching the
// behavior of a spreadsheet VLOOKUP. Catalog entries whose status cell
// is empty are stored as the duplicate sentinel "0". Neither table is
// mutated.
func (e *Engine) Lookup(input, catalog *table.Table, projectColumn, keyColumn string) (*Result, error) {
	if keyColumn == "" {
		keyColumn = string(columns.RolePN)
	}

	catPN, ok := columns.Resolve(columns.RolePN, catalog.Columns)
	if !ok {
		return nil, fmt.Errorf("%w: available columns %v", ErrNoPartNumberColumn, catalog.Columns)
	}

	catStatus, err := e.resolveProjectColumn(catalog, projectColumn)
	if err != nil {
		return nil, err
	}

	// The project part of a catalog key comes from the catalog's project
	// column when it has one. Multi-project exports encode membership in
	// the status column itself, so its name doubles as the project part.
	catProjectKey := ""
	if col, ok := columns.Resolve(columns.RoleProject, catalog.Columns); ok && col != catStatus {
		catProjectKey = col
	}

	inPN := keyColumn
	if !input.HasColumn(inPN) {
		if resolved, ok := columns.Resolve(columns.RolePN, input.Columns); ok {
			inPN = resolved
		}
	}
	inProject, ok := columns.Resolve(columns.RoleProject, input.Columns)
	if !ok {
		inProject = string(columns.RoleProject)
	}

	res := &Result{
		CatalogPNColumn:         catPN,
		CatalogStatusColumn:     catStatus,
		CatalogProjectKeyColumn: catProjectKey,
		CatalogRows:             catalog.Len(),
	}

	// Deduplicate the catalog, first occurrence wins, and build the
	// key -> status dictionary from the status column.
	statusByKey := make(map[string]any)
	dedupRows := make([]table.Row, 0, catalog.Len())
	for _, row := range catalog.Rows {
		key := res.CatalogKey(row)
		if _, seen := statusByKey[key]; seen {
			continue
		}
		dedupRows = append(dedupRows, row)
		if v, ok := row.String(catStatus); ok {
			statusByKey[key] = v
		} else {
			statusByKey[key] = DuplicateSentinel
		}
	}
	res.CatalogUnique = len(dedupRows)

	passthrough := e.passthroughColumns(input, catalog, dedupRows, res)

	out := input.Clone()
	out.EnsureColumn(StatusColumn)
	for _, p := range passthrough {
		out.EnsureColumn(p.column)
	}
	out.EnsureColumn(KeyColumn)
	res.Table = out

	for _, row := range out.Rows {
		pn, _ := row.String(inPN)
		project, _ := row.String(inProject)
		key := CompositeKey(pn, project)
		row[KeyColumn] = key

		status, found := statusByKey[key]
		if found {
			row[StatusColumn] = status
			res.Matches++
			for _, p := range passthrough {
				if v, ok := p.values[key]; ok {
					row[p.column] = v
				}
			}
		} else {
			row[StatusColumn] = nil
			res.Misses++
		}
	}

	e.logger.Info().
		Str("catalog_pn_column", catPN).
		Str("catalog_status_column", catStatus).
		Int("catalog_rows", res.CatalogRows).
		Int("catalog_unique", res.CatalogUnique).
		Int("matches", res.Matches).
		Int("misses", res.Misses).
		Msg("lookup completed")

	return res, nil
}

// resolveProjectColumn finds the requested project column in the
// catalog: exact header first, then a case-insensitive or substring
// approximation, then the literal Project column as a degraded-mode
// fallback.
func (e *Engine) resolveProjectColumn(catalog *table.Table, projectColumn string) (string, error) {
	if projectColumn != "" {
		if catalog.HasColumn(projectColumn) {
			return projectColumn, nil
		}
		lower := strings.ToLower(projectColumn)
		for _, col := range catalog.Columns {
			cl := strings.ToLower(col)
			if cl == lower || strings.Contains(cl, lower) || strings.Contains(lower, cl) {
				return col, nil
			}
		}
	}

	if col, ok := columns.Resolve(columns.RoleProject, catalog.Columns); ok {
		if projectColumn != "" {
			e.logger.Warn().
				Str("requested", projectColumn).
				Str("fallback", col).
				Msg("project column not found, falling back to generic project column")
		}
		return col, nil
	}

	return "", fmt.Errorf("%w: %q not in %v", ErrProjectColumnNotFound, projectColumn, catalog.Columns)
}

type passthroughColumn struct {
	column string
	values map[string]any
}

// passthroughColumns maps catalog Price/Supplier/Description values by
// composite key for columns the input file does not already carry.
func (e *Engine) passthroughColumns(input, catalog *table.Table, dedupRows []table.Row, res *Result) []passthroughColumn {
	var out []passthroughColumn
	for _, role := range passthroughRoles {
		catCol, ok := columns.Resolve(role, catalog.Columns)
		if !ok {
			continue
		}
		if _, present := columns.Resolve(role, input.Columns); present {
			continue
		}
		values := make(map[string]any, len(dedupRows))
		for _, row := range dedupRows {
			if v, ok := row.String(catCol); ok {
				values[res.CatalogKey(row)] = v
			}
		}
		out = append(out, passthroughColumn{column: string(role), values: values})
	}
	return out
}
