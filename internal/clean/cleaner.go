// Package clean normalizes raw supplier-file rows before lookup: text
// trimming, whitespace collapsing, optional uppercasing and ASCII
// stripping, and exclusion of rows missing required fields.
package clean

import (
	"strings"
	"unicode"

	"github.com/crossbom/crossbom/internal/columns"
	"github.com/crossbom/crossbom/internal/observability"
	"github.com/crossbom/crossbom/internal/table"
)

// Options controls the cleaning passes.
type Options struct {
	// Uppercase uppercases part-number and project values after trimming.
	Uppercase bool

	// StripNonASCII drops non-ASCII runes from text cells. Supplier
	// exports occasionally carry stray full-width characters.
	StripNonASCII bool

	// ExcludeInvalid moves rows missing a part number or project into
	// the excluded table instead of passing them downstream.
	ExcludeInvalid bool
}

// Stats counts what a cleaning run touched.
type Stats struct {
	RowsIn       int `json:"rows_in"`
	RowsOut      int `json:"rows_out"`
	RowsExcluded int `json:"rows_excluded"`
	CellsChanged int `json:"cells_changed"`
}

// Result is a cleaning outcome. Excluded rows are preserved verbatim so
// they can be reported back to the submitter.
type Result struct {
	Table    *table.Table
	Excluded *table.Table
	Stats    Stats
}

// textRoles are the roles whose cells get text normalization.
var textRoles = []columns.Role{
	columns.RolePN, columns.RoleProject,
	columns.RoleSupplier, columns.RoleDescription,
}

// upperRoles are the roles uppercased when Options.Uppercase is set.
var upperRoles = map[columns.Role]bool{
	columns.RolePN:      true,
	columns.RoleProject: true,
}

// Cleaner applies the cleaning passes to a table.
type Cleaner struct {
	opts   Options
	logger *observability.Logger
}

// New creates a cleaner.
func New(opts Options, logger *observability.Logger) *Cleaner {
	return &Cleaner{opts: opts, logger: logger.WithComponent("clean")}
}

// Clean returns a cleaned copy of the input. The original table is
// never modified.
func (c *Cleaner) Clean(in *table.Table) *Result {
	res := &Result{
		Table:    table.New(in.Columns...),
		Excluded: table.New(in.Columns...),
	}
	res.Stats.RowsIn = in.Len()

	mapping := columns.ResolveColumns(in.Columns)
	pnCol := mapping[columns.RolePN]
	projectCol := mapping[columns.RoleProject]

	for _, src := range in.Rows {
		row := src.Clone()

		for _, role := range textRoles {
			col, ok := mapping[role]
			if !ok {
				continue
			}
			raw, ok := row.String(col)
			if !ok {
				continue
			}
			cleaned := c.cleanText(raw, upperRoles[role])
			if cleaned != raw {
				row[col] = cleaned
				res.Stats.CellsChanged++
			}
		}

		if c.opts.ExcludeInvalid && c.missingRequired(row, pnCol, projectCol) {
			res.Excluded.Append(src.Clone())
			res.Stats.RowsExcluded++
			continue
		}

		res.Table.Append(row)
	}
	res.Stats.RowsOut = res.Table.Len()

	c.logger.Info().
		Int("rows_in", res.Stats.RowsIn).
		Int("rows_out", res.Stats.RowsOut).
		Int("rows_excluded", res.Stats.RowsExcluded).
		Int("cells_changed", res.Stats.CellsChanged).
		Msg("cleaning completed")

	return res
}

// cleanText trims, collapses inner whitespace and applies the optional
// uppercase and ASCII passes.
func (c *Cleaner) cleanText(s string, upper bool) string {
	if c.opts.StripNonASCII {
		s = stripNonASCII(s)
	}
	s = strings.Join(strings.Fields(s), " ")
	if upper && c.opts.Uppercase {
		s = strings.ToUpper(s)
	}
	return s
}

func (c *Cleaner) missingRequired(row table.Row, pnCol, projectCol string) bool {
	if pnCol == "" || projectCol == "" {
		return false
	}
	pn, _ := row.String(pnCol)
	project, _ := row.String(projectCol)
	return strings.TrimSpace(pn) == "" || strings.TrimSpace(project) == ""
}

func stripNonASCII(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if r <= unicode.MaxASCII {
			b.WriteRune(r)
		}
	}
	return b.String()
}
