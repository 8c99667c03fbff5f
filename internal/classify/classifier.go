// Package classify applies the four-way activation-status decision to
// each looked-up row: deprecate, flag duplicates, flag unknowns, or skip
// obsolete parts.
package classify

import (
	"fmt"
	"strings"

	"github.com/crossbom/crossbom/internal/columns"
	"github.com/crossbom/crossbom/internal/lookup"
	"github.com/crossbom/crossbom/internal/observability"
	"github.com/crossbom/crossbom/internal/table"
)

// Canonical status codes. These are business codes carried verbatim in
// Master BOM files, not internal identifiers.
const (
	StatusDeprecated = "D"
	StatusDuplicate  = "0"
	StatusObsolete   = "X"
	StatusActive     = "A"
)

// Action values stamped on output rows.
const (
	ActionUpdated        = "Updated"
	ActionDuplicateAdded = "Duplicate_Added"
	ActionUnknownAdded   = "Unknown_Added"
	ActionSkipped        = "Skipped"
	ActionNoAction       = "No_Action"
	ActionUnknownStatus  = "Unknown_Status"
)

// Annotation columns added to every processed row.
const (
	NotesColumn  = "Notes"
	ActionColumn = "Action"
)

// Notes texts per branch.
const (
	notesDeprecated = "Status D updated to X"
	notesDuplicate  = "Duplicate or uncertain match - manual verification needed"
	notesUnknown    = "Unknown PN - potential new entry"
	notesObsolete   = "Component already marked as old - skipped"
	notesActive     = "Component active - no action required"
)

// Counts accumulates per-branch classification counters.
type Counts struct {
	DUpdates      int
	Duplicates    int
	Unknowns      int
	Skipped       int
	NoAction      int
	UnknownStatus int
}

// Result holds the synthetic audit rows to append after the annotated
// working rows, plus the branch counters. The working table itself is
// annotated in place on the lookup result; the catalog passed to
// Classify is mutated for Deprecated rows, so callers hand in a copy.
type Result struct {
	Synthetic []table.Row
	Counts    Counts

	// SyntheticColumns lists the columns synthetic rows populate, in
	// output order, so the assembler can extend the table before
	// appending them.
	SyntheticColumns []string
}

// Classifier routes each row through the status state machine.
type Classifier struct {
	logger *observability.Logger
}

// New creates a classifier.
func New(logger *observability.Logger) *Classifier {
	return &Classifier{logger: logger.WithComponent("classify")}
}

// Classify visits every row of the lookup result once, in input order.
// Deprecated rows rewrite the matching catalog entries to X and are
// tagged Updated; duplicate and unknown rows stay untouched and emit a
// synthetic audit row instead; obsolete rows are tagged and skipped.
// Synthetic rows are collected for appending after all originals.
//
// The catalog argument must be the caller's own copy: the Deprecated
// branch writes to it.
func (c *Classifier) Classify(res *lookup.Result, catalog *table.Table) *Result {
	out := &Result{}

	work := res.Table
	work.EnsureColumn(NotesColumn)
	work.EnsureColumn(ActionColumn)

	colFor := func(role columns.Role) string {
		if col, ok := columns.Resolve(role, work.Columns); ok {
			return col
		}
		return string(role)
	}
	inPN := colFor(columns.RolePN)
	inProject := colFor(columns.RoleProject)
	inPrice := colFor(columns.RolePrice)
	inDescription := colFor(columns.RoleDescription)
	inSupplier := colFor(columns.RoleSupplier)

	out.SyntheticColumns = []string{
		inPN, inProject, inPrice, inDescription, inSupplier,
		lookup.StatusColumn, NotesColumn, ActionColumn,
	}
	blank := syntheticShape{
		pn: inPN, project: inProject,
		price: inPrice, description: inDescription, supplier: inSupplier,
	}

	for _, row := range work.Rows {
		row[NotesColumn] = ""
		row[ActionColumn] = ""

		raw, present := row.String(lookup.StatusColumn)
		status := strings.ToUpper(strings.TrimSpace(raw))

		switch {
		case !present:
			// Rows that lost their key upstream land here too; they are
			// routed as unknown rather than rejected.
			out.Synthetic = append(out.Synthetic, c.syntheticRow(row, blank, nil, notesUnknown, ActionUnknownAdded))
			out.Counts.Unknowns++

		case status == StatusDeprecated:
			c.deprecate(row, res, catalog)
			row[NotesColumn] = notesDeprecated
			row[ActionColumn] = ActionUpdated
			out.Counts.DUpdates++

		case status == StatusDuplicate:
			out.Synthetic = append(out.Synthetic, c.syntheticRow(row, blank, StatusDuplicate, notesDuplicate, ActionDuplicateAdded))
			out.Counts.Duplicates++

		case status == StatusObsolete:
			row[NotesColumn] = notesObsolete
			row[ActionColumn] = ActionSkipped
			out.Counts.Skipped++

		case status == StatusActive:
			row[NotesColumn] = notesActive
			row[ActionColumn] = ActionNoAction
			out.Counts.NoAction++

		default:
			row[NotesColumn] = fmt.Sprintf("Unrecognized status %q - manual review required", raw)
			row[ActionColumn] = ActionUnknownStatus
			out.Counts.UnknownStatus++
		}
	}

	c.logger.Info().
		Int("d_updates", out.Counts.DUpdates).
		Int("duplicates", out.Counts.Duplicates).
		Int("unknowns", out.Counts.Unknowns).
		Int("skipped", out.Counts.Skipped).
		Msg("classification completed")

	return out
}

// deprecate rewrites every catalog entry sharing the row's composite key
// from D to X.
func (c *Classifier) deprecate(row table.Row, res *lookup.Result, catalog *table.Table) {
	key, _ := row.String(lookup.KeyColumn)
	for _, catRow := range catalog.Rows {
		if res.CatalogKey(catRow) == key {
			catRow[res.CatalogStatusColumn] = StatusObsolete
		}
	}
}

// syntheticShape names the headers a synthetic audit row writes to,
// matching the working table's resolved headers.
type syntheticShape struct {
	pn, project, price, description, supplier string
}

// syntheticRow builds an audit row carrying the original part number and
// project with blank optional fields.
func (c *Classifier) syntheticRow(src table.Row, shape syntheticShape, status any, notes, action string) table.Row {
	pn, _ := src.String(shape.pn)
	project, _ := src.String(shape.project)
	return table.Row{
		shape.pn:            pn,
		shape.project:       project,
		shape.price:         "",
		shape.description:   "",
		shape.supplier:      "",
		NotesColumn:         notes,
		ActionColumn:        action,
		lookup.StatusColumn: status,
	}
}
