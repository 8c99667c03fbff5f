package classify

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/crossbom/crossbom/internal/lookup"
	"github.com/crossbom/crossbom/internal/observability"
	"github.com/crossbom/crossbom/internal/table"
)

func fixtureCatalog(rows ...table.Row) *table.Table {
	t := table.New("PN", "Project", "Status")
	for _, r := range rows {
		t.Append(r)
	}
	return t
}

func fixtureInput(rows ...table.Row) *table.Table {
	t := table.New("PN", "Project")
	for _, r := range rows {
		t.Append(r)
	}
	return t
}

// run performs a lookup then classification on a catalog clone, the way
// the processor drives both.
func run(t *testing.T, input, catalog *table.Table) (*lookup.Result, *table.Table, *Result) {
	t.Helper()
	eng := lookup.NewEngine(observability.Nop())
	res, err := eng.Lookup(input, catalog, "Status", "PN")
	require.NoError(t, err)

	clone := catalog.Clone()
	out := New(observability.Nop()).Classify(res, clone)
	return res, clone, out
}

func TestClassify_DeprecatedRewritesCatalog(t *testing.T) {
	input := fixtureInput(table.Row{"PN": "RES001", "Project": "PROJ_A"})
	catalog := fixtureCatalog(
		table.Row{"PN": "RES001", "Project": "PROJ_A", "Status": "D"},
		table.Row{"PN": "CAP002", "Project": "PROJ_A", "Status": "A"},
	)

	res, clone, out := run(t, input, catalog)

	assert.Equal(t, 1, out.Counts.DUpdates)
	assert.Empty(t, out.Synthetic)

	row := res.Table.Rows[0]
	notes, _ := row.String(NotesColumn)
	action, _ := row.String(ActionColumn)
	assert.Equal(t, "Status D updated to X", notes)
	assert.Equal(t, ActionUpdated, action)

	status, _ := clone.Rows[0].String("Status")
	assert.Equal(t, StatusObsolete, status)

	// Unrelated entries keep their status, and the caller's catalog is
	// never touched.
	other, _ := clone.Rows[1].String("Status")
	assert.Equal(t, "A", other)
	orig, _ := catalog.Rows[0].String("Status")
	assert.Equal(t, "D", orig)
}

func TestClassify_DeprecatedUpdatesEveryMatchingEntry(t *testing.T) {
	input := fixtureInput(table.Row{"PN": "RES001", "Project": "PROJ_A"})
	catalog := fixtureCatalog(
		table.Row{"PN": "RES001", "Project": "PROJ_A", "Status": "D"},
		table.Row{"PN": "res001 ", "Project": " proj_a", "Status": "D"},
	)

	_, clone, out := run(t, input, catalog)

	assert.Equal(t, 1, out.Counts.DUpdates)
	for i, row := range clone.Rows {
		status, _ := row.String("Status")
		assert.Equal(t, StatusObsolete, status, "catalog row %d", i)
	}
}

func TestClassify_DuplicateEmitsSyntheticRow(t *testing.T) {
	input := fixtureInput(table.Row{"PN": "CAP002", "Project": "PROJ_B"})
	catalog := fixtureCatalog(
		table.Row{"PN": "CAP002", "Project": "PROJ_B", "Status": "0"},
	)

	res, _, out := run(t, input, catalog)

	assert.Equal(t, 1, out.Counts.Duplicates)
	require.Len(t, out.Synthetic, 1)

	syn := out.Synthetic[0]
	pn, _ := syn.String("PN")
	project, _ := syn.String("Project")
	notes, _ := syn.String(NotesColumn)
	action, _ := syn.String(ActionColumn)
	status, _ := syn.String(lookup.StatusColumn)

	assert.Equal(t, "CAP002", pn)
	assert.Equal(t, "PROJ_B", project)
	assert.Equal(t, "Duplicate or uncertain match - manual verification needed", notes)
	assert.Equal(t, ActionDuplicateAdded, action)
	assert.Equal(t, "0", status)

	// The original row stays unannotated; only the synthetic row carries
	// the duplicate marker.
	origAction, _ := res.Table.Rows[0].String(ActionColumn)
	assert.Empty(t, origAction)
}

func TestClassify_NullCatalogStatusRoutesToDuplicate(t *testing.T) {
	input := fixtureInput(table.Row{"PN": "LED004", "Project": "PROJ_C"})
	catalog := fixtureCatalog(
		table.Row{"PN": "LED004", "Project": "PROJ_C", "Status": nil},
	)

	_, _, out := run(t, input, catalog)
	assert.Equal(t, 1, out.Counts.Duplicates)
	assert.Len(t, out.Synthetic, 1)
}

func TestClassify_UnknownEmitsSyntheticRow(t *testing.T) {
	input := fixtureInput(table.Row{"PN": "NEW999", "Project": "PROJ_Z"})
	catalog := fixtureCatalog(
		table.Row{"PN": "RES001", "Project": "PROJ_A", "Status": "A"},
	)

	_, _, out := run(t, input, catalog)

	assert.Equal(t, 1, out.Counts.Unknowns)
	require.Len(t, out.Synthetic, 1)

	syn := out.Synthetic[0]
	notes, _ := syn.String(NotesColumn)
	action, _ := syn.String(ActionColumn)
	assert.Equal(t, "Unknown PN - potential new entry", notes)
	assert.Equal(t, ActionUnknownAdded, action)
	assert.True(t, syn.IsNull(lookup.StatusColumn))

	supplier, _ := syn.String("Supplier")
	assert.Empty(t, supplier)
}

func TestClassify_ObsoleteSkipped(t *testing.T) {
	input := fixtureInput(table.Row{"PN": "IC003", "Project": "PROJ_A"})
	catalog := fixtureCatalog(
		table.Row{"PN": "IC003", "Project": "PROJ_A", "Status": "X"},
	)

	res, clone, out := run(t, input, catalog)

	assert.Equal(t, 1, out.Counts.Skipped)
	assert.Empty(t, out.Synthetic)

	notes, _ := res.Table.Rows[0].String(NotesColumn)
	action, _ := res.Table.Rows[0].String(ActionColumn)
	assert.Equal(t, "Component already marked as old - skipped", notes)
	assert.Equal(t, ActionSkipped, action)

	status, _ := clone.Rows[0].String("Status")
	assert.Equal(t, "X", status)
}

func TestClassify_ActiveNoAction(t *testing.T) {
	input := fixtureInput(table.Row{"PN": "RES001", "Project": "PROJ_A"})
	catalog := fixtureCatalog(
		table.Row{"PN": "RES001", "Project": "PROJ_A", "Status": "A"},
	)

	res, _, out := run(t, input, catalog)

	assert.Equal(t, 1, out.Counts.NoAction)
	notes, _ := res.Table.Rows[0].String(NotesColumn)
	action, _ := res.Table.Rows[0].String(ActionColumn)
	assert.Equal(t, "Component active - no action required", notes)
	assert.Equal(t, ActionNoAction, action)
}

func TestClassify_UnrecognizedStatus(t *testing.T) {
	input := fixtureInput(table.Row{"PN": "RES001", "Project": "PROJ_A"})
	catalog := fixtureCatalog(
		table.Row{"PN": "RES001", "Project": "PROJ_A", "Status": "Z"},
	)

	res, _, out := run(t, input, catalog)

	assert.Equal(t, 1, out.Counts.UnknownStatus)
	action, _ := res.Table.Rows[0].String(ActionColumn)
	assert.Equal(t, ActionUnknownStatus, action)
	notes, _ := res.Table.Rows[0].String(NotesColumn)
	assert.Contains(t, notes, `"Z"`)
}

func TestClassify_LowercaseStatusNormalized(t *testing.T) {
	input := fixtureInput(table.Row{"PN": "RES001", "Project": "PROJ_A"})
	catalog := fixtureCatalog(
		table.Row{"PN": "RES001", "Project": "PROJ_A", "Status": " d "},
	)

	_, clone, out := run(t, input, catalog)

	assert.Equal(t, 1, out.Counts.DUpdates)
	status, _ := clone.Rows[0].String("Status")
	assert.Equal(t, StatusObsolete, status)
}

func TestClassify_MixedBatchCounts(t *testing.T) {
	input := fixtureInput(
		table.Row{"PN": "RES001", "Project": "PROJ_A"},
		table.Row{"PN": "CAP002", "Project": "PROJ_B"},
		table.Row{"PN": "IC003", "Project": "PROJ_A"},
		table.Row{"PN": "NEW999", "Project": "PROJ_Z"},
		table.Row{"PN": "DIO005", "Project": "PROJ_A"},
	)
	catalog := fixtureCatalog(
		table.Row{"PN": "RES001", "Project": "PROJ_A", "Status": "D"},
		table.Row{"PN": "CAP002", "Project": "PROJ_B", "Status": "0"},
		table.Row{"PN": "IC003", "Project": "PROJ_A", "Status": "X"},
		table.Row{"PN": "DIO005", "Project": "PROJ_A", "Status": "A"},
	)

	res, _, out := run(t, input, catalog)

	assert.Equal(t, Counts{
		DUpdates:   1,
		Duplicates: 1,
		Unknowns:   1,
		Skipped:    1,
		NoAction:   1,
	}, out.Counts)
	assert.Len(t, out.Synthetic, 2)
	assert.Equal(t, 5, res.Table.Len())
}
