package clean

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/crossbom/crossbom/internal/observability"
	"github.com/crossbom/crossbom/internal/table"
)

func allOn() Options {
	return Options{Uppercase: true, StripNonASCII: true, ExcludeInvalid: true}
}

func TestClean_TrimAndCollapse(t *testing.T) {
	c := New(allOn(), observability.Nop())

	in := table.New("PN", "Project", "Description")
	in.Append(table.Row{"PN": "  res001 ", "Project": "proj  a", "Description": "  carbon   film resistor "})

	res := c.Clean(in)
	require.Equal(t, 1, res.Table.Len())

	pn, _ := res.Table.Rows[0].String("PN")
	project, _ := res.Table.Rows[0].String("Project")
	desc, _ := res.Table.Rows[0].String("Description")

	assert.Equal(t, "RES001", pn)
	assert.Equal(t, "PROJ A", project)
	// Description is trimmed and collapsed but never uppercased.
	assert.Equal(t, "carbon film resistor", desc)
}

func TestClean_StripNonASCII(t *testing.T) {
	c := New(allOn(), observability.Nop())

	in := table.New("PN", "Project")
	in.Append(table.Row{"PN": "RESÿ001", "Project": "PROJ_A"})

	res := c.Clean(in)
	pn, _ := res.Table.Rows[0].String("PN")
	assert.Equal(t, "RES001", pn)
	assert.Equal(t, 1, res.Stats.CellsChanged)
}

func TestClean_ExcludesRowsMissingRequired(t *testing.T) {
	c := New(allOn(), observability.Nop())

	in := table.New("PN", "Project")
	in.Append(table.Row{"PN": "RES001", "Project": "PROJ_A"})
	in.Append(table.Row{"PN": "   ", "Project": "PROJ_A"})
	in.Append(table.Row{"PN": "CAP002", "Project": nil})

	res := c.Clean(in)

	assert.Equal(t, 1, res.Table.Len())
	assert.Equal(t, 2, res.Excluded.Len())
	assert.Equal(t, 3, res.Stats.RowsIn)
	assert.Equal(t, 1, res.Stats.RowsOut)
	assert.Equal(t, 2, res.Stats.RowsExcluded)

	// Excluded rows keep their original raw values.
	raw, _ := res.Excluded.Rows[0].String("PN")
	assert.Equal(t, "   ", raw)
}

func TestClean_KeepsInvalidRowsWhenExclusionOff(t *testing.T) {
	c := New(Options{}, observability.Nop())

	in := table.New("PN", "Project")
	in.Append(table.Row{"PN": "", "Project": "PROJ_A"})

	res := c.Clean(in)
	assert.Equal(t, 1, res.Table.Len())
	assert.Zero(t, res.Excluded.Len())
}

func TestClean_DoesNotMutateInput(t *testing.T) {
	c := New(allOn(), observability.Nop())

	in := table.New("PN", "Project")
	in.Append(table.Row{"PN": " res001 ", "Project": "proj_a"})

	_ = c.Clean(in)
	pn, _ := in.Rows[0].String("PN")
	assert.Equal(t, " res001 ", pn)
}

func TestValidatePartNumber(t *testing.T) {
	assert.NoError(t, ValidatePartNumber("YZK-123-456"))
	assert.NoError(t, ValidatePartNumber("res_001"))
	assert.Error(t, ValidatePartNumber(""))
	assert.Error(t, ValidatePartNumber("PN WITH SPACE"))
	long := make([]byte, 51)
	for i := range long {
		long[i] = 'A'
	}
	assert.Error(t, ValidatePartNumber(string(long)))
}

func TestValidateStatus(t *testing.T) {
	for _, s := range []string{"A", "d", " X ", "0", ""} {
		assert.NoError(t, ValidateStatus(s), s)
	}
	assert.Error(t, ValidateStatus("Z"))
}

func TestValidatePrice(t *testing.T) {
	assert.NoError(t, ValidatePrice("2.50"))
	assert.NoError(t, ValidatePrice(""))
	assert.Error(t, ValidatePrice("-1"))
	assert.Error(t, ValidatePrice("10001"))
	assert.Error(t, ValidatePrice("abc"))
}

func TestValidateProject(t *testing.T) {
	assert.NoError(t, ValidateProject("FORD_J74_V710_B2_PP_YOTK"))
	assert.Error(t, ValidateProject(" "))
}
