package table

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTable_Clone_Independent(t *testing.T) {
	src := New("PN", "Project", "Status")
	src.Append(Row{"PN": "RES001", "Project": "PROJ_A", "Status": "D"})
	src.Append(Row{"PN": "CAP002", "Project": "PROJ_B", "Status": nil})

	cp := src.Clone()
	cp.Rows[0]["Status"] = "X"
	cp.Columns[0] = "Part"

	assert.Equal(t, "D", src.Rows[0]["Status"])
	assert.Equal(t, "PN", src.Columns[0])
	assert.Equal(t, 2, cp.Len())
}

func TestRow_String_NullCells(t *testing.T) {
	r := Row{"PN": "RES001", "Status": nil, "Price": 2.5}

	v, ok := r.String("PN")
	require.True(t, ok)
	assert.Equal(t, "RES001", v)

	_, ok = r.String("Status")
	assert.False(t, ok)

	_, ok = r.String("Supplier")
	assert.False(t, ok)

	assert.True(t, r.IsNull("Status"))
	assert.False(t, r.IsNull("Price"))
}

func TestStringify(t *testing.T) {
	assert.Equal(t, "", Stringify(nil))
	assert.Equal(t, "2.5", Stringify(2.5))
	assert.Equal(t, "42", Stringify(42))
	assert.Equal(t, "RES001", Stringify("RES001"))
}

func TestTable_EnsureAndDropColumn(t *testing.T) {
	tbl := New("PN", "Project")
	tbl.Append(Row{"PN": "A", "Project": "P"})

	tbl.EnsureColumn("Notes")
	tbl.EnsureColumn("Notes")
	assert.Equal(t, []string{"PN", "Project", "Notes"}, tbl.Columns)

	tbl.DropColumn("Project")
	assert.Equal(t, []string{"PN", "Notes"}, tbl.Columns)
	_, ok := tbl.Rows[0]["Project"]
	assert.False(t, ok)
}
