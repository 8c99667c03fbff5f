// Package table provides the in-memory tabular model shared by the
// cross-reference pipeline: ordered columns, ordered rows, nullable cells.
package table

import (
	"fmt"
	"strconv"
)

// Row is a single record. A missing key or a nil value both mean the cell
// is null; everything else is a scalar (string, number, bool).
type Row map[string]any

// Clone returns an independent copy of the row.
func (r Row) Clone() Row {
	out := make(Row, len(r))
	for k, v := range r {
		out[k] = v
	}
	return out
}

// String returns the stringified cell value. The second return is false
// when the cell is null or absent.
func (r Row) String(col string) (string, bool) {
	v, ok := r[col]
	if !ok || v == nil {
		return "", false
	}
	return Stringify(v), true
}

// IsNull reports whether the cell is null or absent.
func (r Row) IsNull(col string) bool {
	v, ok := r[col]
	return !ok || v == nil
}

// Table is an ordered sequence of rows with an explicit column order.
// Column order is what the spreadsheet writers preserve.
type Table struct {
	Columns []string
	Rows    []Row
}

// New creates an empty table with the given column order.
func New(columns ...string) *Table {
	return &Table{Columns: append([]string(nil), columns...)}
}

// Len returns the number of rows.
func (t *Table) Len() int {
	if t == nil {
		return 0
	}
	return len(t.Rows)
}

// Clone returns a deep copy. Mutating the clone never touches the
// original table or its rows.
func (t *Table) Clone() *Table {
	if t == nil {
		return nil
	}
	out := &Table{
		Columns: append([]string(nil), t.Columns...),
		Rows:    make([]Row, len(t.Rows)),
	}
	for i, r := range t.Rows {
		out.Rows[i] = r.Clone()
	}
	return out
}

// Append adds a row to the end of the table.
func (t *Table) Append(r Row) {
	t.Rows = append(t.Rows, r)
}

// HasColumn reports whether the column exists.
func (t *Table) HasColumn(name string) bool {
	for _, c := range t.Columns {
		if c == name {
			return true
		}
	}
	return false
}

// EnsureColumn appends the column to the column order if it is missing.
// Existing rows keep a null cell for it.
func (t *Table) EnsureColumn(name string) {
	if !t.HasColumn(name) {
		t.Columns = append(t.Columns, name)
	}
}

// DropColumn removes the column from the order and from every row.
func (t *Table) DropColumn(name string) {
	cols := t.Columns[:0]
	for _, c := range t.Columns {
		if c != name {
			cols = append(cols, c)
		}
	}
	t.Columns = cols
	for _, r := range t.Rows {
		delete(r, name)
	}
}

// Stringify converts a cell value to its stable string form. Null cells
// become the empty string; numbers avoid the float formatting noise a
// naive %v would produce.
func Stringify(v any) string {
	switch x := v.(type) {
	case nil:
		return ""
	case string:
		return x
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64)
	case float32:
		return strconv.FormatFloat(float64(x), 'f', -1, 32)
	case int:
		return strconv.Itoa(x)
	case int64:
		return strconv.FormatInt(x, 10)
	case bool:
		return strconv.FormatBool(x)
	default:
		return fmt.Sprint(x)
	}
}
