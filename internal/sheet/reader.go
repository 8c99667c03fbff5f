// Package sheet loads spreadsheet files into tables and writes result
// tables back out, with per-row highlighting keyed by the Action column.
package sheet

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/crossbom/crossbom/internal/table"
)

// ErrUnsupportedFormat is returned for file extensions the package does
// not handle.
var ErrUnsupportedFormat = fmt.Errorf("unsupported spreadsheet format")

// ReadFile loads an .xlsx, .xls or .csv file into a table. The first
// row is the header; empty cells become null.
func ReadFile(path string) (*table.Table, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".xlsx", ".xls":
		return readExcel(path)
	case ".csv":
		return readCSV(path)
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, filepath.Ext(path))
	}
}

func readExcel(path string) (*table.Table, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("open workbook: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("workbook has no sheets: %s", path)
	}

	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("read sheet %q: %w", sheets[0], err)
	}
	return fromRecords(rows), nil
}

func readCSV(path string) (*table.Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open csv: %w", err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1
	records, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read csv: %w", err)
	}
	return fromRecords(records), nil
}

// fromRecords converts a header row plus data rows into a table. Rows
// may be ragged; short rows leave trailing cells null.
func fromRecords(records [][]string) *table.Table {
	if len(records) == 0 {
		return table.New()
	}

	headers := make([]string, len(records[0]))
	for i, h := range records[0] {
		headers[i] = strings.TrimSpace(h)
	}
	tbl := table.New(headers...)

	for _, rec := range records[1:] {
		row := make(table.Row, len(headers))
		for i, col := range headers {
			if i < len(rec) && rec[i] != "" {
				row[col] = rec[i]
			} else {
				row[col] = nil
			}
		}
		tbl.Append(row)
	}
	return tbl
}
