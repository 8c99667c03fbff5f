package sheet

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/crossbom/crossbom/internal/classify"
	"github.com/crossbom/crossbom/internal/table"
)

// HighlightColors holds the ARGB fill colors applied per Action value.
type HighlightColors struct {
	Updated string
	Added   string
	Skipped string
}

// DefaultColors returns the reviewer-familiar highlight palette: yellow
// for updates, red for additions, gray for skipped rows.
func DefaultColors() HighlightColors {
	return HighlightColors{Updated: "FFFFCC", Added: "FFCCCC", Skipped: "E6E6E6"}
}

// SummaryEntry is one label/value line on the Summary sheet.
type SummaryEntry struct {
	Label string
	Value any
}

// WriteOptions controls result-file rendering.
type WriteOptions struct {
	Colors  HighlightColors
	Summary []SummaryEntry
}

// WriteFile writes a table to an .xlsx or .csv file depending on the
// extension. CSV output carries no highlighting or summary.
func WriteFile(path string, tbl *table.Table, opts WriteOptions) error {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".xlsx":
		return writeExcel(path, tbl, opts)
	case ".csv":
		return writeCSV(path, tbl)
	default:
		return fmt.Errorf("%w: %s", ErrUnsupportedFormat, filepath.Ext(path))
	}
}

const resultSheet = "Results"

func writeExcel(path string, tbl *table.Table, opts WriteOptions) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", resultSheet); err != nil {
		return fmt.Errorf("rename sheet: %w", err)
	}

	header := make([]any, len(tbl.Columns))
	for i, c := range tbl.Columns {
		header[i] = c
	}
	if err := f.SetSheetRow(resultSheet, "A1", &header); err != nil {
		return fmt.Errorf("write header: %w", err)
	}

	styles, err := newHighlightStyles(f, opts.Colors)
	if err != nil {
		return err
	}

	for i, row := range tbl.Rows {
		cells := make([]any, len(tbl.Columns))
		for j, col := range tbl.Columns {
			if v, ok := row.String(col); ok {
				cells[j] = v
			}
		}

		ref, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return fmt.Errorf("cell reference: %w", err)
		}
		if err := f.SetSheetRow(resultSheet, ref, &cells); err != nil {
			return fmt.Errorf("write row %d: %w", i+2, err)
		}

		action, _ := row.String(classify.ActionColumn)
		if style, ok := styles[action]; ok {
			last, err := excelize.CoordinatesToCellName(len(tbl.Columns), i+2)
			if err != nil {
				return fmt.Errorf("cell reference: %w", err)
			}
			if err := f.SetCellStyle(resultSheet, ref, last, style); err != nil {
				return fmt.Errorf("style row %d: %w", i+2, err)
			}
		}
	}

	if len(opts.Summary) > 0 {
		if err := writeSummarySheet(f, opts.Summary); err != nil {
			return err
		}
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("save workbook: %w", err)
	}
	return nil
}

// newHighlightStyles builds one fill style per Action value that gets
// highlighted.
func newHighlightStyles(f *excelize.File, colors HighlightColors) (map[string]int, error) {
	if colors == (HighlightColors{}) {
		colors = DefaultColors()
	}

	byAction := map[string]string{
		classify.ActionUpdated:        colors.Updated,
		classify.ActionDuplicateAdded: colors.Added,
		classify.ActionUnknownAdded:   colors.Added,
		classify.ActionSkipped:        colors.Skipped,
	}

	styles := make(map[string]int, len(byAction))
	for action, color := range byAction {
		if color == "" {
			continue
		}
		style, err := f.NewStyle(&excelize.Style{
			Fill: excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{color}},
		})
		if err != nil {
			return nil, fmt.Errorf("highlight style %s: %w", action, err)
		}
		styles[action] = style
	}
	return styles, nil
}

func writeSummarySheet(f *excelize.File, entries []SummaryEntry) error {
	const name = "Summary"
	if _, err := f.NewSheet(name); err != nil {
		return fmt.Errorf("create summary sheet: %w", err)
	}
	for i, e := range entries {
		ref, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return fmt.Errorf("cell reference: %w", err)
		}
		cells := []any{e.Label, e.Value}
		if err := f.SetSheetRow(name, ref, &cells); err != nil {
			return fmt.Errorf("write summary row %d: %w", i+1, err)
		}
	}
	return nil
}

func writeCSV(path string, tbl *table.Table) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create csv: %w", err)
	}

	w := csv.NewWriter(f)
	if err := w.Write(tbl.Columns); err != nil {
		f.Close()
		return fmt.Errorf("write header: %w", err)
	}
	record := make([]string, len(tbl.Columns))
	for _, row := range tbl.Rows {
		for i, col := range tbl.Columns {
			record[i], _ = row.String(col)
		}
		if err := w.Write(record); err != nil {
			f.Close()
			return fmt.Errorf("write row: %w", err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		f.Close()
		return fmt.Errorf("flush csv: %w", err)
	}
	return f.Close()
}
