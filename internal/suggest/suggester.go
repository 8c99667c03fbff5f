// Package suggest picks the Master BOM project column that best matches a
// free-text project hint, and analyzes catalog columns for status content.
package suggest

import (
	"sort"
	"strings"

	"github.com/crossbom/crossbom/internal/table"
)

// Threshold is the minimum similarity ratio for the prefix/suffix path.
const Threshold = 0.90

// statusCodes is the canonical activation-status value set. A column
// whose observed values intersect this set is status-like.
var statusCodes = map[string]struct{}{
	"A": {}, "D": {}, "X": {}, "0": {},
}

// Window restricts column analysis to a header index range, matching the
// fixed layout of Master BOM exports where project columns live in the
// middle of the sheet.
type Window struct {
	Start int
	End   int
}

// DefaultWindow skips only the leading part-number column and covers
// catalog columns up to index 22; exports keep remarks columns past
// that point.
func DefaultWindow() Window {
	return Window{Start: 1, End: 23}
}

// Suggester scores candidate columns against project hints.
type Suggester struct {
	metric Metric
	window Window
}

// New creates a suggester with the default metric and window.
func New() *Suggester {
	return &Suggester{metric: NewMetric(), window: DefaultWindow()}
}

// NewWithWindow creates a suggester restricted to the given column window.
func NewWithWindow(w Window) *Suggester {
	if w.End <= w.Start {
		w = DefaultWindow()
	}
	return &Suggester{metric: NewMetric(), window: w}
}

// Suggest returns the candidate best matching the hint and a confidence
// score. Hints like "FORD_J74_V710_B2_PP_YOTK" are first matched by
// prefix (first three segments) and suffix (last segment); candidates
// clearing the 0.90 similarity threshold win. When none do, every
// candidate is scored and the best one is returned regardless of score.
func (s *Suggester) Suggest(hint string, candidates []string) (string, float64) {
	if strings.TrimSpace(hint) == "" {
		if len(candidates) > 0 {
			return candidates[0], 0
		}
		return "", 0
	}

	parts := strings.Split(hint, "_")
	if len(parts) >= 4 {
		prefix := strings.ToUpper(strings.Join(parts[:3], "_"))
		suffix := strings.ToUpper(parts[len(parts)-1])

		best, bestScore := "", 0.0
		for _, col := range candidates {
			upper := strings.ToUpper(col)
			if !strings.HasPrefix(upper, prefix) || !strings.HasSuffix(upper, suffix) {
				continue
			}
			score := s.metric.Ratio(hint, col)
			if score >= Threshold && score > bestScore {
				best, bestScore = col, score
			}
		}
		if bestScore > 0 {
			return best, bestScore
		}
	}

	best, bestScore := "", 0.0
	for _, col := range candidates {
		score := s.metric.Ratio(hint, col)
		if score > bestScore {
			best, bestScore = col, score
		}
	}
	return best, bestScore
}

// ColumnAnalysis describes one candidate catalog column.
type ColumnAnalysis struct {
	Name           string  `json:"name"`
	FillCount      int     `json:"fill_count"`
	TotalCount     int     `json:"total_count"`
	FillPercentage float64 `json:"fill_percentage"`
	StatusLike     bool    `json:"is_status_column"`
}

// Analysis reports every candidate column sorted by fill percentage.
type Analysis struct {
	TotalColumns int              `json:"total_columns"`
	Columns      []ColumnAnalysis `json:"columns_analysis"`
}

// AnalyzeColumns inspects the catalog columns inside the window and
// reports fill statistics and status-likeness, sorted by fill
// percentage descending.
func (s *Suggester) AnalyzeColumns(catalog *table.Table) Analysis {
	candidates := s.candidateColumns(catalog)
	analysis := Analysis{TotalColumns: len(candidates)}

	total := catalog.Len()
	for _, col := range candidates {
		filled := 0
		for _, row := range catalog.Rows {
			if !row.IsNull(col) {
				filled++
			}
		}
		pct := 0.0
		if total > 0 {
			pct = round1(float64(filled) / float64(total) * 100)
		}
		analysis.Columns = append(analysis.Columns, ColumnAnalysis{
			Name:           col,
			FillCount:      filled,
			TotalCount:     total,
			FillPercentage: pct,
			StatusLike:     isStatusLike(catalog, col),
		})
	}

	sort.SliceStable(analysis.Columns, func(i, j int) bool {
		return analysis.Columns[i].FillPercentage > analysis.Columns[j].FillPercentage
	})
	return analysis
}

// FindBestProjectColumn resolves which catalog column encodes status for
// this run. With a hint it delegates to Suggest over the analyzed
// columns; without one it picks the best-filled status-like column.
func (s *Suggester) FindBestProjectColumn(catalog *table.Table, hint string) (string, float64, Analysis) {
	analysis := s.AnalyzeColumns(catalog)

	names := make([]string, len(analysis.Columns))
	for i, c := range analysis.Columns {
		names[i] = c.Name
	}

	if strings.TrimSpace(hint) != "" {
		best, confidence := s.Suggest(hint, names)
		return best, confidence, analysis
	}

	for _, c := range analysis.Columns {
		if c.StatusLike {
			return c.Name, c.FillPercentage / 100, analysis
		}
	}
	if len(analysis.Columns) > 0 {
		top := analysis.Columns[0]
		return top.Name, top.FillPercentage / 100, analysis
	}
	return "", 0, analysis
}

func (s *Suggester) candidateColumns(catalog *table.Table) []string {
	cols := catalog.Columns
	start := s.window.Start
	end := s.window.End
	if start > len(cols) {
		return nil
	}
	if end > len(cols) {
		end = len(cols)
	}
	return cols[start:end]
}

// isStatusLike reports whether the column's observed value set overlaps
// the canonical status codes.
func isStatusLike(catalog *table.Table, col string) bool {
	for _, row := range catalog.Rows {
		v, ok := row.String(col)
		if !ok {
			continue
		}
		if _, hit := statusCodes[strings.ToUpper(strings.TrimSpace(v))]; hit {
			return true
		}
	}
	return false
}

func round1(v float64) float64 {
	return float64(int(v*10+0.5)) / 10
}
