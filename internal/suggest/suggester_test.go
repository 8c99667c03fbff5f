package suggest

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/crossbom/crossbom/internal/table"
)

func TestSuggest_EmptyHint(t *testing.T) {
	s := New()

	col, conf := s.Suggest("", []string{"COL_A", "COL_B"})
	assert.Equal(t, "COL_A", col)
	assert.Zero(t, conf)

	col, conf = s.Suggest("   ", nil)
	assert.Empty(t, col)
	assert.Zero(t, conf)
}

func TestSuggest_PrefixSuffixPath(t *testing.T) {
	s := New()
	candidates := []string{
		"FORD_J74_V710_B2_PP_YMOK",
		"FORD_J74_V710_B2_PP_YOTK",
		"GM_T1XX_V800_A1_PP_YOTK",
	}

	col, conf := s.Suggest("FORD_J74_V710_B2_PP_YOTK", candidates)
	assert.Equal(t, "FORD_J74_V710_B2_PP_YOTK", col)
	assert.GreaterOrEqual(t, conf, Threshold)
}

func TestSuggest_FallbackBelowThreshold(t *testing.T) {
	s := New()
	candidates := []string{"ALPHA", "FORD_PROGRAM"}

	col, conf := s.Suggest("FORD_J74_V710_B2_PP_YOTK", candidates)
	assert.Equal(t, "FORD_PROGRAM", col)
	assert.Less(t, conf, Threshold)
	assert.Greater(t, conf, 0.0)
}

func statusCatalog() *table.Table {
	tbl := table.New(
		"PN", "Description",
		"FORD_J74_V710_B2_PP_YOTK", "FORD_J74_V710_B2_PP_YMOK", "Remarks",
	)
	tbl.Append(table.Row{
		"PN": "RES001", "Description": "resistor",
		"FORD_J74_V710_B2_PP_YOTK": "A",
		"FORD_J74_V710_B2_PP_YMOK": nil,
		"Remarks":                  "check",
	})
	tbl.Append(table.Row{
		"PN": "CAP002", "Description": "capacitor",
		"FORD_J74_V710_B2_PP_YOTK": "D",
		"FORD_J74_V710_B2_PP_YMOK": "X",
		"Remarks":                  nil,
	})
	tbl.Append(table.Row{
		"PN": "LED004", "Description": "led",
		"FORD_J74_V710_B2_PP_YOTK": "0",
		"FORD_J74_V710_B2_PP_YMOK": nil,
		"Remarks":                  nil,
	})
	return tbl
}

func TestAnalyzeColumns(t *testing.T) {
	s := New()
	analysis := s.AnalyzeColumns(statusCatalog())

	require.Equal(t, 4, analysis.TotalColumns)

	// Sorted by fill percentage descending; ties keep header order.
	assert.Equal(t, "Description", analysis.Columns[0].Name)
	assert.Equal(t, "FORD_J74_V710_B2_PP_YOTK", analysis.Columns[1].Name)
	assert.Equal(t, 3, analysis.Columns[1].FillCount)
	assert.InDelta(t, 100.0, analysis.Columns[1].FillPercentage, 0.01)
	assert.True(t, analysis.Columns[1].StatusLike)

	for _, c := range analysis.Columns {
		switch c.Name {
		case "Description", "Remarks":
			assert.False(t, c.StatusLike, c.Name)
		case "FORD_J74_V710_B2_PP_YMOK":
			assert.True(t, c.StatusLike)
			assert.Equal(t, 1, c.FillCount)
		}
	}
}

func TestFindBestProjectColumn_StatusInSecondColumn(t *testing.T) {
	tbl := table.New("PN", "FORD_J74_V710_B2_PP_YOTK", "Remarks")
	tbl.Append(table.Row{
		"PN": "RES001", "FORD_J74_V710_B2_PP_YOTK": "A", "Remarks": "check",
	})
	tbl.Append(table.Row{
		"PN": "CAP002", "FORD_J74_V710_B2_PP_YOTK": "D", "Remarks": nil,
	})

	// Narrow exports put the status column right after the part number;
	// the default window must not skip it.
	col, conf, _ := New().FindBestProjectColumn(tbl, "")

	assert.Equal(t, "FORD_J74_V710_B2_PP_YOTK", col)
	assert.InDelta(t, 1.0, conf, 0.01)
}

func TestFindBestProjectColumn_WithHint(t *testing.T) {
	s := New()
	col, conf, analysis := s.FindBestProjectColumn(statusCatalog(), "FORD_J74_V710_B2_PP_YOTK")

	assert.Equal(t, "FORD_J74_V710_B2_PP_YOTK", col)
	assert.GreaterOrEqual(t, conf, Threshold)
	assert.NotEmpty(t, analysis.Columns)
}

func TestFindBestProjectColumn_NoHint_PicksStatusLikeByFill(t *testing.T) {
	s := New()
	col, conf, _ := s.FindBestProjectColumn(statusCatalog(), "")

	assert.Equal(t, "FORD_J74_V710_B2_PP_YOTK", col)
	assert.InDelta(t, 1.0, conf, 0.01)
}

func TestFindBestProjectColumn_EmptyCatalog(t *testing.T) {
	s := New()
	col, conf, analysis := s.FindBestProjectColumn(table.New("PN"), "")

	assert.Empty(t, col)
	assert.Zero(t, conf)
	assert.Zero(t, analysis.TotalColumns)
}

func TestMetric_IdenticalStrings(t *testing.T) {
	m := NewMetric()
	assert.InDelta(t, 1.0, m.Ratio("FORD_J74_V710_B2_PP_YOTK", "ford_j74_v710_b2_pp_yotk"), 0.001)
	assert.Less(t, m.Ratio("FORD_J74", "GM_T1XX"), 0.5)
}
