// Package sample generates demo input files and Master BOM catalogs for
// trying out the pipeline without real supplier data.
package sample

import (
	"fmt"
	"math/rand"

	"github.com/crossbom/crossbom/internal/table"
)

// ProjectColumns are the program columns a generated Master BOM carries,
// in the shape real exports use: program, platform, variant, build
// phase, plant code.
var ProjectColumns = []string{
	"FORD_J74_V710_B2_PP_YOTK",
	"FORD_J74_V710_B2_PP_YMOK",
	"GM_T1XX_V800_A1_PP_YOTK",
	"STELLANTIS_K8_V550_C3_PP_YOTK",
}

// statuses weights favor active parts, as production catalogs do.
var statuses = []any{"A", "A", "A", "D", "X", "0", nil}

var suppliers = []string{
	"Yazaki Corporation", "Sumitomo Electric", "Aptiv", "Leoni AG", "Furukawa Electric",
}

var descriptions = []string{
	"wire harness", "connector housing", "terminal", "fuse box", "relay", "grommet",
}

// Generator produces deterministic sample tables from a seed.
type Generator struct {
	rng *rand.Rand
}

// New creates a generator. The same seed yields the same tables.
func New(seed int64) *Generator {
	return &Generator{rng: rand.New(rand.NewSource(seed))}
}

// partNumber builds a Yazaki-style part number like YZK-482-017.
func (g *Generator) partNumber(i int) string {
	return fmt.Sprintf("YZK-%03d-%03d", g.rng.Intn(1000), i)
}

// MasterBOM generates a catalog with n parts. Each part carries a
// status in a random subset of the program columns.
func (g *Generator) MasterBOM(n int) *table.Table {
	cols := append([]string{"Yazaki PN", "Description"}, ProjectColumns...)
	cols = append(cols, "Supplier", "Unit Price")
	tbl := table.New(cols...)

	for i := 0; i < n; i++ {
		row := table.Row{
			"Yazaki PN":   g.partNumber(i),
			"Description": descriptions[g.rng.Intn(len(descriptions))],
			"Supplier":    suppliers[g.rng.Intn(len(suppliers))],
			"Unit Price":  float64(g.rng.Intn(9000)+100) / 100,
		}
		for _, col := range ProjectColumns {
			if g.rng.Intn(3) == 0 {
				row[col] = nil
				continue
			}
			row[col] = statuses[g.rng.Intn(len(statuses))]
		}
		tbl.Append(row)
	}
	return tbl
}

// Input generates a supplier input table of n rows against the given
// catalog. Roughly one row in five uses a part number the catalog does
// not know, so a demo run exercises the Unknown branch too.
func (g *Generator) Input(catalog *table.Table, n int, project string) *table.Table {
	if project == "" {
		project = ProjectColumns[0]
	}

	tbl := table.New("PN", "Project", "Price")
	for i := 0; i < n; i++ {
		var pn string
		if catalog.Len() > 0 && g.rng.Intn(5) != 0 {
			src := catalog.Rows[g.rng.Intn(catalog.Len())]
			pn, _ = src.String("Yazaki PN")
		} else {
			pn = fmt.Sprintf("NEW-%03d-%03d", g.rng.Intn(1000), i)
		}
		tbl.Append(table.Row{
			"PN":      pn,
			"Project": project,
			"Price":   float64(g.rng.Intn(9000)+100) / 100,
		})
	}
	return tbl
}
