package sample

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/crossbom/crossbom/internal/observability"
	"github.com/crossbom/crossbom/internal/process"
)

func TestGenerator_Deterministic(t *testing.T) {
	a := New(7).MasterBOM(20)
	b := New(7).MasterBOM(20)
	assert.Equal(t, a, b)
}

func TestGenerator_MasterBOMShape(t *testing.T) {
	bom := New(1).MasterBOM(10)

	assert.Equal(t, 10, bom.Len())
	assert.True(t, bom.HasColumn("Yazaki PN"))
	for _, col := range ProjectColumns {
		assert.True(t, bom.HasColumn(col), col)
	}

	pn, ok := bom.Rows[0].String("Yazaki PN")
	require.True(t, ok)
	assert.True(t, strings.HasPrefix(pn, "YZK-"), pn)
}

func TestGenerator_InputDefaultsProject(t *testing.T) {
	g := New(2)
	bom := g.MasterBOM(10)
	input := g.Input(bom, 5, "")

	project, _ := input.Rows[0].String("Project")
	assert.Equal(t, ProjectColumns[0], project)
}

func TestGenerator_OutputProcessable(t *testing.T) {
	g := New(3)
	bom := g.MasterBOM(40)
	input := g.Input(bom, 25, "")

	res, err := process.New(observability.Nop()).Process(input, bom, ProjectColumns[0], "PN")
	require.NoError(t, err)
	assert.Equal(t, 25, res.Stats.TotalProcessed)
	assert.GreaterOrEqual(t, res.Output.Len(), input.Len())
}
