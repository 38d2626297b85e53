package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jswain/augur/pkg/models"
)

func TestSummaryTable(t *testing.T) {
	reports := []*models.FileReport{
		{
			Path: "a.py",
			Declarations: []*models.Declaration{
				{Name: "main", Kind: models.KindFunction, EntryPoint: true},
				{
					Name: "Box",
					Kind: models.KindClass,
					Children: []*models.Declaration{
						{Name: "open", Kind: models.KindMethod},
					},
				},
			},
		},
		{
			Path: "b.py",
			Declarations: []*models.Declaration{
				{Name: "helper", Kind: models.KindFunction},
			},
		},
	}

	table := summaryTable(reports)
	require.Len(t, table.Rows, 2)
	assert.Equal(t, []string{"a.py", "3", "1"}, table.Rows[0])
	assert.Equal(t, []string{"b.py", "1", "0"}, table.Rows[1])
	assert.Equal(t, "Files: 2", table.Footer[0])
}

func TestCountEntryPoints(t *testing.T) {
	decls := []*models.Declaration{
		{Name: "main", EntryPoint: true},
		{
			Name: "outer",
			Children: []*models.Declaration{
				{Name: "main", EntryPoint: true},
			},
		},
	}
	assert.Equal(t, 2, countEntryPoints(decls))
}
