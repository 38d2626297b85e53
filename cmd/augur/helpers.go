package main

import (
	"fmt"

	"github.com/jswain/augur/internal/output"
	"github.com/jswain/augur/pkg/models"
)

// summaryTable condenses reports into one row per file.
func summaryTable(reports []*models.FileReport) *output.Table {
	var rows [][]string
	totalDecls := 0
	totalEntry := 0

	for _, r := range reports {
		decls := r.CountDeclarations()
		entries := countEntryPoints(r.Declarations)
		totalDecls += decls
		totalEntry += entries
		rows = append(rows, []string{
			r.Path,
			fmt.Sprintf("%d", decls),
			fmt.Sprintf("%d", entries),
		})
	}

	return output.NewTable(
		"Declarations",
		[]string{"File", "Declarations", "Entry Points"},
		rows,
		[]string{
			fmt.Sprintf("Files: %d", len(reports)),
			fmt.Sprintf("%d", totalDecls),
			fmt.Sprintf("%d", totalEntry),
		},
		reports,
	)
}

func countEntryPoints(decls []*models.Declaration) int {
	n := 0
	for _, d := range decls {
		if d.EntryPoint {
			n++
		}
		n += countEntryPoints(d.Children)
	}
	return n
}
