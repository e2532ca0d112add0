package tui

import (
	"path/filepath"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"multi-image-viewer/internal/indexer"
)

const tableMissing = "-"

// RenderIndex renders the key table of idx: one row per key in key order
// and one column per folder.
func RenderIndex(idx *indexer.Index) string {
	headers := []string{"#", "KEY"}
	if idx != nil {
		for _, f := range idx.Folders {
			headers = append(headers, filepath.Base(f))
		}
	}

	var rows [][]string
	for i := 0; i < idx.Len(); i++ {
		key := idx.Keys[i]
		paths, _ := idx.Entry(key)
		row := []string{strconv.Itoa(i + 1), key}
		for _, p := range paths {
			if p == "" {
				row = append(row, tableMissing)
			} else {
				row = append(row, filepath.Base(p))
			}
		}
		rows = append(rows, row)
	}

	return table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(labelStyle).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return lipgloss.NewStyle().Bold(true).Padding(0, 1)
			}
			return lipgloss.NewStyle().Padding(0, 1)
		}).
		Headers(headers...).
		Rows(rows...).
		String()
}
