package stats

import (
	"strings"

	"github.com/mattn/go-runewidth"
	"github.com/samber/lo"
)

// column describes one table column.
type column struct {
	header string
	right  bool
}

// formatTable lays rows out under cols, padding by display width so Greek
// deck names line up. Missing cells render empty; trailing blanks are trimmed.
func formatTable(cols []column, rows [][]string) []string {
	if len(cols) == 0 {
		return nil
	}
	widths := lo.Map(cols, func(c column, _ int) int {
		return runewidth.StringWidth(c.header)
	})
	for _, row := range rows {
		for i := range widths {
			widths[i] = max(widths[i], runewidth.StringWidth(cell(row, i)))
		}
	}

	headers := lo.Map(cols, func(c column, _ int) string { return c.header })
	lines := []string{joinCells(cols, widths, headers)}
	for _, row := range rows {
		lines = append(lines, joinCells(cols, widths, row))
	}
	return lines
}

func joinCells(cols []column, widths []int, row []string) string {
	cells := make([]string, len(cols))
	for i, c := range cols {
		if c.right {
			cells[i] = runewidth.FillLeft(cell(row, i), widths[i])
		} else {
			cells[i] = runewidth.FillRight(cell(row, i), widths[i])
		}
	}
	return strings.TrimRight(strings.Join(cells, " "), " ")
}

func cell(row []string, i int) string {
	if i < len(row) {
		return row[i]
	}
	return ""
}
