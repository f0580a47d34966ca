package stats

import (
	"fmt"
	"strings"

	"github.com/mattn/go-runewidth"

	"github.com/verte-zerg/typesprint/internal/model"
)

// column is one table column. Numeric columns are right aligned.
type column struct {
	header  string
	numeric bool
	value   func(model.Result) string
}

var resultColumns = []column{
	{header: "Ended", value: func(r model.Result) string { return r.EndedAt.Local().Format("2006-01-02 15:04") }},
	{header: "Duration", numeric: true, value: func(r model.Result) string { return fmt.Sprintf("%ds", r.DurationMs/1000) }},
	{header: "Words", numeric: true, value: func(r model.Result) string { return fmt.Sprintf("%d", r.WordCount) }},
	{header: "Chars", numeric: true, value: func(r model.Result) string { return fmt.Sprintf("%d/%d", r.CorrectChars, r.TotalChars) }},
	{header: "WPM", numeric: true, value: func(r model.Result) string { return fmt.Sprintf("%.2f", r.WPM) }},
	{header: "Accuracy", numeric: true, value: func(r model.Result) string { return fmt.Sprintf("%.2f%%", r.Accuracy) }},
}

// resultRows renders every result through columns, oldest first.
func resultRows(columns []column, results []model.Result) [][]string {
	rows := make([][]string, len(results))
	for i, r := range results {
		row := make([]string, len(columns))
		for j, col := range columns {
			row[j] = col.value(r)
		}
		rows[i] = row
	}
	return rows
}

// formatTable lays out a header line plus one line per row. Cells are padded
// to the widest display width in their column; missing cells render empty.
func formatTable(columns []column, rows [][]string) []string {
	if len(columns) == 0 {
		return nil
	}
	widths := make([]int, len(columns))
	for i, col := range columns {
		widths[i] = runewidth.StringWidth(col.header)
	}
	for _, row := range rows {
		for i := range columns {
			if i < len(row) {
				widths[i] = max(widths[i], runewidth.StringWidth(row[i]))
			}
		}
	}

	headers := make([]string, len(columns))
	for i, col := range columns {
		headers[i] = col.header
	}
	lines := make([]string, 0, len(rows)+1)
	lines = append(lines, joinCells(columns, widths, headers))
	for _, row := range rows {
		lines = append(lines, joinCells(columns, widths, row))
	}
	return lines
}

func joinCells(columns []column, widths []int, cells []string) string {
	parts := make([]string, len(columns))
	for i, col := range columns {
		cell := ""
		if i < len(cells) {
			cell = cells[i]
		}
		pad := strings.Repeat(" ", max(0, widths[i]-runewidth.StringWidth(cell)))
		if col.numeric {
			parts[i] = pad + cell
		} else {
			parts[i] = cell + pad
		}
	}
	return strings.Join(parts, " ")
}
