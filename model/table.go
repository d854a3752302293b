package model

import (
	"strings"

	"github.com/mattn/go-runewidth"
)

// Table is a synthesized table grid. Row and column indices are 1-based.
// Cells within a row keep the order the provider emitted them in.
type Table struct {
	ID          string          `json:"id"`
	Rows        RowMap[string]  `json:"rows"`
	Scores      RowMap[string]  `json:"scores"`
	MergedCells MergeMap        `json:"merged_cells"`
	Polygon     RowMap[Polygon] `json:"polygon"`
	RowCount    int             `json:"row_count"`
	ColumnCount int             `json:"column_count"`
}

// NewTable creates an empty table with the given id
func NewTable(id string) *Table {
	return &Table{ID: id}
}

// Recount derives RowCount and ColumnCount from the rows. An empty table
// has zero rows and zero columns.
func (t *Table) Recount() {
	t.RowCount = t.Rows.Len()
	t.ColumnCount = t.Rows.MaxLen()
}

// Cell returns the text at the given 1-based position
func (t *Table) Cell(row, col int) (string, bool) {
	cells := t.Rows.Get(row)
	if col < 1 || col > len(cells) {
		return "", false
	}
	return cells[col-1], true
}

// Grid returns the cell texts as a dense slice in row order. Short rows are
// padded with empty strings to ColumnCount.
func (t *Table) Grid() [][]string {
	keys := t.Rows.Keys()
	grid := make([][]string, 0, len(keys))
	for _, k := range keys {
		row := make([]string, t.ColumnCount)
		copy(row, t.Rows.Get(k))
		grid = append(grid, row)
	}
	return grid
}

// GetText returns tab separated cells, one row per line
func (t *Table) GetText() string {
	var sb strings.Builder
	for _, k := range t.Rows.Keys() {
		row := t.Rows.Get(k)
		for j, cell := range row {
			sb.WriteString(cell)
			if j < len(row)-1 {
				sb.WriteString("\t")
			}
		}
		sb.WriteString("\n")
	}
	return sb.String()
}

// ToMarkdown converts the table to markdown format, treating the first row
// as the header
func (t *Table) ToMarkdown() string {
	grid := t.Grid()
	if len(grid) == 0 {
		return ""
	}

	var sb strings.Builder
	writeRow := func(row []string) {
		for _, cell := range row {
			sb.WriteString("| ")
			sb.WriteString(strings.ReplaceAll(cell, "\n", " "))
			sb.WriteString(" ")
		}
		sb.WriteString("|\n")
	}

	writeRow(grid[0])
	for range grid[0] {
		sb.WriteString("|---")
	}
	sb.WriteString("|\n")
	for _, row := range grid[1:] {
		writeRow(row)
	}

	return sb.String()
}

// ToCSV converts the table to CSV format
func (t *Table) ToCSV() string {
	var sb strings.Builder
	for _, row := range t.Grid() {
		for j, cell := range row {
			// Escape quotes and wrap in quotes if necessary
			text := cell
			if strings.Contains(text, ",") || strings.Contains(text, "\"") || strings.Contains(text, "\n") {
				text = "\"" + strings.ReplaceAll(text, "\"", "\"\"") + "\""
			}
			sb.WriteString(text)
			if j < len(row)-1 {
				sb.WriteString(",")
			}
		}
		sb.WriteString("\n")
	}
	return sb.String()
}

// Render draws the table as an ASCII grid. Column widths are measured in
// terminal cells so wide and combining characters line up.
func (t *Table) Render() string {
	grid := t.Grid()
	if len(grid) == 0 {
		return ""
	}

	widths := make([]int, t.ColumnCount)
	cellLines := make([][][]string, len(grid))
	heights := make([]int, len(grid))
	for i, row := range grid {
		cellLines[i] = make([][]string, len(row))
		heights[i] = 1
		for j, cell := range row {
			lines := strings.Split(cell, "\n")
			cellLines[i][j] = lines
			if len(lines) > heights[i] {
				heights[i] = len(lines)
			}
			for _, line := range lines {
				if w := runewidth.StringWidth(line); w > widths[j] {
					widths[j] = w
				}
			}
		}
	}

	var sb strings.Builder
	border := func() {
		for _, w := range widths {
			sb.WriteString("+")
			sb.WriteString(strings.Repeat("-", w+2))
		}
		sb.WriteString("+\n")
	}

	border()
	for i := range grid {
		for l := 0; l < heights[i]; l++ {
			for j, w := range widths {
				line := ""
				if l < len(cellLines[i][j]) {
					line = cellLines[i][j][l]
				}
				sb.WriteString("| ")
				sb.WriteString(runewidth.FillRight(line, w))
				sb.WriteString(" ")
			}
			sb.WriteString("|\n")
		}
		border()
	}

	return sb.String()
}
