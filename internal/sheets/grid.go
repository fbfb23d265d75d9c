package sheets

import "fmt"

// DefaultRange covers every column a hand-maintained tab is expected to use.
const DefaultRange = "A:Z"

// Grid is the raw rows x columns text of one tab range, as returned by the
// Sheets API. Rows may be ragged; a missing cell reads as "".
type Grid [][]string

// Cell returns the text at row, col or "" when either is out of range.
func (g Grid) Cell(row, col int) string {
	if row < 0 || row >= len(g) {
		return ""
	}
	r := g[row]
	if col < 0 || col >= len(r) {
		return ""
	}
	return r[col]
}

// toGrid normalises API values to strings.
func toGrid(values [][]interface{}) Grid {
	if len(values) == 0 {
		return nil
	}
	grid := make(Grid, len(values))
	for i, row := range values {
		cells := make([]string, len(row))
		for j, v := range row {
			if v != nil {
				cells[j] = fmt.Sprintf("%v", v)
			}
		}
		grid[i] = cells
	}
	return grid
}
