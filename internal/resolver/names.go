package resolver

import (
	"strings"

	"github.com/mat-analysis/pkg/model"
)

// DecodeNames returns one name per column of grid, in column order.
//
// The last column is never decoded: the simulator appends a trailing
// sentinel column and the loop bound is columns-1 by fixed policy. Each
// column is read top to bottom until a NUL, a ragged row that is too short,
// or the end of the grid.
func DecodeNames(grid model.CharGrid) []string {
	cols := grid.Columns()
	if cols <= 1 {
		return []string{}
	}

	names := make([]string, 0, cols-1)
	for c := 0; c < cols-1; c++ {
		names = append(names, decodeColumn(grid, c))
	}
	return names
}

func decodeColumn(grid model.CharGrid, c int) string {
	var sb strings.Builder
	for r := 0; r < len(grid); r++ {
		row := grid[r]
		if c >= len(row) {
			break
		}
		ch := row[c]
		if ch == 0 {
			break
		}
		sb.WriteRune(ch)
	}
	return sb.String()
}
