package writer

import "fmt"

// Table is a column-oriented numeric table with one header per column.
type Table struct {
	Headers []string    `json:"headers"`
	Columns [][]float64 `json:"columns"`
}

// NewTable pairs headers with columns.
func NewTable(headers []string, columns [][]float64) *Table {
	return &Table{Headers: headers, Columns: columns}
}

// RowCount returns the length of the longest column.
func (t *Table) RowCount() int {
	if t == nil {
		return 0
	}
	n := 0
	for _, c := range t.Columns {
		n = max(n, len(c))
	}
	return n
}

// Validate checks that every column has a header and all columns share a
// length.
func (t *Table) Validate() error {
	if t == nil {
		return fmt.Errorf("nil table")
	}
	if len(t.Headers) != len(t.Columns) {
		return fmt.Errorf("table has %d headers but %d columns", len(t.Headers), len(t.Columns))
	}
	rows := t.RowCount()
	for i, c := range t.Columns {
		if len(c) != rows {
			return fmt.Errorf("column %q has %d rows, expected %d", t.Headers[i], len(c), rows)
		}
	}
	return nil
}

// Row returns the values of row r across all columns.
func (t *Table) Row(r int) []float64 {
	row := make([]float64, len(t.Columns))
	for c, col := range t.Columns {
		if r < len(col) {
			row[c] = col[r]
		}
	}
	return row
}
