package writer

import (
	"encoding/csv"
	"io"
	"strconv"
)

// CSVWriter writes a table as comma separated values with a header line.
type CSVWriter struct {
	// Precision is the number of digits after the decimal point.
	// Negative means the shortest representation that round-trips.
	Precision int
	Comma     rune
}

// NewCSVWriter creates a CSV writer with shortest float formatting.
func NewCSVWriter() *CSVWriter {
	return &CSVWriter{Precision: -1, Comma: ','}
}

// Write renders the table.
func (w *CSVWriter) Write(t *Table, out io.Writer) error {
	if err := t.Validate(); err != nil {
		return err
	}

	cw := csv.NewWriter(out)
	if w.Comma != 0 {
		cw.Comma = w.Comma
	}
	if err := cw.Write(t.Headers); err != nil {
		return err
	}

	record := make([]string, len(t.Columns))
	for r := 0; r < t.RowCount(); r++ {
		for c, v := range t.Row(r) {
			record[c] = w.format(v)
		}
		if err := cw.Write(record); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

func (w *CSVWriter) format(v float64) string {
	if w.Precision < 0 {
		return strconv.FormatFloat(v, 'g', -1, 64)
	}
	return strconv.FormatFloat(v, 'f', w.Precision, 64)
}
