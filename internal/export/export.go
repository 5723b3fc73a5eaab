// Package export aligns resolved series to the shared time axis so they can
// be written as a table.
package export

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/mat-analysis/pkg/compression"
	"github.com/mat-analysis/pkg/model"
	"github.com/mat-analysis/pkg/writer"
)

// TimeColumn is the header of the leading time column.
const TimeColumn = "time"

// Table is the exportable set: the time axis plus every requested variable
// whose length matches it.
type Table struct {
	Time    model.Series
	Names   []string
	Columns []model.Series

	// Omitted lists requested names that were left out, in request order.
	Omitted []string
}

// Align builds a table from parallel names and series. A column is kept when
// it is non-empty and exactly as long as time. Repeated names and names that
// collide with the time header are kept once.
func Align(time model.Series, names []string, series []model.Series) *Table {
	t := &Table{
		Time:    time.Clone(),
		Names:   make([]string, 0, len(names)),
		Columns: make([]model.Series, 0, len(names)),
	}

	seen := map[string]bool{TimeColumn: true}
	for i, name := range names {
		var s model.Series
		if i < len(series) {
			s = series[i]
		}
		if len(s) == 0 || !s.AlignedWith(time) {
			t.Omitted = append(t.Omitted, name)
			continue
		}
		if seen[name] {
			continue
		}
		seen[name] = true
		t.Names = append(t.Names, name)
		t.Columns = append(t.Columns, s.Clone())
	}
	return t
}

// Rows returns the number of time points.
func (t *Table) Rows() int {
	return len(t.Time)
}

// Writer converts the table into the writer layout with time first.
func (t *Table) Writer() *writer.Table {
	headers := make([]string, 0, len(t.Names)+1)
	columns := make([][]float64, 0, len(t.Columns)+1)

	headers = append(headers, TimeColumn)
	columns = append(columns, t.Time)
	for i, name := range t.Names {
		headers = append(headers, name)
		columns = append(columns, t.Columns[i])
	}
	return writer.NewTable(headers, columns)
}

// Format is an output encoding for exported tables.
type Format string

const (
	FormatCSV  Format = "csv"
	FormatJSON Format = "json"
	FormatXLSX Format = "xlsx"
)

// ParseFormat normalizes a format name.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case FormatCSV, FormatJSON, FormatXLSX:
		return f, nil
	case "":
		return FormatCSV, nil
	default:
		return "", fmt.Errorf("unsupported export format %q", s)
	}
}

// Options controls how a table is encoded.
type Options struct {
	Format      Format
	Compression string // codec name, see compression.ParseType
	SheetName   string
}

// NewWriter returns the table writer for opts, wrapped in a compressor when
// requested.
func NewWriter(opts Options) (writer.Writer[*writer.Table], error) {
	var w writer.Writer[*writer.Table]
	switch opts.Format {
	case FormatCSV, "":
		w = writer.NewCSVWriter()
	case FormatJSON:
		w = writer.NewPrettyJSONWriter[*writer.Table]()
	case FormatXLSX:
		w = writer.NewXLSXWriter(opts.SheetName)
	default:
		return nil, fmt.Errorf("unsupported export format %q", opts.Format)
	}
	ct, err := compression.ParseType(opts.Compression)
	if err != nil {
		return nil, err
	}
	if ct != compression.TypeNone {
		w = writer.NewCompressedWriter(w, ct)
	}
	return w, nil
}

// FileName appends the format and compression extensions to base when it
// has none.
func FileName(base string, opts Options) string {
	name := base
	format := opts.Format
	if format == "" {
		format = FormatCSV
	}
	if filepath.Ext(name) == "" {
		name += "." + string(format)
	}
	ct, _ := compression.ParseType(opts.Compression)
	if ext := ct.Extension(); ext != "" && !strings.HasSuffix(name, ext) {
		name += ext
	}
	return name
}
