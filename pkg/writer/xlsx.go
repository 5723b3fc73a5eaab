package writer

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"
)

const defaultSheet = "Sheet1"

// XLSXWriter writes a table into a single worksheet.
type XLSXWriter struct {
	SheetName string
}

// NewXLSXWriter creates a workbook writer using the given sheet name.
func NewXLSXWriter(sheet string) *XLSXWriter {
	if sheet == "" {
		sheet = defaultSheet
	}
	return &XLSXWriter{SheetName: sheet}
}

// Write renders the table as an XLSX workbook.
func (w *XLSXWriter) Write(t *Table, out io.Writer) error {
	if err := t.Validate(); err != nil {
		return err
	}

	f := excelize.NewFile()
	defer f.Close()

	sheet := w.SheetName
	if sheet == "" {
		sheet = defaultSheet
	}
	if sheet != defaultSheet {
		if err := f.SetSheetName(defaultSheet, sheet); err != nil {
			return fmt.Errorf("failed to rename sheet: %w", err)
		}
	}

	sw, err := f.NewStreamWriter(sheet)
	if err != nil {
		return fmt.Errorf("failed to open sheet %q: %w", sheet, err)
	}

	header := make([]interface{}, len(t.Headers))
	for i, h := range t.Headers {
		header[i] = h
	}
	if err := sw.SetRow("A1", header); err != nil {
		return err
	}

	for r := 0; r < t.RowCount(); r++ {
		cell, err := excelize.CoordinatesToCellName(1, r+2)
		if err != nil {
			return err
		}
		values := t.Row(r)
		row := make([]interface{}, len(values))
		for i, v := range values {
			row[i] = v
		}
		if err := sw.SetRow(cell, row); err != nil {
			return fmt.Errorf("failed to write row %d: %w", r+2, err)
		}
	}

	if err := sw.Flush(); err != nil {
		return err
	}
	return f.Write(out)
}
