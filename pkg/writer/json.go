// Package writer renders exported tables and values as JSON, CSV, XLSX or
// terminal plots.
package writer

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/mat-analysis/pkg/compression"
)

// Writer renders data to an output stream.
type Writer[T any] interface {
	Write(data T, w io.Writer) error
}

// JSONWriter writes data as JSON.
type JSONWriter[T any] struct {
	// Indent specifies the indentation for pretty printing.
	// Empty string means compact output.
	Indent string
}

// NewJSONWriter creates a new JSON writer with compact output.
func NewJSONWriter[T any]() *JSONWriter[T] {
	return &JSONWriter[T]{Indent: ""}
}

// NewPrettyJSONWriter creates a JSON writer with pretty printing.
func NewPrettyJSONWriter[T any]() *JSONWriter[T] {
	return &JSONWriter[T]{Indent: "  "}
}

// Write writes the data as JSON to the writer.
func (w *JSONWriter[T]) Write(data T, writer io.Writer) error {
	encoder := json.NewEncoder(writer)
	if w.Indent != "" {
		encoder.SetIndent("", w.Indent)
	}
	return encoder.Encode(data)
}

// WriteToFile writes the data as JSON to a file.
func (w *JSONWriter[T]) WriteToFile(data T, filepath string) error {
	return WriteFile[T](w, data, filepath, compression.TypeNone)
}

// CompressedWriter wraps another writer and compresses its output.
type CompressedWriter[T any] struct {
	Inner Writer[T]
	Type  compression.Type
	Level compression.Level
}

// NewCompressedWriter wraps inner with the given compression type.
func NewCompressedWriter[T any](inner Writer[T], t compression.Type) *CompressedWriter[T] {
	return &CompressedWriter[T]{Inner: inner, Type: t, Level: compression.LevelDefault}
}

// Write renders data through the compressor.
func (w *CompressedWriter[T]) Write(data T, writer io.Writer) error {
	cw, err := compression.NewWriter(writer, w.Type, w.Level)
	if err != nil {
		return fmt.Errorf("failed to create %s writer: %w", w.Type, err)
	}
	if err := w.Inner.Write(data, cw); err != nil {
		cw.Close()
		return err
	}
	return cw.Close()
}

// WriteFile renders data into path, compressing it when t is not TypeNone.
func WriteFile[T any](w Writer[T], data T, path string, t compression.Type) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}

	if t != compression.TypeNone {
		w = NewCompressedWriter(w, t)
	}
	if err := w.Write(data, file); err != nil {
		file.Close()
		return err
	}
	return file.Close()
}
