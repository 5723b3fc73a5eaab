package mat4

import (
	"bufio"
	"bytes"
	"encoding/binary"
	"fmt"
	"io"
	"sort"

	"github.com/mat-analysis/pkg/model"
)

// Writer encodes matrices as a MAT v4 stream.
type Writer struct {
	w         *bufio.Writer
	order     binary.ByteOrder
	precision Precision
}

// WriterOption configures a Writer.
type WriterOption func(*Writer)

// WithByteOrder sets the byte order. Only binary.LittleEndian and
// binary.BigEndian are meaningful.
func WithByteOrder(order binary.ByteOrder) WriterOption {
	return func(w *Writer) {
		w.order = order
	}
}

// WithPrecision sets the element precision of numeric matrices.
func WithPrecision(p Precision) WriterOption {
	return func(w *Writer) {
		if p.Size() > 0 {
			w.precision = p
		}
	}
}

// NewWriter creates a little endian, float64 writer.
func NewWriter(w io.Writer, opts ...WriterOption) *Writer {
	mw := &Writer{
		w:         bufio.NewWriter(w),
		order:     binary.LittleEndian,
		precision: PrecisionFloat64,
	}
	for _, opt := range opts {
		opt(mw)
	}
	return mw
}

// WriteMatrix appends one matrix. Text matrices are stored as uint8 when
// every character fits, otherwise as int32.
func (w *Writer) WriteMatrix(m *model.Matrix) error {
	if m == nil {
		return nil
	}
	if len(m.Data) < m.Rows*m.Cols {
		return fmt.Errorf("matrix %q: %d elements for %dx%d", m.Name, len(m.Data), m.Rows, m.Cols)
	}

	h := &Header{
		Order:     w.order,
		Precision: w.precision,
		Kind:      KindNumeric,
		Rows:      m.Rows,
		Cols:      m.Cols,
		NameLen:   len(m.Name) + 1,
	}
	if m.Text {
		h.Kind = KindText
		h.Precision = textPrecision(m.Data)
	}

	var hdr [HeaderSize]byte
	h.encode(hdr[:])
	if _, err := w.w.Write(hdr[:]); err != nil {
		return err
	}
	if _, err := w.w.WriteString(m.Name); err != nil {
		return err
	}
	if err := w.w.WriteByte(0); err != nil {
		return err
	}

	size := h.Precision.Size()
	buf := make([]byte, size)
	for _, v := range m.Data[:m.Rows*m.Cols] {
		h.Precision.encode(w.order, buf, v)
		if _, err := w.w.Write(buf); err != nil {
			return err
		}
	}
	return nil
}

// Flush writes any buffered data to the underlying writer.
func (w *Writer) Flush() error {
	return w.w.Flush()
}

func textPrecision(data []float64) Precision {
	for _, v := range data {
		if v < 0 || v > 255 {
			return PrecisionInt32
		}
	}
	return PrecisionUint8
}

// canonicalOrder is the order OpenModelica writes the result arrays in.
var canonicalOrder = []string{
	model.FieldAclass,
	model.FieldName,
	model.FieldDescription,
	model.FieldDataInfo,
	model.FieldData1,
	model.FieldData2,
}

// WriteFile writes every array of raw, the well-known ones first and the
// rest sorted by name, then flushes.
func (w *Writer) WriteFile(raw *model.RawResultFile) error {
	seen := make(map[string]bool, len(canonicalOrder))
	for _, name := range canonicalOrder {
		seen[name] = true
		if err := w.WriteMatrix(raw.Array(name)); err != nil {
			return err
		}
	}

	extra := make([]string, 0)
	for name := range raw.Arrays {
		if !seen[name] {
			extra = append(extra, name)
		}
	}
	sort.Strings(extra)
	for _, name := range extra {
		if err := w.WriteMatrix(raw.Array(name)); err != nil {
			return err
		}
	}
	return w.Flush()
}

// Encode serializes raw into memory.
func Encode(raw *model.RawResultFile, opts ...WriterOption) ([]byte, error) {
	var buf bytes.Buffer
	if err := NewWriter(&buf, opts...).WriteFile(raw); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
