package mat4

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io"

	"github.com/mat-analysis/internal/parser"
	"github.com/mat-analysis/pkg/model"
)

// Reader reads matrices one at a time from a MAT v4 stream.
type Reader struct {
	r           *bufio.Reader
	maxElements int64
	hdr         [HeaderSize]byte
}

// NewReader creates a new Reader. maxElements bounds a single matrix; zero
// disables the check.
func NewReader(r io.Reader, maxElements int64) *Reader {
	return &Reader{
		r:           bufio.NewReaderSize(r, 64*1024),
		maxElements: maxElements,
	}
}

// Next returns the next matrix, or io.EOF at a clean end of stream.
func (r *Reader) Next() (*model.Matrix, error) {
	n, err := io.ReadFull(r.r, r.hdr[:])
	if err != nil {
		if errors.Is(err, io.EOF) && n == 0 {
			return nil, io.EOF
		}
		return nil, fmt.Errorf("%w: truncated header", parser.ErrInvalidFormat)
	}

	h, err := decodeHeader(r.hdr[:])
	if err != nil {
		return nil, err
	}
	if r.maxElements > 0 && h.Elements() > r.maxElements {
		return nil, fmt.Errorf("%w: %d elements", parser.ErrTooLarge, h.Elements())
	}

	nameBuf := make([]byte, h.NameLen)
	if _, err := io.ReadFull(r.r, nameBuf); err != nil {
		return nil, fmt.Errorf("%w: truncated name", parser.ErrInvalidFormat)
	}
	if i := bytes.IndexByte(nameBuf, 0); i >= 0 {
		nameBuf = nameBuf[:i]
	}
	name := string(nameBuf)

	data, err := r.readData(h)
	if err != nil {
		return nil, fmt.Errorf("matrix %q: %w", name, err)
	}

	return &model.Matrix{
		Name: name,
		Rows: h.Rows,
		Cols: h.Cols,
		Data: data,
		Text: h.Kind == KindText,
	}, nil
}

func (r *Reader) readData(h *Header) ([]float64, error) {
	count := int(h.Elements())
	size := h.Precision.Size()

	// Grow with the stream instead of allocating the advertised size up front.
	const chunkElems = 8192
	data := make([]float64, 0, min(count, chunkElems))
	buf := make([]byte, min(count, chunkElems)*size)
	for off := 0; off < count; {
		n := min(count-off, chunkElems)
		chunk := buf[:n*size]
		if _, err := io.ReadFull(r.r, chunk); err != nil {
			return nil, fmt.Errorf("%w: truncated data", parser.ErrInvalidFormat)
		}
		for i := 0; i < n; i++ {
			data = append(data, h.Precision.decode(h.Order, chunk[i*size:]))
		}
		off += n
	}
	return data, nil
}
