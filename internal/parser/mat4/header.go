package mat4

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"math"

	"github.com/mat-analysis/internal/parser"
)

// HeaderSize is the size in bytes of a matrix header.
const HeaderSize = 20

// maxNameLen bounds the name field of a single matrix.
const maxNameLen = 1 << 16

// Precision is the P digit of the MOPT code.
type Precision int

const (
	PrecisionFloat64 Precision = 0
	PrecisionFloat32 Precision = 1
	PrecisionInt32   Precision = 2
	PrecisionInt16   Precision = 3
	PrecisionUint16  Precision = 4
	PrecisionUint8   Precision = 5
)

// Size returns the element size in bytes.
func (p Precision) Size() int {
	switch p {
	case PrecisionFloat64:
		return 8
	case PrecisionFloat32, PrecisionInt32:
		return 4
	case PrecisionInt16, PrecisionUint16:
		return 2
	case PrecisionUint8:
		return 1
	default:
		return 0
	}
}

// String returns the string representation of Precision.
func (p Precision) String() string {
	switch p {
	case PrecisionFloat64:
		return "float64"
	case PrecisionFloat32:
		return "float32"
	case PrecisionInt32:
		return "int32"
	case PrecisionInt16:
		return "int16"
	case PrecisionUint16:
		return "uint16"
	case PrecisionUint8:
		return "uint8"
	default:
		return "unknown"
	}
}

func (p Precision) decode(order binary.ByteOrder, b []byte) float64 {
	switch p {
	case PrecisionFloat64:
		return math.Float64frombits(order.Uint64(b))
	case PrecisionFloat32:
		return float64(math.Float32frombits(order.Uint32(b)))
	case PrecisionInt32:
		return float64(int32(order.Uint32(b)))
	case PrecisionInt16:
		return float64(int16(order.Uint16(b)))
	case PrecisionUint16:
		return float64(order.Uint16(b))
	case PrecisionUint8:
		return float64(b[0])
	default:
		return 0
	}
}

func (p Precision) encode(order binary.ByteOrder, b []byte, v float64) {
	switch p {
	case PrecisionFloat64:
		order.PutUint64(b, math.Float64bits(v))
	case PrecisionFloat32:
		order.PutUint32(b, math.Float32bits(float32(v)))
	case PrecisionInt32:
		order.PutUint32(b, uint32(int32(v)))
	case PrecisionInt16:
		order.PutUint16(b, uint16(int16(v)))
	case PrecisionUint16:
		order.PutUint16(b, uint16(v))
	case PrecisionUint8:
		b[0] = byte(v)
	}
}

// Kind is the T digit of the MOPT code.
type Kind int

const (
	KindNumeric Kind = 0
	KindText    Kind = 1
	KindSparse  Kind = 2
)

// Header is a decoded matrix header.
type Header struct {
	Order     binary.ByteOrder
	Precision Precision
	Kind      Kind
	Rows      int
	Cols      int
	Imaginary bool
	NameLen   int
}

// Elements returns the element count of the real part.
func (h *Header) Elements() int64 {
	return int64(h.Rows) * int64(h.Cols)
}

// typeCode returns the MOPT value for h.
func (h *Header) typeCode() int32 {
	m := int32(0)
	if h.Order == binary.BigEndian {
		m = 1
	}
	return m*1000 + int32(h.Precision)*10 + int32(h.Kind)
}

// encode writes h into buf, which must hold HeaderSize bytes.
func (h *Header) encode(buf []byte) {
	imag := int32(0)
	if h.Imaginary {
		imag = 1
	}
	fields := [5]int32{h.typeCode(), int32(h.Rows), int32(h.Cols), imag, int32(h.NameLen)}
	for i, f := range fields {
		h.Order.PutUint32(buf[i*4:], uint32(f))
	}
}

var matV5Prefix = []byte("MATLAB")

// detectOrder determines the byte order from the type field. Little endian
// codes are below 1000 and big endian codes fall in [1000, 2000).
func detectOrder(buf []byte) (binary.ByteOrder, error) {
	if bytes.HasPrefix(buf, matV5Prefix) {
		return nil, fmt.Errorf("%w: MAT level 5 container", parser.ErrUnsupportedFormat)
	}
	if v := int32(binary.LittleEndian.Uint32(buf)); v >= 0 && v < 1000 {
		return binary.LittleEndian, nil
	}
	if v := int32(binary.BigEndian.Uint32(buf)); v >= 1000 && v < 2000 {
		return binary.BigEndian, nil
	}
	return nil, fmt.Errorf("%w: unrecognised matrix type code", parser.ErrInvalidFormat)
}

// decodeHeader parses a HeaderSize-byte buffer.
func decodeHeader(buf []byte) (*Header, error) {
	order, err := detectOrder(buf)
	if err != nil {
		return nil, err
	}

	field := func(i int) int32 {
		return int32(order.Uint32(buf[i*4:]))
	}
	code := field(0) % 1000
	o := (code / 100) % 10
	p := Precision((code / 10) % 10)
	t := Kind(code % 10)

	if o != 0 {
		return nil, fmt.Errorf("%w: reserved O digit is %d", parser.ErrInvalidFormat, o)
	}
	if p.Size() == 0 {
		return nil, fmt.Errorf("%w: precision %d", parser.ErrUnsupportedFormat, p)
	}
	switch t {
	case KindNumeric, KindText:
	case KindSparse:
		return nil, fmt.Errorf("%w: sparse matrix", parser.ErrUnsupportedFormat)
	default:
		return nil, fmt.Errorf("%w: matrix kind %d", parser.ErrInvalidFormat, t)
	}

	h := &Header{
		Order:     order,
		Precision: p,
		Kind:      t,
		Rows:      int(field(1)),
		Cols:      int(field(2)),
		Imaginary: field(3) != 0,
		NameLen:   int(field(4)),
	}
	if h.Rows < 0 || h.Cols < 0 {
		return nil, fmt.Errorf("%w: negative dimensions %dx%d", parser.ErrInvalidFormat, h.Rows, h.Cols)
	}
	if h.NameLen < 1 || h.NameLen > maxNameLen {
		return nil, fmt.Errorf("%w: name length %d", parser.ErrInvalidFormat, h.NameLen)
	}
	if h.Imaginary {
		return nil, fmt.Errorf("%w: complex matrix", parser.ErrUnsupportedFormat)
	}
	return h, nil
}
