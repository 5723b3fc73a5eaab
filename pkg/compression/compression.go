// Package compression wraps result streams in gzip or zstd codecs.
package compression

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"strings"

	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
)

// Type represents the compression algorithm used.
type Type uint8

const (
	// TypeGzip uses gzip compression.
	TypeGzip Type = 0
	// TypeZstd uses zstd compression.
	TypeZstd Type = 1
	// TypeNone represents no compression.
	TypeNone Type = 255
)

// String returns the codec name.
func (t Type) String() string {
	switch t {
	case TypeGzip:
		return "gzip"
	case TypeZstd:
		return "zstd"
	default:
		return "none"
	}
}

// Extension returns the file suffix for the codec, including the dot.
func (t Type) Extension() string {
	switch t {
	case TypeGzip:
		return ".gz"
	case TypeZstd:
		return ".zst"
	default:
		return ""
	}
}

// ParseType converts a codec name into a Type. The empty string and "none"
// map to TypeNone.
func ParseType(name string) (Type, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "none":
		return TypeNone, nil
	case "gzip", "gz":
		return TypeGzip, nil
	case "zstd", "zst":
		return TypeZstd, nil
	default:
		return TypeNone, fmt.Errorf("unknown compression %q", name)
	}
}

// Level represents the compression level.
type Level int

const (
	// LevelFastest prioritizes speed over compression ratio
	LevelFastest Level = 1
	// LevelDefault balances speed and compression ratio
	LevelDefault Level = 3
	// LevelBest prioritizes compression ratio over speed
	LevelBest Level = 9
)

var (
	gzipMagic = []byte{0x1f, 0x8b}
	zstdMagic = []byte{0x28, 0xb5, 0x2f, 0xfd}
)

// DetectType identifies the codec from the leading bytes of a stream.
func DetectType(header []byte) Type {
	switch {
	case bytes.HasPrefix(header, zstdMagic):
		return TypeZstd
	case bytes.HasPrefix(header, gzipMagic):
		return TypeGzip
	default:
		return TypeNone
	}
}

// NewReader sniffs the stream and returns a reader that yields the
// decompressed bytes. Uncompressed input is passed through.
func NewReader(r io.Reader) (io.ReadCloser, Type, error) {
	br := bufio.NewReader(r)
	// A short stream yields fewer bytes and io.EOF; that is not an error here.
	header, _ := br.Peek(len(zstdMagic))

	t := DetectType(header)
	switch t {
	case TypeGzip:
		gr, err := gzip.NewReader(br)
		if err != nil {
			return nil, t, fmt.Errorf("failed to create gzip reader: %w", err)
		}
		return gr, t, nil
	case TypeZstd:
		zr, err := zstd.NewReader(br)
		if err != nil {
			return nil, t, fmt.Errorf("failed to create zstd reader: %w", err)
		}
		return zr.IOReadCloser(), t, nil
	default:
		return io.NopCloser(br), TypeNone, nil
	}
}

// NewWriter returns a writer that compresses into w. Close flushes the codec
// but does not close w.
func NewWriter(w io.Writer, t Type, level Level) (io.WriteCloser, error) {
	switch t {
	case TypeGzip:
		gw, err := gzip.NewWriterLevel(w, gzipLevel(level))
		if err != nil {
			return nil, fmt.Errorf("failed to create gzip writer: %w", err)
		}
		return gw, nil
	case TypeZstd:
		zw, err := zstd.NewWriter(w, zstd.WithEncoderLevel(zstdLevel(level)))
		if err != nil {
			return nil, fmt.Errorf("failed to create zstd writer: %w", err)
		}
		return zw, nil
	case TypeNone:
		return nopWriteCloser{w}, nil
	default:
		return nil, fmt.Errorf("unsupported compression type: %d", t)
	}
}

func gzipLevel(level Level) int {
	switch level {
	case LevelFastest:
		return gzip.BestSpeed
	case LevelBest:
		return gzip.BestCompression
	default:
		return gzip.DefaultCompression
	}
}

func zstdLevel(level Level) zstd.EncoderLevel {
	switch level {
	case LevelFastest:
		return zstd.SpeedFastest
	case LevelBest:
		return zstd.SpeedBestCompression
	default:
		return zstd.SpeedDefault
	}
}

type nopWriteCloser struct {
	io.Writer
}

func (nopWriteCloser) Close() error { return nil }

// Compress is a convenience wrapper around NewWriter for in-memory data.
func Compress(data []byte, t Type, level Level) ([]byte, error) {
	var buf bytes.Buffer
	w, err := NewWriter(&buf, t, level)
	if err != nil {
		return nil, err
	}
	if _, err := w.Write(data); err != nil {
		w.Close()
		return nil, fmt.Errorf("failed to write %s data: %w", t, err)
	}
	if err := w.Close(); err != nil {
		return nil, fmt.Errorf("failed to close %s writer: %w", t, err)
	}
	return buf.Bytes(), nil
}

// AutoDecompress decompresses data if it carries a known magic number and
// returns it unchanged otherwise.
func AutoDecompress(data []byte) ([]byte, error) {
	r, _, err := NewReader(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}
	defer r.Close()
	return io.ReadAll(r)
}
