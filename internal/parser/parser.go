// Package parser defines the interfaces for deserializing result files into
// named arrays.
package parser

import (
	"context"
	"io"
	"path/filepath"
	"strings"
	"sync"

	"github.com/mat-analysis/pkg/model"
)

// Parser is the interface for reading a result container.
type Parser interface {
	// Parse reads every array from the reader.
	Parse(ctx context.Context, reader io.Reader) (*model.RawResultFile, error)

	// SupportedFormats returns the formats supported by this parser.
	SupportedFormats() []string

	// Name returns the name of this parser.
	Name() string
}

// Registry holds registered parsers. It is safe for concurrent use.
type Registry struct {
	mu      sync.RWMutex
	parsers map[string]Parser
}

// NewRegistry creates a new parser Registry.
func NewRegistry() *Registry {
	return &Registry{
		parsers: make(map[string]Parser),
	}
}

// Register registers a parser under every format it supports.
func (r *Registry) Register(p Parser) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, format := range p.SupportedFormats() {
		r.parsers[strings.ToLower(format)] = p
	}
}

// Get returns a parser for the given format.
func (r *Registry) Get(format string) (Parser, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	p, ok := r.parsers[strings.ToLower(format)]
	return p, ok
}

// ForPath picks a parser from the file extension, ignoring a trailing
// compression suffix.
func (r *Registry) ForPath(path string) (Parser, error) {
	format := FormatOf(path)
	if format == "" {
		return nil, ErrUnsupportedFormat
	}
	p, ok := r.Get(format)
	if !ok {
		return nil, ErrUnsupportedFormat
	}
	return p, nil
}

// compressionSuffixes are stripped before the format extension is read.
var compressionSuffixes = []string{".gz", ".zst", ".zstd"}

// FormatOf returns the lower-case extension of path without the dot, after
// removing any compression suffix.
func FormatOf(path string) string {
	lower := strings.ToLower(path)
	for _, suffix := range compressionSuffixes {
		if strings.HasSuffix(lower, suffix) {
			lower = strings.TrimSuffix(lower, suffix)
			break
		}
	}
	return strings.TrimPrefix(filepath.Ext(lower), ".")
}

// ParseOptions holds common parsing options.
type ParseOptions struct {
	// MaxElements limits the element count of any single array. Zero means
	// no limit.
	MaxElements int64

	// Normalize transposes binNormal files into the canonical layout.
	Normalize bool
}

// DefaultParseOptions returns default parsing options.
func DefaultParseOptions() *ParseOptions {
	return &ParseOptions{
		MaxElements: 1 << 28,
		Normalize:   true,
	}
}
