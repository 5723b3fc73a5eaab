package mat4

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/mat-analysis/internal/parser"
	"github.com/mat-analysis/pkg/model"
	"github.com/mat-analysis/pkg/utils"
)

// Parser reads MAT v4 result files.
type Parser struct {
	opts   *parser.ParseOptions
	logger utils.Logger
}

// NewParser creates a new MAT v4 parser. A nil opts uses the defaults and a
// nil logger discards debug output.
func NewParser(opts *parser.ParseOptions, logger utils.Logger) *Parser {
	if opts == nil {
		opts = parser.DefaultParseOptions()
	}
	if logger == nil {
		logger = &utils.NullLogger{}
	}
	return &Parser{opts: opts, logger: logger}
}

// Parse reads every matrix from the reader. Cancellation is checked between
// matrices.
func (p *Parser) Parse(ctx context.Context, reader io.Reader) (*model.RawResultFile, error) {
	r := NewReader(reader, p.opts.MaxElements)
	raw := model.NewRawResultFile()

	count := 0
	for {
		select {
		case <-ctx.Done():
			return nil, fmt.Errorf("%w: %v", parser.ErrContextCanceled, ctx.Err())
		default:
		}

		m, err := r.Next()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read matrix %d: %w", count, err)
		}
		p.logger.Debug("mat4: read %q %dx%d text=%v", m.Name, m.Rows, m.Cols, m.Text)
		raw.Put(m)
		count++
	}

	if count == 0 {
		return nil, parser.ErrEmptyInput
	}

	if p.opts.Normalize {
		layout := Normalize(raw)
		p.logger.Debug("mat4: %d matrices, layout %s", count, layout)
	}
	return raw, nil
}

// SupportedFormats returns the formats supported by this parser.
func (p *Parser) SupportedFormats() []string {
	return []string{"mat", "mat4"}
}

// Name returns the name of this parser.
func (p *Parser) Name() string {
	return "mat4"
}
