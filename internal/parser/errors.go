package parser

import "errors"

var (
	// ErrInvalidFormat is returned when the input is malformed or truncated.
	ErrInvalidFormat = errors.New("invalid input format")

	// ErrEmptyInput is returned when the input is empty.
	ErrEmptyInput = errors.New("empty input")

	// ErrUnsupportedFormat is returned when the container or one of its
	// matrices uses a feature the reader does not handle.
	ErrUnsupportedFormat = errors.New("unsupported format")

	// ErrMissingField is returned when a required array is absent.
	ErrMissingField = errors.New("missing required field")

	// ErrTooLarge is returned when an array exceeds the element limit.
	ErrTooLarge = errors.New("array too large")

	// ErrContextCanceled is returned when the context is canceled during parsing.
	ErrContextCanceled = errors.New("context canceled")
)
