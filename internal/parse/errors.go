package parse

import "errors"

var (
	// ErrUnterminatedComment indicates a documentation comment opened but never closed.
	ErrUnterminatedComment = errors.New("unterminated documentation comment")

	// ErrNoExtractor indicates no extractor is configured for a source type.
	ErrNoExtractor = errors.New("no extractor for source type")

	// ErrExtractorPanic indicates an extractor panicked while reading a file.
	ErrExtractorPanic = errors.New("extractor panicked")
)
