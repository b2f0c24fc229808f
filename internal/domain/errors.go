package domain

import "errors"

// Failure taxonomy. Extraction errors are per-document and never abort a
// batch; embedding and generation errors are fatal to the operation that
// triggered them. Translation and synthesis failures are not errors at
// all: they surface as degraded outcomes on the exchange.
var (
	ErrExtraction           = errors.New("extraction failed")
	ErrUnsupportedFormat    = errors.New("unsupported document format")
	ErrEmbeddingUnavailable = errors.New("embedding capability unavailable")
	ErrGenerationFailed     = errors.New("generation failed")
	ErrNoActiveSession      = errors.New("no active session")
)
