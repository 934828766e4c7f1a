package domain

import (
	"errors"
	"fmt"
)

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// ErrUnsupportedType indicates an uploaded file type that cannot be ingested.
	ErrUnsupportedType = errors.New("unsupported type")

	// ErrEmptyDocument indicates the uploaded file has no text after decoding.
	ErrEmptyDocument = errors.New("empty document")

	// ErrNoChunks indicates chunking produced nothing to index.
	ErrNoChunks = errors.New("no chunks after ingestion")

	// ErrNoDocument indicates a question was asked before any document was uploaded.
	ErrNoDocument = errors.New("no document uploaded")

	// ErrDimensionMismatch indicates vectors whose width differs from the index dimension,
	// or a vector batch whose row count differs from its texts.
	ErrDimensionMismatch = fmt.Errorf("%w: dimension mismatch", ErrInvalidInput)

	// ErrLLMUnavailable indicates the generation model could not be initialised.
	ErrLLMUnavailable = errors.New("LLM service unavailable")

	// ErrEmbeddingUnavailable indicates the embedding model could not be initialised.
	ErrEmbeddingUnavailable = errors.New("embedding service unavailable")
)
