package driven

import (
	"context"

	"github.com/custodia-labs/ragqa/internal/core/domain"
)

// Chunker splits document text into chunks for embedding.
type Chunker interface {
	// Name returns the chunker name for logging.
	Name() string

	// Chunk splits text according to opts. An empty result means the text
	// had no content; callers treat that as an ingestion failure.
	// Invalid options return domain.ErrInvalidInput.
	Chunk(ctx context.Context, text string, opts domain.ChunkOptions) ([]domain.Chunk, error)
}
