package driven

import (
	"context"

	"github.com/custodia-labs/ragqa/internal/core/domain"
)

// VectorIndex is an in-memory similarity index that also holds the text of
// each entry. Entry ids are assigned in insertion order and never reused.
type VectorIndex interface {
	// Add appends one entry per row. The row count must equal len(texts) and
	// every row must have the index dimension, otherwise
	// domain.ErrDimensionMismatch is returned and the index is unchanged.
	Add(ctx context.Context, vectors [][]float32, texts []string) error

	// Search returns up to k hits ordered by descending score.
	// An empty index or k <= 0 yields an empty result.
	Search(ctx context.Context, query []float32, k int) ([]domain.VectorHit, error)

	// SearchBatch is Search for a batch holding a single query row.
	SearchBatch(ctx context.Context, queries [][]float32, k int) ([]domain.VectorHit, error)

	// Len returns the number of entries.
	Len() int

	// Dimensions returns the vector width fixed at construction.
	Dimensions() int

	// Close releases resources.
	Close() error
}

// VectorIndexFactory creates an empty index of the given dimension.
type VectorIndexFactory func(dim int) (VectorIndex, error)
