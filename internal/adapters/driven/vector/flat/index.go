package flat

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"sync"

	"github.com/custodia-labs/ragqa/internal/core/domain"
	"github.com/custodia-labs/ragqa/internal/core/ports/driven"
)

// Ensure Index implements the interface.
var _ driven.VectorIndex = (*Index)(nil)

// ErrClosed is returned by operations on a closed index.
var ErrClosed = errors.New("flat: index is closed")

// Index is an exact inner-product index over an append-only arena.
type Index struct {
	mu        sync.RWMutex
	dimension int
	vectors   []float32
	texts     []string
	closed    bool
}

// New creates an empty index for vectors of the given dimension.
func New(dimension int) (*Index, error) {
	if dimension <= 0 {
		return nil, fmt.Errorf("%w: flat: dimension must be positive, got %d", domain.ErrInvalidInput, dimension)
	}
	return &Index{dimension: dimension}, nil
}

// Factory adapts New to driven.VectorIndexFactory.
func Factory(dim int) (driven.VectorIndex, error) {
	return New(dim)
}

// Add appends one entry per row. The whole batch is validated before any
// entry is written, so a rejected batch leaves the index unchanged.
func (idx *Index) Add(_ context.Context, vectors [][]float32, texts []string) error {
	if len(vectors) != len(texts) {
		return fmt.Errorf("%w: flat: %d vectors for %d texts", domain.ErrDimensionMismatch, len(vectors), len(texts))
	}
	for i, v := range vectors {
		if len(v) != idx.dimension {
			return fmt.Errorf("%w: flat: row %d has width %d, index dimension is %d",
				domain.ErrDimensionMismatch, i, len(v), idx.dimension)
		}
	}

	idx.mu.Lock()
	defer idx.mu.Unlock()

	if idx.closed {
		return ErrClosed
	}

	idx.vectors = slices.Grow(idx.vectors, len(vectors)*idx.dimension)
	for _, v := range vectors {
		idx.vectors = append(idx.vectors, v...)
	}
	idx.texts = append(idx.texts, texts...)
	return nil
}

// Search returns up to k hits ordered by descending inner product.
func (idx *Index) Search(_ context.Context, query []float32, k int) ([]domain.VectorHit, error) {
	idx.mu.RLock()
	defer idx.mu.RUnlock()

	if idx.closed {
		return nil, ErrClosed
	}
	n := len(idx.texts)
	if n == 0 || k <= 0 {
		return []domain.VectorHit{}, nil
	}
	if len(query) != idx.dimension {
		return nil, fmt.Errorf("%w: flat: query width %d, index dimension is %d",
			domain.ErrDimensionMismatch, len(query), idx.dimension)
	}

	best := topK(k, n, func(i int) float64 {
		return dot(query, idx.row(i))
	})

	hits := make([]domain.VectorHit, len(best))
	for i, b := range best {
		hits[i] = domain.VectorHit{ID: b.id, Score: b.score, Text: idx.texts[b.id]}
	}
	return hits, nil
}

// SearchBatch searches with the single row of a one-row batch.
func (idx *Index) SearchBatch(ctx context.Context, queries [][]float32, k int) ([]domain.VectorHit, error) {
	switch len(queries) {
	case 0:
		return []domain.VectorHit{}, nil
	case 1:
		return idx.Search(ctx, queries[0], k)
	default:
		return nil, fmt.Errorf("%w: flat: expected one query row, got %d", domain.ErrInvalidInput, len(queries))
	}
}

// Len returns the number of entries.
func (idx *Index) Len() int {
	idx.mu.RLock()
	defer idx.mu.RUnlock()
	return len(idx.texts)
}

// Dimensions returns the vector width.
func (idx *Index) Dimensions() int {
	return idx.dimension
}

// Close releases the arena.
func (idx *Index) Close() error {
	idx.mu.Lock()
	defer idx.mu.Unlock()
	idx.vectors = nil
	idx.texts = nil
	idx.closed = true
	return nil
}

func (idx *Index) row(i int) []float32 {
	return idx.vectors[i*idx.dimension : (i+1)*idx.dimension]
}

func dot(a, b []float32) float64 {
	var sum float64
	for i := range a {
		sum += float64(a[i]) * float64(b[i])
	}
	return sum
}
