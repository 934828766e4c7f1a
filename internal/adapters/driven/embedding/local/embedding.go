// Package local provides an offline embedding service based on feature hashing.
//
// Each content word is hashed into one of a fixed number of buckets with a
// hash-derived sign; the counts are log-scaled and the vector L2-normalised.
// Texts that share vocabulary get a high inner product, which is enough for
// retrieval over a single document without downloading a model.
package local

import (
	"context"
	"hash/fnv"
	"math"

	"github.com/custodia-labs/ragqa/internal/adapters/driven/embedding"
	"github.com/custodia-labs/ragqa/internal/adapters/driven/lexical"
	"github.com/custodia-labs/ragqa/internal/core/ports/driven"
)

// Ensure EmbeddingService implements the interface.
var _ driven.EmbeddingService = (*EmbeddingService)(nil)

// Default configuration values.
const (
	DefaultModel      = "hashing-bow"
	DefaultDimensions = 384
)

// Config holds configuration for the local embedding service.
type Config struct {
	// Dimensions is the number of hash buckets (default: 384).
	Dimensions int
}

// EmbeddingService embeds text by hashing its content words.
type EmbeddingService struct {
	dimensions int
}

// NewEmbeddingService creates a new local embedding service.
func NewEmbeddingService(cfg Config) *EmbeddingService {
	if cfg.Dimensions <= 0 {
		cfg.Dimensions = DefaultDimensions
	}
	return &EmbeddingService{dimensions: cfg.Dimensions}
}

// Embed generates a vector embedding for the given text.
// Text without content words embeds to the zero vector.
func (s *EmbeddingService) Embed(ctx context.Context, text string) ([]float32, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	counts := make(map[int]float64)
	for _, tok := range lexical.Tokens(text) {
		bucket, sign := s.hash(tok)
		counts[bucket] += sign
	}

	vec := make([]float32, s.dimensions)
	for bucket, c := range counts {
		if c == 0 {
			continue
		}
		// sublinear term frequency
		vec[bucket] = float32(math.Copysign(1+math.Log(math.Abs(c)), c))
	}
	embedding.NormalizeL2(vec)
	return vec, nil
}

// EmbedBatch generates embeddings for multiple texts.
func (s *EmbeddingService) EmbedBatch(ctx context.Context, texts []string) ([][]float32, error) {
	out := make([][]float32, len(texts))
	for i, text := range texts {
		vec, err := s.Embed(ctx, text)
		if err != nil {
			return nil, err
		}
		out[i] = vec
	}
	return out, nil
}

// Dimensions returns the embedding vector size.
func (s *EmbeddingService) Dimensions() int {
	return s.dimensions
}

// ModelName returns the name of the embedding model being used.
func (s *EmbeddingService) ModelName() string {
	return DefaultModel
}

// Ping always succeeds.
func (s *EmbeddingService) Ping(_ context.Context) error {
	return nil
}

// Close releases resources.
func (s *EmbeddingService) Close() error {
	return nil
}

func (s *EmbeddingService) hash(tok string) (int, float64) {
	h := fnv.New64a()
	_, _ = h.Write([]byte(tok))
	sum := h.Sum64()
	sign := 1.0
	if sum>>63 == 1 {
		sign = -1.0
	}
	return int(sum % uint64(s.dimensions)), sign
}
