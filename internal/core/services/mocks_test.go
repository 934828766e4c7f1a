package services

import (
	"context"
	"errors"
	"sync"

	"github.com/custodia-labs/ragqa/internal/core/domain"
	"github.com/custodia-labs/ragqa/internal/core/ports/driven"
)

// --- Mock implementations ---

// mockChunker implements driven.Chunker with canned chunks.
type mockChunker struct {
	mu       sync.Mutex
	chunks   []domain.Chunk
	err      error
	lastOpts domain.ChunkOptions
}

func (m *mockChunker) Name() string { return "mock" }

func (m *mockChunker) Chunk(_ context.Context, _ string, opts domain.ChunkOptions) ([]domain.Chunk, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.lastOpts = opts
	return m.chunks, m.err
}

func chunksOf(texts ...string) []domain.Chunk {
	out := make([]domain.Chunk, len(texts))
	for i, t := range texts {
		out[i] = domain.Chunk{ID: domain.ChunkID(i), Text: t, Position: i}
	}
	return out
}

// mockEmbeddingService implements driven.EmbeddingService.
// Each text maps to vectors[text], or a fixed one-hot vector.
type mockEmbeddingService struct {
	dim       int
	vectors   map[string][]float32
	embedErr  error
	batchErr  error
	batchRows int // when > 0, EmbedBatch returns this many rows
}

func (m *mockEmbeddingService) vector(text string) []float32 {
	if v, ok := m.vectors[text]; ok {
		return v
	}
	v := make([]float32, m.dim)
	v[0] = 1
	return v
}

func (m *mockEmbeddingService) Embed(_ context.Context, text string) ([]float32, error) {
	if m.embedErr != nil {
		return nil, m.embedErr
	}
	return m.vector(text), nil
}

func (m *mockEmbeddingService) EmbedBatch(_ context.Context, texts []string) ([][]float32, error) {
	if m.batchErr != nil {
		return nil, m.batchErr
	}
	n := len(texts)
	if m.batchRows > 0 {
		n = m.batchRows
	}
	out := make([][]float32, n)
	for i := range out {
		out[i] = m.vector(texts[i%len(texts)])
	}
	return out, nil
}

func (m *mockEmbeddingService) Dimensions() int              { return m.dim }
func (m *mockEmbeddingService) ModelName() string            { return "mock-embed" }
func (m *mockEmbeddingService) Ping(_ context.Context) error { return nil }
func (m *mockEmbeddingService) Close() error                 { return nil }

// mockLLMService implements driven.LLMService and records its calls.
type mockLLMService struct {
	mu       sync.Mutex
	response string
	err      error
	calls    int
	prompt   string
	opts     driven.GenerateOptions
}

func (m *mockLLMService) Generate(_ context.Context, prompt string, opts driven.GenerateOptions) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls++
	m.prompt = prompt
	m.opts = opts
	return m.response, m.err
}

func (m *mockLLMService) ModelName() string            { return "mock-llm" }
func (m *mockLLMService) Ping(_ context.Context) error { return nil }
func (m *mockLLMService) Close() error                 { return nil }

// mockVectorIndex implements driven.VectorIndex with canned hits.
type mockVectorIndex struct {
	dim       int
	hits      []domain.VectorHit
	addErr    error
	searchErr error
	added     int
	closed    bool
}

func (m *mockVectorIndex) Add(_ context.Context, vectors [][]float32, _ []string) error {
	if m.addErr != nil {
		return m.addErr
	}
	m.added += len(vectors)
	return nil
}

func (m *mockVectorIndex) Search(_ context.Context, _ []float32, k int) ([]domain.VectorHit, error) {
	if m.searchErr != nil {
		return nil, m.searchErr
	}
	if k > len(m.hits) {
		return m.hits, nil
	}
	return m.hits[:k], nil
}

func (m *mockVectorIndex) SearchBatch(ctx context.Context, queries [][]float32, k int) ([]domain.VectorHit, error) {
	if len(queries) != 1 {
		return nil, errors.New("mock: expected one query")
	}
	return m.Search(ctx, queries[0], k)
}

func (m *mockVectorIndex) Len() int        { return m.added }
func (m *mockVectorIndex) Dimensions() int { return m.dim }

func (m *mockVectorIndex) Close() error {
	m.closed = true
	return nil
}

// indexFactory returns a factory that always hands out idx.
func indexFactory(idx *mockVectorIndex) driven.VectorIndexFactory {
	return func(dim int) (driven.VectorIndex, error) {
		idx.dim = dim
		return idx, nil
	}
}

// mockPromptStore implements driven.PromptStore.
type mockPromptStore struct {
	prompts map[string]string
	err     error
	reloads int
}

func (m *mockPromptStore) Load(name string) (string, error) {
	if m.err != nil {
		return "", m.err
	}
	p, ok := m.prompts[name]
	if !ok {
		return "", errors.New("mock: unknown prompt")
	}
	return p, nil
}

func (m *mockPromptStore) Reload() { m.reloads++ }
