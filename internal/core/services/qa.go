package services

import (
	"context"
	"fmt"
	"strings"
	"sync/atomic"

	"github.com/google/uuid"

	"github.com/custodia-labs/ragqa/internal/core/domain"
	"github.com/custodia-labs/ragqa/internal/core/ports/driven"
	"github.com/custodia-labs/ragqa/internal/core/ports/driving"
	"github.com/custodia-labs/ragqa/internal/logger"
)

// Ensure QAService implements the interface.
var _ driving.QAService = (*QAService)(nil)

// snapshot is an immutable view of the indexed document.
// A new one is built for every upload and published in a single store.
type snapshot struct {
	documentID   string
	documentName string
	index        driven.VectorIndex
	numChunks    int
	dimension    int
}

// QAService answers questions about the most recently uploaded document.
type QAService struct {
	normaliser driven.Normaliser
	chunker    driven.Chunker
	embedder   driven.EmbeddingService
	newIndex   driven.VectorIndexFactory
	answerer   *Answerer

	chunkDefaults domain.ChunkOptions
	newID         func() string

	current atomic.Pointer[snapshot]
}

// QAOption configures a QAService.
type QAOption func(*QAService)

// WithChunkDefaults sets the chunk options used when an upload does not specify any.
func WithChunkDefaults(opts domain.ChunkOptions) QAOption {
	return func(s *QAService) {
		s.chunkDefaults = opts
	}
}

// WithIDGenerator overrides document id generation.
func WithIDGenerator(fn func() string) QAOption {
	return func(s *QAService) {
		s.newID = fn
	}
}

// NewQAService creates a QA service. newIndex builds a fresh index for each upload.
func NewQAService(
	normaliser driven.Normaliser,
	chunker driven.Chunker,
	embedder driven.EmbeddingService,
	newIndex driven.VectorIndexFactory,
	answerer *Answerer,
	opts ...QAOption,
) *QAService {
	s := &QAService{
		normaliser:    normaliser,
		chunker:       chunker,
		embedder:      embedder,
		newIndex:      newIndex,
		answerer:      answerer,
		chunkDefaults: domain.DefaultChunkOptions(),
		newID:         uuid.NewString,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Upload decodes, chunks, embeds and indexes a document, then makes it current.
// On any error the previously uploaded document stays current.
func (s *QAService) Upload(ctx context.Context, req driving.UploadRequest) (*domain.UploadResult, error) {
	logger.Section("Upload")
	logger.Debug("File: %q (%d bytes)", req.Filename, len(req.Content))

	doc, err := s.normaliser.Normalise(ctx, req.Filename, req.Content)
	if err != nil {
		return nil, err
	}

	opts := s.chunkDefaults
	if req.Options != nil {
		opts = *req.Options
	}
	if err := opts.Validate(); err != nil {
		return nil, err
	}

	chunks, err := s.chunker.Chunk(ctx, doc.Content, opts)
	if err != nil {
		return nil, fmt.Errorf("chunk document: %w", err)
	}
	if len(chunks) == 0 {
		return nil, domain.ErrNoChunks
	}
	logger.Debug("Chunked into %d chunks (size=%d, overlap=%d)", len(chunks), opts.Size, opts.Overlap)

	texts := make([]string, len(chunks))
	for i, c := range chunks {
		texts[i] = c.Text
	}

	vectors, err := s.embedder.EmbedBatch(ctx, texts)
	if err != nil {
		return nil, fmt.Errorf("embed chunks: %w", err)
	}
	if len(vectors) != len(texts) {
		return nil, fmt.Errorf("%w: embedder returned %d vectors for %d chunks",
			domain.ErrDimensionMismatch, len(vectors), len(texts))
	}
	dim := len(vectors[0])
	if dim == 0 {
		return nil, fmt.Errorf("%w: embedder returned empty vectors", domain.ErrDimensionMismatch)
	}

	index, err := s.newIndex(dim)
	if err != nil {
		return nil, fmt.Errorf("create index: %w", err)
	}
	if err := index.Add(ctx, vectors, texts); err != nil {
		index.Close()
		return nil, fmt.Errorf("index chunks: %w", err)
	}

	doc.ID = s.newID()
	snap := &snapshot{
		documentID:   doc.ID,
		documentName: doc.Name,
		index:        index,
		numChunks:    len(chunks),
		dimension:    dim,
	}
	// The previous index is not closed: in-flight questions may still search it.
	s.current.Store(snap)

	logger.Info("Indexed document %s: %d chunks, dim %d", snap.documentID, snap.numChunks, snap.dimension)

	return &domain.UploadResult{
		DocumentID:   snap.documentID,
		NumChunks:    snap.numChunks,
		EmbeddingDim: snap.dimension,
	}, nil
}

// Ask retrieves the topK most similar chunks and answers from them.
func (s *QAService) Ask(ctx context.Context, question string, topK int) (*domain.Answer, error) {
	logger.Section("Ask")
	logger.Debug("Question: %q, top_k=%d", question, topK)

	if strings.TrimSpace(question) == "" {
		return nil, fmt.Errorf("%w: question must not be empty", domain.ErrInvalidInput)
	}
	if topK < 1 {
		return nil, fmt.Errorf("%w: top_k must be at least 1, got %d", domain.ErrInvalidInput, topK)
	}

	snap := s.current.Load()
	if snap == nil {
		return nil, domain.ErrNoDocument
	}

	query, err := s.embedder.Embed(ctx, question)
	if err != nil {
		return nil, fmt.Errorf("embed question: %w", err)
	}

	hits, err := snap.index.SearchBatch(ctx, [][]float32{query}, topK)
	if err != nil {
		return nil, fmt.Errorf("search: %w", err)
	}

	contexts := make([]string, 0, len(hits))
	for _, h := range hits {
		logger.Debug("  hit id=%d score=%.4f", h.ID, h.Score)
		if strings.TrimSpace(h.Text) != "" {
			contexts = append(contexts, h.Text)
		}
	}
	if len(contexts) == 0 {
		return &domain.Answer{Answer: domain.FallbackAnswer, TopChunks: []string{}}, nil
	}

	answer, err := s.answerer.Answer(ctx, question, contexts)
	if err != nil {
		return nil, err
	}
	return &domain.Answer{Answer: answer, TopChunks: contexts}, nil
}

// Status reports the current document, if any.
func (s *QAService) Status() domain.Status {
	snap := s.current.Load()
	if snap == nil {
		return domain.Status{}
	}
	return domain.Status{
		DocumentLoaded: true,
		DocumentID:     snap.documentID,
		DocumentName:   snap.documentName,
		NumChunks:      snap.numChunks,
		EmbeddingDim:   snap.dimension,
	}
}
