package mcp

import (
	"context"
	"sync"

	"github.com/custodia-labs/ragqa/internal/core/domain"
	"github.com/custodia-labs/ragqa/internal/core/ports/driving"
)

// mockQAService is a mock implementation of driving.QAService.
type mockQAService struct {
	mu        sync.Mutex
	result    *domain.UploadResult
	answer    *domain.Answer
	status    domain.Status
	err       error
	uploads   []driving.UploadRequest
	questions []string
	topKs     []int
}

func (m *mockQAService) Upload(_ context.Context, req driving.UploadRequest) (*domain.UploadResult, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.uploads = append(m.uploads, req)
	if m.err != nil {
		return nil, m.err
	}
	if m.result != nil {
		return m.result, nil
	}
	return &domain.UploadResult{DocumentID: "doc-1", NumChunks: 1, EmbeddingDim: 4}, nil
}

func (m *mockQAService) Ask(_ context.Context, question string, topK int) (*domain.Answer, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.questions = append(m.questions, question)
	m.topKs = append(m.topKs, topK)
	if m.err != nil {
		return nil, m.err
	}
	if m.answer != nil {
		return m.answer, nil
	}
	return &domain.Answer{Answer: domain.FallbackAnswer}, nil
}

func (m *mockQAService) Status() domain.Status {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.status
}
