package tui

import (
	"context"

	"github.com/custodia-labs/ragqa/internal/core/domain"
	"github.com/custodia-labs/ragqa/internal/core/ports/driving"
)

// MockQAService implements driving.QAService for TUI tests.
type MockQAService struct {
	UploadFunc func(ctx context.Context, req driving.UploadRequest) (*domain.UploadResult, error)
	AskFunc    func(ctx context.Context, question string, topK int) (*domain.Answer, error)
}

func (m *MockQAService) Upload(ctx context.Context, req driving.UploadRequest) (*domain.UploadResult, error) {
	if m.UploadFunc != nil {
		return m.UploadFunc(ctx, req)
	}
	return &domain.UploadResult{DocumentID: "doc-1", NumChunks: 1, EmbeddingDim: 4}, nil
}

func (m *MockQAService) Ask(ctx context.Context, question string, topK int) (*domain.Answer, error) {
	if m.AskFunc != nil {
		return m.AskFunc(ctx, question, topK)
	}
	return &domain.Answer{Answer: domain.FallbackAnswer, TopChunks: []string{}}, nil
}

func (m *MockQAService) Status() domain.Status {
	return domain.Status{}
}
