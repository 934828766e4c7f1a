package driving

import (
	"context"

	"github.com/custodia-labs/ragqa/internal/core/domain"
)

// UploadRequest carries a raw uploaded file.
type UploadRequest struct {
	// Filename is used for the file type check.
	Filename string

	// Content is the raw file bytes. Invalid UTF-8 is dropped on decode.
	Content []byte

	// Options controls chunking. A nil value uses the configured defaults.
	Options *domain.ChunkOptions
}

// QAService answers questions about a single uploaded document.
type QAService interface {
	// Upload ingests a document and replaces the current one on success.
	// A failed upload leaves the previous document in place.
	Upload(ctx context.Context, req UploadRequest) (*domain.UploadResult, error)

	// Ask answers a question from the current document.
	// topK must be at least 1; callers apply the configured default.
	// Returns domain.ErrNoDocument before the first successful upload.
	Ask(ctx context.Context, question string, topK int) (*domain.Answer, error)

	// Status reports whether a document is loaded.
	Status() domain.Status
}
