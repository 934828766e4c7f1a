package driven

import (
	"context"

	"github.com/custodia-labs/ragqa/internal/core/domain"
)

// Normaliser decodes an uploaded file into a document.
type Normaliser interface {
	// SupportedExtensions returns the file extensions this normaliser reads.
	SupportedExtensions() []string

	// Normalise returns the decoded document without an ID.
	// Unreadable file types return domain.ErrUnsupportedType and content that
	// is blank after decoding returns domain.ErrEmptyDocument.
	Normalise(ctx context.Context, filename string, content []byte) (*domain.Document, error)
}
