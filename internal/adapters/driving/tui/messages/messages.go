// Package messages defines Bubbletea message types for the TUI.
package messages

import (
	"github.com/custodia-labs/ragqa/internal/core/domain"
)

// UploadCompleted carries the outcome of loading a document from disk.
type UploadCompleted struct {
	Path   string
	Result *domain.UploadResult
	Err    error
}

// AskCompleted carries the answer to a question.
type AskCompleted struct {
	Question string
	Answer   *domain.Answer
	Err      error
}

// ErrorOccurred signals that an error happened outside a request.
type ErrorOccurred struct {
	Err error
}

// Quit signals the application should exit.
type Quit struct{}
