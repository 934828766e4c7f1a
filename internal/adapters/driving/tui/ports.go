// Package tui provides an interactive terminal user interface for ragqa.
// It implements a driving adapter following hexagonal architecture principles.
package tui

import (
	"github.com/custodia-labs/ragqa/internal/core/ports/driving"
)

// Ports aggregates the driving port interfaces required by the TUI.
type Ports struct {
	// QA uploads documents and answers questions.
	QA driving.QAService
}

// Validate ensures all required ports are set.
func (p *Ports) Validate() error {
	if p == nil || p.QA == nil {
		return ErrMissingQAService
	}
	return nil
}
